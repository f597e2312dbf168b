// Package alignment places structures along a transmission line's
// plan-and-profile path: Alignment keeps a sorted list of station,
// elevation, and rotation control points, and TransmissionLine walks
// that stationing to place every point in xyz space.
package alignment

import (
	"sort"

	"github.com/catenarytools/sagtension/internal/diagnostic"
	"github.com/catenarytools/sagtension/internal/vector"
)

// Point is a single alignment control point: at Station along the line,
// the ground sits at Elevation, and the line path turns by Rotation
// degrees (about the vertical axis) from there to the next point.
type Point struct {
	Elevation float64
	Rotation  float64
	Station   float64
}

// Validate reports whether the point's values are physically sound.
func (p Point) Validate(includeWarnings bool, messages *[]diagnostic.Message) bool {
	isValid := true
	if p.Elevation < 0 {
		isValid = false
		diagnostic.Append(messages, "ALIGNMENT POINT", "invalid elevation")
	}
	if abs(p.Rotation) > 360 {
		isValid = false
		diagnostic.Append(messages, "ALIGNMENT POINT", "invalid rotation")
	}
	if p.Station < 0 {
		isValid = false
		diagnostic.Append(messages, "ALIGNMENT POINT", "invalid station")
	}
	return isValid
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// Alignment is a station-ordered list of control points describing a
// transmission line's horizontal and vertical path.
type Alignment struct {
	points []Point
}

// AddPoint inserts point in station order and returns its index.
// Duplicate stations are rejected.
func (a *Alignment) AddPoint(point Point) (int, bool) {
	for _, existing := range a.points {
		if existing.Station == point.Station {
			return -1, false
		}
	}

	index := sort.Search(len(a.points), func(i int) bool {
		return point.Station < a.points[i].Station
	})

	a.points = append(a.points, Point{})
	copy(a.points[index+1:], a.points[index:])
	a.points[index] = point
	return index, true
}

// DeletePoint removes the point at index.
func (a *Alignment) DeletePoint(index int) bool {
	if index < 0 || index >= len(a.points) {
		return false
	}
	a.points = append(a.points[:index], a.points[index+1:]...)
	return true
}

// ModifyPoint replaces the point at index, keeping the list sorted, and
// returns the replacement's new index.
func (a *Alignment) ModifyPoint(index int, point Point) (int, bool) {
	if !a.DeletePoint(index) {
		return -1, false
	}
	return a.AddPoint(point)
}

// Points returns the alignment's control points in station order.
func (a Alignment) Points() []Point {
	return a.points
}

// Validate reports whether every point is sound and the list remains in
// ascending station order.
func (a Alignment) Validate(includeWarnings bool, messages *[]diagnostic.Message) bool {
	isValid := true
	var prev *Point
	for i := range a.points {
		point := a.points[i]
		if !point.Validate(includeWarnings, messages) {
			isValid = false
		}
		if prev != nil && point.Station < prev.Station {
			isValid = false
			diagnostic.Append(messages, "ALIGNMENT", "invalid point sorting")
		}
		prev = &a.points[i]
	}
	return isValid
}

// TransmissionLine places structures along an Alignment, starting from
// Origin in xyz space.
type TransmissionLine struct {
	Alignment Alignment
	Origin    vector.Point3D

	pointsXYZ []vector.Point3D
	hasSolved bool
}

// pointFromVector advances pointXYZ by distanceStation along vectorXY
// (rotated by rotationXY and rescaled to distanceStation), rising
// distanceElevation.
func pointFromVector(pointXYZ vector.Point3D, distanceStation, distanceElevation, rotationXY float64, vectorXY vector.Vector2D) vector.Point3D {
	vectorXY.Rotate(rotationXY)
	vectorXY.Scale(distanceStation / vectorXY.Magnitude())

	return vector.Point3D{
		X: pointXYZ.X + vectorXY.X,
		Y: pointXYZ.Y + vectorXY.Y,
		Z: pointXYZ.Z + distanceElevation,
	}
}

// ensure walks the alignment's control points, placing one xyz point per
// control point.
func (l *TransmissionLine) ensure() bool {
	if l.hasSolved {
		return true
	}

	points := l.Alignment.Points()
	if len(points) == 0 {
		return false
	}

	l.pointsXYZ = make([]vector.Point3D, len(points))
	vectorPath := vector.Vector2D{X: 1}

	for i, point := range points {
		if i == 0 {
			l.pointsXYZ[i] = l.Origin
			continue
		}

		prev := points[i-1]
		distanceStation := point.Station - prev.Station
		distanceElevation := point.Elevation - prev.Elevation

		if i >= 2 {
			back := l.pointsXYZ[i-1]
			backBack := l.pointsXYZ[i-2]
			vectorPath = vector.Vector2D{X: back.X - backBack.X, Y: back.Y - backBack.Y}
		}

		l.pointsXYZ[i] = pointFromVector(l.pointsXYZ[i-1], distanceStation, distanceElevation, prev.Rotation, vectorPath)
	}

	l.hasSolved = true
	return true
}

// PointsXYZAlignment returns every control point's placed xyz position.
func (l *TransmissionLine) PointsXYZAlignment() ([]vector.Point3D, bool) {
	if !l.ensure() {
		return nil, false
	}
	return l.pointsXYZ, true
}

// PointXYZAlignment returns the xyz position at an arbitrary station,
// interpolating linearly in elevation and along the rotated path vector
// between the bracketing control points.
func (l *TransmissionLine) PointXYZAlignment(station float64) (vector.Point3D, bool) {
	if !l.ensure() {
		return vector.Point3D{}, false
	}

	points := l.Alignment.Points()
	index := -1
	for i, point := range points {
		if station == point.Station {
			return l.pointsXYZ[i], true
		}
		if station < point.Station {
			index = i
			break
		}
	}
	if index <= 0 {
		return vector.Point3D{}, false
	}

	back := points[index-1]
	ahead := points[index]

	distanceStation := station - back.Station
	slope := (ahead.Elevation - back.Elevation) / (ahead.Station - back.Station)
	distanceElevation := slope * distanceStation

	vectorPath := vector.Vector2D{X: 1}
	if index-1 > 0 {
		pointBack := l.pointsXYZ[index-1]
		pointBackBack := l.pointsXYZ[index-2]
		vectorPath = vector.Vector2D{X: pointBack.X - pointBackBack.X, Y: pointBack.Y - pointBackBack.Y}
	}

	return pointFromVector(l.pointsXYZ[index-1], distanceStation, distanceElevation, back.Rotation, vectorPath), true
}

// Validate reports whether the line's alignment is sound and placement
// succeeds.
func (l *TransmissionLine) Validate(includeWarnings bool, messages *[]diagnostic.Message) bool {
	isValid := l.Alignment.Validate(includeWarnings, messages)
	if !l.ensure() {
		isValid = false
		diagnostic.Append(messages, "TRANSMISSION LINE", "error updating class")
	}
	return isValid
}
