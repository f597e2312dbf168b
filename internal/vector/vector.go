// Package vector provides the Cartesian vectors and points shared by every
// geometry package in this module: Vector2D/Vector3D (magnitude, angle,
// rotate, scale) and the plain Point2D/Point3D/SphericalPoint3D carriers.
package vector

import (
	"math"

	"github.com/catenarytools/sagtension/internal/unit"
)

// Plane2D selects which two axes of a 3D vector a planar operation
// (Angle, Rotate) acts on. The first axis named is the plane's horizontal
// axis.
type Plane2D int

const (
	XY Plane2D = iota
	XZ
	YX
	YZ
	ZX
	ZY
)

// rotateSnapThreshold is the smallest rotation, in degrees, that actually
// perturbs the stored components; anything smaller is treated as a no-op
// to avoid churning a vector that's already aligned.
const rotateSnapThreshold = 0.00005

// Vector2D is a mutable Cartesian vector. Its radial-coordinate view
// (Magnitude, Angle) is computed from the stored X/Y components, not
// cached.
type Vector2D struct {
	X float64
	Y float64
}

// New2D builds a Vector2D from Cartesian components.
func New2D(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// Magnitude returns the vector's length.
func (v Vector2D) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// Angle returns the angle between the positive X axis and the vector, in
// degrees, measured counter-clockwise. By default the result lies in
// [0, 360); if negativeAngles is true, results above 180 degrees are
// expressed as the equivalent negative angle instead.
//
// Angle is undefined for the zero vector; callers must not rely on a
// particular value in that case.
func (v Vector2D) Angle(negativeAngles bool) float64 {
	var angle float64

	switch {
	case v.X == 0 && v.Y == 0:
		return 0
	case v.X == 0:
		if v.Y > 0 {
			angle = 90
		} else {
			angle = 270
		}
	case v.Y == 0:
		if v.X > 0 {
			angle = 0
		} else {
			angle = 180
		}
	default:
		ratio := unit.ConvertAngle(math.Atan(math.Abs(v.Y/v.X)), unit.RadiansToDegrees, 1, true)
		switch {
		case v.Y > 0 && v.X > 0: // quadrant I
			angle = unit.ConvertAngle(math.Atan(v.Y/v.X), unit.RadiansToDegrees, 1, true)
		case v.Y > 0 && v.X < 0: // quadrant II
			angle = 180 - ratio
		case v.Y < 0 && v.X < 0: // quadrant III
			angle = 180 + ratio
		default: // quadrant IV
			angle = 360 - ratio
		}
	}

	if angle > 180 && negativeAngles {
		angle -= 360
	}
	return angle
}

// Rotate rotates the vector about the origin by angleRotation degrees.
// Positive values rotate counter-clockwise.
func (v *Vector2D) Rotate(angleRotation float64) {
	if math.Abs(angleRotation) < rotateSnapThreshold {
		return
	}

	magnitude := v.Magnitude()
	angleNew := v.Angle(false) + angleRotation
	radians := unit.ConvertAngle(angleNew, unit.DegreesToRadians, 1, true)

	v.X = magnitude * math.Cos(radians)
	v.Y = magnitude * math.Sin(radians)
}

// Scale multiplies both components by factorScale.
func (v *Vector2D) Scale(factorScale float64) {
	v.X *= factorScale
	v.Y *= factorScale
}

// Vector3D is a mutable Cartesian vector in 3D space. Planar operations
// (Angle, Rotate) project onto a caller-selected Plane2D and delegate to
// Vector2D.
type Vector3D struct {
	X float64
	Y float64
	Z float64
}

// New3D builds a Vector3D from Cartesian components.
func New3D(x, y, z float64) Vector3D {
	return Vector3D{X: x, Y: y, Z: z}
}

// planar returns the two components selected by plane, in (horizontal,
// vertical) order.
func (v Vector3D) planar(plane Plane2D) Vector2D {
	switch plane {
	case XY:
		return Vector2D{X: v.X, Y: v.Y}
	case XZ:
		return Vector2D{X: v.X, Y: v.Z}
	case YX:
		return Vector2D{X: v.Y, Y: v.X}
	case YZ:
		return Vector2D{X: v.Y, Y: v.Z}
	case ZX:
		return Vector2D{X: v.Z, Y: v.X}
	default: // ZY
		return Vector2D{X: v.Z, Y: v.Y}
	}
}

func (v *Vector3D) setPlanar(plane Plane2D, p Vector2D) {
	switch plane {
	case XY:
		v.X, v.Y = p.X, p.Y
	case XZ:
		v.X, v.Z = p.X, p.Y
	case YX:
		v.Y, v.X = p.X, p.Y
	case YZ:
		v.Y, v.Z = p.X, p.Y
	case ZX:
		v.Z, v.X = p.X, p.Y
	default: // ZY
		v.Z, v.Y = p.X, p.Y
	}
}

// Magnitude returns the vector's length.
func (v Vector3D) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Angle returns the angle within plane between its horizontal axis and the
// vector's projection onto that plane, in degrees. See Vector2D.Angle for
// the negativeAngles convention.
func (v Vector3D) Angle(plane Plane2D, negativeAngles bool) float64 {
	return v.planar(plane).Angle(negativeAngles)
}

// Rotate rotates the vector within plane by angleRotation degrees,
// leaving the component perpendicular to plane unchanged.
func (v *Vector3D) Rotate(plane Plane2D, angleRotation float64) {
	if math.Abs(angleRotation) < rotateSnapThreshold {
		return
	}
	p := v.planar(plane)
	p.Rotate(angleRotation)
	v.setPlanar(plane, p)
}

// Scale multiplies all three components by factorScale.
func (v *Vector3D) Scale(factorScale float64) {
	v.X *= factorScale
	v.Y *= factorScale
	v.Z *= factorScale
}

// Point2D is a plain 2D Cartesian point.
type Point2D struct {
	X float64
	Y float64
}

// Point3D is a plain 3D Cartesian point.
type Point3D struct {
	X float64
	Y float64
	Z float64
}

// SphericalPoint3D locates a point by radius and two angular offsets,
// matching the spherical-coordinate convention used for suspension
// hardware swing: AngleX is the angle of the radius vector within the
// XY plane, AngleZ is the elevation out of that plane.
type SphericalPoint3D struct {
	Radius float64
	AngleX float64
	AngleZ float64
}

// ToPoint3D converts a spherical point into Cartesian coordinates.
func (s SphericalPoint3D) ToPoint3D() Point3D {
	radiansX := unit.ConvertAngle(s.AngleX, unit.DegreesToRadians, 1, true)
	radiansZ := unit.ConvertAngle(s.AngleZ, unit.DegreesToRadians, 1, true)

	horizontal := s.Radius * math.Cos(radiansZ)
	return Point3D{
		X: horizontal * math.Cos(radiansX),
		Y: horizontal * math.Sin(radiansX),
		Z: s.Radius * math.Sin(radiansZ),
	}
}
