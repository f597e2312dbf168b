package hardware

import (
	"math"

	"github.com/catenarytools/sagtension/internal/catenary"
	"github.com/catenarytools/sagtension/internal/diagnostic"
	"github.com/catenarytools/sagtension/internal/unit"
	"github.com/catenarytools/sagtension/internal/vector"
)

const (
	positionIterMax   = 100
	positionPrecision = 5 // lb, tension imbalance convergence target
)

// Hardware is a suspension or dead-end assembly at one cable attachment.
type Hardware struct {
	Length float64
}

// hardwarePoint locates a cable attachment relative to its structure
// attachment in spherical coordinates: AngleXY is the azimuth within the
// horizontal plane, AngleZ is the polar angle measured from the
// positive z-axis (so AngleZ=180 hangs straight down).
type hardwarePoint struct {
	radius  float64
	angleXY float64
	angleZ  float64
}

func (p hardwarePoint) toPoint3D() vector.Point3D {
	radiansXY := unit.ConvertAngle(p.angleXY, unit.DegreesToRadians, 1, true)
	radiansZ := unit.ConvertAngle(p.angleZ, unit.DegreesToRadians, 1, true)
	return vector.Point3D{
		X: p.radius * math.Cos(radiansXY) * math.Sin(radiansZ),
		Y: p.radius * math.Sin(radiansXY) * math.Sin(radiansZ),
		Z: p.radius * math.Cos(radiansZ),
	}
}

// PositionLocator places every attachment of a line cable strung across
// a chain of structures: the structure attachment points are fixed, but
// suspension hardware is free to swing, so each one is solved to static
// equilibrium between its back and ahead span tensions.
//
// The first and last attachments are assumed dead-ended (no swing).
type PositionLocator struct {
	TensionHorizontal float64
	WeightUnit        vector.Vector3D
	PointsStructure   []vector.Point3D
	Hardwares         []Hardware

	pointsCable    []vector.Point3D
	pointsHardware []hardwarePoint
	hasSolved      bool
	converged      bool
}

// spanCatenary builds the catenary spanning pointBack to pointAhead.
// Every span shares the locator's single transverse direction (the
// default, positive-y side).
func spanCatenary(pointBack, pointAhead vector.Point3D, tensionHorizontal float64, weightUnit vector.Vector3D) catenary.Catenary3D {
	horizontal := vector.Vector2D{X: pointAhead.X - pointBack.X, Y: pointAhead.Y - pointBack.Y}
	c := catenary.Catenary3D{
		SpacingEndpoints: vector.Vector3D{X: horizontal.Magnitude(), Z: pointAhead.Z - pointBack.Z},
		WeightUnit:       weightUnit,
	}
	c.SetTensionHorizontal(tensionHorizontal)
	return c
}

func (l *PositionLocator) initializeHardwarePoints() {
	n := len(l.PointsStructure)
	l.pointsHardware = make([]hardwarePoint, n)

	for i := 0; i < n; i++ {
		if i == 0 || i == n-1 {
			continue
		}

		back := l.PointsStructure[i-1]
		current := l.PointsStructure[i]
		ahead := l.PointsStructure[i+1]

		vectorBack := vector.Vector2D{X: back.X - current.X, Y: back.Y - current.Y}
		vectorBack.Scale(1 / vectorBack.Magnitude())

		vectorAhead := vector.Vector2D{X: ahead.X - current.X, Y: ahead.Y - current.Y}
		vectorAhead.Scale(1 / vectorAhead.Magnitude())

		combined := vector.Vector2D{X: vectorBack.X + vectorAhead.X, Y: vectorBack.Y + vectorAhead.Y}

		l.pointsHardware[i] = hardwarePoint{
			radius:  l.Hardwares[i].Length,
			angleXY: combined.Angle(false),
			angleZ:  180,
		}
	}
}

func (l *PositionLocator) updatePointsCable() {
	n := len(l.PointsStructure)
	l.pointsCable = make([]vector.Point3D, n)
	for i := 0; i < n; i++ {
		offset := l.pointsHardware[i].toPoint3D()
		l.pointsCable[i] = vector.Point3D{
			X: l.PointsStructure[i].X + offset.X,
			Y: l.PointsStructure[i].Y + offset.Y,
			Z: l.PointsStructure[i].Z + offset.Z,
		}
	}
}

// updatePointsHardware re-solves every suspension attachment's
// equilibrium angle given the current cable attachment points, and
// returns the largest tension imbalance found.
func (l *PositionLocator) updatePointsHardware() float64 {
	n := len(l.pointsCable)
	imbalanceMax := 0.0

	for i := 1; i < n-1; i++ {
		back := l.pointsCable[i-1]
		current := l.pointsCable[i]
		ahead := l.pointsCable[i+1]

		catenaryBack := spanCatenary(back, current, l.TensionHorizontal, l.WeightUnit)
		catenaryAhead := spanCatenary(current, ahead, l.TensionHorizontal, l.WeightUnit)

		vectorBack := vector.Vector2D{X: back.X - current.X, Y: back.Y - current.Y}
		angleBack := vectorBack.Angle(false)

		vectorAhead := vector.Vector2D{X: ahead.X - current.X, Y: ahead.Y - current.Y}
		angleAhead := vectorAhead.Angle(false)

		angleCatenaries := math.Abs(angleAhead - angleBack)

		vectorBackReversed := vectorBack
		vectorBackReversed.Rotate(180)
		angleDiffXY := math.Abs(angleAhead - vectorBackReversed.Angle(false))
		direction := catenary.Positive
		if angleDiffXY > 180 {
			direction = catenary.Negative
		}

		solver := EquilibriumSolver{
			AngleCatenaries:     angleCatenaries,
			AngleHardware:       l.pointsHardware[i].angleZ,
			CatenaryAhead:       catenaryAhead,
			CatenaryBack:        catenaryBack,
			DirectionCatenaries: direction,
		}

		angleEquilibrium, ok := solver.AngleEquilibrium()
		if ok {
			l.pointsHardware[i].angleZ = angleEquilibrium
		}
		imbalance, _ := solver.TensionImbalance()
		if imbalance > imbalanceMax {
			imbalanceMax = imbalance
		}
	}

	return imbalanceMax
}

// ensure solves the attachment positions to static equilibrium.
func (l *PositionLocator) ensure() bool {
	if l.hasSolved {
		return true
	}
	if len(l.PointsStructure) < 2 || len(l.PointsStructure) != len(l.Hardwares) {
		return false
	}

	l.initializeHardwarePoints()
	l.updatePointsCable()

	imbalance := math.Inf(1)
	iter := 0
	for positionPrecision <= math.Abs(imbalance) && iter < positionIterMax {
		imbalance = l.updatePointsHardware()
		l.updatePointsCable()
		iter++
	}

	l.hasSolved = true
	l.converged = iter < positionIterMax
	return true
}

// PointsCableAttachment returns every attachment's solved xyz position.
func (l *PositionLocator) PointsCableAttachment() ([]vector.Point3D, bool) {
	if !l.ensure() {
		return nil, false
	}
	return l.pointsCable, l.converged
}

// PointsCable samples num xyz points along the catenary of span
// indexSpan (between attachments indexSpan and indexSpan+1).
func (l *PositionLocator) PointsCable(indexSpan, num int) ([]vector.Point3D, bool) {
	if !l.ensure() {
		return nil, false
	}
	if indexSpan < 0 || indexSpan >= len(l.pointsCable)-1 || num < 2 {
		return nil, false
	}

	pointBack := l.pointsCable[indexSpan]
	pointAhead := l.pointsCable[indexSpan+1]
	horizontal := vector.Vector2D{X: pointAhead.X - pointBack.X, Y: pointAhead.Y - pointBack.Y}
	angleXY := horizontal.Angle(false)

	c := spanCatenary(pointBack, pointAhead, l.TensionHorizontal, l.WeightUnit)

	points := make([]vector.Point3D, 0, num)
	increment := 1.0 / float64(num-1)
	for i := 0; i < num; i++ {
		fraction := float64(i) * increment
		local, ok := c.Coordinate(fraction, true)
		if !ok {
			return nil, false
		}

		planar := vector.Vector2D{X: local.X, Y: local.Y}
		planar.Rotate(angleXY)

		points = append(points, vector.Point3D{
			X: pointBack.X + planar.X,
			Y: pointBack.Y + planar.Y,
			Z: pointBack.Z + local.Z,
		})
	}
	return points, true
}

// Validate reports whether the locator's inputs are physically sound.
func (l *PositionLocator) Validate(includeWarnings bool, messages *[]diagnostic.Message) bool {
	isValid := true

	if l.TensionHorizontal <= 0 {
		isValid = false
		diagnostic.Append(messages, "CABLE POSITION LOCATOR", "invalid horizontal tension")
	}
	if l.WeightUnit.X != 0 {
		isValid = false
		diagnostic.Append(messages, "CABLE POSITION LOCATOR", "invalid horizontal unit weight, it must equal zero")
	}
	if l.WeightUnit.Y < 0 {
		isValid = false
		diagnostic.Append(messages, "CABLE POSITION LOCATOR", "invalid transverse unit weight")
	}
	if l.WeightUnit.Z <= 0 {
		isValid = false
		diagnostic.Append(messages, "CABLE POSITION LOCATOR", "invalid vertical unit weight")
	}
	if len(l.PointsStructure) < 2 {
		isValid = false
		diagnostic.Append(messages, "CABLE POSITION LOCATOR", "invalid structure attachment points")
	}
	if !l.ensure() || !l.converged {
		isValid = false
		diagnostic.Append(messages, "CABLE POSITION LOCATOR", "error updating class")
	}

	return isValid
}
