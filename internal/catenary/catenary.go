// Package catenary models the hyperbolic-cosine curve a cable takes
// between two supports under its own unit weight, in both the planar
// (Catenary2D) and full 3D (Catenary3D, transverse load included) case.
package catenary

import (
	"math"

	"github.com/catenarytools/sagtension/internal/diagnostic"
	"github.com/catenarytools/sagtension/internal/sentinel"
	"github.com/catenarytools/sagtension/internal/unit"
	"github.com/catenarytools/sagtension/internal/vector"
)

// Direction selects which way a curve quantity (tangent, tension) points
// along the cable, independent of which endpoint it's measured from.
type Direction int

const (
	Negative Direction = iota
	Positive
)

const positionFractionIterMax = 100

// Catenary2D is a catenary confined to a vertical plane: horizontal
// endpoint spacing, vertical endpoint spacing, a horizontal tension, and
// a unit weight acting straight down.
type Catenary2D struct {
	SpacingEndpoints  vector.Vector2D
	TensionHorizontal float64
	WeightUnit        float64

	endLeft, endRight vector.Point2D
	hasEndpoints      bool
}

// ensure computes and caches the curve's endpoint coordinates, solved
// from the hyperbolic-identity equations relating endpoint spacing to
// catenary constant.
func (c *Catenary2D) ensure() bool {
	if c.hasEndpoints {
		return true
	}
	if c.TensionHorizontal <= 0 || c.WeightUnit <= 0 {
		return false
	}

	h, w := c.TensionHorizontal, c.WeightUnit
	a, b := c.SpacingEndpoints.X, c.SpacingEndpoints.Y
	if a == 0 {
		return false
	}
	z := (a / 2) / (h / w)

	shift := math.Asinh((b * z) / (a * math.Sinh(z)))

	c.endLeft.X = (h / w) * (shift - z)
	c.endLeft.Y = c.coordinateY(c.lengthFromOrigin(c.endLeft.X), Negative)

	c.endRight.X = (h / w) * (shift + z)
	c.endRight.Y = c.coordinateY(c.lengthFromOrigin(c.endRight.X), Positive)

	c.hasEndpoints = true
	return true
}

// Constant returns the catenary constant H/w.
func (c *Catenary2D) Constant() (float64, bool) {
	if !c.ensure() {
		return sentinel.Invalid, false
	}
	return c.TensionHorizontal / c.WeightUnit, true
}

// ConstantMinimum returns the smallest catenary constant that keeps a
// curve of the given endpoint spacing from folding back on itself.
func ConstantMinimum(spacingEndpoints float64) float64 {
	return spacingEndpoints / 2
}

func (c *Catenary2D) coordinateX(lengthOriginToPosition float64, direction Direction) float64 {
	h, w := c.TensionHorizontal, c.WeightUnit
	shift := math.Asinh(lengthOriginToPosition / (h / w))
	if direction == Negative {
		return -(h / w) * shift
	}
	return (h / w) * shift
}

func (c *Catenary2D) coordinateY(lengthOriginToPosition float64, direction Direction) float64 {
	x := c.coordinateX(lengthOriginToPosition, direction)
	h, w := c.TensionHorizontal, c.WeightUnit
	return (h / w) * (math.Cosh(x/(h/w)) - 1)
}

func (c *Catenary2D) lengthFromOrigin(x float64) float64 {
	h, w := c.TensionHorizontal, c.WeightUnit
	return math.Abs((h / w) * math.Sinh(x/(h/w)))
}

// Coordinate returns the point along the curve at positionFraction
// (0 at the left support, 1 at the right), in the catenary's own
// coordinate system (origin at the curve's low point) unless
// shiftedOrigin is set, which instead places the origin at the left
// support.
func (c *Catenary2D) Coordinate(positionFraction float64, shiftedOrigin bool) (vector.Point2D, bool) {
	if !c.ensure() {
		return vector.Point2D{}, false
	}

	lengthLeftToPosition := positionFraction * c.length()
	lengthOriginToLeft := c.lengthFromOrigin(c.endLeft.X)

	var lengthOriginToPosition float64
	var direction Direction

	switch {
	case c.endLeft.X < 0 && c.endRight.X < 0:
		lengthOriginToPosition = lengthOriginToLeft - lengthLeftToPosition
		direction = Positive
	case c.endLeft.X < 0 && c.endRight.X > 0:
		switch {
		case lengthLeftToPosition < lengthOriginToLeft:
			lengthOriginToPosition = lengthOriginToLeft - lengthLeftToPosition
			direction = Negative
		case lengthLeftToPosition == lengthOriginToLeft:
			lengthOriginToPosition = 0
			direction = Positive
		default:
			lengthOriginToPosition = lengthLeftToPosition - lengthOriginToLeft
			direction = Positive
		}
	default: // both endpoints at or right of origin
		lengthOriginToPosition = lengthOriginToLeft + lengthLeftToPosition
		direction = Positive
	}

	coordinate := vector.Point2D{
		X: c.coordinateX(lengthOriginToPosition, direction),
		Y: c.coordinateY(lengthOriginToPosition, direction),
	}

	if shiftedOrigin {
		coordinate.X -= c.endLeft.X
		coordinate.Y -= c.endLeft.Y
	}
	return coordinate, true
}

// CoordinateChord returns the point at positionFraction along the
// straight chord connecting the two supports (as opposed to the sagging
// curve itself).
func (c *Catenary2D) CoordinateChord(positionFraction float64, shiftedOrigin bool) (vector.Point2D, bool) {
	if !c.ensure() {
		return vector.Point2D{}, false
	}
	curve, ok := c.Coordinate(positionFraction, false)
	if !ok {
		return vector.Point2D{}, false
	}

	chord := vector.Point2D{
		X: curve.X,
		Y: c.endLeft.Y + (curve.X-c.endLeft.X)*(c.SpacingEndpoints.Y/c.SpacingEndpoints.X),
	}
	if shiftedOrigin {
		chord.X -= c.endLeft.X
		chord.Y -= c.endLeft.Y
	}
	return chord, true
}

func (c *Catenary2D) length() float64 {
	var lengthOriginToLeft, lengthOriginToRight float64
	if c.endLeft.X < 0 {
		lengthOriginToLeft = c.lengthFromOrigin(c.endLeft.X)
	} else {
		lengthOriginToLeft = -c.lengthFromOrigin(c.endLeft.X)
	}
	if c.endRight.X < 0 {
		lengthOriginToRight = -c.lengthFromOrigin(c.endRight.X)
	} else {
		lengthOriginToRight = c.lengthFromOrigin(c.endRight.X)
	}
	return lengthOriginToLeft + lengthOriginToRight
}

// Length returns the cable's total arc length along the curve.
func (c *Catenary2D) Length() (float64, bool) {
	if !c.ensure() {
		return sentinel.Invalid, false
	}
	return c.length(), true
}

// LengthSlack returns the curve length in excess of the straight-line
// endpoint spacing.
func (c *Catenary2D) LengthSlack() (float64, bool) {
	if !c.ensure() {
		return sentinel.Invalid, false
	}
	return c.length() - c.SpacingEndpoints.Magnitude(), true
}

// positionFraction bisects for the position fraction whose tangent angle
// (measured positive, i.e. toward the right support) equals
// tangentAngle, used to locate both the curve's low point (angle 0) and
// its sag point (angle equal to the chord's own tangent).
func (c *Catenary2D) positionFraction(tangentAngle float64) (float64, bool) {
	lower, upper := 0.0, 1.0
	target := sentinel.Invalid
	angleAtTarget := sentinel.Invalid

	iter := 0
	for iter < positionFractionIterMax &&
		(math.Abs(tangentAngle-angleAtTarget) > 0.001 || upper-lower > 0.0001) {

		target = (upper + lower) / 2
		angleAtTarget, _ = c.TangentAngle(target, Positive)

		switch {
		case angleAtTarget == tangentAngle:
			return target, true
		case angleAtTarget < tangentAngle:
			lower = target
		default:
			upper = target
		}
		iter++
	}

	if iter < positionFractionIterMax {
		return target, true
	}
	return sentinel.Invalid, false
}

// PositionFractionOrigin returns the position fraction of the curve's
// low point, where the tangent is horizontal.
func (c *Catenary2D) PositionFractionOrigin() (float64, bool) {
	if !c.ensure() {
		return sentinel.Invalid, false
	}
	return c.positionFraction(0)
}

// PositionFractionSagPoint returns the position fraction where the
// curve's tangent is parallel to the endpoint chord — the point of
// maximum sag relative to the chord.
func (c *Catenary2D) PositionFractionSagPoint() (float64, bool) {
	if !c.ensure() {
		return sentinel.Invalid, false
	}
	chordAngle := c.SpacingEndpoints.Angle(true)
	return c.positionFraction(chordAngle)
}

// Sag returns the vertical distance between the chord and the curve at
// the curve's sag point.
func (c *Catenary2D) Sag() (float64, bool) {
	if !c.ensure() {
		return sentinel.Invalid, false
	}
	fraction, ok := c.PositionFractionSagPoint()
	if !ok {
		return sentinel.Invalid, false
	}
	curve, _ := c.Coordinate(fraction, false)
	chord, _ := c.CoordinateChord(fraction, false)
	return chord.Y - curve.Y, true
}

// TangentAngle returns the curve's tangent angle at positionFraction, in
// degrees from horizontal, signed according to direction.
func (c *Catenary2D) TangentAngle(positionFraction float64, direction Direction) (float64, bool) {
	if !c.ensure() {
		return sentinel.Invalid, false
	}
	coordinate, _ := c.Coordinate(positionFraction, false)
	slope := math.Sinh(coordinate.X / (c.TensionHorizontal / c.WeightUnit))
	angle := unit.ConvertAngle(math.Atan(slope), unit.RadiansToDegrees, 1, true)
	if direction == Negative {
		angle = -angle
	}
	return angle, true
}

// TangentVector returns the unit tangent vector at positionFraction.
func (c *Catenary2D) TangentVector(positionFraction float64, direction Direction) (vector.Vector2D, bool) {
	if !c.ensure() {
		return vector.Vector2D{}, false
	}
	angle, _ := c.TangentAngle(positionFraction, direction)
	radians := unit.ConvertAngle(angle, unit.DegreesToRadians, 1, true)
	if direction == Negative {
		return vector.Vector2D{X: -math.Cos(radians), Y: math.Sin(radians)}, true
	}
	return vector.Vector2D{X: math.Cos(radians), Y: math.Sin(radians)}, true
}

// Tension returns the tension magnitude at positionFraction.
func (c *Catenary2D) Tension(positionFraction float64) (float64, bool) {
	if !c.ensure() {
		return sentinel.Invalid, false
	}
	coordinate, _ := c.Coordinate(positionFraction, false)
	return c.TensionHorizontal * math.Cosh(coordinate.X/(c.TensionHorizontal/c.WeightUnit)), true
}

// TensionVector returns the tension vector (magnitude and direction) at
// positionFraction.
func (c *Catenary2D) TensionVector(positionFraction float64, direction Direction) (vector.Vector2D, bool) {
	if !c.ensure() {
		return vector.Vector2D{}, false
	}
	tangent, _ := c.TangentVector(positionFraction, direction)
	magnitude, _ := c.Tension(positionFraction)
	tangent.Scale(magnitude)
	return tangent, true
}

// TensionAverage returns the tension averaged over the curve length. A
// numPoints of zero uses the Ehrenburg closed-form approximation;
// positive numPoints instead splits the curve into numPoints equal
// position-fraction steps and averages the tension sampled at the
// numPoints+1 step ends, both supports included.
func (c *Catenary2D) TensionAverage(numPoints int) (float64, bool) {
	if !c.ensure() {
		return sentinel.Invalid, false
	}

	if numPoints == 0 {
		h, w := c.TensionHorizontal, c.WeightUnit
		l := c.length()

		term1 := (h * h) / (2 * w * l)
		term2 := math.Sinh(c.endRight.X/(h/w)) * math.Cosh(c.endRight.X/(h/w))
		term3 := math.Sinh(c.endLeft.X/(h/w)) * math.Cosh(c.endLeft.X/(h/w))
		term4 := (c.endRight.X - c.endLeft.X) / (h / w)

		return term1 * (term2 - term3 + term4), true
	}

	sum := 0.0
	n := float64(numPoints)
	for i := 0; i <= numPoints; i++ {
		tension, _ := c.Tension(float64(i) / n)
		sum += tension
	}
	return sum / (n + 1), true
}

// TensionMax returns the tension at whichever endpoint is higher.
func (c *Catenary2D) TensionMax() (float64, bool) {
	if !c.ensure() {
		return sentinel.Invalid, false
	}
	if c.SpacingEndpoints.Y <= 0 {
		return c.Tension(0)
	}
	return c.Tension(1)
}

// Validate reports whether the catenary's inputs are physically sound,
// appending diagnostics to messages if non-nil. includeWarnings also
// flags values that are valid but outside the typical range for an
// overhead transmission line.
func (c *Catenary2D) Validate(includeWarnings bool, messages *[]diagnostic.Message) bool {
	isValid := true

	if c.TensionHorizontal <= 0 || (includeWarnings && c.TensionHorizontal > 100000) {
		isValid = false
		diagnostic.Append(messages, "CATENARY", "invalid horizontal tension")
	}

	if c.WeightUnit <= 0 || (includeWarnings && c.WeightUnit > 15) {
		isValid = false
		diagnostic.Append(messages, "CATENARY", "invalid unit weight")
	}

	if c.SpacingEndpoints.X <= 0 || (includeWarnings && c.SpacingEndpoints.X > 5000) {
		isValid = false
		diagnostic.Append(messages, "CATENARY", "invalid horizontal endpoint spacing")
	}

	if math.Abs(c.SpacingEndpoints.Y) >= 2000 {
		isValid = false
		diagnostic.Append(messages, "CATENARY", "invalid vertical endpoint spacing")
	}

	constantMin := ConstantMinimum(c.SpacingEndpoints.Magnitude())
	if constant, ok := c.Constant(); ok && constant < constantMin {
		isValid = false
		diagnostic.Append(messages, "CATENARY", "horizontal tension too low for endpoint spacing")
	}

	return isValid
}

// TransverseDirection selects which side of the xz support plane a
// transversely loaded cable swings toward. The zero value swings toward
// positive y.
type TransverseDirection int

const (
	TransversePositive TransverseDirection = iota
	TransverseNegative
)

// Catenary3D is a catenary allowed to swing transversely out of its
// support plane under a transverse (e.g. wind) component of unit load.
// Internally it reduces to an equivalent Catenary2D in the plane the
// cable actually sags within.
type Catenary3D struct {
	SpacingEndpoints    vector.Vector3D
	WeightUnit          vector.Vector3D
	DirectionTransverse TransverseDirection

	tensionHorizontal float64
	catenary2D        Catenary2D
	hasCatenary2D     bool
}

// SetTensionHorizontal sets the horizontal tension component shared with
// the underlying 2D catenary.
func (c *Catenary3D) SetTensionHorizontal(tensionHorizontal float64) {
	c.tensionHorizontal = tensionHorizontal
	c.hasCatenary2D = false
}

// TensionHorizontal returns the horizontal tension component.
func (c *Catenary3D) TensionHorizontal() float64 {
	return c.tensionHorizontal
}

// ensure derives the equivalent in-plane 2D catenary: the plane swung
// out by the ratio of vertical to total unit weight, with endpoint
// spacing projected accordingly.
func (c *Catenary3D) ensure() bool {
	if c.hasCatenary2D {
		return true
	}

	b := c.SpacingEndpoints.Z
	spacingMagnitude := c.SpacingEndpoints.Magnitude()
	verticalWeight := math.Abs(c.WeightUnit.Z)
	totalWeight := c.WeightUnit.Magnitude()
	if totalWeight == 0 || spacingMagnitude == 0 {
		return false
	}

	spacing2D := vector.Vector2D{
		Y: b * (verticalWeight / totalWeight),
	}
	radicand := spacingMagnitude*spacingMagnitude - spacing2D.Y*spacing2D.Y
	if radicand < 0 {
		return false
	}
	spacing2D.X = math.Sqrt(radicand)

	c.catenary2D = Catenary2D{
		SpacingEndpoints:  spacing2D,
		TensionHorizontal: c.tensionHorizontal,
		WeightUnit:        totalWeight,
	}
	c.hasCatenary2D = true
	return true
}

// Constant returns the catenary constant H/w.
func (c *Catenary3D) Constant() (float64, bool) {
	if !c.ensure() {
		return sentinel.Invalid, false
	}
	return c.catenary2D.Constant()
}

// Coordinate returns the 3D point along the curve at positionFraction.
// The transverse offset from the support plane is derived by rotating
// the planar chord-to-curve offset about the direction the unit weight
// vector actually points.
func (c *Catenary3D) Coordinate(positionFraction float64, shiftedOrigin bool) (vector.Point3D, bool) {
	if !c.ensure() {
		return vector.Point3D{}, false
	}

	chord2D, ok := c.catenary2D.CoordinateChord(positionFraction, shiftedOrigin)
	if !ok {
		return vector.Point3D{}, false
	}
	curve2D, _ := c.catenary2D.Coordinate(positionFraction, shiftedOrigin)

	offset := vector.Vector3D{Z: curve2D.Y - chord2D.Y}
	offset.Rotate(vector.ZY, c.WeightUnit.Angle(vector.ZY, false))
	if c.DirectionTransverse == TransversePositive {
		offset.Y = math.Abs(offset.Y)
	} else {
		offset.Y = -math.Abs(offset.Y)
	}

	return vector.Point3D{
		X: chord2D.X,
		Y: offset.Y,
		Z: chord2D.Y + offset.Z,
	}, true
}

// CoordinateChord returns the point at positionFraction along the
// straight line connecting the two supports.
func (c *Catenary3D) CoordinateChord(positionFraction float64, shiftedOrigin bool) (vector.Point3D, bool) {
	if !c.ensure() {
		return vector.Point3D{}, false
	}
	chord2D, ok := c.catenary2D.CoordinateChord(positionFraction, shiftedOrigin)
	if !ok {
		return vector.Point3D{}, false
	}
	return vector.Point3D{X: chord2D.X, Z: chord2D.Y}, true
}

// Length returns the cable's total arc length along the curve.
func (c *Catenary3D) Length() (float64, bool) {
	if !c.ensure() {
		return sentinel.Invalid, false
	}
	return c.catenary2D.Length()
}

// LengthSlack returns the curve length in excess of the straight-line
// endpoint spacing.
func (c *Catenary3D) LengthSlack() (float64, bool) {
	if !c.ensure() {
		return sentinel.Invalid, false
	}
	return c.catenary2D.LengthSlack()
}

// PositionFractionOrigin returns the position fraction of the curve's
// low point.
func (c *Catenary3D) PositionFractionOrigin() (float64, bool) {
	if !c.ensure() {
		return sentinel.Invalid, false
	}
	return c.catenary2D.PositionFractionOrigin()
}

// PositionFractionSagPoint returns the position fraction of maximum sag
// relative to the chord.
func (c *Catenary3D) PositionFractionSagPoint() (float64, bool) {
	if !c.ensure() {
		return sentinel.Invalid, false
	}
	return c.catenary2D.PositionFractionSagPoint()
}

// Sag returns the chord-to-curve vertical distance at the sag point.
func (c *Catenary3D) Sag() (float64, bool) {
	if !c.ensure() {
		return sentinel.Invalid, false
	}
	return c.catenary2D.Sag()
}

// SwingAngle returns the angle, in degrees, the cable's support plane
// swings away from vertical due to transverse unit load.
func (c *Catenary3D) SwingAngle() (float64, bool) {
	if !c.ensure() {
		return sentinel.Invalid, false
	}
	return unit.ConvertAngle(math.Atan(c.WeightUnit.Y/c.WeightUnit.Z), unit.RadiansToDegrees, 1, true), true
}

// TangentVector returns the 3D tangent unit vector at positionFraction,
// rotated out of the support plane for differing 2D/3D endpoint
// geometry and for transverse loading.
func (c *Catenary3D) TangentVector(positionFraction float64, direction Direction) (vector.Vector3D, bool) {
	if !c.ensure() {
		return vector.Vector3D{}, false
	}

	tangent2D, ok := c.catenary2D.TangentVector(positionFraction, direction)
	if !ok {
		return vector.Vector3D{}, false
	}
	tangent := vector.Vector3D{X: tangent2D.X, Z: tangent2D.Y}

	if c.SpacingEndpoints.Z != 0 && c.WeightUnit.Y != 0 {
		angle2D := c.catenary2D.SpacingEndpoints.Angle(true)
		angle3D := c.SpacingEndpoints.Angle(vector.XZ, true)
		tangent.Rotate(vector.XZ, angle3D-angle2D)
	}

	if c.WeightUnit.Y != 0 {
		rotation := unit.ConvertAngle(math.Atan(c.WeightUnit.Y/c.WeightUnit.Z), unit.RadiansToDegrees, 1, true)
		if c.WeightUnit.Y > 0 {
			rotation = -rotation
		}
		if c.DirectionTransverse == TransverseNegative {
			rotation = -rotation
		}
		tangent.Rotate(vector.YZ, rotation)
	}

	return tangent, true
}

// TangentAngleTransverse returns the tangent's angle out of the support
// plane, within the ZY plane, in degrees.
func (c *Catenary3D) TangentAngleTransverse(positionFraction float64, direction Direction) (float64, bool) {
	tangent, ok := c.TangentVector(positionFraction, direction)
	if !ok {
		return sentinel.Invalid, false
	}
	tangent.Y = math.Abs(tangent.Y)
	tangent.Z = math.Abs(tangent.Z)
	return tangent.Angle(vector.ZY, true), true
}

// TangentAngleVertical returns the tangent's angle within the XZ plane,
// measured from the horizontal x-axis, in degrees.
func (c *Catenary3D) TangentAngleVertical(positionFraction float64, direction Direction) (float64, bool) {
	tangent, ok := c.TangentVector(positionFraction, direction)
	if !ok {
		return sentinel.Invalid, false
	}
	tangent.X = math.Abs(tangent.X)
	return tangent.Angle(vector.XZ, true), true
}

// Tension returns the tension magnitude at positionFraction.
func (c *Catenary3D) Tension(positionFraction float64) (float64, bool) {
	if !c.ensure() {
		return sentinel.Invalid, false
	}
	return c.catenary2D.Tension(positionFraction)
}

// TensionVector returns the 3D tension vector at positionFraction.
func (c *Catenary3D) TensionVector(positionFraction float64, direction Direction) (vector.Vector3D, bool) {
	tension, ok := c.Tension(positionFraction)
	if !ok {
		return vector.Vector3D{}, false
	}
	tangent, ok := c.TangentVector(positionFraction, direction)
	if !ok {
		return vector.Vector3D{}, false
	}
	tangent.Scale(tension)
	return tangent, true
}

// TensionAverage returns the tension averaged along the curve; see
// Catenary2D.TensionAverage for the numPoints convention.
func (c *Catenary3D) TensionAverage(numPoints int) (float64, bool) {
	if !c.ensure() {
		return sentinel.Invalid, false
	}
	return c.catenary2D.TensionAverage(numPoints)
}

// TensionMax returns the tension at whichever endpoint is higher.
func (c *Catenary3D) TensionMax() (float64, bool) {
	if !c.ensure() {
		return sentinel.Invalid, false
	}
	return c.catenary2D.TensionMax()
}

// Validate reports whether the 3D catenary's inputs are physically
// sound. Unlike Catenary2D, the endpoint spacing and unit weight here
// are full 3D vectors; transverse endpoint spacing must be zero (all
// transverse offset comes from load-induced swing, not support
// placement), and the weight vector must have no horizontal component.
func (c *Catenary3D) Validate(includeWarnings bool, messages *[]diagnostic.Message) bool {
	isValid := true

	if c.SpacingEndpoints.X <= 0 || (includeWarnings && c.SpacingEndpoints.X > 5000) {
		isValid = false
		diagnostic.Append(messages, "CATENARY", "invalid horizontal endpoint spacing")
	}
	if c.SpacingEndpoints.Y != 0 {
		isValid = false
		diagnostic.Append(messages, "CATENARY", "transverse endpoint spacing must equal zero")
	}
	if math.Abs(c.SpacingEndpoints.Z) >= 2000 {
		isValid = false
		diagnostic.Append(messages, "CATENARY", "invalid vertical endpoint spacing")
	}
	if c.WeightUnit.X != 0 {
		isValid = false
		diagnostic.Append(messages, "CATENARY", "horizontal unit weight must equal zero")
	}
	if c.WeightUnit.Y < 0 || (includeWarnings && c.WeightUnit.Y > 15) {
		isValid = false
		diagnostic.Append(messages, "CATENARY", "invalid transverse unit weight")
	}
	if c.WeightUnit.Z <= 0 || (includeWarnings && c.WeightUnit.Z > 25) {
		isValid = false
		diagnostic.Append(messages, "CATENARY", "invalid vertical unit weight")
	}

	return isValid
}
