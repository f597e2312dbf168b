// Package sagging supports field stringing operations: SagPositionCorrector
// compares a ruling-span catenary clipped rigidly at every attachment
// against the same cable hung over traveling pulleys that let tension
// equalize span to span, giving the sag correction and clipping offset
// each structure needs; TransitSagger finds the sighting angle from a
// fixed instrument position down to a catenary's low point.
package sagging

import (
	"math"

	"github.com/catenarytools/sagtension/internal/catenary"
	"github.com/catenarytools/sagtension/internal/diagnostic"
	"github.com/catenarytools/sagtension/internal/sentinel"
	"github.com/catenarytools/sagtension/internal/vector"
)

const secantIterMax = 100

// secant finds x such that f(x) == target, bracketed initially by
// [xLeft, xRight], stopping once the bracket narrows under tolX or a
// sample lands within tolY of target. The same three-point secant
// pattern used for sag-tension root finding elsewhere in this module.
func secant(xLeft, xRight, target, tolX, tolY float64, f func(float64) float64) (float64, bool) {
	left := vector.Point2D{X: xLeft, Y: f(xLeft)}
	right := vector.Point2D{X: xRight, Y: f(xRight)}
	var current vector.Point2D

	iter := 0
	for math.Abs(left.X-right.X) > tolX && math.Abs(current.Y-target) > tolY && iter <= secantIterMax {
		slope := (right.Y - left.Y) / (right.X - left.X)
		current.X = left.X + (target-left.Y)/slope
		current.Y = f(current.X)

		switch {
		case current.X < left.X:
			right = left
			left = current
		case current.X < right.X:
			if current.Y < target {
				right = current
			} else if current.Y > target {
				left = current
			}
		default:
			left = right
			right = current
		}
		iter++
	}

	if iter == 0 {
		return (left.X + right.X) / 2, true
	}
	if iter < secantIterMax {
		return current.X, true
	}
	return sentinel.Invalid, false
}

func sumLength(catenaries []catenary.Catenary3D) float64 {
	total := 0.0
	for i := range catenaries {
		length, _ := catenaries[i].Length()
		total += length
	}
	return total
}

// sagAtPosition returns the vertical distance between the chord and the
// curve at positionFraction, the same chord-minus-curve formula Sag()
// uses at the curve's low point.
func sagAtPosition(c catenary.Catenary3D, positionFraction float64) (float64, bool) {
	chord, ok := c.CoordinateChord(positionFraction, false)
	if !ok {
		return sentinel.Invalid, false
	}
	coord, ok := c.Coordinate(positionFraction, false)
	if !ok {
		return sentinel.Invalid, false
	}
	return chord.Z - coord.Z, true
}

// SagPositionCorrector builds the clipped (rigid-attachment) and
// pulleyed (free-running) shapes of a cable section strung across
// PointsAttachment, sharing TensionHorizontal and WeightUnit with the
// section's ruling-span catenary.
type SagPositionCorrector struct {
	TensionHorizontal float64
	WeightUnit        vector.Vector3D
	PointsAttachment  []vector.Point3D

	catenariesClipped  []catenary.Catenary3D
	catenariesPulleyed []catenary.Catenary3D
	lengthClipped      float64
	hasSolved          bool
	converged          bool
}

// solvePulleyStateTensions sets every pulleyed catenary's horizontal
// tension: the first span starts at tensionHorizontalStart, and every
// later span is solved so its own back support tension matches the
// tension the previous span carries at its ahead support.
func (c *SagPositionCorrector) solvePulleyStateTensions(tensionHorizontalStart float64) bool {
	var prev *catenary.Catenary3D
	for i := range c.catenariesPulleyed {
		current := &c.catenariesPulleyed[i]
		if i == 0 {
			current.SetTensionHorizontal(tensionHorizontalStart)
			prev = current
			continue
		}

		target, ok := prev.Tension(1)
		if !ok {
			return false
		}
		hGuess := prev.TensionHorizontal()
		h, ok := secant(hGuess, hGuess*1.10, target, 0.01, 0, func(h float64) float64 {
			current.SetTensionHorizontal(h)
			tension, _ := current.Tension(0)
			return tension
		})
		if !ok {
			return false
		}
		current.SetTensionHorizontal(h)
		prev = current
	}
	return true
}

// solvePulleyState finds the start-of-line horizontal tension that
// makes the pulleyed catenaries' summed length match the clipped
// catenaries' summed length.
func (c *SagPositionCorrector) solvePulleyState() bool {
	c.catenariesPulleyed = append([]catenary.Catenary3D(nil), c.catenariesClipped...)

	hStart := c.catenariesPulleyed[0].TensionHorizontal()
	h, ok := secant(hStart, hStart*1.10, c.lengthClipped, 0.1, 0.01, func(h float64) float64 {
		if !c.solvePulleyStateTensions(h) {
			return sentinel.Invalid
		}
		return sumLength(c.catenariesPulleyed)
	})
	if !ok {
		return false
	}

	return c.solvePulleyStateTensions(h)
}

// ensure builds the clipped catenaries from the attachment points and
// solves the pulleyed catenaries against them.
func (c *SagPositionCorrector) ensure() bool {
	if c.hasSolved {
		return true
	}
	if len(c.PointsAttachment) <= 1 {
		return false
	}

	n := len(c.PointsAttachment) - 1
	c.catenariesClipped = make([]catenary.Catenary3D, n)
	for i := 0; i < n; i++ {
		back := c.PointsAttachment[i]
		ahead := c.PointsAttachment[i+1]
		horizontal := vector.Vector2D{X: ahead.X - back.X, Y: ahead.Y - back.Y}

		span := catenary.Catenary3D{
			SpacingEndpoints: vector.Vector3D{X: horizontal.Magnitude(), Z: ahead.Z - back.Z},
			WeightUnit:       c.WeightUnit,
		}
		span.SetTensionHorizontal(c.TensionHorizontal)
		c.catenariesClipped[i] = span
	}
	c.lengthClipped = sumLength(c.catenariesClipped)

	c.hasSolved = true
	c.converged = c.solvePulleyState()
	return true
}

// ClippingOffsets returns the distance, measured along the cable from
// the first structure, each suspension structure's clipped position
// must be offset from its pulleyed position. The first and last
// offsets are always zero (dead-end structures don't clip).
func (c *SagPositionCorrector) ClippingOffsets() ([]float64, bool) {
	if !c.ensure() || !c.converged {
		return nil, false
	}

	n := len(c.catenariesClipped)
	offsets := make([]float64, n+1)
	var lengthClipped, lengthPulleyed float64
	for i := 1; i < n; i++ {
		lc, _ := c.catenariesClipped[i-1].Length()
		lp, _ := c.catenariesPulleyed[i-1].Length()
		lengthClipped += lc
		lengthPulleyed += lp
		offsets[i] = lengthClipped - lengthPulleyed
	}
	return offsets, true
}

// SagCorrections returns, for every span, the sag difference between
// the pulleyed and clipped shapes — the amount field measurements must
// be adjusted by before clipping.
func (c *SagPositionCorrector) SagCorrections() ([]float64, bool) {
	if !c.ensure() || !c.converged {
		return nil, false
	}

	n := len(c.catenariesClipped)
	corrections := make([]float64, n)
	for i := 0; i < n; i++ {
		sagClipped, ok := c.catenariesClipped[i].Sag()
		if !ok {
			return nil, false
		}
		sagPulleyed, ok := c.catenariesPulleyed[i].Sag()
		if !ok {
			return nil, false
		}
		corrections[i] = sagPulleyed - sagClipped
	}
	return corrections, true
}

// Validate reports whether the corrector's inputs are physically sound.
func (c *SagPositionCorrector) Validate(includeWarnings bool, messages *[]diagnostic.Message) bool {
	isValid := true
	if len(c.PointsAttachment) <= 1 {
		isValid = false
		diagnostic.Append(messages, "CABLE SAG POSITION CORRECTOR", "invalid attachment points")
	}
	if c.TensionHorizontal <= 0 {
		isValid = false
		diagnostic.Append(messages, "CABLE SAG POSITION CORRECTOR", "invalid horizontal tension")
	}
	if !c.ensure() || !c.converged {
		isValid = false
		diagnostic.Append(messages, "CABLE SAG POSITION CORRECTOR", "error updating class")
	}
	return isValid
}

// angleVertical returns the angle from horizontal, in degrees, of the
// line of sight from the point from to the point to.
func angleVertical(from, to vector.Point3D) float64 {
	horizontal := vector.Vector2D{X: to.X - from.X, Y: to.Y - from.Y}
	vertical := vector.Vector2D{X: horizontal.Magnitude(), Y: to.Z - from.Z}
	return vertical.Angle(true)
}

// linearY interpolates (or extrapolates) the line through (x1,y1) and
// (x2,y2) to the value at xTarget.
func linearY(x1, y1, x2, y2, xTarget float64) float64 {
	return y1 + (y2-y1)*(xTarget-x1)/(x2-x1)
}

// TransitSagger finds the catenary point with the smallest vertical
// sighting angle from a fixed transit position, the point a field crew
// levels a scope to when sagging a span. It recursively narrows a
// sampled position-fraction window until it brackets the minimum.
// Coordinates (the transit point included) are measured from the
// catenary's left support.
type TransitSagger struct {
	Catenary     catenary.Catenary3D
	PointTransit vector.Point3D

	positionLow      float64
	pointCatenaryLow vector.Point3D
	angleLow         float64
	hasSolved        bool
	converged        bool
}

// positionCatenaryLowAngle samples numPoints position fractions between
// back and ahead and returns the one with the smallest sighting angle.
func (t *TransitSagger) positionCatenaryLowAngle(back, ahead float64, numPoints int) float64 {
	precision := (ahead - back) / float64(numPoints-1)

	angleLow := math.Inf(1)
	positionLow := back
	for i := 0; i < numPoints; i++ {
		position := back + float64(i)*precision
		coordinate, ok := t.Catenary.Coordinate(position, true)
		if !ok {
			continue
		}
		angle := angleVertical(t.PointTransit, coordinate)
		if angle < angleLow {
			angleLow = angle
			positionLow = position
		}
	}
	return positionLow
}

// ensure narrows the low-angle position fraction by repeated 11-point
// sampling over a shrinking window, then checks the transit isn't
// plumb above the low point (an undefined sighting angle).
func (t *TransitSagger) ensure() bool {
	if t.hasSolved {
		return true
	}
	t.hasSolved = true

	const numPoints = 11
	back, ahead := 0.0, 1.0
	tolerance := (ahead - back) / 2
	position := back

	for iter := 0; tolerance > 0.00001 && iter < 10; iter++ {
		position = t.positionCatenaryLowAngle(back, ahead, numPoints)
		tolerance = (ahead - back) / (numPoints - 1)

		back = position - tolerance
		if back < 0 {
			back = 0
		}
		ahead = position + tolerance
		if ahead > 1 {
			ahead = 1
		}
	}

	if position == 0 || position == 1 {
		t.converged = false
		return false
	}

	coord, ok := t.Catenary.Coordinate(position, true)
	if !ok {
		t.converged = false
		return false
	}

	t.positionLow = position
	t.pointCatenaryLow = coord
	t.angleLow = angleVertical(t.PointTransit, t.pointCatenaryLow)
	t.converged = math.Round(t.angleLow) != -90
	return true
}

// AngleLow returns the vertical sighting angle to the catenary's low
// point, in degrees from horizontal.
func (t *TransitSagger) AngleLow() (float64, bool) {
	if !t.ensure() || !t.converged {
		return sentinel.Invalid, false
	}
	return t.angleLow, true
}

// FactorControl returns the ratio of the sag at the sighted low point to
// the catenary's maximum sag.
func (t *TransitSagger) FactorControl() (float64, bool) {
	if !t.ensure() || !t.converged {
		return sentinel.Invalid, false
	}
	sagLow, ok := sagAtPosition(t.Catenary, t.positionLow)
	if !ok {
		return sentinel.Invalid, false
	}
	sagMax, ok := t.Catenary.Sag()
	if !ok || sagMax == 0 {
		return sentinel.Invalid, false
	}
	return sagLow / sagMax, true
}

// PointCatenaryLow returns the catenary point with the smallest sighting
// angle from the transit.
func (t *TransitSagger) PointCatenaryLow() (vector.Point3D, bool) {
	if !t.ensure() || !t.converged {
		return vector.Point3D{}, false
	}
	return t.pointCatenaryLow, true
}

// PointTarget returns the point on the opposite side of the catenary's
// low point, along the transit's line of sight, at the same station as
// whichever endpoint the transit is not already past — the target a
// second crew member holds a rod at. Only defined when the transit sits
// in the catenary's x-z plane (PointTransit.Y == 0); a transit offset to
// the side has no single such target.
func (t *TransitSagger) PointTarget() (vector.Point3D, bool) {
	if !t.ensure() || !t.converged {
		return vector.Point3D{}, false
	}
	if t.PointTransit.Y != 0 {
		return vector.Point3D{}, false
	}

	var point vector.Point3D
	if t.PointTransit.X < t.pointCatenaryLow.X {
		point.X = t.Catenary.SpacingEndpoints.X
	} else {
		point.X = 0
	}

	point.Z = linearY(t.PointTransit.X, t.PointTransit.Z, t.pointCatenaryLow.X, t.pointCatenaryLow.Z, point.X)
	return point, true
}

// Validate reports whether the sagger's inputs are physically sound.
func (t *TransitSagger) Validate(includeWarnings bool, messages *[]diagnostic.Message) bool {
	isValid := t.Catenary.Validate(includeWarnings, messages)
	if t.PointTransit.Z > t.Catenary.SpacingEndpoints.Z {
		isValid = false
		diagnostic.Append(messages, "TRANSIT SAGGER", "invalid transit z coordinate")
	}
	if !t.ensure() || !t.converged {
		isValid = false
		diagnostic.Append(messages, "TRANSIT SAGGER", "error updating class")
	}
	return isValid
}
