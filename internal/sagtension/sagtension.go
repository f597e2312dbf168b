// Package sagtension solves for the unloaded (no-load, reference)
// length of an installed cable, and the inverse: the horizontal tension
// a given unloaded length produces once strung and loaded to some
// weather case. Reloader composes the two to move a cable
// from one loaded condition to another.
package sagtension

import (
	"math"

	"github.com/catenarytools/sagtension/internal/catenary"
	"github.com/catenarytools/sagtension/internal/elongation"
	"github.com/catenarytools/sagtension/internal/sentinel"
	"github.com/catenarytools/sagtension/internal/vector"
)

const (
	rootIterMax   = 100
	rootTolerance = 0.01
)

// falsePosition finds x such that f(x) == 0, bracketed initially by
// [xLeft, 2*xLeft], using the same three-point false-position /
// bisection hybrid the reference loader uses: bisect when the root is
// bracketed with the target strictly between the two samples, otherwise
// extrapolate along the secant line.
func falsePosition(xLeft float64, f func(float64) float64) (float64, bool) {
	left := vector.Point2D{X: xLeft, Y: f(xLeft)}
	right := vector.Point2D{X: 2 * xLeft, Y: f(2 * xLeft)}

	for iter := 0; iter < rootIterMax; iter++ {
		if math.Abs(left.X-right.X) <= rootTolerance {
			return (left.X + right.X) / 2, true
		}

		var current vector.Point2D
		if left.Y > 0 && 0 > right.Y {
			current.X = (left.X + right.X) / 2
		} else {
			slope := (right.Y - left.Y) / (right.X - left.X)
			current.X = left.X - left.Y/slope
		}
		current.Y = f(current.X)

		switch {
		case current.X < left.X:
			right = left
			left = current
		case current.X < right.X:
			if current.Y < 0 {
				right = current
			} else if current.Y > 0 {
				left = current
			} else {
				return current.X, true
			}
		default:
			left = right
			right = current
		}
	}

	return sentinel.Invalid, false
}

// Unloader derives the unloaded (no-load) length of a cable currently
// installed as catenary, analyzed under model — the model's temperature
// and stretch describe the cable's present historical state.
type Unloader struct {
	Catenary catenary.Catenary3D
	Model    elongation.Model
}

// LengthUnloaded returns the length the cable would relax to if all
// tension were removed, strain-compatible with the installed length.
func (u Unloader) LengthUnloaded() (float64, bool) {
	lengthLoaded, ok := u.Catenary.Length()
	if !ok {
		return sentinel.Invalid, false
	}
	loadLoaded, ok := u.Catenary.TensionAverage(0)
	if !ok {
		return sentinel.Invalid, false
	}

	strainer := elongation.Strainer{
		LengthStart: lengthLoaded,
		ModelStart:  u.Model,
		LoadStart:   loadLoaded,
		ModelFinish: u.Model,
		LoadFinish:  0,
	}
	length, _, _, ok := strainer.LengthFinish()
	return length, ok
}

// Loader solves for the horizontal tension a cable of LengthUnloaded
// (analyzed by Model once loaded) produces once strung across
// CatenaryTemplate's geometry and unit weight.
type Loader struct {
	LengthUnloaded   float64
	Model            elongation.Model
	CatenaryTemplate catenary.Catenary3D
}

// catenaryAt returns CatenaryTemplate with its horizontal tension set to h.
func (l Loader) catenaryAt(h float64) catenary.Catenary3D {
	c := l.CatenaryTemplate
	c.SetTensionHorizontal(h)
	return c
}

// lengthDifference is catenary_length(h) - cable_length(h); its root is
// the equilibrium horizontal tension.
func (l Loader) lengthDifference(h float64) float64 {
	c := l.catenaryAt(h)

	lengthCatenary, ok := c.Length()
	if !ok {
		return sentinel.Invalid
	}
	loadFinish, ok := c.TensionAverage(0)
	if !ok {
		return sentinel.Invalid
	}

	strainer := elongation.Strainer{
		LengthStart: l.LengthUnloaded,
		ModelStart:  l.Model,
		LoadStart:   0,
		ModelFinish: l.Model,
		LoadFinish:  loadFinish,
	}
	lengthCable, _, _, _ := strainer.LengthFinish()

	return lengthCatenary - lengthCable
}

// TensionHorizontal solves for the horizontal tension by false-position
// root search, bracketed initially by the catenary's minimum constant
// and twice that.
func (l Loader) TensionHorizontal() (float64, bool) {
	spacingMagnitude := l.CatenaryTemplate.SpacingEndpoints.Magnitude()
	weightMagnitude := l.CatenaryTemplate.WeightUnit.Magnitude()
	hMin := catenary.ConstantMinimum(spacingMagnitude) * weightMagnitude

	return falsePosition(hMin, l.lengthDifference)
}

// Catenary returns CatenaryTemplate with its horizontal tension solved.
func (l Loader) Catenary() (catenary.Catenary3D, bool) {
	h, ok := l.TensionHorizontal()
	if !ok {
		return catenary.Catenary3D{}, false
	}
	return l.catenaryAt(h), true
}

// Reloader moves a cable from a reference loaded condition to a
// different (reloaded) weather case and elongation state, composing an
// Unloader on the reference and a Loader on the reloaded state.
type Reloader struct {
	ReferenceCatenary  catenary.Catenary3D
	ReferenceModel     elongation.Model
	ReloadedModel      elongation.Model
	ReloadedWeightUnit vector.Vector3D
}

// result holds the reloader's solved outputs; each accessor solves anew.
type result struct {
	catenary       catenary.Catenary3D
	lengthUnloaded float64
}

func (r Reloader) solve() (result, bool) {
	unloader := Unloader{Catenary: r.ReferenceCatenary, Model: r.ReferenceModel}
	lengthUnloaded, ok := unloader.LengthUnloaded()
	if !ok {
		return result{}, false
	}

	template := r.ReferenceCatenary
	template.WeightUnit = r.ReloadedWeightUnit

	loader := Loader{
		LengthUnloaded:   lengthUnloaded,
		Model:            r.ReloadedModel,
		CatenaryTemplate: template,
	}
	reloaded, ok := loader.Catenary()
	if !ok {
		return result{}, false
	}

	return result{catenary: reloaded, lengthUnloaded: lengthUnloaded}, true
}

// CatenaryReloaded returns the cable's catenary under the reloaded
// condition.
func (r Reloader) CatenaryReloaded() (catenary.Catenary3D, bool) {
	res, ok := r.solve()
	return res.catenary, ok
}

// LengthUnloaded returns the reference cable's unloaded length.
func (r Reloader) LengthUnloaded() (float64, bool) {
	res, ok := r.solve()
	return res.lengthUnloaded, ok
}

// TensionHorizontal returns the solved horizontal tension under the
// reloaded condition.
func (r Reloader) TensionHorizontal() (float64, bool) {
	res, ok := r.solve()
	if !ok {
		return sentinel.Invalid, false
	}
	return res.catenary.TensionHorizontal(), true
}
