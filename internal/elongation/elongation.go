// Package elongation models how a cable component (and, combined, a
// whole cable) stretches under load and temperature: a piecewise region
// model — compressed, stretched, polynomial, extrapolated — inverted
// either in closed form or by Newton iteration on the component's
// empirical polynomial.
package elongation

import (
	"math"
	"sort"

	"github.com/catenarytools/sagtension/internal/cable"
	"github.com/catenarytools/sagtension/internal/diagnostic"
	"github.com/catenarytools/sagtension/internal/polynomial"
	"github.com/catenarytools/sagtension/internal/sentinel"
)

const strainDecimalPrecision = 6

// ComponentModel is a single cable component (core or shell) evaluated
// at a specific temperature and stretch history.
type ComponentModel struct {
	Component            cable.Component
	Temperature          float64
	TemperatureReference float64
	Active               cable.PolynomialType
	LoadStretch          float64
}

// thermalStrain is the strain-axis shift from analyzing the component
// away from its polynomial's reference temperature.
func (m ComponentModel) thermalStrain() float64 {
	return m.Component.CoefficientExpansionLinearThermal * (m.Temperature - m.TemperatureReference)
}

func (m ComponentModel) polynomial() polynomial.Polynomial {
	return polynomial.New(m.Component.PolynomialCoefficients(m.Active))
}

func (m ComponentModel) loadLimit() float64 {
	return m.Component.LoadLimit(m.Active)
}

// boundaries are the three strains separating the component's four load
// regions, evaluated at the model's current state.
type boundaries struct {
	unloaded  float64
	stretched float64
	polyLimit float64
}

func (m ComponentModel) boundaries() boundaries {
	thermal := m.thermalStrain()
	poly := m.polynomial()

	var stretched float64
	if m.LoadStretch == 0 {
		stretched = thermal
	} else {
		strainPercent, _ := poly.X(m.LoadStretch, strainDecimalPrecision, 0)
		stretched = strainPercent/100 + thermal
	}

	unloaded := stretched - m.LoadStretch/m.Component.ModulusTensionElasticArea

	limitPercent, _ := poly.X(m.loadLimit(), strainDecimalPrecision, stretched*100)
	polyLimit := limitPercent/100 + thermal

	return boundaries{unloaded: unloaded, stretched: stretched, polyLimit: polyLimit}
}

// Load returns the component's load at strain.
func (m ComponentModel) Load(strain float64) float64 {
	b := m.boundaries()
	thermal := m.thermalStrain()
	poly := m.polynomial()

	switch {
	case strain < b.unloaded:
		return m.Component.ModulusCompressionElasticArea * (strain - b.unloaded)
	case strain <= b.stretched:
		return m.Component.ModulusTensionElasticArea * (strain - b.unloaded)
	case strain <= b.polyLimit:
		return poly.Y((strain - thermal) * 100)
	default:
		loadAtLimit := poly.Y((b.polyLimit - thermal) * 100)
		return loadAtLimit + m.Component.ModulusTensionElasticArea*(strain-b.polyLimit)
	}
}

// Strain inverts Load, returning the strain at which the component
// carries the given load.
func (m ComponentModel) Strain(load float64) (float64, bool) {
	b := m.boundaries()
	thermal := m.thermalStrain()
	poly := m.polynomial()

	loadAtStretched := m.Component.ModulusTensionElasticArea * (b.stretched - b.unloaded)
	loadAtLimit := poly.Y((b.polyLimit - thermal) * 100)

	switch {
	case load < 0:
		return b.unloaded + load/m.Component.ModulusCompressionElasticArea, true
	case load <= loadAtStretched:
		return b.unloaded + load/m.Component.ModulusTensionElasticArea, true
	case load <= loadAtLimit:
		strainPercent, ok := poly.X(load, strainDecimalPrecision, b.stretched*100)
		return strainPercent/100 + thermal, ok
	default:
		return b.polyLimit + (load-loadAtLimit)/m.Component.ModulusTensionElasticArea, true
	}
}

// Validate reports whether the component's polynomial behaves sanely:
// it should pass near the origin in percent-strain space and be
// monotonically increasing across its valid region.
func (m ComponentModel) Validate(includeWarnings bool, messages *[]diagnostic.Message) bool {
	isValid := m.Component.Validate(includeWarnings, messages)

	poly := m.polynomial()
	if math.Abs(poly.Y(0)) > 1 {
		isValid = false
		diagnostic.Append(messages, "ELONGATION MODEL", "polynomial does not pass near the origin")
	}

	b := m.boundaries()
	if !(b.unloaded <= b.stretched && b.stretched <= b.polyLimit) {
		isValid = false
		diagnostic.Append(messages, "ELONGATION MODEL", "region boundary strains are out of order")
	}
	if includeWarnings && b.polyLimit < b.stretched {
		diagnostic.Append(messages, "ELONGATION MODEL", "polynomial load limit is below the stretch load")
	}

	const samples = 10
	prev := math.Inf(-1)
	for i := 0; i <= samples; i++ {
		strainPercent := (b.polyLimit-b.stretched)*float64(i)/samples*100 + (b.stretched-m.thermalStrain())*100
		y := poly.Y(strainPercent)
		if y < prev {
			isValid = false
			diagnostic.Append(messages, "ELONGATION MODEL", "polynomial is not monotonic increasing")
			break
		}
		prev = y
	}

	return isValid
}

// Model couples a core and a shell component under the equal-strain
// assumption: both carry the same strain, and their loads sum.
type Model struct {
	Core  ComponentModel
	Shell ComponentModel
}

// NewModel builds a combined model for cable c analyzed at state s: both
// components are evaluated at s.Temperature against s.PolynomialType,
// with s.LoadStretch (applied at s.TemperatureStretch) distributed
// between them by StretchDistribution.
func NewModel(c cable.Cable, s cable.State) (Model, bool) {
	core := ComponentModel{
		Component:            c.ComponentCore,
		Temperature:          s.Temperature,
		TemperatureReference: c.TemperaturePropertiesComponents,
		Active:               s.PolynomialType,
	}
	shell := ComponentModel{
		Component:            c.ComponentShell,
		Temperature:          s.Temperature,
		TemperatureReference: c.TemperaturePropertiesComponents,
		Active:               s.PolynomialType,
	}

	if s.LoadStretch == 0 {
		return Model{Core: core, Shell: shell}, true
	}

	coreStretch, shellStretch, ok := StretchDistribution(c.ComponentCore, c.ComponentShell, s.PolynomialType, s.LoadStretch, s.TemperatureStretch)
	if !ok {
		return Model{}, false
	}
	core.LoadStretch = coreStretch
	shell.LoadStretch = shellStretch
	return Model{Core: core, Shell: shell}, true
}

// Load returns the combined load at strain.
func (m Model) Load(strain float64) float64 {
	return m.Core.Load(strain) + m.Shell.Load(strain)
}

// Strain solves for the strain at which the combined load equals the
// target, bisecting across a table of region-boundary strains drawn
// from both components so that slope discontinuities are crossed
// carefully rather than jumped over by a plain secant search.
func (m Model) Strain(load float64) (float64, bool) {
	bc := m.Core.boundaries()
	bs := m.Shell.boundaries()

	candidates := []float64{
		bc.unloaded, bc.stretched, bc.polyLimit,
		bs.unloaded, bs.stretched, bs.polyLimit,
	}
	sort.Float64s(candidates)

	lo := candidates[0] - 0.05
	hi := candidates[len(candidates)-1] + 0.05
	for _, c := range candidates {
		if m.Load(c) <= load {
			lo = c
		}
	}
	for i := len(candidates) - 1; i >= 0; i-- {
		if m.Load(candidates[i]) >= load {
			hi = candidates[i]
		}
	}
	if lo > hi {
		lo, hi = hi, lo
	}

	const iterMax = 100
	for iter := 0; iter < iterMax; iter++ {
		mid := (lo + hi) / 2
		y := m.Load(mid)
		if math.Abs(y-load) < 1e-6 {
			return mid, true
		}
		if y < load {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, true
}

// StretchDistribution bootstraps the core and shell components' stretch
// loads from a whole-cable stretch load loadStretch applied at
// temperature temperatureStretch: both components are put into the
// stretch thermal state with their stretch loads cleared, the combined
// strain at loadStretch is solved, and each component's personal
// stretch load is read back off that shared strain. This preserves
// strain compatibility while splitting the cable-level stretch between
// components.
func StretchDistribution(core, shell cable.Component, active cable.PolynomialType, loadStretch, temperatureStretch float64) (coreLoadStretch, shellLoadStretch float64, ok bool) {
	bootstrap := Model{
		Core:  ComponentModel{Component: core, Temperature: temperatureStretch, TemperatureReference: temperatureStretch, Active: active},
		Shell: ComponentModel{Component: shell, Temperature: temperatureStretch, TemperatureReference: temperatureStretch, Active: active},
	}

	strain, ok := bootstrap.Strain(loadStretch)
	if !ok {
		return sentinel.Invalid, sentinel.Invalid, false
	}

	coreLoadStretch = bootstrap.Core.Load(strain)
	shellLoadStretch = bootstrap.Shell.Load(strain)
	return coreLoadStretch, shellLoadStretch, true
}

// Strainer computes the finish length of a cable segment given its
// starting length and elongation-model states (and loads) at the start
// and finish of a transition — e.g. before and after reloading to a new
// weather case.
type Strainer struct {
	LengthStart float64
	ModelStart  Model
	LoadStart   float64
	ModelFinish Model
	LoadFinish  float64
}

// LengthFinish returns the finish length, together with the start and
// finish strains it was computed from, for diagnostics.
func (s Strainer) LengthFinish() (lengthFinish, strainStart, strainFinish float64, ok bool) {
	strainStart, ok1 := s.ModelStart.Strain(s.LoadStart)
	strainFinish, ok2 := s.ModelFinish.Strain(s.LoadFinish)
	if !ok1 || !ok2 {
		return sentinel.Invalid, sentinel.Invalid, sentinel.Invalid, false
	}

	lengthFinish = s.LengthStart * (1 + (strainFinish - strainStart))
	return lengthFinish, strainStart, strainFinish, true
}
