// Package linecable ties a cable's material model to a specific ruling
// span and constraint anchor, and reloads it to arbitrary weather cases:
// Converter builds a catenary consistent with a constraint, Reloader
// performs the stretch-bootstrap reload a LineCable's constraint
// condition requires, and Sagger finds which of several design
// constraints controls.
package linecable

import (
	"math"

	"github.com/catenarytools/sagtension/internal/cable"
	"github.com/catenarytools/sagtension/internal/catenary"
	"github.com/catenarytools/sagtension/internal/diagnostic"
	"github.com/catenarytools/sagtension/internal/elongation"
	"github.com/catenarytools/sagtension/internal/sagtension"
	"github.com/catenarytools/sagtension/internal/sentinel"
	"github.com/catenarytools/sagtension/internal/vector"
	"github.com/catenarytools/sagtension/internal/weather"
)

// Condition identifies the historical stretch state a constraint, or a
// reload target, refers to.
type Condition int

const (
	Initial Condition = iota
	CreepCondition
	LoadCondition
)

// LimitType selects which quantity a Constraint's Limit constrains.
type LimitType int

const (
	HorizontalTensionLimit LimitType = iota
	CatenaryConstantLimit
	SupportTensionLimit
)

// Constraint anchors a line cable's sag-tension state: under WeatherCase
// at Condition, Limit (interpreted per LimitType) holds.
type Constraint struct {
	WeatherCase weather.LoadCase
	Condition   Condition
	Limit       float64
	LimitType   LimitType
}

// Connection names a line-structure and one of its attachment indexes a
// line cable is strung between.
type Connection struct {
	Structure       string
	AttachmentIndex int
}

// LineCable ties a cable's material model to a ruling span, a
// constraint anchor, and the weather cases its creep and load stretch
// are evaluated under.
type LineCable struct {
	Cable                   cable.Cable
	Constraint              Constraint
	CreepStretchWeatherCase weather.LoadCase
	LoadStretchWeatherCase  weather.LoadCase
	SpacingEndpoints        vector.Vector3D
	Connections             []Connection
}

// Validate reports whether the line cable's inputs are physically sound.
func (lc LineCable) Validate(includeWarnings bool, messages *[]diagnostic.Message) bool {
	isValid := lc.Cable.Validate(includeWarnings, messages)
	if lc.Constraint.Limit <= 0 {
		isValid = false
		diagnostic.Append(messages, "LINE CABLE", "invalid constraint limit")
	}
	if lc.SpacingEndpoints.X <= 0 {
		isValid = false
		diagnostic.Append(messages, "LINE CABLE", "invalid ruling span spacing")
	}
	return isValid
}

// Converter builds a Catenary3D consistent with a constraint.
type Converter struct {
	Cable            cable.Cable
	SpacingEndpoints vector.Vector3D
}

// Build solves the catenary for the given weather case and limit.
func (conv Converter) Build(weatherCase weather.LoadCase, limit float64, limitType LimitType) (catenary.Catenary3D, bool) {
	vertical, transverse := weather.UnitLoad(conv.Cable, weatherCase)
	weightUnit := vector.Vector3D{Y: transverse, Z: vertical}

	c := catenary.Catenary3D{
		SpacingEndpoints: conv.SpacingEndpoints,
		WeightUnit:       weightUnit,
	}

	switch limitType {
	case HorizontalTensionLimit:
		c.SetTensionHorizontal(limit)
		return c, true
	case CatenaryConstantLimit:
		c.SetTensionHorizontal(limit * weightUnit.Magnitude())
		return c, true
	default: // SupportTensionLimit
		lowBound := 0.5 * weightUnit.Magnitude() * conv.SpacingEndpoints.Magnitude()
		h, ok := bisect(lowBound, limit, func(h float64) float64 {
			c.SetTensionHorizontal(h)
			tensionMax, _ := c.TensionMax()
			return tensionMax - limit
		})
		if !ok {
			return catenary.Catenary3D{}, false
		}
		c.SetTensionHorizontal(h)
		return c, true
	}
}

// bisect finds x in (lo, hi] with f(x) == 0, assuming f is monotonic
// increasing in x.
func bisect(lo, hi float64, f func(float64) float64) (float64, bool) {
	const iterMax = 100
	const tolerance = 0.01

	flo, fhi := f(lo), f(hi)
	if flo > 0 || fhi < 0 {
		return sentinel.Invalid, false
	}

	for iter := 0; iter < iterMax && hi-lo > tolerance; iter++ {
		mid := (lo + hi) / 2
		fmid := f(mid)
		if fmid < 0 {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2, true
}

// Reloader computes reloaded catenaries for a LineCable's constraint
// anchor, performing the stretch bootstrap its constraint condition
// requires.
type Reloader struct {
	LineCable LineCable
}

// Result is everything a reload produces: the reloaded catenary, its
// horizontal and average tension, and the tension carried by each
// component.
type Result struct {
	Catenary               catenary.Catenary3D
	TensionHorizontal      float64
	TensionAverage         float64
	TensionAverageCore     float64
	TensionAverageShell    float64
	TensionHorizontalCore  float64
	TensionHorizontalShell float64
}

// stretchLoads returns the creep and load stretch loads: the average
// tension of the constraint catenary, analyzed under referenceModel, once
// reloaded to the creep and load stretch weather cases on zero-stretch
// creep and load-strain models.
func (r Reloader) stretchLoads(constraintCatenary catenary.Catenary3D, referenceModel elongation.Model) (creepLoad, loadLoad float64, ok bool) {
	lc := r.LineCable

	creepModel, ok := elongation.NewModel(lc.Cable, cable.State{
		Temperature:    lc.CreepStretchWeatherCase.TemperatureCable,
		PolynomialType: cable.Creep,
	})
	if !ok {
		return sentinel.Invalid, sentinel.Invalid, false
	}
	creepVertical, creepTransverse := weather.UnitLoad(lc.Cable, lc.CreepStretchWeatherCase)
	reloadCreep := sagtension.Reloader{
		ReferenceCatenary:  constraintCatenary,
		ReferenceModel:     referenceModel,
		ReloadedModel:      creepModel,
		ReloadedWeightUnit: vector.Vector3D{Y: creepTransverse, Z: creepVertical},
	}
	creepCatenary, ok := reloadCreep.CatenaryReloaded()
	if !ok {
		return sentinel.Invalid, sentinel.Invalid, false
	}
	creepLoad, _ = creepCatenary.TensionAverage(0)

	loadModel, ok := elongation.NewModel(lc.Cable, cable.State{
		Temperature:    lc.LoadStretchWeatherCase.TemperatureCable,
		PolynomialType: cable.LoadStrain,
	})
	if !ok {
		return sentinel.Invalid, sentinel.Invalid, false
	}
	loadVertical, loadTransverse := weather.UnitLoad(lc.Cable, lc.LoadStretchWeatherCase)
	reloadLoad := sagtension.Reloader{
		ReferenceCatenary:  constraintCatenary,
		ReferenceModel:     referenceModel,
		ReloadedModel:      loadModel,
		ReloadedWeightUnit: vector.Vector3D{Y: loadTransverse, Z: loadVertical},
	}
	loadCatenary, ok := reloadLoad.CatenaryReloaded()
	if !ok {
		return sentinel.Invalid, sentinel.Invalid, false
	}
	loadLoad, _ = loadCatenary.TensionAverage(0)

	return creepLoad, loadLoad, true
}

// Reload computes the catenary and tensions for the line cable reloaded
// to reloadedCase at reloadedCondition.
func (r Reloader) Reload(reloadedCase weather.LoadCase, reloadedCondition Condition) (Result, bool) {
	lc := r.LineCable

	conv := Converter{Cable: lc.Cable, SpacingEndpoints: lc.SpacingEndpoints}
	constraintCatenary, ok := conv.Build(lc.Constraint.WeatherCase, lc.Constraint.Limit, lc.Constraint.LimitType)
	if !ok {
		return Result{}, false
	}

	var stretchLoad float64
	if lc.Constraint.Condition != Initial {
		stretchWeatherCase := lc.CreepStretchWeatherCase
		stretchActive := cable.Creep
		if lc.Constraint.Condition == LoadCondition {
			stretchWeatherCase = lc.LoadStretchWeatherCase
			stretchActive = cable.LoadStrain
		}
		vertical, transverse := weather.UnitLoad(lc.Cable, stretchWeatherCase)
		stretchWeight := vector.Vector3D{Y: transverse, Z: vertical}
		stretchModelTemplate, ok := elongation.NewModel(lc.Cable, cable.State{
			Temperature:    stretchWeatherCase.TemperatureCable,
			PolynomialType: stretchActive,
		})
		if !ok {
			return Result{}, false
		}

		fixedPoint := func(loadStretch float64) float64 {
			referenceModel, ok := elongation.NewModel(lc.Cable, cable.State{
				Temperature:        lc.Constraint.WeatherCase.TemperatureCable,
				LoadStretch:        loadStretch,
				TemperatureStretch: stretchWeatherCase.TemperatureCable,
				PolynomialType:     cable.LoadStrain,
			})
			if !ok {
				return sentinel.Invalid
			}

			reloader := sagtension.Reloader{
				ReferenceCatenary:  constraintCatenary,
				ReferenceModel:     referenceModel,
				ReloadedModel:      stretchModelTemplate,
				ReloadedWeightUnit: stretchWeight,
			}
			reloaded, ok := reloader.CatenaryReloaded()
			if !ok {
				return sentinel.Invalid
			}
			tensionAverage, _ := reloaded.TensionAverage(0)
			return tensionAverage
		}

		load, ok := secantFixedPoint(0, lc.Cable.StrengthRated, fixedPoint)
		if !ok {
			return Result{}, false
		}
		stretchLoad = load
	}

	temperatureStretch := lc.CreepStretchWeatherCase.TemperatureCable
	if lc.Constraint.Condition == LoadCondition {
		temperatureStretch = lc.LoadStretchWeatherCase.TemperatureCable
	}
	referenceModel, ok := elongation.NewModel(lc.Cable, cable.State{
		Temperature:        lc.Constraint.WeatherCase.TemperatureCable,
		LoadStretch:        stretchLoad,
		TemperatureStretch: temperatureStretch,
		PolynomialType:     cable.LoadStrain,
	})
	if !ok {
		return Result{}, false
	}

	creepLoad, loadLoad, ok := r.stretchLoads(constraintCatenary, referenceModel)
	if !ok {
		return Result{}, false
	}

	// A stretched model always follows the short-term load-strain curve,
	// offset by its stretch load; the creep curve only drives the
	// zero-stretch model the creep stretch load is read from.
	var queriedStretchLoad, queriedStretchTemperature float64
	switch reloadedCondition {
	case CreepCondition:
		queriedStretchLoad = creepLoad
		queriedStretchTemperature = lc.CreepStretchWeatherCase.TemperatureCable
	case LoadCondition:
		queriedStretchLoad = loadLoad
		queriedStretchTemperature = lc.LoadStretchWeatherCase.TemperatureCable
	default:
		queriedStretchLoad = 0
		queriedStretchTemperature = reloadedCase.TemperatureCable
	}

	reloadedModel, ok := elongation.NewModel(lc.Cable, cable.State{
		Temperature:        reloadedCase.TemperatureCable,
		LoadStretch:        queriedStretchLoad,
		TemperatureStretch: queriedStretchTemperature,
		PolynomialType:     cable.LoadStrain,
	})
	if !ok {
		return Result{}, false
	}

	vertical, transverse := weather.UnitLoad(lc.Cable, reloadedCase)
	reloader := sagtension.Reloader{
		ReferenceCatenary:  constraintCatenary,
		ReferenceModel:     referenceModel,
		ReloadedModel:      reloadedModel,
		ReloadedWeightUnit: vector.Vector3D{Y: transverse, Z: vertical},
	}
	reloadedCatenary, ok := reloader.CatenaryReloaded()
	if !ok {
		return Result{}, false
	}

	h := reloadedCatenary.TensionHorizontal()
	tensionAverage, _ := reloadedCatenary.TensionAverage(0)
	strain, _ := reloadedModel.Strain(tensionAverage)
	tensionAverageCore := reloadedModel.Core.Load(strain)
	tensionAverageShell := reloadedModel.Shell.Load(strain)

	ratio := 0.0
	if tensionAverage != 0 {
		ratio = h / tensionAverage
	}

	return Result{
		Catenary:               reloadedCatenary,
		TensionHorizontal:      h,
		TensionAverage:         tensionAverage,
		TensionAverageCore:     tensionAverageCore,
		TensionAverageShell:    tensionAverageShell,
		TensionHorizontalCore:  tensionAverageCore * ratio,
		TensionHorizontalShell: tensionAverageShell * ratio,
	}, true
}

// secantFixedPoint finds x in [lo, hi] such that f(x) == x, by secant
// iteration on g(x) = f(x) - x.
func secantFixedPoint(lo, hi float64, f func(float64) float64) (float64, bool) {
	const iterMax = 100
	const tolerance = 0.1

	g := func(x float64) float64 { return f(x) - x }

	x0, x1 := lo, hi
	g0, g1 := g(x0), g(x1)

	for iter := 0; iter < iterMax; iter++ {
		if math.Abs(g1) < tolerance {
			return x1, true
		}
		if g1 == g0 {
			return sentinel.Invalid, false
		}
		x2 := x1 - g1*(x1-x0)/(g1-g0)
		if x2 < lo {
			x2 = lo
		}
		if x2 > hi {
			x2 = hi
		}
		x0, g0 = x1, g1
		x1 = x2
		g1 = g(x1)
	}
	return sentinel.Invalid, false
}

// DesignConstraint is a candidate sag-tension anchor evaluated by
// Sagger to find which one controls.
type DesignConstraint struct {
	Constraint Constraint
}

// Sagger finds which of several design constraints controls a line
// cable's sag-tension design, and reports each constraint's actual
// tension once the cable is built to the controlling one.
type Sagger struct {
	LineCable LineCable
	Designs   []DesignConstraint
}

// ConstraintResult is one design constraint's actual behavior once the
// line cable is sagged to the controlling constraint.
type ConstraintResult struct {
	TensionHorizontal  float64
	TensionSupport     float64
	CatenaryConstant   float64
	PercentCapacity    float64
}

// SaggerResult names the controlling constraint and each design
// constraint's actuals.
type SaggerResult struct {
	ControllingIndex int
	ControllingLimit float64
	Actuals          []ConstraintResult
}

// Solve finds the controlling design constraint (the one producing the
// smallest horizontal tension at the line cable's constraint case), sets
// the line cable's constraint limit to match it, then reloads every
// design constraint at its own weather case to report actuals.
func (s Sagger) Solve() (SaggerResult, bool) {
	if len(s.Designs) == 0 {
		return SaggerResult{}, false
	}

	lc := s.LineCable
	controllingIndex := -1
	controllingH := math.Inf(1)

	for i, design := range s.Designs {
		trial := lc
		trial.Constraint = design.Constraint
		reloader := Reloader{LineCable: trial}
		result, ok := reloader.Reload(lc.Constraint.WeatherCase, lc.Constraint.Condition)
		if !ok {
			continue
		}
		if result.TensionHorizontal < controllingH {
			controllingH = result.TensionHorizontal
			controllingIndex = i
		}
	}
	if controllingIndex < 0 {
		return SaggerResult{}, false
	}

	lc.Constraint.Limit = controllingH

	actuals := make([]ConstraintResult, len(s.Designs))
	for i, design := range s.Designs {
		trial := lc
		reloader := Reloader{LineCable: trial}
		result, ok := reloader.Reload(design.Constraint.WeatherCase, design.Constraint.Condition)
		if !ok {
			continue
		}

		vertical, transverse := weather.UnitLoad(lc.Cable, design.Constraint.WeatherCase)
		weightMagnitude := vector.Vector3D{Y: transverse, Z: vertical}.Magnitude()
		tensionSupport, _ := result.Catenary.TensionMax()

		actuals[i] = ConstraintResult{
			TensionHorizontal: result.TensionHorizontal,
			TensionSupport:    tensionSupport,
			CatenaryConstant:  result.TensionHorizontal / weightMagnitude,
			PercentCapacity:   percentCapacity(design.Constraint, result, weightMagnitude),
		}
	}

	return SaggerResult{
		ControllingIndex: controllingIndex,
		ControllingLimit: controllingH,
		Actuals:          actuals,
	}, true
}

func percentCapacity(constraint Constraint, result Result, weightMagnitude float64) float64 {
	var actual float64
	switch constraint.LimitType {
	case HorizontalTensionLimit:
		actual = result.TensionHorizontal
	case CatenaryConstantLimit:
		actual = result.TensionHorizontal / weightMagnitude
	default:
		actual, _ = result.Catenary.TensionMax()
	}
	if constraint.Limit == 0 {
		return 0
	}
	return 100 * actual / constraint.Limit
}
