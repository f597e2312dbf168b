// Package thermal rates a cable's steady-state and transient current
// carrying capacity from the IEEE/CIGRE heat-balance convection,
// radiation, resistance, solar, and storage terms: HeatTransferSolver
// evaluates the terms at a given cable temperature, SteadyCurrentSolver
// and SteadyTemperatureSolver solve the balance for current or
// temperature, and TransientSolver steps the balance forward in time.
package thermal

import (
	"math"

	"github.com/catenarytools/sagtension/internal/cable"
	"github.com/catenarytools/sagtension/internal/diagnostic"
	"github.com/catenarytools/sagtension/internal/sentinel"
	"github.com/catenarytools/sagtension/internal/unit"
	"github.com/catenarytools/sagtension/internal/vector"
)

// Weather is the ambient condition a thermal rating analysis is
// performed under.
type Weather struct {
	AngleWind      float64 // wind-to-cable axis angle, degrees, 0-90
	Elevation      float64
	RadiationSolar float64
	SpeedWind      float64
	TemperatureAir float64
}

// Validate reports whether the weather's values are physically sound.
func (w Weather) Validate(includeWarnings bool, messages *[]diagnostic.Message) bool {
	isValid := true
	if w.AngleWind < 0 || w.AngleWind > 90 {
		isValid = false
		diagnostic.Append(messages, "THERMAL RATING WEATHER", "invalid wind angle")
	}
	if w.SpeedWind < 0 {
		isValid = false
		diagnostic.Append(messages, "THERMAL RATING WEATHER", "invalid wind speed")
	}
	if w.RadiationSolar < 0 {
		isValid = false
		diagnostic.Append(messages, "THERMAL RATING WEATHER", "invalid solar radiation")
	}
	return isValid
}

// State is the heat transferred by each mode at an analysis instant,
// all in consistent power-per-unit-length units. Convection and
// radiation are negative (heat leaving the cable); resistance and solar
// are positive (heat entering).
type State struct {
	Convection float64
	Radiation  float64
	Resistance float64
	Solar      float64
	Storage    float64
}

// HeatTransferSolver evaluates the individual heat-balance terms for a
// cable at a given weather condition.
type HeatTransferSolver struct {
	Cable   cable.Cable
	Units   unit.System
	Weather Weather
}

// Validate reports whether the solver's inputs are physically sound.
func (s HeatTransferSolver) Validate(includeWarnings bool, messages *[]diagnostic.Message) bool {
	isValid := s.Cable.Validate(includeWarnings, messages)
	if !s.Weather.Validate(includeWarnings, messages) {
		isValid = false
	}
	return isValid
}

// convectionForced returns the forced-convection heat loss, the greater
// of two curve-fitted Reynolds-number correlations.
func (s HeatTransferSolver) convectionForced(conductivityAir, densityAir, viscosityAir, temperatureCable float64) float64 {
	reynolds := (s.Cable.Diameter * densityAir * s.Weather.SpeedWind) / viscosityAir

	angleWindRad := unit.ConvertAngle(s.Weather.AngleWind, unit.DegreesToRadians, 1, true)
	factorWindDirection := 1.194 - math.Cos(angleWindRad) +
		0.194*math.Cos(2*angleWindRad) +
		0.368*math.Sin(2*angleWindRad)

	delta := temperatureCable - s.Weather.TemperatureAir
	forced1 := factorWindDirection * (1.01 + 1.35*math.Pow(reynolds, 0.52)) * conductivityAir * delta
	forced2 := factorWindDirection * 0.754 * math.Pow(reynolds, 0.6) * conductivityAir * delta

	if forced1 <= forced2 {
		return forced2
	}
	return forced1
}

// convectionNatural returns the natural-convection heat loss.
func (s HeatTransferSolver) convectionNatural(densityAir, temperatureCable float64) (float64, bool) {
	var k float64
	switch s.Units {
	case unit.Imperial:
		k = 1.825
	case unit.Metric:
		k = 3.645
	default:
		return sentinel.Invalid, false
	}

	delta := temperatureCable - s.Weather.TemperatureAir
	return k * math.Pow(densityAir, 0.5) * math.Pow(s.Cable.Diameter, 0.75) * math.Pow(delta, 1.25), true
}

// Convection returns the governing (larger-magnitude) convective heat
// loss at temperatureCable, signed negative.
func (s HeatTransferSolver) Convection(temperatureCable float64) (float64, bool) {
	temperatureFilm := (temperatureCable + s.Weather.TemperatureAir) / 2

	var conductivityAir, densityAir, viscosityAir float64
	switch s.Units {
	case unit.Imperial:
		conductivityAir = 7.388e-3 + 2.279e-5*temperatureFilm - 1.343e-9*temperatureFilm*temperatureFilm
		densityAir = (0.080695 - 2.901e-6*s.Weather.Elevation + 3.7e-11*s.Weather.Elevation*s.Weather.Elevation) /
			(1 + 0.00367*temperatureFilm)
		viscosityAir = (0.00353 * math.Pow(temperatureFilm+273, 1.5)) / (temperatureFilm + 383.4)
		viscosityAir = viscosityAir / 3600
	case unit.Metric:
		conductivityAir = 2.424e-2 + 7.477e-5*temperatureFilm - 4.407e-9*temperatureFilm*temperatureFilm
		densityAir = (1.293 - 1.525e-4*s.Weather.Elevation + 6.379e-9*s.Weather.Elevation*s.Weather.Elevation) /
			(1 + 0.00367*temperatureFilm)
		viscosityAir = (1.458e-6 * math.Pow(temperatureFilm+273, 1.5)) / (temperatureFilm + 383.4)
	default:
		return sentinel.Invalid, false
	}

	forced := s.convectionForced(conductivityAir, densityAir, viscosityAir, temperatureCable)
	natural, ok := s.convectionNatural(densityAir, temperatureCable)
	if !ok {
		return sentinel.Invalid, false
	}

	if natural < forced {
		return -1 * forced, true
	}
	return -1 * natural, true
}

// Radiation returns the radiative heat loss at temperatureCable, signed
// negative.
func (s HeatTransferSolver) Radiation(temperatureCable float64) (float64, bool) {
	var k float64
	switch s.Units {
	case unit.Imperial:
		k = 1.656
	case unit.Metric:
		k = 17.8
	default:
		return sentinel.Invalid, false
	}

	k1 := k * s.Cable.Diameter * s.Cable.Emissivity
	k2 := math.Pow((temperatureCable+273)/100, 4)
	k3 := math.Pow((s.Weather.TemperatureAir+273)/100, 4)
	return -1 * k1 * (k2 - k3), true
}

// Resistance returns the resistive heat gain at temperatureCable
// carrying current.
func (s HeatTransferSolver) Resistance(temperatureCable, current float64) float64 {
	resistanceCable, _ := s.Cable.Resistance(temperatureCable)
	return current * current * resistanceCable
}

// Solar returns the solar heat gain, independent of cable temperature.
func (s HeatTransferSolver) Solar() float64 {
	areaProjected := s.Cable.Diameter * 1
	return s.Cable.Absorptivity * s.Weather.RadiationSolar * areaProjected
}

// Storage returns the net heat stored given the heat entering and
// leaving the cable.
func (s HeatTransferSolver) Storage(heatIn, heatOut float64) float64 {
	return heatIn + heatOut
}

// SteadyCurrentSolver solves for the current a cable carries in steady
// state at a fixed cable temperature: resistance heat is backed out of
// energy conservation from the other three modes.
type SteadyCurrentSolver struct {
	Cable            cable.Cable
	TemperatureCable float64
	Units            unit.System
	Weather          Weather
}

// Validate reports whether the solver's inputs are physically sound.
func (s SteadyCurrentSolver) Validate(includeWarnings bool, messages *[]diagnostic.Message) bool {
	isValid := s.Cable.Validate(includeWarnings, messages)
	if s.TemperatureCable < -100 || s.TemperatureCable > 500 {
		isValid = false
		diagnostic.Append(messages, "STEADY CABLE CURRENT SOLVER", "invalid cable temperature")
	}
	if !s.Weather.Validate(includeWarnings, messages) {
		isValid = false
	}
	return isValid
}

// StateHeatTransfer returns the solved heat-balance state at the
// solver's fixed cable temperature.
func (s SteadyCurrentSolver) StateHeatTransfer() (State, bool) {
	solver := HeatTransferSolver{Cable: s.Cable, Units: s.Units, Weather: s.Weather}

	convection, ok := solver.Convection(s.TemperatureCable)
	if !ok {
		return State{}, false
	}
	radiation, ok := solver.Radiation(s.TemperatureCable)
	if !ok {
		return State{}, false
	}
	solar := solver.Solar()

	state := State{
		Convection: convection,
		Radiation:  radiation,
		Solar:      solar,
	}
	state.Resistance = -1 * (state.Convection + state.Radiation + state.Solar)
	return state, true
}

// Current returns the steady-state current the cable carries.
func (s SteadyCurrentSolver) Current() (float64, bool) {
	state, ok := s.StateHeatTransfer()
	if !ok {
		return sentinel.Invalid, false
	}

	resistanceCable, ok := s.Cable.Resistance(s.TemperatureCable)
	if !ok || resistanceCable == 0 {
		return sentinel.Invalid, false
	}

	current := math.Sqrt(math.Abs(state.Resistance) / resistanceCable)
	if state.Resistance < 0 {
		current = -1 * current
	}
	return current, true
}

// SteadyTemperatureSolver inverts SteadyCurrentSolver: it finds the
// cable temperature at which a given current is carried in steady
// state, by secant search on temperature against the resulting current.
type SteadyTemperatureSolver struct {
	Cable   cable.Cable
	Current float64
	Units   unit.System
	Weather Weather
}

// Validate reports whether the solver's inputs are physically sound.
func (s SteadyTemperatureSolver) Validate(includeWarnings bool, messages *[]diagnostic.Message) bool {
	isValid := s.Cable.Validate(includeWarnings, messages)
	if s.Current < 0 {
		isValid = false
		diagnostic.Append(messages, "STEADY CABLE TEMPERATURE SOLVER", "invalid electrical current")
	}
	if !s.Weather.Validate(includeWarnings, messages) {
		isValid = false
	}
	return isValid
}

func (s SteadyTemperatureSolver) currentAt(temperatureCable float64) float64 {
	solver := SteadyCurrentSolver{
		Cable:            s.Cable,
		TemperatureCable: temperatureCable,
		Units:            s.Units,
		Weather:          s.Weather,
	}
	current, ok := solver.Current()
	if !ok {
		return sentinel.Invalid
	}
	return current
}

// solve returns the solved cable temperature and heat-balance state, by
// secant search bracketed initially by the ambient air temperature and
// 10 degrees above it, matching the same three-point secant pattern used
// throughout the rest of the analysis.
func (s SteadyTemperatureSolver) solve() (float64, State, bool) {
	const iterMax = 100
	const tolerance = 0.1

	target := s.Current

	left := vector.Point2D{X: s.Weather.TemperatureAir, Y: s.currentAt(s.Weather.TemperatureAir)}
	right := vector.Point2D{X: s.Weather.TemperatureAir + 10, Y: s.currentAt(s.Weather.TemperatureAir + 10)}
	var current vector.Point2D

	iter := 0
	for math.Abs(left.X-right.X) > tolerance && iter <= iterMax {
		slope := (right.Y - left.Y) / (right.X - left.X)
		current.X = left.X + (target-left.Y)/slope
		current.Y = s.currentAt(current.X)

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

	if iter >= iterMax {
		return sentinel.Invalid, State{}, false
	}

	solver := SteadyCurrentSolver{Cable: s.Cable, TemperatureCable: current.X, Units: s.Units, Weather: s.Weather}
	state, ok := solver.StateHeatTransfer()
	if !ok {
		return sentinel.Invalid, State{}, false
	}
	return current.X, state, true
}

// TemperatureCable returns the solved steady-state cable temperature.
func (s SteadyTemperatureSolver) TemperatureCable() (float64, bool) {
	t, _, ok := s.solve()
	return t, ok
}

// StateHeatTransfer returns the heat-balance state at the solved
// steady-state temperature.
func (s SteadyTemperatureSolver) StateHeatTransfer() (State, bool) {
	_, state, ok := s.solve()
	return state, ok
}

// TemperaturePoint is a single sample of a transient temperature curve.
type TemperaturePoint struct {
	Time        int
	Temperature float64
}

// TransientSolver steps a cable's temperature forward in time (one
// second per step) after a step change in current from CurrentSteady to
// CurrentStep, starting from the steady-state temperature CurrentSteady
// produces.
type TransientSolver struct {
	Cable         cable.Cable
	CurrentSteady float64
	CurrentStep   float64
	Duration      int
	Units         unit.System
	Weather       Weather
}

// Validate reports whether the solver's inputs are physically sound.
func (s TransientSolver) Validate(includeWarnings bool, messages *[]diagnostic.Message) bool {
	isValid := s.Cable.Validate(includeWarnings, messages)
	if s.CurrentSteady < 0 {
		isValid = false
		diagnostic.Append(messages, "TRANSIENT CABLE TEMPERATURE SOLVER", "invalid steady-state electrical current")
	}
	if s.CurrentStep < 0 {
		isValid = false
		diagnostic.Append(messages, "TRANSIENT CABLE TEMPERATURE SOLVER", "invalid step electrical current")
	}
	if s.Duration < 0 {
		isValid = false
		diagnostic.Append(messages, "TRANSIENT CABLE TEMPERATURE SOLVER", "invalid time duration")
	}
	if !s.Weather.Validate(includeWarnings, messages) {
		isValid = false
	}
	return isValid
}

// heatTransferState evaluates every mode at a fixed current/temperature,
// deriving storage from conservation of energy rather than solving for
// it.
func (s TransientSolver) heatTransferState(solver HeatTransferSolver, current, temperature float64) (State, bool) {
	convection, ok := solver.Convection(temperature)
	if !ok {
		return State{}, false
	}
	radiation, ok := solver.Radiation(temperature)
	if !ok {
		return State{}, false
	}
	resistance := solver.Resistance(temperature, current)
	solar := solver.Solar()
	storage := solver.Storage(resistance+solar, convection+radiation)

	return State{
		Convection: convection,
		Radiation:  radiation,
		Resistance: resistance,
		Solar:      solar,
		Storage:    storage,
	}, true
}

// temperatureNew advances temperature by timeDelta seconds given the
// heat-balance state's stored heat and the cable's combined heat
// capacity.
func (s TransientSolver) temperatureNew(temperature float64, state State, timeDelta int) float64 {
	capacityHeat := s.Cable.ComponentCore.CapacityHeat + s.Cable.ComponentShell.CapacityHeat
	temperatureDelta := float64(timeDelta) * (state.Storage / capacityHeat)
	return temperature + temperatureDelta
}

// PointsTemperature returns the cable temperature at every second from 0
// to Duration: the first point is the steady-state temperature at
// CurrentSteady, and every subsequent point steps forward one second at
// CurrentStep.
func (s TransientSolver) PointsTemperature() ([]TemperaturePoint, bool) {
	solver := HeatTransferSolver{Cable: s.Cable, Units: s.Units, Weather: s.Weather}
	if !solver.Validate(false, nil) {
		return nil, false
	}

	points := make([]TemperaturePoint, 0, s.Duration+1)

	steadySolver := SteadyTemperatureSolver{Cable: s.Cable, Current: s.CurrentSteady, Units: s.Units, Weather: s.Weather}
	temperature, ok := steadySolver.TemperatureCable()
	if !ok {
		return nil, false
	}
	points = append(points, TemperaturePoint{Time: 0, Temperature: temperature})

	for t := 1; t <= s.Duration; t++ {
		state, ok := s.heatTransferState(solver, s.CurrentStep, temperature)
		if !ok {
			return nil, false
		}
		temperature = s.temperatureNew(temperature, state, 1)
		points = append(points, TemperaturePoint{Time: t, Temperature: temperature})
	}

	return points, true
}
