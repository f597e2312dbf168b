package elongation_test

import (
	"math"
	"testing"

	"github.com/catenarytools/sagtension/internal/cable"
	"github.com/catenarytools/sagtension/internal/diagnostic"
	"github.com/catenarytools/sagtension/internal/elongation"
)

func almostEqual(t *testing.T, got, want, tol float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %v, want %v (tol %v)", msg, got, want, tol)
	}
}

// drakeCable is the ACSR Drake conductor fixture used throughout the
// sag-tension test suite.
func drakeCable() cable.Cable {
	const area = 0.7264
	return cable.Cable{
		Name:                            "ACSR Drake",
		AreaPhysical:                    area,
		Diameter:                        1.108,
		WeightUnit:                      1.094,
		StrengthRated:                   31500,
		Absorptivity:                    0.8,
		Emissivity:                      0.8,
		TemperaturePropertiesComponents: 70,
		ResistancesAC: []cable.ResistancePoint{
			{Temperature: 77, Resistance: 0.1166},
			{Temperature: 167, Resistance: 0.1390},
		},
		ComponentCore: cable.Component{
			CoefficientExpansionLinearThermal: 0.0000064,
			CoefficientsPolynomialCreep:       []float64{47.1 * area, 36211.3 * area, 12201.4 * area, -72392 * area, 46338 * area},
			CoefficientsPolynomialLoadStrain:  []float64{-69.3 * area, 38629 * area, 3998.1 * area, -45713 * area, 27892 * area},
			LoadLimitPolynomialCreep:          22406 * area,
			LoadLimitPolynomialLoadStrain:     19154 * area,
			ModulusCompressionElasticArea:     0 * area * 100,
			ModulusTensionElasticArea:         37000 * area * 100,
		},
		ComponentShell: cable.Component{
			CoefficientExpansionLinearThermal: 0.0000128,
			CoefficientsPolynomialCreep:       []float64{-544.8 * area, 21426.8 * area, -18842.2 * area, 5495 * area, 0},
			CoefficientsPolynomialLoadStrain:  []float64{-1213 * area, 44308.1 * area, -14004.4 * area, -37618 * area, 30676 * area},
			LoadLimitPolynomialCreep:          7535 * area,
			LoadLimitPolynomialLoadStrain:     20252 * area,
			ModulusCompressionElasticArea:     1500 * area * 100,
			ModulusTensionElasticArea:         64000 * area * 100,
		},
	}
}

func TestModelLoadIsMonotonicIncreasing(t *testing.T) {
	c := drakeCable()
	state := cable.State{Temperature: 70, PolynomialType: cable.LoadStrain}
	m, ok := elongation.NewModel(c, state)
	if !ok {
		t.Fatal("expected NewModel to succeed")
	}
	prev := math.Inf(-1)
	for _, strain := range []float64{-0.002, -0.001, 0, 0.001, 0.002, 0.003, 0.004} {
		load := m.Load(strain)
		if load < prev {
			t.Errorf("expected Load to be monotonic increasing, got %v after %v at strain %v", load, prev, strain)
		}
		prev = load
	}
}

func TestModelLoadIsSumOfComponents(t *testing.T) {
	c := drakeCable()
	state := cable.State{Temperature: 70, PolynomialType: cable.LoadStrain}
	m, ok := elongation.NewModel(c, state)
	if !ok {
		t.Fatal("expected NewModel to succeed")
	}
	for _, strain := range []float64{0, 0.001, 0.003} {
		got := m.Load(strain)
		want := m.Core.Load(strain) + m.Shell.Load(strain)
		almostEqual(t, got, want, 1e-9, "combined load should equal the sum of the components")
	}
}

func TestModelStrainInvertsLoad(t *testing.T) {
	c := drakeCable()
	state := cable.State{Temperature: 70, PolynomialType: cable.LoadStrain}
	m, ok := elongation.NewModel(c, state)
	if !ok {
		t.Fatal("expected NewModel to succeed")
	}

	for _, load := range []float64{0, 2000, 10000, 20000} {
		strain, ok := m.Strain(load)
		if !ok {
			t.Fatalf("expected Strain(%v) to converge", load)
		}
		gotLoad := m.Load(strain)
		almostEqual(t, gotLoad, load, 1, "Load(Strain(load)) should round-trip to load")
	}
}

func TestModelWithStretchCarriesStretchLoad(t *testing.T) {
	c := drakeCable()
	state := cable.State{Temperature: 212, LoadStretch: 12000, TemperatureStretch: 0, PolynomialType: cable.LoadStrain}
	m, ok := elongation.NewModel(c, state)
	if !ok {
		t.Fatal("expected NewModel to succeed with a nonzero stretch load")
	}
	if m.Core.LoadStretch <= 0 {
		t.Error("expected the core to absorb part of the stretch load")
	}
	if m.Shell.LoadStretch <= 0 {
		t.Error("expected the shell to absorb part of the stretch load")
	}
	almostEqual(t, m.Core.LoadStretch+m.Shell.LoadStretch, 12000, 1, "stretch load should be conserved across components")
}

func TestComponentModelStrainInvertsLoad(t *testing.T) {
	c := drakeCable()
	cm := elongation.ComponentModel{
		Component:            c.ComponentCore,
		Temperature:          70,
		TemperatureReference: 70,
		Active:               cable.LoadStrain,
	}
	for _, load := range []float64{-500, 0, 5000, 15000} {
		strain, ok := cm.Strain(load)
		if !ok {
			t.Fatalf("expected Strain(%v) to converge", load)
		}
		almostEqual(t, cm.Load(strain), load, 1, "component Load(Strain(load)) should round-trip")
	}
}

func TestComponentModelValidate(t *testing.T) {
	// A clean linear curve through the origin should pass the
	// near-origin and monotonicity checks that the empirical DRAKE
	// load-strain fit (with its small nonzero curve-fit offset at zero
	// strain) does not.
	component := cable.Component{
		CoefficientExpansionLinearThermal: 0.0000064,
		CoefficientsPolynomialCreep:       []float64{0, 40000},
		CoefficientsPolynomialLoadStrain:  []float64{0, 40000},
		LoadLimitPolynomialCreep:          20000,
		LoadLimitPolynomialLoadStrain:     20000,
		ModulusCompressionElasticArea:     40000,
		ModulusTensionElasticArea:         40000,
	}
	cm := elongation.ComponentModel{
		Component:            component,
		Temperature:          70,
		TemperatureReference: 70,
		Active:               cable.LoadStrain,
	}
	if !cm.Validate(false, nil) {
		t.Error("expected a clean linear curve through the origin to validate")
	}
}

func TestComponentModelValidateRejectsOutOfOrderBoundaries(t *testing.T) {
	// A stretch load above the polynomial load limit pushes the stretched
	// boundary past the polynomial limit boundary.
	component := cable.Component{
		CoefficientExpansionLinearThermal: 0.0000064,
		CoefficientsPolynomialCreep:       []float64{0, 40000},
		CoefficientsPolynomialLoadStrain:  []float64{0, 40000},
		LoadLimitPolynomialCreep:          20000,
		LoadLimitPolynomialLoadStrain:     20000,
		ModulusCompressionElasticArea:     40000,
		ModulusTensionElasticArea:         40000,
	}
	cm := elongation.ComponentModel{
		Component:            component,
		Temperature:          70,
		TemperatureReference: 70,
		Active:               cable.LoadStrain,
		LoadStretch:          30000,
	}

	var messages []diagnostic.Message
	if cm.Validate(true, &messages) {
		t.Error("expected Validate to reject out-of-order region boundaries")
	}

	warned := false
	for _, m := range messages {
		if m.Description == "polynomial load limit is below the stretch load" {
			warned = true
		}
	}
	if !warned {
		t.Error("expected a warning that the polynomial load limit sits below the stretch load")
	}
}

func TestStretchDistributionConservesLoad(t *testing.T) {
	c := drakeCable()
	coreStretch, shellStretch, ok := elongation.StretchDistribution(c.ComponentCore, c.ComponentShell, cable.LoadStrain, 12000, 0)
	if !ok {
		t.Fatal("expected StretchDistribution to converge")
	}
	almostEqual(t, coreStretch+shellStretch, 12000, 1, "stretch distribution should conserve the cable-level stretch load")
}

func TestStrainerRoundTripsLength(t *testing.T) {
	c := drakeCable()
	stateStart := cable.State{Temperature: 0, LoadStretch: 12000, TemperatureStretch: 0, PolynomialType: cable.LoadStrain}
	stateFinish := cable.State{Temperature: 212, LoadStretch: 12000, TemperatureStretch: 0, PolynomialType: cable.LoadStrain}

	modelStart, ok := elongation.NewModel(c, stateStart)
	if !ok {
		t.Fatal("expected start model to build")
	}
	modelFinish, ok := elongation.NewModel(c, stateFinish)
	if !ok {
		t.Fatal("expected finish model to build")
	}

	strainer := elongation.Strainer{
		LengthStart: 1200,
		ModelStart:  modelStart,
		LoadStart:   0,
		ModelFinish: modelFinish,
		LoadFinish:  10000,
	}
	lengthFinish, _, _, ok := strainer.LengthFinish()
	if !ok {
		t.Fatal("expected LengthFinish to converge")
	}

	// swap start/finish and relax back to the original load; the length
	// should return to (near) its starting value.
	back := elongation.Strainer{
		LengthStart: lengthFinish,
		ModelStart:  modelFinish,
		LoadStart:   10000,
		ModelFinish: modelStart,
		LoadFinish:  0,
	}
	lengthBack, _, _, ok := back.LengthFinish()
	if !ok {
		t.Fatal("expected the reverse LengthFinish to converge")
	}
	almostEqual(t, lengthBack, 1200, 0.01, "length should round-trip through a load/unload cycle")
}
