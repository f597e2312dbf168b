package linecable_test

import (
	"math"
	"testing"

	"github.com/catenarytools/sagtension/internal/cable"
	"github.com/catenarytools/sagtension/internal/linecable"
	"github.com/catenarytools/sagtension/internal/vector"
	"github.com/catenarytools/sagtension/internal/weather"
)

func almostEqual(t *testing.T, got, want, tol float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %v, want %v (tol %v)", msg, got, want, tol)
	}
}

// drakeCable is the ACSR Drake conductor in consistent foot-pound units:
// the elongation polynomials carry their physical-area premultiplication
// (psi coefficient x in^2 area), and the diameter is in feet so iced and
// wind-loaded weather cases produce per-foot unit loads.
func drakeCable() cable.Cable {
	const area = 0.7264
	return cable.Cable{
		Name:                            "ACSR Drake",
		AreaPhysical:                    area,
		Diameter:                        1.108 / 12,
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

// drakeLineCable is a 1200ft ruling span constrained to H=6000 under a
// bare 60F case ("0-0-60") at the initial condition, with creep stretch
// evaluated under the same case and load stretch under a 0.5in ice /
// 8psf wind case.
func drakeLineCable() linecable.LineCable {
	return linecable.LineCable{
		Cable: drakeCable(),
		Constraint: linecable.Constraint{
			WeatherCase: weather.LoadCase{Description: "0-0-60", TemperatureCable: 60},
			Condition:   linecable.Initial,
			Limit:       6000,
			LimitType:   linecable.HorizontalTensionLimit,
		},
		CreepStretchWeatherCase: weather.LoadCase{Description: "0-0-60", TemperatureCable: 60},
		LoadStretchWeatherCase:  weather.LoadCase{Description: "0.5-8-0", ThicknessIce: 0.5 / 12, DensityIce: 57.3, PressureWind: 8, TemperatureCable: 0},
		SpacingEndpoints:        vector.New3D(1200, 0, 0),
		Connections: []linecable.Connection{
			{Structure: "A", AttachmentIndex: 0},
			{Structure: "B", AttachmentIndex: 0},
		},
	}
}

func TestLineCableValidate(t *testing.T) {
	lc := drakeLineCable()
	if !lc.Validate(false, nil) {
		t.Error("expected the DRAKE line cable fixture to validate")
	}
}

func TestConverterBuildHorizontalTensionLimit(t *testing.T) {
	lc := drakeLineCable()
	conv := linecable.Converter{Cable: lc.Cable, SpacingEndpoints: lc.SpacingEndpoints}
	c, ok := conv.Build(lc.Constraint.WeatherCase, 6000, linecable.HorizontalTensionLimit)
	if !ok {
		t.Fatal("expected Build to succeed")
	}
	if got := c.TensionHorizontal(); got != 6000 {
		t.Errorf("expected horizontal tension to equal the limit directly, got %v", got)
	}
}

func TestConverterBuildCatenaryConstantLimit(t *testing.T) {
	lc := drakeLineCable()
	conv := linecable.Converter{Cable: lc.Cable, SpacingEndpoints: lc.SpacingEndpoints}
	c, ok := conv.Build(lc.Constraint.WeatherCase, 5000, linecable.CatenaryConstantLimit)
	if !ok {
		t.Fatal("expected Build to succeed")
	}
	constant, ok := c.Constant()
	if !ok {
		t.Fatal("expected Constant to succeed")
	}
	if diff := constant - 5000; diff > 0.5 || diff < -0.5 {
		t.Errorf("expected the resulting catenary constant to match the limit, got %v", constant)
	}
}

func TestConverterBuildSupportTensionLimit(t *testing.T) {
	lc := drakeLineCable()
	conv := linecable.Converter{Cable: lc.Cable, SpacingEndpoints: lc.SpacingEndpoints}
	c, ok := conv.Build(lc.Constraint.WeatherCase, 8000, linecable.SupportTensionLimit)
	if !ok {
		t.Fatal("expected Build to succeed")
	}
	tensionMax, ok := c.TensionMax()
	if !ok {
		t.Fatal("expected TensionMax to succeed")
	}
	if diff := tensionMax - 8000; diff > 0.5 || diff < -0.5 {
		t.Errorf("expected the solved support tension to match the limit, got %v", tensionMax)
	}
}

func TestReloaderReloadToInitialConditionConvergesAtConstraint(t *testing.T) {
	lc := drakeLineCable()
	reloader := linecable.Reloader{LineCable: lc}

	result, ok := reloader.Reload(lc.Constraint.WeatherCase, linecable.Initial)
	if !ok {
		t.Fatal("expected Reload to converge")
	}
	if diff := result.TensionHorizontal - 6000; diff > 1 || diff < -1 {
		t.Errorf("reloading to the constraint's own weather case and condition should reproduce its horizontal tension, got %v", result.TensionHorizontal)
	}
}

func TestReloaderReloadTensionHorizontal(t *testing.T) {
	cases := []struct {
		name      string
		reloaded  weather.LoadCase
		condition linecable.Condition
		want      float64
	}{
		{"0-0-60 initial", weather.LoadCase{Description: "0-0-60", TemperatureCable: 60}, linecable.Initial, 6000},
		{"0-0-60 load", weather.LoadCase{Description: "0-0-60", TemperatureCable: 60}, linecable.LoadCondition, 5561},
		{"0-0-212 initial", weather.LoadCase{Description: "0-0-212", TemperatureCable: 212}, linecable.Initial, 4702},
		{"0-0-212 load", weather.LoadCase{Description: "0-0-212", TemperatureCable: 212}, linecable.LoadCondition, 4528},
		// at an inch of ice the reload load exceeds the stretch anchor, so
		// the initial and stretched answers coincide
		{"1-8-0 initial", weather.LoadCase{Description: "1-8-0", ThicknessIce: 1.0 / 12, DensityIce: 57.3, PressureWind: 8, TemperatureCable: 0}, linecable.Initial, 17126},
		{"1-8-0 load", weather.LoadCase{Description: "1-8-0", ThicknessIce: 1.0 / 12, DensityIce: 57.3, PressureWind: 8, TemperatureCable: 0}, linecable.LoadCondition, 17126},
	}

	lc := drakeLineCable()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			reloader := linecable.Reloader{LineCable: lc}
			result, ok := reloader.Reload(c.reloaded, c.condition)
			if !ok {
				t.Fatal("expected Reload to converge")
			}
			almostEqual(t, result.TensionHorizontal, c.want, 5, "reloaded horizontal tension")
		})
	}
}

func TestReloaderComponentTensionsSumToAverage(t *testing.T) {
	lc := drakeLineCable()
	reloader := linecable.Reloader{LineCable: lc}

	result, ok := reloader.Reload(weather.LoadCase{TemperatureCable: 30}, linecable.Initial)
	if !ok {
		t.Fatal("expected Reload to converge")
	}
	sum := result.TensionAverageCore + result.TensionAverageShell
	if diff := sum - result.TensionAverage; diff > 1 || diff < -1 {
		t.Errorf("expected core+shell average tension (%v) to equal the combined average tension (%v)", sum, result.TensionAverage)
	}

	sumH := result.TensionHorizontalCore + result.TensionHorizontalShell
	if diff := sumH - result.TensionHorizontal; diff > 1 || diff < -1 {
		t.Errorf("expected core+shell horizontal tension (%v) to equal the combined horizontal tension (%v)", sumH, result.TensionHorizontal)
	}
}

// saggerDesigns are three competing design constraints: a bare-case
// tension cap, an iced-and-windy support tension cap, and a hot-curve
// catenary constant floor. The support tension design controls.
func saggerDesigns() []linecable.DesignConstraint {
	return []linecable.DesignConstraint{
		{Constraint: linecable.Constraint{
			WeatherCase: weather.LoadCase{Description: "0-0-60", TemperatureCable: 60},
			Condition:   linecable.Initial,
			Limit:       6000,
			LimitType:   linecable.HorizontalTensionLimit,
		}},
		{Constraint: linecable.Constraint{
			WeatherCase: weather.LoadCase{Description: "0.5-8-0", ThicknessIce: 0.5 / 12, DensityIce: 57.3, PressureWind: 8, TemperatureCable: 0},
			Condition:   linecable.Initial,
			Limit:       12000,
			LimitType:   linecable.SupportTensionLimit,
		}},
		{Constraint: linecable.Constraint{
			WeatherCase: weather.LoadCase{Description: "0-0-212", TemperatureCable: 212},
			Condition:   linecable.LoadCondition,
			Limit:       5000,
			LimitType:   linecable.CatenaryConstantLimit,
		}},
	}
}

func TestSaggerSolveFindsControllingDesign(t *testing.T) {
	lc := drakeLineCable()
	sagger := linecable.Sagger{LineCable: lc, Designs: saggerDesigns()}

	result, ok := sagger.Solve()
	if !ok {
		t.Fatal("expected Solve to converge")
	}
	if result.ControllingIndex != 1 {
		t.Errorf("expected the support tension design to control, got index %v", result.ControllingIndex)
	}
	almostEqual(t, result.ControllingLimit, 5820, 5, "sagged line cable constraint limit")
	if len(result.Actuals) != 3 {
		t.Fatalf("expected one actual per design, got %v", len(result.Actuals))
	}
}

func TestSaggerSolveReportsDesignActuals(t *testing.T) {
	lc := drakeLineCable()
	sagger := linecable.Sagger{LineCable: lc, Designs: saggerDesigns()}

	result, ok := sagger.Solve()
	if !ok {
		t.Fatal("expected Solve to converge")
	}

	wants := []struct {
		tensionHorizontal float64
		tensionSupport    float64
		catenaryConstant  float64
		percentCapacity   float64
	}{
		{5820, 5857, 5320, 97.0},
		{11903, 12000, 4712, 100.0},
		{4449, 4497, 4066, 81.3},
	}
	for i, want := range wants {
		actual := result.Actuals[i]
		almostEqual(t, actual.TensionHorizontal, want.tensionHorizontal, 5, "horizontal tension actual")
		almostEqual(t, actual.TensionSupport, want.tensionSupport, 5, "support tension actual")
		almostEqual(t, actual.CatenaryConstant, want.catenaryConstant, 5, "catenary constant actual")
		almostEqual(t, actual.PercentCapacity, want.percentCapacity, 0.5, "percent of allowable capacity")
	}
}
