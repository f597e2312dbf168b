// Package cable describes the immutable material properties of a
// transmission cable: its physical geometry, thermal surface properties,
// AC resistance table, and the two mechanical components (core, shell)
// that make up its elongation behavior.
package cable

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/catenarytools/sagtension/internal/diagnostic"
	"github.com/catenarytools/sagtension/internal/sentinel"
)

// PolynomialType selects which of a component's two empirical
// strain/load curves is active for a given analysis.
type PolynomialType int

const (
	Creep PolynomialType = iota
	LoadStrain
)

// Component is one mechanical layer of a cable (core or shell).
type Component struct {
	CoefficientExpansionLinearThermal float64   `json:"coefficient_expansion_linear_thermal"`
	CoefficientsPolynomialCreep       []float64 `json:"coefficients_polynomial_creep"`
	CoefficientsPolynomialLoadStrain  []float64 `json:"coefficients_polynomial_load_strain"`
	LoadLimitPolynomialCreep          float64   `json:"load_limit_polynomial_creep"`
	LoadLimitPolynomialLoadStrain     float64   `json:"load_limit_polynomial_load_strain"`
	ModulusCompressionElasticArea     float64   `json:"modulus_compression_elastic_area"`
	ModulusTensionElasticArea         float64   `json:"modulus_tension_elastic_area"`
	CapacityHeat                      float64   `json:"capacity_heat"`
}

// Validate reports whether the component's properties are physically
// sound.
func (c Component) Validate(includeWarnings bool, messages *[]diagnostic.Message) bool {
	isValid := true

	if c.CoefficientExpansionLinearThermal <= -0.005 || c.CoefficientExpansionLinearThermal > 0.005 {
		isValid = false
		diagnostic.Append(messages, "CABLE COMPONENT", "invalid coefficient of thermal expansion")
	}
	if len(c.CoefficientsPolynomialCreep) == 0 {
		isValid = false
		diagnostic.Append(messages, "CABLE COMPONENT", "invalid creep coefficients")
	}
	if len(c.CoefficientsPolynomialLoadStrain) == 0 {
		isValid = false
		diagnostic.Append(messages, "CABLE COMPONENT", "invalid load-strain coefficients")
	}
	if c.LoadLimitPolynomialCreep < 0 {
		isValid = false
		diagnostic.Append(messages, "CABLE COMPONENT", "invalid creep polynomial limit")
	}
	if c.LoadLimitPolynomialLoadStrain < 0 {
		isValid = false
		diagnostic.Append(messages, "CABLE COMPONENT", "invalid load-strain polynomial limit")
	}
	if c.ModulusCompressionElasticArea < 0 {
		isValid = false
		diagnostic.Append(messages, "CABLE COMPONENT", "invalid compression elastic area modulus")
	}
	if c.ModulusTensionElasticArea < 0 {
		isValid = false
		diagnostic.Append(messages, "CABLE COMPONENT", "invalid tension elastic area modulus")
	}

	return isValid
}

// LoadLimit returns the component's polynomial load limit for the given
// active polynomial.
func (c Component) LoadLimit(active PolynomialType) float64 {
	if active == Creep {
		return c.LoadLimitPolynomialCreep
	}
	return c.LoadLimitPolynomialLoadStrain
}

// PolynomialCoefficients returns the component's polynomial coefficients
// for the given active polynomial.
func (c Component) PolynomialCoefficients(active PolynomialType) []float64 {
	if active == Creep {
		return c.CoefficientsPolynomialCreep
	}
	return c.CoefficientsPolynomialLoadStrain
}

// ResistancePoint is a single AC resistance value datumed at a reference
// temperature.
type ResistancePoint struct {
	Temperature float64 `json:"temperature"`
	Resistance  float64 `json:"resistance"`
}

// Cable is the immutable material description of a transmission cable.
type Cable struct {
	Name                            string            `json:"name"`
	AreaPhysical                    float64           `json:"area_physical"`
	Diameter                        float64           `json:"diameter"`
	WeightUnit                      float64           `json:"weight_unit"`
	StrengthRated                   float64           `json:"strength_rated"`
	Absorptivity                    float64           `json:"absorptivity"`
	Emissivity                      float64           `json:"emissivity"`
	TemperaturePropertiesComponents float64           `json:"temperature_properties_components"`
	ResistancesAC                   []ResistancePoint `json:"resistances_ac"`
	ComponentCore                   Component         `json:"component_core"`
	ComponentShell                  Component         `json:"component_shell"`
}

// LoadFromFile loads a cable definition from a JSON file.
func LoadFromFile(filepath string) (*Cable, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}

	var c Cable
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	c.SortResistances()

	var messages []diagnostic.Message
	if !c.Validate(false, &messages) {
		if len(messages) > 0 {
			return nil, fmt.Errorf("invalid cable definition: %s", messages[0].Description)
		}
		return nil, fmt.Errorf("invalid cable definition")
	}

	return &c, nil
}

// SortResistances sorts the AC resistance table by temperature, the
// order Resistance's interpolation/extrapolation requires.
func (c *Cable) SortResistances() {
	sort.Slice(c.ResistancesAC, func(i, j int) bool {
		return c.ResistancesAC[i].Temperature < c.ResistancesAC[j].Temperature
	})
}

// Resistance returns the AC resistance at temperature t, linearly
// interpolated between the two bracketing table points, or extrapolated
// from the nearest pair if t falls outside the table's range.
func (c Cable) Resistance(t float64) (float64, bool) {
	n := len(c.ResistancesAC)
	if n == 0 {
		return sentinel.Invalid, false
	}
	if n == 1 {
		return c.ResistancesAC[0].Resistance, true
	}

	points := c.ResistancesAC
	var lo, hi int
	switch {
	case t <= points[0].Temperature:
		lo, hi = 0, 1
	case t >= points[n-1].Temperature:
		lo, hi = n-2, n-1
	default:
		lo, hi = 0, 1
		for i := 0; i < n-1; i++ {
			if points[i].Temperature <= t && t <= points[i+1].Temperature {
				lo, hi = i, i+1
				break
			}
		}
	}

	t0, t1 := points[lo].Temperature, points[hi].Temperature
	r0, r1 := points[lo].Resistance, points[hi].Resistance
	if t1 == t0 {
		return r0, true
	}
	return r0 + (r1-r0)*(t-t0)/(t1-t0), true
}

// Validate reports whether the cable's material properties are
// physically sound.
func (c Cable) Validate(includeWarnings bool, messages *[]diagnostic.Message) bool {
	isValid := true

	if c.AreaPhysical <= 0 {
		isValid = false
		diagnostic.Append(messages, "CABLE", "invalid physical area")
	}
	if c.Diameter <= 0 || (includeWarnings && c.Diameter > 3) {
		isValid = false
		diagnostic.Append(messages, "CABLE", "invalid diameter")
	}
	if c.StrengthRated < 0 {
		isValid = false
		diagnostic.Append(messages, "CABLE", "invalid rated strength")
	}
	if c.TemperaturePropertiesComponents < 0 {
		isValid = false
		diagnostic.Append(messages, "CABLE", "invalid component properties temperature")
	}
	if c.WeightUnit <= 0 || (includeWarnings && c.WeightUnit > 10) {
		isValid = false
		diagnostic.Append(messages, "CABLE", "invalid unit weight")
	}
	if len(c.ResistancesAC) == 0 {
		isValid = false
		diagnostic.Append(messages, "CABLE", "invalid AC resistance table")
	}

	if !c.ComponentCore.Validate(includeWarnings, messages) {
		isValid = false
	}
	if !c.ComponentShell.Validate(includeWarnings, messages) {
		isValid = false
	}

	return isValid
}

// State describes the thermal and historical condition of a cable at an
// analysis instant: its temperature, the stretch load and temperature it
// was last stretched at, and which polynomial is currently active.
type State struct {
	Temperature        float64
	LoadStretch        float64
	TemperatureStretch float64
	PolynomialType     PolynomialType
}
