// Package weather models the ice/wind/temperature conditions a cable is
// analyzed under, and derives the per-unit-length load those conditions
// place on it.
package weather

import (
	"math"

	"github.com/catenarytools/sagtension/internal/cable"
	"github.com/catenarytools/sagtension/internal/diagnostic"
)

// LoadCase is a weather condition used to derive a cable's per-unit
// transverse and vertical load: an ice accretion (thickness, density), a
// transverse wind pressure, and the cable's own temperature under that
// condition.
type LoadCase struct {
	Description      string
	ThicknessIce     float64
	DensityIce       float64
	PressureWind     float64
	TemperatureCable float64
}

// Validate reports whether the load case's values are physically sound.
func (c LoadCase) Validate(includeWarnings bool, messages *[]diagnostic.Message) bool {
	isValid := true

	if c.ThicknessIce < 0 {
		isValid = false
		diagnostic.Append(messages, "WEATHER LOAD CASE", "invalid ice thickness")
	}
	if c.DensityIce < 0 || (includeWarnings && c.DensityIce > 0 && c.DensityIce < 50) {
		isValid = false
		diagnostic.Append(messages, "WEATHER LOAD CASE", "invalid ice density")
	}
	if c.PressureWind < 0 {
		isValid = false
		diagnostic.Append(messages, "WEATHER LOAD CASE", "invalid wind pressure")
	}

	return isValid
}

// UnitLoad computes the vertical and transverse per-unit-length load a
// cable experiences under this weather case: vertical is the cable's own
// weight plus the weight of any ice accretion (treated as an annulus of
// thickness ThicknessIce around the cable); transverse is the wind
// pressure acting on the iced cable's projected width.
func UnitLoad(c cable.Cable, loadCase LoadCase) (vertical, transverse float64) {
	iceWeight := loadCase.DensityIce * math.Pi * loadCase.ThicknessIce * (c.Diameter + loadCase.ThicknessIce)
	vertical = c.WeightUnit + iceWeight
	transverse = loadCase.PressureWind * (c.Diameter + 2*loadCase.ThicknessIce)
	return vertical, transverse
}
