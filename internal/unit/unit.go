// Package unit converts the angle/force/length/stress/temperature values
// that flow between the consistent-unit computational core and the
// imperial/metric units a caller typically wants to read or supply.
package unit

import (
	"math"

	"github.com/catenarytools/sagtension/internal/sentinel"
)

// System selects which unit system a caller's input/output values are in.
// The computational core itself is unit-agnostic; System only matters at
// the Convert* boundary.
type System int

const (
	Imperial System = iota
	Metric
)

// Pi mirrors the fixed-precision constant the original analysis software
// compiled its trig tables against, so angle round-trips reproduce exactly.
const Pi = 3.14159265358979

// convert scales value by factor raised to exponent, inverting the factor
// when the unit being converted from is not in the numerator. exponent
// handles area/volume-style conversions (e.g. exponent 2 for an area in
// length-squared units).
func convert(value, factor float64, exponent int, numerator bool) float64 {
	factorAdj := math.Pow(factor, float64(exponent))
	if !numerator {
		factorAdj = 1 / factorAdj
	}
	return value * factorAdj
}

// Angle conversion factors.
const (
	angleDegreesToRadians = Pi / 180.0
	angleRadiansToDegrees = 180.0 / Pi
)

// AngleConversion identifies an angle unit conversion.
type AngleConversion int

const (
	DegreesToRadians AngleConversion = iota
	RadiansToDegrees
)

// ConvertAngle converts value between degrees and radians.
func ConvertAngle(value float64, kind AngleConversion, exponent int, numerator bool) float64 {
	switch kind {
	case DegreesToRadians:
		return convert(value, angleDegreesToRadians, exponent, numerator)
	case RadiansToDegrees:
		return convert(value, angleRadiansToDegrees, exponent, numerator)
	default:
		return sentinel.Invalid
	}
}

// Force conversion factors.
const (
	forceNewtonsToPounds = 1.0 / 4.4482216152605
	forcePoundsToNewtons = 4.4482216152605
)

// ForceConversion identifies a force unit conversion.
type ForceConversion int

const (
	NewtonsToPounds ForceConversion = iota
	PoundsToNewtons
)

// ConvertForce converts value between newtons and pounds-force.
func ConvertForce(value float64, kind ForceConversion, exponent int, numerator bool) float64 {
	switch kind {
	case NewtonsToPounds:
		return convert(value, forceNewtonsToPounds, exponent, numerator)
	case PoundsToNewtons:
		return convert(value, forcePoundsToNewtons, exponent, numerator)
	default:
		return sentinel.Invalid
	}
}

// Length conversion factors.
const (
	lengthCentimetersToMeters = 1.0 / 100
	lengthFeetToInches        = 12.0
	lengthFeetToMeters        = 0.3048
	lengthFeetToMiles         = 1.0 / 5280.0
	lengthInchesToFeet        = 1.0 / 12.0
	lengthKilometersToMeters  = 1000.0
	lengthMetersToCentimeters = 100.0
	lengthMetersToFeet        = 1.0 / 0.3048
	lengthMetersToKilometers  = 1.0 / 1000.0
	lengthMetersToMillimeters = 1000.0
	lengthMilesToFeet         = 5280.0
	lengthMillimetersToMeters = 1.0 / 1000.0
)

// LengthConversion identifies a length unit conversion.
type LengthConversion int

const (
	CentimetersToMeters LengthConversion = iota
	FeetToInches
	FeetToMeters
	FeetToMiles
	InchesToFeet
	KilometersToMeters
	MetersToCentimeters
	MetersToFeet
	MetersToKilometers
	MetersToMillimeters
	MilesToFeet
	MillimetersToMeters
)

// ConvertLength converts value between the named length units.
func ConvertLength(value float64, kind LengthConversion, exponent int, numerator bool) float64 {
	switch kind {
	case CentimetersToMeters:
		return convert(value, lengthCentimetersToMeters, exponent, numerator)
	case FeetToInches:
		return convert(value, lengthFeetToInches, exponent, numerator)
	case FeetToMeters:
		return convert(value, lengthFeetToMeters, exponent, numerator)
	case FeetToMiles:
		return convert(value, lengthFeetToMiles, exponent, numerator)
	case InchesToFeet:
		return convert(value, lengthInchesToFeet, exponent, numerator)
	case KilometersToMeters:
		return convert(value, lengthKilometersToMeters, exponent, numerator)
	case MetersToCentimeters:
		return convert(value, lengthMetersToCentimeters, exponent, numerator)
	case MetersToFeet:
		return convert(value, lengthMetersToFeet, exponent, numerator)
	case MetersToKilometers:
		return convert(value, lengthMetersToKilometers, exponent, numerator)
	case MetersToMillimeters:
		return convert(value, lengthMetersToMillimeters, exponent, numerator)
	case MilesToFeet:
		return convert(value, lengthMilesToFeet, exponent, numerator)
	case MillimetersToMeters:
		return convert(value, lengthMillimetersToMeters, exponent, numerator)
	default:
		return sentinel.Invalid
	}
}

// Stress/pressure conversion factors.
const (
	stressMegaPascalToPascal = 1000000.0
	stressPascalToMegaPascal = 1.0 / 1000000.0
	stressPascalToPsf        = 1.0 / 47.88026
	stressPsfToPascal        = 47.88026
	stressPsfToPsi           = 1.0 / 144.0
	stressPsiToPsf           = 144.0
)

// StressConversion identifies a stress/pressure unit conversion.
type StressConversion int

const (
	MegaPascalToPascal StressConversion = iota
	PascalToMegaPascal
	PascalToPsf
	PsfToPascal
	PsfToPsi
	PsiToPsf
)

// ConvertStress converts value between the named stress/pressure units.
func ConvertStress(value float64, kind StressConversion, exponent int, numerator bool) float64 {
	switch kind {
	case MegaPascalToPascal:
		return convert(value, stressMegaPascalToPascal, exponent, numerator)
	case PascalToMegaPascal:
		return convert(value, stressPascalToMegaPascal, exponent, numerator)
	case PascalToPsf:
		return convert(value, stressPascalToPsf, exponent, numerator)
	case PsfToPascal:
		return convert(value, stressPsfToPascal, exponent, numerator)
	case PsfToPsi:
		return convert(value, stressPsfToPsi, exponent, numerator)
	case PsiToPsf:
		return convert(value, stressPsiToPsf, exponent, numerator)
	default:
		return sentinel.Invalid
	}
}

// Temperature conversion factors and shifts.
const (
	temperatureKelvinToRankine = 1.8
	temperatureRankineToKelvin = 1.0 / 1.8

	temperatureShiftCelsiusToFahrenheit = 32.0
	temperatureShiftCelsiusToKelvin     = 273.15
	temperatureShiftFahrenheitToCelsius = -32.0
	temperatureShiftFahrenheitToRankine = 459.67
	temperatureShiftKelvinToCelsius     = -273.15
	temperatureShiftRankineToFahrenheit = -459.67
)

// TemperatureConversion identifies a temperature unit conversion.
type TemperatureConversion int

const (
	CelsiusToFahrenheit TemperatureConversion = iota
	CelsiusToKelvin
	FahrenheitToCelsius
	FahrenheitToRankine
	KelvinToCelsius
	KelvinToRankine
	RankineToFahrenheit
	RankineToKelvin
)

// ConvertTemperature converts value between the named temperature scales.
// exponent and numerator only affect the Kelvin/Rankine span conversions
// nested inside the Celsius/Fahrenheit cases; the additive shifts ignore
// them, matching how a degree-span and an absolute temperature convert
// differently.
func ConvertTemperature(value float64, kind TemperatureConversion, exponent int, numerator bool) float64 {
	switch kind {
	case CelsiusToFahrenheit:
		span := convert(value, temperatureKelvinToRankine, exponent, numerator)
		return span + temperatureShiftCelsiusToFahrenheit
	case CelsiusToKelvin:
		return value + temperatureShiftCelsiusToKelvin
	case FahrenheitToCelsius:
		shifted := value + temperatureShiftFahrenheitToCelsius
		return convert(shifted, temperatureRankineToKelvin, exponent, numerator)
	case FahrenheitToRankine:
		return value + temperatureShiftFahrenheitToRankine
	case KelvinToCelsius:
		return value + temperatureShiftKelvinToCelsius
	case KelvinToRankine:
		return convert(value, temperatureKelvinToRankine, exponent, numerator)
	case RankineToFahrenheit:
		return value + temperatureShiftRankineToFahrenheit
	case RankineToKelvin:
		return convert(value, temperatureRankineToKelvin, exponent, numerator)
	default:
		return sentinel.Invalid
	}
}
