package unit_test

import (
	"math"
	"testing"

	"github.com/catenarytools/sagtension/internal/unit"
)

func almostEqual(t *testing.T, got, want, tol float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %v, want %v (tol %v)", msg, got, want, tol)
	}
}

func TestConvertAngleRoundTrip(t *testing.T) {
	radians := unit.ConvertAngle(45, unit.DegreesToRadians, 1, true)
	degrees := unit.ConvertAngle(radians, unit.RadiansToDegrees, 1, true)
	almostEqual(t, degrees, 45, 1e-9, "degrees should round-trip through radians")
}

func TestConvertForceRoundTrip(t *testing.T) {
	pounds := unit.ConvertForce(1000, unit.NewtonsToPounds, 1, true)
	newtons := unit.ConvertForce(pounds, unit.PoundsToNewtons, 1, true)
	almostEqual(t, newtons, 1000, 1e-6, "newtons should round-trip through pounds-force")
}

func TestConvertLengthRoundTrip(t *testing.T) {
	meters := unit.ConvertLength(100, unit.FeetToMeters, 1, true)
	feet := unit.ConvertLength(meters, unit.MetersToFeet, 1, true)
	almostEqual(t, feet, 100, 1e-9, "feet should round-trip through meters")

	inches := unit.ConvertLength(10, unit.FeetToInches, 1, true)
	almostEqual(t, inches, 120, 1e-9, "10 feet should convert to 120 inches")
	backToFeet := unit.ConvertLength(inches, unit.InchesToFeet, 1, true)
	almostEqual(t, backToFeet, 10, 1e-9, "inches should round-trip through feet")
}

func TestConvertLengthExponentHandlesArea(t *testing.T) {
	areaMeters := unit.ConvertLength(10, unit.FeetToMeters, 2, true)
	areaFeet := unit.ConvertLength(areaMeters, unit.MetersToFeet, 2, true)
	almostEqual(t, areaFeet, 10, 1e-9, "a squared-length (area) conversion should round-trip with exponent 2")
}

func TestConvertLengthNumeratorFalseInverts(t *testing.T) {
	direct := unit.ConvertLength(10, unit.FeetToMeters, 1, true)
	inverted := unit.ConvertLength(10, unit.MetersToFeet, 1, false)
	almostEqual(t, inverted, direct, 1e-9, "converting with the factor denominator-side should match converting with the inverse kind")
}

func TestConvertStressRoundTrip(t *testing.T) {
	pascal := unit.ConvertStress(2000, unit.PsfToPascal, 1, true)
	psf := unit.ConvertStress(pascal, unit.PascalToPsf, 1, true)
	almostEqual(t, psf, 2000, 1e-6, "psf should round-trip through pascals")

	psi := unit.ConvertStress(288, unit.PsfToPsi, 1, true)
	almostEqual(t, psi, 2, 1e-9, "288 psf should convert to 2 psi")
	backToPsf := unit.ConvertStress(psi, unit.PsiToPsf, 1, true)
	almostEqual(t, backToPsf, 288, 1e-9, "psi should round-trip through psf")
}

func TestConvertTemperatureCelsiusFahrenheitRoundTrip(t *testing.T) {
	f := unit.ConvertTemperature(100, unit.CelsiusToFahrenheit, 1, true)
	almostEqual(t, f, 212, 1e-9, "100C should convert to 212F")
	c := unit.ConvertTemperature(f, unit.FahrenheitToCelsius, 1, true)
	almostEqual(t, c, 100, 1e-9, "Fahrenheit should round-trip through Celsius")
}

func TestConvertTemperatureKelvinCelsiusRoundTrip(t *testing.T) {
	k := unit.ConvertTemperature(26.85, unit.CelsiusToKelvin, 1, true)
	almostEqual(t, k, 300, 1e-9, "26.85C should convert to 300K")
	c := unit.ConvertTemperature(k, unit.KelvinToCelsius, 1, true)
	almostEqual(t, c, 26.85, 1e-9, "Kelvin should round-trip through Celsius")
}

func TestConvertTemperatureRankineFahrenheitRoundTrip(t *testing.T) {
	r := unit.ConvertTemperature(32, unit.FahrenheitToRankine, 1, true)
	f := unit.ConvertTemperature(r, unit.RankineToFahrenheit, 1, true)
	almostEqual(t, f, 32, 1e-9, "Fahrenheit should round-trip through Rankine")
}

func TestConvertTemperatureKelvinRankineRoundTrip(t *testing.T) {
	r := unit.ConvertTemperature(300, unit.KelvinToRankine, 1, true)
	k := unit.ConvertTemperature(r, unit.RankineToKelvin, 1, true)
	almostEqual(t, k, 300, 1e-9, "Kelvin should round-trip through Rankine")
}
