// Package polynomial evaluates single-variable polynomials and inverts
// them numerically, the building block behind every stress-strain curve
// in the cable elongation model.
package polynomial

import (
	"math"

	"github.com/catenarytools/sagtension/internal/diagnostic"
	"github.com/catenarytools/sagtension/internal/sentinel"
)

// maxIterationsX caps the Newton search performed by X.
const maxIterationsX = 100

// Polynomial is y = sum(coefficients[i] * x^i). Coefficients are ordered
// from the constant term up, matching how the elongation-model curve
// fits are tabulated.
type Polynomial struct {
	Coefficients []float64

	derivative    []float64
	hasDerivative bool
}

// New builds a Polynomial from its coefficients, constant term first.
func New(coefficients []float64) Polynomial {
	return Polynomial{Coefficients: append([]float64(nil), coefficients...)}
}

// OrderMax returns the highest power present in the polynomial.
func (p Polynomial) OrderMax() int {
	return len(p.Coefficients) - 1
}

// Y evaluates the polynomial at x.
func (p Polynomial) Y(x float64) float64 {
	y := 0.0
	for order, coefficient := range p.Coefficients {
		y += coefficient * math.Pow(x, float64(order))
	}
	return y
}

// ensure lazily computes and caches the derivative coefficients,
// returning them directly rather than mutating a member the caller can
// observe.
func (p *Polynomial) ensure() []float64 {
	if p.hasDerivative {
		return p.derivative
	}

	orderMax := p.OrderMax()
	derivative := make([]float64, 0, orderMax)
	for order := 1; order <= orderMax; order++ {
		derivative = append(derivative, p.Coefficients[order]*float64(order))
	}

	p.derivative = derivative
	p.hasDerivative = true
	return derivative
}

// Derivative returns the polynomial's derivative.
func (p *Polynomial) Derivative() Polynomial {
	return New(p.ensure())
}

// Slope returns the derivative's value at x.
func (p *Polynomial) Slope(x float64) float64 {
	derivative := New(p.ensure())
	return derivative.Y(x)
}

// X inverts the polynomial, solving for the x satisfying Y(x) == y, via
// Newton's method started from xGuess. decimalPrecisionY sets the
// convergence tolerance on y, in decimal places. Returns the best x found
// and whether the search converged within the iteration cap.
func (p *Polynomial) X(y float64, decimalPrecisionY int, xGuess float64) (float64, bool) {
	shifted := append([]float64(nil), p.Coefficients...)
	if len(shifted) == 0 {
		return sentinel.Invalid, false
	}

	derivativeCoeffs := p.ensure()
	derivative := New(derivativeCoeffs)

	shifted[0] -= y
	shiftedPolynomial := New(shifted)

	precisionY := 1 / math.Pow(10, float64(decimalPrecisionY))

	x := xGuess
	functionY := math.Inf(1)
	for iter := 0; precisionY < math.Abs(functionY) && iter < maxIterationsX; iter++ {
		functionY = shiftedPolynomial.Y(x)
		derivativeY := derivative.Y(x)
		if derivativeY != 0 {
			x = x - functionY/derivativeY
		}
	}

	return x, precisionY >= math.Abs(functionY)
}

// Validate reports whether the polynomial has usable coefficients,
// appending diagnostic messages to messages if non-nil.
func (p Polynomial) Validate(messages *[]diagnostic.Message) bool {
	if len(p.Coefficients) == 0 {
		diagnostic.Append(messages, "POLYNOMIAL", "no coefficients")
		return false
	}
	return true
}
