package catenary_test

import (
	"math"
	"testing"

	"github.com/catenarytools/sagtension/internal/catenary"
	"github.com/catenarytools/sagtension/internal/vector"
)

func almostEqual(t *testing.T, got, want, tol float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %v, want %v (tol %v)", msg, got, want, tol)
	}
}

// levelSpan is a 1200ft level Drake span at H=6000lb, w=1.094plf. The
// expected length/sag values are hand-derived from the governing
// hyperbolic identities.
func levelSpan() catenary.Catenary2D {
	return catenary.Catenary2D{
		SpacingEndpoints:  vector.New2D(1200, 0),
		TensionHorizontal: 6000,
		WeightUnit:        1.094,
	}
}

func TestCatenary2DConstant(t *testing.T) {
	c := levelSpan()
	got, ok := c.Constant()
	if !ok {
		t.Fatal("expected Constant to succeed")
	}
	almostEqual(t, got, 6000/1.094, 1e-6, "catenary constant")
}

func TestCatenary2DLength(t *testing.T) {
	c := levelSpan()
	length, ok := c.Length()
	if !ok {
		t.Fatal("expected Length to succeed")
	}
	if length <= 1200 {
		t.Errorf("expected curve length to exceed the chord spacing, got %v", length)
	}
	almostEqual(t, length, 1202.4, 0.5, "curve length")
}

func TestCatenary2DLengthSlack(t *testing.T) {
	c := levelSpan()
	length, _ := c.Length()
	slack, ok := c.LengthSlack()
	if !ok {
		t.Fatal("expected LengthSlack to succeed")
	}
	almostEqual(t, slack, length-1200, 1e-9, "slack equals length minus spacing")
}

func TestCatenary2DSagIsPositiveForLevelSpan(t *testing.T) {
	c := levelSpan()
	sag, ok := c.Sag()
	if !ok {
		t.Fatal("expected Sag to succeed")
	}
	if sag <= 0 {
		t.Errorf("expected a positive sag for a level span, got %v", sag)
	}
	almostEqual(t, sag, 32.85, 1.0, "sag")
}

func TestCatenary2DTensionAverageClosedForm(t *testing.T) {
	c := levelSpan()
	avg, ok := c.TensionAverage(0)
	if !ok {
		t.Fatal("expected TensionAverage to succeed")
	}
	almostEqual(t, avg, 6012.3, 1.0, "average tension (Ehrenburg closed form)")
}

func TestCatenary2DTensionAverageConvergesToClosedForm(t *testing.T) {
	c := levelSpan()
	closed, _ := c.TensionAverage(0)
	sampled, ok := c.TensionAverage(2000)
	if !ok {
		t.Fatal("expected sampled TensionAverage to succeed")
	}
	almostEqual(t, sampled, closed, 0.5, "sampled average should approach the closed form")
}

func TestCatenary2DTensionMaxAtLeastHorizontal(t *testing.T) {
	c := levelSpan()
	h := c.TensionHorizontal
	max, ok := c.TensionMax()
	if !ok {
		t.Fatal("expected TensionMax to succeed")
	}
	if max < h {
		t.Errorf("expected max tension (%v) to be at least the horizontal tension (%v)", max, h)
	}
}

func TestCatenary2DTensionAtSupportsMatchesTensionMaxForLevelSpan(t *testing.T) {
	c := levelSpan()
	tLeft, _ := c.Tension(0)
	tRight, _ := c.Tension(1)
	almostEqual(t, tLeft, tRight, 1e-6, "support tension should be symmetric on a level span")

	max, _ := c.TensionMax()
	almostEqual(t, max, tLeft, 1e-6, "TensionMax should equal the (equal) support tensions")
}

func TestCatenary2DCoordinateEndpointsMatchSpacing(t *testing.T) {
	c := levelSpan()
	left, ok := c.Coordinate(0, true)
	if !ok {
		t.Fatal("expected Coordinate(0) to succeed")
	}
	right, ok := c.Coordinate(1, true)
	if !ok {
		t.Fatal("expected Coordinate(1) to succeed")
	}
	almostEqual(t, left.X, 0, 1e-6, "left endpoint X (shifted origin)")
	almostEqual(t, left.Y, 0, 1e-6, "left endpoint Y (shifted origin)")
	almostEqual(t, right.X, 1200, 1e-6, "right endpoint X (shifted origin)")
	almostEqual(t, right.Y, 0, 1e-6, "right endpoint Y on a level span")
}

func TestCatenary2DTangentAngleAtOriginIsZero(t *testing.T) {
	c := levelSpan()
	fraction, ok := c.PositionFractionOrigin()
	if !ok {
		t.Fatal("expected PositionFractionOrigin to succeed")
	}
	angle, ok := c.TangentAngle(fraction, catenary.Positive)
	if !ok {
		t.Fatal("expected TangentAngle to succeed")
	}
	almostEqual(t, angle, 0, 0.01, "tangent angle at the curve's low point")
}

func TestCatenary2DValidateRejectsNonPositiveTension(t *testing.T) {
	c := catenary.Catenary2D{SpacingEndpoints: vector.New2D(1200, 0), TensionHorizontal: 0, WeightUnit: 1.094}
	if c.Validate(false, nil) {
		t.Error("expected Validate to reject a non-positive horizontal tension")
	}
}

func TestCatenary2DValidateRejectsNonPositiveWeight(t *testing.T) {
	c := catenary.Catenary2D{SpacingEndpoints: vector.New2D(1200, 0), TensionHorizontal: 6000, WeightUnit: 0}
	if c.Validate(false, nil) {
		t.Error("expected Validate to reject a non-positive unit weight")
	}
}

func TestCatenary2DValidateRejectsBelowConstantMinimum(t *testing.T) {
	minConstant := catenary.ConstantMinimum(1200)
	c := catenary.Catenary2D{
		SpacingEndpoints:  vector.New2D(1200, 0),
		TensionHorizontal: minConstant * 1.094 * 0.5,
		WeightUnit:        1.094,
	}
	if c.Validate(false, nil) {
		t.Error("expected Validate to reject a catenary constant below the folding-back minimum")
	}
}

func TestCatenary2DValidateAcceptsLevelSpan(t *testing.T) {
	c := levelSpan()
	if !c.Validate(false, nil) {
		t.Error("expected the level-span fixture to validate")
	}
}

// inclinedSpan adds 100ft of rise over the same 1200ft horizontal
// spacing.
func inclinedSpan() catenary.Catenary2D {
	return catenary.Catenary2D{
		SpacingEndpoints:  vector.New2D(1200, 100),
		TensionHorizontal: 6000,
		WeightUnit:        1.094,
	}
}

func TestCatenary2DInclinedSpanSupportTensionsDiffer(t *testing.T) {
	c := inclinedSpan()
	tLeft, _ := c.Tension(0)
	tRight, _ := c.Tension(1)
	if tLeft >= tRight {
		t.Errorf("expected the higher (right) support to carry more tension: left=%v right=%v", tLeft, tRight)
	}
	max, _ := c.TensionMax()
	almostEqual(t, max, tRight, 1e-6, "TensionMax should equal the higher support's tension")
}

func TestCatenary3DDelegatesLengthToPlanarCase(t *testing.T) {
	c2d := levelSpan()
	length2D, _ := c2d.Length()

	c3d := catenary.Catenary3D{
		SpacingEndpoints: vector.New3D(1200, 0, 0),
		WeightUnit:       vector.New3D(0, 0, 1.094),
	}
	c3d.SetTensionHorizontal(6000)
	length3D, ok := c3d.Length()
	if !ok {
		t.Fatal("expected Catenary3D.Length to succeed")
	}
	almostEqual(t, length3D, length2D, 1e-6, "3D length should match the planar case with zero transverse load")
}

func TestCatenary3DDirectionTransverseMirrorsSwing(t *testing.T) {
	build := func(direction catenary.TransverseDirection) catenary.Catenary3D {
		c := catenary.Catenary3D{
			SpacingEndpoints:    vector.New3D(1200, 0, 0),
			WeightUnit:          vector.New3D(0, 0.5, 1.094),
			DirectionTransverse: direction,
		}
		c.SetTensionHorizontal(6000)
		return c
	}

	positive := build(catenary.TransversePositive)
	negative := build(catenary.TransverseNegative)

	coordPositive, ok := positive.Coordinate(0.5, false)
	if !ok {
		t.Fatal("expected Coordinate to succeed")
	}
	coordNegative, ok := negative.Coordinate(0.5, false)
	if !ok {
		t.Fatal("expected Coordinate to succeed")
	}

	if coordPositive.Y <= 0 {
		t.Errorf("expected a positive-side swing to push the midspan toward positive y, got %v", coordPositive.Y)
	}
	almostEqual(t, coordNegative.Y, -coordPositive.Y, 1e-9, "flipping the transverse direction should mirror the swing")
	almostEqual(t, coordNegative.Z, coordPositive.Z, 1e-9, "the vertical profile should not depend on the transverse direction")
}

func TestCatenary3DValidateRejectsTransverseSpacing(t *testing.T) {
	c := catenary.Catenary3D{
		SpacingEndpoints: vector.New3D(1200, 50, 0),
		WeightUnit:       vector.New3D(0, 0, 1.094),
	}
	c.SetTensionHorizontal(6000)
	if c.Validate(false, nil) {
		t.Error("expected Validate to reject nonzero transverse endpoint spacing")
	}
}
