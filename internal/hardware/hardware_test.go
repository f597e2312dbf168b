package hardware_test

import (
	"math"
	"testing"

	"github.com/catenarytools/sagtension/internal/catenary"
	"github.com/catenarytools/sagtension/internal/hardware"
	"github.com/catenarytools/sagtension/internal/vector"
)

func almostEqual(t *testing.T, got, want, tol float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %v, want %v (tol %v)", msg, got, want, tol)
	}
}

func levelSpanCatenary() catenary.Catenary3D {
	c := catenary.Catenary3D{
		SpacingEndpoints: vector.New3D(1200, 0, 0),
		WeightUnit:       vector.New3D(0, 0, 1.094),
	}
	c.SetTensionHorizontal(6000)
	return c
}

// symmetricTangentSolver is a tangent (straight-line, 180-degree) suspension
// attachment with identical back and ahead spans: by the local frame's own
// construction (x bisects the angle between the two catenary tensions), the
// combined cable tension should carry no horizontal component.
func symmetricTangentSolver() hardware.EquilibriumSolver {
	return hardware.EquilibriumSolver{
		AngleCatenaries:     180,
		AngleHardware:       0,
		CatenaryAhead:       levelSpanCatenary(),
		CatenaryBack:        levelSpanCatenary(),
		DirectionCatenaries: catenary.Positive,
	}
}

func TestEquilibriumSolverTangentCableTensionHasNoHorizontalComponent(t *testing.T) {
	s := symmetricTangentSolver()
	tension, ok := s.TensionCable()
	if !ok {
		t.Fatal("expected TensionCable to succeed")
	}
	almostEqual(t, tension.X, 0, 1e-6, "longitudinal tension should cancel at a symmetric tangent attachment")
	almostEqual(t, tension.Y, 0, 1e-6, "transverse tension should cancel with no wind load")
	if tension.Z >= 0 {
		t.Errorf("expected a net downward cable tension at the attachment, got Z=%v", tension.Z)
	}
}

func TestEquilibriumSolverAngleIsSelfConsistentWithImbalance(t *testing.T) {
	s := symmetricTangentSolver()
	angle, ok := s.AngleEquilibrium()
	if !ok {
		t.Fatal("expected AngleEquilibrium to succeed")
	}

	atEquilibrium := symmetricTangentSolver()
	atEquilibrium.AngleHardware = angle
	imbalance, ok := atEquilibrium.TensionImbalance()
	if !ok {
		t.Fatal("expected TensionImbalance to succeed")
	}
	almostEqual(t, imbalance, 0, 1e-6, "setting the hardware angle to the solved equilibrium angle should leave no residual imbalance")
}

func TestEquilibriumSolverValidateRejectsOutOfRangeAngle(t *testing.T) {
	s := symmetricTangentSolver()
	s.AngleCatenaries = 200
	if s.Validate(false, nil) {
		t.Error("expected Validate to reject an angle between catenaries outside [0, 180]")
	}
}

// tangentLine is a straight three-structure line (0, 1000, 2000 along x),
// so the middle suspension attachment's solved position should settle
// directly below its structure point (no sideways swing is needed).
func tangentLine() []vector.Point3D {
	return []vector.Point3D{
		{X: 0, Y: 0, Z: 0},
		{X: 1000, Y: 0, Z: 0},
		{X: 2000, Y: 0, Z: 0},
	}
}

func TestPositionLocatorTangentLineSwingsStraightDown(t *testing.T) {
	locator := hardware.PositionLocator{
		TensionHorizontal: 6000,
		WeightUnit:        vector.New3D(0, 0, 1.094),
		PointsStructure:   tangentLine(),
		Hardwares:         []hardware.Hardware{{Length: 0}, {Length: 8}, {Length: 0}},
	}

	points, ok := locator.PointsCableAttachment()
	if !ok {
		t.Fatal("expected the locator to converge")
	}
	if len(points) != 3 {
		t.Fatalf("expected 3 solved attachment points, got %v", len(points))
	}

	middle := points[1]
	almostEqual(t, middle.X, 1000, 1e-3, "a tangent attachment should not swing longitudinally")
	almostEqual(t, middle.Y, 0, 1e-3, "a tangent attachment should not swing transversely")
	if middle.Z >= 0 {
		t.Errorf("expected the suspension hardware to hang below its structure point, got Z=%v", middle.Z)
	}
}

func TestPositionLocatorValidateRejectsHorizontalWeight(t *testing.T) {
	locator := hardware.PositionLocator{
		TensionHorizontal: 6000,
		WeightUnit:        vector.New3D(1, 0, 1.094),
		PointsStructure:   tangentLine(),
		Hardwares:         []hardware.Hardware{{Length: 0}, {Length: 8}, {Length: 0}},
	}
	if locator.Validate(false, nil) {
		t.Error("expected Validate to reject a nonzero horizontal unit weight")
	}
}

func TestPositionLocatorPointsCableSamplesEndpoints(t *testing.T) {
	locator := hardware.PositionLocator{
		TensionHorizontal: 6000,
		WeightUnit:        vector.New3D(0, 0, 1.094),
		PointsStructure:   tangentLine(),
		Hardwares:         []hardware.Hardware{{Length: 0}, {Length: 8}, {Length: 0}},
	}

	points, ok := locator.PointsCable(0, 5)
	if !ok {
		t.Fatal("expected PointsCable to succeed")
	}
	if len(points) != 5 {
		t.Fatalf("expected 5 sampled points, got %v", len(points))
	}

	attachments, _ := locator.PointsCableAttachment()
	almostEqual(t, points[0].X, attachments[0].X, 1e-3, "the first sampled point should match the span's back attachment")
	almostEqual(t, points[len(points)-1].X, attachments[1].X, 1e-3, "the last sampled point should match the span's ahead attachment")
}
