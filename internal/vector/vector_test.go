package vector_test

import (
	"math"
	"testing"

	"github.com/catenarytools/sagtension/internal/vector"
)

func almostEqual(t *testing.T, got, want, tol float64, msg string) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s: got %v, want %v (tol %v)", msg, got, want, tol)
	}
}

func TestVector2DMagnitude(t *testing.T) {
	v := vector.New2D(3, 4)
	almostEqual(t, v.Magnitude(), 5, 1e-9, "Magnitude")
}

func TestVector2DAngleQuadrants(t *testing.T) {
	cases := []struct {
		name string
		v    vector.Vector2D
		want float64
	}{
		{"quadrant I", vector.New2D(1, 1), 45},
		{"quadrant II", vector.New2D(-1, 1), 135},
		{"quadrant III", vector.New2D(-1, -1), 225},
		{"quadrant IV", vector.New2D(1, -1), 315},
		{"positive X axis", vector.New2D(1, 0), 0},
		{"positive Y axis", vector.New2D(0, 1), 90},
		{"negative X axis", vector.New2D(-1, 0), 180},
		{"negative Y axis", vector.New2D(0, -1), 270},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			almostEqual(t, c.v.Angle(false), c.want, 1e-6, "Angle")
		})
	}
}

func TestVector2DAngleNegative(t *testing.T) {
	v := vector.New2D(1, -1)
	almostEqual(t, v.Angle(true), -45, 1e-6, "negative Angle")
}

func TestVector2DRotate(t *testing.T) {
	v := vector.New2D(1, 0)
	v.Rotate(90)
	almostEqual(t, v.X, 0, 1e-6, "Rotate X")
	almostEqual(t, v.Y, 1, 1e-6, "Rotate Y")
	almostEqual(t, v.Magnitude(), 1, 1e-9, "Rotate magnitude preserved")
}

func TestVector2DRotateBelowSnapThreshold(t *testing.T) {
	v := vector.New2D(1, 0)
	v.Rotate(0.00001)
	almostEqual(t, v.X, 1, 1e-12, "no-op rotate X")
	almostEqual(t, v.Y, 0, 1e-12, "no-op rotate Y")
}

func TestVector2DScale(t *testing.T) {
	v := vector.New2D(2, -3)
	v.Scale(2.5)
	almostEqual(t, v.X, 5, 1e-9, "Scale X")
	almostEqual(t, v.Y, -7.5, 1e-9, "Scale Y")
}

func TestVector3DMagnitude(t *testing.T) {
	v := vector.New3D(2, 3, 6)
	almostEqual(t, v.Magnitude(), 7, 1e-9, "Magnitude")
}

func TestVector3DPlanarAngle(t *testing.T) {
	v := vector.New3D(0, 1, 1)
	almostEqual(t, v.Angle(vector.YZ, false), 45, 1e-6, "YZ plane angle")
	almostEqual(t, v.Angle(vector.ZY, false), 45, 1e-6, "ZY plane angle")
}

func TestVector3DRotateLeavesPerpendicularComponent(t *testing.T) {
	v := vector.New3D(1, 0, 5)
	v.Rotate(vector.XY, 90)
	almostEqual(t, v.Z, 5, 1e-9, "perpendicular component unchanged")
	almostEqual(t, v.X, 0, 1e-6, "rotated X")
	almostEqual(t, v.Y, 1, 1e-6, "rotated Y")
}

func TestSphericalPoint3DToPoint3D(t *testing.T) {
	s := vector.SphericalPoint3D{Radius: 10, AngleX: 0, AngleZ: 90}
	p := s.ToPoint3D()
	almostEqual(t, p.X, 0, 1e-6, "X")
	almostEqual(t, p.Y, 0, 1e-6, "Y")
	almostEqual(t, p.Z, 10, 1e-6, "Z")

	s2 := vector.SphericalPoint3D{Radius: 10, AngleX: 0, AngleZ: 0}
	p2 := s2.ToPoint3D()
	almostEqual(t, p2.X, 10, 1e-6, "X horizontal")
	almostEqual(t, p2.Y, 0, 1e-6, "Y horizontal")
	almostEqual(t, p2.Z, 0, 1e-6, "Z horizontal")
}
