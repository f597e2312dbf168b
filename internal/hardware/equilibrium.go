// Package hardware resolves the static-equilibrium orientation of a
// suspension attachment between two catenaries, and places a line
// cable's attachment points in transmission-line coordinates.
package hardware

import (
	"github.com/catenarytools/sagtension/internal/catenary"
	"github.com/catenarytools/sagtension/internal/diagnostic"
	"github.com/catenarytools/sagtension/internal/sentinel"
	"github.com/catenarytools/sagtension/internal/vector"
)

// EquilibriumSolver finds the hardware swing angle at which a
// suspension attachment's back and ahead catenary tensions balance
// against the hardware's own reactive tension.
//
// The coordinate system is local to the attachment: the origin
// coincides with it, and the xy plane is oriented so the back and ahead
// catenary tensions sum to zero along x (x bisects the angle between
// them). For a tangent (180-degree) structure this reduces to
// x = longitudinal, y = transverse, z = vertical.
type EquilibriumSolver struct {
	AngleCatenaries     float64
	AngleHardware       float64
	CatenaryAhead       catenary.Catenary3D
	CatenaryBack        catenary.Catenary3D
	DirectionCatenaries catenary.Direction

	tensionCable     vector.Vector3D
	tensionHardware  vector.Vector3D
	tensionImbalance vector.Vector3D
	angleEquilibrium float64
	hasSolved        bool
}

// ensure recomputes the cable, hardware, and imbalance tension vectors
// and the equilibrium angle.
func (s *EquilibriumSolver) ensure() bool {
	if s.hasSolved {
		return true
	}

	angleRotateXY := (180 - s.AngleCatenaries) / 2

	back, ok := s.CatenaryBack.TensionVector(1, catenary.Negative)
	if !ok {
		return false
	}
	if s.DirectionCatenaries == catenary.Positive {
		back.Rotate(vector.XY, -angleRotateXY)
	} else {
		back.Rotate(vector.XY, angleRotateXY)
	}

	ahead, ok := s.CatenaryAhead.TensionVector(0, catenary.Positive)
	if !ok {
		return false
	}
	if s.DirectionCatenaries == catenary.Positive {
		ahead.Rotate(vector.XY, angleRotateXY)
	} else {
		ahead.Rotate(vector.XY, -angleRotateXY)
	}

	s.tensionCable = vector.Vector3D{X: back.X + ahead.X, Y: back.Y + ahead.Y, Z: back.Z + ahead.Z}

	tensionCableMagnitude := s.tensionCable.Magnitude()
	hardware := vector.Vector3D{Z: 1}
	if s.DirectionCatenaries == catenary.Positive {
		hardware.Rotate(vector.ZY, s.AngleHardware)
	} else {
		hardware.Rotate(vector.ZY, 360-s.AngleHardware)
	}
	hardware.Scale(tensionCableMagnitude)
	hardware.Rotate(vector.ZY, 180)
	s.tensionHardware = hardware

	s.tensionImbalance = vector.Vector3D{
		X: -(s.tensionHardware.X + s.tensionCable.X),
		Y: -(s.tensionHardware.Y + s.tensionCable.Y),
		Z: -(s.tensionHardware.Z + s.tensionCable.Z),
	}

	if s.DirectionCatenaries == catenary.Positive {
		s.angleEquilibrium = s.tensionCable.Angle(vector.ZY, false)
	} else {
		s.angleEquilibrium = 360 - s.tensionCable.Angle(vector.ZY, false)
	}

	s.hasSolved = true
	return true
}

// AngleEquilibrium returns the hardware swing angle (from the positive
// z-axis, in the yz plane) that balances cable and hardware tension.
func (s *EquilibriumSolver) AngleEquilibrium() (float64, bool) {
	if !s.ensure() {
		return sentinel.Invalid, false
	}
	return s.angleEquilibrium, true
}

// TensionImbalance returns the magnitude of the residual tension
// imbalance at the attachment's current (as-set) hardware angle.
func (s *EquilibriumSolver) TensionImbalance() (float64, bool) {
	if !s.ensure() {
		return sentinel.Invalid, false
	}
	return s.tensionImbalance.Magnitude(), true
}

// TensionCable returns the combined back/ahead cable tension vector, in
// the attachment's local coordinate system.
func (s *EquilibriumSolver) TensionCable() (vector.Vector3D, bool) {
	if !s.ensure() {
		return vector.Vector3D{}, false
	}
	return s.tensionCable, true
}

// Validate reports whether the solver's inputs are physically sound.
func (s *EquilibriumSolver) Validate(includeWarnings bool, messages *[]diagnostic.Message) bool {
	isValid := true

	if s.AngleCatenaries < 0 || s.AngleCatenaries > 180 {
		isValid = false
		diagnostic.Append(messages, "CABLE ATTACHMENT EQUILIBRIUM SOLVER", "invalid angle between catenaries")
	}
	if s.AngleHardware < 0 || s.AngleHardware > 180 {
		isValid = false
		diagnostic.Append(messages, "CABLE ATTACHMENT EQUILIBRIUM SOLVER", "invalid hardware angle")
	}
	if !s.CatenaryAhead.Validate(includeWarnings, messages) {
		isValid = false
	}
	if !s.CatenaryBack.Validate(includeWarnings, messages) {
		isValid = false
	}
	if !s.ensure() {
		isValid = false
		diagnostic.Append(messages, "CABLE ATTACHMENT EQUILIBRIUM SOLVER", "error solving for equilibrium")
	}

	return isValid
}
