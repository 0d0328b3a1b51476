// Package rotation owns the global orientation of the sphere.
package rotation

import (
	"math"

	"sphereview/internal/mathutil"
)

// DefaultSensitivity converts one unit of gesture travel into radians.
const DefaultSensitivity = 0.01

// Delta builds the incremental rotation for a 2-axis gesture delta:
// deltaY*sensitivity radians about the world X axis composed after
// deltaX*sensitivity radians about the world Y axis (qY × qX). A
// non-finite angle contributes no rotation about its axis.
func Delta(deltaX, deltaY, sensitivity float64) mathutil.Quat {
	rx := finiteOrZero(deltaY * sensitivity)
	ry := finiteOrZero(deltaX * sensitivity)
	if rx == 0 && ry == 0 {
		return mathutil.QuatIdentity()
	}
	qx := mathutil.QuatFromAxisAngle(rx, mathutil.AxisX)
	qy := mathutil.QuatFromAxisAngle(ry, mathutil.AxisY)
	return qy.Mul(qx)
}

func finiteOrZero(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	return a
}

// State is the cumulative rotation of the sphere relative to its rest
// orientation. The zero value is not ready; use New.
type State struct {
	q           mathutil.Quat
	sensitivity float64
}

// New returns an identity rotation using the given sensitivity.
// Non-positive sensitivity falls back to DefaultSensitivity.
func New(sensitivity float64) *State {
	s := &State{q: mathutil.QuatIdentity()}
	s.SetSensitivity(sensitivity)
	return s
}

// ApplyDelta left-multiplies the incremental rotation onto the stored one so
// drags always turn the sphere about the world axes, then renormalizes.
func (s *State) ApplyDelta(deltaX, deltaY, sensitivity float64) {
	d := Delta(deltaX, deltaY, sensitivity)
	s.q = d.Mul(s.q).Normalize()
}

// Drag applies a delta at the state's own sensitivity.
func (s *State) Drag(deltaX, deltaY float64) {
	s.ApplyDelta(deltaX, deltaY, s.sensitivity)
}

// Reset returns to the identity rotation.
func (s *State) Reset() {
	s.q = mathutil.QuatIdentity()
}

// Current returns a copy of the stored quaternion.
func (s *State) Current() mathutil.Quat {
	return s.q
}

func (s *State) Sensitivity() float64 {
	return s.sensitivity
}

func (s *State) SetSensitivity(v float64) {
	if v <= 0 {
		v = DefaultSensitivity
	}
	s.sensitivity = v
}
