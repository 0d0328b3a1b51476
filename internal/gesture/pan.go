// Package gesture turns raw pan and pinch samples into rotation and radius
// changes.
package gesture

// Rotator receives rotation deltas at its own sensitivity.
type Rotator interface {
	Drag(deltaX, deltaY float64)
}

// Decayer is the inertial session a pan hands off to on release.
type Decayer interface {
	Cancel()
	Release(velocityX, velocityY float64) bool
}

// RotationDelta maps a screen translation to rotation deltas. Screen x is
// inverted so dragging right turns the near side of the sphere right.
func RotationDelta(dx, dy float64) (deltaX, deltaY float64) {
	return -dx, dy
}

// Pan adapts pan gestures. Hosts that report incremental deltas call Move;
// hosts that report translation since the gesture began call MoveTo, which
// differences successive samples so deltas never compound.
type Pan struct {
	rot   Rotator
	decay Decayer

	enabled bool
	active  bool
	lastX   float64
	lastY   float64
}

func NewPan(rot Rotator, decay Decayer) *Pan {
	return &Pan{rot: rot, decay: decay, enabled: true}
}

func (p *Pan) Enabled() bool { return p.enabled }

// SetEnabled turns pan handling on or off. Disabling ends an active gesture
// without starting a decay session.
func (p *Pan) SetEnabled(v bool) {
	p.enabled = v
	if !v {
		p.active = false
	}
}

// Active reports whether a gesture is in progress.
func (p *Pan) Active() bool { return p.active }

// Begin starts a gesture and cancels any running decay session.
func (p *Pan) Begin() {
	if !p.enabled {
		return
	}
	if p.decay != nil {
		p.decay.Cancel()
	}
	p.active = true
	p.lastX, p.lastY = 0, 0
}

// Move applies an incremental translation. It reports whether the rotation
// changed.
func (p *Pan) Move(dx, dy float64) bool {
	if !p.enabled {
		return false
	}
	if !p.active {
		p.Begin()
	}
	if dx == 0 && dy == 0 {
		return false
	}
	p.rot.Drag(RotationDelta(dx, dy))
	return true
}

// MoveTo applies a cumulative translation measured from the gesture start.
func (p *Pan) MoveTo(tx, ty float64) bool {
	if !p.enabled {
		return false
	}
	if !p.active {
		p.Begin()
	}
	dx, dy := tx-p.lastX, ty-p.lastY
	p.lastX, p.lastY = tx, ty
	return p.Move(dx, dy)
}

// End finishes the gesture and hands the release velocity (units per
// second) to the decay session. It reports whether a session started.
func (p *Pan) End(velocityX, velocityY float64) bool {
	if !p.enabled {
		return false
	}
	p.active = false
	p.lastX, p.lastY = 0, 0
	if p.decay == nil {
		return false
	}
	return p.decay.Release(velocityX, velocityY)
}
