package gesture

import "math"

// Pinch scales the sphere radius relative to a committed baseline. Changes
// preview scale×baseline; End commits it as the new baseline.
type Pinch struct {
	enabled  bool
	active   bool
	baseline float64
	radius   float64
}

func NewPinch(radius float64) *Pinch {
	r := ClampRadius(radius)
	return &Pinch{enabled: true, baseline: r, radius: r}
}

func (p *Pinch) Enabled() bool { return p.enabled }

// SetEnabled turns pinch handling on or off. Disabling mid-gesture drops
// the preview and restores the committed radius.
func (p *Pinch) SetEnabled(v bool) {
	p.enabled = v
	if !v && p.active {
		p.active = false
		p.radius = p.baseline
	}
}

func (p *Pinch) Active() bool { return p.active }

// Radius returns the live radius, including any uncommitted preview.
func (p *Pinch) Radius() float64 { return p.radius }

// Baseline returns the last committed radius.
func (p *Pinch) Baseline() float64 { return p.baseline }

// Rebase sets both the live radius and the committed baseline, as after an
// explicit radius change, a zoom reset or an auto-fit.
func (p *Pinch) Rebase(radius float64) {
	r := ClampRadius(radius)
	p.radius = r
	p.baseline = r
	p.active = false
}

// Begin captures the current radius as the baseline.
func (p *Pinch) Begin() {
	if !p.enabled {
		return
	}
	p.active = true
	p.baseline = p.radius
}

// Change previews scale×baseline without committing it.
func (p *Pinch) Change(scale float64) float64 {
	if !p.enabled {
		return p.radius
	}
	if !p.active {
		p.Begin()
	}
	p.radius = p.scaled(scale)
	return p.radius
}

// End commits scale×baseline as the new baseline.
func (p *Pinch) End(scale float64) float64 {
	if !p.enabled {
		return p.radius
	}
	p.radius = p.scaled(scale)
	p.baseline = p.radius
	p.active = false
	return p.radius
}

func (p *Pinch) scaled(scale float64) float64 {
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return p.baseline
	}
	return ClampRadius(scale * p.baseline)
}

// ClampRadius maps negative and NaN radii to 0.
func ClampRadius(r float64) float64 {
	if r < 0 || math.IsNaN(r) {
		return 0
	}
	return r
}
