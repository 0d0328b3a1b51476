package gesture

import (
	"math"
	"time"
)

// VelocityWindow is how far back VelocityTracker looks when estimating
// release velocity.
const VelocityWindow = 100 * time.Millisecond

type sample struct {
	t    time.Time
	x, y float64
}

// VelocityTracker estimates pointer velocity in points per second from
// position samples, for hosts whose input layer reports positions only.
type VelocityTracker struct {
	samples []sample
}

// Reset drops all samples.
func (vt *VelocityTracker) Reset() { vt.samples = vt.samples[:0] }

// Add records a position at time t. Samples older than VelocityWindow
// relative to t are discarded.
func (vt *VelocityTracker) Add(t time.Time, x, y float64) {
	vt.samples = append(vt.samples, sample{t: t, x: x, y: y})
	cut := 0
	for cut < len(vt.samples)-1 && t.Sub(vt.samples[cut].t) > VelocityWindow {
		cut++
	}
	if cut > 0 {
		vt.samples = append(vt.samples[:0], vt.samples[cut:]...)
	}
}

// Velocity returns the displacement over the retained window divided by its
// duration, or zero with fewer than two distinct timestamps.
func (vt *VelocityTracker) Velocity() (vx, vy float64) {
	if len(vt.samples) < 2 {
		return 0, 0
	}
	first, last := vt.samples[0], vt.samples[len(vt.samples)-1]
	dt := last.t.Sub(first.t).Seconds()
	if dt <= 0 {
		return 0, 0
	}
	return (last.x - first.x) / dt, (last.y - first.y) / dt
}

// PinchScale returns the scale factor of a two-pointer gesture from the
// distance between the pointers at the start and now.
func PinchScale(startDist, dist float64) float64 {
	if !(startDist > 0) || math.IsNaN(dist) || math.IsInf(dist, 0) {
		return 1
	}
	return dist / startDist
}
