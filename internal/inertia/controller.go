// Package inertia keeps the sphere spinning after a pan is released,
// decaying the velocity every tick until it falls below a stop threshold.
package inertia

import (
	"math"
	"time"

	"sphereview/internal/monitoring"
)

const (
	// DefaultInterval is the tick period of a decay session.
	DefaultInterval = 16 * time.Millisecond
	// DecelerationRate is the "fast" scroll deceleration constant.
	DecelerationRate = 0.99
	// DefaultDecay is the per-tick velocity multiplier.
	DefaultDecay = DecelerationRate / 1.01
	// DefaultThreshold stops a session once both velocity components fall below it.
	DefaultThreshold = 0.1
	// VelocityDivisor converts gesture velocity (units/s) to per-tick delta units.
	VelocityDivisor = 100.0
)

// Phase is the state of the controller.
type Phase int

const (
	Idle Phase = iota
	Running
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	}
	return "unknown"
}

// Target receives the synthetic rotation deltas of a session. Spin returns
// false when the target has gone away; the session then cancels itself.
type Target interface {
	Spin(deltaX, deltaY float64) bool
}

// Config tunes a Controller. Zero fields take the defaults above.
type Config struct {
	Interval  time.Duration
	Decay     float64
	Threshold float64
}

func (c *Config) resolve() {
	if c.Interval <= 0 {
		c.Interval = DefaultInterval
	}
	if c.Decay <= 0 || c.Decay >= 1 {
		c.Decay = DefaultDecay
	}
	if c.Threshold <= 0 {
		c.Threshold = DefaultThreshold
	}
}

// Controller is the Idle → Running → Idle decay state machine. It is not
// safe for concurrent use; the host serializes Release, Cancel and ticks.
type Controller struct {
	sched  Scheduler
	target Target
	cfg    Config

	phase   Phase
	vx, vy  float64
	cancel  func()
	session uint64
	ticks   int
}

// New creates an idle controller that schedules ticks on sched and feeds
// deltas to target.
func New(sched Scheduler, target Target, cfg Config) *Controller {
	cfg.resolve()
	return &Controller{sched: sched, target: target, cfg: cfg}
}

// Release starts a session from a gesture velocity in units per second.
// Any running session is cancelled first. Velocities already below the
// threshold, or not finite, leave the controller idle; Release reports whether a session
// started.
func (c *Controller) Release(velocityX, velocityY float64) bool {
	c.Cancel()

	vx := velocityX / VelocityDivisor
	vy := velocityY / VelocityDivisor
	if c.below(vx, vy) || !finite(vx) || !finite(vy) {
		return false
	}

	c.session++
	id := c.session
	c.vx, c.vy = vx, vy
	c.ticks = 0
	c.phase = Running
	c.cancel = c.sched.Every(c.cfg.Interval, func() { c.tick(id) })
	monitoring.Debugf("inertia: session %d started v=(%.3f, %.3f)", id, vx, vy)
	return true
}

// Cancel stops a running session immediately. It is a no-op when idle.
func (c *Controller) Cancel() {
	if c.phase != Running {
		return
	}
	monitoring.Debugf("inertia: session %d cancelled after %d ticks", c.session, c.ticks)
	c.stop()
}

func (c *Controller) stop() {
	c.phase = Idle
	c.vx, c.vy = 0, 0
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

func (c *Controller) tick(id uint64) {
	// A tick from an earlier session that slipped past its cancel.
	if c.phase != Running || id != c.session {
		return
	}

	c.vx *= c.cfg.Decay
	c.vy *= c.cfg.Decay
	c.ticks++

	if c.target == nil || !c.target.Spin(-c.vx, c.vy) {
		monitoring.Logf("inertia: session %d target gone, cancelling", id)
		c.stop()
		return
	}

	if c.below(c.vx, c.vy) {
		monitoring.Debugf("inertia: session %d settled after %d ticks", id, c.ticks)
		c.stop()
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func (c *Controller) below(vx, vy float64) bool {
	return math.Abs(vx) < c.cfg.Threshold && math.Abs(vy) < c.cfg.Threshold
}

// Phase reports whether a session is running.
func (c *Controller) Phase() Phase { return c.phase }

// Running is shorthand for Phase() == Running.
func (c *Controller) Running() bool { return c.phase == Running }

// Velocity returns the current per-tick velocity, zero when idle.
func (c *Controller) Velocity() (vx, vy float64) { return c.vx, c.vy }

// Ticks returns the number of ticks run by the current or last session.
func (c *Controller) Ticks() int { return c.ticks }

// TicksToSettle predicts how many ticks a release with the given gesture
// velocity runs before settling, without scheduling anything.
func (c *Controller) TicksToSettle(velocityX, velocityY float64) int {
	vx := velocityX / VelocityDivisor
	vy := velocityY / VelocityDivisor
	n := 0
	for !c.below(vx, vy) {
		vx *= c.cfg.Decay
		vy *= c.cfg.Decay
		n++
		if math.IsNaN(vx) || math.IsNaN(vy) || n > 1<<20 {
			break
		}
	}
	return n
}
