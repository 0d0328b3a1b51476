// Package sphereview is the host-facing core of the sphere view: it owns
// the rotation, radius and decay session and hands back layout passes on
// demand.
//
// Mutators never recompute anything themselves. They bump Version, and the
// host calls RecomputeLayout when it is ready to draw.
//
// All methods are safe for concurrent use; each call is one critical
// section, and decay ticks from a clock-driven scheduler take the same lock.
package sphereview

import (
	"math"
	"sync"
	"time"

	"sphereview/internal/gesture"
	"sphereview/internal/inertia"
	"sphereview/internal/layout"
	"sphereview/internal/mathutil"
	"sphereview/internal/monitoring"
	"sphereview/internal/rotation"
	"sphereview/internal/timeutil"
)

// Options configures a new View.
type Options struct {
	ElementCount int
	Width        float64
	Height       float64
	// Radius is the home radius restored by ResetZoom. Zero means Width/2.
	Radius      float64
	Sensitivity float64
	// FlatOpacity disables depth-based opacity.
	FlatOpacity bool

	// Scheduler drives decay ticks. When nil, Clock selects a clock-driven
	// scheduler; when both are nil the view owns a frame scheduler that the
	// host advances with Advance. An external Scheduler must not run its
	// callbacks concurrently with calls into the View.
	Scheduler inertia.Scheduler
	Clock     timeutil.Clock
	Inertia   inertia.Config
}

type autoFit struct {
	width, size float64
}

// View is the sphere view core.
type View struct {
	mu sync.Mutex

	count         int
	width, height float64
	homeRadius    float64
	homeFromWidth bool
	opacity       bool

	rot    *rotation.State
	pan    *gesture.Pan
	pinch  *gesture.Pinch
	decay  *inertia.Controller
	frames *inertia.FrameScheduler
	engine *layout.Engine

	fit     *autoFit
	version uint64
	closed  bool
}

// New creates a view at the identity rotation and its home radius.
func New(opts Options) *View {
	v := &View{
		count:   clampCount(opts.ElementCount),
		width:   clampSize(opts.Width),
		height:  clampSize(opts.Height),
		opacity: !opts.FlatOpacity,
		rot:     rotation.New(opts.Sensitivity),
		engine:  layout.NewEngine(),
	}
	if opts.Radius > 0 {
		v.homeRadius = opts.Radius
	} else {
		v.homeFromWidth = true
		v.homeRadius = v.width / 2
	}

	sched := opts.Scheduler
	switch {
	case sched != nil:
	case opts.Clock != nil:
		sched = inertia.NewClockScheduler(opts.Clock, &v.mu)
	default:
		v.frames = inertia.NewFrameScheduler()
		sched = v.frames
	}

	v.decay = inertia.New(sched, spinner{v}, opts.Inertia)
	v.pan = gesture.NewPan(v.rot, v.decay)
	v.pinch = gesture.NewPinch(v.homeRadius)
	return v
}

// spinner applies decay ticks. The scheduler calls it with v.mu held.
type spinner struct{ v *View }

func (s spinner) Spin(dx, dy float64) bool {
	if s.v.closed {
		return false
	}
	s.v.rot.Drag(dx, dy)
	s.v.version++
	return true
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func clampSize(s float64) float64 {
	if s < 0 || math.IsNaN(s) {
		return 0
	}
	return s
}

func (v *View) touch() { v.version++ }

// Version increases on every state change, including decay ticks. Hosts
// compare it between frames to skip redundant layout passes.
func (v *View) Version() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.version
}

// --- configuration ---

func (v *View) SetElementCount(n int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.count = clampCount(n)
	v.touch()
}

func (v *View) ElementCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.count
}

// SetRadius sets the radius and makes it the pinch baseline. Negative
// values clamp to 0.
func (v *View) SetRadius(r float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pinch.Rebase(r)
	v.touch()
}

// Radius returns the live radius, including an uncommitted pinch preview.
func (v *View) Radius() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pinch.Radius()
}

// SetSensitivity sets radians per unit of gesture travel. Non-positive
// values fall back to rotation.DefaultSensitivity.
func (v *View) SetSensitivity(s float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rot.SetSensitivity(s)
	v.touch()
}

func (v *View) Sensitivity() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rot.Sensitivity()
}

func (v *View) SetOpacityAdjustmentEnabled(on bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.opacity = on
	v.touch()
}

func (v *View) OpacityAdjustmentEnabled() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.opacity
}

// SetViewport resizes the viewport. A home radius derived from the width
// follows the new width; the live radius is left alone.
func (v *View) SetViewport(width, height float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.width, v.height = clampSize(width), clampSize(height)
	if v.homeFromWidth {
		v.homeRadius = v.width / 2
	}
	v.touch()
}

func (v *View) Viewport() (width, height float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width, v.height
}

func (v *View) SetScrollEnabled(on bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pan.SetEnabled(on)
}

func (v *View) SetPinchEnabled(on bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pinch.SetEnabled(on)
	v.touch()
}

// --- gestures ---

// OnPanBegin starts a pan and cancels any decay session.
func (v *View) OnPanBegin() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pan.Begin()
}

// OnPanDelta applies an incremental pan translation in screen units.
func (v *View) OnPanDelta(dx, dy float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.pan.Move(dx, dy) {
		v.touch()
	}
}

// OnPanTranslation applies a translation measured from the pan start.
func (v *View) OnPanTranslation(tx, ty float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.pan.MoveTo(tx, ty) {
		v.touch()
	}
}

// OnPanEnd releases the pan with a velocity in units per second and
// reports whether a decay session started.
func (v *View) OnPanEnd(velocityX, velocityY float64) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.pan.End(velocityX, velocityY)
}

// OnPinchBegin captures the current radius as the pinch baseline.
func (v *View) OnPinchBegin() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pinch.Begin()
}

// OnPinchChanged previews scaleFactor × baseline.
func (v *View) OnPinchChanged(scaleFactor float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pinch.Change(scaleFactor)
	v.touch()
}

// OnPinchEnd commits scaleFactor × baseline.
func (v *View) OnPinchEnd(scaleFactor float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.pinch.End(scaleFactor)
	v.touch()
}

// SetRotationOffset cancels decay and turns the sphere by xAxis about the
// world X axis and yAxis about the world Y axis, each scaled by the
// default sensitivity.
func (v *View) SetRotationOffset(xAxis, yAxis float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.decay.Cancel()
	v.rot.ApplyDelta(yAxis, xAxis, rotation.DefaultSensitivity)
	v.touch()
}

// --- resets ---

func (v *View) ResetRotation() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resetRotation()
}

func (v *View) resetRotation() {
	v.decay.Cancel()
	v.rot.Reset()
	v.touch()
}

// ResetZoom restores the home radius and rebases the pinch baseline.
func (v *View) ResetZoom() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resetZoom()
}

func (v *View) resetZoom() {
	v.pinch.Rebase(v.homeRadius)
	v.touch()
}

// ResetTransform cancels decay, resets rotation and zoom, and re-applies
// the last auto-fit if there was one.
func (v *View) ResetTransform() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.resetRotation()
	v.resetZoom()
	if v.fit != nil {
		v.autoFitRadius(v.fit.width, v.fit.size)
	}
}

// AutoFitRadius sizes the sphere from the viewport width and the average
// element size and rebases the pinch baseline. A non-positive average size
// falls back to the home radius. The parameters are remembered and
// re-applied by ResetTransform.
func (v *View) AutoFitRadius(viewportWidth, averageElementSize float64) float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.fit = &autoFit{width: viewportWidth, size: averageElementSize}
	return v.autoFitRadius(viewportWidth, averageElementSize)
}

func (v *View) autoFitRadius(width, size float64) float64 {
	r := FitRadius(width, size)
	if r <= 0 {
		monitoring.Logf("sphereview: auto-fit with width=%g size=%g, using home radius %g", width, size, v.homeRadius)
		r = v.homeRadius
	}
	v.pinch.Rebase(r)
	v.touch()
	return v.pinch.Radius()
}

// FitRadius returns how many elements of the given size fit across the
// width, times that size. It returns 0 when either input is non-positive.
func FitRadius(width, averageElementSize float64) float64 {
	if !(width > 0) || !(averageElementSize > 0) {
		return 0
	}
	itemsFit := width / averageElementSize
	return itemsFit * averageElementSize
}

// AverageElementSize returns the mean of sizes, or 0 for none.
func AverageElementSize(sizes []float64) float64 {
	if len(sizes) == 0 {
		return 0
	}
	var sum float64
	for _, s := range sizes {
		sum += s
	}
	return sum / float64(len(sizes))
}

// --- decay ---

// Decelerating reports whether a decay session is running.
func (v *View) Decelerating() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.decay.Running()
}

// CancelDeceleration stops a running decay session.
func (v *View) CancelDeceleration() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.decay.Cancel()
}

// Advance moves the view's own frame scheduler forward by d. It is a no-op
// when the view was built with an external scheduler or a clock.
func (v *View) Advance(d time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.frames != nil {
		v.frames.Advance(d)
	}
}

// Tick runs one decay tick on the view's own frame scheduler.
func (v *View) Tick() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.frames != nil {
		v.frames.Step()
	}
}

// Close marks the view as gone. Any decay session is cancelled and stale
// ticks are ignored.
func (v *View) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	v.decay.Cancel()
}

// --- output ---

// Rotation returns a copy of the current orientation.
func (v *View) Rotation() mathutil.Quat {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.rot.Current()
}

// Center returns the viewport center used by layout passes.
func (v *View) Center() layout.Point {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.center()
}

func (v *View) center() layout.Point {
	return layout.Point{X: v.width / 2, Y: v.height / 2}
}

// RecomputeLayout returns one layout pass for the current state, indexed by
// element in host enumeration order.
func (v *View) RecomputeLayout() []layout.ElementLayout {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.engine.Compute(layout.Params{
		Count:         v.count,
		Radius:        v.pinch.Radius(),
		Rotation:      v.rot.Current(),
		Center:        v.center(),
		AdjustOpacity: v.opacity,
	})
}

// Snapshot is a point-in-time summary of the view state.
type Snapshot struct {
	ElementCount int           `json:"element_count"`
	Radius       float64       `json:"radius"`
	Rotation     mathutil.Quat `json:"rotation"`
	Decelerating bool          `json:"decelerating"`
	Version      uint64        `json:"version"`
}

func (v *View) Snapshot() Snapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return Snapshot{
		ElementCount: v.count,
		Radius:       v.pinch.Radius(),
		Rotation:     v.rot.Current(),
		Decelerating: v.decay.Running(),
		Version:      v.version,
	}
}
