package gesture

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeRotator struct {
	deltas [][2]float64
}

func (f *fakeRotator) Drag(dx, dy float64) {
	f.deltas = append(f.deltas, [2]float64{dx, dy})
}

type fakeDecayer struct {
	cancels  int
	releases [][2]float64
}

func (f *fakeDecayer) Cancel() { f.cancels++ }

func (f *fakeDecayer) Release(vx, vy float64) bool {
	f.releases = append(f.releases, [2]float64{vx, vy})
	return true
}

func TestRotationDelta(t *testing.T) {
	t.Parallel()
	dx, dy := RotationDelta(-100, 25)
	assert.Equal(t, 100.0, dx)
	assert.Equal(t, 25.0, dy)
}

func TestPanLifecycle(t *testing.T) {
	t.Parallel()

	rot := &fakeRotator{}
	dec := &fakeDecayer{}
	p := NewPan(rot, dec)

	p.Begin()
	assert.Equal(t, 1, dec.cancels, "gesture start cancels decay")
	assert.True(t, p.Active())

	assert.True(t, p.Move(3, -4))
	assert.False(t, p.Move(0, 0), "zero delta is not applied")
	assert.Equal(t, [][2]float64{{-3, -4}}, rot.deltas)

	assert.True(t, p.End(120, -80))
	assert.False(t, p.Active())
	assert.Equal(t, [][2]float64{{120, -80}}, dec.releases)
}

func TestPanMoveToDifferencesSamples(t *testing.T) {
	t.Parallel()

	rot := &fakeRotator{}
	p := NewPan(rot, &fakeDecayer{})
	p.Begin()
	p.MoveTo(10, 0)
	p.MoveTo(15, 5)
	p.MoveTo(15, 5)
	assert.Equal(t, [][2]float64{{-10, 0}, {-5, 5}}, rot.deltas)

	// A new gesture starts its cumulative translation from zero again.
	p.End(0, 0)
	p.MoveTo(2, 2)
	assert.Equal(t, [2]float64{-2, 2}, rot.deltas[2])
}

func TestPanMoveWithoutBeginCancelsDecay(t *testing.T) {
	t.Parallel()

	dec := &fakeDecayer{}
	p := NewPan(&fakeRotator{}, dec)
	p.Move(1, 1)
	assert.Equal(t, 1, dec.cancels)
	p.Move(1, 1)
	assert.Equal(t, 1, dec.cancels)
}

func TestPanDisabled(t *testing.T) {
	t.Parallel()

	rot := &fakeRotator{}
	dec := &fakeDecayer{}
	p := NewPan(rot, dec)
	p.SetEnabled(false)
	assert.False(t, p.Enabled())

	p.Begin()
	assert.False(t, p.Move(5, 5))
	assert.False(t, p.MoveTo(5, 5))
	assert.False(t, p.End(500, 500))
	assert.Empty(t, rot.deltas)
	assert.Zero(t, dec.cancels, "a disabled pan leaves a running session alone")
	assert.Empty(t, dec.releases)
}

func TestPanWithoutDecayer(t *testing.T) {
	t.Parallel()
	p := NewPan(&fakeRotator{}, nil)
	p.Begin()
	assert.False(t, p.End(100, 100))
}

func TestPinchPreviewAndCommit(t *testing.T) {
	t.Parallel()

	p := NewPinch(150)
	p.Begin()
	assert.Equal(t, 300.0, p.Change(2))
	assert.Equal(t, 150.0, p.Baseline(), "preview does not commit")
	assert.Equal(t, 75.0, p.Change(0.5))

	assert.Equal(t, 225.0, p.End(1.5))
	assert.Equal(t, 225.0, p.Baseline())
	assert.Equal(t, 225.0, p.Radius())

	// The next gesture scales from the committed radius.
	p.Begin()
	assert.Equal(t, 450.0, p.Change(2))
}

func TestPinchRebase(t *testing.T) {
	t.Parallel()

	p := NewPinch(100)
	p.Begin()
	p.Change(3)
	p.Rebase(200)
	assert.False(t, p.Active())
	assert.Equal(t, 200.0, p.Radius())
	assert.Equal(t, 400.0, p.Change(2))
}

func TestPinchSanitizes(t *testing.T) {
	t.Parallel()

	p := NewPinch(-10)
	assert.Zero(t, p.Radius())

	p.Rebase(100)
	assert.Zero(t, p.Change(-2), "negative scale clamps to zero")
	assert.Equal(t, 100.0, p.Change(math.NaN()))
	assert.Equal(t, 100.0, p.End(math.Inf(1)))
}

func TestPinchDisabled(t *testing.T) {
	t.Parallel()

	p := NewPinch(100)
	p.Begin()
	p.Change(2)
	p.SetEnabled(false)
	assert.Equal(t, 100.0, p.Radius(), "disabling drops the preview")
	assert.Equal(t, 100.0, p.Change(4))
	assert.Equal(t, 100.0, p.End(4))
	assert.False(t, p.Enabled())
}

func TestClampRadius(t *testing.T) {
	t.Parallel()
	assert.Zero(t, ClampRadius(-1))
	assert.Zero(t, ClampRadius(math.NaN()))
	assert.Equal(t, 12.5, ClampRadius(12.5))
}
