package gesture

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestVelocityTracker(t *testing.T) {
	t.Parallel()

	var vt VelocityTracker
	vx, vy := vt.Velocity()
	assert.Zero(t, vx)
	assert.Zero(t, vy)

	t0 := time.Unix(100, 0)
	for i := 0; i <= 5; i++ {
		vt.Add(t0.Add(time.Duration(i)*10*time.Millisecond), float64(i)*4, float64(-i)*2)
	}
	vx, vy = vt.Velocity()
	assert.InDelta(t, 400, vx, 1e-9)
	assert.InDelta(t, -200, vy, 1e-9)

	vt.Reset()
	vt.Add(t0, 1, 1)
	vx, _ = vt.Velocity()
	assert.Zero(t, vx, "single sample has no velocity")
}

func TestVelocityTrackerWindow(t *testing.T) {
	t.Parallel()

	var vt VelocityTracker
	t0 := time.Unix(0, 0)
	// A slow start long ago must not dilute a fast flick.
	vt.Add(t0, 0, 0)
	vt.Add(t0.Add(time.Second), 0, 0)
	vt.Add(t0.Add(time.Second+50*time.Millisecond), 50, 0)
	vx, _ := vt.Velocity()
	assert.InDelta(t, 1000, vx, 1e-9)

	// A pause longer than the window leaves only the last sample.
	vt.Add(t0.Add(2*time.Second), 50, 0)
	vx, _ = vt.Velocity()
	assert.Zero(t, vx)
}

func TestVelocityTrackerSameTimestamp(t *testing.T) {
	t.Parallel()

	var vt VelocityTracker
	t0 := time.Unix(0, 0)
	vt.Add(t0, 0, 0)
	vt.Add(t0, 10, 10)
	vx, vy := vt.Velocity()
	assert.Zero(t, vx)
	assert.Zero(t, vy)
}

func TestPinchScale(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 2.0, PinchScale(50, 100))
	assert.Equal(t, 0.5, PinchScale(100, 50))
	assert.Equal(t, 1.0, PinchScale(0, 100))
	assert.Equal(t, 1.0, PinchScale(math.NaN(), 100))
	assert.Equal(t, 1.0, PinchScale(10, math.Inf(1)))
}
