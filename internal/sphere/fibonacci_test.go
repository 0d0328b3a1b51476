package sphere

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sphereview/internal/mathutil"
)

func TestGenerateCountAndUnitLength(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 2, 3, 7, 50, 101, 1000} {
		pts := Generate(n)
		require.Len(t, pts, n)
		for i, p := range pts {
			assert.InDelta(t, 1.0, p.Len(), 1e-12, "n=%d i=%d", n, i)
		}
	}
}

func TestGenerateEmpty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, Generate(0))
	assert.Empty(t, Generate(-3))
}

func TestPointDegenerateCount(t *testing.T) {
	t.Parallel()

	for _, count := range []int{0, -1, -100} {
		p := Point(0, count)
		assert.Equal(t, mathutil.Vec3{}, p, "count %d", count)
		for _, c := range p {
			assert.False(t, math.IsNaN(c))
		}
	}
	assert.InDelta(t, 1.0, Point(0, 1).Len(), 1e-15)
}

func TestGenerateDeterministic(t *testing.T) {
	t.Parallel()

	a := Generate(257)
	b := Generate(257)
	// Bit-for-bit: no tolerance.
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("Generate not deterministic:\n%s", diff)
	}
}

func TestGenerateKnownPoints(t *testing.T) {
	t.Parallel()

	approx := cmpopts.EquateApprox(0, 1e-12)

	// A single point sits on the equator at phi = 0.
	one := Generate(1)
	if diff := cmp.Diff([]mathutil.Vec3{{1, 0, math.Cos(math.Pi / 2)}}, one, approx); diff != "" {
		t.Errorf("Generate(1) mismatch (-want +got):\n%s", diff)
	}

	four := Generate(4)
	want := []mathutil.Vec3{
		{0.6614378277661477, 0, 0.75},
		{-0.7139543462022454, -0.6540406650499068, 0.25},
		{0.08464959396472622, 0.9645384628108964, -0.25},
		{0.4024444785343673, -0.5249175570479627, -0.75},
	}
	if diff := cmp.Diff(want, four, approx); diff != "" {
		t.Errorf("Generate(4) mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateZBands(t *testing.T) {
	t.Parallel()

	// z = 1 - (2i+1)/n, so consecutive points descend in equal steps.
	const n = 40
	pts := Generate(n)
	for i, p := range pts {
		assert.InDelta(t, 1-float64(2*i+1)/n, p[2], 1e-12)
	}
}

func TestGenerateEvenHemispheres(t *testing.T) {
	t.Parallel()

	pts := Generate(1000)
	var sum mathutil.Vec3
	north := 0
	for _, p := range pts {
		sum = sum.Add(p)
		if p[2] > 0 {
			north++
		}
	}
	assert.Equal(t, 500, north)
	// The centroid of an even distribution collapses toward the origin.
	assert.Less(t, sum.Scale(1.0/1000).Len(), 0.01)
}

func TestCache(t *testing.T) {
	t.Parallel()

	c := NewCache()
	assert.Nil(t, c.Points(0))
	assert.Equal(t, 0, c.Len())

	first := c.Points(12)
	second := c.Points(12)
	require.Len(t, first, 12)
	assert.Same(t, &first[0], &second[0], "cached slice should be reused")
	assert.Equal(t, Generate(12), first)

	c.Points(13)
	assert.Equal(t, 2, c.Len())
}
