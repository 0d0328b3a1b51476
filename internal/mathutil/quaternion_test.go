package mathutil

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/num/quat"
)

var approx = cmpopts.EquateApprox(0, 1e-12)

func TestQuatFromAxisAngle(t *testing.T) {
	t.Parallel()

	q := QuatFromAxisAngle(math.Pi/2, AxisY)
	want := Quat{0, math.Sin(math.Pi / 4), 0, math.Cos(math.Pi / 4)}
	if diff := cmp.Diff(want, q, approx); diff != "" {
		t.Errorf("QuatFromAxisAngle mismatch (-want +got):\n%s", diff)
	}

	t.Run("unnormalized axis", func(t *testing.T) {
		t.Parallel()
		got := QuatFromAxisAngle(1, Vec3{0, 5, 0})
		assert.True(t, got.ApproxEqual(QuatFromAxisAngle(1, AxisY), 1e-15))
	})

	t.Run("zero axis is identity", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, QuatIdentity(), QuatFromAxisAngle(1, Vec3{}))
	})

	t.Run("zero angle is identity", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, QuatIdentity(), QuatFromAxisAngle(0, AxisX))
	})
}

func TestQuatMulMatchesGonum(t *testing.T) {
	t.Parallel()

	a := Quat{0.1, -0.4, 0.7, 0.3}
	b := Quat{-0.2, 0.5, 0.1, 0.9}
	got := a.Mul(b)

	want := quat.Mul(
		quat.Number{Real: 0.3, Imag: 0.1, Jmag: -0.4, Kmag: 0.7},
		quat.Number{Real: 0.9, Imag: -0.2, Jmag: 0.5, Kmag: 0.1},
	)
	assert.InDelta(t, want.Real, got[3], 1e-15)
	assert.InDelta(t, want.Imag, got[0], 1e-15)
	assert.InDelta(t, want.Jmag, got[1], 1e-15)
	assert.InDelta(t, want.Kmag, got[2], 1e-15)
}

func TestQuatMulOrder(t *testing.T) {
	t.Parallel()

	qy := QuatFromAxisAngle(0.7, AxisY)
	qx := QuatFromAxisAngle(-0.3, AxisX)

	// qy*qx applies qx first: it must match the matrix product RotY·RotX.
	m := mat3Mul(rotY(0.7), rotX(-0.3))
	v := Vec3{0.2, -0.5, 0.8}
	if diff := cmp.Diff(m.MulVec3(v), qy.Mul(qx).Act(v), approx); diff != "" {
		t.Errorf("composition order mismatch (-matrix +quat):\n%s", diff)
	}
	assert.False(t, qy.Mul(qx).ApproxEqual(qx.Mul(qy), 1e-6), "composition must not commute")
}

func TestQuatNormalize(t *testing.T) {
	t.Parallel()

	q := Quat{1, 2, 3, 4}.Normalize()
	assert.InDelta(t, 1.0, q.Norm(), 1e-15)

	for _, degenerate := range []Quat{
		{},
		{math.NaN(), 0, 0, 1},
		{math.Inf(1), 0, 0, 0},
	} {
		assert.Equal(t, QuatIdentity(), degenerate.Normalize(), "degenerate %v", degenerate)
	}
}

func TestQuatAct(t *testing.T) {
	t.Parallel()

	t.Run("identity", func(t *testing.T) {
		t.Parallel()
		v := Vec3{0.3, -0.2, 0.9}
		assert.Equal(t, v, QuatIdentity().Act(v))
	})

	t.Run("quarter turn about Y", func(t *testing.T) {
		t.Parallel()
		got := QuatFromAxisAngle(math.Pi/2, AxisY).Act(AxisZ)
		if diff := cmp.Diff(AxisX, got, cmpopts.EquateApprox(0, 1e-15)); diff != "" {
			t.Errorf("Act mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("preserves length", func(t *testing.T) {
		t.Parallel()
		q := QuatFromAxisAngle(2.1, Vec3{1, 1, -1})
		v := Vec3{3, -4, 12}
		assert.InDelta(t, v.Len(), q.Act(v).Len(), 1e-12)
	})

	t.Run("matches rotation matrix", func(t *testing.T) {
		t.Parallel()
		q := QuatFromAxisAngle(-1.3, Vec3{0.2, 0.9, 0.4})
		v := Vec3{-0.6, 0.1, 0.75}
		if diff := cmp.Diff(q.Mat3().MulVec3(v), q.Act(v), approx); diff != "" {
			t.Errorf("Act vs Mat3 mismatch (-mat +act):\n%s", diff)
		}
		back := transpose(q.Mat3()).MulVec3(q.Act(v))
		if diff := cmp.Diff(v, back, approx); diff != "" {
			t.Errorf("inverse rotation mismatch:\n%s", diff)
		}
	})

	t.Run("conjugate undoes rotation", func(t *testing.T) {
		t.Parallel()
		q := QuatFromAxisAngle(0.4, AxisX)
		v := Vec3{0, 1, 0}
		if diff := cmp.Diff(v, q.Conj().Act(q.Act(v)), approx); diff != "" {
			t.Errorf("conj roundtrip mismatch:\n%s", diff)
		}
	})
}

func TestQuatRepeatedCompositionStaysUnit(t *testing.T) {
	t.Parallel()

	q := QuatIdentity()
	step := QuatFromAxisAngle(0.0013, Vec3{0.3, 0.8, 0.1})
	for i := 0; i < 20000; i++ {
		q = step.Mul(q).Normalize()
	}
	require.InDelta(t, 1.0, q.Norm(), 1e-12)
}

func TestRad2Deg(t *testing.T) {
	t.Parallel()
	assert.InDelta(t, 90.0, Rad2Deg(math.Pi/2), 1e-12)
	assert.InDelta(t, 180.0, Rad2Deg(math.Pi), 1e-12)
}

func TestQuatApproxEqual(t *testing.T) {
	t.Parallel()

	q := QuatFromAxisAngle(0.5, AxisZ)
	assert.True(t, q.ApproxEqual(q, 0))
	assert.True(t, q.ApproxEqual(Quat{q[0], q[1], q[2] + 1e-10, q[3]}, 1e-9))
	assert.False(t, q.ApproxEqual(Quat{q[0], q[1], q[2], q[3] + 1e-6}, 1e-9))
	assert.False(t, q.ApproxEqual(QuatIdentity(), 1e-3))
}
