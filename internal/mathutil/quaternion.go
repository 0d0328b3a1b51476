package mathutil

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/num/quat"
)

// Quat represents a quaternion (x, y, z, w) where w is the scalar part.
type Quat [4]float64

// QuatIdentity returns the rotation that leaves every vector unchanged.
func QuatIdentity() Quat {
	return Quat{0, 0, 0, 1}
}

// QuatFromAxisAngle builds the rotation of angle radians about axis.
// The axis is normalized first; a zero axis yields the identity.
func QuatFromAxisAngle(angle float64, axis Vec3) Quat {
	a := axis.Normalize()
	if a == (Vec3{}) {
		return QuatIdentity()
	}
	s, c := math.Sincos(angle * 0.5)
	return Quat{a[0] * s, a[1] * s, a[2] * s, c}
}

func (q Quat) number() quat.Number {
	return quat.Number{Real: q[3], Imag: q[0], Jmag: q[1], Kmag: q[2]}
}

func quatFromNumber(n quat.Number) Quat {
	return Quat{n.Imag, n.Jmag, n.Kmag, n.Real}
}

// Mul returns q × r: the rotation that applies r first, then q.
func (q Quat) Mul(r Quat) Quat {
	return quatFromNumber(quat.Mul(q.number(), r.number()))
}

// Conj returns the conjugate, which is the inverse for unit quaternions.
func (q Quat) Conj() Quat {
	return quatFromNumber(quat.Conj(q.number()))
}

// Norm returns the quaternion modulus.
func (q Quat) Norm() float64 {
	return quat.Abs(q.number())
}

// Normalize returns q scaled to unit length. A zero, infinite or NaN
// quaternion normalizes to the identity instead of propagating NaN.
func (q Quat) Normalize() Quat {
	n := q.Norm()
	if n == 0 || math.IsInf(n, 0) || math.IsNaN(n) {
		return QuatIdentity()
	}
	return quatFromNumber(quat.Scale(1/n, q.number()))
}

// Act rotates v by q using the sandwich product q·v·q⁻¹.
// The result has the same length as v.
func (q Quat) Act(v Vec3) Vec3 {
	n := q.Norm()
	if n == 0 || math.IsNaN(n) {
		return v
	}
	p := quat.Number{Imag: v[0], Jmag: v[1], Kmag: v[2]}
	qn := q.number()
	r := quat.Mul(quat.Mul(qn, p), quat.Inv(qn))
	return Vec3{r.Imag, r.Jmag, r.Kmag}
}

// ApproxEqual reports whether every component of q and r differs by at most tol.
func (q Quat) ApproxEqual(r Quat, tol float64) bool {
	return scalar.EqualWithinAbs(q[0], r[0], tol) &&
		scalar.EqualWithinAbs(q[1], r[1], tol) &&
		scalar.EqualWithinAbs(q[2], r[2], tol) &&
		scalar.EqualWithinAbs(q[3], r[3], tol)
}

// Mat3 converts a unit quaternion to a 3×3 rotation matrix.
func (q Quat) Mat3() Mat3 {
	x, y, z, w := q[0], q[1], q[2], q[3]
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Mat3{
		1 - 2*(yy+zz), 2 * (xy - wz), 2 * (xz + wy),
		2 * (xy + wz), 1 - 2*(xx+zz), 2 * (yz - wx),
		2 * (xz - wy), 2 * (yz + wx), 1 - 2*(xx+yy),
	}
}
