// Package sphere distributes points evenly over the unit sphere.
package sphere

import (
	"math"

	"sphereview/internal/mathutil"
)

// GoldenRatio is (1+√5)/2, the azimuthal step divisor of the spiral.
var GoldenRatio = (1 + math.Sqrt(5)) / 2

// Point returns the i-th of count points of the Fibonacci sphere. The polar
// angle grows with i, so low indices sit near +z and high ones near -z.
// count <= 0 yields the zero vector.
func Point(i, count int) mathutil.Vec3 {
	if count <= 0 {
		return mathutil.Vec3{}
	}
	fi := float64(i)
	theta := math.Acos(1 - 2*(fi+0.5)/float64(count))
	_, frac := math.Modf(fi / GoldenRatio)
	phi := 2 * math.Pi * frac

	st, ct := math.Sincos(theta)
	sp, cp := math.Sincos(phi)
	return mathutil.Vec3{st * cp, st * sp, ct}
}

// Generate returns count unit vectors spread over the sphere with the
// golden-angle spiral. The sequence is deterministic; count <= 0 yields nil.
func Generate(count int) []mathutil.Vec3 {
	if count <= 0 {
		return nil
	}
	pts := make([]mathutil.Vec3, count)
	for i := range pts {
		pts[i] = Point(i, count)
	}
	return pts
}
