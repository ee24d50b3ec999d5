package transform

import "math"

// Vec4 is a four-dimensional vector in double precision.
// It is used both for directions (rotation planes, look-at axes) and points (eye, target).
type Vec4 [4]float64

// Add returns v + o.
func (v Vec4) Add(o Vec4) Vec4 {
	return Vec4{v[0] + o[0], v[1] + o[1], v[2] + o[2], v[3] + o[3]}
}

// Sub returns v - o.
func (v Vec4) Sub(o Vec4) Vec4 {
	return Vec4{v[0] - o[0], v[1] - o[1], v[2] - o[2], v[3] - o[3]}
}

// Scale returns v multiplied by the scalar s.
func (v Vec4) Scale(s float64) Vec4 {
	return Vec4{v[0] * s, v[1] * s, v[2] * s, v[3] * s}
}

// Dot returns the Euclidean inner product of v and o.
func (v Vec4) Dot(o Vec4) float64 {
	return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] + v[3]*o[3]
}

// Len returns the Euclidean norm of v.
func (v Vec4) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns v scaled to unit length. A zero vector is returned unchanged.
//
// Returns:
//   - Vec4: the unit vector, or the zero vector if v has zero length
func (v Vec4) Normalize() Vec4 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// Float32 narrows v to single precision for upload to a shading stage.
func (v Vec4) Float32() [4]float32 {
	return [4]float32{float32(v[0]), float32(v[1]), float32(v[2]), float32(v[3])}
}

// Cross returns the four-dimensional generalized cross product of a, b and c:
// the vector orthogonal to all three whose length is the 3-volume of the parallelotope
// they span. The sign is chosen so that the matrix with rows (a, b, c, Cross(a, b, c))
// has a non-negative determinant, so Cross(e0, e1, e2) == e3.
//
// Parameters:
//   - a, b, c: the three vectors spanning the hyperplane
//
// Returns:
//   - Vec4: the oriented normal of the hyperplane, zero when a, b, c are linearly dependent
func Cross(a, b, c Vec4) Vec4 {
	return Vec4{
		-det3(a, b, c, 1, 2, 3),
		det3(a, b, c, 0, 2, 3),
		-det3(a, b, c, 0, 1, 3),
		det3(a, b, c, 0, 1, 2),
	}
}

// det3 is the determinant of the 3x3 minor formed by columns p, q, r of the rows a, b, c.
func det3(a, b, c Vec4, p, q, r int) float64 {
	return a[p]*(b[q]*c[r]-b[r]*c[q]) -
		a[q]*(b[p]*c[r]-b[r]*c[p]) +
		a[r]*(b[p]*c[q]-b[q]*c[p])
}

// orthonormalize removes from v its components along each of the (unit) basis vectors in turn
// and normalizes the remainder. It reports false when the remainder is negligible relative to v,
// meaning v was linearly dependent on the basis.
func orthonormalize(v Vec4, basis ...Vec4) (Vec4, float64, bool) {
	n0 := v.Len()
	if n0 <= DegenerateTolerance {
		return v, n0, false
	}
	for _, b := range basis {
		v = v.Sub(b.Scale(v.Dot(b)))
	}
	n := v.Len()
	if n <= DegenerateTolerance*n0 {
		return v, n, false
	}
	return v.Scale(1 / n), n, true
}
