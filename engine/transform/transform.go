// Package transform implements four-dimensional affine maps used to place 4-D geometry in view space.
//
// A Transform encodes x' = M·x + t where M is a 4x4 linear map (rotation, scale and shear) and t a
// translation. Transforms are values: every operation returns a new Transform and never mutates its
// receiver, so a Transform may be rebuilt each frame and shared freely between goroutines for reading.
// All arithmetic runs in float64; values are narrowed to float32 only by LinearMap and Translation,
// the read-out points for a shading stage.
package transform

import (
	"math"

	"github.com/Carmen-Shannon/g4d-go/common"
)

// DegenerateTolerance is the relative norm below which an orthogonalized vector is treated as zero
// by LookAt.
const DegenerateTolerance = 1e-9

// Transform is a four-dimensional affine map x' = M·x + t.
// The zero value maps everything to the origin; use Identity as the starting point.
type Transform struct {
	linear      [4][4]float64 // row-major: linear[row][col]
	translation Vec4
}

// Identity returns the identity transform (M = I, t = 0).
//
// Returns:
//   - Transform: the identity transform
func Identity() Transform {
	var t Transform
	for i := range 4 {
		t.linear[i][i] = 1
	}
	return t
}

// FromParts builds a Transform from an explicit row-major linear map and translation.
//
// Parameters:
//   - linear: the 4x4 linear map, indexed [row][col]
//   - translation: the translation vector
//
// Returns:
//   - Transform: the transform x' = linear·x + translation
func FromParts(linear [4][4]float64, translation Vec4) Transform {
	return Transform{linear: linear, translation: translation}
}

// Translate right-composes a pure translation by (dx, dy, dz, dw).
// The offset is expressed in the transform's input space, so on a transform without rotation or
// scale successive translations simply add.
//
// Parameters:
//   - dx, dy, dz, dw: the translation components
//
// Returns:
//   - Transform: the translated transform
func (t Transform) Translate(dx, dy, dz, dw float64) Transform {
	d := Vec4{dx, dy, dz, dw}
	t.translation = t.translation.Add(mulMatVec(&t.linear, d))
	return t
}

// Scale right-composes a diagonal (non-uniform) scaling.
//
// Parameters:
//   - sx, sy, sz, sw: the scale factor along each axis
//
// Returns:
//   - Transform: the scaled transform
func (t Transform) Scale(sx, sy, sz, sw float64) Transform {
	s := [4]float64{sx, sy, sz, sw}
	for r := range 4 {
		for c := range 4 {
			t.linear[r][c] *= s[c]
		}
	}
	return t
}

// Rotate right-composes a rotation by angle radians in the plane spanned by a and b.
// The rotation is R = I + sin(angle)·(b·aᵗ − a·bᵗ) + (cos(angle) − 1)·(a·aᵗ + b·bᵗ), which turns
// a towards b and leaves the orthogonal complement of the plane fixed.
//
// a and b must be unit length and mutually orthogonal. This is not checked: other inputs produce a
// linear map that is not a rotation. Use Vec4.Normalize or LookAt to build an orthonormal pair.
//
// Parameters:
//   - angle: the rotation angle in radians
//   - a, b: orthonormal vectors spanning the rotation plane
//
// Returns:
//   - Transform: the rotated transform
func (t Transform) Rotate(angle float64, a, b Vec4) Transform {
	r := planeRotation(angle, a, b)
	t.linear = mulMat(&t.linear, &r)
	return t
}

// ViewSpace right-composes the linear map whose rows are axis1, axis2, axis3 and the oriented
// complement Cross(axis1, axis2, axis3). It remaps which world directions play the role of the
// look-at frame axes, and is normally applied to an identity transform before LookAt.
//
// Parameters:
//   - axis1, axis2, axis3: the first three rows of the remapping
//
// Returns:
//   - Transform: the remapped transform
func (t Transform) ViewSpace(axis1, axis2, axis3 Vec4) Transform {
	v := [4][4]float64{axis1, axis2, axis3, Cross(axis1, axis2, axis3)}
	t.linear = mulMat(&t.linear, &v)
	return t
}

// LookAt orients the transform so that eye sits at the origin of view space.
//
// An orthonormal basis is built by sequential Gram-Schmidt: forward = normalize(target − eye),
// then up1 and up2 are each orthogonalized against the axes fixed before them and normalized, and
// the fourth axis is Cross(forward, up1', up2'). The basis B with those rows is right-composed onto
// the current linear map (keeping any ViewSpace remap), and the translation is replaced by −M'·eye.
//
// Parameters:
//   - eye: the viewer position
//   - target: the point being looked at
//   - up1, up2: the two "up" hints fixing the remaining orientation
//
// Returns:
//   - Transform: the view transform
//   - error: a *DegenerateBasisError when the inputs are linearly dependent; the receiver is
//     returned unchanged in that case
func (t Transform) LookAt(eye, target, up1, up2 Vec4) (Transform, error) {
	forward, n, ok := orthonormalize(target.Sub(eye))
	if !ok {
		return t, &DegenerateBasisError{Axis: "forward", Norm: n}
	}
	u1, n, ok := orthonormalize(up1, forward)
	if !ok {
		return t, &DegenerateBasisError{Axis: "up1", Norm: n}
	}
	u2, n, ok := orthonormalize(up2, forward, u1)
	if !ok {
		return t, &DegenerateBasisError{Axis: "up2", Norm: n}
	}
	over, n, ok := orthonormalize(Cross(forward, u1, u2))
	if !ok {
		return t, &DegenerateBasisError{Axis: "over", Norm: n}
	}

	basis := [4][4]float64{forward, u1, u2, over}
	out := Transform{linear: mulMat(&t.linear, &basis)}
	out.translation = mulMatVec(&out.linear, eye).Scale(-1)
	return out, nil
}

// Mul composes two transforms: the result applies model first, then t.
// M' = M_t·M_model and t' = M_t·t_model + t_t. Composition is associative but not commutative.
//
// Parameters:
//   - model: the transform applied first
//
// Returns:
//   - Transform: the composed transform
func (t Transform) Mul(model Transform) Transform {
	return Transform{
		linear:      mulMat(&t.linear, &model.linear),
		translation: mulMatVec(&t.linear, model.translation).Add(t.translation),
	}
}

// Apply maps the point p through the transform.
func (t Transform) Apply(p Vec4) Vec4 {
	return mulMatVec(&t.linear, p).Add(t.translation)
}

// ApplyLinear maps the direction d through the linear part only.
func (t Transform) ApplyLinear(d Vec4) Vec4 {
	return mulMatVec(&t.linear, d)
}

// Inverse returns the transform that undoes t.
//
// Returns:
//   - Transform: the inverse transform
//   - error: ErrSingular when the linear map is not invertible
func (t Transform) Inverse() (Transform, error) {
	flat := t.columnMajor()
	if !common.Invert4(flat[:], flat[:]) {
		return t, ErrSingular
	}
	var out Transform
	for c := range 4 {
		for r := range 4 {
			out.linear[r][c] = flat[c*4+r]
		}
	}
	out.translation = mulMatVec(&out.linear, t.translation).Scale(-1)
	return out, nil
}

// LinearMapF64 returns the row-major linear map in full precision.
func (t Transform) LinearMapF64() [4][4]float64 {
	return t.linear
}

// TranslationF64 returns the translation in full precision.
func (t Transform) TranslationF64() Vec4 {
	return t.translation
}

// LinearMap returns M as a column-major 4x4 float32 matrix, the layout expected for a
// mat4x4<f32> / mat4 shader uniform.
//
// Returns:
//   - [16]float32: the narrowed, column-major linear map
func (t Transform) LinearMap() [16]float32 {
	flat := t.columnMajor()
	var out [16]float32
	for i, v := range flat {
		out[i] = float32(v)
	}
	return out
}

// Translation returns t narrowed to float32.
//
// Returns:
//   - [4]float32: the translation vector
func (t Transform) Translation() [4]float32 {
	return t.translation.Float32()
}

// ApproxEqual reports whether every component of the linear maps and translations of t and o
// differ by at most eps.
func (t Transform) ApproxEqual(o Transform, eps float64) bool {
	for r := range 4 {
		if math.Abs(t.translation[r]-o.translation[r]) > eps {
			return false
		}
		for c := range 4 {
			if math.Abs(t.linear[r][c]-o.linear[r][c]) > eps {
				return false
			}
		}
	}
	return true
}

func (t Transform) columnMajor() [16]float64 {
	var flat [16]float64
	for r := range 4 {
		for c := range 4 {
			flat[c*4+r] = t.linear[r][c]
		}
	}
	return flat
}

func planeRotation(angle float64, a, b Vec4) [4][4]float64 {
	s, c := math.Sincos(angle)
	var r [4][4]float64
	for i := range 4 {
		for j := range 4 {
			v := s*(b[i]*a[j]-a[i]*b[j]) + (c-1)*(a[i]*a[j]+b[i]*b[j])
			if i == j {
				v++
			}
			r[i][j] = v
		}
	}
	return r
}

func mulMat(a, b *[4][4]float64) [4][4]float64 {
	var out [4][4]float64
	for r := range 4 {
		for c := range 4 {
			var sum float64
			for k := range 4 {
				sum += a[r][k] * b[k][c]
			}
			out[r][c] = sum
		}
	}
	return out
}

func mulMatVec(m *[4][4]float64, v Vec4) Vec4 {
	var out Vec4
	for r := range 4 {
		out[r] = m[r][0]*v[0] + m[r][1]*v[1] + m[r][2]*v[2] + m[r][3]*v[3]
	}
	return out
}
