package transform

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

var (
	// Rotation planes of the hypercube demo, normalized to an orthonormal pair.
	planeA1 = Vec4{1, 0, 1, 0}.Normalize()
	planeB1 = Vec4{0, 1, 0, 1}.Normalize()
	planeA2 = Vec4{0, 1, 1, 0}.Normalize()
	planeB2 = Vec4{1, 0, 0, 1}.Normalize()
)

func near(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func sample() (Transform, Transform, Transform) {
	a := Identity().Translate(1, -2, 3, 0.5).Rotate(0.3, planeA1, planeB1).Scale(2, 1, 0.5, 3)
	b := Identity().Rotate(-1.1, planeA2, planeB2).Translate(0, 4, 0, -7).Scale(1, 1, 1, 2)
	c := FromParts([4][4]float64{
		{1, 0.5, 0, 0},
		{0, 1, 0, 0.25},
		{0, 0, 3, 0},
		{0.1, 0, 0, 1},
	}, Vec4{9, 8, 7, 6})
	return a, b, c
}

func TestIdentity(t *testing.T) {
	id := Identity()
	lm := id.LinearMap()
	for i, v := range lm {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		if v != want {
			t.Fatalf("LinearMap()[%d] = %v, want %v", i, v, want)
		}
	}
	if id.Translation() != [4]float32{} {
		t.Fatalf("Translation() = %v, want zero", id.Translation())
	}
}

func TestTranslateOnly(t *testing.T) {
	tr := Identity().Translate(0, 0, 0, 20)
	if got := tr.Translation(); got != [4]float32{0, 0, 0, 20} {
		t.Fatalf("Translation() = %v, want (0,0,0,20)", got)
	}
	if got := tr.LinearMap(); got != Identity().LinearMap() {
		t.Fatalf("LinearMap() = %v, want identity", got)
	}
}

func TestTranslateRoundTrip(t *testing.T) {
	base := Identity().Rotate(0.7, planeA1, planeB1).Scale(3, 2, 1, 4)
	out := base.Translate(1.5, -2, 3, 20).Translate(-1.5, 2, -3, -20)
	for i, v := range out.TranslationF64() {
		if !near(v, 0) {
			t.Fatalf("translation[%d] = %g, want 0", i, v)
		}
	}
	if out.LinearMapF64() != base.LinearMapF64() {
		t.Fatalf("linear map changed by translations")
	}
}

func TestTranslationsAdd(t *testing.T) {
	out := Identity().Translate(1, 2, 3, 4).Translate(10, 20, 30, 40)
	want := Vec4{11, 22, 33, 44}
	if out.TranslationF64() != want {
		t.Fatalf("translation = %v, want %v", out.TranslationF64(), want)
	}
}

func TestScaleThenTranslate(t *testing.T) {
	// Right composition: the translation is expressed in the scaled input space.
	out := Identity().Scale(10, 10, 10, 10).Translate(1, 0, 0, 2)
	want := Vec4{10, 0, 0, 20}
	if out.TranslationF64() != want {
		t.Fatalf("translation = %v, want %v", out.TranslationF64(), want)
	}
	p := out.Apply(Vec4{1, 1, 1, 1})
	if p != (Vec4{20, 10, 10, 30}) {
		t.Fatalf("Apply = %v", p)
	}
}

func TestRotateInverse(t *testing.T) {
	angles := []float64{0, 0.011, 0.5, math.Pi / 3, math.Pi, 2.5, -4, 100}
	planes := []struct {
		name string
		a, b Vec4
	}{
		{"xy", Vec4{1, 0, 0, 0}, Vec4{0, 1, 0, 0}},
		{"zw", Vec4{0, 0, 1, 0}, Vec4{0, 0, 0, 1}},
		{"demo1", planeA1, planeB1},
		{"demo2", planeA2, planeB2},
	}
	for _, p := range planes {
		t.Run(p.name, func(t *testing.T) {
			for _, theta := range angles {
				out := Identity().Rotate(theta, p.a, p.b).Rotate(-theta, p.a, p.b)
				if !out.ApproxEqual(Identity(), eps) {
					t.Fatalf("rotate(%g) * rotate(%g) != identity: %v", theta, -theta, out.LinearMapF64())
				}
			}
		})
	}
}

func TestRotateTurnsAIntoB(t *testing.T) {
	r := Identity().Rotate(math.Pi/2, planeA1, planeB1)
	got := r.ApplyLinear(planeA1)
	for i := range 4 {
		if !near(got[i], planeB1[i]) {
			t.Fatalf("R·a = %v, want %v", got, planeB1)
		}
	}
	// Directions orthogonal to the plane are fixed.
	fixed := Vec4{1, 0, -1, 0}.Normalize()
	got = r.ApplyLinear(fixed)
	for i := range 4 {
		if !near(got[i], fixed[i]) {
			t.Fatalf("R·n = %v, want %v", got, fixed)
		}
	}
}

func TestRotateIsOrthogonal(t *testing.T) {
	r := Identity().Rotate(0.4, planeA1, planeB1).Rotate(1.3, planeA2, planeB2)
	assertOrthonormalRows(t, r.LinearMapF64())
}

func TestMulAssociative(t *testing.T) {
	a, b, c := sample()
	left := a.Mul(b).Mul(c)
	right := a.Mul(b.Mul(c))
	if !left.ApproxEqual(right, 1e-9) {
		t.Fatalf("(A*B)*C != A*(B*C)\n%v\n%v", left, right)
	}
}

func TestMulIdentity(t *testing.T) {
	a, b, c := sample()
	for _, x := range []Transform{a, b, c} {
		if !x.Mul(Identity()).ApproxEqual(x, 0) {
			t.Fatalf("A*I != A")
		}
		if !Identity().Mul(x).ApproxEqual(x, 0) {
			t.Fatalf("I*A != A")
		}
	}
}

func TestMulNotCommutative(t *testing.T) {
	a, b, _ := sample()
	if a.Mul(b).ApproxEqual(b.Mul(a), 1e-6) {
		t.Fatalf("A*B unexpectedly equals B*A")
	}
}

func TestMulAppliesModelFirst(t *testing.T) {
	a, b, _ := sample()
	p := Vec4{0.5, -1, 2, 3}
	want := a.Apply(b.Apply(p))
	got := a.Mul(b).Apply(p)
	for i := range 4 {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("(A*B)(p) = %v, want %v", got, want)
		}
	}
}

func TestMulDoesNotMutateOperands(t *testing.T) {
	a, b, _ := sample()
	a0, b0 := a, b
	_ = a.Mul(b)
	_ = a.Translate(1, 1, 1, 1)
	if a != a0 || b != b0 {
		t.Fatalf("operands were mutated")
	}
}

func TestLookAtOrthonormal(t *testing.T) {
	cases := []struct {
		name                   string
		eye, target, up1, up2 Vec4
	}{
		{"axis", Vec4{}, Vec4{0, 0, 0, 1}, Vec4{0, 1, 0, 0}, Vec4{0, 0, 1, 0}},
		{"skew", Vec4{1, 2, 3, 4}, Vec4{-2, 0, 5, 1}, Vec4{0.3, 1, 0.2, 0}, Vec4{0, 0.4, 1, 0.1}},
		{"unnormalized hints", Vec4{0, 0, 0, -5}, Vec4{0, 0, 0, 5}, Vec4{0, 7, 0, 0}, Vec4{3, 0, 9, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := Identity().LookAt(tc.eye, tc.target, tc.up1, tc.up2)
			if err != nil {
				t.Fatalf("LookAt: %v", err)
			}
			assertOrthonormalRows(t, v.LinearMapF64())
			origin := v.Apply(tc.eye)
			for i := range 4 {
				if !near(origin[i], 0) {
					t.Fatalf("eye maps to %v, want origin", origin)
				}
			}
		})
	}
}

func TestLookAtDegenerate(t *testing.T) {
	eye := Vec4{1, 1, 1, 1}
	target := Vec4{1, 1, 1, 5}
	start := Identity().Scale(2, 2, 2, 2)

	cases := []struct {
		name     string
		target   Vec4
		up1, up2 Vec4
		axis     string
	}{
		{"eye equals target", eye, Vec4{0, 1, 0, 0}, Vec4{0, 0, 1, 0}, "forward"},
		{"up1 parallel to forward", target, Vec4{0, 0, 0, -3}, Vec4{0, 0, 1, 0}, "up1"},
		{"up2 in span", target, Vec4{0, 1, 0, 0}, Vec4{0, 2, 0, 1}, "up2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := start.LookAt(eye, tc.target, tc.up1, tc.up2)
			if !errors.Is(err, ErrDegenerateBasis) {
				t.Fatalf("err = %v, want ErrDegenerateBasis", err)
			}
			var dbe *DegenerateBasisError
			if !errors.As(err, &dbe) || dbe.Axis != tc.axis {
				t.Fatalf("err = %#v, want axis %q", err, tc.axis)
			}
			if got != start {
				t.Fatalf("transform modified on failure")
			}
		})
	}
}

func TestViewSpaceLookAtDemoView(t *testing.T) {
	y, z, w := Vec4{0, 1, 0, 0}, Vec4{0, 0, 1, 0}, Vec4{0, 0, 0, 1}
	view, err := Identity().ViewSpace(y, z, w).LookAt(Vec4{}, w, y, z)
	if err != nil {
		t.Fatalf("LookAt: %v", err)
	}
	assertOrthonormalRows(t, view.LinearMapF64())

	// An object pushed 20 units along w ends up 20 units in front of the viewer.
	model := Identity().Translate(0, 0, 0, 20)
	got := view.Mul(model).TranslationF64()
	want := Vec4{0, 0, 0, -20}
	for i := range 4 {
		if !near(got[i], want[i]) {
			t.Fatalf("model-view translation = %v, want %v", got, want)
		}
	}
}

func TestCross(t *testing.T) {
	e := [4]Vec4{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
	if got := Cross(e[0], e[1], e[2]); got != e[3] {
		t.Fatalf("Cross(e0,e1,e2) = %v, want e3", got)
	}
	a, b, c := Vec4{1, 2, 0, -1}, Vec4{0, 1, 3, 2}, Vec4{4, 0, 1, 1}
	n := Cross(a, b, c)
	for i, v := range []Vec4{a, b, c} {
		if !near(n.Dot(v), 0) {
			t.Fatalf("Cross not orthogonal to input %d: dot = %g", i, n.Dot(v))
		}
	}
	if got := Cross(a, a.Scale(2), c); got.Len() > eps {
		t.Fatalf("Cross of dependent vectors = %v, want zero", got)
	}
}

func TestInverse(t *testing.T) {
	a, b, c := sample()
	for _, x := range []Transform{a, b, c} {
		inv, err := x.Inverse()
		if err != nil {
			t.Fatalf("Inverse: %v", err)
		}
		if !x.Mul(inv).ApproxEqual(Identity(), 1e-9) {
			t.Fatalf("A*A^-1 != I")
		}
		if !inv.Mul(x).ApproxEqual(Identity(), 1e-9) {
			t.Fatalf("A^-1*A != I")
		}
	}
	if _, err := Identity().Scale(1, 0, 1, 1).Inverse(); !errors.Is(err, ErrSingular) {
		t.Fatalf("err = %v, want ErrSingular", err)
	}
}

func TestLinearMapColumnMajor(t *testing.T) {
	x := FromParts([4][4]float64{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}, Vec4{})
	lm := x.LinearMap()
	// Column 0 holds the first entry of each row.
	if lm[0] != 1 || lm[1] != 5 || lm[2] != 9 || lm[3] != 13 || lm[4] != 2 {
		t.Fatalf("LinearMap() not column-major: %v", lm)
	}
}

func assertOrthonormalRows(t *testing.T, m [4][4]float64) {
	t.Helper()
	for i := range 4 {
		for j := range 4 {
			d := Vec4(m[i]).Dot(Vec4(m[j]))
			want := 0.0
			if i == j {
				want = 1
			}
			if !near(d, want) {
				t.Fatalf("row %d · row %d = %g, want %g", i, j, d, want)
			}
		}
	}
}
