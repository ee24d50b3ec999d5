package common

import (
	"math"
	"testing"
)

func TestPerspective(t *testing.T) {
	var p [16]float32
	Perspective(p[:], math.Pi/2, 2, 1, 11)

	// tan(45°) = 1
	want := map[int]float32{0: 0.5, 5: 1, 10: -1.1, 11: -1, 14: -1.1, 15: 0}
	for i, v := range p {
		w := want[i]
		if math.Abs(float64(v-w)) > 1e-6 {
			t.Errorf("p[%d] = %v, want %v", i, v, w)
		}
	}
}

func TestInvert4(t *testing.T) {
	// column-major: scale (2, 4, 1, 1) with x-y shear
	m := []float64{
		2, 0, 0, 0,
		1, 4, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
	var inv [16]float64
	if !Invert4(inv[:], m) {
		t.Fatal("Invert4 reported singular")
	}

	for c := range 4 {
		for r := range 4 {
			var sum float64
			for k := range 4 {
				sum += m[k*4+r] * inv[c*4+k]
			}
			want := 0.0
			if r == c {
				want = 1
			}
			if math.Abs(sum-want) > 1e-12 {
				t.Errorf("(m*inv)[%d][%d] = %v, want %v", r, c, sum, want)
			}
		}
	}
}

func TestInvert4_Singular(t *testing.T) {
	m := make([]float32, 16)
	out := make([]float32, 16)
	out[3] = 7
	if Invert4(out, m) {
		t.Fatal("expected singular matrix")
	}
	if out[3] != 7 {
		t.Error("output modified for singular matrix")
	}
}

func TestInvert4_InPlace(t *testing.T) {
	m := make([]float64, 16)
	Identity(m)
	m[0], m[5] = 2, 0.5
	if !Invert4(m, m) {
		t.Fatal("Invert4 reported singular")
	}
	if m[0] != 0.5 || m[5] != 2 || m[10] != 1 {
		t.Errorf("in-place inverse = %v", m)
	}
}

func TestChunkRanges(t *testing.T) {
	tests := []struct {
		n, parts int
		want     [][2]int
	}{
		{0, 4, nil},
		{10, 3, [][2]int{{0, 4}, {4, 8}, {8, 10}}},
		{2, 8, [][2]int{{0, 1}, {1, 2}}},
		{5, 0, [][2]int{{0, 5}}},
		{9, 3, [][2]int{{0, 3}, {3, 6}, {6, 9}}},
	}
	for _, tt := range tests {
		got := ChunkRanges(tt.n, tt.parts)
		if len(got) != len(tt.want) {
			t.Errorf("ChunkRanges(%d, %d) = %v, want %v", tt.n, tt.parts, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ChunkRanges(%d, %d) = %v, want %v", tt.n, tt.parts, got, tt.want)
				break
			}
		}
	}
}

func TestParseKeySet(t *testing.T) {
	keys := ParseKeySet("aS d?")
	for _, k := range []int{KeyA, KeyS, KeyD, KeySpace} {
		if !keys.Pressed(k) {
			t.Errorf("key %d not pressed", k)
		}
	}
	if len(keys) != 4 {
		t.Errorf("len = %d, want 4", len(keys))
	}
	if ParseKeySet("").Pressed(KeyA) {
		t.Error("empty set reports A pressed")
	}
}
