package vertex_layout

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

var (
	positionAttr = Attribute{Offset: 0, Semantic: SemanticPosition, Type: Float32, Count: 4}
	texCoordAttr = Attribute{Offset: 16, Semantic: SemanticTexCoord, Type: Float32, Count: 3}
)

func TestBuildModelFileLayout(t *testing.T) {
	layout, err := NewBuilder().SetSize(28).Add(positionAttr).Add(texCoordAttr).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if layout.Stride() != 28 || layout.Len() != 2 {
		t.Fatalf("stride=%d len=%d, want 28 and 2", layout.Stride(), layout.Len())
	}
	attrs := layout.Attributes()
	if attrs[0] != positionAttr || attrs[1] != texCoordAttr {
		t.Fatalf("attributes out of declaration order: %+v", attrs)
	}
	if got, ok := layout.Attribute(SemanticTexCoord); !ok || got != texCoordAttr {
		t.Fatalf("Attribute(TexCoord) = %+v, %v", got, ok)
	}
	if _, ok := layout.Attribute(SemanticNormal); ok {
		t.Fatalf("Attribute(Normal) found in layout without normals")
	}
	if layout.Location(SemanticTexCoord) != 1 || layout.Location(SemanticColor) != -1 {
		t.Fatalf("unexpected locations")
	}

	prebuilt := PositionTexCoord4D()
	if prebuilt.Stride() != layout.Stride() || len(prebuilt.Attributes()) != 2 {
		t.Fatalf("PositionTexCoord4D mismatch")
	}
}

func TestAttributesReturnsCopy(t *testing.T) {
	layout := PositionTexCoord4D()
	attrs := layout.Attributes()
	attrs[0].Offset = 99
	if a, _ := layout.Attribute(SemanticPosition); a.Offset != 0 {
		t.Fatalf("layout mutated through Attributes()")
	}
}

func TestBuilderErrors(t *testing.T) {
	cases := []struct {
		name  string
		build func() *Builder
	}{
		{"add before size", func() *Builder {
			return NewBuilder().Add(positionAttr)
		}},
		{"zero stride", func() *Builder {
			return NewBuilder().SetSize(0)
		}},
		{"size twice", func() *Builder {
			return NewBuilder().SetSize(28).SetSize(32)
		}},
		{"range past stride", func() *Builder {
			return NewBuilder().SetSize(28).Add(Attribute{Offset: 20, Semantic: SemanticTexCoord, Type: Float32, Count: 3})
		}},
		{"offset overflowing the range end", func() *Builder {
			return NewBuilder().SetSize(28).Add(Attribute{Offset: math.MaxInt - 2, Semantic: SemanticPosition, Type: Float32, Count: 4})
		}},
		{"negative offset", func() *Builder {
			return NewBuilder().SetSize(28).Add(Attribute{Offset: -4, Semantic: SemanticColor, Type: Uint8, Count: 4, Normalized: true})
		}},
		{"duplicate semantic", func() *Builder {
			return NewBuilder().SetSize(32).Add(positionAttr).Add(Attribute{Offset: 16, Semantic: SemanticPosition, Type: Float32, Count: 4})
		}},
		{"zero count", func() *Builder {
			return NewBuilder().SetSize(28).Add(Attribute{Semantic: SemanticColor, Type: Float32})
		}},
		{"five components", func() *Builder {
			return NewBuilder().SetSize(28).Add(Attribute{Semantic: SemanticColor, Type: Uint8, Count: 5})
		}},
		{"float as integer", func() *Builder {
			return NewBuilder().SetSize(28).Add(Attribute{Semantic: SemanticColor, Type: Float32, Count: 1, AsInteger: true})
		}},
		{"unknown type", func() *Builder {
			return NewBuilder().SetSize(28).Add(Attribute{Semantic: SemanticColor, Type: ScalarType(42), Count: 1})
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := tc.build()
			if !errors.Is(b.Err(), ErrLayout) {
				t.Fatalf("Err() = %v, want ErrLayout", b.Err())
			}
			layout, err := b.Build()
			var le *LayoutError
			if !errors.As(err, &le) || layout != nil {
				t.Fatalf("Build() = %v, %v; want nil, *LayoutError", layout, err)
			}
		})
	}
}

func TestBuilderFirstErrorWins(t *testing.T) {
	b := NewBuilder().SetSize(16).
		Add(Attribute{Offset: 8, Semantic: SemanticPosition, Type: Float32, Count: 4}).
		Add(Attribute{Offset: 0, Semantic: SemanticTexCoord, Type: Float32, Count: 2})
	var le *LayoutError
	if !errors.As(b.Err(), &le) || le.Semantic == nil || *le.Semantic != SemanticPosition {
		t.Fatalf("Err() = %v, want the Position range error", b.Err())
	}
}

func TestAttributeFillingStrideExactly(t *testing.T) {
	_, err := NewBuilder().SetSize(16).Add(positionAttr).Build()
	if err != nil {
		t.Fatalf("attribute ending at stride rejected: %v", err)
	}
}

func TestBuilderConsumed(t *testing.T) {
	b := NewBuilder().SetSize(28).Add(positionAttr)
	if _, err := b.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, err := b.Build(); !errors.Is(err, ErrLayout) {
		t.Fatalf("second Build err = %v, want ErrLayout", err)
	}
	if b.Add(texCoordAttr).Err() == nil {
		t.Fatalf("Add after Build succeeded")
	}
}

func TestDecode(t *testing.T) {
	layout, err := NewBuilder().SetSize(24).
		Add(Attribute{Offset: 0, Semantic: SemanticPosition, Type: Float32, Count: 2}).
		Add(Attribute{Offset: 8, Semantic: SemanticColor, Type: Uint8, Count: 4, Normalized: true}).
		Add(Attribute{Offset: 12, Semantic: SemanticNormal, Type: Sint16, Count: 2, Normalized: true}).
		Add(Attribute{Offset: 16, Semantic: SemanticBoneIndices, Type: Uint16, Count: 2, AsInteger: true}).
		Add(Attribute{Offset: 20, Semantic: SemanticTexCoord, Type: Float16, Count: 2}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	rec := make([]byte, 24)
	binary.LittleEndian.PutUint32(rec[0:], math.Float32bits(1.5))
	binary.LittleEndian.PutUint32(rec[4:], math.Float32bits(-2))
	copy(rec[8:], []byte{0, 255, 51, 255})
	binary.LittleEndian.PutUint16(rec[12:], uint16(0x8000)) // -32768 clamps to -1
	binary.LittleEndian.PutUint16(rec[14:], 32767)
	binary.LittleEndian.PutUint16(rec[16:], 7)
	binary.LittleEndian.PutUint16(rec[18:], 65535)
	binary.LittleEndian.PutUint16(rec[20:], 0x3c00) // 1.0
	binary.LittleEndian.PutUint16(rec[22:], 0xc000) // -2.0

	check := func(sem Semantic, want ...float64) {
		t.Helper()
		got, err := layout.Decode(rec, sem)
		if err != nil {
			t.Fatalf("Decode(%v): %v", sem, err)
		}
		for i := range want {
			if math.Abs(got[i]-want[i]) > 1e-9 {
				t.Fatalf("Decode(%v) = %v, want %v", sem, got, want)
			}
		}
	}
	check(SemanticPosition, 1.5, -2)
	check(SemanticColor, 0, 1, 0.2, 1)
	check(SemanticNormal, -1, 1)
	check(SemanticBoneIndices, 7, 65535)
	check(SemanticTexCoord, 1, -2)

	if _, err := layout.Decode(rec[:10], SemanticNormal); !errors.Is(err, ErrLayout) {
		t.Fatalf("short record err = %v, want ErrLayout", err)
	}
	if _, err := layout.Decode(rec, SemanticTangent); !errors.Is(err, ErrLayout) {
		t.Fatalf("missing semantic err = %v, want ErrLayout", err)
	}
}

func TestDecodeFloat16(t *testing.T) {
	layout, err := NewBuilder().SetSize(2).
		Add(Attribute{Semantic: SemanticCustom, Type: Float16, Count: 1}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	cases := map[uint16]float64{
		0x0000: 0,
		0x3c00: 1,
		0x3800: 0.5,
		0xc000: -2,
		0x0001: math.Ldexp(1, -24),
		0x7bff: 65504,
	}
	record := make([]byte, 2)
	for in, want := range cases {
		binary.LittleEndian.PutUint16(record, in)
		got, err := layout.Decode(record, SemanticCustom)
		if err != nil {
			t.Fatalf("Decode(%#04x): %v", in, err)
		}
		if got[0] != want {
			t.Errorf("Decode(%#04x) = %v, want %v", in, got[0], want)
		}
	}

	binary.LittleEndian.PutUint16(record, 0x7c00)
	if got, _ := layout.Decode(record, SemanticCustom); !math.IsInf(got[0], 1) {
		t.Errorf("Decode(0x7c00) = %v, want +Inf", got[0])
	}
	binary.LittleEndian.PutUint16(record, 0x7e00)
	if got, _ := layout.Decode(record, SemanticCustom); !math.IsNaN(got[0]) {
		t.Errorf("Decode(0x7e00) = %v, want NaN", got[0])
	}
}

func TestWGPUBufferLayout(t *testing.T) {
	bl, err := WGPUBufferLayout(PositionTexCoord4D())
	if err != nil {
		t.Fatalf("WGPUBufferLayout: %v", err)
	}
	if bl.ArrayStride != 28 || bl.StepMode != wgpu.VertexStepModeVertex || len(bl.Attributes) != 2 {
		t.Fatalf("unexpected buffer layout %+v", bl)
	}
	want := []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 16, ShaderLocation: 1},
	}
	for i := range want {
		if bl.Attributes[i] != want[i] {
			t.Fatalf("attribute %d = %+v, want %+v", i, bl.Attributes[i], want[i])
		}
	}
}

func TestWGPUVertexFormat(t *testing.T) {
	cases := []struct {
		attr Attribute
		want wgpu.VertexFormat
		ok   bool
	}{
		{Attribute{Type: Uint8, Count: 4, Normalized: true}, wgpu.VertexFormatUnorm8x4, true},
		{Attribute{Type: Sint16, Count: 2, Normalized: true}, wgpu.VertexFormatSnorm16x2, true},
		{Attribute{Type: Uint32, Count: 3, AsInteger: true}, wgpu.VertexFormatUint32x3, true},
		{Attribute{Type: Float32, Count: 2, Normalized: true}, wgpu.VertexFormatFloat32x2, true},
		{Attribute{Type: Uint8, Count: 3, Normalized: true}, 0, false},
		{Attribute{Type: Uint16, Count: 2}, 0, false},
	}
	for _, tc := range cases {
		got, err := WGPUVertexFormat(tc.attr)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("WGPUVertexFormat(%+v) = %v, %v; want %v", tc.attr, got, err, tc.want)
		}
		if !tc.ok && !errors.Is(err, ErrLayout) {
			t.Errorf("WGPUVertexFormat(%+v) err = %v, want ErrLayout", tc.attr, err)
		}
	}
}
