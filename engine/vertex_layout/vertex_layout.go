// Package vertex_layout declares the in-memory layout of a vertex record independently of any
// rendering backend. A layout is declared once with a Builder and then shared, read-only, by every
// mesh whose vertices use that record type. Backends iterate its attributes in declaration order to
// bind each one to a shader input slot.
package vertex_layout

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/x448/float16"
)

// PositionTexCoord4DStride is the byte size of a model-file vertex: float32[4] position followed by
// float32[3] texture coordinate.
const PositionTexCoord4DStride = 28

// vertexLayout is the implementation of the VertexLayout interface.
type vertexLayout struct {
	stride     int
	attributes []Attribute
	bySemantic map[Semantic]int
}

// VertexLayout is an immutable description of one vertex record.
type VertexLayout interface {
	// Stride returns the byte size of one vertex record.
	//
	// Returns:
	//   - int: the record stride in bytes
	Stride() int

	// Len returns the number of declared attributes.
	//
	// Returns:
	//   - int: the attribute count
	Len() int

	// Attributes returns a copy of the attributes in declaration order.
	// The position of an attribute in this slice is its shader input location.
	//
	// Returns:
	//   - []Attribute: the attributes
	Attributes() []Attribute

	// Attribute looks up the attribute with the given semantic.
	//
	// Parameters:
	//   - sem: the semantic to look up
	//
	// Returns:
	//   - Attribute: the attribute, zero value if absent
	//   - bool: true if the layout declares the semantic
	Attribute(sem Semantic) (Attribute, bool)

	// Location returns the shader input location bound to the given semantic.
	//
	// Parameters:
	//   - sem: the semantic to look up
	//
	// Returns:
	//   - int: the declaration index of the attribute, or -1 if absent
	Location(sem Semantic) int

	// Decode reads one attribute out of a single vertex record, applying the normalization rules of
	// the attribute: normalized unsigned integers map to [0, 1], normalized signed integers to [-1, 1].
	//
	// Parameters:
	//   - record: the bytes of one vertex (at least Stride bytes)
	//   - sem: the semantic of the attribute to read
	//
	// Returns:
	//   - []float64: one value per component
	//   - error: a *LayoutError if the semantic is absent or the record is too short
	Decode(record []byte, sem Semantic) ([]float64, error)
}

var _ VertexLayout = &vertexLayout{}

func newVertexLayout(stride int, attrs []Attribute) *vertexLayout {
	l := &vertexLayout{
		stride:     stride,
		attributes: attrs,
		bySemantic: make(map[Semantic]int, len(attrs)),
	}
	for i, a := range attrs {
		l.bySemantic[a.Semantic] = i
	}
	return l
}

// PositionTexCoord4D returns the layout of the binary model file vertex: a float32x4 Position at
// offset 0 and a float32x3 TexCoord at offset 16, stride 28.
//
// Returns:
//   - VertexLayout: the model-file vertex layout
func PositionTexCoord4D() VertexLayout {
	return newVertexLayout(PositionTexCoord4DStride, []Attribute{
		{Offset: 0, Semantic: SemanticPosition, Type: Float32, Count: 4},
		{Offset: 16, Semantic: SemanticTexCoord, Type: Float32, Count: 3},
	})
}

func (l *vertexLayout) Stride() int {
	return l.stride
}

func (l *vertexLayout) Len() int {
	return len(l.attributes)
}

func (l *vertexLayout) Attributes() []Attribute {
	out := make([]Attribute, len(l.attributes))
	copy(out, l.attributes)
	return out
}

func (l *vertexLayout) Attribute(sem Semantic) (Attribute, bool) {
	i, ok := l.bySemantic[sem]
	if !ok {
		return Attribute{}, false
	}
	return l.attributes[i], true
}

func (l *vertexLayout) Location(sem Semantic) int {
	if i, ok := l.bySemantic[sem]; ok {
		return i
	}
	return -1
}

func (l *vertexLayout) Decode(record []byte, sem Semantic) ([]float64, error) {
	attr, ok := l.Attribute(sem)
	if !ok {
		return nil, layoutErrorf(&sem, "not declared in layout")
	}
	if attr.Offset > len(record)-attr.ByteSize() {
		return nil, layoutErrorf(&sem, "record of %d bytes too short, attribute ends at %d", len(record), attr.End())
	}

	info := scalarTypes[attr.Type]
	out := make([]float64, attr.Count)
	for i := range out {
		b := record[attr.Offset+i*info.size:]
		var v float64
		switch attr.Type {
		case Float32:
			v = float64(math.Float32frombits(binary.LittleEndian.Uint32(b)))
		case Float16:
			v = float64(float16.Frombits(binary.LittleEndian.Uint16(b)).Float32())
		case Uint8:
			v = float64(b[0])
		case Sint8:
			v = float64(int8(b[0]))
		case Uint16:
			v = float64(binary.LittleEndian.Uint16(b))
		case Sint16:
			v = float64(int16(binary.LittleEndian.Uint16(b)))
		case Uint32:
			v = float64(binary.LittleEndian.Uint32(b))
		case Sint32:
			v = float64(int32(binary.LittleEndian.Uint32(b)))
		default:
			return nil, fmt.Errorf("decode %s: unsupported component type %v", sem, attr.Type)
		}
		if attr.Normalized && info.integer {
			v /= info.max
			if info.signed && v < -1 {
				v = -1
			}
		}
		out[i] = v
	}
	return out, nil
}
