package vertex_layout

import "fmt"

// Semantic identifies the role an attribute plays in a vertex record.
type Semantic int

const (
	// SemanticPosition is the vertex position (four components for 4-D geometry).
	SemanticPosition Semantic = iota
	// SemanticTexCoord is the texture coordinate (three components for a 3-D texture).
	SemanticTexCoord
	// SemanticColor is a per-vertex color.
	SemanticColor
	// SemanticNormal is the vertex normal.
	SemanticNormal
	// SemanticTangent is the tangent vector used for normal mapping.
	SemanticTangent
	// SemanticBoneIndices holds skinning bone indices.
	SemanticBoneIndices
	// SemanticBoneWeights holds skinning bone weights.
	SemanticBoneWeights
	// SemanticCustom is a free-form attribute.
	SemanticCustom
)

var semanticNames = map[Semantic]string{
	SemanticPosition:    "Position",
	SemanticTexCoord:    "TexCoord",
	SemanticColor:       "Color",
	SemanticNormal:      "Normal",
	SemanticTangent:     "Tangent",
	SemanticBoneIndices: "BoneIndices",
	SemanticBoneWeights: "BoneWeights",
	SemanticCustom:      "Custom",
}

func (s Semantic) String() string {
	if name, ok := semanticNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Semantic(%d)", int(s))
}

// ScalarType is the type of a single attribute component.
type ScalarType int

const (
	Float32 ScalarType = iota
	Float16
	Uint8
	Sint8
	Uint16
	Sint16
	Uint32
	Sint32
)

// scalarInfo describes the byte size and integer range of a scalar type.
type scalarInfo struct {
	name    string
	size    int
	integer bool
	signed  bool
	max     float64 // largest positive value, used for normalization
}

var scalarTypes = map[ScalarType]scalarInfo{
	Float32: {"float32", 4, false, true, 0},
	Float16: {"float16", 2, false, true, 0},
	Uint8:   {"uint8", 1, true, false, 255},
	Sint8:   {"sint8", 1, true, true, 127},
	Uint16:  {"uint16", 2, true, false, 65535},
	Sint16:  {"sint16", 2, true, true, 32767},
	Uint32:  {"uint32", 4, true, false, 4294967295},
	Sint32:  {"sint32", 4, true, true, 2147483647},
}

// Size returns the byte size of one component, or 0 for an unknown type.
func (t ScalarType) Size() int {
	return scalarTypes[t].size
}

// IsInteger reports whether the type stores integer values.
func (t ScalarType) IsInteger() bool {
	return scalarTypes[t].integer
}

func (t ScalarType) String() string {
	if info, ok := scalarTypes[t]; ok {
		return info.name
	}
	return fmt.Sprintf("ScalarType(%d)", int(t))
}

// Attribute describes one attribute inside a vertex record.
type Attribute struct {
	// Offset is the byte offset of the attribute from the start of the record.
	Offset int
	// Semantic is the role of the attribute. Each semantic appears at most once per layout.
	Semantic Semantic
	// Type is the scalar type of each component.
	Type ScalarType
	// Count is the number of components, 1 to 4.
	Count int
	// Normalized rescales integer components to [0, 1] (unsigned) or [-1, 1] (signed) on read.
	Normalized bool
	// AsInteger hands integer components to the shader as integers rather than floats.
	AsInteger bool
}

// ByteSize returns the number of bytes the attribute occupies in a record.
func (a Attribute) ByteSize() int {
	return a.Count * a.Type.Size()
}

// End returns the offset one past the attribute's last byte.
func (a Attribute) End() int {
	return a.Offset + a.ByteSize()
}
