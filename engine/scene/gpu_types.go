package scene

import (
	"encoding/binary"
	"math"
	"unsafe"

	"github.com/Carmen-Shannon/g4d-go/engine/transform"
)

// GPUModelViewUniformSource is the WGSL definition of the ModelViewUniform struct.
// Matches GPUModelViewUniform layout exactly (144 bytes).
const GPUModelViewUniformSource = `struct ModelViewUniform {
    linear_map: mat4x4<f32>,
    translation: vec4<f32>,
    projection: mat4x4<f32>,
}
`

// GPUModelViewUniform is the GPU-aligned representation of the per-object uniform block read by
// the slicing shader: the model-view transform of one object and the shared projection.
// Size: 144 bytes (WGSL aligned, no padding).
type GPUModelViewUniform struct {
	LinearMap   [16]float32 // offset   0: column-major 4-D model-view linear map (mat4x4<f32>)
	Translation [4]float32  // offset  64: model-view translation (vec4<f32>)
	Projection  [16]float32 // offset  80: column-major 3-D projection (mat4x4<f32>)
}

// GPUModelViewUniformSize is the byte size of a marshaled GPUModelViewUniform.
const GPUModelViewUniformSize = 144

// NewGPUModelViewUniform narrows a model-view transform into a uniform block.
//
// Parameters:
//   - modelView: the composed view·model transform
//   - projection: the column-major projection matrix
//
// Returns:
//   - GPUModelViewUniform: the uniform block
func NewGPUModelViewUniform(modelView transform.Transform, projection [16]float32) GPUModelViewUniform {
	return GPUModelViewUniform{
		LinearMap:   modelView.LinearMap(),
		Translation: modelView.Translation(),
		Projection:  projection,
	}
}

// Size returns the size of the GPUModelViewUniform struct in bytes.
//
// Returns:
//   - int: the struct size in bytes (144)
func (g *GPUModelViewUniform) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUModelViewUniform struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: the serialized byte buffer
func (g *GPUModelViewUniform) Marshal() []byte {
	buf := make([]byte, GPUModelViewUniformSize)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.LinearMap[i]))
	}
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.Translation[i]))
	}
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[80+i*4:], math.Float32bits(g.Projection[i]))
	}
	return buf
}
