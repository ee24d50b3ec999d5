package model

import (
	"encoding/binary"
	"fmt"
	"math"
	"unsafe"
)

// GPUVertex4D is the GPU-aligned representation of a single vertex of a 4-D model.
// Matches the model file record and vertex_layout.PositionTexCoord4D exactly.
// Size: 28 bytes (tightly packed, no padding).
type GPUVertex4D struct {
	Position [4]float32 // offset  0: vertex position in 4-D model space (16 bytes)
	TexCoord [3]float32 // offset 16: 3-D texture coordinate (12 bytes)
}

// GPUVertex4DSize is the byte size of one marshaled GPUVertex4D.
const GPUVertex4DSize = 28

// Size returns the size of the GPUVertex4D struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUVertex4D) Size() int {
	return int(unsafe.Sizeof(*g))
}

// Marshal serializes the GPUVertex4D struct into a little-endian byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 28-byte buffer ready for GPU upload.
func (g *GPUVertex4D) Marshal() []byte {
	buf := make([]byte, GPUVertex4DSize)
	g.MarshalTo(buf)
	return buf
}

// MarshalTo serializes the vertex into the first 28 bytes of buf.
//
// Parameters:
//   - buf: destination buffer (must be at least 28 bytes)
func (g *GPUVertex4D) MarshalTo(buf []byte) {
	for i := range 4 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.Position[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(g.TexCoord[i]))
	}
}

// UnmarshalGPUVertex4D decodes one vertex record.
//
// Parameters:
//   - buf: the record bytes (at least 28)
//
// Returns:
//   - GPUVertex4D: the decoded vertex
//   - error: an error if buf is too short
func UnmarshalGPUVertex4D(buf []byte) (GPUVertex4D, error) {
	if len(buf) < GPUVertex4DSize {
		return GPUVertex4D{}, fmt.Errorf("vertex record of %d bytes, want %d", len(buf), GPUVertex4DSize)
	}
	var v GPUVertex4D
	for i := range 4 {
		v.Position[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	for i := range 3 {
		v.TexCoord[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[16+i*4:]))
	}
	return v, nil
}

// MarshalVertices packs a vertex slice into one contiguous buffer.
//
// Parameters:
//   - vertices: the vertices to pack
//
// Returns:
//   - []byte: len(vertices)*28 bytes
func MarshalVertices(vertices []GPUVertex4D) []byte {
	buf := make([]byte, len(vertices)*GPUVertex4DSize)
	for i := range vertices {
		vertices[i].MarshalTo(buf[i*GPUVertex4DSize:])
	}
	return buf
}

// ComputeBoundingRadius calculates the bounding hypersphere radius from a slice of
// GPUVertex4D positions. The radius is the maximum distance from the origin
// across all vertices in the slice.
//
// Parameters:
//   - vertices: the vertex data to compute the bounding radius from
//
// Returns:
//   - float32: the maximum distance from the origin
func ComputeBoundingRadius(vertices []GPUVertex4D) float32 {
	var maxDistSq float32
	for _, v := range vertices {
		p := v.Position
		distSq := p[0]*p[0] + p[1]*p[1] + p[2]*p[2] + p[3]*p[3]
		if distSq > maxDistSq {
			maxDistSq = distSq
		}
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}

// ComputeBounds returns the axis-aligned bounding box of the vertex positions.
//
// Parameters:
//   - vertices: the vertex data
//
// Returns:
//   - [4]float32: the minimum corner (zero for an empty slice)
//   - [4]float32: the maximum corner (zero for an empty slice)
func ComputeBounds(vertices []GPUVertex4D) ([4]float32, [4]float32) {
	var lo, hi [4]float32
	for i, v := range vertices {
		for k := range 4 {
			if i == 0 || v.Position[k] < lo[k] {
				lo[k] = v.Position[k]
			}
			if i == 0 || v.Position[k] > hi[k] {
				hi[k] = v.Position[k]
			}
		}
	}
	return lo, hi
}
