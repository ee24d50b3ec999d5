package display_mesh

import (
	"github.com/Carmen-Shannon/g4d-go/engine/vertex_layout"
)

// DrawRecord captures one draw issued against a MemoryBackend.
type DrawRecord struct {
	IndexCount uint32
	Topology   Topology
}

// MemoryBackend is a MeshBackend that keeps mesh data in host memory.
// It backs headless tools and tests: finalized data can be read back and every draw is recorded.
type MemoryBackend struct {
	layout vertex_layout.VertexLayout

	stagedVertices []byte
	stagedIndices  []uint32

	vertices  []byte
	indices   []uint32
	finalized bool

	draws    []DrawRecord
	releases int
}

var _ MeshBackend = &MemoryBackend{}

// NewMemoryBackend creates an empty MemoryBackend.
//
// Returns:
//   - *MemoryBackend: the backend
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

func (b *MemoryBackend) Reset() {
	b.layout = nil
	b.stagedVertices, b.stagedIndices = nil, nil
	b.vertices, b.indices = nil, nil
	b.finalized = false
}

func (b *MemoryBackend) UploadVertices(layout vertex_layout.VertexLayout, data []byte) error {
	b.layout = layout
	b.stagedVertices = append([]byte(nil), data...)
	return nil
}

func (b *MemoryBackend) UploadIndices(indices []uint32) error {
	b.stagedIndices = append([]uint32(nil), indices...)
	return nil
}

func (b *MemoryBackend) Finalize(string) error {
	b.vertices, b.indices = b.stagedVertices, b.stagedIndices
	b.stagedVertices, b.stagedIndices = nil, nil
	b.finalized = true
	return nil
}

func (b *MemoryBackend) Draw(indexCount uint32, topology Topology) error {
	b.draws = append(b.draws, DrawRecord{IndexCount: indexCount, Topology: topology})
	return nil
}

func (b *MemoryBackend) Release() {
	b.Reset()
	b.releases++
}

// Vertices returns the finalized vertex bytes, nil before Finalize.
func (b *MemoryBackend) Vertices() []byte {
	return b.vertices
}

// Indices returns the finalized index list, nil before Finalize.
func (b *MemoryBackend) Indices() []uint32 {
	return b.indices
}

// Layout returns the layout of the recorded vertices.
func (b *MemoryBackend) Layout() vertex_layout.VertexLayout {
	return b.layout
}

// Finalized reports whether the current data has been finalized.
func (b *MemoryBackend) Finalized() bool {
	return b.finalized
}

// Draws returns every draw issued so far.
func (b *MemoryBackend) Draws() []DrawRecord {
	return b.draws
}

// Releases returns how many times Release has been called.
func (b *MemoryBackend) Releases() int {
	return b.releases
}

// Vertex returns the bytes of the i-th finalized vertex record.
//
// Parameters:
//   - i: the vertex index
//
// Returns:
//   - []byte: the record, or nil if i is out of range or nothing is finalized
func (b *MemoryBackend) Vertex(i int) []byte {
	if b.layout == nil || !b.finalized {
		return nil
	}
	stride := b.layout.Stride()
	if i < 0 || (i+1)*stride > len(b.vertices) {
		return nil
	}
	return b.vertices[i*stride : (i+1)*stride]
}
