package display_mesh

import (
	"fmt"

	"github.com/Carmen-Shannon/g4d-go/engine/vertex_layout"
)

// Topology is the primitive assembly used when drawing a mesh's index list.
type Topology int

const (
	// TopologyTriangles groups indices in threes.
	TopologyTriangles Topology = iota
	// TopologyLines groups indices in pairs.
	TopologyLines
	// TopologyTetrahedra groups indices in fours, one tetrahedron of a 4-D cell complex each,
	// the lines-adjacency style input a slicing shader stage expects.
	TopologyTetrahedra
)

// GroupSize returns the number of indices per primitive.
func (t Topology) GroupSize() int {
	switch t {
	case TopologyLines:
		return 2
	case TopologyTetrahedra:
		return 4
	default:
		return 3
	}
}

func (t Topology) String() string {
	switch t {
	case TopologyTriangles:
		return "Triangles"
	case TopologyLines:
		return "Lines"
	case TopologyTetrahedra:
		return "Tetrahedra"
	default:
		return fmt.Sprintf("Topology(%d)", int(t))
	}
}

// MeshBackend realizes a DisplayMesh on a particular rendering device.
// The DisplayMesh enforces the lifecycle and all size checks before calling into the backend,
// so implementations only deal with resource creation, drawing and release.
type MeshBackend interface {
	// Reset discards any recorded or uploaded data so the mesh can be rebuilt.
	Reset()

	// UploadVertices records the vertex bytes. data has exactly vertexCount*layout.Stride() bytes
	// and must be copied if retained.
	//
	// Parameters:
	//   - layout: the vertex layout describing data
	//   - data: the raw vertex records
	//
	// Returns:
	//   - error: an error if the backend cannot represent the layout
	UploadVertices(layout vertex_layout.VertexLayout, data []byte) error

	// UploadIndices records the index list, which must be copied if retained.
	//
	// Parameters:
	//   - indices: the vertex indices
	//
	// Returns:
	//   - error: an error if the indices cannot be recorded
	UploadIndices(indices []uint32) error

	// Finalize creates the device resources for the recorded data. This may block on the device.
	//
	// Parameters:
	//   - label: a debug label for created resources
	//
	// Returns:
	//   - error: an error if the resources could not be created; nothing stays allocated in that case
	Finalize(label string) error

	// Draw issues one indexed draw using whatever shading state the caller has bound.
	//
	// Parameters:
	//   - indexCount: the number of indices to draw
	//   - topology: how the indices are grouped into primitives
	//
	// Returns:
	//   - error: an error if the draw could not be issued
	Draw(indexCount uint32, topology Topology) error

	// Release frees all device resources. It is called at most once per mesh.
	Release()
}
