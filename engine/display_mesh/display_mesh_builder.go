package display_mesh

import (
	"github.com/Carmen-Shannon/g4d-go/engine/vertex_layout"
	"go.uber.org/zap"
)

// DisplayMeshBuilderOption is a functional option for configuring a DisplayMesh via NewDisplayMesh.
type DisplayMeshBuilderOption func(*displayMesh)

// WithLayout is an option builder that sets the vertex layout of the mesh.
// The layout is shared, not owned: many meshes may reference the same layout.
//
// Parameters:
//   - layout: the vertex layout describing the mesh's vertex records
//
// Returns:
//   - DisplayMeshBuilderOption: a function that applies the layout option to a mesh
func WithLayout(layout vertex_layout.VertexLayout) DisplayMeshBuilderOption {
	return func(m *displayMesh) {
		m.layout = layout
	}
}

// WithLabel is an option builder that sets the debug label of the mesh.
// The label is attached to log entries and device resources.
//
// Parameters:
//   - label: the mesh label
//
// Returns:
//   - DisplayMeshBuilderOption: a function that applies the label option to a mesh
func WithLabel(label string) DisplayMeshBuilderOption {
	return func(m *displayMesh) {
		m.label = label
	}
}

// WithTopology is an option builder that sets the primitive topology. Defaults to TopologyTriangles.
//
// Parameters:
//   - topology: the primitive topology
//
// Returns:
//   - DisplayMeshBuilderOption: a function that applies the topology option to a mesh
func WithTopology(topology Topology) DisplayMeshBuilderOption {
	return func(m *displayMesh) {
		m.topology = topology
	}
}

// WithLogger is an option builder that sets the logger of the mesh. Defaults to Logger().
//
// Parameters:
//   - l: the logger
//
// Returns:
//   - DisplayMeshBuilderOption: a function that applies the logger option to a mesh
func WithLogger(l *zap.Logger) DisplayMeshBuilderOption {
	return func(m *displayMesh) {
		m.logger = l
	}
}
