package model

import (
	"fmt"

	"github.com/Carmen-Shannon/g4d-go/engine/display_mesh"
	"github.com/Carmen-Shannon/g4d-go/engine/vertex_layout"
)

// model is the implementation of the Model interface.
type model struct {
	name           string
	vertices       []GPUVertex4D
	indices        []uint32
	boundingRadius float32
}

// Model defines the interface for a loaded 4-D model.
// A Model holds host-side vertex and index data in the model file layout and knows how to record
// itself into a DisplayMesh.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Vertices returns the model vertices.
	//
	// Returns:
	//   - []GPUVertex4D: the vertices
	Vertices() []GPUVertex4D

	// Indices returns the vertex indices.
	//
	// Returns:
	//   - []uint32: the indices
	Indices() []uint32

	// VertexCount returns the number of vertices.
	//
	// Returns:
	//   - int: the vertex count
	VertexCount() int

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// VertexData returns the vertices packed in the 28-byte model file layout.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// BoundingRadius returns the bounding hypersphere radius, measured as the maximum vertex
	// distance from the origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32

	// Upload records the model into mesh with a full Begin, SetVertexCount, SetIndexCount,
	// AddVertices, AddIndices, End sequence. The mesh must use a layout with the model file stride.
	//
	// Parameters:
	//   - mesh: the mesh to (re)build, in StateEmpty or StateReady
	//
	// Returns:
	//   - error: the first lifecycle, size or backend error
	Upload(mesh display_mesh.DisplayMesh) error
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
// The bounding radius is computed from the vertices unless WithBoundingRadius is given.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{boundingRadius: -1}
	for _, opt := range options {
		opt(m)
	}
	if m.boundingRadius < 0 {
		m.boundingRadius = ComputeBoundingRadius(m.vertices)
	}
	return m
}

// FromImported wraps an ImportedModel.
//
// Parameters:
//   - imported: the decoded model data
//
// Returns:
//   - Model: the model
func FromImported(imported *ImportedModel) Model {
	return NewModel(
		WithName(imported.Name),
		WithVertices(imported.Vertices),
		WithIndices(imported.Indices),
	)
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Vertices() []GPUVertex4D {
	return m.vertices
}

func (m *model) Indices() []uint32 {
	return m.indices
}

func (m *model) VertexCount() int {
	return len(m.vertices)
}

func (m *model) IndexCount() int {
	return len(m.indices)
}

func (m *model) VertexData() []byte {
	return MarshalVertices(m.vertices)
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *model) Upload(mesh display_mesh.DisplayMesh) error {
	if layout := mesh.Layout(); layout != nil && layout.Stride() != vertex_layout.PositionTexCoord4DStride {
		return fmt.Errorf("model %q: mesh layout stride %d, want %d", m.name, layout.Stride(), vertex_layout.PositionTexCoord4DStride)
	}

	if err := mesh.Begin(); err != nil {
		return fmt.Errorf("model %q: %w", m.name, err)
	}
	steps := []func() error{
		func() error { return mesh.SetVertexCount(uint32(len(m.vertices))) },
		func() error { return mesh.SetIndexCount(uint32(len(m.indices))) },
		func() error { return mesh.AddVertices(m.VertexData()) },
		func() error { return mesh.AddIndices(m.indices) },
		mesh.End,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return fmt.Errorf("model %q: %w", m.name, err)
		}
	}
	return nil
}
