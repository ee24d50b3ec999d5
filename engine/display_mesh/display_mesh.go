// Package display_mesh manages the upload and draw lifecycle of an indexed mesh whose vertex records
// are described by a vertex_layout.VertexLayout.
//
// A DisplayMesh moves through an explicit state machine:
//
//	Empty --Begin--> Recording --End--> Ready --Begin--> Recording ...
//	any state except Destroyed --Destroy--> Destroyed
//
// Recording methods are only accepted in Recording and Draw only in Ready. Out-of-order calls fail
// with a *LifecycleError and leave the mesh untouched. The device-specific work is delegated to a
// MeshBackend chosen when the mesh is constructed.
//
// A DisplayMesh is not safe for concurrent use.
package display_mesh

import (
	"github.com/Carmen-Shannon/g4d-go/engine/vertex_layout"
	"go.uber.org/zap"
)

// State is the lifecycle state of a DisplayMesh.
type State int

const (
	// StateEmpty is the state of a new mesh with no data.
	StateEmpty State = iota
	// StateRecording accepts counts, vertices and indices.
	StateRecording
	// StateReady holds finalized device resources and accepts Draw.
	StateReady
	// StateDestroyed is terminal: resources have been released.
	StateDestroyed
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "Empty"
	case StateRecording:
		return "Recording"
	case StateReady:
		return "Ready"
	case StateDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// displayMesh is the implementation of the DisplayMesh interface.
type displayMesh struct {
	label    string
	layout   vertex_layout.VertexLayout
	backend  MeshBackend
	topology Topology
	logger   *zap.Logger

	state                         State
	vertexCount, indexCount       uint32
	vertexCountSet, indexCountSet bool
	verticesAdded, indicesAdded   bool
}

// DisplayMesh is an indexed mesh that records its vertex and index data once and can then be drawn
// any number of times.
type DisplayMesh interface {
	// Label returns the debug label of the mesh.
	//
	// Returns:
	//   - string: the label
	Label() string

	// Layout returns the vertex layout shared by this mesh, or nil if none was set.
	//
	// Returns:
	//   - vertex_layout.VertexLayout: the layout
	Layout() vertex_layout.VertexLayout

	// Topology returns how the index list is grouped into primitives.
	//
	// Returns:
	//   - Topology: the primitive topology
	Topology() Topology

	// State returns the current lifecycle state.
	//
	// Returns:
	//   - State: the state
	State() State

	// VertexCount returns the declared vertex count of the current or last recording.
	//
	// Returns:
	//   - uint32: the vertex count
	VertexCount() uint32

	// IndexCount returns the declared index count of the current or last recording.
	//
	// Returns:
	//   - uint32: the index count
	IndexCount() uint32

	// Begin starts a recording, discarding previously recorded data and device resources.
	// Valid in Empty and Ready.
	//
	// Returns:
	//   - error: a *LifecycleError in any other state
	Begin() error

	// SetVertexCount declares the exact number of vertices AddVertices must supply.
	// Valid in Recording, before AddVertices.
	//
	// Parameters:
	//   - n: the vertex count
	//
	// Returns:
	//   - error: a *LifecycleError outside Recording or after vertices were added
	SetVertexCount(n uint32) error

	// SetIndexCount declares the exact number of indices AddIndices must supply.
	// Valid in Recording, before AddIndices.
	//
	// Parameters:
	//   - n: the index count
	//
	// Returns:
	//   - error: a *LifecycleError outside Recording or after indices were added
	SetIndexCount(n uint32) error

	// AddVertices hands the raw vertex records to the backend. It requires a layout and a declared
	// vertex count, and raw must hold exactly VertexCount()*Layout().Stride() bytes.
	//
	// Parameters:
	//   - raw: the vertex bytes
	//
	// Returns:
	//   - error: a *LifecycleError for a missing precondition, a *SizeMismatchError for a wrong length
	AddVertices(raw []byte) error

	// AddIndices hands the index list to the backend. It requires a declared index count and
	// exactly IndexCount() indices. Index values are not range checked: each must be below
	// VertexCount(), which is the caller's obligation.
	//
	// Parameters:
	//   - indices: the vertex indices
	//
	// Returns:
	//   - error: a *LifecycleError for a missing precondition, a *SizeMismatchError for a wrong length
	AddIndices(indices []uint32) error

	// End finalizes the recording and creates the device resources, moving the mesh to Ready.
	// Both vertices and indices must have been added, and the index count must be a whole number of
	// primitives for the mesh topology.
	//
	// Returns:
	//   - error: a *LifecycleError, a *SizeMismatchError, or the backend error; the mesh stays in
	//     Recording on failure
	End() error

	// Draw issues a draw of IndexCount() indices using the shading state bound by the caller.
	// Valid only in Ready; it does not change the mesh.
	//
	// Returns:
	//   - error: a *LifecycleError outside Ready, or the backend error
	Draw() error

	// Destroy releases the device resources. The mesh cannot be used afterwards.
	//
	// Returns:
	//   - error: a *LifecycleError if the mesh was already destroyed
	Destroy() error
}

var _ DisplayMesh = &displayMesh{}

// NewDisplayMesh creates an empty DisplayMesh realized by the given backend.
//
// Parameters:
//   - backend: the device realization of the mesh, exclusively owned by the new mesh
//   - options: a variadic list of DisplayMeshBuilderOption functions to configure the mesh
//
// Returns:
//   - DisplayMesh: a new mesh in StateEmpty
func NewDisplayMesh(backend MeshBackend, options ...DisplayMeshBuilderOption) DisplayMesh {
	m := &displayMesh{
		backend:  backend,
		topology: TopologyTriangles,
		state:    StateEmpty,
	}
	for _, opt := range options {
		opt(m)
	}
	if m.logger == nil {
		m.logger = Logger()
	}
	m.logger = m.logger.With(zap.String("mesh", m.label))
	return m
}

func (m *displayMesh) Label() string {
	return m.label
}

func (m *displayMesh) Layout() vertex_layout.VertexLayout {
	return m.layout
}

func (m *displayMesh) Topology() Topology {
	return m.topology
}

func (m *displayMesh) State() State {
	return m.state
}

func (m *displayMesh) VertexCount() uint32 {
	return m.vertexCount
}

func (m *displayMesh) IndexCount() uint32 {
	return m.indexCount
}

func (m *displayMesh) Begin() error {
	if m.state != StateEmpty && m.state != StateReady {
		return m.lifecycleError("Begin", "")
	}
	m.backend.Reset()
	m.vertexCount, m.indexCount = 0, 0
	m.vertexCountSet, m.indexCountSet = false, false
	m.verticesAdded, m.indicesAdded = false, false
	m.transition(StateRecording)
	return nil
}

func (m *displayMesh) SetVertexCount(n uint32) error {
	if m.state != StateRecording {
		return m.lifecycleError("SetVertexCount", "")
	}
	if m.verticesAdded {
		return m.lifecycleError("SetVertexCount", "vertices already added")
	}
	m.vertexCount = n
	m.vertexCountSet = true
	return nil
}

func (m *displayMesh) SetIndexCount(n uint32) error {
	if m.state != StateRecording {
		return m.lifecycleError("SetIndexCount", "")
	}
	if m.indicesAdded {
		return m.lifecycleError("SetIndexCount", "indices already added")
	}
	m.indexCount = n
	m.indexCountSet = true
	return nil
}

func (m *displayMesh) AddVertices(raw []byte) error {
	const op = "AddVertices"
	switch {
	case m.state != StateRecording:
		return m.lifecycleError(op, "")
	case m.layout == nil:
		return m.lifecycleError(op, "mesh has no vertex layout")
	case !m.vertexCountSet:
		return m.lifecycleError(op, "vertex count not declared")
	case m.verticesAdded:
		return m.lifecycleError(op, "vertices already added")
	}

	want := int(m.vertexCount) * m.layout.Stride()
	if len(raw) != want {
		return &SizeMismatchError{Op: op, Want: want, Got: len(raw)}
	}
	if err := m.backend.UploadVertices(m.layout, raw); err != nil {
		m.logger.Error("vertex upload failed", zap.Error(err))
		return err
	}
	m.verticesAdded = true
	return nil
}

func (m *displayMesh) AddIndices(indices []uint32) error {
	const op = "AddIndices"
	switch {
	case m.state != StateRecording:
		return m.lifecycleError(op, "")
	case !m.indexCountSet:
		return m.lifecycleError(op, "index count not declared")
	case m.indicesAdded:
		return m.lifecycleError(op, "indices already added")
	}

	if len(indices) != int(m.indexCount) {
		return &SizeMismatchError{Op: op, Want: int(m.indexCount), Got: len(indices)}
	}
	if err := m.backend.UploadIndices(indices); err != nil {
		m.logger.Error("index upload failed", zap.Error(err))
		return err
	}
	m.indicesAdded = true
	return nil
}

func (m *displayMesh) End() error {
	const op = "End"
	switch {
	case m.state != StateRecording:
		return m.lifecycleError(op, "")
	case !m.verticesAdded:
		return m.lifecycleError(op, "vertices not added")
	case !m.indicesAdded:
		return m.lifecycleError(op, "indices not added")
	}

	group := m.topology.GroupSize()
	if rem := int(m.indexCount) % group; rem != 0 {
		return &SizeMismatchError{Op: op, Want: int(m.indexCount) - rem + group, Got: int(m.indexCount)}
	}
	if err := m.backend.Finalize(m.label); err != nil {
		m.logger.Error("mesh finalize failed", zap.Error(err))
		return err
	}
	m.transition(StateReady)
	return nil
}

func (m *displayMesh) Draw() error {
	if m.state != StateReady {
		return m.lifecycleError("Draw", "")
	}
	return m.backend.Draw(m.indexCount, m.topology)
}

func (m *displayMesh) Destroy() error {
	if m.state == StateDestroyed {
		return m.lifecycleError("Destroy", "")
	}
	m.backend.Release()
	m.transition(StateDestroyed)
	return nil
}

func (m *displayMesh) transition(to State) {
	m.logger.Debug("mesh state change",
		zap.Stringer("from", m.state),
		zap.Stringer("to", to),
		zap.Uint32("vertices", m.vertexCount),
		zap.Uint32("indices", m.indexCount))
	m.state = to
}

func (m *displayMesh) lifecycleError(op, reason string) error {
	return &LifecycleError{Op: op, State: m.state, Reason: reason}
}
