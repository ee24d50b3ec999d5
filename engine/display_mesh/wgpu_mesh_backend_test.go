package display_mesh

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/g4d-go/engine/vertex_layout"
	"github.com/cogentcore/webgpu/wgpu"
)

// unusedPass fails the test if a draw reaches the render pass.
func unusedPass(t *testing.T) PassSource {
	return PassSourceFunc(func() *wgpu.RenderPassEncoder {
		t.Helper()
		t.Fatal("render pass queried")
		return nil
	})
}

func TestWGPUBackend_UploadVerticesMapsLayout(t *testing.T) {
	b := NewWGPUBackend(nil, nil, unusedPass(t))
	data := make([]byte, 3*vertex_layout.PositionTexCoord4DStride)
	if err := b.UploadVertices(vertex_layout.PositionTexCoord4D(), data); err != nil {
		t.Fatalf("UploadVertices: %v", err)
	}

	bl := b.VertexBufferLayout()
	if bl.ArrayStride != vertex_layout.PositionTexCoord4DStride {
		t.Errorf("ArrayStride = %d, want %d", bl.ArrayStride, vertex_layout.PositionTexCoord4DStride)
	}
	if bl.StepMode != wgpu.VertexStepModeVertex {
		t.Errorf("StepMode = %v, want vertex", bl.StepMode)
	}
	want := []wgpu.VertexAttribute{
		{Format: wgpu.VertexFormatFloat32x4, Offset: 0, ShaderLocation: 0},
		{Format: wgpu.VertexFormatFloat32x3, Offset: 16, ShaderLocation: 1},
	}
	if len(bl.Attributes) != len(want) {
		t.Fatalf("len(Attributes) = %d, want %d", len(bl.Attributes), len(want))
	}
	for i, a := range bl.Attributes {
		if a != want[i] {
			t.Errorf("Attributes[%d] = %+v, want %+v", i, a, want[i])
		}
	}

	data[0] = 0xff
	if b.stagedVertices[0] != 0 {
		t.Error("staged vertices alias the caller's slice")
	}
}

func TestWGPUBackend_UnsupportedLayout(t *testing.T) {
	layout, err := vertex_layout.NewBuilder().SetSize(4).
		Add(vertex_layout.Attribute{Semantic: vertex_layout.SemanticColor, Type: vertex_layout.Uint8, Count: 3, Normalized: true}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	b := NewWGPUBackend(nil, nil, unusedPass(t))
	m := NewDisplayMesh(b, WithLayout(layout), WithLabel("rgb"))
	if err := m.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if err := m.SetVertexCount(1); err != nil {
		t.Fatalf("SetVertexCount: %v", err)
	}

	err = m.AddVertices(make([]byte, 4))
	var le *vertex_layout.LayoutError
	if !errors.As(err, &le) {
		t.Fatalf("AddVertices err = %v, want *LayoutError", err)
	}
	if m.State() != StateRecording {
		t.Errorf("State = %s, want Recording", m.State())
	}
	if b.stagedVertices != nil {
		t.Error("vertices staged for an unsupported layout")
	}

	// the vertices were not added, so the recording cannot end
	if err := m.SetIndexCount(0); err != nil {
		t.Fatalf("SetIndexCount: %v", err)
	}
	if err := m.AddIndices(nil); err != nil {
		t.Fatalf("AddIndices: %v", err)
	}
	assertLifecycle(t, m.End(), StateRecording)
}

func TestWGPUBackend_Reset(t *testing.T) {
	b := NewWGPUBackend(nil, nil, unusedPass(t))
	if err := b.UploadVertices(vertex_layout.PositionTexCoord4D(), make([]byte, 28)); err != nil {
		t.Fatalf("UploadVertices: %v", err)
	}
	if err := b.UploadIndices([]uint32{0, 0, 0}); err != nil {
		t.Fatalf("UploadIndices: %v", err)
	}

	b.Reset()
	if b.stagedVertices != nil || b.stagedIndices != nil {
		t.Error("Reset kept staged data")
	}
	if bl := b.VertexBufferLayout(); bl.ArrayStride != 0 || len(bl.Attributes) != 0 {
		t.Errorf("Reset kept buffer layout %+v", bl)
	}

	// releasing an unfinalized backend has nothing to free
	b.Release()
	if b.vertexBuffer != nil || b.indexBuffer != nil {
		t.Error("buffers present after Release")
	}
}

func TestWGPUBackend_DrawWithoutIndices(t *testing.T) {
	b := NewWGPUBackend(nil, nil, unusedPass(t))
	if err := b.Draw(0, TopologyTetrahedra); err != nil {
		t.Errorf("Draw(0) = %v, want nil", err)
	}
	// no buffers exist before Finalize
	if err := b.Draw(4, TopologyTetrahedra); err != nil {
		t.Errorf("Draw before Finalize = %v, want nil", err)
	}
}
