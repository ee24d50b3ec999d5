package display_mesh

import (
	"fmt"

	"github.com/Carmen-Shannon/g4d-go/common"
	"github.com/Carmen-Shannon/g4d-go/engine/vertex_layout"
	"github.com/cogentcore/webgpu/wgpu"
)

// PassSource supplies the render pass that WebGPU draws are encoded into.
// It is queried on every Draw, so it may return a different pass each frame.
type PassSource interface {
	// RenderPass returns the active render pass, or nil if no pass is open.
	RenderPass() *wgpu.RenderPassEncoder
}

// PassSourceFunc adapts a function to the PassSource interface.
type PassSourceFunc func() *wgpu.RenderPassEncoder

// RenderPass calls f.
func (f PassSourceFunc) RenderPass() *wgpu.RenderPassEncoder {
	return f()
}

// WGPUBackend realizes a DisplayMesh as a WebGPU vertex buffer and uint32 index buffer.
// Data handed over while recording is staged in host memory; Finalize creates the buffers and
// writes them through the queue.
type WGPUBackend struct {
	device *wgpu.Device
	queue  *wgpu.Queue
	pass   PassSource

	bufferLayout wgpu.VertexBufferLayout

	stagedVertices []byte
	stagedIndices  []uint32

	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
}

var _ MeshBackend = &WGPUBackend{}

// NewWGPUBackend creates a WebGPU mesh backend.
//
// Parameters:
//   - device: the device that owns the created buffers
//   - queue: the queue used to write buffer contents
//   - pass: the source of the render pass that draws are encoded into
//
// Returns:
//   - *WGPUBackend: the backend
func NewWGPUBackend(device *wgpu.Device, queue *wgpu.Queue, pass PassSource) *WGPUBackend {
	return &WGPUBackend{device: device, queue: queue, pass: pass}
}

// VertexBufferLayout returns the WebGPU buffer layout of the recorded vertices, for use when
// building the render pipeline that draws this mesh.
func (b *WGPUBackend) VertexBufferLayout() wgpu.VertexBufferLayout {
	return b.bufferLayout
}

func (b *WGPUBackend) Reset() {
	b.releaseBuffers()
	b.bufferLayout = wgpu.VertexBufferLayout{}
	b.stagedVertices, b.stagedIndices = nil, nil
}

func (b *WGPUBackend) UploadVertices(layout vertex_layout.VertexLayout, data []byte) error {
	bl, err := vertex_layout.WGPUBufferLayout(layout)
	if err != nil {
		return fmt.Errorf("failed to map vertex layout to WebGPU: %w", err)
	}
	b.bufferLayout = bl
	b.stagedVertices = append([]byte(nil), data...)
	return nil
}

func (b *WGPUBackend) UploadIndices(indices []uint32) error {
	b.stagedIndices = append([]uint32(nil), indices...)
	return nil
}

func (b *WGPUBackend) Finalize(label string) error {
	if len(b.stagedVertices) > 0 {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            label + " Vertex Buffer",
			Size:             uint64(len(b.stagedVertices)),
			Usage:            wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			return fmt.Errorf("failed to create vertex buffer: %w", err)
		}
		b.queue.WriteBuffer(buf, 0, b.stagedVertices)
		b.vertexBuffer = buf
	}

	if len(b.stagedIndices) > 0 {
		buf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label:            label + " Index Buffer",
			Size:             uint64(len(b.stagedIndices) * 4),
			Usage:            wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
			MappedAtCreation: false,
		})
		if err != nil {
			b.releaseBuffers()
			return fmt.Errorf("failed to create index buffer: %w", err)
		}
		b.queue.WriteBuffer(buf, 0, common.SliceToBytes(b.stagedIndices))
		b.indexBuffer = buf
	}

	b.stagedVertices, b.stagedIndices = nil, nil
	return nil
}

func (b *WGPUBackend) Draw(indexCount uint32, _ Topology) error {
	if indexCount == 0 || b.vertexBuffer == nil || b.indexBuffer == nil {
		return nil
	}
	pass := b.pass.RenderPass()
	if pass == nil {
		return ErrNoRenderPass
	}
	pass.SetVertexBuffer(0, b.vertexBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(b.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(indexCount, 1, 0, 0, 0)
	return nil
}

func (b *WGPUBackend) Release() {
	b.Reset()
}

func (b *WGPUBackend) releaseBuffers() {
	if b.vertexBuffer != nil {
		b.vertexBuffer.Release()
		b.vertexBuffer = nil
	}
	if b.indexBuffer != nil {
		b.indexBuffer.Release()
		b.indexBuffer = nil
	}
}
