package vertex_layout

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// formatKey selects a WebGPU vertex format from the declared component type and read mode.
type formatKey struct {
	typ        ScalarType
	count      int
	normalized bool
	asInteger  bool
}

// wgpuVertexFormatMap maps attribute declarations to their WebGPU vertex format.
// WebGPU has no three-component 8/16-bit formats and no un-normalized integer-to-float conversion,
// so those declarations have no entry.
var wgpuVertexFormatMap = map[formatKey]wgpu.VertexFormat{
	{Float32, 1, false, false}: wgpu.VertexFormatFloat32,
	{Float32, 2, false, false}: wgpu.VertexFormatFloat32x2,
	{Float32, 3, false, false}: wgpu.VertexFormatFloat32x3,
	{Float32, 4, false, false}: wgpu.VertexFormatFloat32x4,
	{Float16, 2, false, false}: wgpu.VertexFormatFloat16x2,
	{Float16, 4, false, false}: wgpu.VertexFormatFloat16x4,

	{Uint8, 2, false, true}: wgpu.VertexFormatUint8x2,
	{Uint8, 4, false, true}: wgpu.VertexFormatUint8x4,
	{Sint8, 2, false, true}: wgpu.VertexFormatSint8x2,
	{Sint8, 4, false, true}: wgpu.VertexFormatSint8x4,
	{Uint8, 2, true, false}: wgpu.VertexFormatUnorm8x2,
	{Uint8, 4, true, false}: wgpu.VertexFormatUnorm8x4,
	{Sint8, 2, true, false}: wgpu.VertexFormatSnorm8x2,
	{Sint8, 4, true, false}: wgpu.VertexFormatSnorm8x4,

	{Uint16, 2, false, true}: wgpu.VertexFormatUint16x2,
	{Uint16, 4, false, true}: wgpu.VertexFormatUint16x4,
	{Sint16, 2, false, true}: wgpu.VertexFormatSint16x2,
	{Sint16, 4, false, true}: wgpu.VertexFormatSint16x4,
	{Uint16, 2, true, false}: wgpu.VertexFormatUnorm16x2,
	{Uint16, 4, true, false}: wgpu.VertexFormatUnorm16x4,
	{Sint16, 2, true, false}: wgpu.VertexFormatSnorm16x2,
	{Sint16, 4, true, false}: wgpu.VertexFormatSnorm16x4,

	{Uint32, 1, false, true}: wgpu.VertexFormatUint32,
	{Uint32, 2, false, true}: wgpu.VertexFormatUint32x2,
	{Uint32, 3, false, true}: wgpu.VertexFormatUint32x3,
	{Uint32, 4, false, true}: wgpu.VertexFormatUint32x4,
	{Sint32, 1, false, true}: wgpu.VertexFormatSint32,
	{Sint32, 2, false, true}: wgpu.VertexFormatSint32x2,
	{Sint32, 3, false, true}: wgpu.VertexFormatSint32x3,
	{Sint32, 4, false, true}: wgpu.VertexFormatSint32x4,
}

// WGPUVertexFormat returns the WebGPU vertex format for an attribute.
//
// Parameters:
//   - attr: the attribute declaration
//
// Returns:
//   - wgpu.VertexFormat: the matching format
//   - error: a *LayoutError if WebGPU has no format for the declaration
func WGPUVertexFormat(attr Attribute) (wgpu.VertexFormat, error) {
	key := formatKey{typ: attr.Type, count: attr.Count, normalized: attr.Normalized, asInteger: attr.AsInteger}
	if !attr.Type.IsInteger() {
		// normalization is meaningless for float components
		key.normalized = false
	}
	format, ok := wgpuVertexFormatMap[key]
	if !ok {
		sem := attr.Semantic
		return 0, layoutErrorf(&sem, "no WebGPU vertex format for %dx%v (normalized=%t, asInteger=%t)",
			attr.Count, attr.Type, attr.Normalized, attr.AsInteger)
	}
	return format, nil
}

// WGPUBufferLayout builds the WebGPU vertex buffer layout for a VertexLayout.
// Each attribute is bound to the shader location equal to its declaration index.
//
// Parameters:
//   - layout: the layout to translate
//
// Returns:
//   - wgpu.VertexBufferLayout: the per-vertex buffer layout
//   - error: a *LayoutError if an attribute has no WebGPU format
func WGPUBufferLayout(layout VertexLayout) (wgpu.VertexBufferLayout, error) {
	attrs := layout.Attributes()
	out := make([]wgpu.VertexAttribute, 0, len(attrs))
	for i, a := range attrs {
		format, err := WGPUVertexFormat(a)
		if err != nil {
			return wgpu.VertexBufferLayout{}, err
		}
		out = append(out, wgpu.VertexAttribute{
			Format:         format,
			Offset:         uint64(a.Offset),
			ShaderLocation: uint32(i),
		})
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(layout.Stride()),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  out,
	}, nil
}
