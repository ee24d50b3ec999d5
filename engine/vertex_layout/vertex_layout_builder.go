package vertex_layout

// Builder declares a VertexLayout one attribute at a time.
// SetSize must be called first; Add calls may then be chained. The first failing call is
// remembered: later calls become no-ops and Build returns that error. A Builder is consumed by
// Build and cannot be reused.
type Builder struct {
	stride   int
	sized    bool
	attrs    []Attribute
	err      error
	consumed bool
}

// NewBuilder creates an empty Builder.
//
// Returns:
//   - *Builder: a builder awaiting SetSize
func NewBuilder() *Builder {
	return &Builder{}
}

// SetSize fixes the byte stride of one vertex record. It must be called exactly once, before any Add.
//
// Parameters:
//   - n: the stride in bytes (must be > 0)
//
// Returns:
//   - *Builder: the builder, for chaining
func (b *Builder) SetSize(n int) *Builder {
	if b.err != nil {
		return b
	}
	switch {
	case b.consumed:
		b.err = layoutErrorf(nil, "builder already consumed by Build")
	case b.sized:
		b.err = layoutErrorf(nil, "stride already set to %d", b.stride)
	case n <= 0:
		b.err = layoutErrorf(nil, "stride must be positive, got %d", n)
	default:
		b.stride = n
		b.sized = true
	}
	return b
}

// Add appends an attribute descriptor.
// It fails when the stride has not been set, when the attribute's byte range
// [Offset, Offset+Count*size) is not inside [0, stride), when its component count or type is
// invalid, or when another attribute already claims the same semantic.
//
// Parameters:
//   - attr: the attribute to append
//
// Returns:
//   - *Builder: the builder, for chaining
func (b *Builder) Add(attr Attribute) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.check(attr); err != nil {
		b.err = err
		return b
	}
	b.attrs = append(b.attrs, attr)
	return b
}

// Err returns the first error recorded by SetSize or Add, if any.
func (b *Builder) Err() error {
	return b.err
}

// Build consumes the builder and returns the immutable layout.
//
// Returns:
//   - VertexLayout: the finished layout, safe to share between meshes
//   - error: the first *LayoutError recorded while building
func (b *Builder) Build() (VertexLayout, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.consumed {
		return nil, layoutErrorf(nil, "builder already consumed by Build")
	}
	if !b.sized {
		return nil, layoutErrorf(nil, "SetSize must be called before Build")
	}
	b.consumed = true

	attrs := make([]Attribute, len(b.attrs))
	copy(attrs, b.attrs)
	return newVertexLayout(b.stride, attrs), nil
}

func (b *Builder) check(attr Attribute) error {
	sem := attr.Semantic
	if b.consumed {
		return layoutErrorf(&sem, "builder already consumed by Build")
	}
	if !b.sized {
		return layoutErrorf(&sem, "SetSize must be called before Add")
	}
	if _, ok := scalarTypes[attr.Type]; !ok {
		return layoutErrorf(&sem, "unknown component type %v", attr.Type)
	}
	if attr.Count < 1 || attr.Count > 4 {
		return layoutErrorf(&sem, "component count %d outside 1..4", attr.Count)
	}
	// compared without adding so a huge offset cannot wrap past the check
	if attr.Offset < 0 || attr.Offset > b.stride-attr.ByteSize() {
		return layoutErrorf(&sem, "attribute of %d bytes at offset %d exceeds stride %d", attr.ByteSize(), attr.Offset, b.stride)
	}
	if attr.AsInteger && !attr.Type.IsInteger() {
		return layoutErrorf(&sem, "%v components cannot be read as integers", attr.Type)
	}
	if attr.AsInteger && attr.Normalized {
		return layoutErrorf(&sem, "normalized components cannot be read as integers")
	}
	for _, existing := range b.attrs {
		if existing.Semantic == attr.Semantic {
			return layoutErrorf(&sem, "semantic already declared at offset %d", existing.Offset)
		}
	}
	return nil
}
