package loader

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/g4d-go/engine/model"
)

// ModelFileExt is the file extension of the binary 4-D model format.
const ModelFileExt = ".g4d"

// DefaultMaxElements caps the vertex and index counts a model file may declare.
const DefaultMaxElements = 1 << 24

// modelFileBackend reads and writes the binary model format:
//
//	uint32 vertex_count
//	vertex_count x { float32[4] position, float32[3] texcoord }
//	uint32 index_count
//	index_count x uint32
//
// All values are little endian and there is no header or padding.
type modelFileBackend struct {
	maxElements uint32
}

var _ loaderBackend = &modelFileBackend{}

// newModelFileBackend creates a binary model file backend.
//
// Parameters:
//   - maxElements: the largest vertex or index count accepted
//
// Returns:
//   - *modelFileBackend: the backend
func newModelFileBackend(maxElements uint32) *modelFileBackend {
	return &modelFileBackend{maxElements: maxElements}
}

func (b *modelFileBackend) Load(path string) (*model.ImportedModel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	imported, err := b.LoadReader(f)
	if err != nil {
		return nil, err
	}
	imported.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return imported, nil
}

func (b *modelFileBackend) LoadReader(r io.Reader) (*model.ImportedModel, error) {
	br := bufio.NewReader(r)

	vertexCount, err := b.readCount(br, "vertex count")
	if err != nil {
		return nil, err
	}
	vertexData := make([]byte, int(vertexCount)*model.GPUVertex4DSize)
	if _, err := io.ReadFull(br, vertexData); err != nil {
		return nil, sectionError("vertices", err)
	}
	vertices := make([]model.GPUVertex4D, vertexCount)
	for i := range vertices {
		v, err := model.UnmarshalGPUVertex4D(vertexData[i*model.GPUVertex4DSize:])
		if err != nil {
			return nil, sectionError("vertices", err)
		}
		vertices[i] = v
	}

	indexCount, err := b.readCount(br, "index count")
	if err != nil {
		return nil, err
	}
	indices := make([]uint32, indexCount)
	if err := binary.Read(br, binary.LittleEndian, indices); err != nil {
		return nil, sectionError("indices", err)
	}

	return &model.ImportedModel{
		Vertices: vertices,
		Indices:  indices,
	}, nil
}

func (b *modelFileBackend) Write(w io.Writer, m model.Model) error {
	bw := bufio.NewWriter(w)

	if err := binary.Write(bw, binary.LittleEndian, uint32(m.VertexCount())); err != nil {
		return fmt.Errorf("failed to write vertex count: %w", err)
	}
	if _, err := bw.Write(m.VertexData()); err != nil {
		return fmt.Errorf("failed to write vertices: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, uint32(m.IndexCount())); err != nil {
		return fmt.Errorf("failed to write index count: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, m.Indices()); err != nil {
		return fmt.Errorf("failed to write indices: %w", err)
	}
	return bw.Flush()
}

// readCount reads one uint32 section count and checks it against the element limit.
func (b *modelFileBackend) readCount(r io.Reader, section string) (uint32, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return 0, sectionError(section, err)
	}
	if n > b.maxElements {
		return 0, &SectionError{Section: section, Err: fmt.Errorf("%w: %d > %d", ErrTooLarge, n, b.maxElements)}
	}
	return n, nil
}

// sectionError maps short reads to ErrTruncated.
func sectionError(section string, err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		err = ErrTruncated
	}
	return &SectionError{Section: section, Err: err}
}

// ReadModel decodes a binary model file from r with the default element limit.
//
// Parameters:
//   - r: the model file contents
//
// Returns:
//   - model.Model: the decoded model, unnamed
//   - error: a *SectionError matching ErrTruncated or ErrTooLarge on malformed input
func ReadModel(r io.Reader) (model.Model, error) {
	imported, err := newModelFileBackend(DefaultMaxElements).LoadReader(r)
	if err != nil {
		return nil, err
	}
	return model.FromImported(imported), nil
}

// WriteModel encodes m in the binary model file format.
//
// Parameters:
//   - w: the destination
//   - m: the model to encode
//
// Returns:
//   - error: error if writing fails
func WriteModel(w io.Writer, m model.Model) error {
	return newModelFileBackend(DefaultMaxElements).Write(w, m)
}

// LoadModelFile reads a binary model file from disk, naming the model after the file.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - model.Model: the decoded model
//   - error: error if the file cannot be opened or decoded
func LoadModelFile(path string) (model.Model, error) {
	imported, err := newModelFileBackend(DefaultMaxElements).Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return model.FromImported(imported), nil
}

// ValidateIndices checks that every index of m addresses an existing vertex.
//
// Parameters:
//   - m: the model to check
//
// Returns:
//   - error: an error matching ErrIndexRange for the first offending index
func ValidateIndices(m model.Model) error {
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices() {
		if idx >= n {
			return fmt.Errorf("index %d = %d, vertex count %d: %w", i, idx, n, ErrIndexRange)
		}
	}
	return nil
}
