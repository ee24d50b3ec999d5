package loader

import (
	"io"

	"github.com/Carmen-Shannon/g4d-go/engine/model"
)

// loaderBackend defines the generic interface for reading and writing model files.
// Concrete implementations (e.g., modelFileBackend) handle format-specific details.
type loaderBackend interface {
	// Load performs a full model import from the given file path.
	//
	// Parameters:
	//   - path: the file path to load
	//
	// Returns:
	//   - *model.ImportedModel: the imported model data
	//   - error: error if loading fails
	Load(path string) (*model.ImportedModel, error)

	// LoadReader imports a model from a reader stream.
	//
	// Parameters:
	//   - r: the reader providing model data
	//
	// Returns:
	//   - *model.ImportedModel: the imported model data
	//   - error: error if loading fails
	LoadReader(r io.Reader) (*model.ImportedModel, error)

	// Write encodes a model to a writer stream.
	//
	// Parameters:
	//   - w: the destination
	//   - m: the model to encode
	//
	// Returns:
	//   - error: error if writing fails
	Write(w io.Writer, m model.Model) error
}
