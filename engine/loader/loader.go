package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/g4d-go/engine/model"
	"go.uber.org/zap"
)

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeModelFile selects the binary 4-D model file backend.
	BackendTypeModelFile LoaderBackendType = iota
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	modelCache map[string]model.Model

	backend     loaderBackend
	maxElements uint32
	logger      *zap.Logger
}

// Loader defines the public-facing interface for loading and caching 4-D models.
// It abstracts the file format behind a generic backend and manages a cache of previously
// loaded models. A Loader is safe for concurrent use.
type Loader interface {
	// Load imports a model file and caches the result.
	// If the model is already cached (by file path), the cached version is returned.
	// The backend is selected based on the file extension.
	//
	// Parameters:
	//   - path: the file path to the model file
	//
	// Returns:
	//   - model.Model: the loaded and cached model
	//   - error: error if loading fails
	Load(path string) (model.Model, error)

	// LoadReader imports a model from a reader stream and caches it by the given name.
	//
	// Parameters:
	//   - name: the cache key and name of the loaded model
	//   - r: the reader providing model data
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader) (model.Model, error)

	// Save writes a model to path in the format selected by its extension and caches it there.
	//
	// Parameters:
	//   - path: the destination file path
	//   - m: the model to write
	//
	// Returns:
	//   - error: error if the format is unsupported or writing fails
	Save(path string, m model.Model) error

	// Get retrieves a cached model by name. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Models returns the full model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new Loader instance with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeModelFile)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new instance of Loader configured with the provided backend and options
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		mu:          sync.RWMutex{},
		modelCache:  make(map[string]model.Model),
		maxElements: DefaultMaxElements,
		logger:      zap.NewNop(),
	}

	for _, option := range options {
		option(l)
	}

	switch backendType {
	case BackendTypeModelFile:
		l.backend = newModelFileBackend(l.maxElements)
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[path]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	imported, err := backend.Load(path)
	if err != nil {
		l.logger.Warn("model load failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	return l.store(path, imported), nil
}

func (l *loader) LoadReader(name string, r io.Reader) (model.Model, error) {
	l.mu.RLock()
	if cached, ok := l.modelCache[name]; ok {
		l.mu.RUnlock()
		return cached, nil
	}
	l.mu.RUnlock()

	imported, err := l.backend.LoadReader(r)
	if err != nil {
		l.logger.Warn("model load failed", zap.String("name", name), zap.Error(err))
		return nil, fmt.Errorf("failed to load from reader %q: %w", name, err)
	}
	imported.Name = name

	return l.store(name, imported), nil
}

func (l *loader) Save(path string, m model.Model) error {
	backend, err := l.resolveBackend(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := backend.Write(f, m); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}

	l.mu.Lock()
	l.modelCache[path] = m
	l.mu.Unlock()

	l.logger.Info("model saved",
		zap.String("path", path),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("indices", m.IndexCount()))
	return nil
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make(map[string]model.Model, len(l.modelCache))
	for k, v := range l.modelCache {
		result[k] = v
	}
	return result
}

// resolveBackend selects an appropriate loader backend based on the file extension.
// Currently only the binary model format is supported.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ModelFileExt, ".bin":
		return l.backend, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// store wraps imported data in a Model and caches it under key. A model cached concurrently
// under the same key wins over the new one.
func (l *loader) store(key string, imported *model.ImportedModel) model.Model {
	m := model.FromImported(imported)

	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.modelCache[key]; ok {
		return cached
	}
	l.modelCache[key] = m

	l.logger.Info("model loaded",
		zap.String("key", key),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("indices", m.IndexCount()),
		zap.Float32("radius", m.BoundingRadius()))
	return m
}
