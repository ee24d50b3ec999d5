package loader

import (
	"github.com/Carmen-Shannon/g4d-go/engine/model"
	"go.uber.org/zap"
)

// LoaderBuilderOption is a functional option for configuring a Loader via NewLoader.
type LoaderBuilderOption func(*loader)

// WithModel is an option builder that pre-populates the model cache with a model.
//
// Parameters:
//   - key: the cache key for the model
//   - model: the model to cache
//
// Returns:
//   - LoaderBuilderOption: a function that applies the model option to a loader
func WithModel(key string, model model.Model) LoaderBuilderOption {
	return func(l *loader) {
		l.modelCache[key] = model
	}
}

// WithMaxElements is an option builder that limits the vertex and index counts a model file
// may declare. Files exceeding it fail with ErrTooLarge before anything is allocated.
//
// Parameters:
//   - n: the largest accepted count
//
// Returns:
//   - LoaderBuilderOption: a function that applies the limit option to a loader
func WithMaxElements(n uint32) LoaderBuilderOption {
	return func(l *loader) {
		l.maxElements = n
	}
}

// WithLogger is an option builder that sets the logger used for load and save events.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - LoaderBuilderOption: a function that applies the logger option to a loader
func WithLogger(logger *zap.Logger) LoaderBuilderOption {
	return func(l *loader) {
		if logger == nil {
			logger = zap.NewNop()
		}
		l.logger = logger.Named("loader")
	}
}
