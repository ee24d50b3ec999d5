package scene

import (
	"github.com/Carmen-Shannon/g4d-go/engine/transform"
	"go.uber.org/zap"
)

// SceneBuilderOption is a functional option for configuring a Scene.
// Use the With* functions to create options.
type SceneBuilderOption func(s *scene)

// WithView sets the initial view transform.
//
// Parameters:
//   - view: the view transform
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithView(view transform.Transform) SceneBuilderOption {
	return func(s *scene) {
		s.view = view
	}
}

// WithProjection sets the initial column-major projection matrix.
//
// Parameters:
//   - projection: the projection matrix
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithProjection(projection [16]float32) SceneBuilderOption {
	return func(s *scene) {
		s.projection = projection
	}
}

// WithObjects adds initial objects to the scene, in draw order.
//
// Parameters:
//   - objects: the objects to add
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithObjects(objects ...Object) SceneBuilderOption {
	return func(s *scene) {
		s.objects = append(s.objects, objects...)
	}
}

// WithComputeWorkers sets the number of worker goroutines used by Uniforms.
// Defaults to runtime.NumCPU()-1.
//
// Parameters:
//   - n: the number of compute workers (minimum 1)
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithComputeWorkers(n int) SceneBuilderOption {
	return func(s *scene) {
		if n < 1 {
			n = 1
		}
		s.computeWorkers = n
	}
}

// WithLogger sets the logger used for draw failures and teardown.
//
// Parameters:
//   - logger: the zap logger
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) SceneBuilderOption {
	return func(s *scene) {
		if logger == nil {
			logger = zap.NewNop()
		}
		s.logger = logger.Named("scene")
	}
}
