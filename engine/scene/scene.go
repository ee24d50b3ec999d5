// Package scene composes a 4-D view transform with per-object model transforms and draws the
// objects' meshes with the resulting model-view uniforms.
package scene

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/g4d-go/common"
	"github.com/Carmen-Shannon/g4d-go/engine/display_mesh"
	"github.com/Carmen-Shannon/g4d-go/engine/transform"
	"go.uber.org/zap"
)

// Object is one drawable entry of a Scene.
type Object struct {
	// Name identifies the object in logs and errors.
	Name string
	// Transform places the object's model space in world space.
	Transform transform.Transform
	// Mesh is drawn with the object's uniforms. A nil Mesh is skipped by Draw.
	Mesh display_mesh.DisplayMesh
}

// BindFunc hands one object's uniforms to the shading stage before its mesh is drawn.
type BindFunc func(index int, uniform GPUModelViewUniform) error

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name       string
	view       transform.Transform
	projection [16]float32
	objects    []Object
	logger     *zap.Logger

	// computePool prepares uniforms in parallel. Workers persist between frames.
	computePool    worker.DynamicWorkerPool
	computeWorkers int
}

// Scene manages a view transform, a projection and an ordered list of Objects.
// Uniform preparation fans out over a worker pool; drawing runs on the calling goroutine, since
// meshes must not be used concurrently. Thread-safe for concurrent access to the object list.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// View returns the view transform.
	View() transform.Transform

	// SetView replaces the view transform.
	//
	// Parameters:
	//   - view: the new view transform
	SetView(view transform.Transform)

	// Projection returns the column-major projection matrix.
	Projection() [16]float32

	// SetProjection replaces the projection matrix.
	//
	// Parameters:
	//   - projection: the column-major projection matrix
	SetProjection(projection [16]float32)

	// Add appends an object to the scene.
	//
	// Parameters:
	//   - obj: the object to add
	//
	// Returns:
	//   - int: the object's index, its position in draw order
	Add(obj Object) int

	// Object returns the object at index i.
	//
	// Parameters:
	//   - i: the object index
	//
	// Returns:
	//   - Object: the object
	//   - bool: false if i is out of range
	Object(i int) (Object, bool)

	// SetTransform replaces the model transform of the object at index i.
	//
	// Parameters:
	//   - i: the object index
	//   - t: the new model transform
	//
	// Returns:
	//   - error: error if i is out of range
	SetTransform(i int, t transform.Transform) error

	// Len returns the number of objects.
	Len() int

	// Uniforms computes the model-view uniforms of every object, in object order.
	//
	// Returns:
	//   - []GPUModelViewUniform: one uniform block per object
	Uniforms() []GPUModelViewUniform

	// Draw computes the uniforms, then for each object in order calls bind with its uniforms and
	// draws its mesh. The first bind or draw error stops the pass.
	//
	// Parameters:
	//   - bind: receives each object's uniforms before its draw; may be nil
	//
	// Returns:
	//   - error: the first bind or draw error, naming the object
	Draw(bind BindFunc) error

	// Destroy destroys every object's mesh and clears the scene.
	//
	// Returns:
	//   - error: the joined mesh destroy errors
	Destroy() error
}

var _ Scene = &scene{}

// NewScene creates a new Scene with an identity view and DefaultProjection.
//
// Parameters:
//   - name: the name of the scene
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		view:           transform.Identity(),
		logger:         zap.NewNop(),
		projection:     DefaultProjection(),
		computeWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Queue size of 256 accommodates typical object counts with headroom.
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) View() transform.Transform {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view
}

func (s *scene) SetView(view transform.Transform) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.view = view
}

func (s *scene) Projection() [16]float32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.projection
}

func (s *scene) SetProjection(projection [16]float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projection = projection
}

func (s *scene) Add(obj Object) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = append(s.objects, obj)
	return len(s.objects) - 1
}

func (s *scene) Object(i int) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.objects) {
		return Object{}, false
	}
	return s.objects[i], true
}

func (s *scene) SetTransform(i int, t transform.Transform) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.objects) {
		return fmt.Errorf("scene %q: object index %d out of range [0, %d)", s.name, i, len(s.objects))
	}
	s.objects[i].Transform = t
	return nil
}

func (s *scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *scene) Uniforms() []GPUModelViewUniform {
	s.mu.RLock()
	view, projection := s.view, s.projection
	models := make([]transform.Transform, len(s.objects))
	for i, obj := range s.objects {
		models[i] = obj.Transform
	}
	s.mu.RUnlock()

	out := make([]GPUModelViewUniform, len(models))
	if len(models) == 0 {
		return out
	}

	// One contiguous chunk per worker. A WaitGroup is the per-call barrier since the pool
	// itself only drains on idle timeout.
	var wg sync.WaitGroup
	for id, r := range common.ChunkRanges(len(models), s.computeWorkers) {
		lo, hi := r[0], r[1]
		wg.Add(1)
		s.computePool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				for i := lo; i < hi; i++ {
					out[i] = NewGPUModelViewUniform(view.Mul(models[i]), projection)
				}
				return nil, nil
			},
		})
	}
	wg.Wait()
	return out
}

func (s *scene) Draw(bind BindFunc) error {
	uniforms := s.Uniforms()

	s.mu.RLock()
	objects := make([]Object, len(s.objects))
	copy(objects, s.objects)
	s.mu.RUnlock()

	// Objects added between the two snapshots are drawn next frame.
	for i := range min(len(objects), len(uniforms)) {
		obj := objects[i]
		if obj.Mesh == nil {
			continue
		}
		if bind != nil {
			if err := bind(i, uniforms[i]); err != nil {
				return fmt.Errorf("failed to bind uniforms for object %q: %w", obj.Name, err)
			}
		}
		if err := obj.Mesh.Draw(); err != nil {
			s.logger.Error("object draw failed", zap.String("object", obj.Name), zap.Error(err))
			return fmt.Errorf("failed to draw object %q: %w", obj.Name, err)
		}
	}
	return nil
}

func (s *scene) Destroy() error {
	s.mu.Lock()
	objects := s.objects
	s.objects = nil
	s.mu.Unlock()

	var errs []error
	for _, obj := range objects {
		if obj.Mesh == nil {
			continue
		}
		if err := obj.Mesh.Destroy(); err != nil {
			errs = append(errs, fmt.Errorf("object %q: %w", obj.Name, err))
		}
	}
	s.logger.Debug("scene destroyed", zap.String("scene", s.name), zap.Int("objects", len(objects)))
	return errors.Join(errs...)
}
