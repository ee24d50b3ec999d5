package display_mesh

import (
	"errors"
	"fmt"
)

var (
	// ErrLifecycle is matched by every *LifecycleError.
	ErrLifecycle = errors.New("mesh lifecycle violation")

	// ErrSizeMismatch is matched by every *SizeMismatchError.
	ErrSizeMismatch = errors.New("mesh data size mismatch")

	// ErrNoRenderPass is returned by the WebGPU backend when Draw is called outside a render pass.
	ErrNoRenderPass = errors.New("no active render pass")
)

// LifecycleError reports a DisplayMesh method called in a state that does not allow it.
// The mesh is left exactly as it was.
type LifecycleError struct {
	// Op is the rejected method.
	Op string
	// State is the mesh state at the time of the call.
	State State
	// Reason optionally narrows down the missing precondition.
	Reason string
}

func (e *LifecycleError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s in state %s: %s: %v", e.Op, e.State, e.Reason, ErrLifecycle)
	}
	return fmt.Sprintf("%s in state %s: %v", e.Op, e.State, ErrLifecycle)
}

func (e *LifecycleError) Unwrap() error {
	return ErrLifecycle
}

// SizeMismatchError reports vertex or index data whose length disagrees with the declared counts.
// Nothing is uploaded when it is returned.
type SizeMismatchError struct {
	// Op is the rejected method.
	Op string
	// Want is the expected length (bytes for vertices, elements for indices).
	Want int
	// Got is the supplied length.
	Got int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("%s: want %d, got %d: %v", e.Op, e.Want, e.Got, ErrSizeMismatch)
}

func (e *SizeMismatchError) Unwrap() error {
	return ErrSizeMismatch
}
