package vertex_layout

import (
	"errors"
	"fmt"
)

// ErrLayout is matched by every *LayoutError.
var ErrLayout = errors.New("invalid vertex layout")

// LayoutError reports a vertex layout declaration that cannot be honored.
type LayoutError struct {
	// Semantic is the attribute being declared when the error occurred, if any.
	Semantic *Semantic
	// Reason describes the violation.
	Reason string
}

func (e *LayoutError) Error() string {
	if e.Semantic != nil {
		return fmt.Sprintf("%v: %s attribute: %s", ErrLayout, *e.Semantic, e.Reason)
	}
	return fmt.Sprintf("%v: %s", ErrLayout, e.Reason)
}

func (e *LayoutError) Unwrap() error {
	return ErrLayout
}

func layoutErrorf(sem *Semantic, format string, args ...any) *LayoutError {
	return &LayoutError{Semantic: sem, Reason: fmt.Sprintf(format, args...)}
}
