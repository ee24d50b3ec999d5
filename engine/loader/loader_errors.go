package loader

import (
	"errors"
	"fmt"
)

var (
	// ErrTruncated is returned when a model file ends before a declared section is complete.
	ErrTruncated = errors.New("model file truncated")

	// ErrTooLarge is returned when a declared count exceeds the configured element limit.
	ErrTooLarge = errors.New("model file count exceeds limit")

	// ErrIndexRange is returned by ValidateIndices for an index at or above the vertex count.
	ErrIndexRange = errors.New("index out of vertex range")

	// ErrUnsupportedFormat is returned for a path whose extension has no backend.
	ErrUnsupportedFormat = errors.New("unsupported model format")
)

// SectionError reports which section of a model file failed to decode.
type SectionError struct {
	// Section is "vertex count", "vertices", "index count" or "indices".
	Section string
	// Err is the underlying cause, usually ErrTruncated or ErrTooLarge.
	Err error
}

func (e *SectionError) Error() string {
	return fmt.Sprintf("failed to read %s: %v", e.Section, e.Err)
}

func (e *SectionError) Unwrap() error {
	return e.Err
}
