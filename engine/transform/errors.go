package transform

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateBasis is matched by every *DegenerateBasisError.
	ErrDegenerateBasis = errors.New("degenerate basis")

	// ErrSingular is returned by Inverse when the linear map has no inverse.
	ErrSingular = errors.New("singular linear map")
)

// DegenerateBasisError reports that LookAt could not build an orthonormal basis because its inputs
// were linearly dependent.
type DegenerateBasisError struct {
	// Axis names the basis vector that collapsed: "forward", "up1", "up2" or "over".
	Axis string
	// Norm is the length of the vector after orthogonalization.
	Norm float64
}

func (e *DegenerateBasisError) Error() string {
	return fmt.Sprintf("look-at %s axis has near-zero norm %g after orthogonalization: %v", e.Axis, e.Norm, ErrDegenerateBasis)
}

func (e *DegenerateBasisError) Unwrap() error {
	return ErrDegenerateBasis
}
