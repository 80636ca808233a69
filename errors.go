package gridastar

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds matches any *OutOfBoundsError.
	ErrOutOfBounds       = errors.New("position out of bounds")
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	ErrNilGrid           = errors.New("grid is nil")
	ErrSameEndpoints     = errors.New("start and end are the same cell")
)

// OutOfBoundsError reports a position outside a grid of Rows × Rows cells.
type OutOfBoundsError struct {
	Pos  Position
	Rows int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("%s: %s not in %dx%d grid", ErrOutOfBounds, e.Pos, e.Rows, e.Rows)
}

// Is implements error equality checking for errors.Is.
func (e *OutOfBoundsError) Is(target error) bool {
	return target == ErrOutOfBounds
}
