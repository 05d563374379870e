package reactor

import (
	"errors"
	"fmt"
)

// ErrNonexistentCell is returned when an identifier does not denote a cell of the reactor.
var ErrNonexistentCell = errors.New("reactor: nonexistent cell")

// ErrNonexistentCallback is returned by RemoveCallback when the callback was never
// attached to the given cell or has already been removed.
var ErrNonexistentCallback = errors.New("reactor: nonexistent callback")

// DependencyError is returned by CreateCompute when a dependency does not exist.
// When several dependencies are missing, which one is reported is unspecified.
type DependencyError struct {
	Cell CellID
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("reactor: nonexistent dependency %v", e.Cell)
}

// Unwrap makes errors.Is(err, ErrNonexistentCell) hold.
func (e *DependencyError) Unwrap() error {
	return ErrNonexistentCell
}
