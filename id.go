package reactor

import (
	"fmt"
	"sync/atomic"
)

// reactorCounter stamps every Reactor so identifiers issued by one
// are never mistaken for cells of another.
var reactorCounter uint64

// nextStamp returns the next reactor stamp. Stamps start at 1 and are never reused,
// which keeps zero-value identifiers invalid.
func nextStamp() uint64 {
	return atomic.AddUint64(&reactorCounter, 1)
}

type cellRef struct {
	stamp uint64
	index int
}

// CellID identifies either an input cell or a compute cell.
// It is implemented by InputCellID and ComputeCellID only.
type CellID interface {
	fmt.Stringer

	ref() cellRef
}

// InputCellID is a unique identifier for an input cell.
type InputCellID struct {
	input cellRef
}

func (id InputCellID) ref() cellRef { return id.input }

func (id InputCellID) String() string { return fmt.Sprintf("input#%d", id.input.index) }

// ComputeCellID is a unique identifier for a compute cell.
// It has a different shape from InputCellID so neither converts to the other.
type ComputeCellID struct {
	compute cellRef
}

func (id ComputeCellID) ref() cellRef { return id.compute }

func (id ComputeCellID) String() string { return fmt.Sprintf("compute#%d", id.compute.index) }

// CallbackID identifies a callback attached to a compute cell.
// It is only meaningful together with the cell it was issued for.
type CallbackID struct {
	cell cellRef
	n    uint64
}

func (id CallbackID) String() string { return fmt.Sprintf("callback#%d", id.n) }
