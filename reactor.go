// Package reactor implements a reactive cell graph.
//
// A Reactor owns input cells, whose values are set directly, and compute cells,
// whose values are derived from other cells. Setting an input recomputes every
// compute cell downstream of it in dependency order, then calls the callbacks of
// each compute cell whose value changed, once, with the settled value.
//
// A Reactor is not safe for concurrent use; see Locked.
package reactor

import (
	"github.com/AnatoleLucet/reactor/internal"
	"go.uber.org/zap"
)

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

type cell[T comparable] struct {
	value T

	// nil for input cells
	compute func([]T) T

	// declared dependencies, nil for input cells
	deps []CellID

	// nil for input cells
	callbacks *callbackSet[T]
}

// Reactor is a graph of input and compute cells holding values of type T.
type Reactor[T comparable] struct {
	stamp   uint64
	runtime *internal.Runtime

	// indexed like the runtime graph nodes
	cells []*cell[T]

	inputs   int
	computes int

	logger  *zap.Logger
	metrics *metrics
}

// New creates an empty reactor.
func New[T comparable](opts ...Option) *Reactor[T] {
	o := applyOptions(opts)

	r := &Reactor[T]{
		stamp:  nextStamp(),
		cells:  make([]*cell[T], 0),
		logger: o.logger,
	}

	m, err := newMetrics(o.registry)
	if err != nil {
		r.logger.Warn("metrics disabled", zap.Error(err))
	}
	r.metrics = m

	r.runtime = internal.NewRuntime(internal.Hooks{
		Recompute: r.recompute,
		Notify:    r.notify,
		Settled:   r.settled,
	})

	return r
}

// CreateInput creates an input cell with the given initial value.
func (r *Reactor[T]) CreateInput(initial T) InputCellID {
	i := r.runtime.Graph().AddNode(internal.KindInput, nil)
	r.cells = append(r.cells, &cell[T]{value: initial})
	r.inputs++

	id := InputCellID{cellRef{stamp: r.stamp, index: i}}
	r.logger.Debug("input created", zap.Stringer("cell", id))
	r.metrics.cellAdded("input")

	return id
}

// CreateCompute creates a compute cell whose value is fn applied to the values of deps,
// in the same order. fn must not expect more values than there are dependencies.
//
// If a dependency does not exist, no cell is created and a *DependencyError carrying
// that dependency is returned.
func (r *Reactor[T]) CreateCompute(deps []CellID, fn func([]T) T) (ComputeCellID, error) {
	nodes := make([]int, len(deps))
	for k, dep := range deps {
		i, ok := r.resolve(dep)
		if !ok {
			r.logger.Debug("compute rejected", zap.Any("dependency", dep))
			return ComputeCellID{}, &DependencyError{Cell: dep}
		}
		nodes[k] = i
	}

	c := &cell[T]{
		compute:   fn,
		deps:      append([]CellID(nil), deps...),
		callbacks: newCallbackSet[T](),
	}
	c.value = fn(r.values(nodes))

	i := r.runtime.Graph().AddNode(internal.KindCompute, nodes)
	r.cells = append(r.cells, c)
	r.computes++

	id := ComputeCellID{cellRef{stamp: r.stamp, index: i}}
	r.logger.Debug("compute created", zap.Stringer("cell", id), zap.Int("deps", len(deps)))
	r.metrics.cellAdded("compute")

	return id, nil
}

// Value returns the current value of the cell, or false if the cell does not exist.
func (r *Reactor[T]) Value(id CellID) (T, bool) {
	i, ok := r.resolve(id)
	if !ok {
		var zero T
		return zero, false
	}

	return r.cells[i].value, true
}

// SetValue sets the value of an input cell and propagates the change.
// It returns false, without any effect, if the cell does not exist.
//
// Within a Batch, propagation is deferred until the outermost batch returns.
func (r *Reactor[T]) SetValue(id InputCellID, value T) bool {
	i, ok := r.lookup(id.input, internal.KindInput)
	if !ok {
		return false
	}

	c := r.cells[i]
	if c.value == value {
		return true
	}

	c.value = value
	r.runtime.Write(i)

	return true
}

// Batch runs fn and propagates every input change it made in a single pass when it returns.
// Each compute cell's callbacks fire at most once for the whole batch, and only if the
// cell's value after the batch differs from its value before it.
// Compute cells read inside fn still hold their values from before the batch.
// Batches can be nested, only the outermost one propagates.
// If fn panics nothing propagates; the pending changes go out with the next SetValue.
func (r *Reactor[T]) Batch(fn func()) {
	r.runtime.Batch(fn)
}

// Dependencies returns the dependencies of a compute cell as they were declared.
func (r *Reactor[T]) Dependencies(id ComputeCellID) ([]CellID, bool) {
	i, ok := r.lookup(id.compute, internal.KindCompute)
	if !ok {
		return nil, false
	}

	return append([]CellID(nil), r.cells[i].deps...), true
}

// Len returns the number of input and compute cells.
func (r *Reactor[T]) Len() (inputs, computes int) {
	return r.inputs, r.computes
}

func (r *Reactor[T]) resolve(id CellID) (int, bool) {
	switch id := id.(type) {
	case InputCellID:
		return r.lookup(id.input, internal.KindInput)
	case ComputeCellID:
		return r.lookup(id.compute, internal.KindCompute)
	default:
		return 0, false
	}
}

func (r *Reactor[T]) lookup(ref cellRef, kind internal.NodeKind) (int, bool) {
	if ref.stamp != r.stamp {
		return 0, false
	}

	node, ok := r.runtime.Graph().Node(ref.index)
	if !ok || node.Kind() != kind {
		return 0, false
	}

	return ref.index, true
}

func (r *Reactor[T]) values(nodes []int) []T {
	values := make([]T, len(nodes))
	for k, i := range nodes {
		values[k] = r.cells[i].value
	}

	return values
}

func (r *Reactor[T]) recompute(i int) (any, bool) {
	c := r.cells[i]

	value := c.compute(r.values(r.runtime.Graph().Deps(i)))
	if value == c.value {
		return nil, false
	}

	c.value = value
	return value, true
}

func (r *Reactor[T]) notify(i int, value any) {
	fired := r.cells[i].callbacks.fire(as[T](value))
	r.metrics.fired(fired)
}

func (r *Reactor[T]) settled(pass internal.Pass) {
	r.logger.Debug("propagation settled",
		zap.Int("clock", pass.Clock),
		zap.Int("recomputed", pass.Recomputed),
		zap.Int("changed", pass.Changed),
	)
	r.metrics.settled(pass.Recomputed)
}
