package reactor

import (
	"slices"

	"github.com/AnatoleLucet/reactor/internal"
	"go.uber.org/zap"
)

type callbackSet[T any] struct {
	next  uint64
	order []uint64
	fns   map[uint64]func(T)
}

func newCallbackSet[T any]() *callbackSet[T] {
	return &callbackSet[T]{
		order: make([]uint64, 0),
		fns:   make(map[uint64]func(T)),
	}
}

func (s *callbackSet[T]) add(fn func(T)) uint64 {
	s.next++
	s.order = append(s.order, s.next)
	s.fns[s.next] = fn

	return s.next
}

func (s *callbackSet[T]) remove(n uint64) bool {
	if _, ok := s.fns[n]; !ok {
		return false
	}

	delete(s.fns, n)
	s.order = slices.DeleteFunc(s.order, func(m uint64) bool { return m == n })

	return true
}

// fire calls every callback in the order it was added and returns how many ran.
// A callback removed by an earlier one in the same round does not run.
func (s *callbackSet[T]) fire(value T) int {
	// clonning to avoid mutation during iteration
	order := slices.Clone(s.order)

	fired := 0
	for _, n := range order {
		fn, ok := s.fns[n]
		if !ok {
			continue
		}

		fn(value)
		fired++
	}

	return fired
}

// AddCallback attaches a callback to a compute cell. After each SetValue that changes
// the cell's value, the callback is called once with the new value.
// It returns false if the cell does not exist.
func (r *Reactor[T]) AddCallback(id ComputeCellID, callback func(T)) (CallbackID, bool) {
	i, ok := r.lookup(id.compute, internal.KindCompute)
	if !ok {
		return CallbackID{}, false
	}

	n := r.cells[i].callbacks.add(callback)
	cb := CallbackID{cell: id.compute, n: n}
	r.logger.Debug("callback added", zap.Stringer("cell", id), zap.Stringer("callback", cb))

	return cb, true
}

// RemoveCallback detaches a callback so it is never called again.
// It returns ErrNonexistentCell if the cell does not exist and ErrNonexistentCallback
// if the callback is not attached to that cell.
func (r *Reactor[T]) RemoveCallback(id ComputeCellID, callback CallbackID) error {
	i, ok := r.lookup(id.compute, internal.KindCompute)
	if !ok {
		return ErrNonexistentCell
	}

	if callback.cell != id.compute || !r.cells[i].callbacks.remove(callback.n) {
		return ErrNonexistentCallback
	}

	r.logger.Debug("callback removed", zap.Stringer("cell", id), zap.Stringer("callback", callback))

	return nil
}
