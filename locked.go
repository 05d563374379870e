package reactor

import "github.com/AnatoleLucet/reactor/internal"

// Locked is a Reactor guarded by a single lock, safe for concurrent use.
//
// The lock is reentrant for the goroutine holding it, so callbacks and
// functions passed to Do or Batch may call back into the same Locked.
// Every other goroutine waits until the outermost call returns.
type Locked[T comparable] struct {
	mu internal.ReentrantMutex
	r  *Reactor[T]
}

// NewLocked creates an empty reactor guarded by a lock.
func NewLocked[T comparable](opts ...Option) *Locked[T] {
	return &Locked[T]{r: New[T](opts...)}
}

// Do runs fn with exclusive access to the underlying reactor.
// The reactor must not be retained after fn returns.
func (l *Locked[T]) Do(fn func(r *Reactor[T])) {
	l.mu.Lock()
	defer l.mu.Unlock()

	fn(l.r)
}

// CreateInput creates an input cell with the given initial value.
func (l *Locked[T]) CreateInput(initial T) InputCellID {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.r.CreateInput(initial)
}

// CreateCompute creates a compute cell, see Reactor.CreateCompute.
func (l *Locked[T]) CreateCompute(deps []CellID, fn func([]T) T) (ComputeCellID, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.r.CreateCompute(deps, fn)
}

// Value returns the current value of the cell, or false if the cell does not exist.
func (l *Locked[T]) Value(id CellID) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.r.Value(id)
}

// SetValue sets the value of an input cell and propagates the change.
func (l *Locked[T]) SetValue(id InputCellID, value T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.r.SetValue(id, value)
}

// Batch propagates every input change made by fn in a single pass, see Reactor.Batch.
func (l *Locked[T]) Batch(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.r.Batch(fn)
}

// AddCallback attaches a callback to a compute cell.
func (l *Locked[T]) AddCallback(id ComputeCellID, callback func(T)) (CallbackID, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.r.AddCallback(id, callback)
}

// RemoveCallback detaches a callback so it is never called again.
func (l *Locked[T]) RemoveCallback(id ComputeCellID, callback CallbackID) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.r.RemoveCallback(id, callback)
}

// Dependencies returns the dependencies of a compute cell as they were declared.
func (l *Locked[T]) Dependencies(id ComputeCellID) ([]CellID, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.r.Dependencies(id)
}

// Len returns the number of input and compute cells.
func (l *Locked[T]) Len() (inputs, computes int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.r.Len()
}
