package internal

import (
	"sync"
	"sync/atomic"

	"github.com/petermattis/goid"
)

// ReentrantMutex is a mutex that the goroutine holding it may lock again.
// It lets code running under the lock, such as a change callback,
// call back into the structure the lock guards.
type ReentrantMutex struct {
	mu sync.Mutex

	// goroutine id of the holder, 0 when unlocked
	owner atomic.Int64

	// only touched by the holder
	depth int
}

func (m *ReentrantMutex) Lock() {
	gid := getGID()

	if m.owner.Load() == gid {
		m.depth++
		return
	}

	m.mu.Lock()
	m.owner.Store(gid)
	m.depth = 1
}

func (m *ReentrantMutex) Unlock() {
	if m.owner.Load() != getGID() {
		panic("internal: unlock of ReentrantMutex not held by this goroutine")
	}

	m.depth--
	if m.depth == 0 {
		m.owner.Store(0)
		m.mu.Unlock()
	}
}

// heldByCurrent reports whether the calling goroutine holds the lock.
func (m *ReentrantMutex) heldByCurrent() bool {
	return m.owner.Load() == getGID()
}

func getGID() int64 {
	return goid.Get()
}
