package internal

import "sync"

// Lock is a reentrant mutex owned by a goroutine.
//
// It is held across a mutation and the notifications it triggers, so
// listeners running on the owning goroutine may mutate any instance again
// while other goroutines wait their turn.
type Lock struct {
	mu   sync.Mutex
	cond *sync.Cond

	owner int64
	depth int
}

// graph is shared by every Observable and List. A listener reading or writing
// another instance never has to take a second lock, so goroutines writing to
// different inputs of the same Computed cannot wait on each other in a cycle.
var graph = NewLock()

func NewLock() *Lock {
	l := &Lock{}
	l.cond = sync.NewCond(&l.mu)
	return l
}

func (l *Lock) Lock() {
	gid := getGID()

	l.mu.Lock()
	for l.depth > 0 && l.owner != gid {
		l.cond.Wait()
	}

	l.owner = gid
	l.depth++
	l.mu.Unlock()
}

func (l *Lock) Unlock() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.depth == 0 {
		panic("observable: unlock of unlocked instance")
	}

	l.depth--
	if l.depth == 0 {
		l.owner = 0
		l.cond.Broadcast()
	}
}

// Do runs fn while holding the lock, releasing it even if fn panics.
func (l *Lock) Do(fn func()) {
	l.Lock()
	defer l.Unlock()

	fn()
}
