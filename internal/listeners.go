package internal

import "slices"

// Handle identifies a registered listener within its owning registry.
type Handle uint64

type listener[F any] struct {
	handle  Handle
	fn      F
	removed bool
}

// Listeners is an ordered listener registry.
// Registration order is notification order; the same function may be registered twice.
type Listeners[F any] struct {
	next    Handle
	entries []*listener[F]
}

func (l *Listeners[F]) Add(fn F) Handle {
	l.next++
	l.entries = append(l.entries, &listener[F]{handle: l.next, fn: fn})
	return l.next
}

func (l *Listeners[F]) Remove(h Handle) {
	i := slices.IndexFunc(l.entries, func(e *listener[F]) bool { return e.handle == h })
	if i == -1 {
		return
	}

	l.entries[i].removed = true
	l.entries = slices.Delete(l.entries, i, i+1)
}

func (l *Listeners[F]) Len() int {
	return len(l.entries)
}

// Each calls fn for every listener registered when Each started.
// Listeners removed during the walk are skipped.
func (l *Listeners[F]) Each(fn func(h Handle, listener F)) {
	// clonning to avoid mutation during iteration
	entries := slices.Clone(l.entries)

	for _, e := range entries {
		if e.removed {
			continue
		}

		fn(e.handle, e.fn)
	}
}
