package observable

import (
	"sync"

	"github.com/AnatoleLucet/observable/internal"
)

// Computed is a read-only value derived from a fixed set of inputs.
// It is recomputed eagerly each time one of its inputs notifies a change,
// so N changed inputs mean N recomputations.
type Computed[T comparable] struct {
	value   *internal.Observable
	compute func() T

	unsubscribe []func()
	dispose     sync.Once
}

// NewComputed creates a computed value from compute, re-running it whenever any of inputs changes.
// compute must read only values listed in inputs: anything else it reads is
// not followed. Prefer Map, Combine or Combine3 which keep both in step.
func NewComputed[T comparable](compute func() T, inputs ...Source) *Computed[T] {
	if compute == nil {
		panic("observable: nil compute function")
	}

	c := &Computed[T]{
		value:   internal.NewObservable(compute()),
		compute: compute,
	}

	for _, input := range inputs {
		c.unsubscribe = append(c.unsubscribe, input.subscribe(c.update))
	}

	return c
}

// Map derives a computed value from a single input.
func Map[A, T comparable](in Readable[A], fn func(A) T) *Computed[T] {
	return NewComputed(func() T { return fn(in.Get()) }, in)
}

// Combine derives a computed value from two inputs.
func Combine[A, B, T comparable](a Readable[A], b Readable[B], fn func(A, B) T) *Computed[T] {
	return NewComputed(func() T { return fn(a.Get(), b.Get()) }, a, b)
}

// Combine3 derives a computed value from three inputs.
func Combine3[A, B, C, T comparable](a Readable[A], b Readable[B], c Readable[C], fn func(A, B, C) T) *Computed[T] {
	return NewComputed(func() T { return fn(a.Get(), b.Get(), c.Get()) }, a, b, c)
}

func (c *Computed[T]) update() {
	c.value.Write(c.compute())
}

// Get returns the value as of the latest input change.
func (c *Computed[T]) Get() T {
	return as[T](c.value.Value())
}

// OnChange appends a listener called when a recomputation produced a different value.
func (c *Computed[T]) OnChange(fn func(old, new T)) Handle {
	return c.value.OnChange(func(old, new any) {
		fn(as[T](old), as[T](new))
	})
}

// Unsubscribe detaches a listener registered with OnChange.
func (c *Computed[T]) Unsubscribe(h Handle) {
	c.value.Unsubscribe(h)
}

// Dispose detaches the computed value from its inputs. Its value stays frozen afterwards.
func (c *Computed[T]) Dispose() {
	c.dispose.Do(func() {
		for _, unsubscribe := range c.unsubscribe {
			unsubscribe()
		}
	})
}

func (c *Computed[T]) subscribe(fn func()) func() {
	return c.value.Subscribe(fn)
}
