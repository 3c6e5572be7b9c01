package observable

import "github.com/AnatoleLucet/observable/internal"

func as[T any](v any) T {
	if v == nil {
		var zero T
		return zero
	}

	return v.(T)
}

// Handle identifies a registered listener. Pass it back to the owner to detach the listener.
type Handle = internal.Handle

// Readable is the read-only side shared by observables and computed values.
type Readable[T comparable] interface {
	Source

	Get() T
	OnChange(fn func(old, new T)) Handle
	Unsubscribe(h Handle)
}

// Source is anything a computed value can depend on.
type Source interface {
	subscribe(fn func()) (unsubscribe func())
}

type Observable[T comparable] struct {
	observable *internal.Observable
}

// New creates an observable holding initial.
func New[T comparable](initial T) *Observable[T] {
	return &Observable[T]{
		internal.NewObservable(initial),
	}
}

// Get returns the current value.
func (o *Observable[T]) Get() T {
	return as[T](o.observable.Value())
}

// Set replaces the value and synchronously calls every listener with the old and new value,
// in registration order. Setting a value equal to the current one does nothing.
func (o *Observable[T]) Set(v T) {
	o.observable.Write(v)
}

// Update sets fn(current) with no other goroutine writing in between.
func (o *Observable[T]) Update(fn func(T) T) {
	o.observable.Update(func(v any) any { return fn(as[T](v)) })
}

// OnChange appends a listener. Registering the same function twice calls it twice.
func (o *Observable[T]) OnChange(fn func(old, new T)) Handle {
	return o.observable.OnChange(func(old, new any) {
		fn(as[T](old), as[T](new))
	})
}

// Unsubscribe detaches a listener registered with OnChange.
func (o *Observable[T]) Unsubscribe(h Handle) {
	o.observable.Unsubscribe(h)
}

func (o *Observable[T]) subscribe(fn func()) func() {
	return o.observable.Subscribe(fn)
}
