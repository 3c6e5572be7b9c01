package internal

import "reflect"

// ChangeListener receives the previous and the new value of an Observable.
type ChangeListener func(old, new any)

type Observable struct {
	lock *Lock

	value     any
	listeners Listeners[ChangeListener]
}

func NewObservable(initial any) *Observable {
	return &Observable{
		lock:  graph,
		value: initial,
	}
}

func (o *Observable) Value() any {
	o.lock.Lock()
	defer o.lock.Unlock()

	return o.value
}

// Write replaces the value and notifies every listener in registration order.
// Writing a value equal to the current one does nothing.
func (o *Observable) Write(v any) {
	o.lock.Do(func() { o.write(v) })
}

// Update writes fn(current) without letting another goroutine write in between.
func (o *Observable) Update(fn func(any) any) {
	o.lock.Do(func() { o.write(fn(o.value)) })
}

func (o *Observable) write(v any) {
	if isEqual(o.value, v) {
		return
	}

	old := o.value
	o.value = v

	o.listeners.Each(func(_ Handle, l ChangeListener) {
		l(old, v)
	})
}

func (o *Observable) OnChange(fn ChangeListener) Handle {
	o.lock.Lock()
	defer o.lock.Unlock()

	return o.listeners.Add(fn)
}

func (o *Observable) Unsubscribe(h Handle) {
	o.lock.Do(func() { o.listeners.Remove(h) })
}

// Subscribe registers fn as a value-less change hook and returns its detach function.
func (o *Observable) Subscribe(fn func()) func() {
	h := o.OnChange(func(_, _ any) { fn() })
	return func() { o.Unsubscribe(h) }
}

// isEqual compares with ==. Values whose dynamic type cannot be compared,
// such as slices stored behind an interface, are never equal.
func isEqual(a, b any) bool {
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if a != nil && !reflect.ValueOf(a).Comparable() {
		return false
	}

	return a == b
}
