package internal

import "slices"

// ItemListener receives the added or removed item and a function detaching the listener itself.
type ItemListener func(item any, remove func())

type List struct {
	lock *Lock

	items []any

	addListeners Listeners[ItemListener]
	delListeners Listeners[ItemListener]
}

func NewList(initial ...any) *List {
	return &List{
		lock:  graph,
		items: slices.Clone(initial),
	}
}

func (l *List) Add(item any) {
	l.lock.Lock()
	defer l.lock.Unlock()

	l.items = append(l.items, item)
	l.notify(&l.addListeners, item)
}

// Del removes the first occurrence of item. Missing items are ignored.
func (l *List) Del(item any) {
	l.lock.Lock()
	defer l.lock.Unlock()

	i := slices.IndexFunc(l.items, func(v any) bool { return isEqual(v, item) })
	if i == -1 {
		return
	}

	l.items = slices.Delete(l.items, i, i+1)
	l.notify(&l.delListeners, item)
}

func (l *List) notify(listeners *Listeners[ItemListener], item any) {
	listeners.Each(func(h Handle, fn ItemListener) {
		fn(item, func() {
			l.lock.Do(func() { listeners.Remove(h) })
		})
	})
}

func (l *List) OnAdd(fn ItemListener) Handle {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.addListeners.Add(fn)
}

func (l *List) OnDel(fn ItemListener) Handle {
	l.lock.Lock()
	defer l.lock.Unlock()

	return l.delListeners.Add(fn)
}

func (l *List) RemoveAddListener(h Handle) {
	l.lock.Do(func() { l.addListeners.Remove(h) })
}

func (l *List) RemoveDeleteListener(h Handle) {
	l.lock.Do(func() { l.delListeners.Remove(h) })
}

func (l *List) Count() int {
	l.lock.Lock()
	defer l.lock.Unlock()

	return len(l.items)
}

// CountIf scans the whole list on every call.
func (l *List) CountIf(pred func(any) bool) int {
	l.lock.Lock()
	defer l.lock.Unlock()

	n := 0
	for _, item := range l.items {
		if pred(item) {
			n++
		}
	}

	return n
}

func (l *List) Items() []any {
	l.lock.Lock()
	defer l.lock.Unlock()

	return slices.Clone(l.items)
}

// Subscribe registers fn for both additions and removals and returns its detach function.
func (l *List) Subscribe(fn func()) func() {
	add := l.OnAdd(func(any, func()) { fn() })
	del := l.OnDel(func(any, func()) { fn() })

	return func() {
		l.RemoveAddListener(add)
		l.RemoveDeleteListener(del)
	}
}
