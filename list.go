package observable

import "github.com/AnatoleLucet/observable/internal"

// List is an ordered collection notifying listeners of additions and removals.
// Items are compared with ==, so pointers are matched by identity and duplicates are allowed.
type List[T comparable] struct {
	list *internal.List
}

// NewList creates a list holding initial, without notifying anyone.
func NewList[T comparable](initial ...T) *List[T] {
	items := make([]any, len(initial))
	for i, item := range initial {
		items[i] = item
	}

	return &List[T]{
		internal.NewList(items...),
	}
}

// Add appends item, then calls every add listener with the item
// and a function detaching that listener.
func (l *List[T]) Add(item T) {
	l.list.Add(item)
}

// Del removes the first occurrence of item, then calls every delete listener with the item
// and a function detaching that listener. Deleting a missing item does nothing.
func (l *List[T]) Del(item T) {
	l.list.Del(item)
}

func (l *List[T]) OnAdd(fn func(item T, remove func())) Handle {
	return l.list.OnAdd(func(item any, remove func()) {
		fn(as[T](item), remove)
	})
}

func (l *List[T]) OnDel(fn func(item T, remove func())) Handle {
	return l.list.OnDel(func(item any, remove func()) {
		fn(as[T](item), remove)
	})
}

func (l *List[T]) RemoveAddListener(h Handle) {
	l.list.RemoveAddListener(h)
}

func (l *List[T]) RemoveDeleteListener(h Handle) {
	l.list.RemoveDeleteListener(h)
}

// Count returns the current number of items.
func (l *List[T]) Count() int {
	return l.list.Count()
}

// CountIf returns how many items satisfy pred, scanning the whole list.
func (l *List[T]) CountIf(pred func(T) bool) int {
	return l.list.CountIf(func(item any) bool {
		return pred(as[T](item))
	})
}

// Items returns a copy of the current items in order.
func (l *List[T]) Items() []T {
	raw := l.list.Items()

	items := make([]T, len(raw))
	for i, item := range raw {
		items[i] = as[T](item)
	}

	return items
}

func (l *List[T]) subscribe(fn func()) func() {
	return l.list.Subscribe(fn)
}
