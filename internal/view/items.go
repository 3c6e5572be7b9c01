package view

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/AnatoleLucet/observable"
	"github.com/AnatoleLucet/observable/internal/todo"
)

type row struct {
	todo *todo.Todo

	text  string
	done  bool
	valid bool
}

func (r *row) String() string {
	check := " "
	if r.done {
		check = "x"
	}

	line := fmt.Sprintf("[%s] %s", check, r.text)
	if !r.valid {
		line += " (too short)"
	}

	return line
}

// Items keeps one row per todo, in the order todos were added.
// Text updates are written to out as they happen.
type Items struct {
	mu sync.Mutex

	out  io.Writer
	rows []*row
}

func NewItems(c *todo.Controller, out io.Writer) *Items {
	if out == nil {
		out = io.Discard
	}

	v := &Items{out: out}
	c.OnTodoAdd(func(t *todo.Todo, _ func()) { v.render(c, t) })

	return v
}

func (v *Items) render(c *todo.Controller, t *todo.Todo) {
	r := &row{todo: t, text: t.Text(), done: t.Done(), valid: t.Valid()}

	v.update(func() {
		v.rows = append(v.rows, r)
		fmt.Fprintf(v.out, "added: %s\n", r.text)
	})

	text := t.OnTextChanged(func(_, text string) {
		v.update(func() {
			r.text = text
			fmt.Fprintf(v.out, "updated: %s\n", text)
		})
	})
	done := t.OnDoneChanged(func(_, done bool) { v.update(func() { r.done = done }) })
	valid := t.OnValidChanged(func(_, valid bool) { v.update(func() { r.valid = valid }) })

	c.OnTodoRemove(func(removed *todo.Todo, remove func()) {
		if removed != t {
			return
		}

		release(t, text, done, valid)
		v.update(func() {
			v.rows = slices.DeleteFunc(v.rows, func(other *row) bool { return other == r })
			fmt.Fprintf(v.out, "removed: %s\n", r.text)
		})

		remove()
	})
}

func release(t *todo.Todo, text, done, valid observable.Handle) {
	t.RemoveTextListener(text)
	t.RemoveDoneListener(done)
	t.RemoveValidListener(valid)
}

func (v *Items) update(fn func()) {
	v.mu.Lock()
	defer v.mu.Unlock()

	fn()
}

// Len returns the number of rendered rows.
func (v *Items) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()

	return len(v.rows)
}

// Todo returns the todo rendered at 1-based position n.
func (v *Items) Todo(n int) (*todo.Todo, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if n < 1 || n > len(v.rows) {
		return nil, false
	}

	return v.rows[n-1].todo, true
}

// String renders every row, numbered from 1.
func (v *Items) String() string {
	v.mu.Lock()
	defer v.mu.Unlock()

	var b strings.Builder
	for i, r := range v.rows {
		fmt.Fprintf(&b, "%d. %s\n", i+1, r)
	}

	return b.String()
}
