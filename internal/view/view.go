// Package view renders the todo controller as text.
//
// Views are passive: they subscribe to the controller once and keep their own
// output in sync, releasing per-todo state when a todo is removed.
package view

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/AnatoleLucet/observable/internal/todo"
)

// Label is a single line of text re-rendered on relevant changes.
// Every new text is also written to out, prefixed with the label name.
type Label struct {
	mu sync.Mutex

	name string
	text string
	out  io.Writer
}

func newLabel(name string, out io.Writer) *Label {
	if out == nil {
		out = io.Discard
	}
	return &Label{name: name, out: out}
}

func (l *Label) Text() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.text
}

func (l *Label) set(text string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if text == l.text {
		return
	}

	l.text = text
	fmt.Fprintf(l.out, "%s: %s\n", l.name, text)
}

// Total shows the number of todos.
func Total(c *todo.Controller, out io.Writer) *Label {
	l := newLabel("total", out)

	render := func() { l.set(strconv.Itoa(c.NumberOfTodos())) }

	c.OnTodoAdd(func(*todo.Todo, func()) { render() })
	c.OnTodoRemove(func(*todo.Todo, func()) { render() })
	render()

	return l
}

// Open shows the number of todos not done yet.
func Open(c *todo.Controller, out io.Writer) *Label {
	l := newLabel("open", out)

	render := func() { l.set(strconv.Itoa(c.NumberOfOpenTasks())) }

	c.OnTodoAdd(func(t *todo.Todo, _ func()) {
		render()

		h := t.OnDoneChanged(func(_, _ bool) { render() })
		c.OnTodoRemove(func(removed *todo.Todo, remove func()) {
			if removed != t {
				return
			}
			t.RemoveDoneListener(h)
			remove()
		})
	})
	c.OnTodoRemove(func(*todo.Todo, func()) { render() })
	render()

	return l
}

// MinLength shows the minimum todo length, e.g. "1 letter" or "3 words".
func MinLength(c *todo.Controller, out io.Writer) *Label {
	l := newLabel("min length", out)

	render := func() {
		n, mode := c.MinLength(), string(c.MinLengthMode())
		if n == 1 {
			mode = strings.TrimSuffix(mode, "s")
		}
		l.set(fmt.Sprintf("%d %s", n, mode))
	}

	c.OnMinLengthChange(func(_, _ int) { render() })
	c.OnMinLengthModeChange(func(_, _ todo.Mode) { render() })
	render()

	return l
}
