package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AnatoleLucet/observable/internal/todo"
	"github.com/AnatoleLucet/observable/internal/view"
)

type repl struct {
	c     *todo.Controller
	out   io.Writer
	items *view.Items
}

func newREPL(c *todo.Controller, out io.Writer) *repl {
	r := &repl{
		c:     c,
		out:   out,
		items: view.NewItems(c, out),
	}

	view.Total(c, out)
	view.Open(c, out)
	view.MinLength(c, out)

	return r
}

// run executes commands until quit, end of input or ctx is done.
// Pending fortunes are awaited before returning at end of input.
func (r *repl) run(ctx context.Context, in io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case line, ok := <-lines:
			if !ok {
				return r.c.Wait(ctx)
			}

			quit, err := r.exec(ctx, line)
			if err != nil {
				fmt.Fprintf(r.out, "error: %v\n", err)
			}
			if quit {
				return nil
			}
		}
	}
}

func (r *repl) exec(ctx context.Context, line string) (quit bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return false, nil
	}

	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "add":
		t := r.c.AddTodo()
		if rest != "" {
			t.SetText(rest)
		}

	case "fortune":
		r.c.AddFortuneTodo()

	case "text":
		n, text, _ := strings.Cut(rest, " ")
		t, err := r.todo(n)
		if err != nil {
			return false, err
		}
		t.SetText(text)

	case "done", "undone":
		t, err := r.todo(rest)
		if err != nil {
			return false, err
		}
		t.SetDone(cmd == "done")

	case "del":
		t, err := r.todo(rest)
		if err != nil {
			return false, err
		}
		r.c.RemoveTodo(t)

	case "minlen":
		n, err := strconv.Atoi(rest)
		if err != nil || n < 1 {
			return false, fmt.Errorf("minlen: want a positive number, got %q", rest)
		}
		r.c.SetMinLength(n)

	case "mode":
		mode, err := todo.ParseMode(rest)
		if err != nil {
			return false, err
		}
		r.c.SetMinLengthMode(mode)

	case "list":
		fmt.Fprint(r.out, r.items.String())

	case "wait":
		return false, r.c.Wait(ctx)

	case "quit", "exit":
		return true, nil

	default:
		return false, fmt.Errorf("unknown command %q", cmd)
	}

	return false, nil
}

func (r *repl) todo(arg string) (*todo.Todo, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return nil, fmt.Errorf("want a todo number, got %q", arg)
	}

	t, ok := r.items.Todo(n)
	if !ok {
		return nil, fmt.Errorf("no todo %d", n)
	}

	return t, nil
}
