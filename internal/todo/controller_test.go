package todo

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/AnatoleLucet/observable/internal/config"
	"github.com/AnatoleLucet/observable/internal/fortune"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// manualFortunes holds callbacks until the test releases them.
type manualFortunes struct {
	mu      sync.Mutex
	pending []func(string)
}

func (f *manualFortunes) Fetch(cb func(string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pending = append(f.pending, cb)
}

func (f *manualFortunes) release(text string) {
	f.mu.Lock()
	cb := f.pending[0]
	f.pending = f.pending[1:]
	f.mu.Unlock()

	cb(text)
}

func (f *manualFortunes) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

func TestMode(t *testing.T) {
	t.Run("parse", func(t *testing.T) {
		m, err := ParseMode("words")
		require.NoError(t, err)
		assert.Equal(t, Words, m)

		_, err = ParseMode("lines")
		assert.ErrorContains(t, err, `unknown length mode "lines"`)
	})

	t.Run("length", func(t *testing.T) {
		assert.Equal(t, 5, Letters.Length("héllo"))
		assert.Equal(t, 3, Words.Length("  one two\tthree "))
		assert.Equal(t, 0, Words.Length(""))
	})
}

func TestController(t *testing.T) {
	t.Run("counts todos and open tasks", func(t *testing.T) {
		c := NewController(&manualFortunes{}, nil)

		first := c.AddTodo()
		second := c.AddTodo()
		assert.Equal(t, 2, c.NumberOfTodos())
		assert.Equal(t, 2, c.NumberOfOpenTasks())

		first.SetDone(true)
		assert.Equal(t, 1, c.NumberOfOpenTasks())

		c.RemoveTodo(second)
		assert.Equal(t, 1, c.NumberOfTodos())
		assert.Equal(t, 0, c.NumberOfOpenTasks())
		assert.Equal(t, []*Todo{first}, c.Todos())
	})

	t.Run("new todos have defaults", func(t *testing.T) {
		c := NewController(&manualFortunes{}, nil)
		todo := c.AddTodo()

		assert.Equal(t, "text", todo.Text())
		assert.False(t, todo.Done())
		assert.True(t, todo.Valid())
		assert.NotEmpty(t, todo.ID())
		assert.NotEqual(t, todo.ID(), c.AddTodo().ID())
	})

	t.Run("validity follows length settings", func(t *testing.T) {
		log := []string{}

		c := NewController(&manualFortunes{}, nil)
		todo := c.AddTodo()
		todo.OnValidChanged(func(_, valid bool) { log = append(log, fmt.Sprintf("valid %t", valid)) })

		todo.SetText("buy milk")
		c.SetMinLength(5)
		c.SetMinLengthMode(Words)
		c.SetMinLength(2)
		todo.SetText("buy")

		assert.Equal(t, []string{
			"valid false",
			"valid true",
			"valid false",
		}, log)
	})

	t.Run("removed todos stop tracking settings", func(t *testing.T) {
		calls := 0

		c := NewController(&manualFortunes{}, nil)
		todo := c.AddTodo()
		todo.OnValidChanged(func(_, _ bool) { calls++ })

		c.RemoveTodo(todo)
		c.SetMinLength(100)

		assert.Equal(t, 0, calls)
		assert.True(t, todo.Valid())
	})

	t.Run("fortune todos are filled in order", func(t *testing.T) {
		fortunes := &manualFortunes{}
		c := NewController(fortunes, nil)

		first := c.AddFortuneTodo()
		second := c.AddFortuneTodo()

		assert.Equal(t, "...", first.Text())
		assert.Equal(t, "...", second.Text())
		assert.Equal(t, 1, fortunes.count()) // second fetch waits for the first

		fortunes.release("one")
		assert.Equal(t, "one", first.Text())
		assert.Equal(t, "...", second.Text())
		assert.Equal(t, 1, fortunes.count())

		fortunes.release("two")
		assert.Equal(t, "two", second.Text())
		require.NoError(t, c.Wait(context.Background()))
	})

	t.Run("fortune service end to end", func(t *testing.T) {
		c := NewController(fortune.New(time.Millisecond, []string{"a", "b", "c"}, nil), nil)

		todos := []*Todo{c.AddFortuneTodo(), c.AddFortuneTodo(), c.AddFortuneTodo()}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		require.NoError(t, c.Wait(ctx))

		assert.Equal(t, "a", todos[0].Text())
		assert.Equal(t, "b", todos[1].Text())
		assert.Equal(t, "c", todos[2].Text())
	})

	t.Run("add and remove listeners", func(t *testing.T) {
		log := []string{}

		c := NewController(&manualFortunes{}, nil)
		c.OnTodoAdd(func(todo *Todo, _ func()) { log = append(log, "added "+todo.Text()) })
		h := c.OnTodoRemove(func(todo *Todo, _ func()) { log = append(log, "removed "+todo.Text()) })

		todo := c.AddTodo()
		c.RemoveTodo(todo)
		c.RemoveTodoRemoveListener(h)
		c.RemoveTodo(c.AddTodo())

		assert.Equal(t, []string{
			"added text",
			"removed text",
			"added text",
		}, log)
	})

	t.Run("apply config", func(t *testing.T) {
		log := []string{}

		c := NewController(&manualFortunes{}, nil)
		c.OnMinLengthChange(func(_, n int) { log = append(log, fmt.Sprintf("length %d", n)) })
		c.OnMinLengthModeChange(func(_, m Mode) { log = append(log, "mode "+string(m)) })

		c.Apply(&config.Config{MinLength: 3, MinLengthMode: "words"})
		c.Apply(&config.Config{MinLength: 3, MinLengthMode: "words"})

		assert.Equal(t, 3, c.MinLength())
		assert.Equal(t, Words, c.MinLengthMode())
		assert.Equal(t, []string{"length 3", "mode words"}, log)
	})

	t.Run("fortunes delivered while settings change", func(t *testing.T) {
		const n = 200

		c := NewController(fortune.Func(func(cb func(string)) { go cb("a fortune text") }), nil)
		for i := range n {
			c.AddFortuneTodo()
			c.SetMinLength(i%7 + 1)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		require.NoError(t, c.Wait(ctx))

		todos := c.Todos()
		require.Len(t, todos, n)
		for _, todo := range todos {
			assert.Equal(t, "a fortune text", todo.Text())
			assert.Equal(t, c.MinLengthMode().Length(todo.Text()) >= c.MinLength(), todo.Valid())
		}
	})
}
