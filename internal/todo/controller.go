package todo

import (
	"context"

	"github.com/AnatoleLucet/observable"
	"github.com/AnatoleLucet/observable/internal/config"
	"github.com/AnatoleLucet/observable/internal/fortune"
	"go.uber.org/zap"
)

// Controller owns the todo list and the settings todos are validated against.
type Controller struct {
	logger *zap.Logger

	todos     *observable.List[*Todo]
	scheduler *observable.Scheduler
	fortunes  fortune.Fetcher

	minLength     *observable.Observable[int]
	minLengthMode *observable.Observable[Mode]
}

func NewController(fortunes fortune.Fetcher, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Controller{
		logger: logger,

		todos:     observable.NewList[*Todo](),
		scheduler: observable.NewScheduler(observable.WithLogger(logger.Named("scheduler"))),
		fortunes:  fortunes,

		minLength:     observable.New(config.DefaultMinLength),
		minLengthMode: observable.New(Mode(config.DefaultMinLengthMode)),
	}

	c.todos.OnDel(func(t *Todo, _ func()) {
		t.release()
		c.logger.Debug("todo removed", zap.String("id", t.ID()))
	})

	return c
}

func (c *Controller) AddTodo() *Todo {
	t := newTodo(c.minLength, c.minLengthMode)
	c.logger.Debug("todo added", zap.String("id", t.ID()))

	c.todos.Add(t)
	return t
}

// AddFortuneTodo adds a placeholder todo and schedules fetching its text.
// Fetches run one after the other in the order they were requested.
func (c *Controller) AddFortuneTodo() *Todo {
	t := c.AddTodo()
	t.SetText("...")

	c.scheduler.Add(func(ok func()) {
		c.fortunes.Fetch(func(text string) {
			t.SetText(text)
			ok()
		})
	})

	return t
}

func (c *Controller) RemoveTodo(t *Todo) { c.todos.Del(t) }

func (c *Controller) Todos() []*Todo { return c.todos.Items() }

func (c *Controller) NumberOfTodos() int { return c.todos.Count() }

func (c *Controller) NumberOfOpenTasks() int {
	return c.todos.CountIf(func(t *Todo) bool { return !t.Done() })
}

func (c *Controller) OnTodoAdd(fn func(t *Todo, remove func())) observable.Handle {
	return c.todos.OnAdd(fn)
}

func (c *Controller) OnTodoRemove(fn func(t *Todo, remove func())) observable.Handle {
	return c.todos.OnDel(fn)
}

func (c *Controller) RemoveTodoRemoveListener(h observable.Handle) {
	c.todos.RemoveDeleteListener(h)
}

func (c *Controller) MinLength() int { return c.minLength.Get() }
func (c *Controller) SetMinLength(n int) { c.minLength.Set(n) }
func (c *Controller) MinLengthMode() Mode { return c.minLengthMode.Get() }
func (c *Controller) SetMinLengthMode(m Mode) { c.minLengthMode.Set(m) }

func (c *Controller) OnMinLengthChange(fn func(old, new int)) observable.Handle {
	return c.minLength.OnChange(fn)
}

func (c *Controller) OnMinLengthModeChange(fn func(old, new Mode)) observable.Handle {
	return c.minLengthMode.OnChange(fn)
}

// Apply pushes loaded settings into the controller, revalidating every todo.
func (c *Controller) Apply(cfg *config.Config) {
	c.SetMinLength(cfg.MinLength)
	c.SetMinLengthMode(Mode(cfg.MinLengthMode))
}

// Wait blocks until every scheduled fortune has been delivered or ctx is done.
func (c *Controller) Wait(ctx context.Context) error {
	return c.scheduler.Wait(ctx)
}
