package observable

import (
	"context"
	"sync"
	"time"

	"github.com/AnatoleLucet/observable/internal"
	"go.uber.org/zap"
)

// Task is a unit of asynchronous work. It must call ok exactly once when done,
// possibly later and from another goroutine. A task that never calls ok stalls its scheduler.
type Task func(ok func())

type Scheduler struct {
	scheduler *internal.Scheduler
}

type schedulerOptions struct {
	logger *zap.Logger
}

type SchedulerOption func(*schedulerOptions)

// WithLogger makes the scheduler log its queue activity at debug level.
func WithLogger(logger *zap.Logger) SchedulerOption {
	return func(o *schedulerOptions) { o.logger = logger }
}

// NewScheduler creates an idle FIFO scheduler running one task at a time.
func NewScheduler(opts ...SchedulerOption) *Scheduler {
	options := schedulerOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&options)
	}

	return &Scheduler{
		internal.NewScheduler(options.logger),
	}
}

// Add queues task. When the scheduler is idle the task starts right away on the caller's goroutine,
// otherwise it starts once every previously added task called its ok.
func (s *Scheduler) Add(task Task) {
	if task == nil {
		panic("observable: nil task")
	}

	s.scheduler.Add(internal.Task(task))
}

// Pending returns the number of tasks waiting to start.
func (s *Scheduler) Pending() int { return s.scheduler.Pending() }

// Running reports whether a task is in flight.
func (s *Scheduler) Running() bool { return s.scheduler.Running() }

// Wait blocks until no task is in flight or queued, or until ctx is done.
func (s *Scheduler) Wait(ctx context.Context) error { return s.scheduler.Wait(ctx) }

// WithTimeout wraps task so that its ok is called after d at the latest.
// The first of the task's own ok and the timer wins, the other one is dropped.
func WithTimeout(d time.Duration, task Task) Task {
	return func(ok func()) {
		var once sync.Once
		done := func() { once.Do(ok) }

		timer := time.AfterFunc(d, done)
		task(func() {
			timer.Stop()
			done()
		})
	}
}
