package internal

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Task is started with a completion callback it must call once its work is done.
type Task func(ok func())

// Scheduler runs tasks one at a time in the order they were added.
// The next task starts only after the running one called its ok.
type Scheduler struct {
	mu     sync.Mutex
	logger *zap.Logger

	queue []Task

	// a task is in flight
	running bool

	// inline is set while the current task body runs on the draining goroutine,
	// settled records that its ok was called before the body returned
	inline  bool
	settled bool

	// id of the task in flight, incremented on each start
	current uint64

	// incremented each time a task completes
	clock int

	// closed whenever the scheduler goes idle
	idle chan struct{}
}

func NewScheduler(logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	idle := make(chan struct{})
	close(idle)

	return &Scheduler{
		logger: logger,
		idle:   idle,
	}
}

func (s *Scheduler) Add(task Task) {
	if task == nil {
		panic("observable: nil task")
	}

	s.mu.Lock()
	s.queue = append(s.queue, task)
	start := !s.running
	if start {
		s.running = true
		s.busy()
	}
	pending := len(s.queue)
	s.mu.Unlock()

	s.logger.Debug("task queued", zap.Int("pending", pending), zap.Bool("start", start))

	if start {
		s.drain()
	}
}

// busy replaces a closed idle channel. Must be called with mu held.
func (s *Scheduler) busy() {
	select {
	case <-s.idle:
		s.idle = make(chan struct{})
	default:
	}
}

// drain starts queued tasks until one of them completes asynchronously or the queue is empty.
// Tasks completing synchronously loop here instead of recursing through ok.
func (s *Scheduler) drain() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.running = false
			close(s.idle)
			s.mu.Unlock()

			s.logger.Debug("scheduler idle", zap.Int("completed", s.Completed()))
			return
		}

		task := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]

		s.current++
		id := s.current
		s.inline = true
		s.settled = false
		s.mu.Unlock()

		s.logger.Debug("task started", zap.Uint64("task", id))

		if !s.run(id, task) {
			return
		}
	}
}

// run executes the task body and reports whether its ok was already called.
func (s *Scheduler) run(id uint64, task Task) (settled bool) {
	var once sync.Once
	ok := func() {
		once.Do(func() { s.complete(id) })
	}

	defer func() {
		r := recover()

		s.mu.Lock()
		s.inline = false
		settled = s.settled
		s.mu.Unlock()

		if r != nil {
			if settled {
				// ok was called, so the queue moves on before the panic leaves
				s.drain()
			}
			panic(r)
		}
	}()

	task(ok)
	return
}

func (s *Scheduler) complete(id uint64) {
	s.mu.Lock()
	s.clock++
	inline := s.inline && s.current == id
	if inline {
		s.settled = true
	}
	s.mu.Unlock()

	s.logger.Debug("task completed", zap.Uint64("task", id), zap.Bool("inline", inline))

	if !inline {
		s.drain()
	}
}

// Pending returns the number of queued tasks not started yet.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.queue)
}

func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// Completed returns how many tasks called their ok so far.
func (s *Scheduler) Completed() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.clock
}

// Wait blocks until the scheduler is idle or ctx is done.
func (s *Scheduler) Wait(ctx context.Context) error {
	s.mu.Lock()
	idle := s.idle
	s.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
