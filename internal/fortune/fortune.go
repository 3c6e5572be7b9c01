// Package fortune serves short texts after a simulated latency.
package fortune

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Fetcher delivers exactly one text through cb, possibly from another goroutine.
type Fetcher interface {
	Fetch(cb func(text string))
}

// Service hands out its texts round-robin, each after Delay.
type Service struct {
	mu     sync.Mutex
	logger *zap.Logger

	delay time.Duration
	texts []string
	next  int
}

func New(delay time.Duration, texts []string, logger *zap.Logger) *Service {
	if len(texts) == 0 {
		panic("fortune: no texts")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		logger: logger,
		delay:  delay,
		texts:  texts,
	}
}

func (s *Service) Fetch(cb func(text string)) {
	s.mu.Lock()
	text := s.texts[s.next%len(s.texts)]
	s.next++
	s.mu.Unlock()

	s.logger.Debug("fortune requested", zap.Duration("delay", s.delay))

	time.AfterFunc(s.delay, func() {
		s.logger.Debug("fortune delivered", zap.String("text", text))
		cb(text)
	})
}

// Func adapts a plain function to a Fetcher.
type Func func(cb func(text string))

func (f Func) Fetch(cb func(text string)) { f(cb) }
