package internal

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLock(t *testing.T) {
	t.Run("reentrant on the owning goroutine", func(t *testing.T) {
		l := NewLock()

		l.Lock()
		l.Lock()
		l.Unlock()
		l.Unlock()

		assert.Equal(t, 0, l.depth)
	})

	t.Run("excludes other goroutines", func(t *testing.T) {
		var wg sync.WaitGroup
		l := NewLock()
		log := []string{}

		l.Lock()
		wg.Go(func() {
			l.Do(func() { log = append(log, "other") })
		})

		time.Sleep(10 * time.Millisecond)
		log = append(log, "owner")
		l.Unlock()

		wg.Wait()
		assert.Equal(t, []string{"owner", "other"}, log)
	})

	t.Run("do releases on panic", func(t *testing.T) {
		l := NewLock()

		assert.Panics(t, func() { l.Do(func() { panic("boom") }) })
		assert.Equal(t, 0, l.depth)
	})

	t.Run("unlock of unlocked lock panics", func(t *testing.T) {
		assert.Panics(t, func() { NewLock().Unlock() })
	})
}

func TestListeners(t *testing.T) {
	t.Run("handles are unique", func(t *testing.T) {
		var l Listeners[func()]

		a := l.Add(func() {})
		b := l.Add(func() {})
		l.Remove(a)
		c := l.Add(func() {})

		assert.NotEqual(t, a, b)
		assert.NotEqual(t, a, c)
		assert.Equal(t, 2, l.Len())
	})

	t.Run("each skips listeners removed mid walk", func(t *testing.T) {
		var l Listeners[func()]
		log := []string{}

		var second Handle
		l.Add(func() {
			log = append(log, "first")
			l.Remove(second)
		})
		second = l.Add(func() { log = append(log, "second") })
		l.Add(func() { log = append(log, "third") })

		l.Each(func(_ Handle, fn func()) { fn() })

		assert.Equal(t, []string{"first", "third"}, log)
		assert.Equal(t, 2, l.Len())
	})
}
