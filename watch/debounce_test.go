package watch_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alwitt/alcove/watch"
	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
)

// TestDebouncerCollapsesBursts verifies a burst of triggers produces a single
// callback carrying the most recent payload.
func TestDebouncerCollapsesBursts(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	var lock sync.Mutex
	fired := []string{}
	uut := watch.NewDebouncer(25*time.Millisecond, func(_ context.Context, payload string) {
		lock.Lock()
		defer lock.Unlock()
		fired = append(fired, payload)
	})

	// 1 – Rapid triggers within the window collapse into one call
	uut.Trigger(utCtx, "first")
	uut.Trigger(utCtx, "second")
	uut.Trigger(utCtx, "third")
	time.Sleep(100 * time.Millisecond)

	lock.Lock()
	assert.Equal([]string{"third"}, fired)
	lock.Unlock()

	// 2 – A later trigger fires independently
	uut.Trigger(utCtx, "fourth")
	time.Sleep(100 * time.Millisecond)

	lock.Lock()
	assert.Equal([]string{"third", "fourth"}, fired)
	lock.Unlock()
}

// TestDebouncerStop verifies a pending invocation can be cancelled.
func TestDebouncerStop(t *testing.T) {
	assert := assert.New(t)
	log.SetLevel(log.DebugLevel)

	utCtx := context.Background()

	var lock sync.Mutex
	fired := 0
	uut := watch.NewDebouncer(25*time.Millisecond, func(_ context.Context, _ string) {
		lock.Lock()
		defer lock.Unlock()
		fired++
	})

	// 1 – Stop before the window elapses cancels the call
	uut.Trigger(utCtx, "pending")
	uut.Stop()
	time.Sleep(100 * time.Millisecond)

	lock.Lock()
	assert.Equal(0, fired)
	lock.Unlock()

	// 2 – Stop with nothing pending is a NOOP
	uut.Stop()

	// 3 – The debouncer remains usable after a stop
	uut.Trigger(utCtx, "again")
	time.Sleep(100 * time.Millisecond)

	lock.Lock()
	assert.Equal(1, fired)
	lock.Unlock()
}
