// Package testutil provides deterministic sources for tests.
package testutil

import (
	"fmt"
	"sync"
	"time"
)

// TickingClock is a thread-safe deterministic time source. Each call to Now
// returns the current instant and advances it by a fixed step, so repeated
// commits in a test get distinct, predictable timestamps.
type TickingClock struct {
	mu    sync.Mutex
	now   time.Time
	step  time.Duration
	start time.Time
}

// NewTickingClock creates a clock starting at start, advancing by step per
// Now call.
func NewTickingClock(start time.Time, step time.Duration) *TickingClock {
	return &TickingClock{now: start, step: step, start: start}
}

// Now returns the current instant and advances the clock.
func (c *TickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// Current returns the current instant without advancing.
func (c *TickingClock) Current() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Reset rewinds the clock to its start instant for test reuse.
func (c *TickingClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.start
}

// IDSequence returns a generator producing "prefix-1", "prefix-2", ... for
// deterministic export documents.
func IDSequence(prefix string) func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}
