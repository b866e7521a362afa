// Package testutil provides shared helpers for tests.
package testutil

import "sync"

// DeterministicClock is a thread-safe record.Clock for tests. Each call
// to Now advances the clock by a fixed step, so timestamps are unique,
// monotonic and reproducible across runs.
type DeterministicClock struct {
	mu   sync.Mutex
	now  int64
	step int64
}

// NewDeterministicClock creates a clock starting at start epoch ms,
// advancing step ms per Now call.
func NewDeterministicClock(start, step int64) *DeterministicClock {
	return &DeterministicClock{now: start, step: step}
}

// Now returns the current instant and advances the clock.
func (c *DeterministicClock) Now() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now += c.step
	return t
}

// Peek returns the instant the next Now call will produce, without
// advancing.
func (c *DeterministicClock) Peek() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set repositions the clock. Used to reuse a scenario at a new instant.
func (c *DeterministicClock) Set(now int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}
