// Package chain supplies the time sources the sale engine consumes: the
// current block height for sale-window gating and the current wall-clock
// time for vesting gating. Both are externally driven and monotonically
// non-decreasing.
package chain

import (
	"sync"
	"time"
)

// Clock reports the current block height and wall-clock time.
type Clock interface {
	// Height returns the current block height.
	Height() uint64

	// Now returns the current wall-clock time.
	Now() time.Time
}

// SimClock is a manually advanced Clock for tests and simulations,
// mirroring how a chain harness force-mines blocks and bumps time.
// Advancement methods never move the clock backwards.
type SimClock struct {
	mu     sync.Mutex
	height uint64
	now    time.Time
}

// NewSimClock creates a SimClock at the given height and time.
func NewSimClock(height uint64, now time.Time) *SimClock {
	return &SimClock{height: height, now: now}
}

// Height returns the current block height.
func (c *SimClock) Height() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.height
}

// Now returns the current wall-clock time.
func (c *SimClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Mine advances the height by n blocks.
func (c *SimClock) Mine(n uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.height += n
}

// MineTo advances the height to the given block. No-op if the clock is
// already at or past it.
func (c *SimClock) MineTo(height uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if height > c.height {
		c.height = height
	}
}

// Advance moves the wall-clock forward by d. Negative durations are ignored.
func (c *SimClock) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// AdvanceTo moves the wall-clock to t. No-op if t is not after the
// current time.
func (c *SimClock) AdvanceTo(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t.After(c.now) {
		c.now = t
	}
}
