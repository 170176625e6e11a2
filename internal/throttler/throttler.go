// Package throttler provides functionality to throttle http requests
package throttler

import (
	"time"

	"github.com/patrickmn/go-cache"
)

const cleanupInterval = time.Hour

// Throttler ...
type Throttler interface {
	// Throttle returns true if key was reset less than period ago.
	Throttle(key string) bool
	Reset(key string)
}

type throttler struct {
	c *cache.Cache
}

type noop struct{}

// New returns a new instance of Throttler. Non-positive period disables throttling.
func New(period time.Duration) Throttler {
	if period <= 0 {
		return noop{}
	}

	return &throttler{
		c: cache.New(period, cleanupInterval),
	}
}

// Throttle ...
func (t *throttler) Throttle(key string) bool {
	_, ok := t.c.Get(key)
	return ok
}

// Reset ...
func (t *throttler) Reset(key string) {
	t.c.SetDefault(key, true)
}

func (noop) Throttle(string) bool { return false }

func (noop) Reset(string) {}
