package simserver

import (
	"context"
	"sync"
	"time"
)

type namedTick struct {
	name string
	fn   func()
}

// TickManager runs registered callbacks once per interval in registration
// order. It is safe for concurrent use.
type TickManager struct {
	interval time.Duration
	mu       sync.Mutex
	ticks    []namedTick
}

// NewTickManager returns a manager that fires every interval.
//
// Precondition: interval must be > 0.
func NewTickManager(interval time.Duration) *TickManager {
	if interval <= 0 {
		panic("simserver.NewTickManager: interval must be > 0")
	}
	return &TickManager{interval: interval}
}

// Register adds fn under name. Re-registering a name replaces its callback
// and keeps its position.
func (z *TickManager) Register(name string, fn func()) {
	z.mu.Lock()
	defer z.mu.Unlock()
	for i := range z.ticks {
		if z.ticks[i].name == name {
			z.ticks[i].fn = fn
			return
		}
	}
	z.ticks = append(z.ticks, namedTick{name: name, fn: fn})
}

// Unregister removes the callback registered under name.
func (z *TickManager) Unregister(name string) {
	z.mu.Lock()
	defer z.mu.Unlock()
	for i := range z.ticks {
		if z.ticks[i].name == name {
			z.ticks = append(z.ticks[:i], z.ticks[i+1:]...)
			return
		}
	}
}

// Len returns the number of registered callbacks.
func (z *TickManager) Len() int {
	z.mu.Lock()
	defer z.mu.Unlock()
	return len(z.ticks)
}

// TickOnce runs every callback registered when it is called. Callbacks may
// register or unregister without deadlocking.
func (z *TickManager) TickOnce() {
	z.mu.Lock()
	callbacks := make([]func(), len(z.ticks))
	for i, t := range z.ticks {
		callbacks[i] = t.fn
	}
	z.mu.Unlock()
	for _, fn := range callbacks {
		fn()
	}
}

// Run ticks every interval until ctx is cancelled.
//
// Postcondition: returns ctx.Err().
func (z *TickManager) Run(ctx context.Context) error {
	ticker := time.NewTicker(z.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			z.TickOnce()
		}
	}
}
