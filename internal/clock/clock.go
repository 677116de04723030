// Package clock abstracts wall time so pacing sleeps can be replaced in tests.
package clock

import (
	"sync"
	"time"
)

// Clock is the time source used by the scheduler and effects.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// Real is backed by package time.
type Real struct{}

func (Real) Now() time.Time        { return time.Now() }
func (Real) Sleep(d time.Duration) { time.Sleep(d) }

// Fake is a manually advanced clock. Sleep returns immediately after moving
// the clock forward, which keeps paced animations instant in tests.
type Fake struct {
	mu    sync.Mutex
	now   time.Time
	slept time.Duration
	hooks []func(time.Time)
}

// NewFake returns a Fake clock starting at t.
func NewFake(t time.Time) *Fake {
	return &Fake{now: t}
}

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// Sleep advances the clock by d and runs any registered hooks.
func (f *Fake) Sleep(d time.Duration) {
	f.Advance(d)
	f.mu.Lock()
	f.slept += d
	f.mu.Unlock()
}

// Advance moves the clock forward without counting it as slept time.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	now := f.now
	hooks := append([]func(time.Time){}, f.hooks...)
	f.mu.Unlock()
	for _, h := range hooks {
		h(now)
	}
}

// Slept is the total duration passed to Sleep.
func (f *Fake) Slept() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.slept
}

// OnAdvance registers h to run after every advance. Tests use it to script
// pin levels against simulated time.
func (f *Fake) OnAdvance(h func(time.Time)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hooks = append(f.hooks, h)
}
