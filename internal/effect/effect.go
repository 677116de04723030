// Package effect implements the strip animations as resumable state machines.
//
// Every effect is driven by repeated calls to Step. Between visual sub-steps,
// and between the slices of any pacing hold, an effect asks the scheduler's
// yield predicate whether to stop. When told to stop it returns at once and
// keeps its position so the next Step picks up where it left off.
package effect

import (
	"time"

	"github.com/coreman2200/funtimes-ledstrip/internal/clock"
	"github.com/coreman2200/funtimes-ledstrip/internal/led"
	"github.com/coreman2200/funtimes-ledstrip/internal/model"
)

// Status is the outcome of a Step call.
type Status int

const (
	// Continues means the effect stopped early and has more to show.
	Continues Status = iota
	// Finished means one full cycle completed. The next Step starts a new one.
	Finished
)

func (s Status) String() string {
	if s == Finished {
		return "finished"
	}
	return "continues"
}

// YieldFunc reports whether the running effect must hand control back.
type YieldFunc func() bool

// Effect is one animation.
type Effect interface {
	Kind() model.EffectKind
	// Reset rewinds the effect to the top of its cycle and drops any
	// accumulated state.
	Reset()
	// Step renders sub-steps onto s until the cycle completes or yield
	// returns true. c is the selected palette color; effects that do not use
	// a color ignore it.
	Step(s *led.Strip, c model.RGB, yield YieldFunc) Status
}

// DefaultSlice is the longest uninterrupted sleep an effect performs.
const DefaultSlice = 50 * time.Millisecond

// Pacer performs the deliberate waits between frames.
type Pacer struct {
	Clock clock.Clock
	// Slice bounds each sleep; yield is polled between slices.
	Slice time.Duration
}

// Hold sleeps for d in slices of at most p.Slice and polls yield between
// them. It returns the time still left and true when yield asked to stop.
func (p *Pacer) Hold(d time.Duration, yield YieldFunc) (time.Duration, bool) {
	slice := p.Slice
	if slice <= 0 {
		slice = DefaultSlice
	}
	for d > 0 {
		chunk := min(d, slice)
		p.Clock.Sleep(chunk)
		d -= chunk
		if d > 0 && yield() {
			return d, true
		}
	}
	return 0, false
}

// cycle is the program counter shared by all effects. A cycle of total
// sub-steps finishes after the hold of its last sub-step; total 0 never
// finishes.
type cycle struct {
	kind  model.EffectKind
	pacer *Pacer
	total int

	step int
	rest time.Duration
}

func (c *cycle) Kind() model.EffectKind { return c.kind }

func (c *cycle) Reset() {
	c.step = 0
	c.rest = 0
}

// run renders sub-step k with sub, which returns how long to hold the
// result on the strip.
func (c *cycle) run(yield YieldFunc, sub func(k int) time.Duration) Status {
	for {
		if c.rest > 0 {
			left, stopped := c.pacer.Hold(c.rest, yield)
			c.rest = left
			if stopped {
				return Continues
			}
		}
		if c.total > 0 && c.step >= c.total {
			c.step = 0
			return Finished
		}
		if yield() {
			return Continues
		}
		c.rest = sub(c.step)
		if c.total > 0 {
			c.step++
		}
	}
}
