package app

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/coreman2200/funtimes-ledstrip/internal/clock"
	"github.com/coreman2200/funtimes-ledstrip/internal/diagnostics"
	"github.com/coreman2200/funtimes-ledstrip/internal/effect"
	"github.com/coreman2200/funtimes-ledstrip/internal/input"
	"github.com/coreman2200/funtimes-ledstrip/internal/mode"
	"github.com/coreman2200/funtimes-ledstrip/internal/power"
	"github.com/coreman2200/funtimes-ledstrip/internal/status"
)

// Conductor is the single cooperative loop. It owns every piece of mutable
// state; effects run inside Step and hand control back through the yield
// predicate.
type Conductor struct {
	Clock clock.Clock
	Eng   *effect.Engine
	In    *input.Sampler
	Power *power.Monitor
	Panel *status.Panel
	State *mode.State
	Log   zerolog.Logger
	// Diag receives the strip failure that ends Run. May be nil.
	Diag diagnostics.Reporter

	// Tick is the pause at the end of every outer iteration.
	Tick time.Duration
	// Splash is how long the startup screen stays up.
	Splash time.Duration

	pending input.Event
}

// Start blanks the strip, shows the splash and the first status screen and
// restarts the activity timer.
func (c *Conductor) Start() {
	c.Eng.Switch(c.State.Effect)
	if c.Panel.Present() {
		c.Panel.Show(mode.SplashLines)
		c.Clock.Sleep(c.Splash)
	}
	c.Panel.Show(c.State.StatusLines())
	c.Power.Reset(c.Clock.Now())
}

// RunOnce performs one outer iteration: handle input, apply a display power
// transition, step the current effect and pause. It returns the strip's
// write error, if any.
func (c *Conductor) RunOnce(ctx context.Context) error {
	c.handle(c.next())
	c.transition(c.Power.Tick(c.Clock.Now()))

	c.Eng.Step(c.State.Color().Color, c.yield(ctx))
	if err := c.Eng.Strip().Err(); err != nil {
		return err
	}
	c.Clock.Sleep(c.Tick)
	return nil
}

// Run starts the controller and loops until ctx is cancelled or the strip
// fails. The strip and display are turned off on the way out.
func (c *Conductor) Run(ctx context.Context) error {
	c.Start()
	defer c.Shutdown()
	for ctx.Err() == nil {
		if err := c.RunOnce(ctx); err != nil {
			c.Log.Error().Err(err).Msg("strip write failed")
			if c.Diag != nil {
				c.Diag.Report(diagnostics.StripFailure(err, map[string]any{
					"effect": c.State.Effect.String(),
					"leds":   c.Eng.Strip().Len(),
				}))
			}
			return err
		}
	}
	return nil
}

// Shutdown turns the LEDs off and blanks the display.
func (c *Conductor) Shutdown() {
	s := c.Eng.Strip()
	s.Clear()
	s.Flush()
	c.Panel.Sleep()
}

func (c *Conductor) next() input.Event {
	if ev := c.pending; ev != input.None {
		c.pending = input.None
		return ev
	}
	return c.In.Poll(c.Clock.Now())
}

func (c *Conductor) handle(ev input.Event) {
	if ev == input.None {
		return
	}
	if c.Power.NoteActivity(c.Clock.Now()) {
		c.Log.Debug().Stringer("event", ev).Msg("wake press")
		return
	}
	switch ev {
	case input.Button1Pressed:
		k := c.State.NextEffect()
		c.Eng.Switch(k)
		c.Log.Info().Stringer("effect", k).Msg("effect changed")
	case input.Button2Pressed:
		c.State.NextColor()
		c.Log.Info().Str("color", c.State.Color().Name).Msg("color changed")
	}
	c.Panel.Show(c.State.StatusLines())
}

func (c *Conductor) transition(t power.Transition) {
	switch t {
	case power.Sleep:
		c.Panel.Sleep()
		c.Log.Info().Msg("display sleeping")
	case power.Wake:
		c.Panel.Wake()
		c.Panel.Show(c.State.StatusLines())
		c.Log.Info().Msg("display awake")
	}
}

// yield is consulted by the running effect between sub-steps. A polled event
// is kept for the next iteration.
func (c *Conductor) yield(ctx context.Context) effect.YieldFunc {
	return func() bool {
		now := c.Clock.Now()
		if c.pending == input.None {
			c.pending = c.In.Poll(now)
		}
		return c.pending != input.None ||
			c.Power.Due(now) ||
			c.Eng.Strip().Err() != nil ||
			ctx.Err() != nil
	}
}
