package effect

import (
	"errors"
	"math/rand"

	"github.com/coreman2200/funtimes-ledstrip/internal/led"
	"github.com/coreman2200/funtimes-ledstrip/internal/model"
)

// Engine owns the strip and the set of effects, one of which is active.
type Engine struct {
	strip   *led.Strip
	effects [model.EffectCount]Effect
	active  model.EffectKind

	// Last holds counters for diagnostics.
	Last struct {
		Steps    uint64
		Finished uint64
	}
}

// NewEngine builds every effect for strip. rng feeds the fire simulation.
func NewEngine(strip *led.Strip, p *Pacer, fp FireParams, rng *rand.Rand) (*Engine, error) {
	if strip == nil || strip.Len() == 0 {
		return nil, errors.New("effect: empty strip")
	}
	if p == nil || p.Clock == nil {
		return nil, errors.New("effect: pacer needs a clock")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	n := strip.Len()
	e := &Engine{strip: strip}
	e.effects = [model.EffectCount]Effect{
		model.AllOn:        newAllOn(p),
		model.RainbowCycle: newRainbowCycle(p, n),
		model.ColorWipe:    newColorWipe(p, n),
		model.TheaterChase: newTheaterChase(p, n),
		model.Pulse:        newPulse(p),
		model.RunningLight: newRunningLight(p, n),
		model.Aurora:       newAurora(p, n),
		model.Fire:         newFire(p, n, fp, rng),
		model.Breathing:    newBreathing(p),
		model.Off:          newOff(p),
	}
	return e, nil
}

// Active returns the running effect.
func (e *Engine) Active() model.EffectKind { return e.active }

// byKind returns the effect registered for k, or nil when k is out of range.
func (e *Engine) byKind(k model.EffectKind) Effect {
	if int(k) >= model.EffectCount {
		return nil
	}
	return e.effects[k]
}

// Strip exposes the frame buffer the effects draw into.
func (e *Engine) Strip() *led.Strip { return e.strip }

// Switch makes k the active effect. The strip is blanked and flushed so the
// new effect starts from a dark strip, and the effect starts a fresh cycle.
func (e *Engine) Switch(k model.EffectKind) {
	fx := e.byKind(k)
	if fx == nil {
		k, fx = model.AllOn, e.effects[model.AllOn]
	}
	e.strip.Clear()
	e.strip.Flush()
	fx.Reset()
	e.active = k
}

// Step advances the active effect until it finishes a cycle or yield asks
// it to stop.
func (e *Engine) Step(c model.RGB, yield YieldFunc) Status {
	st := e.byKind(e.active).Step(e.strip, c, yield)
	e.Last.Steps++
	if st == Finished {
		e.Last.Finished++
	}
	return st
}
