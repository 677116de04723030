package effect

import (
	"math/rand"
	"time"

	"github.com/coreman2200/funtimes-ledstrip/internal/led"
	"github.com/coreman2200/funtimes-ledstrip/internal/model"
)

const fireFrame = 20 * time.Millisecond

// FireParams tunes the flame simulation.
type FireParams struct {
	// Cooling controls how fast cells lose heat. Higher gives shorter flames.
	Cooling int
	// Sparking is the chance out of 256 that a new spark ignites each frame.
	Sparking int
}

// DefaultFire matches the stock flame.
var DefaultFire = FireParams{Cooling: 10, Sparking: 120}

// fire is a 1D heat simulation. Sparks ignite near the start of the strip and
// diffuse away from it while every cell cools.
type fire struct {
	cycle
	params FireParams
	rng    *rand.Rand
	heat   []int
}

func newFire(p *Pacer, n int, params FireParams, rng *rand.Rand) *fire {
	return &fire{
		cycle:  cycle{kind: model.Fire, pacer: p},
		params: params,
		rng:    rng,
		heat:   make([]int, n),
	}
}

func (e *fire) Reset() {
	e.cycle.Reset()
	clear(e.heat)
}

// advance moves the simulation one frame forward. Heat stays in [0,255].
func (e *fire) advance() {
	n := len(e.heat)
	if n == 0 {
		return
	}
	maxCool := e.params.Cooling*10/n + 2
	for i := range e.heat {
		e.heat[i] = max(0, e.heat[i]-e.rng.Intn(maxCool+1))
	}
	for i := n - 1; i >= 2; i-- {
		e.heat[i] = (e.heat[i-1] + 2*e.heat[i-2]) / 3
	}
	if e.rng.Intn(256) < e.params.Sparking {
		y := e.rng.Intn(min(7, n-1) + 1)
		e.heat[y] = min(255, e.heat[y]+160+e.rng.Intn(96))
	}
}

// heatColor maps a temperature onto black, red, yellow, white.
func heatColor(t int) model.RGB {
	switch {
	case t > 170:
		return model.RGB{R: 255, G: 255, B: model.Clamp((t - 170) * 3)}
	case t > 85:
		return model.RGB{R: 255, G: model.Clamp((t - 85) * 3)}
	default:
		return model.RGB{R: model.Clamp(t * 3)}
	}
}

func (e *fire) Step(s *led.Strip, _ model.RGB, yield YieldFunc) Status {
	return e.run(yield, func(int) time.Duration {
		e.advance()
		for i, t := range e.heat {
			s.SetPixel(i, heatColor(t).Dim())
		}
		s.Flush()
		return fireFrame
	})
}
