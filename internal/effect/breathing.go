package effect

import (
	"math"
	"time"

	"github.com/coreman2200/funtimes-ledstrip/internal/led"
	"github.com/coreman2200/funtimes-ledstrip/internal/model"
)

const (
	breathFrame = 20 * time.Millisecond
	breathRate  = 0.04
)

// breathing fades the selected color in and out on a sine wave.
type breathing struct {
	cycle
	phase float64
}

func newBreathing(p *Pacer) *breathing {
	return &breathing{cycle: cycle{kind: model.Breathing, pacer: p}}
}

func (e *breathing) Reset() {
	e.cycle.Reset()
	e.phase = 0
}

func (e *breathing) Step(s *led.Strip, c model.RGB, yield YieldFunc) Status {
	return e.run(yield, func(int) time.Duration {
		level := (math.Sin(e.phase) + 1) / 2
		s.Fill(c.Scale(level * model.GlobalBrightness))
		s.Flush()
		e.phase += breathRate
		if e.phase > 2*math.Pi {
			e.phase -= 2 * math.Pi
		}
		return breathFrame
	})
}
