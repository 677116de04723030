package effect

import (
	"time"

	"github.com/coreman2200/funtimes-ledstrip/internal/led"
	"github.com/coreman2200/funtimes-ledstrip/internal/model"
)

const (
	allOnHold    = 50 * time.Millisecond
	offHold      = 100 * time.Millisecond
	wipeStep     = 50 * time.Millisecond
	wipeHold     = 500 * time.Millisecond
	chaseHold    = 50 * time.Millisecond
	chaseCycles  = 10
	chasePhases  = 3
	pulseSteps   = 50
	pulseStep    = 20 * time.Millisecond
	runnerStep   = 50 * time.Millisecond
	rainbowStep  = 10 * time.Millisecond
	rainbowCount = 255
)

// allOn fills the strip with the selected color.
type allOn struct{ cycle }

func newAllOn(p *Pacer) *allOn {
	return &allOn{cycle{kind: model.AllOn, pacer: p, total: 1}}
}

func (e *allOn) Step(s *led.Strip, c model.RGB, yield YieldFunc) Status {
	return e.run(yield, func(int) time.Duration {
		s.Fill(c.Dim())
		s.Flush()
		return allOnHold
	})
}

// off keeps the strip dark.
type off struct{ cycle }

func newOff(p *Pacer) *off {
	return &off{cycle{kind: model.Off, pacer: p, total: 1}}
}

func (e *off) Step(s *led.Strip, _ model.RGB, yield YieldFunc) Status {
	return e.run(yield, func(int) time.Duration {
		s.Clear()
		s.Flush()
		return offHold
	})
}

// colorWipe lights the strip one LED at a time, holds, then turns it off the
// same way.
type colorWipe struct {
	cycle
	n int
}

func newColorWipe(p *Pacer, n int) *colorWipe {
	return &colorWipe{cycle: cycle{kind: model.ColorWipe, pacer: p, total: 2*n + 1}, n: n}
}

func (e *colorWipe) Step(s *led.Strip, c model.RGB, yield YieldFunc) Status {
	return e.run(yield, func(k int) time.Duration {
		switch {
		case k < e.n:
			s.SetPixel(k, c.Dim())
			s.Flush()
			return wipeStep
		case k == e.n:
			return wipeHold
		default:
			s.SetPixel(k-e.n-1, model.Black)
			s.Flush()
			return wipeStep
		}
	})
}

// theaterChase marches every third LED along the strip.
type theaterChase struct {
	cycle
	n int
}

func newTheaterChase(p *Pacer, n int) *theaterChase {
	return &theaterChase{
		cycle: cycle{kind: model.TheaterChase, pacer: p, total: chaseCycles * chasePhases * 2},
		n:     n,
	}
}

func (e *theaterChase) Step(s *led.Strip, c model.RGB, yield YieldFunc) Status {
	return e.run(yield, func(k int) time.Duration {
		if k%2 == 1 {
			s.Clear()
			s.Flush()
			return chaseHold
		}
		q := (k / 2) % chasePhases
		for i := 0; i+q < e.n; i += chasePhases {
			s.SetPixel(i+q, c.Dim())
		}
		s.Flush()
		return chaseHold
	})
}

// pulse ramps the whole strip up and back down.
type pulse struct{ cycle }

func newPulse(p *Pacer) *pulse {
	return &pulse{cycle{kind: model.Pulse, pacer: p, total: 2 * pulseSteps}}
}

// pulseLevel is the envelope at sub-step k: 0..49 going up, then 50..1.
func pulseLevel(k int) float64 {
	s := k
	if k >= pulseSteps {
		s = 2*pulseSteps - k
	}
	return float64(s) / pulseSteps * 0.5
}

func (e *pulse) Step(s *led.Strip, c model.RGB, yield YieldFunc) Status {
	return e.run(yield, func(k int) time.Duration {
		s.Fill(c.Scale(pulseLevel(k) * model.GlobalBrightness))
		s.Flush()
		return pulseStep
	})
}

// runningLight bounces a single LED from one end to the other and back.
type runningLight struct {
	cycle
	n int
}

func newRunningLight(p *Pacer, n int) *runningLight {
	return &runningLight{cycle: cycle{kind: model.RunningLight, pacer: p, total: 2 * n}, n: n}
}

func (e *runningLight) Step(s *led.Strip, c model.RGB, yield YieldFunc) Status {
	return e.run(yield, func(k int) time.Duration {
		i := k
		if k >= e.n {
			i = 2*e.n - 1 - k
		}
		s.Clear()
		s.SetPixel(i, c.Dim())
		s.Flush()
		return runnerStep
	})
}

// rainbowCycle rotates the color wheel along the strip, 255 frames per cycle.
type rainbowCycle struct {
	cycle
	n int
}

func newRainbowCycle(p *Pacer, n int) *rainbowCycle {
	return &rainbowCycle{cycle: cycle{kind: model.RainbowCycle, pacer: p, total: rainbowCount}, n: n}
}

func (e *rainbowCycle) Step(s *led.Strip, _ model.RGB, yield YieldFunc) Status {
	return e.run(yield, func(j int) time.Duration {
		for i := 0; i < e.n; i++ {
			pos := (i*256/e.n + j) & 255
			s.SetPixel(i, model.Wheel(uint8(pos)).Dim())
		}
		s.Flush()
		return rainbowStep
	})
}
