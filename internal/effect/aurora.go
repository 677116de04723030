package effect

import (
	"time"

	"github.com/coreman2200/funtimes-ledstrip/internal/led"
	"github.com/coreman2200/funtimes-ledstrip/internal/model"
)

const (
	auroraFrame = 30 * time.Millisecond
	auroraSpeed = 3
)

// auroraPalette is walked as a circular gradient, green through violet.
var auroraPalette = []model.RGB{
	{G: 255, B: 80},
	{G: 255, B: 180},
	{G: 200, B: 255},
	{G: 100, B: 255},
	{R: 80, B: 255},
	{R: 150, B: 200},
	{G: 180, B: 130},
}

// aurora drifts the palette gradient along the strip forever.
type aurora struct {
	cycle
	n      int
	offset int
}

func newAurora(p *Pacer, n int) *aurora {
	return &aurora{cycle: cycle{kind: model.Aurora, pacer: p}, n: n}
}

func (e *aurora) Reset() {
	e.cycle.Reset()
	e.offset = 0
}

// auroraAt returns the undimmed gradient color for LED i of n at offset.
func auroraAt(i, n, offset int) model.RGB {
	ring := len(auroraPalette) * 256
	pos := (i*ring/n + offset) % ring
	idx, frac := pos/256, pos%256
	return model.Blend(auroraPalette[idx], auroraPalette[(idx+1)%len(auroraPalette)], frac)
}

func (e *aurora) Step(s *led.Strip, _ model.RGB, yield YieldFunc) Status {
	ring := len(auroraPalette) * 256
	return e.run(yield, func(int) time.Duration {
		for i := 0; i < e.n; i++ {
			s.SetPixel(i, auroraAt(i, e.n, e.offset).Dim())
		}
		s.Flush()
		e.offset = (e.offset + auroraSpeed) % ring
		return auroraFrame
	})
}
