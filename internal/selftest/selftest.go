// Package selftest drives fixed patterns on the strip to check wiring and
// channel order before the controller starts.
package selftest

import (
	"fmt"
	"time"

	"github.com/coreman2200/funtimes-ledstrip/internal/clock"
	"github.com/coreman2200/funtimes-ledstrip/internal/led"
	"github.com/coreman2200/funtimes-ledstrip/internal/model"
)

type Kind string

const (
	None       Kind = ""
	IndexSweep Kind = "index_sweep"
	RGBTest    Kind = "rgb_channels"
)

// ParseKind accepts the names used on the command line.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case None, IndexSweep, RGBTest:
		return k, nil
	}
	return None, fmt.Errorf("unknown self-test %q: want %s or %s", s, IndexSweep, RGBTest)
}

var channels = [3]model.RGB{{R: 255}, {G: 255}, {B: 255}}

// Runner produces one pattern frame per Step.
type Runner struct {
	kind Kind
	step int
}

func NewRunner(kind Kind) *Runner { return &Runner{kind: kind} }

func (r *Runner) Kind() Kind { return r.kind }

// Step stages the next frame on s and returns false once the pattern is
// complete. The index sweep lights each LED in turn; the channel test shows
// full red, green and blue.
func (r *Runner) Step(s *led.Strip) bool {
	s.Clear()
	switch r.kind {
	case IndexSweep:
		if r.step >= s.Len() {
			return false
		}
		s.SetPixel(r.step, model.RGB{R: 255, G: 255, B: 255}.Dim())
	case RGBTest:
		if r.step >= len(channels) {
			return false
		}
		s.Fill(channels[r.step].Dim())
	default:
		return false
	}
	r.step++
	return true
}

// Run plays kind to completion, holding each frame for hold, and leaves the
// strip dark. It returns the strip's write error, if any.
func Run(s *led.Strip, kind Kind, clk clock.Clock, hold time.Duration) error {
	r := NewRunner(kind)
	for r.Step(s) {
		s.Flush()
		clk.Sleep(hold)
	}
	s.Clear()
	s.Flush()
	return s.Err()
}
