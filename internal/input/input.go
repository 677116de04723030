// Package input turns raw button levels into debounced press events.
package input

import (
	"fmt"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// DefaultDebounce is the minimum spacing between accepted presses of one
// button.
const DefaultDebounce = 200 * time.Millisecond

// Event is the outcome of one poll.
type Event int

const (
	None Event = iota
	// Button1Pressed is the mode button.
	Button1Pressed
	// Button2Pressed is the color button.
	Button2Pressed
)

func (e Event) String() string {
	switch e {
	case Button1Pressed:
		return "button1"
	case Button2Pressed:
		return "button2"
	}
	return "none"
}

type button struct {
	pin      gpio.PinIn
	last     gpio.Level
	accepted time.Time
	ever     bool
}

// Sampler reads two active-low buttons. Each button keeps its last raw level
// and the time of its last accepted press.
type Sampler struct {
	buttons  [2]button
	debounce time.Duration
}

// NewSampler watches mode and color. Both buttons start released.
func NewSampler(mode, color gpio.PinIn, debounce time.Duration) *Sampler {
	return &Sampler{
		buttons: [2]button{
			{pin: mode, last: gpio.High},
			{pin: color, last: gpio.High},
		},
		debounce: debounce,
	}
}

// Poll samples the buttons once and returns at most one press. A press is a
// High to Low transition at least the debounce interval after the button's
// previous accepted press. When the mode button fires the color button is not
// sampled, so a simultaneous color press is reported by the next Poll.
func (s *Sampler) Poll(now time.Time) Event {
	for i := range s.buttons {
		b := &s.buttons[i]
		lvl := b.pin.Read()
		edge := b.last == gpio.High && lvl == gpio.Low
		b.last = lvl
		if !edge {
			continue
		}
		if b.ever && now.Sub(b.accepted) < s.debounce {
			continue
		}
		b.ever = true
		b.accepted = now
		return Event(i + 1)
	}
	return None
}

// OpenPin looks up name in the GPIO registry and configures it as an input
// with the internal pull-up enabled.
func OpenPin(name string) (gpio.PinIO, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("gpio %q: no such pin", name)
	}
	if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("gpio %s: %w", name, err)
	}
	return p, nil
}
