// Package mode holds the user's effect and color selection and renders it as
// status text.
package mode

import (
	"fmt"

	"github.com/coreman2200/funtimes-ledstrip/internal/model"
)

const (
	maxNameLen = 16
	keepLen    = 13
)

// State is the current selection. The zero value is AllOn in Red.
type State struct {
	Effect     model.EffectKind
	ColorIndex int
	LEDCount   int
}

// New returns the power-on selection for a strip of n LEDs.
func New(n int) *State {
	return &State{LEDCount: n}
}

// NextEffect advances to the following effect, wrapping after Off.
func (s *State) NextEffect() model.EffectKind {
	s.Effect = s.Effect.Next()
	return s.Effect
}

// NextColor advances the palette index, wrapping after the last color.
func (s *State) NextColor() int {
	s.ColorIndex = (s.ColorIndex + 1) % len(model.Palette)
	return s.ColorIndex
}

// Color returns the selected palette entry.
func (s *State) Color() model.NamedColor {
	return model.Palette[s.ColorIndex%len(model.Palette)]
}

// Truncate shortens names longer than 16 characters to 13 plus "...".
func Truncate(name string) string {
	r := []rune(name)
	if len(r) > maxNameLen {
		return string(r[:keepLen]) + "..."
	}
	return name
}

// StatusLines is the three-line status screen.
func (s *State) StatusLines() [3]string {
	var color string
	switch {
	case s.Effect == model.Off:
	case s.Effect.UsesColor():
		color = "Color: " + s.Color().Name
	default:
		color = "Color: " + s.Effect.ColorLabel()
	}

	status := fmt.Sprintf("LEDs: %d", s.LEDCount)
	if s.Effect == model.Off {
		status = "Status: OFF"
	}
	return [3]string{
		"Mode: " + Truncate(s.Effect.String()),
		color,
		status,
	}
}

// SplashLines is shown once at startup.
var SplashLines = [3]string{"NeoPixel", "Controller", "Starting..."}
