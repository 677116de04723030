package led

import (
	"errors"

	"github.com/coreman2200/funtimes-ledstrip/internal/model"
)

// ErrInjected is returned by a Recorder once FailAfter frames were written.
var ErrInjected = errors.New("led: injected write failure")

// Recorder keeps every frame written to it, useful for headless runs and
// tests.
type Recorder struct {
	Frames [][]byte
	Closed bool
	// FailAfter makes Write fail once this many frames were recorded. Zero
	// disables it.
	FailAfter int
}

func (r *Recorder) Write(rgb []byte) error {
	if r.FailAfter > 0 && len(r.Frames) >= r.FailAfter {
		return ErrInjected
	}
	r.Frames = append(r.Frames, append([]byte(nil), rgb...))
	return nil
}

func (r *Recorder) Close() error {
	r.Closed = true
	return nil
}

// Count is the number of frames recorded.
func (r *Recorder) Count() int { return len(r.Frames) }

// Last returns the most recent frame decoded into pixels.
func (r *Recorder) Last() []model.RGB {
	if len(r.Frames) == 0 {
		return nil
	}
	return Decode(r.Frames[len(r.Frames)-1])
}

// Decode splits a raw frame into pixels.
func Decode(rgb []byte) []model.RGB {
	out := make([]model.RGB, len(rgb)/3)
	for i := range out {
		out[i] = model.RGB{R: rgb[i*3], G: rgb[i*3+1], B: rgb[i*3+2]}
	}
	return out
}

// Null discards every frame.
type Null struct{}

func (Null) Write([]byte) error { return nil }
func (Null) Close() error       { return nil }
