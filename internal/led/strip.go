package led

import (
	"fmt"

	"github.com/coreman2200/funtimes-ledstrip/internal/model"
)

// Strip is the shadow frame buffer for a fixed-length strip. Pixels are
// staged with SetPixel and sent to the driver on Flush.
//
// The first driver error is kept and every later Flush becomes a no-op; the
// owner checks Err after each burst of frames.
type Strip struct {
	drv Driver
	buf []byte
	n   int
	err error
}

// NewStrip allocates a buffer of n pixels in front of drv.
func NewStrip(drv Driver, n int) *Strip {
	return &Strip{
		drv: drv,
		buf: make([]byte, n*3),
		n:   n,
	}
}

// Len returns the number of pixels.
func (s *Strip) Len() int { return s.n }

// SetPixel stages color c at index i. Out of range indices are ignored.
func (s *Strip) SetPixel(i int, c model.RGB) {
	if i < 0 || i >= s.n {
		return
	}
	s.buf[i*3+0] = c.R
	s.buf[i*3+1] = c.G
	s.buf[i*3+2] = c.B
}

// Pixel returns the staged color at index i.
func (s *Strip) Pixel(i int) model.RGB {
	if i < 0 || i >= s.n {
		return model.Black
	}
	return model.RGB{R: s.buf[i*3+0], G: s.buf[i*3+1], B: s.buf[i*3+2]}
}

// Fill stages c on every pixel.
func (s *Strip) Fill(c model.RGB) {
	for i := 0; i < s.n; i++ {
		s.SetPixel(i, c)
	}
}

// Clear stages all pixels off.
func (s *Strip) Clear() {
	for i := range s.buf {
		s.buf[i] = 0
	}
}

// Flush writes the staged frame to the driver.
func (s *Strip) Flush() {
	if s.err != nil || s.drv == nil {
		return
	}
	if err := s.drv.Write(s.buf); err != nil {
		s.err = fmt.Errorf("led write: %w", err)
	}
}

// Err returns the first write error, if any.
func (s *Strip) Err() error { return s.err }
