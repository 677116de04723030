package led

import "errors"

// ErrUnknownDriver is returned when the configured driver name is not one of
// the supported backends.
var ErrUnknownDriver = errors.New("led: unknown driver")

// Driver abstracts an LED output sink.
type Driver interface {
	// Write pushes an RGB frame to hardware. len(rgb) must be 3*N.
	Write(rgb []byte) error
	// Close releases resources.
	Close() error
}
