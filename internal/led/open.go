package led

import (
	"fmt"
	"io"

	"periph.io/x/conn/v3/physic"
)

// Options selects and configures a backend.
type Options struct {
	// Driver is one of "spi", "console" or "null".
	Driver  string
	SPIPort string
	Count   int
	Freq    physic.Frequency
	// Console receives the line breaks between console frames.
	Console io.Writer
}

// Open builds the driver named by o.Driver.
func Open(o Options) (Driver, error) {
	switch o.Driver {
	case "spi":
		return NewSPI(o.SPIPort, o.Count, o.Freq)
	case "console":
		return NewConsole(o.Count, o.Console), nil
	case "null":
		return Null{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, o.Driver)
	}
}
