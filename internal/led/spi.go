package led

import (
	"fmt"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/nrzled"
)

// DefaultFreq drives WS2812 pixels with three SPI bits per data bit.
const DefaultFreq = 2500 * physic.KiloHertz

// SPI drives a WS2812-style strip through an SPI port using NRZ encoding.
type SPI struct {
	port  spi.PortCloser
	dev   *nrzled.Dev
	count int
}

// NewSPI opens the named SPI port ("" selects the first one registered) and
// prepares an NRZ encoder for count RGB pixels.
func NewSPI(portName string, count int, freq physic.Frequency) (*SPI, error) {
	p, err := spireg.Open(portName)
	if err != nil {
		return nil, fmt.Errorf("open spi port %q: %w", portName, err)
	}
	s, err := NewSPIPort(p, count, freq)
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	return s, nil
}

// NewSPIPort wraps an already opened port.
func NewSPIPort(p spi.PortCloser, count int, freq physic.Frequency) (*SPI, error) {
	if count <= 0 {
		return nil, fmt.Errorf("invalid LED count: %d", count)
	}
	if freq == 0 {
		freq = DefaultFreq
	}
	d, err := nrzled.NewSPI(p, &nrzled.Opts{
		NumPixels: count,
		Channels:  3,
		Freq:      freq,
	})
	if err != nil {
		return nil, fmt.Errorf("nrzled: %w", err)
	}
	return &SPI{port: p, dev: d, count: count}, nil
}

// Write takes len(rgb)==3*count.
func (s *SPI) Write(rgb []byte) error {
	if len(rgb) != s.count*3 {
		return fmt.Errorf("rgb length %d does not match count %d", len(rgb), s.count)
	}
	if _, err := s.dev.Write(rgb); err != nil {
		return fmt.Errorf("spi write: %w", err)
	}
	return nil
}

// Close blanks the strip and releases the port.
func (s *SPI) Close() error {
	herr := s.dev.Halt()
	if err := s.port.Close(); err != nil {
		return err
	}
	return herr
}

func (s *SPI) String() string { return s.dev.String() }
