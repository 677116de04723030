package status

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// baseline is the distance from a text row's top to the font baseline.
const baseline = 8

// OLED is an SSD1306 panel on I2C.
type OLED struct {
	dev  *ssd1306.Dev
	img  *image1bit.VerticalLSB
	face font.Face
}

// NewOLED initializes the controller on bus. Any failure to talk to it is
// reported as ErrNoDisplay.
func NewOLED(bus i2c.Bus, w, h int) (*OLED, error) {
	dev, err := ssd1306.NewI2C(bus, &ssd1306.Opts{W: w, H: h})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDisplay, err)
	}
	return &OLED{
		dev:  dev,
		img:  image1bit.NewVerticalLSB(dev.Bounds()),
		face: basicfont.Face7x13,
	}, nil
}

// Open opens the named I2C bus ("" for the first one) and probes the panel.
// The returned closer releases the bus.
func Open(busName string, w, h int) (*OLED, func() error, error) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: i2c %q: %v", ErrNoDisplay, busName, err)
	}
	o, err := NewOLED(bus, w, h)
	if err != nil {
		bus.Close()
		return nil, nil, err
	}
	return o, bus.Close, nil
}

func (o *OLED) String() string { return o.dev.String() }

func (o *OLED) Clear() {
	clear(o.img.Pix)
}

func (o *OLED) DrawText(s string, x, y int) {
	d := font.Drawer{
		Dst:  o.img,
		Src:  image.NewUniform(image1bit.On),
		Face: o.face,
		Dot:  fixed.P(x, y+baseline),
	}
	d.DrawString(s)
}

func (o *OLED) Flush() error {
	return o.dev.Draw(o.dev.Bounds(), o.img, image.Point{})
}

// PowerOff blanks the panel. The controller keeps its memory.
func (o *OLED) PowerOff() error {
	return o.dev.Halt()
}

// PowerOn turns the panel back on. Any command after Halt re-enables the
// output, so this resends the normal (non inverted) mode.
func (o *OLED) PowerOn() error {
	return o.dev.Invert(false)
}

// Lit counts the pixels set in the back buffer.
func (o *OLED) Lit() int {
	n := 0
	for _, b := range o.img.Pix {
		for ; b != 0; b &= b - 1 {
			n++
		}
	}
	return n
}
