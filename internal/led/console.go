package led

import (
	"fmt"
	"image"
	"io"

	"periph.io/x/conn/v3/display"
	"periph.io/x/extra/devices/screen"
)

// Console renders frames as a line of colored blocks on the terminal. It is
// the stand-in when no SPI port is available.
type Console struct {
	drawer display.Drawer
	img    *image.NRGBA
	out    io.Writer
}

// NewConsole returns a console strip of count pixels. A newline is written to
// out after every frame so successive frames scroll.
func NewConsole(count int, out io.Writer) *Console {
	return &Console{
		drawer: screen.New(count),
		img:    image.NewNRGBA(image.Rect(0, 0, count, 1)),
		out:    out,
	}
}

func (c *Console) Write(rgb []byte) error {
	n := c.img.Rect.Max.X
	if len(rgb) != n*3 {
		return fmt.Errorf("rgb length %d does not match count %d", len(rgb), n)
	}
	for x := 0; x < n; x++ {
		o := c.img.PixOffset(x, 0)
		c.img.Pix[o+0] = rgb[x*3+0]
		c.img.Pix[o+1] = rgb[x*3+1]
		c.img.Pix[o+2] = rgb[x*3+2]
		c.img.Pix[o+3] = 255
	}
	if err := c.drawer.Draw(c.drawer.Bounds(), c.img, image.Point{}); err != nil {
		return err
	}
	if c.out != nil {
		fmt.Fprint(c.out, "\n")
	}
	return nil
}

func (c *Console) Close() error {
	return c.drawer.Halt()
}
