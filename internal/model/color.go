package model

import "fmt"

// GlobalBrightness is the dimming factor applied to every channel at write
// time by all effects.
const GlobalBrightness = 0.3

// RGB is a color in the RGB color space, 8 bits per channel.
type RGB struct {
	R, G, B uint8
}

// Black is the all-off pixel.
var Black = RGB{}

// RGBFromUint converts a 0xRRGGBB integer to RGB.
func RGBFromUint(u uint32) RGB {
	return RGB{
		R: uint8(u >> 16),
		G: uint8(u >> 8),
		B: uint8(u),
	}
}

// ToUint converts the RGB color to a 0xRRGGBB integer.
func (c RGB) ToUint() uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// String implements fmt.Stringer in hexadecimal notation.
func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Scale multiplies every channel by b and truncates toward zero. The result
// is clamped to [0,255] so any b is safe, including values above 1.
func (c RGB) Scale(b float64) RGB {
	return RGB{
		R: scaleChannel(int(c.R), b),
		G: scaleChannel(int(c.G), b),
		B: scaleChannel(int(c.B), b),
	}
}

// Dim applies GlobalBrightness.
func (c RGB) Dim() RGB {
	return c.Scale(GlobalBrightness)
}

func scaleChannel(v int, b float64) uint8 {
	return Clamp(int(float64(v) * b))
}

// Clamp limits v to a valid channel value.
func Clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// Wheel maps pos onto a three-band hue ramp: green to red over [0,85),
// red to blue over [85,170) and blue to green over [170,255].
func Wheel(pos uint8) RGB {
	p := int(pos)
	switch {
	case p < 85:
		return RGB{R: uint8(p * 3), G: uint8(255 - p*3)}
	case p < 170:
		p -= 85
		return RGB{R: uint8(255 - p*3), B: uint8(p * 3)}
	default:
		p -= 170
		return RGB{G: uint8(p * 3), B: uint8(255 - p*3)}
	}
}

// Blend interpolates between a and b by frac/256 using integer arithmetic.
// frac must be in [0,256).
func Blend(a, b RGB, frac int) RGB {
	inv := 256 - frac
	return RGB{
		R: uint8((int(a.R)*inv + int(b.R)*frac) >> 8),
		G: uint8((int(a.G)*inv + int(b.G)*frac) >> 8),
		B: uint8((int(a.B)*inv + int(b.B)*frac) >> 8),
	}
}
