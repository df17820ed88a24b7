// Package colorf holds the normalized float colour consumed by the canvas.
package colorf

import (
	"image/color"

	"github.com/chewxy/math32"
)

// Color is a straight (non-premultiplied) colour with float32 channels that
// are conventionally in [0, 1]. Values outside that range are kept as is.
type Color struct {
	R, G, B, A float32
}

var (
	Black       = Color{0, 0, 0, 1}
	White       = Color{1, 1, 1, 1}
	Transparent = Color{}
)

var Model = color.ModelFunc(convert)

func convert(c color.Color) color.Color {
	return FromColor(c)
}

// FromColor converts c into a straight alpha Color.
func FromColor(c color.Color) Color {
	if fc, ok := c.(Color); ok {
		return fc
	}

	nc := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	return Color{
		R: float32(nc.R) / 0xffff,
		G: float32(nc.G) / 0xffff,
		B: float32(nc.B) / 0xffff,
		A: float32(nc.A) / 0xffff,
	}
}

// RGBA implements color.Color. Channels are clamped into [0, 1] and
// premultiplied.
func (c Color) RGBA() (uint32, uint32, uint32, uint32) {
	a := Unit(c.A)
	return scale16(Unit(c.R) * a), scale16(Unit(c.G) * a), scale16(Unit(c.B) * a), scale16(a)
}

// NRGBA returns c as an 8-bit straight alpha colour.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: Byte(c.R),
		G: Byte(c.G),
		B: Byte(c.B),
		A: Byte(c.A),
	}
}

// Lerp interpolates each channel between c and d.
func (c Color) Lerp(d Color, t float32) Color {
	return Color{
		R: c.R + (d.R-c.R)*t,
		G: c.G + (d.G-c.G)*t,
		B: c.B + (d.B-c.B)*t,
		A: c.A + (d.A-c.A)*t,
	}
}

// Unit clamps v into [0, 1].
func Unit(v float32) float32 {
	return math32.Max(0, math32.Min(v, 1))
}

// Byte maps v from [0, 1] to [0, 255], rounding and clamping.
func Byte(v float32) uint8 {
	return uint8(math32.Round(Unit(v) * 0xff))
}

func scale16(v float32) uint32 {
	return uint32(math32.Round(v * 0xffff))
}
