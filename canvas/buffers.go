package canvas

import (
	"fmt"

	"pixcanvas/colorf"
)

// planar holds one float32 plane per channel. All planes share the same
// stride.
type planar struct {
	alpha, red, green, blue []float32
}

func newPlanar(l Layout) planar {
	return planar{
		alpha: make([]float32, l.PlanarLen),
		red:   make([]float32, l.PlanarLen),
		green: make([]float32, l.PlanarLen),
		blue:  make([]float32, l.PlanarLen),
	}
}

func (p *planar) set(i int, c colorf.Color) {
	p.alpha[i] = c.A
	p.red[i] = c.R
	p.green[i] = c.G
	p.blue[i] = c.B
}

func (p *planar) at(i int) colorf.Color {
	return colorf.Color{
		R: p.red[i],
		G: p.green[i],
		B: p.blue[i],
		A: p.alpha[i],
	}
}

// fill overwrites every element, padding included.
func (p *planar) fill(c colorf.Color) {
	fillFloats(p.alpha, c.A)
	fillFloats(p.red, c.R)
	fillFloats(p.green, c.G)
	fillFloats(p.blue, c.B)
}

// channels returns the planes in ARGB order.
func (p *planar) channels() [componentsPerPixel][]float32 {
	return [componentsPerPixel][]float32{p.alpha, p.red, p.green, p.blue}
}

func fillFloats(s []float32, v float32) {
	if len(s) == 0 {
		return
	}
	s[0] = v
	for n := 1; n < len(s); n *= 2 {
		copy(s[n:], s[:n])
	}
}

// chunky is an interleaved ARGB-8 buffer.
type chunky struct {
	pix    []uint8
	stride int
}

func newChunky(l Layout) chunky {
	return chunky{
		pix:    make([]uint8, l.ChunkyLen),
		stride: l.ChunkyStride,
	}
}

func (c chunky) check(l Layout, what string) {
	if c.stride < l.Width*chunkyBytesPerPixel || len(c.pix) < c.stride*l.Height {
		panic(fmt.Sprintf("canvas: %s buffer too small for %dx%d (stride %d, len %d)",
			what, l.Width, l.Height, c.stride, len(c.pix)))
	}
}
