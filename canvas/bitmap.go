package canvas

import (
	"fmt"
	"image"
	"image/color"
)

var _ image.Image = (*Bitmap)(nil)

// Bitmap is a renderable snapshot of a canvas: alpha-premultiplied 8-bit
// samples in A, R, G, B byte order, origin at the top-left corner.
//
// A Bitmap owns its pixels. It keeps showing the content it was derived from
// after the canvas is mutated.
type Bitmap struct {
	// Pix holds the pixels. The pixel at (x, y) starts at
	// Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*4].
	Pix []uint8
	// Stride is the Pix stride (in bytes) between vertically adjacent
	// pixels. It may exceed 4*Rect.Dx().
	Stride int
	// Rect is the bitmap's bounds.
	Rect image.Rectangle
}

// newBitmap copies the premultiplied buffer into a new Bitmap.
func newBitmap(src chunky, l Layout) *Bitmap {
	src.check(l, "premultiplied")
	if l.Width < 1 || l.Height < 1 {
		panic(fmt.Sprintf("canvas: cannot build a %dx%d bitmap", l.Width, l.Height))
	}

	pix := make([]uint8, src.stride*l.Height)
	copy(pix, src.pix)
	return &Bitmap{
		Pix:    pix,
		Stride: src.stride,
		Rect:   image.Rect(0, 0, l.Width, l.Height),
	}
}

func (b *Bitmap) Bounds() image.Rectangle { return b.Rect }

// ColorModel returns color.RGBAModel; both are premultiplied.
func (b *Bitmap) ColorModel() color.Model { return color.RGBAModel }

func (b *Bitmap) At(x, y int) color.Color {
	return b.RGBAAt(x, y)
}

func (b *Bitmap) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{x, y}.In(b.Rect)) {
		return color.RGBA{}
	}
	i := b.PixOffset(x, y)
	s := b.Pix[i : i+4 : i+4]
	return color.RGBA{R: s[1], G: s[2], B: s[3], A: s[0]}
}

// PixOffset returns the index of the first element of Pix that corresponds
// to the pixel at (x, y).
func (b *Bitmap) PixOffset(x, y int) int {
	return (y-b.Rect.Min.Y)*b.Stride + (x-b.Rect.Min.X)*chunkyBytesPerPixel
}

func (b *Bitmap) BitsPerComponent() int   { return chunkyBitsPerComponent }
func (b *Bitmap) ComponentsPerPixel() int { return componentsPerPixel }
func (b *Bitmap) Premultiplied() bool     { return true }

// Opaque reports whether every pixel has full alpha.
func (b *Bitmap) Opaque() bool {
	for y := range b.Rect.Dy() {
		row := b.Pix[y*b.Stride : y*b.Stride+b.Rect.Dx()*chunkyBytesPerPixel]
		for i := 0; i < len(row); i += chunkyBytesPerPixel {
			if row[i] != 0xff {
				return false
			}
		}
	}
	return true
}

// RGBA returns the bitmap reordered into a tightly packed *image.RGBA, the
// form expected by the standard encoders and x/image/draw fast paths.
func (b *Bitmap) RGBA() *image.RGBA {
	w, h := b.Rect.Dx(), b.Rect.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		in := b.Pix[y*b.Stride : y*b.Stride+w*chunkyBytesPerPixel]
		out := dst.Pix[y*dst.Stride : y*dst.Stride+w*4]
		for i := 0; i < len(in); i += chunkyBytesPerPixel {
			out[i], out[i+1], out[i+2], out[i+3] = in[i+1], in[i+2], in[i+3], in[i]
		}
	}
	return dst
}
