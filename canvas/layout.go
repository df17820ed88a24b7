package canvas

import (
	"image"

	"pixcanvas/geom"
)

const (
	// colour components plus alpha
	componentsPerPixel = 4

	chunkyBytesPerComponent = 1
	chunkyBitsPerComponent  = chunkyBytesPerComponent * 8
	chunkyBytesPerPixel     = componentsPerPixel * chunkyBytesPerComponent

	planarBytesPerComponent = 4

	rowAlignment = 16
)

// Layout describes the memory geometry of a canvas. Strides are rounded
// up to a multiple of 16 bytes; padding elements never hold pixel data.
type Layout struct {
	Width, Height int

	// PlanarStride is the distance between rows of one float plane, in
	// floats.
	PlanarStride int
	// PlanarLen is the number of floats in one plane.
	PlanarLen int

	// ChunkyStride is the distance between rows of an interleaved buffer,
	// in bytes.
	ChunkyStride int
	// ChunkyLen is the number of bytes in one interleaved buffer.
	ChunkyLen int
}

func newLayout(size image.Point) Layout {
	planarBytesPerRow := geom.Align(size.X*planarBytesPerComponent, rowAlignment)
	chunkyBytesPerRow := geom.Align(size.X*chunkyBytesPerPixel, rowAlignment)

	l := Layout{
		Width:        size.X,
		Height:       size.Y,
		PlanarStride: planarBytesPerRow / planarBytesPerComponent,
		ChunkyStride: chunkyBytesPerRow,
	}
	l.PlanarLen = l.PlanarStride * size.Y
	l.ChunkyLen = l.ChunkyStride * size.Y
	return l
}

// PlanarOffset returns the plane index of the pixel at p.
func (l Layout) PlanarOffset(p image.Point) int {
	return l.PlanarStride*p.Y + p.X
}

// ChunkyOffset returns the index of the first byte of the pixel at p in an
// interleaved buffer.
func (l Layout) ChunkyOffset(p image.Point) int {
	return l.ChunkyStride*p.Y + p.X*chunkyBytesPerPixel
}

// Bytes returns the total memory held by the six buffers.
func (l Layout) Bytes() int {
	return 4*l.PlanarLen*planarBytesPerComponent + 2*l.ChunkyLen
}
