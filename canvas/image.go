package canvas

import (
	"image"

	"pixcanvas/colorf"
)

// FromImage returns a canvas holding the straight alpha colours of img,
// translated so that img.Bounds().Min lands on the origin. It panics if img
// is empty.
func FromImage(img image.Image, opts ...Option) *Canvas {
	r := img.Bounds()
	cv := New(r.Size(), opts...)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p := image.Point{x - r.Min.X, y - r.Min.Y}
			cv.planes.set(cv.layout.PlanarOffset(p), colorf.FromColor(img.At(x, y)))
		}
	}
	return cv
}
