package inspect

import (
	"image"
	"image/color"

	"pixcanvas/canvas"
	"pixcanvas/colorf"
)

// Report summarizes how an image survives the trip through a canvas.
type Report struct {
	canvas.Layout

	// Mean is the average straight colour of the canvas.
	Mean colorf.Color
	// MaxDeviation is the largest per-channel difference between the
	// derived bitmap and the source converted to premultiplied 8-bit.
	MaxDeviation uint8
	Opaque       bool
}

// Analyze compares the bitmap derived from cv with img, which cv must have
// been loaded from.
func Analyze(img image.Image, cv *canvas.Canvas) Report {
	b := cv.Bitmap()
	r := img.Bounds()
	rep := Report{
		Layout: cv.Layout(),
		Opaque: b.Opaque(),
	}

	var sum [4]float64
	for y := range r.Dy() {
		for x := range r.Dx() {
			c := cv.At(x, y)
			sum[0] += float64(c.R)
			sum[1] += float64(c.G)
			sum[2] += float64(c.B)
			sum[3] += float64(c.A)

			want := color.RGBAModel.Convert(img.At(r.Min.X+x, r.Min.Y+y)).(color.RGBA)
			got := b.RGBAAt(x, y)
			rep.MaxDeviation = max(rep.MaxDeviation,
				absDiff(want.R, got.R), absDiff(want.G, got.G), absDiff(want.B, got.B), absDiff(want.A, got.A))
		}
	}

	n := float64(r.Dx() * r.Dy())
	rep.Mean = colorf.Color{
		R: float32(sum[0] / n),
		G: float32(sum[1] / n),
		B: float32(sum[2] / n),
		A: float32(sum[3] / n),
	}
	return rep
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
