package geom

import (
	"image"
	"math/rand/v2"
)

// Align rounds n up to the next multiple of a, which must be a power of two.
func Align(n, a int) int {
	return (n + a - 1) &^ (a - 1)
}

// Clamp maps p to the nearest point of r on each axis independently.
// r must not be empty.
func Clamp(p image.Point, r image.Rectangle) image.Point {
	return image.Point{
		X: min(max(p.X, r.Min.X), r.Max.X-1),
		Y: min(max(p.Y, r.Min.Y), r.Max.Y-1),
	}
}

// RandomPoint returns a uniformly distributed point of r. If rnd is nil the
// global source is used.
func RandomPoint(r image.Rectangle, rnd *rand.Rand) image.Point {
	intN := rand.IntN
	if rnd != nil {
		intN = rnd.IntN
	}
	return image.Point{
		X: r.Min.X + intN(r.Dx()),
		Y: r.Min.Y + intN(r.Dy()),
	}
}
