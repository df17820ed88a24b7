// Package canvas implements a fixed-size pixel buffer kept in two forms:
// float32 planes per channel, which are the source of truth, and
// interleaved 8-bit ARGB derived from them on demand.
//
// A Canvas is not safe for concurrent use. Bitmap mutates the cache, so it
// needs the same exclusion as SetPoint and ClearTo.
package canvas

import (
	"fmt"
	"image"
	"log/slog"
	"math/rand/v2"

	"pixcanvas/colorf"
	"pixcanvas/geom"
)

type Canvas struct {
	// ClearColor is used by Clear. A nil ClearColor makes Clear a no-op.
	ClearColor *colorf.Color

	bounds image.Rectangle
	layout Layout

	planes      planar
	argb8       chunky
	argb8Premul chunky

	rng      Range
	adaptive bool
	workers  int
	rnd      *rand.Rand
	logger   *slog.Logger

	cache cacheState
}

type Option func(*Canvas)

// WithClearColor sets the colour used by Clear. Passing nil disables Clear.
func WithClearColor(c *colorf.Color) Option {
	return func(cv *Canvas) {
		cv.ClearColor = c
	}
}

// WithAdaptiveRange makes the byte conversion range grow to every value
// seen so far, across derivations. By default each derivation maps [0, 1].
func WithAdaptiveRange() Option {
	return func(cv *Canvas) {
		cv.adaptive = true
	}
}

// WithWorkers spreads bitmap derivation rows over n goroutines. n < 1 uses
// GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(cv *Canvas) {
		cv.workers = n
	}
}

// WithRand sets the source used by RandomPoint.
func WithRand(rnd *rand.Rand) Option {
	return func(cv *Canvas) {
		cv.rnd = rnd
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(cv *Canvas) {
		cv.logger = logger
	}
}

// New allocates a canvas of the given size. It panics unless both
// dimensions are at least 1. The clear colour defaults to opaque black; the
// pixels are not cleared.
func New(size image.Point, opts ...Option) *Canvas {
	if size.X < 1 {
		panic(fmt.Sprintf("canvas: width must be >= 1, got %d", size.X))
	}
	if size.Y < 1 {
		panic(fmt.Sprintf("canvas: height must be >= 1, got %d", size.Y))
	}

	black := colorf.Black
	l := newLayout(size)
	cv := &Canvas{
		ClearColor:  &black,
		bounds:      image.Rectangle{Max: size},
		layout:      l,
		planes:      newPlanar(l),
		argb8:       newChunky(l),
		argb8Premul: newChunky(l),
		rng:         UnitRange,
		workers:     1,
		logger:      slog.Default(),
		cache:       invalid{},
	}
	for _, opt := range opts {
		opt(cv)
	}
	return cv
}

func (cv *Canvas) Bounds() image.Rectangle { return cv.bounds }

func (cv *Canvas) Size() image.Point { return cv.bounds.Size() }

func (cv *Canvas) Layout() Layout { return cv.layout }

// Range returns the range used by the last derivation.
func (cv *Canvas) Range() Range { return cv.rng }

func (cv *Canvas) IsValid(p image.Point) bool {
	return p.In(cv.bounds)
}

// Clamp maps p to the nearest in-bounds point.
func (cv *Canvas) Clamp(p image.Point) image.Point {
	return geom.Clamp(p, cv.bounds)
}

func (cv *Canvas) RandomPoint() image.Point {
	return geom.RandomPoint(cv.bounds, cv.rnd)
}

func (cv *Canvas) checkPoint(p image.Point) {
	switch {
	case p.X < 0:
		panic(fmt.Sprintf("canvas: x must be >= 0, got %d", p.X))
	case p.Y < 0:
		panic(fmt.Sprintf("canvas: y must be >= 0, got %d", p.Y))
	case p.X >= cv.bounds.Max.X:
		panic(fmt.Sprintf("canvas: x must be < %d, got %d", cv.bounds.Max.X, p.X))
	case p.Y >= cv.bounds.Max.Y:
		panic(fmt.Sprintf("canvas: y must be < %d, got %d", cv.bounds.Max.Y, p.Y))
	}
}

// SetPoint writes c at p. It panics if p is out of bounds.
func (cv *Canvas) SetPoint(p image.Point, c colorf.Color) {
	cv.checkPoint(p)
	cv.invalidate()
	cv.planes.set(cv.layout.PlanarOffset(p), c)
}

// ColorAt returns the colour stored at p. It panics if p is out of bounds.
func (cv *Canvas) ColorAt(p image.Point) colorf.Color {
	cv.checkPoint(p)
	return cv.planes.at(cv.layout.PlanarOffset(p))
}

func (cv *Canvas) Set(x, y int, c colorf.Color) {
	cv.SetPoint(image.Point{x, y}, c)
}

func (cv *Canvas) At(x, y int) colorf.Color {
	return cv.ColorAt(image.Point{x, y})
}

// SetRow sets the points [x0, x1) of row y, in ascending order.
func (cv *Canvas) SetRow(y, x0, x1 int, c colorf.Color) {
	for x := x0; x < x1; x++ {
		cv.Set(x, y, c)
	}
}

// SetRowClosed sets the points [x0, x1] of row y.
func (cv *Canvas) SetRowClosed(y, x0, x1 int, c colorf.Color) {
	cv.SetRow(y, x0, x1+1, c)
}

// SetColumn sets the points [y0, y1) of column x, in ascending order.
func (cv *Canvas) SetColumn(x, y0, y1 int, c colorf.Color) {
	for y := y0; y < y1; y++ {
		cv.Set(x, y, c)
	}
}

// SetColumnClosed sets the points [y0, y1] of column x.
func (cv *Canvas) SetColumnClosed(x, y0, y1 int, c colorf.Color) {
	cv.SetColumn(x, y0, y1+1, c)
}

// ClearTo fills every pixel with c, regardless of ClearColor.
func (cv *Canvas) ClearTo(c colorf.Color) {
	cv.invalidate()
	cv.planes.fill(c)
}

// Clear fills the canvas with ClearColor, if set.
func (cv *Canvas) Clear() {
	if cv.ClearColor == nil {
		return
	}
	cv.ClearTo(*cv.ClearColor)
}

// Bitmap returns the premultiplied snapshot of the canvas, deriving it from
// the planes if any pixel changed since the last call.
func (cv *Canvas) Bitmap() *Bitmap {
	if v, ok := cv.cache.(valid); ok {
		return v.bitmap
	}

	if cv.adaptive {
		cv.rng.widen(&cv.planes, cv.layout)
	} else {
		cv.rng = UnitRange
	}

	cv.logger.Debug("deriving bitmap", "width", cv.layout.Width, "height", cv.layout.Height,
		"adaptive", cv.adaptive, "workers", cv.workers)

	planarToARGB8(&cv.planes, cv.argb8, cv.rng, cv.layout, cv.workers)
	premultiplyARGB8(cv.argb8, cv.argb8Premul, cv.layout, cv.workers)

	b := newBitmap(cv.argb8Premul, cv.layout)
	cv.cache = valid{bitmap: b}
	return b
}

func (cv *Canvas) invalidate() {
	cv.cache = invalid{}
}
