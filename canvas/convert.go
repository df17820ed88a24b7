package canvas

import (
	"fmt"

	"github.com/chewxy/math32"

	"pixcanvas/parallel"
)

// Range is the per-channel input range mapped onto [0, 255] when the planes
// are converted to bytes. Channels are in ARGB order.
type Range struct {
	Min, Max [componentsPerPixel]float32
}

// UnitRange maps [0, 1] onto [0, 255] for every channel.
var UnitRange = Range{
	Min: [componentsPerPixel]float32{0, 0, 0, 0},
	Max: [componentsPerPixel]float32{1, 1, 1, 1},
}

// widen extends r to cover every value of the visible pixel grid.
func (r *Range) widen(p *planar, l Layout) {
	for ch, plane := range p.channels() {
		lo, hi := r.Min[ch], r.Max[ch]
		for y := range l.Height {
			row := plane[y*l.PlanarStride : y*l.PlanarStride+l.Width]
			for _, v := range row {
				if math32.IsNaN(v) || math32.IsInf(v, 0) {
					continue
				}
				lo = math32.Min(lo, v)
				hi = math32.Max(hi, v)
			}
		}
		r.Min[ch], r.Max[ch] = lo, hi
	}
}

// planarToARGB8 converts the float planes into dst, clamping every value
// into its channel range before scaling it to [0, 255].
func planarToARGB8(p *planar, dst chunky, rng Range, l Layout, workers int) {
	dst.check(l, "straight")
	planes := p.channels()
	for ch, plane := range planes {
		if len(plane) < l.PlanarLen {
			panic(fmt.Sprintf("canvas: plane %d holds %d floats, want %d", ch, len(plane), l.PlanarLen))
		}
	}

	var scale [componentsPerPixel]float32
	for ch := range componentsPerPixel {
		if d := rng.Max[ch] - rng.Min[ch]; d > 0 {
			scale[ch] = 0xff / d
		}
	}

	parallel.Rows(workers, l.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			src := y * l.PlanarStride
			out := dst.pix[y*dst.stride : y*dst.stride+l.Width*chunkyBytesPerPixel]
			for x := range l.Width {
				px := out[x*chunkyBytesPerPixel : x*chunkyBytesPerPixel+chunkyBytesPerPixel : x*chunkyBytesPerPixel+chunkyBytesPerPixel]
				for ch, plane := range planes {
					px[ch] = quantize(plane[src+x], rng.Min[ch], rng.Max[ch], scale[ch])
				}
			}
		}
	})
}

func quantize(v, lo, hi, scale float32) uint8 {
	switch {
	case !(v > lo): // NaN lands here too
		return 0
	case v >= hi:
		return uint8(math32.Round((hi - lo) * scale))
	}
	return uint8(math32.Round((v - lo) * scale))
}

// premultiplyARGB8 writes src with every colour byte scaled by the pixel's
// alpha into dst. Alpha itself is copied.
func premultiplyARGB8(src, dst chunky, l Layout, workers int) {
	src.check(l, "straight")
	dst.check(l, "premultiplied")

	parallel.Rows(workers, l.Height, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			in := src.pix[y*src.stride : y*src.stride+l.Width*chunkyBytesPerPixel]
			out := dst.pix[y*dst.stride : y*dst.stride+l.Width*chunkyBytesPerPixel]
			for i := 0; i < len(in); i += chunkyBytesPerPixel {
				a := uint32(in[i])
				out[i] = in[i]
				out[i+1] = uint8((uint32(in[i+1])*a + 127) / 0xff)
				out[i+2] = uint8((uint32(in[i+2])*a + 127) / 0xff)
				out[i+3] = uint8((uint32(in[i+3])*a + 127) / 0xff)
			}
		}
	})
}
