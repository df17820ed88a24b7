// based on:
// https://bottosson.github.io/posts/oklab/

package colorf

import "github.com/chewxy/math32"

// OKLCh returns the sRGB colour for the given OKLCh coordinates. Hue is in
// radians. Channels that fall outside the sRGB gamut are clamped.
func OKLCh(l, c, h, alpha float32) Color {
	s, co := math32.Sincos(h)
	return OKLab(l, c*co, c*s, alpha)
}

// OKLab returns the sRGB colour for the given OKLab coordinates.
func OKLab(L, a, b, alpha float32) Color {
	l := L + 0.3963377774*a + 0.2158037573*b
	l = l * l * l
	m := L - 0.1055613458*a - 0.0638541728*b
	m = m * m * m
	s := L - 0.0894841775*a - 1.2914855480*b
	s = s * s * s

	return Color{
		R: fromLinear(Unit(+4.0767416621*l - 3.3077115913*m + 0.2309699292*s)),
		G: fromLinear(Unit(-1.2684380046*l + 2.6097574011*m - 0.3413193965*s)),
		B: fromLinear(Unit(-0.0041960863*l - 0.7034186147*m + 1.7076147010*s)),
		A: alpha,
	}
}

const pow float32 = 1.0 / 2.4

func fromLinear(x float32) float32 {
	if x >= 0.0031308 {
		return math32.Pow(x, pow)*1.055 - 0.055
	}
	return x * 12.92
}
