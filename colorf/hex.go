package colorf

import (
	"fmt"
	"strings"
)

// ParseHex reads #RGB, #RGBA, #RRGGBB or #RRGGBBAA.
func ParseHex(s string) (Color, error) {
	digits, ok := strings.CutPrefix(s, "#")
	if !ok {
		return Color{}, fmt.Errorf("invalid color %q: missing '#' prefix", s)
	}

	var short bool
	switch len(digits) {
	case 3, 4:
		short = true
	case 6, 8:
	default:
		return Color{}, fmt.Errorf("invalid color %q, should be #RGB, #RGBA, #RRGGBB or #RRGGBBAA", s)
	}

	var ch [4]uint8
	ch[3] = 0xff
	width := 2
	if short {
		width = 1
	}
	for i := 0; i*width < len(digits); i++ {
		part := digits[i*width : (i+1)*width]
		var v uint8
		if n, err := fmt.Sscanf(part, "%x", &v); err != nil {
			return Color{}, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n != 1 {
			return Color{}, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}
		if short {
			v |= v << 4
		}
		ch[i] = v
	}

	return Color{
		R: float32(ch[0]) / 0xff,
		G: float32(ch[1]) / 0xff,
		B: float32(ch[2]) / 0xff,
		A: float32(ch[3]) / 0xff,
	}, nil
}

// Hex formats c as #RRGGBBAA.
func (c Color) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}
