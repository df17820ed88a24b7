package palette

import (
	"fmt"
	"image/color"
	"os"
	"slices"
	"sort"

	"golang.org/x/image/colornames"
)

var builtins = map[string]func() color.Palette{
	"bw":     func() color.Palette { return color.Palette{color.Black, color.White} },
	"gray4":  func() color.Palette { return grays(4) },
	"gray16": func() color.Palette { return grays(16) },
	"vga16":  vga16,
	"web216": web216,
}

// Names returns the built-in palette names, sorted.
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LoadPalette resolves a built-in palette name, or reads every palette of
// a RIFF PAL file and concatenates them.
func LoadPalette(name string) (color.Palette, error) {
	if mk, ok := builtins[name]; ok {
		return mk(), nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("unknown palette %q: %w", name, err)
	}
	defer f.Close()

	pals, err := ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("could not read palette file %q: %w", name, err)
	}

	res := slices.Concat(pals...)
	if len(res) == 0 {
		return nil, fmt.Errorf("palette file %q holds no colors", name)
	}
	return res, nil
}

func grays(n int) color.Palette {
	pal := make(color.Palette, n)
	for i := range n {
		pal[i] = color.Gray{Y: uint8(i * 0xff / (n - 1))}
	}
	return pal
}

func vga16() color.Palette {
	return color.Palette{
		colornames.Black,
		colornames.Navy,
		colornames.Green,
		colornames.Teal,
		colornames.Maroon,
		colornames.Purple,
		colornames.Olive,
		colornames.Silver,
		colornames.Gray,
		colornames.Blue,
		colornames.Lime,
		colornames.Aqua,
		colornames.Red,
		colornames.Fuchsia,
		colornames.Yellow,
		colornames.White,
	}
}

func web216() color.Palette {
	pal := make(color.Palette, 0, 216)
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				pal = append(pal, color.RGBA{uint8(r * 0x33), uint8(g * 0x33), uint8(b * 0x33), 0xff})
			}
		}
	}
	return pal
}
