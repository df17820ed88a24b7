package render

import (
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pixcanvas/colorf"
	"pixcanvas/palette"
	"pixcanvas/parallel"
)

const testScene = `
width: 8
height: 4
clear: "#000"
seed: 42
ops:
  - op: clear
  - op: row
    y: 1
    from: 2
    to: 5
    color: "#f00"
  - op: column
    x: 7
    from: 0
    to: 4
    color: "#00f8"
  - op: point
    x: 0
    y: 3
    color: "#ffffff"
  - op: rect
    x: 0
    y: 0
    w: 2
    h: 1
    color: "#0f0"
`

func TestLoadScene(t *testing.T) {
	s, err := LoadScene(strings.NewReader(testScene))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(8, 4), s.Size())
	assert.Len(t, s.Ops, 5)

	b := s.NewCanvas().Bitmap()
	assert.Equal(t, color.RGBA{A: 255}, b.RGBAAt(1, 1))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, b.RGBAAt(2, 1))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, b.RGBAAt(4, 1))
	assert.Equal(t, color.RGBA{A: 255}, b.RGBAAt(5, 1))
	assert.Equal(t, color.RGBA{B: 0x88, A: 0x88}, b.RGBAAt(7, 2))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, b.RGBAAt(0, 3))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, b.RGBAAt(1, 0))
	assert.Equal(t, color.RGBA{A: 255}, b.RGBAAt(2, 0))
}

func TestLoadSceneErrors(t *testing.T) {
	tests := map[string]string{
		"size":          "width: 0\nheight: 3\n",
		"unknown field": "width: 2\nheight: 2\nbogus: 1\n",
		"unknown op":    "width: 2\nheight: 2\nops: [{op: spiral}]\n",
		"clear color":   "width: 2\nheight: 2\nclear: red\n",
		"point":         "width: 2\nheight: 2\nops: [{op: point, x: 2, y: 0, color: '#fff'}]\n",
		"row":           "width: 2\nheight: 2\nops: [{op: row, y: 0, from: 1, to: 3, color: '#fff'}]\n",
		"column":        "width: 2\nheight: 2\nops: [{op: column, x: -1, from: 0, to: 1, color: '#fff'}]\n",
		"rect":          "width: 2\nheight: 2\nops: [{op: rect, x: 1, y: 1, w: 2, h: 1, color: '#fff'}]\n",
		"checker":       "width: 2\nheight: 2\nops: [{op: checker, size: 0, color: '#fff', alt: '#000'}]\n",
		"axis":          "width: 2\nheight: 2\nops: [{op: hue, axis: z}]\n",
		"color":         "width: 2\nheight: 2\nops: [{op: fill}]\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadScene(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestSceneWithoutClearKeepsPixels(t *testing.T) {
	s := &Scene{Width: 2, Height: 2, Ops: []Op{
		{Op: "fill", Color: "#ff0000"},
		{Op: "clear"},
	}}
	require.NoError(t, s.Validate())
	cv := s.NewCanvas()
	assert.Equal(t, colorf.Color{R: 1, A: 1}, cv.At(1, 1))
}

func TestSceneOps(t *testing.T) {
	s := &Scene{Width: 4, Height: 3, Seed: 9, Ops: []Op{
		{Op: "checker", Size: 1, Color: "#fff", Alt: "#000"},
		{Op: "gradient", Axis: "y", Color: "#000", Alt: "#fff"},
	}}
	require.NoError(t, s.Validate())
	cv := s.NewCanvas()
	assert.Equal(t, colorf.Color{R: 0, G: 0, B: 0, A: 1}, cv.At(3, 0))
	assert.Equal(t, colorf.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}, cv.At(0, 1))
	assert.Equal(t, colorf.Color{R: 1, G: 1, B: 1, A: 1}, cv.At(2, 2))

	checker := &Scene{Width: 4, Height: 4, Ops: []Op{{Op: "checker", Size: 2, Color: "#fff", Alt: "#000"}}}
	require.NoError(t, checker.Validate())
	cv = checker.NewCanvas()
	assert.Equal(t, colorf.White, cv.At(1, 1))
	assert.Equal(t, colorf.Black, cv.At(2, 1))
	assert.Equal(t, colorf.White, cv.At(3, 3))

	hue := &Scene{Width: 5, Height: 2, Ops: []Op{{Op: "hue", L: 0.7, C: 0.1}}}
	require.NoError(t, hue.Validate())
	cv = hue.NewCanvas()
	assert.Equal(t, float32(1), cv.At(2, 1).A)
	first, last := cv.At(0, 0), cv.At(4, 0)
	assert.InDelta(t, first.R, last.R, 1e-4, "a full turn ends on the starting hue")
	assert.InDelta(t, first.G, last.G, 1e-4)
	assert.InDelta(t, first.B, last.B, 1e-4)
	assert.NotEqual(t, cv.At(0, 0), cv.At(2, 0))
}

func TestRandomOpIsSeeded(t *testing.T) {
	mk := func(seed uint64) []uint8 {
		s := &Scene{Width: 16, Height: 16, Clear: "#000", Seed: seed, Ops: []Op{
			{Op: "clear"},
			{Op: "random", Count: 20, Color: "#fff"},
		}}
		require.NoError(t, s.Validate())
		return s.NewCanvas().Bitmap().Pix
	}
	assert.Equal(t, mk(3), mk(3))
	assert.NotEqual(t, mk(3), mk(4))
}

func TestPatternScene(t *testing.T) {
	for _, pattern := range []string{"solid", "gradient", "hue", "checker", "noise"} {
		s, err := PatternScene(pattern, image.Pt(16, 8), "#123", 1)
		require.NoError(t, err, pattern)
		b := s.NewCanvas().Bitmap()
		assert.Equal(t, image.Rect(0, 0, 16, 8), b.Bounds(), pattern)
	}

	_, err := PatternScene("plaid", image.Pt(4, 4), "#000", 1)
	assert.Error(t, err)
	_, err = PatternScene("solid", image.Pt(4, 4), "black", 1)
	assert.Error(t, err)
}

func TestFit(t *testing.T) {
	src := image.Rect(0, 0, 200, 100)

	sr, ds, dr := fit(src, 100, 100, true, false)
	assert.Equal(t, image.Rect(50, 0, 150, 100), sr)
	assert.Equal(t, image.Rect(0, 0, 100, 100), ds)
	assert.Equal(t, ds, dr)

	sr, ds, dr = fit(src, 100, 100, false, false)
	assert.Equal(t, src, sr)
	assert.Equal(t, image.Rect(0, 0, 100, 50), ds)
	assert.Equal(t, ds, dr)

	_, ds, dr = fit(src, 100, 100, false, true)
	assert.Equal(t, image.Rect(0, 0, 100, 100), ds)
	assert.Equal(t, image.Rect(0, 25, 100, 75), dr)

	_, ds, _ = fit(src, 50, 0, false, false)
	assert.Equal(t, image.Rect(0, 0, 50, 25), ds)
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]string{
		"a.png": "png", "b.PNG": "png", "c.jpg": "jpeg", "d.jpeg": "jpeg",
		"e.tif": "tiff", "f.tiff": "tiff", "g.bmp": "bmp", "h.gif": "gif",
	} {
		got, err := FormatOf(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
	_, err := FormatOf("noext")
	assert.Error(t, err)
}

func TestSave(t *testing.T) {
	s, err := PatternScene("checker", image.Pt(16, 16), "#000", 1)
	require.NoError(t, err)
	img := s.NewCanvas().Bitmap().RGBA()
	dir := t.TempDir()

	for _, format := range Formats {
		path := filepath.Join(dir, "out."+format)
		require.NoError(t, Save(img, format, path), format)

		f, err := os.Open(path)
		require.NoError(t, err)
		cfg, name, err := image.DecodeConfig(f)
		require.NoError(t, f.Close())
		require.NoError(t, err, format)
		assert.Equal(t, format, name)
		assert.Equal(t, 16, cfg.Width)
		assert.Equal(t, 16, cfg.Height)
	}

	assert.Error(t, Save(img, "xpm", filepath.Join(dir, "out.xpm")))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, len(Formats), "failed saves leave no temporary files")
}

func TestRender(t *testing.T) {
	pal, err := palette.LoadPalette("bw")
	require.NoError(t, err)

	cmd := &CLICmd{
		Out:     "x.png",
		Resize:  true,
		Width:   8,
		Height:  8,
		Palette: "bw",
		Pal:     pal,
	}
	cmd.scene, err = PatternScene("gradient", image.Pt(32, 16), "#000", 1)
	require.NoError(t, err)

	img := cmd.Render(slog.Default(), 2)
	p, ok := img.(*image.Paletted)
	require.True(t, ok)
	assert.Equal(t, image.Rect(0, 0, 8, 4), p.Bounds())
	assert.Equal(t, color.Gray{}, color.GrayModel.Convert(p.At(0, 0)))
	assert.Equal(t, color.Gray{Y: 255}, color.GrayModel.Convert(p.At(7, 0)))
}

func TestRunWritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "canvas.png")
	cmd := &CLICmd{Out: out, Size: "12x6", Clear: "#336699", Pattern: "solid"}
	require.NoError(t, cmd.Validate(nil))
	assert.Equal(t, "png", cmd.Format)

	require.NoError(t, cmd.Run(startPool(t)))

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 12, 6), img.Bounds())
	assert.Equal(t, color.RGBAModel.Convert(color.RGBA{0x33, 0x66, 0x99, 0xff}), color.RGBAModel.Convert(img.At(5, 5)))
}

func TestValidate(t *testing.T) {
	tests := map[string]CLICmd{
		"format":        {Out: "a.xyz", Size: "4x4", Clear: "#000", Pattern: "solid"},
		"forced format": {Out: "a.png", Format: "webp", Size: "4x4", Clear: "#000", Pattern: "solid"},
		"size":          {Out: "a.png", Size: "4by4", Clear: "#000", Pattern: "solid"},
		"zero size":     {Out: "a.png", Size: "0x4", Clear: "#000", Pattern: "solid"},
		"resize":        {Out: "a.png", Size: "4x4", Clear: "#000", Pattern: "solid", Resize: true},
		"fill":          {Out: "a.png", Size: "4x4", Clear: "#000", Pattern: "solid", Fill: "blue"},
		"palette":       {Out: "a.png", Size: "4x4", Clear: "#000", Pattern: "solid", Palette: "nope-not-a-file"},
		"scene":         {Out: "a.png", Scene: filepath.Join(t.TempDir(), "missing.yaml")},
	}
	for name, cmd := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, cmd.Validate(nil))
		})
	}

	scene := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(scene, []byte(testScene), 0o644))
	cmd := CLICmd{Out: "a.bmp", Scene: scene, Fill: "#fff", Palette: "vga16"}
	require.NoError(t, cmd.Validate(nil))
	assert.Equal(t, "bmp", cmd.Format)
	assert.Equal(t, image.Pt(8, 4), cmd.scene.Size())
	assert.NotNil(t, cmd.FillColor)
	assert.Len(t, cmd.Pal, 16)
}

func startPool(t *testing.T) *parallel.Pool {
	pool := parallel.Start(2)
	t.Cleanup(func() { pool.Wait(true) })
	return pool
}
