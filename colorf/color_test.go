package colorf

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#f00", color.NRGBA{0xff, 0, 0, 0xff}},
		{"#0f08", color.NRGBA{0, 0xff, 0, 0x88}},
		{"#102030", color.NRGBA{0x10, 0x20, 0x30, 0xff}},
		{"#10203040", color.NRGBA{0x10, 0x20, 0x30, 0x40}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseHex(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.NRGBA())
		})
	}
}

func TestParseHexInvalid(t *testing.T) {
	for _, in := range []string{"", "f00", "#", "#12", "#12345", "#gg0000"} {
		_, err := ParseHex(in)
		assert.Error(t, err, in)
	}
}

func TestHex(t *testing.T) {
	c, err := ParseHex("#a1b2c3d4")
	require.NoError(t, err)
	assert.Equal(t, "#a1b2c3d4", c.Hex())
}

func TestRGBAPremultiplies(t *testing.T) {
	r, g, b, a := Color{R: 1, G: 0, B: 2, A: 0.5}.RGBA()
	assert.Equal(t, uint32(0x8000), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0x8000), b)
	assert.Equal(t, uint32(0x8000), a)
}

func TestFromColor(t *testing.T) {
	c := FromColor(color.NRGBA{R: 0xff, G: 0, B: 0, A: 0x80})
	assert.InDelta(t, 1, c.R, 1e-3)
	assert.InDelta(t, 0, c.G, 1e-6)
	assert.InDelta(t, float32(0x80)/0xff, c.A, 1e-3)

	same := Color{R: 2, G: -1, B: 0.25, A: 1}
	assert.Equal(t, same, FromColor(same))
	assert.Equal(t, same, Model.Convert(same))
}

func TestOKLCh(t *testing.T) {
	white := OKLCh(1, 0, 0, 1)
	assert.InDelta(t, 1, white.R, 1e-3)
	assert.InDelta(t, 1, white.G, 1e-3)
	assert.InDelta(t, 1, white.B, 1e-3)

	black := OKLCh(0, 0, 0, 0.5)
	assert.Equal(t, Color{A: 0.5}, black)

	vivid := OKLCh(0.7, 0.4, 1, 1)
	for _, v := range []float32{vivid.R, vivid.G, vivid.B} {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}
}

func TestLerp(t *testing.T) {
	c := Black.Lerp(White, 0.5)
	assert.Equal(t, Color{0.5, 0.5, 0.5, 1}, c)
}
