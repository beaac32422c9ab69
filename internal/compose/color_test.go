package compose

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#FF8000")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{R: 0xff, G: 0x80, B: 0x00, A: 0xff}, c)

	c, err = ParseHexColor("000000")
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{A: 0xff}, c)

	for _, bad := range []string{"", "#fff", "#GGGGGG", "#FFFFFFFF"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}

func TestPremultiply(t *testing.T) {
	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}

	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, premultiply(white, 1))
	assert.Equal(t, color.RGBA{}, premultiply(white, 0))

	half := premultiply(white, 0.5)
	assert.Equal(t, half.A, half.R)
	assert.InDelta(t, 128, int(half.A), 1)

	// Out-of-range alphas clamp instead of overflowing.
	assert.Equal(t, premultiply(white, 1), premultiply(white, 3))
	assert.Equal(t, premultiply(white, 0), premultiply(white, -1))
}

func TestWithAlpha(t *testing.T) {
	black := color.NRGBA{A: 0xff}
	assert.Equal(t, uint8(0xff), withAlpha(black, 1).A)
	assert.Equal(t, uint8(0), withAlpha(black, 0).A)
	assert.InDelta(t, 128, int(withAlpha(black, 0.5).A), 1)
}
