package compose

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor parses a "#RRGGBB" string into an opaque NRGBA color.
func ParseHexColor(s string) (color.NRGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: want #RRGGBB", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.NRGBA{
		R: uint8(v >> 16), //nolint:gosec // G115: masked to 8 bits below 1<<24
		G: uint8(v >> 8),  //nolint:gosec
		B: uint8(v),       //nolint:gosec
		A: 0xff,
	}, nil
}

// premultiply converts a color and a [0,1] alpha into premultiplied-alpha
// RGBA, the form the background box is filled with.
func premultiply(c color.NRGBA, alpha float64) color.RGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.RGBA{
		R: uint8(float64(c.R)*alpha + 0.5), //nolint:gosec // G115: bounded by alpha in [0,1]
		G: uint8(float64(c.G)*alpha + 0.5), //nolint:gosec
		B: uint8(float64(c.B)*alpha + 0.5), //nolint:gosec
		A: uint8(255*alpha + 0.5),          //nolint:gosec
	}
}

// withAlpha returns the color with its alpha channel scaled to a [0,1] factor.
func withAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	c.A = uint8(255*alpha + 0.5) //nolint:gosec // G115: bounded by alpha in [0,1]
	return c
}
