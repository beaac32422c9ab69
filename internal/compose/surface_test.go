package compose

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSurface_InvalidDimensions(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, 5}, {5, -1}} {
		_, err := NewSurface(dims[0], dims[1])
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSurface)
	}
}

func TestFitRect(t *testing.T) {
	tests := []struct {
		name                   string
		srcW, srcH, dstW, dstH int
		want                   image.Rectangle
	}{
		{"wide into wide frame", 960, 540, 1920, 1080, image.Rect(0, 0, 1920, 1080)},
		{"wide into portrait frame", 1000, 500, 500, 750, image.Rect(0, 250, 500, 500)},
		{"tall into landscape frame", 500, 1000, 1920, 1080, image.Rect(690, 0, 1230, 1080)},
		{"no crop when same shape", 192, 108, 1920, 1080, image.Rect(0, 0, 1920, 1080)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FitRect(tt.srcW, tt.srcH, tt.dstW, tt.dstH))
		})
	}
}

func TestFitRect_Invariants(t *testing.T) {
	cases := [][4]int{
		{640, 480, 1920, 1080},
		{4000, 3000, 500, 750},
		{31, 17, 1920, 1080},
		{300, 300, 500, 750},
	}
	for _, c := range cases {
		srcW, srcH, dstW, dstH := c[0], c[1], c[2], c[3]
		r := FitRect(srcW, srcH, dstW, dstH)

		// Inside the frame.
		assert.True(t, r.In(image.Rect(0, 0, dstW, dstH)), "fit %v escapes %dx%d", r, dstW, dstH)

		// Aspect ratio preserved within rounding tolerance.
		srcRatio := float64(srcW) / float64(srcH)
		dstRatio := float64(r.Dx()) / float64(r.Dy())
		assert.InDelta(t, srcRatio, dstRatio, srcRatio*0.05)

		// Centered within one pixel.
		assert.LessOrEqual(t, abs((dstW-r.Dx())-2*r.Min.X), 1)
		assert.LessOrEqual(t, abs((dstH-r.Dy())-2*r.Min.Y), 1)
	}
}

func TestSurface_FillAndFillRect(t *testing.T) {
	surf, err := NewSurface(10, 10)
	require.NoError(t, err)

	surf.Fill(color.Black)
	surf.FillRect(image.Rect(2, 2, 5, 5), color.RGBA{R: 255, A: 255})

	img := surf.Image()
	assert.Equal(t, color.RGBA{A: 255}, img.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{R: 255, A: 255}, img.RGBAAt(3, 3))

	// Clipped fill must not panic or escape bounds.
	surf.FillRect(image.Rect(8, 8, 20, 20), color.RGBA{G: 255, A: 255})
	assert.Equal(t, color.RGBA{G: 255, A: 255}, img.RGBAAt(9, 9))
}

func TestSurface_EncodeFormats(t *testing.T) {
	surf, err := NewSurface(16, 16)
	require.NoError(t, err)
	surf.Fill(color.Black)

	jpg, err := surf.Encode(FormatJPEG, 0.8)
	require.NoError(t, err)
	_, format, err := image.Decode(bytes.NewReader(jpg))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)

	png, err := surf.Encode(FormatPNG, 0.8)
	require.NoError(t, err)
	_, format, err = image.Decode(bytes.NewReader(png))
	require.NoError(t, err)
	assert.Equal(t, "png", format)

	_, err = surf.Encode(Format("gif"), 0.8)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEncode)
}

func TestQualityPercent(t *testing.T) {
	assert.Equal(t, 80, qualityPercent(0.8))
	assert.Equal(t, 10, qualityPercent(0.1))
	assert.Equal(t, 100, qualityPercent(1.0))
	assert.Equal(t, 100, qualityPercent(0))
	assert.Equal(t, 100, qualityPercent(2))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
