// Package testutil provides shared helpers for generating and persisting
// synthetic source images in tests.
package testutil

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

// ImageSize represents common image dimensions.
type ImageSize struct {
	Width  int
	Height int
}

var (
	// Common test image sizes.
	SmallSize     = ImageSize{320, 240}
	MediumSize    = ImageSize{640, 480}
	WidescreenHD  = ImageSize{1280, 720}
	PortraitCover = ImageSize{400, 600}
)

// SolidImage creates an image filled with a single color.
func SolidImage(size ImageSize, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

// GradientImage creates an image with a horizontal gray gradient, useful
// when a test needs visually distinguishable frames.
func GradientImage(size ImageSize) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size.Width, size.Height))
	for x := 0; x < size.Width; x++ {
		v := uint8(255 * x / size.Width) //nolint:gosec // G115: value bounded to [0,255]
		for y := 0; y < size.Height; y++ {
			img.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// SaveImage saves an image to the specified path, inferring the format
// from the extension.
func SaveImage(t *testing.T, img image.Image, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, imaging.Save(img, path))
}

// LoadImage loads an image from the specified path.
func LoadImage(t *testing.T, path string) image.Image {
	t.Helper()

	img, err := imaging.Open(path)
	require.NoError(t, err)
	return img
}

// WriteFrames writes numbered solid PNG frames named like "img1.png",
// "img2.png", ... into dir and returns their paths in creation order.
func WriteFrames(t *testing.T, dir string, names []string, size ImageSize) []string {
	t.Helper()

	paths := make([]string, len(names))
	for i, name := range names {
		path := filepath.Join(dir, name)
		SaveImage(t, SolidImage(size, color.RGBA{R: 40, G: 80, B: 120, A: 255}), path)
		paths[i] = path
	}
	return paths
}

// WriteCorruptImage writes a file with an image extension but garbage
// content, for decode-failure paths.
func WriteCorruptImage(t *testing.T, path string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o600))
}

// DecodePNG decodes PNG bytes produced by the composer.
func DecodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}
