package compose

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/framestamp/framestamp/internal/mempool"
)

// Surface is the drawing target for one render cell. It owns its pixels
// exclusively and is never revisited after encoding.
type Surface struct {
	img *image.RGBA
}

// NewSurface allocates a surface of exactly width x height pixels.
func NewSurface(width, height int) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrSurface, width, height)
	}
	return &Surface{img: image.NewRGBA(image.Rect(0, 0, width, height))}, nil
}

// Bounds returns the surface rectangle.
func (s *Surface) Bounds() image.Rectangle { return s.img.Bounds() }

// Image exposes the backing pixels, primarily for tests.
func (s *Surface) Image() *image.RGBA { return s.img }

// Fill paints the whole surface with a solid color.
func (s *Surface) Fill(c color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillRect composites a rectangle of the given (premultiplied) color over
// the existing content. The rectangle is clipped to the surface.
func (s *Surface) FillRect(r image.Rectangle, c color.Color) {
	draw.Draw(s.img, r.Intersect(s.img.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}

// FitRect computes the letterbox placement of a srcW x srcH image inside a
// dstW x dstH frame: uniform scale by the smaller axis ratio, centered.
// The source is never cropped.
func FitRect(srcW, srcH, dstW, dstH int) image.Rectangle {
	scale := math.Min(float64(dstW)/float64(srcW), float64(dstH)/float64(srcH))
	drawW := int(math.Round(float64(srcW) * scale))
	drawH := int(math.Round(float64(srcH) * scale))
	x := (dstW - drawW) / 2
	y := (dstH - drawH) / 2
	return image.Rect(x, y, x+drawW, y+drawH)
}

// DrawImageFit scales src to fit the surface and draws it centered,
// returning the rectangle it was drawn into.
func (s *Surface) DrawImageFit(src image.Image) image.Rectangle {
	b := s.img.Bounds()
	sb := src.Bounds()
	rect := FitRect(sb.Dx(), sb.Dy(), b.Dx(), b.Dy())
	resized := imaging.Resize(src, rect.Dx(), rect.Dy(), imaging.Lanczos)
	draw.Draw(s.img, rect, resized, image.Point{}, draw.Over)
	return rect
}

// MeasureText returns the rendered advance width of text in pixels.
func MeasureText(face font.Face, text string) int {
	return font.MeasureString(face, text).Ceil()
}

// DrawText draws text with its top-left corner at (x, y). The baseline is
// offset by the face ascent so y addresses the top of the line.
func (s *Surface) DrawText(text string, face font.Face, c color.Color, x, y int) {
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

// DrawTextShadow renders a blurred black copy of text offset from (x, y),
// the drop shadow drawn before the label itself.
func (s *Surface) DrawTextShadow(text string, face font.Face, alpha float64, x, y int, blurSigma, offset float64) {
	b := s.img.Bounds()
	layer := image.NewNRGBA(b)
	off := int(math.Round(offset))
	d := &font.Drawer{
		Dst:  layer,
		Src:  image.NewUniform(withAlpha(color.NRGBA{A: 0xff}, alpha)),
		Face: face,
		Dot:  fixed.P(x+off, y+off+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)

	shadow := image.Image(layer)
	if blurSigma > 0 {
		shadow = imaging.Blur(layer, blurSigma)
	}
	draw.Draw(s.img, b, shadow, image.Point{}, draw.Over)
}

// Encode compresses the surface into the target format. Quality is a
// [0.1, 1] factor applied to lossy encoding only.
func (s *Surface) Encode(format Format, quality float64) ([]byte, error) {
	b := s.img.Bounds()
	scratch := mempool.GetBytes(b.Dx() * b.Dy() / 4)
	defer mempool.PutBytes(scratch)
	buf := bytes.NewBuffer(scratch)

	var err error
	switch format {
	case FormatPNG:
		err = imaging.Encode(buf, s.img, imaging.PNG)
	case FormatJPEG, "":
		err = imaging.Encode(buf, s.img, imaging.JPEG, imaging.JPEGQuality(qualityPercent(quality)))
	default:
		err = fmt.Errorf("unsupported format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())
	return out, nil
}

// qualityPercent maps the [0.1, 1] quality factor onto the encoder's 1-100
// scale.
func qualityPercent(q float64) int {
	if q <= 0 {
		return 100
	}
	p := int(math.Round(q * 100))
	if p < 1 {
		p = 1
	}
	if p > 100 {
		p = 100
	}
	return p
}
