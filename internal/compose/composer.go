package compose

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// Composer renders one (source image, output spec) pair into an encoded
// frame: letterbox fit on an opaque black canvas, optional label background
// box and drop shadow, then the label text.
type Composer struct {
	fonts   *FontCache
	format  Format
	quality float64
}

// NewComposer creates a composer encoding to the given format and quality.
func NewComposer(format Format, quality float64) *Composer {
	return &Composer{
		fonts:   NewFontCache(),
		format:  format,
		quality: quality,
	}
}

// Compose renders src into a spec-sized frame stamped with label.
// Failures are wrapped in ErrDecode, ErrSurface or ErrEncode.
func (c *Composer) Compose(src image.Image, spec OutputSpec, style StampStyle, label string) ([]byte, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source image", ErrDecode)
	}
	b := src.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty source image", ErrDecode)
	}

	surf, err := NewSurface(spec.Width, spec.Height)
	if err != nil {
		return nil, err
	}
	surf.Fill(color.Black)
	surf.DrawImageFit(src)

	face, err := c.fonts.Face(style.FontFamily, style.Bold, spec.FontSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSurface, err)
	}
	defer func() { _ = face.Close() }()

	textW := MeasureText(face, label)
	textH := int(math.Round(float64(spec.FontSize) * LineHeightFactor))
	x := clamp(spec.OffsetX, 0, spec.Width-1)
	y := clamp(spec.OffsetY, 0, spec.Height-1)
	pad := style.Padding

	if style.UseBackground {
		bg, err := ParseHexColor(style.BackgroundColor)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSurface, err)
		}
		box := image.Rect(x, y, x+textW+2*pad, y+textH+2*pad)
		surf.FillRect(box, premultiply(bg, style.BackgroundAlpha))
	}

	if style.UseShadow {
		scale := float64(spec.Width) / ShadowBaseWidth
		surf.DrawTextShadow(label, face, style.ShadowAlpha, x+pad, y+pad,
			ShadowBlurBase*scale, ShadowOffsetBase*scale)
	}

	txt, err := ParseHexColor(style.TextColor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSurface, err)
	}
	surf.DrawText(label, face, txt, x+pad, y+pad)

	return surf.Encode(c.format, c.quality)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
