package compose

import "errors"

// Cell-local failure kinds. The batch runner converts these into
// error-populated render cells instead of aborting the run.
var (
	// ErrDecode indicates a source raster could not be decoded.
	ErrDecode = errors.New("source raster could not be decoded")
	// ErrSurface indicates a drawing surface could not be allocated.
	ErrSurface = errors.New("drawing surface could not be allocated")
	// ErrEncode indicates a finished surface could not be encoded.
	ErrEncode = errors.New("surface could not be encoded")
)

// OutputSpec describes one target rendition: canvas size plus label
// placement and typography for that size. Shared read-only across all
// items in a run.
type OutputSpec struct {
	Key      string `mapstructure:"key" yaml:"key" json:"key"`
	Width    int    `mapstructure:"width" yaml:"width" json:"width"`
	Height   int    `mapstructure:"height" yaml:"height" json:"height"`
	FontSize int    `mapstructure:"font_size" yaml:"font_size" json:"font_size"`
	OffsetX  int    `mapstructure:"offset_x" yaml:"offset_x" json:"offset_x"`
	OffsetY  int    `mapstructure:"offset_y" yaml:"offset_y" json:"offset_y"`
	Label    string `mapstructure:"label" yaml:"label" json:"label"`
}

// StampStyle holds the label typography and decoration settings for a run.
// Immutable for the duration of a run.
type StampStyle struct {
	FontFamily      string  `mapstructure:"font_family" yaml:"font_family" json:"font_family"`
	Bold            bool    `mapstructure:"bold" yaml:"bold" json:"bold"`
	TextColor       string  `mapstructure:"text_color" yaml:"text_color" json:"text_color"`
	UseBackground   bool    `mapstructure:"use_background" yaml:"use_background" json:"use_background"`
	BackgroundColor string  `mapstructure:"background_color" yaml:"background_color" json:"background_color"`
	BackgroundAlpha float64 `mapstructure:"background_alpha" yaml:"background_alpha" json:"background_alpha"`
	Padding         int     `mapstructure:"padding" yaml:"padding" json:"padding"`
	UseShadow       bool    `mapstructure:"use_shadow" yaml:"use_shadow" json:"use_shadow"`
	ShadowAlpha     float64 `mapstructure:"shadow_alpha" yaml:"shadow_alpha" json:"shadow_alpha"`
}

// Format selects the encoding applied to a finished surface.
type Format string

const (
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
)

// Empirical rendering constants carried over from the reference renderer.
// The line height is a fixed approximation rather than a true font-metric
// ascent/descent, and shadow blur/offset scale with the canvas width from
// a 1920px baseline. Changing any of these changes visual output.
var (
	LineHeightFactor = 1.1
	ShadowBlurBase   = 6.0
	ShadowOffsetBase = 3.0
	ShadowBaseWidth  = 1920.0
)
