package config

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/framestamp/framestamp/internal/compose"
)

// Config represents the complete configuration for a framestamp run. It is
// loaded from configuration files, environment variables, and command-line
// flags, then snapshotted for the duration of a run.
type Config struct {
	// Global settings
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	// Sequencing and labeling
	Sequence SequenceConfig `mapstructure:"sequence" yaml:"sequence" json:"sequence"`

	// Label typography and decoration
	Style compose.StampStyle `mapstructure:"style" yaml:"style" json:"style"`

	// Output renditions, at least one
	Outputs []OutputConfig `mapstructure:"outputs" yaml:"outputs" json:"outputs"`

	// Encoding settings
	Encode EncodeConfig `mapstructure:"encode" yaml:"encode" json:"encode"`

	// Batch execution settings
	Batch BatchConfig `mapstructure:"batch" yaml:"batch" json:"batch"`

	// Export settings
	Export ExportConfig `mapstructure:"export" yaml:"export" json:"export"`
}

// SequenceConfig drives label generation.
type SequenceConfig struct {
	Prefix      string `mapstructure:"prefix" yaml:"prefix" json:"prefix"`
	StartNumber int    `mapstructure:"start_number" yaml:"start_number" json:"start_number"`
	Digits      int    `mapstructure:"digits" yaml:"digits" json:"digits"`
}

// OutputConfig is one output rendition plus its export naming rule.
type OutputConfig struct {
	compose.OutputSpec `mapstructure:",squash" yaml:",inline"`

	FilenamePrefix string `mapstructure:"filename_prefix" yaml:"filename_prefix" json:"filename_prefix"`
	Tag            string `mapstructure:"tag" yaml:"tag" json:"tag"`
}

// EncodeConfig selects the output image format and quality.
type EncodeConfig struct {
	Format  string  `mapstructure:"format" yaml:"format" json:"format"`
	Quality float64 `mapstructure:"quality" yaml:"quality" json:"quality"`
}

// BatchConfig contains batch execution settings.
type BatchConfig struct {
	Workers   int      `mapstructure:"workers" yaml:"workers" json:"workers"`
	Recursive bool     `mapstructure:"recursive" yaml:"recursive" json:"recursive"`
	Include   []string `mapstructure:"include" yaml:"include" json:"include"`
	Exclude   []string `mapstructure:"exclude" yaml:"exclude" json:"exclude"`
}

// ExportConfig controls where rendered frames are delivered.
type ExportConfig struct {
	Dir     string `mapstructure:"dir" yaml:"dir" json:"dir"`
	Zip     bool   `mapstructure:"zip" yaml:"zip" json:"zip"`
	ZipName string `mapstructure:"zip_name" yaml:"zip_name" json:"zip_name"`
}

// DefaultOutputs returns the reference two-rendition configuration.
func DefaultOutputs() []OutputConfig {
	return []OutputConfig{
		{
			OutputSpec: compose.OutputSpec{
				Key: "landscape", Width: 1920, Height: 1080,
				FontSize: 64, OffsetX: 64, OffsetY: 48,
				Label: "Landscape 1920x1080",
			},
			FilenamePrefix: "hd_", Tag: "1920x1080",
		},
		{
			OutputSpec: compose.OutputSpec{
				Key: "portrait", Width: 500, Height: 750,
				FontSize: 36, OffsetX: 24, OffsetY: 24,
				Label: "Portrait 500x750",
			},
			FilenamePrefix: "cover_", Tag: "500x750",
		},
	}
}

// Default returns the configuration used when no file, env or flag
// overrides anything.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Sequence: SequenceConfig{Prefix: "EP.", StartNumber: 1, Digits: 2},
		Style: compose.StampStyle{
			FontFamily:      "Go",
			Bold:            true,
			TextColor:       "#FFFFFF",
			UseBackground:   true,
			BackgroundColor: "#000000",
			BackgroundAlpha: 0.5,
			Padding:         12,
			UseShadow:       true,
			ShadowAlpha:     0.6,
		},
		Outputs: DefaultOutputs(),
		Encode:  EncodeConfig{Format: "jpeg", Quality: 0.9},
		Batch:   BatchConfig{Workers: 1, Include: []string{"*.jpg", "*.jpeg", "*.png", "*.bmp", "*.tiff"}},
		Export:  ExportConfig{Dir: "stamped", ZipName: "stamped.zip"},
	}
}

// Validate checks the configuration against the supported ranges.
func (c *Config) Validate() error {
	if c.Sequence.StartNumber < 0 {
		return fmt.Errorf("sequence.start_number must be >= 0, got %d", c.Sequence.StartNumber)
	}
	if c.Sequence.Digits < 1 || c.Sequence.Digits > 6 {
		return fmt.Errorf("sequence.digits must be in [1,6], got %d", c.Sequence.Digits)
	}
	if err := c.validateStyle(); err != nil {
		return err
	}
	if err := c.validateOutputs(); err != nil {
		return err
	}
	if c.Encode.Format != "jpeg" && c.Encode.Format != "png" {
		return fmt.Errorf("encode.format must be jpeg or png, got %q", c.Encode.Format)
	}
	if c.Encode.Quality < 0.1 || c.Encode.Quality > 1 {
		return fmt.Errorf("encode.quality must be in [0.1,1], got %g", c.Encode.Quality)
	}
	if c.Batch.Workers < 0 {
		return fmt.Errorf("batch.workers must be >= 0, got %d", c.Batch.Workers)
	}
	return nil
}

func (c *Config) validateStyle() error {
	if c.Style.BackgroundAlpha < 0 || c.Style.BackgroundAlpha > 1 {
		return fmt.Errorf("style.background_alpha must be in [0,1], got %g", c.Style.BackgroundAlpha)
	}
	if c.Style.ShadowAlpha < 0 || c.Style.ShadowAlpha > 1 {
		return fmt.Errorf("style.shadow_alpha must be in [0,1], got %g", c.Style.ShadowAlpha)
	}
	if c.Style.Padding < 0 || c.Style.Padding > 200 {
		return fmt.Errorf("style.padding must be in [0,200], got %d", c.Style.Padding)
	}
	if _, err := compose.ParseHexColor(c.Style.TextColor); err != nil {
		return fmt.Errorf("style.text_color: %w", err)
	}
	if c.Style.UseBackground {
		if _, err := compose.ParseHexColor(c.Style.BackgroundColor); err != nil {
			return fmt.Errorf("style.background_color: %w", err)
		}
	}
	return nil
}

func (c *Config) validateOutputs() error {
	if len(c.Outputs) == 0 {
		return errors.New("at least one output spec is required")
	}
	seen := make(map[string]bool, len(c.Outputs))
	for i, out := range c.Outputs {
		if out.Key == "" {
			return fmt.Errorf("outputs[%d]: key must not be empty", i)
		}
		if seen[out.Key] {
			return fmt.Errorf("outputs[%d]: duplicate key %q", i, out.Key)
		}
		seen[out.Key] = true
		if out.Width <= 0 || out.Height <= 0 {
			return fmt.Errorf("outputs[%d] %s: dimensions must be positive, got %dx%d", i, out.Key, out.Width, out.Height)
		}
		if out.FontSize < 8 || out.FontSize > 400 {
			return fmt.Errorf("outputs[%d] %s: font_size must be in [8,400], got %d", i, out.Key, out.FontSize)
		}
		if out.OffsetX < 0 || out.OffsetY < 0 {
			return fmt.Errorf("outputs[%d] %s: offsets must be >= 0", i, out.Key)
		}
	}
	return nil
}

// YAML renders the effective configuration as YAML.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Extension returns the export file extension for the configured format.
func (c *Config) Extension() string {
	if c.Encode.Format == "png" {
		return "png"
	}
	return "jpg"
}
