package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "framestamp"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "FRAMESTAMP"
)

// Loader handles loading configuration from various sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader. It uses the global viper
// instance so command-line flag bindings participate in precedence.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// GetViper exposes the underlying viper instance for flag binding.
func (l *Loader) GetViper() *viper.Viper { return l.v }

// Load loads configuration from files, environment variables, and defaults,
// validates it and returns the result.
func (l *Loader) Load() (*Config, error) {
	cfg, err := l.load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadWithFile loads configuration from a specific file path.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	if configFile == "" {
		return l.Load()
	}
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configFile)
	}
	l.v.SetConfigFile(configFile)
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return l.finish()
}

func (l *Loader) load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")
	l.addConfigPaths()
	l.setupEnvironmentVariables()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		// Missing config file is fine; defaults and env vars apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return l.finish()
}

func (l *Loader) finish() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	// Outputs are a list and have no flat viper defaults; fall back to the
	// reference renditions when the sources provided none.
	if len(cfg.Outputs) == 0 {
		cfg.Outputs = DefaultOutputs()
	}
	return &cfg, nil
}

func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(filepath.Join(home, ".config", "framestamp"))
		l.v.AddConfigPath(home)
	}
	l.v.AddConfigPath("/etc/framestamp")
}

func (l *Loader) setupEnvironmentVariables() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()
}

func (l *Loader) setDefaults() {
	def := Default()

	l.v.SetDefault("log_level", def.LogLevel)
	l.v.SetDefault("verbose", def.Verbose)

	l.v.SetDefault("sequence.prefix", def.Sequence.Prefix)
	l.v.SetDefault("sequence.start_number", def.Sequence.StartNumber)
	l.v.SetDefault("sequence.digits", def.Sequence.Digits)

	l.v.SetDefault("style.font_family", def.Style.FontFamily)
	l.v.SetDefault("style.bold", def.Style.Bold)
	l.v.SetDefault("style.text_color", def.Style.TextColor)
	l.v.SetDefault("style.use_background", def.Style.UseBackground)
	l.v.SetDefault("style.background_color", def.Style.BackgroundColor)
	l.v.SetDefault("style.background_alpha", def.Style.BackgroundAlpha)
	l.v.SetDefault("style.padding", def.Style.Padding)
	l.v.SetDefault("style.use_shadow", def.Style.UseShadow)
	l.v.SetDefault("style.shadow_alpha", def.Style.ShadowAlpha)

	l.v.SetDefault("encode.format", def.Encode.Format)
	l.v.SetDefault("encode.quality", def.Encode.Quality)

	l.v.SetDefault("batch.workers", def.Batch.Workers)
	l.v.SetDefault("batch.recursive", def.Batch.Recursive)
	l.v.SetDefault("batch.include", def.Batch.Include)
	l.v.SetDefault("batch.exclude", def.Batch.Exclude)

	l.v.SetDefault("export.dir", def.Export.Dir)
	l.v.SetDefault("export.zip", def.Export.Zip)
	l.v.SetDefault("export.zip_name", def.Export.ZipName)
}
