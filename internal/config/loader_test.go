package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test,
// equivalent to t.Chdir which requires Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoader_Defaults(t *testing.T) {
	viper.Reset()
	chdir(t, t.TempDir()) // no framestamp.yaml in reach

	cfg, err := NewLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "EP.", cfg.Sequence.Prefix)
	assert.Equal(t, 2, cfg.Sequence.Digits)
	assert.Len(t, cfg.Outputs, 2)
	assert.Equal(t, "jpeg", cfg.Encode.Format)
}

func TestLoader_LoadWithFile(t *testing.T) {
	viper.Reset()

	dir := t.TempDir()
	path := filepath.Join(dir, "framestamp.yaml")
	content := `
sequence:
  prefix: "S01E"
  start_number: 3
  digits: 3
outputs:
  - key: square
    width: 800
    height: 800
    font_size: 40
    offset_x: 10
    offset_y: 10
    filename_prefix: "sq_"
    tag: "800x800"
encode:
  format: png
  quality: 1.0
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewLoader().LoadWithFile(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "S01E", cfg.Sequence.Prefix)
	assert.Equal(t, 3, cfg.Sequence.StartNumber)
	assert.Equal(t, 3, cfg.Sequence.Digits)

	require.Len(t, cfg.Outputs, 1)
	assert.Equal(t, "square", cfg.Outputs[0].Key)
	assert.Equal(t, 800, cfg.Outputs[0].Width)
	assert.Equal(t, "sq_", cfg.Outputs[0].FilenamePrefix)

	assert.Equal(t, "png", cfg.Encode.Format)

	// Untouched sections keep defaults.
	assert.Equal(t, "#FFFFFF", cfg.Style.TextColor)
}

func TestLoader_MissingExplicitFile(t *testing.T) {
	viper.Reset()

	_, err := NewLoader().LoadWithFile("/nonexistent/framestamp.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestLoader_EnvOverride(t *testing.T) {
	viper.Reset()
	chdir(t, t.TempDir())
	t.Setenv("FRAMESTAMP_SEQUENCE_PREFIX", "CH.")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, "CH.", cfg.Sequence.Prefix)
}
