// Package support provides the shared state and step definitions for the
// CLI acceptance suite.
package support

import (
	"fmt"
	"os"
	"path/filepath"
)

// TestContext holds the state for one CLI scenario.
type TestContext struct {
	// Command execution state
	LastOutput string
	LastError  error

	// Test environment
	TempDir   string
	FramesDir string
	ExportDir string
}

// NewTestContext creates a new test context with a scenario-scoped
// workspace.
func NewTestContext() (*TestContext, error) {
	tempDir, err := os.MkdirTemp("", "framestamp-test-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	framesDir := filepath.Join(tempDir, "frames")
	if err := os.MkdirAll(framesDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create frames directory: %w", err)
	}

	return &TestContext{
		TempDir:   tempDir,
		FramesDir: framesDir,
		ExportDir: filepath.Join(tempDir, "stamped"),
	}, nil
}

// Cleanup removes the scenario workspace.
func (testCtx *TestContext) Cleanup() error {
	if testCtx.TempDir == "" {
		return nil
	}
	return os.RemoveAll(testCtx.TempDir)
}
