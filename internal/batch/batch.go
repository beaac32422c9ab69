// Package batch orchestrates complete stamping runs: source discovery,
// natural ordering, decoding, rendering, naming, and export.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/framestamp/framestamp/internal/compose"
	"github.com/framestamp/framestamp/internal/export"
	"github.com/framestamp/framestamp/internal/naming"
	"github.com/framestamp/framestamp/internal/raster"
	"github.com/framestamp/framestamp/internal/runner"
	"github.com/framestamp/framestamp/internal/sequence"
)

// Discover finds the source files a run over paths would process, in
// natural order, without rendering anything.
func Discover(paths []string, config *Config) ([]string, error) {
	files, err := discoverSourceFiles(paths, config.Recursive, config.IncludePatterns, config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to discover source files: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no source image files found")
	}

	// Sequence positions come from natural order, not discovery order.
	sequence.NewDefaultSorter().Sort(files)
	return files, nil
}

// Process runs a complete batch over the given paths (files or directories)
// with the given configuration.
func Process(ctx context.Context, paths []string, config *Config) (*Result, error) {
	files, err := Discover(paths, config)
	if err != nil {
		return nil, err
	}

	items := loadSourceItems(files)

	var progress runner.ProgressCallback
	if config.ShowProgress && !config.Quiet {
		progress = runner.NewConsoleProgressCallback(
			os.Stdout,
			"Stamping: ",
		).WithUpdateInterval(config.ProgressInterval)
	}

	r := runner.New(compose.NewComposer(config.Format, config.Quality))

	startTime := time.Now()
	cells, err := r.Run(ctx, items, config.Specs, config.Style, config.Sequence, runner.Config{
		Workers:  config.Workers,
		Progress: progress,
	})
	duration := time.Since(startTime)
	if err != nil {
		return nil, fmt.Errorf("batch run failed: %w", err)
	}

	result := &Result{
		Cells:       cells,
		Names:       resolveNames(cells, config),
		SourcePaths: files,
		Stats:       runner.Summarize(cells),
		Duration:    duration,
		WorkerCount: config.Workers,
	}

	if err := deliver(result, cells, config); err != nil {
		return nil, err
	}
	return result, nil
}

// loadSourceItems decodes every discovered file. Files that fail to decode
// become items with a nil raster; the runner turns those into per-spec
// error cells instead of aborting the run.
func loadSourceItems(files []string) []runner.SourceItem {
	items := make([]runner.SourceItem, len(files))
	for i, path := range files {
		img, meta, err := raster.Load(path)
		if err != nil {
			slog.Warn("failed to load source image", "path", path, "error", err)
		} else {
			slog.Debug("loaded source image",
				"path", path, "format", meta.Format,
				"width", meta.Width, "height", meta.Height)
		}
		items[i] = runner.SourceItem{ID: path, Raster: img, Position: i}
	}
	return items
}

// resolveNames computes the export name for each successful cell.
func resolveNames(cells []runner.RenderCell, config *Config) []string {
	ext := "jpg"
	if config.Format == compose.FormatPNG {
		ext = "png"
	}
	names := make([]string, len(cells))
	for i := range cells {
		if !cells[i].OK() {
			continue
		}
		if name, err := naming.FileName(&cells[i], config.Rules, ext); err == nil {
			names[i] = name
		}
	}
	return names
}

func deliver(result *Result, cells []runner.RenderCell, config *Config) error {
	if config.ExportDir == "" && !config.Zip {
		return nil
	}

	ext := "jpg"
	if config.Format == compose.FormatPNG {
		ext = "png"
	}
	namedFiles, failed, err := export.Collect(cells, config.Rules, ext)
	if err != nil {
		return fmt.Errorf("failed to collect export files: %w", err)
	}
	for i := range failed {
		slog.Warn("cell excluded from export",
			"source", failed[i].ItemID,
			"spec", failed[i].SpecKey,
			"kind", failed[i].ErrorKind())
	}

	if config.ExportDir != "" {
		if err := export.WriteDir(config.ExportDir, namedFiles); err != nil {
			return err
		}
		result.ExportDir = config.ExportDir
	}
	if config.Zip {
		zipPath := config.ZipName
		if config.ExportDir != "" {
			zipPath = filepath.Join(config.ExportDir, config.ZipName)
		}
		if err := export.WriteZip(zipPath, namedFiles); err != nil {
			return err
		}
		result.ZipPath = zipPath
	}
	return nil
}
