package batch

import (
	"fmt"
	"os"
	"time"

	"github.com/framestamp/framestamp/internal/compose"
	"github.com/framestamp/framestamp/internal/naming"
	"github.com/framestamp/framestamp/internal/runner"
)

// Config holds all settings for one batch stamping run.
type Config struct {
	// Sequencing and rendering
	Sequence runner.SequenceConfig
	Style    compose.StampStyle
	Specs    []compose.OutputSpec
	Rules    naming.Rules

	// Encoding settings
	Format  compose.Format
	Quality float64

	// Parallel processing settings
	Workers int

	// File discovery settings
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string

	// Progress settings
	ShowProgress     bool
	Quiet            bool
	ShowStats        bool
	ProgressInterval time.Duration

	// Export settings
	ExportDir string
	Zip       bool
	ZipName   string
}

// Result holds the outcome of a batch run.
type Result struct {
	Cells       []runner.RenderCell
	Names       []string // export name per cell, empty for failed cells
	SourcePaths []string
	Stats       runner.Stats
	Duration    time.Duration
	WorkerCount int
	ExportDir   string
	ZipPath     string
}

// FormatSummary renders the per-cell run report in the given format
// ("text", "json" or "csv").
func (r *Result) FormatSummary(format string) (string, error) {
	return formatSummary(r, format)
}

// SaveSummary writes the formatted summary to a file, or stdout when
// outputFile is empty.
func (r *Result) SaveSummary(format, outputFile string, quiet bool) error {
	output, err := r.FormatSummary(format)
	if err != nil {
		return fmt.Errorf("failed to format summary: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write summary file: %w", err)
		}
		if !quiet {
			_, _ = fmt.Fprintf(os.Stdout, "Summary written to %s\n", outputFile)
		}
	} else {
		_, _ = fmt.Fprint(os.Stdout, output)
	}

	return nil
}

// PrintStats prints run statistics to stdout.
func (r *Result) PrintStats(quiet bool) {
	if quiet {
		return
	}
	avg := time.Duration(0)
	if r.Stats.Total > 0 {
		avg = r.Duration / time.Duration(r.Stats.Total)
	}
	throughput := 0.0
	if r.Duration > 0 {
		throughput = float64(r.Stats.Total) / r.Duration.Seconds()
	}
	_, _ = fmt.Fprintf(os.Stdout, "\nRun Statistics:\n")
	_, _ = fmt.Fprintf(os.Stdout, "  Source images: %d\n", len(r.SourcePaths))
	_, _ = fmt.Fprintf(os.Stdout, "  Cells rendered: %d\n", r.Stats.Succeeded)
	_, _ = fmt.Fprintf(os.Stdout, "  Cells failed: %d\n", r.Stats.Failed)
	_, _ = fmt.Fprintf(os.Stdout, "  Workers: %d\n", r.WorkerCount)
	_, _ = fmt.Fprintf(os.Stdout, "  Duration: %v\n", r.Duration.Round(time.Millisecond))
	_, _ = fmt.Fprintf(os.Stdout, "  Avg per cell: %v\n", avg.Round(time.Millisecond))
	_, _ = fmt.Fprintf(os.Stdout, "  Throughput: %.1f cells/sec\n", throughput)
}
