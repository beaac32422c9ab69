package cmd

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/framestamp/framestamp/internal/batch"
	"github.com/framestamp/framestamp/internal/compose"
	"github.com/framestamp/framestamp/internal/config"
	"github.com/framestamp/framestamp/internal/naming"
	"github.com/framestamp/framestamp/internal/runner"
)

// stampCmd represents the stamp command for batch label rendering.
var stampCmd = &cobra.Command{
	Use:   "stamp [files...]",
	Short: "Stamp images with sequential labels and export the renditions",
	Long: `Stamp an ordered batch of images with sequential labels and render
each source into every configured output size.

Sources are sorted in natural order before numbering, so img2.png is
stamped before img10.png. A source that fails to decode is reported and
skipped; the rest of the batch still renders.

Supported formats: JPEG, PNG, BMP, TIFF

Examples:
  framestamp stamp frames/
  framestamp stamp frames/ --recursive --workers 8
  framestamp stamp ep1.png ep2.png --prefix "S01E" --digits 3
  framestamp stamp frames/ --out stamped/ --zip --progress`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runStampCommand,
}

// outputPlan splits the configured output renditions into render specs
// and export naming rules.
func outputPlan(cfg *config.Config) ([]compose.OutputSpec, naming.Rules) {
	specs := make([]compose.OutputSpec, len(cfg.Outputs))
	rules := make(naming.Rules, len(cfg.Outputs))
	for i, out := range cfg.Outputs {
		specs[i] = out.OutputSpec
		rules[out.Key] = naming.Rule{FilenamePrefix: out.FilenamePrefix, Tag: out.Tag}
	}
	return specs, rules
}

// configToBatchConfig maps centralized configuration to batch.Config.
// CLI flags override config file values through Viper's precedence system.
func configToBatchConfig(cfg *config.Config, cmd *cobra.Command) *batch.Config {
	specs, rules := outputPlan(cfg)

	batchConfig := &batch.Config{
		Sequence: runner.SequenceConfig{
			Prefix:      cfg.Sequence.Prefix,
			StartNumber: cfg.Sequence.StartNumber,
			Digits:      cfg.Sequence.Digits,
		},
		Style:   cfg.Style,
		Specs:   specs,
		Rules:   rules,
		Format:  compose.Format(cfg.Encode.Format),
		Quality: cfg.Encode.Quality,
	}

	if cmd.Flags().Changed("prefix") {
		batchConfig.Sequence.Prefix, _ = cmd.Flags().GetString("prefix")
	}
	if cmd.Flags().Changed("start-number") {
		batchConfig.Sequence.StartNumber, _ = cmd.Flags().GetInt("start-number")
	}
	if cmd.Flags().Changed("digits") {
		batchConfig.Sequence.Digits, _ = cmd.Flags().GetInt("digits")
	}

	if cmd.Flags().Changed("format") {
		f, _ := cmd.Flags().GetString("format")
		batchConfig.Format = compose.Format(f)
	}
	if cmd.Flags().Changed("quality") {
		batchConfig.Quality, _ = cmd.Flags().GetFloat64("quality")
	}

	batchConfig.Workers = cfg.Batch.Workers
	if cmd.Flags().Changed("workers") {
		batchConfig.Workers, _ = cmd.Flags().GetInt("workers")
	}

	batchConfig.Recursive = cfg.Batch.Recursive
	if cmd.Flags().Changed("recursive") {
		batchConfig.Recursive, _ = cmd.Flags().GetBool("recursive")
	}
	batchConfig.IncludePatterns = cfg.Batch.Include
	if cmd.Flags().Changed("include") {
		batchConfig.IncludePatterns, _ = cmd.Flags().GetStringSlice("include")
	}
	batchConfig.ExcludePatterns = cfg.Batch.Exclude
	if cmd.Flags().Changed("exclude") {
		batchConfig.ExcludePatterns, _ = cmd.Flags().GetStringSlice("exclude")
	}

	batchConfig.ExportDir = cfg.Export.Dir
	if cmd.Flags().Changed("out") {
		batchConfig.ExportDir, _ = cmd.Flags().GetString("out")
	}
	batchConfig.Zip = cfg.Export.Zip
	if cmd.Flags().Changed("zip") {
		batchConfig.Zip, _ = cmd.Flags().GetBool("zip")
	}
	batchConfig.ZipName = cfg.Export.ZipName
	if cmd.Flags().Changed("zip-name") {
		batchConfig.ZipName, _ = cmd.Flags().GetString("zip-name")
	}

	// Progress settings are CLI-only.
	batchConfig.ShowProgress, _ = cmd.Flags().GetBool("progress")
	batchConfig.Quiet, _ = cmd.Flags().GetBool("quiet")
	batchConfig.ShowStats, _ = cmd.Flags().GetBool("stats")
	batchConfig.ProgressInterval, _ = cmd.Flags().GetDuration("progress-interval")

	return batchConfig
}

func runStampCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	batchConfig := configToBatchConfig(cfg, cmd)

	if !batchConfig.Quiet {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Stamping %d path(s)...\n", len(args))
	}

	result, err := batch.Process(cmd.Context(), args, batchConfig)
	if err != nil {
		return fmt.Errorf("stamping failed: %w", err)
	}

	summaryFormat, _ := cmd.Flags().GetString("summary")
	summaryFile, _ := cmd.Flags().GetString("summary-file")
	if summaryFormat != "" {
		if err := result.SaveSummary(summaryFormat, summaryFile, batchConfig.Quiet); err != nil {
			return fmt.Errorf("failed to save summary: %w", err)
		}
	}

	if batchConfig.ShowStats {
		result.PrintStats(batchConfig.Quiet)
	}

	if result.Stats.Failed > 0 && !batchConfig.Quiet {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d of %d cells failed\n",
			result.Stats.Failed, result.Stats.Total)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(stampCmd)

	// Sequencing flags
	stampCmd.Flags().String("prefix", "", "label prefix (e.g. \"EP.\")")
	stampCmd.Flags().Int("start-number", 0, "first sequence number")
	stampCmd.Flags().Int("digits", 0, "zero-padded digit count for sequence numbers")

	// Encoding flags
	stampCmd.Flags().StringP("format", "f", "", "output image format: jpeg, png")
	stampCmd.Flags().Float64("quality", 0, "encode quality (0.1-1.0, jpeg only)")

	// Parallel processing flags
	stampCmd.Flags().IntP("workers", "w", 0,
		fmt.Sprintf("number of parallel workers (default: %d)", runtime.NumCPU()))

	// File discovery flags
	stampCmd.Flags().BoolP("recursive", "r", false, "recursively scan directories")
	stampCmd.Flags().StringSlice("include",
		[]string{"*.jpg", "*.jpeg", "*.png", "*.bmp", "*.tiff"}, "file patterns to include")
	stampCmd.Flags().StringSlice("exclude", []string{}, "file patterns to exclude")

	// Export flags
	stampCmd.Flags().StringP("out", "o", "", "export directory (default: stamped)")
	stampCmd.Flags().Bool("zip", false, "bundle renditions into a zip archive")
	stampCmd.Flags().String("zip-name", "", "zip archive file name")

	// Reporting flags
	stampCmd.Flags().String("summary", "", "print a run summary: text, json, csv")
	stampCmd.Flags().String("summary-file", "", "write the run summary to a file instead of stdout")
	stampCmd.Flags().Bool("progress", false, "show progress bar")
	stampCmd.Flags().Bool("quiet", false, "suppress progress output")
	stampCmd.Flags().Bool("stats", false, "show run statistics")
	stampCmd.Flags().Duration("progress-interval", 500*time.Millisecond, "progress update interval")
}
