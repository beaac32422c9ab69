package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/framestamp/framestamp/internal/batch"
	"github.com/framestamp/framestamp/internal/naming"
	"github.com/framestamp/framestamp/internal/runner"
	"github.com/framestamp/framestamp/internal/sequence"
)

// planCmd represents the plan command, a dry run of stamp.
var planCmd = &cobra.Command{
	Use:   "plan [files...]",
	Short: "Show labels and export names without rendering anything",
	Long: `Plan resolves the natural order, sequence labels and export file
names a stamp run would produce, without decoding or rendering a single
image. Use it to verify ordering and naming before a long batch.

Examples:
  framestamp plan frames/
  framestamp plan frames/ --prefix "S01E" --digits 3 --recursive`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE:         runPlanCommand,
}

func runPlanCommand(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	batchConfig := configToBatchConfig(cfg, cmd)

	files, err := batch.Discover(args, batchConfig)
	if err != nil {
		return err
	}

	ext := "jpg"
	if string(batchConfig.Format) == "png" {
		ext = "png"
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tLABEL\tSOURCE\tEXPORTS")
	for i, path := range files {
		label := sequence.Label(
			batchConfig.Sequence.Prefix,
			batchConfig.Sequence.StartNumber,
			i,
			batchConfig.Sequence.Digits,
		)
		exports := ""
		for j, spec := range batchConfig.Specs {
			cell := runner.RenderCell{ItemID: path, SpecKey: spec.Key}
			name, nameErr := naming.FileName(&cell, batchConfig.Rules, ext)
			if nameErr != nil {
				return nameErr
			}
			if j > 0 {
				exports += ", "
			}
			exports += name
		}
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, label, path, exports)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\n%d source(s), %d cell(s) would render\n",
		len(files), len(files)*len(batchConfig.Specs))
	return nil
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().String("prefix", "", "label prefix (e.g. \"EP.\")")
	planCmd.Flags().Int("start-number", 0, "first sequence number")
	planCmd.Flags().Int("digits", 0, "zero-padded digit count for sequence numbers")
	planCmd.Flags().StringP("format", "f", "", "output image format: jpeg, png")
	planCmd.Flags().BoolP("recursive", "r", false, "recursively scan directories")
	planCmd.Flags().StringSlice("include",
		[]string{"*.jpg", "*.jpeg", "*.png", "*.bmp", "*.tiff"}, "file patterns to include")
	planCmd.Flags().StringSlice("exclude", []string{}, "file patterns to exclude")
}
