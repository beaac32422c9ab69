// Package naming maps completed render cells to export file names using
// per-output-spec prefix/tag conventions.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/framestamp/framestamp/internal/runner"
)

// Rule is the naming convention for one output spec key.
type Rule struct {
	FilenamePrefix string `mapstructure:"filename_prefix" yaml:"filename_prefix" json:"filename_prefix"`
	Tag            string `mapstructure:"tag" yaml:"tag" json:"tag"`
}

// Rules maps output spec keys to their naming rules.
type Rules map[string]Rule

// FileName composes the export name for a cell:
// prefix + baseName + "_" + tag + "." + ext, where baseName is the source
// identifier with its original extension stripped. Pure and deterministic.
func FileName(cell *runner.RenderCell, rules Rules, ext string) (string, error) {
	rule, ok := rules[cell.SpecKey]
	if !ok {
		return "", fmt.Errorf("no naming rule for output spec %q", cell.SpecKey)
	}
	base := strings.TrimSuffix(filepath.Base(cell.ItemID), filepath.Ext(cell.ItemID))
	return rule.FilenamePrefix + base + "_" + rule.Tag + "." + ext, nil
}
