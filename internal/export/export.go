// Package export packages completed render cells for delivery: named byte
// buffers written to a directory or bundled into a single zip archive.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/framestamp/framestamp/internal/naming"
	"github.com/framestamp/framestamp/internal/runner"
)

// NamedFile is one export entry: a resolved file name and its encoded bytes.
type NamedFile struct {
	Name string
	Data []byte
}

// Collect resolves names for successful cells and returns them in cell
// order, along with the failed cells (surfaced, never packaged).
func Collect(cells []runner.RenderCell, rules naming.Rules, ext string) ([]NamedFile, []runner.RenderCell, error) {
	files := make([]NamedFile, 0, len(cells))
	var failed []runner.RenderCell
	for i := range cells {
		if !cells[i].OK() {
			failed = append(failed, cells[i])
			continue
		}
		name, err := naming.FileName(&cells[i], rules, ext)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to resolve export name: %w", err)
		}
		files = append(files, NamedFile{Name: name, Data: cells[i].Encoded})
	}
	return files, failed, nil
}

// WriteDir writes each file under dir, creating it if needed.
func WriteDir(dir string, files []NamedFile) error {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}
	for _, f := range files {
		path := filepath.Join(dir, f.Name)
		if err := os.WriteFile(path, f.Data, 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.Name, err)
		}
	}
	return nil
}
