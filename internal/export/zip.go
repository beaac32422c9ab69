package export

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
)

// Zip bundles the files into a single zip archive blob, preserving order.
func Zip(files []NamedFile) ([]byte, error) {
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, f := range files {
		entry, err := w.Create(f.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create zip entry %s: %w", f.Name, err)
		}
		if _, err := entry.Write(f.Data); err != nil {
			return nil, fmt.Errorf("failed to write zip entry %s: %w", f.Name, err)
		}
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize zip archive: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteZip writes the archive built from files to path.
func WriteZip(path string, files []NamedFile) error {
	data, err := Zip(files)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write zip archive: %w", err)
	}
	return nil
}
