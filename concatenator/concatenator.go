// Package concatenator writes the manifest consumed by ffmpeg's concat
// demuxer and checks the files it lists.
package concatenator

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// WriteManifest writes one "file '<path>'" line per path to listPath, in
// order, creating the parent directory if needed. Single quotes inside a
// path are escaped the way the concat demuxer expects.
//
// Format: file '/path/to/a.fixed.cuda.webm'
//
//	file '/path/to/b.fixed.cuda.webm'
func WriteManifest(paths []string, listPath string) error {
	if len(paths) == 0 {
		return fmt.Errorf("no paths to write to %s", listPath)
	}
	if err := os.MkdirAll(filepath.Dir(listPath), 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}

	f, err := os.Create(listPath)
	if err != nil {
		return fmt.Errorf("failed to create manifest: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, path := range paths {
		if _, err := w.WriteString(ManifestLine(path) + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("failed to write manifest: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close manifest: %w", err)
	}
	return nil
}

// ManifestLine renders the manifest entry for path.
func ManifestLine(path string) string {
	// Escape single quotes in path (replace ' with '\'' as in shell)
	escaped := strings.ReplaceAll(path, "'", `'\''`)
	return fmt.Sprintf("file '%s'", escaped)
}

// MissingInputs returns the paths that do not exist or are empty, in
// order. ffmpeg fails on such inputs; callers decide whether that is fatal.
func MissingInputs(paths []string) []string {
	var missing []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			missing = append(missing, path)
		}
	}
	return missing
}
