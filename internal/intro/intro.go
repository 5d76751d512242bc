// Package intro renders the optional index page introduction from a
// README kept alongside the reports.
package intro

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/yuin/goldmark"
)

// Source is the file rendered into the page introduction when it exists
// in the scanned root.
const Source = "README.md"

// FromDir renders the root's README into intro HTML. A missing README is
// not an error; the page simply carries no introduction.
func FromDir(dir string) (string, error) {
	src, err := os.ReadFile(filepath.Join(dir, Source))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading intro source: %w", err)
	}

	var buf bytes.Buffer
	if err := goldmark.New().Convert(src, &buf); err != nil {
		return "", fmt.Errorf("rendering intro markdown: %w", err)
	}
	return buf.String(), nil
}
