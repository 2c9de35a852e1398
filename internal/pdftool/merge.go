// Package pdftool combines PDF documents.
package pdftool

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNoInputs is returned by Merge when it is given nothing to merge.
var ErrNoInputs = errors.New("no input PDFs")

func init() {
	// Keep pdfcpu from creating a configuration directory under $HOME.
	api.DisableConfigDir()
}

// Merge writes the pages of inputs, in order, to a new PDF at out.
// On failure out is not left behind.
func Merge(out string, inputs ...string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("failed to merge: %w", ErrNoInputs)
	}
	for _, in := range inputs {
		if filepath.Clean(in) == filepath.Clean(out) {
			return fmt.Errorf("failed to merge: output %s is also an input", out)
		}
		if _, err := os.Stat(in); err != nil {
			return fmt.Errorf("failed to merge: %w", err)
		}
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("failed to merge: %w", err)
	}

	conf := model.NewDefaultConfiguration()
	if err := api.MergeCreateFile(inputs, out, false, conf); err != nil {
		os.Remove(out)
		return fmt.Errorf("failed to merge %d PDFs: %w", len(inputs), err)
	}
	slog.Debug("merged PDFs", "inputs", len(inputs), "path", out)
	return nil
}

// PageCount returns the number of pages in the PDF at path.
func PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	return n, nil
}
