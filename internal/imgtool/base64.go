// Package imgtool provides small file utilities used alongside the
// animation commands.
package imgtool

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// ErrInvalidBase64 is returned when a string is not valid padded Base64.
var ErrInvalidBase64 = errors.New("invalid base64")

var base64Pattern = regexp.MustCompile(`^([A-Za-z0-9+/]{4})*([A-Za-z0-9+/]{3}=|[A-Za-z0-9+/]{2}==)?$`)

// IsBase64 reports whether s is standard, padded Base64 with no
// whitespace.
func IsBase64(s string) bool {
	return base64Pattern.MatchString(s)
}

// EncodeBase64File returns the contents of the file at path as standard
// Base64.
func EncodeBase64File(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return base64.StdEncoding.EncodeToString(b), nil
}

// DecodeBase64ToFile decodes s and writes the bytes to path, creating
// parent directories as needed.
func DecodeBase64ToFile(s, path string) error {
	if !IsBase64(s) {
		return fmt.Errorf("%w: unexpected characters or padding", ErrInvalidBase64)
	}
	b, err := base64.StdEncoding.Strict().DecodeString(s)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidBase64, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
