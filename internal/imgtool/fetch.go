package imgtool

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// Download fetches url with client and writes the body to path, creating
// parent directories as needed. A nil client uses http.DefaultClient.
// Partially written files are removed on failure.
func Download(ctx context.Context, client *http.Client, url, path string) (err error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download: HTTP error: %s", resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	defer func() {
		cerr := f.Close()
		if err == nil && cerr != nil {
			err = fmt.Errorf("failed to save: %w", cerr)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	slog.Debug("downloaded", "url", url, "path", path, "bytes", n, "type", resp.Header.Get("Content-Type"))
	return nil
}
