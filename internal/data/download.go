package data

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// SemeionURL is the location of the semeion handwritten digit data set.
const SemeionURL = "http://archive.ics.uci.edu/ml/machine-learning-databases/semeion/semeion.data"

// Download fetches url into filename unless the file already exists. It
// reports whether a download happened. The body is written to a temporary
// file first so an interrupted transfer never leaves a partial dataset.
func Download(ctx context.Context, client *http.Client, url, filename string) (bool, error) {
	if _, err := os.Stat(filename); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("failed to stat file: %w", err)
	}

	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("failed to download %s: %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".*.part")
	if err != nil {
		return false, fmt.Errorf("failed to create file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return false, fmt.Errorf("failed to write %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return false, fmt.Errorf("failed to rename file: %w", err)
	}

	return true, nil
}
