package dataset

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// GeneDatabaseURL is where the OpenGenes sqlite database lives on the
// HuggingFace Hub.
const GeneDatabaseURL = "https://huggingface.co/datasets/longevity-genie/bio-mcp-data/resolve/main/opengenes/open_genes.sqlite"

// DownloadGeneDatabase fetches the OpenGenes database from url and writes it
// to dest. The file is written to a temporary sibling first and renamed into
// place, so a failed download never leaves a truncated database behind.
func DownloadGeneDatabase(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download genes database: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download genes database: unexpected status %d", resp.StatusCode)
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create genes database directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), filepath.Base(dest)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write genes database: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write genes database: %w", err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("failed to move genes database into place: %w", err)
	}

	slog.Info("downloaded genes database", "url", url, "path", dest)
	return nil
}
