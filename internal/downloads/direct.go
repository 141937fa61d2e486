package downloads

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"lecturr/internal/domain/errs"
	"lecturr/internal/utils/logging"
)

// fetchDirect streams a direct download artifact to disk through the
// authenticated client.
func (f *Fetcher) fetchDirect(ctx context.Context, srcURL, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := f.session.Client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: download request failed: %v", errs.ErrNetwork, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.E("Failed to close download response body: %v", err)
		}
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: download returned HTTP %d", errs.ErrAuthExpired, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: download returned HTTP %d", errs.ErrNetwork, resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", destPath, err)
	}
	defer func() {
		if err := out.Close(); err != nil {
			logging.E("Failed to close output file %q: %v", destPath, err)
		}
	}()

	n, err := io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("%w: streaming download to %q failed: %v", errs.ErrNetwork, destPath, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: server sent no bytes for %q", errs.ErrEmptyResponse, srcURL)
	}

	logging.D(1, "Streamed %d bytes to %q", n, destPath)
	return nil
}
