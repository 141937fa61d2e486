// Package downloads retrieves resolved media sources to disk.
package downloads

import (
	"context"
	"fmt"
	"os"

	"lecturr/internal/domain/errs"
	"lecturr/internal/models"
	"lecturr/internal/utils/logging"
)

// Fetcher retrieves media source bytes to destination paths.
type Fetcher struct {
	session *models.Session
}

// New returns a new Fetcher instance.
func New(session *models.Session) *Fetcher {
	return &Fetcher{session: session}
}

// Fetch retrieves one media source to destPath, dispatching on the
// source kind. On any failure the partial output file is removed.
func (f *Fetcher) Fetch(ctx context.Context, src models.MediaSource, destPath string) error {
	var err error

	switch src.Kind {
	case models.KindDirectFile:
		err = f.fetchDirect(ctx, src.URL, destPath)
	case models.KindAdaptiveManifest:
		err = f.fetchManifest(ctx, src.URL, destPath)
	default:
		return fmt.Errorf("unknown media source kind %d", src.Kind)
	}

	if err != nil {
		removePartial(destPath)
		return err
	}

	return verifyOutputFile(destPath)
}

// verifyOutputFile rejects missing or zero-length results.
func verifyOutputFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: output file %q was not created", errs.ErrEmptyResponse, path)
	}
	if info.Size() == 0 {
		removePartial(path)
		return fmt.Errorf("%w: output file %q is zero bytes", errs.ErrEmptyResponse, path)
	}
	return nil
}

func removePartial(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logging.E("Failed to remove partial file %q: %v", path, err)
	}
}
