// Package resolve turns a lecture reference into fetchable media
// sources.
package resolve

import (
	"context"
	"fmt"
	"net/http"

	"lecturr/internal/domain/consts"
	"lecturr/internal/domain/errs"
	"lecturr/internal/file"
	"lecturr/internal/models"
	"lecturr/internal/utils/logging"
)

// Resolver queries the platform's lecture endpoints for media sources.
type Resolver struct {
	session *models.Session
}

// New returns a new Resolver instance.
func New(session *models.Session) *Resolver {
	return &Resolver{session: session}
}

// Resolve produces the media sources for one lecture. The direct
// download artifact always wins when the platform exposes one; the
// adaptive-manifest fallback only runs in experimental mode. An empty
// result with a nil error means downloads are simply not enabled for
// the lecture.
func (r *Resolver) Resolve(ctx context.Context, lec models.LectureRef) ([]models.MediaSource, error) {
	if lec.MediaID != "" {
		directURL, err := r.probeDirectDownload(ctx, lec)
		if err != nil {
			return nil, err
		}
		if directURL != "" {
			return []models.MediaSource{{
				Kind:          models.KindDirectFile,
				URL:           directURL,
				SuggestedName: file.LectureBaseName(lec),
				Ext:           consts.VideoExt,
			}}, nil
		}
	}

	if !r.session.Experimental {
		logging.D(1, "No direct download for %q and experimental mode is off", lec.Title)
		return nil, nil
	}

	return r.manifestSources(lec)
}

// probeDirectDownload checks the canonical download artifact endpoint,
// HD quality first. An empty URL with nil error means the artifact is
// not exposed for this lecture.
func (r *Resolver) probeDirectDownload(ctx context.Context, lec models.LectureRef) (string, error) {
	for _, quality := range []string{consts.QualityHD, consts.QualitySD} {
		dlURL := fmt.Sprintf(consts.DownloadPathFmt, lec.SourceURL, lec.MediaID, quality, consts.VideoExt)

		status, err := r.probe(ctx, dlURL)
		if err != nil {
			return "", err
		}

		switch {
		case status == http.StatusOK || status == http.StatusPartialContent:
			logging.D(1, "Direct %s download available for %q", quality, lec.Title)
			return dlURL, nil
		case status == http.StatusUnauthorized || status == http.StatusForbidden:
			return "", fmt.Errorf("%w: download probe returned HTTP %d", errs.ErrAuthExpired, status)
		case status == http.StatusNotFound:
			// Artifact not exposed at this quality, try the next
			continue
		default:
			return "", fmt.Errorf("%w: download probe returned HTTP %d", errs.ErrNetwork, status)
		}
	}
	return "", nil
}

// probe issues a single-byte ranged GET against the artifact URL and
// reports the response status. Some servers reject HEAD here.
func (r *Resolver) probe(ctx context.Context, dlURL string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, dlURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build probe request: %w", err)
	}
	req.Header.Set("Range", "bytes=0-0")

	resp, err := r.session.Client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: probe request failed: %v", errs.ErrNetwork, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.E("Failed to close probe response body: %v", err)
		}
	}()

	return resp.StatusCode, nil
}
