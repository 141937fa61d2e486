// Package app drives the discover/resolve/fetch pipeline end to end.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"lecturr/internal/domain/consts"
	"lecturr/internal/domain/errs"
	"lecturr/internal/downloads"
	"lecturr/internal/file"
	"lecturr/internal/models"
	"lecturr/internal/repo"
	"lecturr/internal/resolve"
	"lecturr/internal/scraper"
	"lecturr/internal/utils/logging"
)

// Discoverer enumerates the lectures reachable from a page URL.
type Discoverer interface {
	Discover(ctx context.Context, rawURL string) ([]models.LectureRef, error)
}

// Resolver produces media sources for one lecture.
type Resolver interface {
	Resolve(ctx context.Context, lec models.LectureRef) ([]models.MediaSource, error)
}

// Fetcher retrieves one media source to a destination path.
type Fetcher interface {
	Fetch(ctx context.Context, src models.MediaSource, destPath string) error
}

// HistoryStore records lectures saved across runs.
type HistoryStore interface {
	SavedPath(lessonID string) (path string, saved bool, err error)
	RecordSaved(res models.DownloadResult, fileSize int64) error
}

// Runner owns one batch run over a course or lecture URL.
type Runner struct {
	session    *models.Session
	discoverer Discoverer
	resolver   Resolver
	fetcher    Fetcher
	history    HistoryStore
}

// NewRunner wires the pipeline components for the given session.
func NewRunner(session *models.Session, store *repo.DownloadStore) *Runner {
	return NewRunnerWith(session, scraper.New(session), resolve.New(session), downloads.New(session), store)
}

// NewRunnerWith builds a Runner from explicit pipeline components.
func NewRunnerWith(session *models.Session, d Discoverer, r Resolver, f Fetcher, h HistoryStore) *Runner {
	return &Runner{
		session:    session,
		discoverer: d,
		resolver:   r,
		fetcher:    f,
		history:    h,
	}
}

// Run processes every lecture reachable from rawURL in listing order.
// One lecture's failure never aborts the batch; expired authentication
// does, since every later request would fail the same way. The report
// always covers each attempted lecture exactly once, even when the run
// is cut short.
func (r *Runner) Run(ctx context.Context, rawURL string) (*models.Report, error) {
	report := &models.Report{}

	lectures, err := r.discoverer.Discover(ctx, rawURL)
	if err != nil {
		return report, err
	}

	if r.session.Skip > 0 {
		if r.session.Skip >= len(lectures) {
			logging.W("--skip %d covers the whole listing of %d lectures, nothing to do", r.session.Skip, len(lectures))
			return report, nil
		}
		logging.I("Skipping the first %d of %d lectures", r.session.Skip, len(lectures))
		lectures = lectures[r.session.Skip:]
	}

	if err := os.MkdirAll(r.session.OutputDir, consts.DirPerms); err != nil {
		return report, fmt.Errorf("%w: failed to create output directory %q: %v", errs.ErrConfiguration, r.session.OutputDir, err)
	}

	taken := make(map[string]struct{}, len(lectures))

	for i, lec := range lectures {
		if ctx.Err() != nil {
			logging.W("Run interrupted, %d of %d lectures processed", i, len(lectures))
			return report, ctx.Err()
		}

		logging.P("")
		logging.I("[%d/%d] %s", i+1, len(lectures), lec.Title)

		res, abort := r.processLecture(ctx, lec, taken)
		report.Add(res)

		if abort != nil {
			return report, abort
		}
	}

	return report, nil
}

// processLecture resolves and fetches one lecture, yielding exactly one
// DownloadResult. A non-nil abort error halts the whole batch.
func (r *Runner) processLecture(ctx context.Context, lec models.LectureRef, taken map[string]struct{}) (res models.DownloadResult, abort error) {
	res = models.DownloadResult{Lecture: lec}

	// Saved by a prior run?
	if path, saved, err := r.history.SavedPath(lec.LessonID); err != nil {
		logging.W("History lookup failed for %q: %v", lec.Title, err)
	} else if saved {
		if _, statErr := os.Stat(path); statErr == nil {
			logging.I("Already saved at %q, skipping", path)
			res.Outcome = models.OutcomeSkipped
			res.Reason = consts.SkipReasonSavedPrior
			res.Path = path
			return res, nil
		}
		logging.D(1, "History entry for %q points at missing file %q, re-downloading", lec.Title, path)
	}

	if !lec.HasVideo {
		res.Outcome = models.OutcomeSkipped
		res.Reason = consts.SkipReasonNoVideo
		return res, nil
	}

	sources, err := r.resolver.Resolve(ctx, lec)
	if err != nil {
		return r.failed(res, err)
	}

	if len(sources) == 0 {
		logging.I("No download artifact exposed for %q", lec.Title)
		res.Outcome = models.OutcomeSkipped
		res.Reason = consts.SkipReasonNoDownload
		return res, nil
	}

	// Resolver policy already orders direct-file sources first; each
	// source is fetched at most once per run.
	src := sources[0]
	destPath := file.UniqueDestPath(r.session.OutputDir, src.SuggestedName, lec.LessonID, src.Ext, taken)

	logging.I("Downloading (%s) to %q...", src.Kind, destPath)

	if err := r.fetcher.Fetch(ctx, src, destPath); err != nil {
		return r.failed(res, err)
	}

	res.Outcome = models.OutcomeSaved
	res.Path = destPath
	logging.S("Saved %q", destPath)

	r.recordSaved(res)
	return res, nil
}

// failed finalizes a failed result, deciding whether the batch can
// continue past it.
func (r *Runner) failed(res models.DownloadResult, err error) (models.DownloadResult, error) {
	res.Outcome = models.OutcomeFailed
	res.Err = err

	if errors.Is(err, errs.ErrAuthExpired) {
		return res, fmt.Errorf("aborting run: %w", err)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return res, err
	}

	logging.E("Lecture %q failed: %v", res.Lecture.Title, err)
	return res, nil
}

// recordSaved writes the saved lecture into the history database.
func (r *Runner) recordSaved(res models.DownloadResult) {
	var size int64
	if info, err := os.Stat(res.Path); err == nil {
		size = info.Size()
	}

	if err := r.history.RecordSaved(res, size); err != nil {
		logging.W("Failed to record %q in download history: %v", res.Lecture.Title, err)
	}
}
