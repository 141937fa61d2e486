// Package repo provides query access to the download history database.
package repo

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"lecturr/internal/domain/consts"
	"lecturr/internal/models"

	"github.com/Masterminds/squirrel"
)

// DownloadStore holds a pointer to the sql.DB.
type DownloadStore struct {
	DB *sql.DB
}

// GetDownloadStore returns a download store instance with injected database.
func GetDownloadStore(db *sql.DB) *DownloadStore {
	return &DownloadStore{
		DB: db,
	}
}

// SavedPath looks up whether a lecture was already saved by a prior
// run, returning the recorded output path when it was.
func (ds *DownloadStore) SavedPath(lessonID string) (path string, saved bool, err error) {
	query := squirrel.
		Select(consts.QDLFilePath).
		From(consts.DBDownloads).
		Where(squirrel.Eq{consts.QDLLessonID: lessonID}).
		RunWith(ds.DB)

	if err := query.QueryRow().Scan(&path); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to query download history for lesson %q: %w", lessonID, err)
	}
	return path, true, nil
}

// RecordSaved records a successfully saved lecture so later runs skip
// it instead of silently overwriting the file.
func (ds *DownloadStore) RecordSaved(res models.DownloadResult, fileSize int64) error {
	query := squirrel.
		Insert(consts.DBDownloads).
		Columns(consts.QDLLessonID, consts.QDLTitle, consts.QDLFilePath, consts.QDLFileSize, consts.QDLCompletedAt).
		Values(res.Lecture.LessonID, res.Lecture.Title, res.Path, fileSize, time.Now()).
		Suffix("ON CONFLICT(lesson_id) DO UPDATE SET file_path=excluded.file_path, file_size=excluded.file_size, completed_at=excluded.completed_at").
		RunWith(ds.DB)

	if _, err := query.Exec(); err != nil {
		return fmt.Errorf("failed to record saved lecture %q: %w", res.Lecture.LessonID, err)
	}
	return nil
}
