package repo_test

import (
	"path/filepath"
	"testing"

	"lecturr/internal/database"
	"lecturr/internal/models"
	"lecturr/internal/repo"
)

func openTestStore(t *testing.T) *repo.DownloadStore {
	t.Helper()

	dc, err := database.InitDB(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { dc.Close() })

	return repo.GetDownloadStore(dc.DB)
}

func TestSavedPathUnknownLesson(t *testing.T) {
	ds := openTestStore(t)

	path, saved, err := ds.SavedPath("never-seen")
	if err != nil {
		t.Fatalf("SavedPath: %v", err)
	}
	if saved || path != "" {
		t.Errorf("got (%q, %v), want no record", path, saved)
	}
}

func TestRecordSavedRoundTrip(t *testing.T) {
	ds := openTestStore(t)

	res := models.DownloadResult{
		Lecture: models.LectureRef{LessonID: "les-1", Title: "Week 1"},
		Outcome: models.OutcomeSaved,
		Path:    "/out/2024-03-04 - Week 1.mp4",
	}
	if err := ds.RecordSaved(res, 1024); err != nil {
		t.Fatalf("RecordSaved: %v", err)
	}

	path, saved, err := ds.SavedPath("les-1")
	if err != nil {
		t.Fatalf("SavedPath: %v", err)
	}
	if !saved || path != res.Path {
		t.Errorf("got (%q, %v), want recorded path", path, saved)
	}
}

func TestRecordSavedUpsertsOnRepeat(t *testing.T) {
	ds := openTestStore(t)

	res := models.DownloadResult{
		Lecture: models.LectureRef{LessonID: "les-1", Title: "Week 1"},
		Path:    "/out/old.mp4",
	}
	if err := ds.RecordSaved(res, 10); err != nil {
		t.Fatalf("RecordSaved: %v", err)
	}

	res.Path = "/out/new.mp4"
	if err := ds.RecordSaved(res, 20); err != nil {
		t.Fatalf("RecordSaved again: %v", err)
	}

	path, saved, err := ds.SavedPath("les-1")
	if err != nil {
		t.Fatalf("SavedPath: %v", err)
	}
	if !saved || path != "/out/new.mp4" {
		t.Errorf("got (%q, %v), want updated path", path, saved)
	}
}
