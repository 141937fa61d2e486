package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"lecturr/internal/domain/errs"
	"lecturr/internal/models"
)

func TestParseTarget(t *testing.T) {
	// Course home pages across regions
	for _, u := range []string{
		"https://echo360.net.au/section/0a1b2c3d-4e5f-6789-abcd-ef0123456789/home",
		"https://echo360.org.uk/section/0a1b2c3d-4e5f-6789-abcd-ef0123456789/home",
		"https://echo360.org/section/abc123/home/",
	} {
		tgt, err := ParseTarget(u)
		if err != nil {
			t.Fatalf("expected %q to parse as a course page, got: %v", u, err)
		}
		if tgt.kind != pageCourseHome {
			t.Errorf("kind for %q = %v, want course home", u, tgt.kind)
		}
	}

	// Single lecture classroom page; lesson ids are UUIDs
	tgt, err := ParseTarget("https://echo360.net.au/lesson/f0e1d2c3-b4a5-6789-0123-456789abcdef/classroom")
	if err != nil {
		t.Fatalf("expected classroom URL to parse, got: %v", err)
	}
	if tgt.kind != pageLessonClassroom {
		t.Errorf("kind = %v, want lesson classroom", tgt.kind)
	}
	if tgt.id != "f0e1d2c3-b4a5-6789-0123-456789abcdef" {
		t.Errorf("id = %q, want the lesson UUID", tgt.id)
	}
	if tgt.base != "https://echo360.net.au" {
		t.Errorf("base = %q, want 'https://echo360.net.au'", tgt.base)
	}

	// Unrecognized shapes
	for _, u := range []string{
		"https://example.com/section/abc/home",
		"https://echo360.net.au/section/abc",
		"http://echo360.net.au/section/abc/home",
		"not a url",
		"",
	} {
		if _, err := ParseTarget(u); !errors.Is(err, errs.ErrUnrecognizedURL) {
			t.Errorf("expected ErrUnrecognizedURL for %q, got: %v", u, err)
		}
	}
}

const nestedSyllabusJSON = `{
  "data": [
    {"lesson": {
      "lesson": {"id": "les-1", "name": "Week 1 Intro"},
      "medias": [{"id": "med-1", "mediaType": "Video", "isAvailable": true}],
      "hasContent": true, "hasVideo": true,
      "startTimeUTC": "2024-03-04T10:00:00Z"
    }},
    {"lesson": {
      "lesson": {"id": "les-2", "name": "Week 2"},
      "medias": [{"id": "med-2", "mediaType": "Video", "isAvailable": false}],
      "hasContent": true, "hasVideo": true,
      "startTimeUTC": "2024-03-11T10:00:00Z"
    }},
    {"lesson": {
      "lesson": {"id": "les-3", "name": "Reading week"},
      "medias": [],
      "hasContent": false, "hasVideo": false
    }}
  ]
}`

func TestParseSyllabusNestedShape(t *testing.T) {
	syl, err := parseSyllabus([]byte(nestedSyllabusJSON))
	if err != nil {
		t.Fatalf("expected nested syllabus to parse, got: %v", err)
	}
	if syl.variant != "nested" {
		t.Errorf("variant = %q, want 'nested'", syl.variant)
	}
	if len(syl.entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(syl.entries))
	}

	// First entry has an available video media
	if syl.entries[0].mediaID != "med-1" {
		t.Errorf("entries[0].mediaID = %q, want 'med-1'", syl.entries[0].mediaID)
	}
	if syl.entries[0].date != "2024-03-04" {
		t.Errorf("entries[0].date = %q, want '2024-03-04'", syl.entries[0].date)
	}

	// Second entry's media is unavailable
	if syl.entries[1].mediaID != "" {
		t.Errorf("entries[1].mediaID = %q, want empty", syl.entries[1].mediaID)
	}
	if !syl.entries[1].hasVideo {
		t.Error("entries[1].hasVideo = false, want true")
	}

	// Third entry has no video at all
	if syl.entries[2].hasVideo {
		t.Error("entries[2].hasVideo = true, want false")
	}
}

func TestParseSyllabusFlatShape(t *testing.T) {
	flatJSON := `{"data": [
	  {"lesson": {"id": "les-9", "name": "Old shape", "startTime": "2019-05-01T09:00:00Z",
	    "medias": [{"id": "med-9", "mediaType": "Video", "isAvailable": true}]}}
	]}`

	syl, err := parseSyllabus([]byte(flatJSON))
	if err != nil {
		t.Fatalf("expected flat syllabus to parse, got: %v", err)
	}
	if syl.variant != "flat" {
		t.Errorf("variant = %q, want 'flat'", syl.variant)
	}
	if syl.entries[0].lessonID != "les-9" || syl.entries[0].mediaID != "med-9" {
		t.Errorf("unexpected entry: %+v", syl.entries[0])
	}
}

func TestParseSyllabusUnknownShape(t *testing.T) {
	if _, err := parseSyllabus([]byte(`{"data": [{"something": "else"}]}`)); !errors.Is(err, errs.ErrParse) {
		t.Fatalf("expected ErrParse for unknown shape, got: %v", err)
	}
	if _, err := parseSyllabus([]byte(`not json at all`)); !errors.Is(err, errs.ErrParse) {
		t.Fatalf("expected ErrParse for non-JSON body, got: %v", err)
	}
}

func testSession(t *testing.T) *models.Session {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create jar: %v", err)
	}
	return &models.Session{
		Client: &http.Client{Jar: jar, Timeout: 10 * time.Second},
		Jar:    jar,
	}
}

func TestFetchSyllabusStatuses(t *testing.T) {
	// 403 → authentication expired
	denied := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer denied.Close()

	s := New(testSession(t))
	if _, err := s.fetchSyllabus(context.Background(), target{kind: pageCourseHome, base: denied.URL, id: "sec"}); !errors.Is(err, errs.ErrAuthExpired) {
		t.Fatalf("expected ErrAuthExpired for 403, got: %v", err)
	}

	// 200 with an HTML body (login page) → authentication expired
	loginPage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>please log in</html>"))
	}))
	defer loginPage.Close()

	if _, err := s.fetchSyllabus(context.Background(), target{kind: pageCourseHome, base: loginPage.URL, id: "sec"}); !errors.Is(err, errs.ErrAuthExpired) {
		t.Fatalf("expected ErrAuthExpired for HTML body, got: %v", err)
	}

	// 500 → network error, not auth
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer broken.Close()

	if _, err := s.fetchSyllabus(context.Background(), target{kind: pageCourseHome, base: broken.URL, id: "sec"}); !errors.Is(err, errs.ErrNetwork) {
		t.Fatalf("expected ErrNetwork for 500, got: %v", err)
	}
}

func TestFetchSyllabusListingOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/section/sec-1/syllabus" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(nestedSyllabusJSON))
	}))
	defer server.Close()

	s := New(testSession(t))
	syl, err := s.fetchSyllabus(context.Background(), target{kind: pageCourseHome, base: server.URL, id: "sec-1"})
	if err != nil {
		t.Fatalf("fetchSyllabus failed: %v", err)
	}

	refs := syl.lectureRefs(target{base: server.URL})
	if len(refs) != 3 {
		t.Fatalf("expected 3 refs, got %d", len(refs))
	}
	for i, ref := range refs {
		if ref.Position != i {
			t.Errorf("refs[%d].Position = %d, listing order must be preserved", i, ref.Position)
		}
	}
	if refs[0].LessonID != "les-1" || refs[2].LessonID != "les-3" {
		t.Errorf("unexpected ordering: %+v", refs)
	}
}
