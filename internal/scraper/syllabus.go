package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"lecturr/internal/domain/consts"
	"lecturr/internal/domain/errs"
	"lecturr/internal/models"
	"lecturr/internal/parsing"
	"lecturr/internal/utils/logging"
)

// syllabusMedia is one media attachment on a lesson.
type syllabusMedia struct {
	ID          string `json:"id"`
	MediaType   string `json:"mediaType"`
	IsAvailable bool   `json:"isAvailable"`
}

// lectureEntry is one listing row, normalized across syllabus shapes.
type lectureEntry struct {
	lessonID string
	title    string
	date     string
	mediaID  string
	hasVideo bool
}

// syllabus is a parsed course listing, tagged with the JSON shape
// variant that matched so callers can report which shape the platform
// is currently serving.
type syllabus struct {
	variant string
	entries []lectureEntry
}

// nestedSyllabus matches the shape the platform serves today:
// data[].lesson.lesson holds the lesson record, data[].lesson carries
// the media attachments beside it.
type nestedSyllabus struct {
	Data []struct {
		Lesson struct {
			Lesson struct {
				ID   string `json:"id"`
				Name string `json:"name"`
			} `json:"lesson"`
			Medias       []syllabusMedia `json:"medias"`
			HasContent   bool            `json:"hasContent"`
			HasVideo     bool            `json:"hasVideo"`
			StartTimeUTC string          `json:"startTimeUTC"`
		} `json:"lesson"`
	} `json:"data"`
}

// flatSyllabus matches the older shape with the lesson record directly
// under data[].lesson.
type flatSyllabus struct {
	Data []struct {
		Lesson struct {
			ID        string          `json:"id"`
			Name      string          `json:"name"`
			Medias    []syllabusMedia `json:"medias"`
			StartTime string          `json:"startTime"`
		} `json:"lesson"`
	} `json:"data"`
}

// fetchSyllabus retrieves and parses the course listing JSON.
func (s *Scraper) fetchSyllabus(ctx context.Context, t target) (*syllabus, error) {
	sylURL := fmt.Sprintf(consts.SyllabusPathFmt, t.base, t.id)
	logging.D(1, "Fetching syllabus from %q", sylURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sylURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build syllabus request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.session.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: syllabus request failed: %v", errs.ErrNetwork, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logging.E("Failed to close syllabus response body: %v", err)
		}
	}()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: syllabus request returned HTTP %d", errs.ErrAuthExpired, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: syllabus request returned HTTP %d", errs.ErrNetwork, resp.StatusCode)
	}

	// A dead session gets the login page back instead of JSON
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		return nil, fmt.Errorf("%w: syllabus response was %q, not JSON", errs.ErrAuthExpired, ct)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed reading syllabus response: %v", errs.ErrNetwork, err)
	}

	syl, err := parseSyllabus(body)
	if err != nil {
		return nil, err
	}

	logging.D(1, "Parsed syllabus (%s shape): %d entries", syl.variant, len(syl.entries))
	return syl, nil
}

// parseSyllabus probes the known syllabus JSON shapes in priority
// order and normalizes whichever matches.
func parseSyllabus(body []byte) (*syllabus, error) {
	var nested nestedSyllabus
	if err := json.Unmarshal(body, &nested); err == nil {
		entries := make([]lectureEntry, 0, len(nested.Data))
		for _, row := range nested.Data {
			if row.Lesson.Lesson.ID == "" {
				continue
			}
			entries = append(entries, lectureEntry{
				lessonID: row.Lesson.Lesson.ID,
				title:    row.Lesson.Lesson.Name,
				date:     normalizeDate(row.Lesson.StartTimeUTC),
				mediaID:  pickVideoMedia(row.Lesson.Medias),
				hasVideo: row.Lesson.HasContent && row.Lesson.HasVideo,
			})
		}
		if len(entries) > 0 || len(nested.Data) == 0 {
			return &syllabus{variant: "nested", entries: entries}, nil
		}
	}

	var flat flatSyllabus
	if err := json.Unmarshal(body, &flat); err == nil {
		entries := make([]lectureEntry, 0, len(flat.Data))
		for _, row := range flat.Data {
			if row.Lesson.ID == "" {
				continue
			}
			mediaID := pickVideoMedia(row.Lesson.Medias)
			entries = append(entries, lectureEntry{
				lessonID: row.Lesson.ID,
				title:    row.Lesson.Name,
				date:     normalizeDate(row.Lesson.StartTime),
				mediaID:  mediaID,
				hasVideo: mediaID != "",
			})
		}
		if len(entries) > 0 {
			return &syllabus{variant: "flat", entries: entries}, nil
		}
	}

	return nil, fmt.Errorf("%w: syllabus fields missing (the platform may have changed, please report this)", errs.ErrParse)
}

// pickVideoMedia selects the first available video attachment.
func pickVideoMedia(medias []syllabusMedia) string {
	for _, m := range medias {
		if m.MediaType == "Video" && m.IsAvailable {
			return m.ID
		}
	}
	return ""
}

func normalizeDate(raw string) string {
	if raw == "" {
		return ""
	}
	d, err := parsing.ParseLectureDate(raw)
	if err != nil {
		logging.D(2, "Could not parse lecture date %q: %v", raw, err)
		return ""
	}
	return d
}

// lectureRefs converts the normalized listing into LectureRefs,
// preserving listing order.
func (syl *syllabus) lectureRefs(t target) []models.LectureRef {
	refs := make([]models.LectureRef, 0, len(syl.entries))
	for i, e := range syl.entries {
		title := e.title
		if title == "" {
			title = fmt.Sprintf("Lecture %d", i+1)
		}
		refs = append(refs, models.LectureRef{
			LessonID:  e.lessonID,
			MediaID:   e.mediaID,
			Title:     title,
			Date:      e.date,
			HasVideo:  e.hasVideo,
			Position:  i,
			SourceURL: t.base,
		})
	}
	return refs
}
