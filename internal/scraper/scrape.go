// Package scraper discovers lecture references from course and single
// lecture page URLs.
package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lecturr/internal/domain/consts"
	"lecturr/internal/domain/errs"
	"lecturr/internal/domain/regex"
	"lecturr/internal/models"
	"lecturr/internal/parsing"
	"lecturr/internal/utils/logging"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly"
)

// pageKind tags the recognized URL shapes.
type pageKind int

const (
	pageCourseHome pageKind = iota
	pageLessonClassroom
)

// target is a recognized page URL broken into its parts.
type target struct {
	kind pageKind
	base string // scheme + regional host
	id   string // section or lesson ID
}

// Scraper discovers lectures visible to the authenticated session.
type Scraper struct {
	session *models.Session
}

// New returns a new Scraper instance.
func New(session *models.Session) *Scraper {
	return &Scraper{session: session}
}

// Discover enumerates every lecture reachable from the given URL: the
// full listing for a course home page, a single entry for a classroom
// page. Listing order is preserved.
func (s *Scraper) Discover(ctx context.Context, rawURL string) ([]models.LectureRef, error) {
	t, err := ParseTarget(rawURL)
	if err != nil {
		return nil, err
	}

	switch t.kind {
	case pageCourseHome:
		return s.discoverCourse(ctx, t)
	case pageLessonClassroom:
		return s.discoverLesson(t)
	default:
		return nil, fmt.Errorf("%w: %s", errs.ErrUnrecognizedURL, rawURL)
	}
}

// ParseTarget matches a raw URL against the recognized page shapes.
func ParseTarget(rawURL string) (target, error) {
	rawURL = strings.TrimSpace(rawURL)

	if m := regex.SectionURLCompile().FindStringSubmatch(rawURL); m != nil {
		return target{kind: pageCourseHome, base: m[1], id: m[2]}, nil
	}
	if m := regex.LessonURLCompile().FindStringSubmatch(rawURL); m != nil {
		return target{kind: pageLessonClassroom, base: m[1], id: m[2]}, nil
	}
	return target{}, fmt.Errorf("%w: %q (expected .../section/<id>/home or .../lesson/<id>/classroom)", errs.ErrUnrecognizedURL, rawURL)
}

// PlatformBase returns the scheme + regional host of a recognized URL,
// used to scope cookies to the right platform domain.
func PlatformBase(rawURL string) (string, error) {
	t, err := ParseTarget(rawURL)
	if err != nil {
		return "", err
	}
	return t.base, nil
}

// discoverCourse pulls the full course listing from the syllabus
// endpoint. The endpoint returns the entire listing in one response,
// there is no paging to chase.
func (s *Scraper) discoverCourse(ctx context.Context, t target) ([]models.LectureRef, error) {
	syl, err := s.fetchSyllabus(ctx, t)
	if err != nil {
		return nil, err
	}

	refs := syl.lectureRefs(t)
	logging.I("%d lecture recordings found", len(refs))
	return refs, nil
}

// discoverLesson produces the single lecture referenced by a classroom
// page URL. Title and date come from the page itself when reachable.
func (s *Scraper) discoverLesson(t target) ([]models.LectureRef, error) {
	ref := models.LectureRef{
		LessonID:  t.id,
		Title:     "Lecture " + shortID(t.id),
		HasVideo:  true,
		Position:  0,
		SourceURL: t.base,
	}

	if title, date := s.scrapeLessonPage(t); title != "" {
		ref.Title = title
		ref.Date = date
	}

	return []models.LectureRef{ref}, nil
}

// scrapeLessonPage best-effort scrapes the classroom page for display
// metadata. Failures fall back to the lesson ID, they never abort
// discovery.
func (s *Scraper) scrapeLessonPage(t target) (title, date string) {
	collector := colly.NewCollector()
	collector.SetRequestTimeout(30 * time.Second)
	collector.SetCookieJar(s.session.Jar)

	collector.OnHTML("html", func(e *colly.HTMLElement) {
		title = extractTitle("title", e.DOM)
		date = extractDate(`meta[name="date"]`, e.DOM)
	})

	pageURL := fmt.Sprintf(consts.ClassroomPathFmt, t.base, t.id)
	if err := collector.Visit(pageURL); err != nil {
		logging.D(1, "Could not scrape classroom page %q for metadata: %v", pageURL, err)
		return "", ""
	}
	collector.Wait()

	return title, date
}

// extractTitle grabs the lecture title from the page.
func extractTitle(findStr string, doc *goquery.Selection) string {
	title := strings.TrimSpace(doc.Find(findStr).First().Text())

	// Strip the platform suffix some regions append to the page title
	title = strings.TrimSpace(strings.TrimSuffix(title, "- Echo360"))

	if title != "" {
		logging.D(2, "Scraped title: %s", title)
	} else {
		logging.D(1, "Title not found")
	}
	return title
}

// extractDate pulls the recording date from page metadata.
func extractDate(findStr string, doc *goquery.Selection) string {
	raw, ok := doc.Find(findStr).Attr("content")
	if !ok || strings.TrimSpace(raw) == "" {
		logging.D(1, "Recording date not found")
		return ""
	}

	parsed, err := parsing.ParseLectureDate(strings.TrimSpace(raw))
	if err != nil {
		logging.D(1, "%v", err)
		return ""
	}
	logging.D(2, "Scraped recording date: %s", parsed)
	return parsed
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
