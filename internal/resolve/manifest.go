package resolve

import (
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"lecturr/internal/domain/consts"
	"lecturr/internal/domain/errs"
	"lecturr/internal/domain/regex"
	"lecturr/internal/file"
	"lecturr/internal/models"
	"lecturr/internal/utils/logging"

	"github.com/gocolly/colly"
)

// manifestSources scrapes the classroom page for the adaptive stream
// manifests embedded in its source. The page inlines JSON-escaped m3u8
// URIs, one set per camera source; only the full audio/video mixes are
// usable without muxing individual tracks by hand.
func (r *Resolver) manifestSources(lec models.LectureRef) ([]models.MediaSource, error) {
	pageURL := fmt.Sprintf(consts.ClassroomPathFmt, lec.SourceURL, lec.LessonID)
	logging.D(1, "Scraping %q for stream manifests...", pageURL)

	body, err := r.fetchClassroomPage(pageURL)
	if err != nil {
		return nil, err
	}

	uris := extractManifestURIs(body)
	if len(uris) == 0 {
		return nil, fmt.Errorf("%w: no stream manifests found on classroom page", errs.ErrNoMediaAvailable)
	}

	sources := make([]models.MediaSource, 0, len(uris))
	for i, uri := range uris {
		name := file.LectureBaseName(lec)
		if i > 0 {
			name = fmt.Sprintf("%s (source %d)", name, i+1)
		}
		sources = append(sources, models.MediaSource{
			Kind:          models.KindAdaptiveManifest,
			URL:           uri,
			SuggestedName: name,
			Ext:           consts.VideoExt,
		})
	}
	return sources, nil
}

// fetchClassroomPage pulls the raw classroom page with the session
// cookies attached.
func (r *Resolver) fetchClassroomPage(pageURL string) (string, error) {
	collector := colly.NewCollector()
	collector.SetRequestTimeout(60 * time.Second)
	collector.SetCookieJar(r.session.Jar)

	var (
		body       string
		statusCode int
	)

	collector.OnResponse(func(resp *colly.Response) {
		body = string(resp.Body)
	})
	collector.OnError(func(resp *colly.Response, _ error) {
		if resp != nil {
			statusCode = resp.StatusCode
		}
	})

	if err := collector.Visit(pageURL); err != nil {
		switch statusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "", fmt.Errorf("%w: classroom page returned HTTP %d", errs.ErrAuthExpired, statusCode)
		default:
			return "", fmt.Errorf("%w: error visiting classroom page %q: %v", errs.ErrNetwork, pageURL, err)
		}
	}
	collector.Wait()

	return body, nil
}

// extractManifestURIs pulls the full-mix (audio+video) m3u8 URIs out of
// the page source, primary camera first.
func extractManifestURIs(body string) []string {
	matches := regex.M3U8URICompile().FindAllStringSubmatch(body, -1)

	unique := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		uri := strings.ReplaceAll(m[1], `\/`, "/")

		// Only the combined av streams play standalone
		if !strings.HasSuffix(uri, "_av.m3u8") {
			continue
		}
		unique[uri] = struct{}{}
	}

	uris := make([]string, 0, len(unique))
	for uri := range unique {
		uris = append(uris, uri)
	}

	// s1 (primary camera) sorts ahead of s2
	sort.Strings(uris)
	return uris
}
