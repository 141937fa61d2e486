package auth

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"lecturr/internal/domain/errs"
	"lecturr/internal/models"

	"golang.org/x/net/publicsuffix"
)

// NewSession builds the process-wide session: an HTTP client whose
// cookie jar is primed with the platform cookies, plus the run
// configuration. The session is read-only after this returns.
func NewSession(platformURL string, cookies []*http.Cookie, cookieFile, outputDir string, experimental bool, skip int) (*models.Session, error) {
	if len(cookies) == 0 {
		return nil, fmt.Errorf("%w: no cookies found for the platform domain", errs.ErrConfiguration)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	u, err := url.Parse(platformURL)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid platform URL: %v", errs.ErrConfiguration, err)
	}
	jar.SetCookies(u, cookies)

	return &models.Session{
		Client: &http.Client{
			Jar:     jar,
			Timeout: 60 * time.Second,
		},
		Jar:          jar,
		CookieFile:   cookieFile,
		OutputDir:    outputDir,
		Experimental: experimental,
		Skip:         skip,
	}, nil
}
