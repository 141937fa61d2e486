// Package auth loads the browser-exported session used to authenticate
// against the platform. It never performs a login itself.
package auth

import (
	"bufio"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"lecturr/internal/domain/errs"
	"lecturr/internal/utils/logging"

	"github.com/browserutils/kooky"
	// Register all browser cookie stores for kooky:
	_ "github.com/browserutils/kooky/browser/all"
)

var netscapeHeaders = []string{
	"# Netscape HTTP Cookie File",
	"# HTTP Cookie File",
}

// ReadCookieFile parses a Netscape-format cookie jar and returns the
// cookies scoped to the target domain, skipping expired entries.
func ReadCookieFile(path, targetDomain string) ([]*http.Cookie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open cookies file: %v", errs.ErrConfiguration, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			logging.E("Failed to close cookies file %q: %v", path, err)
		}
	}()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return nil, fmt.Errorf("%w: cookies file must not be empty", errs.ErrConfiguration)
	}

	header := strings.TrimRight(scanner.Text(), "\r")
	if !recognizedHeader(header) {
		return nil, fmt.Errorf("%w: not a recognized cookies file (expected a Netscape cookie jar)", errs.ErrConfiguration)
	}

	var cookies []*http.Cookie
	now := time.Now()

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		// Curl exports prefix HttpOnly cookies
		line = strings.TrimPrefix(line, "#HttpOnly_")

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		items := strings.Split(line, "\t")
		if len(items) != 7 {
			return nil, fmt.Errorf("%w: invalid number of columns in cookies file", errs.ErrConfiguration)
		}

		domain := strings.TrimPrefix(items[0], ".")
		if domain != targetDomain {
			continue
		}

		c := &http.Cookie{
			Name:   items[5],
			Value:  items[6],
			Path:   items[2],
			Domain: items[0],
			Secure: strings.EqualFold(items[3], "TRUE"),
		}

		if unix, err := strconv.ParseInt(items[4], 10, 64); err == nil && unix > 0 {
			c.Expires = time.Unix(unix, 0)
			if c.Expires.Before(now) {
				logging.D(2, "Skipping expired cookie %q for %s", c.Name, domain)
				continue
			}
		}

		cookies = append(cookies, c)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: error reading cookies file: %v", errs.ErrConfiguration, err)
	}

	return cookies, nil
}

func recognizedHeader(line string) bool {
	for _, h := range netscapeHeaders {
		if line == h {
			return true
		}
	}
	return false
}

// BrowserCookies reads live session cookies for the platform domain
// straight out of the local browser stores, trying each store in turn.
func BrowserCookies(domain string) ([]*http.Cookie, error) {
	var cookies []*http.Cookie

	for _, store := range kooky.FindAllCookieStores() {
		browserName := store.Browser()
		logging.D(2, "Attempting to read cookies from %s", browserName)

		kookyCookies, err := store.ReadCookies(kooky.Valid, kooky.Domain(domain))
		if err != nil {
			logging.D(2, "Failed to read cookies from %s: %v", browserName, err)
			continue
		}

		if len(kookyCookies) > 0 {
			logging.I("Read %d cookies from %s for %s", len(kookyCookies), browserName, domain)
			cookies = append(cookies, convertToHTTPCookies(kookyCookies)...)
		}
	}

	if len(cookies) == 0 {
		logging.I("No browser cookies found for %s", domain)
		return nil, nil
	}
	return cookies, nil
}

// convertToHTTPCookies converts kooky cookies to http.Cookie format.
func convertToHTTPCookies(kookyCookies []*kooky.Cookie) []*http.Cookie {
	httpCookies := make([]*http.Cookie, len(kookyCookies))
	for i, c := range kookyCookies {
		httpCookies[i] = &http.Cookie{
			Name:   c.Name,
			Value:  c.Value,
			Path:   c.Path,
			Domain: c.Domain,
			Secure: c.Secure,
		}
	}
	return httpCookies
}

// WriteNetscapeFile saves cookies to a file in Netscape format so the
// yt-dlp subprocess can share the same authenticated identity.
func WriteNetscapeFile(cookies []*http.Cookie, domain, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			logging.E("Failed to close file %q due to error: %v", path, err)
		}
	}()

	// Write the header for the Netscape cookies file
	if _, err := file.WriteString("# Netscape HTTP Cookie File\n# This is a generated file! Do not edit.\n\n"); err != nil {
		return err
	}

	logging.D(1, "Saving %d cookies to file %s...", len(cookies), path)

	for _, cookie := range cookies {
		cDomain := cookie.Domain
		if cDomain == "" {
			cDomain = domain
		}

		if !strings.HasPrefix(cDomain, ".") && strings.Count(cDomain, ".") > 1 {
			cDomain = "." + cDomain
		}

		secure := "FALSE"
		if cookie.Secure {
			secure = "TRUE"
		}

		expires := int64(0)
		if !cookie.Expires.IsZero() {
			expires = cookie.Expires.Unix()
		}

		if _, err := fmt.Fprintf(file, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			cDomain, "FALSE", cookie.Path, secure, expires, cookie.Name, cookie.Value); err != nil {
			return err
		}
	}
	return nil
}
