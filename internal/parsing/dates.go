// Package parsing normalizes values scraped from the platform.
package parsing

import (
	"fmt"

	"github.com/araddon/dateparse"
)

// ParseLectureDate parses the various date formats the syllabus serves
// (RFC3339 timestamps, word dates) into yyyy-mm-dd for filenames.
func ParseLectureDate(dateString string) (string, error) {
	t, err := dateparse.ParseAny(dateString)
	if err != nil {
		return "", fmt.Errorf("unable to parse date: %s", dateString)
	}
	return t.Format("2006-01-02"), nil
}
