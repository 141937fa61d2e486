// Package regex compiles and caches various regex expressions.
package regex

import (
	"regexp"
)

var (
	AnsiEscape   *regexp.Regexp
	SectionURL   *regexp.Regexp
	LessonURL    *regexp.Regexp
	M3U8URI      *regexp.Regexp
	InvalidChars *regexp.Regexp
	ExtraSpaces  *regexp.Regexp
)

// AnsiEscapeCompile compiles regex for ANSI escape codes
func AnsiEscapeCompile() *regexp.Regexp {
	if AnsiEscape == nil {
		AnsiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	}
	return AnsiEscape
}

// SectionURLCompile compiles regex for Echo360 course home page URLs.
// Group 1 captures the scheme + regional host, group 2 the section ID.
func SectionURLCompile() *regexp.Regexp {
	if SectionURL == nil {
		SectionURL = regexp.MustCompile(`^(https://echo360\.(?:net\.au|org\.uk|org|ca))/section/([0-9a-fA-F-]+)/home/?$`)
	}
	return SectionURL
}

// LessonURLCompile compiles regex for single lecture classroom page URLs.
// Group 1 captures the scheme + regional host, group 2 the lesson ID.
func LessonURLCompile() *regexp.Regexp {
	if LessonURL == nil {
		LessonURL = regexp.MustCompile(`^(https://echo360\.(?:net\.au|org\.uk|org|ca))/lesson/([0-9a-fA-F-]+)/classroom/?$`)
	}
	return LessonURL
}

// M3U8URICompile compiles regex for the JSON-escaped stream manifest URIs
// embedded in the classroom page source.
func M3U8URICompile() *regexp.Regexp {
	if M3U8URI == nil {
		M3U8URI = regexp.MustCompile(`\\"uri\\":\\"(https:\\/\\/.*?\\/s[0-2]_(?:a|v|av)\.m3u8)\?`)
	}
	return M3U8URI
}

// InvalidCharsCompile compiles regex for invalid filename characters
func InvalidCharsCompile() *regexp.Regexp {
	if InvalidChars == nil {
		InvalidChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)
	}
	return InvalidChars
}

// ExtraSpacesCompile compiles regex for extra spaces
func ExtraSpacesCompile() *regexp.Regexp {
	if ExtraSpaces == nil {
		ExtraSpaces = regexp.MustCompile(`\s+`)
	}
	return ExtraSpaces
}
