// Package file handles output file naming and verification.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lecturr/internal/domain/regex"
	"lecturr/internal/models"
)

// SanitizeFilename replaces characters that are unsafe on common
// filesystems and collapses runs of whitespace.
func SanitizeFilename(name string) string {
	name = regex.InvalidCharsCompile().ReplaceAllString(name, "_")
	name = regex.ExtraSpacesCompile().ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// LectureBaseName derives the output filename stem for a lecture from
// its date and title.
func LectureBaseName(lec models.LectureRef) string {
	base := lec.Title
	if base == "" {
		base = "Lecture " + lec.LessonID
	}
	if lec.Date != "" {
		base = lec.Date + " - " + base
	}
	return SanitizeFilename(base)
}

// UniqueDestPath returns a destination path for the lecture that does
// not collide with files already on disk or names claimed earlier in
// this run. Collisions resolve deterministically: first by appending
// the lesson identifier, then a numeric counter.
func UniqueDestPath(dir, base, lessonID, ext string, taken map[string]struct{}) string {
	candidate := filepath.Join(dir, base+"."+ext)
	if free(candidate, taken) {
		taken[candidate] = struct{}{}
		return candidate
	}

	withID := fmt.Sprintf("%s_%s", base, shortID(lessonID))
	candidate = filepath.Join(dir, withID+"."+ext)
	for n := 2; !free(candidate, taken); n++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d).%s", withID, n, ext))
	}

	taken[candidate] = struct{}{}
	return candidate
}

func free(path string, taken map[string]struct{}) bool {
	if _, claimed := taken[path]; claimed {
		return false
	}
	_, err := os.Stat(path)
	return os.IsNotExist(err)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
