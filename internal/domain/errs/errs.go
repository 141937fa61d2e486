// Package errs holds the sentinel error values used across lecturr.
//
// Wrap with fmt.Errorf("...: %w", ...) and inspect with errors.Is.
package errs

import "errors"

// Fatal at startup, no lectures are processed.
var (
	ErrConfiguration       = errors.New("configuration error")
	ErrExternalToolMissing = errors.New("required external tool not found")
	ErrUnrecognizedURL     = errors.New("unrecognized URL format")
)

// ErrAuthExpired aborts an in-progress run, every later request would
// fail the same way. Surfaces from HTTP 401/403 responses or from the
// platform serving its login page to a dead session.
var ErrAuthExpired = errors.New("authentication expired (refresh your cookies file)")

// Scoped to a single lecture, the batch continues past these.
var (
	ErrNetwork          = errors.New("network error")
	ErrParse            = errors.New("page structure did not match any known shape")
	ErrNoMediaAvailable = errors.New("no media available for lecture")
	ErrEmptyResponse    = errors.New("empty response body")
	ErrExternalTool     = errors.New("external tool failed")
)
