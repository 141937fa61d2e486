package models

// LectureRef identifies one recorded session within a course listing.
//
// Immutable once produced by the scraper. Position preserves listing
// order, which the '--skip' flag counts against.
type LectureRef struct {
	LessonID  string
	MediaID   string
	Title     string
	Date      string
	HasVideo  bool
	Position  int
	SourceURL string
}

// SourceKind tags how a resolved media source is acquired.
type SourceKind int

const (
	KindDirectFile SourceKind = iota
	KindAdaptiveManifest
)

func (k SourceKind) String() string {
	switch k {
	case KindDirectFile:
		return "direct file"
	case KindAdaptiveManifest:
		return "adaptive manifest"
	default:
		return "unknown"
	}
}

// MediaSource is a resolved, fetchable representation of a lecture's media.
type MediaSource struct {
	Kind          SourceKind
	URL           string
	SuggestedName string
	Ext           string
}
