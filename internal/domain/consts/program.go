package consts

// Echo360 endpoints are unversioned and undocumented, shapes here mirror
// what the platform currently serves.
const (
	SyllabusPathFmt  = "%s/section/%s/syllabus"
	ClassroomPathFmt = "%s/lesson/%s/classroom"
	DownloadPathFmt  = "%s/media/download/%s/%s1.%s"
)

// Media download qualities, probed HD first.
const (
	QualityHD = "hd"
	QualitySD = "sd"
)

// Output files.
const (
	VideoExt       = "mp4"
	CookieFileName = "lecturr-cookies.txt"
	HistoryDBName  = "lecturr.db"
	LogFileName    = "lecturr.log"
	DirPerms       = 0o755
)

// Skip reasons shown in the final report.
const (
	SkipReasonNoDownload = "downloads not enabled (try experimental mode with '-x')"
	SkipReasonNoVideo    = "lecture has no video content"
	SkipReasonSavedPrior = "already saved by a previous run"
)
