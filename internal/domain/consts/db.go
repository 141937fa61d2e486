package consts

// Tables
const (
	DBDownloads = "downloads"
)

// Download table columns
const (
	QDLLessonID    = "lesson_id"
	QDLTitle       = "title"
	QDLFilePath    = "file_path"
	QDLFileSize    = "file_size"
	QDLCompletedAt = "completed_at"
)
