// Package command holds external tool names and argument constants.
package command

// yt-dlp
const (
	YTDLP      = "yt-dlp"
	CookiePath = "--cookies"
	Output     = "--output"
	NoPart     = "--no-part"
	Quiet      = "--quiet"
	NoWarnings = "--no-warnings"
	Newline    = "--newline"
	Progress   = "--progress"
)

// ffmpeg is not invoked directly, yt-dlp shells out to it when an
// audio/video merge is needed. It still must exist on $PATH.
const (
	FFmpeg = "ffmpeg"
)
