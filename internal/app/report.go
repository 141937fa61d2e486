package app

import (
	"lecturr/internal/domain/consts"
	"lecturr/internal/models"
	"lecturr/internal/utils/logging"
)

// LogReport prints the terminal report: per-outcome counts plus every
// failure with its lecture title for diagnosis.
func LogReport(report *models.Report) {
	saved, skipped, failed := report.Counts()

	logging.P("")
	logging.P("%s===== Run report =====%s", consts.ColorCyan, consts.ColorReset)
	logging.P("Saved:   %d", saved)
	logging.P("Skipped: %d", skipped)
	logging.P("Failed:  %d", failed)

	for _, res := range report.Results {
		switch res.Outcome {
		case models.OutcomeSaved:
			logging.P("%s[Saved]%s   %s -> %s", consts.ColorGreen, consts.ColorReset, res.Lecture.Title, res.Path)
		case models.OutcomeSkipped:
			logging.P("%s[Skipped]%s %s (%s)", consts.ColorYellow, consts.ColorReset, res.Lecture.Title, res.Reason)
		}
	}

	// Failures last, so they are on screen when the run ends
	for _, res := range report.Failures() {
		logging.P("%s[Failed]%s  %s: %v", consts.ColorRed, consts.ColorReset, res.Lecture.Title, res.Err)
	}
}
