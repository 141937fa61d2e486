package models

// Outcome is the terminal state of one lecture in a run.
type Outcome int

const (
	OutcomeSaved Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "Saved"
	case OutcomeSkipped:
		return "Skipped"
	case OutcomeFailed:
		return "Failed"
	default:
		return "unknown"
	}
}

// DownloadResult records the outcome for a single lecture. Exactly one
// is produced per attempted LectureRef.
type DownloadResult struct {
	Lecture LectureRef
	Outcome Outcome
	Path    string // set when Saved
	Reason  string // set when Skipped
	Err     error  // set when Failed
}

// Report collects the per-lecture results of a run in discovery order.
type Report struct {
	Results []DownloadResult
}

// Add appends a result to the report.
func (r *Report) Add(res DownloadResult) {
	r.Results = append(r.Results, res)
}

// Counts tallies the outcomes in the report.
func (r *Report) Counts() (saved, skipped, failed int) {
	for _, res := range r.Results {
		switch res.Outcome {
		case OutcomeSaved:
			saved++
		case OutcomeSkipped:
			skipped++
		case OutcomeFailed:
			failed++
		}
	}
	return saved, skipped, failed
}

// Failures returns the failed results only.
func (r *Report) Failures() []DownloadResult {
	var failures []DownloadResult
	for _, res := range r.Results {
		if res.Outcome == OutcomeFailed {
			failures = append(failures, res)
		}
	}
	return failures
}
