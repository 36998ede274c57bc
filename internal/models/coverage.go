package models

// Coverage confidence levels. "unknown" covers both an undeterminable window
// (no statements or no window) and a window missing too many days to trust.
const (
	ConfidenceComplete = "complete"
	ConfidencePartial  = "partial"
	ConfidenceUnknown  = "unknown"
)

// CoverageGap is one contiguous run of days inside the analysis window with
// no statement coverage. Start and End are inclusive YYYY-MM-DD dates.
type CoverageGap struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	DaysCount int    `json:"daysCount"`
}

// CoverageResult reports how well uploaded statements back an analysis
// window.
type CoverageResult struct {
	HasGaps           bool          `json:"hasGaps"`
	MissingDateRanges []CoverageGap `json:"missingDateRanges"`
	TotalMissingDays  int           `json:"totalMissingDays"`
	ConfidenceLevel   string        `json:"confidenceLevel"`
	CoverageMessage   string        `json:"coverageMessage,omitempty"`
}
