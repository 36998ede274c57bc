// Package coverage determines whether a requested analysis window is fully
// backed by uploaded statements. It detects missing statement coverage, not
// days within a covered month where the rider simply did not travel.
package coverage

import (
	"fmt"
	"sort"
	"time"

	"github.com/transitpass/concession-backend-go/internal/models"
)

const dayFormat = "2006-01-02"

// Confidence becomes "unknown" once at least this many days of the window
// are missing.
const partialDayLimit = 30

// monthNumbers maps full statement month names to calendar months. An
// unrecognized name falls back to January, mirroring how statements with a
// garbled month were always treated.
var monthNumbers = map[string]time.Month{
	"January":   time.January,
	"February":  time.February,
	"March":     time.March,
	"April":     time.April,
	"May":       time.May,
	"June":      time.June,
	"July":      time.July,
	"August":    time.August,
	"September": time.September,
	"October":   time.October,
	"November":  time.November,
	"December":  time.December,
}

// interval is the contiguous calendar-month span one statement covers.
type interval struct {
	first time.Time
	last  time.Time
}

// Detect reports coverage of the inclusive [start, end] day window by the
// given statements. A zero start or end, or an empty statement set, yields
// the explicit "cannot determine" state, which is distinct from "fully
// covered".
func Detect(statements []models.Statement, start, end time.Time) models.CoverageResult {
	if start.IsZero() || end.IsZero() {
		return unknownResult()
	}

	start = truncateToDay(start)
	end = truncateToDay(end)

	// Statements without a resolvable period contribute no interval; with
	// none left there is nothing to measure coverage against.
	intervals := monthIntervals(statements)
	if len(intervals) == 0 {
		return unknownResult()
	}
	gaps := []models.CoverageGap{}

	// Gap before the first covered month.
	first := intervals[0].first
	if start.Before(first) {
		gaps = append(gaps, makeGap(start, first.AddDate(0, 0, -1)))
	}

	// Gaps between consecutive covered months, clipped to the window and
	// recorded only when the clipped range is non-empty.
	for i := 0; i < len(intervals)-1; i++ {
		gapStart := intervals[i].last.AddDate(0, 0, 1)
		gapEnd := intervals[i+1].first.AddDate(0, 0, -1)
		if gapEnd.Before(gapStart) {
			continue
		}
		clippedStart := maxDay(gapStart, start)
		clippedEnd := minDay(gapEnd, end)
		if clippedEnd.Before(clippedStart) {
			continue
		}
		gaps = append(gaps, makeGap(clippedStart, clippedEnd))
	}

	// Gap after the last covered month.
	last := intervals[len(intervals)-1].last
	if end.After(last) {
		gaps = append(gaps, makeGap(maxDay(start, last.AddDate(0, 0, 1)), end))
	}

	totalMissing := 0
	for _, g := range gaps {
		totalMissing += g.DaysCount
	}

	result := models.CoverageResult{
		HasGaps:           len(gaps) > 0,
		MissingDateRanges: gaps,
		TotalMissingDays:  totalMissing,
	}
	switch {
	case !result.HasGaps:
		result.ConfidenceLevel = models.ConfidenceComplete
	case totalMissing < partialDayLimit:
		result.ConfidenceLevel = models.ConfidencePartial
	default:
		result.ConfidenceLevel = models.ConfidenceUnknown
	}
	result.CoverageMessage = coverageMessage(gaps, totalMissing)

	return result
}

func unknownResult() models.CoverageResult {
	return models.CoverageResult{
		HasGaps:           false,
		MissingDateRanges: []models.CoverageGap{},
		ConfidenceLevel:   models.ConfidenceUnknown,
		TotalMissingDays:  0,
	}
}

// monthIntervals maps each statement to the first/last day of its stated
// calendar month, collapses duplicate months and sorts ascending by start.
// Statements whose period could not be derived are skipped.
func monthIntervals(statements []models.Statement) []interval {
	seen := make(map[time.Time]bool, len(statements))
	intervals := make([]interval, 0, len(statements))
	for _, stmt := range statements {
		if stmt.StatementMonth == "" || stmt.StatementYear == 0 {
			continue
		}
		month, ok := monthNumbers[stmt.StatementMonth]
		if !ok {
			month = time.January
		}
		first := time.Date(stmt.StatementYear, month, 1, 0, 0, 0, 0, time.UTC)
		if seen[first] {
			continue
		}
		seen[first] = true
		intervals = append(intervals, interval{
			first: first,
			last:  first.AddDate(0, 1, -1),
		})
	}
	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].first.Before(intervals[j].first)
	})
	return intervals
}

func makeGap(start, end time.Time) models.CoverageGap {
	return models.CoverageGap{
		Start:     start.Format(dayFormat),
		End:       end.Format(dayFormat),
		DaysCount: inclusiveDays(start, end),
	}
}

// coverageMessage renders the caller-facing warning for a gapped window.
func coverageMessage(gaps []models.CoverageGap, totalMissing int) string {
	switch len(gaps) {
	case 0:
		return ""
	case 1:
		g := gaps[0]
		plural := ""
		if g.DaysCount > 1 {
			plural = "s"
		}
		return fmt.Sprintf("Your selected window includes %d day%s with missing statement coverage (%s to %s).",
			g.DaysCount, plural, g.Start, g.End)
	default:
		return fmt.Sprintf("Your selected window includes %d days across %d gaps with missing statement coverage.",
			totalMissing, len(gaps))
	}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func inclusiveDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func maxDay(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minDay(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
