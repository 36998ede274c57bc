// Package parser turns raw, loosely structured statement text into discrete
// trip records. The text is already OCR/extracted upstream; the parser makes
// no attempt to validate that it is reasonable and never fails on malformed
// input, it simply emits fewer records.
package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/transitpass/concession-backend-go/internal/models"
)

// UnknownDate marks a transaction whose date header could not be resolved
// within the lookback window.
const UnknownDate = "Unknown"

// dateLookbackLines bounds the backward scan for the date header owning a
// transaction line.
const dateLookbackLines = 4

// ParsedTrip is one transaction line lifted off a statement, paired with the
// best-effort date resolved from the nearest header above it.
type ParsedTrip struct {
	Date          string  `json:"date"` // DD MMM YYYY, or UnknownDate
	Time          string  `json:"time"`
	Mode          string  `json:"mode"`
	RouteID       string  `json:"routeId,omitempty"`
	StartLocation string  `json:"startLocation"`
	EndLocation   string  `json:"endLocation"`
	Fare          float64 `json:"fare"`
}

var (
	// Date header lines look like "03 Jan 2025". They are remembered for the
	// transaction lines below them but are not themselves emitted.
	dateHeaderRe = regexp.MustCompile(`^\d{1,2} [A-Za-z]{3} \d{4}$`)

	// Transaction grammars:
	//   <time> Bus <routeId> <startLocation> - <endLocation> $ <fare>
	//   <time> Train <startLocation> - <endLocation> $ <fare>
	busLineRe   = regexp.MustCompile(`(?i)^(\d{1,2}:\d{2}(?:\s?[AP]M)?)\s+Bus\s+(\S+)\s+(.+?)\s*-\s*(.+?)\s*\$\s*(\d+(?:\.\d+)?)$`)
	trainLineRe = regexp.MustCompile(`(?i)^(\d{1,2}:\d{2}(?:\s?[AP]M)?)\s+Train\s+(.+?)\s*-\s*(.+?)\s*\$\s*(\d+(?:\.\d+)?)$`)
)

// Parse extracts trip records from the full text of one statement, preserving
// input order. Lines matching neither grammar are skipped silently; a
// statement with zero matching lines yields an empty slice and the caller
// decides whether that constitutes a failure.
func Parse(text string) []ParsedTrip {
	lines := splitLines(text)

	var trips []ParsedTrip
	for i, line := range lines {
		if m := busLineRe.FindStringSubmatch(line); m != nil {
			fare, err := strconv.ParseFloat(m[5], 64)
			if err != nil {
				continue
			}
			trips = append(trips, ParsedTrip{
				Date:          dateFor(lines, i),
				Time:          m[1],
				Mode:          models.ModeBus,
				RouteID:       m[2],
				StartLocation: m[3],
				EndLocation:   m[4],
				Fare:          fare,
			})
			continue
		}
		if m := trainLineRe.FindStringSubmatch(line); m != nil {
			fare, err := strconv.ParseFloat(m[4], 64)
			if err != nil {
				continue
			}
			trips = append(trips, ParsedTrip{
				Date:          dateFor(lines, i),
				Time:          m[1],
				Mode:          models.ModeRail,
				StartLocation: m[2],
				EndLocation:   m[3],
				Fare:          fare,
			})
		}
	}
	return trips
}

// splitLines splits the statement into trimmed, non-empty lines in order.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if t := strings.TrimSpace(l); t != "" {
			lines = append(lines, t)
		}
	}
	return lines
}

// dateFor scans backward from the transaction at idx for the nearest date
// header, giving up after dateLookbackLines lines.
func dateFor(lines []string, idx int) string {
	for back := 1; back <= dateLookbackLines && idx-back >= 0; back++ {
		if dateHeaderRe.MatchString(lines[idx-back]) {
			return lines[idx-back]
		}
	}
	return UnknownDate
}
