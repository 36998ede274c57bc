// Package journey groups parsed trips into door-to-door journeys and
// calendar-day groups, annotates them against the stop registry and derives
// the aggregates the comparison engine consumes.
package journey

import (
	"math"
	"strings"
	"time"

	"github.com/transitpass/concession-backend-go/internal/models"
	"github.com/transitpass/concession-backend-go/internal/parser"
	"github.com/transitpass/concession-backend-go/internal/transit"
)

// statementDateFormat matches the date headers on statements, e.g. "03 Jan 2025".
const statementDateFormat = "02 Jan 2006"

// Policy controls how issue-flagged trips participate in the fare aggregates
// used for pass comparison. Flagged trips never contribute distance; whether
// their fares also drop out of the comparison totals is configurable, and
// the chosen policy is applied uniformly. Journey and day-group totals shown
// to the rider always include every fare charged.
type Policy struct {
	ExcludeFlaggedFares bool
}

// Group turns the parser's trip records into day groups of journeys,
// preserving statement order. Consecutive trips on the same date chain into
// one journey when the next trip starts where the previous one ended.
// Registry annotation fills per-trip distances and flags unresolved stops.
func Group(parsed []parser.ParsedTrip, reg *transit.Registry) []models.DayGroup {
	var groups []models.DayGroup
	index := make(map[string]int) // date -> position in groups

	for _, pt := range parsed {
		trip := models.Trip{
			Time:          pt.Time,
			Mode:          pt.Mode,
			RouteID:       pt.RouteID,
			StartLocation: pt.StartLocation,
			EndLocation:   pt.EndLocation,
			Fare:          pt.Fare,
		}

		pos, ok := index[pt.Date]
		if !ok {
			pos = len(groups)
			index[pt.Date] = pos
			groups = append(groups, models.DayGroup{
				Date: pt.Date,
				Day:  weekdayName(pt.Date),
			})
		}
		group := &groups[pos]

		if n := len(group.Journeys); n > 0 && chains(&group.Journeys[n-1], trip) {
			appendTrip(&group.Journeys[n-1], trip, reg)
		} else {
			group.Journeys = append(group.Journeys, models.Journey{
				Date:          group.Date,
				Day:           group.Day,
				StartLocation: trip.StartLocation,
			})
			appendTrip(&group.Journeys[len(group.Journeys)-1], trip, reg)
		}
	}

	for i := range groups {
		deriveGroupAggregates(&groups[i])
	}

	// The unknown-date group, when present, sorts after every dated group.
	for i := range groups {
		if groups[i].Date == parser.UnknownDate && i != len(groups)-1 {
			unknown := groups[i]
			groups = append(groups[:i], groups[i+1:]...)
			groups = append(groups, unknown)
			break
		}
	}
	return groups
}

// chains reports whether trip continues the journey, i.e. it starts where
// the journey currently ends.
func chains(j *models.Journey, trip models.Trip) bool {
	return equalNames(j.EndLocation, trip.StartLocation)
}

// appendTrip adds a trip to the journey, annotating it against the registry
// and updating the journey's derived fields.
func appendTrip(j *models.Journey, trip models.Trip, reg *transit.Registry) {
	if reg != nil {
		km, issue := reg.Annotate(trip)
		if issue != nil {
			issue.TripIndex = len(j.Trips)
			j.TripIssues = append(j.TripIssues, *issue)
		} else {
			trip.Distance = km
			switch trip.Mode {
			case models.ModeBus:
				j.BusDistance = round2(j.BusDistance + km)
			case models.ModeRail:
				j.MrtDistance = round2(j.MrtDistance + km)
			}
		}
	}
	j.Trips = append(j.Trips, trip)
	j.EndLocation = trip.EndLocation
	j.TotalFare = round2(j.TotalFare + trip.Fare)
}

// deriveGroupAggregates recomputes the day group's totals as the sum/union
// over its journeys.
func deriveGroupAggregates(g *models.DayGroup) {
	g.TotalFare = 0
	g.BusDistance = 0
	g.MrtDistance = 0
	g.TripIssues = nil
	for _, j := range g.Journeys {
		g.TotalFare = round2(g.TotalFare + j.TotalFare)
		g.BusDistance = round2(g.BusDistance + j.BusDistance)
		g.MrtDistance = round2(g.MrtDistance + j.MrtDistance)
		g.TripIssues = append(g.TripIssues, j.TripIssues...)
	}
}

// Totals derives the aggregated figures the recommendation engine consumes.
// Under the default policy every fare counts; with ExcludeFlaggedFares set,
// issue-flagged trips drop out of all three comparison totals.
func Totals(groups []models.DayGroup, policy Policy) models.FareTotals {
	var totals models.FareTotals
	for _, g := range groups {
		for _, j := range g.Journeys {
			flagged := flaggedIndexes(j)
			for i, trip := range j.Trips {
				if policy.ExcludeFlaggedFares && flagged[i] {
					continue
				}
				totals.TotalFareNoPass += trip.Fare
				if trip.Mode != models.ModeBus {
					totals.TotalFareExcludingBus += trip.Fare
				}
				if trip.Mode != models.ModeRail {
					totals.TotalFareExcludingMrt += trip.Fare
				}
			}
		}
	}
	totals.TotalFareNoPass = round2(totals.TotalFareNoPass)
	totals.TotalFareExcludingBus = round2(totals.TotalFareExcludingBus)
	totals.TotalFareExcludingMrt = round2(totals.TotalFareExcludingMrt)
	return totals
}

func flaggedIndexes(j models.Journey) map[int]bool {
	if len(j.TripIssues) == 0 {
		return nil
	}
	flagged := make(map[int]bool, len(j.TripIssues))
	for _, issue := range j.TripIssues {
		flagged[issue.TripIndex] = true
	}
	return flagged
}

// weekdayName resolves the weekday for a statement date header; unknown or
// unparseable dates get no weekday.
func weekdayName(date string) string {
	t, err := time.Parse(statementDateFormat, date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()
}

func equalNames(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
