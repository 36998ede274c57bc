package models

// Trip modes as they appear on a statement.
const (
	ModeBus  = "bus"
	ModeRail = "rail"
)

// TripIssue codes
const (
	IssueUnknownBusStop     = "UNKNOWN_BUS_STOP"
	IssueUnknownRailStation = "UNKNOWN_RAIL_STATION"
)

// Trip represents one fare-charging leg of travel (a single bus or rail ride).
// Created once by the parser or the grouping step, immutable afterwards.
type Trip struct {
	Time          string  `json:"time"`              // tap time as printed, e.g. "08:15 AM"
	Mode          string  `json:"mode"`              // ModeBus or ModeRail
	RouteID       string  `json:"routeId,omitempty"` // bus service number, bus only
	StartLocation string  `json:"startLocation"`
	EndLocation   string  `json:"endLocation"`
	Fare          float64 `json:"fare"`     // non-negative, 2dp currency
	Distance      float64 `json:"distance"` // kilometres, zero when unresolved
}

// TripIssue flags a trip whose stop or station failed registry lookup.
// Flagged trips are excluded from the distance aggregates used for
// pass comparison.
type TripIssue struct {
	Code           string `json:"code"`      // IssueUnknownBusStop or IssueUnknownRailStation
	TripIndex      int    `json:"tripIndex"` // index into the owning journey's trips
	UnresolvedName string `json:"unresolvedName"`
	Message        string `json:"message"`
}

// Journey represents one door-to-door movement composed of one or more
// consecutive trips chained via transfers.
type Journey struct {
	Date          string      `json:"date"` // DD MMM YYYY, or "Unknown"
	Day           string      `json:"day"`  // weekday name, empty when date unknown
	StartLocation string      `json:"startLocation"`
	EndLocation   string      `json:"endLocation"`
	Trips         []Trip      `json:"trips"`
	TripIssues    []TripIssue `json:"tripIssues,omitempty"`
	BusDistance   float64     `json:"busDistance"` // km over bus trips, flagged trips excluded
	MrtDistance   float64     `json:"mrtDistance"` // km over rail trips, flagged trips excluded
	TotalFare     float64     `json:"totalFare"`
}

// DayGroup collects every journey occurring on one calendar date, in
// chronological insertion order. The aggregate fields are derived from the
// contained journeys and always equal the sum/union over them.
type DayGroup struct {
	Date        string      `json:"date"`
	Day         string      `json:"day"`
	Journeys    []Journey   `json:"journeys"`
	TotalFare   float64     `json:"totalFare"`
	BusDistance float64     `json:"busDistance"`
	MrtDistance float64     `json:"mrtDistance"`
	TripIssues  []TripIssue `json:"tripIssues,omitempty"`
}
