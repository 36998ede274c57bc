// Package transit resolves the free-text stop and station names printed on
// statements against a registry of known locations, and computes trip
// distances for resolved pairs. Lookup failure is data, not an error: the
// trip stays visible, gets a TripIssue annotation and contributes no
// distance.
package transit

import (
	"fmt"
	"math"
	"strings"

	"github.com/transitpass/concession-backend-go/internal/models"
	"github.com/transitpass/concession-backend-go/internal/spatial"
)

// Stop is one known bus stop or rail station with its coordinates.
type Stop struct {
	ID   int64   `json:"id" db:"id"`
	Name string  `json:"name" db:"name"`
	Lat  float64 `json:"lat" db:"lat"`
	Lon  float64 `json:"lon" db:"lon"`
}

// Registry holds the known bus stops and rail stations, keyed by
// case-insensitive name.
type Registry struct {
	busStops     map[string]Stop
	railStations map[string]Stop
}

// NewRegistry builds a registry from stop and station lists.
func NewRegistry(busStops, railStations []Stop) *Registry {
	r := &Registry{
		busStops:     make(map[string]Stop, len(busStops)),
		railStations: make(map[string]Stop, len(railStations)),
	}
	for _, s := range busStops {
		r.busStops[normalize(s.Name)] = s
	}
	for _, s := range railStations {
		r.railStations[normalize(s.Name)] = s
	}
	return r
}

// Annotate resolves a trip's endpoints against the registry for its mode.
// On success it returns the trip distance in kilometres. When an endpoint is
// missing it returns a TripIssue naming the first unresolved location; the
// issue's TripIndex is left for the caller, which knows the trip's position
// in its journey.
func (r *Registry) Annotate(trip models.Trip) (float64, *models.TripIssue) {
	lookup := r.railStations
	code := models.IssueUnknownRailStation
	kind := "rail station"
	if trip.Mode == models.ModeBus {
		lookup = r.busStops
		code = models.IssueUnknownBusStop
		kind = "bus stop"
	}

	start, ok := lookup[normalize(trip.StartLocation)]
	if !ok {
		return 0, issue(code, kind, trip.StartLocation)
	}
	end, ok := lookup[normalize(trip.EndLocation)]
	if !ok {
		return 0, issue(code, kind, trip.EndLocation)
	}

	km := spatial.KilometersBetween(start.Lat, start.Lon, end.Lat, end.Lon)
	return math.Round(km*100) / 100, nil
}

func issue(code, kind, name string) *models.TripIssue {
	return &models.TripIssue{
		Code:           code,
		UnresolvedName: name,
		Message:        fmt.Sprintf("%s %q is not in the registry; distance excluded from totals", kind, name),
	}
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
