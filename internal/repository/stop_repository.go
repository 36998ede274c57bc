package repository

import (
	"database/sql"
	"fmt"

	"github.com/transitpass/concession-backend-go/internal/transit"
)

// StopRepository handles database operations for the stop/station registry
type StopRepository struct {
	db *sql.DB
}

// NewStopRepository creates a new stop repository
func NewStopRepository(db *sql.DB) *StopRepository {
	return &StopRepository{db: db}
}

// ListBusStops retrieves every known bus stop
func (r *StopRepository) ListBusStops() ([]transit.Stop, error) {
	return r.list("bus_stops")
}

// ListRailStations retrieves every known rail station
func (r *StopRepository) ListRailStations() ([]transit.Stop, error) {
	return r.list("rail_stations")
}

func (r *StopRepository) list(table string) ([]transit.Stop, error) {
	rows, err := r.db.Query("SELECT id, name, lat, lon FROM " + table + " ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var stops []transit.Stop
	for rows.Next() {
		var s transit.Stop
		if err := rows.Scan(&s.ID, &s.Name, &s.Lat, &s.Lon); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		stops = append(stops, s)
	}

	return stops, rows.Err()
}
