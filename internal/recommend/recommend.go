// Package recommend computes the monthly cost of every concession pass in
// the catalog for a rider's aggregated travel, the savings each implies, and
// selects a best recommendation.
package recommend

import (
	"errors"
	"math"

	"github.com/transitpass/concession-backend-go/internal/models"
)

// ErrEmptyCatalog is returned when Compare is handed an empty pass catalog.
// The best-pick reduction has no identity element, so this is a precondition
// violation rather than a data condition.
var ErrEmptyCatalog = errors.New("recommend: empty pass catalog")

// Recommendation is one comparison result per catalog pass, in catalog
// order, plus the selected best pass.
type Recommendation struct {
	Comparisons []models.PassComparisonResult `json:"comparisons"`
	Best        models.PassComparisonResult   `json:"best"`
}

// Compare costs every pass in the catalog against the aggregated fare
// totals. The catalog is expected to contain the no-pass baseline, which by
// definition has zero savings, so the best pick is never worse than paying
// per trip.
//
// Ties on savings break to the lowest monthly price, then to catalog order.
func Compare(catalog []models.ConcessionPass, totals models.FareTotals) (Recommendation, error) {
	if len(catalog) == 0 {
		return Recommendation{}, ErrEmptyCatalog
	}

	comparisons := make([]models.PassComparisonResult, 0, len(catalog))
	for _, pass := range catalog {
		comparisons = append(comparisons, compareOne(pass, totals))
	}

	best := comparisons[0]
	for _, c := range comparisons[1:] {
		if c.Savings > best.Savings ||
			(c.Savings == best.Savings && c.Pass.MonthlyPrice < best.Pass.MonthlyPrice) {
			best = c
		}
	}

	return Recommendation{Comparisons: comparisons, Best: best}, nil
}

// compareOne applies the cost semantics for one pass:
//
//	no-pass          cost = baseline, savings fixed at 0
//	bus-unlimited    cost = fares excluding bus + monthly price
//	rail-unlimited   cost = fares excluding rail + monthly price
//	any other id     cost = flat monthly price (hybrid-unlimited and friends)
func compareOne(pass models.ConcessionPass, totals models.FareTotals) models.PassComparisonResult {
	var cost float64
	switch pass.ID {
	case models.PassNoPass:
		cost = totals.TotalFareNoPass
	case models.PassBusUnlimited:
		cost = totals.TotalFareExcludingBus + pass.MonthlyPrice
	case models.PassRailUnlimited:
		cost = totals.TotalFareExcludingMrt + pass.MonthlyPrice
	default:
		cost = pass.MonthlyPrice
	}
	cost = round2(cost)

	var savings float64
	if pass.ID != models.PassNoPass {
		savings = round2(totals.TotalFareNoPass - cost)
	}

	return models.PassComparisonResult{
		Pass:          pass,
		Cost:          cost,
		Savings:       savings,
		IsSavingMoney: savings > 0,
	}
}

// round2 rounds to currency-unit precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
