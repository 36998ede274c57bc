package recommend

import (
	"errors"
	"testing"

	"github.com/transitpass/concession-backend-go/internal/models"
)

func testCatalog() []models.ConcessionPass {
	return []models.ConcessionPass{
		{ID: models.PassNoPass, Label: "No Pass", MonthlyPrice: 0},
		{ID: models.PassBusUnlimited, Label: "Undergrad Bus", MonthlyPrice: 55.50},
		{ID: models.PassRailUnlimited, Label: "Undergrad MRT", MonthlyPrice: 48},
		{ID: models.PassHybridUnlimited, Label: "Undergrad Hybrid", MonthlyPrice: 81},
	}
}

func findByID(t *testing.T, rec Recommendation, id string) models.PassComparisonResult {
	t.Helper()
	for _, c := range rec.Comparisons {
		if c.Pass.ID == id {
			return c
		}
	}
	t.Fatalf("pass %q missing from comparisons", id)
	return models.PassComparisonResult{}
}

func TestCompareEndToEndExample(t *testing.T) {
	totals := models.FareTotals{
		TotalFareNoPass:       120.00,
		TotalFareExcludingBus: 70.00,
		TotalFareExcludingMrt: 90.00,
	}

	rec, err := Compare(testCatalog(), totals)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(rec.Comparisons) != 4 {
		t.Fatalf("comparisons len got=%d want=4", len(rec.Comparisons))
	}

	wantCosts := map[string]float64{
		models.PassNoPass:          120.00,
		models.PassBusUnlimited:    125.50,
		models.PassRailUnlimited:   138.00,
		models.PassHybridUnlimited: 81.00,
	}
	for id, want := range wantCosts {
		if got := findByID(t, rec, id).Cost; got != want {
			t.Errorf("cost[%s] got=%v want=%v", id, got, want)
		}
	}

	if rec.Best.Pass.ID != models.PassHybridUnlimited {
		t.Errorf("best got=%q want=%q", rec.Best.Pass.ID, models.PassHybridUnlimited)
	}
	if rec.Best.Savings != 39.00 {
		t.Errorf("best savings got=%v want=%v", rec.Best.Savings, 39.00)
	}
	if !rec.Best.IsSavingMoney {
		t.Errorf("best IsSavingMoney got=false want=true")
	}
}

func TestCompareBaselineInvariant(t *testing.T) {
	cases := []models.FareTotals{
		{TotalFareNoPass: 0, TotalFareExcludingBus: 0, TotalFareExcludingMrt: 0},
		{TotalFareNoPass: 20, TotalFareExcludingBus: 15, TotalFareExcludingMrt: 5},
		{TotalFareNoPass: 300, TotalFareExcludingBus: 120, TotalFareExcludingMrt: 180},
	}
	for _, totals := range cases {
		rec, err := Compare(testCatalog(), totals)
		if err != nil {
			t.Fatalf("Compare(%+v): %v", totals, err)
		}
		noPass := findByID(t, rec, models.PassNoPass)
		if noPass.Savings != 0 {
			t.Errorf("no-pass savings got=%v want=0 for totals=%+v", noPass.Savings, totals)
		}
		if noPass.IsSavingMoney {
			t.Errorf("no-pass IsSavingMoney got=true want=false")
		}
		if rec.Best.Savings < 0 {
			t.Errorf("best savings got=%v want>=0 for totals=%+v", rec.Best.Savings, totals)
		}
	}
}

func TestCompareCheapTravellerKeepsNoPass(t *testing.T) {
	totals := models.FareTotals{
		TotalFareNoPass:       30.00,
		TotalFareExcludingBus: 18.00,
		TotalFareExcludingMrt: 12.00,
	}

	rec, err := Compare(testCatalog(), totals)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if rec.Best.Pass.ID != models.PassNoPass {
		t.Errorf("best got=%q want=%q", rec.Best.Pass.ID, models.PassNoPass)
	}
	if rec.Best.Savings != 0 {
		t.Errorf("best savings got=%v want=0", rec.Best.Savings)
	}
}

func TestCompareMonotonicity(t *testing.T) {
	// Raising a pass's monthly price never increases its savings.
	totals := models.FareTotals{
		TotalFareNoPass:       120.00,
		TotalFareExcludingBus: 70.00,
		TotalFareExcludingMrt: 90.00,
	}

	prev := 1e18
	for price := 10.0; price <= 200; price += 10 {
		catalog := []models.ConcessionPass{
			{ID: models.PassNoPass, Label: "No Pass"},
			{ID: models.PassBusUnlimited, Label: "Bus", MonthlyPrice: price},
		}
		rec, err := Compare(catalog, totals)
		if err != nil {
			t.Fatalf("Compare: %v", err)
		}
		savings := findByID(t, rec, models.PassBusUnlimited).Savings
		if savings > prev {
			t.Fatalf("savings increased from %v to %v when price rose to %v", prev, savings, price)
		}
		prev = savings
	}
}

func TestCompareTieBreakLowestPrice(t *testing.T) {
	// Two passes with identical savings: the cheaper one wins regardless of
	// catalog order.
	totals := models.FareTotals{
		TotalFareNoPass:       100.00,
		TotalFareExcludingBus: 40.00,
		TotalFareExcludingMrt: 60.00,
	}
	catalog := []models.ConcessionPass{
		{ID: models.PassNoPass, Label: "No Pass"},
		// cost = 40 + 50 = 90, savings 10
		{ID: models.PassBusUnlimited, Label: "Bus", MonthlyPrice: 50},
		// cost = 90 flat, savings 10
		{ID: models.PassHybridUnlimited, Label: "Hybrid", MonthlyPrice: 90},
	}

	rec, err := Compare(catalog, totals)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if rec.Best.Pass.ID != models.PassBusUnlimited {
		t.Errorf("best got=%q want=%q (lowest price wins savings tie)", rec.Best.Pass.ID, models.PassBusUnlimited)
	}
}

func TestCompareUnknownIDCostsFlatPrice(t *testing.T) {
	totals := models.FareTotals{TotalFareNoPass: 100}
	catalog := []models.ConcessionPass{
		{ID: models.PassNoPass, Label: "No Pass"},
		{ID: "senior-offpeak", Label: "Senior Off-Peak", MonthlyPrice: 64},
	}

	rec, err := Compare(catalog, totals)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	got := findByID(t, rec, "senior-offpeak")
	if got.Cost != 64 {
		t.Errorf("cost got=%v want=64", got.Cost)
	}
	if got.Savings != 36 {
		t.Errorf("savings got=%v want=36", got.Savings)
	}
}

func TestCompareEmptyCatalog(t *testing.T) {
	_, err := Compare(nil, models.FareTotals{TotalFareNoPass: 10})
	if !errors.Is(err, ErrEmptyCatalog) {
		t.Fatalf("err got=%v want=%v", err, ErrEmptyCatalog)
	}
}

func TestCompareOrderPreserved(t *testing.T) {
	rec, err := Compare(testCatalog(), models.FareTotals{TotalFareNoPass: 50})
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	wantOrder := []string{
		models.PassNoPass,
		models.PassBusUnlimited,
		models.PassRailUnlimited,
		models.PassHybridUnlimited,
	}
	for i, id := range wantOrder {
		if rec.Comparisons[i].Pass.ID != id {
			t.Errorf("comparisons[%d] got=%q want=%q", i, rec.Comparisons[i].Pass.ID, id)
		}
	}
}
