package coverage

import (
	"reflect"
	"testing"
	"time"

	"github.com/transitpass/concession-backend-go/internal/models"
)

func stmt(month string, year int) models.Statement {
	return models.Statement{StatementMonth: month, StatementYear: year}
}

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDetectWindowFullyInsideCoverage(t *testing.T) {
	statements := []models.Statement{
		stmt("January", 2025),
		stmt("February", 2025),
		stmt("March", 2025),
	}

	res := Detect(statements, day("2025-02-01"), day("2025-02-28"))

	if res.HasGaps {
		t.Errorf("HasGaps got=%v want=false", res.HasGaps)
	}
	if res.ConfidenceLevel != models.ConfidenceComplete {
		t.Errorf("ConfidenceLevel got=%q want=%q", res.ConfidenceLevel, models.ConfidenceComplete)
	}
	if res.TotalMissingDays != 0 {
		t.Errorf("TotalMissingDays got=%d want=0", res.TotalMissingDays)
	}
	if len(res.MissingDateRanges) != 0 {
		t.Errorf("MissingDateRanges len got=%d want=0", len(res.MissingDateRanges))
	}
}

func TestDetectMissingMiddleMonth(t *testing.T) {
	statements := []models.Statement{
		stmt("January", 2025),
		stmt("March", 2025),
	}

	res := Detect(statements, day("2025-01-15"), day("2025-03-15"))

	if len(res.MissingDateRanges) != 1 {
		t.Fatalf("MissingDateRanges len got=%d want=1", len(res.MissingDateRanges))
	}
	want := models.CoverageGap{Start: "2025-02-01", End: "2025-02-28", DaysCount: 28}
	if !reflect.DeepEqual(res.MissingDateRanges[0], want) {
		t.Errorf("gap got=%+v want=%+v", res.MissingDateRanges[0], want)
	}
	if res.ConfidenceLevel != models.ConfidencePartial {
		t.Errorf("ConfidenceLevel got=%q want=%q", res.ConfidenceLevel, models.ConfidencePartial)
	}
	if res.TotalMissingDays != 28 {
		t.Errorf("TotalMissingDays got=%d want=28", res.TotalMissingDays)
	}
}

func TestDetectNoStatements(t *testing.T) {
	res := Detect(nil, day("2025-01-01"), day("2025-01-31"))

	if res.ConfidenceLevel != models.ConfidenceUnknown {
		t.Errorf("ConfidenceLevel got=%q want=%q", res.ConfidenceLevel, models.ConfidenceUnknown)
	}
	if res.HasGaps {
		t.Errorf("HasGaps got=%v want=false", res.HasGaps)
	}
	if res.TotalMissingDays != 0 {
		t.Errorf("TotalMissingDays got=%d want=0", res.TotalMissingDays)
	}
}

func TestDetectMissingWindowDates(t *testing.T) {
	statements := []models.Statement{stmt("January", 2025)}

	res := Detect(statements, time.Time{}, day("2025-01-31"))
	if res.ConfidenceLevel != models.ConfidenceUnknown || res.HasGaps {
		t.Errorf("zero start: got level=%q hasGaps=%v, want unknown/false", res.ConfidenceLevel, res.HasGaps)
	}

	res = Detect(statements, day("2025-01-01"), time.Time{})
	if res.ConfidenceLevel != models.ConfidenceUnknown || res.HasGaps {
		t.Errorf("zero end: got level=%q hasGaps=%v, want unknown/false", res.ConfidenceLevel, res.HasGaps)
	}
}

func TestDetectStatementsWithoutPeriod(t *testing.T) {
	// A statement whose trip dates never resolved carries no period and no
	// covering interval; alone it cannot answer the coverage question.
	statements := []models.Statement{stmt("", 0)}

	res := Detect(statements, day("2025-02-01"), day("2025-02-28"))
	if res.HasGaps {
		t.Errorf("HasGaps got=%v want=false", res.HasGaps)
	}
	if res.ConfidenceLevel != models.ConfidenceUnknown {
		t.Errorf("ConfidenceLevel got=%q want=%q", res.ConfidenceLevel, models.ConfidenceUnknown)
	}
	if len(res.MissingDateRanges) != 0 {
		t.Errorf("MissingDateRanges len got=%d want=0", len(res.MissingDateRanges))
	}

	// Mixed with a dated statement it simply drops out.
	statements = append(statements, stmt("February", 2025))
	res = Detect(statements, day("2025-02-01"), day("2025-02-28"))
	if res.HasGaps {
		t.Errorf("mixed: HasGaps got=%v want=false", res.HasGaps)
	}
	if res.ConfidenceLevel != models.ConfidenceComplete {
		t.Errorf("mixed: ConfidenceLevel got=%q want=%q", res.ConfidenceLevel, models.ConfidenceComplete)
	}
}

func TestDetectGapBeforeFirstStatement(t *testing.T) {
	statements := []models.Statement{stmt("February", 2025)}

	res := Detect(statements, day("2025-01-20"), day("2025-02-10"))

	if len(res.MissingDateRanges) != 1 {
		t.Fatalf("MissingDateRanges len got=%d want=1", len(res.MissingDateRanges))
	}
	want := models.CoverageGap{Start: "2025-01-20", End: "2025-01-31", DaysCount: 12}
	if !reflect.DeepEqual(res.MissingDateRanges[0], want) {
		t.Errorf("gap got=%+v want=%+v", res.MissingDateRanges[0], want)
	}
	if res.ConfidenceLevel != models.ConfidencePartial {
		t.Errorf("ConfidenceLevel got=%q want=%q", res.ConfidenceLevel, models.ConfidencePartial)
	}
}

func TestDetectGapAfterLastStatement(t *testing.T) {
	statements := []models.Statement{stmt("January", 2025)}

	res := Detect(statements, day("2025-01-15"), day("2025-02-14"))

	if len(res.MissingDateRanges) != 1 {
		t.Fatalf("MissingDateRanges len got=%d want=1", len(res.MissingDateRanges))
	}
	want := models.CoverageGap{Start: "2025-02-01", End: "2025-02-14", DaysCount: 14}
	if !reflect.DeepEqual(res.MissingDateRanges[0], want) {
		t.Errorf("gap got=%+v want=%+v", res.MissingDateRanges[0], want)
	}
}

func TestDetectWindowEntirelyAfterCoverage(t *testing.T) {
	// The trailing gap starts at the window start when that is later than the
	// day after the last covered month.
	statements := []models.Statement{stmt("January", 2025)}

	res := Detect(statements, day("2025-03-01"), day("2025-03-30"))

	if len(res.MissingDateRanges) != 1 {
		t.Fatalf("MissingDateRanges len got=%d want=1", len(res.MissingDateRanges))
	}
	want := models.CoverageGap{Start: "2025-03-01", End: "2025-03-30", DaysCount: 30}
	if !reflect.DeepEqual(res.MissingDateRanges[0], want) {
		t.Errorf("gap got=%+v want=%+v", res.MissingDateRanges[0], want)
	}
	if res.ConfidenceLevel != models.ConfidenceUnknown {
		t.Errorf("ConfidenceLevel got=%q want=%q", res.ConfidenceLevel, models.ConfidenceUnknown)
	}
}

func TestDetectDuplicateMonthsCollapse(t *testing.T) {
	// The same month uploaded twice is one covering interval, no false gap.
	statements := []models.Statement{
		stmt("January", 2025),
		stmt("January", 2025),
		stmt("February", 2025),
	}

	res := Detect(statements, day("2025-01-01"), day("2025-02-28"))

	if res.HasGaps {
		t.Errorf("HasGaps got=%v want=false", res.HasGaps)
	}
	if res.ConfidenceLevel != models.ConfidenceComplete {
		t.Errorf("ConfidenceLevel got=%q want=%q", res.ConfidenceLevel, models.ConfidenceComplete)
	}
}

func TestDetectMiddleGapClippedToWindow(t *testing.T) {
	// Gap months June and July; the window only reaches into June.
	statements := []models.Statement{
		stmt("May", 2025),
		stmt("August", 2025),
	}

	res := Detect(statements, day("2025-05-10"), day("2025-06-20"))

	if len(res.MissingDateRanges) != 1 {
		t.Fatalf("MissingDateRanges len got=%d want=1", len(res.MissingDateRanges))
	}
	want := models.CoverageGap{Start: "2025-06-01", End: "2025-06-20", DaysCount: 20}
	if !reflect.DeepEqual(res.MissingDateRanges[0], want) {
		t.Errorf("gap got=%+v want=%+v", res.MissingDateRanges[0], want)
	}
}

func TestDetectUnsortedStatementsAreSorted(t *testing.T) {
	statements := []models.Statement{
		stmt("March", 2025),
		stmt("January", 2025),
		stmt("February", 2025),
	}

	res := Detect(statements, day("2025-01-01"), day("2025-03-31"))

	if res.HasGaps {
		t.Errorf("HasGaps got=%v want=false (intervals should be sorted before gap detection)", res.HasGaps)
	}
}

func TestDetectYearBoundary(t *testing.T) {
	statements := []models.Statement{
		stmt("December", 2024),
		stmt("January", 2025),
	}

	res := Detect(statements, day("2024-12-15"), day("2025-01-15"))

	if res.HasGaps {
		t.Errorf("HasGaps got=%v want=false", res.HasGaps)
	}
	if res.ConfidenceLevel != models.ConfidenceComplete {
		t.Errorf("ConfidenceLevel got=%q want=%q", res.ConfidenceLevel, models.ConfidenceComplete)
	}
}

func TestDetectCoverageMessage(t *testing.T) {
	statements := []models.Statement{stmt("January", 2025)}

	res := Detect(statements, day("2025-01-15"), day("2025-02-14"))
	wantMsg := "Your selected window includes 14 days with missing statement coverage (2025-02-01 to 2025-02-14)."
	if res.CoverageMessage != wantMsg {
		t.Errorf("CoverageMessage got=%q want=%q", res.CoverageMessage, wantMsg)
	}

	res = Detect(statements, day("2024-12-25"), day("2025-02-05"))
	wantMsg = "Your selected window includes 12 days across 2 gaps with missing statement coverage."
	if res.CoverageMessage != wantMsg {
		t.Errorf("CoverageMessage got=%q want=%q", res.CoverageMessage, wantMsg)
	}
}
