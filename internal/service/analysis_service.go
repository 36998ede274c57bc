package service

import (
	"time"

	"github.com/transitpass/concession-backend-go/internal/config"
	"github.com/transitpass/concession-backend-go/internal/coverage"
	"github.com/transitpass/concession-backend-go/internal/journey"
	"github.com/transitpass/concession-backend-go/internal/models"
	"github.com/transitpass/concession-backend-go/internal/recommend"
	"github.com/transitpass/concession-backend-go/internal/repository"
)

// AnalysisService wires the pure analysis engines to the statement store
// and the configured pass catalog.
type AnalysisService struct {
	statements *repository.StatementRepository
	catalog    config.CatalogConfig
	policy     journey.Policy
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(statements *repository.StatementRepository, catalog config.CatalogConfig, policy journey.Policy) *AnalysisService {
	return &AnalysisService{statements: statements, catalog: catalog, policy: policy}
}

// Coverage reports whether the requested window is backed by the user's
// uploaded statements.
func (s *AnalysisService) Coverage(userID string, start, end time.Time) (models.CoverageResult, error) {
	statements, err := s.statements.ListByUser(userID)
	if err != nil {
		return models.CoverageResult{}, err
	}
	return coverage.Detect(statements, start, end), nil
}

// CalculateFares derives the comparison totals from already-grouped day
// groups under the configured exclusion policy.
func (s *AnalysisService) CalculateFares(groups []models.DayGroup) models.FareTotals {
	return journey.Totals(groups, s.policy)
}

// ComparePasses costs every catalog pass against the totals and selects the
// best recommendation.
func (s *AnalysisService) ComparePasses(totals models.FareTotals) (recommend.Recommendation, error) {
	return recommend.Compare(s.catalog.Passes, totals)
}

// Catalog returns the versioned pass catalog.
func (s *AnalysisService) Catalog() config.CatalogConfig {
	return s.catalog
}
