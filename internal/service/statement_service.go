package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/transitpass/concession-backend-go/internal/journey"
	"github.com/transitpass/concession-backend-go/internal/models"
	"github.com/transitpass/concession-backend-go/internal/parser"
	"github.com/transitpass/concession-backend-go/internal/repository"
	"github.com/transitpass/concession-backend-go/internal/transit"
)

// ErrNoTripsFound is returned when a statement's text yields zero trip
// records. The parser itself never fails; deciding that an empty result is a
// user-visible error happens here.
var ErrNoTripsFound = errors.New("service: no trips recognized in statement")

// ErrDuplicateStatement is returned when the user already uploaded a
// statement with the same content fingerprint.
var ErrDuplicateStatement = errors.New("service: statement already uploaded")

// StatementService handles business logic for statement ingestion
type StatementService struct {
	statements *repository.StatementRepository
	registry   *transit.Registry
	policy     journey.Policy
}

// NewStatementService creates a new statement service
func NewStatementService(statements *repository.StatementRepository, registry *transit.Registry, policy journey.Policy) *StatementService {
	return &StatementService{statements: statements, registry: registry, policy: policy}
}

// UploadResult is everything one successful ingestion produces.
type UploadResult struct {
	Statement  models.Statement  `json:"statement"`
	DayGroups  []models.DayGroup `json:"dayGroups"`
	FareTotals models.FareTotals `json:"fareTotals"`
}

// IngestText parses one statement's extracted text, groups the trips into
// journeys and day groups, persists the statement metadata and returns the
// full analysis. Text extraction (OCR) happens upstream.
func (s *StatementService) IngestText(userID, fileName, text string) (*UploadResult, error) {
	sum := sha256.Sum256([]byte(text))
	fileHash := hex.EncodeToString(sum[:])

	exists, err := s.statements.ExistsByHash(userID, fileHash)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateStatement
	}

	trips := parser.Parse(text)
	if len(trips) == 0 {
		return nil, ErrNoTripsFound
	}

	groups := journey.Group(trips, s.registry)
	totals := journey.Totals(groups, s.policy)

	month, year := statementPeriod(trips)
	journeyCount := 0
	for _, g := range groups {
		journeyCount += len(g.Journeys)
	}

	stmt := models.Statement{
		ID:             uuid.NewString(),
		UserID:         userID,
		FileName:       fileName,
		FileHash:       fileHash,
		StatementMonth: month,
		StatementYear:  year,
		TotalFare:      totals.TotalFareNoPass,
		JourneyCount:   journeyCount,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.statements.Insert(stmt); err != nil {
		return nil, err
	}

	return &UploadResult{
		Statement:  stmt,
		DayGroups:  groups,
		FareTotals: totals,
	}, nil
}

// List retrieves the user's uploaded statements
func (s *StatementService) List(userID string) ([]models.Statement, error) {
	return s.statements.ListByUser(userID)
}

// statementPeriod derives the statement's calendar month from the first trip
// with a resolved date. Statements cover one calendar month, so any resolved
// date identifies it; with none, the period stays empty and the statement
// contributes no coverage interval.
func statementPeriod(trips []parser.ParsedTrip) (string, int) {
	for _, t := range trips {
		if t.Date == parser.UnknownDate {
			continue
		}
		parsed, err := time.Parse("02 Jan 2006", t.Date)
		if err != nil {
			continue
		}
		return parsed.Month().String(), parsed.Year()
	}
	return "", 0
}
