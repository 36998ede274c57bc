package repository

import (
	"database/sql"
	"fmt"

	"github.com/transitpass/concession-backend-go/internal/models"
)

// StatementRepository handles database operations for statement metadata
type StatementRepository struct {
	db *sql.DB
}

// NewStatementRepository creates a new statement repository
func NewStatementRepository(db *sql.DB) *StatementRepository {
	return &StatementRepository{db: db}
}

// Insert stores one statement's metadata
func (r *StatementRepository) Insert(stmt models.Statement) error {
	query := `INSERT INTO statements
		(id, user_id, file_name, file_hash, statement_month, statement_year,
		 total_fare, journey_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.Exec(query,
		stmt.ID, stmt.UserID, stmt.FileName, stmt.FileHash,
		stmt.StatementMonth, stmt.StatementYear,
		stmt.TotalFare, stmt.JourneyCount, stmt.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert statement: %w", err)
	}
	return nil
}

// ExistsByHash reports whether the user already uploaded a statement with
// this content fingerprint
func (r *StatementRepository) ExistsByHash(userID, fileHash string) (bool, error) {
	var count int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM statements WHERE user_id = ? AND file_hash = ?",
		userID, fileHash,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check statement hash: %w", err)
	}
	return count > 0, nil
}

// ListByUser retrieves the user's statements, newest coverage period first
func (r *StatementRepository) ListByUser(userID string) ([]models.Statement, error) {
	query := `SELECT id, user_id, file_name, file_hash, statement_month,
		statement_year, total_fare, journey_count, created_at
		FROM statements WHERE user_id = ?
		ORDER BY statement_year DESC, created_at DESC`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query statements: %w", err)
	}
	defer rows.Close()

	var statements []models.Statement
	for rows.Next() {
		var s models.Statement
		err := rows.Scan(
			&s.ID, &s.UserID, &s.FileName, &s.FileHash, &s.StatementMonth,
			&s.StatementYear, &s.TotalFare, &s.JourneyCount, &s.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan statement: %w", err)
		}
		statements = append(statements, s)
	}

	return statements, rows.Err()
}
