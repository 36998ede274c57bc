package models

import "time"

// Statement is the persisted metadata for one uploaded monthly statement.
// The trip text itself is not stored; FileHash deduplicates re-uploads of
// the same content per user.
type Statement struct {
	ID             string    `db:"id" json:"id"`
	UserID         string    `db:"user_id" json:"userId"`
	FileName       string    `db:"file_name" json:"fileName"`
	FileHash       string    `db:"file_hash" json:"fileHash"`
	StatementMonth string    `db:"statement_month" json:"statementMonth"` // full month name, e.g. "January"
	StatementYear  int       `db:"statement_year" json:"statementYear"`
	TotalFare      float64   `db:"total_fare" json:"totalFare"`
	JourneyCount   int       `db:"journey_count" json:"journeyCount"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}
