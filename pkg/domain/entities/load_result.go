package entities

import (
	"time"

	"github.com/google/uuid"
)

// TableLoad counts the rows loaded into one warehouse table
type TableLoad struct {
	Table Table
	Rows  int
}

// LoadResult describes one warehouse load run. RunID is unique per load;
// SnapshotID names the generated snapshot that was loaded.
type LoadResult struct {
	RunID      uuid.UUID
	SnapshotID uuid.UUID
	Driver     string
	StartedAt  time.Time
	FinishedAt time.Time
	Tables     []TableLoad
}

// TotalRows sums the rows of every loaded table
func (r *LoadResult) TotalRows() int {
	total := 0
	for _, t := range r.Tables {
		total += t.Rows
	}
	return total
}

// Duration returns how long the load took
func (r *LoadResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
