package generation

import (
	"fmt"
	"time"

	"github.com/vsinha/bigen/pkg/apperrors"
	"github.com/vsinha/bigen/pkg/domain/entities"
)

// Config holds configuration for one generation run
type Config struct {
	Seed      int64     // Random seed; 0 picks a time based seed
	StartDate time.Time // First day of the date dimension
	EndDate   time.Time // Last day of the date dimension, inclusive
	SalesFrom time.Time // Earliest sales date; zero means StartDate
	SalesRows int       // Number of sales fact rows
}

// DefaultConfig mirrors the snapshot the dashboard ships with
func DefaultConfig() Config {
	return Config{
		Seed:      42,
		StartDate: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
		SalesRows: 36400,
	}
}

// Validate checks the run configuration
func (c Config) Validate() error {
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", apperrors.ErrInvalidConfig)
	}
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("%w: end date %s is before start date %s", apperrors.ErrInvalidConfig,
			c.EndDate.Format(entities.DateLayout), c.StartDate.Format(entities.DateLayout))
	}
	if !c.SalesFrom.IsZero() && (c.SalesFrom.Before(c.StartDate) || c.SalesFrom.After(c.EndDate)) {
		return fmt.Errorf("%w: sales start %s is outside the date range", apperrors.ErrInvalidConfig,
			c.SalesFrom.Format(entities.DateLayout))
	}
	if c.SalesRows < 0 {
		return fmt.Errorf("%w: sales rows cannot be negative, got %d", apperrors.ErrInvalidConfig, c.SalesRows)
	}
	return nil
}
