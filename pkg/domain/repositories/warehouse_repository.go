package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/vsinha/bigen/pkg/domain/entities"
)

// WarehouseRepository loads snapshots into a star-schema database
type WarehouseRepository interface {
	// Migrate creates or upgrades the star-schema tables
	Migrate(ctx context.Context) error
	// Load replaces the warehouse contents with the snapshot and records the
	// run under a fresh run id. The same snapshot may be loaded any number of times.
	Load(ctx context.Context, snapshotID uuid.UUID, snapshot *entities.Snapshot) (*entities.LoadResult, error)
	Close() error
}
