package service

import (
	"context"

	"github.com/VladPetriv/currency_beacon/internal/models"
)

// Stores represents all stores.
type Stores struct {
	Option OptionStore
}

// OptionStore represents a key-value store of application options.
//
//go:generate mockery --dir . --name OptionStore --output ./mocks
type OptionStore interface {
	// Save creates an option or replaces value of the existing one.
	Save(ctx context.Context, option *models.Option) error
	// Get returns an option by key. Returns nil without error when option doesn't exist.
	Get(ctx context.Context, key string) (*models.Option, error)
}

// SnapshotStore persists rates snapshots.
//
//go:generate mockery --dir . --name SnapshotStore --output ./mocks
type SnapshotStore interface {
	// Save persists a snapshot. Implementations may persist it asynchronously.
	Save(ctx context.Context, snapshot models.RateSnapshot) error
}
