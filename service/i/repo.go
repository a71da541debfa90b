package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/domain"
	"github.com/google/uuid"
)

// LayoutRepo defines the interface for maze layout persistence operations.
type LayoutRepo interface {
	// Save inserts or updates a maze record in the repository.
	// Returns domain.ErrDuplicateLayout if another record already holds the
	// record's dimensions and seed.
	Save(ctx context.Context, record *domain.MazeRecord) error

	// ByID retrieves a maze record by its unique ID.
	// Returns domain.ErrLayoutNotFound if no such record exists.
	ByID(ctx context.Context, id uuid.UUID) (*domain.MazeRecord, error)

	// BySeed retrieves the maze generated for the given dimensions and seed.
	// Returns domain.ErrLayoutNotFound if no such record exists.
	BySeed(ctx context.Context, rows, columns int, seed int64) (*domain.MazeRecord, error)
}

// LayoutCache keeps recently used maze records close to the service.
type LayoutCache interface {
	// Get returns the cached record or domain.ErrLayoutNotFound on a miss.
	Get(ctx context.Context, id uuid.UUID) (*domain.MazeRecord, error)

	// Set caches the record until its TTL expires.
	Set(ctx context.Context, record *domain.MazeRecord) error

	// WithSeedLock runs fn while holding the generation lock for the given
	// dimensions and seed.
	WithSeedLock(ctx context.Context, rows, columns int, seed int64, fn func() error) error
}

// RecordEncoder serializes maze records for key-value storage.
type RecordEncoder interface {
	MarshalRecord(*domain.MazeRecord) ([]byte, error)
	UnmarshalRecord([]byte) (*domain.MazeRecord, error)
}
