// Package domain holds the persisted maze record shared by the service and
// infrastructure layers.
package domain

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

var (
	ErrLayoutNotFound    = errors.New("maze layout not found")
	ErrDimensionTooLarge = errors.New("maze dimension exceeds the allowed maximum")
	ErrDuplicateLayout   = errors.New("a maze with these dimensions and seed is already stored")
)

// MazeRecord is a generated maze together with what is needed to
// regenerate it.
type MazeRecord struct {
	ID         uuid.UUID
	Rows       int
	Columns    int
	Seed       int64
	Vertical   [][]bool
	Horizontal [][]bool
	CreatedAt  time.Time
}

// NewMazeRecord wraps a generated layout into a record.
func NewMazeRecord(id uuid.UUID, seed int64, layout *maze.Layout, createdAt time.Time) *MazeRecord {
	return &MazeRecord{
		ID:         id,
		Rows:       layout.Rows(),
		Columns:    layout.Columns(),
		Seed:       seed,
		Vertical:   layout.Vertical,
		Horizontal: layout.Horizontal,
		CreatedAt:  createdAt.UTC(),
	}
}

// Layout rebuilds the maze layout stored in the record.
func (r *MazeRecord) Layout() (*maze.Layout, error) {
	return maze.FromPassages(r.Vertical, r.Horizontal)
}
