package i

import (
	"context"

	"github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/google/uuid"
)

// MazeService generates, stores and serves mazes.
type MazeService interface {
	// Generate returns the maze for the given dimensions and seed, creating it
	// if needed. A nil seed picks a fresh one.
	Generate(ctx context.Context, rows, columns int, seed *int64) (*domain.MazeRecord, error)

	// ByID retrieves a stored maze.
	ByID(ctx context.Context, id uuid.UUID) (*domain.MazeRecord, error)

	// Arena returns the wall geometry of a stored maze.
	Arena(ctx context.Context, id uuid.UUID) (*maze.Arena, error)

	// Solve returns the path from the top left to the bottom right cell.
	Solve(ctx context.Context, id uuid.UUID) ([]maze.CellPosition, error)
}
