// Package mazeapi provides structures and utilities for maze generation requests and responses.
package mazeapi

import (
	"github.com/beka-birhanu/vinom-maze/domain"
	"github.com/beka-birhanu/vinom-maze/maze"
)

// GenerateRequest represents a request to generate a new maze.
type GenerateRequest struct {
	Rows    int    `json:"rows" binding:"required"`
	Columns int    `json:"columns" binding:"required"`
	Seed    *int64 `json:"seed"`
}

// MazeResponse represents a generated maze as passage matrices.
type MazeResponse struct {
	ID           string   `json:"id"`
	Rows         int      `json:"rows"`
	Columns      int      `json:"columns"`
	Seed         int64    `json:"seed"`
	Vertical     [][]bool `json:"vertical"`
	Horizontal   [][]bool `json:"horizontal"`
	OpenPassages int      `json:"open_passages"`
	CreatedAt    int64    `json:"created_at"`
}

// SolutionResponse represents the path from the ball to the goal.
type SolutionResponse struct {
	ID     string              `json:"id"`
	Length int                 `json:"length"`
	Path   []maze.CellPosition `json:"path"`
}

func newMazeResponse(r *domain.MazeRecord) (*MazeResponse, error) {
	layout, err := r.Layout()
	if err != nil {
		return nil, err
	}

	return &MazeResponse{
		ID:           r.ID.String(),
		Rows:         r.Rows,
		Columns:      r.Columns,
		Seed:         r.Seed,
		Vertical:     r.Vertical,
		Horizontal:   r.Horizontal,
		OpenPassages: layout.OpenPassages(),
		CreatedAt:    r.CreatedAt.UnixMilli(),
	}, nil
}
