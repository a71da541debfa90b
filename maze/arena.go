package maze

import "math"

// Body labels understood by the physics collaborator.
const (
	BoundaryLabel = "boundary"
	WallLabel     = "wall"
	GoalLabel     = "goal"
	BallLabel     = "ball"

	boundaryThickness = 2
	goalScale         = 0.7
	ballRadiusDivisor = 4
)

// ArenaConfig holds the presentation measures used to turn cells into
// world coordinates.
type ArenaConfig struct {
	UnitWidth     float64 // Width of one cell
	UnitHeight    float64 // Height of one cell
	WallThickness float64 // Thickness of inner walls
}

// Rect is a static axis aligned rectangle given by its centre.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Label  string  `json:"label"`
}

// Circle is a dynamic round body given by its centre.
type Circle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Label  string  `json:"label"`
}

// Arena is the static geometry of a maze plus the goal and ball placement.
type Arena struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Bounds []Rect  `json:"bounds"`
	Walls  []Rect  `json:"walls"`
	Goal   Rect    `json:"goal"`
	Ball   Circle  `json:"ball"`
}

// BuildArena converts every closed passage of l into a wall segment one
// cell long, surrounds the grid with boundary walls, puts the goal in the
// bottom right cell and the ball in the top left one.
func BuildArena(l *Layout, cfg ArenaConfig) (*Arena, error) {
	if cfg.UnitWidth <= 0 || cfg.UnitHeight <= 0 || cfg.WallThickness <= 0 {
		return nil, ErrInvalidArenaMeasure
	}

	uw, uh := cfg.UnitWidth, cfg.UnitHeight
	width, height := float64(l.columns)*uw, float64(l.rows)*uh

	arena := &Arena{
		Width:  width,
		Height: height,
		Bounds: []Rect{
			{X: width / 2, Y: 0, Width: width, Height: boundaryThickness, Label: BoundaryLabel},
			{X: width / 2, Y: height, Width: width, Height: boundaryThickness, Label: BoundaryLabel},
			{X: 0, Y: height / 2, Width: boundaryThickness, Height: height, Label: BoundaryLabel},
			{X: width, Y: height / 2, Width: boundaryThickness, Height: height, Label: BoundaryLabel},
		},
		Walls: make([]Rect, 0, len(l.Vertical)*(l.columns-1)+len(l.Horizontal)*l.columns-l.OpenPassages()),
		Goal: Rect{
			X:      width - uw/2,
			Y:      height - uh/2,
			Width:  uw * goalScale,
			Height: uh * goalScale,
			Label:  GoalLabel,
		},
		Ball: Circle{
			X:      uw / 2,
			Y:      uh / 2,
			Radius: math.Min(uw, uh) / ballRadiusDivisor,
			Label:  BallLabel,
		},
	}

	for row, passages := range l.Horizontal {
		for col, open := range passages {
			if open {
				continue
			}
			arena.Walls = append(arena.Walls, Rect{
				X:      float64(col)*uw + uw/2,
				Y:      float64(row)*uh + uh,
				Width:  uw,
				Height: cfg.WallThickness,
				Label:  WallLabel,
			})
		}
	}

	for row, passages := range l.Vertical {
		for col, open := range passages {
			if open {
				continue
			}
			arena.Walls = append(arena.Walls, Rect{
				X:      float64(col)*uw + uw,
				Y:      float64(row)*uh + uh/2,
				Width:  cfg.WallThickness,
				Height: uh,
				Label:  WallLabel,
			})
		}
	}

	return arena, nil
}
