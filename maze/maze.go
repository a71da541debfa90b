/*
Package maze generates perfect mazes over rectangular grids.

A maze is described by a Layout: two boolean matrices recording which
passages between adjacent cells are open. Vertical holds the passages
between horizontally adjacent cells (rows x columns-1) and Horizontal holds
the passages between vertically adjacent cells (rows-1 x columns).

Generation is a randomized depth-first traversal (recursive backtracking)
driven by an injected RandomSource, so a fixed draw sequence always yields
the same maze. The open passages of a generated Layout form a spanning tree
of the grid.

The package also derives wall geometry for a physics collaborator
(BuildArena), solves mazes (Solve) and renders them as ASCII (String).
*/
package maze

import (
	"errors"

	"github.com/emirpasic/gods/stacks/arraystack"
)

var (
	ErrInvalidDimension    = errors.New("maze: rows and columns must be at least 1")
	ErrNilRandomSource     = errors.New("maze: random source is nil")
	ErrMalformedLayout     = errors.New("maze: malformed layout")
	ErrOutOfBounds         = errors.New("maze: position is out of the maze")
	ErrInvalidArenaMeasure = errors.New("maze: arena measures must be positive")
)

// Layout is the passage structure of a maze.
type Layout struct {
	rows    int
	columns int

	// Vertical[row][col] is true when the wall between (row, col) and
	// (row, col+1) is removed.
	Vertical [][]bool
	// Horizontal[row][col] is true when the wall between (row, col) and
	// (row+1, col) is removed.
	Horizontal [][]bool
}

// frame is one level of the traversal: a cell and the moves still to try
// from it, already shuffled.
type frame struct {
	pos   CellPosition
	moves []Move
	next  int
}

// Generate builds a perfect maze of the given dimensions by randomized
// recursive backtracking.
//
// The start cell is drawn first (row, then column), then every visited cell
// consumes four draws to shuffle its neighbors. The traversal keeps its own
// stack, so deep serpentine mazes never grow the goroutine stack.
func Generate(rows, columns int, rnd RandomSource) (*Layout, error) {
	if rows < 1 || columns < 1 {
		return nil, ErrInvalidDimension
	}
	if rnd == nil {
		return nil, ErrNilRandomSource
	}

	layout := newLayout(rows, columns)
	visited := newMatrix(rows, columns)
	start := CellPosition{Row: rnd.Intn(rows), Col: rnd.Intn(columns)}

	stack := arraystack.New()
	enter := func(pos CellPosition) {
		visited[pos.Row][pos.Col] = true
		moves := candidateMoves(pos)
		shuffle(moves, rnd)
		stack.Push(&frame{pos: pos, moves: moves})
	}

	enter(start)
	for !stack.Empty() {
		top, _ := stack.Peek()
		f := top.(*frame)
		if f.next == len(f.moves) {
			stack.Pop()
			continue
		}

		move := f.moves[f.next]
		f.next++
		if !layout.InBound(move.To) || visited[move.To.Row][move.To.Col] {
			continue
		}

		layout.openWall(move)
		enter(move.To)
	}

	return layout, nil
}

// newLayout allocates a fully walled layout.
func newLayout(rows, columns int) *Layout {
	return &Layout{
		rows:       rows,
		columns:    columns,
		Vertical:   newMatrix(rows, columns-1),
		Horizontal: newMatrix(rows-1, columns),
	}
}

func newMatrix(rows, columns int) [][]bool {
	m := make([][]bool, rows)
	for i := range m {
		m[i] = make([]bool, columns)
	}
	return m
}

// openWall removes the wall crossed by move.
func (l *Layout) openWall(move Move) {
	row, col := move.From.Row, move.From.Col
	switch move.Direction {
	case Left:
		l.Vertical[row][col-1] = true
	case Right:
		l.Vertical[row][col] = true
	case Up:
		l.Horizontal[row-1][col] = true
	case Down:
		l.Horizontal[row][col] = true
	}
}
