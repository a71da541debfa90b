package maze

import (
	"fmt"
	"strings"

	"github.com/emirpasic/gods/queues/arrayqueue"
)

// FromPassages rebuilds a Layout from stored passage matrices.
// The matrices are copied and their shapes checked; the spanning tree
// property is not, use Validate for that.
func FromPassages(vertical, horizontal [][]bool) (*Layout, error) {
	rows := len(vertical)
	if rows < 1 {
		return nil, fmt.Errorf("%w: no rows", ErrMalformedLayout)
	}
	columns := len(vertical[0]) + 1

	for row, passages := range vertical {
		if len(passages) != columns-1 {
			return nil, fmt.Errorf("%w: vertical row %d has %d entries, want %d", ErrMalformedLayout, row, len(passages), columns-1)
		}
	}
	if len(horizontal) != rows-1 {
		return nil, fmt.Errorf("%w: %d horizontal rows, want %d", ErrMalformedLayout, len(horizontal), rows-1)
	}
	for row, passages := range horizontal {
		if len(passages) != columns {
			return nil, fmt.Errorf("%w: horizontal row %d has %d entries, want %d", ErrMalformedLayout, row, len(passages), columns)
		}
	}

	layout := newLayout(rows, columns)
	for row := range vertical {
		copy(layout.Vertical[row], vertical[row])
	}
	for row := range horizontal {
		copy(layout.Horizontal[row], horizontal[row])
	}
	return layout, nil
}

// Rows returns the number of cell rows.
func (l *Layout) Rows() int {
	return l.rows
}

// Columns returns the number of cell columns.
func (l *Layout) Columns() int {
	return l.columns
}

// InBound reports whether pos lies inside the grid.
func (l *Layout) InBound(pos CellPosition) bool {
	return pos.Row >= 0 && pos.Row < l.rows && pos.Col >= 0 && pos.Col < l.columns
}

// OpenPassages counts the removed walls across both matrices.
func (l *Layout) OpenPassages() int {
	open := 0
	for _, m := range [][][]bool{l.Vertical, l.Horizontal} {
		for _, row := range m {
			for _, passage := range row {
				if passage {
					open++
				}
			}
		}
	}
	return open
}

// IsOpen reports whether from and to are adjacent cells joined by a passage.
func (l *Layout) IsOpen(from, to CellPosition) bool {
	if !l.InBound(from) || !l.InBound(to) {
		return false
	}

	switch {
	case from.Row == to.Row && to.Col == from.Col+1:
		return l.Vertical[from.Row][from.Col]
	case from.Row == to.Row && to.Col == from.Col-1:
		return l.Vertical[from.Row][to.Col]
	case from.Col == to.Col && to.Row == from.Row+1:
		return l.Horizontal[from.Row][from.Col]
	case from.Col == to.Col && to.Row == from.Row-1:
		return l.Horizontal[to.Row][from.Col]
	default:
		return false
	}
}

// Neighbors returns the cells reachable from pos in one step, in
// up, right, down, left order.
func (l *Layout) Neighbors(pos CellPosition) []CellPosition {
	var result []CellPosition
	for _, move := range candidateMoves(pos) {
		if l.IsOpen(pos, move.To) {
			result = append(result, move.To)
		}
	}
	return result
}

// Validate checks that the layout is a perfect maze: every cell reachable
// and exactly rows*columns-1 passages open.
func (l *Layout) Validate() error {
	if l.rows < 1 || l.columns < 1 {
		return fmt.Errorf("%w: %dx%d grid", ErrMalformedLayout, l.rows, l.columns)
	}

	if open, want := l.OpenPassages(), l.rows*l.columns-1; open != want {
		return fmt.Errorf("%w: %d open passages, want %d", ErrMalformedLayout, open, want)
	}

	if reached := len(l.reachable(CellPosition{})); reached != l.rows*l.columns {
		return fmt.Errorf("%w: %d of %d cells reachable", ErrMalformedLayout, reached, l.rows*l.columns)
	}

	return nil
}

// reachable runs a breadth first flood fill from start and returns, for
// every reached cell, the cell it was first reached from.
func (l *Layout) reachable(start CellPosition) map[CellPosition]CellPosition {
	parents := map[CellPosition]CellPosition{start: start}
	queue := arrayqueue.New()
	queue.Enqueue(start)

	for !queue.Empty() {
		value, _ := queue.Dequeue()
		cell := value.(CellPosition)
		for _, next := range l.Neighbors(cell) {
			if _, seen := parents[next]; !seen {
				parents[next] = cell
				queue.Enqueue(next)
			}
		}
	}

	return parents
}

// String provides a textual representation of the maze.
func (l *Layout) String() string {
	var sb strings.Builder

	// Top boundary
	sb.WriteString("+" + strings.Repeat("---+", l.columns) + "\n")

	for row := 0; row < l.rows; row++ {
		// Cell row, east walls
		sb.WriteString("|")
		for col := 0; col < l.columns; col++ {
			if col < l.columns-1 && l.Vertical[row][col] {
				sb.WriteString("    ")
			} else {
				sb.WriteString("   |")
			}
		}
		sb.WriteString("\n")

		// Wall row, south walls
		sb.WriteString("+")
		for col := 0; col < l.columns; col++ {
			if row < l.rows-1 && l.Horizontal[row][col] {
				sb.WriteString("   +")
			} else {
				sb.WriteString("---+")
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
