package maze

import "slices"

// Solve returns the path of cells leading from one cell to another, both
// endpoints included. In a perfect maze the path is unique.
func Solve(l *Layout, from, to CellPosition) ([]CellPosition, error) {
	if !l.InBound(from) || !l.InBound(to) {
		return nil, ErrOutOfBounds
	}

	parents := l.reachable(from)
	if _, ok := parents[to]; !ok {
		return nil, ErrMalformedLayout
	}

	path := []CellPosition{to}
	for cell := to; cell != from; {
		cell = parents[cell]
		path = append(path, cell)
	}
	slices.Reverse(path)

	return path, nil
}
