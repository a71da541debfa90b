package maze

// Direction names the side of a cell a move leaves through.
type Direction string

const (
	Up    Direction = "Up"
	Right Direction = "Right"
	Down  Direction = "Down"
	Left  Direction = "Left"
)

// directions lists the candidate moves in the fixed order they are
// assembled before shuffling.
var directions = []struct {
	direction Direction
	delta     CellPosition
}{
	{direction: Up, delta: CellPosition{Row: -1, Col: 0}},
	{direction: Right, delta: CellPosition{Row: 0, Col: 1}},
	{direction: Down, delta: CellPosition{Row: 1, Col: 0}},
	{direction: Left, delta: CellPosition{Row: 0, Col: -1}},
}

// CellPosition represents the position of a cell in the maze grid.
type CellPosition struct {
	Row int `json:"row"` // Row index of the cell
	Col int `json:"col"` // Column index of the cell
}

// Add returns the position reached by applying delta to cp.
func (cp CellPosition) Add(delta CellPosition) CellPosition {
	return CellPosition{Row: cp.Row + delta.Row, Col: cp.Col + delta.Col}
}

// Move represents a step from one cell to an adjacent one.
type Move struct {
	From      CellPosition // Starting cell
	To        CellPosition // Destination cell
	Direction Direction    // Side of From the move leaves through
}

// candidateMoves returns the four moves out of pos in fixed order,
// without any bounds check.
func candidateMoves(pos CellPosition) []Move {
	moves := make([]Move, 0, len(directions))
	for _, d := range directions {
		moves = append(moves, Move{From: pos, To: pos.Add(d.delta), Direction: d.direction})
	}
	return moves
}
