package maze

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolve(t *testing.T) {
	t.Run("Traced maze", func(t *testing.T) {
		path, err := Solve(traced(t), CellPosition{0, 0}, CellPosition{1, 0})
		require.NoError(t, err)
		assert.Equal(t, []CellPosition{{0, 0}, {0, 1}, {1, 1}, {1, 0}}, path)
	})

	t.Run("Same cell", func(t *testing.T) {
		path, err := Solve(traced(t), CellPosition{1, 1}, CellPosition{1, 1})
		require.NoError(t, err)
		assert.Equal(t, []CellPosition{{1, 1}}, path)
	})

	t.Run("Out of bounds", func(t *testing.T) {
		_, err := Solve(traced(t), CellPosition{0, 0}, CellPosition{2, 0})
		assert.ErrorIs(t, err, ErrOutOfBounds)
	})

	t.Run("Every step is an open passage", func(t *testing.T) {
		layout, err := Generate(15, 11, NewSeededSource(9))
		require.NoError(t, err)

		path, err := Solve(layout, CellPosition{0, 0}, CellPosition{14, 10})
		require.NoError(t, err)
		assert.Equal(t, CellPosition{0, 0}, path[0])
		assert.Equal(t, CellPosition{14, 10}, path[len(path)-1])
		for i := 1; i < len(path); i++ {
			assert.True(t, layout.IsOpen(path[i-1], path[i]), "step %d", i)
		}
	})
}
