package maze

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// constSource always draws the same index.
type constSource int

func (c constSource) Intn(n int) int {
	return int(c)
}

// countingSource records every bound it is asked for.
type countingSource struct {
	rnd    *rand.Rand
	bounds []int
}

func (c *countingSource) Intn(n int) int {
	c.bounds = append(c.bounds, n)
	return c.rnd.Intn(n)
}

// recursiveGenerate is the textbook recursive backtracker, used as a
// reference for the stack based traversal.
func recursiveGenerate(rows, columns int, rnd RandomSource) *Layout {
	layout := newLayout(rows, columns)
	visited := newMatrix(rows, columns)

	var visit func(pos CellPosition)
	visit = func(pos CellPosition) {
		if visited[pos.Row][pos.Col] {
			return
		}
		visited[pos.Row][pos.Col] = true

		moves := candidateMoves(pos)
		shuffle(moves, rnd)
		for _, move := range moves {
			if !layout.InBound(move.To) || visited[move.To.Row][move.To.Col] {
				continue
			}
			layout.openWall(move)
			visit(move.To)
		}
	}

	visit(CellPosition{Row: rnd.Intn(rows), Col: rnd.Intn(columns)})
	return layout
}

func TestGenerate(t *testing.T) {
	t.Run("Invalid dimensions", func(t *testing.T) {
		cases := []struct {
			rows, columns int
		}{
			{0, 5}, {5, -1}, {0, 0}, {-3, 2}, {1, 0},
		}
		for _, tc := range cases {
			src := &countingSource{rnd: rand.New(rand.NewSource(1))}
			layout, err := Generate(tc.rows, tc.columns, src)
			assert.ErrorIs(t, err, ErrInvalidDimension, "%dx%d", tc.rows, tc.columns)
			assert.Nil(t, layout)
			assert.Empty(t, src.bounds, "no draws before validation")
		}
	})

	t.Run("Nil random source", func(t *testing.T) {
		_, err := Generate(3, 3, nil)
		assert.ErrorIs(t, err, ErrNilRandomSource)
	})

	t.Run("Single cell", func(t *testing.T) {
		layout, err := Generate(1, 1, constSource(0))
		require.NoError(t, err)

		assert.Equal(t, 1, layout.Rows())
		assert.Equal(t, 1, layout.Columns())
		assert.Len(t, layout.Horizontal, 0)
		require.Len(t, layout.Vertical, 1)
		assert.Len(t, layout.Vertical[0], 0)
		assert.Zero(t, layout.OpenPassages())
		assert.NoError(t, layout.Validate())
	})

	t.Run("2x2 with zero draws", func(t *testing.T) {
		layout, err := Generate(2, 2, constSource(0))
		require.NoError(t, err)

		assert.Equal(t, [][]bool{{true}, {true}}, layout.Vertical)
		assert.Equal(t, [][]bool{{false, true}}, layout.Horizontal)
		assert.Equal(t, 3, layout.OpenPassages())
	})

	t.Run("Spanning tree for many shapes", func(t *testing.T) {
		shapes := [][2]int{{1, 2}, {2, 1}, {1, 17}, {17, 1}, {2, 2}, {3, 7}, {10, 10}, {30, 20}, {64, 3}}
		for _, shape := range shapes {
			for seed := int64(0); seed < 5; seed++ {
				layout, err := Generate(shape[0], shape[1], NewSeededSource(seed))
				require.NoError(t, err)

				assert.Equal(t, shape[0]*shape[1]-1, layout.OpenPassages(), "%v seed %d", shape, seed)
				assert.NoError(t, layout.Validate(), "%v seed %d", shape, seed)
			}
		}
	})

	t.Run("Matrix dimensions", func(t *testing.T) {
		layout, err := Generate(4, 6, NewSeededSource(3))
		require.NoError(t, err)

		require.Len(t, layout.Vertical, 4)
		for _, row := range layout.Vertical {
			assert.Len(t, row, 5)
		}
		require.Len(t, layout.Horizontal, 3)
		for _, row := range layout.Horizontal {
			assert.Len(t, row, 6)
		}
	})

	t.Run("Same draws give the same maze", func(t *testing.T) {
		a, err := Generate(12, 9, NewSeededSource(42))
		require.NoError(t, err)
		b, err := Generate(12, 9, NewSeededSource(42))
		require.NoError(t, err)

		assert.Equal(t, a.Vertical, b.Vertical)
		assert.Equal(t, a.Horizontal, b.Horizontal)
	})

	t.Run("Draw count", func(t *testing.T) {
		src := &countingSource{rnd: rand.New(rand.NewSource(7))}
		_, err := Generate(5, 8, src)
		require.NoError(t, err)

		require.Len(t, src.bounds, 2+4*5*8)
		assert.Equal(t, []int{5, 8}, src.bounds[:2])
		for i := 2; i < len(src.bounds); i += 4 {
			assert.Equal(t, []int{4, 3, 2, 1}, src.bounds[i:i+4])
		}
	})

	t.Run("Matches recursive traversal", func(t *testing.T) {
		for seed := int64(0); seed < 20; seed++ {
			rows, columns := 3+int(seed%5), 4+int(seed%7)
			want := recursiveGenerate(rows, columns, NewSeededSource(seed))
			got, err := Generate(rows, columns, NewSeededSource(seed))
			require.NoError(t, err)

			assert.Equal(t, want.Vertical, got.Vertical, fmt.Sprintf("seed %d", seed))
			assert.Equal(t, want.Horizontal, got.Horizontal, fmt.Sprintf("seed %d", seed))
		}
	})

	t.Run("Long corridor", func(t *testing.T) {
		layout, err := Generate(1, 20000, constSource(0))
		require.NoError(t, err)
		assert.NoError(t, layout.Validate())
	})
}

func TestShuffle(t *testing.T) {
	moves := candidateMoves(CellPosition{Row: 1, Col: 1})
	shuffle(moves, constSource(0))

	var got []Direction
	for _, m := range moves {
		got = append(got, m.Direction)
	}
	assert.Equal(t, []Direction{Right, Down, Left, Up}, got)
}
