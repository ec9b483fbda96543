package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// boardFrom builds a board from rows of 'X' (black), 'O' (white) and '.'.
func boardFrom(t *testing.T, turn Color, rows ...string) *Board {
	t.Helper()
	size := len(rows)
	cells := make([]Color, 0, size*size)
	stones := 0
	for _, row := range rows {
		require.Len(t, row, size, "rows must form a square")
		for _, ch := range row {
			switch ch {
			case 'X':
				cells = append(cells, Black)
				stones++
			case 'O':
				cells = append(cells, White)
				stones++
			default:
				cells = append(cells, Empty)
			}
		}
	}
	b, err := FromSnapshot(Snapshot{Size: size, Cells: cells, Turn: turn, Stones: stones, Last: NoAction})
	require.NoError(t, err)
	return b
}

func rowsOf(b *Board) []string {
	s := b.String()
	rows := make([]string, 0, b.Size())
	for len(s) > 0 {
		rows = append(rows, s[:b.Size()])
		s = s[b.Size()+1:]
	}
	return rows
}
