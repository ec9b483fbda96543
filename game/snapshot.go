package game

import (
	"encoding/binary"
	"fmt"

	"github.com/OneOfOne/xxhash"
)

// Snapshot is the serialisable form of a Board.
type Snapshot struct {
	Size   int     `json:"size"`
	Cells  []Color `json:"cells"`
	Turn   Color   `json:"turn"`
	Stones int     `json:"stones"`
	Last   Action  `json:"last"`
}

func (b *Board) Snapshot() Snapshot {
	cells := make([]Color, len(b.cells))
	copy(cells, b.cells)
	return Snapshot{
		Size:   b.size,
		Cells:  cells,
		Turn:   b.turn,
		Stones: b.stones,
		Last:   b.last,
	}
}

// FromSnapshot rebuilds a board. Groups without liberties in the snapshot
// are removed, as after any placement.
func FromSnapshot(s Snapshot) (*Board, error) {
	if s.Size <= 0 {
		return nil, fmt.Errorf("invalid board size %d", s.Size)
	}
	if len(s.Cells) != s.Size*s.Size {
		return nil, fmt.Errorf("expected %d cells for size %d, got %d", s.Size*s.Size, s.Size, len(s.Cells))
	}
	if s.Turn != Black && s.Turn != White {
		return nil, fmt.Errorf("invalid color to move: %s", s.Turn)
	}
	if s.Last < NoAction || int(s.Last) >= len(s.Cells) {
		return nil, fmt.Errorf("last move %d is off the board", s.Last)
	}
	b := NewBoardSize(s.Size)
	for i, c := range s.Cells {
		if c != Empty && c != Black && c != White {
			return nil, fmt.Errorf("invalid cell %d: %d", i, c)
		}
		b.cells[i] = c
	}
	b.turn = s.Turn
	b.stones = s.Stones
	b.last = s.Last
	b.removeDeadGroups()
	return b, nil
}

// Hash is an xxhash of the size, the color to move and the grid. Equal
// positions hash equally regardless of how they were reached.
func (b *Board) Hash() uint64 {
	buf := make([]byte, 0, 5+len(b.cells))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(b.size))
	buf = append(buf, byte(b.turn))
	for _, c := range b.cells {
		buf = append(buf, byte(c))
	}
	return xxhash.Checksum64(buf)
}
