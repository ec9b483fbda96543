package game

import (
	"fmt"
	"strings"
)

// DefaultMaxStones is the ply cap after which a game counts as finished.
const DefaultMaxStones = 300

// Board is the grid, the color to move and the number of placements made so
// far. It knows nothing about search. Use Copy to get an independent board
// for speculative play.
type Board struct {
	size   int
	cells  []Color // row-major
	turn   Color
	stones int
	last   Action
}

// NewBoard returns an empty 19x19 board with Black to move.
func NewBoard() *Board {
	return NewBoardSize(Size)
}

// NewBoardSize returns an empty size x size board with Black to move.
func NewBoardSize(size int) *Board {
	if size <= 0 {
		panic(fmt.Sprintf("invalid board size %d", size))
	}
	return &Board{
		size:  size,
		cells: make([]Color, size*size),
		turn:  Black,
		last:  NoAction,
	}
}

func (b *Board) Size() int        { return b.size }
func (b *Board) Turn() Color      { return b.turn }
func (b *Board) StoneCount() int  { return b.stones }
func (b *Board) LastMove() Action { return b.last }

// Copy returns a deep copy that shares no state with b.
func (b *Board) Copy() *Board {
	cells := make([]Color, len(b.cells))
	copy(cells, b.cells)
	return &Board{
		size:   b.size,
		cells:  cells,
		turn:   b.turn,
		stones: b.stones,
		last:   b.last,
	}
}

func (b *Board) inBounds(p Position) bool {
	return p.Row >= 0 && p.Row < b.size && p.Col >= 0 && p.Col < b.size
}

func (b *Board) index(p Position) int {
	return p.Row*b.size + p.Col
}

func (b *Board) position(i int) Position {
	return Position{Row: i / b.size, Col: i % b.size}
}

// ActionOf converts a position to this board's action index.
func (b *Board) ActionOf(p Position) Action {
	return Action(b.index(p))
}

// PositionOf converts one of this board's action indices to a position.
func (b *Board) PositionOf(a Action) Position {
	return b.position(int(a))
}

// ColorAt returns the state of p, or Invalid if p is off the board.
func (b *Board) ColorAt(p Position) Color {
	if !b.inBounds(p) {
		return Invalid
	}
	return b.cells[b.index(p)]
}

// Place puts a stone of the given color at p, hands the turn to the
// opponent and removes every group left without liberties, anywhere on the
// board. That includes the mover's own group: a self-capturing placement is
// accepted and its stones are taken off.
func (b *Board) Place(color Color, p Position) error {
	if !b.inBounds(p) {
		return &IllegalMoveError{Color: color, Position: p, Reason: OutOfRange}
	}
	if color != b.turn {
		return &IllegalMoveError{Color: color, Position: p, Reason: WrongTurn}
	}
	i := b.index(p)
	if b.cells[i] != Empty {
		return &IllegalMoveError{Color: color, Position: p, Reason: Occupied}
	}

	b.cells[i] = color
	b.turn = color.Opponent()
	b.stones++
	b.last = Action(i)
	b.removeDeadGroups()
	return nil
}

// Play places a stone for the color to move at the given action.
func (b *Board) Play(a Action) error {
	if a < 0 || int(a) >= len(b.cells) {
		return &IllegalMoveError{Color: b.turn, Position: b.position(int(a)), Reason: OutOfRange}
	}
	return b.Place(b.turn, b.position(int(a)))
}

// AvailableMoves lists every empty intersection in row-major order.
func (b *Board) AvailableMoves() []Position {
	moves := make([]Position, 0, len(b.cells))
	for i, c := range b.cells {
		if c == Empty {
			moves = append(moves, b.position(i))
		}
	}
	return moves
}

// LegalActions is AvailableMoves expressed as action indices.
func (b *Board) LegalActions() []Action {
	actions := make([]Action, 0, len(b.cells))
	for i, c := range b.cells {
		if c == Empty {
			actions = append(actions, Action(i))
		}
	}
	return actions
}

// IsTerminal reports whether more than maxStones placements have been made.
func (b *Board) IsTerminal(maxStones int) bool {
	return b.stones > maxStones
}

// Grid returns a row-major copy of the cells.
func (b *Board) Grid() [][]Color {
	grid := make([][]Color, b.size)
	for r := range grid {
		grid[r] = make([]Color, b.size)
		copy(grid[r], b.cells[r*b.size:(r+1)*b.size])
	}
	return grid
}

func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.size; r++ {
		for c := 0; c < b.size; c++ {
			sb.WriteByte(b.cells[r*b.size+c].symbol())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
