package game

// Color is the state of a single intersection.
type Color int8

const (
	Empty Color = iota
	Black
	White
	// Invalid is what ColorAt reports for positions off the board.
	Invalid
)

// Neutral marks territory bordered by both colors (or by none), Draw marks a
// game without a winner. Both share the zero value with Empty.
const (
	Neutral = Empty
	Draw    = Empty
)

// Opponent returns the other stone color. Empty and Invalid map to themselves.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return c
	}
}

// sign is the contribution of a stone to a signed territory sum.
func (c Color) sign() int {
	switch c {
	case Black:
		return 1
	case White:
		return -1
	default:
		return 0
	}
}

func (c Color) String() string {
	switch c {
	case Empty:
		return "empty"
	case Black:
		return "black"
	case White:
		return "white"
	default:
		return "invalid"
	}
}

// symbol is the single-character form used by Board.String.
func (c Color) symbol() byte {
	switch c {
	case Black:
		return 'X'
	case White:
		return 'O'
	default:
		return '.'
	}
}
