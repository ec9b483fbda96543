package game

import (
	"errors"
	"fmt"
)

// ErrIllegalMove is wrapped by every error returned from Board.Place.
var ErrIllegalMove = errors.New("illegal move")

// Reason classifies an illegal placement.
type Reason int

const (
	WrongTurn Reason = iota
	Occupied
	OutOfRange
)

func (r Reason) String() string {
	switch r {
	case WrongTurn:
		return "not this color's turn"
	case Occupied:
		return "intersection is occupied"
	case OutOfRange:
		return "position is off the board"
	default:
		return "unknown reason"
	}
}

// IllegalMoveError reports why a placement was rejected. The board is left
// untouched whenever one is returned.
type IllegalMoveError struct {
	Color    Color
	Position Position
	Reason   Reason
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move: %s at %s: %s", e.Color, e.Position, e.Reason)
}

func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}
