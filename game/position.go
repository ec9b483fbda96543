package game

import "fmt"

// Size is the side length of a standard board.
const Size = 19

// Position is a 0-indexed (row, col) intersection.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Action is the flat index row*size+col shared by the search tree and
// every evaluator.
type Action int

// NoAction stands for "no move": no legal move was found, or the tree
// should be reset instead of rerooted.
const NoAction Action = -1

// ToAction converts a position on a standard 19x19 board.
func ToAction(p Position) Action {
	return Action(p.Row*Size + p.Col)
}

// ToPosition converts an action on a standard 19x19 board.
func ToPosition(a Action) Position {
	return Position{Row: int(a) / Size, Col: int(a) % Size}
}

var directions = [4]Position{
	{Row: -1, Col: 0}, // up
	{Row: 1, Col: 0},  // down
	{Row: 0, Col: -1}, // left
	{Row: 0, Col: 1},  // right
}

func (p Position) add(d Position) Position {
	return Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
}
