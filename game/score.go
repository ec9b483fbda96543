package game

// Komi is subtracted from Black's territory before comparing.
const Komi = 7.5

// Score holds the empty area owned by each side.
type Score struct {
	Black   int
	White   int
	Neutral int
}

// Territory flood-fills every empty region once and credits its area to the
// single color bordering it.
func (b *Board) Territory() Score {
	var s Score
	visited := make([]bool, len(b.cells))
	for i, c := range b.cells {
		if c != Empty || visited[i] {
			continue
		}
		owner, area := b.territory(i, visited)
		switch owner {
		case Black:
			s.Black += area
		case White:
			s.White += area
		default:
			s.Neutral += area
		}
	}
	return s
}

// ScoreWinner returns Black, White or Draw using the standard komi.
func (b *Board) ScoreWinner() Color {
	return b.ScoreWinnerKomi(Komi)
}

// ScoreWinnerKomi is ScoreWinner with a custom compensation for White.
func (b *Board) ScoreWinnerKomi(komi float64) Color {
	s := b.Territory()
	black := float64(s.Black) - komi
	white := float64(s.White)
	switch {
	case black > white:
		return Black
	case white > black:
		return White
	default:
		return Draw
	}
}
