package game

// FeaturePlanes is the number of size x size planes returned by Features.
const FeaturePlanes = 4

// Features encodes the board for a policy-value network:
//
//	plane 0: stones of the color to move
//	plane 1: stones of the opponent
//	plane 2: the last placement
//	plane 3: all ones when Black is to move
func (b *Board) Features() []float32 {
	n := len(b.cells)
	planes := make([]float32, FeaturePlanes*n)
	for i, c := range b.cells {
		switch c {
		case b.turn:
			planes[i] = 1
		case b.turn.Opponent():
			planes[n+i] = 1
		}
	}
	if b.last != NoAction {
		planes[2*n+int(b.last)] = 1
	}
	if b.turn == Black {
		for i := 3 * n; i < 4*n; i++ {
			planes[i] = 1
		}
	}
	return planes
}
