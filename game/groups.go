package game

// FindGroupAndLiberty flood-fills the group of the given color containing
// seed. The group is returned in row-major order so membership does not
// depend on traversal order. hasLiberty is set by the first member found
// touching an empty intersection.
func (b *Board) FindGroupAndLiberty(seed Position, color Color) (group []Position, hasLiberty bool) {
	if b.ColorAt(seed) != color || (color != Black && color != White) {
		return nil, false
	}
	visited := make([]bool, len(b.cells))
	members, hasLiberty := b.group(b.index(seed), visited)

	inGroup := make([]bool, len(b.cells))
	for _, i := range members {
		inGroup[i] = true
	}
	group = make([]Position, 0, len(members))
	for i, ok := range inGroup {
		if ok {
			group = append(group, b.position(i))
		}
	}
	return group, hasLiberty
}

// group collects the stones connected to seed, marking them in visited.
func (b *Board) group(seed int, visited []bool) (members []int, hasLiberty bool) {
	color := b.cells[seed]
	stack := []int{seed}
	visited[seed] = true
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		members = append(members, i)

		p := b.position(i)
		for _, d := range directions {
			n := p.add(d)
			if !b.inBounds(n) {
				continue
			}
			j := b.index(n)
			switch b.cells[j] {
			case Empty:
				hasLiberty = true
			case color:
				if !visited[j] {
					visited[j] = true
					stack = append(stack, j)
				}
			}
		}
	}
	return members, hasLiberty
}

// removeDeadGroups clears every group without liberties. All groups are
// judged against the board as it stood before any stone was removed.
func (b *Board) removeDeadGroups() {
	visited := make([]bool, len(b.cells))
	var dead []int
	for i, c := range b.cells {
		if c == Empty || visited[i] {
			continue
		}
		members, hasLiberty := b.group(i, visited)
		if !hasLiberty {
			dead = append(dead, members...)
		}
	}
	for _, i := range dead {
		b.cells[i] = Empty
	}
}

// Region flood-fills the empty area containing seed and reports which color
// owns it (Neutral if it touches both colors or none) and its size.
func (b *Board) Region(seed Position) (owner Color, area int) {
	if b.ColorAt(seed) != Empty {
		return Neutral, 0
	}
	visited := make([]bool, len(b.cells))
	return b.territory(b.index(seed), visited)
}

func (b *Board) territory(seed int, visited []bool) (owner Color, area int) {
	sum := 0
	touchesBlack, touchesWhite := false, false

	stack := []int{seed}
	visited[seed] = true
	for len(stack) > 0 {
		i := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		area++

		p := b.position(i)
		for _, d := range directions {
			n := p.add(d)
			if !b.inBounds(n) {
				continue
			}
			j := b.index(n)
			switch c := b.cells[j]; c {
			case Empty:
				if !visited[j] {
					visited[j] = true
					stack = append(stack, j)
				}
			default:
				sum += c.sign()
				touchesBlack = touchesBlack || c == Black
				touchesWhite = touchesWhite || c == White
			}
		}
	}

	switch {
	case touchesBlack && touchesWhite:
		return Neutral, area
	case sum > 0:
		return Black, area
	case sum < 0:
		return White, area
	default:
		return Neutral, area
	}
}
