package models

// Outcome is the result of a reveal.
type Outcome int

const (
	Continue Outcome = iota
	Lost
)

func (o Outcome) String() string {
	if o == Lost {
		return "lost"
	}
	return "continue"
}

// Reveal opens the cell at pos. Opening a mine loses the game and touches no
// other cell. Opening a cell with no adjacent mines also opens the connected
// empty region around it together with its numbered border.
// A flag does not stop a reveal: the truth value decides the outcome.
// Cells already revealed are left as they are.
func (f *Field) Reveal(pos Position) (Outcome, error) {
	if !f.InBounds(pos) {
		return Continue, ErrOutOfBounds
	}

	idx := f.index(pos)
	if f.shown[idx] == Revealed {
		if f.cells[idx] == Mine {
			return Lost, nil
		}
		return Continue, nil
	}

	f.shown[idx] = Revealed
	switch f.cells[idx] {
	case Mine:
		return Lost, nil
	case Nothing:
		f.flood(idx)
	}

	return Continue, nil
}

// flood opens the empty region reachable from start.
//
// The walk keeps an explicit stack of indices still to expand instead of
// recursing, so the depth is bounded by the heap and not the call stack:
//  1. pop an index that is known to hold Nothing;
//  2. look at each of its in-bounds Moore neighbours once, keyed by index
//     in visited, so no cell is processed twice in one call;
//  3. skip neighbours revealed by an earlier action;
//  4. reveal the rest, flags included, and push those that hold Nothing
//     so their own neighbours get opened; numbered cells form the border
//     and are not expanded.
//
// A Nothing cell has no mine around it, so the walk never reaches a mine.
func (f *Field) flood(start int) {
	visited := make([]bool, len(f.cells))
	visited[start] = true
	stack := []int{start}

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		f.eachNeighbor(f.position(idx), func(n Position) {
			next := f.index(n)
			if visited[next] {
				return
			}
			visited[next] = true

			if f.shown[next] == Revealed {
				return
			}
			f.shown[next] = Revealed
			if f.cells[next] == Nothing {
				stack = append(stack, next)
			}
		})
	}
}

// ToggleMark flips a hidden cell to flagged and back. Revealed cells
// cannot be marked.
func (f *Field) ToggleMark(pos Position) error {
	if !f.InBounds(pos) {
		return ErrOutOfBounds
	}

	idx := f.index(pos)
	switch f.shown[idx] {
	case Hidden:
		f.shown[idx] = Flagged
	case Flagged:
		f.shown[idx] = Hidden
	}
	return nil
}

// HasWon reports whether the flags cover exactly the mines.
func (f *Field) HasWon() bool {
	if f.FlaggedCount() != f.mines {
		return false
	}

	for idx, v := range f.shown {
		if v == Flagged && f.cells[idx] != Mine {
			return false
		}
	}
	return true
}
