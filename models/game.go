package models

import (
	"errors"
	"math/rand/v2"
	"time"
)

var (
	ErrInvalidSize      = errors.New("field size must be positive in both dimensions")
	ErrInvalidMineCount = errors.New("mine count must not be negative")
	ErrTooManyMines     = errors.New("mine count must leave at least one free cell")
	ErrOutOfBounds      = errors.New("position is outside the field")
)

// Position addresses a cell: X is the row, Y the column.
type Position struct {
	X int
	Y int
}

// Size holds the field bounds: X rows by Y columns.
type Size struct {
	X int
	Y int
}

func (s Size) Cells() int {
	return s.X * s.Y
}

// CellState is the hidden truth of a cell. 0 means no adjacent mines,
// 1 to 8 the number of adjacent mines.
type CellState int

const (
	Nothing CellState = 0
	Mine    CellState = -1
)

func Number(n int) CellState {
	return CellState(n)
}

func (c CellState) IsMine() bool {
	return c == Mine
}

// Count returns the number of adjacent mines, or 0 for a mine.
func (c CellState) Count() int {
	if c == Mine {
		return 0
	}
	return int(c)
}

type Visibility int

const (
	Hidden Visibility = iota
	Revealed
	Flagged
)

func (v Visibility) String() string {
	switch v {
	case Revealed:
		return "revealed"
	case Flagged:
		return "flagged"
	default:
		return "hidden"
	}
}

// Field is a single game board. The truth grid is fixed once NewField
// returns; only the visibility grid changes afterwards.
type Field struct {
	size    Size
	seed    uint64
	mines   int
	cells   []CellState
	shown   []Visibility
	started time.Time
}

// NewField builds a field with mines placed by a PCG stream seeded with seed.
// A zero seed draws a fresh seed from entropy; Seed reports the one used.
func NewField(size Size, mines int, seed uint64) (*Field, error) {
	if size.X <= 0 || size.Y <= 0 {
		return nil, ErrInvalidSize
	}
	if mines < 0 {
		return nil, ErrInvalidMineCount
	}
	if mines >= size.Cells() {
		return nil, ErrTooManyMines
	}

	for seed == 0 {
		seed = rand.Uint64()
	}

	f := &Field{
		size:    size,
		seed:    seed,
		mines:   mines,
		cells:   make([]CellState, size.Cells()),
		shown:   make([]Visibility, size.Cells()),
		started: time.Now(),
	}
	f.placeMines(rand.New(rand.NewPCG(seed, seed)))

	return f, nil
}

// placeMines fills the truth grid from r.
//
// For every mine:
//  1. draw a row and then a column from r;
//  2. draw again while that cell already holds a mine, so the field ends
//     up with exactly f.mines distinct mines; NewField keeps at least one
//     cell free, so this loop terminates;
//  3. store the mine and add one to every neighbour that is not a mine.
//
// Counts are built incrementally, so once the loop ends every safe cell
// already holds the number of mines around it. The draw order is part of
// the seed contract: changing it changes every replayed field.
func (f *Field) placeMines(r *rand.Rand) {
	for i := 0; i < f.mines; i++ {
		pos := Position{X: r.IntN(f.size.X), Y: r.IntN(f.size.Y)}
		for f.cells[f.index(pos)] == Mine {
			pos = Position{X: r.IntN(f.size.X), Y: r.IntN(f.size.Y)}
		}

		f.cells[f.index(pos)] = Mine
		// Neighbours that are mines keep the Mine marker instead of a count.
		f.eachNeighbor(pos, func(n Position) {
			if idx := f.index(n); f.cells[idx] != Mine {
				f.cells[idx]++
			}
		})
	}
}

// index maps a position to its row-major offset.
func (f *Field) index(pos Position) int {
	return pos.X*f.size.Y + pos.Y
}

func (f *Field) position(idx int) Position {
	return Position{X: idx / f.size.Y, Y: idx % f.size.Y}
}

func (f *Field) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < f.size.X && pos.Y >= 0 && pos.Y < f.size.Y
}

// eachNeighbor calls fn for every in-bounds cell of the Moore neighborhood
// of pos, excluding pos itself.
func (f *Field) eachNeighbor(pos Position, fn func(Position)) {
	for deltaRow := -1; deltaRow <= 1; deltaRow++ {
		for deltaCol := -1; deltaCol <= 1; deltaCol++ {
			if deltaRow == 0 && deltaCol == 0 {
				continue
			}
			n := Position{X: pos.X + deltaRow, Y: pos.Y + deltaCol}
			if f.InBounds(n) {
				fn(n)
			}
		}
	}
}

func (f *Field) Size() Size { return f.size }

func (f *Field) Seed() uint64 { return f.seed }

func (f *Field) MineCount() int { return f.mines }

// Elapsed returns the time since the field was created.
func (f *Field) Elapsed() time.Duration {
	return time.Since(f.started)
}

// State returns the truth value at pos.
func (f *Field) State(pos Position) (CellState, error) {
	if !f.InBounds(pos) {
		return Nothing, ErrOutOfBounds
	}
	return f.cells[f.index(pos)], nil
}

// Visibility returns what the player currently sees at pos.
func (f *Field) Visibility(pos Position) (Visibility, error) {
	if !f.InBounds(pos) {
		return Hidden, ErrOutOfBounds
	}
	return f.shown[f.index(pos)], nil
}

func (f *Field) FlaggedCount() int {
	return f.countShown(Flagged)
}

func (f *Field) Revealed() int {
	return f.countShown(Revealed)
}

func (f *Field) countShown(v Visibility) int {
	n := 0
	for _, s := range f.shown {
		if s == v {
			n++
		}
	}
	return n
}
