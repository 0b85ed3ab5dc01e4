package models

import (
	"strconv"
	"strings"
)

// Display tokens, one character wide each.
const (
	HiddenToken  = "-"
	FlaggedToken = "*"
	EmptyToken   = " "
	MineToken    = "M"
)

// Token returns the display token of the cell at pos as the player sees it.
func (f *Field) Token(pos Position) string {
	if !f.InBounds(pos) {
		return ""
	}
	return f.token(f.index(pos))
}

func (f *Field) token(idx int) string {
	switch f.shown[idx] {
	case Flagged:
		return FlaggedToken
	case Revealed:
		switch c := f.cells[idx]; c {
		case Mine:
			return MineToken
		case Nothing:
			return EmptyToken
		default:
			return strconv.Itoa(c.Count())
		}
	default:
		return HiddenToken
	}
}

// Tokens returns the display token of every cell in row-major order.
func (f *Field) Tokens() []string {
	tokens := make([]string, len(f.shown))
	for idx := range f.shown {
		tokens[idx] = f.token(idx)
	}
	return tokens
}

// Draw renders the bordered grid with the cell under cursor wrapped in
// brackets:
//
//	=========
//	| - - - |
//	| -[*]- |
//	| 1     |
//	=========
func (f *Field) Draw(cursor Position) string {
	var b strings.Builder
	border := strings.Repeat("==", f.size.Y+1) + "="

	b.WriteString(border)
	b.WriteByte('\n')
	for x := 0; x < f.size.X; x++ {
		row := []byte("| ")
		for y := 0; y < f.size.Y; y++ {
			here := cursor == Position{X: x, Y: y}
			if here {
				row[len(row)-1] = '['
			}
			row = append(row, f.token(f.index(Position{X: x, Y: y}))...)
			if here {
				row = append(row, ']')
			} else {
				row = append(row, ' ')
			}
		}
		b.Write(row)
		b.WriteString("|\n")
	}
	b.WriteString(border)

	return b.String()
}

// StatusBar returns "<flags>/<mines> <seconds elapsed>".
func (f *Field) StatusBar() string {
	return strconv.Itoa(f.FlaggedCount()) + "/" + strconv.Itoa(f.mines) +
		" " + strconv.FormatInt(int64(f.Elapsed().Seconds()), 10)
}
