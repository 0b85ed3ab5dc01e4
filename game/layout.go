package game

import (
	"errors"
	"strings"

	"github.com/mattn/go-runewidth"
)

var ErrTerminalTooSmall = errors.New(TooSmallMsg)

// Line is one line of a block placed on a width x height area.
type Line struct {
	X, Y int
	Text string
}

// CenterBlock places every line of block centered horizontally, and the
// whole block centered vertically when it fits. A line wider than width
// cannot be shown and yields ErrTerminalTooSmall.
func CenterBlock(block string, width, height int) ([]Line, error) {
	lines := strings.Split(block, "\n")

	top := 0
	if len(lines) <= height {
		top = (height - len(lines)) / 2
	}

	placed := make([]Line, 0, len(lines))
	for i, text := range lines {
		w := runewidth.StringWidth(text)
		if w > width {
			return nil, ErrTerminalTooSmall
		}
		placed = append(placed, Line{X: (width - w) / 2, Y: top + i, Text: text})
	}
	return placed, nil
}

// CenterText is CenterBlock rendered back to a string of padded lines,
// for printing outside the full-screen UI.
func CenterText(block string, width, height int) (string, error) {
	lines, err := CenterBlock(block, width, height)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if len(lines) > 0 {
		b.WriteString(strings.Repeat("\n", lines[0].Y))
	}
	for _, l := range lines {
		b.WriteString(strings.Repeat(" ", l.X))
		b.WriteString(l.Text)
		b.WriteByte('\n')
	}
	return b.String(), nil
}
