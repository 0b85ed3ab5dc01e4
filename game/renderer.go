package game

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
)

// Renderer is a tview primitive that draws a text frame centered in its
// area. If the frame does not fit, it draws a short notice instead and
// keeps the error for the caller.
type Renderer struct {
	*tview.Box
	frame func() string
	err   error
}

func NewRenderer(frame func() string) *Renderer {
	return &Renderer{
		Box:   tview.NewBox(),
		frame: frame,
	}
}

// Draw implements tview.Primitive.
func (r *Renderer) Draw(screen tcell.Screen) {
	r.Box.DrawForSubclass(screen, r)
	x, y, width, height := r.GetInnerRect()

	lines, err := CenterBlock(r.frame(), width, height)
	if err != nil {
		r.err = err
		lines = []Line{{X: 0, Y: height / 2, Text: TooSmallMsg}}
	}

	for _, l := range lines {
		if l.Y < 0 || l.Y >= height {
			continue
		}
		drawText(screen, x+l.X, y+l.Y, x+width, l.Text)
	}
}

// Err returns the error of the last draw that could not fit the frame.
func (r *Renderer) Err() error {
	return r.err
}

func drawText(screen tcell.Screen, x, y, maxX int, text string) {
	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if x+w > maxX {
			return
		}
		screen.SetContent(x, y, ch, nil, tcell.StyleDefault)
		x += w
	}
}
