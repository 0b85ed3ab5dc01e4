package game

import "github.com/gdamore/tcell/v2"

// Action is a logical player input.
type Action int

const (
	NoAction Action = iota
	MoveUp
	MoveDown
	MoveLeft
	MoveRight
	ToggleMark
	Reveal
	Quit
)

func (a Action) String() string {
	switch a {
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	case MoveLeft:
		return "left"
	case MoveRight:
		return "right"
	case ToggleMark:
		return "mark"
	case Reveal:
		return "reveal"
	case Quit:
		return "quit"
	default:
		return "none"
	}
}

// ActionForKey maps a key event to an action. Unknown keys map to NoAction.
func ActionForKey(event *tcell.EventKey) Action {
	switch event.Key() {
	case tcell.KeyUp:
		return MoveUp
	case tcell.KeyDown:
		return MoveDown
	case tcell.KeyLeft:
		return MoveLeft
	case tcell.KeyRight:
		return MoveRight
	case tcell.KeyEnter:
		return Reveal
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Quit
	case tcell.KeyRune:
		switch event.Rune() {
		case 'k':
			return MoveUp
		case 'j':
			return MoveDown
		case 'h':
			return MoveLeft
		case 'l':
			return MoveRight
		case 'm', 'M', 'f', 'F':
			return ToggleMark
		case ' ':
			return Reveal
		case 'q', 'Q':
			return Quit
		}
	}
	return NoAction
}
