package game

import (
	"errors"

	"github.com/dimaq12/minesweaper/models"
)

const (
	HintText    = "Use the arrow keys to move around the field, SPACE to reveal and M to mark."
	LostText    = "BOOM! You've lost!"
	WonText     = "You win!"
	QuitText    = "Quitting..."
	TooSmallMsg = "Your terminal is too small!"
)

type State int

const (
	Playing State = iota
	Won
	Lost
	Quitted
)

func (s State) String() string {
	switch s {
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Quitted:
		return "quit"
	default:
		return "playing"
	}
}

// GameController applies player actions to a field and keeps the cursor
// and the game state. It is not safe for concurrent use.
type GameController struct {
	field    *models.Field
	cursor   models.Position
	showHint bool
	state    State
}

// NewGameController starts with the cursor in the middle of the field.
func NewGameController(field *models.Field) *GameController {
	size := field.Size()
	return &GameController{
		field:    field,
		cursor:   models.Position{X: size.X / 2, Y: size.Y / 2},
		showHint: true,
	}
}

func (c *GameController) Field() *models.Field { return c.field }

func (c *GameController) Cursor() models.Position { return c.cursor }

func (c *GameController) State() State { return c.state }

// Handle applies a to the game. Actions after the game ended are ignored.
func (c *GameController) Handle(a Action) error {
	if c.state != Playing || a == NoAction {
		return nil
	}
	c.showHint = false

	size := c.field.Size()
	switch a {
	case MoveUp:
		c.cursor.X = max(c.cursor.X-1, 0)
	case MoveDown:
		c.cursor.X = min(c.cursor.X+1, size.X-1)
	case MoveLeft:
		c.cursor.Y = max(c.cursor.Y-1, 0)
	case MoveRight:
		c.cursor.Y = min(c.cursor.Y+1, size.Y-1)
	case ToggleMark:
		if err := c.field.ToggleMark(c.cursor); err != nil {
			return err
		}
	case Reveal:
		outcome, err := c.field.Reveal(c.cursor)
		if err != nil {
			return err
		}
		if outcome == models.Lost {
			c.state = Lost
			return nil
		}
	case Quit:
		c.state = Quitted
		return nil
	default:
		return errors.New("unknown action")
	}

	if c.field.HasWon() {
		c.state = Won
	}
	return nil
}

// Frame returns the text block to display: the status bar, the field and
// a hint or result line.
func (c *GameController) Frame() string {
	frame := c.field.StatusBar() + "\n" + c.field.Draw(c.cursor)

	switch {
	case c.state == Lost:
		frame += "\n" + LostText
	case c.state == Won:
		frame += "\n" + WonText
	case c.showHint:
		frame += "\n" + HintText
	}
	return frame
}
