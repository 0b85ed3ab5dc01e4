package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"

	"github.com/dimaq12/minesweaper/models"
)

// RedrawInterval is how often the screen is refreshed without input, so the
// elapsed time in the status bar keeps moving.
const RedrawInterval = time.Second

// Recorder receives game events for metrics.
type Recorder interface {
	GameStarted()
	Action(name string)
	CellsRevealed(n int)
	GameFinished(outcome string, d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) GameStarted() {}
func (nopRecorder) Action(string) {}
func (nopRecorder) CellsRevealed(int) {}
func (nopRecorder) GameFinished(string, time.Duration) {}

// MinesweeperService runs one game in a full-screen terminal UI.
type MinesweeperService struct {
	controller *GameController
	renderer   *Renderer
	app        *tview.Application
	log        *logrus.Entry
	metrics    Recorder

	redrawEvery time.Duration
	stop        context.CancelFunc // ends the session; the redraw loop then stops the app
}

func NewMinesweeperService(field *models.Field, logger *logrus.Logger, rec Recorder) *MinesweeperService {
	if rec == nil {
		rec = nopRecorder{}
	}
	controller := NewGameController(field)
	size := field.Size()

	return &MinesweeperService{
		controller:  controller,
		renderer:    NewRenderer(controller.Frame),
		app:         tview.NewApplication(),
		metrics:     rec,
		redrawEvery: RedrawInterval,
		stop:        func() {},
		log: logger.WithFields(logrus.Fields{
			"session": uuid.New().String(),
			"seed":    field.Seed(),
			"rows":    size.X,
			"cols":    size.Y,
			"mines":   field.MineCount(),
		}),
	}
}

// SetScreen replaces the terminal screen, mostly for tests.
func (s *MinesweeperService) SetScreen(screen tcell.Screen) {
	s.app.SetScreen(screen)
}

func (s *MinesweeperService) Controller() *GameController {
	return s.controller
}

// Run blocks until the game is won, lost or quit, or ctx is done, and
// returns the final state. A terminal too small for the field ends the
// game with ErrTerminalTooSmall.
func (s *MinesweeperService) Run(ctx context.Context) (State, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.stop = cancel

	s.metrics.GameStarted()
	s.log.Info("game started")

	s.app.SetRoot(s.renderer, true)
	s.app.SetInputCapture(s.handleInput)
	s.app.SetAfterDrawFunc(func(tcell.Screen) {
		if s.renderer.Err() != nil {
			s.stop()
		}
	})

	loopDone := make(chan struct{})
	go s.redrawLoop(ctx, loopDone)

	if err := s.app.Run(); err != nil {
		// The loop may be parked on an update the dead event loop will never
		// run, so it is not waited for here.
		return s.controller.State(), fmt.Errorf("run terminal ui: %w", err)
	}
	<-loopDone
	if err := s.renderer.Err(); err != nil {
		s.log.WithError(err).Error("field does not fit the terminal")
		return s.controller.State(), err
	}

	if s.controller.State() == Playing {
		_ = s.controller.Handle(Quit)
	}
	s.finish()

	return s.controller.State(), nil
}

// redrawLoop refreshes the screen on every tick and is the only place that
// stops the application. Queued redraws wait for the event loop, which keeps
// running until Stop, so a redraw can never be left without a reader.
func (s *MinesweeperService) redrawLoop(ctx context.Context, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.redrawEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.app.Stop()
			return
		case <-ticker.C:
			s.app.QueueUpdateDraw(func() {})
		}
	}
}

func (s *MinesweeperService) handleInput(event *tcell.EventKey) *tcell.EventKey {
	action := ActionForKey(event)
	if action == NoAction {
		return event
	}

	field := s.controller.Field()
	before := field.Revealed()
	if err := s.controller.Handle(action); err != nil {
		s.log.WithError(err).WithField("action", action).Warn("action rejected")
	}
	s.metrics.Action(action.String())
	if n := field.Revealed() - before; n > 0 {
		s.metrics.CellsRevealed(n)
	}

	cursor := s.controller.Cursor()
	s.log.WithFields(logrus.Fields{
		"action": action.String(),
		"x":      cursor.X,
		"y":      cursor.Y,
	}).Debug("action handled")

	if s.controller.State() != Playing {
		s.stop()
	}
	return nil
}

func (s *MinesweeperService) finish() {
	field := s.controller.Field()
	state := s.controller.State()
	elapsed := field.Elapsed()

	s.metrics.GameFinished(state.String(), elapsed)
	s.log.WithFields(logrus.Fields{
		"outcome":  state.String(),
		"elapsed":  elapsed.Round(time.Millisecond).String(),
		"flagged":  field.FlaggedCount(),
		"revealed": field.Revealed(),
	}).Info("game finished")
}
