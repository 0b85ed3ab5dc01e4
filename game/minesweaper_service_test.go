package game

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/dimaq12/minesweaper/models"
)

type fakeRecorder struct {
	mu       sync.Mutex
	started  int
	actions  []string
	revealed int
	outcome  string
}

func (r *fakeRecorder) GameStarted() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started++
}

func (r *fakeRecorder) Action(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, name)
}

func (r *fakeRecorder) CellsRevealed(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revealed += n
}

func (r *fakeRecorder) GameFinished(outcome string, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcome = outcome
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type runResult struct {
	state State
	err   error
}

func runService(ctx context.Context, t *testing.T, svc *MinesweeperService) <-chan runResult {
	t.Helper()
	done := make(chan runResult, 1)
	go func() {
		state, err := svc.Run(ctx)
		done <- runResult{state, err}
	}()
	return done
}

func waitResult(t *testing.T, done <-chan runResult) runResult {
	t.Helper()
	select {
	case res := <-done:
		return res
	case <-time.After(5 * time.Second):
		t.Fatal("service did not stop")
		return runResult{}
	}
}

func keyFor(a Action) (tcell.Key, rune) {
	switch a {
	case MoveUp:
		return tcell.KeyUp, 0
	case MoveDown:
		return tcell.KeyDown, 0
	case MoveLeft:
		return tcell.KeyLeft, 0
	case MoveRight:
		return tcell.KeyRight, 0
	case ToggleMark:
		return tcell.KeyRune, 'm'
	case Reveal:
		return tcell.KeyRune, ' '
	default:
		return tcell.KeyRune, 'q'
	}
}

func TestService_QuitKey(t *testing.T) {
	rec := &fakeRecorder{}
	svc := NewMinesweeperService(newField(t, 5, 5, 3, 1), quietLogger(), rec)
	screen := tcell.NewSimulationScreen("")
	svc.SetScreen(screen)

	done := runService(context.Background(), t, svc)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	res := waitResult(t, done)
	if res.err != nil {
		t.Fatalf("Run: %v", res.err)
	}
	if res.state != Quitted {
		t.Errorf("state: got %v, want quit", res.state)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if rec.started != 1 {
		t.Errorf("started: got %d, want 1", rec.started)
	}
	if rec.outcome != "quit" {
		t.Errorf("outcome: got %q, want quit", rec.outcome)
	}
}

func TestService_RevealMine(t *testing.T) {
	f := newField(t, 6, 6, 5, 77)
	rec := &fakeRecorder{}
	svc := NewMinesweeperService(f, quietLogger(), rec)
	screen := tcell.NewSimulationScreen("")
	svc.SetScreen(screen)

	mine := findCell(t, f, models.CellState.IsMine)
	actions := append(moveTo(svc.Controller().Cursor(), mine), Reveal)

	done := runService(context.Background(), t, svc)
	for _, a := range actions {
		key, r := keyFor(a)
		screen.InjectKey(key, r, tcell.ModNone)
	}

	res := waitResult(t, done)
	if res.err != nil {
		t.Fatalf("Run: %v", res.err)
	}
	if res.state != Lost {
		t.Errorf("state: got %v, want lost", res.state)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.actions) != len(actions) {
		t.Errorf("actions recorded: got %d, want %d", len(rec.actions), len(actions))
	}
	if rec.revealed != 1 {
		t.Errorf("cells revealed: got %d, want 1", rec.revealed)
	}
	if rec.outcome != "lost" {
		t.Errorf("outcome: got %q, want lost", rec.outcome)
	}
}

func TestService_ContextCancel(t *testing.T) {
	svc := NewMinesweeperService(newField(t, 4, 4, 2, 2), quietLogger(), nil)
	svc.SetScreen(tcell.NewSimulationScreen(""))

	ctx, cancel := context.WithCancel(context.Background())
	done := runService(ctx, t, svc)
	time.Sleep(50 * time.Millisecond)
	cancel()

	res := waitResult(t, done)
	if res.err != nil {
		t.Fatalf("Run: %v", res.err)
	}
	if res.state != Quitted {
		t.Errorf("state: got %v, want quit", res.state)
	}
}

func TestService_TerminalTooSmall(t *testing.T) {
	svc := NewMinesweeperService(newField(t, 5, 60, 10, 2), quietLogger(), nil)
	screen := tcell.NewSimulationScreen("")
	svc.SetScreen(screen)
	screen.SetSize(40, 20)

	res := waitResult(t, runService(context.Background(), t, svc))
	if !errors.Is(res.err, ErrTerminalTooSmall) {
		t.Errorf("Run: got %v, want ErrTerminalTooSmall", res.err)
	}
}

func TestService_StopsWhileRedrawing(t *testing.T) {
	for i := 0; i < 20; i++ {
		f := newField(t, 4, 4, 2, uint64(i+1))
		svc := NewMinesweeperService(f, quietLogger(), nil)
		svc.redrawEvery = time.Millisecond
		screen := tcell.NewSimulationScreen("")
		svc.SetScreen(screen)

		done := runService(context.Background(), t, svc)
		time.Sleep(time.Duration(i%5) * time.Millisecond)
		screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

		res := waitResult(t, done)
		if res.err != nil {
			t.Fatalf("run %d: %v", i, res.err)
		}
		if res.state != Quitted {
			t.Errorf("run %d: state got %v, want quit", i, res.state)
		}
	}
}

func TestService_TooSmallWhileRedrawing(t *testing.T) {
	svc := NewMinesweeperService(newField(t, 5, 60, 10, 3), quietLogger(), nil)
	svc.redrawEvery = time.Millisecond
	screen := tcell.NewSimulationScreen("")
	svc.SetScreen(screen)
	screen.SetSize(40, 20)

	res := waitResult(t, runService(context.Background(), t, svc))
	if !errors.Is(res.err, ErrTerminalTooSmall) {
		t.Errorf("Run: got %v, want ErrTerminalTooSmall", res.err)
	}
}
