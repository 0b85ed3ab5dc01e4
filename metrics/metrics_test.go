package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
)

func TestRecorder_Counters(t *testing.T) {
	r := New()

	r.GameStarted()
	r.GameStarted()
	r.Action("reveal")
	r.Action("reveal")
	r.Action("mark")
	r.CellsRevealed(12)
	r.CellsRevealed(1)
	r.GameFinished("won", 42*time.Second)

	if got := testutil.ToFloat64(r.gamesStarted); got != 2 {
		t.Errorf("games started: got %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.actions.WithLabelValues("reveal")); got != 2 {
		t.Errorf("reveal actions: got %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.actions.WithLabelValues("mark")); got != 1 {
		t.Errorf("mark actions: got %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.cellsRevealed); got != 13 {
		t.Errorf("cells revealed: got %v, want 13", got)
	}
	if got := testutil.ToFloat64(r.gamesFinished.WithLabelValues("won")); got != 1 {
		t.Errorf("games won: got %v, want 1", got)
	}
	if got := testutil.CollectAndCount(r.gameDuration); got != 1 {
		t.Errorf("duration series: got %d, want 1", got)
	}
}

func TestHandler_Metrics(t *testing.T) {
	r := New()
	r.GameStarted()
	r.GameFinished("lost", time.Second)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d", w.Code, http.StatusOK)
	}
	body := w.Body.String()
	for _, want := range []string{
		"minesweeper_games_started_total 1",
		`minesweeper_games_finished_total{outcome="lost"} 1`,
		"minesweeper_game_duration_seconds_count 1",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestHandler_Healthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	New().Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status: got %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != "ok\n" {
		t.Errorf("body: got %q, want %q", w.Body.String(), "ok\n")
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- New().Serve(ctx, addr, logger) }()

	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = http.Get("http://" + addr + "/healthz")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
