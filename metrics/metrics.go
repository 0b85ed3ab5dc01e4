package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const namespace = "minesweeper"

// Recorder counts games and player actions on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	gamesStarted  prometheus.Counter
	gamesFinished *prometheus.CounterVec
	actions       *prometheus.CounterVec
	cellsRevealed prometheus.Counter
	gameDuration  prometheus.Histogram
}

func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		gamesStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_started_total",
			Help:      "Total number of games started.",
		}),
		gamesFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "games_finished_total",
			Help:      "Total number of games finished, by outcome.",
		}, []string{"outcome"}),
		actions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_total",
			Help:      "Total number of player actions, by action.",
		}, []string{"action"}),
		cellsRevealed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cells_revealed_total",
			Help:      "Total number of cells revealed, including flood fills.",
		}),
		gameDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "game_duration_seconds",
			Help:      "Duration of finished games in seconds.",
			Buckets:   []float64{5, 15, 30, 60, 120, 300, 600, 1800},
		}),
	}
}

func (r *Recorder) GameStarted() {
	r.gamesStarted.Inc()
}

func (r *Recorder) Action(name string) {
	r.actions.WithLabelValues(name).Inc()
}

func (r *Recorder) CellsRevealed(n int) {
	r.cellsRevealed.Add(float64(n))
}

func (r *Recorder) GameFinished(outcome string, d time.Duration) {
	r.gamesFinished.WithLabelValues(outcome).Inc()
	r.gameDuration.Observe(d.Seconds())
}

// Handler serves /metrics and /healthz.
func (r *Recorder) Handler() http.Handler {
	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer)

	mux.Handle("/metrics", promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok\n"))
	})

	return mux
}

// Serve exposes Handler on addr until ctx is done.
func (r *Recorder) Serve(ctx context.Context, addr string, logger *logrus.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           r.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Error("metrics server shutdown")
		}
	}()

	logger.WithField("addr", addr).Info("serving metrics")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
