package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/dimaq12/minesweaper/config"
	"github.com/dimaq12/minesweaper/game"
	"github.com/dimaq12/minesweaper/logging"
	"github.com/dimaq12/minesweaper/metrics"
	"github.com/dimaq12/minesweaper/models"
)

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	cfg, err := config.Load(os.Args[1:], os.Getenv, os.Stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fatal("Error: %v", err)
	}

	if cfg.Interactive {
		cfg, err = config.Prompt(os.Stdin, os.Stdout, cfg)
		if errors.Is(err, config.ErrQuit) {
			fmt.Println(game.QuitText)
			return
		}
		if err != nil {
			fatal("Error reading input: %v", err)
		}
	}

	logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if logger == nil {
		fatal("Error: %v", err)
	}
	defer closer.Close()
	if err != nil {
		logger.WithError(err).Warn("using default log level")
	}
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		fatal("Error: stdout is not a terminal")
	}
	if _, _, err := term.GetSize(fd); err != nil {
		fatal("Error: cannot get terminal size: %v", err)
	}

	field, err := models.NewField(cfg.Size(), cfg.Mines, cfg.Seed)
	if err != nil {
		fatal("Error: %v", fmt.Errorf("create field %dx%d with %d mines: %w", cfg.Height, cfg.Width, cfg.Mines, err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rec := metrics.New()
	if cfg.MetricsAddr != "" {
		go func() {
			if err := rec.Serve(ctx, cfg.MetricsAddr, logger); err != nil {
				logger.WithError(err).Error("metrics server stopped")
			}
		}()
	}

	service := game.NewMinesweeperService(field, logger, rec)
	state, err := service.Run(ctx)
	if err != nil {
		if errors.Is(err, game.ErrTerminalTooSmall) {
			closer.Close()
			fatal("%s", game.TooSmallMsg)
		}
		logger.WithError(err).Error("game aborted")
		closer.Close()
		fatal("Error: %v", err)
	}

	printResult(fd, service.Controller().Frame(), state, logger)
}

// printResult shows the last frame on the plain terminal once the UI is gone.
func printResult(fd int, frame string, state game.State, logger *logrus.Logger) {
	if state == game.Quitted {
		frame += "\n" + game.QuitText
	}

	width, height, err := term.GetSize(fd)
	if err != nil {
		logger.WithError(err).Warn("terminal size unavailable, printing uncentered")
		fmt.Println(frame)
		return
	}
	centered, err := game.CenterText(frame, width, height)
	if err != nil {
		fmt.Println(frame)
		return
	}
	fmt.Print(centered)
}
