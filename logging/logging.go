package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns a logger writing to the file at path, appending to it.
// The terminal belongs to the game, so an empty path discards all output.
// An unknown level falls back to info and is reported as an error together
// with a usable logger.
func New(path, level string) (*logrus.Logger, io.Closer, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		DisableColors: true,
	})

	var closer io.Closer = nopCloser{}
	if path == "" {
		logger.SetOutput(io.Discard)
	} else {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		logger.SetOutput(f)
		closer = f
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
		return logger, closer, fmt.Errorf("parse log level: %w", err)
	}
	logger.SetLevel(lvl)

	return logger, closer, nil
}
