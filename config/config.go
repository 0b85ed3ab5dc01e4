package config

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/dimaq12/minesweaper/models"
)

const (
	DefaultHeight   = 10
	DefaultWidth    = 10
	DefaultMines    = 10
	DefaultLogLevel = "info"
)

type Config struct {
	Height      int
	Width       int
	Mines       int
	Seed        uint64 // 0 picks a random seed
	Interactive bool

	LogFile     string
	LogLevel    string
	MetricsAddr string

	// Warnings lists values that could not be parsed and were replaced by
	// their defaults. They are logged once a logger exists.
	Warnings []string
}

func (c Config) Size() models.Size {
	return models.Size{X: c.Height, Y: c.Width}
}

// Load reads the configuration from command line flags, then from the
// environment through getenv, then from defaults. Malformed numbers fall
// back to their default. The only errors are flag syntax errors and
// pflag.ErrHelp.
func Load(args []string, getenv func(string) string, usage io.Writer) (Config, error) {
	fs := pflag.NewFlagSet("minesweeper", pflag.ContinueOnError)
	fs.SetOutput(usage)

	height := fs.StringP("height", "h", "", "height of the field (rows)")
	width := fs.StringP("width", "w", "", "width of the field (columns)")
	mines := fs.StringP("mines", "m", "", "number of mines")
	seed := fs.StringP("seed", "s", "", "seed for mine generation, 0 for a random one")
	interactive := fs.BoolP("interactive", "i", false, "ask for the field parameters before starting")
	logFile := fs.String("log-file", "", "write logs to this file")
	logLevel := fs.String("log-level", "", "log level: debug, info, warn, error")
	metricsAddr := fs.String("metrics-addr", "", "serve prometheus metrics on this address, e.g. :9090")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	lookup := func(name, env string, flag *string) string {
		if fs.Changed(name) {
			return *flag
		}
		return getenv(env)
	}

	cfg := Config{
		Interactive: *interactive,
		LogFile:     lookup("log-file", "MINES_LOG_FILE", logFile),
		LogLevel:    lookup("log-level", "MINES_LOG_LEVEL", logLevel),
		MetricsAddr: lookup("metrics-addr", "MINES_METRICS_ADDR", metricsAddr),
	}
	if !fs.Changed("interactive") {
		cfg.Interactive, _ = strconv.ParseBool(getenv("MINES_INTERACTIVE"))
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	cfg.Height = cfg.positive("height", lookup("height", "MINES_HEIGHT", height), DefaultHeight)
	cfg.Width = cfg.positive("width", lookup("width", "MINES_WIDTH", width), DefaultWidth)
	cfg.Mines = cfg.nonNegative("mines", lookup("mines", "MINES_COUNT", mines), DefaultMines)
	cfg.Seed = cfg.seed(lookup("seed", "MINES_SEED", seed))

	return cfg, nil
}

func (c *Config) positive(name, v string, fallback int) int {
	n, ok := c.parseInt(name, v, fallback)
	if ok && n <= 0 {
		c.warn(name, v, fallback)
		return fallback
	}
	return n
}

func (c *Config) nonNegative(name, v string, fallback int) int {
	n, ok := c.parseInt(name, v, fallback)
	if ok && n < 0 {
		c.warn(name, v, fallback)
		return fallback
	}
	return n
}

func (c *Config) parseInt(name, v string, fallback int) (int, bool) {
	if v == "" {
		return fallback, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		c.warn(name, v, fallback)
		return fallback, false
	}
	return n, true
}

func (c *Config) seed(v string) uint64 {
	if v == "" {
		return 0
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		c.warn("seed", v, 0)
		return 0
	}
	return n
}

func (c *Config) warn(name, v string, fallback int) {
	c.Warnings = append(c.Warnings, fmt.Sprintf("invalid %s %q, using default %d", name, v, fallback))
}
