package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var ErrQuit = errors.New("quit requested")

// Prompt asks for the field parameters on w, reading answers from r.
// An empty or invalid answer keeps the current value; "q" returns ErrQuit.
func Prompt(r io.Reader, w io.Writer, cfg Config) (Config, error) {
	scanner := bufio.NewScanner(r)

	ask := func(label, current string) (string, error) {
		fmt.Fprintf(w, "%s [%s] or 'q' to quit: ", label, current)
		if !scanner.Scan() {
			fmt.Fprintln(w)
			return "", scanner.Err()
		}
		answer := strings.TrimSpace(scanner.Text())
		if strings.ToLower(answer) == "q" {
			return "", ErrQuit
		}
		return answer, nil
	}

	ints := []struct {
		label string
		value *int
		min   int
	}{
		{"Field height", &cfg.Height, 1},
		{"Field width", &cfg.Width, 1},
		{"Number of mines", &cfg.Mines, 0},
	}
	for _, q := range ints {
		answer, err := ask(q.label, strconv.Itoa(*q.value))
		if err != nil {
			return cfg, err
		}
		if answer == "" {
			continue
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < q.min {
			fmt.Fprintf(w, "Invalid input, keeping %d.\n", *q.value)
			continue
		}
		*q.value = n
	}

	answer, err := ask("Seed (0 for random)", strconv.FormatUint(cfg.Seed, 10))
	if err != nil {
		return cfg, err
	}
	if answer != "" {
		n, err := strconv.ParseUint(answer, 10, 64)
		if err != nil {
			fmt.Fprintf(w, "Invalid input, keeping %d.\n", cfg.Seed)
		} else {
			cfg.Seed = n
		}
	}

	return cfg, nil
}
