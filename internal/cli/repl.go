package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/natefinch/atomic"
	"github.com/peterh/liner"
)

// runInteractive drives the session from a line editor until exit, EOF or
// Ctrl-C. Returns 1 if the last command failed.
func runInteractive(ctx context.Context, s *Session, o *IO) int {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(s.complete)

	historyPath := s.cfg.HistoryFileAbs
	if historyPath != "" {
		if err := loadHistory(line, historyPath); err != nil {
			o.Warn("cannot read history "+historyPath, err.Error())
		}
	}

	o.Printf("sloty - slot list playground (hole_threshold=%d, capacity=%d)\n", s.list.HoleThreshold(), s.list.Capacity())
	o.Println("Type 'help' for available commands.")

	exitCode := 0

	for ctx.Err() == nil {
		input, err := line.Prompt(s.cfg.Prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				o.Println()

				break
			}

			o.ErrPrintln("error: reading input:", err)
			exitCode = 1

			break
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		line.AppendHistory(input)

		code, quit := s.Execute(ctx, o, input)
		exitCode = code

		if quit {
			break
		}
	}

	if historyPath != "" {
		if err := saveHistory(line, historyPath); err != nil {
			o.Warn("cannot write history "+historyPath, err.Error())
		}
	}

	return exitCode
}

func loadHistory(line *liner.State, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	if _, err := line.ReadHistory(f); err != nil {
		return fmt.Errorf("read: %w", err)
	}

	return nil
}

// saveHistory replaces the history file atomically so a crash never leaves
// a truncated file behind.
func saveHistory(line *liner.State, path string) error {
	var buf bytes.Buffer

	if _, err := line.WriteHistory(&buf); err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	if err := atomic.WriteFile(path, &buf); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	return nil
}
