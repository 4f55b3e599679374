// Package tui embeds the interactive grid view in host applications.
package tui

import (
	"io"
	"os"
	"strconv"

	tea "charm.land/bubbletea/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/gridnav/internal/ui"
)

// Result is the selection state when the view ends: the selected value in
// single mode, the range markers in range mode, the final focus and the
// navigator events that were emitted.
type Result = ui.Result

// DetectTerminalSize returns the best-effort terminal width and height by probing
// stdout, stderr, and stdin, then falling back to the COLUMNS and LINES
// environment variables. Dimensions that cannot be detected are 0.
func DetectTerminalSize() (width int, height int) {
	fds := []uintptr{os.Stdout.Fd(), os.Stderr.Fd(), os.Stdin.Fd()}
	for _, fd := range fds {
		if w, h, err := term.GetSize(int(fd)); err == nil && (w > 0 || h > 0) {
			return w, h
		}
	}
	return envInt("COLUMNS"), envInt("LINES")
}

func envInt(name string) int {
	if n, err := strconv.Atoi(os.Getenv(name)); err == nil && n > 0 {
		return n
	}
	return 0
}

// Run starts the Bubble Tea grid view and blocks until the user quits.
// Host applications can pass optional tea.ProgramOption values to control IO.
func Run(cfg Config, opts ...tea.ProgramOption) (Result, error) {
	o, err := cfg.options()
	if err != nil {
		return Result{}, err
	}
	return ui.Run(o, cfg.StartKeys, opts...)
}

// RenderSnapshot builds the view, replays cfg.StartKeys and returns one
// rendered frame padded to cfg.Height lines.
func RenderSnapshot(cfg Config) (string, error) {
	o, err := cfg.options()
	if err != nil {
		return "", err
	}
	return ui.RenderSnapshot(o, cfg.StartKeys)
}

// WithIO returns tea.ProgramOptions to set custom input/output.
func WithIO(in io.Reader, out io.Writer) []tea.ProgramOption {
	opts := []tea.ProgramOption{}
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}
	return opts
}
