package ui

import (
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Run starts the interactive grid and returns the selection state when the
// user quits. Width/height of 0 auto-detect the terminal size. Extra
// ProgramOptions (e.g., custom IO) are passed to tea.NewProgram.
func Run(opts Options, startKeys []string, progOpts ...tea.ProgramOption) (Result, error) {
	if opts.Width > 0 || opts.Height > 0 {
		opts.Width, opts.Height = terminalSize(opts.Width, opts.Height)
		progOpts = append(progOpts, tea.WithWindowSize(opts.Width, opts.Height))
	}

	m, err := NewModel(opts)
	if err != nil {
		return Result{}, err
	}
	ApplyStartupKeys(m, startKeys)
	if m.quitting {
		return m.Result(), nil
	}

	finalModel, err := tea.NewProgram(m, progOpts...).Run()
	if fm, ok := finalModel.(*Model); ok && fm != nil {
		m = fm
	}
	if err != nil {
		return m.Result(), errors.Wrap(err, "run grid")
	}
	return m.Result(), nil
}

// terminalSize fills unset dimensions from stdout, falling back to 80x24.
func terminalSize(width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			if width <= 0 {
				width = w
			}
			if height <= 0 {
				height = h
			}
		}
	}
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return width, height
}
