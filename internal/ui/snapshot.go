package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// RenderSnapshot renders the grid once after replaying startKeys, without
// starting a program. Width and height default to 80x24; the output is
// padded to the height.
func RenderSnapshot(opts Options, startKeys []string) (string, error) {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	m, err := NewModel(opts)
	if err != nil {
		return "", err
	}
	ApplyStartupKeys(m, startKeys)

	view := m.Render()
	if opts.NoColor {
		view = ansi.Strip(view)
	}
	return padSnapshotHeight(view, opts.Height), nil
}

func padSnapshotHeight(view string, height int) string {
	lines := strings.Split(strings.TrimRight(view, "\n"), "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
