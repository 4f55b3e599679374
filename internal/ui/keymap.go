package ui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/pkg/errors"

	"github.com/oakwood-commons/gridnav/pkg/nav"
)

// KeyMode selects a key binding set.
type KeyMode string

const (
	// KeyModeVim uses h/j/k/l style bindings.
	KeyModeVim KeyMode = "vim"
	// KeyModeEmacs uses ctrl and alt chords.
	KeyModeEmacs KeyMode = "emacs"
	// KeyModeFunction avoids single-letter shortcuts.
	KeyModeFunction KeyMode = "function"
)

// DefaultKeyMode is used when no mode is configured.
const DefaultKeyMode = KeyModeVim

// ValidKeyModes lists all key modes.
var ValidKeyModes = []KeyMode{KeyModeVim, KeyModeEmacs, KeyModeFunction}

// ParseKeyMode validates a key mode name. Empty selects the default.
func ParseKeyMode(s string) (KeyMode, error) {
	if s == "" {
		return DefaultKeyMode, nil
	}
	for _, m := range ValidKeyModes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", errors.Errorf("unknown key mode %q", s)
}

// KeyMap holds the bindings of one key mode.
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	RowStart  key.Binding
	RowEnd    key.Binding
	ColStart  key.Binding
	ColEnd    key.Binding
	GridStart key.Binding
	GridEnd   key.Binding

	Select      key.Binding
	ShiftSelect key.Binding
	CtrlSelect  key.Binding
	ClearAnchor key.Binding
	Focus       key.Binding
	Blur        key.Binding

	Help key.Binding
	Quit key.Binding
}

// NewKeyMap returns the bindings for mode. Arrow keys work in every mode.
func NewKeyMap(mode KeyMode) KeyMap {
	switch mode {
	case KeyModeEmacs:
		return KeyMap{
			Up:          key.NewBinding(key.WithKeys("ctrl+p", "up"), key.WithHelp("C-p", "up")),
			Down:        key.NewBinding(key.WithKeys("ctrl+n", "down"), key.WithHelp("C-n", "down")),
			Left:        key.NewBinding(key.WithKeys("ctrl+b", "left"), key.WithHelp("C-b", "left")),
			Right:       key.NewBinding(key.WithKeys("ctrl+f", "right"), key.WithHelp("C-f", "right")),
			RowStart:    key.NewBinding(key.WithKeys("ctrl+a", "home"), key.WithHelp("C-a", "row start")),
			RowEnd:      key.NewBinding(key.WithKeys("ctrl+e", "end"), key.WithHelp("C-e", "row end")),
			ColStart:    key.NewBinding(key.WithKeys("alt+p"), key.WithHelp("M-p", "column start")),
			ColEnd:      key.NewBinding(key.WithKeys("alt+n"), key.WithHelp("M-n", "column end")),
			GridStart:   key.NewBinding(key.WithKeys("alt+<"), key.WithHelp("M-<", "grid start")),
			GridEnd:     key.NewBinding(key.WithKeys("alt+>"), key.WithHelp("M->", "grid end")),
			Select:      key.NewBinding(key.WithKeys("enter", "ctrl+space"), key.WithHelp("RET", "select")),
			ShiftSelect: key.NewBinding(key.WithKeys("alt+s"), key.WithHelp("M-s", "shift-click")),
			CtrlSelect:  key.NewBinding(key.WithKeys("alt+m"), key.WithHelp("M-m", "ctrl-click")),
			ClearAnchor: key.NewBinding(key.WithKeys("alt+k"), key.WithHelp("M-k", "drop anchor")),
			Focus:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("TAB", "focus grid")),
			Blur:        key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("C-g", "leave grid")),
			Help:        key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "help")),
			Quit:        key.NewBinding(key.WithKeys("ctrl+q", "ctrl+c"), key.WithHelp("C-q", "quit")),
		}
	case KeyModeFunction:
		return KeyMap{
			Up:          key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
			Down:        key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
			Left:        key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
			Right:       key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
			RowStart:    key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "row start")),
			RowEnd:      key.NewBinding(key.WithKeys("end"), key.WithHelp("end", "row end")),
			ColStart:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "column start")),
			ColEnd:      key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "column end")),
			GridStart:   key.NewBinding(key.WithKeys("ctrl+home"), key.WithHelp("C-home", "grid start")),
			GridEnd:     key.NewBinding(key.WithKeys("ctrl+end"), key.WithHelp("C-end", "grid end")),
			Select:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
			ShiftSelect: key.NewBinding(key.WithKeys("f2"), key.WithHelp("F2", "shift-click")),
			CtrlSelect:  key.NewBinding(key.WithKeys("f3"), key.WithHelp("F3", "ctrl-click")),
			ClearAnchor: key.NewBinding(key.WithKeys("f4"), key.WithHelp("F4", "drop anchor")),
			Focus:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus grid")),
			Blur:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave grid")),
			Help:        key.NewBinding(key.WithKeys("f1"), key.WithHelp("F1", "help")),
			Quit:        key.NewBinding(key.WithKeys("f10", "ctrl+c"), key.WithHelp("F10", "quit")),
		}
	}
	return KeyMap{
		Up:          key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:        key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Left:        key.NewBinding(key.WithKeys("h", "left"), key.WithHelp("h", "left")),
		Right:       key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l", "right")),
		RowStart:    key.NewBinding(key.WithKeys("0", "^", "home"), key.WithHelp("0", "row start")),
		RowEnd:      key.NewBinding(key.WithKeys("$", "end"), key.WithHelp("$", "row end")),
		ColStart:    key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "column start")),
		ColEnd:      key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "column end")),
		GridStart:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "grid start")),
		GridEnd:     key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "grid end")),
		Select:      key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("enter", "select")),
		ShiftSelect: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "shift-click")),
		CtrlSelect:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "ctrl-click")),
		ClearAnchor: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "drop anchor")),
		Focus:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus grid")),
		Blur:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave grid")),
		Help:        key.NewBinding(key.WithKeys("?", "f1"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp is shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Select, k.Help, k.Quit}
}

// FullHelp is shown on the help page.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.RowStart, k.RowEnd, k.ColStart, k.ColEnd, k.GridStart, k.GridEnd},
		{k.Select, k.ShiftSelect, k.CtrlSelect, k.ClearAnchor},
		{k.Focus, k.Blur, k.Help, k.Quit},
	}
}

// Command returns the navigator command bound to msg.
func (k KeyMap) Command(msg tea.KeyPressMsg) (nav.Command, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return nav.CmdMoveUp, true
	case key.Matches(msg, k.Down):
		return nav.CmdMoveDown, true
	case key.Matches(msg, k.Left):
		return nav.CmdMoveLeft, true
	case key.Matches(msg, k.Right):
		return nav.CmdMoveRight, true
	case key.Matches(msg, k.RowStart):
		return nav.CmdMoveRowStart, true
	case key.Matches(msg, k.RowEnd):
		return nav.CmdMoveRowEnd, true
	case key.Matches(msg, k.ColStart):
		return nav.CmdMoveColStart, true
	case key.Matches(msg, k.ColEnd):
		return nav.CmdMoveColEnd, true
	case key.Matches(msg, k.GridStart):
		return nav.CmdMoveGridStart, true
	case key.Matches(msg, k.GridEnd):
		return nav.CmdMoveGridEnd, true
	case key.Matches(msg, k.Select):
		return nav.CmdSelect, true
	case key.Matches(msg, k.Focus):
		return nav.CmdFocusGrid, true
	case key.Matches(msg, k.Blur):
		return nav.CmdBlur, true
	}
	return nav.CmdNone, false
}
