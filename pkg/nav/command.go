package nav

import "github.com/pkg/errors"

// Command is a discrete navigation request from the host.
type Command int

const (
	CmdNone Command = iota
	CmdMoveUp
	CmdMoveDown
	CmdMoveLeft
	CmdMoveRight
	CmdMoveRowStart
	CmdMoveRowEnd
	CmdMoveColStart
	CmdMoveColEnd
	CmdMoveGridStart
	CmdMoveGridEnd
	// CmdSelect clicks the focused cell.
	CmdSelect
	// CmdFocusGrid focuses the first enabled cell when nothing has focus.
	CmdFocusGrid
	// CmdBlur blurs the focused cell.
	CmdBlur
)

var commandNames = map[Command]string{
	CmdNone:          "none",
	CmdMoveUp:        "up",
	CmdMoveDown:      "down",
	CmdMoveLeft:      "left",
	CmdMoveRight:     "right",
	CmdMoveRowStart:  "row-start",
	CmdMoveRowEnd:    "row-end",
	CmdMoveColStart:  "col-start",
	CmdMoveColEnd:    "col-end",
	CmdMoveGridStart: "grid-start",
	CmdMoveGridEnd:   "grid-end",
	CmdSelect:        "select",
	CmdFocusGrid:     "focus-grid",
	CmdBlur:          "blur",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCommand returns the command with the given name.
func ParseCommand(name string) (Command, error) {
	for c, n := range commandNames {
		if n == name {
			return c, nil
		}
	}
	return CmdNone, errors.Wrapf(ErrUnknownCommand, "%q", name)
}

// Dispatch runs cmd on the host path. Errors leave the state unchanged and
// are reported as a diagnostic event instead of being returned. It reports
// whether the command succeeded.
func (n *Navigator) Dispatch(cmd Command) bool {
	var err error
	switch cmd {
	case CmdNone:
	case CmdMoveUp:
		err = n.MoveUp()
	case CmdMoveDown:
		err = n.MoveDown()
	case CmdMoveLeft:
		err = n.MoveLeft()
	case CmdMoveRight:
		err = n.MoveRight()
	case CmdMoveRowStart:
		err = n.MoveRowStart()
	case CmdMoveRowEnd:
		err = n.MoveRowEnd()
	case CmdMoveColStart:
		err = n.MoveColStart()
	case CmdMoveColEnd:
		err = n.MoveColEnd()
	case CmdMoveGridStart:
		err = n.MoveGridStart()
	case CmdMoveGridEnd:
		err = n.MoveGridEnd()
	case CmdSelect:
		cell, ok := n.FocusedCell()
		if !ok {
			err = ErrNotFocused
			break
		}
		n.ClickCell(cell)
	case CmdFocusGrid:
		err = n.focusGrid()
	case CmdBlur:
		cell, ok := n.FocusedCell()
		if !ok {
			err = ErrNotFocused
			break
		}
		n.BlurCell(cell)
	default:
		err = errors.Wrapf(ErrUnknownCommand, "%d", int(cmd))
	}
	if err != nil {
		n.diagnose(errors.Wrapf(err, "%s", cmd))
		return false
	}
	return true
}

func (n *Navigator) focusGrid() error {
	if n.focus.Valid() {
		return nil
	}
	if n.grid.Empty() {
		return ErrEmptyGrid
	}
	first := n.grid.FirstEnabled()
	return n.FocusCellAt(first.Row, first.Col)
}
