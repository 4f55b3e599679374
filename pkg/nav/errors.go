package nav

import "github.com/pkg/errors"

var (
	// ErrNotFocused means a move was requested while no cell has focus.
	ErrNotFocused = errors.New("no cell is focused")
	// ErrNoEnabledCellInRow means a row start/end move hit a row without enabled cells.
	ErrNoEnabledCellInRow = errors.New("no enabled cell in row")
	// ErrNoEnabledCellInColumn means a column start/end move hit a column without enabled cells.
	ErrNoEnabledCellInColumn = errors.New("no enabled cell in column")
	// ErrEmptyGrid means a grid start/end move on a grid without enabled cells.
	ErrEmptyGrid = errors.New("grid has no enabled cell")
	// ErrOutOfBounds means focus was requested outside the matrix.
	ErrOutOfBounds = errors.New("position outside the grid")
	// ErrNoFocusTarget means the focus resolver returned no handle.
	ErrNoFocusTarget = errors.New("focus resolver returned no target")
	// ErrUnknownCommand means Dispatch received a command it does not know.
	ErrUnknownCommand = errors.New("unknown command")
)
