package grid

// DisablePredicate decides, per cell, whether the cell is disabled.
// record is nil when the grid has no record source.
type DisablePredicate interface {
	Disabled(col, row int, value any, record *Record) (bool, error)
}

// DisableFunc adapts a plain function to DisablePredicate.
type DisableFunc func(col, row int, value any, record *Record) bool

// Disabled calls f.
func (f DisableFunc) Disabled(col, row int, value any, record *Record) (bool, error) {
	return f(col, row, value, record), nil
}

// Never disables no cell.
var Never DisablePredicate = never{}

type never struct{}

func (never) Disabled(int, int, any, *Record) (bool, error) {
	return false, nil
}

func (never) Identity() string {
	return "never"
}

// DisablePositions returns a predicate disabling exactly the listed positions.
func DisablePositions(positions ...Position) DisablePredicate {
	set := make(map[Position]struct{}, len(positions))
	for _, p := range positions {
		set[p] = struct{}{}
	}
	return positionSet(set)
}

type positionSet map[Position]struct{}

func (s positionSet) Disabled(col, row int, _ any, _ *Record) (bool, error) {
	_, ok := s[Position{Col: col, Row: row}]
	return ok, nil
}
