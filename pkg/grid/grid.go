// Package grid builds the navigable topology of a rectangular cell matrix:
// which cells are enabled, the ordered enabled positions of every row and
// column, and the first and last enabled positions in row-major order.
package grid

import (
	"fmt"
	"slices"
)

// Position is a (column, row) coordinate pair.
type Position struct {
	Col int `json:"col" yaml:"col" toml:"col"`
	Row int `json:"row" yaml:"row" toml:"row"`
}

// None marks an absent position: unfocused, no enabled cell, unresolved range boundary.
var None = Position{Col: -1, Row: -1}

// Valid reports whether p is not the sentinel.
func (p Position) Valid() bool {
	return p.Col >= 0 && p.Row >= 0
}

// Before reports whether p comes strictly before q in row-major order.
func (p Position) Before(q Position) bool {
	if p.Row != q.Row {
		return p.Row < q.Row
	}
	return p.Col < q.Col
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Col, p.Row)
}

// Cell is one matrix position with its derived key, value, record and state.
type Cell struct {
	Key      string
	Value    any
	Disabled bool
	ColIdx   int
	RowIdx   int
	RowData  *Record
	// InRange is only set on cells of a RangeGrid.
	InRange bool
}

// Position returns the cell coordinates.
func (c Cell) Position() Position {
	return Position{Col: c.ColIdx, Row: c.RowIdx}
}

// Grid is the immutable topology produced by Build.
// Accessors return copies; a Grid is never mutated after construction.
type Grid struct {
	rows    int
	columns int

	cells        [][]Cell
	enabledByRow [][]int
	enabledByCol [][]int
	first        Position
	last         Position
}

// Rows returns the number of rows.
func (g *Grid) Rows() int {
	return g.rows
}

// Columns returns the number of columns.
func (g *Grid) Columns() int {
	return g.columns
}

// Cell returns the cell at (row, col) and whether it exists.
func (g *Grid) Cell(row, col int) (Cell, bool) {
	if !g.Contains(row, col) {
		return Cell{}, false
	}
	return g.cells[row][col], true
}

// Contains reports whether (row, col) lies inside the matrix.
func (g *Grid) Contains(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.columns
}

// RowCells returns a copy of all cells of a row, disabled ones included.
func (g *Grid) RowCells(row int) []Cell {
	if row < 0 || row >= g.rows {
		return nil
	}
	return slices.Clone(g.cells[row])
}

// EnabledInRow returns the ascending column indices of the enabled cells of row.
func (g *Grid) EnabledInRow(row int) []int {
	if row < 0 || row >= g.rows {
		return nil
	}
	return slices.Clone(g.enabledByRow[row])
}

// EnabledInColumn returns the ascending row indices of the enabled cells of col.
func (g *Grid) EnabledInColumn(col int) []int {
	if col < 0 || col >= g.columns {
		return nil
	}
	return slices.Clone(g.enabledByCol[col])
}

// FirstEnabled returns the first enabled position in row-major order, or None.
func (g *Grid) FirstEnabled() Position {
	return g.first
}

// LastEnabled returns the last enabled position in row-major order, or None.
func (g *Grid) LastEnabled() Position {
	return g.last
}

// Empty reports whether no cell of the grid is enabled.
func (g *Grid) Empty() bool {
	return !g.first.Valid()
}

// Topology returns a serializable summary of the grid.
func (g *Grid) Topology() Topology {
	t := Topology{
		Rows:            g.rows,
		Columns:         g.columns,
		EnabledByRow:    make([][]int, g.rows),
		EnabledByColumn: make([][]int, g.columns),
		FirstEnabled:    g.first,
		LastEnabled:     g.last,
	}
	for r := range g.rows {
		t.EnabledByRow[r] = g.EnabledInRow(r)
	}
	for c := range g.columns {
		t.EnabledByColumn[c] = g.EnabledInColumn(c)
	}
	return t
}

// Topology is the output shape of `gridnav map`.
type Topology struct {
	Rows            int       `json:"rows" yaml:"rows" toml:"rows"`
	Columns         int       `json:"columns" yaml:"columns" toml:"columns"`
	EnabledByRow    [][]int   `json:"enabledByRow" yaml:"enabledByRow" toml:"enabledByRow"`
	EnabledByColumn [][]int   `json:"enabledByColumn" yaml:"enabledByColumn" toml:"enabledByColumn"`
	FirstEnabled    Position  `json:"firstEnabled" yaml:"firstEnabled" toml:"firstEnabled"`
	LastEnabled     Position  `json:"lastEnabled" yaml:"lastEnabled" toml:"lastEnabled"`
	RangeStart      *Position `json:"rangeStart,omitempty" yaml:"rangeStart,omitempty" toml:"rangeStart,omitempty"`
	RangeEnd        *Position `json:"rangeEnd,omitempty" yaml:"rangeEnd,omitempty" toml:"rangeEnd,omitempty"`
}

// RangeGrid is a Grid whose cells carry InRange flags derived from start and
// end markers.
type RangeGrid struct {
	*Grid
	RangeStart Position
	RangeEnd   Position
}

// Topology returns the grid topology including the resolved range boundaries.
func (g *RangeGrid) Topology() Topology {
	t := g.Grid.Topology()
	start, end := g.RangeStart, g.RangeEnd
	t.RangeStart = &start
	t.RangeEnd = &end
	return t
}
