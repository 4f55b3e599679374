package grid

import (
	"strconv"

	"github.com/pkg/errors"
)

// Input holds the builder inputs.
type Input struct {
	Rows    int
	Columns int
	// Records supplies one record per row. A nil slice means no record
	// source; a nil entry is a missing record and fails the build when
	// Columns > 0.
	Records []*Record
	// Disable marks cells disabled. Nil disables nothing.
	Disable DisablePredicate
}

// RangeInput adds the range markers. A nil marker is unset.
type RangeInput struct {
	Input
	Start any
	End   any
}

// Build scans the matrix in row-major order and returns its topology.
// On error no grid is returned.
func Build(in Input) (*Grid, error) {
	g, err := scan(in, nil)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// BuildRange is Build plus the InRange flags and range boundaries derived
// from the Start and End markers.
func BuildRange(in RangeInput) (*RangeGrid, error) {
	rg := &RangeGrid{RangeStart: None, RangeEnd: None}
	inRange := false
	mark := func(c *Cell) {
		pos := c.Position()
		if SameValue(in.Start, c.Value) {
			rg.RangeStart = pos
			inRange = in.End != nil
		}
		c.InRange = inRange
		if SameValue(in.End, c.Value) {
			rg.RangeEnd = pos
			inRange = false
		}
	}
	g, err := scan(in.Input, mark)
	if err != nil {
		return nil, err
	}
	rg.Grid = g
	return rg, nil
}

func scan(in Input, mark func(*Cell)) (*Grid, error) {
	if in.Rows < 0 || in.Columns < 0 {
		return nil, errors.Wrapf(ErrInvalidDimensions, "rows=%d columns=%d", in.Rows, in.Columns)
	}
	disable := in.Disable
	if disable == nil {
		disable = Never
	}
	hasRecords := in.Records != nil

	g := &Grid{
		rows:         in.Rows,
		columns:      in.Columns,
		cells:        make([][]Cell, in.Rows),
		enabledByRow: make([][]int, in.Rows),
		enabledByCol: make([][]int, in.Columns),
		first:        None,
		last:         None,
	}
	for col := range in.Columns {
		g.enabledByCol[col] = []int{}
	}

	for row := range in.Rows {
		record, err := rowRecord(in, row, hasRecords)
		if err != nil {
			return nil, err
		}
		g.cells[row] = make([]Cell, in.Columns)
		g.enabledByRow[row] = []int{}

		for col := range in.Columns {
			key := strconv.Itoa(col)
			var value any = col
			if hasRecords {
				key, value = record.At(col)
			}
			disabled, err := disable.Disabled(col, row, value, predicateRecord(record, hasRecords))
			if err != nil {
				return nil, errors.Wrapf(err, "disable predicate at (%d,%d)", col, row)
			}
			cell := Cell{
				Key:      key,
				Value:    value,
				Disabled: disabled,
				ColIdx:   col,
				RowIdx:   row,
				RowData:  record,
			}
			if mark != nil {
				mark(&cell)
			}
			g.cells[row][col] = cell
			if !disabled {
				g.enable(col, row)
			}
		}
	}
	return g, nil
}

// rowRecord returns the record backing row, or an empty record without a
// record source.
func rowRecord(in Input, row int, hasRecords bool) (*Record, error) {
	if !hasRecords {
		return &Record{}, nil
	}
	if row >= len(in.Records) || in.Records[row] == nil {
		if in.Columns == 0 {
			return &Record{}, nil
		}
		return nil, errors.WithStack(&RecordShapeError{Row: row, Keys: -1, Columns: in.Columns})
	}
	record := in.Records[row]
	if record.Len() < in.Columns {
		return nil, errors.WithStack(&RecordShapeError{Row: row, Keys: record.Len(), Columns: in.Columns})
	}
	return record, nil
}

func predicateRecord(record *Record, hasRecords bool) *Record {
	if !hasRecords {
		return nil
	}
	return record
}

func (g *Grid) enable(col, row int) {
	g.enabledByRow[row] = append(g.enabledByRow[row], col)
	g.enabledByCol[col] = append(g.enabledByCol[col], row)
	if !g.first.Valid() {
		g.first = Position{Col: col, Row: row}
	}
	g.last = Position{Col: col, Row: row}
}
