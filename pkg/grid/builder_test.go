package grid

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func centreDisabled() DisablePredicate {
	return DisablePositions(Position{Col: 1, Row: 1})
}

func TestBuildAllEnabled(t *testing.T) {
	sizes := []struct{ rows, columns int }{
		{1, 1}, {1, 5}, {5, 1}, {3, 4}, {7, 7},
	}
	for _, sz := range sizes {
		t.Run(fmt.Sprintf("%dx%d", sz.rows, sz.columns), func(t *testing.T) {
			g, err := Build(Input{Rows: sz.rows, Columns: sz.columns})
			require.NoError(t, err)

			for r := range sz.rows {
				assert.Len(t, g.EnabledInRow(r), sz.columns)
			}
			assert.Equal(t, Position{Col: 0, Row: 0}, g.FirstEnabled())
			assert.Equal(t, Position{Col: sz.columns - 1, Row: sz.rows - 1}, g.LastEnabled())
		})
	}
}

func TestBuildEmptyDimensions(t *testing.T) {
	for _, in := range []Input{{Rows: 0, Columns: 0}, {Rows: 0, Columns: 3}, {Rows: 3, Columns: 0}} {
		g, err := Build(in)
		require.NoError(t, err)
		assert.True(t, g.Empty())
		assert.Equal(t, None, g.FirstEnabled())
		assert.Equal(t, None, g.LastEnabled())
	}

	g, err := Build(Input{Rows: 0, Columns: 3})
	require.NoError(t, err)
	for c := range 3 {
		assert.NotNil(t, g.EnabledInColumn(c), "column %d list must exist", c)
	}
}

func TestBuildNegativeDimensions(t *testing.T) {
	_, err := Build(Input{Rows: -1, Columns: 2})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDimensions))
}

func TestBuildColumnCountInvariant(t *testing.T) {
	disable := DisableFunc(func(col, row int, _ any, _ *Record) bool {
		return (col*7+row*3)%4 == 0
	})
	g, err := Build(Input{Rows: 6, Columns: 5, Disable: disable})
	require.NoError(t, err)

	for c := range g.Columns() {
		disabled := 0
		for r := range g.Rows() {
			cell, ok := g.Cell(r, c)
			require.True(t, ok)
			if cell.Disabled {
				disabled++
			}
		}
		assert.Equal(t, g.Rows(), len(g.EnabledInColumn(c))+disabled, "column %d", c)
	}
}

func TestBuildEnabledListsMatchCells(t *testing.T) {
	disable := DisableFunc(func(col, row int, _ any, _ *Record) bool {
		return col == row || col == 0 && row == 2
	})
	g, err := Build(Input{Rows: 4, Columns: 4, Disable: disable})
	require.NoError(t, err)

	for r := range g.Rows() {
		var want []int
		for _, cell := range g.RowCells(r) {
			if !cell.Disabled {
				want = append(want, cell.ColIdx)
			}
		}
		assert.Equal(t, want, g.EnabledInRow(r), "row %d", r)
	}
	assert.Equal(t, []int{1, 3}, g.EnabledInColumn(0))
	assert.Equal(t, Position{Col: 1, Row: 0}, g.FirstEnabled())
	assert.Equal(t, Position{Col: 2, Row: 3}, g.LastEnabled())
}

func TestBuildIdempotent(t *testing.T) {
	records := []*Record{
		NewRecord("a", 1, "b", 2),
		NewRecord("a", 3, "b", 4),
	}
	in := Input{Rows: 2, Columns: 2, Records: records, Disable: centreDisabled()}

	first, err := Build(in)
	require.NoError(t, err)
	second, err := Build(in)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestBuildCentreDisabledScenario(t *testing.T) {
	g, err := Build(Input{Rows: 3, Columns: 3, Disable: centreDisabled()})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2}, g.EnabledInRow(1))
	assert.Equal(t, []int{0, 2}, g.EnabledInColumn(1))
	assert.Equal(t, Position{Col: 0, Row: 0}, g.FirstEnabled())
	assert.Equal(t, Position{Col: 2, Row: 2}, g.LastEnabled())

	centre, ok := g.Cell(1, 1)
	require.True(t, ok)
	assert.True(t, centre.Disabled)
	assert.Equal(t, "1", centre.Key)
	assert.Equal(t, 1, centre.Value)
}

func TestBuildFullyDisabledRow(t *testing.T) {
	disable := DisableFunc(func(_, row int, _ any, _ *Record) bool { return row == 0 })
	g, err := Build(Input{Rows: 2, Columns: 2, Disable: disable})
	require.NoError(t, err)

	assert.Empty(t, g.EnabledInRow(0))
	assert.Equal(t, Position{Col: 0, Row: 1}, g.FirstEnabled())
}

func TestBuildWithRecords(t *testing.T) {
	records := []*Record{
		NewRecord("name", "ada", "lang", "go"),
		NewRecord("name", "bob", "lang", "rust"),
	}
	var seen []string
	disable := DisableFunc(func(col, row int, value any, record *Record) bool {
		name, _ := record.Get("name")
		seen = append(seen, fmt.Sprintf("%d,%d=%v/%v", col, row, value, name))
		return value == "rust"
	})

	g, err := Build(Input{Rows: 2, Columns: 2, Records: records, Disable: disable})
	require.NoError(t, err)

	cell, _ := g.Cell(1, 0)
	assert.Equal(t, "name", cell.Key)
	assert.Equal(t, "bob", cell.Value)
	assert.Same(t, records[1], cell.RowData)

	assert.Equal(t, []int{0}, g.EnabledInRow(1))
	assert.Equal(t, []string{"0,0=ada/ada", "1,0=go/ada", "0,1=bob/bob", "1,1=rust/bob"}, seen)
}

func TestBuildWithoutRecordsPassesNilRecord(t *testing.T) {
	disable := DisableFunc(func(_, _ int, _ any, record *Record) bool {
		assert.Nil(t, record)
		return false
	})
	g, err := Build(Input{Rows: 1, Columns: 2, Disable: disable})
	require.NoError(t, err)

	cell, _ := g.Cell(0, 1)
	require.NotNil(t, cell.RowData)
	assert.Equal(t, 0, cell.RowData.Len())
}

func TestBuildInvalidRecordShape(t *testing.T) {
	tests := []struct {
		name    string
		records []*Record
		columns int
		keys    int
		row     int
	}{
		{
			name:    "too few keys",
			records: []*Record{NewRecord("a", 1, "b", 2), NewRecord("a", 1)},
			columns: 2,
			keys:    1,
			row:     1,
		},
		{
			name:    "nil record",
			records: []*Record{nil},
			columns: 1,
			keys:    -1,
			row:     0,
		},
		{
			name:    "fewer records than rows",
			records: []*Record{NewRecord("a", 1)},
			columns: 1,
			keys:    -1,
			row:     1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Build(Input{Rows: 2, Columns: tt.columns, Records: tt.records})
			require.Error(t, err)
			assert.Nil(t, g)
			assert.True(t, errors.Is(err, ErrInvalidRecordShape))

			var shapeErr *RecordShapeError
			require.True(t, errors.As(err, &shapeErr))
			assert.Equal(t, tt.row, shapeErr.Row)
			assert.Equal(t, tt.keys, shapeErr.Keys)
			assert.Equal(t, tt.columns, shapeErr.Columns)
		})
	}
}

func TestBuildExtraKeysIgnored(t *testing.T) {
	g, err := Build(Input{Rows: 1, Columns: 1, Records: []*Record{NewRecord("a", 1, "b", 2)}})
	require.NoError(t, err)
	cell, _ := g.Cell(0, 0)
	assert.Equal(t, "a", cell.Key)
	_, ok := g.Cell(0, 1)
	assert.False(t, ok)
}

type failingPredicate struct{}

func (failingPredicate) Disabled(col, row int, _ any, _ *Record) (bool, error) {
	if col == 1 && row == 0 {
		return false, errors.New("boom")
	}
	return false, nil
}

func TestBuildPredicateError(t *testing.T) {
	g, err := Build(Input{Rows: 1, Columns: 2, Disable: failingPredicate{}})
	require.Error(t, err)
	assert.Nil(t, g)
	assert.Contains(t, err.Error(), "(1,0)")
	assert.Contains(t, err.Error(), "boom")
}

func TestPositionBefore(t *testing.T) {
	assert.True(t, Position{Col: 5, Row: 0}.Before(Position{Col: 0, Row: 1}))
	assert.True(t, Position{Col: 0, Row: 1}.Before(Position{Col: 1, Row: 1}))
	assert.False(t, Position{Col: 1, Row: 1}.Before(Position{Col: 1, Row: 1}))
	assert.False(t, Position{Col: 0, Row: 2}.Before(Position{Col: 4, Row: 1}))
}
