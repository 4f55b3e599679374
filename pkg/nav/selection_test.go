package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/gridnav/pkg/grid"
)

func letterRange(t *testing.T, start, end any) *grid.RangeGrid {
	t.Helper()
	rg, err := grid.BuildRange(grid.RangeInput{
		Input: grid.Input{
			Rows:    3,
			Columns: 1,
			Records: []*grid.Record{
				grid.NewRecord("v", "a"),
				grid.NewRecord("v", "b"),
				grid.NewRecord("v", "c"),
			},
		},
		Start: start,
		End:   end,
	})
	require.NoError(t, err)
	return rg
}

type rangeValues struct {
	start, end any
}

func lastRange(t *testing.T, rec *Recorder) rangeValues {
	t.Helper()
	start, ok := rec.Last(KindRangeStartChanged)
	require.True(t, ok)
	end, ok := rec.Last(KindRangeEndChanged)
	require.True(t, ok)
	return rangeValues{start: start.Value, end: end.Value}
}

func TestRangeSelectionScenario(t *testing.T) {
	rec := &Recorder{}
	n := NewRange(letterRange(t, nil, nil), WithEmitter(rec))

	b, _ := n.CellAt(1, 0)
	n.Select(b)
	assert.Equal(t, rangeValues{start: "b", end: nil}, lastRange(t, rec))
	anchor, pending := n.Anchor()
	require.True(t, pending)
	assert.Equal(t, b, anchor)

	a, _ := n.CellAt(0, 0)
	n.Select(a)
	assert.Equal(t, rangeValues{start: "a", end: "b"}, lastRange(t, rec))
	_, pending = n.Anchor()
	assert.False(t, pending)

	assert.Equal(t, []Kind{
		KindRangeStartChanged, KindRangeEndChanged,
		KindRangeStartChanged, KindRangeEndChanged,
	}, rec.Kinds())
}

func TestRangeSelectionCommutative(t *testing.T) {
	g := buildGrid(t, 3, 3, pos(1, 1))
	var cells []grid.Cell
	for r := range g.Rows() {
		for _, c := range g.EnabledInRow(r) {
			cell, _ := g.Cell(r, c)
			cells = append(cells, cell)
		}
	}

	outcome := func(first, second grid.Cell) (grid.Position, grid.Position) {
		rec := &Recorder{}
		n := New(g, WithEmitter(rec), WithSelection(&RangeSelection{}))
		n.Select(first)
		n.Select(second)
		start, _ := rec.Last(KindRangeStartChanged)
		end, _ := rec.Last(KindRangeEndChanged)
		return start.Cell.Position(), end.Cell.Position()
	}

	for i, a := range cells {
		for _, b := range cells[i+1:] {
			s1, e1 := outcome(a, b)
			s2, e2 := outcome(b, a)
			assert.Equal(t, s1, s2)
			assert.Equal(t, e1, e2)
			assert.True(t, s1.Before(e1), "%s before %s", s1, e1)
		}
	}
}

func TestRangeSelectionSameCellTwice(t *testing.T) {
	rec := &Recorder{}
	n := NewRange(letterRange(t, nil, nil), WithEmitter(rec))
	c, _ := n.CellAt(2, 0)

	n.ClickCell(c)
	n.ClickCell(c)
	assert.Equal(t, rangeValues{start: "c", end: "c"}, lastRange(t, rec))

	n.ClickCell(c)
	assert.Equal(t, rangeValues{start: "c", end: nil}, lastRange(t, rec), "a third click starts a new anchor")
	_, pending := n.Anchor()
	assert.True(t, pending)
}

func TestRangeSelectionIgnoresDisabled(t *testing.T) {
	rec := &Recorder{}
	g := buildGrid(t, 2, 2, pos(0, 0))
	n := New(g, WithEmitter(rec), WithSelection(&RangeSelection{}))
	disabled, _ := n.CellAt(0, 0)

	n.Select(disabled)
	assert.Empty(t, rec.Events)
	_, pending := n.Anchor()
	assert.False(t, pending)
}

func TestRangeSelectionReset(t *testing.T) {
	s := &RangeSelection{}
	n := New(buildGrid(t, 1, 2), WithSelection(s))
	cell, _ := n.CellAt(0, 1)
	n.Select(cell)

	_, pending := s.Anchor()
	require.True(t, pending)
	s.Reset()
	_, pending = n.Anchor()
	assert.False(t, pending)
}

func TestSingleSelectionHasNoAnchor(t *testing.T) {
	n := New(buildGrid(t, 1, 1))
	cell, _ := n.CellAt(0, 0)
	n.Select(cell)
	_, pending := n.Anchor()
	assert.False(t, pending)
}

func TestQueueRunsOnlyPendingTasks(t *testing.T) {
	q := &Queue{}
	var order []string
	q.Defer(func() {
		order = append(order, "first")
		q.Defer(func() { order = append(order, "nested") })
	})
	q.Defer(func() { order = append(order, "second") })

	assert.Equal(t, 2, q.RunPending())
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, 1, q.RunPending())
	assert.Equal(t, []string{"first", "second", "nested"}, order)
	assert.Equal(t, 0, q.RunPending())
}
