package nav

import "github.com/oakwood-commons/gridnav/pkg/grid"

// Selection reduces selected cells to value events.
type Selection interface {
	Select(cell grid.Cell, emit Emitter)
}

// SingleSelection emits value-changed with the selected cell value.
type SingleSelection struct{}

// Select emits value-changed.
func (SingleSelection) Select(cell grid.Cell, emit Emitter) {
	emit.Emit(Event{Kind: KindValueChanged, Cell: cell, Value: cell.Value})
}

// RangeSelection reduces two selections to an ordered (start, end) pair.
// The first selection becomes the anchor and provisionally starts a
// single-point range; the second resolves the range in row-major order.
type RangeSelection struct {
	anchor *grid.Cell
}

// Select records the anchor or resolves the pending range.
func (s *RangeSelection) Select(cell grid.Cell, emit Emitter) {
	if s.anchor == nil {
		anchor := cell
		s.anchor = &anchor
		emit.Emit(Event{Kind: KindRangeStartChanged, Cell: cell, Value: cell.Value})
		emit.Emit(Event{Kind: KindRangeEndChanged})
		return
	}

	start, end := *s.anchor, cell
	if cell.Position().Before(start.Position()) {
		start, end = cell, *s.anchor
	}
	s.anchor = nil
	emit.Emit(Event{Kind: KindRangeStartChanged, Cell: start, Value: start.Value})
	emit.Emit(Event{Kind: KindRangeEndChanged, Cell: end, Value: end.Value})
}

// Anchor returns the pending first selection.
func (s *RangeSelection) Anchor() (grid.Cell, bool) {
	if s.anchor == nil {
		return grid.Cell{}, false
	}
	return *s.anchor, true
}

// Reset drops the pending anchor.
func (s *RangeSelection) Reset() {
	s.anchor = nil
}
