// Package nav implements focus movement and cell selection over a grid
// topology. A Navigator owns the focus coordinates and, in range mode, the
// pending selection anchor; it never touches the rendering layer and talks
// to its host through a FocusResolver, an Emitter and a Scheduler.
package nav

import (
	"slices"

	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/oakwood-commons/gridnav/pkg/grid"
)

// Navigator is the focus and selection state machine. It is single-owner and
// must be driven from one goroutine.
type Navigator struct {
	grid  *grid.Grid
	focus grid.Position

	resolver  FocusResolver
	emitter   Emitter
	scheduler Scheduler
	selection Selection
	log       logr.Logger
}

// Option configures a Navigator.
type Option func(*Navigator)

// WithResolver sets the capability that moves host focus.
func WithResolver(r FocusResolver) Option {
	return func(n *Navigator) {
		n.resolver = r
	}
}

// WithEmitter sets the event sink.
func WithEmitter(e Emitter) Option {
	return func(n *Navigator) {
		n.emitter = e
	}
}

// WithScheduler sets the scheduler for the deferred blur check.
func WithScheduler(s Scheduler) Option {
	return func(n *Navigator) {
		n.scheduler = s
	}
}

// WithSelection sets the selection strategy.
func WithSelection(s Selection) Option {
	return func(n *Navigator) {
		n.selection = s
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(log logr.Logger) Option {
	return func(n *Navigator) {
		n.log = log
	}
}

// New returns an unfocused Navigator over g using single selection.
func New(g *grid.Grid, opts ...Option) *Navigator {
	n := &Navigator{
		focus:     grid.None,
		emitter:   discardEmitter{},
		scheduler: &Queue{},
		selection: SingleSelection{},
		log:       logr.Discard(),
	}
	for _, opt := range opts {
		opt(n)
	}
	n.SetGrid(g)
	return n
}

// NewRange returns an unfocused Navigator over rg using range selection.
func NewRange(rg *grid.RangeGrid, opts ...Option) *Navigator {
	var g *grid.Grid
	if rg != nil {
		g = rg.Grid
	}
	return New(g, append([]Option{WithSelection(&RangeSelection{})}, opts...)...)
}

// Grid returns the topology the navigator reads.
func (n *Navigator) Grid() *grid.Grid {
	return n.grid
}

// SetGrid swaps in a rebuilt grid. Focus is kept when it still lies inside
// the new matrix and cleared otherwise.
func (n *Navigator) SetGrid(g *grid.Grid) {
	if g == nil {
		g, _ = grid.Build(grid.Input{})
	}
	n.grid = g
	if n.focus.Valid() && !g.Contains(n.focus.Row, n.focus.Col) {
		n.ClearFocus()
	}
}

// Position returns the focused position, or grid.None.
func (n *Navigator) Position() grid.Position {
	return n.focus
}

// Focused reports whether a cell has focus.
func (n *Navigator) Focused() bool {
	return n.focus.Valid()
}

// CellAt returns the cell at (row, col).
func (n *Navigator) CellAt(row, col int) (grid.Cell, bool) {
	return n.grid.Cell(row, col)
}

// FocusedCell returns the focused cell.
func (n *Navigator) FocusedCell() (grid.Cell, bool) {
	if !n.focus.Valid() {
		return grid.Cell{}, false
	}
	return n.grid.Cell(n.focus.Row, n.focus.Col)
}

// Anchor returns the pending range anchor, if the selection strategy is a
// RangeSelection with a first click recorded.
func (n *Navigator) Anchor() (grid.Cell, bool) {
	if rs, ok := n.selection.(*RangeSelection); ok {
		return rs.Anchor()
	}
	return grid.Cell{}, false
}

// Focus moves focus to (row, col). Disabled cells are not rejected.
func (n *Navigator) Focus(row, col int) error {
	if !n.grid.Contains(row, col) {
		return errors.Wrapf(ErrOutOfBounds, "row=%d col=%d", row, col)
	}
	n.setFocus(grid.Position{Col: col, Row: row})
	return nil
}

// FocusCellAt focuses (row, col) and emits focus-cell.
func (n *Navigator) FocusCellAt(row, col int) error {
	cell, ok := n.grid.Cell(row, col)
	if !ok {
		return errors.Wrapf(ErrOutOfBounds, "row=%d col=%d", row, col)
	}
	return n.FocusCell(cell)
}

// FocusCell focuses cell and emits focus-cell.
func (n *Navigator) FocusCell(cell grid.Cell) error {
	if err := n.Focus(cell.RowIdx, cell.ColIdx); err != nil {
		return err
	}
	n.emitter.Emit(Event{Kind: KindFocusCell, Cell: cell, Value: cell.Value})
	return nil
}

// BlurCell emits blur-cell and defers a check that blurs the grid if focus
// is still on cell when it runs. A refocus before then cancels the blur.
func (n *Navigator) BlurCell(cell grid.Cell) {
	n.emitter.Emit(Event{Kind: KindBlurCell, Cell: cell, Value: cell.Value})
	blurred := cell.Position()
	n.scheduler.Defer(func() {
		if n.focus == blurred {
			n.BlurGrid()
		}
	})
}

// BlurGrid clears focus and emits blur-grid.
func (n *Navigator) BlurGrid() {
	n.ClearFocus()
	n.emitter.Emit(Event{Kind: KindBlurGrid})
}

// ClearFocus resets focus to the sentinel without emitting.
func (n *Navigator) ClearFocus() {
	n.focus = grid.None
}

// Select runs the selection strategy on an enabled cell.
func (n *Navigator) Select(cell grid.Cell) {
	if cell.Disabled {
		return
	}
	n.selection.Select(cell, n.emitter)
}

// ClickCell emits click-cell and selects an enabled cell.
func (n *Navigator) ClickCell(cell grid.Cell) {
	if cell.Disabled {
		return
	}
	n.emitter.Emit(Event{Kind: KindClickCell, Cell: cell, Value: cell.Value})
	n.Select(cell)
}

// ShiftClickCell emits shift-click-cell for an enabled cell.
func (n *Navigator) ShiftClickCell(cell grid.Cell) {
	if cell.Disabled {
		return
	}
	n.emitter.Emit(Event{Kind: KindShiftClickCell, Cell: cell, Value: cell.Value})
}

// CtrlClickCell emits ctrl-click-cell for an enabled cell.
func (n *Navigator) CtrlClickCell(cell grid.Cell) {
	if cell.Disabled {
		return
	}
	n.emitter.Emit(Event{Kind: KindCtrlClickCell, Cell: cell, Value: cell.Value})
}

// MoveUp focuses the previous enabled cell of the focused column.
func (n *Navigator) MoveUp() error {
	p, err := n.focused()
	if err != nil {
		return err
	}
	col := n.grid.EnabledInColumn(p.Col)
	if i := slices.Index(col, p.Row); i > 0 {
		n.setFocus(grid.Position{Col: p.Col, Row: col[i-1]})
	}
	return nil
}

// MoveDown focuses the next enabled cell of the focused column.
func (n *Navigator) MoveDown() error {
	p, err := n.focused()
	if err != nil {
		return err
	}
	col := n.grid.EnabledInColumn(p.Col)
	if i := slices.Index(col, p.Row); i+1 < len(col) {
		n.setFocus(grid.Position{Col: p.Col, Row: col[i+1]})
	}
	return nil
}

// MoveLeft focuses the previous enabled cell of the row, or the last enabled
// cell of the nearest earlier row that has one.
func (n *Navigator) MoveLeft() error {
	p, err := n.focused()
	if err != nil {
		return err
	}
	row := n.grid.EnabledInRow(p.Row)
	if i := slices.Index(row, p.Col); i > 0 {
		n.setFocus(grid.Position{Col: row[i-1], Row: p.Row})
		return nil
	}
	for r := p.Row - 1; r >= 0; r-- {
		if cols := n.grid.EnabledInRow(r); len(cols) > 0 {
			n.setFocus(grid.Position{Col: cols[len(cols)-1], Row: r})
			return nil
		}
	}
	return nil
}

// MoveRight focuses the next enabled cell of the row, or the first enabled
// cell of the nearest later row that has one.
func (n *Navigator) MoveRight() error {
	p, err := n.focused()
	if err != nil {
		return err
	}
	row := n.grid.EnabledInRow(p.Row)
	if i := slices.Index(row, p.Col); i+1 < len(row) {
		n.setFocus(grid.Position{Col: row[i+1], Row: p.Row})
		return nil
	}
	for r := p.Row + 1; r < n.grid.Rows(); r++ {
		if cols := n.grid.EnabledInRow(r); len(cols) > 0 {
			n.setFocus(grid.Position{Col: cols[0], Row: r})
			return nil
		}
	}
	return nil
}

// MoveRowStart focuses the first enabled cell of the focused row.
func (n *Navigator) MoveRowStart() error {
	return n.moveInRow(func(cols []int) int { return cols[0] })
}

// MoveRowEnd focuses the last enabled cell of the focused row.
func (n *Navigator) MoveRowEnd() error {
	return n.moveInRow(func(cols []int) int { return cols[len(cols)-1] })
}

// MoveColStart focuses the first enabled cell of the focused column.
func (n *Navigator) MoveColStart() error {
	return n.moveInColumn(func(rows []int) int { return rows[0] })
}

// MoveColEnd focuses the last enabled cell of the focused column.
func (n *Navigator) MoveColEnd() error {
	return n.moveInColumn(func(rows []int) int { return rows[len(rows)-1] })
}

// MoveGridStart focuses the first enabled cell in row-major order.
func (n *Navigator) MoveGridStart() error {
	return n.moveInGrid(n.grid.FirstEnabled)
}

// MoveGridEnd focuses the last enabled cell in row-major order.
func (n *Navigator) MoveGridEnd() error {
	return n.moveInGrid(n.grid.LastEnabled)
}

func (n *Navigator) moveInRow(pick func([]int) int) error {
	p, err := n.focused()
	if err != nil {
		return err
	}
	cols := n.grid.EnabledInRow(p.Row)
	if len(cols) == 0 {
		return errors.Wrapf(ErrNoEnabledCellInRow, "row %d", p.Row)
	}
	n.setFocus(grid.Position{Col: pick(cols), Row: p.Row})
	return nil
}

func (n *Navigator) moveInColumn(pick func([]int) int) error {
	p, err := n.focused()
	if err != nil {
		return err
	}
	rows := n.grid.EnabledInColumn(p.Col)
	if len(rows) == 0 {
		return errors.Wrapf(ErrNoEnabledCellInColumn, "column %d", p.Col)
	}
	n.setFocus(grid.Position{Col: p.Col, Row: pick(rows)})
	return nil
}

func (n *Navigator) moveInGrid(target func() grid.Position) error {
	if _, err := n.focused(); err != nil {
		return err
	}
	if n.grid.Empty() {
		return ErrEmptyGrid
	}
	n.setFocus(target())
	return nil
}

func (n *Navigator) focused() (grid.Position, error) {
	if !n.focus.Valid() {
		return grid.None, ErrNotFocused
	}
	return n.focus, nil
}

// setFocus stores p and, when the coordinates changed to a real position,
// asks the resolver for the host handle and focuses it.
func (n *Navigator) setFocus(p grid.Position) {
	if p == n.focus {
		return
	}
	n.focus = p
	if !p.Valid() || n.resolver == nil {
		return
	}
	target, err := n.resolver.ResolveFocusTarget(FocusParams{
		FocusedRow: p.Row,
		FocusedCol: p.Col,
		Rows:       n.grid.Rows(),
		Columns:    n.grid.Columns(),
	})
	if err != nil {
		n.diagnose(errors.Wrap(err, "resolve focus target"))
		return
	}
	if target == nil {
		n.diagnose(errors.Wrapf(ErrNoFocusTarget, "%s", p))
		return
	}
	target.Focus()
}

func (n *Navigator) diagnose(err error) {
	n.log.V(1).Info("navigation diagnostic", "error", err.Error(), "focus", n.focus.String())
	n.emitter.Emit(Event{Kind: KindDiagnostic, Err: err})
}
