// Package ui is the terminal host of a grid navigator: it draws the grid,
// turns keys and mouse clicks into navigator calls, and relays the emitted
// events back into what is drawn.
package ui

import (
	"fmt"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"

	"github.com/oakwood-commons/gridnav/pkg/grid"
	"github.com/oakwood-commons/gridnav/pkg/nav"
)

const maxEvents = 200

// Options configures a Model.
type Options struct {
	Title string
	Input grid.Input
	// Range selects range mode; Start and End are the initial markers.
	Range   bool
	Start   any
	End     any
	KeyMode KeyMode
	NoColor bool
	Theme   *Theme
	Width   int
	Height  int
	Logger  logr.Logger
}

// Model is the Bubble Tea model of the grid view.
type Model struct {
	log    logr.Logger
	title  string
	keys   KeyMap
	help   help.Model
	styles styles

	input     grid.Input
	rangeMode bool
	cache     *grid.Cache
	grid      *grid.Grid
	rangeGrid *grid.RangeGrid

	nav       *nav.Navigator
	queue     *nav.Queue
	selection *nav.RangeSelection

	// cursor is moved by the focus handle the navigator resolves.
	cursor    grid.Position
	lastFocus grid.Position
	// refocus restores lastFocus once the terminal regains focus.
	refocus bool

	selected    any
	hasSelected bool
	start       any
	end         any
	rangeDirty  bool

	status    string
	statusErr bool
	events    []nav.Event

	width       int
	height      int
	noColor     bool
	showHelp    bool
	termFocused bool
	quitting    bool
}

// drainMsg runs the deferred navigator tasks.
type drainMsg struct{}

func drain() tea.Msg { return drainMsg{} }

// NewModel builds the grid and a navigator focused on its first enabled cell.
func NewModel(opts Options) (*Model, error) {
	log := opts.Logger
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	mode := opts.KeyMode
	if mode == "" {
		mode = DefaultKeyMode
	}
	theme := DefaultTheme()
	if opts.Theme != nil {
		theme = *opts.Theme
	}

	m := &Model{
		log:         log,
		title:       opts.Title,
		keys:        NewKeyMap(mode),
		help:        help.New(),
		styles:      newStyles(theme, opts.NoColor),
		input:       opts.Input,
		rangeMode:   opts.Range,
		cache:       grid.NewCache(log),
		queue:       &nav.Queue{},
		cursor:      grid.None,
		lastFocus:   grid.None,
		start:       opts.Start,
		end:         opts.End,
		width:       opts.Width,
		height:      opts.Height,
		noColor:     opts.NoColor,
		termFocused: true,
	}
	m.help.Styles = m.styles.help
	if m.width > 0 {
		m.help.SetWidth(m.width)
	}

	var selection nav.Selection = nav.SingleSelection{}
	if m.rangeMode {
		rg, err := m.cache.RangeGrid(grid.RangeInput{Input: m.input, Start: m.start, End: m.end})
		if err != nil {
			return nil, errors.Wrap(err, "build range grid")
		}
		m.rangeGrid = rg
		m.grid = rg.Grid
		m.selection = &nav.RangeSelection{}
		selection = m.selection
	} else {
		g, err := m.cache.Grid(m.input)
		if err != nil {
			return nil, errors.Wrap(err, "build grid")
		}
		m.grid = g
	}

	m.nav = nav.New(m.grid,
		nav.WithResolver(nav.FocusResolverFunc(m.resolveFocus)),
		nav.WithEmitter(nav.EmitterFunc(m.onEvent)),
		nav.WithScheduler(m.queue),
		nav.WithSelection(selection),
		nav.WithLogger(log.WithName("nav")),
	)
	if !m.grid.Empty() {
		m.nav.Dispatch(nav.CmdFocusGrid)
	}
	m.log.V(1).Info("grid ready", "rows", m.grid.Rows(), "columns", m.grid.Columns(), "range", m.rangeMode)
	return m, nil
}

// cellHandle is the host focus target of one grid position.
type cellHandle struct {
	m   *Model
	pos grid.Position
}

func (h cellHandle) Focus() {
	h.m.cursor = h.pos
}

func (m *Model) resolveFocus(p nav.FocusParams) (nav.Focusable, error) {
	if !m.grid.Contains(p.FocusedRow, p.FocusedCol) {
		return nil, nil
	}
	return cellHandle{m: m, pos: grid.Position{Col: p.FocusedCol, Row: p.FocusedRow}}, nil
}

func (m *Model) onEvent(ev nav.Event) {
	m.events = append(m.events, ev)
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
	if ev.Kind != nav.KindDiagnostic {
		m.log.V(2).Info("event", "kind", string(ev.Kind), "cell", ev.Cell.Position().String())
	}

	switch ev.Kind {
	case nav.KindValueChanged:
		m.selected = ev.Value
		m.hasSelected = true
		m.setStatus(fmt.Sprintf("selected %s", formatValue(ev.Value)), false)
	case nav.KindRangeStartChanged:
		m.start = ev.Value
		m.rangeDirty = true
	case nav.KindRangeEndChanged:
		m.end = ev.Value
		m.rangeDirty = true
		if ev.Value == nil {
			m.setStatus(fmt.Sprintf("anchor %s, select the other end", formatValue(m.start)), false)
		} else {
			m.setStatus(fmt.Sprintf("range %s .. %s", formatValue(m.start), formatValue(m.end)), false)
		}
	case nav.KindShiftClickCell, nav.KindCtrlClickCell:
		m.setStatus(fmt.Sprintf("%s %s", ev.Kind, ev.Cell.Position()), false)
	case nav.KindBlurGrid:
		m.cursor = grid.None
		m.setStatus("grid lost focus", false)
	case nav.KindDiagnostic:
		m.setStatus(ev.Err.Error(), true)
	}
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

// syncRange rebuilds the range grid after the markers changed.
func (m *Model) syncRange() {
	if !m.rangeMode || !m.rangeDirty {
		return
	}
	m.rangeDirty = false
	rg, err := m.cache.RangeGrid(grid.RangeInput{Input: m.input, Start: m.start, End: m.end})
	if err != nil {
		m.setStatus(errors.Wrap(err, "rebuild range").Error(), true)
		return
	}
	m.rangeGrid = rg
	m.grid = rg.Grid
	m.nav.SetGrid(rg.Grid)
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.SetWidth(msg.Width)
	case tea.KeyPressMsg:
		cmd = m.handleKey(msg)
	case tea.MouseClickMsg:
		cmd = m.handleClick(msg.Mouse())
	case tea.FocusMsg:
		m.termFocused = true
		m.restoreFocus()
	case tea.BlurMsg:
		m.termFocused = false
		if cmd = m.blurFocused(); cmd != nil {
			m.refocus = true
		}
	case drainMsg:
		m.queue.RunPending()
		m.restoreFocus()
	}
	m.syncRange()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		return nil
	}
	if m.showHelp {
		m.showHelp = false
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.ShiftSelect):
		m.withFocused(m.nav.ShiftClickCell)
		return nil
	case key.Matches(msg, m.keys.CtrlSelect):
		m.withFocused(m.nav.CtrlClickCell)
		return nil
	case key.Matches(msg, m.keys.ClearAnchor):
		if m.selection != nil {
			if _, ok := m.selection.Anchor(); ok {
				m.selection.Reset()
				m.setStatus("anchor dropped", false)
			}
		}
		return nil
	}

	cmd, ok := m.keys.Command(msg)
	if !ok {
		return nil
	}
	if cmd == nav.CmdBlur && m.nav.Focused() {
		return m.blurFocused()
	}
	m.nav.Dispatch(cmd)
	return nil
}

func (m *Model) withFocused(fn func(grid.Cell)) {
	cell, ok := m.nav.FocusedCell()
	if !ok {
		m.setStatus(nav.ErrNotFocused.Error(), true)
		return
	}
	fn(cell)
}

// blurFocused blurs the focused cell. The grid blur runs on the next drain
// unless focus moves first.
func (m *Model) blurFocused() tea.Cmd {
	cell, ok := m.nav.FocusedCell()
	if !ok {
		return nil
	}
	m.lastFocus = cell.Position()
	m.nav.BlurCell(cell)
	return drain
}

func (m *Model) restoreFocus() {
	if !m.refocus || !m.termFocused || m.nav.Focused() {
		return
	}
	m.refocus = false
	_ = m.nav.FocusCellAt(m.lastFocus.Row, m.lastFocus.Col)
}

func (m *Model) handleClick(mouse tea.Mouse) tea.Cmd {
	if mouse.Button != tea.MouseLeft || m.showHelp {
		return nil
	}
	cell, ok := m.cellAtPoint(mouse.X, mouse.Y)
	if !ok {
		return m.blurFocused()
	}

	var cmd tea.Cmd
	if prev, focused := m.nav.FocusedCell(); focused && prev.Position() != cell.Position() {
		m.nav.BlurCell(prev)
		cmd = drain
	}
	if err := m.nav.FocusCell(cell); err != nil {
		m.setStatus(err.Error(), true)
		return cmd
	}
	switch {
	case mouse.Mod&tea.ModShift != 0:
		m.nav.ShiftClickCell(cell)
	case mouse.Mod&tea.ModCtrl != 0:
		m.nav.CtrlClickCell(cell)
	default:
		m.nav.ClickCell(cell)
	}
	return cmd
}

// View implements tea.Model.
func (m *Model) View() tea.View {
	v := tea.NewView(m.Render())
	v.AltScreen = true
	v.ReportFocus = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// Result is the selection state when the program ends.
type Result struct {
	Selected    any
	HasSelected bool
	Start       any
	End         any
	Focus       grid.Position
	Events      []nav.Event
}

// Result returns the current selection state.
func (m *Model) Result() Result {
	return Result{
		Selected:    m.selected,
		HasSelected: m.hasSelected,
		Start:       m.start,
		End:         m.end,
		Focus:       m.nav.Position(),
		Events:      append([]nav.Event(nil), m.events...),
	}
}

// Navigator exposes the navigator driven by the model.
func (m *Model) Navigator() *nav.Navigator {
	return m.nav
}

// Cursor returns the position last focused through the focus handle.
func (m *Model) Cursor() grid.Position {
	return m.cursor
}

// Status returns the status line text and whether it reports an error.
func (m *Model) Status() (string, bool) {
	return m.status, m.statusErr
}
