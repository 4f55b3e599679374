package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/gridnav/pkg/grid"
)

const (
	// gridTop is the screen row of grid row 0: title and column keys come first.
	gridTop      = 2
	minCellWidth = 3
	maxCellWidth = 18
)

// Cell markers, drawn in front of the cell text.
const (
	markFocus    = '>'
	markAnchor   = '*'
	markDisabled = '-'
	markRange    = '~'
	markSelected = '='
)

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return strings.Join(strings.Fields(v), " ")
	default:
		return fmt.Sprint(v)
	}
}

// layout returns the row label width and the cell text width.
func (m *Model) layout() (labelW, cellW int) {
	labelW = len(strconv.Itoa(max(m.grid.Rows()-1, 0)))
	cols := m.grid.Columns()
	if cols == 0 {
		return labelW, minCellWidth
	}

	for _, h := range m.headers() {
		cellW = max(cellW, runewidth.StringWidth(h))
	}
	for r := range m.grid.Rows() {
		for _, c := range m.grid.RowCells(r) {
			cellW = max(cellW, runewidth.StringWidth(formatValue(c.Value)))
		}
	}
	cellW = min(max(cellW, minCellWidth), maxCellWidth)

	if m.width > 0 {
		// labelW + 1 + cols*(cellW+2) - 1 must fit the window.
		fit := (m.width-labelW)/cols - 2
		cellW = max(min(cellW, fit), 1)
	}
	return labelW, cellW
}

func (m *Model) headers() []string {
	out := make([]string, m.grid.Columns())
	for c := range out {
		if cell, ok := m.grid.Cell(0, c); ok {
			out[c] = cell.Key
		} else {
			out[c] = strconv.Itoa(c)
		}
	}
	return out
}

// cellAtPoint maps a screen coordinate to the cell drawn there.
func (m *Model) cellAtPoint(x, y int) (grid.Cell, bool) {
	row := y - gridTop
	if row < 0 || row >= m.grid.Rows() {
		return grid.Cell{}, false
	}
	labelW, cellW := m.layout()
	block := cellW + 1
	stride := block + 1
	dx := x - (labelW + 1)
	if dx < 0 || dx%stride >= block {
		return grid.Cell{}, false
	}
	return m.grid.Cell(row, dx/stride)
}

// Render draws the full screen as a string.
func (m *Model) Render() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.title.Render(m.titleLine()))
	b.WriteString("\n")
	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.helpPage())
		return b.String()
	}

	labelW, cellW := m.layout()
	b.WriteString(strings.Repeat(" ", labelW+1))
	headers := m.headers()
	for c, h := range headers {
		if c > 0 {
			b.WriteString(" ")
		}
		b.WriteString(m.styles.header.Render(" " + fit(h, cellW)))
	}
	b.WriteString("\n")

	for r := range m.grid.Rows() {
		b.WriteString(m.styles.label.Render(runewidth.FillLeft(strconv.Itoa(r), labelW)))
		b.WriteString(" ")
		for c, cell := range m.grid.RowCells(r) {
			if c > 0 {
				b.WriteString(" ")
			}
			b.WriteString(m.renderCell(cell, cellW))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func fit(s string, w int) string {
	return runewidth.FillRight(runewidth.Truncate(s, w, "…"), w)
}

func (m *Model) renderCell(cell grid.Cell, w int) string {
	mark, style := ' ', m.styles.value
	anchor, hasAnchor := m.nav.Anchor()
	switch {
	case cell.Position() == m.cursor:
		mark, style = markFocus, m.styles.focus
	case hasAnchor && anchor.Position() == cell.Position():
		mark, style = markAnchor, m.styles.anchor
	case cell.Disabled:
		mark, style = markDisabled, m.styles.disabled
	case cell.InRange:
		mark, style = markRange, m.styles.inRange
	case !m.rangeMode && m.hasSelected && grid.SameValue(m.selected, cell.Value):
		mark, style = markSelected, m.styles.selected
	}
	return style.Render(string(mark) + fit(formatValue(cell.Value), w))
}

func (m *Model) titleLine() string {
	title := m.title
	if title == "" {
		title = "gridnav"
	}
	mode := "single"
	if m.rangeMode {
		mode = "range"
	}
	line := fmt.Sprintf("%s  %dx%d  %s", title, m.grid.Rows(), m.grid.Columns(), mode)
	if p := m.nav.Position(); p.Valid() {
		line += "  focus " + p.String()
	}
	return line
}

func (m *Model) statusLine() string {
	if m.status != "" {
		if m.statusErr {
			return m.styles.statusErr.Render("error: " + m.status)
		}
		return m.styles.status.Render(m.status)
	}
	switch {
	case m.rangeMode && m.rangeGrid != nil && m.rangeGrid.RangeStart.Valid():
		return m.styles.statusOK.Render(fmt.Sprintf("range %s .. %s", formatValue(m.start), formatValue(m.end)))
	case m.hasSelected:
		return m.styles.statusOK.Render("selected " + formatValue(m.selected))
	case m.grid.Empty():
		return m.styles.status.Render("no enabled cells")
	}
	return ""
}
