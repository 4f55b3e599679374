package formatter

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/oakwood-commons/gridnav/pkg/grid"
)

// mermaidBuilder tracks state during diagram generation.
type mermaidBuilder struct {
	lines []string
	opts  Options
}

// FormatAsMermaid renders the enabled cells as a Mermaid flowchart. Each
// cell links to the next enabled cell of its row and of its column, so the
// edges are the single steps of horizontal and vertical navigation.
// Disabled cells are left out.
func FormatAsMermaid(g *grid.Grid, opts Options) string {
	if opts.Direction == "" {
		opts.Direction = "LR"
	}
	b := &mermaidBuilder{
		lines: []string{fmt.Sprintf("graph %s", opts.Direction)},
		opts:  opts,
	}

	for r := range g.Rows() {
		for _, col := range g.EnabledInRow(r) {
			c, _ := g.Cell(r, col)
			b.addNode(nodeID(c.Position()), cellLabel(c, opts))
		}
	}
	for r := range g.Rows() {
		cols := g.EnabledInRow(r)
		for i := 1; i < len(cols); i++ {
			b.addEdge(grid.Position{Col: cols[i-1], Row: r}, grid.Position{Col: cols[i], Row: r}, "right")
		}
	}
	for c := range g.Columns() {
		rows := g.EnabledInColumn(c)
		for i := 1; i < len(rows); i++ {
			b.addEdge(grid.Position{Col: c, Row: rows[i-1]}, grid.Position{Col: c, Row: rows[i]}, "down")
		}
	}
	return strings.Join(b.lines, "\n") + "\n"
}

func nodeID(p grid.Position) string {
	return fmt.Sprintf("c%d_%d", p.Col, p.Row)
}

func (b *mermaidBuilder) addNode(id, label string) {
	b.lines = append(b.lines, fmt.Sprintf("    %s[%q]", SanitizeMermaidID(id), escapeLabel(label)))
}

func (b *mermaidBuilder) addEdge(from, to grid.Position, label string) {
	b.lines = append(b.lines, fmt.Sprintf("    %s -->|%s| %s", nodeID(from), label, nodeID(to)))
}

// escapeLabel creates a safe label for Mermaid nodes.
func escapeLabel(label string) string {
	// Mermaid uses quotes, so escape internal quotes
	label = strings.ReplaceAll(label, `"`, `'`)
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.ReplaceAll(label, "\r", "")
}

var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// SanitizeMermaidID creates a valid Mermaid node ID from a string.
// Mermaid IDs should be alphanumeric with underscores.
func SanitizeMermaidID(s string) string {
	return nonAlphanumeric.ReplaceAllString(s, "_")
}
