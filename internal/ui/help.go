package ui

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"

	"github.com/oakwood-commons/gridnav/internal/cel"
)

//go:embed help.md
var helpMarkdown string

var (
	celHelpOnce sync.Once
	celHelp     string
)

// disableHelp documents the disable expression environment.
func disableHelp() string {
	celHelpOnce.Do(func() {
		var b strings.Builder
		b.WriteString("## Disable expressions\n\n")
		b.WriteString("A disable expression is CEL over `" + cel.VarCol + "`, `" + cel.VarRow +
			"`, `" + cel.VarValue + "` and `" + cel.VarRecord + "`; a true result disables the cell.\n")
		if names, err := cel.Functions(); err == nil && len(names) > 0 {
			b.WriteString("\nFunctions:")
			for _, n := range names {
				b.WriteString(" `" + n + "`")
			}
			b.WriteString("\n")
		}
		celHelp = b.String()
	})
	return celHelp
}

func (m *Model) helpPage() string {
	width := m.width
	if width <= 0 {
		width = 80
	}
	page := renderMarkdown(helpMarkdown+"\n"+disableHelp(), m.styles, width)
	return page + "\n" + m.help.FullHelpView(m.keys.FullHelp()) + "\n"
}

// renderMarkdown renders the subset of markdown used by the help page as
// wrapped terminal text.
func renderMarkdown(src string, st styles, width int) string {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.NoEmptyLineBeforeBlock)
	doc := markdown.Parse([]byte(src), p)

	r := &termRenderer{st: st, width: width}
	ast.WalkFunc(doc, r.visit)
	return strings.TrimRight(r.out.String(), "\n") + "\n"
}

type termRenderer struct {
	st      styles
	width   int
	out     strings.Builder
	line    strings.Builder
	indent  string
	heading bool
}

func (r *termRenderer) visit(node ast.Node, entering bool) ast.WalkStatus {
	switch n := node.(type) {
	case *ast.Heading:
		if entering {
			r.heading = true
			break
		}
		r.flush()
		r.heading = false
		r.out.WriteString("\n")
	case *ast.Paragraph:
		if _, inItem := n.GetParent().(*ast.ListItem); !entering && !inItem {
			r.flush()
			r.out.WriteString("\n")
		}
	case *ast.ListItem:
		if entering {
			r.line.WriteString("  • ")
			r.indent = "    "
		} else {
			r.flush()
			r.indent = ""
		}
	case *ast.List:
		if !entering {
			r.out.WriteString("\n")
		}
	case *ast.Text:
		if entering {
			r.line.WriteString(strings.ReplaceAll(string(n.Literal), "\n", " "))
		}
	case *ast.Code:
		r.line.WriteString(r.st.code.Render(string(n.Literal)))
	case *ast.CodeBlock:
		r.flush()
		for _, l := range strings.Split(strings.TrimRight(string(n.Literal), "\n"), "\n") {
			r.out.WriteString("    " + r.st.code.Render(l) + "\n")
		}
		r.out.WriteString("\n")
	case *ast.Softbreak:
		r.line.WriteString(" ")
	case *ast.Hardbreak:
		r.flush()
	}
	return ast.GoToNext
}

func (r *termRenderer) flush() {
	text := strings.TrimRight(r.line.String(), " ")
	r.line.Reset()
	if strings.TrimSpace(text) == "" {
		return
	}
	if r.heading {
		r.out.WriteString(r.st.heading.Render(strings.TrimSpace(text)) + "\n")
		return
	}
	wrapped := ansi.Wordwrap(text, r.width-len(r.indent), " ")
	for i, l := range strings.Split(wrapped, "\n") {
		if i > 0 {
			r.out.WriteString(r.indent)
		}
		r.out.WriteString(strings.TrimRight(l, " ") + "\n")
	}
}
