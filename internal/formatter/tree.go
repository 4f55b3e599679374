package formatter

import (
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/oakwood-commons/gridnav/pkg/grid"
)

// FormatAsTree renders the grid as an ASCII tree: one branch per row, one
// leaf per cell. Rows without an enabled cell are marked.
func FormatAsTree(g *grid.Grid, opts Options) string {
	tree := treeprint.NewWithRoot(fmt.Sprintf("grid %dx%d", g.Rows(), g.Columns()))
	for r := range g.Rows() {
		label := fmt.Sprintf("row %d", r)
		if len(g.EnabledInRow(r)) == 0 {
			label += " (no enabled cells)"
		}
		if g.Columns() == 0 {
			tree.AddNode(label)
			continue
		}
		branch := tree.AddBranch(label)
		for _, c := range g.RowCells(r) {
			branch.AddMetaNode(c.ColIdx, cellLabel(c, opts))
		}
	}
	return tree.String()
}
