// Package formatter renders a built grid as text diagrams for `gridnav map`.
package formatter

import (
	"fmt"
	"strings"

	runewidth "github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/gridnav/pkg/grid"
)

// Options controls tree and diagram output.
type Options struct {
	// NoValues hides cell values (keys and flags only).
	NoValues bool
	// MaxStringLen is max display width of a value before truncating.
	// 0 or negative = no truncation.
	MaxStringLen int
	// Direction sets the Mermaid direction: TD, LR, BT or RL. Default is LR.
	Direction string
}

// cellLabel is "key: value" plus state flags, e.g. "qty: 2 (disabled)".
func cellLabel(c grid.Cell, opts Options) string {
	label := c.Key
	if !opts.NoValues {
		label += ": " + truncate(formatScalar(c.Value), opts.MaxStringLen)
	}
	var flags []string
	if c.Disabled {
		flags = append(flags, "disabled")
	}
	if c.InRange {
		flags = append(flags, "in range")
	}
	if len(flags) > 0 {
		label += " (" + strings.Join(flags, ", ") + ")"
	}
	return label
}

func formatScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return strings.Join(strings.Fields(val), " ")
	default:
		return fmt.Sprint(val)
	}
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 || runewidth.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return runewidth.Truncate(s, maxLen, "")
	}
	return runewidth.Truncate(s, maxLen, "...")
}
