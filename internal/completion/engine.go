// Package completion suggests completions for partially typed disable
// expressions: the cell variables, the functions of the predicate
// environment and, after "record.", the record keys.
package completion

import (
	"sort"
	"strings"

	"github.com/oakwood-commons/gridnav/internal/cel"
)

// Kind indicates the type of completion.
type Kind int

const (
	KindVariable Kind = iota // Cell variable
	KindField                // Record key
	KindFunction             // Function or macro
)

func (k Kind) String() string {
	switch k {
	case KindVariable:
		return "variable"
	case KindField:
		return "record key"
	default:
		return "function"
	}
}

// Completion represents a single completion suggestion.
type Completion struct {
	Text string // The full input with the partial token completed
	Name string // The completed token
	Kind Kind
}

// Engine completes expressions against a fixed set of names.
type Engine struct {
	variables []string
	functions []string
	fields    []string
}

// NewEngine discovers the predicate functions. fields are the record keys
// offered after "record.".
func NewEngine(fields []string) (*Engine, error) {
	fns, err := cel.Functions()
	if err != nil {
		return nil, err
	}
	vars := []string{cel.VarCol, cel.VarRow, cel.VarValue, cel.VarRecord}
	sort.Strings(vars)
	f := append([]string(nil), fields...)
	sort.Strings(f)
	return &Engine{variables: vars, functions: fns, fields: f}, nil
}

// Complete returns the completions of the identifier at the end of input.
// Variables come first, then functions; both sorted by name.
func (e *Engine) Complete(input string) []Completion {
	start := len(input)
	for start > 0 && isIdentByte(input[start-1]) {
		start--
	}
	prefix, partial := input[:start], input[start:]

	var out []Completion
	add := func(names []string, kind Kind, suffix string) {
		for _, n := range names {
			if strings.HasPrefix(n, partial) {
				out = append(out, Completion{Text: prefix + n + suffix, Name: n, Kind: kind})
			}
		}
	}

	switch {
	case strings.HasSuffix(prefix, cel.VarRecord+"."):
		add(e.fields, KindField, "")
	case strings.HasSuffix(prefix, "."):
		add(e.functions, KindFunction, "(")
	default:
		add(e.variables, KindVariable, "")
		add(e.functions, KindFunction, "(")
	}
	return out
}

func isIdentByte(b byte) bool {
	return b == '_' || b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}
