package cel

import (
	"slices"
	"strings"
	"testing"

	"github.com/oakwood-commons/gridnav/pkg/grid"
)

func TestPredicateDisabled(t *testing.T) {
	record := grid.NewRecord("name", "alice", "age", 31, "tags", []any{"admin"})

	tests := []struct {
		name     string
		expr     string
		col, row int
		value    any
		record   *grid.Record
		expected bool
	}{
		{"centre cell", "col == 1 && row == 1", 1, 1, 1, nil, true},
		{"other cell", "col == 1 && row == 1", 0, 1, 0, nil, false},
		{"value compare", "value == 'alice'", 0, 0, "alice", record, true},
		{"record field", "record.age > 30", 1, 0, 31, record, true},
		{"record list", "'admin' in record.tags", 2, 0, nil, record, true},
		{"missing record", "has(record.name)", 0, 0, 0, nil, false},
		{"null value", "value == null", 0, 0, nil, record, true},
		{"string ext", "string(value).upperAscii() == 'ALICE'", 0, 0, "alice", record, true},
		{"constant", "false", 0, 0, 0, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPredicate(tt.expr)
			if err != nil {
				t.Fatalf("NewPredicate(%q) failed: %v", tt.expr, err)
			}
			got, err := p.Disabled(tt.col, tt.row, tt.value, tt.record)
			if err != nil {
				t.Fatalf("Disabled failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestNewPredicateRejectsBadExpressions(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"syntax", "col ==", "compile"},
		{"unknown variable", "column == 1", "compile"},
		{"non-bool", "col + 1", "want bool"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPredicate(tt.expr)
			if err == nil {
				t.Fatalf("expected error for %q", tt.expr)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestPredicateNonBoolResultAtRuntime(t *testing.T) {
	p, err := NewPredicate("value")
	if err != nil {
		t.Fatalf("NewPredicate failed: %v", err)
	}
	if _, err := p.Disabled(0, 0, "yes", nil); err == nil || !strings.Contains(err.Error(), "want bool") {
		t.Fatalf("expected a non-bool error, got %v", err)
	}
	got, err := p.Disabled(0, 0, true, nil)
	if err != nil || !got {
		t.Fatalf("expected true, got %v (%v)", got, err)
	}
}

func TestPredicateVariables(t *testing.T) {
	tests := []struct {
		expr string
		want []string
	}{
		{"true", nil},
		{"row == 2", []string{VarRow}},
		{"record.age > 1 || col == 0", []string{VarCol, VarRecord}},
		{"[1, 2].exists(x, x == value)", []string{VarValue}},
		{"{'a': row}['a'] == col", []string{VarCol, VarRow}},
	}
	for _, tt := range tests {
		p, err := NewPredicate(tt.expr)
		if err != nil {
			t.Fatalf("NewPredicate(%q) failed: %v", tt.expr, err)
		}
		if got := p.Variables(); !slices.Equal(got, tt.want) {
			t.Errorf("%q: expected %v, got %v", tt.expr, tt.want, got)
		}
	}
}

func TestPredicateBuildsGrid(t *testing.T) {
	p, err := NewPredicate("col == 1 && row == 1")
	if err != nil {
		t.Fatalf("NewPredicate failed: %v", err)
	}
	g, err := grid.Build(grid.Input{Rows: 3, Columns: 3, Disable: p})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if got := g.EnabledInRow(1); !slices.Equal(got, []int{0, 2}) {
		t.Errorf("expected [0 2], got %v", got)
	}
	if p.Identity() != "cel:col == 1 && row == 1" {
		t.Errorf("unexpected identity %q", p.Identity())
	}
}

func TestFunctionsIncludesExtensions(t *testing.T) {
	funcs, err := Functions()
	if err != nil {
		t.Fatalf("Functions error: %v", err)
	}
	for _, want := range []string{"size", "upperAscii", "exists"} {
		if !slices.Contains(funcs, want) {
			t.Errorf("expected %q in %v", want, funcs)
		}
	}
	for _, fn := range funcs {
		if isOperator(fn) {
			t.Errorf("operator %q leaked into the function list", fn)
		}
	}
}
