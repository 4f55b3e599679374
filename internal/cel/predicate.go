// Package cel compiles CEL expressions into grid disable predicates.
package cel

import (
	"slices"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"
	"github.com/pkg/errors"
	exprpb "google.golang.org/genproto/googleapis/api/expr/v1alpha1"

	"github.com/oakwood-commons/gridnav/pkg/grid"
)

// Variable names bound for every cell.
const (
	VarCol    = "col"
	VarRow    = "row"
	VarValue  = "value"
	VarRecord = "record"
)

var cellVariables = []string{VarCol, VarRow, VarValue, VarRecord}

// Predicate is a grid.DisablePredicate backed by a compiled CEL expression.
// A cell is disabled when the expression evaluates to true.
type Predicate struct {
	source string
	prg    cel.Program
	vars   []string
}

var _ grid.DisablePredicate = (*Predicate)(nil)

// newCellEnv creates the environment shared by all predicates: the cell
// variables plus the common extension libraries.
func newCellEnv(opts ...cel.EnvOption) (*cel.Env, error) {
	allOpts := make([]cel.EnvOption, 0, 8+len(opts))
	allOpts = append(allOpts,
		cel.Variable(VarCol, cel.IntType),
		cel.Variable(VarRow, cel.IntType),
		cel.Variable(VarValue, cel.DynType),
		cel.Variable(VarRecord, cel.MapType(cel.StringType, cel.DynType)),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	allOpts = append(allOpts, opts...)
	return cel.NewEnv(allOpts...)
}

// NewPredicate compiles expr once. The expression must be boolean or dyn.
func NewPredicate(expr string) (*Predicate, error) {
	env, err := newCellEnv()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create CEL environment")
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, errors.Wrapf(issues.Err(), "compile %q", expr)
	}
	if out := ast.OutputType(); !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, errors.Errorf("expression %q has type %s, want bool", expr, out)
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, errors.Wrapf(err, "program %q", expr)
	}

	p := &Predicate{source: expr, prg: prg}
	if parsed, err := cel.AstToParsedExpr(ast); err == nil {
		p.vars = referencedVariables(parsed.GetExpr())
	}
	return p, nil
}

// Disabled evaluates the expression for one cell.
func (p *Predicate) Disabled(col, row int, value any, record *grid.Record) (bool, error) {
	fields := map[string]any{}
	if record != nil {
		fields = record.Map()
	}
	out, _, err := p.prg.Eval(map[string]any{
		VarCol:    col,
		VarRow:    row,
		VarValue:  value,
		VarRecord: fields,
	})
	if err != nil {
		return false, errors.Wrapf(err, "eval %q", p.source)
	}
	b, ok := out.(types.Bool)
	if !ok {
		return false, errors.Errorf("expression %q returned %s, want bool", p.source, out.Type().TypeName())
	}
	return bool(b), nil
}

// Identity returns the expression source; equal sources compile to the same
// predicate.
func (p *Predicate) Identity() string {
	return "cel:" + p.source
}

// Source returns the expression as written.
func (p *Predicate) Source() string {
	return p.source
}

// Variables returns the cell variables the expression references, in
// declaration order.
func (p *Predicate) Variables() []string {
	return slices.Clone(p.vars)
}

func referencedVariables(root *exprpb.Expr) []string {
	seen := map[string]bool{}
	var walk func(*exprpb.Expr)
	walk = func(e *exprpb.Expr) {
		if e == nil {
			return
		}
		switch e.ExprKind.(type) {
		case *exprpb.Expr_IdentExpr:
			seen[e.GetIdentExpr().GetName()] = true
		case *exprpb.Expr_SelectExpr:
			walk(e.GetSelectExpr().GetOperand())
		case *exprpb.Expr_CallExpr:
			call := e.GetCallExpr()
			walk(call.GetTarget())
			for _, arg := range call.GetArgs() {
				walk(arg)
			}
		case *exprpb.Expr_ListExpr:
			for _, elem := range e.GetListExpr().GetElements() {
				walk(elem)
			}
		case *exprpb.Expr_StructExpr:
			for _, entry := range e.GetStructExpr().GetEntries() {
				walk(entry.GetMapKey())
				walk(entry.GetValue())
			}
		case *exprpb.Expr_ComprehensionExpr:
			comp := e.GetComprehensionExpr()
			walk(comp.GetIterRange())
			walk(comp.GetAccuInit())
			walk(comp.GetLoopCondition())
			walk(comp.GetLoopStep())
			walk(comp.GetResult())
		}
	}
	walk(root)

	var out []string
	for _, name := range cellVariables {
		if seen[name] {
			out = append(out, name)
		}
	}
	return out
}
