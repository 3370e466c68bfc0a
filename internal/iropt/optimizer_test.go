package iropt

import (
	"testing"

	"github.com/lumina-lang/lumina/internal/ir"
	"github.com/lumina-lang/lumina/internal/token"
)

func loc() token.Location { return token.Location{} }

func numLit(v int64) *ir.Literal   { return &ir.Literal{Kind: "number", Value: v} }
func boolLit(v bool) *ir.Literal   { return &ir.Literal{Kind: "bool", Value: v} }
func strLit(v string) *ir.Literal  { return &ir.Literal{Kind: "string", Value: v} }
func ident(name string) *ir.Identifier { return &ir.Identifier{Name: name} }

func TestConstantFolding(t *testing.T) {
	bin := &ir.Binary{Op: "+", Left: numLit(2), Right: numLit(3)}
	body := []ir.Stmt{&ir.Return{Value: bin}}
	out, changed := propagateAndFold(body)
	if !changed {
		t.Fatal("expected folding to report a change")
	}
	ret := out[0].(*ir.Return)
	lit, ok := ret.Value.(*ir.Literal)
	if !ok {
		t.Fatalf("expected folded literal, got %T", ret.Value)
	}
	if lit.Value.(int64) != 5 {
		t.Fatalf("expected 5, got %v", lit.Value)
	}
}

func TestStringConcatNeverFoldsNumeric(t *testing.T) {
	bin := &ir.Binary{Op: "+", Left: strLit("a"), Right: strLit("b")}
	lit, ok := foldBinaryLiterals("+", bin.Left, bin.Right, nil)
	if !ok {
		t.Fatal("expected string concat fold")
	}
	if lit.Kind != "string" || lit.Value.(string) != "ab" {
		t.Fatalf("got %v", lit)
	}
}

func TestAlgebraicSimplification(t *testing.T) {
	cases := []struct {
		op          string
		left, right ir.Expr
		wantLeft    bool
	}{
		{"+", ident("x"), numLit(0), true},
		{"+", numLit(0), ident("x"), false},
		{"-", ident("x"), numLit(0), true},
		{"*", ident("x"), numLit(1), true},
		{"*", numLit(1), ident("x"), false},
		{"/", ident("x"), numLit(1), true},
	}
	for _, c := range cases {
		result, ok := simplifyAlgebraic(c.op, c.left, c.right, nil)
		if !ok {
			t.Fatalf("op %s: expected simplification", c.op)
		}
		if c.wantLeft && result != c.left {
			t.Fatalf("op %s: expected left operand preserved", c.op)
		}
	}
}

func TestBranchSimplificationCollapsesLiteralCondition(t *testing.T) {
	thenBody := []ir.Stmt{&ir.Return{Value: numLit(1)}}
	elseBody := []ir.Stmt{&ir.Return{Value: numLit(2)}}
	body := []ir.Stmt{&ir.If{Condition: boolLit(true), Then: thenBody, Else: elseBody}}
	out, changed := simplifyBranches(body)
	if !changed || len(out) != 1 {
		t.Fatalf("expected collapse to the then-branch, got %#v", out)
	}
	ret, ok := out[0].(*ir.Return)
	if !ok || ret.Value.(*ir.Literal).Value.(int64) != 1 {
		t.Fatalf("expected then-branch return 1, got %#v", out[0])
	}
}

func TestWhileFalseBecomesEmpty(t *testing.T) {
	body := []ir.Stmt{&ir.While{Condition: boolLit(false), Body: []ir.Stmt{&ir.Return{Value: numLit(1)}}}}
	out, changed := simplifyBranches(body)
	if !changed || len(out) != 0 {
		t.Fatalf("expected while(false) removed, got %#v", out)
	}
}

func TestDeadStoreRemovesUnreadLocal(t *testing.T) {
	body := []ir.Stmt{
		&ir.Let{Name: "unused", Value: numLit(1)},
		&ir.Return{Value: numLit(2)},
	}
	out, changed := deadStoreBlock(body, false)
	if !changed || len(out) != 1 {
		t.Fatalf("expected unused let removed, got %#v", out)
	}
}

func TestDeadStorePreservesCallSideEffects(t *testing.T) {
	call := &ir.Call{Callee: ident("sideEffect"), Args: nil}
	body := []ir.Stmt{
		&ir.Let{Name: "unused", Value: call},
		&ir.Return{Value: numLit(2)},
	}
	out, changed := deadStoreBlock(body, false)
	if !changed || len(out) != 2 {
		t.Fatalf("expected the call preserved as a bare ExprStmt, got %#v", out)
	}
	if _, ok := out[0].(*ir.ExprStmt); !ok {
		t.Fatalf("expected ExprStmt, got %T", out[0])
	}
}

func TestDeadStorePreservesTopLevelLets(t *testing.T) {
	prog := &ir.Program{Body: []ir.Stmt{
		&ir.Let{Name: "unused", Value: numLit(1)},
	}}
	deadStoreProgram(prog)
	if len(prog.Body) != 1 {
		t.Fatalf("expected top-level let preserved, got %#v", prog.Body)
	}
}

func TestPruneDeadFunctions(t *testing.T) {
	main := &ir.Function{Name: "main", Body: []ir.Stmt{
		&ir.ExprStmt{Expr: &ir.Call{Callee: ident("used")}},
	}}
	used := &ir.Function{Name: "used", Body: nil}
	unused := &ir.Function{Name: "unused", Body: nil}
	prog := &ir.Program{Body: []ir.Stmt{main, used, unused}}

	kept, pruned := pruneDeadFunctions(prog)
	if len(pruned) != 1 || pruned[0] != "unused" {
		t.Fatalf("expected unused pruned, got %#v", pruned)
	}
	names := map[string]bool{}
	for _, s := range kept {
		if fn, ok := s.(*ir.Function); ok {
			names[fn.Name] = true
		}
	}
	if !names["main"] || !names["used"] || names["unused"] {
		t.Fatalf("unexpected kept set: %#v", names)
	}
}

func TestValidateCatchesMissingFields(t *testing.T) {
	prog := &ir.Program{Body: []ir.Stmt{
		&ir.Assign{Target: nil, Value: numLit(1)},
	}}
	errs := Validate(prog)
	if len(errs) == 0 {
		t.Fatal("expected a validation error for a nil Assign.Target")
	}
}

func TestRunEndToEnd(t *testing.T) {
	fn := &ir.Function{
		Name:   "main",
		Params: nil,
		Body: []ir.Stmt{
			&ir.Let{Name: "a", Value: &ir.Binary{Op: "+", Left: numLit(1), Right: numLit(1)}},
			&ir.Return{Value: ident("a")},
		},
	}
	prog := &ir.Program{Body: []ir.Stmt{fn}}
	res := Run(prog)
	if len(res.ValidationErrs) != 0 {
		t.Fatalf("unexpected validation errors: %v", res.ValidationErrs)
	}
	ret := fn.Body[len(fn.Body)-1].(*ir.Return)
	lit, ok := ret.Value.(*ir.Literal)
	if !ok {
		t.Fatalf("expected propagated literal return after constant folding + dead-store, got %#v", fn.Body)
	}
	if lit.Value.(int64) != 2 {
		t.Fatalf("expected 2, got %v", lit.Value)
	}
}
