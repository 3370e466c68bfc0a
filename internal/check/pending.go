package check

import (
	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/diagnostics"
	"github.com/lumina-lang/lumina/internal/types"
)

// maxPendingReturnPasses bounds the fixed-point search for pendingReturn
// functions.
const maxPendingReturnPasses = 5

// checkPendingReturns finalizes the return type of every function declared
// without a return annotation. C4 already ties a pendingReturn function's
// body to the same rigid Var its signature exposes to callers, so the
// global substitution is typically already a fixed point by the time C5
// runs; this pass iterates only to catch a cyclic group (A calls B calls A,
// both pending, with no concrete base case) whose shared Var never resolves
// to a concrete type, collapsing every member of such a cycle to `any`.
func (c *checker) checkPendingReturns() {
	pendingFns := map[string]*ast.FnDecl{}
	for _, stmt := range c.prog.Statements {
		if fn, ok := stmt.(*ast.FnDecl); ok && fn.ReturnType == nil && fn.Body != nil {
			pendingFns[fn.Name] = fn
		}
	}
	if len(pendingFns) == 0 || c.ictx == nil {
		return
	}

	deps := map[string]map[string]bool{}
	for name, fn := range pendingFns {
		deps[name] = map[string]bool{}
		collectCalledNames(fn.Body, deps[name])
	}

	for pass := 0; pass < maxPendingReturnPasses; pass++ {
		changed := false
		for name := range pendingFns {
			before := c.ictx.FnReturns[name]
			if before == nil {
				continue
			}
			if after := c.ictx.Resolve(before); after.String() != before.String() {
				c.ictx.FnReturns[name] = after
				changed = true
			}
		}
		if !changed {
			break
		}
	}

	unresolved := map[string]bool{}
	for name := range pendingFns {
		if _, isVar := c.ictx.FnReturns[name].(types.Var); isVar {
			unresolved[name] = true
		}
	}
	if len(unresolved) == 0 {
		return
	}

	for name := range unresolved {
		if !detectPendingCycle(name, deps, unresolved, map[string]bool{}) {
			continue
		}
		c.ictx.FnReturns[name] = types.Adt{Name: "any"}
		c.addf(diagnostics.CodeTypeError, pendingFns[name],
			"cannot infer a return type for %q: it forms a pending-return cycle with no concrete base case; collapsing to any", name)
	}
}

// detectPendingCycle reports whether name reaches itself through other
// still-unresolved pendingReturn functions.
func detectPendingCycle(name string, deps map[string]map[string]bool, unresolved map[string]bool, visiting map[string]bool) bool {
	var reaches func(cur string) bool
	reaches = func(cur string) bool {
		if visiting[cur] {
			return false
		}
		visiting[cur] = true
		for callee := range deps[cur] {
			if !unresolved[callee] {
				continue
			}
			if callee == name || reaches(callee) {
				return true
			}
		}
		return false
	}
	return reaches(name)
}

func collectCalledNames(b *ast.Block, out map[string]bool) {
	if b == nil {
		return
	}
	for _, stmt := range b.Statements {
		collectCalledNamesStmt(stmt, out)
	}
}

func collectCalledNamesStmt(stmt ast.Statement, out map[string]bool) {
	switch s := stmt.(type) {
	case *ast.Block:
		collectCalledNames(s, out)
	case *ast.If:
		collectCalledNamesExpr(s.Condition, out)
		collectCalledNames(s.Then, out)
		collectCalledNames(s.Else, out)
	case *ast.While:
		collectCalledNamesExpr(s.Condition, out)
		collectCalledNames(s.Body, out)
	case *ast.Let:
		collectCalledNamesExpr(s.Value, out)
	case *ast.Assign:
		collectCalledNamesExpr(s.Value, out)
	case *ast.Return:
		if s.Value != nil {
			collectCalledNamesExpr(s.Value, out)
		}
	case *ast.ExprStmt:
		collectCalledNamesExpr(s.Expr, out)
	case *ast.MatchStmt:
		collectCalledNamesExpr(s.Scrutinee, out)
		for _, arm := range s.Arms {
			if block, ok := arm.Body.(*ast.Block); ok {
				collectCalledNames(block, out)
			}
		}
	}
}

func collectCalledNamesExpr(expr ast.Expression, out map[string]bool) {
	switch e := expr.(type) {
	case *ast.Call:
		if id, ok := e.Callee.(*ast.Identifier); ok {
			out[id.Name] = true
		}
		for _, a := range e.Args {
			collectCalledNamesExpr(a, out)
		}
	case *ast.Binary:
		collectCalledNamesExpr(e.Left, out)
		collectCalledNamesExpr(e.Right, out)
	case *ast.Unary:
		collectCalledNamesExpr(e.Operand, out)
	case *ast.Member:
		collectCalledNamesExpr(e.Target, out)
	case *ast.Index:
		collectCalledNamesExpr(e.Target, out)
		collectCalledNamesExpr(e.Index, out)
	case *ast.MatchExpr:
		collectCalledNamesExpr(e.Scrutinee, out)
		for _, arm := range e.Arms {
			switch b := arm.Body.(type) {
			case *ast.Block:
				collectCalledNames(b, out)
			case ast.Expression:
				collectCalledNamesExpr(b, out)
			}
		}
	}
}
