package iropt

import "github.com/lumina-lang/lumina/internal/ir"

// deadStoreBlock runs a reverse scan over one statement list, removing any
// Let/Assign whose bound name is never read by a later statement in the
// same list, but still visiting (and, if it contains a call, preserving)
// the RHS for its side effects. preserveAll disables removal entirely —
// top-level program statements keep every Let regardless of reads, since
// they may be re-exported.
func deadStoreBlock(body []ir.Stmt, preserveAll bool) ([]ir.Stmt, bool) {
	changed := false
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *ir.If:
			then, c1 := deadStoreBlock(s.Then, preserveAll)
			els, c2 := deadStoreBlock(s.Else, preserveAll)
			s.Then, s.Else = then, els
			changed = changed || c1 || c2
		case *ir.While:
			b, c := deadStoreBlock(s.Body, preserveAll)
			s.Body = b
			changed = changed || c
		}
	}

	if preserveAll {
		return body, changed
	}

	readAfter := map[string]bool{}
	out := make([]ir.Stmt, 0, len(body))
	// Build in reverse, then un-reverse at the end.
	for i := len(body) - 1; i >= 0; i-- {
		stmt := body[i]
		switch s := stmt.(type) {
		case *ir.Let:
			if !readAfter[s.Name] {
				changed = true
				if exprHasCall(s.Value) {
					out = append(out, &ir.ExprStmt{Loc: s.Loc, Expr: s.Value})
					collectReads(s.Value, readAfter)
				}
				continue
			}
			out = append(out, s)
			collectReads(s.Value, readAfter)

		case *ir.Assign:
			if id, ok := s.Target.(*ir.Identifier); ok && !readAfter[id.Name] {
				changed = true
				if exprHasCall(s.Value) {
					out = append(out, &ir.ExprStmt{Loc: s.Loc, Expr: s.Value})
					collectReads(s.Value, readAfter)
				}
				continue
			}
			out = append(out, s)
			collectReads(s.Value, readAfter)
			collectReads(s.Target, readAfter)

		default:
			out = append(out, stmt)
			collectStmtReads(stmt, readAfter)
		}
	}

	// Reverse back into source order.
	for l, r := 0, len(out)-1; l < r; l, r = l+1, r-1 {
		out[l], out[r] = out[r], out[l]
	}
	return out, changed
}

// deadStoreProgram preserves every top-level Let regardless of reads.
// Function bodies were already swept (non-preserving) inside
// fixpointFunction, so this only walks top-level statements that aren't
// *ir.Function bodies.
func deadStoreProgram(prog *ir.Program) {
	newBody, _ := deadStoreBlock(topLevelNonFunctionView(prog.Body), true)
	applyTopLevelView(prog, newBody)
}

// topLevelNonFunctionView/applyTopLevelView exist because deadStoreBlock
// expects a flat []ir.Stmt; Functions live in that same slice at the
// program level and must pass through untouched (they're handled by
// fixpointFunction already, and preserveAll makes this pass a no-op on
// Lets anyway, but we still want the recursive If/While visit to skip
// function bodies to avoid double work).
func topLevelNonFunctionView(body []ir.Stmt) []ir.Stmt {
	out := make([]ir.Stmt, 0, len(body))
	for _, s := range body {
		if _, ok := s.(*ir.Function); ok {
			continue
		}
		out = append(out, s)
	}
	return out
}

func applyTopLevelView(prog *ir.Program, view []ir.Stmt) {
	vi := 0
	for i, s := range prog.Body {
		if _, ok := s.(*ir.Function); ok {
			continue
		}
		if vi < len(view) {
			prog.Body[i] = view[vi]
			vi++
		}
	}
}

func countLets(body []ir.Stmt) int {
	n := 0
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *ir.Let:
			n++
		case *ir.Function:
			n += countLets(s.Body)
		case *ir.If:
			n += countLets(s.Then) + countLets(s.Else)
		case *ir.While:
			n += countLets(s.Body)
		}
	}
	return n
}

// exprHasCall reports whether e contains a Call anywhere in its subtree,
// the condition under which a dropped Let/Assign's RHS must still execute
// for side effects.
func exprHasCall(e ir.Expr) bool {
	found := false
	walkExpr(e, func(sub ir.Expr) {
		if _, ok := sub.(*ir.Call); ok {
			found = true
		}
	})
	return found
}

// collectReads records every Identifier name referenced within e.
func collectReads(e ir.Expr, into map[string]bool) {
	walkExpr(e, func(sub ir.Expr) {
		if id, ok := sub.(*ir.Identifier); ok {
			into[id.Name] = true
		}
	})
}

// collectStmtReads records every Identifier name referenced by a statement
// that isn't itself a candidate for dead-store elimination (If/While
// conditions, Return values, ExprStmt expressions, and nested bodies that
// weren't already folded into the reverse scan).
func collectStmtReads(stmt ir.Stmt, into map[string]bool) {
	switch s := stmt.(type) {
	case *ir.If:
		collectReads(s.Condition, into)
		for _, b := range s.Then {
			collectStmtReads(b, into)
		}
		for _, b := range s.Else {
			collectStmtReads(b, into)
		}
	case *ir.While:
		collectReads(s.Condition, into)
		for _, b := range s.Body {
			collectStmtReads(b, into)
		}
	case *ir.Return:
		if s.Value != nil {
			collectReads(s.Value, into)
		}
	case *ir.ExprStmt:
		collectReads(s.Expr, into)
	case *ir.Let:
		collectReads(s.Value, into)
	case *ir.Assign:
		collectReads(s.Value, into)
		collectReads(s.Target, into)
	}
}

// walkExpr visits e and every expression reachable from it, calling visit
// on each node including e itself.
func walkExpr(e ir.Expr, visit func(ir.Expr)) {
	if e == nil {
		return
	}
	visit(e)
	switch v := e.(type) {
	case *ir.Unary:
		walkExpr(v.Operand, visit)
	case *ir.Binary:
		walkExpr(v.Left, visit)
		walkExpr(v.Right, visit)
	case *ir.Call:
		walkExpr(v.Callee, visit)
		for _, a := range v.Args {
			walkExpr(a, visit)
		}
	case *ir.Member:
		walkExpr(v.Target, visit)
	case *ir.Index:
		walkExpr(v.Target, visit)
		walkExpr(v.Index, visit)
	case *ir.Cast:
		walkExpr(v.Expr, visit)
	case *ir.Enum:
		for _, val := range v.Values {
			walkExpr(val, visit)
		}
	case *ir.StructLiteral:
		for _, f := range v.Fields {
			walkExpr(f.Value, visit)
		}
	case *ir.ArrayLiteral:
		for _, el := range v.Elements {
			walkExpr(el, visit)
		}
		walkExpr(v.Repeat, visit)
		walkExpr(v.Count, visit)
	case *ir.MatchExpr:
		walkExpr(v.Value, visit)
		for _, arm := range v.Arms {
			if arm.Guard != nil {
				walkExpr(arm.Guard, visit)
			}
			for _, b := range arm.Body {
				collectWalkStmt(b, visit)
			}
			if arm.Result != nil {
				walkExpr(arm.Result, visit)
			}
		}
	}
}

// collectWalkStmt extends walkExpr across statement boundaries so a
// MatchExpr arm's block body is covered by the same Call/Identifier scan.
func collectWalkStmt(stmt ir.Stmt, visit func(ir.Expr)) {
	switch s := stmt.(type) {
	case *ir.Let:
		walkExpr(s.Value, visit)
	case *ir.Assign:
		walkExpr(s.Target, visit)
		walkExpr(s.Value, visit)
	case *ir.ExprStmt:
		walkExpr(s.Expr, visit)
	case *ir.Return:
		if s.Value != nil {
			walkExpr(s.Value, visit)
		}
	case *ir.If:
		walkExpr(s.Condition, visit)
		for _, b := range s.Then {
			collectWalkStmt(b, visit)
		}
		for _, b := range s.Else {
			collectWalkStmt(b, visit)
		}
	case *ir.While:
		walkExpr(s.Condition, visit)
		for _, b := range s.Body {
			collectWalkStmt(b, visit)
		}
	}
}
