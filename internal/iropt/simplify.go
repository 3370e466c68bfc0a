package iropt

import "github.com/lumina-lang/lumina/internal/ir"

// simplifyBranches collapses `If(true, ...)`/`If(false, ...)` to the
// corresponding branch and turns `while(false)` into nothing. Runs after
// propagateAndFold has already turned foldable conditions into literals.
func simplifyBranches(body []ir.Stmt) ([]ir.Stmt, bool) {
	changed := false
	var out []ir.Stmt
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *ir.If:
			if lit, ok := asLiteral(s.Condition); ok {
				if b, isBool := litBool(lit); isBool {
					changed = true
					if b {
						out = append(out, s.Then...)
					} else {
						out = append(out, s.Else...)
					}
					continue
				}
			}
			out = append(out, s)

		case *ir.While:
			if lit, ok := asLiteral(s.Condition); ok {
				if b, isBool := litBool(lit); isBool && !b {
					changed = true
					continue
				}
			}
			out = append(out, s)

		default:
			out = append(out, stmt)
		}
	}
	return out, changed
}

// simplifyMatches folds a MatchExpr whose scrutinee is a literal Enum
// construction to the Result of the first arm naming that variant, but only
// when that arm has no bindings, no guard and an expression body (no Body
// statements); any other match is left unchanged.
func simplifyMatches(body []ir.Stmt) ([]ir.Stmt, bool) {
	changed := false
	out := make([]ir.Stmt, len(body))
	for i, stmt := range body {
		ns, c := simplifyMatchesInStmt(stmt)
		out[i] = ns
		changed = changed || c
	}
	return out, changed
}

func simplifyMatchesInStmt(stmt ir.Stmt) (ir.Stmt, bool) {
	switch s := stmt.(type) {
	case *ir.ExprStmt:
		ne, c := simplifyMatchExpr(s.Expr)
		s.Expr = ne
		return s, c
	case *ir.Let:
		ne, c := simplifyMatchExpr(s.Value)
		s.Value = ne
		return s, c
	case *ir.Return:
		if s.Value == nil {
			return s, false
		}
		ne, c := simplifyMatchExpr(s.Value)
		s.Value = ne
		return s, c
	case *ir.If:
		then, c1 := simplifyMatches(s.Then)
		els, c2 := simplifyMatches(s.Else)
		s.Then, s.Else = then, els
		return s, c1 || c2
	case *ir.While:
		body, c := simplifyMatches(s.Body)
		s.Body = body
		return s, c
	default:
		return s, false
	}
}

func simplifyMatchExpr(e ir.Expr) (ir.Expr, bool) {
	m, ok := e.(*ir.MatchExpr)
	if !ok {
		return e, false
	}
	enumLit, ok := m.Value.(*ir.Enum)
	if !ok || enumLit.Tag == "__is__" {
		return e, false
	}
	for _, arm := range m.Arms {
		if arm.Variant != enumLit.Tag {
			continue
		}
		if len(arm.Bindings) != 0 || len(arm.Body) != 0 || arm.Guard != nil || arm.Result == nil {
			return e, false
		}
		return arm.Result, true
	}
	return e, false
}
