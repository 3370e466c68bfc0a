package iropt

import "github.com/lumina-lang/lumina/internal/ir"

// Validate runs a final walk asserting every node's required fields are
// present. A failure here means a prior pass produced a structurally
// broken tree — a compiler bug, reported as a string rather than
// panicking.
func Validate(prog *ir.Program) []string {
	var errs []string
	for _, stmt := range prog.Body {
		errs = append(errs, validateStmt(stmt)...)
	}
	return errs
}

func validateStmt(stmt ir.Stmt) []string {
	var errs []string
	switch s := stmt.(type) {
	case *ir.Function:
		if s.Name == "" {
			errs = append(errs, "Function.Name is empty")
		}
		for _, b := range s.Body {
			errs = append(errs, validateStmt(b)...)
		}
	case *ir.Let:
		if s.Name == "" {
			errs = append(errs, "Let.Name is empty")
		}
		errs = append(errs, validateExpr(s.Value)...)
	case *ir.Assign:
		if s.Target == nil {
			errs = append(errs, "Assign.Target is nil")
		} else {
			errs = append(errs, validateExpr(s.Target)...)
		}
		errs = append(errs, validateExpr(s.Value)...)
	case *ir.Return:
		if s.Value != nil {
			errs = append(errs, validateExpr(s.Value)...)
		}
	case *ir.ExprStmt:
		errs = append(errs, validateExpr(s.Expr)...)
	case *ir.If:
		errs = append(errs, validateExpr(s.Condition)...)
		for _, b := range s.Then {
			errs = append(errs, validateStmt(b)...)
		}
		for _, b := range s.Else {
			errs = append(errs, validateStmt(b)...)
		}
	case *ir.While:
		errs = append(errs, validateExpr(s.Condition)...)
		for _, b := range s.Body {
			errs = append(errs, validateStmt(b)...)
		}
	case *ir.Noop:
		// fine
	default:
		errs = append(errs, "unknown statement node")
	}
	return errs
}

func validateExpr(e ir.Expr) []string {
	var errs []string
	switch v := e.(type) {
	case nil:
		errs = append(errs, "nil expression")
	case *ir.Identifier:
		if v.Name == "" {
			errs = append(errs, "Identifier.Name is empty")
		}
	case *ir.Binary:
		if v.Op == "" {
			errs = append(errs, "Binary.Op is empty")
		}
		errs = append(errs, validateExpr(v.Left)...)
		errs = append(errs, validateExpr(v.Right)...)
	case *ir.Unary:
		if v.Op == "" {
			errs = append(errs, "Unary.Op is empty")
		}
		errs = append(errs, validateExpr(v.Operand)...)
	case *ir.Call:
		if v.Callee == nil {
			errs = append(errs, "Call.Callee is nil")
		} else {
			errs = append(errs, validateExpr(v.Callee)...)
		}
		for _, a := range v.Args {
			errs = append(errs, validateExpr(a)...)
		}
	case *ir.Member:
		errs = append(errs, validateExpr(v.Target)...)
		if v.Name == "" {
			errs = append(errs, "Member.Name is empty")
		}
	case *ir.Index:
		errs = append(errs, validateExpr(v.Target)...)
		errs = append(errs, validateExpr(v.Index)...)
	case *ir.Cast:
		errs = append(errs, validateExpr(v.Expr)...)
		if v.TargetType == "" {
			errs = append(errs, "Cast.TargetType is empty")
		}
	case *ir.Enum:
		if v.Tag == "" {
			errs = append(errs, "Enum.Tag is empty")
		}
		for _, val := range v.Values {
			errs = append(errs, validateExpr(val)...)
		}
	case *ir.StructLiteral:
		for _, f := range v.Fields {
			errs = append(errs, validateExpr(f.Value)...)
		}
	case *ir.ArrayLiteral:
		for _, el := range v.Elements {
			errs = append(errs, validateExpr(el)...)
		}
	case *ir.MatchExpr:
		errs = append(errs, validateExpr(v.Value)...)
		if len(v.Arms) == 0 {
			errs = append(errs, "MatchExpr has no arms")
		}
		for _, arm := range v.Arms {
			for _, b := range arm.Body {
				errs = append(errs, validateStmt(b)...)
			}
			if arm.Result != nil {
				errs = append(errs, validateExpr(arm.Result)...)
			}
		}
	case *ir.Literal:
		// any Kind/Value combination is valid
	}
	return errs
}
