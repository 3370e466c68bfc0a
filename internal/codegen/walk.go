package codegen

import "github.com/lumina-lang/lumina/internal/ir"

// walkStmts visits every expression reachable from body, used only to
// detect the presence of a `__lumina_try` call for try-desugaring
// (function.go); it does not need to distinguish statement kinds beyond
// recursing into their expressions and nested blocks.
func walkStmts(body []ir.Stmt, visit func(ir.Expr)) {
	for _, stmt := range body {
		switch s := stmt.(type) {
		case *ir.Let:
			walkExprDeep(s.Value, visit)
		case *ir.Assign:
			walkExprDeep(s.Target, visit)
			walkExprDeep(s.Value, visit)
		case *ir.ExprStmt:
			walkExprDeep(s.Expr, visit)
		case *ir.Return:
			if s.Value != nil {
				walkExprDeep(s.Value, visit)
			}
		case *ir.If:
			walkExprDeep(s.Condition, visit)
			walkStmts(s.Then, visit)
			walkStmts(s.Else, visit)
		case *ir.While:
			walkExprDeep(s.Condition, visit)
			walkStmts(s.Body, visit)
		}
	}
}

func walkExprDeep(e ir.Expr, visit func(ir.Expr)) {
	if e == nil {
		return
	}
	visit(e)
	switch v := e.(type) {
	case *ir.Unary:
		walkExprDeep(v.Operand, visit)
	case *ir.Binary:
		walkExprDeep(v.Left, visit)
		walkExprDeep(v.Right, visit)
	case *ir.Call:
		walkExprDeep(v.Callee, visit)
		for _, a := range v.Args {
			walkExprDeep(a, visit)
		}
	case *ir.Member:
		walkExprDeep(v.Target, visit)
	case *ir.Index:
		walkExprDeep(v.Target, visit)
		walkExprDeep(v.Index, visit)
	case *ir.Cast:
		walkExprDeep(v.Expr, visit)
	case *ir.Enum:
		for _, val := range v.Values {
			walkExprDeep(val, visit)
		}
	case *ir.StructLiteral:
		for _, f := range v.Fields {
			walkExprDeep(f.Value, visit)
		}
	case *ir.ArrayLiteral:
		for _, el := range v.Elements {
			walkExprDeep(el, visit)
		}
		walkExprDeep(v.Repeat, visit)
		walkExprDeep(v.Count, visit)
	case *ir.MatchExpr:
		walkExprDeep(v.Value, visit)
		for _, arm := range v.Arms {
			if arm.Guard != nil {
				walkExprDeep(arm.Guard, visit)
			}
			walkStmts(arm.Body, visit)
			if arm.Result != nil {
				walkExprDeep(arm.Result, visit)
			}
		}
	}
}
