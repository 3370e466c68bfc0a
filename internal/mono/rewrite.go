package mono

import "github.com/lumina-lang/lumina/internal/ast"

// rewriteCallSites mutates every *ast.Call / pipe *ast.Binary present as a
// key in renames so it invokes the specialized function name instead of the
// original generic one. Mutation happens through the call/pipe node's own
// field (Callee, or Right for a pipe), so no parent-pointer bookkeeping is
// needed.
func rewriteCallSites(prog *ast.Program, renames map[ast.Node]string) {
	for _, stmt := range prog.Statements {
		rewriteStmt(stmt, renames)
	}
}

func rewriteBlock(b *ast.Block, renames map[ast.Node]string) {
	if b == nil {
		return
	}
	for _, stmt := range b.Statements {
		rewriteStmt(stmt, renames)
	}
}

func rewriteStmt(stmt ast.Statement, renames map[ast.Node]string) {
	switch s := stmt.(type) {
	case *ast.FnDecl:
		rewriteBlock(s.Body, renames)
	case *ast.ImplDecl:
		for _, m := range s.Methods {
			rewriteBlock(m.Body, renames)
		}
	case *ast.Block:
		rewriteBlock(s, renames)
	case *ast.If:
		rewriteExpr(s.Condition, renames)
		rewriteStmt(s.Then, renames)
		if s.Else != nil {
			rewriteStmt(s.Else, renames)
		}
	case *ast.While:
		rewriteExpr(s.Condition, renames)
		rewriteStmt(s.Body, renames)
	case *ast.Let:
		rewriteExpr(s.Value, renames)
	case *ast.Assign:
		rewriteExpr(s.Target, renames)
		rewriteExpr(s.Value, renames)
	case *ast.Return:
		if s.Value != nil {
			rewriteExpr(s.Value, renames)
		}
	case *ast.ExprStmt:
		rewriteExpr(s.Expr, renames)
	case *ast.MatchStmt:
		rewriteExpr(s.Scrutinee, renames)
		for _, arm := range s.Arms {
			if arm.Guard != nil {
				rewriteExpr(arm.Guard, renames)
			}
			rewriteArmBody(arm.Body, renames)
		}
	}
}

func rewriteArmBody(body ast.Node, renames map[ast.Node]string) {
	switch b := body.(type) {
	case *ast.Block:
		rewriteBlock(b, renames)
	case ast.Expression:
		rewriteExpr(b, renames)
	}
}

func rewriteExpr(expr ast.Expression, renames map[ast.Node]string) {
	if expr == nil {
		return
	}
	switch e := expr.(type) {
	case *ast.Call:
		if name, ok := renames[e]; ok {
			e.Callee = &ast.Identifier{Loc: e.Callee.Location(), Name: name}
			e.Qualifier = ""
			e.TypeArgs = nil
		}
		rewriteExpr(e.Callee, renames)
		for _, a := range e.Args {
			rewriteExpr(a, renames)
		}
	case *ast.Binary:
		if e.Op == "|>" {
			if name, ok := renames[e]; ok {
				if call, ok := e.Right.(*ast.Call); ok {
					call.Callee = &ast.Identifier{Loc: call.Callee.Location(), Name: name}
					call.Qualifier = ""
					call.TypeArgs = nil
				} else {
					e.Right = &ast.Identifier{Loc: e.Right.Location(), Name: name}
				}
			}
		}
		rewriteExpr(e.Left, renames)
		rewriteExpr(e.Right, renames)
	case *ast.Unary:
		rewriteExpr(e.Operand, renames)
	case *ast.Member:
		rewriteExpr(e.Target, renames)
	case *ast.Index:
		rewriteExpr(e.Target, renames)
		rewriteExpr(e.Index, renames)
	case *ast.StructLiteral:
		for _, f := range e.Fields {
			rewriteExpr(f.Value, renames)
		}
	case *ast.Enum:
		for _, a := range e.Args {
			rewriteExpr(a, renames)
		}
	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			rewriteExpr(el, renames)
		}
		if e.Repeat != nil {
			rewriteExpr(e.Repeat, renames)
		}
		if e.Count != nil {
			rewriteExpr(e.Count, renames)
		}
	case *ast.IsExpr:
		rewriteExpr(e.Value, renames)
	case *ast.MatchExpr:
		rewriteExpr(e.Scrutinee, renames)
		for _, arm := range e.Arms {
			if arm.Guard != nil {
				rewriteExpr(arm.Guard, renames)
			}
			rewriteArmBody(arm.Body, renames)
		}
	}
}
