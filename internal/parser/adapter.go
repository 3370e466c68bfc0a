package parser

import (
	"strings"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/diagnostics"
)

// Adapt is the C1 parser adapter: it runs the grammar (this
// package's own hand-written parser, standing in for the externally
// compiled PEG grammar  treats as a black box), normalizes any
// syntax failure into a diagnostic, and performs the single post-parse walk
// that rewrites every syntactic type hole `_` into ast.TypeHole. It performs
// no semantic validation beyond that — name resolution, typing, and flow
// checks are later stages' job.
func Adapt(src, filePath string) (*ast.Program, []*diagnostics.Diagnostic) {
	p := New(src, filePath)
	prog := p.ParseProgram()
	prog.File = filePath

	var diags []*diagnostics.Diagnostic
	for _, se := range p.Errors {
		msg := "unexpected " + se.Found
		if len(se.Expected) > 0 {
			msg += ", expected " + strings.Join(se.Expected, " or ")
		}
		diags = append(diags, diagnostics.New(diagnostics.CodeSyntaxError, se.Location, "%s", msg))
	}

	rewriteHolesInProgram(prog)
	return prog, diags
}

// rewriteHolesInProgram walks every type-bearing position once, replacing a
// `_` NamedType placeholder the grammar produced with the TypeHole sentinel
// the inferrer (C4) generates a fresh type variable for.
func rewriteHolesInProgram(prog *ast.Program) {
	for _, s := range prog.Statements {
		rewriteHolesInStmt(s)
	}
}

func rewriteHolesInType(t ast.TypeExpr) ast.TypeExpr {
	if t == nil {
		return nil
	}
	switch n := t.(type) {
	case *ast.NamedType:
		if n.Name == "_" {
			return &ast.TypeHole{Loc: n.Loc}
		}
		for i, a := range n.Args {
			n.Args[i] = rewriteHolesInType(a)
		}
		return n
	case *ast.FunctionType:
		for i, p := range n.Params {
			n.Params[i] = rewriteHolesInType(p)
		}
		n.Return = rewriteHolesInType(n.Return)
		return n
	case *ast.ArrayType:
		n.Elem = rewriteHolesInType(n.Elem)
		return n
	default:
		return t
	}
}

func rewriteHolesInStmt(s ast.Statement) {
	switch n := s.(type) {
	case *ast.FnDecl:
		for i := range n.Params {
			n.Params[i].Type = rewriteHolesInType(n.Params[i].Type)
		}
		n.ReturnType = rewriteHolesInType(n.ReturnType)
		if n.Body != nil {
			rewriteHolesInStmt(n.Body)
		}
	case *ast.StructDecl:
		for i := range n.Fields {
			n.Fields[i].Type = rewriteHolesInType(n.Fields[i].Type)
		}
	case *ast.EnumDecl:
		for _, variant := range n.Variants {
			for i := range variant.Params {
				variant.Params[i] = rewriteHolesInType(variant.Params[i])
			}
		}
	case *ast.TypeDecl:
		n.Underlying = rewriteHolesInType(n.Underlying)
	case *ast.TraitDecl:
		for _, m := range n.Methods {
			for i := range m.Params {
				m.Params[i].Type = rewriteHolesInType(m.Params[i].Type)
			}
			m.ReturnType = rewriteHolesInType(m.ReturnType)
			if m.Default != nil {
				rewriteHolesInStmt(m.Default)
			}
		}
	case *ast.ImplDecl:
		n.TargetType = rewriteHolesInType(n.TargetType)
		for _, m := range n.Methods {
			rewriteHolesInStmt(m)
		}
	case *ast.Let:
		n.TypeAnno = rewriteHolesInType(n.TypeAnno)
	case *ast.Block:
		for _, stmt := range n.Statements {
			rewriteHolesInStmt(stmt)
		}
	case *ast.If:
		rewriteHolesInStmt(n.Then)
		if n.Else != nil {
			rewriteHolesInStmt(n.Else)
		}
	case *ast.While:
		rewriteHolesInStmt(n.Body)
	case *ast.MatchStmt:
		for _, arm := range n.Arms {
			if b, ok := arm.Body.(*ast.Block); ok {
				rewriteHolesInStmt(b)
			}
		}
	}
}
