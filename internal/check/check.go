// Package check implements the C5 semantic/flow checker: the
// final diagnostic-producing pass consuming C3's symbol table and C4's
// inference context, grounded on funxy's internal/analyzer
// declarations_*.go/statements.go checking passes.
package check

import (
	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/diagnostics"
	"github.com/lumina-lang/lumina/internal/infer"
	"github.com/lumina-lang/lumina/internal/symbols"
)

type checker struct {
	prog  *ast.Program
	table *symbols.Table
	ictx  *infer.Context

	structs map[string]*ast.StructDecl
	enums   map[string]*ast.EnumDecl
	aliases map[string]*ast.TypeDecl
	traits  map[string]*ast.TraitDecl

	diags []*diagnostics.Diagnostic
}

// Run performs every C5 check over prog and returns the diagnostics it
// produced. Its only other effect is updating ictx.FnReturns for functions
// without a return annotation (see checkPendingReturns).
func Run(prog *ast.Program, table *symbols.Table, ictx *infer.Context) []*diagnostics.Diagnostic {
	c := &checker{
		prog:    prog,
		table:   table,
		ictx:    ictx,
		structs: map[string]*ast.StructDecl{},
		enums:   map[string]*ast.EnumDecl{},
		aliases: map[string]*ast.TypeDecl{},
		traits:  map[string]*ast.TraitDecl{},
	}
	for _, stmt := range prog.Statements {
		switch d := stmt.(type) {
		case *ast.StructDecl:
			c.structs[d.Name] = d
		case *ast.EnumDecl:
			c.enums[d.Name] = d
		case *ast.TypeDecl:
			c.aliases[d.Name] = d
		case *ast.TraitDecl:
			c.traits[d.Name] = d
		}
	}

	// ref-lvalue/mutability checking is covered by C3's
	// checkRefArgs, which already has the scope/mutability information.
	c.checkTypeReferences()
	c.checkExhaustiveness()
	c.checkRecursiveStructs()
	c.checkPendingReturns()

	return c.diags
}

func (c *checker) addf(code string, loc ast.Node, format string, args ...interface{}) *diagnostics.Diagnostic {
	d := diagnostics.New(code, loc.Location(), format, args...)
	c.diags = append(c.diags, d)
	return d
}
