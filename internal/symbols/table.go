package symbols

import "github.com/lumina-lang/lumina/internal/ast"

// Table is the result of resolving one file: the global scope
// plus hoisted declarations and the identifier->Symbol bindings later
// stages (C4/C5) consume instead of re-walking scopes themselves.
type Table struct {
	Global      *Scope
	Fns         map[string]*ast.FnDecl
	Structs     map[string]*ast.StructDecl
	Enums       map[string]*ast.EnumDecl
	Types       map[string]*ast.TypeDecl
	Traits      map[string]*ast.TraitDecl
	Resolutions map[*ast.Identifier]*Symbol
}

func newTable() *Table {
	return &Table{
		Global:      NewScope(nil, ScopeGlobal),
		Fns:         map[string]*ast.FnDecl{},
		Structs:     map[string]*ast.StructDecl{},
		Enums:       map[string]*ast.EnumDecl{},
		Types:       map[string]*ast.TypeDecl{},
		Traits:      map[string]*ast.TraitDecl{},
		Resolutions: map[*ast.Identifier]*Symbol{},
	}
}
