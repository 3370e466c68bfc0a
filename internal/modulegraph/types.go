// Package modulegraph implements the C2 module registry & graph stage
//: resolving `@std/...`, package, and relative import specifiers
// into a per-file set of local bindings, grounded on funxy's
// internal/modules package (Module/Loader) and internal/utils path helpers.
package modulegraph

import "github.com/lumina-lang/lumina/internal/ast"

// Export is one exported member of a module: a function, type, value, or a
// nested namespace.
type Export interface {
	exportNode()
}

// FunctionExport describes a callable export's signature, used by C4/C5 to
// check call arity and argument assignability without re-parsing the
// defining module.
type FunctionExport struct {
	ParamTypes []ast.TypeExpr
	ParamNames []string
	ReturnType ast.TypeExpr
}

func (FunctionExport) exportNode() {}

// TypeExport describes an exported type name, usable in type position.
type TypeExport struct {
	Name       string
	TypeParams []ast.TypeParam
}

func (TypeExport) exportNode() {}

// ValueExport describes an exported constant binding.
type ValueExport struct {
	Name string
	Type ast.TypeExpr
}

func (ValueExport) exportNode() {}

// NamespaceExport is a module's full export set, bound as a unit by
// `import * as NS`.
type NamespaceExport struct {
	Specifier string
	Exports   map[string]Export
}

func (NamespaceExport) exportNode() {}
