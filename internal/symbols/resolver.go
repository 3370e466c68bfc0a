package symbols

import (
	"github.com/agext/levenshtein"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/diagnostics"
	"github.com/lumina-lang/lumina/internal/modulegraph"
)

type resolver struct {
	table *Table
	diags []*diagnostics.Diagnostic
}

// Resolve runs the C3 two-pass resolver over prog: hoist every top-level
// declaration, then walk bodies tracking scope, definite assignment, and
// narrowing.
func Resolve(prog *ast.Program, moduleBindings map[string]modulegraph.Export) (*Table, []*diagnostics.Diagnostic) {
	r := &resolver{table: newTable()}
	r.injectModuleBindings(moduleBindings)
	r.hoist(prog)
	for _, stmt := range prog.Statements {
		r.walkTopLevel(stmt)
	}
	r.checkUnused(r.table.Global)
	return r.table, r.diags
}

func (r *resolver) injectModuleBindings(bindings map[string]modulegraph.Export) {
	for name, exp := range bindings {
		switch exp.(type) {
		case modulegraph.NamespaceExport:
			r.table.Global.DefineAssigned(&Symbol{Name: name, Kind: KindModule})
		case modulegraph.TypeExport:
			r.table.Global.DefineAssigned(&Symbol{Name: name, Kind: KindType})
		default:
			r.table.Global.DefineAssigned(&Symbol{Name: name, Kind: KindFunc})
		}
	}
}

func (r *resolver) addf(code string, loc ast.Node, format string, args ...interface{}) *diagnostics.Diagnostic {
	d := diagnostics.New(code, loc.Location(), format, args...)
	r.diags = append(r.diags, d)
	return d
}

// hoist defines every top-level TypeDecl/StructDecl/EnumDecl/FnDecl/TraitDecl
// in the global scope before any body is walked.
func (r *resolver) hoist(prog *ast.Program) {
	for _, stmt := range prog.Statements {
		switch n := stmt.(type) {
		case *ast.FnDecl:
			r.hoistName(n.Name, KindFunc, n)
			r.table.Global.symbols[n.Name].Pending = n.ReturnType == nil
			r.table.Fns[n.Name] = n
		case *ast.StructDecl:
			r.hoistName(n.Name, KindStruct, n)
			r.table.Structs[n.Name] = n
		case *ast.EnumDecl:
			r.hoistName(n.Name, KindEnum, n)
			r.table.Enums[n.Name] = n
		case *ast.TypeDecl:
			r.hoistName(n.Name, KindType, n)
			r.table.Types[n.Name] = n
		case *ast.TraitDecl:
			r.hoistName(n.Name, KindTrait, n)
			r.table.Traits[n.Name] = n
		}
	}
}

// hoistName defines name at the given kind in the global scope, unless it
// collides with a namespace import already injected by injectModuleBindings
// (`import * as io` followed by `enum io { ... }`): a namespace binding and
// a declaration of the same name are looked up through different paths
// (member access vs. bare identifier/qualifier), so they coexist rather
// than colliding.
func (r *resolver) hoistName(name string, kind Kind, node ast.Node) {
	if existing, ok := r.table.Global.Local(name); ok {
		if existing.Kind == KindModule {
			return
		}
		r.addf(diagnostics.CodeRedeclaration, node, "%q is already declared", name).
			WithRelated(existing.Loc, "previous declaration here")
		return
	}
	r.table.Global.DefineAssigned(&Symbol{Name: name, Kind: kind, Loc: node.Location()})
}

func (r *resolver) walkTopLevel(stmt ast.Statement) {
	switch n := stmt.(type) {
	case *ast.FnDecl:
		r.walkFnDecl(n)
	case *ast.ImplDecl:
		for _, m := range n.Methods {
			r.walkFnDecl(m)
		}
	case *ast.Let:
		r.walkExpr(r.table.Global, n.Value)
		r.defineLet(r.table.Global, n)
	case *ast.ExprStmt:
		r.walkExpr(r.table.Global, n.Expr)
	}
}

func (r *resolver) walkFnDecl(fn *ast.FnDecl) {
	scope := NewScope(r.table.Global, ScopeFunction)
	for i := range fn.Params {
		p := &fn.Params[i]
		scope.DefineAssigned(&Symbol{Name: p.Name, Kind: KindVar, Mutable: p.Ref, Loc: fn.Loc})
	}
	if fn.Body != nil {
		r.walkBlockIn(scope, fn.Body)
	}
	r.checkUnused(scope)
}

// walkBlockIn walks block's statements directly in scope (used for function
// and while bodies, which don't need a fresh child scope of their own since
// the caller already created one).
func (r *resolver) walkBlockIn(scope *Scope, block *ast.Block) {
	for _, stmt := range block.Statements {
		r.walkStmt(scope, stmt)
	}
}

// walkBlock creates and walks a child scope for block, returning it so the
// caller can inspect its definite-assignment state (e.g. to merge branches).
func (r *resolver) walkBlock(parent *Scope, block *ast.Block) *Scope {
	scope := NewScope(parent, ScopeBlock)
	r.walkBlockIn(scope, block)
	r.checkUnused(scope)
	return scope
}

func (r *resolver) walkStmt(scope *Scope, stmt ast.Statement) {
	switch n := stmt.(type) {
	case *ast.Let:
		r.walkExpr(scope, n.Value)
		r.defineLet(scope, n)
	case *ast.Assign:
		r.walkExpr(scope, n.Value)
		r.walkAssignTarget(scope, n.Target)
	case *ast.Return:
		if n.Value != nil {
			r.walkExpr(scope, n.Value)
		}
	case *ast.ExprStmt:
		r.walkExpr(scope, n.Expr)
	case *ast.Block:
		r.walkBlock(scope, n)
	case *ast.If:
		r.walkExpr(scope, n.Condition)
		thenScope := NewScope(scope, ScopeBlock)
		r.applyNarrowing(thenScope, n.Condition, false)
		r.walkBlockIn(thenScope, n.Then)
		r.checkUnused(thenScope)
		branches := []*Scope{thenScope}
		if n.Else != nil {
			elseScope := NewScope(scope, ScopeBlock)
			r.applyNarrowing(elseScope, n.Condition, true)
			r.walkBlockIn(elseScope, n.Else)
			r.checkUnused(elseScope)
			branches = append(branches, elseScope)
		} else {
			branches = append(branches, scope)
		}
		for name := range intersectAssigned(branches...) {
			scope.MarkAssigned(name)
		}
	case *ast.While:
		r.walkExpr(scope, n.Condition)
		loopScope := NewScope(scope, ScopeBlock)
		r.walkBlockIn(loopScope, n.Body)
		r.checkUnused(loopScope)
	case *ast.MatchStmt:
		r.walkExpr(scope, n.Scrutinee)
		for _, arm := range n.Arms {
			armScope := NewScope(scope, ScopeMatchArm)
			r.bindPattern(armScope, arm.Pattern)
			if arm.Guard != nil {
				r.walkExpr(armScope, arm.Guard)
			}
			if body, ok := arm.Body.(*ast.Block); ok {
				r.walkBlockIn(armScope, body)
			}
			r.checkUnused(armScope)
		}
	}
}

func (r *resolver) defineLet(scope *Scope, n *ast.Let) {
	if existing, ok := scope.Local(n.Name); ok {
		r.addf(diagnostics.CodeShadowedBinding, n, "%q shadows a binding in the same scope", n.Name).
			WithRelated(existing.Loc, "previous declaration here")
	} else if _, outerScope, found := scope.Lookup(n.Name); found && outerScope != scope {
		code := diagnostics.CodeShadowedBinding
		if sym, _, _ := scope.Lookup(n.Name); sym != nil && sym.Kind == KindModule {
			code = diagnostics.CodeShadowedImport
		}
		r.addf(code, n, "%q shadows an outer binding", n.Name)
	}
	scope.DefineAssigned(&Symbol{Name: n.Name, Kind: KindVar, Mutable: n.Mutable, Loc: n.Loc})
}

func (r *resolver) walkAssignTarget(scope *Scope, target ast.Expression) {
	switch t := target.(type) {
	case *ast.Identifier:
		sym, _, ok := scope.Lookup(t.Name)
		if !ok {
			r.suggestUnknown(t)
			return
		}
		sym.Written = true
		if sym.Kind == KindVar && !sym.Mutable {
			r.addf(diagnostics.CodeImmutableReassignment, t, "cannot assign to immutable binding %q", t.Name)
		}
		scope.MarkAssigned(t.Name)
	case *ast.Member:
		r.walkExpr(scope, t.Target)
	case *ast.Index:
		r.walkExpr(scope, t.Target)
		r.walkExpr(scope, t.Index)
	}
}

func (r *resolver) bindPattern(scope *Scope, pat ast.Pattern) {
	switch p := pat.(type) {
	case *ast.IdentifierPattern:
		scope.DefineAssigned(&Symbol{Name: p.Name, Kind: KindVar, Mutable: true, Loc: p.Loc})
	case *ast.VariantPattern:
		for _, b := range p.Bindings {
			if b == "_" {
				continue
			}
			scope.DefineAssigned(&Symbol{Name: b, Kind: KindVar, Mutable: true, Loc: p.Loc})
		}
	}
}

// applyNarrowing records the narrowing fact from a direct `x is
// EnumName.Variant` condition into scope. negate=true applies the else-arm
// narrowing, which  doesn't give an enum-level form for (a single
// variant test has no useful narrowing on the negated branch across a sum
// type with more than two variants), so only the positive arm is narrowed.
func (r *resolver) applyNarrowing(scope *Scope, cond ast.Expression, negate bool) {
	if negate {
		return
	}
	if is, ok := cond.(*ast.IsExpr); ok {
		if ident, ok := is.Value.(*ast.Identifier); ok {
			scope.SetNarrow(ident.Name, is.EnumName, is.Variant)
		}
	}
}

func (r *resolver) walkExpr(scope *Scope, expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Identifier:
		r.resolveIdentifier(scope, e)
	case *ast.Binary:
		r.walkExpr(scope, e.Left)
		if e.Op == "|>" {
			// e.Right's explicit Args don't include the piped value, so
			// walking it as an ordinary *ast.Call would run checkRefArgs
			// against the wrong parameter offsets; walk its pieces directly
			// and let checkPipeRefArgs check the desugared call instead.
			r.walkPipeRight(scope, e.Right)
			r.checkPipeRefArgs(scope, e)
		} else {
			r.walkExpr(scope, e.Right)
		}
	case *ast.Unary:
		r.walkExpr(scope, e.Operand)
	case *ast.Call:
		r.walkExpr(scope, e.Callee)
		for _, a := range e.Args {
			r.walkExpr(scope, a)
		}
		r.checkRefArgs(scope, e)
	case *ast.Member:
		r.walkExpr(scope, e.Target)
	case *ast.Index:
		r.walkExpr(scope, e.Target)
		r.walkExpr(scope, e.Index)
	case *ast.StructLiteral:
		for _, f := range e.Fields {
			r.walkExpr(scope, f.Value)
		}
	case *ast.Enum:
		for _, a := range e.Args {
			r.walkExpr(scope, a)
		}
	case *ast.MatchExpr:
		r.walkExpr(scope, e.Scrutinee)
		for _, arm := range e.Arms {
			armScope := NewScope(scope, ScopeMatchArm)
			r.bindPattern(armScope, arm.Pattern)
			if arm.Guard != nil {
				r.walkExpr(armScope, arm.Guard)
			}
			if body, ok := arm.Body.(ast.Expression); ok {
				r.walkExpr(armScope, body)
			}
			r.checkUnused(armScope)
		}
	case *ast.IsExpr:
		r.walkExpr(scope, e.Value)
	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			r.walkExpr(scope, el)
		}
		if e.Repeat != nil {
			r.walkExpr(scope, e.Repeat)
		}
		if e.Count != nil {
			r.walkExpr(scope, e.Count)
		}
	}
}

func (r *resolver) resolveIdentifier(scope *Scope, id *ast.Identifier) {
	sym, _, ok := scope.Lookup(id.Name)
	if !ok {
		r.suggestUnknown(id)
		return
	}
	sym.Read = true
	r.table.Resolutions[id] = sym
}

func (r *resolver) suggestUnknown(id *ast.Identifier) {
	best, bestDist := "", 3
	params := levenshtein.NewParams()
	for _, name := range r.table.Global.Names() {
		d := levenshtein.Distance(id.Name, name, params)
		if d < bestDist {
			best, bestDist = name, d
		}
	}
	if best != "" {
		r.addf(diagnostics.CodeUnknownIdentifier, id, "unknown identifier %q, did you mean %q?", id.Name, best)
	} else {
		r.addf(diagnostics.CodeUnknownIdentifier, id, "unknown identifier %q", id.Name)
	}
}

// checkRefArgs checks that arguments passed to a `ref` parameter of a
// locally-declared function are lvalues bound to a mutable binding.
func (r *resolver) checkRefArgs(scope *Scope, call *ast.Call) {
	r.checkRefArgsAgainst(scope, call.Callee, call.Args)
}

// walkPipeRight walks the right-hand side of a pipe without invoking
// checkRefArgs on it: if it's a Call, its own Args are only the explicit
// (non-piped) arguments, offset by one from their real parameter positions
// in the desugared call, so ref-checking happens separately in
// checkPipeRefArgs against the fully reconstructed argument list.
func (r *resolver) walkPipeRight(scope *Scope, right ast.Expression) {
	if call, ok := right.(*ast.Call); ok {
		r.walkExpr(scope, call.Callee)
		for _, a := range call.Args {
			r.walkExpr(scope, a)
		}
		return
	}
	r.walkExpr(scope, right)
}

// checkPipeRefArgs reconstructs the desugared call `a |> f(explicit...)`
// becomes — callee f, args [a, explicit...] — and runs the same ref-lvalue
// and ref-mutability checks against it that a literal call to f(a,
// explicit...) would get, since `|>` is pure sugar for that call.
func (r *resolver) checkPipeRefArgs(scope *Scope, pipe *ast.Binary) {
	callee := pipe.Right
	var explicit []ast.Expression
	if call, ok := pipe.Right.(*ast.Call); ok {
		callee = call.Callee
		explicit = call.Args
	}
	args := append([]ast.Expression{pipe.Left}, explicit...)
	r.checkRefArgsAgainst(scope, callee, args)
}

func (r *resolver) checkRefArgsAgainst(scope *Scope, calleeExpr ast.Expression, args []ast.Expression) {
	callee, ok := calleeExpr.(*ast.Identifier)
	if !ok {
		return
	}
	fn, ok := r.table.Fns[callee.Name]
	if !ok {
		return
	}
	for i, p := range fn.Params {
		if !p.Ref || i >= len(args) {
			continue
		}
		arg := args[i]
		ident, ok := arg.(*ast.Identifier)
		if !ok {
			r.addf(diagnostics.CodeRefLvalueRequired, arg, "argument %d of %q must be an lvalue", i+1, callee.Name)
			continue
		}
		sym, _, found := scope.Lookup(ident.Name)
		if found && !sym.Mutable {
			r.addf(diagnostics.CodeRefMutRequired, arg, "argument %d of %q must be a mutable binding", i+1, callee.Name)
		}
	}
}

// checkUnused warns on bindings that were never read and don't start with
// `_`.
func (r *resolver) checkUnused(scope *Scope) {
	for name, sym := range scope.All() {
		if sym.Kind != KindVar || sym.Read || len(name) == 0 || name[0] == '_' {
			continue
		}
		r.diags = append(r.diags, diagnostics.Warning(diagnostics.CodeLint, sym.Loc, "%q is never used", name))
	}
}
