package infer

import (
	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/diagnostics"
	"github.com/lumina-lang/lumina/internal/modulegraph"
	"github.com/lumina-lang/lumina/internal/symbols"
	"github.com/lumina-lang/lumina/internal/types"
)

type inferrer struct {
	ctx      *Context
	table    *symbols.Table
	bindings map[string]modulegraph.Export

	structs     map[string]*ast.StructDecl
	enums       map[string]*ast.EnumDecl
	typeAliases map[string]*ast.TypeDecl
	variantEnum map[string]string
	impls       map[string]map[string]bool

	diags []*diagnostics.Diagnostic
}

// Run performs C4 HM inference over prog, given C3's symbol table and C2's
// per-file module bindings, returning the side-tables C5/C6 consume.
func Run(prog *ast.Program, table *symbols.Table, bindings map[string]modulegraph.Export) (*Context, []*diagnostics.Diagnostic) {
	inf := &inferrer{
		ctx:         newContext(),
		table:       table,
		bindings:    bindings,
		structs:     map[string]*ast.StructDecl{},
		enums:       map[string]*ast.EnumDecl{},
		typeAliases: map[string]*ast.TypeDecl{},
		variantEnum: map[string]string{},
		impls:       map[string]map[string]bool{},
	}

	inf.collectImpls(prog)
	global := newEnv(nil)
	inf.registerSignatures(prog, global)
	inf.registerModuleBindings(global, bindings)

	for _, stmt := range prog.Statements {
		switch s := stmt.(type) {
		case *ast.FnDecl:
			inf.inferFnBody(s, global)
		case *ast.ImplDecl:
			for _, m := range s.Methods {
				inf.inferFnBody(m, global)
			}
		case *ast.Let, *ast.ExprStmt:
			inf.inferStmt(stmt, global, Unit)
		}
	}

	return inf.ctx, inf.diags
}

func (inf *inferrer) addf(code string, loc ast.Node, format string, args ...interface{}) {
	inf.diags = append(inf.diags, diagnostics.New(code, loc.Location(), format, args...))
}

func (inf *inferrer) unify(a, b types.Type, loc ast.Node) {
	ra := inf.ctx.Resolve(a)
	rb := inf.ctx.Resolve(b)
	s, err := types.Unify(ra, rb)
	if err != nil {
		inf.addf(diagnostics.CodeTypeError, loc, "%s", err.Error())
		return
	}
	inf.ctx.Subst = inf.ctx.Subst.Compose(s)
}

func (inf *inferrer) inferFnBody(fn *ast.FnDecl, parent *Env) {
	if fn.Extern || fn.Body == nil {
		return
	}
	fenv := newEnv(parent)

	// Reuse the exact Function stored by registerFnScheme rather than
	// re-resolving the signature from the AST a second time: callers that
	// reference fn before its body is inferred hold a Scheme built from
	// that Function's Params/Return Vars, so the body must unify against
	// those same Var identities for a pendingReturn function's return type
	// (or any param's free vars) to converge through the shared Subst.
	sch := inf.ctx.FnByName[fn.Name]
	sig, ok := sch.Type.(types.Function)
	if !ok {
		return
	}

	for i, p := range fn.Params {
		if i < len(sig.Params) {
			fenv.define(p.Name, types.Scheme{Type: sig.Params[i]})
		}
	}

	inf.inferBlock(fn.Body, fenv, sig.Return)

	inf.ctx.FnReturns[fn.Name] = inf.ctx.Resolve(sig.Return)
	resolved := make([]types.Type, len(sig.Params))
	for i, p := range sig.Params {
		resolved[i] = inf.ctx.Resolve(p)
	}
	inf.ctx.FnParams[fn.Name] = resolved
}

func (inf *inferrer) inferBlock(b *ast.Block, env *Env, expectedReturn types.Type) {
	block := newEnv(env)
	for _, stmt := range b.Statements {
		inf.inferStmt(stmt, block, expectedReturn)
	}
}

// inferBlockAsExpr infers b like inferBlock, except its trailing ExprStmt (if
// any) supplies a value, used for MatchExpr arm bodies written as a Block
//.
func (inf *inferrer) inferBlockAsExpr(b *ast.Block, env *Env, expectedReturn types.Type) types.Type {
	block := newEnv(env)
	var last types.Type = Unit
	for i, stmt := range b.Statements {
		if i == len(b.Statements)-1 {
			if es, ok := stmt.(*ast.ExprStmt); ok {
				last = inf.inferExpr(es.Expr, block)
				continue
			}
		}
		inf.inferStmt(stmt, block, expectedReturn)
	}
	return last
}

func (inf *inferrer) inferStmt(stmt ast.Statement, env *Env, expectedReturn types.Type) {
	switch s := stmt.(type) {
	case *ast.Let:
		var declared types.Type
		if s.TypeAnno != nil {
			declared = inf.resolveTypeExpr(s.TypeAnno, nil)
		}
		valType := inf.inferExpr(s.Value, env)
		if declared != nil {
			inf.unify(declared, valType, s)
			valType = declared
		}
		resolved := inf.ctx.Resolve(valType)
		gen := types.Generalize(env.freeVars(), resolved, nil)
		env.define(s.Name, gen)
		inf.ctx.LetTypes[locKey(s)] = resolved

	case *ast.Assign:
		targetType := inf.inferExpr(s.Target, env)
		valType := inf.inferExpr(s.Value, env)
		inf.unify(targetType, valType, s)

	case *ast.Return:
		var vt types.Type = Unit
		if s.Value != nil {
			vt = inf.inferExpr(s.Value, env)
		}
		inf.unify(expectedReturn, vt, s)

	case *ast.ExprStmt:
		inf.inferExpr(s.Expr, env)

	case *ast.Block:
		inf.inferBlock(s, env, expectedReturn)

	case *ast.If:
		cond := inf.inferExpr(s.Condition, env)
		inf.unify(cond, Bool, s)
		inf.inferBlock(s.Then, env, expectedReturn)
		if s.Else != nil {
			inf.inferBlock(s.Else, env, expectedReturn)
		}

	case *ast.While:
		cond := inf.inferExpr(s.Condition, env)
		inf.unify(cond, Bool, s)
		inf.inferBlock(s.Body, env, expectedReturn)

	case *ast.MatchStmt:
		inf.inferMatchStmt(s, env, expectedReturn)

	case *ast.FnDecl:
		inf.registerFnScheme(s, env)
		inf.inferFnBody(s, env)

	case *ast.StructDecl, *ast.EnumDecl, *ast.TypeDecl, *ast.TraitDecl, *ast.ImplDecl,
		*ast.ErrorNode, *ast.ImportStatement:
		// no value-level typing; C3/C5 own declaration-shape checks.
	}
}

func (inf *inferrer) inferMatchStmt(s *ast.MatchStmt, env *Env, expectedReturn types.Type) {
	scrut := inf.inferExpr(s.Scrutinee, env)
	for _, arm := range s.Arms {
		armEnv := newEnv(env)
		inf.inferPatternBindings(arm.Pattern, scrut, armEnv)
		if arm.Guard != nil {
			g := inf.inferExpr(arm.Guard, armEnv)
			inf.unify(g, Bool, s)
		}
		if block, ok := arm.Body.(*ast.Block); ok {
			inf.inferBlock(block, armEnv, expectedReturn)
		}
	}
}

func (inf *inferrer) inferPatternBindings(pattern ast.Pattern, scrutineeType types.Type, env *Env) {
	switch p := pattern.(type) {
	case *ast.WildcardPattern:
		// binds nothing

	case *ast.IdentifierPattern:
		env.define(p.Name, types.Scheme{Type: scrutineeType})

	case *ast.LiteralPattern:
		lt := inf.inferExpr(p.Value, env)
		inf.unify(lt, scrutineeType, p)

	case *ast.VariantPattern:
		resolved := inf.ctx.Resolve(scrutineeType)
		adt, isAdt := resolved.(types.Adt)
		var variant *ast.EnumVariant
		scope := map[string]types.Type{}
		if isAdt {
			if ed, ok := inf.enums[adt.Name]; ok {
				for i, tp := range ed.TypeParams {
					if i < len(adt.Args) {
						scope[tp.Name] = adt.Args[i]
					}
				}
				for i := range ed.Variants {
					if ed.Variants[i].Name == p.Variant {
						variant = &ed.Variants[i]
						break
					}
				}
			}
		}
		for i, bindName := range p.Bindings {
			bt := inf.ctx.fresh()
			var t types.Type = bt
			if variant != nil && i < len(variant.Params) {
				t = inf.resolveTypeExpr(variant.Params[i], scope)
			}
			if bindName != "_" {
				env.define(bindName, types.Scheme{Type: t})
			}
		}
	}
}
