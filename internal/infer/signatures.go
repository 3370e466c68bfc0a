package infer

import (
	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/modulegraph"
	"github.com/lumina-lang/lumina/internal/types"
)

// registerSignatures hoists every struct/enum/type-alias/function signature
// into the global Env before any body is walked, mirroring C3's hoist pass
// so mutual recursion type-checks.
func (inf *inferrer) registerSignatures(prog *ast.Program, global *Env) {
	for _, stmt := range prog.Statements {
		switch d := stmt.(type) {
		case *ast.StructDecl:
			inf.structs[d.Name] = d
		case *ast.EnumDecl:
			inf.enums[d.Name] = d
			for _, v := range d.Variants {
				inf.variantEnum[v.Name] = d.Name
			}
		case *ast.TypeDecl:
			inf.typeAliases[d.Name] = d
		}
	}

	for _, stmt := range prog.Statements {
		if fn, ok := stmt.(*ast.FnDecl); ok {
			inf.registerFnScheme(fn, global)
		}
	}
	for _, stmt := range prog.Statements {
		if impl, ok := stmt.(*ast.ImplDecl); ok {
			for _, m := range impl.Methods {
				inf.registerFnScheme(m, global)
			}
		}
	}
}

func (inf *inferrer) registerFnScheme(fn *ast.FnDecl, global *Env) {
	scope := typeParamScope(fn.TypeParams)

	params := make([]types.Type, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = inf.resolveTypeExpr(p.Type, scope)
	}

	var vars []string
	var bounds []types.Bound
	for _, tp := range fn.TypeParams {
		vars = append(vars, tp.Name)
		for _, b := range tp.Bounds {
			bounds = append(bounds, types.Bound{Var: tp.Name, Trait: b})
		}
	}

	var ret types.Type
	if fn.ReturnType != nil {
		ret = inf.resolveTypeExpr(fn.ReturnType, scope)
	} else {
		retVar := inf.ctx.fresh()
		ret = retVar
	}

	sch := types.Scheme{Vars: vars, Bounds: bounds, Type: types.Function{Params: params, Return: ret}}
	global.define(fn.Name, sch)
	inf.ctx.FnByName[fn.Name] = sch
	inf.ctx.FnParams[fn.Name] = params
}

// registerModuleBindings exposes C2's per-file bindings as callable/typed
// values; namespace exports stay outside Env and are resolved directly off
// inf.bindings by namespaceOf, matching how they're referenced (via Member/
// qualified-Call syntax, never as a bare identifier value).
func (inf *inferrer) registerModuleBindings(global *Env, bindings map[string]modulegraph.Export) {
	for name, exp := range bindings {
		switch e := exp.(type) {
		case modulegraph.FunctionExport:
			global.define(name, types.Scheme{Type: inf.functionExportType(e)})
		case modulegraph.ValueExport:
			global.define(name, types.Scheme{Type: inf.resolveTypeExpr(e.Type, nil)})
		}
	}
}

func (inf *inferrer) functionExportType(e modulegraph.FunctionExport) types.Type {
	params := make([]types.Type, len(e.ParamTypes))
	for i, pt := range e.ParamTypes {
		params[i] = inf.resolveTypeExpr(pt, nil)
	}
	var ret types.Type = Unit
	if e.ReturnType != nil {
		ret = inf.resolveTypeExpr(e.ReturnType, nil)
	}
	return types.Function{Params: params, Return: ret}
}

// collectImpls records which concrete type names implement which trait, used
// to check bounds at generic-call instantiation.
func (inf *inferrer) collectImpls(prog *ast.Program) {
	for _, stmt := range prog.Statements {
		impl, ok := stmt.(*ast.ImplDecl)
		if !ok {
			continue
		}
		name := typeExprName(impl.TargetType)
		if name == "" {
			continue
		}
		if inf.impls[impl.TraitName] == nil {
			inf.impls[impl.TraitName] = map[string]bool{}
		}
		inf.impls[impl.TraitName][name] = true
	}
}

func (inf *inferrer) implSatisfied(trait string, concrete types.Type) bool {
	var name string
	switch t := concrete.(type) {
	case types.Adt:
		name = t.Name
	case types.Primitive:
		name = t.Name
	default:
		return true
	}
	return inf.impls[trait] != nil && inf.impls[trait][name]
}
