package infer

import (
	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/diagnostics"
	"github.com/lumina-lang/lumina/internal/modulegraph"
	"github.com/lumina-lang/lumina/internal/types"
)

// namespaceOf reports whether target is a bare identifier bound to a module
// namespace import (`import * as NS`, or a `@std/...` prelude namespace).
func (inf *inferrer) namespaceOf(target ast.Expression) (modulegraph.NamespaceExport, bool) {
	id, ok := target.(*ast.Identifier)
	if !ok {
		return modulegraph.NamespaceExport{}, false
	}
	exp, ok := inf.bindings[id.Name]
	if !ok {
		return modulegraph.NamespaceExport{}, false
	}
	ns, ok := exp.(modulegraph.NamespaceExport)
	return ns, ok
}

// inferCallLike handles a Call node and its pipe-desugared equivalent
// uniformly.
func (inf *inferrer) inferCallLike(calleeExpr ast.Expression, qualifier string, typeArgs []ast.TypeExpr, args []ast.Expression, loc ast.Node, env *Env) types.Type {
	argTypes := make([]types.Type, len(args))
	for i, a := range args {
		argTypes[i] = inf.inferExpr(a, env)
	}

	if qualifier != "" {
		return inf.inferQualifiedCall(qualifier, calleeExpr, argTypes, loc)
	}

	if id, ok := calleeExpr.(*ast.Identifier); ok {
		if sch, ok2 := env.lookup(id.Name); ok2 {
			return inf.inferSchemeCall(id.Name, sch, argTypes, loc)
		}
		return inf.ctx.fresh()
	}

	if mem, ok := calleeExpr.(*ast.Member); ok {
		if ns, ok2 := inf.namespaceOf(mem.Target); ok2 {
			return inf.inferNamespaceCall(ns, mem.Name, argTypes, loc)
		}
	}

	calleeType := inf.ctx.Resolve(inf.inferExpr(calleeExpr, env))
	return inf.applyFunctionType(calleeType, argTypes, loc)
}

func (inf *inferrer) inferSchemeCall(name string, sch types.Scheme, argTypes []types.Type, loc ast.Node) types.Type {
	var freshVars []string
	inst, bounds := types.Instantiate(sch, func() string {
		n := inf.ctx.freshName()
		freshVars = append(freshVars, n)
		return n
	})
	fn, ok := inst.(types.Function)
	if !ok {
		return inf.applyFunctionType(inst, argTypes, loc)
	}

	if len(fn.Params) != len(argTypes) {
		inf.addf(diagnostics.CodeArgTypeMismatch, loc, "%s expects %d argument(s), got %d", name, len(fn.Params), len(argTypes))
	}
	n := len(fn.Params)
	if len(argTypes) < n {
		n = len(argTypes)
	}
	for i := 0; i < n; i++ {
		inf.unify(fn.Params[i], argTypes[i], loc)
	}

	for v, trait := range bounds {
		concrete := inf.ctx.Resolve(types.Var{Name: v})
		if !inf.implSatisfied(trait, concrete) {
			inf.addf(diagnostics.CodeBoundMismatch, loc, "type %s does not implement %s", concrete.String(), trait)
		}
	}

	typeArgs := make([]types.Type, 0, len(sch.Vars))
	for _, v := range freshVars {
		typeArgs = append(typeArgs, inf.ctx.Resolve(types.Var{Name: v}))
	}
	if len(sch.Vars) > 0 {
		inf.ctx.InferredCalls[loc] = CallInstantiation{FnName: name, TypeArgs: typeArgs}
	}

	return inf.ctx.Resolve(fn.Return)
}

func (inf *inferrer) inferNamespaceCall(ns modulegraph.NamespaceExport, member string, argTypes []types.Type, loc ast.Node) types.Type {
	exp, ok := ns.Exports[member]
	if !ok {
		inf.addf(diagnostics.CodeUnknownMember, loc, "unknown member %q of %s", member, ns.Specifier)
		return inf.ctx.fresh()
	}
	fe, ok := exp.(modulegraph.FunctionExport)
	if !ok {
		inf.addf(diagnostics.CodeUnresolvedMember, loc, "%s.%s is not callable", ns.Specifier, member)
		return inf.ctx.fresh()
	}
	params := make([]types.Type, len(fe.ParamTypes))
	for i, pt := range fe.ParamTypes {
		params[i] = inf.resolveTypeExpr(pt, nil)
	}
	n := len(params)
	if len(argTypes) < n {
		n = len(argTypes)
	}
	for i := 0; i < n; i++ {
		inf.unify(params[i], argTypes[i], loc)
	}
	if fe.ReturnType == nil {
		return Unit
	}
	return inf.resolveTypeExpr(fe.ReturnType, nil)
}

// inferQualifiedCall resolves a `Qualifier.name(args)` call where the parser
// could not tell at parse time whether Qualifier names a module namespace or
// an enum.
func (inf *inferrer) inferQualifiedCall(qualifier string, calleeExpr ast.Expression, argTypes []types.Type, loc ast.Node) types.Type {
	name := ""
	if id, ok := calleeExpr.(*ast.Identifier); ok {
		name = id.Name
	}

	if exp, ok := inf.bindings[qualifier]; ok {
		if ns, ok2 := exp.(modulegraph.NamespaceExport); ok2 {
			return inf.inferNamespaceCall(ns, name, argTypes, loc)
		}
	}
	if ed, ok := inf.enums[qualifier]; ok {
		return inf.inferVariantCall(ed, name, argTypes, loc)
	}
	inf.addf(diagnostics.CodeUnknownQualifier, loc, "unknown qualifier %q", qualifier)
	return inf.ctx.fresh()
}

func (inf *inferrer) applyFunctionType(calleeType types.Type, argTypes []types.Type, loc ast.Node) types.Type {
	if fn, ok := calleeType.(types.Function); ok {
		n := len(fn.Params)
		if len(argTypes) < n {
			n = len(argTypes)
		}
		for i := 0; i < n; i++ {
			inf.unify(fn.Params[i], argTypes[i], loc)
		}
		return fn.Return
	}
	result := inf.ctx.fresh()
	inf.unify(calleeType, types.Function{Params: argTypes, Return: result}, loc)
	return result
}
