package infer

import (
	"strconv"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/types"
)

// resolveTypeExpr converts a source-level TypeExpr into a types.Type, fresh
// per hole, substituting scope for any name bound to a generic/const-generic
// parameter.
func (inf *inferrer) resolveTypeExpr(te ast.TypeExpr, scope map[string]types.Type) types.Type {
	switch t := te.(type) {
	case nil:
		return inf.ctx.fresh()

	case *ast.TypeHole:
		return inf.ctx.fresh()

	case *ast.NamedType:
		if scope != nil {
			if v, ok := scope[t.Name]; ok {
				return v
			}
		}
		if primitiveNames[t.Name] {
			return types.Primitive{Name: t.Name}
		}
		if alias, ok := inf.typeAliases[t.Name]; ok {
			return inf.expandAlias(alias, t.Args, scope)
		}
		args := make([]types.Type, len(t.Args))
		for i, a := range t.Args {
			args[i] = inf.resolveTypeExpr(a, scope)
		}
		return types.Adt{Name: t.Name, Args: args}

	case *ast.FunctionType:
		params := make([]types.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = inf.resolveTypeExpr(p, scope)
		}
		return types.Function{Params: params, Return: inf.resolveTypeExpr(t.Return, scope)}

	case *ast.ArrayType:
		return types.Array{Elem: inf.resolveTypeExpr(t.Elem, scope), Size: inf.resolveArraySize(t.SizeExpr, scope)}
	}
	return inf.ctx.fresh()
}

func (inf *inferrer) resolveArraySize(sizeExpr string, scope map[string]types.Type) types.Type {
	if n, err := strconv.ParseInt(sizeExpr, 10, 64); err == nil {
		return types.ConstInt{Value: n}
	}
	if scope != nil {
		if v, ok := scope[sizeExpr]; ok {
			return v
		}
	}
	return types.Var{Name: sizeExpr}
}

// expandAlias inlines a `type Name<Params> = Underlying` declaration once;
// Lumina's grammar forbids a type alias naming itself in Underlying (no
// recursive aliases), so one level of substitution is enough.
func (inf *inferrer) expandAlias(alias *ast.TypeDecl, args []ast.TypeExpr, outerScope map[string]types.Type) types.Type {
	inner := map[string]types.Type{}
	for i, tp := range alias.TypeParams {
		if i < len(args) {
			inner[tp.Name] = inf.resolveTypeExpr(args[i], outerScope)
		} else {
			inner[tp.Name] = inf.ctx.fresh()
		}
	}
	return inf.resolveTypeExpr(alias.Underlying, inner)
}

func typeParamScope(tps []ast.TypeParam) map[string]types.Type {
	scope := map[string]types.Type{}
	for _, tp := range tps {
		scope[tp.Name] = types.Var{Name: tp.Name}
	}
	return scope
}

func typeExprName(te ast.TypeExpr) string {
	if t, ok := te.(*ast.NamedType); ok {
		return t.Name
	}
	return ""
}
