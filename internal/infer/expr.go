package infer

import (
	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/diagnostics"
	"github.com/lumina-lang/lumina/internal/modulegraph"
	"github.com/lumina-lang/lumina/internal/types"
)

func (inf *inferrer) inferExpr(n ast.Expression, env *Env) types.Type {
	t := inf.inferExprRaw(n, env)
	inf.ctx.ExprTypes[locKey(n)] = inf.ctx.Resolve(t)
	return t
}

func (inf *inferrer) inferExprRaw(n ast.Expression, env *Env) types.Type {
	switch e := n.(type) {
	case *ast.Number:
		if e.IsFloat {
			return F64
		}
		return I64

	case *ast.String:
		return Str

	case *ast.Boolean:
		return Bool

	case *ast.Identifier:
		if sch, ok := env.lookup(e.Name); ok {
			inst, _ := types.Instantiate(sch, inf.ctx.freshName)
			return inst
		}
		return inf.ctx.fresh()

	case *ast.Binary:
		return inf.inferBinary(e, env)

	case *ast.Unary:
		operand := inf.inferExpr(e.Operand, env)
		switch e.Op {
		case "!":
			inf.unify(operand, Bool, e)
			return Bool
		default:
			return operand
		}

	case *ast.Call:
		return inf.inferCallLike(e.Callee, e.Qualifier, e.TypeArgs, e.Args, e, env)

	case *ast.Member:
		return inf.inferMember(e, env)

	case *ast.Index:
		target := inf.ctx.Resolve(inf.inferExpr(e.Target, env))
		idx := inf.inferExpr(e.Index, env)
		inf.unify(idx, I64, e)
		if arr, ok := target.(types.Array); ok {
			return arr.Elem
		}
		elem := inf.ctx.fresh()
		inf.unify(target, types.Array{Elem: elem, Size: inf.ctx.fresh()}, e)
		return elem

	case *ast.StructLiteral:
		return inf.inferStructLiteral(e, env)

	case *ast.Enum:
		return inf.inferEnumExpr(e, env)

	case *ast.MatchExpr:
		return inf.inferMatchExprNode(e, env)

	case *ast.IsExpr:
		inf.inferExpr(e.Value, env)
		return Bool

	case *ast.ArrayLiteral:
		return inf.inferArrayLiteral(e, env)

	case *ast.ErrorNode:
		return inf.ctx.fresh()
	}
	return inf.ctx.fresh()
}

func (inf *inferrer) inferBinary(e *ast.Binary, env *Env) types.Type {
	if e.Op == "|>" {
		var callee ast.Expression
		qualifier := ""
		var typeArgs []ast.TypeExpr
		var explicit []ast.Expression
		if call, ok := e.Right.(*ast.Call); ok {
			callee = call.Callee
			qualifier = call.Qualifier
			typeArgs = call.TypeArgs
			explicit = call.Args
		} else {
			callee = e.Right
		}
		args := append([]ast.Expression{e.Left}, explicit...)
		return inf.inferCallLike(callee, qualifier, typeArgs, args, e, env)
	}

	left := inf.inferExpr(e.Left, env)
	right := inf.inferExpr(e.Right, env)

	switch e.Op {
	case "==", "!=", "<", "<=", ">", ">=":
		inf.unify(left, right, e)
		return Bool
	case "&&", "||":
		inf.unify(left, Bool, e)
		inf.unify(right, Bool, e)
		return Bool
	case "+":
		lr := inf.ctx.Resolve(left)
		if lr == Str {
			inf.unify(right, Str, e)
			return Str
		}
		inf.unify(left, right, e)
		return inf.ctx.Resolve(left)
	default:
		inf.unify(left, right, e)
		return inf.ctx.Resolve(left)
	}
}

func (inf *inferrer) inferMember(n *ast.Member, env *Env) types.Type {
	if ns, ok := inf.namespaceOf(n.Target); ok {
		if exp, ok2 := ns.Exports[n.Name]; ok2 {
			switch e := exp.(type) {
			case modulegraph.ValueExport:
				return inf.resolveTypeExpr(e.Type, nil)
			case modulegraph.FunctionExport:
				return inf.functionExportType(e)
			}
		}
		inf.addf(diagnostics.CodeUnknownMember, n, "unknown member %q of %s", n.Name, ns.Specifier)
		return inf.ctx.fresh()
	}

	targetType := inf.ctx.Resolve(inf.inferExpr(n.Target, env))
	if adt, ok := targetType.(types.Adt); ok {
		if sd, ok2 := inf.structs[adt.Name]; ok2 {
			scope := map[string]types.Type{}
			for i, tp := range sd.TypeParams {
				if i < len(adt.Args) {
					scope[tp.Name] = adt.Args[i]
				}
			}
			for _, f := range sd.Fields {
				if f.Name == n.Name {
					return inf.resolveTypeExpr(f.Type, scope)
				}
			}
		}
	}
	return inf.ctx.fresh()
}

func (inf *inferrer) inferStructLiteral(n *ast.StructLiteral, env *Env) types.Type {
	sd, ok := inf.structs[n.TypeName]
	if !ok {
		for _, f := range n.Fields {
			inf.inferExpr(f.Value, env)
		}
		return inf.ctx.fresh()
	}
	scope := map[string]types.Type{}
	args := make([]types.Type, len(sd.TypeParams))
	for i, tp := range sd.TypeParams {
		v := inf.ctx.fresh()
		scope[tp.Name] = v
		args[i] = v
	}
	fieldTypes := map[string]ast.TypeExpr{}
	for _, f := range sd.Fields {
		fieldTypes[f.Name] = f.Type
	}
	for _, f := range n.Fields {
		valType := inf.inferExpr(f.Value, env)
		if declared, ok := fieldTypes[f.Name]; ok {
			inf.unify(inf.resolveTypeExpr(declared, scope), valType, n)
		}
	}
	return types.Adt{Name: n.TypeName, Args: args}
}

func (inf *inferrer) inferEnumExpr(n *ast.Enum, env *Env) types.Type {
	argTypes := make([]types.Type, len(n.Args))
	for i, a := range n.Args {
		argTypes[i] = inf.inferExpr(a, env)
	}
	ed, ok := inf.enums[n.EnumName]
	if !ok {
		return inf.ctx.fresh()
	}
	return inf.inferVariantCall(ed, n.Variant, argTypes, n)
}

func (inf *inferrer) inferVariantCall(ed *ast.EnumDecl, variantName string, argTypes []types.Type, loc ast.Node) types.Type {
	var variant *ast.EnumVariant
	for i := range ed.Variants {
		if ed.Variants[i].Name == variantName {
			variant = &ed.Variants[i]
			break
		}
	}
	if variant == nil {
		inf.addf(diagnostics.CodeQualifierMismatch, loc, "enum %s has no variant %s", ed.Name, variantName)
		return inf.ctx.fresh()
	}
	scope := map[string]types.Type{}
	args := make([]types.Type, len(ed.TypeParams))
	for i, tp := range ed.TypeParams {
		v := inf.ctx.fresh()
		scope[tp.Name] = v
		args[i] = v
	}
	for i, pt := range variant.Params {
		if i >= len(argTypes) {
			break
		}
		inf.unify(inf.resolveTypeExpr(pt, scope), argTypes[i], loc)
	}
	return types.Adt{Name: ed.Name, Args: args}
}

func (inf *inferrer) inferMatchExprNode(n *ast.MatchExpr, env *Env) types.Type {
	scrut := inf.inferExpr(n.Scrutinee, env)
	result := inf.ctx.fresh()
	for _, arm := range n.Arms {
		armEnv := newEnv(env)
		inf.inferPatternBindings(arm.Pattern, scrut, armEnv)
		if arm.Guard != nil {
			g := inf.inferExpr(arm.Guard, armEnv)
			inf.unify(g, Bool, n)
		}
		switch b := arm.Body.(type) {
		case *ast.Block:
			bodyType := inf.inferBlockAsExpr(b, armEnv, result)
			inf.unify(result, bodyType, n)
		case ast.Expression:
			bodyType := inf.inferExpr(b, armEnv)
			inf.unify(result, bodyType, n)
		}
	}
	return result
}

func (inf *inferrer) inferArrayLiteral(n *ast.ArrayLiteral, env *Env) types.Type {
	if n.Repeat != nil {
		elem := inf.inferExpr(n.Repeat, env)
		var size types.Type = inf.ctx.fresh()
		if n.Count != nil {
			if num, ok := n.Count.(*ast.Number); ok {
				if cv, ok2 := inf.resolveArraySize(num.Raw, nil).(types.ConstInt); ok2 {
					size = cv
				}
			} else {
				inf.inferExpr(n.Count, env)
			}
		}
		return types.Array{Elem: elem, Size: size}
	}
	if len(n.Elements) == 0 {
		return types.Array{Elem: inf.ctx.fresh(), Size: types.ConstInt{Value: 0}}
	}
	elem := inf.inferExpr(n.Elements[0], env)
	for _, el := range n.Elements[1:] {
		t := inf.inferExpr(el, env)
		inf.unify(elem, t, n)
	}
	return types.Array{Elem: inf.ctx.Resolve(elem), Size: types.ConstInt{Value: int64(len(n.Elements))}}
}
