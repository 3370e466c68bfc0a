package mono

import (
	"strconv"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/token"
	"github.com/lumina-lang/lumina/internal/types"
)

// typeToTypeExpr renders an inferred types.Type back into the ast.TypeExpr
// surface syntax, so a monomorphized FnDecl's Params/ReturnType read as
// ordinary concrete annotations to every later stage.
func typeToTypeExpr(t types.Type, loc token.Location) ast.TypeExpr {
	switch v := t.(type) {
	case types.Primitive:
		return &ast.NamedType{Loc: loc, Name: v.Name}
	case types.Adt:
		args := make([]ast.TypeExpr, len(v.Args))
		for i, a := range v.Args {
			args[i] = typeToTypeExpr(a, loc)
		}
		return &ast.NamedType{Loc: loc, Name: v.Name, Args: args}
	case types.Function:
		params := make([]ast.TypeExpr, len(v.Params))
		for i, p := range v.Params {
			params[i] = typeToTypeExpr(p, loc)
		}
		return &ast.FunctionType{Loc: loc, Params: params, Return: typeToTypeExpr(v.Return, loc)}
	case types.Array:
		size := "_"
		if ci, ok := v.Size.(types.ConstInt); ok {
			size = strconv.FormatInt(ci.Value, 10)
		}
		return &ast.ArrayType{Loc: loc, Elem: typeToTypeExpr(v.Elem, loc), SizeExpr: size}
	default:
		return &ast.TypeHole{Loc: loc}
	}
}

// mangleSuffix builds the `_arg1_arg2_...` suffix  requires,
// sanitizing each argument's printed form into an identifier-safe fragment.
func mangleSuffix(args []types.Type) string {
	out := ""
	for _, a := range args {
		out += "_" + sanitize(a.String())
	}
	return out
}

func sanitize(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b = append(b, c)
		default:
			b = append(b, '_')
		}
	}
	return string(b)
}

// canonicalKey is the string form of a substitution used to key
// specializations for idempotence.
func canonicalKey(args []types.Type) string {
	key := ""
	for i, a := range args {
		if i > 0 {
			key += ","
		}
		key += a.String()
	}
	return key
}
