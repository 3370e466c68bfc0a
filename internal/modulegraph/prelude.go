package modulegraph

import (
	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/config"
)

func named(name string) ast.TypeExpr { return &ast.NamedType{Name: name} }
func hole() ast.TypeExpr             { return &ast.TypeHole{} }

func fn(params []ast.TypeExpr, names []string, ret ast.TypeExpr) FunctionExport {
	return FunctionExport{ParamTypes: params, ParamNames: names, ReturnType: ret}
}

// stdModule builds a NamespaceExport for one prelude module's functions.
func stdModule(specifier string, fns map[string]FunctionExport) *NamespaceExport {
	exports := make(map[string]Export, len(fns))
	for name, f := range fns {
		exports[name] = f
	}
	return &NamespaceExport{Specifier: specifier, Exports: exports}
}

// NewPrelude builds the @std registry. Function signatures
// are intentionally loose (TypeHole parameters) where the runtime is
// polymorphic over element type.
func NewPrelude() map[string]*NamespaceExport {
	reg := map[string]*NamespaceExport{}

	reg[config.StdPrefix+config.RuntimeIO] = stdModule(config.StdPrefix+config.RuntimeIO, map[string]FunctionExport{
		"print":   fn([]ast.TypeExpr{hole()}, []string{"value"}, named("unit")),
		"println": fn([]ast.TypeExpr{hole()}, []string{"value"}, named("unit")),
		"readLine": fn(nil, nil, named(config.ResultTypeName)),
	})

	reg[config.StdPrefix+config.RuntimeStr] = stdModule(config.StdPrefix+config.RuntimeStr, map[string]FunctionExport{
		"length":  fn([]ast.TypeExpr{named("string")}, []string{"s"}, named("i64")),
		"concat":  fn([]ast.TypeExpr{named("string"), named("string")}, []string{"a", "b"}, named("string")),
		"split":   fn([]ast.TypeExpr{named("string"), named("string")}, []string{"s", "sep"}, named(config.RuntimeList)),
		"trim":    fn([]ast.TypeExpr{named("string")}, []string{"s"}, named("string")),
		"toUpper": fn([]ast.TypeExpr{named("string")}, []string{"s"}, named("string")),
		"toLower": fn([]ast.TypeExpr{named("string")}, []string{"s"}, named("string")),
	})

	reg[config.StdPrefix+config.RuntimeMath] = stdModule(config.StdPrefix+config.RuntimeMath, map[string]FunctionExport{
		"sqrt": fn([]ast.TypeExpr{named("f64")}, []string{"x"}, named("f64")),
		"pow":  fn([]ast.TypeExpr{named("f64"), named("f64")}, []string{"base", "exp"}, named("f64")),
		"abs":  fn([]ast.TypeExpr{named("f64")}, []string{"x"}, named("f64")),
		"floor": fn([]ast.TypeExpr{named("f64")}, []string{"x"}, named("f64")),
		"ceil": fn([]ast.TypeExpr{named("f64")}, []string{"x"}, named("f64")),
	})

	reg[config.StdPrefix+config.RuntimeList] = stdModule(config.StdPrefix+config.RuntimeList, map[string]FunctionExport{
		"push": fn([]ast.TypeExpr{named(config.RuntimeList), hole()}, []string{"list", "item"}, named(config.RuntimeList)),
		"len":  fn([]ast.TypeExpr{named(config.RuntimeList)}, []string{"list"}, named("i64")),
		"map":  fn([]ast.TypeExpr{named(config.RuntimeList), &ast.FunctionType{Params: []ast.TypeExpr{hole()}, Return: hole()}}, []string{"list", "f"}, named(config.RuntimeList)),
	})

	reg[config.StdPrefix+config.RuntimeVec] = stdModule(config.StdPrefix+config.RuntimeVec, map[string]FunctionExport{
		"get": fn([]ast.TypeExpr{named(config.RuntimeVec), named("i64")}, []string{"v", "i"}, named(config.OptionTypeName)),
		"set": fn([]ast.TypeExpr{named(config.RuntimeVec), named("i64"), hole()}, []string{"v", "i", "x"}, named("unit")),
	})

	reg[config.StdPrefix+config.RuntimeHashMap] = stdModule(config.StdPrefix+config.RuntimeHashMap, map[string]FunctionExport{
		"get": fn([]ast.TypeExpr{named(config.RuntimeHashMap), hole()}, []string{"m", "key"}, named(config.OptionTypeName)),
		"set": fn([]ast.TypeExpr{named(config.RuntimeHashMap), hole(), hole()}, []string{"m", "key", "value"}, named("unit")),
	})

	reg[config.StdPrefix+config.RuntimeHashSet] = stdModule(config.StdPrefix+config.RuntimeHashSet, map[string]FunctionExport{
		"add": fn([]ast.TypeExpr{named(config.RuntimeHashSet), hole()}, []string{"s", "item"}, named("unit")),
		"has": fn([]ast.TypeExpr{named(config.RuntimeHashSet), hole()}, []string{"s", "item"}, named("bool")),
	})

	reg[config.StdPrefix+config.RuntimeChannel] = stdModule(config.StdPrefix+config.RuntimeChannel, map[string]FunctionExport{
		"send": fn([]ast.TypeExpr{named(config.RuntimeChannel), hole()}, []string{"c", "value"}, named("unit")),
		"recv": fn([]ast.TypeExpr{named(config.RuntimeChannel)}, []string{"c"}, named(config.OptionTypeName)),
	})

	reg[config.StdPrefix+config.RuntimeThread] = stdModule(config.StdPrefix+config.RuntimeThread, map[string]FunctionExport{
		"spawn": fn([]ast.TypeExpr{&ast.FunctionType{Return: hole()}}, []string{"f"}, named("unit")),
	})

	reg[config.StdPrefix+config.RuntimeSync] = stdModule(config.StdPrefix+config.RuntimeSync, map[string]FunctionExport{
		"lock": fn([]ast.TypeExpr{hole()}, []string{"mutex"}, hole()),
	})

	reg[config.StdPrefix+config.RuntimeFS] = stdModule(config.StdPrefix+config.RuntimeFS, map[string]FunctionExport{
		"readFile":  fn([]ast.TypeExpr{named("string")}, []string{"path"}, named(config.ResultTypeName)),
		"writeFile": fn([]ast.TypeExpr{named("string"), named("string")}, []string{"path", "contents"}, named(config.ResultTypeName)),
	})

	reg[config.StdPrefix+config.RuntimeHTTP] = stdModule(config.StdPrefix+config.RuntimeHTTP, map[string]FunctionExport{
		"get": fn([]ast.TypeExpr{named("string")}, []string{"url"}, named(config.ResultTypeName)),
	})

	reg[config.StdPrefix+config.RuntimeTime] = stdModule(config.StdPrefix+config.RuntimeTime, map[string]FunctionExport{
		"now": fn(nil, nil, named("i64")),
	})

	reg[config.StdPrefix+config.RuntimeRegex] = stdModule(config.StdPrefix+config.RuntimeRegex, map[string]FunctionExport{
		"match": fn([]ast.TypeExpr{named("string"), named("string")}, []string{"pattern", "s"}, named("bool")),
	})

	reg[config.StdPrefix+config.RuntimeCrypto] = stdModule(config.StdPrefix+config.RuntimeCrypto, map[string]FunctionExport{
		"sha256": fn([]ast.TypeExpr{named("string")}, []string{"s"}, named("string")),
	})

	return reg
}
