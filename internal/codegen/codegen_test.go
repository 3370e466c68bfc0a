package codegen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lumina-lang/lumina/internal/ir"
)

func numLit(v int64) *ir.Literal      { return &ir.Literal{Kind: "number", Value: v} }
func strLitE(v string) *ir.Literal    { return &ir.Literal{Kind: "string", Value: v} }
func boolLitE(v bool) *ir.Literal     { return &ir.Literal{Kind: "bool", Value: v} }
func identE(name string) *ir.Identifier { return &ir.Identifier{Name: name} }

func TestGenerateSimpleFunction(t *testing.T) {
	fn := &ir.Function{
		Name:   "inc",
		Params: []string{"x"},
		Body: []ir.Stmt{
			&ir.Return{Value: &ir.Binary{Op: "+", Left: identE("x"), Right: numLit(1)}},
		},
	}
	prog := &ir.Program{Body: []ir.Stmt{fn}}
	out := Generate(prog, "fn inc(x:int)->int { x+1 }", Options{NoRuntime: true})

	require.Contains(t, out.JS, "function inc(x) {")
	require.Contains(t, out.JS, "return (x + 1);")
}

func TestGenerateStringLiteralJSONQuoted(t *testing.T) {
	fn := &ir.Function{Name: "f", Body: []ir.Stmt{&ir.Return{Value: strLitE("hi\"there")}}}
	prog := &ir.Program{Body: []ir.Stmt{fn}}
	out := Generate(prog, "", Options{NoRuntime: true})
	require.Contains(t, out.JS, `"hi\"there"`)
}

func TestGenerateEnumConstruction(t *testing.T) {
	fn := &ir.Function{Name: "f", Body: []ir.Stmt{
		&ir.Return{Value: &ir.Enum{Tag: "Some", Values: []ir.Expr{numLit(1)}}},
	}}
	prog := &ir.Program{Body: []ir.Stmt{fn}}
	out := Generate(prog, "", Options{NoRuntime: true})
	require.Contains(t, out.JS, `{ tag: "Some", values: [1] }`)
}

func TestGenerateIsExprLowersToTagComparison(t *testing.T) {
	fn := &ir.Function{Name: "f", Body: []ir.Stmt{
		&ir.Return{Value: &ir.Enum{Tag: "__is__", Values: []ir.Expr{identE("x"), strLitE("Some")}}},
	}}
	prog := &ir.Program{Body: []ir.Stmt{fn}}
	out := Generate(prog, "", Options{NoRuntime: true})
	require.Contains(t, out.JS, `(x.tag === "Some")`)
}

func TestGenerateMatchExprArmsInSourceOrder(t *testing.T) {
	m := &ir.MatchExpr{
		Value: identE("c"),
		Arms: []ir.MatchArm{
			{Variant: "Red", Result: numLit(0)},
			{Variant: "Green", Result: numLit(1)},
			{Variant: "", Bindings: nil, Result: numLit(9)},
		},
	}
	fn := &ir.Function{Name: "f", Body: []ir.Stmt{&ir.Return{Value: m}}}
	prog := &ir.Program{Body: []ir.Stmt{fn}}
	out := Generate(prog, "", Options{NoRuntime: true})

	redIdx := strings.Index(out.JS, `tag === "Red"`)
	greenIdx := strings.Index(out.JS, `tag === "Green"`)
	require.True(t, redIdx >= 0 && greenIdx >= 0 && redIdx < greenIdx, "arms must appear in source order")
	require.Contains(t, out.JS, "return 9;")
}

func TestGenerateTryDesugarWrapsFunctionBody(t *testing.T) {
	fn := &ir.Function{Name: "f", Body: []ir.Stmt{
		&ir.ExprStmt{Expr: &ir.Call{Callee: identE("__lumina_try"), Args: []ir.Expr{identE("r")}}},
	}}
	prog := &ir.Program{Body: []ir.Stmt{fn}}
	out := Generate(prog, "", Options{NoRuntime: true})
	require.Contains(t, out.JS, "try {")
	require.Contains(t, out.JS, "catch (__e)")
}

func TestGenerateSSAHoisting(t *testing.T) {
	fn := &ir.Function{Name: "f", Body: []ir.Stmt{
		&ir.Let{Name: "_1", Value: numLit(1)},
		&ir.Return{Value: identE("_1")},
	}}
	prog := &ir.Program{SSA: true, Body: []ir.Stmt{fn}}
	out := Generate(prog, "", Options{NoRuntime: true})
	require.Contains(t, out.JS, "let _1;")
	require.Contains(t, out.JS, "_1 = 1;")
	require.NotContains(t, out.JS, "let _1 = 1;")
}

func TestCastLowering(t *testing.T) {
	require.Equal(t, "Math.fround(x)", castExpr("f32", "x"))
	require.Equal(t, "((x << 24) >> 24)", castExpr("i8", "x"))
	require.Equal(t, "(x >>> 0)", castExpr("u32", "x"))
	require.Equal(t, "x", castExpr("f64", "x"))
}

func TestRuntimeImportESMvsCJS(t *testing.T) {
	prog := &ir.Program{Body: []ir.Stmt{}}
	esm := Generate(prog, "", Options{Target: TargetESM})
	require.Contains(t, esm.JS, "import { io,")

	cjs := Generate(prog, "", Options{Target: TargetCJS})
	require.Contains(t, cjs.JS, "require(")
}

func TestSourceMapSerializesV3(t *testing.T) {
	b := NewSourceMapBuilder("out.js", "in.lm")
	b.Add(0, 1, 0)
	b.NewLine()
	b.Add(2, 2, 4)
	out := b.Serialize()
	require.Contains(t, out, `"version":3`)
	require.Contains(t, out, `"sources":["in.lm"]`)
	require.Contains(t, out, `"mappings":`)
}

func TestGenerateIdempotent(t *testing.T) {
	fn := &ir.Function{Name: "f", Body: []ir.Stmt{&ir.Return{Value: numLit(1)}}}
	prog := &ir.Program{Body: []ir.Stmt{fn}}
	a := Generate(prog, "src", Options{NoRuntime: true, SourceMap: true, SourceFile: "f.lm"})
	b := Generate(prog, "src", Options{NoRuntime: true, SourceMap: true, SourceFile: "f.lm"})
	require.Equal(t, a.JS, b.JS)
	require.Equal(t, a.SourceMap, b.SourceMap)
}

func TestBoolLiteralEmission(t *testing.T) {
	fn := &ir.Function{Name: "f", Body: []ir.Stmt{&ir.Return{Value: boolLitE(true)}}}
	prog := &ir.Program{Body: []ir.Stmt{fn}}
	out := Generate(prog, "", Options{NoRuntime: true})
	require.Contains(t, out.JS, "return true;")
}
