package codegen

import (
	"fmt"
	"strings"

	"github.com/lumina-lang/lumina/internal/ir"
)

// matchTemp is the parameter name every match-expression IIFE binds its
// scrutinee to.
const matchTemp = "_m"

// matchExpr lowers a MatchExpr to an arrow-function IIFE rather than a
// classic `function(){}` expression: a `return` inside an arrow function
// is unambiguously scoped to that arrow function in every JS engine, so
// nesting it inside the surrounding statement carries none of the
// hosted-control-flow risk a named function expression would — that risk
// applies to patterns that rely on `function` expression var-hoisting
// semantics, which this emitter never uses. Arms are tried in source
// order (an ordered if-chain), so pattern checking stays stable relative
// to how the arms were written.
func (e *emitter) matchExpr(m *ir.MatchExpr) string {
	var b strings.Builder
	fmt.Fprintf(&b, "((%s) => {\n", matchTemp)
	for _, arm := range m.Arms {
		b.WriteString(e.matchArmText(arm))
	}
	b.WriteString("  return undefined;\n})(")
	b.WriteString(e.expr(m.Value))
	b.WriteByte(')')
	return b.String()
}

func (e *emitter) matchArmText(arm ir.MatchArm) string {
	var b strings.Builder
	cond := ""
	if arm.Variant != "" {
		cond = fmt.Sprintf("%s.tag === %s", matchTemp, jsonString(arm.Variant))
	}

	var bindings string
	switch {
	case arm.Variant != "" && len(arm.Bindings) > 0:
		// variant pattern: destructure the payload positions.
		bindings = fmt.Sprintf("    const [%s] = %s.values;\n", strings.Join(arm.Bindings, ", "), matchTemp)
	case arm.Variant == "" && len(arm.Bindings) == 1:
		// identifier pattern: bind the whole scrutinee (wildcard/catch-all).
		bindings = fmt.Sprintf("    const %s = %s;\n", arm.Bindings[0], matchTemp)
	}
	if cond != "" && arm.Guard != nil {
		cond = fmt.Sprintf("%s && %s", cond, e.expr(arm.Guard))
	} else if cond == "" && arm.Guard != nil {
		cond = e.expr(arm.Guard)
	}

	if cond != "" {
		fmt.Fprintf(&b, "  if (%s) {\n", cond)
	} else {
		b.WriteString("  {\n")
	}
	b.WriteString(bindings)
	b.WriteString(matchArmBodyText(e, arm))
	b.WriteString("  }\n")
	return b.String()
}

// matchArmBodyText renders an arm's body statements or its single Result
// expression as an indented return block.
func matchArmBodyText(e *emitter, arm ir.MatchArm) string {
	if arm.Result != nil {
		return fmt.Sprintf("    return %s;\n", e.expr(arm.Result))
	}
	var b strings.Builder
	for _, stmt := range arm.Body {
		b.WriteString(stmtToLines(e, 2, stmt))
	}
	return b.String()
}

// stmtToLines renders a statement to indented text without touching the
// emitter's own line/column tracking — match-arm bodies are emitted inline
// as part of a larger expression string, so their internal statements get
// coarser (arm-level, not statement-level) source-map granularity. This is
// the one place C9's mapping is best-effort rather than per-statement.
func stmtToLines(e *emitter, depth int, stmt ir.Stmt) string {
	pad := indent(depth)
	switch s := stmt.(type) {
	case *ir.Let:
		return fmt.Sprintf("%slet %s = %s;\n", pad, s.Name, e.expr(s.Value))
	case *ir.Assign:
		return fmt.Sprintf("%s%s = %s;\n", pad, e.expr(s.Target), e.expr(s.Value))
	case *ir.Return:
		if s.Value == nil {
			return pad + "return;\n"
		}
		return fmt.Sprintf("%sreturn %s;\n", pad, e.expr(s.Value))
	case *ir.ExprStmt:
		return fmt.Sprintf("%s%s;\n", pad, e.expr(s.Expr))
	case *ir.If:
		var b strings.Builder
		fmt.Fprintf(&b, "%sif (%s) {\n", pad, e.expr(s.Condition))
		for _, th := range s.Then {
			b.WriteString(stmtToLines(e, depth+1, th))
		}
		if len(s.Else) > 0 {
			fmt.Fprintf(&b, "%s} else {\n", pad)
			for _, el := range s.Else {
				b.WriteString(stmtToLines(e, depth+1, el))
			}
		}
		fmt.Fprintf(&b, "%s}\n", pad)
		return b.String()
	case *ir.While:
		var b strings.Builder
		fmt.Fprintf(&b, "%swhile (%s) {\n", pad, e.expr(s.Condition))
		for _, bs := range s.Body {
			b.WriteString(stmtToLines(e, depth+1, bs))
		}
		fmt.Fprintf(&b, "%s}\n", pad)
		return b.String()
	default:
		return ""
	}
}
