package codegen

import (
	"fmt"
	"strings"

	"github.com/lumina-lang/lumina/internal/ir"
)

// expr renders e as a JS expression string. It does not itself advance
// e.col/e.line (callers embed the result inline via fmt.Sprintf), so the
// source-map entry it records for e's own start position uses the generated
// column of the enclosing write, not the column where this subexpression
// begins.
func (e *emitter) expr(ex ir.Expr) string {
	e.mark(ex)
	switch v := ex.(type) {
	case *ir.Literal:
		return e.literal(v)
	case *ir.Identifier:
		return v.Name
	case *ir.Unary:
		return fmt.Sprintf("(%s%s)", v.Op, e.expr(v.Operand))
	case *ir.Binary:
		return fmt.Sprintf("(%s %s %s)", e.expr(v.Left), v.Op, e.expr(v.Right))
	case *ir.Cast:
		return castExpr(v.TargetType, e.expr(v.Expr))
	case *ir.Call:
		return fmt.Sprintf("%s(%s)", e.expr(v.Callee), e.exprList(v.Args))
	case *ir.Member:
		return fmt.Sprintf("%s.%s", e.expr(v.Target), v.Name)
	case *ir.Index:
		return fmt.Sprintf("%s[%s]", e.expr(v.Target), e.expr(v.Index))
	case *ir.Enum:
		return e.enumExpr(v)
	case *ir.StructLiteral:
		return e.structLiteral(v)
	case *ir.ArrayLiteral:
		return e.arrayLiteral(v)
	case *ir.MatchExpr:
		return e.matchExpr(v)
	default:
		return "undefined"
	}
}

func (e *emitter) literal(l *ir.Literal) string {
	switch l.Kind {
	case "string":
		s, _ := l.Value.(string)
		return jsonString(s)
	case "bool":
		b, _ := l.Value.(bool)
		if b {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", l.Value)
	}
}

func (e *emitter) exprList(exprs []ir.Expr) string {
	parts := make([]string, len(exprs))
	for i, ex := range exprs {
		parts[i] = e.expr(ex)
	}
	return strings.Join(parts, ", ")
}

// enumExpr lowers an Enum construction to `{ tag, values }`, except for
// the `__is__` sentinel the lowerer emits for a runtime variant test
// (`x is V`), which becomes a plain tag comparison.
func (e *emitter) enumExpr(v *ir.Enum) string {
	if v.Tag == "__is__" && len(v.Values) == 2 {
		target := e.expr(v.Values[0])
		variant := e.expr(v.Values[1])
		return fmt.Sprintf("(%s.tag === %s)", target, variant)
	}
	return fmt.Sprintf("{ tag: %s, values: [%s] }", jsonString(v.Tag), e.exprList(v.Values))
}

func (e *emitter) structLiteral(v *ir.StructLiteral) string {
	parts := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		parts[i] = fmt.Sprintf("%s: %s", f.Name, e.expr(f.Value))
	}
	return fmt.Sprintf("{ %s }", strings.Join(parts, ", "))
}

func (e *emitter) arrayLiteral(v *ir.ArrayLiteral) string {
	if v.Repeat != nil {
		return fmt.Sprintf("Array(%s).fill(%s)", e.expr(v.Count), e.expr(v.Repeat))
	}
	return fmt.Sprintf("[%s]", e.exprList(v.Elements))
}
