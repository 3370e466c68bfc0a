package codegen

import (
	"fmt"
	"regexp"

	"github.com/lumina-lang/lumina/internal/config"
	"github.com/lumina-lang/lumina/internal/ir"
)

// ssaNamePattern matches the stable SSA-style names the lowering pass
// assigns (`/_\d+$/`).
var ssaNamePattern = regexp.MustCompile(`_\d+$`)

// emitFunction handles the two function-level rewrites: try-helper
// desugaring (wrap the body in try/catch whenever `__lumina_try` appears
// anywhere in it) and, when the IR program is marked SSA, hoisting every
// SSA-named Let to a top-of-function `let name;` declaration with its
// assignment rewritten to a bare `name = expr;`.
func (e *emitter) emitFunction(fn *ir.Function, ssa bool) {
	e.mark(fn)
	e.write(fmt.Sprintf("function %s(%s) {\n", fn.Name, joinParams(fn.Params)))
	e.line++
	e.col = 0
	e.sm.NewLine()

	usesTry := bodyUsesTryHelper(fn.Body)

	var hoisted []string
	body := fn.Body
	if ssa {
		hoisted, body = hoistSSALets(body)
	}

	if len(hoisted) > 0 {
		e.writeIndentedLine(1, fmt.Sprintf("let %s;", joinNames(hoisted)))
	}

	if usesTry {
		e.writeIndentedLine(1, fmt.Sprintf("try {"))
		e.writeIndentedLine(2, fmt.Sprintf("const %s = (__r) => {", config.TryHelper))
		e.writeIndentedLine(3, fmt.Sprintf("if (__r && __r.tag === %s) { return __r.values[0]; }", jsonString(config.OkCtorName)))
		e.writeIndentedLine(3, fmt.Sprintf("if (__r && __r.tag === %s) { throw { %s: true, value: __r }; }", jsonString(config.ErrCtorName), config.TryHelper))
		e.writeIndentedLine(3, "return __r;")
		e.writeIndentedLine(2, "};")
		for _, stmt := range body {
			e.emitIndentedStmt(2, stmt, ssa)
		}
		e.writeIndentedLine(1, "} catch (__e) {")
		e.writeIndentedLine(2, fmt.Sprintf("if (__e && __e.%s) { return __e.value; }", config.TryHelper))
		e.writeIndentedLine(2, "throw __e;")
		e.writeIndentedLine(1, "}")
	} else {
		for _, stmt := range body {
			e.emitIndentedStmt(1, stmt, ssa)
		}
	}

	e.writeLine("}")
}

func joinParams(params []string) string {
	out := ""
	for i, p := range params {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

// bodyUsesTryHelper reports whether any call in body invokes the
// `__lumina_try` runtime helper by name.
func bodyUsesTryHelper(body []ir.Stmt) bool {
	found := false
	walkStmts(body, func(e ir.Expr) {
		if call, ok := e.(*ir.Call); ok {
			if id, ok := call.Callee.(*ir.Identifier); ok && id.Name == config.TryHelper {
				found = true
			}
		}
	})
	return found
}

// hoistSSALets extracts every Let whose name matches ssaNamePattern to a
// single top-of-function declaration, replacing it in place with a bare
// Assign. Nested blocks (If/While) are hoisted too, since their Lets
// still belong to the same function scope in generated JS.
func hoistSSALets(body []ir.Stmt) ([]string, []ir.Stmt) {
	var hoisted []string
	out := hoistSSALetsIn(body, &hoisted)
	return hoisted, out
}

func hoistSSALetsIn(body []ir.Stmt, hoisted *[]string) []ir.Stmt {
	out := make([]ir.Stmt, len(body))
	for i, stmt := range body {
		switch s := stmt.(type) {
		case *ir.Let:
			if ssaNamePattern.MatchString(s.Name) {
				*hoisted = append(*hoisted, s.Name)
				out[i] = &ir.Assign{Loc: s.Loc, Target: &ir.Identifier{Loc: s.Loc, Name: s.Name}, Value: s.Value}
			} else {
				out[i] = s
			}
		case *ir.If:
			s.Then = hoistSSALetsIn(s.Then, hoisted)
			s.Else = hoistSSALetsIn(s.Else, hoisted)
			out[i] = s
		case *ir.While:
			s.Body = hoistSSALetsIn(s.Body, hoisted)
			out[i] = s
		default:
			out[i] = stmt
		}
	}
	return out
}
