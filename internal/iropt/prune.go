package iropt

import "github.com/lumina-lang/lumina/internal/ir"

// pruneDeadFunctions starts from main and from any non-function top-level
// statement's references, marks reachable functions, and drops the rest.
// Returns the kept top-level body and the names of pruned functions, in
// declaration order, for test assertions.
func pruneDeadFunctions(prog *ir.Program) ([]ir.Stmt, []string) {
	funcs := map[string]*ir.Function{}
	order := []string{}
	for _, stmt := range prog.Body {
		if fn, ok := stmt.(*ir.Function); ok {
			funcs[fn.Name] = fn
			order = append(order, fn.Name)
		}
	}
	if len(funcs) == 0 {
		return prog.Body, nil
	}

	reachable := map[string]bool{}
	var mark func(name string)
	mark = func(name string) {
		if reachable[name] {
			return
		}
		fn, ok := funcs[name]
		if !ok {
			return
		}
		reachable[name] = true
		for _, callee := range calledNames(fn.Body) {
			mark(callee)
		}
	}

	if _, ok := funcs["main"]; ok {
		mark("main")
	}
	for _, stmt := range prog.Body {
		if _, isFn := stmt.(*ir.Function); isFn {
			continue
		}
		for _, callee := range calledNamesStmt(stmt) {
			mark(callee)
		}
	}

	var pruned []string
	for _, name := range order {
		if !reachable[name] {
			pruned = append(pruned, name)
		}
	}

	kept := make([]ir.Stmt, 0, len(prog.Body))
	for _, stmt := range prog.Body {
		if fn, ok := stmt.(*ir.Function); ok && !reachable[fn.Name] {
			continue
		}
		kept = append(kept, stmt)
	}
	return kept, pruned
}

// calledNames collects every bare-identifier callee name invoked anywhere
// in body, the reachability edges pass 7 walks.
func calledNames(body []ir.Stmt) []string {
	var names []string
	for _, stmt := range body {
		names = append(names, calledNamesStmt(stmt)...)
	}
	return names
}

func calledNamesStmt(stmt ir.Stmt) []string {
	var names []string
	collectWalkStmt(stmt, func(e ir.Expr) {
		if call, ok := e.(*ir.Call); ok {
			if id, ok := call.Callee.(*ir.Identifier); ok {
				names = append(names, id.Name)
			}
		}
	})
	return names
}
