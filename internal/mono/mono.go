// Package mono is the C6 monomorphizer. It reads the call-site
// instantiations C4 recorded, clones each generic function once per distinct
// set of concrete type arguments, renames the clone, and rewrites the
// originating call sites to invoke the specialization instead.
//
// The teacher (funvibe-funxy) has no dedicated monomorphizer: funxy's VM
// interprets generic functions directly against instance dictionaries
// (internal/vm/compiler.go, internal/analyzer/declarations_instances_methods.go)
// rather than specializing source. Lumina compiles to JavaScript, which has
// no notion of generics at all, so the specialization this package performs
// is unavoidable: it is designed from  directly, in the idiom of
// the rest of this compiler's AST-rewriting passes (internal/check's
// explicit recursive walkers, internal/infer's Context side-table).
package mono

import (
	"sort"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/infer"
	"github.com/lumina-lang/lumina/internal/types"
)

// Run specializes every generic function prog calls with concrete type
// arguments, per ictx.InferredCalls, and returns the transformed program.
// prog is mutated in place and also returned for convenience.
func Run(prog *ast.Program, ictx *infer.Context) *ast.Program {
	if ictx == nil || len(ictx.InferredCalls) == 0 {
		return prog
	}

	generic := map[string]*ast.FnDecl{}
	for _, stmt := range prog.Statements {
		if fn, ok := stmt.(*ast.FnDecl); ok && len(fn.TypeParams) > 0 {
			generic[fn.Name] = fn
		}
	}
	if len(generic) == 0 {
		return prog
	}

	// Deterministic iteration so repeated runs against the same input
	// produce byte-identical output (canonicalKey already makes the
	// specialization set itself idempotent; this just fixes ordering).
	nodes := make([]ast.Node, 0, len(ictx.InferredCalls))
	for n := range ictx.InferredCalls {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool {
		li, lj := nodes[i].Location(), nodes[j].Location()
		return li.Start.Offset < lj.Start.Offset
	})

	specialized := map[string]string{} // canonical key -> specialized name
	var newDecls []*ast.FnDecl
	renames := map[ast.Node]string{}
	usedGeneric := map[string]bool{}

	for _, n := range nodes {
		inst := ictx.InferredCalls[n]
		fn, ok := generic[inst.FnName]
		if !ok {
			continue
		}
		key := inst.FnName + "(" + canonicalKey(inst.TypeArgs) + ")"
		specName, ok := specialized[key]
		if !ok {
			specName = fn.Name + mangleSuffix(inst.TypeArgs)
			specialized[key] = specName
			clone := specializeFn(fn, inst.TypeArgs)
			clone.Name = specName
			newDecls = append(newDecls, clone)
		}
		renames[n] = specName
		usedGeneric[inst.FnName] = true
	}

	if len(renames) == 0 {
		return prog
	}

	rewriteCallSites(prog, renames)

	out := make([]ast.Statement, 0, len(prog.Statements)+len(newDecls))
	for _, stmt := range prog.Statements {
		if fn, ok := stmt.(*ast.FnDecl); ok && usedGeneric[fn.Name] && !hasRemainingGenericUse(fn.Name, renames, ictx) {
			continue
		}
		out = append(out, stmt)
	}
	for _, d := range newDecls {
		out = append(out, d)
	}
	prog.Statements = out
	return prog
}

// hasRemainingGenericUse reports whether any call site not covered by
// renames still invokes the original generic fn — which can't currently
// happen since every InferredCalls entry for a generic function is always
// rewritten, but guards against a future partial-rewrite scenario instead of
// silently dropping a still-called original.
func hasRemainingGenericUse(name string, renames map[ast.Node]string, ictx *infer.Context) bool {
	for n, inst := range ictx.InferredCalls {
		if inst.FnName != name {
			continue
		}
		if _, rewritten := renames[n]; !rewritten {
			return true
		}
	}
	return false
}

// specializeFn clones fn, substituting its type parameters with args in the
// Params/ReturnType annotations. The body AST is shared (not deep-cloned):
// it carries no type parameter references of its own that later stages
// (IR lowering, codegen) need to see resolved, since JavaScript output
// never reifies static types.
func specializeFn(fn *ast.FnDecl, args []types.Type) *ast.FnDecl {
	subst := map[string]types.Type{}
	for i, tp := range fn.TypeParams {
		if i < len(args) {
			subst[tp.Name] = args[i]
		}
	}

	clone := *fn
	clone.TypeParams = nil
	clone.Params = make([]ast.Param, len(fn.Params))
	for i, p := range fn.Params {
		clone.Params[i] = ast.Param{Name: p.Name, Ref: p.Ref, Type: substituteTypeExpr(p.Type, subst)}
	}
	if fn.ReturnType != nil {
		clone.ReturnType = substituteTypeExpr(fn.ReturnType, subst)
	}
	return &clone
}

// substituteTypeExpr replaces a bare reference to one of fn's type
// parameters with its concrete instantiation, recursing through
// NamedType/FunctionType/ArrayType. Non-type-parameter names pass through
// unchanged.
func substituteTypeExpr(te ast.TypeExpr, subst map[string]types.Type) ast.TypeExpr {
	switch t := te.(type) {
	case *ast.NamedType:
		if len(t.Args) == 0 {
			if conc, ok := subst[t.Name]; ok {
				return typeToTypeExpr(conc, t.Loc)
			}
			return t
		}
		args := make([]ast.TypeExpr, len(t.Args))
		for i, a := range t.Args {
			args[i] = substituteTypeExpr(a, subst)
		}
		return &ast.NamedType{Loc: t.Loc, Name: t.Name, Args: args}
	case *ast.FunctionType:
		params := make([]ast.TypeExpr, len(t.Params))
		for i, p := range t.Params {
			params[i] = substituteTypeExpr(p, subst)
		}
		return &ast.FunctionType{Loc: t.Loc, Params: params, Return: substituteTypeExpr(t.Return, subst)}
	case *ast.ArrayType:
		elem := substituteTypeExpr(t.Elem, subst)
		size := t.SizeExpr
		if conc, ok := subst[t.SizeExpr]; ok {
			if ci, ok := conc.(types.ConstInt); ok {
				size = ci.String()
			}
		}
		return &ast.ArrayType{Loc: t.Loc, Elem: elem, SizeExpr: size}
	default:
		return te
	}
}
