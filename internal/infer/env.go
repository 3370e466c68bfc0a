package infer

import "github.com/lumina-lang/lumina/internal/types"

// Env is a lexical binding environment of type Schemes, nesting the same way
// symbols.Scope does for C3.
type Env struct {
	parent *Env
	vars   map[string]types.Scheme
}

func newEnv(parent *Env) *Env {
	return &Env{parent: parent, vars: map[string]types.Scheme{}}
}

func (e *Env) define(name string, sch types.Scheme) {
	e.vars[name] = sch
}

func (e *Env) lookup(name string) (types.Scheme, bool) {
	for s := e; s != nil; s = s.parent {
		if sch, ok := s.vars[name]; ok {
			return sch, true
		}
	}
	return types.Scheme{}, false
}

// freeVars collects every free type variable visible from e, used to decide
// which variables a let-binding's inferred type may generalize over (spec
// §4.4 generalization).
func (e *Env) freeVars() map[string]bool {
	out := map[string]bool{}
	for s := e; s != nil; s = s.parent {
		for _, sch := range s.vars {
			for _, v := range sch.FreeVars() {
				out[v] = true
			}
		}
	}
	return out
}
