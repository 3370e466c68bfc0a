// Package infer implements the C4 HM inference stage:
// Damas-Hindley-Milner constraint generation and unification over
// internal/types, with pipe desugaring and trait-bound checking, grounded on
// funxy's internal/analyzer InferenceContext/inference_solver.go but
// run as single-pass algorithm-W style eager unification rather than the
// teacher's separate deferred-constraint solver.
package infer

import (
	"fmt"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/types"
)

// CallInstantiation records the concrete type arguments a generic function
// call resolved to, keyed by the call's AST node so C6 can rewrite that exact
// call site.
type CallInstantiation struct {
	FnName   string
	TypeArgs []types.Type
}

// Context is C4's output, consumed by C5 and C6.
type Context struct {
	Subst         types.Subst
	ExprTypes     map[string]types.Type // per-expression type, keyed by "line:col:offset"
	LetTypes      map[string]types.Type
	FnReturns     map[string]types.Type
	FnByName      map[string]types.Scheme
	FnParams      map[string][]types.Type
	InferredCalls map[ast.Node]CallInstantiation

	counter int
}

func newContext() *Context {
	return &Context{
		Subst:         types.Subst{},
		ExprTypes:     map[string]types.Type{},
		LetTypes:      map[string]types.Type{},
		FnReturns:     map[string]types.Type{},
		FnByName:      map[string]types.Scheme{},
		FnParams:      map[string][]types.Type{},
		InferredCalls: map[ast.Node]CallInstantiation{},
	}
}

func (c *Context) freshName() string {
	c.counter++
	return fmt.Sprintf("t%d", c.counter)
}

func (c *Context) fresh() types.Var {
	return types.Var{Name: c.freshName()}
}

// Resolve fully applies the context's accumulated substitution to t.
func (c *Context) Resolve(t types.Type) types.Type {
	return t.Apply(c.Subst)
}

func locKey(loc ast.Node) string {
	l := loc.Location()
	return fmt.Sprintf("%d:%d:%d", l.Start.Line, l.Start.Column, l.Start.Offset)
}
