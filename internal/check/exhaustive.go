package check

import (
	"fmt"
	"sort"
	"strings"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/diagnostics"
	"github.com/lumina-lang/lumina/internal/types"
)

// checkExhaustiveness walks every MatchStmt/MatchExpr and verifies the arms
// cover all enum variants (or include a wildcard), plus flags duplicate arms
// and binding-arity mismatches.
func (c *checker) checkExhaustiveness() {
	for _, stmt := range c.prog.Statements {
		c.walkStmtForMatches(stmt)
	}
}

func (c *checker) walkStmtForMatches(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.FnDecl:
		if s.Body != nil {
			c.walkStmtForMatches(s.Body)
		}
	case *ast.ImplDecl:
		for _, m := range s.Methods {
			if m.Body != nil {
				c.walkStmtForMatches(m.Body)
			}
		}
	case *ast.Block:
		for _, st := range s.Statements {
			c.walkStmtForMatches(st)
		}
	case *ast.If:
		c.walkExprForMatches(s.Condition)
		c.walkStmtForMatches(s.Then)
		if s.Else != nil {
			c.walkStmtForMatches(s.Else)
		}
	case *ast.While:
		c.walkExprForMatches(s.Condition)
		c.walkStmtForMatches(s.Body)
	case *ast.Let:
		c.walkExprForMatches(s.Value)
	case *ast.Assign:
		c.walkExprForMatches(s.Target)
		c.walkExprForMatches(s.Value)
	case *ast.Return:
		if s.Value != nil {
			c.walkExprForMatches(s.Value)
		}
	case *ast.ExprStmt:
		c.walkExprForMatches(s.Expr)
	case *ast.MatchStmt:
		c.walkExprForMatches(s.Scrutinee)
		c.checkArms(s.Scrutinee, s.Arms, s)
		for _, arm := range s.Arms {
			if block, ok := arm.Body.(*ast.Block); ok {
				c.walkStmtForMatches(block)
			}
			if arm.Guard != nil {
				c.walkExprForMatches(arm.Guard)
			}
		}
	}
}

func (c *checker) walkExprForMatches(expr ast.Expression) {
	switch e := expr.(type) {
	case *ast.Binary:
		c.walkExprForMatches(e.Left)
		c.walkExprForMatches(e.Right)
	case *ast.Unary:
		c.walkExprForMatches(e.Operand)
	case *ast.Call:
		c.walkExprForMatches(e.Callee)
		for _, a := range e.Args {
			c.walkExprForMatches(a)
		}
	case *ast.Member:
		c.walkExprForMatches(e.Target)
	case *ast.Index:
		c.walkExprForMatches(e.Target)
		c.walkExprForMatches(e.Index)
	case *ast.StructLiteral:
		for _, f := range e.Fields {
			c.walkExprForMatches(f.Value)
		}
	case *ast.Enum:
		for _, a := range e.Args {
			c.walkExprForMatches(a)
		}
	case *ast.ArrayLiteral:
		for _, el := range e.Elements {
			c.walkExprForMatches(el)
		}
		if e.Repeat != nil {
			c.walkExprForMatches(e.Repeat)
		}
	case *ast.IsExpr:
		c.walkExprForMatches(e.Value)
	case *ast.MatchExpr:
		c.walkExprForMatches(e.Scrutinee)
		c.checkArms(e.Scrutinee, e.Arms, e)
		for _, arm := range e.Arms {
			if arm.Guard != nil {
				c.walkExprForMatches(arm.Guard)
			}
			switch b := arm.Body.(type) {
			case *ast.Block:
				c.walkStmtForMatches(b)
			case ast.Expression:
				c.walkExprForMatches(b)
			}
		}
	}
}

func (c *checker) checkArms(scrutinee ast.Expression, arms []ast.MatchArm, loc ast.Node) {
	ed := c.enumOf(scrutinee)

	seen := map[string]bool{}
	hasWildcard := false
	for _, arm := range arms {
		switch p := arm.Pattern.(type) {
		case *ast.WildcardPattern:
			if hasWildcard {
				c.addf(diagnostics.CodeDuplicateMatchArm, p, "duplicate wildcard arm")
			}
			hasWildcard = true
		case *ast.VariantPattern:
			if seen[p.Variant] {
				c.addf(diagnostics.CodeDuplicateMatchArm, p, "duplicate arm for variant %q", p.Variant)
			}
			seen[p.Variant] = true
			if ed != nil {
				c.checkBindingArity(ed, p)
			}
		case *ast.IdentifierPattern:
			// a bare binding pattern also catches everything, like wildcard
			if hasWildcard {
				c.addf(diagnostics.CodeDuplicateMatchArm, p, "arm after an exhaustive wildcard is unreachable")
			}
			hasWildcard = true
		}
	}

	if ed == nil || hasWildcard {
		return
	}
	var missing []string
	for _, v := range ed.Variants {
		if !seen[v.Name] {
			missing = append(missing, v.Name)
		}
	}
	if len(missing) == 0 {
		return
	}
	sort.Strings(missing)
	d := c.addf(diagnostics.CodeMatchNotExhaustive, loc, "match on %s is not exhaustive: missing %s", ed.Name, strings.Join(missing, ", "))
	for _, v := range missing {
		d.WithRelated(loc.Location(), fmt.Sprintf("missing variant %q", v))
	}
}

func (c *checker) checkBindingArity(ed *ast.EnumDecl, p *ast.VariantPattern) {
	for _, v := range ed.Variants {
		if v.Name != p.Variant {
			continue
		}
		if len(p.Bindings) != len(v.Params) && len(p.Bindings) != 0 {
			c.addf(diagnostics.CodeQualifierMismatch, p, "variant %s.%s expects %d binding(s), got %d", ed.Name, v.Name, len(v.Params), len(p.Bindings))
		}
		return
	}
	c.addf(diagnostics.CodeQualifierMismatch, p, "enum %s has no variant %s", ed.Name, p.Variant)
}

func (c *checker) enumOf(scrutinee ast.Expression) *ast.EnumDecl {
	if c.ictx == nil {
		return nil
	}
	t, ok := c.ictx.ExprTypes[exprLocKey(scrutinee)]
	if !ok {
		return nil
	}
	adt, ok := t.(types.Adt)
	if !ok {
		return nil
	}
	return c.enums[adt.Name]
}

func exprLocKey(n ast.Node) string {
	l := n.Location()
	return fmt.Sprintf("%d:%d:%d", l.Start.Line, l.Start.Column, l.Start.Offset)
}
