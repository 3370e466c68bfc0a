package check

import (
	"github.com/agext/levenshtein"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/diagnostics"
)

// checkTypeReferences walks every TypeExpr reachable from a declaration and
// verifies it names a known primitive/struct/enum/alias/type-parameter with
// the right argument count.
func (c *checker) checkTypeReferences() {
	for _, stmt := range c.prog.Statements {
		switch d := stmt.(type) {
		case *ast.StructDecl:
			scope := typeParamNames(d.TypeParams)
			for _, f := range d.Fields {
				c.checkTypeExpr(f.Type, scope)
			}
		case *ast.EnumDecl:
			scope := typeParamNames(d.TypeParams)
			for _, v := range d.Variants {
				for _, p := range v.Params {
					c.checkTypeExpr(p, scope)
				}
			}
		case *ast.TypeDecl:
			c.checkTypeExpr(d.Underlying, typeParamNames(d.TypeParams))
		case *ast.FnDecl:
			c.checkFnSignature(d)
		case *ast.TraitDecl:
			for _, m := range d.Methods {
				scope := map[string]bool{d.SelfParam: true}
				for _, p := range m.Params {
					c.checkTypeExpr(p.Type, scope)
				}
				if m.ReturnType != nil {
					c.checkTypeExpr(m.ReturnType, scope)
				}
			}
		case *ast.ImplDecl:
			c.checkTypeExpr(d.TargetType, nil)
			for _, m := range d.Methods {
				c.checkFnSignature(m)
			}
		}
	}
}

func (c *checker) checkFnSignature(fn *ast.FnDecl) {
	scope := typeParamNames(fn.TypeParams)
	for _, p := range fn.Params {
		c.checkTypeExpr(p.Type, scope)
	}
	if fn.ReturnType != nil {
		c.checkTypeExpr(fn.ReturnType, scope)
	}
}

func (c *checker) checkTypeExpr(te ast.TypeExpr, scope map[string]bool) {
	switch t := te.(type) {
	case nil, *ast.TypeHole:
		return
	case *ast.NamedType:
		if scope[t.Name] || primitiveTypeNames[t.Name] {
			return
		}
		if sd, ok := c.structs[t.Name]; ok {
			c.checkArity(t, len(sd.TypeParams))
		} else if ed, ok := c.enums[t.Name]; ok {
			c.checkArity(t, len(ed.TypeParams))
		} else if al, ok := c.aliases[t.Name]; ok {
			c.checkArity(t, len(al.TypeParams))
		} else {
			c.suggestUnknownType(t)
		}
		for _, a := range t.Args {
			c.checkTypeExpr(a, scope)
		}
	case *ast.FunctionType:
		for _, p := range t.Params {
			c.checkTypeExpr(p, scope)
		}
		c.checkTypeExpr(t.Return, scope)
	case *ast.ArrayType:
		c.checkTypeExpr(t.Elem, scope)
	}
}

func (c *checker) checkArity(t *ast.NamedType, want int) {
	if len(t.Args) != want {
		c.addf(diagnostics.CodeUnknownType, t, "%s expects %d type argument(s), got %d", t.Name, want, len(t.Args))
	}
}

func (c *checker) suggestUnknownType(t *ast.NamedType) {
	best, bestDist := "", 3
	params := levenshtein.NewParams()
	candidates := make([]string, 0, len(c.structs)+len(c.enums)+len(c.aliases))
	for name := range c.structs {
		candidates = append(candidates, name)
	}
	for name := range c.enums {
		candidates = append(candidates, name)
	}
	for name := range c.aliases {
		candidates = append(candidates, name)
	}
	for _, name := range candidates {
		d := levenshtein.Distance(t.Name, name, params)
		if d < bestDist {
			best, bestDist = name, d
		}
	}
	if best != "" {
		c.addf(diagnostics.CodeUnknownType, t, "unknown type %q, did you mean %q?", t.Name, best)
	} else {
		c.addf(diagnostics.CodeUnknownType, t, "unknown type %q", t.Name)
	}
}

func typeParamNames(tps []ast.TypeParam) map[string]bool {
	out := map[string]bool{}
	for _, tp := range tps {
		out[tp.Name] = true
	}
	return out
}

var primitiveTypeNames = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true,
	"u8": true, "u16": true, "u32": true, "u64": true,
	"f32": true, "f64": true,
	"bool": true, "string": true, "unit": true, "usize": true,
}
