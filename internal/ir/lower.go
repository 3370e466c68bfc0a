package ir

import (
	"fmt"
	"strconv"

	"github.com/lumina-lang/lumina/internal/ast"
)

// numberValue parses a Number literal's raw text per its IsFloat tag,
// falling back to 0 on malformed input (a parser bug, not an IR concern).
func numberValue(n *ast.Number) interface{} {
	if n.IsFloat {
		f, err := strconv.ParseFloat(n.Raw, 64)
		if err != nil {
			return float64(0)
		}
		return f
	}
	i, err := strconv.ParseInt(n.Raw, 10, 64)
	if err != nil {
		return int64(0)
	}
	return i
}

// Run performs C7's pure structural lowering: pipe expansion, match-arm
// binding/tag flattening, and (when ssa is requested) stable SSA-style
// names for every Let. It makes no type-driven decisions; the only
// "recognition" lowering performs beyond 1:1 structural translation is
// treating a bare call to a primitive type name (`f32(x)`, `u8(x)`, ...) as
// a Cast, since Lumina's surface grammar has no dedicated cast expression
// node — a syntactic call-shape recognition, not a type
// inference decision, so it stays within C7's "no fresh type decisions"
// charter.
func Run(prog *ast.Program, ssa bool) *Program {
	l := &lowerer{ssa: ssa}
	out := &Program{SSA: ssa}
	for _, stmt := range prog.Statements {
		out.Body = append(out.Body, l.lowerTopLevel(stmt)...)
	}
	return out
}

type lowerer struct {
	ssa     bool
	counter int
}

func (l *lowerer) ssaName() string {
	l.counter++
	return fmt.Sprintf("_%d", l.counter)
}

func (l *lowerer) lowerTopLevel(stmt ast.Statement) []Stmt {
	switch s := stmt.(type) {
	case *ast.FnDecl:
		if s.Extern || s.Body == nil {
			return nil
		}
		return []Stmt{l.lowerFn(s)}
	case *ast.ImplDecl:
		var out []Stmt
		for _, m := range s.Methods {
			if m.Extern || m.Body == nil {
				continue
			}
			out = append(out, l.lowerFn(m))
		}
		return out
	case *ast.Let:
		return []Stmt{l.lowerLet(s)}
	case *ast.ExprStmt:
		return []Stmt{&ExprStmt{Loc: s.Loc, Expr: l.lowerExpr(s.Expr)}}
	default:
		return []Stmt{&Noop{Loc: stmt.Location()}}
	}
}

func (l *lowerer) lowerFn(fn *ast.FnDecl) *Function {
	params := make([]string, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = p.Name
	}
	return &Function{Loc: fn.Loc, Name: fn.Name, Params: params, Body: l.lowerBlock(fn.Body)}
}

func (l *lowerer) lowerBlock(b *ast.Block) []Stmt {
	if b == nil {
		return nil
	}
	var out []Stmt
	for _, stmt := range b.Statements {
		out = append(out, l.lowerStmt(stmt)...)
	}
	return out
}

func (l *lowerer) lowerStmt(stmt ast.Statement) []Stmt {
	switch s := stmt.(type) {
	case *ast.Let:
		return []Stmt{l.lowerLet(s)}
	case *ast.Assign:
		return []Stmt{&Assign{Loc: s.Loc, Target: l.lowerExpr(s.Target), Value: l.lowerExpr(s.Value)}}
	case *ast.Return:
		var v Expr
		if s.Value != nil {
			v = l.lowerExpr(s.Value)
		}
		return []Stmt{&Return{Loc: s.Loc, Value: v}}
	case *ast.ExprStmt:
		return []Stmt{&ExprStmt{Loc: s.Loc, Expr: l.lowerExpr(s.Expr)}}
	case *ast.Block:
		return l.lowerBlock(s)
	case *ast.If:
		var els []Stmt
		if s.Else != nil {
			els = l.lowerBlock(s.Else)
		}
		return []Stmt{&If{Loc: s.Loc, Condition: l.lowerExpr(s.Condition), Then: l.lowerBlock(s.Then), Else: els}}
	case *ast.While:
		return []Stmt{&While{Loc: s.Loc, Condition: l.lowerExpr(s.Condition), Body: l.lowerBlock(s.Body)}}
	case *ast.MatchStmt:
		return []Stmt{&ExprStmt{Loc: s.Loc, Expr: l.lowerMatch(s.Scrutinee, s.Arms, s)}}
	case *ast.FnDecl:
		if s.Extern || s.Body == nil {
			return nil
		}
		return []Stmt{l.lowerFn(s)}
	default:
		return []Stmt{&Noop{Loc: stmt.Location()}}
	}
}

func (l *lowerer) lowerLet(s *ast.Let) Stmt {
	name := s.Name
	if l.ssa {
		name = l.ssaName()
	}
	return &Let{Loc: s.Loc, Name: name, Value: l.lowerExpr(s.Value)}
}

// lowerExpr lowers an AST expression, expanding `|>` into its equivalent
// Call and recognizing a bare call
// to a primitive-name callee as a Cast.
func (l *lowerer) lowerExpr(expr ast.Expression) Expr {
	switch e := expr.(type) {
	case *ast.Number:
		return &Literal{Loc: e.Loc, Kind: "number", Value: numberValue(e)}
	case *ast.String:
		return &Literal{Loc: e.Loc, Kind: "string", Value: e.Value}
	case *ast.Boolean:
		return &Literal{Loc: e.Loc, Kind: "bool", Value: e.Value}
	case *ast.Identifier:
		return &Identifier{Loc: e.Loc, Name: e.Name}
	case *ast.Binary:
		if e.Op == "|>" {
			return l.lowerPipe(e)
		}
		return &Binary{Loc: e.Loc, Op: e.Op, Left: l.lowerExpr(e.Left), Right: l.lowerExpr(e.Right)}
	case *ast.Unary:
		return &Unary{Loc: e.Loc, Op: e.Op, Operand: l.lowerExpr(e.Operand)}
	case *ast.Call:
		if name, ok := castTarget(e.Callee, e.Qualifier); ok && len(e.Args) == 1 {
			return &Cast{Loc: e.Loc, Expr: l.lowerExpr(e.Args[0]), TargetType: name}
		}
		return &Call{Loc: e.Loc, Callee: l.lowerExpr(e.Callee), Args: l.lowerExprs(e.Args)}
	case *ast.Member:
		return &Member{Loc: e.Loc, Target: l.lowerExpr(e.Target), Name: e.Name}
	case *ast.Index:
		return &Index{Loc: e.Loc, Target: l.lowerExpr(e.Target), Index: l.lowerExpr(e.Index)}
	case *ast.StructLiteral:
		fields := make([]FieldInit, len(e.Fields))
		for i, f := range e.Fields {
			fields[i] = FieldInit{Name: f.Name, Value: l.lowerExpr(f.Value)}
		}
		return &StructLiteral{Loc: e.Loc, TypeName: e.TypeName, Fields: fields}
	case *ast.Enum:
		values := make([]Expr, len(e.Args))
		for i, a := range e.Args {
			values[i] = l.lowerExpr(a)
		}
		return &Enum{Loc: e.Loc, Tag: e.Variant, Values: values}
	case *ast.MatchExpr:
		return l.lowerMatch(e.Scrutinee, e.Arms, e)
	case *ast.IsExpr:
		return &Enum{Loc: e.Loc, Tag: "__is__", Values: []Expr{l.lowerExpr(e.Value), &Literal{Loc: e.Loc, Kind: "string", Value: e.Variant}}}
	case *ast.ArrayLiteral:
		elems := make([]Expr, len(e.Elements))
		for i, el := range e.Elements {
			elems[i] = l.lowerExpr(el)
		}
		var repeat, count Expr
		if e.Repeat != nil {
			repeat = l.lowerExpr(e.Repeat)
		}
		if e.Count != nil {
			count = l.lowerExpr(e.Count)
		}
		return &ArrayLiteral{Loc: e.Loc, Elements: elems, Repeat: repeat, Count: count}
	case *ast.ErrorNode:
		return &Literal{Loc: e.Loc, Kind: "number", Value: int64(0)}
	default:
		return &Literal{Loc: expr.Location(), Kind: "number", Value: int64(0)}
	}
}

// lowerPipe expands `a |> f(args...)` into `f(a, args...)`.
func (l *lowerer) lowerPipe(e *ast.Binary) Expr {
	var callee ast.Expression
	var explicit []ast.Expression
	if call, ok := e.Right.(*ast.Call); ok {
		callee = call.Callee
		explicit = call.Args
	} else {
		callee = e.Right
	}
	args := append([]Expr{l.lowerExpr(e.Left)}, l.lowerExprs(explicit)...)
	return &Call{Loc: e.Loc, Callee: l.lowerExpr(callee), Args: args}
}

func (l *lowerer) lowerExprs(exprs []ast.Expression) []Expr {
	out := make([]Expr, len(exprs))
	for i, e := range exprs {
		out[i] = l.lowerExpr(e)
	}
	return out
}

func (l *lowerer) lowerMatch(scrutinee ast.Expression, arms []ast.MatchArm, loc ast.Node) Expr {
	out := make([]MatchArm, len(arms))
	for i, arm := range arms {
		ma := MatchArm{}
		switch p := arm.Pattern.(type) {
		case *ast.VariantPattern:
			ma.Variant = p.Variant
			ma.Bindings = append([]string{}, p.Bindings...)
		case *ast.IdentifierPattern:
			ma.Bindings = []string{p.Name}
		}
		if arm.Guard != nil {
			ma.Guard = l.lowerExpr(arm.Guard)
		}
		switch b := arm.Body.(type) {
		case *ast.Block:
			ma.Body = l.lowerBlock(b)
		case ast.Expression:
			ma.Result = l.lowerExpr(b)
		}
		out[i] = ma
	}
	return &MatchExpr{Loc: loc.Location(), Value: l.lowerExpr(scrutinee), Arms: out}
}

// castTarget reports whether a call-like callee names a primitive type,
// i.e. a numeric/bool cast written as `f32(x)`.
func castTarget(callee ast.Expression, qualifier string) (string, bool) {
	if qualifier != "" {
		return "", false
	}
	id, ok := callee.(*ast.Identifier)
	if !ok {
		return "", false
	}
	switch id.Name {
	case "i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "f32", "f64", "usize", "bool":
		return id.Name, true
	}
	return "", false
}
