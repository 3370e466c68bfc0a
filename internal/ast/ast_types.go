package ast

import "github.com/lumina-lang/lumina/internal/token"

// TypeExpr is a type reference as written in source: a bare name or a
// generic application `Name<T1, ..., Tn>`.
type TypeExpr interface {
	Node
	typeExprNode()
}

// NamedType is `Name` or `Name<Args...>`.
type NamedType struct {
	Loc  token.Location
	Name string
	Args []TypeExpr
}

func (n *NamedType) Location() token.Location { return n.Loc }
func (n *NamedType) Accept(v Visitor)         { v.VisitNamedType(n) }
func (n *NamedType) typeExprNode()            {}

// FunctionType is `fn(P1, ..., Pn) -> R`.
type FunctionType struct {
	Loc    token.Location
	Params []TypeExpr
	Return TypeExpr
}

func (n *FunctionType) Location() token.Location { return n.Loc }
func (n *FunctionType) Accept(v Visitor)         { v.VisitFunctionType(n) }
func (n *FunctionType) typeExprNode()            {}

// ArrayType is `[T; N]`, where N may be a literal integer or a const-generic
// parameter name.
type ArrayType struct {
	Loc      token.Location
	Elem     TypeExpr
	SizeExpr string // literal or identifier, resolved during C4/C6
}

func (n *ArrayType) Location() token.Location { return n.Loc }
func (n *ArrayType) Accept(v Visitor)         { v.VisitArrayType(n) }
func (n *ArrayType) typeExprNode()            {}

// TypeHole is the distinguished `_` sentinel the parser adapter (C1) rewrites
// every syntactic type hole into,.
type TypeHole struct {
	Loc token.Location
}

func (n *TypeHole) Location() token.Location { return n.Loc }
func (n *TypeHole) Accept(v Visitor)         { v.VisitTypeHole(n) }
func (n *TypeHole) typeExprNode()            {}

// TypeParam is a generic parameter with optional trait bounds, or (when
// Const is true) a const-generic integer parameter.
type TypeParam struct {
	Name   string
	Bounds []string
	Const  bool   // true for `const N: usize`
	Kind   string // const-generic element type, e.g. "usize"
	Loc    token.Location
}
