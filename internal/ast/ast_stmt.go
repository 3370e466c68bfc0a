package ast

import "github.com/lumina-lang/lumina/internal/token"

// Visibility of a top-level declaration.
type Visibility int

const (
	Private Visibility = iota
	Public
)

// Param is a function parameter: name, declared type (may be nil pending
// inference), and whether it is passed `ref`.
type Param struct {
	Name string
	Type TypeExpr
	Ref  bool
}

// FnDecl declares a function. ReturnType is nil when the declaration omits
// an explicit return annotation.
type FnDecl struct {
	Loc        token.Location
	Name       string
	TypeParams []TypeParam
	Params     []Param
	ReturnType TypeExpr
	Body       *Block
	Visibility Visibility
	Extern     bool
}

func (n *FnDecl) Location() token.Location { return n.Loc }
func (n *FnDecl) Accept(v Visitor)         { v.VisitFnDecl(n) }
func (n *FnDecl) statementNode()           {}

// StructField is a single field of a StructDecl.
type StructField struct {
	Name string
	Type TypeExpr
}

// StructDecl declares a product type. A struct cannot be both Extern and
// carry Fields.
type StructDecl struct {
	Loc        token.Location
	Name       string
	TypeParams []TypeParam
	Fields     []StructField
	Visibility Visibility
	Extern     bool
}

func (n *StructDecl) Location() token.Location { return n.Loc }
func (n *StructDecl) Accept(v Visitor)         { v.VisitStructDecl(n) }
func (n *StructDecl) statementNode()           {}

// EnumVariant is one constructor of an EnumDecl.
type EnumVariant struct {
	Name   string
	Params []TypeExpr
}

// EnumDecl declares a sum type.
type EnumDecl struct {
	Loc        token.Location
	Name       string
	TypeParams []TypeParam
	Variants   []EnumVariant
	Visibility Visibility
}

func (n *EnumDecl) Location() token.Location { return n.Loc }
func (n *EnumDecl) Accept(v Visitor)         { v.VisitEnumDecl(n) }
func (n *EnumDecl) statementNode()           {}

// TypeDecl declares a type alias: `type Name<Params> = Underlying`.
type TypeDecl struct {
	Loc        token.Location
	Name       string
	TypeParams []TypeParam
	Underlying TypeExpr
	Visibility Visibility
}

func (n *TypeDecl) Location() token.Location { return n.Loc }
func (n *TypeDecl) Accept(v Visitor)         { v.VisitTypeDecl(n) }
func (n *TypeDecl) statementNode()           {}

// TraitMethod is a method signature declared inside a TraitDecl, with an
// optional default body.
type TraitMethod struct {
	Name       string
	Params     []Param
	ReturnType TypeExpr
	Default    *Block
}

// TraitDecl declares a trait (type class) with a self type parameter.
type TraitDecl struct {
	Loc        token.Location
	Name       string
	SelfParam  string
	Methods    []TraitMethod
	Visibility Visibility
}

func (n *TraitDecl) Location() token.Location { return n.Loc }
func (n *TraitDecl) Accept(v Visitor)         { v.VisitTraitDecl(n) }
func (n *TraitDecl) statementNode()           {}

// ImplDecl implements a TraitName for TargetType.
type ImplDecl struct {
	Loc        token.Location
	TraitName  string
	TargetType TypeExpr
	Methods    []*FnDecl
}

func (n *ImplDecl) Location() token.Location { return n.Loc }
func (n *ImplDecl) Accept(v Visitor)         { v.VisitImplDecl(n) }
func (n *ImplDecl) statementNode()           {}

// Let declares a local binding, optionally mutable, optionally annotated.
type Let struct {
	Loc      token.Location
	Name     string
	Mutable  bool
	TypeAnno TypeExpr
	Value    Expression
}

func (n *Let) Location() token.Location { return n.Loc }
func (n *Let) Accept(v Visitor)         { v.VisitLet(n) }
func (n *Let) statementNode()           {}

// Assign is `target = value` to an existing lvalue (identifier, member, or
// index expression).
type Assign struct {
	Loc    token.Location
	Target Expression
	Value  Expression
}

func (n *Assign) Location() token.Location { return n.Loc }
func (n *Assign) Accept(v Visitor)         { v.VisitAssign(n) }
func (n *Assign) statementNode()           {}

// Return returns Value (nil for a bare `return`) from the enclosing function.
type Return struct {
	Loc   token.Location
	Value Expression
}

func (n *Return) Location() token.Location { return n.Loc }
func (n *Return) Accept(v Visitor)         { v.VisitReturn(n) }
func (n *Return) statementNode()           {}

// ExprStmt wraps an expression used for its side effects.
type ExprStmt struct {
	Loc  token.Location
	Expr Expression
}

func (n *ExprStmt) Location() token.Location { return n.Loc }
func (n *ExprStmt) Accept(v Visitor)         { v.VisitExprStmt(n) }
func (n *ExprStmt) statementNode()           {}

// Block is a brace-delimited sequence of statements introducing a new scope.
type Block struct {
	Loc        token.Location
	Statements []Statement
}

func (n *Block) Location() token.Location { return n.Loc }
func (n *Block) Accept(v Visitor)         { v.VisitBlock(n) }
func (n *Block) statementNode()           {}
func (n *Block) expressionNode()          {} // a Block may also appear as a match-arm body

// If is `if cond { then } else { else }`; Else may be nil, or itself hold a
// single nested If statement wrapped in a Block for `else if` chains.
type If struct {
	Loc       token.Location
	Condition Expression
	Then      *Block
	Else      *Block
}

func (n *If) Location() token.Location { return n.Loc }
func (n *If) Accept(v Visitor)         { v.VisitIf(n) }
func (n *If) statementNode()           {}

// While is the only looping construct (spec has no `for`).
type While struct {
	Loc       token.Location
	Condition Expression
	Body      *Block
}

func (n *While) Location() token.Location { return n.Loc }
func (n *While) Accept(v Visitor)         { v.VisitWhile(n) }
func (n *While) statementNode()           {}

// Pattern is a refutable pattern matched against a scrutinee.
type Pattern interface {
	Node
	patternNode()
}

// WildcardPattern is `_`.
type WildcardPattern struct {
	Loc token.Location
}

func (n *WildcardPattern) Location() token.Location { return n.Loc }
func (n *WildcardPattern) Accept(v Visitor)         { v.VisitWildcardPattern(n) }
func (n *WildcardPattern) patternNode()             {}

// IdentifierPattern binds the scrutinee (or sub-value) to Name.
type IdentifierPattern struct {
	Loc  token.Location
	Name string
}

func (n *IdentifierPattern) Location() token.Location { return n.Loc }
func (n *IdentifierPattern) Accept(v Visitor)         { v.VisitIdentifierPattern(n) }
func (n *IdentifierPattern) patternNode()             {}

// LiteralPattern matches an exact number/string/bool literal.
type LiteralPattern struct {
	Loc   token.Location
	Value Expression // Number, String, or Boolean
}

func (n *LiteralPattern) Location() token.Location { return n.Loc }
func (n *LiteralPattern) Accept(v Visitor)         { v.VisitLiteralPattern(n) }
func (n *LiteralPattern) patternNode()             {}

// VariantPattern matches an enum constructor, optionally binding its payload
// positions to names.
type VariantPattern struct {
	Loc      token.Location
	Variant  string
	Bindings []string
}

func (n *VariantPattern) Location() token.Location { return n.Loc }
func (n *VariantPattern) Accept(v Visitor)         { v.VisitVariantPattern(n) }
func (n *VariantPattern) patternNode()             {}

// MatchArm is one `pattern => body` arm of a MatchStmt/MatchExpr.
type MatchArm struct {
	Pattern Pattern
	Guard   Expression // optional
	Body    Node       // *Block for MatchStmt arms, Expression for MatchExpr arms
}

// MatchStmt is `match scrutinee { arm, ... }` used in statement position,
// where each arm body is a Block.
type MatchStmt struct {
	Loc       token.Location
	Scrutinee Expression
	Arms      []MatchArm
}

func (n *MatchStmt) Location() token.Location { return n.Loc }
func (n *MatchStmt) Accept(v Visitor)         { v.VisitMatchStmt(n) }
func (n *MatchStmt) statementNode()           {}
