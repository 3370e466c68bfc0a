package ast

import "github.com/lumina-lang/lumina/internal/token"

// Number is an integer or floating-point literal; IsFloat distinguishes the
// two for HM literal-constraint generation.
type Number struct {
	Loc     token.Location
	Raw     string
	IsFloat bool
}

func (n *Number) Location() token.Location { return n.Loc }
func (n *Number) Accept(v Visitor)         { v.VisitNumber(n) }
func (n *Number) expressionNode()          {}

// String is a string literal; the raw lexeme is already unescaped by the
// lexer.
type String struct {
	Loc   token.Location
	Value string
}

func (n *String) Location() token.Location { return n.Loc }
func (n *String) Accept(v Visitor)         { v.VisitString(n) }
func (n *String) expressionNode()          {}

// Boolean is `true` / `false`.
type Boolean struct {
	Loc   token.Location
	Value bool
}

func (n *Boolean) Location() token.Location { return n.Loc }
func (n *Boolean) Accept(v Visitor)         { v.VisitBoolean(n) }
func (n *Boolean) expressionNode()          {}

// Identifier references a variable, function, type, or module binding.
type Identifier struct {
	Loc  token.Location
	Name string
}

func (n *Identifier) Location() token.Location { return n.Loc }
func (n *Identifier) Accept(v Visitor)         { v.VisitIdentifier(n) }
func (n *Identifier) expressionNode()          {}

// Binary is any two-operand operator, including the pipe `|>`.
type Binary struct {
	Loc   token.Location
	Op    string
	Left  Expression
	Right Expression
}

func (n *Binary) Location() token.Location { return n.Loc }
func (n *Binary) Accept(v Visitor)         { v.VisitBinary(n) }
func (n *Binary) expressionNode()          {}

// Unary is a single prefix operator (`-x`, `!x`).
type Unary struct {
	Loc     token.Location
	Op      string
	Operand Expression
}

func (n *Unary) Location() token.Location { return n.Loc }
func (n *Unary) Accept(v Visitor)         { v.VisitUnary(n) }
func (n *Unary) expressionNode()          {}

// Call is a function application, optionally qualified as `enumName.variant`
// and optionally carrying explicit type arguments (`f<T1,...>(...)`, used for
// const-generic instantiation S5).
type Call struct {
	Loc       token.Location
	Callee    Expression
	Qualifier string // non-empty for `enumName.variant(...)`
	TypeArgs  []TypeExpr
	Args      []Expression
}

func (n *Call) Location() token.Location { return n.Loc }
func (n *Call) Accept(v Visitor)         { v.VisitCall(n) }
func (n *Call) expressionNode()          {}

// Member is `target.name`.
type Member struct {
	Loc    token.Location
	Target Expression
	Name   string
}

func (n *Member) Location() token.Location { return n.Loc }
func (n *Member) Accept(v Visitor)         { v.VisitMember(n) }
func (n *Member) expressionNode()          {}

// Index is `target[index]`.
type Index struct {
	Loc    token.Location
	Target Expression
	Index  Expression
}

func (n *Index) Location() token.Location { return n.Loc }
func (n *Index) Accept(v Visitor)         { v.VisitIndex(n) }
func (n *Index) expressionNode()          {}

// FieldInit is one `name: value` entry of a StructLiteral.
type FieldInit struct {
	Name  string
	Value Expression
}

// StructLiteral constructs a struct value: `Name { f1: v1, f2: v2 }`.
type StructLiteral struct {
	Loc      token.Location
	TypeName string
	Fields   []FieldInit
}

func (n *StructLiteral) Location() token.Location { return n.Loc }
func (n *StructLiteral) Accept(v Visitor)         { v.VisitStructLiteral(n) }
func (n *StructLiteral) expressionNode()          {}

// Enum constructs an enum value: `EnumName.Variant(args...)` or bare
// `EnumName.Variant` for a zero-arity constructor.
type Enum struct {
	Loc      token.Location
	EnumName string
	Variant  string
	Args     []Expression
}

func (n *Enum) Location() token.Location { return n.Loc }
func (n *Enum) Accept(v Visitor)         { v.VisitEnum(n) }
func (n *Enum) expressionNode()          {}

// MatchExpr is `match scrutinee { pattern => expr, ... }` used as a value
// (spec requires at least one arm).
type MatchExpr struct {
	Loc       token.Location
	Scrutinee Expression
	Arms      []MatchArm
}

func (n *MatchExpr) Location() token.Location { return n.Loc }
func (n *MatchExpr) Accept(v Visitor)         { v.VisitMatchExpr(n) }
func (n *MatchExpr) expressionNode()          {}

// IsExpr is the runtime variant test `value is EnumName.Variant` that
// narrows Value's static type in the surrounding then/else scopes.
type IsExpr struct {
	Loc      token.Location
	Value    Expression
	EnumName string
	Variant  string
}

func (n *IsExpr) Location() token.Location { return n.Loc }
func (n *IsExpr) Accept(v Visitor)         { v.VisitIsExpr(n) }
func (n *IsExpr) expressionNode()          {}

// ArrayLiteral is `[e1, e2, ...]` or the repeat form `[value; count]` used
// for const-generic-sized arrays.
type ArrayLiteral struct {
	Loc      token.Location
	Elements []Expression
	Repeat   Expression // non-nil for `[value; count]`
	Count    Expression // non-nil for `[value; count]`
}

func (n *ArrayLiteral) Location() token.Location { return n.Loc }
func (n *ArrayLiteral) Accept(v Visitor)         { v.VisitArrayLiteral(n) }
func (n *ArrayLiteral) expressionNode()          {}
