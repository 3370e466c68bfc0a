package ast

// Visitor is implemented by every AST consumer (symbol resolver, inferrer,
// checker, pretty-printer) in funxy's double-dispatch style.
type Visitor interface {
	VisitProgram(n *Program)
	VisitErrorNode(n *ErrorNode)
	VisitImportStatement(n *ImportStatement)

	VisitNamedType(n *NamedType)
	VisitFunctionType(n *FunctionType)
	VisitArrayType(n *ArrayType)
	VisitTypeHole(n *TypeHole)

	VisitFnDecl(n *FnDecl)
	VisitStructDecl(n *StructDecl)
	VisitEnumDecl(n *EnumDecl)
	VisitTypeDecl(n *TypeDecl)
	VisitTraitDecl(n *TraitDecl)
	VisitImplDecl(n *ImplDecl)
	VisitLet(n *Let)
	VisitAssign(n *Assign)
	VisitReturn(n *Return)
	VisitExprStmt(n *ExprStmt)
	VisitBlock(n *Block)
	VisitIf(n *If)
	VisitWhile(n *While)
	VisitMatchStmt(n *MatchStmt)

	VisitWildcardPattern(n *WildcardPattern)
	VisitIdentifierPattern(n *IdentifierPattern)
	VisitLiteralPattern(n *LiteralPattern)
	VisitVariantPattern(n *VariantPattern)

	VisitNumber(n *Number)
	VisitString(n *String)
	VisitBoolean(n *Boolean)
	VisitIdentifier(n *Identifier)
	VisitBinary(n *Binary)
	VisitUnary(n *Unary)
	VisitCall(n *Call)
	VisitMember(n *Member)
	VisitIndex(n *Index)
	VisitStructLiteral(n *StructLiteral)
	VisitEnum(n *Enum)
	VisitMatchExpr(n *MatchExpr)
	VisitIsExpr(n *IsExpr)
	VisitArrayLiteral(n *ArrayLiteral)
}

// BaseVisitor gives every method a no-op body so concrete visitors only
// override what they need, matching funxy's partial-visitor idiom.
type BaseVisitor struct{}

func (BaseVisitor) VisitProgram(n *Program)                       {}
func (BaseVisitor) VisitErrorNode(n *ErrorNode)                   {}
func (BaseVisitor) VisitImportStatement(n *ImportStatement)       {}
func (BaseVisitor) VisitNamedType(n *NamedType)                   {}
func (BaseVisitor) VisitFunctionType(n *FunctionType)             {}
func (BaseVisitor) VisitArrayType(n *ArrayType)                   {}
func (BaseVisitor) VisitTypeHole(n *TypeHole)                     {}
func (BaseVisitor) VisitFnDecl(n *FnDecl)                         {}
func (BaseVisitor) VisitStructDecl(n *StructDecl)                 {}
func (BaseVisitor) VisitEnumDecl(n *EnumDecl)                     {}
func (BaseVisitor) VisitTypeDecl(n *TypeDecl)                     {}
func (BaseVisitor) VisitTraitDecl(n *TraitDecl)                   {}
func (BaseVisitor) VisitImplDecl(n *ImplDecl)                     {}
func (BaseVisitor) VisitLet(n *Let)                               {}
func (BaseVisitor) VisitAssign(n *Assign)                         {}
func (BaseVisitor) VisitReturn(n *Return)                         {}
func (BaseVisitor) VisitExprStmt(n *ExprStmt)                     {}
func (BaseVisitor) VisitBlock(n *Block)                           {}
func (BaseVisitor) VisitIf(n *If)                                 {}
func (BaseVisitor) VisitWhile(n *While)                           {}
func (BaseVisitor) VisitMatchStmt(n *MatchStmt)                   {}
func (BaseVisitor) VisitWildcardPattern(n *WildcardPattern)       {}
func (BaseVisitor) VisitIdentifierPattern(n *IdentifierPattern)   {}
func (BaseVisitor) VisitLiteralPattern(n *LiteralPattern)         {}
func (BaseVisitor) VisitVariantPattern(n *VariantPattern)         {}
func (BaseVisitor) VisitNumber(n *Number)                         {}
func (BaseVisitor) VisitString(n *String)                         {}
func (BaseVisitor) VisitBoolean(n *Boolean)                       {}
func (BaseVisitor) VisitIdentifier(n *Identifier)                 {}
func (BaseVisitor) VisitBinary(n *Binary)                         {}
func (BaseVisitor) VisitUnary(n *Unary)                           {}
func (BaseVisitor) VisitCall(n *Call)                             {}
func (BaseVisitor) VisitMember(n *Member)                         {}
func (BaseVisitor) VisitIndex(n *Index)                           {}
func (BaseVisitor) VisitStructLiteral(n *StructLiteral)           {}
func (BaseVisitor) VisitEnum(n *Enum)                             {}
func (BaseVisitor) VisitMatchExpr(n *MatchExpr)                   {}
func (BaseVisitor) VisitIsExpr(n *IsExpr)                         {}
func (BaseVisitor) VisitArrayLiteral(n *ArrayLiteral)             {}
