// Package parser implements Lumina's concrete grammar: a hand-written
// recursive-descent/Pratt parser that plays the role  assigns to an
// externally compiled PEG grammar (a black box producing a typed AST). The
// adapter in adapter.go is the genuine C1 component: it wraps this grammar,
// turns the parser.SyntaxError values the grammar records into diagnostics,
// and rewrites every
// syntactic type hole into ast.TypeHole. The grammar itself is modeled on
// funxy's internal/parser package: a Pratt expression parser plus a
// statement-level recursive descent, split by syntactic category.
package parser

import (
	"fmt"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/lexer"
	"github.com/lumina-lang/lumina/internal/token"
)

const (
	_ int = iota
	precLowest
	precPipe
	precOr
	precAnd
	precEquality
	precComparison
	precSum
	precProduct
	precPrefix
	precCall
)

var precedences = map[token.Type]int{
	token.PIPE:    precPipe,
	token.OR:      precOr,
	token.AND:     precAnd,
	token.EQ:      precEquality,
	token.NEQ:     precEquality,
	token.LT:      precComparison,
	token.LTE:     precComparison,
	token.GT:      precComparison,
	token.GTE:     precComparison,
	token.PLUS:    precSum,
	token.MINUS:   precSum,
	token.STAR:    precProduct,
	token.SLASH:   precProduct,
	token.PERCENT: precProduct,
	token.LPAREN:  precCall,
	token.DOT:     precCall,
	token.LBRACKET: precCall,
	token.IS:      precComparison,
}

// Parser holds the token stream and accumulated syntax errors for one file.
type Parser struct {
	l        *lexer.Lexer
	cur      token.Token
	peek     token.Token
	filePath string
	Errors   []*SyntaxError
}

// New creates a Parser over src, tagging diagnostics with filePath.
func New(src, filePath string) *Parser {
	p := &Parser{l: lexer.New(src), filePath: filePath}
	p.advance()
	p.advance()
	return p
}

func (p *Parser) advance() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek.Type == t }

func (p *Parser) expect(t token.Type, desc string) token.Token {
	if !p.curIs(t) {
		p.errorf(desc)
		return p.cur
	}
	tok := p.cur
	p.advance()
	return tok
}

func (p *Parser) errorf(expected string) {
	p.Errors = append(p.Errors, &SyntaxError{
		Location: p.cur.Location,
		Expected: []string{expected},
		Found:    fmt.Sprintf("%q", p.cur.Lexeme),
		Slice:    p.cur.Lexeme,
	})
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peek.Type]; ok {
		return prec
	}
	return precLowest
}

// ParseProgram parses a whole compilation unit, recovering from malformed
// statements by emitting an ast.ErrorNode and resynchronizing at the next
// statement boundary rather than aborting.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{File: p.filePath}
	for !p.curIs(token.EOF) {
		if p.curIs(token.IMPORT) {
			prog.Imports = append(prog.Imports, p.parseImport())
			continue
		}
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
	}
	return prog
}

func (p *Parser) parseImport() *ast.ImportStatement {
	start := p.cur.Location.Start
	p.advance() // 'import'
	pathTok := p.expect(token.IDENT, "module path")
	path := pathTok.Lexeme
	for p.curIs(token.DOT) && p.peekIs(token.IDENT) {
		p.advance()
		path += "/" + p.cur.Lexeme
		p.advance()
	}
	imp := &ast.ImportStatement{Path: path, Aliases: map[string]string{}}
	if p.curIs(token.DOT) && p.peekIs(token.STAR) {
		p.advance()
		p.advance()
		imp.Wildcard = true
	} else if p.curIs(token.AS) {
		p.advance()
		alias := p.expect(token.IDENT, "alias identifier")
		imp.Alias = alias.Lexeme
		imp.Namespace = true
	} else if p.curIs(token.DOT) && p.peekIs(token.LBRACE) {
		p.advance()
		p.advance()
		for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
			name := p.expect(token.IDENT, "import name")
			local := name.Lexeme
			if p.curIs(token.AS) {
				p.advance()
				aliasTok := p.expect(token.IDENT, "alias identifier")
				local = aliasTok.Lexeme
			}
			imp.Names = append(imp.Names, name.Lexeme)
			imp.Aliases[name.Lexeme] = local
			if p.curIs(token.COMMA) {
				p.advance()
			}
		}
		p.expect(token.RBRACE, "}")
	}
	imp.Loc = ast.NewLoc(start, p.cur.Location.Start)
	return imp
}

func (p *Parser) parseStatement() ast.Statement {
	switch p.cur.Type {
	case token.FN:
		return p.parseFnDecl(Private)
	case token.PUBLIC:
		p.advance()
		return p.parseVisibleDecl(Public)
	case token.PRIVATE:
		p.advance()
		return p.parseVisibleDecl(Private)
	case token.STRUCT:
		return p.parseStructDecl(Private)
	case token.ENUM:
		return p.parseEnumDecl(Private)
	case token.TYPE:
		return p.parseTypeDecl(Private)
	case token.TRAIT:
		return p.parseTraitDecl(Private)
	case token.IMPL:
		return p.parseImplDecl()
	case token.LET:
		return p.parseLet()
	case token.RETURN:
		return p.parseReturn()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.MATCH:
		return p.parseMatchStmt()
	case token.LBRACE:
		return p.parseBlock()
	case token.EXTERN:
		p.advance()
		if p.curIs(token.FN) {
			fn := p.parseFnDecl(Private)
			fn.Extern = true
			return fn
		}
		if p.curIs(token.STRUCT) {
			s := p.parseStructDecl(Private)
			s.Extern = true
			return s
		}
		p.errorf("fn or struct after extern")
		return p.errorRecover()
	default:
		return p.parseExprOrAssignStatement()
	}
}

// Visibility is re-exported here for brevity within the parser package.
type Visibility = ast.Visibility

const (
	Private = ast.Private
	Public  = ast.Public
)

func (p *Parser) parseVisibleDecl(vis Visibility) ast.Statement {
	switch p.cur.Type {
	case token.FN:
		return p.parseFnDecl(vis)
	case token.STRUCT:
		return p.parseStructDecl(vis)
	case token.ENUM:
		return p.parseEnumDecl(vis)
	case token.TYPE:
		return p.parseTypeDecl(vis)
	case token.TRAIT:
		return p.parseTraitDecl(vis)
	default:
		p.errorf("declaration after visibility modifier")
		return p.errorRecover()
	}
}

func (p *Parser) errorRecover() *ast.ErrorNode {
	loc := p.cur.Location
	for !p.curIs(token.EOF) && !p.curIs(token.SEMI) && !p.curIs(token.RBRACE) {
		p.advance()
	}
	if p.curIs(token.SEMI) {
		p.advance()
	}
	return &ast.ErrorNode{Message: "could not parse statement", Loc: loc}
}

func (p *Parser) parseExprOrAssignStatement() ast.Statement {
	start := p.cur.Location.Start
	expr := p.parseExpression(precLowest)
	if p.curIs(token.ASSIGN) {
		p.advance()
		value := p.parseExpression(precLowest)
		p.skipSemi()
		return &ast.Assign{Target: expr, Value: value, Loc: ast.NewLoc(start, p.cur.Location.Start)}
	}
	p.skipSemi()
	return &ast.ExprStmt{Expr: expr, Loc: ast.NewLoc(start, p.cur.Location.Start)}
}

func (p *Parser) skipSemi() {
	if p.curIs(token.SEMI) {
		p.advance()
	}
}

func (p *Parser) parseLet() *ast.Let {
	start := p.cur.Location.Start
	p.advance() // 'let'
	mutable := false
	if p.curIs(token.MUT) {
		mutable = true
		p.advance()
	}
	name := p.expect(token.IDENT, "identifier")
	var typeAnno ast.TypeExpr
	if p.curIs(token.COLON) {
		p.advance()
		typeAnno = p.parseType()
	}
	p.expect(token.ASSIGN, "=")
	value := p.parseExpression(precLowest)
	p.skipSemi()
	return &ast.Let{Name: name.Lexeme, Mutable: mutable, TypeAnno: typeAnno, Value: value, Loc: ast.NewLoc(start, p.cur.Location.Start)}
}

func (p *Parser) parseReturn() *ast.Return {
	start := p.cur.Location.Start
	p.advance()
	var val ast.Expression
	if !p.curIs(token.SEMI) && !p.curIs(token.RBRACE) {
		val = p.parseExpression(precLowest)
	}
	p.skipSemi()
	return &ast.Return{Value: val, Loc: ast.NewLoc(start, p.cur.Location.Start)}
}

func (p *Parser) parseBlock() *ast.Block {
	start := p.cur.Location.Start
	p.expect(token.LBRACE, "{")
	blk := &ast.Block{}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			blk.Statements = append(blk.Statements, stmt)
		}
	}
	p.expect(token.RBRACE, "}")
	blk.Loc = ast.NewLoc(start, p.cur.Location.Start)
	return blk
}

func (p *Parser) parseIf() *ast.If {
	start := p.cur.Location.Start
	p.advance() // 'if'
	cond := p.parseExpression(precLowest)
	then := p.parseBlock()
	n := &ast.If{Condition: cond, Then: then}
	if p.curIs(token.ELSE) {
		p.advance()
		if p.curIs(token.IF) {
			nested := p.parseIf()
			n.Else = &ast.Block{Statements: []ast.Statement{nested}, Loc: nested.Loc}
		} else {
			n.Else = p.parseBlock()
		}
	}
	n.Loc = ast.NewLoc(start, p.cur.Location.Start)
	return n
}

func (p *Parser) parseWhile() *ast.While {
	start := p.cur.Location.Start
	p.advance()
	cond := p.parseExpression(precLowest)
	body := p.parseBlock()
	return &ast.While{Condition: cond, Body: body, Loc: ast.NewLoc(start, p.cur.Location.Start)}
}

func (p *Parser) parseMatchArms() []ast.MatchArm {
	p.expect(token.LBRACE, "{")
	var arms []ast.MatchArm
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		pat := p.parsePattern()
		var guard ast.Expression
		if p.curIs(token.IF) {
			p.advance()
			guard = p.parseExpression(precLowest)
		}
		p.expect(token.FATARROW, "=>")
		var body ast.Node
		if p.curIs(token.LBRACE) {
			body = p.parseBlock()
		} else {
			body = p.parseExpression(precLowest)
		}
		arms = append(arms, ast.MatchArm{Pattern: pat, Guard: guard, Body: body})
		if p.curIs(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACE, "}")
	return arms
}

func (p *Parser) parseMatchStmt() *ast.MatchStmt {
	start := p.cur.Location.Start
	p.advance()
	scrutinee := p.parseExpression(precLowest)
	arms := p.parseMatchArms()
	return &ast.MatchStmt{Scrutinee: scrutinee, Arms: arms, Loc: ast.NewLoc(start, p.cur.Location.Start)}
}

func (p *Parser) parsePattern() ast.Pattern {
	start := p.cur.Location.Start
	switch p.cur.Type {
	case token.UNDERSCORE:
		p.advance()
		return &ast.WildcardPattern{Loc: ast.NewLoc(start, p.cur.Location.Start)}
	case token.NUMBER, token.STRING, token.TRUE, token.FALSE:
		lit := p.parsePrimary()
		return &ast.LiteralPattern{Value: lit, Loc: ast.NewLoc(start, p.cur.Location.Start)}
	case token.IDENT:
		name := p.cur.Lexeme
		if isUpper(name) {
			p.advance()
			variant := name
			if p.curIs(token.DOT) {
				p.advance()
				v := p.expect(token.IDENT, "variant name")
				variant = v.Lexeme
			}
			var bindings []string
			if p.curIs(token.LPAREN) {
				p.advance()
				for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
					b := p.expect(token.IDENT, "binding name")
					bindings = append(bindings, b.Lexeme)
					if p.curIs(token.COMMA) {
						p.advance()
					}
				}
				p.expect(token.RPAREN, ")")
			}
			return &ast.VariantPattern{Variant: variant, Bindings: bindings, Loc: ast.NewLoc(start, p.cur.Location.Start)}
		}
		p.advance()
		return &ast.IdentifierPattern{Name: name, Loc: ast.NewLoc(start, p.cur.Location.Start)}
	default:
		p.errorf("pattern")
		p.advance()
		return &ast.WildcardPattern{Loc: ast.NewLoc(start, p.cur.Location.Start)}
	}
}

func isUpper(s string) bool {
	return len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z'
}

// --- Expressions (Pratt parser) ---

func (p *Parser) parseExpression(precedence int) ast.Expression {
	left := p.parsePrefix()
	for !p.curIs(token.SEMI) && precedence < p.curPrecedence() {
		left = p.parseInfix(left)
	}
	return left
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.cur.Type]; ok {
		return prec
	}
	return precLowest
}

func (p *Parser) parsePrefix() ast.Expression {
	switch p.cur.Type {
	case token.MINUS, token.NOT:
		start := p.cur.Location.Start
		op := p.cur.Lexeme
		p.advance()
		operand := p.parseExpression(precPrefix)
		return &ast.Unary{Op: op, Operand: operand, Loc: ast.NewLoc(start, p.cur.Location.Start)}
	default:
		return p.parsePostfixChain(p.parsePrimary())
	}
}

func (p *Parser) parsePrimary() ast.Expression {
	start := p.cur.Location.Start
	switch p.cur.Type {
	case token.NUMBER:
		raw := p.cur.Lexeme
		isFloat := false
		for _, c := range raw {
			if c == '.' {
				isFloat = true
			}
		}
		p.advance()
		return &ast.Number{Raw: raw, IsFloat: isFloat, Loc: ast.NewLoc(start, p.cur.Location.Start)}
	case token.STRING:
		v := p.cur.Lexeme
		p.advance()
		return &ast.String{Value: v, Loc: ast.NewLoc(start, p.cur.Location.Start)}
	case token.TRUE, token.FALSE:
		v := p.curIs(token.TRUE)
		p.advance()
		return &ast.Boolean{Value: v, Loc: ast.NewLoc(start, p.cur.Location.Start)}
	case token.LPAREN:
		p.advance()
		e := p.parseExpression(precLowest)
		p.expect(token.RPAREN, ")")
		return e
	case token.LBRACKET:
		return p.parseArrayLiteral(start)
	case token.IDENT:
		return p.parseIdentifierExpr(start)
	default:
		p.errorf("expression")
		tok := p.cur
		p.advance()
		return &ast.Identifier{Name: tok.Lexeme, Loc: ast.NewLoc(start, p.cur.Location.Start)}
	}
}

func (p *Parser) parseArrayLiteral(start token.Position) ast.Expression {
	p.advance() // '['
	lit := &ast.ArrayLiteral{}
	if p.curIs(token.RBRACKET) {
		p.advance()
		lit.Loc = ast.NewLoc(start, p.cur.Location.Start)
		return lit
	}
	first := p.parseExpression(precLowest)
	if p.curIs(token.SEMI) {
		p.advance()
		count := p.parseExpression(precLowest)
		p.expect(token.RBRACKET, "]")
		lit.Repeat = first
		lit.Count = count
		lit.Loc = ast.NewLoc(start, p.cur.Location.Start)
		return lit
	}
	lit.Elements = append(lit.Elements, first)
	for p.curIs(token.COMMA) {
		p.advance()
		if p.curIs(token.RBRACKET) {
			break
		}
		lit.Elements = append(lit.Elements, p.parseExpression(precLowest))
	}
	p.expect(token.RBRACKET, "]")
	lit.Loc = ast.NewLoc(start, p.cur.Location.Start)
	return lit
}

func (p *Parser) parseIdentifierExpr(start token.Position) ast.Expression {
	name := p.cur.Lexeme
	p.advance()

	// Struct literal: `Name { f: v, ... }` (only for capitalized names, to
	// avoid swallowing `if cond { ... }`-style blocks after an identifier).
	if isUpper(name) && p.curIs(token.LBRACE) {
		return p.parseStructLiteral(name, start)
	}

	// Qualified enum construction: `EnumName.Variant(args)` / bare variant.
	if isUpper(name) && p.curIs(token.DOT) && p.peekIs(token.IDENT) && isUpper(p.peek.Lexeme) {
		p.advance() // '.'
		variant := p.cur.Lexeme
		p.advance()
		var args []ast.Expression
		if p.curIs(token.LPAREN) {
			args = p.parseArgs()
		}
		return &ast.Enum{EnumName: name, Variant: variant, Args: args, Loc: ast.NewLoc(start, p.cur.Location.Start)}
	}

	return &ast.Identifier{Name: name, Loc: ast.NewLoc(start, p.cur.Location.Start)}
}

func (p *Parser) parseStructLiteral(name string, start token.Position) ast.Expression {
	p.advance() // '{'
	lit := &ast.StructLiteral{TypeName: name}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		fname := p.expect(token.IDENT, "field name")
		p.expect(token.COLON, ":")
		fval := p.parseExpression(precLowest)
		lit.Fields = append(lit.Fields, ast.FieldInit{Name: fname.Lexeme, Value: fval})
		if p.curIs(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACE, "}")
	lit.Loc = ast.NewLoc(start, p.cur.Location.Start)
	return lit
}

func (p *Parser) parseArgs() []ast.Expression {
	p.expect(token.LPAREN, "(")
	var args []ast.Expression
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		args = append(args, p.parseExpression(precLowest))
		if p.curIs(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RPAREN, ")")
	return args
}

// parsePostfixChain handles call/member/index/is, which all bind tighter
// than any binary operator and must chain left-associatively.
func (p *Parser) parsePostfixChain(e ast.Expression) ast.Expression {
	for {
		start := e.Location().Start
		switch {
		case p.curIs(token.LPAREN):
			args := p.parseArgs()
			e = &ast.Call{Callee: e, Args: args, Loc: ast.NewLoc(start, p.cur.Location.Start)}
		case p.curIs(token.LT) && isTypeArgStart(e):
			// Explicit type-argument call: `name<T1,T2>(args)`.
			save := p.snapshot()
			typeArgs, ok := p.tryParseTypeArgs()
			if !ok || !p.curIs(token.LPAREN) {
				p.restore(save)
				return e
			}
			args := p.parseArgs()
			e = &ast.Call{Callee: e, TypeArgs: typeArgs, Args: args, Loc: ast.NewLoc(start, p.cur.Location.Start)}
		case p.curIs(token.DOT):
			p.advance()
			name := p.expect(token.IDENT, "member name")
			e = &ast.Member{Target: e, Name: name.Lexeme, Loc: ast.NewLoc(start, p.cur.Location.Start)}
		case p.curIs(token.LBRACKET):
			p.advance()
			idx := p.parseExpression(precLowest)
			p.expect(token.RBRACKET, "]")
			e = &ast.Index{Target: e, Index: idx, Loc: ast.NewLoc(start, p.cur.Location.Start)}
		case p.curIs(token.IS):
			p.advance()
			enumName, variant := p.parseIsTarget()
			e = &ast.IsExpr{Value: e, EnumName: enumName, Variant: variant, Loc: ast.NewLoc(start, p.cur.Location.Start)}
		default:
			return e
		}
	}
}

func (p *Parser) parseIsTarget() (enumName, variant string) {
	first := p.expect(token.IDENT, "variant name").Lexeme
	if p.curIs(token.DOT) {
		p.advance()
		second := p.expect(token.IDENT, "variant name")
		return first, second.Lexeme
	}
	return "", first
}

func isTypeArgStart(e ast.Expression) bool {
	_, ok := e.(*ast.Identifier)
	return ok
}

type parserSnapshot struct {
	l    lexer.Lexer
	cur  token.Token
	peek token.Token
}

func (p *Parser) snapshot() parserSnapshot {
	return parserSnapshot{l: *p.l, cur: p.cur, peek: p.peek}
}

func (p *Parser) restore(s parserSnapshot) {
	l := s.l
	p.l = &l
	p.cur = s.cur
	p.peek = s.peek
}

func (p *Parser) tryParseTypeArgs() ([]ast.TypeExpr, bool) {
	p.advance() // '<'
	var args []ast.TypeExpr
	for !p.curIs(token.GT) {
		if p.curIs(token.EOF) || p.curIs(token.LPAREN) || p.curIs(token.SEMI) {
			return nil, false
		}
		args = append(args, p.parseType())
		if p.curIs(token.COMMA) {
			p.advance()
			continue
		}
		break
	}
	if !p.curIs(token.GT) {
		return nil, false
	}
	p.advance()
	return args, true
}

func (p *Parser) parseInfix(left ast.Expression) ast.Expression {
	start := left.Location().Start
	if p.curIs(token.PIPE) {
		p.advance()
		right := p.parseExpression(precPipe)
		return &ast.Binary{Op: "|>", Left: left, Right: right, Loc: ast.NewLoc(start, p.cur.Location.Start)}
	}
	op := p.cur.Lexeme
	prec := p.curPrecedence()
	p.advance()
	right := p.parseExpression(prec)
	return &ast.Binary{Op: op, Left: left, Right: right, Loc: ast.NewLoc(start, p.cur.Location.Start)}
}

// --- Type expressions ---

func (p *Parser) parseType() ast.TypeExpr {
	start := p.cur.Location.Start
	if p.curIs(token.UNDERSCORE) {
		p.advance()
		return &ast.NamedType{Name: "_", Loc: ast.NewLoc(start, p.cur.Location.Start)}
	}
	if p.curIs(token.FN) {
		p.advance()
		p.expect(token.LPAREN, "(")
		var params []ast.TypeExpr
		for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
			params = append(params, p.parseType())
			if p.curIs(token.COMMA) {
				p.advance()
			}
		}
		p.expect(token.RPAREN, ")")
		p.expect(token.ARROW, "->")
		ret := p.parseType()
		return &ast.FunctionType{Params: params, Return: ret, Loc: ast.NewLoc(start, p.cur.Location.Start)}
	}
	if p.curIs(token.LBRACKET) {
		p.advance()
		elem := p.parseType()
		p.expect(token.SEMI, ";")
		size := p.cur.Lexeme
		p.advance()
		p.expect(token.RBRACKET, "]")
		return &ast.ArrayType{Elem: elem, SizeExpr: size, Loc: ast.NewLoc(start, p.cur.Location.Start)}
	}
	name := p.expect(token.IDENT, "type name").Lexeme
	nt := &ast.NamedType{Name: name}
	if p.curIs(token.LT) {
		p.advance()
		for !p.curIs(token.GT) && !p.curIs(token.EOF) {
			nt.Args = append(nt.Args, p.parseType())
			if p.curIs(token.COMMA) {
				p.advance()
			}
		}
		p.expect(token.GT, ">")
	}
	nt.Loc = ast.NewLoc(start, p.cur.Location.Start)
	return nt
}

func (p *Parser) parseTypeParams() []ast.TypeParam {
	if !p.curIs(token.LT) {
		return nil
	}
	p.advance()
	var params []ast.TypeParam
	for !p.curIs(token.GT) && !p.curIs(token.EOF) {
		loc := p.cur.Location
		if p.curIs(token.CONST) {
			p.advance()
			name := p.expect(token.IDENT, "const parameter name").Lexeme
			p.expect(token.COLON, ":")
			kind := p.expect(token.IDENT, "const parameter type").Lexeme
			params = append(params, ast.TypeParam{Name: name, Const: true, Kind: kind, Loc: loc})
		} else {
			name := p.expect(token.IDENT, "type parameter name").Lexeme
			tp := ast.TypeParam{Name: name, Loc: loc}
			if p.curIs(token.COLON) {
				p.advance()
				tp.Bounds = append(tp.Bounds, p.expect(token.IDENT, "trait bound").Lexeme)
				for p.curIs(token.PLUS) {
					p.advance()
					tp.Bounds = append(tp.Bounds, p.expect(token.IDENT, "trait bound").Lexeme)
				}
			}
			params = append(params, tp)
		}
		if p.curIs(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.GT, ">")
	return params
}

// --- Declarations ---

func (p *Parser) parseFnDecl(vis Visibility) *ast.FnDecl {
	start := p.cur.Location.Start
	p.advance() // 'fn'
	name := p.expect(token.IDENT, "function name").Lexeme
	typeParams := p.parseTypeParams()
	p.expect(token.LPAREN, "(")
	var params []ast.Param
	for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
		ref := false
		if p.curIs(token.REF) {
			ref = true
			p.advance()
		}
		pname := p.expect(token.IDENT, "parameter name").Lexeme
		var ptype ast.TypeExpr
		if p.curIs(token.COLON) {
			p.advance()
			ptype = p.parseType()
		}
		params = append(params, ast.Param{Name: pname, Type: ptype, Ref: ref})
		if p.curIs(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RPAREN, ")")
	var ret ast.TypeExpr
	if p.curIs(token.ARROW) {
		p.advance()
		ret = p.parseType()
	}
	var body *ast.Block
	if p.curIs(token.LBRACE) {
		body = p.parseBlock()
	} else {
		p.skipSemi()
	}
	return &ast.FnDecl{
		Name: name, TypeParams: typeParams, Params: params, ReturnType: ret, Body: body,
		Visibility: vis, Loc: ast.NewLoc(start, p.cur.Location.Start),
	}
}

func (p *Parser) parseStructDecl(vis Visibility) *ast.StructDecl {
	start := p.cur.Location.Start
	p.advance() // 'struct'
	name := p.expect(token.IDENT, "struct name").Lexeme
	typeParams := p.parseTypeParams()
	decl := &ast.StructDecl{Name: name, TypeParams: typeParams, Visibility: vis}
	if p.curIs(token.SEMI) {
		p.advance()
		decl.Loc = ast.NewLoc(start, p.cur.Location.Start)
		return decl
	}
	p.expect(token.LBRACE, "{")
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		fname := p.expect(token.IDENT, "field name").Lexeme
		p.expect(token.COLON, ":")
		ftype := p.parseType()
		decl.Fields = append(decl.Fields, ast.StructField{Name: fname, Type: ftype})
		if p.curIs(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACE, "}")
	decl.Loc = ast.NewLoc(start, p.cur.Location.Start)
	return decl
}

func (p *Parser) parseEnumDecl(vis Visibility) *ast.EnumDecl {
	start := p.cur.Location.Start
	p.advance() // 'enum'
	name := p.expect(token.IDENT, "enum name").Lexeme
	typeParams := p.parseTypeParams()
	decl := &ast.EnumDecl{Name: name, TypeParams: typeParams, Visibility: vis}
	p.expect(token.LBRACE, "{")
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		vname := p.expect(token.IDENT, "variant name").Lexeme
		variant := ast.EnumVariant{Name: vname}
		if p.curIs(token.LPAREN) {
			p.advance()
			for !p.curIs(token.RPAREN) && !p.curIs(token.EOF) {
				variant.Params = append(variant.Params, p.parseType())
				if p.curIs(token.COMMA) {
					p.advance()
				}
			}
			p.expect(token.RPAREN, ")")
		}
		decl.Variants = append(decl.Variants, variant)
		if p.curIs(token.COMMA) {
			p.advance()
		}
	}
	p.expect(token.RBRACE, "}")
	decl.Loc = ast.NewLoc(start, p.cur.Location.Start)
	return decl
}

func (p *Parser) parseTypeDecl(vis Visibility) *ast.TypeDecl {
	start := p.cur.Location.Start
	p.advance() // 'type'
	name := p.expect(token.IDENT, "type name").Lexeme
	typeParams := p.parseTypeParams()
	p.expect(token.ASSIGN, "=")
	underlying := p.parseType()
	p.skipSemi()
	return &ast.TypeDecl{Name: name, TypeParams: typeParams, Underlying: underlying, Visibility: vis, Loc: ast.NewLoc(start, p.cur.Location.Start)}
}

func (p *Parser) parseTraitDecl(vis Visibility) *ast.TraitDecl {
	start := p.cur.Location.Start
	p.advance() // 'trait'
	name := p.expect(token.IDENT, "trait name").Lexeme
	selfParam := "Self"
	if p.curIs(token.LT) {
		p.advance()
		selfParam = p.expect(token.IDENT, "self type parameter").Lexeme
		p.expect(token.GT, ">")
	}
	decl := &ast.TraitDecl{Name: name, SelfParam: selfParam, Visibility: vis}
	p.expect(token.LBRACE, "{")
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		fn := p.parseFnDecl(Public)
		decl.Methods = append(decl.Methods, ast.TraitMethod{Name: fn.Name, Params: fn.Params, ReturnType: fn.ReturnType, Default: fn.Body})
	}
	p.expect(token.RBRACE, "}")
	decl.Loc = ast.NewLoc(start, p.cur.Location.Start)
	return decl
}

func (p *Parser) parseImplDecl() *ast.ImplDecl {
	start := p.cur.Location.Start
	p.advance() // 'impl'
	traitName := p.expect(token.IDENT, "trait name").Lexeme
	p.expect(token.FOR, "for")
	target := p.parseType()
	decl := &ast.ImplDecl{TraitName: traitName, TargetType: target}
	p.expect(token.LBRACE, "{")
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		decl.Methods = append(decl.Methods, p.parseFnDecl(Public))
	}
	p.expect(token.RBRACE, "}")
	decl.Loc = ast.NewLoc(start, p.cur.Location.Start)
	return decl
}
