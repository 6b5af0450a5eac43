// Package parser implements the recursive-descent parser that folds the
// lexer's token stream into an ast.Program.
//
// Lookahead is a single buffered token fed by a peek operation — not
// the position save-and-restore trick a first cut of this parser might
// reach for. Disambiguation inside an S-expression ('(' followed by a
// keyword) only ever needs to see one token past the current one, so a
// one-slot queue is all that is required.
package parser

import (
	"fmt"

	"classcify/internal/ast"
	"classcify/internal/diag"
	"classcify/internal/lexer"
	"classcify/internal/token"
)

// Parser consumes tokens from a lexer.Lexer and builds an ast.Program,
// or aborts by panicking with a *diag.Error — recovered at the Parse
// entry point. There is no error-recovery path: the first mismatch
// ends the parse.
type Parser struct {
	lex       *lexer.Lexer
	cur       token.Token
	lookahead *token.Token
}

// New creates a parser over lex and primes the current token.
func New(lex *lexer.Lexer) *Parser {
	p := &Parser{lex: lex}
	p.cur = lex.Next()
	return p
}

// Parse runs the parser to completion and returns the AST, or the
// first diagnostic encountered.
func (p *Parser) Parse() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if de, ok := r.(*diag.Error); ok {
				err = de
				return
			}
			panic(r)
		}
	}()
	return p.program(), nil
}

func (p *Parser) peek() token.Token {
	if p.lookahead == nil {
		t := p.lex.Next()
		p.lookahead = &t
	}
	return *p.lookahead
}

func (p *Parser) advance() token.Token {
	tok := p.cur
	if p.lookahead != nil {
		p.cur = *p.lookahead
		p.lookahead = nil
	} else {
		p.cur = p.lex.Next()
	}
	return tok
}

func (p *Parser) check(t token.Type) bool { return p.cur.Type == t }
func (p *Parser) atEnd() bool             { return p.cur.Type == token.EOF }

func (p *Parser) expect(t token.Type) token.Token {
	if p.cur.Type != t {
		panic(diag.NewSyntax(p.cur.Offset, "Error: expected token '%s' but got '%s'", t, p.cur.Lexeme))
	}
	return p.advance()
}

func (p *Parser) failAt(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	panic(diag.NewSyntax(p.cur.Offset, "Parse error at token '%s': %s", p.cur.Lexeme, msg))
}

// --------------- Grammar --------------- //

func (p *Parser) program() *ast.Program {
	prog := &ast.Program{}

	for p.check(token.LPAREN) && p.peek().Type == token.CLASS {
		prog.Classes = append(prog.Classes, p.classDef())
	}

	var stmts []ast.Stmt
	for !p.atEnd() {
		stmts = append(stmts, p.statement())
	}
	if len(stmts) == 0 {
		p.failAt("a program needs at least one top-level statement")
	}
	prog.Main = &ast.StmtList{Stmts: stmts}
	return prog
}

func (p *Parser) classDef() *ast.ClassDef {
	p.expect(token.LPAREN)
	p.expect(token.CLASS)
	name := p.expect(token.IDENTIFIER)

	cd := &ast.ClassDef{Name: name.Lexeme, DeclOffset: name.Offset}
	if p.check(token.IDENTIFIER) {
		super := p.advance()
		cd.Super = super.Lexeme
		cd.HasSuper = true
	}

	p.expect(token.LPAREN)
	for !p.check(token.RPAREN) {
		cd.Fields = append(cd.Fields, p.varDec())
	}
	p.expect(token.RPAREN)

	cd.Ctor = p.constructor()

	for p.check(token.LPAREN) && p.peek().Type == token.METHOD {
		cd.Methods = append(cd.Methods, p.methodDef())
	}

	p.expect(token.RPAREN)
	return cd
}

func (p *Parser) varDec() *ast.VarDec {
	p.expect(token.LPAREN)
	p.expect(token.VARDEC)
	typ := p.typeRef()
	name := p.expect(token.IDENTIFIER)
	p.expect(token.RPAREN)
	return &ast.VarDec{Type: typ, Name: name.Lexeme}
}

func (p *Parser) typeRef() *ast.TypeRef {
	switch p.cur.Type {
	case token.INT, token.BOOLEAN, token.VOID, token.IDENTIFIER:
		tok := p.advance()
		return &ast.TypeRef{Name: tok.Lexeme}
	default:
		p.failAt("expected a type name")
		return nil
	}
}

func (p *Parser) paramGroup() []*ast.VarDec {
	p.expect(token.LPAREN)
	var params []*ast.VarDec
	for !p.check(token.RPAREN) {
		params = append(params, p.varDec())
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) constructor() *ast.Constructor {
	p.expect(token.LPAREN)
	p.expect(token.INIT)
	ctor := &ast.Constructor{Params: p.paramGroup()}

	if p.check(token.LPAREN) && p.peek().Type == token.SUPER {
		ctor.Super = p.superCall()
	}

	for !p.check(token.RPAREN) {
		ctor.Body = append(ctor.Body, p.statement())
	}
	p.expect(token.RPAREN)
	return ctor
}

func (p *Parser) superCall() *ast.SuperCall {
	p.expect(token.LPAREN)
	p.expect(token.SUPER)
	var args []ast.Expr
	for !p.check(token.RPAREN) {
		args = append(args, p.expression())
	}
	p.expect(token.RPAREN)
	return &ast.SuperCall{Args: args}
}

func (p *Parser) methodDef() *ast.MethodDef {
	p.expect(token.LPAREN)
	p.expect(token.METHOD)
	name := p.expect(token.IDENTIFIER)
	params := p.paramGroup()
	retType := p.typeRef()

	md := &ast.MethodDef{Name: name.Lexeme, Params: params, RetType: retType}
	for !p.check(token.RPAREN) {
		md.Body = append(md.Body, p.statement())
	}
	p.expect(token.RPAREN)
	return md
}

func (p *Parser) statement() ast.Stmt {
	if p.check(token.BREAK) {
		p.advance()
		return &ast.Break{}
	}

	if !p.check(token.LPAREN) {
		p.failAt("expected a statement")
	}

	switch p.peek().Type {
	case token.VARDEC:
		return p.varDec()
	case token.SINGLE_EQUAL:
		return p.assignStmt()
	case token.WHILE:
		return p.whileStmt()
	case token.IF:
		return p.ifStmt()
	case token.RETURN:
		return p.returnStmt()
	case token.CALL:
		return p.callForm()
	case token.PRINTLN:
		return p.printlnForm()
	default:
		p.advance()
		p.failAt("unexpected form in statement position")
		return nil
	}
}

func (p *Parser) assignStmt() *ast.Assign {
	p.expect(token.LPAREN)
	p.expect(token.SINGLE_EQUAL)
	name := p.expect(token.IDENTIFIER)
	val := p.expression()
	p.expect(token.RPAREN)
	return &ast.Assign{Name: name.Lexeme, Value: val}
}

func (p *Parser) whileStmt() *ast.While {
	p.expect(token.LPAREN)
	p.expect(token.WHILE)
	cond := p.expression()
	var body []ast.Stmt
	for !p.check(token.RPAREN) {
		body = append(body, p.statement())
	}
	p.expect(token.RPAREN)
	return &ast.While{Cond: cond, Body: body}
}

func (p *Parser) ifStmt() *ast.If {
	p.expect(token.LPAREN)
	p.expect(token.IF)
	cond := p.expression()
	then := p.statement()
	var els ast.Stmt
	if !p.check(token.RPAREN) {
		els = p.statement()
	}
	p.expect(token.RPAREN)
	return &ast.If{Cond: cond, Then: then, Else: els}
}

func (p *Parser) returnStmt() *ast.Return {
	p.expect(token.LPAREN)
	p.expect(token.RETURN)
	var val ast.Expr
	if !p.check(token.RPAREN) {
		val = p.expression()
	}
	p.expect(token.RPAREN)
	return &ast.Return{Value: val}
}

// callForm parses `(call exp IDENT exp*)`, valid in both statement and
// expression position.
func (p *Parser) callForm() *ast.Call {
	p.expect(token.LPAREN)
	p.expect(token.CALL)
	recv := p.expression()
	method := p.expect(token.IDENTIFIER)
	var args []ast.Expr
	for !p.check(token.RPAREN) {
		args = append(args, p.expression())
	}
	p.expect(token.RPAREN)
	return &ast.Call{Receiver: recv, Method: method.Lexeme, Args: args}
}

// printlnForm parses `(println exp)`, valid in both statement and
// expression position.
func (p *Parser) printlnForm() *ast.Println {
	p.expect(token.LPAREN)
	p.expect(token.PRINTLN)
	val := p.expression()
	p.expect(token.RPAREN)
	return &ast.Println{Value: val}
}

var binOps = map[token.Type]bool{
	token.PLUS:   true,
	token.MINUS:  true,
	token.STAR:   true,
	token.SLASH:  true,
	token.LESS:   true,
	token.EQUALS: true,
}

func (p *Parser) expression() ast.Expr {
	switch p.cur.Type {
	case token.IDENTIFIER:
		tok := p.advance()
		return &ast.Ident{Name: tok.Lexeme}
	case token.THIS:
		p.advance()
		return &ast.This{}
	case token.TRUE, token.FALSE, token.INT_LITERAL:
		tok := p.advance()
		return &ast.Literal{Text: tok.Lexeme}
	case token.LPAREN:
		switch next := p.peek().Type; {
		case next == token.PRINTLN:
			return p.printlnForm()
		case next == token.CALL:
			return p.callForm()
		case next == token.NEW:
			return p.newExpr()
		case binOps[next]:
			return p.binOpExpr()
		default:
			p.advance()
			p.failAt("unexpected form in expression position")
			return nil
		}
	default:
		p.failAt("expected an expression")
		return nil
	}
}

func (p *Parser) newExpr() *ast.New {
	p.expect(token.LPAREN)
	p.expect(token.NEW)
	class := p.expect(token.IDENTIFIER)
	var args []ast.Expr
	for !p.check(token.RPAREN) {
		args = append(args, p.expression())
	}
	p.expect(token.RPAREN)
	return &ast.New{Class: class.Lexeme, Args: args}
}

func (p *Parser) binOpExpr() *ast.BinOp {
	p.expect(token.LPAREN)
	op := p.advance()
	left := p.expression()
	right := p.expression()
	p.expect(token.RPAREN)
	return &ast.BinOp{Op: op.Lexeme, Left: left, Right: right}
}
