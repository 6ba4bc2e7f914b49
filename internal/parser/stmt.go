package parser

import (
	"github.com/ferra-lang/ferra/internal/ast"
	"github.com/ferra-lang/ferra/internal/diag"
	"github.com/ferra-lang/ferra/internal/lexer"
)

// parseBlockBody parses statements until end reports true (on the
// current token), producing the statement list and an optional tail
// expression — a final expression with no statement terminator becomes
// the block's value (spec §4.7/§9).
func (p *Parser) parseBlockBody(end func() bool) ([]ast.Stmt, ast.Expr, bool) {
	var stmts []ast.Stmt
	var tail ast.Expr

	for {
		for p.check(lexer.NEWLINE) || p.check(lexer.SEMICOLON) {
			p.advance()
		}
		if end() || p.check(lexer.EOF) {
			break
		}

		before := p.stream.Mark()
		stmt, exprTail, ok := p.parseStatement()
		if !ok {
			p.recoverToStatement()
			if p.stream.Mark() == before {
				p.advance() // guarantee monotonic progress (property 9)
			}
			continue
		}
		if stmt != nil {
			stmts = append(stmts, stmt)
			continue
		}
		if exprTail != nil {
			if end() || p.check(lexer.EOF) {
				tail = exprTail
				break
			}
			// A bare expression not immediately followed by a terminator
			// or the block's end is itself a (missing-separator) error;
			// treat it as an expression statement and keep going.
			stmts = append(stmts, ast.NewExprStmt(exprTail, false, exprTail.Span()))
		}
	}

	return stmts, tail, true
}

// parseStatement dispatches on the first token (spec §4.7). Returns
// either a non-nil stmt, or a non-nil tail expression candidate (when the
// input was a bare expression that parseBlockBody must decide is a tail
// or an expression statement), never both.
func (p *Parser) parseStatement() (ast.Stmt, ast.Expr, bool) {
	attrStart := p.cur().Span
	attrs, ok := p.parseAttributes()
	if !ok {
		return nil, nil, false
	}

	switch p.cur().Type {
	case lexer.LET, lexer.VAR:
		s, ok := p.parseVariableDeclStmt()
		return s, nil, ok
	case lexer.IF:
		s, ok := p.parseIfStmt()
		return s, nil, ok
	case lexer.WHILE:
		s, ok := p.parseWhileStmt()
		return s, nil, ok
	case lexer.FOR:
		s, ok := p.parseForStmt()
		return s, nil, ok
	case lexer.RETURN:
		s, ok := p.parseReturnStmt()
		return s, nil, ok
	case lexer.BREAK:
		s, ok := p.parseBreakStmt()
		return s, nil, ok
	case lexer.CONTINUE:
		s, ok := p.parseContinueStmt()
		return s, nil, ok
	default:
		stmt, tail, ok := p.parseExpressionStatement()
		if ok && len(attrs) > 0 {
			// Neither a bare tail expression nor an ExprStmt has anywhere to
			// attach attributes to (spec §4.7): only FunctionDecl/
			// DataClassDecl carry Attributes.
			p.add(diag.UnsupportedAttributeTarget("pure expression statement", attrStart))
			return nil, nil, false
		}
		return stmt, tail, ok
	}
}

func (p *Parser) parseVariableDeclStmt() (ast.Stmt, bool) {
	start := p.cur().Span
	isMutable := p.advance().Type == lexer.VAR // consumes 'let' or 'var'

	name, ok := p.expect(lexer.IDENT, "after 'let'/'var'")
	if !ok {
		return nil, false
	}

	var typ ast.Type
	if p.match(lexer.COLON) {
		t, ok := p.parseType()
		if !ok {
			return nil, false
		}
		typ = t
	}

	var init ast.Expr
	end := p.lastConsumed
	if p.match(lexer.ASSIGN) {
		e, ok := p.parseExpression(bpLowest)
		if !ok {
			return nil, false
		}
		init = e
		end = init.Span()
	}

	p.match(lexer.SEMICOLON)

	return ast.NewVariableDeclStmt(name.Lexeme, isMutable, typ, init, mergeSpan(start, end)), true
}

func (p *Parser) parseIfStmt() (ast.Stmt, bool) {
	start := p.advance().Span // consume 'if'
	cond, ok := p.parseExpression(bpLowest)
	if !ok {
		return nil, false
	}
	then, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	var els ast.Stmt
	end := then.Span()
	if p.match(lexer.ELSE) {
		if p.check(lexer.IF) {
			e, ok := p.parseIfStmt()
			if !ok {
				return nil, false
			}
			els = e
			end = els.Span()
		} else {
			e, ok := p.parseBlock()
			if !ok {
				return nil, false
			}
			els = e
			end = els.Span()
		}
	}
	return ast.NewIfStmt(cond, then, els, mergeSpan(start, end)), true
}

func (p *Parser) parseWhileStmt() (ast.Stmt, bool) {
	start := p.advance().Span // consume 'while'
	cond, ok := p.parseExpression(bpLowest)
	if !ok {
		return nil, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return ast.NewWhileStmt(cond, body, "", mergeSpan(start, body.Span())), true
}

func (p *Parser) parseForStmt() (ast.Stmt, bool) {
	start := p.advance().Span // consume 'for'
	name, ok := p.expect(lexer.IDENT, "after 'for'")
	if !ok {
		return nil, false
	}
	pattern := ast.Pattern(ast.NewIdentifierPattern(name.Lexeme, name.Span))
	if _, ok := p.expect(lexer.IN, "after for-loop binding"); !ok {
		return nil, false
	}
	iterable, ok := p.parseExpression(bpLowest)
	if !ok {
		return nil, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	return ast.NewForStmt(pattern, iterable, body, "", mergeSpan(start, body.Span())), true
}

func (p *Parser) parseReturnStmt() (ast.Stmt, bool) {
	start := p.advance().Span // consume 'return'
	var value ast.Expr
	end := start
	if isExpressionStart(p.cur().Type) {
		v, ok := p.parseExpression(bpLowest)
		if !ok {
			return nil, false
		}
		value = v
		end = value.Span()
	}
	p.match(lexer.SEMICOLON)
	return ast.NewReturnStmt(value, mergeSpan(start, end)), true
}

func (p *Parser) parseBreakStmt() (ast.Stmt, bool) {
	start := p.advance().Span // consume 'break'
	label := ""
	if p.check(lexer.IDENT) {
		label = p.advance().Lexeme
	}
	p.match(lexer.SEMICOLON)
	return ast.NewBreakStmt(label, mergeSpan(start, p.lastConsumed)), true
}

func (p *Parser) parseContinueStmt() (ast.Stmt, bool) {
	start := p.advance().Span // consume 'continue'
	label := ""
	if p.check(lexer.IDENT) {
		label = p.advance().Lexeme
	}
	p.match(lexer.SEMICOLON)
	return ast.NewContinueStmt(label, mergeSpan(start, p.lastConsumed)), true
}

// parseExpressionStatement parses a bare expression. If it is terminated
// by `;`/NEWLINE it is definitely a statement; otherwise it is returned
// as a tail candidate for the caller (parseBlockBody) to resolve.
func (p *Parser) parseExpressionStatement() (ast.Stmt, ast.Expr, bool) {
	expr, ok := p.parseExpression(bpLowest)
	if !ok {
		return nil, nil, false
	}
	if p.match(lexer.SEMICOLON) {
		return ast.NewExprStmt(expr, true, expr.Span()), nil, true
	}
	if p.check(lexer.NEWLINE) {
		p.advance()
		return ast.NewExprStmt(expr, true, expr.Span()), nil, true
	}
	return nil, expr, true
}
