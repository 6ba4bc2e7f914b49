package parser

import (
	"github.com/ferra-lang/ferra/internal/ast"
	"github.com/ferra-lang/ferra/internal/diag"
	"github.com/ferra-lang/ferra/internal/lexer"
)

// Binding powers (spec §4.6), low to high. Each level is spaced by 2 so
// a left-associative operator can recurse at bp+1 and a right-
// associative one can recurse at the same bp, without colliding with
// the next level up.
const (
	bpLowest = iota * 2
	bpAssign     // right-assoc
	bpCoalesce   // ??
	bpOr         // ||
	bpAnd        // &&
	bpEquality   // == !=
	bpComparison // < <= > >=
	bpBitOr      // |
	bpBitXor     // ^
	bpBitAnd     // &
	bpShift      // << >>
	bpAdditive   // + -
	bpMultiplicative
	bpUnary
	bpPostfix
)

type assoc int

const (
	assocLeft assoc = iota
	assocRight
)

type opInfo struct {
	bp    int
	assoc assoc
	op    ast.BinaryOp
}

var binaryOps = map[lexer.TokenType]opInfo{
	lexer.ASSIGN:   {bpAssign, assocRight, ast.OpAssign},
	lexer.COALESCE: {bpCoalesce, assocRight, ast.OpCoalesce},
	lexer.LOGICAL_OR:  {bpOr, assocLeft, ast.OpOr},
	lexer.OR:          {bpOr, assocLeft, ast.OpOr},
	lexer.LOGICAL_AND: {bpAnd, assocLeft, ast.OpAnd},
	lexer.AND:         {bpAnd, assocLeft, ast.OpAnd},
	lexer.EQ:          {bpEquality, assocLeft, ast.OpEq},
	lexer.NOT_EQ:      {bpEquality, assocLeft, ast.OpNotEq},
	lexer.LT:          {bpComparison, assocLeft, ast.OpLt},
	lexer.LE:          {bpComparison, assocLeft, ast.OpLe},
	lexer.GT:          {bpComparison, assocLeft, ast.OpGt},
	lexer.GE:          {bpComparison, assocLeft, ast.OpGe},
	lexer.PIPE:        {bpBitOr, assocLeft, ast.OpBitOr},
	lexer.CARET:       {bpBitXor, assocLeft, ast.OpBitXor},
	lexer.AMPERSAND:   {bpBitAnd, assocLeft, ast.OpBitAnd},
	lexer.SHL:         {bpShift, assocLeft, ast.OpShl},
	lexer.SHR:         {bpShift, assocLeft, ast.OpShr},
	lexer.PLUS:        {bpAdditive, assocLeft, ast.OpAdd},
	lexer.MINUS:       {bpAdditive, assocLeft, ast.OpSub},
	lexer.ASTERISK:    {bpMultiplicative, assocLeft, ast.OpMul},
	lexer.SLASH:       {bpMultiplicative, assocLeft, ast.OpDiv},
	lexer.PERCENT:     {bpMultiplicative, assocLeft, ast.OpMod},
}

// parseExpression is the Pratt driver (spec §4.6): NUD on the first
// token, then a loop over LED productions while the operator's binding
// power is at least minBP.
func (p *Parser) parseExpression(minBP int) (ast.Expr, bool) {
	left, ok := p.parseNUD()
	if !ok {
		return nil, false
	}

	for {
		tt := p.cur().Type

		if info, isBinary := binaryOps[tt]; isBinary {
			if info.bp < minBP {
				break
			}
			nextMin := info.bp + 1
			if info.assoc == assocRight {
				nextMin = info.bp
			}
			p.advance()
			right, ok := p.parseExpression(nextMin)
			if !ok {
				return nil, false
			}
			left = ast.NewBinaryExpr(info.op, left, right, mergeSpan(left.Span(), right.Span()))
			continue
		}

		if bpPostfix < minBP {
			break
		}

		switch tt {
		case lexer.DOT:
			p.advance()
			name, ok := p.expect(lexer.IDENT, "after '.'")
			if !ok {
				return nil, false
			}
			if name.Lexeme == "await" {
				left = ast.NewAwaitExpr(left, mergeSpan(left.Span(), name.Span))
			} else {
				left = ast.NewMemberAccessExpr(left, name.Lexeme, mergeSpan(left.Span(), name.Span))
			}
			continue
		case lexer.LPAREN:
			call, ok := p.parseCallArgs(left)
			if !ok {
				return nil, false
			}
			left = call
			continue
		case lexer.LBRACKET:
			idx, ok := p.parseIndexSuffix(left)
			if !ok {
				return nil, false
			}
			left = idx
			continue
		case lexer.QUESTION:
			span := p.advance().Span
			left = ast.NewUnaryExpr(ast.OpTry, left, true, mergeSpan(left.Span(), span))
			continue
		}

		break
	}

	return left, true
}

// parseNUD dispatches the null-denotation: literals, identifiers
// (including macro invocations), prefix unary operators, grouped
// expressions, and array literals (spec §4.6).
func (p *Parser) parseNUD() (ast.Expr, bool) {
	tok := p.cur()
	switch tok.Type {
	case lexer.INT, lexer.FLOAT, lexer.STRING, lexer.CHAR, lexer.BYTE, lexer.TRUE, lexer.FALSE:
		p.advance()
		return ast.NewLiteralExpr(tok.Literal, tok.Span), true
	case lexer.IDENT:
		return p.parseIdentifierOrMacro()
	case lexer.MINUS:
		return p.parseUnaryPrefix(ast.OpNeg)
	case lexer.BANG:
		return p.parseUnaryPrefix(ast.OpNot)
	case lexer.LPAREN:
		return p.parseGroupedOrTuple()
	case lexer.LBRACKET:
		return p.parseArrayLiteral()
	case lexer.IF:
		return p.parseIfExpr()
	case lexer.MATCH:
		return p.parseMatchExpr()
	case lexer.LBRACE, lexer.UNSAFE, lexer.ASYNC:
		return p.parseBlockAsExpr()
	default:
		p.add(diag.ExpectedExpression(p.describe(p.cur()), p.cur().Span))
		return nil, false
	}
}

func (p *Parser) parseUnaryPrefix(op ast.UnaryOp) (ast.Expr, bool) {
	start := p.advance().Span
	operand, ok := p.parseExpression(bpUnary)
	if !ok {
		return nil, false
	}
	return ast.NewUnaryExpr(op, operand, false, mergeSpan(start, operand.Span())), true
}

func (p *Parser) parseIdentifierOrMacro() (ast.Expr, bool) {
	tok := p.advance()
	if p.check(lexer.BANG) && macroOpener(p.peek().Type) {
		return p.parseMacroInvocation(tok)
	}
	if p.check(lexer.DOUBLE_COLON) {
		return p.parseQualifiedIdentifier(tok)
	}
	return ast.NewIdentifierExpr(tok.Lexeme, tok.Span), true
}

// parseQualifiedIdentifier handles a `::`-joined path, resolved lexically
// rather than as a chain of MemberAccess (spec §4.6).
func (p *Parser) parseQualifiedIdentifier(first lexer.Token) (ast.Expr, bool) {
	segments := []string{first.Lexeme}
	end := first.Span
	for p.match(lexer.DOUBLE_COLON) {
		seg, ok := p.expect(lexer.IDENT, "after '::'")
		if !ok {
			return nil, false
		}
		segments = append(segments, seg.Lexeme)
		end = seg.Span
	}
	return ast.NewQualifiedIdentifierExpr(segments, mergeSpan(first.Span, end)), true
}

func macroOpener(tt lexer.TokenType) bool {
	return tt == lexer.LPAREN || tt == lexer.LBRACKET || tt == lexer.LBRACE
}

func macroCloser(open lexer.TokenType) lexer.TokenType {
	switch open {
	case lexer.LPAREN:
		return lexer.RPAREN
	case lexer.LBRACKET:
		return lexer.RBRACKET
	default:
		return lexer.RBRACE
	}
}

// parseMacroInvocation captures `ident ! ( ... )` (or `[...]`/`{...}`)
// as an opaque token run, per spec §4.6's Non-goal on macro expansion.
func (p *Parser) parseMacroInvocation(name lexer.Token) (ast.Expr, bool) {
	p.advance() // consume '!'
	open := p.advance() // consume opening delimiter
	closer := macroCloser(open.Type)

	depth := 1
	var captured []lexer.Token
	for depth > 0 {
		if p.check(lexer.EOF) {
			p.reportUnexpected("'"+string(closer)+"'", "to close macro invocation")
			return nil, false
		}
		tok := p.cur()
		if tok.Type == open.Type {
			depth++
		} else if tok.Type == closer {
			depth--
			if depth == 0 {
				p.advance()
				break
			}
		}
		captured = append(captured, tok)
		p.advance()
	}

	return ast.NewMacroExpr(name.Lexeme, open.Type, captured, mergeSpan(name.Span, p.lastConsumed)), true
}

// parseGroupedOrTuple handles `(e)` (Grouped), `()` (unit tuple), and
// `(e, ...)` (Tuple), matching the type parser's analogous cases.
func (p *Parser) parseGroupedOrTuple() (ast.Expr, bool) {
	start := p.cur().Span
	p.advance() // consume '('

	if p.check(lexer.RPAREN) {
		end := p.advance().Span
		return ast.NewTupleExpr(nil, mergeSpan(start, end)), true
	}

	first, ok := p.parseExpression(bpLowest)
	if !ok {
		return nil, false
	}

	if p.check(lexer.RPAREN) {
		end := p.advance().Span
		return ast.NewGroupedExpr(first, mergeSpan(start, end)), true
	}

	if !p.match(lexer.COMMA) {
		p.reportUnexpected("',' or ')'", "in parenthesized expression")
		return nil, false
	}

	elems := []ast.Expr{first}
	if p.check(lexer.RPAREN) {
		end := p.advance().Span
		return ast.NewTupleExpr(elems, mergeSpan(start, end)), true
	}

	res, ok := parseDelimited[ast.Expr](p, delimitedConfig{
		Closing:               lexer.RPAREN,
		AllowTrailing:         true,
		MissingElementContext: "in tuple expression",
	}, func(int) (ast.Expr, bool) { return p.parseExpression(bpLowest) })
	if !ok {
		return nil, false
	}
	elems = append(elems, res.Items...)
	return ast.NewTupleExpr(elems, mergeSpan(start, p.lastConsumed)), true
}

func (p *Parser) parseArrayLiteral() (ast.Expr, bool) {
	start := p.cur().Span
	p.advance() // consume '['

	res, ok := parseDelimited[ast.Expr](p, delimitedConfig{
		Closing:               lexer.RBRACKET,
		AllowEmpty:            true,
		AllowTrailing:         true,
		MissingElementContext: "in array literal",
	}, func(int) (ast.Expr, bool) { return p.parseExpression(bpLowest) })
	if !ok {
		return nil, false
	}
	return ast.NewArrayExpr(res.Items, mergeSpan(start, p.lastConsumed)), true
}

func (p *Parser) parseCallArgs(callee ast.Expr) (ast.Expr, bool) {
	p.advance() // consume '('
	res, ok := parseDelimited[ast.Expr](p, delimitedConfig{
		Closing:               lexer.RPAREN,
		AllowEmpty:            true,
		AllowTrailing:         true,
		MissingElementContext: "in call argument list",
	}, func(int) (ast.Expr, bool) { return p.parseExpression(bpLowest) })
	if !ok {
		return nil, false
	}
	return ast.NewCallExpr(callee, res.Items, mergeSpan(callee.Span(), p.lastConsumed)), true
}

func (p *Parser) parseIndexSuffix(target ast.Expr) (ast.Expr, bool) {
	p.advance() // consume '['
	idx, ok := p.parseExpression(bpLowest)
	if !ok {
		return nil, false
	}
	end, ok := p.expect(lexer.RBRACKET, "to close index expression")
	if !ok {
		return nil, false
	}
	return ast.NewIndexExpr(target, idx, mergeSpan(target.Span(), end.Span)), true
}

func (p *Parser) parseIfExpr() (ast.Expr, bool) {
	start := p.advance().Span // consume 'if'
	cond, ok := p.parseExpression(bpLowest)
	if !ok {
		return nil, false
	}
	then, ok := p.parseBlock()
	if !ok {
		return nil, false
	}
	var els *ast.Block
	end := then.Span()
	if p.match(lexer.ELSE) {
		e, ok := p.parseBlock()
		if !ok {
			return nil, false
		}
		els = e
		end = els.Span()
	}
	return ast.NewIfExpr(cond, then, els, mergeSpan(start, end)), true
}

func (p *Parser) parseMatchExpr() (ast.Expr, bool) {
	start := p.advance().Span // consume 'match'
	subject, ok := p.parseExpression(bpLowest)
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(lexer.LBRACE, "to start match arms"); !ok {
		return nil, false
	}

	var arms []*ast.MatchArm
	for !p.check(lexer.RBRACE) && !p.check(lexer.EOF) {
		pat, ok := p.parsePattern()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(lexer.FATARROW, "after match pattern"); !ok {
			return nil, false
		}
		body, ok := p.parseExpression(bpLowest)
		if !ok {
			return nil, false
		}
		arms = append(arms, ast.NewMatchArm(pat, body, mergeSpan(pat.Span(), body.Span())))
		if !p.match(lexer.COMMA) {
			p.match(lexer.NEWLINE)
		}
	}

	end, ok := p.expect(lexer.RBRACE, "to close match expression")
	if !ok {
		return nil, false
	}
	return ast.NewMatchExpr(subject, arms, mergeSpan(start, end.Span)), true
}

// parseBlockAsExpr parses a Block in expression position, including the
// unsafe/async variants (spec §4.8).
func (p *Parser) parseBlockAsExpr() (ast.Expr, bool) {
	return p.parseBlock()
}
