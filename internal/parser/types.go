package parser

import (
	"github.com/ferra-lang/ferra/internal/ast"
	"github.com/ferra-lang/ferra/internal/diag"
	"github.com/ferra-lang/ferra/internal/lexer"
)

func isTypeStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.IDENT, lexer.FN, lexer.EXTERN, lexer.ASTERISK, lexer.LPAREN, lexer.LBRACKET:
		return true
	default:
		return false
	}
}

// parseType dispatches on the first token per spec §4.3.
func (p *Parser) parseType() (ast.Type, bool) {
	switch p.cur().Type {
	case lexer.FN:
		return p.parseFunctionType(false, "")
	case lexer.EXTERN:
		return p.parseExternFunctionType()
	case lexer.ASTERISK:
		return p.parsePointerType()
	case lexer.LPAREN:
		return p.parseTupleType()
	case lexer.LBRACKET:
		return p.parseArrayType()
	case lexer.IDENT:
		return p.parseIdentifierOrGenericType()
	default:
		p.add(diag.ExpectedType(p.describe(p.cur()), p.cur().Span))
		return nil, false
	}
}

func (p *Parser) parseIdentifierOrGenericType() (ast.Type, bool) {
	tok := p.advance()
	base := ast.NewIdentifierType(tok.Lexeme, tok.Span)

	if !p.check(lexer.LT) {
		return base, true
	}
	return p.parseGenericTypeArgs(base)
}

// parseGenericTypeArgs handles `Name<T, ...>` once `<` has been seen
// after a parsed base type (spec §4.4's parse_generic_type(base)).
func (p *Parser) parseGenericTypeArgs(base ast.Type) (ast.Type, bool) {
	p.advance() // consume '<'

	res, ok := parseDelimited[ast.Type](p, delimitedConfig{
		Closing:               lexer.GT,
		AllowEmpty:            true,
		AllowTrailing:         true,
		MissingElementContext: "in generic argument list",
	}, func(int) (ast.Type, bool) {
		return p.parseType()
	})
	if !ok {
		return nil, false
	}

	span := mergeSpan(base.Span(), p.lastConsumed)
	return ast.NewGenericType(base, res.Items, span), true
}

func (p *Parser) parseFunctionType(isExtern bool, abi string) (ast.Type, bool) {
	start := p.cur().Span
	p.advance() // consume 'fn'

	if _, ok := p.expect(lexer.LPAREN, "after 'fn' in function type"); !ok {
		return nil, false
	}

	var params []ast.Type
	if !p.check(lexer.RPAREN) {
		res, ok := parseDelimited[ast.Type](p, delimitedConfig{
			Closing:               lexer.RPAREN,
			AllowTrailing:         true,
			MissingElementContext: "in function type parameter list",
		}, func(int) (ast.Type, bool) { return p.parseType() })
		if !ok {
			return nil, false
		}
		params = res.Items
	} else {
		p.advance()
	}

	var ret ast.Type
	end := p.lastConsumed
	if p.match(lexer.ARROW) {
		t, ok := p.parseType()
		if !ok {
			return nil, false
		}
		ret = t
		end = ret.Span()
	} else {
		ret = ast.NewTupleType(nil, p.cur().Span)
	}

	return ast.NewFunctionType(params, ret, isExtern, abi, mergeSpan(start, end)), true
}

// parseExternFunctionType handles `extern "ABI"? fn(...) -> ...` in type
// position (distinct from a top-level ExternBlock item).
func (p *Parser) parseExternFunctionType() (ast.Type, bool) {
	start := p.cur().Span
	p.advance() // consume 'extern'

	abi := ""
	if p.check(lexer.STRING) {
		abi = p.advance().Literal.Str
	}

	if !p.check(lexer.FN) {
		p.reportUnexpected("'fn'", "after 'extern' in function type")
		return nil, false
	}
	t, ok := p.parseFunctionType(true, abi)
	if !ok {
		return nil, false
	}
	t.SetSpan(mergeSpan(start, t.Span()))
	return t, true
}

func (p *Parser) parsePointerType() (ast.Type, bool) {
	start := p.cur().Span
	p.advance() // consume '*'
	target, ok := p.parseType()
	if !ok {
		return nil, false
	}
	return ast.NewPointerType(target, mergeSpan(start, target.Span())), true
}

// parseTupleType handles `()` (unit), `(T)` (grouped alias for T, per
// SPEC_FULL.md §D.4), and `(T, ...)` / `(T,)` (tuple, one-tuple requires
// the trailing comma).
func (p *Parser) parseTupleType() (ast.Type, bool) {
	start := p.cur().Span
	p.advance() // consume '('

	if p.check(lexer.RPAREN) {
		end := p.advance().Span
		return ast.NewTupleType(nil, mergeSpan(start, end)), true
	}

	first, ok := p.parseType()
	if !ok {
		return nil, false
	}

	if p.check(lexer.RPAREN) {
		p.advance()
		return first, true // `(T)` is a grouped alias for T
	}

	if !p.match(lexer.COMMA) {
		p.reportUnexpected("',' or ')'", "in tuple type")
		return nil, false
	}

	elems := []ast.Type{first}
	if p.check(lexer.RPAREN) {
		end := p.advance().Span
		return ast.NewTupleType(elems, mergeSpan(start, end)), true // `(T,)` one-tuple
	}

	res, ok := parseDelimited[ast.Type](p, delimitedConfig{
		Closing:               lexer.RPAREN,
		AllowTrailing:         true,
		MissingElementContext: "in tuple type",
	}, func(int) (ast.Type, bool) { return p.parseType() })
	if !ok {
		return nil, false
	}
	elems = append(elems, res.Items...)
	return ast.NewTupleType(elems, mergeSpan(start, p.lastConsumed)), true
}

func (p *Parser) parseArrayType() (ast.Type, bool) {
	start := p.cur().Span
	p.advance() // consume '['
	elem, ok := p.parseType()
	if !ok {
		return nil, false
	}
	end, ok := p.expect(lexer.RBRACKET, "to close array type")
	if !ok {
		return nil, false
	}
	return ast.NewArrayType(elem, mergeSpan(start, end.Span)), true
}
