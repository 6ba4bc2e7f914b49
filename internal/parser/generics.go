package parser

import (
	"github.com/ferra-lang/ferra/internal/ast"
	"github.com/ferra-lang/ferra/internal/lexer"
)

// parseGenericParams parses the optional `<...> where ...` suffix
// attached to an item (spec §4.4). Returns (nil, true) if no `<` is
// present — absence is not an error.
func (p *Parser) parseGenericParams() (*ast.GenericParams, bool) {
	if !p.check(lexer.LT) {
		return nil, true
	}
	start := p.cur().Span
	p.advance() // consume '<'

	res, ok := parseDelimited[*ast.GenericParam](p, delimitedConfig{
		Closing:               lexer.GT,
		AllowEmpty:            true,
		AllowTrailing:         true,
		MissingElementContext: "in generic parameter list",
	}, func(int) (*ast.GenericParam, bool) { return p.parseGenericParam() })
	if !ok {
		return nil, false
	}

	var where *ast.WhereClause
	end := p.lastConsumed
	if p.check(lexer.WHERE) {
		w, ok := p.parseWhereClause()
		if !ok {
			return nil, false
		}
		where = w
		end = where.Span()
	}

	return ast.NewGenericParams(res.Items, where, mergeSpan(start, end)), true
}

// parseGenericParam handles `ident (: Bound (+ Bound)*)? (= Type)?`, a
// type parameter (spec §4.4). The apostrophe-prefixed lifetime form from
// the grammar note has no dedicated token in this lexer's surface
// grammar, so IsLifetime is always false in this version; the field
// remains on GenericParam for forward compatibility.
func (p *Parser) parseGenericParam() (*ast.GenericParam, bool) {
	start := p.cur().Span

	if !p.check(lexer.IDENT) {
		p.reportUnexpected("a generic parameter", "in generic parameter list")
		return nil, false
	}
	name := p.advance()

	var bounds []string
	if p.match(lexer.COLON) {
		for {
			b, ok := p.expect(lexer.IDENT, "as a bound")
			if !ok {
				return nil, false
			}
			bounds = append(bounds, b.Lexeme)
			if !p.match(lexer.PLUS) {
				break
			}
		}
	}

	var def ast.Type
	end := p.lastConsumed
	if p.match(lexer.ASSIGN) {
		t, ok := p.parseType()
		if !ok {
			return nil, false
		}
		def = t
		end = def.Span()
	}

	return ast.NewGenericParam(name.Lexeme, bounds, def, false, mergeSpan(start, end)), true
}

// parseWhereClause handles `where ident : Bound (+ Bound)* (',' ...)* ','?`.
func (p *Parser) parseWhereClause() (*ast.WhereClause, bool) {
	start := p.cur().Span
	p.advance() // consume 'where'

	var constraints []*ast.WhereConstraint
	for {
		c, ok := p.parseWhereConstraint()
		if !ok {
			return nil, false
		}
		constraints = append(constraints, c)
		if !p.match(lexer.COMMA) {
			break
		}
		if !p.check(lexer.IDENT) {
			break // trailing comma
		}
	}

	end := p.lastConsumed
	if len(constraints) > 0 {
		end = constraints[len(constraints)-1].Span()
	}
	return ast.NewWhereClause(constraints, mergeSpan(start, end)), true
}

func (p *Parser) parseWhereConstraint() (*ast.WhereConstraint, bool) {
	name, ok := p.expect(lexer.IDENT, "in where clause")
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(lexer.COLON, "after type name in where clause"); !ok {
		return nil, false
	}
	var bounds []string
	for {
		b, ok := p.expect(lexer.IDENT, "as a bound")
		if !ok {
			return nil, false
		}
		bounds = append(bounds, b.Lexeme)
		if !p.match(lexer.PLUS) {
			break
		}
	}
	return ast.NewWhereConstraint(name.Lexeme, bounds, mergeSpan(name.Span, p.lastConsumed)), true
}
