package parser

import (
	"github.com/ferra-lang/ferra/internal/ast"
	"github.com/ferra-lang/ferra/internal/lexer"
)

// parseAttributes collects zero or more leading `#[...]` attributes
// (spec §4.7/§4.9; grounded on parse_attributes in
// crates/ferra_parser/src/statement/parser.rs). Absence is not an
// error — callers decide whether a non-empty result is valid for
// whatever follows.
func (p *Parser) parseAttributes() ([]*ast.Attribute, bool) {
	var attrs []*ast.Attribute
	for p.check(lexer.HASH) {
		a, ok := p.parseAttribute()
		if !ok {
			return nil, false
		}
		attrs = append(attrs, a)
		p.skipNewlines()
	}
	return attrs, true
}

// parseAttribute handles `#[ path ('::' path)* ('(' expr,* ')')? ]`.
func (p *Parser) parseAttribute() (*ast.Attribute, bool) {
	start := p.advance().Span // consume '#'

	if _, ok := p.expect(lexer.LBRACKET, "to start an attribute"); !ok {
		return nil, false
	}

	first, ok := p.expect(lexer.IDENT, "as an attribute name")
	if !ok {
		return nil, false
	}
	path := []string{first.Lexeme}
	for p.match(lexer.DOUBLE_COLON) {
		seg, ok := p.expect(lexer.IDENT, "in attribute path")
		if !ok {
			return nil, false
		}
		path = append(path, seg.Lexeme)
	}

	var args []ast.Expr
	if p.match(lexer.LPAREN) {
		if !p.check(lexer.RPAREN) {
			for {
				a, ok := p.parseExpression(bpLowest)
				if !ok {
					return nil, false
				}
				args = append(args, a)
				if !p.match(lexer.COMMA) {
					break
				}
				if p.check(lexer.RPAREN) {
					break
				}
			}
		}
		if _, ok := p.expect(lexer.RPAREN, "to close attribute arguments"); !ok {
			return nil, false
		}
	}

	end, ok := p.expect(lexer.RBRACKET, "to close an attribute")
	if !ok {
		return nil, false
	}
	return ast.NewAttribute(path, args, mergeSpan(start, end.Span)), true
}
