package parser

import (
	"github.com/ferra-lang/ferra/internal/ast"
	"github.com/ferra-lang/ferra/internal/lexer"
)

// parsePattern handles or-patterns, the lowest precedence level (spec
// §4.5): `parse_primary_pattern ('|' parse_primary_pattern)*`, flattened
// rather than nested. Each alternative checks for its own trailing guard
// before the next `|` is considered (grounded on check_for_guard_or_binding
// running inside parse_primary_pattern in
// crates/ferra_parser/src/pratt/parser.rs), so `a | b if c` parses as
// `Or[a, Guard(b, c)]` — the guard binds to the single alternative the
// parser just finished building, never to the whole disjunction.
func (p *Parser) parsePattern() (ast.Pattern, bool) {
	first, ok := p.parsePatternAlternative()
	if !ok {
		return nil, false
	}

	if !p.check(lexer.PIPE) {
		return first, true
	}

	alts := []ast.Pattern{first}
	start := first.Span()
	for p.match(lexer.PIPE) {
		alt, ok := p.parsePatternAlternative()
		if !ok {
			return nil, false
		}
		alts = append(alts, alt)
	}
	return ast.NewOrPattern(alts, mergeSpan(start, alts[len(alts)-1].Span())), true
}

// parsePatternAlternative parses one or-pattern alternative plus its own
// optional trailing guard.
func (p *Parser) parsePatternAlternative() (ast.Pattern, bool) {
	prim, ok := p.parsePrimaryPattern()
	if !ok {
		return nil, false
	}
	return p.parseTrailingGuard(prim)
}

// parseTrailingGuard wraps inner in a GuardPattern if `if` follows.
func (p *Parser) parseTrailingGuard(inner ast.Pattern) (ast.Pattern, bool) {
	if !p.match(lexer.IF) {
		return inner, true
	}
	cond, ok := p.parseExpression(bpLowest)
	if !ok {
		return nil, false
	}
	return ast.NewGuardPattern(inner, cond, mergeSpan(inner.Span(), cond.Span())), true
}

// parsePrimaryPattern handles everything but or/guard (spec §4.5).
func (p *Parser) parsePrimaryPattern() (ast.Pattern, bool) {
	switch p.cur().Type {
	case lexer.INT, lexer.FLOAT, lexer.STRING, lexer.TRUE, lexer.FALSE:
		return p.parseLiteralOrRangePattern()
	case lexer.UNDERSCORE:
		span := p.advance().Span
		return ast.NewWildcardPattern(span), true
	case lexer.IDENT:
		return p.parseIdentifierLikePattern()
	case lexer.LBRACKET:
		return p.parseSlicePattern()
	case lexer.RANGE, lexer.RANGE_EQ:
		return p.parseRangePattern(nil)
	default:
		p.reportUnexpected("a pattern", "")
		return nil, false
	}
}

func (p *Parser) parseLiteralOrRangePattern() (ast.Pattern, bool) {
	tok := p.advance()
	lit := ast.NewLiteralPattern(tok.Literal, tok.Span)

	if tok.Type == lexer.INT && (p.check(lexer.RANGE) || p.check(lexer.RANGE_EQ)) {
		return p.parseRangePattern(lit)
	}
	return lit, true
}

// parseRangePattern handles `start..end`, `start..=end`, and the elided
// forms `..end`, `start..`, `..` (spec §4.5). low may be nil when no
// start bound was already parsed by the caller.
func (p *Parser) parseRangePattern(low ast.Pattern) (ast.Pattern, bool) {
	start := p.cur().Span
	if low != nil {
		start = low.Span()
	}
	inclusive := p.check(lexer.RANGE_EQ)
	p.advance() // consume '..' or '..='

	var high ast.Pattern
	end := p.lastConsumed
	if p.check(lexer.INT) || p.check(lexer.FLOAT) || p.check(lexer.IDENT) {
		h, ok := p.parsePrimaryPattern()
		if !ok {
			return nil, false
		}
		high = h
		end = high.Span()
	}

	return ast.NewRangePattern(low, high, inclusive, mergeSpan(start, end)), true
}

// parseIdentifierLikePattern handles Identifier, Wildcard already
// handled above, DataClassPattern (`Name { ... }`), and BindingPattern
// (`name @ pattern`).
func (p *Parser) parseIdentifierLikePattern() (ast.Pattern, bool) {
	tok := p.advance()

	if p.check(lexer.LBRACE) {
		return p.parseDataClassPattern(tok)
	}

	if p.match(lexer.AT) {
		sub, ok := p.parsePrimaryPattern()
		if !ok {
			return nil, false
		}
		return ast.NewBindingPattern(tok.Lexeme, sub, mergeSpan(tok.Span, sub.Span())), true
	}

	ident := ast.Pattern(ast.NewIdentifierPattern(tok.Lexeme, tok.Span))
	if tok.Type == lexer.IDENT && (p.check(lexer.RANGE) || p.check(lexer.RANGE_EQ)) {
		return p.parseRangePattern(ident)
	}
	return ident, true
}

func (p *Parser) parseDataClassPattern(name lexer.Token) (ast.Pattern, bool) {
	p.advance() // consume '{'

	var fields []*ast.FieldPattern
	hasRest := false

	if !p.check(lexer.RBRACE) {
		for {
			if p.match(lexer.RANGE) {
				hasRest = true
				break
			}
			fname, ok := p.expect(lexer.IDENT, "as a data class field pattern")
			if !ok {
				return nil, false
			}
			if p.match(lexer.COLON) {
				sub, ok := p.parsePattern()
				if !ok {
					return nil, false
				}
				fields = append(fields, ast.NewFieldPattern(fname.Lexeme, sub, false, mergeSpan(fname.Span, sub.Span())))
			} else {
				fields = append(fields, ast.NewFieldPattern(fname.Lexeme, nil, true, fname.Span))
			}
			if !p.match(lexer.COMMA) {
				break
			}
			if p.check(lexer.RBRACE) {
				break
			}
		}
	}

	end, ok := p.expect(lexer.RBRACE, "to close data class pattern")
	if !ok {
		return nil, false
	}
	return ast.NewDataClassPattern(name.Lexeme, fields, hasRest, mergeSpan(name.Span, end.Span)), true
}

// isRestSub reports whether a BindingPattern's sub-pattern marks it as a
// named rest-binder (`name @ ..`). A bare `..` parses via
// parseRangePattern(nil) into a boundless RangePattern, not a
// WildcardPattern, since `..` is lexed as RANGE rather than UNDERSCORE.
func isRestSub(sub ast.Pattern) bool {
	switch s := sub.(type) {
	case *ast.WildcardPattern:
		return true
	case *ast.RangePattern:
		return s.Low == nil && s.High == nil
	default:
		return false
	}
}

// parseSlicePattern handles `[elem, elem, .., elem]`, with at most one
// `..` (optionally `name @ ..`) marking the rest position.
func (p *Parser) parseSlicePattern() (ast.Pattern, bool) {
	start := p.cur().Span
	p.advance() // consume '['

	var elems []ast.Pattern
	restIdx := -1

	if !p.check(lexer.RBRACKET) {
		for {
			if p.check(lexer.RANGE) {
				if restIdx != -1 {
					p.reportUnexpected("at most one '..' rest element", "in slice pattern")
					return nil, false
				}
				restIdx = len(elems)
				span := p.advance().Span
				elems = append(elems, ast.NewWildcardPattern(span))
			} else {
				e, ok := p.parsePrimaryPattern()
				if !ok {
					return nil, false
				}
				if restIdx == -1 {
					if bp, isBind := e.(*ast.BindingPattern); isBind && isRestSub(bp.Sub) {
						restIdx = len(elems)
					}
				}
				elems = append(elems, e)
			}
			if !p.match(lexer.COMMA) {
				break
			}
			if p.check(lexer.RBRACKET) {
				break
			}
		}
	}

	end, ok := p.expect(lexer.RBRACKET, "to close slice pattern")
	if !ok {
		return nil, false
	}
	return ast.NewSlicePattern(elems, restIdx, mergeSpan(start, end.Span)), true
}
