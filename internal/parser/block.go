package parser

import (
	"github.com/ferra-lang/ferra/internal/ast"
	"github.com/ferra-lang/ferra/internal/diag"
	"github.com/ferra-lang/ferra/internal/lexer"
	"github.com/ferra-lang/ferra/internal/source"
)

// parseBlock parses a block in either of its two shapes — braced
// `{ stmt* }` or indented `: NEWLINE INDENT stmt* DEDENT` — plus the
// unsafe/async/labeled variants (spec §4.8). Style consistency across a
// single parse is enforced via p.style: the first block's shape commits
// the parse to that style, and later blocks.
func (p *Parser) parseBlock() (*ast.Block, bool) {
	start := p.cur().Span
	isUnsafe, isAsync := false, false
	for {
		switch p.cur().Type {
		case lexer.UNSAFE:
			isUnsafe = true
			p.advance()
			continue
		case lexer.ASYNC:
			isAsync = true
			p.advance()
			continue
		}
		break
	}

	label := ""
	if p.check(lexer.IDENT) && p.peek().Type == lexer.COLON &&
		(p.peekAhead(2).Type == lexer.LBRACE || p.peekAhead(2).Type == lexer.NEWLINE) {
		label = p.advance().Lexeme
		p.advance() // consume ':'
	}

	var block *ast.Block
	var ok bool
	switch {
	case p.check(lexer.LBRACE):
		block, ok = p.parseBracedBlock()
	case p.check(lexer.COLON):
		block, ok = p.parseIndentedBlock()
	default:
		p.add(diag.ExpectedBlock(p.describe(p.cur()), p.cur().Span))
		return nil, false
	}
	if !ok {
		return nil, false
	}

	block.IsUnsafe = isUnsafe
	block.IsAsync = isAsync
	block.Label = label
	block.SetSpan(mergeSpan(start, block.Span()))
	return block, true
}

func (p *Parser) commitBlockStyle(s blockStyle, span source.Span) bool {
	if p.style == blockStyleUnset {
		p.style = s
		return true
	}
	if p.style != s {
		p.add(diag.MixedBlockStyles(span))
		return false
	}
	return true
}

func (p *Parser) parseBracedBlock() (*ast.Block, bool) {
	start := p.cur().Span
	if !p.commitBlockStyle(blockStyleBraced, start) {
		return nil, false
	}
	p.advance() // consume '{'
	p.scopeDepth++

	stmts, tail, ok := p.parseBlockBody(func() bool { return p.check(lexer.RBRACE) })
	p.scopeDepth--
	if !ok {
		return nil, false
	}

	end, ok := p.expect(lexer.RBRACE, "to close block")
	if !ok {
		return nil, false
	}
	return ast.NewBlock(stmts, tail, true, p.scopeDepth, mergeSpan(start, end.Span)), true
}

func (p *Parser) parseIndentedBlock() (*ast.Block, bool) {
	start := p.cur().Span
	if !p.commitBlockStyle(blockStyleIndented, start) {
		return nil, false
	}
	p.advance() // consume ':'

	if _, ok := p.expect(lexer.NEWLINE, "after ':' to start an indented block"); !ok {
		return nil, false
	}
	if _, ok := p.expect(lexer.INDENT, "to begin an indented block"); !ok {
		return nil, false
	}
	p.scopeDepth++

	stmts, tail, ok := p.parseBlockBody(func() bool {
		return p.check(lexer.DEDENT) || p.check(lexer.RBRACE)
	})
	p.scopeDepth--
	if !ok {
		return nil, false
	}

	end := p.lastConsumed
	if p.check(lexer.DEDENT) {
		end = p.advance().Span
	}
	return ast.NewBlock(stmts, tail, false, p.scopeDepth, mergeSpan(start, end)), true
}
