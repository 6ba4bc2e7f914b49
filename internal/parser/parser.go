// Package parser implements the hybrid recursive-descent + Pratt parser
// described in spec §4: a type parser, generic parser, pattern parser,
// Pratt expression parser, statement parser, block parser, and program
// parser, all sharing one token Stream and one diagnostic Collector.
// Every failing production returns (nil, false) rather than panicking;
// recovery is driven explicitly by the caller choosing a sync-token
// class and resuming, per spec §4.10/§9.
package parser

import (
	"github.com/ferra-lang/ferra/internal/arena"
	"github.com/ferra-lang/ferra/internal/ast"
	"github.com/ferra-lang/ferra/internal/diag"
	"github.com/ferra-lang/ferra/internal/lexer"
	"github.com/ferra-lang/ferra/internal/source"
)

// blockStyle tracks which block shape (braced or indented) the first
// block in a parse committed to; spec §4.8 requires every later block in
// the same parse to match it.
type blockStyle int

const (
	blockStyleUnset blockStyle = iota
	blockStyleBraced
	blockStyleIndented
)

// Parser holds the shared state for one compile: a token stream, a
// diagnostic collector, and the per-node-kind arenas used for the
// concrete auxiliary record types allocated in tight loops (parameters,
// data class fields). Other AST nodes are allocated directly by their
// New* constructors; Go's GC reclaims a whole parent-free tree in one
// shot exactly as an arena reset would, once the caller drops the root.
type Parser struct {
	filename string
	stream   *lexer.Stream
	collect  *diag.Collector

	paramArena *arena.Arena[ast.Param]
	fieldArena *arena.Arena[ast.DataClassField]

	style      blockStyle
	scopeDepth int

	// lastConsumed is the span of the most recently consumed token,
	// letting a production compute "start..end of what I just matched"
	// without Stream supporting negative lookahead.
	lastConsumed source.Span
}

// New lexes input in full and returns a Parser positioned at its first
// token. Any Error tokens the lexer produced are folded into the
// collector up front so the parser reports them the same way it reports
// its own UnexpectedToken diagnostics (spec §7).
func New(filename, input string) *Parser {
	lx := lexer.New(filename, input)
	tokens := lx.Lex()

	p := &Parser{
		filename:   filename,
		stream:     lexer.NewStream(tokens),
		collect:    diag.NewCollector(diag.DefaultMaxDiagnostics),
		paramArena: arena.New[ast.Param](),
		fieldArena: arena.New[ast.DataClassField](),
	}
	for _, d := range lx.Diagnostics {
		p.collect.Add(d)
	}
	return p
}

// Diagnostics returns every diagnostic collected so far, in encounter
// order.
func (p *Parser) Diagnostics() []diag.Diagnostic { return p.collect.All() }

// Report packages the collected diagnostics into a DiagnosticReport
// (spec §6's parser surface, output (b)).
func (p *Parser) Report() *diag.Report {
	r := diag.NewReport(p.filename)
	r.AddAll(p.collect.All())
	return r
}

// ParseFile lexes and parses a complete source file in one call, the
// top-level entry point a compiler driver uses (spec §4.9's program
// parser): outputs (a) the CompilationUnit AST and (b) a DiagnosticReport.
func ParseFile(filename, input string) (*ast.CompilationUnit, *diag.Report) {
	p := New(filename, input)
	unit := p.ParseCompilationUnit()
	return unit, p.Report()
}

// cur/peek/peekAhead/advance wrap the Stream with the parser's sole
// lookahead window, matching the teacher's curTok/peekTok idiom but
// backed by the pre-lexed Stream rather than a live lexer.
func (p *Parser) cur() lexer.Token            { return p.stream.Peek() }
func (p *Parser) peek() lexer.Token           { return p.stream.PeekAhead(1) }
func (p *Parser) peekAhead(n int) lexer.Token { return p.stream.PeekAhead(n) }
func (p *Parser) advance() lexer.Token {
	tok := p.stream.Consume()
	p.lastConsumed = tok.Span
	return tok
}
func (p *Parser) atEnd() bool                 { return p.stream.IsAtEnd() }

// check reports whether the current token has type tt.
func (p *Parser) check(tt lexer.TokenType) bool { return p.cur().Type == tt }

// match consumes and returns true if the current token has type tt.
func (p *Parser) match(tt lexer.TokenType) bool {
	if p.check(tt) {
		p.advance()
		return true
	}
	return false
}

// skipNewlines consumes NEWLINE tokens that are purely layout noise
// between constructs (e.g. before a top-level item); it never crosses
// INDENT/DEDENT, since those carry structural meaning the caller must
// observe itself.
func (p *Parser) skipNewlines() {
	for p.check(lexer.NEWLINE) {
		p.advance()
	}
}

// expect requires the current token to have type tt, reporting
// UnexpectedToken and returning the zero Token/false otherwise. On
// success it consumes and returns the matched token.
func (p *Parser) expect(tt lexer.TokenType, context string) (lexer.Token, bool) {
	if p.check(tt) {
		return p.advance(), true
	}
	p.reportUnexpected(string(tt), context)
	return lexer.Token{}, false
}

func (p *Parser) describe(t lexer.Token) string {
	switch t.Type {
	case lexer.EOF:
		return "end of file"
	case lexer.IDENT:
		return "identifier `" + t.Lexeme + "`"
	default:
		if t.Lexeme != "" {
			return "`" + t.Lexeme + "`"
		}
		return "`" + string(t.Type) + "`"
	}
}

func (p *Parser) reportUnexpected(expected, context string) {
	found := p.describe(p.cur())
	if context != "" {
		expected = expected + " " + context
	}
	if p.check(lexer.EOF) {
		p.add(diag.UnexpectedEOF(context, p.cur().Span))
		return
	}
	p.add(diag.UnexpectedToken(expected, found, p.cur().Span))
}

// add records a diagnostic and returns whether parsing may continue
// (false once the collector cap is reached, or on a Fatal diagnostic).
func (p *Parser) add(d diag.Diagnostic) bool {
	ok := p.collect.Add(d)
	return ok && !d.ShouldStopParsing()
}

// ---- sync-token classes (spec §4.10) ----

func isStatementStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.LET, lexer.VAR, lexer.IF, lexer.WHILE, lexer.FOR,
		lexer.RETURN, lexer.BREAK, lexer.CONTINUE, lexer.MATCH, lexer.HASH:
		return true
	default:
		return false
	}
}

func isDeclarationStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.LET, lexer.VAR, lexer.FN, lexer.DATA, lexer.EXTERN,
		lexer.PUB, lexer.UNSAFE, lexer.ASYNC, lexer.STATIC, lexer.HASH:
		return true
	default:
		return false
	}
}

func isBlockEnd(tt lexer.TokenType) bool {
	return tt == lexer.RBRACE || tt == lexer.DEDENT
}

func isStatementTerminator(tt lexer.TokenType) bool {
	switch tt {
	case lexer.SEMICOLON, lexer.NEWLINE, lexer.RBRACE, lexer.DEDENT, lexer.EOF:
		return true
	default:
		return false
	}
}

func isExpressionStart(tt lexer.TokenType) bool {
	switch tt {
	case lexer.IDENT, lexer.INT, lexer.FLOAT, lexer.STRING, lexer.CHAR,
		lexer.BYTE, lexer.TRUE, lexer.FALSE, lexer.LPAREN, lexer.LBRACKET,
		lexer.MINUS, lexer.BANG:
		return true
	default:
		return false
	}
}

// ---- recovery strategies (spec §4.10/§9) ----

// panicMode skips tokens until one matches sync, returning it without
// consuming it. It always advances at least one token (unless already at
// a sync token or EOF), guaranteeing recovery monotonicity (property 9).
func (p *Parser) panicMode(sync func(lexer.TokenType) bool) lexer.Token {
	if sync(p.cur().Type) || p.check(lexer.EOF) {
		return p.cur()
	}
	p.advance()
	for !p.check(lexer.EOF) && !sync(p.cur().Type) {
		p.advance()
	}
	return p.cur()
}

func (p *Parser) recoverToStatement() lexer.Token {
	return p.panicMode(isStatementStart)
}

func (p *Parser) recoverToDeclaration() lexer.Token {
	return p.panicMode(isDeclarationStart)
}

func (p *Parser) recoverToBlockEnd() lexer.Token {
	return p.panicMode(isBlockEnd)
}

func (p *Parser) recoverToExpression() lexer.Token {
	return p.panicMode(isExpressionStart)
}

// smartRecover tries a context-specific production-based recovery first
// (supplied by the caller), falling back to panic-mode within sync if
// that production declines to handle the situation.
func (p *Parser) smartRecover(production func() bool, sync func(lexer.TokenType) bool) lexer.Token {
	if production != nil && production() {
		return p.cur()
	}
	return p.panicMode(sync)
}

func mergeSpan(a, b source.Span) source.Span {
	return source.Combine(a, b)
}
