package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/ferra-lang/ferra/internal/diag"
	"github.com/ferra-lang/ferra/internal/source"
)

// Lexer converts UTF-8 source text into a token vector. Lex is infallible
// at the API level: lexical failures become ERROR tokens embedded in the
// stream rather than Go errors, per §4.1.
type Lexer struct {
	filename string
	input    []rune
	pos      int  // index of current rune in input
	ch       rune // current rune, 0 at EOF
	offset   int  // byte offset of ch
	line     int
	column   int

	indentStack    []int
	pendingDedents int
	atLineStart    bool

	Diagnostics []diag.Diagnostic
}

// New creates a lexer over input. filename is used only for diagnostic
// spans and may be empty.
func New(filename, input string) *Lexer {
	l := &Lexer{
		filename:    filename,
		input:       []rune(input),
		pos:         -1,
		line:        1,
		column:      0,
		indentStack: []int{0},
		atLineStart: true,
	}
	l.read()
	return l
}

func (l *Lexer) read() {
	if l.pos >= 0 && l.pos < len(l.input) {
		l.offset += utf8.RuneLen(l.input[l.pos])
	}
	l.pos++
	if l.pos >= len(l.input) {
		if l.pos > 0 && l.input[l.pos-1] == '\n' {
			l.line++
			l.column = 1
		} else if l.column == 0 {
			l.column = 1
		} else {
			l.column++
		}
		l.ch = 0
		return
	}
	l.ch = l.input[l.pos]
	if l.pos > 0 && l.input[l.pos-1] == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

func (l *Lexer) peek() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

func (l *Lexer) peekAt(n int) rune {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) pos0() source.Position {
	return source.Position{Line: l.line, Column: l.column, Offset: l.offset}
}

func (l *Lexer) spanFrom(start source.Position) source.Span {
	return source.Span{Filename: l.filename, Start: start, End: l.pos0()}
}

func (l *Lexer) addDiag(d diag.Diagnostic) {
	l.Diagnostics = append(l.Diagnostics, d)
}

func (l *Lexer) errorToken(start source.Position, lexeme, message string) Token {
	span := l.spanFrom(start)
	l.addDiag(diag.SyntaxError(message, span))
	return Token{
		Type:    ILLEGAL,
		Lexeme:  lexeme,
		Literal: LiteralValue{Kind: LiteralString, Str: message},
		Span:    span,
	}
}

// Lex runs the full lexer to completion and returns the token vector,
// always ending in a single EOF token preceded by one DEDENT per level
// still open on the indentation stack. Inside an unclosed `(`, `[` or
// `{` a line break is whitespace: no NEWLINE, INDENT or DEDENT is emitted.
func (l *Lexer) Lex() []Token {
	var toks []Token
	depth := 0 // open brackets not yet closed
	for {
		if l.pendingDedents > 0 {
			start := l.pos0()
			l.pendingDedents--
			toks = append(toks, Token{Type: DEDENT, Span: l.spanFrom(start)})
			continue
		}

		if l.atLineStart {
			tok, blank, done := l.scanLineStart()
			if done {
				break
			}
			if blank {
				toks = append(toks, tok)
				continue
			}
			if tok.Type != "" {
				toks = append(toks, tok)
				continue
			}
		}

		if l.ch == 0 {
			break
		}

		if l.ch == '\n' {
			if depth > 0 {
				l.read()
				continue
			}
			start := l.pos0()
			l.read()
			toks = append(toks, Token{Type: NEWLINE, Lexeme: "\n", Span: l.spanFrom(start)})
			l.atLineStart = true
			continue
		}

		tok, skip := l.scanToken()
		if skip {
			continue
		}
		switch tok.Type {
		case LPAREN, LBRACKET, LBRACE:
			depth++
		case RPAREN, RBRACKET, RBRACE:
			if depth > 0 {
				depth--
			}
		}
		toks = append(toks, tok)
	}

	for len(l.indentStack) > 1 {
		l.indentStack = l.indentStack[:len(l.indentStack)-1]
		start := l.pos0()
		toks = append(toks, Token{Type: DEDENT, Span: l.spanFrom(start)})
	}
	eofStart := l.pos0()
	toks = append(toks, Token{Type: EOF, Span: l.spanFrom(eofStart)})
	return toks
}

// scanLineStart implements the column scan described in §4.1: count
// leading spaces (1 col) and tabs (4 col), decide between blank-line
// NEWLINE, INDENT, DEDENT, or falling through to normal dispatch.
// done reports true when the input is exhausted during the scan.
func (l *Lexer) scanLineStart() (tok Token, blank bool, done bool) {
	col := 0
	for l.ch == ' ' || l.ch == '\t' {
		if l.ch == '\t' {
			col += 4
		} else {
			col++
		}
		l.read()
	}

	if l.ch == 0 {
		return Token{}, false, true
	}
	if l.ch == '\n' {
		start := l.pos0()
		l.read()
		l.atLineStart = true
		return Token{Type: NEWLINE, Lexeme: "\n", Span: l.spanFrom(start)}, true, false
	}

	top := l.indentStack[len(l.indentStack)-1]
	switch {
	case col > top:
		l.indentStack = append(l.indentStack, col)
		l.atLineStart = false
		start := l.pos0()
		return Token{Type: INDENT, Span: l.spanFrom(start)}, false, false
	case col < top:
		for len(l.indentStack) > 1 && l.indentStack[len(l.indentStack)-1] > col {
			l.indentStack = l.indentStack[:len(l.indentStack)-1]
			l.pendingDedents++
		}
		l.atLineStart = false
		return Token{}, false, false
	default:
		l.atLineStart = false
		return Token{}, false, false
	}
}

// scanToken dispatches on the current character, producing exactly one
// token, or (Token{}, true) if the call consumed pure trivia (a comment)
// and the caller should loop again.
func (l *Lexer) scanToken() (Token, bool) {
	start := l.pos0()

	switch {
	case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
		l.read()
		return Token{}, true

	case l.ch == '/' && l.peek() == '/':
		for l.ch != '\n' && l.ch != 0 {
			l.read()
		}
		return Token{}, true

	case l.ch == '/' && l.peek() == '*':
		begin := l.pos
		l.read()
		l.read()
		depth := 1
		for depth > 0 {
			switch {
			case l.ch == 0:
				return l.errorToken(start, string(l.input[begin:l.pos]), "unterminated block comment"), false
			case l.ch == '/' && l.peek() == '*':
				l.read()
				l.read()
				depth++
			case l.ch == '*' && l.peek() == '/':
				l.read()
				l.read()
				depth--
			default:
				l.read()
			}
		}
		return Token{}, true

	case (l.ch == 'b' || l.ch == 'B') && (l.peek() == '\'' || l.peek() == '"'):
		return l.scanByteLiteral(start), false

	case isIdentStart(l.ch):
		return l.scanIdentifier(start), false

	case isDigit(l.ch):
		return l.scanNumber(start), false

	case l.ch == '.' && isDigit(l.peek()):
		return l.scanNumber(start), false

	case l.ch == '"':
		return l.scanString(start), false

	case l.ch == '\'':
		return l.scanChar(start), false

	default:
		return l.scanOperator(start), false
	}
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentContinue(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' ||
		unicode.In(ch, unicode.Mn, unicode.Mc)
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func (l *Lexer) scanIdentifier(start source.Position) Token {
	if l.ch == '_' && !isIdentContinue(l.peek()) {
		l.read()
		return Token{Type: UNDERSCORE, Lexeme: "_", Span: l.spanFrom(start)}
	}
	begin := l.pos
	for isIdentContinue(l.ch) {
		l.read()
	}
	raw := string(l.input[begin:l.pos])
	normalized := norm.NFC.String(raw)
	kind := LookupIdent(normalized)
	span := l.spanFrom(start)
	switch kind {
	case TRUE:
		return Token{Type: TRUE, Lexeme: normalized, Literal: LiteralValue{Kind: LiteralBoolean, Bool: true}, Span: span}
	case FALSE:
		return Token{Type: FALSE, Lexeme: normalized, Literal: LiteralValue{Kind: LiteralBoolean, Bool: false}, Span: span}
	default:
		return Token{Type: kind, Lexeme: normalized, Span: span}
	}
}

func (l *Lexer) scanNumber(start source.Position) Token {
	begin := l.pos

	if l.ch == '0' && (l.peek() == 'x' || l.peek() == 'X') {
		l.read()
		l.read()
		digitsStart := l.pos
		for isHexDigit(l.ch) || l.ch == '_' {
			l.read()
		}
		return l.finishIntLiteral(start, begin, digitsStart, 16, "0x")
	}
	if l.ch == '0' && (l.peek() == 'o' || l.peek() == 'O') {
		l.read()
		l.read()
		digitsStart := l.pos
		for (l.ch >= '0' && l.ch <= '7') || l.ch == '_' {
			l.read()
		}
		return l.finishIntLiteral(start, begin, digitsStart, 8, "0o")
	}
	if l.ch == '0' && (l.peek() == 'b' || l.peek() == 'B') {
		l.read()
		l.read()
		digitsStart := l.pos
		for l.ch == '0' || l.ch == '1' || l.ch == '_' {
			l.read()
		}
		return l.finishIntLiteral(start, begin, digitsStart, 2, "0b")
	}

	isFloat := false
	if l.ch == '.' {
		// leading-dot float, e.g. `.5`
		l.read()
		isFloat = true
		for isDigit(l.ch) || l.ch == '_' {
			l.read()
		}
	} else {
		for isDigit(l.ch) || l.ch == '_' {
			l.read()
		}
		// `.` introduces a float fraction in base 10, unless it is the
		// start of a `..`/`..=` range operator. A bare trailing dot
		// (`7.`) is accepted with an empty fraction.
		if l.ch == '.' && l.peek() != '.' {
			isFloat = true
			l.read()
			for isDigit(l.ch) || l.ch == '_' {
				l.read()
			}
		}
	}

	expDigitsAhead := isDigit(l.peek()) ||
		((l.peek() == '+' || l.peek() == '-') && isDigit(l.peekAt(2)))
	if (l.ch == 'e' || l.ch == 'E') && expDigitsAhead {
		isFloat = true
		l.read()
		if l.ch == '+' || l.ch == '-' {
			l.read()
		}
		for isDigit(l.ch) || l.ch == '_' {
			l.read()
		}
	}

	raw := string(l.input[begin:l.pos])
	span := l.spanFrom(start)
	stripped := strings.ReplaceAll(raw, "_", "")

	if strings.HasSuffix(raw, "_") {
		return l.errorToken(start, raw, "trailing underscore in numeric literal")
	}

	if isFloat {
		f, err := strconv.ParseFloat(stripped, 64)
		if err != nil {
			return l.errorToken(start, raw, "invalid float literal "+strconv.Quote(raw))
		}
		return Token{Type: FLOAT, Lexeme: raw, Literal: LiteralValue{Kind: LiteralFloat, Float: f}, Span: span}
	}
	n, err := strconv.ParseInt(stripped, 10, 64)
	if err != nil {
		return l.errorToken(start, raw, "invalid integer literal "+strconv.Quote(raw))
	}
	return Token{Type: INT, Lexeme: raw, Literal: LiteralValue{Kind: LiteralInteger, Integer: n}, Span: span}
}

func (l *Lexer) finishIntLiteral(start source.Position, begin, digitsStart, base int, prefix string) Token {
	raw := string(l.input[begin:l.pos])
	digits := string(l.input[digitsStart:l.pos])
	if digits == "" {
		return l.errorToken(start, raw, "numeric literal "+strconv.Quote(prefix)+" has no digits")
	}
	if strings.HasSuffix(digits, "_") {
		return l.errorToken(start, raw, "trailing underscore in numeric literal")
	}
	stripped := strings.ReplaceAll(digits, "_", "")
	n, err := strconv.ParseInt(stripped, base, 64)
	if err != nil {
		return l.errorToken(start, raw, "invalid integer literal "+strconv.Quote(raw))
	}
	return Token{Type: INT, Lexeme: raw, Literal: LiteralValue{Kind: LiteralInteger, Integer: n}, Span: l.spanFrom(start)}
}

func decodeEscape(ch rune) (rune, bool) {
	switch ch {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	case '\\':
		return '\\', true
	case '\'':
		return '\'', true
	case '"':
		return '"', true
	default:
		return 0, false
	}
}

func (l *Lexer) scanString(start source.Position) Token {
	begin := l.pos
	l.read() // opening quote
	var decoded strings.Builder
	for {
		switch {
		case l.ch == 0:
			raw := string(l.input[begin:l.pos])
			return l.errorToken(start, raw, "unterminated string literal (reached end of file)")
		case l.ch == '\n':
			raw := string(l.input[begin:l.pos])
			return l.errorToken(start, raw, "unterminated string literal (newline before closing quote)")
		case l.ch == '"':
			l.read()
			raw := string(l.input[begin:l.pos])
			return Token{Type: STRING, Lexeme: raw, Literal: LiteralValue{Kind: LiteralString, Str: decoded.String()}, Span: l.spanFrom(start)}
		case l.ch == '\\':
			l.read()
			if r, ok := decodeEscape(l.ch); ok {
				decoded.WriteRune(r)
				l.read()
				continue
			}
			raw := string(l.input[begin:l.pos+1])
			return l.errorToken(start, raw, "invalid escape sequence in string literal")
		default:
			decoded.WriteRune(l.ch)
			l.read()
		}
	}
}

func (l *Lexer) scanChar(start source.Position) Token {
	begin := l.pos
	l.read() // opening quote

	if l.ch == '\'' {
		l.read()
		raw := string(l.input[begin:l.pos])
		return l.errorToken(start, raw, "empty character literal")
	}

	var value rune
	if l.ch == '\\' {
		l.read()
		r, ok := decodeEscape(l.ch)
		if !ok {
			raw := string(l.input[begin : l.pos+1])
			return l.errorToken(start, raw, "invalid escape sequence in character literal")
		}
		value = r
		l.read()
	} else if l.ch == 0 || l.ch == '\n' {
		raw := string(l.input[begin:l.pos])
		return l.errorToken(start, raw, "unterminated character literal")
	} else {
		value = l.ch
		l.read()
	}

	if l.ch != '\'' {
		for l.ch != '\'' && l.ch != 0 && l.ch != '\n' {
			l.read()
		}
		raw := string(l.input[begin:l.pos])
		if l.ch == '\'' {
			l.read()
			raw = string(l.input[begin:l.pos])
		}
		return l.errorToken(start, raw, "multi-character literal")
	}
	l.read()
	raw := string(l.input[begin:l.pos])
	return Token{Type: CHAR, Lexeme: raw, Literal: LiteralValue{Kind: LiteralChar, Char: value}, Span: l.spanFrom(start)}
}

func (l *Lexer) scanByteLiteral(start source.Position) Token {
	begin := l.pos
	l.read() // consume 'b'
	if l.ch == '"' {
		strTok := l.scanString(start)
		strTok.Lexeme = string(l.input[begin:l.pos])
		return strTok
	}
	// b'c'
	l.read() // opening quote
	var value byte
	if l.ch == '\\' {
		l.read()
		r, ok := decodeEscape(l.ch)
		if !ok || r > 255 {
			raw := string(l.input[begin : l.pos+1])
			return l.errorToken(start, raw, "invalid escape sequence in byte literal")
		}
		value = byte(r)
		l.read()
	} else {
		if l.ch > 255 {
			raw := string(l.input[begin:l.pos])
			return l.errorToken(start, raw, "byte literal out of range")
		}
		value = byte(l.ch)
		l.read()
	}
	if l.ch != '\'' {
		raw := string(l.input[begin:l.pos])
		return l.errorToken(start, raw, "malformed byte literal")
	}
	l.read()
	raw := string(l.input[begin:l.pos])
	return Token{Type: BYTE, Lexeme: raw, Literal: LiteralValue{Kind: LiteralByte, Byte: value}, Span: l.spanFrom(start)}
}

// operator table, maximal munch, longest prefixes checked first.
func (l *Lexer) scanOperator(start source.Position) Token {
	c0, c1, c2 := l.ch, l.peek(), l.peekAt(2)

	three := map[string]TokenType{
		"<<=": SHL_ASSIGN,
		">>=": SHR_ASSIGN,
		"..=": RANGE_EQ,
	}
	if t, ok := three[string([]rune{c0, c1, c2})]; ok {
		l.read()
		l.read()
		l.read()
		return l.makeOp(start, t)
	}

	two := map[string]TokenType{
		"==": EQ, "!=": NOT_EQ, "<=": LE, ">=": GE,
		"&&": LOGICAL_AND, "||": LOGICAL_OR,
		"+=": PLUS_ASSIGN, "-=": MINUS_ASSIGN, "*=": STAR_ASSIGN, "/=": SLASH_ASSIGN,
		"%=": PERCENT_ASSIGN, "&=": AMP_ASSIGN, "|=": PIPE_ASSIGN, "^=": CARET_ASSIGN,
		"<<": SHL, ">>": SHR, "->": ARROW, "=>": FATARROW, "..": RANGE, "::": DOUBLE_COLON,
		"??": COALESCE,
	}
	if t, ok := two[string([]rune{c0, c1})]; ok {
		l.read()
		l.read()
		return l.makeOp(start, t)
	}

	one := map[rune]TokenType{
		'<': LT, '>': GT, '=': ASSIGN, '!': BANG, '?': QUESTION, '.': DOT,
		',': COMMA, ':': COLON, ';': SEMICOLON,
		'(': LPAREN, ')': RPAREN, '{': LBRACE, '}': RBRACE, '[': LBRACKET, ']': RBRACKET,
		'+': PLUS, '-': MINUS, '*': ASTERISK, '/': SLASH, '%': PERCENT,
		'&': AMPERSAND, '|': PIPE, '^': CARET, '@': AT, '#': HASH,
	}
	if t, ok := one[c0]; ok {
		l.read()
		return l.makeOp(start, t)
	}

	raw := string(c0)
	l.read()
	return l.errorToken(start, raw, "illegal character "+strconv.QuoteRune(c0))
}

func (l *Lexer) makeOp(start source.Position, t TokenType) Token {
	span := l.spanFrom(start)
	return Token{Type: t, Lexeme: string(t), Span: span}
}
