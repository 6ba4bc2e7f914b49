package lexer

import "testing"

func kinds(toks []Token) []TokenType {
	out := make([]TokenType, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func assertKinds(t *testing.T, got []Token, want []TokenType) {
	t.Helper()
	gk := kinds(got)
	if len(gk) != len(want) {
		t.Fatalf("token count mismatch: got %v, want %v", gk, want)
	}
	for i := range want {
		if gk[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s (full: %v)", i, gk[i], want[i], gk)
		}
	}
}

func TestLexBasicLet(t *testing.T) {
	toks := New("t.fe", "let x = 10;").Lex()
	assertKinds(t, toks, []TokenType{LET, IDENT, ASSIGN, INT, SEMICOLON, EOF})
}

func TestLexEmptySourceIsJustEOF(t *testing.T) {
	toks := New("t.fe", "").Lex()
	assertKinds(t, toks, []TokenType{EOF})
}

func TestLexWhitespaceOnlyIsNewlinesThenEOF(t *testing.T) {
	toks := New("t.fe", "\n\n  \n").Lex()
	assertKinds(t, toks, []TokenType{NEWLINE, NEWLINE, NEWLINE, EOF})
}

func TestLexIndentationBalance(t *testing.T) {
	src := "if x:\n    y\n    z\nw\n"
	toks := New("t.fe", src).Lex()
	var indents, dedents int
	for _, tok := range toks {
		switch tok.Type {
		case INDENT:
			indents++
		case DEDENT:
			dedents++
		}
	}
	if indents != dedents {
		t.Fatalf("unbalanced indentation: %d INDENT vs %d DEDENT", indents, dedents)
	}
	if indents != 1 {
		t.Fatalf("expected exactly one INDENT level, got %d", indents)
	}
}

func TestLexDedentPopsMultipleLevels(t *testing.T) {
	src := "a:\n  b:\n    c\nd\n"
	toks := New("t.fe", src).Lex()
	var seq []TokenType
	for _, tok := range toks {
		if tok.Type == INDENT || tok.Type == DEDENT || tok.Type == IDENT {
			seq = append(seq, tok.Type)
		}
	}
	want := []TokenType{IDENT, INDENT, IDENT, INDENT, IDENT, DEDENT, DEDENT, IDENT}
	if len(seq) != len(want) {
		t.Fatalf("got %v, want %v", seq, want)
	}
	for i := range want {
		if seq[i] != want[i] {
			t.Fatalf("position %d: got %s want %s (full %v)", i, seq[i], want[i], seq)
		}
	}
}

func TestLexNumberBases(t *testing.T) {
	cases := []struct {
		src  string
		want int64
	}{
		{"0x1F", 31},
		{"0b101", 5},
		{"0o17", 15},
		{"1_000", 1000},
	}
	for _, c := range cases {
		toks := New("t.fe", c.src).Lex()
		if toks[0].Type != INT {
			t.Fatalf("%s: expected INT, got %s", c.src, toks[0].Type)
		}
		if toks[0].Literal.Integer != c.want {
			t.Fatalf("%s: expected %d, got %d", c.src, c.want, toks[0].Literal.Integer)
		}
	}
}

func TestLexFloatForms(t *testing.T) {
	cases := []struct {
		src  string
		want float64
	}{
		{"3.14", 3.14},
		{"7.", 7},
		{"1e9", 1e9},
		{"1.5e-2", 0.015},
	}
	for _, c := range cases {
		toks := New("t.fe", c.src).Lex()
		if toks[0].Type != FLOAT {
			t.Fatalf("%s: expected FLOAT, got %s", c.src, toks[0].Type)
		}
		if toks[0].Literal.Float != c.want {
			t.Fatalf("%s: expected %v, got %v", c.src, c.want, toks[0].Literal.Float)
		}
	}
}

func TestLexBareHexPrefixIsError(t *testing.T) {
	toks := New("t.fe", "0x").Lex()
	if toks[0].Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL for bare hex prefix, got %s", toks[0].Type)
	}
}

func TestLexTrailingUnderscoreIsError(t *testing.T) {
	toks := New("t.fe", "1_").Lex()
	if toks[0].Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL for trailing underscore, got %s", toks[0].Type)
	}
}

func TestLexStringEscapes(t *testing.T) {
	toks := New("t.fe", `"a\nb"`).Lex()
	if toks[0].Type != STRING {
		t.Fatalf("expected STRING, got %s", toks[0].Type)
	}
	if toks[0].Literal.Str != "a\nb" {
		t.Fatalf("expected decoded %q, got %q", "a\nb", toks[0].Literal.Str)
	}
}

func TestLexUnterminatedStringAtEOF(t *testing.T) {
	toks := New("t.fe", `"hello`).Lex()
	assertKinds(t, toks, []TokenType{ILLEGAL, EOF})
}

func TestLexUnterminatedStringAtNewline(t *testing.T) {
	toks := New("t.fe", "\"hello\nworld\"").Lex()
	if toks[0].Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL, got %s", toks[0].Type)
	}
}

func TestLexCharLiteral(t *testing.T) {
	toks := New("t.fe", `'x'`).Lex()
	if toks[0].Type != CHAR || toks[0].Literal.Char != 'x' {
		t.Fatalf("expected CHAR 'x', got %+v", toks[0])
	}
}

func TestLexEmptyCharLiteralIsError(t *testing.T) {
	toks := New("t.fe", `''`).Lex()
	if toks[0].Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL for empty char literal, got %s", toks[0].Type)
	}
}

func TestLexMultiCharLiteralIsError(t *testing.T) {
	toks := New("t.fe", `'ab'`).Lex()
	if toks[0].Type != ILLEGAL {
		t.Fatalf("expected ILLEGAL for multi-char literal, got %s", toks[0].Type)
	}
}

func TestLexByteLiteral(t *testing.T) {
	toks := New("t.fe", `b'A'`).Lex()
	if toks[0].Type != BYTE || toks[0].Literal.Byte != 'A' {
		t.Fatalf("expected BYTE 'A', got %+v", toks[0])
	}
}

func TestLexIdentifierNFCNormalization(t *testing.T) {
	// "é" as a single precomposed rune (U+00E9) vs. "e" + combining acute
	// (U+0065 U+0301) must normalize to the same lexeme.
	precomposed := "caf\u00e9"
	decomposed := "cafe\u0301"
	t1 := New("t.fe", precomposed).Lex()
	t2 := New("t.fe", decomposed).Lex()
	if t1[0].Lexeme != t2[0].Lexeme {
		t.Fatalf("NFC normalization mismatch: %q vs %q", t1[0].Lexeme, t2[0].Lexeme)
	}
	if t1[0].Lexeme != precomposed {
		t.Fatalf("expected normalized form %q, got %q", precomposed, t1[0].Lexeme)
	}
}

func TestLexKeywordsAndAlphabeticOperators(t *testing.T) {
	toks := New("t.fe", "a and b or c").Lex()
	assertKinds(t, toks, []TokenType{IDENT, AND, IDENT, OR, IDENT, EOF})
}

func TestLexMaximalMunchOperators(t *testing.T) {
	toks := New("t.fe", "<<= a..=b ??c").Lex()
	assertKinds(t, toks, []TokenType{SHL_ASSIGN, IDENT, RANGE_EQ, IDENT, COALESCE, IDENT, EOF})
}

func TestLexUnderscoreWildcardVsIdentifier(t *testing.T) {
	toks := New("t.fe", "_ _foo").Lex()
	assertKinds(t, toks, []TokenType{UNDERSCORE, IDENT, EOF})
}

func TestLexNestedBlockComments(t *testing.T) {
	toks := New("t.fe", "a /* outer /* inner */ still outer */ b").Lex()
	assertKinds(t, toks, []TokenType{IDENT, IDENT, EOF})
}

func TestLexUnterminatedBlockCommentDoesNotPanic(t *testing.T) {
	toks := New("t.fe", "a /* never closes").Lex()
	assertKinds(t, toks, []TokenType{IDENT, ILLEGAL, EOF})
}

func TestLexNeverPanicsOnArbitraryBytes(t *testing.T) {
	inputs := []string{
		"", "\x00", "💥", "\"", "'", "/*", "0x", "1_", "..", "...", "@#$%^",
	}
	for _, in := range inputs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Fatalf("Lex panicked on %q: %v", in, r)
				}
			}()
			toks := New("t.fe", in).Lex()
			if len(toks) == 0 || toks[len(toks)-1].Type != EOF {
				t.Fatalf("Lex(%q) did not end in EOF", in)
			}
		}()
	}
}

func TestLexSpanCoversLexeme(t *testing.T) {
	src := "let abc = 1;"
	toks := New("t.fe", src).Lex()
	for _, tok := range toks {
		if tok.Type == EOF || tok.Type == INDENT || tok.Type == DEDENT {
			continue
		}
		if !tok.Span.Valid() {
			t.Fatalf("token %+v missing a valid span", tok)
		}
		if got := src[tok.Span.Start.Offset:tok.Span.End.Offset]; got != tok.Lexeme {
			t.Fatalf("token %s: span covers %q, lexeme is %q", tok.Type, got, tok.Lexeme)
		}
	}
}
