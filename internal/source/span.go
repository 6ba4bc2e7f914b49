// Package source holds the position and span primitives shared by the
// lexer, parser, AST, and diagnostic packages.
package source

import "fmt"

// Position is a single point in a source file.
type Position struct {
	Line   int // 1-based
	Column int // 1-based
	Offset int // 0-based byte offset
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open byte range [Start, End) with filename context for
// diagnostics. The zero Span (all fields zero) is not a valid span; use
// Valid to check.
type Span struct {
	Filename string
	Start    Position
	End      Position
}

// Valid reports whether the span carries a real location.
func (s Span) Valid() bool {
	return s.Start.Line > 0
}

// Combine produces the smallest span covering both a and b, taking the
// filename from a. Spans must come from the same file.
func Combine(a, b Span) Span {
	return Span{Filename: a.Filename, Start: a.Start, End: b.End}
}

func (s Span) String() string {
	if s.Filename == "" {
		return fmt.Sprintf("%s-%s", s.Start, s.End)
	}
	return fmt.Sprintf("%s:%s", s.Filename, s.Start)
}
