package ast

import "github.com/ferra-lang/ferra/internal/source"

// Attribute is `#[path::segments(arg, ...)]`, an auxiliary record (spec
// §2's "generics, attributes, modifiers") attached to items that
// support them. Path is the `::`-separated name (`["derive"]`,
// `["ferra", "inline"]`); Args is nil when the attribute took no
// parenthesized argument list (`#[test]`).
type Attribute struct {
	Path []string
	Args []Expr
	span source.Span
}

func NewAttribute(path []string, args []Expr, span source.Span) *Attribute {
	return &Attribute{Path: path, Args: args, span: span}
}

func (a *Attribute) Span() source.Span     { return a.span }
func (a *Attribute) SetSpan(s source.Span) { a.span = s }
