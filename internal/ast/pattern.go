package ast

import (
	"github.com/ferra-lang/ferra/internal/lexer"
	"github.com/ferra-lang/ferra/internal/source"
)

// LiteralPattern matches a literal value exactly.
type LiteralPattern struct {
	Value lexer.LiteralValue
	span  source.Span
}

func NewLiteralPattern(v lexer.LiteralValue, span source.Span) *LiteralPattern {
	return &LiteralPattern{Value: v, span: span}
}

func (p *LiteralPattern) Span() source.Span     { return p.span }
func (p *LiteralPattern) SetSpan(s source.Span) { p.span = s }
func (*LiteralPattern) patternNode()            {}

// IdentifierPattern binds the matched value to a new name.
type IdentifierPattern struct {
	Name string
	span source.Span
}

func NewIdentifierPattern(name string, span source.Span) *IdentifierPattern {
	return &IdentifierPattern{Name: name, span: span}
}

func (p *IdentifierPattern) Span() source.Span     { return p.span }
func (p *IdentifierPattern) SetSpan(s source.Span) { p.span = s }
func (*IdentifierPattern) patternNode()            {}

// WildcardPattern is the `_` catch-all pattern.
type WildcardPattern struct {
	span source.Span
}

func NewWildcardPattern(span source.Span) *WildcardPattern {
	return &WildcardPattern{span: span}
}

func (p *WildcardPattern) Span() source.Span     { return p.span }
func (p *WildcardPattern) SetSpan(s source.Span) { p.span = s }
func (*WildcardPattern) patternNode()            {}

// FieldPattern is one `name: pattern` (or shorthand `name`) entry inside a
// DataClassPattern.
type FieldPattern struct {
	Name      string
	Pattern   Pattern // nil for shorthand, meaning "bind to field name"
	Shorthand bool
	span      source.Span
}

func NewFieldPattern(name string, pattern Pattern, shorthand bool, span source.Span) *FieldPattern {
	return &FieldPattern{Name: name, Pattern: pattern, Shorthand: shorthand, span: span}
}

func (f *FieldPattern) Span() source.Span     { return f.span }
func (f *FieldPattern) SetSpan(s source.Span) { f.span = s }

// DataClassPattern destructures a data class: `Point { x, y: 0 }`, with
// an optional `..` to allow unmatched trailing fields.
type DataClassPattern struct {
	Name    string
	Fields  []*FieldPattern
	HasRest bool
	span    source.Span
}

func NewDataClassPattern(name string, fields []*FieldPattern, hasRest bool, span source.Span) *DataClassPattern {
	return &DataClassPattern{Name: name, Fields: fields, HasRest: hasRest, span: span}
}

func (p *DataClassPattern) Span() source.Span     { return p.span }
func (p *DataClassPattern) SetSpan(s source.Span) { p.span = s }
func (*DataClassPattern) patternNode()            {}

// SlicePattern matches an array/slice by positional sub-patterns, with at
// most one rest element (`..` or `name @ ..`) marking a variable-length gap.
type SlicePattern struct {
	Elements []Pattern
	RestIdx  int // index of the `..` element within Elements, or -1 if none
	span     source.Span
}

func NewSlicePattern(elements []Pattern, restIdx int, span source.Span) *SlicePattern {
	return &SlicePattern{Elements: elements, RestIdx: restIdx, span: span}
}

func (p *SlicePattern) Span() source.Span     { return p.span }
func (p *SlicePattern) SetSpan(s source.Span) { p.span = s }
func (*SlicePattern) patternNode()            {}

// RangePattern matches values within `lo..hi` (exclusive) or `lo..=hi`
// (inclusive).
type RangePattern struct {
	Low       Pattern
	High      Pattern
	Inclusive bool
	span      source.Span
}

func NewRangePattern(low, high Pattern, inclusive bool, span source.Span) *RangePattern {
	return &RangePattern{Low: low, High: high, Inclusive: inclusive, span: span}
}

func (p *RangePattern) Span() source.Span     { return p.span }
func (p *RangePattern) SetSpan(s source.Span) { p.span = s }
func (*RangePattern) patternNode()            {}

// OrPattern is `p1 | p2 | ...`; any alternative matching is sufficient.
type OrPattern struct {
	Alternatives []Pattern
	span         source.Span
}

func NewOrPattern(alternatives []Pattern, span source.Span) *OrPattern {
	return &OrPattern{Alternatives: alternatives, span: span}
}

func (p *OrPattern) Span() source.Span     { return p.span }
func (p *OrPattern) SetSpan(s source.Span) { p.span = s }
func (*OrPattern) patternNode()            {}

// GuardPattern is `pattern if condition`. Per SPEC_FULL.md §D.3, a guard
// binds to the most-recently-produced alternative of an enclosing
// OrPattern rather than to the whole disjunction; there is no
// parenthesized-pattern production to override this.
type GuardPattern struct {
	Inner     Pattern
	Condition Expr
	span      source.Span
}

func NewGuardPattern(inner Pattern, cond Expr, span source.Span) *GuardPattern {
	return &GuardPattern{Inner: inner, Condition: cond, span: span}
}

func (p *GuardPattern) Span() source.Span     { return p.span }
func (p *GuardPattern) SetSpan(s source.Span) { p.span = s }
func (*GuardPattern) patternNode()            {}

// BindingPattern is `name @ pattern`: binds `name` to the whole matched
// value while also requiring it to match the sub-pattern.
type BindingPattern struct {
	Name string
	Sub  Pattern
	span source.Span
}

func NewBindingPattern(name string, sub Pattern, span source.Span) *BindingPattern {
	return &BindingPattern{Name: name, Sub: sub, span: span}
}

func (p *BindingPattern) Span() source.Span     { return p.span }
func (p *BindingPattern) SetSpan(s source.Span) { p.span = s }
func (*BindingPattern) patternNode()            {}
