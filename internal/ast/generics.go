package ast

import "github.com/ferra-lang/ferra/internal/source"

// GenericParam is one parameter of a `<...>` list: a type parameter
// `T: Bound + Bound = Default`. The parser has no lifetime (`'a`) form and
// never sets IsLifetime.
type GenericParam struct {
	Name       string
	Bounds     []string // trait-name bounds; no higher-kinded bounds in this version
	Default    Type     // nil if no default
	IsLifetime bool
	span       source.Span
}

func NewGenericParam(name string, bounds []string, def Type, isLifetime bool, span source.Span) *GenericParam {
	return &GenericParam{Name: name, Bounds: bounds, Default: def, IsLifetime: isLifetime, span: span}
}

func (g *GenericParam) Span() source.Span     { return g.span }
func (g *GenericParam) SetSpan(s source.Span) { g.span = s }

// WhereConstraint is `ident : Bound + Bound` inside a where-clause.
type WhereConstraint struct {
	TypeName string
	Bounds   []string
	span     source.Span
}

func NewWhereConstraint(typeName string, bounds []string, span source.Span) *WhereConstraint {
	return &WhereConstraint{TypeName: typeName, Bounds: bounds, span: span}
}

func (w *WhereConstraint) Span() source.Span     { return w.span }
func (w *WhereConstraint) SetSpan(s source.Span) { w.span = s }

// WhereClause is the optional `where ...` suffix of a generic parameter
// list.
type WhereClause struct {
	Constraints []*WhereConstraint
	span        source.Span
}

func NewWhereClause(constraints []*WhereConstraint, span source.Span) *WhereClause {
	return &WhereClause{Constraints: constraints, span: span}
}

func (w *WhereClause) Span() source.Span     { return w.span }
func (w *WhereClause) SetSpan(s source.Span) { w.span = s }

// GenericParams is the full `<...> where ...` suffix attached to an item.
type GenericParams struct {
	Params []*GenericParam
	Where  *WhereClause // nil if absent
	span   source.Span
}

func NewGenericParams(params []*GenericParam, where *WhereClause, span source.Span) *GenericParams {
	return &GenericParams{Params: params, Where: where, span: span}
}

func (g *GenericParams) Span() source.Span     { return g.span }
func (g *GenericParams) SetSpan(s source.Span) { g.span = s }
