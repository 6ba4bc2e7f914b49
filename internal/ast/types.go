package ast

import "github.com/ferra-lang/ferra/internal/source"

// IdentifierType is a simple named type reference, e.g. `i32`.
type IdentifierType struct {
	Name string
	span source.Span
}

func NewIdentifierType(name string, span source.Span) *IdentifierType {
	return &IdentifierType{Name: name, span: span}
}

func (t *IdentifierType) Span() source.Span     { return t.span }
func (t *IdentifierType) SetSpan(s source.Span) { t.span = s }
func (*IdentifierType) typeNode()               {}

// GenericType is a type instantiation, e.g. `List<T>`.
type GenericType struct {
	Base Type
	Args []Type
	span source.Span
}

func NewGenericType(base Type, args []Type, span source.Span) *GenericType {
	return &GenericType{Base: base, Args: args, span: span}
}

func (t *GenericType) Span() source.Span     { return t.span }
func (t *GenericType) SetSpan(s source.Span) { t.span = s }
func (*GenericType) typeNode()               {}

// TupleType is `(T, U, ...)`; Elems == nil means the unit type `()`.
type TupleType struct {
	Elems []Type
	span  source.Span
}

func NewTupleType(elems []Type, span source.Span) *TupleType {
	return &TupleType{Elems: elems, span: span}
}

func (t *TupleType) Span() source.Span     { return t.span }
func (t *TupleType) SetSpan(s source.Span) { t.span = s }
func (*TupleType) typeNode()               {}

// ArrayType is `[T]` — element type only; no length in the surface
// grammar (spec §4.3).
type ArrayType struct {
	Elem Type
	span source.Span
}

func NewArrayType(elem Type, span source.Span) *ArrayType {
	return &ArrayType{Elem: elem, span: span}
}

func (t *ArrayType) Span() source.Span     { return t.span }
func (t *ArrayType) SetSpan(s source.Span) { t.span = s }
func (*ArrayType) typeNode()               {}

// FunctionType is `fn(T, ...) -> T`, optionally `extern "ABI" fn(...)`.
type FunctionType struct {
	Params   []Type
	Return   Type // never nil; defaults to TupleType{} (unit) when `->` is absent
	IsExtern bool
	ABI      string // "" if not an extern function type or ABI omitted
	span     source.Span
}

func NewFunctionType(params []Type, ret Type, isExtern bool, abi string, span source.Span) *FunctionType {
	return &FunctionType{Params: params, Return: ret, IsExtern: isExtern, ABI: abi, span: span}
}

func (t *FunctionType) Span() source.Span     { return t.span }
func (t *FunctionType) SetSpan(s source.Span) { t.span = s }
func (*FunctionType) typeNode()               {}

// PointerType is `*T`. Mutability defaults to true in this grammar
// version; const/mut distinction is design-reserved (SPEC_FULL.md §D.2).
type PointerType struct {
	Target    Type
	IsMutable bool
	span      source.Span
}

func NewPointerType(target Type, span source.Span) *PointerType {
	return &PointerType{Target: target, IsMutable: true, span: span}
}

func (t *PointerType) Span() source.Span     { return t.span }
func (t *PointerType) SetSpan(s source.Span) { t.span = s }
func (*PointerType) typeNode()               {}
