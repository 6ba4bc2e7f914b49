package ast

import "github.com/ferra-lang/ferra/internal/source"

// Param is one function parameter: `name: Type`.
type Param struct {
	Name string
	Type Type
	span source.Span
}

func NewParam(name string, typ Type, span source.Span) *Param {
	return &Param{Name: name, Type: typ, span: span}
}

func (p *Param) Span() source.Span     { return p.span }
func (p *Param) SetSpan(s source.Span) { p.span = s }

// FunctionDecl is `fn name<generics>(params) -> Return where ... { body }`,
// or a signature-only declaration (Body == nil, e.g. `async fn foo();`).
// IsAsync is recorded here (not just on Body) so a bodyless forward
// declaration does not silently lose the flag.
type FunctionDecl struct {
	Modifiers  Modifiers
	Name       string
	Generics   *GenericParams // nil if not generic
	Params     []*Param
	Return     Type // never nil; defaults to unit TupleType
	Body       *Block // nil for forward declarations
	IsAsync    bool
	IsExtern   bool
	ABI        string // "" unless IsExtern
	Attributes []*Attribute
	span       source.Span
}

func NewFunctionDecl(mods Modifiers, name string, generics *GenericParams, params []*Param, ret Type, body *Block, isAsync, isExtern bool, abi string, attrs []*Attribute, span source.Span) *FunctionDecl {
	return &FunctionDecl{
		Modifiers: mods, Name: name, Generics: generics, Params: params, Return: ret, Body: body,
		IsAsync: isAsync, IsExtern: isExtern, ABI: abi, Attributes: attrs, span: span,
	}
}

func (d *FunctionDecl) Span() source.Span     { return d.span }
func (d *FunctionDecl) SetSpan(s source.Span) { d.span = s }
func (*FunctionDecl) itemNode()               {}

// DataClassField is one field of a `data` declaration.
type DataClassField struct {
	Modifiers  Modifiers
	Name       string
	Type       Type
	Attributes []*Attribute
	span       source.Span
}

func NewDataClassField(mods Modifiers, name string, typ Type, attrs []*Attribute, span source.Span) *DataClassField {
	return &DataClassField{Modifiers: mods, Name: name, Type: typ, Attributes: attrs, span: span}
}

func (f *DataClassField) Span() source.Span     { return f.span }
func (f *DataClassField) SetSpan(s source.Span) { f.span = s }

// DataClassDecl is `data Name<generics> { field* }`, the sole
// aggregate-type declaration form in this grammar (spec's Non-goal
// excludes separate struct/enum/union item kinds).
type DataClassDecl struct {
	Modifiers  Modifiers
	Name       string
	Generics   *GenericParams // nil if not generic
	Fields     []*DataClassField
	Attributes []*Attribute
	span       source.Span
}

func NewDataClassDecl(mods Modifiers, name string, generics *GenericParams, fields []*DataClassField, attrs []*Attribute, span source.Span) *DataClassDecl {
	return &DataClassDecl{Modifiers: mods, Name: name, Generics: generics, Fields: fields, Attributes: attrs, span: span}
}

func (d *DataClassDecl) Span() source.Span     { return d.span }
func (d *DataClassDecl) SetSpan(s source.Span) { d.span = s }
func (*DataClassDecl) itemNode()               {}

// ExternFunction is a `fn name(params) -> Return` signature inside an
// ExternBlock — never carries a body.
type ExternFunction struct {
	Name   string
	Params []*Param
	Return Type
	span   source.Span
}

func NewExternFunction(name string, params []*Param, ret Type, span source.Span) *ExternFunction {
	return &ExternFunction{Name: name, Params: params, Return: ret, span: span}
}

func (f *ExternFunction) Span() source.Span     { return f.span }
func (f *ExternFunction) SetSpan(s source.Span) { f.span = s }

// ExternVariable is a `static name: Type;` declaration inside an ExternBlock.
type ExternVariable struct {
	Name string
	Type Type
	span source.Span
}

func NewExternVariable(name string, typ Type, span source.Span) *ExternVariable {
	return &ExternVariable{Name: name, Type: typ, span: span}
}

func (v *ExternVariable) Span() source.Span     { return v.span }
func (v *ExternVariable) SetSpan(s source.Span) { v.span = s }

// ExternBlock is `extern "ABI" { ExternFunction* | ExternVariable* }`.
type ExternBlock struct {
	ABI       string
	Functions []*ExternFunction
	Variables []*ExternVariable
	span      source.Span
}

func NewExternBlock(abi string, funcs []*ExternFunction, vars []*ExternVariable, span source.Span) *ExternBlock {
	return &ExternBlock{ABI: abi, Functions: funcs, Variables: vars, span: span}
}

func (b *ExternBlock) Span() source.Span     { return b.span }
func (b *ExternBlock) SetSpan(s source.Span) { b.span = s }
func (*ExternBlock) itemNode()               {}

// VariableDeclItem is a top-level `let`/`var` declaration (the item-level
// counterpart of VariableDeclStmt).
type VariableDeclItem struct {
	Modifiers Modifiers
	Name      string
	IsMutable bool
	Type      Type // nil if elided
	Init      Expr // nil if no initializer
	span      source.Span
}

func NewVariableDeclItem(mods Modifiers, name string, isMutable bool, typ Type, init Expr, span source.Span) *VariableDeclItem {
	return &VariableDeclItem{Modifiers: mods, Name: name, IsMutable: isMutable, Type: typ, Init: init, span: span}
}

func (d *VariableDeclItem) Span() source.Span     { return d.span }
func (d *VariableDeclItem) SetSpan(s source.Span) { d.span = s }
func (*VariableDeclItem) itemNode()               {}
