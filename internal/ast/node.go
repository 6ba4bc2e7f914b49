// Package ast defines the AST produced by the parser: tagged unions for
// items, statements, expressions, types, and patterns, following spec
// §3's data model. Every node is a plain Go struct behind an interface
// with a marker method, a private span field, a Span/SetSpan pair, and a
// New* constructor — the idiom the teacher compiler uses throughout its
// own AST package. The parser allocates parameters and data class fields
// from its arenas; every other node is allocated by its New* constructor
// and is not arena-backed. Trees are parent-free: children are held by
// value or by pointer; there are never upward (child-to-parent)
// references, so a whole compilation unit's tree becomes garbage in one
// shot once the caller drops its root.
package ast

import "github.com/ferra-lang/ferra/internal/source"

// Node is implemented by every AST node.
type Node interface {
	Span() source.Span
	SetSpan(source.Span)
}

// Item is a top-level declaration.
type Item interface {
	Node
	itemNode()
}

// Stmt is a statement inside a block.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is an expression.
type Expr interface {
	Node
	exprNode()
}

// Type is a type expression.
type Type interface {
	Node
	typeNode()
}

// Pattern is a match/binding pattern.
type Pattern interface {
	Node
	patternNode()
}

// CompilationUnit is the root of a parsed file: an ordered sequence of
// items plus the span covering all of them.
type CompilationUnit struct {
	Items []Item
	span  source.Span
}

func NewCompilationUnit(items []Item, span source.Span) *CompilationUnit {
	return &CompilationUnit{Items: items, span: span}
}

func (c *CompilationUnit) Span() source.Span    { return c.span }
func (c *CompilationUnit) SetSpan(s source.Span) { c.span = s }

// Ident is a bare identifier, reused across expressions, types, and
// declarations wherever a name is needed.
type Ident struct {
	Name string
	span source.Span
}

func NewIdent(name string, span source.Span) *Ident {
	return &Ident{Name: name, span: span}
}

func (i *Ident) Span() source.Span    { return i.span }
func (i *Ident) SetSpan(s source.Span) { i.span = s }
