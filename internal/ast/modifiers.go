package ast

import "github.com/ferra-lang/ferra/internal/source"

// Modifiers captures the `pub`/`unsafe` flags shared by items that carry
// them (spec §3: "Modifiers { is_public, is_unsafe }").
type Modifiers struct {
	IsPublic bool
	IsUnsafe bool
}

// Block is both a statement and an expression (a block used for its tail
// value). Style consistency (braced vs. indented) is fixed per block by
// the parser and is recorded here for later inspection/debugging, not
// re-derived from Stmts.
type Block struct {
	Stmts      []Stmt
	Tail       Expr // nil if the block has no tail expression
	IsBraced   bool
	ScopeDepth int
	IsUnsafe   bool
	IsAsync    bool
	IsTry      bool
	Label      string // "" if unlabeled
	span       source.Span
}

func NewBlock(stmts []Stmt, tail Expr, isBraced bool, scopeDepth int, span source.Span) *Block {
	return &Block{Stmts: stmts, Tail: tail, IsBraced: isBraced, ScopeDepth: scopeDepth, span: span}
}

func (b *Block) Span() source.Span     { return b.span }
func (b *Block) SetSpan(s source.Span) { b.span = s }
func (*Block) stmtNode()               {}
func (*Block) exprNode()               {}
