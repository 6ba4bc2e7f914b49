package ast

import "github.com/ferra-lang/ferra/internal/source"

// ExprStmt is an expression evaluated for its side effect; Trailing
// records whether it was terminated by a statement separator (distinct
// from a block's tail expression, which has no separator).
type ExprStmt struct {
	Expr     Expr
	Trailing bool
	span     source.Span
}

func NewExprStmt(expr Expr, trailing bool, span source.Span) *ExprStmt {
	return &ExprStmt{Expr: expr, Trailing: trailing, span: span}
}

func (s *ExprStmt) Span() source.Span     { return s.span }
func (s *ExprStmt) SetSpan(sp source.Span) { s.span = sp }
func (*ExprStmt) stmtNode()               {}

// VariableDeclStmt is `let`/`var name: Type = init` used as a statement.
type VariableDeclStmt struct {
	Name       string
	IsMutable  bool
	Type       Type // nil if elided
	Init       Expr // nil if no initializer
	span       source.Span
}

func NewVariableDeclStmt(name string, isMutable bool, typ Type, init Expr, span source.Span) *VariableDeclStmt {
	return &VariableDeclStmt{Name: name, IsMutable: isMutable, Type: typ, Init: init, span: span}
}

func (s *VariableDeclStmt) Span() source.Span     { return s.span }
func (s *VariableDeclStmt) SetSpan(sp source.Span) { s.span = sp }
func (*VariableDeclStmt) stmtNode()               {}

// IfStmt is `if cond { ... } else { ... }` used in statement position
// (its value, if any, is discarded — see IfExpr for expression position).
type IfStmt struct {
	Condition Expr
	Then      *Block
	Else      Stmt // *Block or *IfStmt (else-if chain), nil if absent
	span      source.Span
}

func NewIfStmt(cond Expr, then *Block, els Stmt, span source.Span) *IfStmt {
	return &IfStmt{Condition: cond, Then: then, Else: els, span: span}
}

func (s *IfStmt) Span() source.Span     { return s.span }
func (s *IfStmt) SetSpan(sp source.Span) { s.span = sp }
func (*IfStmt) stmtNode()               {}

// WhileStmt is `while cond { ... }`.
type WhileStmt struct {
	Condition Expr
	Body      *Block
	Label     string // "" if unlabeled
	span      source.Span
}

func NewWhileStmt(cond Expr, body *Block, label string, span source.Span) *WhileStmt {
	return &WhileStmt{Condition: cond, Body: body, Label: label, span: span}
}

func (s *WhileStmt) Span() source.Span     { return s.span }
func (s *WhileStmt) SetSpan(sp source.Span) { s.span = sp }
func (*WhileStmt) stmtNode()               {}

// ForStmt is `for pattern in iterable { ... }`.
type ForStmt struct {
	Pattern  Pattern
	Iterable Expr
	Body     *Block
	Label    string // "" if unlabeled
	span     source.Span
}

func NewForStmt(pattern Pattern, iterable Expr, body *Block, label string, span source.Span) *ForStmt {
	return &ForStmt{Pattern: pattern, Iterable: iterable, Body: body, Label: label, span: span}
}

func (s *ForStmt) Span() source.Span     { return s.span }
func (s *ForStmt) SetSpan(sp source.Span) { s.span = sp }
func (*ForStmt) stmtNode()               {}

// ReturnStmt is `return` or `return expr`.
type ReturnStmt struct {
	Value Expr // nil if bare `return`
	span  source.Span
}

func NewReturnStmt(value Expr, span source.Span) *ReturnStmt {
	return &ReturnStmt{Value: value, span: span}
}

func (s *ReturnStmt) Span() source.Span     { return s.span }
func (s *ReturnStmt) SetSpan(sp source.Span) { s.span = sp }
func (*ReturnStmt) stmtNode()               {}

// BreakStmt is `break` or `break label`.
type BreakStmt struct {
	Label string // "" if unlabeled
	span  source.Span
}

func NewBreakStmt(label string, span source.Span) *BreakStmt {
	return &BreakStmt{Label: label, span: span}
}

func (s *BreakStmt) Span() source.Span     { return s.span }
func (s *BreakStmt) SetSpan(sp source.Span) { s.span = sp }
func (*BreakStmt) stmtNode()               {}

// ContinueStmt is `continue` or `continue label`.
type ContinueStmt struct {
	Label string // "" if unlabeled
	span  source.Span
}

func NewContinueStmt(label string, span source.Span) *ContinueStmt {
	return &ContinueStmt{Label: label, span: span}
}

func (s *ContinueStmt) Span() source.Span     { return s.span }
func (s *ContinueStmt) SetSpan(sp source.Span) { s.span = sp }
func (*ContinueStmt) stmtNode()               {}
