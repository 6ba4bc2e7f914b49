package parser

import (
	"testing"

	"github.com/ferra-lang/ferra/internal/ast"
	"github.com/ferra-lang/ferra/internal/diag"
)

// ---- spec §8 scenario 1: `let x = 42;` ----

func TestParseLetStatement(t *testing.T) {
	unit, report := ParseFile("t.fe", "let x = 42;")
	if !report.Success() {
		t.Fatalf("expected success, got: %s", report.FormatReport())
	}
	if len(unit.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(unit.Items))
	}
	decl, ok := unit.Items[0].(*ast.VariableDeclItem)
	if !ok {
		t.Fatalf("expected *ast.VariableDeclItem, got %T", unit.Items[0])
	}
	if decl.Name != "x" || decl.IsMutable {
		t.Fatalf("unexpected decl: %+v", decl)
	}
	lit, ok := decl.Init.(*ast.LiteralExpr)
	if !ok || lit.Value.Integer != 42 {
		t.Fatalf("expected literal 42, got %+v", decl.Init)
	}
}

// ---- spec §8 scenario 2: `fn id(x: i32) -> i32 { return x; }` ----

func TestParseFunctionDecl(t *testing.T) {
	unit, report := ParseFile("t.fe", "fn id(x: i32) -> i32 { return x; }")
	if !report.Success() {
		t.Fatalf("expected success, got: %s", report.FormatReport())
	}
	fn, ok := unit.Items[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", unit.Items[0])
	}
	if fn.Name != "id" || len(fn.Params) != 1 || fn.Params[0].Name != "x" {
		t.Fatalf("unexpected signature: %+v", fn)
	}
	ret, ok := fn.Return.(*ast.IdentifierType)
	if !ok || ret.Name != "i32" {
		t.Fatalf("expected return type i32, got %+v", fn.Return)
	}
	if fn.Body == nil || len(fn.Body.Stmts) != 1 {
		t.Fatalf("expected a one-statement body, got %+v", fn.Body)
	}
	if _, ok := fn.Body.Stmts[0].(*ast.ReturnStmt); !ok {
		t.Fatalf("expected return statement, got %T", fn.Body.Stmts[0])
	}
}

// ---- spec §8 scenario 3: `1 + 2 * 3` precedence ----

func TestParsePrecedence(t *testing.T) {
	unit, report := ParseFile("t.fe", "let x = 1 + 2 * 3")
	if !report.Success() {
		t.Fatalf("expected success, got: %s", report.FormatReport())
	}
	decl := unit.Items[0].(*ast.VariableDeclItem)
	add, ok := decl.Init.(*ast.BinaryExpr)
	if !ok || add.Op != ast.OpAdd {
		t.Fatalf("expected top-level '+', got %+v", decl.Init)
	}
	if _, ok := add.Left.(*ast.LiteralExpr); !ok {
		t.Fatalf("expected left operand to be literal 1, got %T", add.Left)
	}
	mul, ok := add.Right.(*ast.BinaryExpr)
	if !ok || mul.Op != ast.OpMul {
		t.Fatalf("expected right operand to be '*', got %+v", add.Right)
	}
}

func TestParseLeftAssociativity(t *testing.T) {
	unit, report := ParseFile("t.fe", "let x = 1 - 2 - 3")
	if !report.Success() {
		t.Fatalf("expected success, got: %s", report.FormatReport())
	}
	decl := unit.Items[0].(*ast.VariableDeclItem)
	outer, ok := decl.Init.(*ast.BinaryExpr)
	if !ok || outer.Op != ast.OpSub {
		t.Fatalf("expected outer '-', got %+v", decl.Init)
	}
	inner, ok := outer.Left.(*ast.BinaryExpr)
	if !ok || inner.Op != ast.OpSub {
		t.Fatalf("expected (1 - 2) - 3 grouping, got %+v", outer.Left)
	}
}

func TestParseAssignmentRightAssociative(t *testing.T) {
	unit2, report2 := ParseFile("t.fe", "fn f() { a = b = c }")
	if !report2.Success() {
		t.Fatalf("expected success, got: %s", report2.FormatReport())
	}
	fn := unit2.Items[0].(*ast.FunctionDecl)
	tail := fn.Body.Tail
	outer, ok := tail.(*ast.BinaryExpr)
	if !ok || outer.Op != ast.OpAssign {
		t.Fatalf("expected top-level '=', got %+v", tail)
	}
	if _, ok := outer.Right.(*ast.BinaryExpr); !ok {
		t.Fatalf("expected b = c nested on the right (right-assoc), got %+v", outer.Right)
	}
}

// ---- spec §8 scenario 4: `data Point { x: i32, y: i32 }` ----

func TestParseDataClassDecl(t *testing.T) {
	unit, report := ParseFile("t.fe", "data Point { x: i32, y: i32 }")
	if !report.Success() {
		t.Fatalf("expected success, got: %s", report.FormatReport())
	}
	data, ok := unit.Items[0].(*ast.DataClassDecl)
	if !ok {
		t.Fatalf("expected *ast.DataClassDecl, got %T", unit.Items[0])
	}
	if data.Name != "Point" || len(data.Fields) != 2 {
		t.Fatalf("unexpected data class: %+v", data)
	}
	if data.Fields[0].Name != "x" || data.Fields[1].Name != "y" {
		t.Fatalf("unexpected field order: %+v", data.Fields)
	}
}

// ---- spec §8 scenario 5: extern block ----

func TestParseExternBlock(t *testing.T) {
	src := `extern "C" {
		fn puts(s: *u8) -> i32;
		static errno: i32;
	}`
	unit, report := ParseFile("t.fe", src)
	if !report.Success() {
		t.Fatalf("expected success, got: %s", report.FormatReport())
	}
	block, ok := unit.Items[0].(*ast.ExternBlock)
	if !ok {
		t.Fatalf("expected *ast.ExternBlock, got %T", unit.Items[0])
	}
	if block.ABI != "C" {
		t.Fatalf("expected ABI C, got %q", block.ABI)
	}
	if len(block.Functions) != 1 || block.Functions[0].Name != "puts" {
		t.Fatalf("unexpected functions: %+v", block.Functions)
	}
	ptr, ok := block.Functions[0].Params[0].Type.(*ast.PointerType)
	if !ok || !ptr.IsMutable {
		t.Fatalf("expected mutable pointer param type, got %+v", block.Functions[0].Params[0].Type)
	}
	if len(block.Variables) != 1 || block.Variables[0].Name != "errno" {
		t.Fatalf("unexpected variables: %+v", block.Variables)
	}
}

// ---- spec §8 scenario 6: `fn broken( { }` -> success == false ----

func TestParseBrokenFunctionSignatureFails(t *testing.T) {
	_, report := ParseFile("t.fe", "fn broken( { }")
	if report.Success() {
		t.Fatalf("expected failure, got success: %s", report.FormatReport())
	}
}

// ---- additional coverage: match expression, patterns, grouping/tuples ----

func TestParseMatchExpression(t *testing.T) {
	src := `fn f(x: i32) -> i32 {
		match x {
			0 => 1,
			_ => 2,
		}
	}`
	unit, report := ParseFile("t.fe", src)
	if !report.Success() {
		t.Fatalf("expected success, got: %s", report.FormatReport())
	}
	fn := unit.Items[0].(*ast.FunctionDecl)
	m, ok := fn.Body.Tail.(*ast.MatchExpr)
	if !ok {
		t.Fatalf("expected match expression tail, got %+v", fn.Body.Tail)
	}
	if len(m.Arms) != 2 {
		t.Fatalf("expected 2 arms, got %d", len(m.Arms))
	}
	if _, ok := m.Arms[1].Pattern.(*ast.WildcardPattern); !ok {
		t.Fatalf("expected wildcard pattern in second arm, got %T", m.Arms[1].Pattern)
	}
}

func TestParseGroupedVsOneTuple(t *testing.T) {
	unit, report := ParseFile("t.fe", "let x = (1)")
	if !report.Success() {
		t.Fatalf("expected success, got: %s", report.FormatReport())
	}
	decl := unit.Items[0].(*ast.VariableDeclItem)
	if _, ok := decl.Init.(*ast.GroupedExpr); !ok {
		t.Fatalf("expected GroupedExpr for (1), got %T", decl.Init)
	}

	unit2, report2 := ParseFile("t.fe", "let y = (1,)")
	if !report2.Success() {
		t.Fatalf("expected success, got: %s", report2.FormatReport())
	}
	decl2 := unit2.Items[0].(*ast.VariableDeclItem)
	tup, ok := decl2.Init.(*ast.TupleExpr)
	if !ok || len(tup.Elements) != 1 {
		t.Fatalf("expected one-element TupleExpr for (1,), got %+v", decl2.Init)
	}
}

// ---- spec §8 property: error-bounded progress / recovery monotonicity ----

func TestRecoveryMakesProgressOnMalformedInput(t *testing.T) {
	// Each malformed signature is recoverable (recovery lands on the next
	// 'fn'), so no Fatal diagnostic is produced and success stays true
	// (spec §6: success == no Fatal errors) — but the errors are recorded
	// and parsing still reaches the trailing well-formed function.
	src := "fn a( { } fn b( { } fn c() -> i32 { return 1; }"
	unit, report := ParseFile("t.fe", src)
	if len(report.Diagnostics) == 0 {
		t.Fatalf("expected diagnostics for two malformed signatures")
	}
	var foundC bool
	for _, item := range unit.Items {
		if fn, ok := item.(*ast.FunctionDecl); ok && fn.Name == "c" {
			foundC = true
		}
	}
	if !foundC {
		t.Fatalf("expected recovery to reach function c, items: %+v", unit.Items)
	}
}

// ---- maintainer review fixes ----

func TestParseAttributesOnFunctionAndDataClass(t *testing.T) {
	unit, report := ParseFile("t.fe", `#[test]
fn check() { }

#[derive(Debug)]
data Point { x: i32, y: i32 }`)
	if !report.Success() {
		t.Fatalf("expected success, got: %s", report.FormatReport())
	}
	fn, ok := unit.Items[0].(*ast.FunctionDecl)
	if !ok || len(fn.Attributes) != 1 || len(fn.Attributes[0].Path) != 1 || fn.Attributes[0].Path[0] != "test" {
		t.Fatalf("expected fn with #[test] attribute, got %+v", unit.Items[0])
	}
	data, ok := unit.Items[1].(*ast.DataClassDecl)
	if !ok || len(data.Attributes) != 1 {
		t.Fatalf("expected data class with one attribute, got %+v", unit.Items[1])
	}
	attr := data.Attributes[0]
	if len(attr.Path) != 1 || attr.Path[0] != "derive" || len(attr.Args) != 1 {
		t.Fatalf("expected derive(Debug) attribute, got %+v", attr)
	}
	if _, ok := attr.Args[0].(*ast.IdentifierExpr); !ok {
		t.Fatalf("expected identifier argument Debug, got %T", attr.Args[0])
	}
}

func TestParseAttributeOnExpressionStatementIsError(t *testing.T) {
	_, report := ParseFile("t.fe", `fn f() { #[test]
	1 + 1
}`)
	var found bool
	for _, d := range report.Diagnostics {
		if d.Kind == diag.KindInvalidAttributeTarget {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an invalid-attribute-target diagnostic, got: %s", report.FormatReport())
	}
}

func TestParseAsyncForwardDeclarationKeepsIsAsync(t *testing.T) {
	unit, report := ParseFile("t.fe", "async fn foo();")
	if !report.Success() {
		t.Fatalf("expected success, got: %s", report.FormatReport())
	}
	fn, ok := unit.Items[0].(*ast.FunctionDecl)
	if !ok {
		t.Fatalf("expected *ast.FunctionDecl, got %T", unit.Items[0])
	}
	if fn.Body != nil {
		t.Fatalf("expected a forward declaration with no body, got %+v", fn.Body)
	}
	if !fn.IsAsync {
		t.Fatalf("expected IsAsync to survive on a bodyless FunctionDecl")
	}
}

func TestParseGuardBindsToRightmostOrAlternative(t *testing.T) {
	src := `fn f(x: i32) -> i32 {
		match x {
			a | b if b > 0 => 1,
			_ => 2,
		}
	}`
	unit, report := ParseFile("t.fe", src)
	if !report.Success() {
		t.Fatalf("expected success, got: %s", report.FormatReport())
	}
	fn := unit.Items[0].(*ast.FunctionDecl)
	m := fn.Body.Tail.(*ast.MatchExpr)
	or, ok := m.Arms[0].Pattern.(*ast.OrPattern)
	if !ok || len(or.Alternatives) != 2 {
		t.Fatalf("expected a 2-alternative OrPattern, got %+v", m.Arms[0].Pattern)
	}
	if _, ok := or.Alternatives[0].(*ast.IdentifierPattern); !ok {
		t.Fatalf("expected the first alternative to be unguarded, got %T", or.Alternatives[0])
	}
	guard, ok := or.Alternatives[1].(*ast.GuardPattern)
	if !ok {
		t.Fatalf("expected the second alternative to carry the guard, got %T", or.Alternatives[1])
	}
	if _, ok := guard.Inner.(*ast.IdentifierPattern); !ok {
		t.Fatalf("expected the guard to wrap only 'b', got %T", guard.Inner)
	}
}

func TestParseSliceNamedRestBinder(t *testing.T) {
	p := New("t.fe", "[first, rest @ ..]")
	pat, ok := p.parsePattern()
	if !ok {
		t.Fatalf("expected slice pattern to parse, got: %s", p.Report().FormatReport())
	}
	slice, ok := pat.(*ast.SlicePattern)
	if !ok {
		t.Fatalf("expected *ast.SlicePattern, got %T", pat)
	}
	if slice.RestIdx != 1 {
		t.Fatalf("expected rest index 1 for 'rest @ ..', got %d (%+v)", slice.RestIdx, slice.Elements)
	}
	bind, ok := slice.Elements[1].(*ast.BindingPattern)
	if !ok || bind.Name != "rest" {
		t.Fatalf("expected named rest-binder 'rest', got %+v", slice.Elements[1])
	}
}

func TestDiagnosticCapStopsCollection(t *testing.T) {
	// A long run of malformed signatures, each recoverable via the next
	// 'fn', eventually reaches DefaultMaxDiagnostics and
	// ParseCompilationUnit stops parsing further items.
	src := ""
	for i := 0; i < 80; i++ {
		src += "fn ( \n"
	}
	_, report := ParseFile("t.fe", src)
	if len(report.Diagnostics) == 0 {
		t.Fatalf("expected diagnostics to be recorded")
	}
	if len(report.Diagnostics) > 60 {
		t.Fatalf("expected diagnostics to be capped near DefaultMaxDiagnostics, got %d", len(report.Diagnostics))
	}
}
