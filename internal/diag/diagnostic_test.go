package diag_test

import (
	"strings"
	"testing"

	"github.com/ferra-lang/ferra/internal/diag"
	"github.com/ferra-lang/ferra/internal/source"
)

func span(line, col int) source.Span {
	return source.Span{
		Filename: "t.fe",
		Start:    source.Position{Line: line, Column: col, Offset: 0},
		End:      source.Position{Line: line, Column: col + 1, Offset: 1},
	}
}

func TestSeverityOrdering(t *testing.T) {
	if !(diag.Warning < diag.Error && diag.Error < diag.Fatal) {
		t.Fatalf("expected Warning < Error < Fatal")
	}
}

func TestFormatDiagnosticShape(t *testing.T) {
	d := diag.UnexpectedTokenWithSuggestion("')'", "'{'", "close the parameter list", span(3, 5))
	out := diag.FormatDiagnostic(d, "t.fe")
	wantLines := []string{
		"error: [E001] expected ')', found '{'",
		"  --> t.fe:3:5",
		"  help: close the parameter list",
	}
	for _, want := range wantLines {
		if !strings.Contains(out, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRecoveryErrorCausedBy(t *testing.T) {
	original := diag.ExpectedExpression("';'", span(1, 1))
	wrapped := diag.RecoveryError("inserted missing expression", span(1, 1), original)
	if wrapped.Severity != diag.Warning {
		t.Fatalf("expected RecoveryError to be Warning severity, got %v", wrapped.Severity)
	}
	out := diag.FormatDiagnostic(wrapped, "t.fe")
	if !strings.Contains(out, "caused by: "+original.Message) {
		t.Fatalf("expected caused-by line, got:\n%s", out)
	}
}

func TestReportSuccessOnlyFlippedByFatal(t *testing.T) {
	r := diag.NewReport("t.fe")
	r.Add(diag.SyntaxError("stray token", span(1, 1)))
	if !r.Success() {
		t.Fatalf("a non-fatal error must not flip Success")
	}
	r.Add(diag.UnexpectedEOF("function body", span(2, 1)))
	if r.Success() {
		t.Fatalf("a Fatal diagnostic must flip Success off")
	}
	warnings, errors, fatals := r.CountBySeverity()
	if warnings != 0 || errors != 1 || fatals != 1 {
		t.Fatalf("unexpected severity counts: w=%d e=%d f=%d", warnings, errors, fatals)
	}
}

func TestReportFormatReportHeader(t *testing.T) {
	r := diag.NewReport("t.fe")
	r.Add(diag.SyntaxError("oops", span(1, 1)))
	out := r.FormatReport()
	if !strings.HasPrefix(out, "Parse result: success (1 errors, 0 warnings, 0 fatal)") {
		t.Fatalf("unexpected report header:\n%s", out)
	}
}

func TestCollectorCapsAtMax(t *testing.T) {
	c := diag.NewCollector(2)
	if !c.Add(diag.SyntaxError("a", span(1, 1))) {
		t.Fatalf("collector should still continue after 1/2")
	}
	if c.Add(diag.SyntaxError("b", span(1, 1))) {
		t.Fatalf("collector should stop continuing once at cap")
	}
	if len(c.All()) != 2 {
		t.Fatalf("expected 2 collected diagnostics, got %d", len(c.All()))
	}
}
