package diag

import (
	"fmt"

	"github.com/ferra-lang/ferra/internal/source"
)

// The factories below mirror the small-named-constructor idiom: each sets
// a default severity and message shape appropriate to the situation, so
// call sites never hand-roll a Diagnostic literal.

func UnexpectedToken(expected, found string, span source.Span) Diagnostic {
	return Diagnostic{
		Kind:     KindUnexpectedToken,
		Message:  fmt.Sprintf("expected %s, found %s", expected, found),
		Span:     span,
		Severity: Error,
		Code:     "E001",
	}
}

func UnexpectedTokenWithSuggestion(expected, found, suggestion string, span source.Span) Diagnostic {
	d := UnexpectedToken(expected, found, span)
	d.Suggestion = suggestion
	return d
}

func ExpectedExpression(found string, span source.Span) Diagnostic {
	return Diagnostic{
		Kind:     KindExpectedExpression,
		Message:  fmt.Sprintf("expected an expression, found %s", found),
		Span:     span,
		Severity: Error,
		Code:     "E002",
	}
}

func ExpectedStatement(found string, span source.Span) Diagnostic {
	return Diagnostic{
		Kind:     KindExpectedStatement,
		Message:  fmt.Sprintf("expected a statement, found %s", found),
		Span:     span,
		Severity: Error,
		Code:     "E003",
	}
}

func ExpectedType(found string, span source.Span) Diagnostic {
	return Diagnostic{
		Kind:     KindExpectedType,
		Message:  fmt.Sprintf("expected a type, found %s", found),
		Span:     span,
		Severity: Error,
		Code:     "E004",
	}
}

func ExpectedBlock(found string, span source.Span) Diagnostic {
	return Diagnostic{
		Kind:     KindExpectedBlock,
		Message:  fmt.Sprintf("expected a block, found %s", found),
		Span:     span,
		Severity: Error,
		Code:     "E005",
	}
}

func InvalidBlock(message string, span source.Span) Diagnostic {
	return Diagnostic{
		Kind:     KindInvalidBlock,
		Message:  message,
		Span:     span,
		Severity: Error,
		Code:     "E006",
	}
}

func MixedBlockStyles(span source.Span) Diagnostic {
	return Diagnostic{
		Kind:       KindMixedBlockStyles,
		Message:    "block mixes braced and indented styles",
		Span:       span,
		Severity:   Error,
		Code:       "E007",
		Suggestion: "use either braces or indentation consistently within one block",
	}
}

func InconsistentIndentation(expected, found int, span source.Span) Diagnostic {
	return Diagnostic{
		Kind:     KindInconsistentIndent,
		Message:  fmt.Sprintf("inconsistent indentation: expected column %d, found %d", expected, found),
		Span:     span,
		Severity: Error,
		Code:     "E008",
	}
}

func InvalidIndentation(message string, span source.Span) Diagnostic {
	return Diagnostic{
		Kind:     KindInvalidIndentation,
		Message:  message,
		Span:     span,
		Severity: Error,
		Code:     "E009",
	}
}

func VariableRedefinition(name string, span source.Span) Diagnostic {
	return Diagnostic{
		Kind:     KindVariableRedefinition,
		Message:  fmt.Sprintf("%q is already defined in this scope", name),
		Span:     span,
		Severity: Error,
		Code:     "E010",
	}
}

// UnexpectedEOF is Fatal: there is nothing left to resynchronize on, so
// the parser cannot make further progress.
func UnexpectedEOF(context string, span source.Span) Diagnostic {
	return Diagnostic{
		Kind:     KindUnexpectedEOF,
		Message:  fmt.Sprintf("unexpected end of file while parsing %s", context),
		Span:     span,
		Severity: Fatal,
		Code:     "F001",
	}
}

func SyntaxError(message string, span source.Span) Diagnostic {
	return Diagnostic{
		Kind:     KindSyntaxError,
		Message:  message,
		Span:     span,
		Severity: Error,
		Code:     "E011",
	}
}

func SyntaxErrorWithSuggestion(message, suggestion string, span source.Span) Diagnostic {
	d := SyntaxError(message, span)
	d.Suggestion = suggestion
	return d
}

// RecoveryError wraps an original diagnostic encountered while attempting
// recovery. It is a Warning: recovery succeeded well enough to continue,
// but the caller should know a repair was made.
func RecoveryError(message string, span source.Span, original Diagnostic) Diagnostic {
	o := original
	return Diagnostic{
		Kind:     KindRecoveryError,
		Message:  message,
		Span:     span,
		Severity: Warning,
		Code:     "R001",
		Original: &o,
	}
}

// UnsupportedAttributeTarget fires when one or more `#[...]` attributes
// precede a construct that has nowhere to attach them — chiefly a pure
// expression statement (spec §4.7).
func UnsupportedAttributeTarget(target string, span source.Span) Diagnostic {
	return Diagnostic{
		Kind:     KindInvalidAttributeTarget,
		Message:  fmt.Sprintf("attributes on a %s are an error", target),
		Span:     span,
		Severity: Error,
		Code:     "E012",
	}
}

// Internal reports a condition that should be unreachable in correct
// parser code (e.g. a recovery loop that failed to advance the cursor).
// It is Fatal.
func Internal(message string, span source.Span) Diagnostic {
	return Diagnostic{
		Kind:     KindInternal,
		Message:  message,
		Span:     span,
		Severity: Fatal,
		Code:     "I001",
	}
}
