// Package diag implements the closed diagnostic taxonomy, severities, and
// report/recovery machinery shared by the lexer and parser.
package diag

import "github.com/ferra-lang/ferra/internal/source"

// Severity ranks how impactful a diagnostic is. Ordering matters: Warning
// < Error < Fatal, mirroring the ordered severity enum in the language
// this core was distilled from.
type Severity int

const (
	Warning Severity = iota
	Error
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "error[fatal]"
	default:
		return "error"
	}
}

// Kind is the closed taxonomy of diagnostic kinds from §4.10. It names the
// shape of the diagnostic, not a Go type — every Diagnostic carries one.
type Kind string

const (
	KindUnexpectedToken        Kind = "unexpected_token"
	KindExpectedExpression     Kind = "expected_expression"
	KindExpectedStatement      Kind = "expected_statement"
	KindExpectedType           Kind = "expected_type"
	KindExpectedBlock          Kind = "expected_block"
	KindInvalidBlock           Kind = "invalid_block"
	KindMixedBlockStyles       Kind = "mixed_block_styles"
	KindInconsistentIndent     Kind = "inconsistent_indentation"
	KindInvalidIndentation     Kind = "invalid_indentation"
	KindVariableRedefinition   Kind = "variable_redefinition"
	KindUnexpectedEOF          Kind = "unexpected_eof"
	KindSyntaxError            Kind = "syntax_error"
	KindRecoveryError          Kind = "recovery_error"
	KindInternal               Kind = "internal"
	KindInvalidAttributeTarget Kind = "invalid_attribute_target"
)

// Diagnostic is a single compiler diagnostic. Every Diagnostic is data —
// there is no exception type in this core; failing productions return
// Diagnostic values, they never panic.
type Diagnostic struct {
	Kind       Kind
	Message    string
	Span       source.Span
	Suggestion string
	Severity   Severity
	Code       string // short code such as E001, R001, I001; "" if unset

	// Original is set only for RecoveryError, wrapping the diagnostic that
	// recovery was attempting to work around.
	Original *Diagnostic
}

// WithSeverity returns a copy of d with its severity overridden.
func (d Diagnostic) WithSeverity(s Severity) Diagnostic {
	d.Severity = s
	return d
}

// WithCode returns a copy of d with its error code overridden.
func (d Diagnostic) WithCode(code string) Diagnostic {
	d.Code = code
	return d
}

// WithSuggestion returns a copy of d with a suggestion attached.
func (d Diagnostic) WithSuggestion(s string) Diagnostic {
	d.Suggestion = s
	return d
}

// ShouldStopParsing reports whether this diagnostic's severity demands
// the parser abandon the current parse entirely.
func (d Diagnostic) ShouldStopParsing() bool {
	return d.Severity == Fatal
}

// IsRecoverable is the complement of ShouldStopParsing.
func (d Diagnostic) IsRecoverable() bool {
	return !d.ShouldStopParsing()
}
