package diag

import (
	"fmt"
	"strings"
)

// Report collects diagnostics produced over the course of one parse and
// renders the summary/report text described in §6/§7.
type Report struct {
	SourceName string
	Diagnostics []Diagnostic
	success    bool
}

// NewReport creates an empty, successful report for the named source.
func NewReport(sourceName string) *Report {
	return &Report{SourceName: sourceName, success: true}
}

// Add appends a diagnostic, flipping Success off the moment a Fatal
// diagnostic is recorded. Warnings and Errors may freely coexist with a
// true Success flag — callers decide whether to proceed past them.
func (r *Report) Add(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
	if d.Severity == Fatal {
		r.success = false
	}
}

// AddAll appends many diagnostics in order.
func (r *Report) AddAll(ds []Diagnostic) {
	for _, d := range ds {
		r.Add(d)
	}
}

// Success reports whether no Fatal diagnostic has been recorded.
func (r *Report) Success() bool { return r.success }

// HasErrors reports whether any diagnostic was recorded at all.
func (r *Report) HasErrors() bool { return len(r.Diagnostics) > 0 }

// CountBySeverity tallies diagnostics of each severity.
func (r *Report) CountBySeverity() (warnings, errors, fatals int) {
	for _, d := range r.Diagnostics {
		switch d.Severity {
		case Warning:
			warnings++
		case Error:
			errors++
		case Fatal:
			fatals++
		}
	}
	return
}

// WithSeverity filters diagnostics to only the given severity.
func (r *Report) WithSeverity(s Severity) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == s {
			out = append(out, d)
		}
	}
	return out
}

// FormatDiagnostic renders a single diagnostic per §6's exact shape:
//
//	<severity>: [<code>] <message>
//	  --> <file>:<line>:<col>
//	  help: <suggestion>
//	  caused by: <original>
//
// The last two lines are conditional on Suggestion/Original being set.
func FormatDiagnostic(d Diagnostic, sourceName string) string {
	var b strings.Builder
	code := d.Code
	if code == "" {
		code = "E000"
	}
	fmt.Fprintf(&b, "%s: [%s] %s\n", d.Severity, code, d.Message)
	if d.Span.Valid() {
		name := sourceName
		if d.Span.Filename != "" {
			name = d.Span.Filename
		}
		fmt.Fprintf(&b, "  --> %s:%d:%d\n", name, d.Span.Start.Line, d.Span.Start.Column)
	}
	if d.Suggestion != "" {
		fmt.Fprintf(&b, "  help: %s\n", d.Suggestion)
	}
	if d.Original != nil {
		fmt.Fprintf(&b, "  caused by: %s\n", d.Original.Message)
	}
	return b.String()
}

// FormatReport renders the report summary followed by every diagnostic,
// per §6: "Report summary precedes individual errors with success flag
// and counts per severity."
func (r *Report) FormatReport() string {
	warnings, errors, fatals := r.CountBySeverity()
	status := "success"
	if !r.success {
		status = "failed"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Parse result: %s (%d errors, %d warnings, %d fatal)\n\n",
		status, errors, warnings, fatals)
	for _, d := range r.Diagnostics {
		b.WriteString(FormatDiagnostic(d, r.SourceName))
	}
	return b.String()
}
