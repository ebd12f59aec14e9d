package asmparser

import (
	"fmt"
	"strings"
)

// DiagnosticKind classifies what went wrong.
type DiagnosticKind string

const (
	// DiagLexical marks an unexpected character where a mnemonic or argument
	// was required.
	DiagLexical DiagnosticKind = "lexical"
	// DiagNumericLiteral marks invalid digits for the chosen radix.
	DiagNumericLiteral DiagnosticKind = "numeric-literal"
	// DiagRegister marks a malformed or out-of-range stack/control register.
	DiagRegister DiagnosticKind = "register"
	// DiagSliceEncoding marks an undecodable bit-string literal.
	DiagSliceEncoding DiagnosticKind = "slice-encoding"
	// DiagStructural marks unterminated blocks/literals and missing
	// argument separators.
	DiagStructural DiagnosticKind = "structural"
)

// Cause further discriminates a diagnostic within its kind.
type Cause string

const (
	CauseNone             Cause = ""
	CauseMalformed        Cause = "malformed"
	CauseOutOfRange       Cause = "out-of-range"
	CauseInvalidDigit     Cause = "invalid-digit"
	CauseNonASCII         Cause = "non-ascii"
	CauseTooLong          Cause = "too-long"
	CauseCellBuild        Cause = "cell-build"
	CauseUnterminated     Cause = "unterminated"
	CauseMissingSeparator Cause = "missing-separator"
)

// Diagnostic is a single recovered parse failure. Diagnostics accumulate over
// the whole input; the parser never stops at the first one.
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind"`
	Cause    Cause          `json:"cause,omitempty"`
	Span     Span           `json:"span"`
	Message  string         `json:"message"`
	Expected []string       `json:"expected,omitempty"`
	Found    string         `json:"found,omitempty"`
}

// Error makes a Diagnostic usable as an error value.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%d..%d: %s: %s", d.Span.Start, d.Span.End, d.Kind, d.Message)
}

// Merge unions the expected set of another diagnostic reported at the same
// position into this one, so competing alternatives produce one diagnostic
// instead of only the last attempt surviving.
func (d *Diagnostic) Merge(other *Diagnostic) {
	for _, e := range other.Expected {
		if !contains(d.Expected, e) {
			d.Expected = append(d.Expected, e)
		}
	}
	if d.Message == "" {
		d.Message = other.Message
	}
}

// ExpectedList renders the expected set for messages: "a, b or c".
func (d *Diagnostic) ExpectedList() string {
	switch len(d.Expected) {
	case 0:
		return ""
	case 1:
		return d.Expected[0]
	default:
		n := len(d.Expected)
		return strings.Join(d.Expected[:n-1], ", ") + " or " + d.Expected[n-1]
	}
}

func contains(list []string, s string) bool {
	for _, e := range list {
		if e == s {
			return true
		}
	}
	return false
}
