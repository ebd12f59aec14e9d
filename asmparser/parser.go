// Package asmparser defines the shared contract between assembly parsers and
// their consumers: the span-annotated AST, the diagnostic model, and the
// Parser interface.
package asmparser

// Parser holds the interface for parsing assembly source text.
type Parser interface {
	// Parse consumes the entire source text and returns a best-effort
	// instruction sequence together with every diagnostic collected along
	// the way. It never fails outright: malformed input degrades into
	// Invalid argument values and diagnostics, not into an aborted parse.
	Parse(source string) ([]*Instruction, []*Diagnostic)
}
