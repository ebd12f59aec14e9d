// Package tvm provides the implementation of the asmparser interfaces for
// TVM assembly: mnemonics with comma-separated polymorphic arguments, where
// continuation blocks nest the grammar inside itself.
//
// Every sub-parser that commits to a prefix and then fails recovers locally,
// scanning to a resynchronization point and substituting an Invalid argument,
// so a single malformed token never discards the rest of the program.
package tvm

import (
	"fmt"

	"github.com/ChainSafe/tvm-asm/asmparser"
)

// parserImpl implements the asmparser.Parser interface.
type parserImpl struct{}

// NewParser returns a new instance of a TVM assembly parser.
func NewParser() asmparser.Parser {
	return &parserImpl{}
}

// Parse parses the full source text into an instruction sequence plus the
// accumulated diagnostics. See asmparser.Parser.
func (p *parserImpl) Parse(source string) ([]*asmparser.Instruction, []*asmparser.Diagnostic) {
	s := &parseState{src: source}
	instrs := s.parseProgram()
	return instrs, s.diags
}

// Mnemonic character classes. The first character is stricter than the rest:
// ':' is only valid after the first character.

func isMnemonicStart(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '#' || c == '_'
}

func isMnemonicChar(c byte) bool {
	return isMnemonicStart(c) || c == ':'
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// parseState carries the cursor and the diagnostic accumulator for one parse.
type parseState struct {
	src   string
	pos   int
	diags []*asmparser.Diagnostic
}

func (s *parseState) eof() bool {
	return s.pos >= len(s.src)
}

// peek returns the current byte, or 0 at end of input.
func (s *parseState) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *parseState) peekAt(off int) byte {
	if s.pos+off >= len(s.src) {
		return 0
	}
	return s.src[s.pos+off]
}

func (s *parseState) skipSpace() {
	for !s.eof() && isSpace(s.src[s.pos]) {
		s.pos++
	}
}

// report appends a diagnostic, merging expected sets when two alternatives
// fail at the same position.
func (s *parseState) report(d *asmparser.Diagnostic) {
	if n := len(s.diags); n > 0 {
		last := s.diags[n-1]
		if last.Kind == d.Kind && last.Span == d.Span && len(last.Expected) > 0 && len(d.Expected) > 0 {
			last.Merge(d)
			return
		}
	}
	s.diags = append(s.diags, d)
}

// parseProgram repeatedly applies the instruction parser until the input is
// exhausted. Content that cannot start a mnemonic is reported and skipped up
// to the next whitespace so the remainder of the program still parses.
func (s *parseState) parseProgram() []*asmparser.Instruction {
	var instrs []*asmparser.Instruction
	for {
		s.skipSpace()
		if s.eof() {
			return instrs
		}
		if isMnemonicStart(s.peek()) {
			instrs = append(instrs, s.parseInstruction())
			continue
		}
		start := s.pos
		found := s.src[s.pos : s.pos+1]
		for !s.eof() && !isSpace(s.peek()) {
			s.pos++
		}
		s.report(&asmparser.Diagnostic{
			Kind:     asmparser.DiagLexical,
			Span:     asmparser.Span{Start: start, End: s.pos},
			Message:  fmt.Sprintf("expected an instruction mnemonic, found %q", found),
			Expected: []string{"instruction mnemonic"},
			Found:    found,
		})
	}
}

// parseInstruction parses a mnemonic plus its argument list. The caller has
// already checked that the current byte can start a mnemonic.
func (s *parseState) parseInstruction() *asmparser.Instruction {
	start := s.pos
	s.pos++
	for !s.eof() && isMnemonicChar(s.peek()) {
		s.pos++
	}
	mnemonic := s.src[start:s.pos]
	args, end := s.parseArguments() // end starts out at the mnemonic's end
	return &asmparser.Instruction{
		Span:     asmparser.Span{Start: start, End: end},
		Mnemonic: mnemonic,
		Args:     args,
	}
}

// argumentExpectation is the full set of argument alternatives, reported as a
// union whenever none of them matches where one is required.
var argumentExpectation = []string{
	"numeric literal",
	"stack register",
	"control register",
	"continuation block",
	"bit-string slice",
}

// parseArguments parses zero or more comma-separated arguments. A malformed
// argument is reported and resynchronized at the next `,` or line break, so
// one bad argument never invalidates the rest of the line. Returns the
// arguments and the end offset of the last content consumed for them.
func (s *parseState) parseArguments() ([]*asmparser.Argument, int) {
	var args []*asmparser.Argument
	end := s.pos
	wantArg := false // true right after a consumed separator
	for {
		mark := s.pos
		s.skipSpace()
		if !s.startsArgument() {
			if !wantArg {
				s.pos = mark
				return args, end
			}
			// A separator promised another argument.
			found := "end of input"
			if !s.eof() {
				found = s.src[s.pos : s.pos+1]
			}
			d := &asmparser.Diagnostic{
				Kind:     asmparser.DiagLexical,
				Span:     asmparser.Span{Start: s.pos, End: s.pos},
				Expected: append([]string(nil), argumentExpectation...),
				Found:    found,
			}
			d.Message = fmt.Sprintf("expected %s, found %s", d.ExpectedList(), found)
			s.report(d)
			if s.eof() || s.peek() == '}' || isMnemonicStart(s.peek()) {
				return args, end
			}
			if !s.resyncToCommaOrNewline() {
				return args, end
			}
			continue
		}

		arg, ok := s.parseArgument()
		if arg != nil {
			args = append(args, arg)
			end = arg.Span.End
		}
		if !ok {
			// Hard local failure (numeric literal); already reported.
			if !s.resyncToCommaOrNewline() {
				return args, end
			}
			wantArg = true
			continue
		}
		wantArg = false

		// Separator: whitespace (newlines included), then a comma.
		sep := s.pos
		crossedLine := false
		for !s.eof() && isSpace(s.peek()) {
			if s.peek() == '\n' {
				crossedLine = true
			}
			s.pos++
		}
		if s.peek() == ',' {
			s.pos++
			wantArg = true
			continue
		}
		if crossedLine || s.eof() || s.peek() == '}' || isMnemonicStart(s.peek()) {
			s.pos = sep
			return args, end
		}
		// Same-line content where a separator belonged: consume up to the
		// next comma or line break and keep going.
		gStart := s.pos
		resumed := s.resyncToCommaOrNewline()
		gEnd := s.pos
		if resumed {
			gEnd-- // exclude the consumed comma from the span
		}
		s.report(&asmparser.Diagnostic{
			Kind:    asmparser.DiagStructural,
			Cause:   asmparser.CauseMissingSeparator,
			Span:    asmparser.Span{Start: gStart, End: gEnd},
			Message: "expected `,` between arguments",
		})
		end = gEnd
		if !resumed {
			return args, end
		}
		wantArg = true
	}
}

// startsArgument reports whether the current position can begin any argument
// variant. Prefixes overlap only at the leading character, so this check is
// what makes the ordered choice deterministic.
func (s *parseState) startsArgument() bool {
	switch c := s.peek(); {
	case isDigit(c):
		return true
	case c == '-':
		return isDigit(s.peekAt(1))
	case c == 's', c == 'c', c == '{':
		return true
	case c == 'x', c == 'b':
		return s.peekAt(1) == '{'
	}
	return false
}

// parseArgument dispatches on the leading character, in the fixed priority
// order: numeric literal, stack register, control register, block, slice.
// ok is false only for hard failures the caller must resynchronize past;
// recovered failures come back as an ArgInvalid argument with ok true.
func (s *parseState) parseArgument() (*asmparser.Argument, bool) {
	switch c := s.peek(); {
	case isDigit(c) || c == '-':
		return s.parseNatural()
	case c == 's':
		return s.parseStackRegister(), true
	case c == 'c':
		return s.parseControlRegister(), true
	case c == '{':
		return s.parseBlock(), true
	default: // x{ or b{
		return s.parseSlice(), true
	}
}

// parseBlock parses `{ ... }` with the same instruction grammar inside.
// A missing `}` is implicitly closed at end of input and extraneous content
// before the `}` is skipped; already-parsed inner instructions are never
// dropped.
func (s *parseState) parseBlock() *asmparser.Argument {
	start := s.pos
	s.pos++ // '{'
	var body []*asmparser.Instruction
	for {
		s.skipSpace()
		if s.eof() {
			s.report(&asmparser.Diagnostic{
				Kind:    asmparser.DiagStructural,
				Cause:   asmparser.CauseUnterminated,
				Span:    asmparser.Span{Start: start, End: s.pos},
				Message: "continuation block is not terminated by `}`",
			})
			break
		}
		if s.peek() == '}' {
			s.pos++
			break
		}
		if isMnemonicStart(s.peek()) {
			body = append(body, s.parseInstruction())
			continue
		}
		gStart := s.pos
		for !s.eof() && s.peek() != '}' {
			s.pos++
		}
		s.report(&asmparser.Diagnostic{
			Kind:    asmparser.DiagStructural,
			Cause:   asmparser.CauseMalformed,
			Span:    asmparser.Span{Start: gStart, End: s.pos},
			Message: "unexpected content before `}`",
		})
	}
	return &asmparser.Argument{
		Span:  asmparser.Span{Start: start, End: s.pos},
		Kind:  asmparser.ArgBlock,
		Block: body,
	}
}

// resyncToCommaOrNewline consumes input up to the next `,` or line break.
// It reports whether a comma was consumed, i.e. whether argument parsing
// should resume.
func (s *parseState) resyncToCommaOrNewline() bool {
	for !s.eof() {
		switch s.peek() {
		case ',':
			s.pos++
			return true
		case '\n':
			return false
		}
		s.pos++
	}
	return false
}
