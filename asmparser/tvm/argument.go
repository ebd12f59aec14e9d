package tvm

import (
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/ChainSafe/tvm-asm/asmparser"
	"github.com/ChainSafe/tvm-asm/cell"
)

// parseNatural parses a signed numeric literal: optional `-`, then one of
// 0x+hex, 0b+binary, or bare decimal, as an arbitrary-precision integer.
// Malformed digits for the chosen radix are a hard error local to this
// argument; the caller resynchronizes, no Invalid placeholder is produced.
func (s *parseState) parseNatural() (*asmparser.Argument, bool) {
	start := s.pos
	if s.peek() == '-' {
		s.pos++
	}
	radix, desc := 10, "decimal"
	if s.peek() == '0' {
		switch s.peekAt(1) {
		case 'x':
			radix, desc = 16, "hexadecimal"
			s.pos += 2
		case 'b':
			radix, desc = 2, "binary"
			s.pos += 2
		}
	}
	digits := s.pos
	for !s.eof() && isRadixDigit(s.peek(), radix) {
		s.pos++
	}
	if s.pos == digits {
		s.report(&asmparser.Diagnostic{
			Kind:    asmparser.DiagNumericLiteral,
			Cause:   asmparser.CauseInvalidDigit,
			Span:    asmparser.Span{Start: start, End: s.pos},
			Message: fmt.Sprintf("expected %s digits in numeric literal", desc),
		})
		return nil, false
	}
	n, ok := new(big.Int).SetString(s.src[digits:s.pos], radix)
	if !ok {
		s.report(&asmparser.Diagnostic{
			Kind:    asmparser.DiagNumericLiteral,
			Cause:   asmparser.CauseMalformed,
			Span:    asmparser.Span{Start: start, End: s.pos},
			Message: fmt.Sprintf("invalid %s literal", desc),
		})
		return nil, false
	}
	if s.src[start] == '-' {
		n.Neg(n)
	}
	return &asmparser.Argument{
		Span:    asmparser.Span{Start: start, End: s.pos},
		Kind:    asmparser.ArgNatural,
		Natural: n,
	}, true
}

func isRadixDigit(c byte, radix int) bool {
	switch radix {
	case 2:
		return c == '0' || c == '1'
	case 16:
		return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
	default:
		return isDigit(c)
	}
}

// parseStackRegister parses `sN` or `s(-N)` with N a signed 16-bit index.
// Once the `s` prefix is consumed the parser is committed: any failure
// recovers locally and yields an Invalid argument. The bare form resyncs at
// the next comma or whitespace, the parenthesized form at the next `)` or
// line break.
func (s *parseState) parseStackRegister() *asmparser.Argument {
	start := s.pos
	s.pos++ // 's'

	if s.peek() == '(' {
		s.pos++
		cause := asmparser.CauseMalformed
		msg := "malformed stack register, expected `s(-N)`"
		if s.peek() == '-' {
			s.pos++
			ds := s.pos
			for !s.eof() && isDigit(s.peek()) {
				s.pos++
			}
			if s.pos > ds {
				v, err := strconv.ParseInt(s.src[ds:s.pos], 10, 16)
				if err == nil && s.peek() == ')' {
					s.pos++
					return &asmparser.Argument{
						Span:     asmparser.Span{Start: start, End: s.pos},
						Kind:     asmparser.ArgStackRegister,
						StackReg: int16(-v),
					}
				}
				if err != nil {
					cause = asmparser.CauseOutOfRange
					msg = fmt.Sprintf("stack register s(-%s) is out of range", s.src[ds:s.pos])
				}
			}
		}
		// Recovery: consume up to the next `)` or line break, taking the
		// `)` with us when present.
		for !s.eof() && s.peek() != ')' && s.peek() != '\n' {
			s.pos++
		}
		if s.peek() == ')' {
			s.pos++
		}
		return s.invalidRegister(start, cause, msg)
	}

	ds := s.pos
	for !s.eof() && isDigit(s.peek()) {
		s.pos++
	}
	cause := asmparser.CauseMalformed
	msg := "malformed stack register, expected a decimal index after `s`"
	if s.pos > ds {
		v, err := strconv.ParseInt(s.src[ds:s.pos], 10, 16)
		if err == nil {
			return &asmparser.Argument{
				Span:     asmparser.Span{Start: start, End: s.pos},
				Kind:     asmparser.ArgStackRegister,
				StackReg: int16(v),
			}
		}
		cause = asmparser.CauseOutOfRange
		msg = fmt.Sprintf("stack register s%s is out of range", s.src[ds:s.pos])
	}
	s.resyncToCommaOrSpace()
	return s.invalidRegister(start, cause, msg)
}

// parseControlRegister parses `cN` with N an 8-bit index in {0..5, 7}.
// Index 6 is reserved and rejected. Commits after the `c` prefix; failures
// recover at the next comma or whitespace with an Invalid argument.
func (s *parseState) parseControlRegister() *asmparser.Argument {
	start := s.pos
	s.pos++ // 'c'
	ds := s.pos
	for !s.eof() && isDigit(s.peek()) {
		s.pos++
	}
	cause := asmparser.CauseMalformed
	msg := "malformed control register, expected a decimal index after `c`"
	if s.pos > ds {
		v, err := strconv.ParseUint(s.src[ds:s.pos], 10, 8)
		switch {
		case err == nil && (v <= 5 || v == 7):
			return &asmparser.Argument{
				Span:    asmparser.Span{Start: start, End: s.pos},
				Kind:    asmparser.ArgControlRegister,
				CtrlReg: uint8(v),
			}
		case err == nil:
			cause = asmparser.CauseOutOfRange
			msg = fmt.Sprintf("control register c%d is out of range", v)
		default:
			msg = fmt.Sprintf("invalid control register index %q", s.src[ds:s.pos])
		}
	}
	s.resyncToCommaOrSpace()
	return s.invalidRegister(start, cause, msg)
}

func (s *parseState) resyncToCommaOrSpace() {
	for !s.eof() && s.peek() != ',' && !isSpace(s.peek()) {
		s.pos++
	}
}

func (s *parseState) invalidRegister(start int, cause asmparser.Cause, msg string) *asmparser.Argument {
	span := asmparser.Span{Start: start, End: s.pos}
	s.report(&asmparser.Diagnostic{
		Kind:    asmparser.DiagRegister,
		Cause:   cause,
		Span:    span,
		Message: msg,
	})
	return &asmparser.Argument{Span: span, Kind: asmparser.ArgInvalid}
}

// parseSlice parses `x{...}` and `b{...}` bit-string literals into cells.
// Undecodable content recovers at the literal boundary; a missing `}` resyncs
// to the next `}` or line break and discards even an otherwise valid value.
func (s *parseState) parseSlice() *asmparser.Argument {
	start := s.pos
	base := s.peek() // 'x' or 'b'
	s.pos += 2       // prefix and '{'

	cStart := s.pos
	for !s.eof() && s.peek() != '}' && !isSpace(s.peek()) {
		s.pos++
	}
	content := s.src[cStart:s.pos]

	var c *cell.Cell
	var err error
	if base == 'x' {
		c, err = decodeHexSlice(content)
	} else {
		c, err = decodeBinSlice(content)
	}
	if err != nil {
		s.report(&asmparser.Diagnostic{
			Kind:    asmparser.DiagSliceEncoding,
			Cause:   sliceCause(err),
			Span:    asmparser.Span{Start: cStart, End: s.pos},
			Message: err.Error(),
		})
		c = nil
	}

	if s.peek() == '}' {
		s.pos++
	} else {
		gStart := s.pos
		for !s.eof() && s.peek() != '}' && s.peek() != '\n' {
			s.pos++
		}
		if s.peek() == '}' {
			s.pos++
		}
		s.report(&asmparser.Diagnostic{
			Kind:    asmparser.DiagStructural,
			Cause:   asmparser.CauseUnterminated,
			Span:    asmparser.Span{Start: gStart, End: s.pos},
			Message: "bit-string literal is not terminated by `}`",
		})
		c = nil
	}

	span := asmparser.Span{Start: start, End: s.pos}
	if c == nil {
		return &asmparser.Argument{Span: span, Kind: asmparser.ArgInvalid}
	}
	return &asmparser.Argument{Span: span, Kind: asmparser.ArgSlice, Slice: c}
}

func sliceCause(err error) asmparser.Cause {
	switch {
	case errors.Is(err, errNonASCII):
		return asmparser.CauseNonASCII
	case errors.Is(err, errInvalidDigit):
		return asmparser.CauseInvalidDigit
	case errors.Is(err, errTooLong):
		return asmparser.CauseTooLong
	default:
		return asmparser.CauseCellBuild
	}
}
