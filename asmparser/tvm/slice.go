package tvm

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/ChainSafe/tvm-asm/cell"
)

var (
	errNonASCII     = errors.New("non-ascii characters in bitstring")
	errInvalidDigit = errors.New("unexpected char in bitstring")
	errTooLong      = errors.New("bitstring is too long")
)

// decodeHexSlice decodes the interior of an x{...} literal into a cell.
//
// An odd trailing hex digit contributes a high-nibble half byte (4 bits).
// A trailing `_` enables tag mode: the byte-aligned buffer is assumed to be
// padded with a single completion bit followed by zeros, and the exact bit
// length is recovered by scanning trailing bytes backwards.
func decodeHexSlice(s string) (*cell.Cell, error) {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return nil, errNonASCII
		}
	}

	withTag := false
	if strings.HasSuffix(s, "_") {
		withTag = true
		s = s[:len(s)-1]
	}

	var halfByte byte
	hasHalf := false
	if len(s)%2 != 0 {
		v, err := hexDigit(s[len(s)-1])
		if err != nil {
			return nil, err
		}
		halfByte = v
		hasHalf = true
		s = s[:len(s)-1]
	}

	if len(s) > cell.MaxBitLen/8*2 {
		return nil, errTooLong
	}

	buf := make([]byte, 0, len(s)/2+1)
	for i := 0; i < len(s); i += 2 {
		hi, err := hexDigit(s[i])
		if err != nil {
			return nil, err
		}
		lo, err := hexDigit(s[i+1])
		if err != nil {
			return nil, err
		}
		buf = append(buf, hi<<4|lo)
	}

	bitLen := len(buf) * 8
	if hasHalf {
		bitLen += 4
		buf = append(buf, halfByte<<4)
	}

	if withTag {
		// Scan backwards for the completion bit: each fully-zero byte drops
		// 8 bits; the first non-zero byte drops the completion bit itself
		// plus its trailing zeros, and the scan stops.
		bitLen = len(buf) * 8
		for i := len(buf) - 1; i >= 0; i-- {
			if buf[i] == 0 {
				bitLen -= 8
				continue
			}
			bitLen -= 1 + bits.TrailingZeros8(buf[i])
			break
		}
	}

	return buildCell(buf, bitLen)
}

func hexDigit(c byte) (byte, error) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', nil
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, nil
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, nil
	default:
		return 0, fmt.Errorf("%w: %q in hex bitstring", errInvalidDigit, string(c))
	}
}

// decodeBinSlice decodes the interior of a b{...} literal: one bit per
// character, packed MSB-first, capped at the cell's maximum width.
func decodeBinSlice(s string) (*cell.Cell, error) {
	var buf [cell.MaxBitLen / 8]byte
	bitLen := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '0' && c != '1' {
			return nil, fmt.Errorf("%w: %q in binary bitstring", errInvalidDigit, string(c))
		}
		if bitLen >= cell.MaxBitLen {
			return nil, errTooLong
		}
		buf[bitLen/8] |= (c - '0') << (7 - bitLen%8)
		bitLen++
	}
	return buildCell(buf[:(bitLen+7)/8], bitLen)
}

func buildCell(buf []byte, bitLen int) (*cell.Cell, error) {
	b := cell.NewBuilder()
	if err := b.StoreRaw(buf, bitLen); err != nil {
		return nil, fmt.Errorf("cell build failed: %w", err)
	}
	c, err := b.Finalize()
	if err != nil {
		return nil, fmt.Errorf("cell build failed: %w", err)
	}
	return c, nil
}
