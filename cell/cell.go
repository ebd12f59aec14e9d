// Package cell provides the immutable bit storage primitive that bit-string
// literals are materialized into. A cell holds up to MaxBitLen raw bits,
// packed most-significant-bit first.
package cell

import (
	"errors"
	"fmt"
	"strings"
)

// MaxBitLen is the maximum number of bits a single cell can hold.
const MaxBitLen = 1024

var (
	// ErrOverflow is returned when a store would push a cell past MaxBitLen bits.
	ErrOverflow = errors.New("cell: bit length exceeds maximum")
	// ErrBitCount is returned when a requested bit count does not fit its byte buffer.
	ErrBitCount = errors.New("cell: bit count inconsistent with buffer")
	// ErrFinalized is returned when a builder is used after Finalize.
	ErrFinalized = errors.New("cell: builder already finalized")
)

// Cell is an immutable bit buffer. The zero value is an empty cell.
type Cell struct {
	data   []byte
	bitLen int
}

// BitLen returns the number of bits stored in the cell.
func (c *Cell) BitLen() int {
	return c.bitLen
}

// Data returns a copy of the packed bits, MSB-first. The last byte is
// zero-padded when BitLen is not a multiple of 8.
func (c *Cell) Data() []byte {
	out := make([]byte, len(c.data))
	copy(out, c.data)
	return out
}

// Bit reports whether bit i is set. It panics if i is out of range, matching
// slice indexing semantics.
func (c *Cell) Bit(i int) bool {
	if i < 0 || i >= c.bitLen {
		panic(fmt.Sprintf("cell: bit index %d out of range [0, %d)", i, c.bitLen))
	}
	return c.data[i/8]>>(7-i%8)&1 == 1
}

// Equal reports whether two cells hold the same bits.
func (c *Cell) Equal(other *Cell) bool {
	if c.bitLen != other.bitLen {
		return false
	}
	for i := range c.data {
		if c.data[i] != other.data[i] {
			return false
		}
	}
	return true
}

// String renders the cell in the canonical hex form, using a completion tag
// when the bit length is not nibble-aligned: x{ff}, x{b_}.
func (c *Cell) String() string {
	var sb strings.Builder
	sb.WriteString("x{")
	if c.bitLen%4 == 0 {
		writeNibbles(&sb, c.data, c.bitLen/4)
	} else {
		buf := c.Data()
		buf[c.bitLen/8] |= 1 << (7 - c.bitLen%8) // completion bit
		writeNibbles(&sb, buf, c.bitLen/4+1)
		sb.WriteByte('_')
	}
	sb.WriteByte('}')
	return sb.String()
}

func writeNibbles(sb *strings.Builder, data []byte, n int) {
	const digits = "0123456789abcdef"
	for i := 0; i < n; i++ {
		b := data[i/2]
		if i%2 == 0 {
			b >>= 4
		}
		sb.WriteByte(digits[b&0x0f])
	}
}

// Builder accumulates raw bits and finalizes them into an immutable Cell.
type Builder struct {
	data      [MaxBitLen / 8]byte
	bitLen    int
	finalized bool
}

// NewBuilder begins a new cell build.
func NewBuilder() *Builder {
	return &Builder{}
}

// BitLen returns the number of bits stored so far.
func (b *Builder) BitLen() int {
	return b.bitLen
}

// StoreRaw appends the first bits bits of data, MSB-first. It fails if the
// buffer is shorter than the requested bit count or the cell would exceed
// MaxBitLen.
func (b *Builder) StoreRaw(data []byte, bits int) error {
	if b.finalized {
		return ErrFinalized
	}
	if bits < 0 || bits > len(data)*8 {
		return fmt.Errorf("%w: %d bits from %d bytes", ErrBitCount, bits, len(data))
	}
	if b.bitLen+bits > MaxBitLen {
		return fmt.Errorf("%w: %d bits", ErrOverflow, b.bitLen+bits)
	}
	for i := 0; i < bits; i++ {
		if data[i/8]>>(7-i%8)&1 == 1 {
			b.data[b.bitLen/8] |= 1 << (7 - b.bitLen%8)
		}
		b.bitLen++
	}
	return nil
}

// Finalize seals the accumulated bits into an immutable cell. The builder
// cannot be reused afterwards.
func (b *Builder) Finalize() (*Cell, error) {
	if b.finalized {
		return nil, ErrFinalized
	}
	b.finalized = true
	data := make([]byte, (b.bitLen+7)/8)
	copy(data, b.data[:len(data)])
	return &Cell{data: data, bitLen: b.bitLen}, nil
}
