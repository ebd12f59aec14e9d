package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderStoreAndFinalize(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.StoreRaw([]byte{0xff, 0xa0}, 12))
	assert.Equal(t, 12, b.BitLen())

	c, err := b.Finalize()
	require.NoError(t, err)
	assert.Equal(t, 12, c.BitLen())
	assert.Equal(t, []byte{0xff, 0xa0}, c.Data())

	assert.True(t, c.Bit(0))
	assert.True(t, c.Bit(7))
	assert.True(t, c.Bit(8))
	assert.False(t, c.Bit(9))
}

func TestBuilderAppends(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.StoreRaw([]byte{0b1010_0000}, 3))
	require.NoError(t, b.StoreRaw([]byte{0b1100_0000}, 2))

	c, err := b.Finalize()
	require.NoError(t, err)
	assert.Equal(t, 5, c.BitLen())
	assert.Equal(t, []byte{0b1011_1000}, c.Data())
}

func TestBuilderOverflow(t *testing.T) {
	buf := make([]byte, MaxBitLen/8+1)
	b := NewBuilder()
	err := b.StoreRaw(buf, MaxBitLen+1)
	assert.ErrorIs(t, err, ErrOverflow)

	// Exactly the cap is fine.
	b = NewBuilder()
	require.NoError(t, b.StoreRaw(buf, MaxBitLen))
	c, err := b.Finalize()
	require.NoError(t, err)
	assert.Equal(t, MaxBitLen, c.BitLen())
}

func TestBuilderBitCountMismatch(t *testing.T) {
	b := NewBuilder()
	err := b.StoreRaw([]byte{0xff}, 9)
	assert.ErrorIs(t, err, ErrBitCount)

	err = b.StoreRaw([]byte{0xff}, -1)
	assert.ErrorIs(t, err, ErrBitCount)
}

func TestBuilderFinalizeTwice(t *testing.T) {
	b := NewBuilder()
	_, err := b.Finalize()
	require.NoError(t, err)

	_, err = b.Finalize()
	assert.ErrorIs(t, err, ErrFinalized)
	assert.ErrorIs(t, b.StoreRaw([]byte{0xff}, 8), ErrFinalized)
}

func TestCellEqual(t *testing.T) {
	build := func(data []byte, bits int) *Cell {
		b := NewBuilder()
		require.NoError(t, b.StoreRaw(data, bits))
		c, err := b.Finalize()
		require.NoError(t, err)
		return c
	}

	assert.True(t, build([]byte{0xaa}, 8).Equal(build([]byte{0xaa}, 8)))
	assert.False(t, build([]byte{0xaa}, 8).Equal(build([]byte{0xaa}, 7)))
	assert.False(t, build([]byte{0xaa}, 8).Equal(build([]byte{0xab}, 8)))
}

func TestCellString(t *testing.T) {
	cases := []struct {
		data []byte
		bits int
		want string
	}{
		{nil, 0, "x{}"},
		{[]byte{0xff}, 8, "x{ff}"},
		{[]byte{0xa0}, 4, "x{a}"},
		{[]byte{0xa0}, 3, "x{b_}"}, // 101 + completion bit = 1011
		{[]byte{0xaf, 0xfe}, 15, "x{afff_}"},
	}
	for _, tc := range cases {
		b := NewBuilder()
		require.NoError(t, b.StoreRaw(tc.data, tc.bits))
		c, err := b.Finalize()
		require.NoError(t, err)
		assert.Equal(t, tc.want, c.String(), tc.want)
	}
}
