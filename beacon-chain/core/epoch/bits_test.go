package epoch

import (
	"testing"

	bitfield "github.com/prysmaticlabs/go-bitfield"
	"github.com/stretchr/testify/require"
)

func TestBitAt(t *testing.T) {
	bits := bitfield.Bitvector4{0b0000_0101}
	require.True(t, bitAt(bits, 0))
	require.False(t, bitAt(bits, 1))
	require.True(t, bitAt(bits, 2))
	require.False(t, bitAt(bits, 3))
}

func TestSetBit(t *testing.T) {
	bits := bitfield.Bitvector4{0}
	setBit(bits, 2)
	require.True(t, bitAt(bits, 2))
	require.False(t, bitAt(bits, 0))
	setBit(bits, 0)
	require.Equal(t, byte(0b0000_0101), bits[0])
}

func TestAllBitsSet(t *testing.T) {
	bits := bitfield.Bitvector4{0b0000_1110}
	require.True(t, allBitsSet(bits, 1, 4))
	require.False(t, allBitsSet(bits, 0, 4))
	require.True(t, allBitsSet(bits, 1, 3))
}
