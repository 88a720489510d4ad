package bytesutil_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prysmaticlabs/prysm-core/shared/bytesutil"
)

func TestBytesRoundTrip(t *testing.T) {
	require.Equal(t, uint64(0x1234), bytesutil.FromBytes2(bytesutil.Bytes2(0x1234)))
	require.Equal(t, uint64(0x12345678), bytesutil.FromBytes4(bytesutil.Bytes4(0x12345678)))
	require.Equal(t, uint64(0x0123456789abcdef), bytesutil.FromBytes8(bytesutil.Bytes8(0x0123456789abcdef)))
}

func TestBytes32LeftPacksLittleEndian(t *testing.T) {
	b := bytesutil.Bytes32(1)
	require.Len(t, b, 32)
	require.Equal(t, byte(1), b[0])
	for _, v := range b[1:] {
		require.Equal(t, byte(0), v)
	}
}

func TestBytes3TruncatesToThreeBytes(t *testing.T) {
	b := bytesutil.Bytes3(0xAABBCC)
	require.Len(t, b, 3)
	require.Equal(t, []byte{0xCC, 0xBB, 0xAA}, b)
}

func TestToBytes(t *testing.T) {
	require.Equal(t, []byte{5, 0, 0, 0}, bytesutil.ToBytes(5, 4))
	require.Len(t, bytesutil.ToBytes(1, 32), 32)
}

func TestPadTo(t *testing.T) {
	require.Equal(t, []byte{1, 2, 0, 0}, bytesutil.PadTo([]byte{1, 2}, 4))
	require.Equal(t, []byte{1, 2, 3, 4}, bytesutil.PadTo([]byte{1, 2, 3, 4}, 2))
}

func TestSafeCopyBytes(t *testing.T) {
	require.Nil(t, bytesutil.SafeCopyBytes(nil))
	src := []byte{1, 2, 3}
	dst := bytesutil.SafeCopyBytes(src)
	require.Equal(t, src, dst)
	dst[0] = 9
	require.Equal(t, byte(1), src[0])
}

func TestTrunc(t *testing.T) {
	require.Equal(t, []byte{1, 2, 3}, bytesutil.Trunc([]byte{1, 2, 3}))
	require.Equal(t, []byte{1, 2, 3, 4, 5, 6}, bytesutil.Trunc([]byte{1, 2, 3, 4, 5, 6, 7, 8}))
}
