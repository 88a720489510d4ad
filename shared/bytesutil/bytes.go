// Package bytesutil defines helper methods for converting integers to byte
// slices and back, little-endian throughout as SSZ requires.
package bytesutil

import "encoding/binary"

// Bytes1 returns the first byte of a little-endian uint64.
func Bytes1(x uint64) []byte {
	return []byte{byte(x)}
}

// Bytes2 returns the least-significant 2 bytes of x, little-endian.
func Bytes2(x uint64) []byte {
	b := make([]byte, 2)
	binary.LittleEndian.PutUint16(b, uint16(x))
	return b
}

// Bytes3 returns the least-significant 3 bytes of x, little-endian.
func Bytes3(x uint64) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(x))
	return b[:3]
}

// Bytes4 returns the least-significant 4 bytes of x, little-endian.
func Bytes4(x uint64) []byte {
	b := make([]byte, 4)
	binary.LittleEndian.PutUint32(b, uint32(x))
	return b
}

// Bytes8 returns x as 8 little-endian bytes.
func Bytes8(x uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, x)
	return b
}

// Bytes32 returns x's 8 little-endian bytes followed by 24 zero bytes.
func Bytes32(x uint64) []byte {
	b := make([]byte, 32)
	binary.LittleEndian.PutUint64(b, x)
	return b
}

// FromBytes2 decodes 2 little-endian bytes into a uint64.
func FromBytes2(b []byte) uint64 {
	return uint64(binary.LittleEndian.Uint16(b))
}

// FromBytes4 decodes 4 little-endian bytes into a uint64.
func FromBytes4(b []byte) uint64 {
	return uint64(binary.LittleEndian.Uint32(b))
}

// FromBytes8 decodes 8 little-endian bytes into a uint64.
func FromBytes8(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}

// ToBytes converts x into a little-endian byte slice of exactly length bytes.
// Behaves like the teacher's variadic Bytes1..Bytes8 but generalized for
// arbitrary widths used by SSZ length-prefix and offset fields.
func ToBytes(x uint64, length int) []byte {
	b := make([]byte, length)
	var full [8]byte
	binary.LittleEndian.PutUint64(full[:], x)
	copy(b, full[:])
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// PadTo returns b zero-padded on the right to length n, or b unchanged if
// already at least that long.
func PadTo(b []byte, n int) []byte {
	if len(b) >= n {
		return b
	}
	padded := make([]byte, n)
	copy(padded, b)
	return padded
}

// SafeCopyBytes returns a copy of b, or nil if b is nil. Avoids callers
// aliasing slices owned by a BeaconState.
func SafeCopyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	c := make([]byte, len(b))
	copy(c, b)
	return c
}

// Trunc returns the first 6 bytes of b, used for compact log output.
func Trunc(b []byte) []byte {
	if len(b) > 6 {
		return b[:6]
	}
	return b
}
