package ssz

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// Sentinel errors surfaced while decoding, mirroring fastssz's ssz.Err*.
var (
	ErrSize                  = errors.New("ssz: incorrect size")
	ErrBytesLength           = errors.New("ssz: bytes array does not have the correct length")
	ErrOffset                = errors.New("ssz: offset out of bounds")
	ErrInvalidVariableOffset = errors.New("ssz: invalid variable offset")
	ErrListTooBig            = errors.New("ssz: list length exceeds its declared maximum")

	errEmptyBitlist    = errors.New("ssz: empty bitlist encoding")
	errMissingSentinel = errors.New("ssz: bitlist missing sentinel bit")
)

// OffsetBytes is the byte width of an SSZ variable-size offset.
const OffsetBytes = 4

// WriteOffset appends a 4-byte little-endian offset to dst.
func WriteOffset(dst []byte, offset int) []byte {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], uint32(offset))
	return append(dst, b[:]...)
}

// ReadOffset decodes a 4-byte little-endian offset.
func ReadOffset(b []byte) uint64 {
	return uint64(binary.LittleEndian.Uint32(b))
}

// MarshalUint64 appends x as 8 little-endian bytes.
func MarshalUint64(dst []byte, x uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], x)
	return append(dst, b[:]...)
}

// UnmarshalUint64 decodes 8 little-endian bytes.
func UnmarshalUint64(b []byte) uint64 {
	return binary.LittleEndian.Uint64(b)
}

// Marshaler is implemented by every SSZ container in types/.
type Marshaler interface {
	MarshalSSZTo(dst []byte) ([]byte, error)
	MarshalSSZ() ([]byte, error)
	SizeSSZ() int
}

// Unmarshaler is implemented by every SSZ container in types/.
type Unmarshaler interface {
	UnmarshalSSZ(buf []byte) error
}

// HashRooter is implemented by every SSZ container; it returns the
// tree-hash root defined by spec section 4.1.
type HashRooter interface {
	HashTreeRoot() ([32]byte, error)
}

// FixedMarshaler is a container whose encoded size never varies with its
// contents (no nested variable-size lists), the precondition for
// MarshalFixedList/ UnmarshalFixedList below.
type FixedMarshaler interface {
	Marshaler
}

// MarshalFixedList appends the concatenated encoding of a homogeneous list
// of fixed-size elements (e.g. []*ProposerSlashing), the simple case of an
// SSZ List[T, N] body when T itself has no variable-size fields.
func MarshalFixedList[T FixedMarshaler](dst []byte, items []T) ([]byte, error) {
	var err error
	for _, it := range items {
		if dst, err = it.MarshalSSZTo(dst); err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// UnmarshalFixedList splits buf into count = len(buf)/elemSize elements of
// fixed size elemSize, constructing each with newItem and decoding it with
// its UnmarshalSSZ.
func UnmarshalFixedList[T Unmarshaler](buf []byte, elemSize int, newItem func() T) ([]T, error) {
	if elemSize == 0 {
		if len(buf) == 0 {
			return nil, nil
		}
		return nil, ErrSize
	}
	if len(buf)%elemSize != 0 {
		return nil, ErrSize
	}
	count := len(buf) / elemSize
	out := make([]T, count)
	for i := 0; i < count; i++ {
		item := newItem()
		if err := item.UnmarshalSSZ(buf[i*elemSize : (i+1)*elemSize]); err != nil {
			return nil, err
		}
		out[i] = item
	}
	return out, nil
}

// MarshalVariableList appends an SSZ List[T,N] body whose elements are
// themselves variable size: a per-element offset table (relative to the
// start of this body) followed by the concatenated element bodies.
func MarshalVariableList[T Marshaler](items []T) ([]byte, error) {
	header := make([]byte, 0, 4*len(items))
	var body []byte
	cursor := 4 * len(items)
	for _, it := range items {
		b, err := it.MarshalSSZ()
		if err != nil {
			return nil, err
		}
		header = WriteOffset(header, cursor)
		body = append(body, b...)
		cursor += len(b)
	}
	return append(header, body...), nil
}

// UnmarshalVariableList decodes an SSZ List[T,N] body of variable-size
// elements produced by MarshalVariableList.
func UnmarshalVariableList[T Unmarshaler](buf []byte, newItem func() T) ([]T, error) {
	if len(buf) == 0 {
		return nil, nil
	}
	o0 := ReadOffset(buf[0:4])
	if o0%4 != 0 || int(o0) > len(buf) {
		return nil, ErrInvalidVariableOffset
	}
	count := o0 / 4
	offsets := make([]uint64, count)
	for i := uint64(0); i < count; i++ {
		offsets[i] = ReadOffset(buf[i*4 : i*4+4])
	}
	out := make([]T, count)
	for i := uint64(0); i < count; i++ {
		start := offsets[i]
		end := uint64(len(buf))
		if i+1 < count {
			end = offsets[i+1]
		}
		if start > end || end > uint64(len(buf)) {
			return nil, ErrOffset
		}
		item := newItem()
		if err := item.UnmarshalSSZ(buf[start:end]); err != nil {
			return nil, err
		}
		out[i] = item
	}
	return out, nil
}
