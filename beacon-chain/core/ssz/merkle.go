// Package ssz implements the Merkleization (tree-root) and SSZ
// marshal/unmarshal primitives the beacon chain core relies on for every
// digest it produces. The style mirrors fastssz's generated code
// (github.com/ferranbt/fastssz): a small Hasher that accumulates 32-byte
// chunks and merkleizes them, plus free functions for the vector/list/
// bitlist/container cases spec section 4.1 describes.
package ssz

import (
	"github.com/prysmaticlabs/prysm-core/shared/hashutil"
	"github.com/prysmaticlabs/prysm-core/shared/mathutil"
)

var zeroHashes [65][32]byte

func init() {
	for i := 1; i < len(zeroHashes); i++ {
		zeroHashes[i] = hashutil.HashTwo(zeroHashes[i-1], zeroHashes[i-1])
	}
}

// ZeroHash returns the root of a fully-zeroed Merkle subtree of the given
// depth, used to pad a chunk list up to a power of two without hashing
// actual zero bytes every time.
func ZeroHash(depth int) [32]byte {
	if depth < 0 {
		return [32]byte{}
	}
	if depth >= len(zeroHashes) {
		depth = len(zeroHashes) - 1
	}
	return zeroHashes[depth]
}

// Hasher accumulates 32-byte chunks for one Merkleization pass, the same
// role as fastssz's ssz.Hasher.
type Hasher struct {
	chunks [][32]byte
}

// NewHasher returns an empty chunk accumulator.
func NewHasher() *Hasher {
	return &Hasher{}
}

// AppendRoot appends a precomputed 32-byte root as one leaf chunk.
func (h *Hasher) AppendRoot(r [32]byte) {
	h.chunks = append(h.chunks, r)
}

// AppendBytes32 packs arbitrary bytes into 32-byte chunks (the "pack" step
// for basic-type vectors/lists) and appends them.
func (h *Hasher) AppendBytes32(b []byte) {
	for i := 0; i < len(b); i += 32 {
		var chunk [32]byte
		end := i + 32
		if end > len(b) {
			end = len(b)
		}
		copy(chunk[:], b[i:end])
		h.chunks = append(h.chunks, chunk)
	}
}

// AppendUint64 packs a uint64 little-endian into its own zero-padded 32-byte
// chunk, the chunk a single uint64 container field contributes.
func (h *Hasher) AppendUint64(v uint64) {
	var b [8]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * uint(i)))
	}
	h.AppendBytes32(b[:])
}

// Merkleize returns the root of the accumulated chunks, padded with zero
// subtrees to the next power of two (limit, if > 0, fixes the padding depth
// for a List[T, N]'s declared capacity rather than len(chunks)).
func (h *Hasher) Merkleize(limit uint64) [32]byte {
	return MerkleizeChunks(h.chunks, limit)
}

// MerkleizeWithMixin merkleizes the accumulated chunks then mixes in length,
// the List[T, N] case.
func (h *Hasher) MerkleizeWithMixin(length, limit uint64) [32]byte {
	root := h.Merkleize(limit)
	return MixInLength(root, length)
}

// MerkleizeChunks merkleizes a slice of 32-byte chunks padded (conceptually)
// to max(limit, len(chunks)) rounded up to a power of two. limit == 0 means
// "no declared capacity", i.e. pad only to len(chunks)'s own next power of 2
// (the fixed-vector / container case).
func MerkleizeChunks(chunks [][32]byte, limit uint64) [32]byte {
	count := uint64(len(chunks))
	width := count
	if limit > width {
		width = limit
	}
	if width == 0 {
		return [32]byte{}
	}
	depth := 0
	for (uint64(1) << uint(depth)) < width {
		depth++
	}
	return merkleizeLevel(chunks, 0, depth)
}

// merkleizeLevel recursively folds chunks[start:] (conceptually padded with
// zero-subtree roots) at the given remaining depth.
func merkleizeLevel(chunks [][32]byte, start, depth int) [32]byte {
	width := 1 << uint(depth)
	if depth == 0 {
		if start < len(chunks) {
			return chunks[start]
		}
		return [32]byte{}
	}
	half := width / 2
	if start >= len(chunks) {
		return ZeroHash(depth)
	}
	left := merkleizeLevel(chunks, start, depth-1)
	right := merkleizeLevel(chunks, start+half, depth-1)
	return hashutil.HashTwo(left, right)
}

// MerkleizeBytesToRoot packs an arbitrary fixed-size byte vector (e.g. a
// 48-byte pubkey or 96-byte signature) into chunks and merkleizes them down
// to a single root, the sub-hash a Vector[byte, N] basic-type field
// contributes as ONE chunk to its containing container. Use this — never
// AppendBytes32 directly on the parent hasher — for any byte vector wider
// than 32 bytes embedded in a container.
func MerkleizeBytesToRoot(b []byte) [32]byte {
	h := NewHasher()
	h.AppendBytes32(b)
	return h.Merkleize(0)
}

// Uint64ListRoot computes the tree-hash root of an SSZ List[uint64, limit]:
// pack 4 uint64s per 32-byte chunk, merkleize padded to the chunk width the
// declared capacity implies, then mix in the actual element count.
func Uint64ListRoot(list []uint64, limit uint64) [32]byte {
	h := NewHasher()
	h.AppendBytes32(MarshalUint64List(nil, list))
	limitChunks := (limit + 3) / 4
	if limitChunks == 0 {
		limitChunks = 1
	}
	return h.MerkleizeWithMixin(uint64(len(list)), limitChunks)
}

// MarshalUint64List appends a List[uint64] body (no length prefix; SSZ lists
// carry their length only implicitly, via the enclosing offset/tail size).
func MarshalUint64List(dst []byte, list []uint64) []byte {
	for _, v := range list {
		dst = MarshalUint64(dst, v)
	}
	return dst
}

// UnmarshalUint64List decodes a List[uint64] body of the given byte slice.
func UnmarshalUint64List(buf []byte) ([]uint64, error) {
	if len(buf)%8 != 0 {
		return nil, ErrSize
	}
	out := make([]uint64, len(buf)/8)
	for i := range out {
		out[i] = UnmarshalUint64(buf[i*8 : i*8+8])
	}
	return out, nil
}

// MixInLength returns hash(root || length_as_32_byte_le), the final step of
// a variable-length List[T, N] or Bitlist tree-root.
func MixInLength(root [32]byte, length uint64) [32]byte {
	var lenBytes [32]byte
	for i := 0; i < 8; i++ {
		lenBytes[i] = byte(length >> (8 * uint(i)))
	}
	return hashutil.HashTwo(root, lenBytes)
}

// PackChunkCount returns how many 32-byte chunks byteLen packs into.
func PackChunkCount(byteLen int) uint64 {
	if byteLen == 0 {
		return 0
	}
	return uint64((byteLen + 31) / 32)
}

// BitlistRoot computes the tree root of an SSZ Bitlist[N] encoded per spec
// section 4.1: the logical bit length is read off the sentinel top bit of
// the last byte, the bytes (sans sentinel) are packed and merkleized to a
// depth sized by maxLen bits, then length is mixed in.
func BitlistRoot(encoded []byte, maxLen uint64) ([32]byte, error) {
	length, bodyBits, err := BitlistLength(encoded)
	if err != nil {
		return [32]byte{}, err
	}
	_ = bodyBits
	byteLen := int((length + 7) / 8)
	body := make([]byte, byteLen)
	copy(body, encoded)
	if byteLen > 0 {
		// Clear the sentinel bit's byte down to the logical content; the
		// sentinel itself lives only in `encoded`'s last byte, stripped here.
		lastByteBitLen := length - uint64(byteLen-1)*8
		if lastByteBitLen < 8 {
			mask := byte(1<<uint(lastByteBitLen) - 1)
			body[byteLen-1] &= mask
		}
	}
	h := NewHasher()
	h.AppendBytes32(body)
	limitChunks := (maxLen + 255) / 256
	if limitChunks == 0 {
		limitChunks = 1
	}
	root := h.Merkleize(limitChunks)
	return MixInLength(root, length), nil
}

// BitlistLength decodes the logical bit-length of an SSZ-encoded bitlist:
// (len(encoded)-1)*8 + position of the highest set bit in the last byte.
func BitlistLength(encoded []byte) (length uint64, lastByteBitLen uint64, err error) {
	if len(encoded) == 0 {
		return 0, 0, errEmptyBitlist
	}
	last := encoded[len(encoded)-1]
	if last == 0 {
		return 0, 0, errMissingSentinel
	}
	highBit := 0
	for b := last; b != 0; b >>= 1 {
		highBit++
	}
	return uint64(len(encoded)-1)*8 + uint64(highBit-1), uint64(highBit - 1), nil
}

// VerifyMerkleBranch reports whether leaf, combined with the sibling hashes
// in proof (root-ward order) at the given generalized index, recomputes to
// root. depth is the branch length (proof must have exactly that many
// entries); index encodes the leaf's left/right turn at each level in its
// low `depth` bits, matching the deposit-contract's own verification.
func VerifyMerkleBranch(leaf [32]byte, proof [][]byte, depth uint64, index uint64, root [32]byte) bool {
	if uint64(len(proof)) != depth {
		return false
	}
	value := leaf
	for i := uint64(0); i < depth; i++ {
		var sibling [32]byte
		copy(sibling[:], proof[i])
		if (index>>i)&1 == 1 {
			value = hashutil.HashTwo(sibling, value)
		} else {
			value = hashutil.HashTwo(value, sibling)
		}
	}
	return value == root
}

// IntegerSquareRoot re-exports mathutil's isqrt for callers that only import
// ssz for Merkleization but also need the reward-calc square root.
func IntegerSquareRoot(n uint64) uint64 {
	return mathutil.IntegerSquareRoot(n)
}
