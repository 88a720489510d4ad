// Package hashutil wraps the chain's canonical hash function. The
// sharding-era teacher wraps Keccak-256; the wire/consensus hash here is
// SHA-256 per the normative wire-format section of the spec, so the
// underlying primitive is swapped while the wrapper shape is kept.
package hashutil

import "crypto/sha256"

// Hash returns the SHA-256 digest of data.
func Hash(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// HashTwo returns Hash(a || b), the two-child Merkle hashing step used
// throughout tree-hash.
func HashTwo(a, b [32]byte) [32]byte {
	var buf [64]byte
	copy(buf[:32], a[:])
	copy(buf[32:], b[:])
	return sha256.Sum256(buf[:])
}

// RepeatHash applies Hash repeatedly numTimes on a 32-byte value, used by
// RANDAO reveal verification helpers in some forks; kept for parity with the
// teacher's own RepeatHash.
func RepeatHash(data [32]byte, numTimes uint64) [32]byte {
	for i := uint64(0); i < numTimes; i++ {
		data = Hash(data[:])
	}
	return data
}
