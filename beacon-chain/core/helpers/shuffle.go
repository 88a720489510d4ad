package helpers

import (
	"encoding/binary"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/shared/hashutil"
)

const maxShuffleListSize = 1 << 40

// ShuffledIndex applies the "swap-or-not" shuffle to i, one of count
// possible indices, seeded by seed. It fails if i is out of range or count
// is too large for the pivot arithmetic to stay safe.
//
//	def get_shuffled_index(index, index_count, seed):
//	    for round in range(SHUFFLE_ROUND_COUNT):
//	        pivot = bytes_to_int(hash(seed + int_to_bytes1(round))[0:8]) % index_count
//	        flip = (pivot + index_count - index) % index_count
//	        position = max(index, flip)
//	        source = hash(seed + int_to_bytes1(round) + int_to_bytes4(position // 256))
//	        byte = source[(position % 256) // 8]
//	        bit = (byte >> (position % 8)) % 2
//	        index = flip if bit else index
//	    return index
func ShuffledIndex(i, count uint64, seed [32]byte) (uint64, error) {
	if count == 0 || i >= count {
		return 0, ErrIndexOutOfRange
	}
	if count > maxShuffleListSize {
		return 0, ErrCountTooLarge
	}

	rounds := params.BeaconConfig().ShuffleRoundCount
	index := i
	for round := uint64(0); round < rounds; round++ {
		pivot := pivotForRound(seed, round, count)
		flip := (pivot + count - index) % count
		position := index
		if flip > position {
			position = flip
		}
		if bitAt(seed, round, position) {
			index = flip
		}
	}
	return index, nil
}

func pivotForRound(seed [32]byte, round, count uint64) uint64 {
	buf := append(seed[:], byte(round))
	h := hashutil.Hash(buf)
	return binary.LittleEndian.Uint64(h[0:8]) % count
}

func bitAt(seed [32]byte, round, position uint64) bool {
	buf := make([]byte, 0, 37)
	buf = append(buf, seed[:]...)
	buf = append(buf, byte(round))
	var posBuf [4]byte
	binary.LittleEndian.PutUint32(posBuf[:], uint32(position/256))
	buf = append(buf, posBuf[:]...)
	source := hashutil.Hash(buf)
	b := source[(position%256)/8]
	return (b>>(position%8))%2 == 1
}

// ShuffledList returns indices permuted by the swap-or-not shuffle, i.e.
// [ShuffledIndex(i, len(indices), seed) for i in range(len(indices))]
// applied as a single pass that builds the permuted slice of the input
// values rather than of raw positions.
func ShuffledList[T any](input []T, seed [32]byte) ([]T, error) {
	count := uint64(len(input))
	out := make([]T, count)
	for i := uint64(0); i < count; i++ {
		shuffled, err := ShuffledIndex(i, count, seed)
		if err != nil {
			return nil, err
		}
		out[i] = input[shuffled]
	}
	return out, nil
}
