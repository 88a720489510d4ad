package helpers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
)

func TestShuffledIndexIsPermutation(t *testing.T) {
	params.UseMinimalConfig()
	defer params.UseMainnetConfig()

	var seed [32]byte
	seed[0] = 0xAB
	const count = 50

	seen := make(map[uint64]bool, count)
	for i := uint64(0); i < count; i++ {
		shuffled, err := helpers.ShuffledIndex(i, count, seed)
		require.NoError(t, err)
		require.Less(t, shuffled, uint64(count))
		require.False(t, seen[shuffled], "index %d produced twice", shuffled)
		seen[shuffled] = true
	}
	require.Len(t, seen, count)
}

func TestShuffledIndexIsDeterministic(t *testing.T) {
	params.UseMinimalConfig()
	defer params.UseMainnetConfig()

	var seed [32]byte
	seed[0] = 1
	a, err := helpers.ShuffledIndex(3, 20, seed)
	require.NoError(t, err)
	b, err := helpers.ShuffledIndex(3, 20, seed)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestShuffledIndexDifferentSeedsDiffer(t *testing.T) {
	params.UseMinimalConfig()
	defer params.UseMainnetConfig()

	var seedA, seedB [32]byte
	seedA[0] = 1
	seedB[0] = 2
	a, err := helpers.ShuffledIndex(3, 20, seedA)
	require.NoError(t, err)
	b, err := helpers.ShuffledIndex(3, 20, seedB)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestShuffledIndexRejectsOutOfRange(t *testing.T) {
	var seed [32]byte
	_, err := helpers.ShuffledIndex(10, 10, seed)
	require.Error(t, err)
	_, err = helpers.ShuffledIndex(0, 0, seed)
	require.Error(t, err)
}

func TestShuffledListIsPermutationOfInput(t *testing.T) {
	params.UseMinimalConfig()
	defer params.UseMainnetConfig()

	var seed [32]byte
	seed[0] = 7
	input := []int{10, 11, 12, 13, 14, 15}
	out, err := helpers.ShuffledList(input, seed)
	require.NoError(t, err)
	require.ElementsMatch(t, input, out)
}
