package bls_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/bls"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
)

func TestNoVerifyAlwaysAcceptsSignaturesAndAggregates(t *testing.T) {
	var v bls.Verifier = bls.NoVerify{}

	require.True(t, v.Verify(primitives.Pubkey{}, [32]byte{}, primitives.Signature{}, 0))
	require.True(t, v.VerifyAggregate(nil, nil, primitives.Signature{}, 0))

	pk, ok := v.AggregatePubkeys([]primitives.Pubkey{{1}, {2}})
	require.True(t, ok)
	require.Equal(t, primitives.Pubkey{1}, pk)
}

func TestNoVerifyAggregatePubkeysFailsOnEmptyInput(t *testing.T) {
	v := bls.NoVerify{}
	_, ok := v.AggregatePubkeys(nil)
	require.False(t, ok)
}
