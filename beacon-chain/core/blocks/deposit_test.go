package blocks_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/blocks"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/bls"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/state"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
	"github.com/prysmaticlabs/prysm-core/shared/hashutil"
)

// zeroHashAt is the root of a fully zero Merkle subtree of the given depth,
// matching package ssz's precomputed table without exporting it.
func zeroHashAt(depth uint64) [32]byte {
	var h [32]byte
	for i := uint64(0); i < depth; i++ {
		h = hashutil.HashTwo(h, h)
	}
	return h
}

// countBytes little-endian-encodes a deposit count into the 32-byte chunk
// the deposit contract tree mixes in as its final level.
func countBytes(count uint64) [32]byte {
	var b [32]byte
	for i := uint64(0); i < 8; i++ {
		b[i] = byte(count >> (8 * i))
	}
	return b
}

// singleLeafProof builds the Merkle proof for the lone leaf of a freshly
// emptied incremental deposit tree (every sibling below the count-mixin
// level is the zero subtree at its depth), used when leaf is the very
// first deposit ever recorded.
func singleLeafProof(leaf [32]byte, depth uint64) ([][]byte, primitives.Root) {
	proof := make([][]byte, depth+1)
	value := leaf
	for i := uint64(0); i < depth; i++ {
		sibling := zeroHashAt(i)
		proof[i] = sibling[:]
		value = hashutil.HashTwo(value, sibling)
	}
	cb := countBytes(1)
	proof[depth] = cb[:]
	value = hashutil.HashTwo(value, cb)
	return proof, primitives.Root(value)
}

// twoLeafProofs builds the pair of proofs for a two-deposit tree: leaf0 at
// index 0 and leaf1 at index 1 share a single non-zero sibling (each
// other), with every level above backed by the zero subtree until the
// count-mixin level, which both proofs share as count=2.
func twoLeafProofs(leaf0, leaf1 [32]byte, depth uint64) (proof0, proof1 [][]byte, root primitives.Root) {
	parent := hashutil.HashTwo(leaf0, leaf1)
	value := parent
	levelSiblings := make([][32]byte, depth-1)
	for i := uint64(0); i < depth-1; i++ {
		sibling := zeroHashAt(i + 1)
		levelSiblings[i] = sibling
		value = hashutil.HashTwo(value, sibling)
	}
	cb := countBytes(2)
	value = hashutil.HashTwo(value, cb)

	proof0 = make([][]byte, depth+1)
	proof1 = make([][]byte, depth+1)
	proof0[0] = append([]byte{}, leaf1[:]...)
	proof1[0] = append([]byte{}, leaf0[:]...)
	for i := uint64(0); i < depth-1; i++ {
		proof0[i+1] = append([]byte{}, levelSiblings[i][:]...)
		proof1[i+1] = append([]byte{}, levelSiblings[i][:]...)
	}
	proof0[depth] = append([]byte{}, cb[:]...)
	proof1[depth] = append([]byte{}, cb[:]...)
	return proof0, proof1, primitives.Root(value)
}

func newTestGenesis(t *testing.T, numValidators int) *types.BeaconState {
	t.Helper()
	params.UseMinimalConfig()
	cfg := params.BeaconConfig()

	deposits := make([]*types.Deposit, numValidators)
	for i := 0; i < numValidators; i++ {
		var pubkey primitives.Pubkey
		pubkey[0] = byte(i + 1)
		deposits[i] = &types.Deposit{
			Data: &types.DepositData{
				Pubkey: pubkey,
				Amount: primitives.Gwei(cfg.MaxEffectiveBalance),
			},
		}
	}
	genesis, err := state.GenesisBeaconState(deposits, 0, &types.Eth1Data{DepositCount: uint64(numValidators)}, bls.NoVerify{})
	require.NoError(t, err)
	return genesis
}

func TestProcessDeposit_NewValidator(t *testing.T) {
	st := newTestGenesis(t, 0)
	cfg := params.BeaconConfig()
	depth := cfg.DepositContractTreeDepth

	var pubkey primitives.Pubkey
	pubkey[0] = 0xff
	data := &types.DepositData{
		Pubkey: pubkey,
		Amount: primitives.Gwei(cfg.MaxEffectiveBalance),
	}
	leaf, err := data.HashTreeRoot()
	require.NoError(t, err)
	proof, root := singleLeafProof(leaf, depth)
	st.Eth1Data.DepositRoot = root
	st.Eth1Data.DepositCount = 1

	dep := &types.Deposit{Data: data, Proof: proof}
	err = blocks.ProcessDeposit(st, dep, bls.NoVerify{}, true)
	require.NoError(t, err)
	require.Equal(t, 1, len(st.Validators))
	require.Equal(t, uint64(1), st.Eth1DepositIndex)
	require.Equal(t, pubkey, st.Validators[0].Pubkey)
}

func TestProcessDeposit_TopUpExistingValidator(t *testing.T) {
	st := newTestGenesis(t, 0)
	cfg := params.BeaconConfig()
	depth := cfg.DepositContractTreeDepth

	var pubkey primitives.Pubkey
	pubkey[0] = 0x11
	first := &types.DepositData{Pubkey: pubkey, Amount: primitives.Gwei(cfg.MaxEffectiveBalance)}
	leaf0, err := first.HashTreeRoot()
	require.NoError(t, err)
	proof0, root0 := singleLeafProof(leaf0, depth)
	st.Eth1Data.DepositRoot = root0
	st.Eth1Data.DepositCount = 1
	require.NoError(t, blocks.ProcessDeposit(st, &types.Deposit{Data: first, Proof: proof0}, bls.NoVerify{}, true))
	require.Equal(t, 1, len(st.Validators))
	startBalance := st.Balances[0]

	second := &types.DepositData{Pubkey: pubkey, Amount: primitives.Gwei(cfg.MinDepositAmount)}
	leaf1, err := second.HashTreeRoot()
	require.NoError(t, err)
	_, proof1, root := twoLeafProofs(leaf0, leaf1, depth)
	st.Eth1Data.DepositRoot = root
	st.Eth1Data.DepositCount = 2
	require.NoError(t, blocks.ProcessDeposit(st, &types.Deposit{Data: second, Proof: proof1}, bls.NoVerify{}, true))

	require.Equal(t, 1, len(st.Validators))
	require.Equal(t, startBalance+cfg.MinDepositAmount, st.Balances[0])
	require.Equal(t, uint64(2), st.Eth1DepositIndex)
}

func TestProcessDeposit_InvalidMerkleBranch(t *testing.T) {
	st := newTestGenesis(t, 4)
	cfg := params.BeaconConfig()

	var pubkey primitives.Pubkey
	pubkey[0] = 0xaa
	data := &types.DepositData{Pubkey: pubkey, Amount: primitives.Gwei(cfg.MaxEffectiveBalance)}
	depth := cfg.DepositContractTreeDepth + 1
	badProof := make([][]byte, depth)
	for i := range badProof {
		badProof[i] = make([]byte, 32)
	}
	dep := &types.Deposit{Data: data, Proof: badProof}
	err := blocks.ProcessDeposit(st, dep, bls.NoVerify{}, true)
	require.Error(t, err)
}
