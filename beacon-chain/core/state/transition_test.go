package state_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/blocks"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/bls"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/slotutil"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/state"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

func genesisForTransition(t *testing.T, numValidators int) *types.BeaconState {
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

func blockAtNextSlot(t *testing.T, parent *types.BeaconState) *types.SignedBeaconBlock {
	t.Helper()
	parentRoot, err := parent.LatestBlockHeader.SigningRoot()
	require.NoError(t, err)
	eth1 := *parent.Eth1Data
	return &types.SignedBeaconBlock{
		Block: &types.BeaconBlock{
			Slot:       parent.Slot + 1,
			ParentRoot: primitives.Root(parentRoot),
			Body:       &types.BeaconBlockBody{Eth1Data: &eth1},
		},
	}
}

// expectedPostStateRoot runs the same slot-advance-then-block-apply sequence
// ExecuteStateTransition runs internally, against an independent copy of the
// parent state, so the test can learn what root the block should declare
// without reaching into ExecuteStateTransition's own bookkeeping.
func expectedPostStateRoot(t *testing.T, parent *types.BeaconState, signed *types.SignedBeaconBlock) primitives.Root {
	t.Helper()
	st := parent.Copy()
	require.NoError(t, slotutil.ProcessSlots(context.Background(), st, signed.Block.Slot))
	require.NoError(t, blocks.ProcessBlock(st, signed, bls.NoVerify{}, false))
	root, err := st.HashTreeRoot()
	require.NoError(t, err)
	return primitives.Root(root)
}

func TestExecuteStateTransition_OK(t *testing.T) {
	parent := genesisForTransition(t, 4)
	signed := blockAtNextSlot(t, parent)
	signed.Block.StateRoot = expectedPostStateRoot(t, parent, signed)

	post, err := state.ExecuteStateTransition(context.Background(), parent, signed, bls.NoVerify{}, false)
	require.NoError(t, err)
	require.Equal(t, signed.Block.Slot, post.Slot)
	require.Equal(t, signed.Block.StateRoot, post.LatestBlockHeader.StateRoot)
	require.Equal(t, signed.Block.Slot, post.LatestBlockHeader.Slot)
}

func TestExecuteStateTransition_BadStateRootRejected(t *testing.T) {
	parent := genesisForTransition(t, 4)
	signed := blockAtNextSlot(t, parent)
	var wrongRoot primitives.Root
	wrongRoot[0] = 0xff
	signed.Block.StateRoot = wrongRoot

	_, err := state.ExecuteStateTransition(context.Background(), parent, signed, bls.NoVerify{}, false)
	require.Error(t, err)
}

func TestExecuteStateTransition_DoesNotMutateParent(t *testing.T) {
	parent := genesisForTransition(t, 4)
	parentSlotBefore := parent.Slot
	signed := blockAtNextSlot(t, parent)
	signed.Block.StateRoot = expectedPostStateRoot(t, parent, signed)

	_, err := state.ExecuteStateTransition(context.Background(), parent, signed, bls.NoVerify{}, false)
	require.NoError(t, err)
	require.Equal(t, parentSlotBefore, parent.Slot)
}
