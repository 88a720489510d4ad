package blocks_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/blocks"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/bls"
	coreerrors "github.com/prysmaticlabs/prysm-core/beacon-chain/core/errors"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

func TestProcessProposerSlashings_OK(t *testing.T) {
	st := newTestGenesis(t, 4)
	slashing := &types.ProposerSlashing{
		ProposerIndex: 0,
		Header1:       &types.BeaconBlockHeader{Slot: 1, StateRoot: primitivesRootWith(0x01)},
		Header2:       &types.BeaconBlockHeader{Slot: 1, StateRoot: primitivesRootWith(0x02)},
	}
	body := &types.BeaconBlockBody{ProposerSlashings: []*types.ProposerSlashing{slashing}}
	err := blocks.ProcessProposerSlashings(st, body, bls.NoVerify{}, false)
	require.NoError(t, err)
	require.True(t, st.Validators[0].Slashed)
}

func TestProcessProposerSlashings_DifferentSlotsRejected(t *testing.T) {
	st := newTestGenesis(t, 4)
	slashing := &types.ProposerSlashing{
		ProposerIndex: 0,
		Header1:       &types.BeaconBlockHeader{Slot: 1},
		Header2:       &types.BeaconBlockHeader{Slot: 2},
	}
	body := &types.BeaconBlockBody{ProposerSlashings: []*types.ProposerSlashing{slashing}}
	err := blocks.ProcessProposerSlashings(st, body, bls.NoVerify{}, false)
	require.Error(t, err)
	coreErr, ok := err.(*coreerrors.Error)
	require.True(t, ok)
	require.Equal(t, coreerrors.ProposerSlashingInvalidSlot, coreErr.Kind)
}

func TestProcessProposerSlashings_IdenticalHeadersRejected(t *testing.T) {
	st := newTestGenesis(t, 4)
	header := &types.BeaconBlockHeader{Slot: 1, StateRoot: primitivesRootWith(0x01)}
	slashing := &types.ProposerSlashing{
		ProposerIndex: 0,
		Header1:       header,
		Header2:       header,
	}
	body := &types.BeaconBlockBody{ProposerSlashings: []*types.ProposerSlashing{slashing}}
	err := blocks.ProcessProposerSlashings(st, body, bls.NoVerify{}, false)
	require.Error(t, err)
	coreErr, ok := err.(*coreerrors.Error)
	require.True(t, ok)
	require.Equal(t, coreerrors.ProposerSlashingSameHeader, coreErr.Kind)
}

// Two headers with identical slot/parent_root/state_root/body_root but a
// different Signature are the same signing root, not an equivocation.
func TestProcessProposerSlashings_SameContentDifferentSignatureRejected(t *testing.T) {
	st := newTestGenesis(t, 4)
	header1 := &types.BeaconBlockHeader{Slot: 1, StateRoot: primitivesRootWith(0x01)}
	header2 := &types.BeaconBlockHeader{Slot: 1, StateRoot: primitivesRootWith(0x01)}
	header2.Signature[0] = 0xFF
	slashing := &types.ProposerSlashing{
		ProposerIndex: 0,
		Header1:       header1,
		Header2:       header2,
	}
	body := &types.BeaconBlockBody{ProposerSlashings: []*types.ProposerSlashing{slashing}}
	err := blocks.ProcessProposerSlashings(st, body, bls.NoVerify{}, false)
	require.Error(t, err)
	coreErr, ok := err.(*coreerrors.Error)
	require.True(t, ok)
	require.Equal(t, coreerrors.ProposerSlashingSameHeader, coreErr.Kind)
	require.False(t, st.Validators[0].Slashed)
}

func TestProcessProposerSlashings_AlreadySlashedRejected(t *testing.T) {
	st := newTestGenesis(t, 4)
	st.Validators[0].Slashed = true
	slashing := &types.ProposerSlashing{
		ProposerIndex: 0,
		Header1:       &types.BeaconBlockHeader{Slot: 1, StateRoot: primitivesRootWith(0x01)},
		Header2:       &types.BeaconBlockHeader{Slot: 1, StateRoot: primitivesRootWith(0x02)},
	}
	body := &types.BeaconBlockBody{ProposerSlashings: []*types.ProposerSlashing{slashing}}
	err := blocks.ProcessProposerSlashings(st, body, bls.NoVerify{}, false)
	require.Error(t, err)
	coreErr, ok := err.(*coreerrors.Error)
	require.True(t, ok)
	require.Equal(t, coreerrors.ProposerSlashingAlreadySlashed, coreErr.Kind)
}
