package blocks_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/blocks"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/bls"
	coreerrors "github.com/prysmaticlabs/prysm-core/beacon-chain/core/errors"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

func doubleVoteAttestations() (*types.IndexedAttestation, *types.IndexedAttestation) {
	att1 := &types.IndexedAttestation{
		CustodyBit0Indices: []uint64{0, 1},
		Data: &types.AttestationData{
			Source: &types.Checkpoint{Epoch: 0},
			Target: &types.Checkpoint{Epoch: 1, Root: primitivesRootWith(0x01)},
		},
	}
	att2 := &types.IndexedAttestation{
		CustodyBit0Indices: []uint64{0, 1},
		Data: &types.AttestationData{
			Source: &types.Checkpoint{Epoch: 0},
			Target: &types.Checkpoint{Epoch: 1, Root: primitivesRootWith(0x02)},
		},
	}
	return att1, att2
}

func TestProcessAttesterSlashings_DoubleVoteSlashesIntersection(t *testing.T) {
	st := newTestGenesis(t, 4)
	att1, att2 := doubleVoteAttestations()
	body := &types.BeaconBlockBody{AttesterSlashings: []*types.AttesterSlashing{{
		Attestation1: att1,
		Attestation2: att2,
	}}}
	err := blocks.ProcessAttesterSlashings(st, body, bls.NoVerify{}, false)
	require.NoError(t, err)
	require.True(t, st.Validators[0].Slashed)
	require.True(t, st.Validators[1].Slashed)
	require.False(t, st.Validators[2].Slashed)
}

func TestProcessAttesterSlashings_NotMutuallySlashableRejected(t *testing.T) {
	st := newTestGenesis(t, 4)
	att1 := &types.IndexedAttestation{
		CustodyBit0Indices: []uint64{0},
		Data: &types.AttestationData{
			Source: &types.Checkpoint{Epoch: 0},
			Target: &types.Checkpoint{Epoch: 1},
		},
	}
	att2 := &types.IndexedAttestation{
		CustodyBit0Indices: []uint64{0},
		Data: &types.AttestationData{
			Source: &types.Checkpoint{Epoch: 1},
			Target: &types.Checkpoint{Epoch: 2},
		},
	}
	body := &types.BeaconBlockBody{AttesterSlashings: []*types.AttesterSlashing{{
		Attestation1: att1,
		Attestation2: att2,
	}}}
	err := blocks.ProcessAttesterSlashings(st, body, bls.NoVerify{}, false)
	require.Error(t, err)
	coreErr, ok := err.(*coreerrors.Error)
	require.True(t, ok)
	require.Equal(t, coreerrors.AttesterSlashingNotSlashable, coreErr.Kind)
}

func TestProcessAttesterSlashings_NoSlashableIndexRejected(t *testing.T) {
	st := newTestGenesis(t, 4)
	att1, att2 := doubleVoteAttestations()
	st.Validators[0].Slashed = true
	st.Validators[1].Slashed = true
	body := &types.BeaconBlockBody{AttesterSlashings: []*types.AttesterSlashing{{
		Attestation1: att1,
		Attestation2: att2,
	}}}
	err := blocks.ProcessAttesterSlashings(st, body, bls.NoVerify{}, false)
	require.Error(t, err)
	coreErr, ok := err.(*coreerrors.Error)
	require.True(t, ok)
	require.Equal(t, coreerrors.AttesterSlashingNotSlashable, coreErr.Kind)
}

func TestVerifyIndexedAttestation_EmptyIndicesRejected(t *testing.T) {
	st := newTestGenesis(t, 4)
	att := &types.IndexedAttestation{
		Data: &types.AttestationData{
			Source: &types.Checkpoint{},
			Target: &types.Checkpoint{},
		},
	}
	err := blocks.VerifyIndexedAttestation(st, att, bls.NoVerify{}, false)
	require.Error(t, err)
	coreErr, ok := err.(*coreerrors.Error)
	require.True(t, ok)
	require.Equal(t, coreerrors.AttesterSlashingEmptyIndices, coreErr.Kind)
}
