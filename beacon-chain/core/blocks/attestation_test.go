package blocks_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/blocks"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/bls"
	coreerrors "github.com/prysmaticlabs/prysm-core/beacon-chain/core/errors"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

func TestProcessAttestations_InvalidShardRejected(t *testing.T) {
	st := newTestGenesis(t, 4)
	cfg := params.BeaconConfig()
	att := &types.Attestation{
		Data: &types.AttestationData{
			Crosslink: &types.Crosslink{Shard: primitives.Shard(cfg.ShardCount)},
			Source:    &types.Checkpoint{},
			Target:    &types.Checkpoint{},
		},
	}
	body := &types.BeaconBlockBody{Attestations: []*types.Attestation{att}}
	err := blocks.ProcessAttestations(st, body, bls.NoVerify{}, false)
	require.Error(t, err)
	coreErr, ok := err.(*coreerrors.Error)
	require.True(t, ok)
	require.Equal(t, coreerrors.AttestationInvalidShard, coreErr.Kind)
}

func TestProcessAttestations_WrongTargetEpochRejected(t *testing.T) {
	st := newTestGenesis(t, 4)
	att := &types.Attestation{
		Data: &types.AttestationData{
			Crosslink: &types.Crosslink{Shard: 0},
			Source:    &types.Checkpoint{},
			Target:    &types.Checkpoint{Epoch: 100},
		},
	}
	body := &types.BeaconBlockBody{Attestations: []*types.Attestation{att}}
	err := blocks.ProcessAttestations(st, body, bls.NoVerify{}, false)
	require.Error(t, err)
	coreErr, ok := err.(*coreerrors.Error)
	require.True(t, ok)
	require.Equal(t, coreerrors.AttestationIncorrectJustifiedEpochOrBlockRoot, coreErr.Kind)
}
