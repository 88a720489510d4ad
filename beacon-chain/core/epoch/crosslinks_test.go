package epoch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

func attestationFor(shard primitives.Shard, dataRoot byte) *types.PendingAttestation {
	return &types.PendingAttestation{
		Data: &types.AttestationData{
			Source: &types.Checkpoint{},
			Target: &types.Checkpoint{},
			Crosslink: &types.Crosslink{
				Shard:    shard,
				DataRoot: primitives.Root{dataRoot},
			},
		},
	}
}

func TestCrosslinkCandidatesGroupsByDistinctCrosslink(t *testing.T) {
	st := &types.BeaconState{
		CurrentEpochAttestations: []*types.PendingAttestation{
			attestationFor(3, 0xAA),
			attestationFor(3, 0xAA),
			attestationFor(3, 0xBB),
			attestationFor(7, 0xAA),
		},
		Slot: 0,
	}

	candidates := crosslinkCandidates(st, 0, 3)
	require.Len(t, candidates, 2)
	total := 0
	for _, c := range candidates {
		total += len(c.attestations)
	}
	require.Equal(t, 3, total)
}

func TestCrosslinkCandidatesIgnoresOtherShards(t *testing.T) {
	st := &types.BeaconState{
		CurrentEpochAttestations: []*types.PendingAttestation{
			attestationFor(7, 0xAA),
		},
	}
	require.Empty(t, crosslinkCandidates(st, 0, 3))
}

func TestWinningCrosslinkReturnsEmptyWhenNoCandidates(t *testing.T) {
	st := &types.BeaconState{}
	winner, balance, err := winningCrosslink(st, 0, 3)
	require.NoError(t, err)
	require.Equal(t, types.EmptyCrosslink(), winner)
	require.Equal(t, primitives.Gwei(0), balance)
}
