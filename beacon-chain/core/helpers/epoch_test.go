package helpers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

func TestCurrentPreviousNextEpoch(t *testing.T) {
	params.UseMinimalConfig()
	defer params.UseMainnetConfig()
	cfg := params.BeaconConfig()

	st := &types.BeaconState{Slot: primitives.Slot(2 * cfg.SlotsPerEpoch)}
	require.Equal(t, primitives.Epoch(2), helpers.CurrentEpoch(st))
	require.Equal(t, primitives.Epoch(1), helpers.PreviousEpoch(st))
	require.Equal(t, primitives.Epoch(3), helpers.NextEpoch(st))
}

func TestPreviousEpochClampsAtGenesis(t *testing.T) {
	st := &types.BeaconState{Slot: 0}
	require.Equal(t, primitives.GenesisEpoch, helpers.PreviousEpoch(st))
}

func TestStartSlotAndSlotToEpoch(t *testing.T) {
	params.UseMinimalConfig()
	defer params.UseMainnetConfig()
	cfg := params.BeaconConfig()

	require.Equal(t, primitives.Slot(3*cfg.SlotsPerEpoch), helpers.StartSlot(3))
	require.Equal(t, primitives.Epoch(3), helpers.SlotToEpoch(primitives.Slot(3*cfg.SlotsPerEpoch)))
	require.Equal(t, primitives.Epoch(3), helpers.SlotToEpoch(primitives.Slot(3*cfg.SlotsPerEpoch+cfg.SlotsPerEpoch-1)))
}

func TestIsEpochStart(t *testing.T) {
	params.UseMinimalConfig()
	defer params.UseMainnetConfig()
	cfg := params.BeaconConfig()

	require.True(t, helpers.IsEpochStart(0))
	require.True(t, helpers.IsEpochStart(primitives.Slot(cfg.SlotsPerEpoch)))
	require.False(t, helpers.IsEpochStart(1))
}

func TestActivationExitEpoch(t *testing.T) {
	cfg := params.BeaconConfig()
	got := helpers.ActivationExitEpoch(5)
	require.Equal(t, primitives.Epoch(5+1+primitives.Epoch(cfg.ActivationExitDelay)), got)
}
