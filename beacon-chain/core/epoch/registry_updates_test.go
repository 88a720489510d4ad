package epoch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/epoch"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

func registryFixture(t *testing.T, currentEpoch primitives.Epoch, numValidators int) *types.BeaconState {
	t.Helper()
	params.UseMinimalConfig()
	cfg := params.BeaconConfig()

	validators := make([]*types.Validator, numValidators)
	for i := range validators {
		validators[i] = &types.Validator{
			EffectiveBalance:           primitives.Gwei(cfg.MaxEffectiveBalance),
			ActivationEligibilityEpoch: cfg.FarFutureEpoch,
			ActivationEpoch:            cfg.FarFutureEpoch,
			ExitEpoch:                  cfg.FarFutureEpoch,
			WithdrawableEpoch:          cfg.FarFutureEpoch,
		}
	}
	return &types.BeaconState{
		Slot:                helpers.StartSlot(currentEpoch),
		Validators:          validators,
		FinalizedCheckpoint: &types.Checkpoint{Epoch: 0},
	}
}

func TestProcessRegistryUpdatesMarksEligibleForActivationQueue(t *testing.T) {
	defer params.UseMainnetConfig()
	currentEpoch := primitives.Epoch(1)
	st := registryFixture(t, currentEpoch, 1)

	err := epoch.ProcessRegistryUpdates(st)
	require.NoError(t, err)
	require.Equal(t, currentEpoch, st.Validators[0].ActivationEligibilityEpoch)
}

func TestProcessRegistryUpdatesActivatesQueuedValidator(t *testing.T) {
	defer params.UseMainnetConfig()
	currentEpoch := primitives.Epoch(1)
	st := registryFixture(t, currentEpoch, 1)
	st.Validators[0].ActivationEligibilityEpoch = 0

	err := epoch.ProcessRegistryUpdates(st)
	require.NoError(t, err)
	require.NotEqual(t, params.BeaconConfig().FarFutureEpoch, st.Validators[0].ActivationEpoch)
}

func TestProcessRegistryUpdatesActivatesEarliestEligibilityFirst(t *testing.T) {
	defer params.UseMainnetConfig()
	currentEpoch := primitives.Epoch(1)
	cfg := params.BeaconConfig()
	// One more eligible validator than the churn limit allows; the one with
	// the later eligibility epoch should stay queued.
	st := registryFixture(t, currentEpoch, int(cfg.MinPerEpochChurnLimit)+1)
	for i, v := range st.Validators {
		v.ActivationEligibilityEpoch = primitives.Epoch(i)
	}
	last := len(st.Validators) - 1

	err := epoch.ProcessRegistryUpdates(st)
	require.NoError(t, err)
	require.NotEqual(t, cfg.FarFutureEpoch, st.Validators[0].ActivationEpoch)
	require.Equal(t, cfg.FarFutureEpoch, st.Validators[last].ActivationEpoch)
}

func TestProcessRegistryUpdatesEjectsUnderBalanceActiveValidator(t *testing.T) {
	defer params.UseMainnetConfig()
	currentEpoch := primitives.Epoch(1)
	st := registryFixture(t, currentEpoch, 1)
	cfg := params.BeaconConfig()

	v := st.Validators[0]
	v.ActivationEpoch = 0
	v.EffectiveBalance = primitives.Gwei(cfg.EjectionBalance)

	err := epoch.ProcessRegistryUpdates(st)
	require.NoError(t, err)
	require.NotEqual(t, cfg.FarFutureEpoch, v.ExitEpoch)
}
