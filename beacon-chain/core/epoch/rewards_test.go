package epoch

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
	"github.com/prysmaticlabs/prysm-core/shared/mathutil"
)

func TestBaseRewardFormula(t *testing.T) {
	defer params.UseMainnetConfig()
	params.UseMinimalConfig()
	cfg := params.BeaconConfig()

	st := &types.BeaconState{
		Validators: []*types.Validator{
			{EffectiveBalance: primitives.Gwei(cfg.MaxEffectiveBalance)},
		},
	}
	total := primitives.Gwei(cfg.MaxEffectiveBalance * 4)

	got := baseReward(st, 0, total)
	want := primitives.Gwei(cfg.MaxEffectiveBalance * cfg.BaseRewardFactor / mathutil.IntegerSquareRoot(uint64(total)) / cfg.BaseRewardsPerEpoch)
	require.Equal(t, want, got)
}

func TestEligibleValidatorIndicesIncludesActiveAndRecentlySlashed(t *testing.T) {
	defer params.UseMainnetConfig()
	params.UseMinimalConfig()
	cfg := params.BeaconConfig()

	active := &types.Validator{ActivationEpoch: 0, ExitEpoch: cfg.FarFutureEpoch}
	recentlySlashed := &types.Validator{Slashed: true, WithdrawableEpoch: 10, ExitEpoch: 0}
	longGoneSlashed := &types.Validator{Slashed: true, WithdrawableEpoch: 1, ExitEpoch: 0}
	inactive := &types.Validator{ActivationEpoch: cfg.FarFutureEpoch, ExitEpoch: cfg.FarFutureEpoch}

	st := &types.BeaconState{Validators: []*types.Validator{active, recentlySlashed, longGoneSlashed, inactive}}

	got := eligibleValidatorIndices(st, 5)
	require.Contains(t, got, primitives.ValidatorIndex(0))
	require.Contains(t, got, primitives.ValidatorIndex(1))
	require.NotContains(t, got, primitives.ValidatorIndex(2))
	require.NotContains(t, got, primitives.ValidatorIndex(3))
}

func TestProcessRewardsAndPenaltiesNoOpAtGenesis(t *testing.T) {
	defer params.UseMainnetConfig()
	params.UseMinimalConfig()
	cfg := params.BeaconConfig()

	st := &types.BeaconState{
		Slot:       0,
		Validators: []*types.Validator{{EffectiveBalance: primitives.Gwei(cfg.MaxEffectiveBalance)}},
		Balances:   []uint64{cfg.MaxEffectiveBalance},
	}
	err := ProcessRewardsAndPenalties(st)
	require.NoError(t, err)
	require.Equal(t, cfg.MaxEffectiveBalance, st.Balances[0])
}
