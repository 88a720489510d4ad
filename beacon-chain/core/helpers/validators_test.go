package helpers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
)

func TestActiveValidatorIndicesAndCount(t *testing.T) {
	params.UseMinimalConfig()
	defer params.UseMainnetConfig()

	st := genesisWithActiveValidators(t, 10)
	indices := helpers.ActiveValidatorIndices(st, 0)
	require.Len(t, indices, 10)
	require.Equal(t, uint64(10), helpers.ActiveValidatorCount(st, 0))

	for i, idx := range indices {
		if i > 0 {
			require.Less(t, indices[i-1], idx)
		}
	}
}

func TestTotalActiveBalanceFlooredAtIncrement(t *testing.T) {
	params.UseMinimalConfig()
	defer params.UseMainnetConfig()

	cfg := params.BeaconConfig()
	st := genesisWithActiveValidators(t, 0)
	require.Equal(t, cfg.EffectiveBalanceIncrement, uint64(helpers.TotalActiveBalance(st, 0)))
}

func TestTotalActiveBalanceSumsEffectiveBalances(t *testing.T) {
	params.UseMinimalConfig()
	defer params.UseMainnetConfig()

	cfg := params.BeaconConfig()
	st := genesisWithActiveValidators(t, 4)
	want := cfg.MaxEffectiveBalance * 4
	require.Equal(t, want, uint64(helpers.TotalActiveBalance(st, 0)))
}

func TestValidatorChurnLimitFloorsAtMinimum(t *testing.T) {
	params.UseMinimalConfig()
	defer params.UseMainnetConfig()

	cfg := params.BeaconConfig()
	st := genesisWithActiveValidators(t, 8)
	require.Equal(t, cfg.MinPerEpochChurnLimit, helpers.ValidatorChurnLimit(st, 0))
}
