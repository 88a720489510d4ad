package state_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/bls"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/state"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

func TestGenesisBeaconState_ZeroDeposits(t *testing.T) {
	params.UseMinimalConfig()
	cfg := params.BeaconConfig()

	st, err := state.GenesisBeaconState(nil, 0, &types.Eth1Data{}, bls.NoVerify{})
	require.NoError(t, err)
	require.Equal(t, cfg.GenesisSlot, st.Slot)
	require.Equal(t, 0, len(st.Validators))
	require.Equal(t, primitives.Epoch(0), st.FinalizedCheckpoint.Epoch)
	var zero primitives.Root
	require.Equal(t, zero, st.FinalizedCheckpoint.Root)
	require.Equal(t, int(cfg.SlotsPerHistoricalRoot), len(st.BlockRoots))
	require.Equal(t, int(cfg.EpochsPerHistoricalVector), len(st.RandaoMixes))
	require.Equal(t, int(cfg.EpochsPerSlashingsVector), len(st.Slashings))
	require.Equal(t, int(cfg.ShardCount), len(st.PreviousCrosslinks))
}

func TestGenesisBeaconState_ActivatesFullDeposits(t *testing.T) {
	params.UseMinimalConfig()
	cfg := params.BeaconConfig()

	numValidators := 8
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
	st, err := state.GenesisBeaconState(deposits, 1234, &types.Eth1Data{DepositCount: uint64(numValidators)}, bls.NoVerify{})
	require.NoError(t, err)
	require.Equal(t, numValidators, len(st.Validators))
	require.Equal(t, uint64(numValidators), st.Eth1DepositIndex)
	require.Equal(t, uint64(1234), st.GenesisTime)
	for _, v := range st.Validators {
		require.Equal(t, cfg.GenesisEpoch, v.ActivationEpoch)
		require.Equal(t, cfg.GenesisEpoch, v.ActivationEligibilityEpoch)
	}
}

func TestGenesisBeaconState_PartialDepositNotActivated(t *testing.T) {
	params.UseMinimalConfig()
	cfg := params.BeaconConfig()

	var pubkey primitives.Pubkey
	pubkey[0] = 0x01
	deposits := []*types.Deposit{{
		Data: &types.DepositData{
			Pubkey: pubkey,
			Amount: primitives.Gwei(cfg.MinDepositAmount),
		},
	}}
	st, err := state.GenesisBeaconState(deposits, 0, &types.Eth1Data{DepositCount: 1}, bls.NoVerify{})
	require.NoError(t, err)
	require.Equal(t, 1, len(st.Validators))
	require.Equal(t, cfg.FarFutureEpoch, st.Validators[0].ActivationEpoch)
}
