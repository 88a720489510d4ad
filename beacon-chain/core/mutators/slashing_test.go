package mutators_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	bitfield "github.com/prysmaticlabs/go-bitfield"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/bls"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/mutators"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/state"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

func genesisStateForSlashing(t *testing.T, numValidators int) *types.BeaconState {
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
	st, err := state.GenesisBeaconState(deposits, 0, &types.Eth1Data{DepositCount: uint64(numValidators)}, bls.NoVerify{})
	require.NoError(t, err)
	st.JustificationBits = bitfield.NewBitvector4()
	return st
}

func TestSlashValidatorMarksSlashedAndPenalizesBalance(t *testing.T) {
	defer params.UseMainnetConfig()
	st := genesisStateForSlashing(t, 8)
	cfg := params.BeaconConfig()

	original := st.Balances[2]
	err := mutators.SlashValidator(st, 2, nil)
	require.NoError(t, err)

	require.True(t, st.Validators[2].Slashed)
	require.NotEqual(t, cfg.FarFutureEpoch, st.Validators[2].ExitEpoch)
	require.Equal(t, original-cfg.MaxEffectiveBalance/cfg.MinSlashingPenaltyQuotient, st.Balances[2])
}

func TestSlashValidatorRecordsSlashingsVectorEntry(t *testing.T) {
	defer params.UseMainnetConfig()
	st := genesisStateForSlashing(t, 8)
	cfg := params.BeaconConfig()

	err := mutators.SlashValidator(st, 1, nil)
	require.NoError(t, err)
	require.Equal(t, cfg.MaxEffectiveBalance, st.Slashings[0])
}

func TestSlashValidatorRewardsExplicitWhistleblower(t *testing.T) {
	defer params.UseMainnetConfig()
	st := genesisStateForSlashing(t, 8)
	cfg := params.BeaconConfig()

	proposerIndex, err := helpers.BeaconProposerIndex(st)
	require.NoError(t, err)
	// Pick a whistleblower distinct from the proposer so the two reward
	// splits land on different balances.
	whistle := primitives.ValidatorIndex(0)
	if whistle == proposerIndex {
		whistle = 1
	}
	balBefore := st.Balances[whistle]

	err = mutators.SlashValidator(st, 3, &whistle)
	require.NoError(t, err)

	whistleblowerReward := cfg.MaxEffectiveBalance / cfg.WhistleblowerRewardQuotient
	proposerReward := whistleblowerReward / cfg.ProposerRewardQuotient
	require.Equal(t, balBefore+(whistleblowerReward-proposerReward), st.Balances[whistle])
}
