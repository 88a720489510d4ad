package mutators

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// SlashValidator exits, marks slashed, settles the slashings vector, and
// splits the whistleblower reward between the current proposer and
// whistleblowerIndex (identical to the proposer when nil).
//
//	def slash_validator(state, slashed_index, whistleblower_index=None):
//	    epoch = get_current_epoch(state)
//	    initiate_validator_exit(state, slashed_index)
//	    validator = state.validators[slashed_index]
//	    validator.slashed = True
//	    validator.withdrawable_epoch = max(validator.withdrawable_epoch, epoch + EPOCHS_PER_SLASHINGS_VECTOR)
//	    state.slashings[epoch % EPOCHS_PER_SLASHINGS_VECTOR] += validator.effective_balance
//	    decrease_balance(state, slashed_index, validator.effective_balance // MIN_SLASHING_PENALTY_QUOTIENT)
//	    proposer_index = get_beacon_proposer_index(state)
//	    whistleblower_index = proposer_index if whistleblower_index is None else whistleblower_index
//	    whistleblower_reward = validator.effective_balance // WHISTLEBLOWER_REWARD_QUOTIENT
//	    proposer_reward = whistleblower_reward // PROPOSER_REWARD_QUOTIENT
//	    increase_balance(state, proposer_index, proposer_reward)
//	    increase_balance(state, whistleblower_index, whistleblower_reward - proposer_reward)
func SlashValidator(state *types.BeaconState, slashedIndex primitives.ValidatorIndex, whistleblowerIndex *primitives.ValidatorIndex) error {
	cfg := params.BeaconConfig()
	epoch := helpers.CurrentEpoch(state)

	InitiateValidatorExit(state, slashedIndex)

	validator := state.Validators[slashedIndex]
	validator.Slashed = true
	withdrawable := epoch + primitives.Epoch(cfg.EpochsPerSlashingsVector)
	if validator.WithdrawableEpoch > withdrawable {
		withdrawable = validator.WithdrawableEpoch
	}
	validator.WithdrawableEpoch = withdrawable

	slashingsIndex := uint64(epoch) % cfg.EpochsPerSlashingsVector
	state.Slashings[slashingsIndex] += uint64(validator.EffectiveBalance)

	DecreaseBalance(state, slashedIndex, primitives.Gwei(uint64(validator.EffectiveBalance)/cfg.MinSlashingPenaltyQuotient))

	proposerIndex, err := helpers.BeaconProposerIndex(state)
	if err != nil {
		return err
	}
	whistleblower := proposerIndex
	if whistleblowerIndex != nil {
		whistleblower = *whistleblowerIndex
	}
	whistleblowerReward := primitives.Gwei(uint64(validator.EffectiveBalance) / cfg.WhistleblowerRewardQuotient)
	proposerReward := primitives.Gwei(uint64(whistleblowerReward) / cfg.ProposerRewardQuotient)
	IncreaseBalance(state, proposerIndex, proposerReward)
	IncreaseBalance(state, whistleblower, whistleblowerReward-proposerReward)
	return nil
}
