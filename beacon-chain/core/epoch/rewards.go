package epoch

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/mutators"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
	"github.com/prysmaticlabs/prysm-core/shared/mathutil"
)

// baseReward is a validator's reward unit for a single correct vote. The
// integer square root of totalBalance is recomputed on every call.
//
//	base_reward = effective_balance * BASE_REWARD_FACTOR // integer_squareroot(total_balance) // BASE_REWARDS_PER_EPOCH
func baseReward(state *types.BeaconState, index primitives.ValidatorIndex, totalBalance primitives.Gwei) primitives.Gwei {
	cfg := params.BeaconConfig()
	effective := uint64(state.Validators[index].EffectiveBalance)
	return primitives.Gwei(effective * cfg.BaseRewardFactor / mathutil.IntegerSquareRoot(uint64(totalBalance)) / cfg.BaseRewardsPerEpoch)
}

// eligibleValidatorIndices returns every validator index eligible for
// reward/penalty accounting this epoch: active at previousEpoch, or slashed
// with previousEpoch + 1 still before its withdrawable epoch.
func eligibleValidatorIndices(state *types.BeaconState, previousEpoch primitives.Epoch) []primitives.ValidatorIndex {
	out := make([]primitives.ValidatorIndex, 0, len(state.Validators))
	for i, v := range state.Validators {
		if v.IsActive(previousEpoch) || (v.Slashed && previousEpoch+1 < v.WithdrawableEpoch) {
			out = append(out, primitives.ValidatorIndex(i))
		}
	}
	return out
}

// attestationDelta computes the rewards and penalties earned for matching
// FFG source/target/head during the previous epoch, the earliest-inclusion
// proposer and attester micro-rewards, and the inactivity leak penalty
// applied once finality has lagged more than MIN_EPOCHS_TO_INACTIVITY_PENALTY
// epochs.
func attestationDelta(state *types.BeaconState) ([]primitives.Gwei, []primitives.Gwei, error) {
	cfg := params.BeaconConfig()
	previousEpoch := helpers.PreviousEpoch(state)
	totalBalance := helpers.TotalActiveBalance(state, previousEpoch)

	n := len(state.Validators)
	rewards := make([]primitives.Gwei, n)
	penalties := make([]primitives.Gwei, n)
	eligible := eligibleValidatorIndices(state, previousEpoch)

	sourceAtts := MatchingSourceAttestations(state, previousEpoch)
	targetAtts, err := MatchingTargetAttestations(state, previousEpoch)
	if err != nil {
		return nil, nil, err
	}
	headAtts, err := MatchingHeadAttestations(state, targetAtts)
	if err != nil {
		return nil, nil, err
	}

	for _, atts := range [][]*types.PendingAttestation{sourceAtts, targetAtts, headAtts} {
		indices, err := UnslashedAttestingIndices(state, atts)
		if err != nil {
			return nil, nil, err
		}
		attested := make(map[primitives.ValidatorIndex]bool, len(indices))
		for _, idx := range indices {
			attested[idx] = true
		}
		attestingBalance := helpers.TotalBalance(state, indices)
		for _, idx := range eligible {
			base := baseReward(state, idx, totalBalance)
			if attested[idx] {
				rewards[idx] += primitives.Gwei(uint64(base) * uint64(attestingBalance) / uint64(totalBalance))
			} else {
				penalties[idx] += base
			}
		}
	}

	// Proposer and inclusion-delay micro-rewards: each validator that voted
	// for source earns its base reward scaled by how quickly its attestation
	// was included, and the proposer who included it first earns a cut too.
	earliest := make(map[primitives.ValidatorIndex]*types.PendingAttestation)
	for _, att := range sourceAtts {
		indices, err := helpers.AttestingIndices(state, att.Data, att.AggregationBits)
		if err != nil {
			return nil, nil, err
		}
		for _, raw := range indices {
			idx := primitives.ValidatorIndex(raw)
			if state.Validators[idx].Slashed {
				continue
			}
			if cur, ok := earliest[idx]; !ok || att.InclusionDelay < cur.InclusionDelay {
				earliest[idx] = att
			}
		}
	}
	for idx, att := range earliest {
		base := baseReward(state, idx, totalBalance)
		proposerReward := primitives.Gwei(uint64(base) / cfg.ProposerRewardQuotient)
		rewards[att.ProposerIndex] += proposerReward
		maxAttesterReward := base - proposerReward
		attesterFactor := cfg.SlotsPerEpoch + cfg.MinAttestationInclusionDelay - uint64(att.InclusionDelay)
		rewards[idx] += primitives.Gwei(uint64(maxAttesterReward) * attesterFactor / cfg.SlotsPerEpoch)
	}

	// Inactivity leak: once finality has stalled, validators that failed to
	// vote for target pay an additional penalty that grows with the delay.
	finalityDelay := uint64(previousEpoch) - uint64(state.FinalizedCheckpoint.Epoch)
	if finalityDelay > cfg.MinEpochsToInactivityPenalty {
		targetIndices, err := UnslashedAttestingIndices(state, targetAtts)
		if err != nil {
			return nil, nil, err
		}
		attestedTarget := make(map[primitives.ValidatorIndex]bool, len(targetIndices))
		for _, idx := range targetIndices {
			attestedTarget[idx] = true
		}
		for _, idx := range eligible {
			base := baseReward(state, idx, totalBalance)
			penalties[idx] += primitives.Gwei(cfg.BaseRewardsPerEpoch) * base
			if !attestedTarget[idx] {
				effective := uint64(state.Validators[idx].EffectiveBalance)
				penalties[idx] += primitives.Gwei(effective * finalityDelay / cfg.InactivityPenaltyQuotient)
			}
		}
	}
	return rewards, penalties, nil
}

// crosslinkDelta computes the rewards and penalties earned for voting for
// the winning crosslink of each shard active during the previous epoch.
func crosslinkDelta(state *types.BeaconState) ([]primitives.Gwei, []primitives.Gwei, error) {
	cfg := params.BeaconConfig()
	epoch := helpers.PreviousEpoch(state)
	rewards := make([]primitives.Gwei, len(state.Validators))
	penalties := make([]primitives.Gwei, len(state.Validators))

	start, err := helpers.StartShard(state, epoch)
	if err != nil {
		return nil, nil, err
	}
	totalBalance := helpers.TotalActiveBalance(state, epoch)
	count := helpers.CommitteeCount(state, epoch)
	for offset := uint64(0); offset < count; offset++ {
		shard := primitives.Shard((uint64(start) + offset) % cfg.ShardCount)
		committee, err := helpers.CrosslinkCommittee(state, epoch, shard)
		if err != nil {
			return nil, nil, err
		}
		_, winnerBalance, err := winningCrosslink(state, epoch, shard)
		if err != nil {
			return nil, nil, err
		}
		committeeBalance := helpers.TotalBalance(state, committee)

		attestingIndices, err := winningCrosslinkAttesters(state, epoch, shard)
		if err != nil {
			return nil, nil, err
		}
		attested := make(map[primitives.ValidatorIndex]bool, len(attestingIndices))
		for _, idx := range attestingIndices {
			attested[idx] = true
		}
		for _, idx := range committee {
			base := baseReward(state, idx, totalBalance)
			if attested[idx] {
				rewards[idx] += primitives.Gwei(uint64(base) * uint64(winnerBalance) / uint64(committeeBalance))
			} else {
				penalties[idx] += base
			}
		}
	}
	return rewards, penalties, nil
}

// ProcessRewardsAndPenalties applies the source/target/head attestation
// deltas and the crosslink deltas to every validator's balance. A no-op
// during genesis epoch, since there is no previous epoch to reward.
func ProcessRewardsAndPenalties(state *types.BeaconState) error {
	if helpers.CurrentEpoch(state) == params.BeaconConfig().GenesisEpoch {
		return nil
	}
	attRewards, attPenalties, err := attestationDelta(state)
	if err != nil {
		return err
	}
	clRewards, clPenalties, err := crosslinkDelta(state)
	if err != nil {
		return err
	}
	for i := range state.Validators {
		idx := primitives.ValidatorIndex(i)
		mutators.IncreaseBalance(state, idx, attRewards[i]+clRewards[i])
		mutators.DecreaseBalance(state, idx, attPenalties[i]+clPenalties[i])
	}
	return nil
}
