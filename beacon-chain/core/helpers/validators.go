package helpers

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// ActiveValidatorIndices returns the indices of validators active at epoch,
// in ascending order.
//
//	active_validator_indices(state, epoch) = [i for i, v in enumerate(state.validators)
//	                                           if v.activation_epoch <= epoch < v.exit_epoch]
func ActiveValidatorIndices(state *types.BeaconState, epoch primitives.Epoch) []primitives.ValidatorIndex {
	indices := make([]primitives.ValidatorIndex, 0, len(state.Validators))
	for i, v := range state.Validators {
		if v.IsActive(epoch) {
			indices = append(indices, primitives.ValidatorIndex(i))
		}
	}
	return indices
}

// ActiveValidatorCount returns len(ActiveValidatorIndices(state, epoch))
// without allocating the index slice.
func ActiveValidatorCount(state *types.BeaconState, epoch primitives.Epoch) uint64 {
	var count uint64
	for _, v := range state.Validators {
		if v.IsActive(epoch) {
			count++
		}
	}
	return count
}

// TotalActiveBalance sums the effective balance of every validator active at
// epoch, floored at EffectiveBalanceIncrement so downstream divisions never
// see zero.
func TotalActiveBalance(state *types.BeaconState, epoch primitives.Epoch) primitives.Gwei {
	var total uint64
	for _, v := range state.Validators {
		if v.IsActive(epoch) {
			total += uint64(v.EffectiveBalance)
		}
	}
	if total < params.BeaconConfig().EffectiveBalanceIncrement {
		total = params.BeaconConfig().EffectiveBalanceIncrement
	}
	return primitives.Gwei(total)
}

// TotalBalance sums the effective balance of the validators named by
// indices, floored the same way as TotalActiveBalance.
func TotalBalance(state *types.BeaconState, indices []primitives.ValidatorIndex) primitives.Gwei {
	var total uint64
	for _, i := range indices {
		total += uint64(state.Validators[i].EffectiveBalance)
	}
	if total < params.BeaconConfig().EffectiveBalanceIncrement {
		total = params.BeaconConfig().EffectiveBalanceIncrement
	}
	return primitives.Gwei(total)
}

// ValidatorChurnLimit returns the number of validators that may enter or
// leave the active set during a single epoch.
//
//	validator_churn_limit = max(MIN_PER_EPOCH_CHURN_LIMIT, active_count / CHURN_LIMIT_QUOTIENT)
func ValidatorChurnLimit(state *types.BeaconState, epoch primitives.Epoch) uint64 {
	cfg := params.BeaconConfig()
	active := ActiveValidatorCount(state, epoch)
	limit := active / cfg.ChurnLimitQuotient
	if limit < cfg.MinPerEpochChurnLimit {
		limit = cfg.MinPerEpochChurnLimit
	}
	return limit
}
