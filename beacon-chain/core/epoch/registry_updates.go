package epoch

import (
	"sort"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/mutators"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// ProcessRegistryUpdates advances validators through the activation
// eligibility queue, ejects under-balance validators, then activates as many
// eligible queued validators as the churn limit allows this epoch, earliest
// eligibility epoch first and ties broken by ascending validator index.
func ProcessRegistryUpdates(state *types.BeaconState) error {
	cfg := params.BeaconConfig()
	currentEpoch := helpers.CurrentEpoch(state)

	for i, v := range state.Validators {
		if v.IsEligibleForActivationQueue() {
			v.ActivationEligibilityEpoch = currentEpoch
		}
		if v.IsActive(currentEpoch) && v.EffectiveBalance <= primitives.Gwei(cfg.EjectionBalance) {
			mutators.InitiateValidatorExit(state, primitives.ValidatorIndex(i))
		}
	}

	var activationQueue []primitives.ValidatorIndex
	for i, v := range state.Validators {
		eligible := v.ActivationEligibilityEpoch != cfg.FarFutureEpoch
		canBeActive := v.ActivationEpoch >= helpers.ActivationExitEpoch(state.FinalizedCheckpoint.Epoch)
		if eligible && canBeActive {
			activationQueue = append(activationQueue, primitives.ValidatorIndex(i))
		}
	}
	sort.Slice(activationQueue, func(i, j int) bool {
		a, b := activationQueue[i], activationQueue[j]
		if state.Validators[a].ActivationEligibilityEpoch != state.Validators[b].ActivationEligibilityEpoch {
			return state.Validators[a].ActivationEligibilityEpoch < state.Validators[b].ActivationEligibilityEpoch
		}
		return a < b
	})

	churnLimit := helpers.ValidatorChurnLimit(state, currentEpoch)
	if uint64(len(activationQueue)) < churnLimit {
		churnLimit = uint64(len(activationQueue))
	}
	for _, idx := range activationQueue[:churnLimit] {
		v := state.Validators[idx]
		if v.ActivationEpoch == cfg.FarFutureEpoch {
			v.ActivationEpoch = helpers.ActivationExitEpoch(currentEpoch)
		}
	}
	return nil
}
