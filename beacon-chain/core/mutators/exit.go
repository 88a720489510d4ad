package mutators

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// InitiateValidatorExit schedules index's exit at the earliest queue slot
// the churn limit allows, a no-op if the validator already has an exit
// epoch set.
//
//	def initiate_validator_exit(state, index):
//	    validator = state.validators[index]
//	    if validator.exit_epoch != FAR_FUTURE_EPOCH:
//	        return
//	    exit_epochs = [v.exit_epoch for v in state.validators if v.exit_epoch != FAR_FUTURE_EPOCH]
//	    exit_queue_epoch = max(exit_epochs + [compute_activation_exit_epoch(get_current_epoch(state))])
//	    exit_queue_churn = len([e for e in exit_epochs if e == exit_queue_epoch])
//	    if exit_queue_churn >= get_validator_churn_limit(state):
//	        exit_queue_epoch += 1
//	    validator.exit_epoch = exit_queue_epoch
//	    validator.withdrawable_epoch = validator.exit_epoch + MIN_VALIDATOR_WITHDRAWABILITY_DELAY
func InitiateValidatorExit(state *types.BeaconState, index primitives.ValidatorIndex) {
	validator := state.Validators[index]
	cfg := params.BeaconConfig()
	if validator.ExitEpoch != cfg.FarFutureEpoch {
		return
	}

	currentEpoch := helpers.CurrentEpoch(state)
	exitQueueEpoch := helpers.ActivationExitEpoch(currentEpoch)
	churn := uint64(0)
	for _, v := range state.Validators {
		if v.ExitEpoch == cfg.FarFutureEpoch {
			continue
		}
		if v.ExitEpoch > exitQueueEpoch {
			exitQueueEpoch = v.ExitEpoch
		}
	}
	for _, v := range state.Validators {
		if v.ExitEpoch == exitQueueEpoch {
			churn++
		}
	}
	if churn >= helpers.ValidatorChurnLimit(state, currentEpoch) {
		exitQueueEpoch++
	}

	validator.ExitEpoch = exitQueueEpoch
	validator.WithdrawableEpoch = exitQueueEpoch + primitives.Epoch(cfg.MinValidatorWithdrawabilityDelay)
}
