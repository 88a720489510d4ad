package helpers

import (
	"github.com/pkg/errors"

	coreerrors "github.com/prysmaticlabs/prysm-core/beacon-chain/core/errors"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
	"github.com/prysmaticlabs/prysm-core/shared/mathutil"
)

// ComputeWeakSubjectivityPeriod returns the number of epochs a checkpoint
// taken from state stays safe to sync from, accounting for validator-set
// churn (bounded by the churn limit per epoch) and balance top-ups (bounded
// by MAX_DEPOSITS * SLOTS_PER_EPOCH per epoch).
//
//	ws_period = MIN_VALIDATOR_WITHDRAWABILITY_DELAY
//	N = len(get_active_validator_indices(state, get_current_epoch(state)))
//	t = get_total_active_balance(state) // N // ETH_TO_GWEI
//	T = MAX_EFFECTIVE_BALANCE // ETH_TO_GWEI
//	delta = get_validator_churn_limit(state)
//	Delta = MAX_DEPOSITS * SLOTS_PER_EPOCH
//	D = SAFETY_DECAY
//
//	if T * (200 + 3 * D) < t * (200 + 12 * D):
//	    ws_period += max(
//	        N * (t*(200+12*D) - T*(200+3*D)) // (600*delta*(2*t+T)),
//	        N * (200 + 3*D) // (600*Delta))
//	else:
//	    ws_period += 3*N*D*t // (200*Delta*(T-t))
func ComputeWeakSubjectivityPeriod(state *types.BeaconState) (primitives.Epoch, error) {
	cfg := params.BeaconConfig()
	currentEpoch := CurrentEpoch(state)

	n := ActiveValidatorCount(state, currentEpoch)
	if n == 0 {
		return 0, coreerrors.New(coreerrors.NoActiveValidators, "no active validators to compute weak subjectivity period")
	}

	t := uint64(TotalActiveBalance(state, currentEpoch)) / n / cfg.GweiPerEth
	bigT := cfg.MaxEffectiveBalance / cfg.GweiPerEth
	delta := ValidatorChurnLimit(state, currentEpoch)
	bigDelta := cfg.MaxDeposits * cfg.SlotsPerEpoch
	d := cfg.SafetyDecay

	wsp := cfg.MinValidatorWithdrawabilityDelay
	if bigT*(200+3*d) < t*(200+12*d) {
		epochsForChurn := n * (t*(200+12*d) - bigT*(200+3*d)) / (600 * delta * (2*t + bigT))
		epochsForTopUps := n * (200 + 3*d) / (600 * bigDelta)
		wsp += mathutil.Max(epochsForChurn, epochsForTopUps)
	} else {
		wsp += 3 * n * d * t / (200 * bigDelta * (bigT - t))
	}
	return primitives.Epoch(wsp), nil
}

// IsWithinWeakSubjectivityPeriod reports whether candidate, a state a node
// is importing at current chain time, remains a valid starting point given
// a trusted weak-subjectivity checkpoint. Once candidate has finalized at or
// past the checkpoint's epoch, the checkpoint's root must match candidate's
// own history at that epoch. A candidate whose finalized checkpoint is older
// than the trusted checkpoint is accepted without a root check, unless it
// lags by more than the weak subjectivity period, in which case it is
// rejected.
func IsWithinWeakSubjectivityPeriod(candidate *types.BeaconState, checkpoint *types.Checkpoint, checkpointRootAtEpoch func(primitives.Epoch) (primitives.Root, error)) error {
	if checkpoint == nil {
		return coreerrors.New(coreerrors.InvalidCheckpoint, "nil weak subjectivity checkpoint")
	}
	finalized := candidate.FinalizedCheckpoint
	if finalized.Epoch < checkpoint.Epoch {
		wsPeriod, err := ComputeWeakSubjectivityPeriod(candidate)
		if err != nil {
			return errors.Wrap(err, "could not compute weak subjectivity period")
		}
		if checkpoint.Epoch-finalized.Epoch > wsPeriod {
			return coreerrors.New(coreerrors.WeakSubjectivityMismatch, "candidate state has fallen behind the weak subjectivity checkpoint")
		}
		return nil
	}
	root, err := checkpointRootAtEpoch(checkpoint.Epoch)
	if err != nil {
		return errors.Wrap(err, "could not resolve candidate root at checkpoint epoch")
	}
	if root != checkpoint.Root {
		return coreerrors.New(coreerrors.WeakSubjectivityMismatch, "candidate state diverges from the weak subjectivity checkpoint")
	}
	return nil
}
