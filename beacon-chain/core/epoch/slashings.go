package epoch

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/mutators"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// ProcessSlashings settles the slashings balance vector against every
// validator reaching the midpoint of its slashed withdrawal period this
// epoch, applying a penalty proportional to the total balance slashed
// system-wide over the vector's window. The penalty is rounded down to a
// multiple of EFFECTIVE_BALANCE_INCREMENT; the resulting balance itself is
// not rounded.
//
//	penalty_numerator = effective_balance * min(sum(slashings) * 3, total_balance)
//	penalty = penalty_numerator // total_balance // EFFECTIVE_BALANCE_INCREMENT * EFFECTIVE_BALANCE_INCREMENT
func ProcessSlashings(state *types.BeaconState) error {
	cfg := params.BeaconConfig()
	currentEpoch := helpers.CurrentEpoch(state)
	totalBalance := helpers.TotalActiveBalance(state, currentEpoch)

	var totalSlashed uint64
	for _, s := range state.Slashings {
		totalSlashed += s
	}
	scaledSlashed := totalSlashed * 3
	if scaledSlashed > uint64(totalBalance) {
		scaledSlashed = uint64(totalBalance)
	}

	vectorLen := cfg.EpochsPerSlashingsVector
	for i, v := range state.Validators {
		withdrawableMidpoint := v.WithdrawableEpoch - primitives.Epoch(vectorLen/2)
		if !v.Slashed || currentEpoch != withdrawableMidpoint {
			continue
		}
		effective := uint64(v.EffectiveBalance)
		penaltyNumerator := effective * scaledSlashed
		penalty := penaltyNumerator / uint64(totalBalance) / cfg.EffectiveBalanceIncrement * cfg.EffectiveBalanceIncrement
		mutators.DecreaseBalance(state, primitives.ValidatorIndex(i), primitives.Gwei(penalty))
	}
	return nil
}
