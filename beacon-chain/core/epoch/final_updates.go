package epoch

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/ssz"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// ProcessFinalUpdates performs the bookkeeping rollups that close out an
// epoch: eth1 vote reset, effective-balance hysteresis, the start-shard
// roll, the pushed randao/active-index/compact-committees entries, the
// slashings-vector reset for the next epoch, the historical batch root, and
// the current/previous attestation rotation.
func ProcessFinalUpdates(state *types.BeaconState) error {
	cfg := params.BeaconConfig()
	currentEpoch := helpers.CurrentEpoch(state)
	nextEpoch := currentEpoch + 1

	if (uint64(state.Slot)+1)%cfg.SlotsPerEth1VotingPeriod == 0 {
		state.Eth1DataVotes = nil
	}

	hysteresisIncrement := cfg.EffectiveBalanceIncrement / cfg.HysteresisQuotient
	downwardThreshold := hysteresisIncrement * cfg.HysteresisDownwardMultiplier
	upwardThreshold := hysteresisIncrement * cfg.HysteresisUpwardMultiplier
	for i, v := range state.Validators {
		balance := primitives.Gwei(state.Balances[i])
		tooLow := uint64(balance)+downwardThreshold < uint64(v.EffectiveBalance)
		tooHigh := uint64(v.EffectiveBalance)+upwardThreshold < uint64(balance)
		if tooLow || tooHigh {
			capped := uint64(balance) - uint64(balance)%cfg.EffectiveBalanceIncrement
			if capped > cfg.MaxEffectiveBalance {
				capped = cfg.MaxEffectiveBalance
			}
			v.EffectiveBalance = primitives.Gwei(capped)
		}
	}

	delta := helpers.ShardDelta(state, currentEpoch)
	state.StartShard = primitives.Shard((uint64(state.StartShard) + delta) % cfg.ShardCount)

	indexRootPosition := (uint64(nextEpoch) + cfg.ActivationExitDelay) % cfg.EpochsPerHistoricalVector
	activeIndices := helpers.ActiveValidatorIndices(state, nextEpoch+primitives.Epoch(cfg.ActivationExitDelay))
	rawIndices := make([]uint64, len(activeIndices))
	for i, idx := range activeIndices {
		rawIndices[i] = uint64(idx)
	}
	state.ActiveIndexRoots[indexRootPosition] = ssz.Uint64ListRoot(rawIndices, cfg.ValidatorRegistryLimit)

	commRootPosition := (uint64(nextEpoch) + cfg.ActivationExitDelay) % cfg.EpochsPerHistoricalVector
	commRoot, err := helpers.CompactCommitteesRoot(state, nextEpoch)
	if err != nil {
		return err
	}
	state.CompactCommitteesRoots[commRootPosition] = commRoot

	slashingsLen := cfg.EpochsPerSlashingsVector
	state.Slashings[uint64(nextEpoch)%slashingsLen] = 0

	randaoLen := cfg.EpochsPerHistoricalVector
	state.RandaoMixes[uint64(nextEpoch)%randaoLen] = helpers.RandaoMixAtEpoch(state, currentEpoch)

	epochsPerHistoricalRoot := cfg.SlotsPerHistoricalRoot / cfg.SlotsPerEpoch
	if uint64(nextEpoch)%epochsPerHistoricalRoot == 0 {
		batch := &types.HistoricalBatch{
			BlockRoots: state.BlockRoots,
			StateRoots: state.StateRoots,
		}
		root, err := batch.HashTreeRoot()
		if err != nil {
			return err
		}
		state.HistoricalRoots = append(state.HistoricalRoots, root)
	}

	state.PreviousEpochAttestations = state.CurrentEpochAttestations
	state.CurrentEpochAttestations = nil
	return nil
}
