package helpers

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
	"github.com/prysmaticlabs/prysm-core/shared/mathutil"
	"github.com/prysmaticlabs/prysm-core/shared/sliceutil"
)

// CommitteeCount returns the number of crosslink committees active during
// epoch, always a multiple of SLOTS_PER_EPOCH.
//
//	committee_count(state, epoch) = max(1, min(SHARD_COUNT // SLOTS_PER_EPOCH,
//	                                            active_count // SLOTS_PER_EPOCH // TARGET_COMMITTEE_SIZE))
//	                                 * SLOTS_PER_EPOCH
func CommitteeCount(state *types.BeaconState, epoch primitives.Epoch) uint64 {
	cfg := params.BeaconConfig()
	active := ActiveValidatorCount(state, epoch)
	perSlotLimit := cfg.ShardCount / cfg.SlotsPerEpoch
	perSlotTarget := active / cfg.SlotsPerEpoch / cfg.TargetCommitteeSize
	count := mathutil.Min(perSlotLimit, perSlotTarget)
	if count < 1 {
		count = 1
	}
	return count * cfg.SlotsPerEpoch
}

// shardDelta returns how far start_shard rolls forward across epoch.
//
//	shard_delta = min(committee_count(state, epoch), SHARD_COUNT - SHARD_COUNT // SLOTS_PER_EPOCH)
func shardDelta(state *types.BeaconState, epoch primitives.Epoch) uint64 {
	cfg := params.BeaconConfig()
	limit := cfg.ShardCount - cfg.ShardCount/cfg.SlotsPerEpoch
	return mathutil.Min(CommitteeCount(state, epoch), limit)
}

// StartShard returns the shard that committee 0 of epoch begins at. It may
// only be queried for epoch <= CurrentEpoch(state) + 1; state.StartShard is
// defined to already be the answer for current_epoch + 1, so earlier epochs
// are found by rolling shardDelta backward one epoch at a time.
func StartShard(state *types.BeaconState, epoch primitives.Epoch) (primitives.Shard, error) {
	current := CurrentEpoch(state)
	if epoch > current+1 {
		return 0, ErrShardOutOfBounds
	}
	cfg := params.BeaconConfig()
	shard := uint64(state.StartShard)
	check := current + 1
	for check > epoch {
		check--
		shard = (shard + cfg.ShardCount - shardDelta(state, check)) % cfg.ShardCount
	}
	return primitives.Shard(shard), nil
}

// ComputeCommittee returns the contiguous shuffled slice of indices
// belonging to committee index out of count committees.
//
//	def compute_committee(indices, seed, index, count):
//	    start = len(indices) * index // count
//	    end = len(indices) * (index + 1) // count
//	    return [indices[get_shuffled_index(i, len(indices), seed)] for i in range(start, end)]
func ComputeCommittee(indices []primitives.ValidatorIndex, seed [32]byte, index, count uint64) ([]primitives.ValidatorIndex, error) {
	total := uint64(len(indices))
	start := sliceutil.SplitOffset(total, count, index)
	end := sliceutil.SplitOffset(total, count, index+1)

	committee := make([]primitives.ValidatorIndex, 0, end-start)
	for i := start; i < end; i++ {
		shuffled, err := ShuffledIndex(i, total, seed)
		if err != nil {
			return nil, err
		}
		committee = append(committee, indices[shuffled])
	}
	return committee, nil
}

// CrosslinkCommittee returns the committee assigned to shard during epoch.
//
//	crosslink_committee(state, epoch, shard) = compute_committee(
//	    active_validator_indices(state, epoch), seed(state, epoch),
//	    (shard - start_shard(state, epoch)) % SHARD_COUNT, committee_count(state, epoch))
func CrosslinkCommittee(state *types.BeaconState, epoch primitives.Epoch, shard primitives.Shard) ([]primitives.ValidatorIndex, error) {
	start, err := StartShard(state, epoch)
	if err != nil {
		return nil, err
	}
	cfg := params.BeaconConfig()
	index := (uint64(shard) + cfg.ShardCount - uint64(start)) % cfg.ShardCount

	active := ActiveValidatorIndices(state, epoch)
	seed := Seed(state, epoch)
	count := CommitteeCount(state, epoch)
	return ComputeCommittee(active, seed, index, count)
}
