package helpers

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
	"github.com/prysmaticlabs/prysm-core/shared/bytesutil"
	"github.com/prysmaticlabs/prysm-core/shared/hashutil"
)

const maxRandomByte = 1<<8 - 1

// BeaconProposerIndex returns the validator selected to propose at the
// state's current slot, sampled with probability proportional to effective
// balance from the current epoch's first committee of that slot.
//
//	i = 0
//	while True:
//	    candidate = first_committee[(epoch + i) % len(first_committee)]
//	    random_byte = hash(seed + int_to_bytes8(i // 32))[i % 32]
//	    if effective_balance * MAX_RANDOM_BYTE >= MAX_EFFECTIVE_BALANCE * random_byte:
//	        return candidate
//	    i += 1
func BeaconProposerIndex(state *types.BeaconState) (primitives.ValidatorIndex, error) {
	cfg := params.BeaconConfig()
	epoch := CurrentEpoch(state)

	committeesPerSlot := CommitteeCount(state, epoch) / cfg.SlotsPerEpoch
	offset := committeesPerSlot * (uint64(state.Slot) % cfg.SlotsPerEpoch)
	start, err := StartShard(state, epoch)
	if err != nil {
		return 0, err
	}
	shard := primitives.Shard((uint64(start) + offset) % cfg.ShardCount)

	firstCommittee, err := CrosslinkCommittee(state, epoch, shard)
	if err != nil {
		return 0, err
	}
	if len(firstCommittee) == 0 {
		return 0, ErrNoCommittee
	}

	seed := Seed(state, epoch)
	for i := uint64(0); ; i++ {
		candidate := firstCommittee[(uint64(epoch)+i)%uint64(len(firstCommittee))]
		buf := append(append([]byte{}, seed[:]...), bytesutil.Bytes8(i/32)...)
		randomByte := hashutil.Hash(buf)[i%32]

		effective := uint64(state.Validators[candidate].EffectiveBalance)
		if effective*maxRandomByte >= cfg.MaxEffectiveBalance*uint64(randomByte) {
			return candidate, nil
		}
	}
}
