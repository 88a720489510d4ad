package helpers

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/ssz"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// ShardDelta exports shardDelta for callers outside the package (the
// final-updates start_shard roll).
func ShardDelta(state *types.BeaconState, epoch primitives.Epoch) uint64 {
	return shardDelta(state, epoch)
}

// CompactCommitteesRoot computes compact_committees_root(state, epoch): the
// root of a Vector[CompactCommittee, SHARD_COUNT], one CompactCommittee per
// shard, each summarizing that shard's crosslink committee for epoch.
func CompactCommitteesRoot(state *types.BeaconState, epoch primitives.Epoch) ([32]byte, error) {
	cfg := params.BeaconConfig()
	chunks := make([][32]byte, cfg.ShardCount)
	for shard := uint64(0); shard < cfg.ShardCount; shard++ {
		committee, err := CrosslinkCommittee(state, epoch, primitives.Shard(shard))
		if err != nil {
			return [32]byte{}, err
		}
		cc := &types.CompactCommittee{
			Pubkeys:           make([]primitives.Pubkey, len(committee)),
			CompactValidators: make([]uint64, len(committee)),
		}
		for i, idx := range committee {
			v := state.Validators[idx]
			cc.Pubkeys[i] = v.Pubkey
			cc.CompactValidators[i] = types.CompactValidatorEntry(idx, v.Slashed, v.EffectiveBalance)
		}
		root, err := cc.HashTreeRoot()
		if err != nil {
			return [32]byte{}, err
		}
		chunks[shard] = root
	}
	return ssz.MerkleizeChunks(chunks, 0), nil
}
