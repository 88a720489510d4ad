package helpers

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
	"github.com/prysmaticlabs/prysm-core/shared/bytesutil"
	"github.com/prysmaticlabs/prysm-core/shared/hashutil"
)

// RandaoMixAtEpoch returns the randao mix recorded for epoch.
//
//	randao_mix(state, epoch) = state.randao_mixes[epoch % EPOCHS_PER_HISTORICAL_VECTOR]
func RandaoMixAtEpoch(state *types.BeaconState, epoch primitives.Epoch) primitives.Root {
	length := params.BeaconConfig().EpochsPerHistoricalVector
	return state.RandaoMixes[uint64(epoch)%length]
}

// ActiveIndexRootAtEpoch returns the active-index root recorded for epoch.
//
//	active_index_root(state, epoch) = state.active_index_roots[epoch % EPOCHS_PER_HISTORICAL_VECTOR]
func ActiveIndexRootAtEpoch(state *types.BeaconState, epoch primitives.Epoch) primitives.Root {
	length := params.BeaconConfig().EpochsPerHistoricalVector
	return state.ActiveIndexRoots[uint64(epoch)%length]
}

// Seed derives the shuffling/proposer seed for epoch.
//
//	seed(state, epoch) = hash(randao_mix(epoch + EPOCHS_PER_HISTORICAL_VECTOR - MIN_SEED_LOOKAHEAD - 1)
//	                        || active_index_root(epoch)
//	                        || int_to_bytes32(epoch))
func Seed(state *types.BeaconState, epoch primitives.Epoch) [32]byte {
	cfg := params.BeaconConfig()
	mixEpoch := uint64(epoch) + cfg.EpochsPerHistoricalVector - cfg.MinSeedLookahead - 1
	mix := RandaoMixAtEpoch(state, primitives.Epoch(mixEpoch))
	indexRoot := ActiveIndexRootAtEpoch(state, epoch)

	buf := make([]byte, 0, 96)
	buf = append(buf, mix[:]...)
	buf = append(buf, indexRoot[:]...)
	buf = append(buf, bytesutil.Bytes32(uint64(epoch))...)
	return hashutil.Hash(buf)
}
