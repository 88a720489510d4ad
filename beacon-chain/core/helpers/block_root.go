package helpers

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// BlockRootAtSlot returns the cached block root for slot, which must lie in
// the half-open window [state.slot - SLOTS_PER_HISTORICAL_ROOT, state.slot).
//
//	def get_block_root_at_slot(state, slot):
//	    assert slot < state.slot <= slot + SLOTS_PER_HISTORICAL_ROOT
//	    return state.block_roots[slot % SLOTS_PER_HISTORICAL_ROOT]
func BlockRootAtSlot(state *types.BeaconState, slot primitives.Slot) (primitives.Root, error) {
	n := params.BeaconConfig().SlotsPerHistoricalRoot
	if slot >= state.Slot || uint64(state.Slot) > uint64(slot)+n {
		return primitives.Root{}, ErrSlotOutOfBounds
	}
	return state.BlockRoots[uint64(slot)%n], nil
}

// BlockRoot returns the block root at the first slot of epoch.
func BlockRoot(state *types.BeaconState, epoch primitives.Epoch) (primitives.Root, error) {
	return BlockRootAtSlot(state, StartSlot(epoch))
}
