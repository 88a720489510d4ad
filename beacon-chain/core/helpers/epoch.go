package helpers

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// CurrentEpoch returns the epoch containing state.Slot.
//
//	current_epoch(state) = state.slot / SLOTS_PER_EPOCH
func CurrentEpoch(state *types.BeaconState) primitives.Epoch {
	return primitives.Epoch(uint64(state.Slot) / params.BeaconConfig().SlotsPerEpoch)
}

// PreviousEpoch returns the epoch immediately before CurrentEpoch, clamped
// to genesis: previous_epoch = max(genesis_epoch, current_epoch - 1).
func PreviousEpoch(state *types.BeaconState) primitives.Epoch {
	current := CurrentEpoch(state)
	if current == primitives.GenesisEpoch {
		return primitives.GenesisEpoch
	}
	return current - 1
}

// NextEpoch returns the epoch immediately after CurrentEpoch.
func NextEpoch(state *types.BeaconState) primitives.Epoch {
	return CurrentEpoch(state) + 1
}

// StartSlot returns the first slot of epoch.
func StartSlot(epoch primitives.Epoch) primitives.Slot {
	return primitives.Slot(uint64(epoch) * params.BeaconConfig().SlotsPerEpoch)
}

// SlotToEpoch returns the epoch containing slot.
func SlotToEpoch(slot primitives.Slot) primitives.Epoch {
	return primitives.Epoch(uint64(slot) / params.BeaconConfig().SlotsPerEpoch)
}

// IsEpochStart reports whether slot is the first slot of its epoch.
func IsEpochStart(slot primitives.Slot) bool {
	return uint64(slot)%params.BeaconConfig().SlotsPerEpoch == 0
}

// ActivationExitEpoch returns the epoch at which a validator activated or
// exited during epoch will become active/withdrawable, i.e. epoch + 1 plus
// the activation-exit delay.
func ActivationExitEpoch(epoch primitives.Epoch) primitives.Epoch {
	return epoch + 1 + primitives.Epoch(params.BeaconConfig().ActivationExitDelay)
}
