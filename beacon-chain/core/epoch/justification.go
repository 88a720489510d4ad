package epoch

import (
	bitfield "github.com/prysmaticlabs/go-bitfield"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

func bitAt(bits bitfield.Bitvector4, i uint) bool {
	return (bits[0]>>i)&1 == 1
}

func setBit(bits bitfield.Bitvector4, i uint) {
	bits[0] |= 1 << i
}

func allBitsSet(bits bitfield.Bitvector4, start, end int) bool {
	for i := start; i < end; i++ {
		if !bitAt(bits, uint(i)) {
			return false
		}
	}
	return true
}

// ProcessJustificationAndFinalization advances the justification bitfield
// and checkpoints, then applies the four finalization rules against the
// checkpoints as they stood before this epoch's updates.
func ProcessJustificationAndFinalization(state *types.BeaconState) error {
	cfg := params.BeaconConfig()
	currentEpoch := helpers.CurrentEpoch(state)
	if currentEpoch <= cfg.GenesisEpoch+1 {
		return nil
	}
	previousEpoch := helpers.PreviousEpoch(state)
	totalActive := helpers.TotalActiveBalance(state, currentEpoch)

	oldPreviousJustified := state.PreviousJustifiedCheckpoint.Copy()
	oldCurrentJustified := state.CurrentJustifiedCheckpoint.Copy()

	state.PreviousJustifiedCheckpoint = state.CurrentJustifiedCheckpoint.Copy()
	bits := state.JustificationBits
	bits[0] = (bits[0] << 1) & 0x0F

	previousTarget, err := MatchingTargetAttestations(state, previousEpoch)
	if err != nil {
		return err
	}
	previousBalance, err := AttestingBalance(state, previousTarget)
	if err != nil {
		return err
	}
	if uint64(previousBalance)*3 >= uint64(totalActive)*2 {
		root, err := helpers.BlockRoot(state, previousEpoch)
		if err != nil {
			return err
		}
		state.CurrentJustifiedCheckpoint = &types.Checkpoint{Epoch: previousEpoch, Root: root}
		setBit(bits, 1)
	}

	currentTarget, err := MatchingTargetAttestations(state, currentEpoch)
	if err != nil {
		return err
	}
	currentBalance, err := AttestingBalance(state, currentTarget)
	if err != nil {
		return err
	}
	if uint64(currentBalance)*3 >= uint64(totalActive)*2 {
		root, err := helpers.BlockRoot(state, currentEpoch)
		if err != nil {
			return err
		}
		state.CurrentJustifiedCheckpoint = &types.Checkpoint{Epoch: currentEpoch, Root: root}
		setBit(bits, 0)
	}
	state.JustificationBits = bits

	if allBitsSet(bits, 1, 4) && oldPreviousJustified.Epoch+3 == currentEpoch {
		state.FinalizedCheckpoint = oldPreviousJustified
	}
	if allBitsSet(bits, 1, 3) && oldPreviousJustified.Epoch+2 == currentEpoch {
		state.FinalizedCheckpoint = oldPreviousJustified
	}
	if allBitsSet(bits, 0, 3) && oldCurrentJustified.Epoch+2 == currentEpoch {
		state.FinalizedCheckpoint = oldCurrentJustified
	}
	if allBitsSet(bits, 0, 2) && oldCurrentJustified.Epoch+1 == currentEpoch {
		state.FinalizedCheckpoint = oldCurrentJustified
	}
	return nil
}
