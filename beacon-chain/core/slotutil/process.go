// Package slotutil implements the per-slot transition: the part of the
// state transition function that runs for every slot regardless of whether
// a block arrives, plus the epoch-boundary dispatch into package epoch.
package slotutil

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"

	coreerrors "github.com/prysmaticlabs/prysm-core/beacon-chain/core/errors"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/epoch"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

var log = logrus.WithField("prefix", "core/slotutil")

// ProcessSlot caches the pre-transition state root and block root, run
// unconditionally at the start of every slot before it advances.
//
//	def process_slot(state: BeaconState) -> None:
//	    previous_state_root = hash_tree_root(state)
//	    state.state_roots[state.slot % SLOTS_PER_HISTORICAL_ROOT] = previous_state_root
//	    if state.latest_block_header.state_root == ZERO_HASH:
//	        state.latest_block_header.state_root = previous_state_root
//	    previous_block_root = signing_root(state.latest_block_header)
//	    state.block_roots[state.slot % SLOTS_PER_HISTORICAL_ROOT] = previous_block_root
func ProcessSlot(ctx context.Context, state *types.BeaconState) error {
	_, span := trace.StartSpan(ctx, "core.slotutil.ProcessSlot")
	defer span.End()

	prevStateRoot, err := state.HashTreeRoot()
	if err != nil {
		return errors.Wrap(err, "could not tree hash state")
	}
	n := params.BeaconConfig().SlotsPerHistoricalRoot
	state.StateRoots[uint64(state.Slot)%n] = prevStateRoot

	var zero primitives.Root
	if state.LatestBlockHeader.StateRoot == zero {
		state.LatestBlockHeader.StateRoot = prevStateRoot
	}
	prevBlockRoot, err := state.LatestBlockHeader.SigningRoot()
	if err != nil {
		return errors.Wrap(err, "could not sign root latest block header")
	}
	state.BlockRoots[uint64(state.Slot)%n] = prevBlockRoot
	return nil
}

// ProcessSlots advances state from its current slot to targetSlot, running
// ProcessSlot for every slot from the current one up to, but not including,
// targetSlot, and epoch.ProcessEpoch whenever the advance crosses an epoch
// boundary.
// targetSlot == state.Slot is a no-op, not an error.
//
//	def process_slots(state: BeaconState, slot: Slot) -> None:
//	    assert state.slot <= slot
//	    while state.slot < slot:
//	        process_slot(state)
//	        if (state.slot + 1) % SLOTS_PER_EPOCH == 0:
//	            process_epoch(state)
//	        state.slot += 1
func ProcessSlots(ctx context.Context, state *types.BeaconState, targetSlot primitives.Slot) error {
	_, span := trace.StartSpan(ctx, "core.slotutil.ProcessSlots")
	defer span.End()

	if state.Slot > targetSlot {
		return coreerrors.New(coreerrors.SlotOutOfRange, "target slot precedes state slot")
	}
	for state.Slot < targetSlot {
		if err := ProcessSlot(ctx, state); err != nil {
			return errors.Wrap(err, "could not process slot")
		}
		if (uint64(state.Slot)+1)%params.BeaconConfig().SlotsPerEpoch == 0 {
			if err := epoch.ProcessEpoch(state); err != nil {
				return errors.Wrap(err, "could not process epoch")
			}
			log.WithField("epoch", uint64(state.Slot+1)/params.BeaconConfig().SlotsPerEpoch).Debug("processed epoch transition")
		}
		state.Slot++
	}
	return nil
}
