package state

import (
	"context"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/blocks"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/bls"
	coreerrors "github.com/prysmaticlabs/prysm-core/beacon-chain/core/errors"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/slotutil"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// ExecuteStateTransition advances parent to signed.Block.Slot and applies
// signed.Block on top of it, returning a brand new BeaconState. parent is
// never mutated: a failed block application must leave no observable trace,
// so every call works against Copy() and only the caller sees the result on
// success.
//
// The block header's state root is a placeholder (ZERO_HASH) until every
// other part of the transition has run; ExecuteStateTransition then
// tree-hashes the post-block state, checks that root against
// signed.Block.StateRoot, and only after the check passes fills it into the
// latest block header before handing the state back.
func ExecuteStateTransition(ctx context.Context, parent *types.BeaconState, signed *types.SignedBeaconBlock, verifier bls.Verifier, verifySignatures bool) (*types.BeaconState, error) {
	ctx, span := trace.StartSpan(ctx, "core.state.ExecuteStateTransition")
	defer span.End()

	st := parent.Copy()

	if err := slotutil.ProcessSlots(ctx, st, signed.Block.Slot); err != nil {
		return nil, errors.Wrap(err, "could not process slots")
	}

	if err := blocks.ProcessBlock(st, signed, verifier, verifySignatures); err != nil {
		return nil, errors.Wrap(err, "could not process block")
	}

	stateRoot, err := st.HashTreeRoot()
	if err != nil {
		return nil, errors.Wrap(err, "could not tree hash state")
	}
	if signed.Block.StateRoot != primitives.Root(stateRoot) {
		return nil, coreerrors.New(coreerrors.BlockStateRootInvalid, "block state root does not match computed state root")
	}
	st.LatestBlockHeader.StateRoot = primitives.Root(stateRoot)

	return st, nil
}

// ProcessSlots advances state in place to slot, running the per-slot
// transition for every slot before it. It is
// exported here so a caller driving slots without an accompanying block
// (e.g. skipped-slot handling) does not need to reach into package
// slotutil directly.
func ProcessSlots(ctx context.Context, state *types.BeaconState, slot primitives.Slot) error {
	return slotutil.ProcessSlots(ctx, state, slot)
}

// ProcessBlock re-exports the per-block transition so package state is the
// single entry point callers need alongside ExecuteStateTransition and
// ProcessSlots.
func ProcessBlock(state *types.BeaconState, signed *types.SignedBeaconBlock, verifier bls.Verifier, verifySignatures bool) error {
	return blocks.ProcessBlock(state, signed, verifier, verifySignatures)
}
