// Package helpers implements the pure accessor functions defined over a
// BeaconState: epoch arithmetic, the active-validator set, shuffling and
// committee derivation, the beacon proposer, and signing-domain
// computation. None of these functions mutate their arguments.
package helpers

import coreerrors "github.com/prysmaticlabs/prysm-core/beacon-chain/core/errors"

// Sentinel errors returned by the accessors below, each an instance of the
// single tagged error type (spec section 7) so a caller several layers up
// the state-transition call chain can still recover the Kind via errors.As.
var (
	ErrIndexOutOfRange  = coreerrors.New(coreerrors.IndexOutOfRange, "helpers: index out of range")
	ErrCountTooLarge    = coreerrors.New(coreerrors.CountTooLarge, "helpers: shuffle count exceeds 2^40")
	ErrShardOutOfBounds = coreerrors.New(coreerrors.ShardOutOfBounds, "helpers: start_shard queried too far in the future")
	ErrNoCommittee      = coreerrors.New(coreerrors.NoCommittee, "helpers: committee index out of range for slot")
	ErrSlotOutOfBounds  = coreerrors.New(coreerrors.SlotOutOfRange, "helpers: slot outside the recorded block-root window")
)
