// Package epoch implements the per-epoch processor: justification and
// finalization, crosslink settlement, rewards and penalties, registry
// updates, slashings settlement, and the final bookkeeping rollups.
package epoch

import (
	"sort"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// MatchingSourceAttestations returns the pending-attestation list recorded
// for epoch: current_epoch_attestations if epoch is the current epoch,
// previous_epoch_attestations if it is the previous one.
func MatchingSourceAttestations(state *types.BeaconState, epoch primitives.Epoch) []*types.PendingAttestation {
	if epoch == helpers.CurrentEpoch(state) {
		return state.CurrentEpochAttestations
	}
	return state.PreviousEpochAttestations
}

// MatchingTargetAttestations narrows MatchingSourceAttestations(epoch) to
// those whose target root matches the canonical block root at epoch.
func MatchingTargetAttestations(state *types.BeaconState, epoch primitives.Epoch) ([]*types.PendingAttestation, error) {
	root, err := helpers.BlockRoot(state, epoch)
	if err != nil {
		return nil, err
	}
	source := MatchingSourceAttestations(state, epoch)
	out := make([]*types.PendingAttestation, 0, len(source))
	for _, a := range source {
		if a.Data.Target.Root == root {
			out = append(out, a)
		}
	}
	return out, nil
}

// MatchingHeadAttestations further narrows matchingAttestations (callers
// pass MatchingTargetAttestations' result) to those whose beacon_block_root
// agrees with the canonical root at the attestation's own slot.
func MatchingHeadAttestations(state *types.BeaconState, matching []*types.PendingAttestation) ([]*types.PendingAttestation, error) {
	out := make([]*types.PendingAttestation, 0, len(matching))
	for _, a := range matching {
		root, err := helpers.BlockRootAtSlot(state, a.Data.Slot)
		if err != nil {
			return nil, err
		}
		if a.Data.BeaconBlockRoot == root {
			out = append(out, a)
		}
	}
	return out, nil
}

// UnslashedAttestingIndices returns the sorted, deduplicated union of every
// attesting validator index across attestations, excluding slashed
// validators.
func UnslashedAttestingIndices(state *types.BeaconState, attestations []*types.PendingAttestation) ([]primitives.ValidatorIndex, error) {
	seen := make(map[primitives.ValidatorIndex]bool)
	out := make([]primitives.ValidatorIndex, 0)
	for _, a := range attestations {
		indices, err := helpers.AttestingIndices(state, a.Data, a.AggregationBits)
		if err != nil {
			return nil, err
		}
		for _, raw := range indices {
			idx := primitives.ValidatorIndex(raw)
			if seen[idx] || state.Validators[idx].Slashed {
				continue
			}
			seen[idx] = true
			out = append(out, idx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// AttestingBalance returns the total effective balance attesting across
// attestations, unslashed and deduplicated.
func AttestingBalance(state *types.BeaconState, attestations []*types.PendingAttestation) (primitives.Gwei, error) {
	indices, err := UnslashedAttestingIndices(state, attestations)
	if err != nil {
		return 0, err
	}
	return helpers.TotalBalance(state, indices), nil
}
