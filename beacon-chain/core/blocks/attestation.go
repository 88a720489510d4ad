package blocks

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/bls"
	coreerrors "github.com/prysmaticlabs/prysm-core/beacon-chain/core/errors"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/ssz"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// ProcessAttestations verifies and records every attestation in body as a
// PendingAttestation against the current or previous epoch's accumulator.
func ProcessAttestations(state *types.BeaconState, body *types.BeaconBlockBody, verifier bls.Verifier, verifySignatures bool) error {
	for _, att := range body.Attestations {
		if err := processAttestation(state, att, verifier, verifySignatures); err != nil {
			return err
		}
	}
	return nil
}

// processAttestation implements spec section 4.6's process_attestation: the
// slot/inclusion-delay window check, the source checkpoint and crosslink
// parent-chaining checks against the epoch the attestation targets, then
// signature verification via the converted IndexedAttestation form.
//
//	def process_attestation(state, attestation):
//	    data = attestation.data
//	    assert data.crosslink.shard < SHARD_COUNT
//	    assert data.target.epoch in (get_previous_epoch(state), get_current_epoch(state))
//	    assert data.target.epoch == compute_epoch_of_slot(data.slot)
//	    assert data.slot + MIN_ATTESTATION_INCLUSION_DELAY <= state.slot <= data.slot + SLOTS_PER_EPOCH
//	    committee = get_crosslink_committee(state, data.target.epoch, data.crosslink.shard)
//	    assert len(attestation.aggregation_bits) == len(attestation.custody_bits) == len(committee)
//	    if data.target.epoch == get_current_epoch(state):
//	        ffg_data = (state.current_justified_checkpoint.epoch, state.current_justified_checkpoint.root, get_current_epoch(state))
//	        parent_crosslink = state.current_crosslinks[data.crosslink.shard]
//	    else:
//	        ffg_data = (state.previous_justified_checkpoint.epoch, state.previous_justified_checkpoint.root, get_previous_epoch(state))
//	        parent_crosslink = state.previous_crosslinks[data.crosslink.shard]
//	    assert (data.source.epoch, data.source.root, data.target.epoch) == ffg_data
//	    assert data.crosslink.start_epoch == parent_crosslink.end_epoch
//	    assert data.crosslink.end_epoch == min(data.target.epoch, parent_crosslink.end_epoch + MAX_EPOCHS_PER_CROSSLINK)
//	    assert data.crosslink.parent_root == hash_tree_root(parent_crosslink)
//	    assert data.crosslink.data_root == ZERO_HASH  # [to be removed in phase 1]
//	    assert is_valid_indexed_attestation(state, get_indexed_attestation(state, attestation))
//	    pending_attestation = PendingAttestation(
//	        data=data, aggregation_bits=attestation.aggregation_bits,
//	        inclusion_delay=state.slot - data.slot, proposer_index=get_beacon_proposer_index(state))
//	    if data.target.epoch == get_current_epoch(state):
//	        state.current_epoch_attestations.append(pending_attestation)
//	    else:
//	        state.previous_epoch_attestations.append(pending_attestation)
func processAttestation(state *types.BeaconState, att *types.Attestation, verifier bls.Verifier, verifySignatures bool) error {
	cfg := params.BeaconConfig()
	data := att.Data

	if uint64(data.Crosslink.Shard) >= cfg.ShardCount {
		return coreerrors.New(coreerrors.AttestationInvalidShard, "crosslink shard out of range")
	}
	currentEpoch := helpers.CurrentEpoch(state)
	previousEpoch := helpers.PreviousEpoch(state)
	if data.Target.Epoch != currentEpoch && data.Target.Epoch != previousEpoch {
		return coreerrors.New(coreerrors.AttestationIncorrectJustifiedEpochOrBlockRoot, "target epoch is neither current nor previous")
	}
	if data.Target.Epoch != helpers.SlotToEpoch(data.Slot) {
		return coreerrors.New(coreerrors.AttestationInvalidData, "target epoch does not match attestation slot")
	}
	minInclusion := primitives.Slot(uint64(data.Slot) + cfg.MinAttestationInclusionDelay)
	maxInclusion := primitives.Slot(uint64(data.Slot) + cfg.SlotsPerEpoch)
	if state.Slot < minInclusion {
		return coreerrors.New(coreerrors.AttestationSubmittedTooQuickly, "attestation submitted before its minimum inclusion delay")
	}
	if state.Slot > maxInclusion {
		return coreerrors.New(coreerrors.AttestationTooFarInHistory, "attestation older than one epoch")
	}

	committee, err := helpers.CrosslinkCommittee(state, data.Target.Epoch, data.Crosslink.Shard)
	if err != nil {
		return err
	}
	committeeLen, _, err := bitlistBodyLength(att.AggregationBits)
	if err != nil {
		return coreerrors.New(coreerrors.AttestationEmptyAggregation, "empty aggregation bitlist")
	}
	custodyLen, _, err := bitlistBodyLength(att.CustodyBits)
	if err != nil {
		return coreerrors.New(coreerrors.AttestationEmptyCustody, "empty custody bitlist")
	}
	if committeeLen != uint64(len(committee)) || custodyLen != uint64(len(committee)) {
		return coreerrors.New(coreerrors.AttestationBitFieldInvalid, "bitlist length does not match committee size")
	}

	var ffgSourceEpoch primitives.Epoch
	var ffgSourceRoot primitives.Root
	var parentCrosslink *types.Crosslink
	if data.Target.Epoch == currentEpoch {
		ffgSourceEpoch = state.CurrentJustifiedCheckpoint.Epoch
		ffgSourceRoot = state.CurrentJustifiedCheckpoint.Root
		parentCrosslink = state.CurrentCrosslinks[data.Crosslink.Shard]
	} else {
		ffgSourceEpoch = state.PreviousJustifiedCheckpoint.Epoch
		ffgSourceRoot = state.PreviousJustifiedCheckpoint.Root
		parentCrosslink = state.PreviousCrosslinks[data.Crosslink.Shard]
	}
	if data.Source.Epoch != ffgSourceEpoch || data.Source.Root != ffgSourceRoot {
		return coreerrors.New(coreerrors.AttestationIncorrectJustifiedEpochOrBlockRoot, "source checkpoint does not match expected justified checkpoint")
	}

	if data.Crosslink.StartEpoch != parentCrosslink.EndEpoch {
		return coreerrors.New(coreerrors.AttestationIncorrectCrosslinkData, "crosslink does not chain from its parent")
	}
	maxEnd := parentCrosslink.EndEpoch + primitives.Epoch(cfg.MaxEpochsPerCrosslink)
	wantEnd := data.Target.Epoch
	if maxEnd < wantEnd {
		wantEnd = maxEnd
	}
	if data.Crosslink.EndEpoch != wantEnd {
		return coreerrors.New(coreerrors.AttestationIncorrectCrosslinkData, "crosslink end epoch is incorrect")
	}
	parentRoot, err := parentCrosslink.HashTreeRoot()
	if err != nil {
		return err
	}
	if data.Crosslink.ParentRoot != primitives.Root(parentRoot) {
		return coreerrors.New(coreerrors.AttestationInvalidCrosslink, "crosslink parent root mismatch")
	}
	var zeroRoot primitives.Root
	if data.Crosslink.DataRoot != zeroRoot {
		return coreerrors.New(coreerrors.AttestationInvalidCrosslink, "crosslink data root must be zero before phase 1")
	}

	indexed, err := helpers.ConvertToIndexed(state, att)
	if err != nil {
		return err
	}
	if err := VerifyIndexedAttestation(state, indexed, verifier, verifySignatures); err != nil {
		return coreerrors.Wrap(coreerrors.AttestationInvalidSignature, err, "invalid indexed attestation")
	}

	proposerIndex, err := helpers.BeaconProposerIndex(state)
	if err != nil {
		return err
	}
	pending := &types.PendingAttestation{
		Data:            data,
		AggregationBits: att.AggregationBits,
		InclusionDelay:  state.Slot - data.Slot,
		ProposerIndex:   proposerIndex,
	}
	if data.Target.Epoch == currentEpoch {
		state.CurrentEpochAttestations = append(state.CurrentEpochAttestations, pending)
	} else {
		state.PreviousEpochAttestations = append(state.PreviousEpochAttestations, pending)
	}
	return nil
}

// bitlistBodyLength returns the logical bit length of an SSZ-encoded
// bitlist, surfacing the same sentinel-bit decoding ssz.BitlistLength uses.
func bitlistBodyLength(encoded []byte) (length uint64, lastByteBitLen uint64, err error) {
	return ssz.BitlistLength(encoded)
}
