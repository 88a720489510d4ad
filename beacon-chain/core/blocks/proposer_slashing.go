package blocks

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/bls"
	coreerrors "github.com/prysmaticlabs/prysm-core/beacon-chain/core/errors"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/mutators"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// ProcessProposerSlashings verifies and applies every proposer slashing in
// body, in order.
func ProcessProposerSlashings(state *types.BeaconState, body *types.BeaconBlockBody, verifier bls.Verifier, verifySignatures bool) error {
	for _, slashing := range body.ProposerSlashings {
		if err := verifyProposerSlashing(state, slashing, verifier, verifySignatures); err != nil {
			return err
		}
		if err := mutators.SlashValidator(state, slashing.ProposerIndex, nil); err != nil {
			return err
		}
	}
	return nil
}

// verifyProposerSlashing checks the spec section 4.6 proposer slashing
// conditions: both headers name the same proposer and slot, differ from one
// another, the proposer is still slashable, and (when requested) both
// signatures verify under DOMAIN_BEACON_PROPOSER.
//
//	def process_proposer_slashing(state, proposer_slashing):
//	    proposer = state.validators[proposer_slashing.proposer_index]
//	    assert proposer_slashing.header_1.slot == proposer_slashing.header_2.slot
//	    assert proposer_slashing.header_1 != proposer_slashing.header_2
//	    assert is_slashable_validator(proposer, get_current_epoch(state))
//	    for header in (proposer_slashing.header_1, proposer_slashing.header_2):
//	        domain = get_domain(state, DOMAIN_BEACON_PROPOSER, compute_epoch_of_slot(header.slot))
//	        assert bls_verify(proposer.pubkey, signing_root(header), header.signature, domain)
//	    slash_validator(state, proposer_slashing.proposer_index)
func verifyProposerSlashing(state *types.BeaconState, slashing *types.ProposerSlashing, verifier bls.Verifier, verifySignatures bool) error {
	if uint64(slashing.ProposerIndex) >= uint64(len(state.Validators)) {
		return coreerrors.New(coreerrors.ProposerSlashingInvalidProposerIndex, "proposer index out of range")
	}
	h1, h2 := slashing.Header1, slashing.Header2
	if h1.Slot != h2.Slot {
		return coreerrors.New(coreerrors.ProposerSlashingInvalidSlot, "headers reference different slots")
	}
	// Compare signing roots, not HashTreeRoot: the latter includes Signature,
	// so re-signing the same header content would otherwise look "different".
	r1, err := h1.SigningRoot()
	if err != nil {
		return err
	}
	r2, err := h2.SigningRoot()
	if err != nil {
		return err
	}
	if r1 == r2 {
		return coreerrors.New(coreerrors.ProposerSlashingSameHeader, "headers are identical")
	}

	proposer := state.Validators[slashing.ProposerIndex]
	if !proposer.IsSlashable(helpers.CurrentEpoch(state)) {
		return coreerrors.New(coreerrors.ProposerSlashingAlreadySlashed, "proposer is not slashable")
	}

	if verifySignatures {
		for _, h := range [2]*types.BeaconBlockHeader{h1, h2} {
			domain := helpers.Domain(state, params.BeaconConfig().DomainBeaconProposer, helpers.SlotToEpoch(h.Slot))
			signingRoot, err := h.SigningRoot()
			if err != nil {
				return err
			}
			if !verifier.Verify(proposer.Pubkey, signingRoot, h.Signature, domain) {
				return coreerrors.New(coreerrors.ProposerSlashingInvalidSignature, "invalid header signature")
			}
		}
	}
	return nil
}
