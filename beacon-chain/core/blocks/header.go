// Package blocks implements the per-block processor: the header chaining
// check, RANDAO mixing, the eth1 vote tally, and the six bounded operation
// lists a block body carries.
package blocks

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/bls"
	coreerrors "github.com/prysmaticlabs/prysm-core/beacon-chain/core/errors"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// ProcessBlockHeader validates block against the state's chain-head
// expectations, then overwrites state.LatestBlockHeader with block's own
// header (state root zeroed, filled in later by the caller once the rest
// of the transition has run).
//
//	def process_block_header(state, block):
//	    assert block.slot == state.slot
//	    assert block.parent_root == signing_root(state.latest_block_header)
//	    state.latest_block_header = BeaconBlockHeader(
//	        slot=block.slot, parent_root=block.parent_root,
//	        body_root=hash_tree_root(block.body), state_root=ZERO_HASH)
//	    proposer = state.validators[get_beacon_proposer_index(state)]
//	    assert not proposer.slashed
//	    if verify_signatures:
//	        assert bls_verify(proposer.pubkey, signing_root(block), block.signature,
//	                           get_domain(state, DOMAIN_BEACON_PROPOSER))
func ProcessBlockHeader(state *types.BeaconState, signed *types.SignedBeaconBlock, verifier bls.Verifier, verifySignatures bool) error {
	block := signed.Block
	if block.Slot != state.Slot {
		return coreerrors.New(coreerrors.BlockSlotInvalid, "block slot does not match state slot")
	}

	parentRoot, err := state.LatestBlockHeader.SigningRoot()
	if err != nil {
		return coreerrors.Wrap(coreerrors.BlockPreviousRootInvalid, err, "could not compute latest header signing root")
	}
	if block.ParentRoot != primitives.Root(parentRoot) {
		return coreerrors.New(coreerrors.BlockPreviousRootInvalid, "block parent root does not match latest block header")
	}

	bodyRoot, err := block.Body.HashTreeRoot()
	if err != nil {
		return err
	}
	state.LatestBlockHeader = &types.BeaconBlockHeader{
		Slot:       block.Slot,
		ParentRoot: block.ParentRoot,
		BodyRoot:   primitives.Root(bodyRoot),
	}

	proposerIndex, err := helpers.BeaconProposerIndex(state)
	if err != nil {
		return err
	}
	proposer := state.Validators[proposerIndex]
	if proposer.Slashed {
		return coreerrors.New(coreerrors.BlockProposerSlashed, "proposer has been slashed")
	}

	if verifySignatures {
		signingRoot, err := block.SigningRoot()
		if err != nil {
			return err
		}
		domain := helpers.Domain(state, params.BeaconConfig().DomainBeaconProposer, helpers.CurrentEpoch(state))
		if !verifier.Verify(proposer.Pubkey, signingRoot, signed.Signature, domain) {
			return coreerrors.New(coreerrors.BlockSignatureInvalid, "invalid block signature")
		}
	}
	return nil
}
