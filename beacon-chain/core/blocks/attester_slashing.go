package blocks

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/bls"
	coreerrors "github.com/prysmaticlabs/prysm-core/beacon-chain/core/errors"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/mutators"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/ssz"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
	"github.com/prysmaticlabs/prysm-core/shared/sliceutil"
)

// ProcessAttesterSlashings verifies and applies every attester slashing in
// body: both indexed attestations must be individually well formed and
// mutually slashable, and every named index still slashable is slashed.
func ProcessAttesterSlashings(state *types.BeaconState, body *types.BeaconBlockBody, verifier bls.Verifier, verifySignatures bool) error {
	for _, slashing := range body.AttesterSlashings {
		slashedIndices, err := verifyAttesterSlashing(state, slashing, verifier, verifySignatures)
		if err != nil {
			return err
		}
		slashedAny := false
		for _, idx := range slashedIndices {
			v := state.Validators[idx]
			if !v.IsSlashable(helpers.CurrentEpoch(state)) {
				continue
			}
			if err := mutators.SlashValidator(state, idx, nil); err != nil {
				return err
			}
			slashedAny = true
		}
		if !slashedAny {
			return coreerrors.New(coreerrors.AttesterSlashingNotSlashable, "no slashable index in attester slashing")
		}
	}
	return nil
}

// verifyAttesterSlashing checks spec section 4.6's attester slashing
// conditions and returns the sorted intersection of the two indexed
// attestations' index sets, the validators the slashing may apply to.
//
//	def process_attester_slashing(state, attester_slashing):
//	    attestation_1 = attester_slashing.attestation_1
//	    attestation_2 = attester_slashing.attestation_2
//	    assert is_slashable_attestation_data(attestation_1.data, attestation_2.data)
//	    assert is_valid_indexed_attestation(state, attestation_1)
//	    assert is_valid_indexed_attestation(state, attestation_2)
//	    slashed_any = False
//	    attesting_indices_1 = attestation_1.custody_bit_0_indices + attestation_1.custody_bit_1_indices
//	    attesting_indices_2 = attestation_2.custody_bit_0_indices + attestation_2.custody_bit_1_indices
//	    for index in sorted(set(attesting_indices_1).intersection(attesting_indices_2)):
//	        if is_slashable_validator(state.validators[index], get_current_epoch(state)):
//	            slash_validator(state, index)
//	            slashed_any = True
//	    assert slashed_any
func verifyAttesterSlashing(state *types.BeaconState, slashing *types.AttesterSlashing, verifier bls.Verifier, verifySignatures bool) ([]primitives.ValidatorIndex, error) {
	att1, att2 := slashing.Attestation1, slashing.Attestation2
	if !att1.Data.IsSlashable(att2.Data) {
		return nil, coreerrors.New(coreerrors.AttesterSlashingNotSlashable, "attestation data is not mutually slashable")
	}
	if err := VerifyIndexedAttestation(state, att1, verifier, verifySignatures); err != nil {
		return nil, coreerrors.Wrap(coreerrors.AttesterSlashingInvalid, err, "first indexed attestation is invalid")
	}
	if err := VerifyIndexedAttestation(state, att2, verifier, verifySignatures); err != nil {
		return nil, coreerrors.Wrap(coreerrors.AttesterSlashingInvalid, err, "second indexed attestation is invalid")
	}

	intersection := sliceutil.IntersectionUint64(att1.AllIndices(), att2.AllIndices())
	indices := make([]primitives.ValidatorIndex, len(intersection))
	for i, raw := range intersection {
		indices[i] = primitives.ValidatorIndex(raw)
	}
	return sortedValidatorIndices(indices), nil
}

func sortedValidatorIndices(indices []primitives.ValidatorIndex) []primitives.ValidatorIndex {
	for i := 1; i < len(indices); i++ {
		for j := i; j > 0 && indices[j-1] > indices[j]; j-- {
			indices[j-1], indices[j] = indices[j], indices[j-1]
		}
	}
	return indices
}

// VerifyIndexedAttestation checks spec section 3's is_valid_indexed_attestation
// predicate: structural well-formedness, then (when requested) the
// aggregate signature of both custody-bit groups under DOMAIN_ATTESTATION.
//
//	def is_valid_indexed_attestation(state, indexed_attestation):
//	    bit_0_indices = indexed_attestation.custody_bit_0_indices
//	    bit_1_indices = indexed_attestation.custody_bit_1_indices
//	    if not (len(bit_0_indices) + len(bit_1_indices) >= 1):
//	        return False
//	    if not bit_0_indices == sorted(bit_0_indices) or ... not disjoint or over max:
//	        return False
//	    pubkeys = [aggregate of bit 0 pubkeys, aggregate of bit 1 pubkeys]
//	    domain = get_domain(state, DOMAIN_ATTESTATION, indexed_attestation.data.target.epoch)
//	    return bls_verify_multiple(pubkeys, [hash_tree_root(AttestationDataAndCustodyBit(data, 0b0)),
//	                                          hash_tree_root(AttestationDataAndCustodyBit(data, 0b1))],
//	                                indexed_attestation.signature, domain)
func VerifyIndexedAttestation(state *types.BeaconState, att *types.IndexedAttestation, verifier bls.Verifier, verifySignatures bool) error {
	if len(att.CustodyBit0Indices)+len(att.CustodyBit1Indices) == 0 {
		return coreerrors.New(coreerrors.AttesterSlashingEmptyIndices, "indexed attestation names no validators")
	}
	if !att.WellFormed() {
		return coreerrors.New(coreerrors.AttestationInvalidCustody, "index lists are not sorted, unique, bounded, and disjoint")
	}
	if !verifySignatures {
		return nil
	}

	pubkeys := make([]primitives.Pubkey, 0, 2)
	messageRoots := make([][32]byte, 0, 2)
	for bit, indices := range [2][]uint64{att.CustodyBit0Indices, att.CustodyBit1Indices} {
		if len(indices) == 0 {
			continue
		}
		raw := make([]primitives.Pubkey, len(indices))
		for i, idx := range indices {
			raw[i] = state.Validators[idx].Pubkey
		}
		agg, ok := verifier.AggregatePubkeys(raw)
		if !ok {
			return coreerrors.New(coreerrors.AttestationInvalidSignature, "could not aggregate custody-bit pubkeys")
		}
		root, err := attestationDataAndCustodyBitRoot(att.Data, bit == 1)
		if err != nil {
			return err
		}
		pubkeys = append(pubkeys, agg)
		messageRoots = append(messageRoots, root)
	}

	domain := helpers.Domain(state, params.BeaconConfig().DomainAttestation, att.Data.Target.Epoch)
	if !verifier.VerifyAggregate(pubkeys, messageRoots, att.Signature, domain) {
		return coreerrors.New(coreerrors.AttestationInvalidSignature, "invalid indexed attestation signature")
	}
	return nil
}

// attestationDataAndCustodyBitRoot computes the tree-hash root of the
// AttestationDataAndCustodyBit wrapper each custody-bit group's aggregate
// signature actually covers: the attestation data plus a single trailing
// bit distinguishing which custody group signed it.
func attestationDataAndCustodyBitRoot(data *types.AttestationData, bit bool) ([32]byte, error) {
	h := ssz.NewHasher()
	dataRoot, err := data.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(dataRoot)
	if bit {
		h.AppendBytes32([]byte{1})
	} else {
		h.AppendBytes32([]byte{0})
	}
	return h.Merkleize(0), nil
}
