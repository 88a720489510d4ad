package helpers

import (
	"sort"

	bitfield "github.com/prysmaticlabs/go-bitfield"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// AttestingIndices returns the sorted validator indices of the crosslink
// committee for data's (target epoch, shard) whose bit is set in bits.
//
//	def get_attesting_indices(state, data, bits):
//	    committee = get_crosslink_committee(state, data.target.epoch, data.crosslink.shard)
//	    return sorted(index for i, index in enumerate(committee) if bits[i])
func AttestingIndices(state *types.BeaconState, data *types.AttestationData, bits bitfield.Bitlist) ([]uint64, error) {
	committee, err := CrosslinkCommittee(state, data.Target.Epoch, data.Crosslink.Shard)
	if err != nil {
		return nil, err
	}
	indices := make([]uint64, 0, len(committee))
	for i, idx := range committee {
		if bits.BitAt(uint64(i)) {
			indices = append(indices, uint64(idx))
		}
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })
	return indices, nil
}

// ConvertToIndexed builds the IndexedAttestation form of attestation, split
// by custody bit, for signature verification and slashing detection.
//
//	def get_indexed_attestation(state, attestation):
//	    attesting_indices = get_attesting_indices(state, attestation.data, attestation.aggregation_bits)
//	    custody_bit_1_indices = get_attesting_indices(state, attestation.data, attestation.custody_bits)
//	    custody_bit_0_indices = attesting_indices - custody_bit_1_indices
func ConvertToIndexed(state *types.BeaconState, attestation *types.Attestation) (*types.IndexedAttestation, error) {
	all, err := AttestingIndices(state, attestation.Data, attestation.AggregationBits)
	if err != nil {
		return nil, err
	}
	bit1, err := AttestingIndices(state, attestation.Data, attestation.CustodyBits)
	if err != nil {
		return nil, err
	}
	bit1Set := make(map[uint64]bool, len(bit1))
	for _, idx := range bit1 {
		bit1Set[idx] = true
	}
	bit0 := make([]uint64, 0, len(all)-len(bit1))
	for _, idx := range all {
		if !bit1Set[idx] {
			bit0 = append(bit0, idx)
		}
	}
	return &types.IndexedAttestation{
		CustodyBit0Indices: bit0,
		CustodyBit1Indices: bit1,
		Data:               attestation.Data,
		Signature:          attestation.Signature,
	}, nil
}
