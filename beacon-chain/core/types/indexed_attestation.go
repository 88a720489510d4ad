package types

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/ssz"
	"github.com/prysmaticlabs/prysm-core/shared/sliceutil"
)

// IndexedAttestation names every attesting validator explicitly, split by
// custody bit, for slashing detection and signature verification.
type IndexedAttestation struct {
	CustodyBit0Indices []uint64
	CustodyBit1Indices []uint64
	Data               *AttestationData
	Signature          primitives.Signature
}

// WellFormed enforces the spec section 3 structural invariants: both index
// lists sorted and unique, bounded by MAX_VALIDATORS_PER_COMMITTEE, and
// disjoint from one another.
func (a *IndexedAttestation) WellFormed() bool {
	cfg := params.BeaconConfig()
	if uint64(len(a.CustodyBit0Indices)) > cfg.MaxValidatorsPerCommittee ||
		uint64(len(a.CustodyBit1Indices)) > cfg.MaxValidatorsPerCommittee {
		return false
	}
	if !sliceutil.IsSortedUnique(a.CustodyBit0Indices) || !sliceutil.IsSortedUnique(a.CustodyBit1Indices) {
		return false
	}
	return sliceutil.Disjoint(a.CustodyBit0Indices, a.CustodyBit1Indices)
}

// AllIndices returns the union of both custody bit index sets.
func (a *IndexedAttestation) AllIndices() []uint64 {
	return sliceutil.UnionUint64(a.CustodyBit0Indices, a.CustodyBit1Indices)
}

// fixedSize returns the size of the fixed section only; callers needing the
// full encoded size must add the variable-length bodies.
func (a *IndexedAttestation) fixedSize() int {
	return 4 + 4 + 216 + 96
}

// MarshalSSZ returns the SSZ encoding.
func (a *IndexedAttestation) MarshalSSZ() ([]byte, error) {
	return a.MarshalSSZTo(nil)
}

// MarshalSSZTo appends the SSZ encoding to dst, using fastssz's two-section
// layout: 4-byte offsets for the two variable lists in the fixed part,
// bodies appended afterward in field order.
func (a *IndexedAttestation) MarshalSSZTo(dst []byte) ([]byte, error) {
	offset := a.fixedSize()
	dst = ssz.WriteOffset(dst, offset)
	offset += len(a.CustodyBit0Indices) * 8
	dst = ssz.WriteOffset(dst, offset)

	var err error
	if dst, err = a.Data.MarshalSSZTo(dst); err != nil {
		return nil, err
	}
	dst = append(dst, a.Signature[:]...)

	dst = ssz.MarshalUint64List(dst, a.CustodyBit0Indices)
	dst = ssz.MarshalUint64List(dst, a.CustodyBit1Indices)
	return dst, nil
}

// UnmarshalSSZ decodes buf into a.
func (a *IndexedAttestation) UnmarshalSSZ(buf []byte) error {
	if len(buf) < 320 {
		return ssz.ErrSize
	}
	o0 := ssz.ReadOffset(buf[0:4])
	o1 := ssz.ReadOffset(buf[4:8])
	if o0 < 320 || o1 < o0 || int(o1) > len(buf) {
		return ssz.ErrInvalidVariableOffset
	}
	a.Data = &AttestationData{}
	if err := a.Data.UnmarshalSSZ(buf[8:224]); err != nil {
		return err
	}
	copy(a.Signature[:], buf[224:320])

	var err error
	a.CustodyBit0Indices, err = ssz.UnmarshalUint64List(buf[o0:o1])
	if err != nil {
		return err
	}
	a.CustodyBit1Indices, err = ssz.UnmarshalUint64List(buf[o1:])
	return err
}

// HashTreeRoot returns the tree-hash root: two variable uint64 lists, the
// data container root, and the signature's sub-root.
func (a *IndexedAttestation) HashTreeRoot() ([32]byte, error) {
	cfg := params.BeaconConfig()
	h := ssz.NewHasher()
	h.AppendRoot(ssz.Uint64ListRoot(a.CustodyBit0Indices, cfg.MaxValidatorsPerCommittee))
	h.AppendRoot(ssz.Uint64ListRoot(a.CustodyBit1Indices, cfg.MaxValidatorsPerCommittee))
	dataRoot, err := a.Data.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(dataRoot)
	h.AppendRoot(ssz.MerkleizeBytesToRoot(a.Signature[:]))
	return h.Merkleize(0), nil
}
