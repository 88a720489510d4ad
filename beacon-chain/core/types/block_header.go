package types

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/ssz"
)

// BeaconBlockHeader is the fixed-size summary of a block kept inside
// BeaconState; the signing root excludes the trailing Signature field.
type BeaconBlockHeader struct {
	Slot       primitives.Slot
	ParentRoot primitives.Root
	StateRoot  primitives.Root
	BodyRoot   primitives.Root
	Signature  primitives.Signature
}

// Copy returns a value copy.
func (b *BeaconBlockHeader) Copy() *BeaconBlockHeader {
	if b == nil {
		return nil
	}
	cp := *b
	return &cp
}

// SizeSSZ is the fixed container size: 8 + 32*3 + 96 = 200 bytes.
func (b *BeaconBlockHeader) SizeSSZ() int {
	return 200
}

// MarshalSSZ returns the SSZ encoding.
func (b *BeaconBlockHeader) MarshalSSZ() ([]byte, error) {
	return b.MarshalSSZTo(make([]byte, 0, b.SizeSSZ()))
}

// MarshalSSZTo appends the SSZ encoding to dst.
func (b *BeaconBlockHeader) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = ssz.MarshalUint64(dst, uint64(b.Slot))
	dst = append(dst, b.ParentRoot[:]...)
	dst = append(dst, b.StateRoot[:]...)
	dst = append(dst, b.BodyRoot[:]...)
	dst = append(dst, b.Signature[:]...)
	return dst, nil
}

// UnmarshalSSZ decodes buf into b.
func (b *BeaconBlockHeader) UnmarshalSSZ(buf []byte) error {
	if len(buf) != 200 {
		return ssz.ErrSize
	}
	b.Slot = primitives.Slot(ssz.UnmarshalUint64(buf[0:8]))
	b.ParentRoot = primitives.RootFromBytes(buf[8:40])
	b.StateRoot = primitives.RootFromBytes(buf[40:72])
	b.BodyRoot = primitives.RootFromBytes(buf[72:104])
	copy(b.Signature[:], buf[104:200])
	return nil
}

// signingRoot returns the tree-hash root excluding Signature, the
// "signing root" spec section 4.1 defines.
func (b *BeaconBlockHeader) signingRoot() ([32]byte, error) {
	h := ssz.NewHasher()
	h.AppendUint64(uint64(b.Slot))
	h.AppendRoot(b.ParentRoot)
	h.AppendRoot(b.StateRoot)
	h.AppendRoot(b.BodyRoot)
	return h.Merkleize(0), nil
}

// SigningRoot returns the tree-hash root of the header with Signature
// omitted, the message validators sign.
func (b *BeaconBlockHeader) SigningRoot() ([32]byte, error) {
	return b.signingRoot()
}

// HashTreeRoot returns the full container's tree-hash root, signature
// included.
func (b *BeaconBlockHeader) HashTreeRoot() ([32]byte, error) {
	h := ssz.NewHasher()
	h.AppendUint64(uint64(b.Slot))
	h.AppendRoot(b.ParentRoot)
	h.AppendRoot(b.StateRoot)
	h.AppendRoot(b.BodyRoot)
	h.AppendRoot(ssz.MerkleizeBytesToRoot(b.Signature[:]))
	return h.Merkleize(0), nil
}
