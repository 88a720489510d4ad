package types

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/ssz"
)

// AttestationData is the unsigned body a validator votes on.
type AttestationData struct {
	Slot            primitives.Slot
	Index           primitives.CommitteeIndex
	BeaconBlockRoot primitives.Root
	Source          *Checkpoint
	Target          *Checkpoint
	Crosslink       *Crosslink
}

// Equal reports deep field-wise equality.
func (a *AttestationData) Equal(other *AttestationData) bool {
	if a == nil || other == nil {
		return a == other
	}
	if a.Slot != other.Slot || a.Index != other.Index || a.BeaconBlockRoot != other.BeaconBlockRoot {
		return false
	}
	if (a.Crosslink == nil) != (other.Crosslink == nil) {
		return false
	}
	if a.Crosslink != nil && *a.Crosslink != *other.Crosslink {
		return false
	}
	return a.Source.Equal(other.Source) && a.Target.Equal(other.Target)
}

// IsSlashable implements the slashability predicate from spec section 3:
// two attestation data items conflict if they differ and share a target
// epoch, or if one's (source, target) epoch span strictly surrounds the
// other's.
func (a *AttestationData) IsSlashable(b *AttestationData) bool {
	if a.Equal(b) {
		return false
	}
	isDoubleVote := a.Target.Epoch == b.Target.Epoch
	isSurround := a.Source.Epoch < b.Source.Epoch && b.Target.Epoch < a.Target.Epoch
	isSurrounded := b.Source.Epoch < a.Source.Epoch && a.Target.Epoch < b.Target.Epoch
	return isDoubleVote || isSurround || isSurrounded
}

// Copy returns a deep copy.
func (a *AttestationData) Copy() *AttestationData {
	if a == nil {
		return nil
	}
	return &AttestationData{
		Slot:            a.Slot,
		Index:           a.Index,
		BeaconBlockRoot: a.BeaconBlockRoot,
		Source:          a.Source.Copy(),
		Target:          a.Target.Copy(),
		Crosslink:       a.Crosslink.Copy(),
	}
}

// SizeSSZ is the fixed container size: 8 + 8 + 32 + 40 + 40 + 88 = 216 bytes.
func (a *AttestationData) SizeSSZ() int {
	return 216
}

// MarshalSSZ returns the SSZ encoding.
func (a *AttestationData) MarshalSSZ() ([]byte, error) {
	return a.MarshalSSZTo(make([]byte, 0, a.SizeSSZ()))
}

// MarshalSSZTo appends the SSZ encoding to dst.
func (a *AttestationData) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = ssz.MarshalUint64(dst, uint64(a.Slot))
	dst = ssz.MarshalUint64(dst, uint64(a.Index))
	dst = append(dst, a.BeaconBlockRoot[:]...)
	var err error
	if dst, err = a.Source.MarshalSSZTo(dst); err != nil {
		return nil, err
	}
	if dst, err = a.Target.MarshalSSZTo(dst); err != nil {
		return nil, err
	}
	if dst, err = a.Crosslink.MarshalSSZTo(dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// UnmarshalSSZ decodes buf into a.
func (a *AttestationData) UnmarshalSSZ(buf []byte) error {
	if len(buf) != 216 {
		return ssz.ErrSize
	}
	a.Slot = primitives.Slot(ssz.UnmarshalUint64(buf[0:8]))
	a.Index = primitives.CommitteeIndex(ssz.UnmarshalUint64(buf[8:16]))
	a.BeaconBlockRoot = primitives.RootFromBytes(buf[16:48])
	a.Source = &Checkpoint{}
	if err := a.Source.UnmarshalSSZ(buf[48:88]); err != nil {
		return err
	}
	a.Target = &Checkpoint{}
	if err := a.Target.UnmarshalSSZ(buf[88:128]); err != nil {
		return err
	}
	a.Crosslink = &Crosslink{}
	return a.Crosslink.UnmarshalSSZ(buf[128:216])
}

// HashTreeRoot returns the tree-hash root.
func (a *AttestationData) HashTreeRoot() ([32]byte, error) {
	h := ssz.NewHasher()
	h.AppendUint64(uint64(a.Slot))
	h.AppendUint64(uint64(a.Index))
	h.AppendRoot(a.BeaconBlockRoot)
	srcRoot, err := a.Source.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(srcRoot)
	tgtRoot, err := a.Target.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(tgtRoot)
	clRoot, err := a.Crosslink.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(clRoot)
	return h.Merkleize(0), nil
}
