package types

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/ssz"
)

// Fork records the fork-version transition a state has undergone: versions
// before and after Epoch, the epoch the switch took effect.
type Fork struct {
	PreviousVersion primitives.ForkVersion
	CurrentVersion  primitives.ForkVersion
	Epoch           primitives.Epoch
}

// Copy returns a value copy.
func (f *Fork) Copy() *Fork {
	if f == nil {
		return nil
	}
	cp := *f
	return &cp
}

// SizeSSZ is the fixed container size: 4 + 4 + 8 = 16 bytes.
func (f *Fork) SizeSSZ() int { return 16 }

// MarshalSSZ returns the SSZ encoding.
func (f *Fork) MarshalSSZ() ([]byte, error) {
	return f.MarshalSSZTo(make([]byte, 0, f.SizeSSZ()))
}

// MarshalSSZTo appends the SSZ encoding to dst.
func (f *Fork) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = append(dst, f.PreviousVersion[:]...)
	dst = append(dst, f.CurrentVersion[:]...)
	dst = ssz.MarshalUint64(dst, uint64(f.Epoch))
	return dst, nil
}

// UnmarshalSSZ decodes buf into f.
func (f *Fork) UnmarshalSSZ(buf []byte) error {
	if len(buf) != 16 {
		return ssz.ErrSize
	}
	copy(f.PreviousVersion[:], buf[0:4])
	copy(f.CurrentVersion[:], buf[4:8])
	f.Epoch = primitives.Epoch(ssz.UnmarshalUint64(buf[8:16]))
	return nil
}

// HashTreeRoot returns the tree-hash root.
func (f *Fork) HashTreeRoot() ([32]byte, error) {
	h := ssz.NewHasher()
	h.AppendBytes32(f.PreviousVersion[:])
	h.AppendBytes32(f.CurrentVersion[:])
	h.AppendUint64(uint64(f.Epoch))
	return h.Merkleize(0), nil
}
