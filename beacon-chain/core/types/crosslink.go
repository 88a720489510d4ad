package types

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/ssz"
)

// Crosslink commits a shard's recent data to the beacon chain.
type Crosslink struct {
	Shard      primitives.Shard
	ParentRoot primitives.Root
	StartEpoch primitives.Epoch
	EndEpoch   primitives.Epoch
	DataRoot   primitives.Root
}

// IsChildOf reports whether c's ParentRoot matches parent's tree root.
func (c *Crosslink) IsChildOf(parent *Crosslink) (bool, error) {
	root, err := parent.HashTreeRoot()
	if err != nil {
		return false, err
	}
	return c.ParentRoot == primitives.Root(root), nil
}

// Copy returns a value copy.
func (c *Crosslink) Copy() *Crosslink {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// SizeSSZ is the fixed container size: 8 + 32 + 8 + 8 + 32 = 88 bytes.
func (c *Crosslink) SizeSSZ() int {
	return 88
}

// MarshalSSZ returns the SSZ encoding.
func (c *Crosslink) MarshalSSZ() ([]byte, error) {
	return c.MarshalSSZTo(make([]byte, 0, c.SizeSSZ()))
}

// MarshalSSZTo appends the SSZ encoding to dst.
func (c *Crosslink) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = ssz.MarshalUint64(dst, uint64(c.Shard))
	dst = append(dst, c.ParentRoot[:]...)
	dst = ssz.MarshalUint64(dst, uint64(c.StartEpoch))
	dst = ssz.MarshalUint64(dst, uint64(c.EndEpoch))
	dst = append(dst, c.DataRoot[:]...)
	return dst, nil
}

// UnmarshalSSZ decodes buf into c.
func (c *Crosslink) UnmarshalSSZ(buf []byte) error {
	if len(buf) != 88 {
		return ssz.ErrSize
	}
	c.Shard = primitives.Shard(ssz.UnmarshalUint64(buf[0:8]))
	c.ParentRoot = primitives.RootFromBytes(buf[8:40])
	c.StartEpoch = primitives.Epoch(ssz.UnmarshalUint64(buf[40:48]))
	c.EndEpoch = primitives.Epoch(ssz.UnmarshalUint64(buf[48:56]))
	c.DataRoot = primitives.RootFromBytes(buf[56:88])
	return nil
}

// HashTreeRoot returns the tree-hash root.
func (c *Crosslink) HashTreeRoot() ([32]byte, error) {
	h := ssz.NewHasher()
	h.AppendUint64(uint64(c.Shard))
	h.AppendRoot(c.ParentRoot)
	h.AppendUint64(uint64(c.StartEpoch))
	h.AppendUint64(uint64(c.EndEpoch))
	h.AppendRoot(c.DataRoot)
	return h.Merkleize(0), nil
}

// EmptyCrosslink returns the zero-value crosslink used as the default
// "winning crosslink" when no candidate exists.
func EmptyCrosslink() *Crosslink {
	return &Crosslink{}
}
