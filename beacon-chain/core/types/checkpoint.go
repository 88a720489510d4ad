package types

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/ssz"
)

// Checkpoint anchors a Casper FFG vote to an (epoch, block root) pair.
//
// Invariant (spec section 3): epoch == 0 iff root == zero.
type Checkpoint struct {
	Epoch primitives.Epoch
	Root  primitives.Root
}

// Equal reports field-wise equality.
func (c *Checkpoint) Equal(other *Checkpoint) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.Epoch == other.Epoch && c.Root == other.Root
}

// Validate enforces the zero-equality invariant. UnmarshalSSZ does not call
// it, nor does any other part of the core; callers invoke it explicitly.
func (c *Checkpoint) Validate() error {
	if (c.Epoch == 0) != c.Root.IsZero() {
		return errCheckpointZeroMismatch
	}
	return nil
}

// Copy returns a value copy (Checkpoint has no reference fields).
func (c *Checkpoint) Copy() *Checkpoint {
	if c == nil {
		return nil
	}
	cp := *c
	return &cp
}

// SizeSSZ returns the fixed SSZ-encoded size: 8 bytes epoch + 32 bytes root.
func (c *Checkpoint) SizeSSZ() int {
	return 40
}

// MarshalSSZ returns the SSZ encoding.
func (c *Checkpoint) MarshalSSZ() ([]byte, error) {
	return c.MarshalSSZTo(make([]byte, 0, c.SizeSSZ()))
}

// MarshalSSZTo appends the SSZ encoding to dst.
func (c *Checkpoint) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = ssz.MarshalUint64(dst, uint64(c.Epoch))
	dst = append(dst, c.Root[:]...)
	return dst, nil
}

// UnmarshalSSZ decodes buf into c.
func (c *Checkpoint) UnmarshalSSZ(buf []byte) error {
	if len(buf) != 40 {
		return ssz.ErrSize
	}
	c.Epoch = primitives.Epoch(ssz.UnmarshalUint64(buf[:8]))
	c.Root = primitives.RootFromBytes(buf[8:40])
	return nil
}

// HashTreeRoot returns the tree-hash root: two fields, each one chunk.
func (c *Checkpoint) HashTreeRoot() ([32]byte, error) {
	h := ssz.NewHasher()
	h.AppendUint64(uint64(c.Epoch))
	h.AppendRoot(c.Root)
	return h.Merkleize(0), nil
}
