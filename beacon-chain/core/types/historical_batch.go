package types

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/ssz"
)

// HistoricalBatch is the snapshot hashed into historical_roots once every
// SLOTS_PER_HISTORICAL_ROOT / SLOTS_PER_EPOCH epochs: the two fixed-length
// root vectors BeaconState rotates through.
type HistoricalBatch struct {
	BlockRoots []primitives.Root // len == SlotsPerHistoricalRoot
	StateRoots []primitives.Root // len == SlotsPerHistoricalRoot
}

// SizeSSZ is the fixed container size: two root vectors of
// SlotsPerHistoricalRoot entries each.
func (b *HistoricalBatch) SizeSSZ() int {
	return 64 * int(params.BeaconConfig().SlotsPerHistoricalRoot)
}

// MarshalSSZ returns the SSZ encoding.
func (b *HistoricalBatch) MarshalSSZ() ([]byte, error) {
	return b.MarshalSSZTo(make([]byte, 0, b.SizeSSZ()))
}

// MarshalSSZTo appends the SSZ encoding to dst.
func (b *HistoricalBatch) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = append(dst, marshalRoots(b.BlockRoots)...)
	dst = append(dst, marshalRoots(b.StateRoots)...)
	return dst, nil
}

// UnmarshalSSZ decodes buf into b.
func (b *HistoricalBatch) UnmarshalSSZ(buf []byte) error {
	n := int(params.BeaconConfig().SlotsPerHistoricalRoot)
	if len(buf) != 64*n {
		return ssz.ErrSize
	}
	var err error
	if b.BlockRoots, err = unmarshalRoots(buf[0 : 32*n]); err != nil {
		return err
	}
	b.StateRoots, err = unmarshalRoots(buf[32*n : 64*n])
	return err
}

// HashTreeRoot returns the tree-hash root.
func (b *HistoricalBatch) HashTreeRoot() ([32]byte, error) {
	h := ssz.NewHasher()
	h.AppendRoot(rootVectorRoot(b.BlockRoots))
	h.AppendRoot(rootVectorRoot(b.StateRoots))
	return h.Merkleize(0), nil
}
