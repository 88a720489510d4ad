package types

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/ssz"
)

// Eth1Data is the eth1 chain's deposit-contract snapshot voted on by
// proposers. Deposits must be applied in strictly increasing
// eth1_deposit_index order.
type Eth1Data struct {
	DepositRoot  primitives.Root
	DepositCount uint64
	BlockHash    primitives.Root
}

// Equal reports field-wise equality, used to tally eth1 data votes.
func (e *Eth1Data) Equal(other *Eth1Data) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.DepositRoot == other.DepositRoot &&
		e.DepositCount == other.DepositCount &&
		e.BlockHash == other.BlockHash
}

// Copy returns a value copy.
func (e *Eth1Data) Copy() *Eth1Data {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}

// SizeSSZ is the fixed container size: 32 + 8 + 32 = 72 bytes.
func (e *Eth1Data) SizeSSZ() int {
	return 72
}

// MarshalSSZ returns the SSZ encoding.
func (e *Eth1Data) MarshalSSZ() ([]byte, error) {
	return e.MarshalSSZTo(make([]byte, 0, e.SizeSSZ()))
}

// MarshalSSZTo appends the SSZ encoding to dst.
func (e *Eth1Data) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = append(dst, e.DepositRoot[:]...)
	dst = ssz.MarshalUint64(dst, e.DepositCount)
	dst = append(dst, e.BlockHash[:]...)
	return dst, nil
}

// UnmarshalSSZ decodes buf into e.
func (e *Eth1Data) UnmarshalSSZ(buf []byte) error {
	if len(buf) != 72 {
		return ssz.ErrSize
	}
	e.DepositRoot = primitives.RootFromBytes(buf[0:32])
	e.DepositCount = ssz.UnmarshalUint64(buf[32:40])
	e.BlockHash = primitives.RootFromBytes(buf[40:72])
	return nil
}

// HashTreeRoot returns the tree-hash root.
func (e *Eth1Data) HashTreeRoot() ([32]byte, error) {
	h := ssz.NewHasher()
	h.AppendRoot(e.DepositRoot)
	h.AppendUint64(e.DepositCount)
	h.AppendRoot(e.BlockHash)
	return h.Merkleize(0), nil
}
