package types

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/ssz"
)

// CompactCommittee is the lightweight per-shard committee summary folded
// into the historical vector at compact_committees_roots: enough to verify
// a shard's duty assignment without replaying the full shuffle.
type CompactCommittee struct {
	Pubkeys          []primitives.Pubkey // list, cap MaxValidatorsPerCommittee
	CompactValidators []uint64           // list, cap MaxValidatorsPerCommittee
}

// fixedSize is the fixed section: two 4-byte offsets.
func (c *CompactCommittee) fixedSize() int { return 8 }

// MarshalSSZ returns the SSZ encoding.
func (c *CompactCommittee) MarshalSSZ() ([]byte, error) {
	return c.MarshalSSZTo(nil)
}

// MarshalSSZTo appends the SSZ encoding to dst: offset(Pubkeys),
// offset(CompactValidators), then both list bodies in order.
func (c *CompactCommittee) MarshalSSZTo(dst []byte) ([]byte, error) {
	offset := c.fixedSize()
	dst = ssz.WriteOffset(dst, offset)
	offset += 48 * len(c.Pubkeys)
	dst = ssz.WriteOffset(dst, offset)

	for _, pk := range c.Pubkeys {
		dst = append(dst, pk[:]...)
	}
	dst = ssz.MarshalUint64List(dst, c.CompactValidators)
	return dst, nil
}

// UnmarshalSSZ decodes buf into c.
func (c *CompactCommittee) UnmarshalSSZ(buf []byte) error {
	if len(buf) < 8 {
		return ssz.ErrSize
	}
	o0 := ssz.ReadOffset(buf[0:4])
	o1 := ssz.ReadOffset(buf[4:8])
	if o0 != 8 || o1 < o0 || int(o1) > len(buf) || (o1-o0)%48 != 0 {
		return ssz.ErrInvalidVariableOffset
	}
	pkBuf := buf[o0:o1]
	c.Pubkeys = make([]primitives.Pubkey, len(pkBuf)/48)
	for i := range c.Pubkeys {
		copy(c.Pubkeys[i][:], pkBuf[i*48:(i+1)*48])
	}
	validators, err := ssz.UnmarshalUint64List(buf[o1:])
	if err != nil {
		return err
	}
	c.CompactValidators = validators
	return nil
}

// HashTreeRoot returns the tree-hash root.
func (c *CompactCommittee) HashTreeRoot() ([32]byte, error) {
	cfg := params.BeaconConfig()
	h := ssz.NewHasher()

	pkHasher := ssz.NewHasher()
	for _, pk := range c.Pubkeys {
		pkHasher.AppendRoot(ssz.MerkleizeBytesToRoot(pk[:]))
	}
	h.AppendRoot(pkHasher.MerkleizeWithMixin(uint64(len(c.Pubkeys)), cfg.MaxValidatorsPerCommittee))

	h.AppendRoot(ssz.Uint64ListRoot(c.CompactValidators, cfg.MaxValidatorsPerCommittee))
	return h.Merkleize(0), nil
}

// CompactValidatorEntry packs a committee member's index, slashed flag, and
// effective-balance-in-increments into a single uint64, the phase0
// compact_validator encoding:
//
//	compact_validator = (index << 16) + (slashed << 15) + (effective_balance // EFFECTIVE_BALANCE_INCREMENT)
func CompactValidatorEntry(index primitives.ValidatorIndex, slashed bool, effectiveBalance primitives.Gwei) uint64 {
	increments := uint64(effectiveBalance) / params.BeaconConfig().EffectiveBalanceIncrement
	var slashedBit uint64
	if slashed {
		slashedBit = 1
	}
	return uint64(index)<<16 | slashedBit<<15 | increments
}
