package types

import (
	bitfield "github.com/prysmaticlabs/go-bitfield"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/ssz"
)

// PendingAttestation is accumulated inside BeaconState across an epoch, then
// drained (current -> previous, previous discarded) at the epoch boundary.
type PendingAttestation struct {
	AggregationBits bitfield.Bitlist
	Data            *AttestationData
	InclusionDelay  primitives.Slot
	ProposerIndex   primitives.ValidatorIndex
}

func (p *PendingAttestation) fixedSize() int {
	return 4 + 216 + 8 + 8
}

// SizeSSZ returns the encoded size of this instance (variable size).
func (p *PendingAttestation) SizeSSZ() int {
	b, _ := p.MarshalSSZ()
	return len(b)
}

// MarshalSSZ returns the SSZ encoding.
func (p *PendingAttestation) MarshalSSZ() ([]byte, error) {
	return p.MarshalSSZTo(nil)
}

// MarshalSSZTo appends the SSZ encoding to dst.
func (p *PendingAttestation) MarshalSSZTo(dst []byte) ([]byte, error) {
	offset := p.fixedSize()
	dst = ssz.WriteOffset(dst, offset)
	var err error
	if dst, err = p.Data.MarshalSSZTo(dst); err != nil {
		return nil, err
	}
	dst = ssz.MarshalUint64(dst, uint64(p.InclusionDelay))
	dst = ssz.MarshalUint64(dst, uint64(p.ProposerIndex))
	dst = append(dst, p.AggregationBits...)
	return dst, nil
}

// UnmarshalSSZ decodes buf into p.
func (p *PendingAttestation) UnmarshalSSZ(buf []byte) error {
	if len(buf) < 236 {
		return ssz.ErrSize
	}
	o0 := ssz.ReadOffset(buf[0:4])
	if int(o0) != 236 || int(o0) > len(buf) {
		return ssz.ErrInvalidVariableOffset
	}
	p.Data = &AttestationData{}
	if err := p.Data.UnmarshalSSZ(buf[4:220]); err != nil {
		return err
	}
	p.InclusionDelay = primitives.Slot(ssz.UnmarshalUint64(buf[220:228]))
	p.ProposerIndex = primitives.ValidatorIndex(ssz.UnmarshalUint64(buf[228:236]))
	p.AggregationBits = bitfield.Bitlist(append([]byte(nil), buf[o0:]...))
	return nil
}

// HashTreeRoot returns the tree-hash root.
func (p *PendingAttestation) HashTreeRoot() ([32]byte, error) {
	cfg := params.BeaconConfig()
	h := ssz.NewHasher()
	bitsRoot, err := ssz.BitlistRoot(p.AggregationBits, cfg.MaxValidatorsPerCommittee)
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(bitsRoot)
	dataRoot, err := p.Data.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(dataRoot)
	h.AppendUint64(uint64(p.InclusionDelay))
	h.AppendUint64(uint64(p.ProposerIndex))
	return h.Merkleize(0), nil
}
