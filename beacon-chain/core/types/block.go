package types

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/ssz"
)

// BeaconBlockBody carries randomness, the eth1 vote, free-form graffiti, and
// the six bounded lists of operations a block may include.
type BeaconBlockBody struct {
	RandaoReveal      primitives.Signature
	Eth1Data          *Eth1Data
	Graffiti          [32]byte
	ProposerSlashings []*ProposerSlashing
	AttesterSlashings []*AttesterSlashing
	Attestations      []*Attestation
	Deposits          []*Deposit
	VoluntaryExits    []*SignedVoluntaryExit
	Transfers         []*Transfer
}

// fixedSectionSize is the body's fixed section: RandaoReveal, Eth1Data,
// Graffiti, then one 4-byte offset per variable-size list field.
func (b *BeaconBlockBody) fixedSectionSize() int {
	return 96 + 72 + 32 + 4*6
}

// MarshalSSZ returns the SSZ encoding.
func (b *BeaconBlockBody) MarshalSSZ() ([]byte, error) {
	return b.MarshalSSZTo(nil)
}

// SizeSSZ returns this instance's encoded size.
func (b *BeaconBlockBody) SizeSSZ() int {
	buf, _ := b.MarshalSSZ()
	return len(buf)
}

// MarshalSSZTo appends the SSZ encoding to dst: fastssz's two-section
// layout, an offset per variable list field followed by the six bodies in
// field order.
func (b *BeaconBlockBody) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = append(dst, b.RandaoReveal[:]...)
	var err error
	if dst, err = b.Eth1Data.MarshalSSZTo(dst); err != nil {
		return nil, err
	}
	dst = append(dst, b.Graffiti[:]...)

	proposerSlashings, err := ssz.MarshalFixedList(nil, b.ProposerSlashings)
	if err != nil {
		return nil, err
	}
	attesterSlashings, err := ssz.MarshalVariableList(b.AttesterSlashings)
	if err != nil {
		return nil, err
	}
	attestations, err := ssz.MarshalVariableList(b.Attestations)
	if err != nil {
		return nil, err
	}
	deposits, err := ssz.MarshalFixedList(nil, b.Deposits)
	if err != nil {
		return nil, err
	}
	voluntaryExits, err := ssz.MarshalFixedList(nil, b.VoluntaryExits)
	if err != nil {
		return nil, err
	}
	transfers, err := ssz.MarshalFixedList(nil, b.Transfers)
	if err != nil {
		return nil, err
	}

	offset := b.fixedSectionSize()
	dst = ssz.WriteOffset(dst, offset)
	offset += len(proposerSlashings)
	dst = ssz.WriteOffset(dst, offset)
	offset += len(attesterSlashings)
	dst = ssz.WriteOffset(dst, offset)
	offset += len(attestations)
	dst = ssz.WriteOffset(dst, offset)
	offset += len(deposits)
	dst = ssz.WriteOffset(dst, offset)
	offset += len(voluntaryExits)
	dst = ssz.WriteOffset(dst, offset)

	dst = append(dst, proposerSlashings...)
	dst = append(dst, attesterSlashings...)
	dst = append(dst, attestations...)
	dst = append(dst, deposits...)
	dst = append(dst, voluntaryExits...)
	dst = append(dst, transfers...)
	return dst, nil
}

// UnmarshalSSZ decodes buf into b.
func (b *BeaconBlockBody) UnmarshalSSZ(buf []byte) error {
	fixed := b.fixedSectionSize()
	if len(buf) < fixed {
		return ssz.ErrSize
	}
	copy(b.RandaoReveal[:], buf[0:96])
	b.Eth1Data = &Eth1Data{}
	if err := b.Eth1Data.UnmarshalSSZ(buf[96:168]); err != nil {
		return err
	}
	copy(b.Graffiti[:], buf[168:200])

	offsets := make([]uint64, 6)
	for i := 0; i < 6; i++ {
		offsets[i] = ssz.ReadOffset(buf[200+4*i : 204+4*i])
	}
	for i, o := range offsets {
		if o < uint64(fixed) || int(o) > len(buf) {
			return ssz.ErrInvalidVariableOffset
		}
		if i > 0 && o < offsets[i-1] {
			return ssz.ErrInvalidVariableOffset
		}
	}
	end := uint64(len(buf))
	section := func(i int) []byte {
		start := offsets[i]
		stop := end
		if i+1 < len(offsets) {
			stop = offsets[i+1]
		}
		return buf[start:stop]
	}

	var err error
	b.ProposerSlashings, err = ssz.UnmarshalFixedList(section(0), 408, func() *ProposerSlashing { return &ProposerSlashing{} })
	if err != nil {
		return err
	}
	b.AttesterSlashings, err = ssz.UnmarshalVariableList(section(1), func() *AttesterSlashing { return &AttesterSlashing{} })
	if err != nil {
		return err
	}
	b.Attestations, err = ssz.UnmarshalVariableList(section(2), func() *Attestation { return &Attestation{} })
	if err != nil {
		return err
	}
	depositSize := depositProofDepth()*32 + 184
	b.Deposits, err = ssz.UnmarshalFixedList(section(3), depositSize, func() *Deposit { return &Deposit{} })
	if err != nil {
		return err
	}
	b.VoluntaryExits, err = ssz.UnmarshalFixedList(section(4), 112, func() *SignedVoluntaryExit { return &SignedVoluntaryExit{} })
	if err != nil {
		return err
	}
	b.Transfers, err = ssz.UnmarshalFixedList(section(5), 184, func() *Transfer { return &Transfer{} })
	return err
}

// HashTreeRoot returns the tree-hash root.
func (b *BeaconBlockBody) HashTreeRoot() ([32]byte, error) {
	cfg := params.BeaconConfig()
	h := ssz.NewHasher()
	h.AppendRoot(ssz.MerkleizeBytesToRoot(b.RandaoReveal[:]))
	eth1Root, err := b.Eth1Data.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(eth1Root)
	h.AppendRoot(b.Graffiti)

	proposerRoot, err := listRoot(b.ProposerSlashings, cfg.MaxProposerSlashings)
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(proposerRoot)

	attesterRoot, err := listRoot(b.AttesterSlashings, cfg.MaxAttesterSlashings)
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(attesterRoot)

	attestationRoot, err := listRoot(b.Attestations, cfg.MaxAttestations)
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(attestationRoot)

	depositRoot, err := listRoot(b.Deposits, cfg.MaxDeposits)
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(depositRoot)

	exitRoot, err := listRoot(b.VoluntaryExits, cfg.MaxVoluntaryExits)
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(exitRoot)

	transferRoot, err := listRoot(b.Transfers, cfg.MaxTransfers)
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(transferRoot)

	return h.Merkleize(0), nil
}

// listRoot computes the tree-hash root of an SSZ List[T, limit]: each
// element's own root becomes a chunk, padded to limit and mixed with length.
func listRoot[T ssz.HashRooter](items []T, limit uint64) ([32]byte, error) {
	h := ssz.NewHasher()
	for _, it := range items {
		r, err := it.HashTreeRoot()
		if err != nil {
			return [32]byte{}, err
		}
		h.AppendRoot(r)
	}
	return h.MerkleizeWithMixin(uint64(len(items)), limit), nil
}

// BeaconBlock is the unsigned block a proposer builds atop its parent.
type BeaconBlock struct {
	Slot       primitives.Slot
	ParentRoot primitives.Root
	StateRoot  primitives.Root
	Body       *BeaconBlockBody
}

// MarshalSSZ returns the SSZ encoding.
func (b *BeaconBlock) MarshalSSZ() ([]byte, error) {
	return b.MarshalSSZTo(nil)
}

// SizeSSZ returns this instance's encoded size.
func (b *BeaconBlock) SizeSSZ() int {
	buf, _ := b.MarshalSSZ()
	return len(buf)
}

// MarshalSSZTo appends the SSZ encoding to dst: Slot, ParentRoot, StateRoot
// are fixed; Body is variable size and gets an offset.
func (b *BeaconBlock) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = ssz.MarshalUint64(dst, uint64(b.Slot))
	dst = append(dst, b.ParentRoot[:]...)
	dst = append(dst, b.StateRoot[:]...)
	dst = ssz.WriteOffset(dst, 8+32+32+4)
	return b.Body.MarshalSSZTo(dst)
}

// UnmarshalSSZ decodes buf into b.
func (b *BeaconBlock) UnmarshalSSZ(buf []byte) error {
	if len(buf) < 76 {
		return ssz.ErrSize
	}
	b.Slot = primitives.Slot(ssz.UnmarshalUint64(buf[0:8]))
	b.ParentRoot = primitives.RootFromBytes(buf[8:40])
	b.StateRoot = primitives.RootFromBytes(buf[40:72])
	o0 := ssz.ReadOffset(buf[72:76])
	if o0 != 76 || int(o0) > len(buf) {
		return ssz.ErrInvalidVariableOffset
	}
	b.Body = &BeaconBlockBody{}
	return b.Body.UnmarshalSSZ(buf[o0:])
}

// signingRoot returns the tree-hash root used as the message validators
// sign: identical to the full block's root, since BeaconBlock carries no
// signature field of its own (that lives on SignedBeaconBlock).
func (b *BeaconBlock) signingRoot() ([32]byte, error) {
	return b.HashTreeRoot()
}

// SigningRoot returns the root a proposer's signature covers.
func (b *BeaconBlock) SigningRoot() ([32]byte, error) {
	return b.signingRoot()
}

// HashTreeRoot returns the tree-hash root.
func (b *BeaconBlock) HashTreeRoot() ([32]byte, error) {
	h := ssz.NewHasher()
	h.AppendUint64(uint64(b.Slot))
	h.AppendRoot(b.ParentRoot)
	h.AppendRoot(b.StateRoot)
	bodyRoot, err := b.Body.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(bodyRoot)
	return h.Merkleize(0), nil
}

// SignedBeaconBlock pairs a BeaconBlock with the proposer's signature over
// its root.
type SignedBeaconBlock struct {
	Block     *BeaconBlock
	Signature primitives.Signature
}

// MarshalSSZ returns the SSZ encoding.
func (s *SignedBeaconBlock) MarshalSSZ() ([]byte, error) {
	return s.MarshalSSZTo(nil)
}

// SizeSSZ returns this instance's encoded size.
func (s *SignedBeaconBlock) SizeSSZ() int {
	buf, _ := s.MarshalSSZ()
	return len(buf)
}

// MarshalSSZTo appends the SSZ encoding to dst: the fixed section holds the
// offset to Block followed by the fixed Signature field, then Block's body
// is appended as the variable section.
func (s *SignedBeaconBlock) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = ssz.WriteOffset(dst, 4+96)
	dst = append(dst, s.Signature[:]...)
	blockBytes, err := s.Block.MarshalSSZ()
	if err != nil {
		return nil, err
	}
	dst = append(dst, blockBytes...)
	return dst, nil
}

// UnmarshalSSZ decodes buf into s.
func (s *SignedBeaconBlock) UnmarshalSSZ(buf []byte) error {
	if len(buf) < 100 {
		return ssz.ErrSize
	}
	o0 := ssz.ReadOffset(buf[0:4])
	if o0 != 100 || int(o0) > len(buf) {
		return ssz.ErrInvalidVariableOffset
	}
	copy(s.Signature[:], buf[4:100])
	s.Block = &BeaconBlock{}
	return s.Block.UnmarshalSSZ(buf[o0:])
}

// HashTreeRoot returns the tree-hash root.
func (s *SignedBeaconBlock) HashTreeRoot() ([32]byte, error) {
	h := ssz.NewHasher()
	blockRoot, err := s.Block.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(blockRoot)
	h.AppendRoot(ssz.MerkleizeBytesToRoot(s.Signature[:]))
	return h.Merkleize(0), nil
}
