package types

import (
	bitfield "github.com/prysmaticlabs/go-bitfield"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/ssz"
)

// ProposerSlashing proves a proposer signed two distinct headers for the
// same slot.
type ProposerSlashing struct {
	ProposerIndex primitives.ValidatorIndex
	Header1       *BeaconBlockHeader
	Header2       *BeaconBlockHeader
}

// SizeSSZ is the fixed container size: 8 + 200 + 200 = 408 bytes.
func (p *ProposerSlashing) SizeSSZ() int { return 408 }

// MarshalSSZ returns the SSZ encoding.
func (p *ProposerSlashing) MarshalSSZ() ([]byte, error) {
	return p.MarshalSSZTo(make([]byte, 0, p.SizeSSZ()))
}

// MarshalSSZTo appends the SSZ encoding to dst.
func (p *ProposerSlashing) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = ssz.MarshalUint64(dst, uint64(p.ProposerIndex))
	var err error
	if dst, err = p.Header1.MarshalSSZTo(dst); err != nil {
		return nil, err
	}
	if dst, err = p.Header2.MarshalSSZTo(dst); err != nil {
		return nil, err
	}
	return dst, nil
}

// UnmarshalSSZ decodes buf into p.
func (p *ProposerSlashing) UnmarshalSSZ(buf []byte) error {
	if len(buf) != 408 {
		return ssz.ErrSize
	}
	p.ProposerIndex = primitives.ValidatorIndex(ssz.UnmarshalUint64(buf[0:8]))
	p.Header1 = &BeaconBlockHeader{}
	if err := p.Header1.UnmarshalSSZ(buf[8:208]); err != nil {
		return err
	}
	p.Header2 = &BeaconBlockHeader{}
	return p.Header2.UnmarshalSSZ(buf[208:408])
}

// HashTreeRoot returns the tree-hash root.
func (p *ProposerSlashing) HashTreeRoot() ([32]byte, error) {
	h := ssz.NewHasher()
	h.AppendUint64(uint64(p.ProposerIndex))
	r1, err := p.Header1.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(r1)
	r2, err := p.Header2.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(r2)
	return h.Merkleize(0), nil
}

// AttesterSlashing proves two indexed attestations are mutually slashable.
type AttesterSlashing struct {
	Attestation1 *IndexedAttestation
	Attestation2 *IndexedAttestation
}

// SizeSSZ returns the encoded size: both fields are variable size, so the
// container is itself variable size and this reflects only this instance.
func (a *AttesterSlashing) SizeSSZ() int {
	b, _ := a.MarshalSSZ()
	return len(b)
}

// MarshalSSZ returns the SSZ encoding: two offsets followed by the two
// IndexedAttestation bodies, since both fields are variable size.
func (a *AttesterSlashing) MarshalSSZ() ([]byte, error) {
	return a.MarshalSSZTo(nil)
}

// MarshalSSZTo appends the SSZ encoding to dst.
func (a *AttesterSlashing) MarshalSSZTo(dst []byte) ([]byte, error) {
	b1, err := a.Attestation1.MarshalSSZ()
	if err != nil {
		return nil, err
	}
	b2, err := a.Attestation2.MarshalSSZ()
	if err != nil {
		return nil, err
	}
	fixed := 8
	dst = ssz.WriteOffset(dst, fixed)
	dst = ssz.WriteOffset(dst, fixed+len(b1))
	dst = append(dst, b1...)
	dst = append(dst, b2...)
	return dst, nil
}

// UnmarshalSSZ decodes buf into a.
func (a *AttesterSlashing) UnmarshalSSZ(buf []byte) error {
	if len(buf) < 8 {
		return ssz.ErrSize
	}
	o0 := ssz.ReadOffset(buf[0:4])
	o1 := ssz.ReadOffset(buf[4:8])
	if o0 != 8 || o1 < o0 || int(o1) > len(buf) {
		return ssz.ErrInvalidVariableOffset
	}
	a.Attestation1 = &IndexedAttestation{}
	if err := a.Attestation1.UnmarshalSSZ(buf[o0:o1]); err != nil {
		return err
	}
	a.Attestation2 = &IndexedAttestation{}
	return a.Attestation2.UnmarshalSSZ(buf[o1:])
}

// HashTreeRoot returns the tree-hash root.
func (a *AttesterSlashing) HashTreeRoot() ([32]byte, error) {
	h := ssz.NewHasher()
	r1, err := a.Attestation1.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(r1)
	r2, err := a.Attestation2.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(r2)
	return h.Merkleize(0), nil
}

// Attestation is the signed, committee-scoped vote a block carries before it
// is converted into IndexedAttestation form for slashing/signature checks.
type Attestation struct {
	AggregationBits bitfield.Bitlist
	Data            *AttestationData
	CustodyBits     bitfield.Bitlist
	Signature       primitives.Signature
}

// fixedSize is the fixed section: two 4-byte offsets, Data, Signature.
func (a *Attestation) fixedSize() int {
	return 4 + 216 + 4 + 96
}

// SizeSSZ returns the encoded size of this instance (variable size).
func (a *Attestation) SizeSSZ() int {
	b, _ := a.MarshalSSZ()
	return len(b)
}

// MarshalSSZ returns the SSZ encoding.
func (a *Attestation) MarshalSSZ() ([]byte, error) {
	return a.MarshalSSZTo(nil)
}

// MarshalSSZTo appends the SSZ encoding to dst: offset(AggregationBits),
// Data, offset(CustodyBits), Signature, then both bitlist bodies in order.
func (a *Attestation) MarshalSSZTo(dst []byte) ([]byte, error) {
	offset := a.fixedSize()
	dst = ssz.WriteOffset(dst, offset)

	var err error
	if dst, err = a.Data.MarshalSSZTo(dst); err != nil {
		return nil, err
	}

	offset += len(a.AggregationBits)
	dst = ssz.WriteOffset(dst, offset)
	dst = append(dst, a.Signature[:]...)

	dst = append(dst, a.AggregationBits...)
	dst = append(dst, a.CustodyBits...)
	return dst, nil
}

// UnmarshalSSZ decodes buf into a.
func (a *Attestation) UnmarshalSSZ(buf []byte) error {
	if len(buf) < 320 {
		return ssz.ErrSize
	}
	o0 := ssz.ReadOffset(buf[0:4])
	o1 := ssz.ReadOffset(buf[220:224])
	if o0 != 320 || o1 < o0 || int(o1) > len(buf) {
		return ssz.ErrInvalidVariableOffset
	}
	a.Data = &AttestationData{}
	if err := a.Data.UnmarshalSSZ(buf[4:220]); err != nil {
		return err
	}
	copy(a.Signature[:], buf[224:320])
	a.AggregationBits = bitfield.Bitlist(append([]byte(nil), buf[o0:o1]...))
	a.CustodyBits = bitfield.Bitlist(append([]byte(nil), buf[o1:]...))
	return nil
}

// HashTreeRoot returns the tree-hash root.
func (a *Attestation) HashTreeRoot() ([32]byte, error) {
	cfg := params.BeaconConfig()
	h := ssz.NewHasher()
	aggRoot, err := ssz.BitlistRoot(a.AggregationBits, cfg.MaxValidatorsPerCommittee)
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(aggRoot)
	dataRoot, err := a.Data.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(dataRoot)
	custodyRoot, err := ssz.BitlistRoot(a.CustodyBits, cfg.MaxValidatorsPerCommittee)
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(custodyRoot)
	h.AppendRoot(ssz.MerkleizeBytesToRoot(a.Signature[:]))
	return h.Merkleize(0), nil
}

// DepositData is the self-certified registration a depositor submits to the
// eth1 deposit contract; Signature is a proof of possession over the first
// three fields under a fork-version-zero DOMAIN_DEPOSIT.
type DepositData struct {
	Pubkey                primitives.Pubkey
	WithdrawalCredentials primitives.Root
	Amount                primitives.Gwei
	Signature             primitives.Signature
}

// SigningRoot returns the root signed by the deposit proof-of-possession:
// the container with Signature omitted.
func (d *DepositData) SigningRoot() ([32]byte, error) {
	h := ssz.NewHasher()
	h.AppendRoot(ssz.MerkleizeBytesToRoot(d.Pubkey[:]))
	h.AppendRoot(d.WithdrawalCredentials)
	h.AppendUint64(uint64(d.Amount))
	return h.Merkleize(0), nil
}

// SizeSSZ is the fixed container size: 48 + 32 + 8 + 96 = 184 bytes.
func (d *DepositData) SizeSSZ() int { return 184 }

// MarshalSSZ returns the SSZ encoding.
func (d *DepositData) MarshalSSZ() ([]byte, error) {
	return d.MarshalSSZTo(make([]byte, 0, d.SizeSSZ()))
}

// MarshalSSZTo appends the SSZ encoding to dst.
func (d *DepositData) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = append(dst, d.Pubkey[:]...)
	dst = append(dst, d.WithdrawalCredentials[:]...)
	dst = ssz.MarshalUint64(dst, uint64(d.Amount))
	dst = append(dst, d.Signature[:]...)
	return dst, nil
}

// UnmarshalSSZ decodes buf into d.
func (d *DepositData) UnmarshalSSZ(buf []byte) error {
	if len(buf) != 184 {
		return ssz.ErrSize
	}
	copy(d.Pubkey[:], buf[0:48])
	d.WithdrawalCredentials = primitives.RootFromBytes(buf[48:80])
	d.Amount = primitives.Gwei(ssz.UnmarshalUint64(buf[80:88]))
	copy(d.Signature[:], buf[88:184])
	return nil
}

// HashTreeRoot returns the tree-hash root, signature included.
func (d *DepositData) HashTreeRoot() ([32]byte, error) {
	h := ssz.NewHasher()
	h.AppendRoot(ssz.MerkleizeBytesToRoot(d.Pubkey[:]))
	h.AppendRoot(d.WithdrawalCredentials)
	h.AppendUint64(uint64(d.Amount))
	h.AppendRoot(ssz.MerkleizeBytesToRoot(d.Signature[:]))
	return h.Merkleize(0), nil
}

// Deposit carries a Merkle branch proving DepositData's inclusion in the
// eth1 deposit contract's tree at DEPOSIT_CONTRACT_TREE_DEPTH + 1.
type Deposit struct {
	Proof [][]byte
	Data  *DepositData
}

// VerifyMerkleBranch checks Proof against root at the given index, per the
// standard Merkle-branch verification used by the deposit contract.
func (d *Deposit) VerifyMerkleBranch(root primitives.Root, index uint64, depth uint64) (bool, error) {
	leaf, err := d.Data.HashTreeRoot()
	if err != nil {
		return false, err
	}
	return ssz.VerifyMerkleBranch(leaf, d.Proof, depth, index, root), nil
}

// depositProofDepth is DEPOSIT_CONTRACT_TREE_DEPTH + 1: the proof includes
// one extra level mixing in the running deposit count.
func depositProofDepth() int {
	return int(params.BeaconConfig().DepositContractTreeDepth) + 1
}

// SizeSSZ is the fixed container size: proof vector + DepositData.
func (d *Deposit) SizeSSZ() int {
	return depositProofDepth()*32 + 184
}

// MarshalSSZ returns the SSZ encoding.
func (d *Deposit) MarshalSSZ() ([]byte, error) {
	return d.MarshalSSZTo(make([]byte, 0, d.SizeSSZ()))
}

// MarshalSSZTo appends the SSZ encoding to dst.
func (d *Deposit) MarshalSSZTo(dst []byte) ([]byte, error) {
	depth := depositProofDepth()
	if len(d.Proof) != depth {
		return nil, ssz.ErrBytesLength
	}
	for _, p := range d.Proof {
		if len(p) != 32 {
			return nil, ssz.ErrBytesLength
		}
		dst = append(dst, p...)
	}
	return d.Data.MarshalSSZTo(dst)
}

// UnmarshalSSZ decodes buf into d.
func (d *Deposit) UnmarshalSSZ(buf []byte) error {
	depth := depositProofDepth()
	want := depth*32 + 184
	if len(buf) != want {
		return ssz.ErrSize
	}
	d.Proof = make([][]byte, depth)
	for i := 0; i < depth; i++ {
		leaf := make([]byte, 32)
		copy(leaf, buf[i*32:i*32+32])
		d.Proof[i] = leaf
	}
	d.Data = &DepositData{}
	return d.Data.UnmarshalSSZ(buf[depth*32:])
}

// HashTreeRoot returns the tree-hash root: the Merkle proof is a fixed
// Vector[Vector[byte,32], depth], each entry its own single chunk, and the
// vector's own root is the proof field's one chunk in the container.
func (d *Deposit) HashTreeRoot() ([32]byte, error) {
	h := ssz.NewHasher()
	proofHasher := ssz.NewHasher()
	for _, p := range d.Proof {
		proofHasher.AppendBytes32(p)
	}
	h.AppendRoot(proofHasher.Merkleize(0))
	dataRoot, err := d.Data.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(dataRoot)
	return h.Merkleize(0), nil
}

// VoluntaryExit signals that a validator wishes to leave the active set.
type VoluntaryExit struct {
	Epoch          primitives.Epoch
	ValidatorIndex primitives.ValidatorIndex
}

// SignedVoluntaryExit wraps a VoluntaryExit with its signature; kept as a
// distinct type because the exit's own tree-hash root (unsigned) is what the
// signature covers.
type SignedVoluntaryExit struct {
	Exit      *VoluntaryExit
	Signature primitives.Signature
}

// SizeSSZ is the fixed container size: 8 + 8 = 16 bytes.
func (v *VoluntaryExit) SizeSSZ() int { return 16 }

// MarshalSSZ returns the SSZ encoding.
func (v *VoluntaryExit) MarshalSSZ() ([]byte, error) {
	return v.MarshalSSZTo(make([]byte, 0, v.SizeSSZ()))
}

// MarshalSSZTo appends the SSZ encoding to dst.
func (v *VoluntaryExit) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = ssz.MarshalUint64(dst, uint64(v.Epoch))
	dst = ssz.MarshalUint64(dst, uint64(v.ValidatorIndex))
	return dst, nil
}

// UnmarshalSSZ decodes buf into v.
func (v *VoluntaryExit) UnmarshalSSZ(buf []byte) error {
	if len(buf) != 16 {
		return ssz.ErrSize
	}
	v.Epoch = primitives.Epoch(ssz.UnmarshalUint64(buf[0:8]))
	v.ValidatorIndex = primitives.ValidatorIndex(ssz.UnmarshalUint64(buf[8:16]))
	return nil
}

// HashTreeRoot returns the unsigned VoluntaryExit's tree-hash root, the
// message the signature covers.
func (v *VoluntaryExit) HashTreeRoot() ([32]byte, error) {
	h := ssz.NewHasher()
	h.AppendUint64(uint64(v.Epoch))
	h.AppendUint64(uint64(v.ValidatorIndex))
	return h.Merkleize(0), nil
}

// SizeSSZ is the fixed container size: 16 + 96 = 112 bytes.
func (s *SignedVoluntaryExit) SizeSSZ() int { return 112 }

// MarshalSSZ returns the SSZ encoding.
func (s *SignedVoluntaryExit) MarshalSSZ() ([]byte, error) {
	return s.MarshalSSZTo(make([]byte, 0, s.SizeSSZ()))
}

// MarshalSSZTo appends the SSZ encoding to dst.
func (s *SignedVoluntaryExit) MarshalSSZTo(dst []byte) ([]byte, error) {
	var err error
	if dst, err = s.Exit.MarshalSSZTo(dst); err != nil {
		return nil, err
	}
	dst = append(dst, s.Signature[:]...)
	return dst, nil
}

// UnmarshalSSZ decodes buf into s.
func (s *SignedVoluntaryExit) UnmarshalSSZ(buf []byte) error {
	if len(buf) != 112 {
		return ssz.ErrSize
	}
	s.Exit = &VoluntaryExit{}
	if err := s.Exit.UnmarshalSSZ(buf[0:16]); err != nil {
		return err
	}
	copy(s.Signature[:], buf[16:112])
	return nil
}

// HashTreeRoot returns the tree-hash root, signature included.
func (s *SignedVoluntaryExit) HashTreeRoot() ([32]byte, error) {
	h := ssz.NewHasher()
	exitRoot, err := s.Exit.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(exitRoot)
	h.AppendRoot(ssz.MerkleizeBytesToRoot(s.Signature[:]))
	return h.Merkleize(0), nil
}

// Transfer moves a balance directly between two validator withdrawal
// accounts, outside the deposit/exit machinery.
type Transfer struct {
	Sender    primitives.ValidatorIndex
	Recipient primitives.ValidatorIndex
	Amount    primitives.Gwei
	Fee       primitives.Gwei
	Slot      primitives.Slot
	Pubkey    primitives.Pubkey
	Signature primitives.Signature
}

// SizeSSZ is the fixed container size: 8*5 + 48 + 96 = 184 bytes.
func (t *Transfer) SizeSSZ() int { return 184 }

// MarshalSSZ returns the SSZ encoding.
func (t *Transfer) MarshalSSZ() ([]byte, error) {
	return t.MarshalSSZTo(make([]byte, 0, t.SizeSSZ()))
}

// MarshalSSZTo appends the SSZ encoding to dst.
func (t *Transfer) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = ssz.MarshalUint64(dst, uint64(t.Sender))
	dst = ssz.MarshalUint64(dst, uint64(t.Recipient))
	dst = ssz.MarshalUint64(dst, uint64(t.Amount))
	dst = ssz.MarshalUint64(dst, uint64(t.Fee))
	dst = ssz.MarshalUint64(dst, uint64(t.Slot))
	dst = append(dst, t.Pubkey[:]...)
	dst = append(dst, t.Signature[:]...)
	return dst, nil
}

// UnmarshalSSZ decodes buf into t.
func (t *Transfer) UnmarshalSSZ(buf []byte) error {
	if len(buf) != 184 {
		return ssz.ErrSize
	}
	t.Sender = primitives.ValidatorIndex(ssz.UnmarshalUint64(buf[0:8]))
	t.Recipient = primitives.ValidatorIndex(ssz.UnmarshalUint64(buf[8:16]))
	t.Amount = primitives.Gwei(ssz.UnmarshalUint64(buf[16:24]))
	t.Fee = primitives.Gwei(ssz.UnmarshalUint64(buf[24:32]))
	t.Slot = primitives.Slot(ssz.UnmarshalUint64(buf[32:40]))
	copy(t.Pubkey[:], buf[40:88])
	copy(t.Signature[:], buf[88:184])
	return nil
}

// SigningRoot returns the tree-hash root excluding Signature.
func (t *Transfer) SigningRoot() ([32]byte, error) {
	h := ssz.NewHasher()
	h.AppendUint64(uint64(t.Sender))
	h.AppendUint64(uint64(t.Recipient))
	h.AppendUint64(uint64(t.Amount))
	h.AppendUint64(uint64(t.Fee))
	h.AppendUint64(uint64(t.Slot))
	h.AppendRoot(ssz.MerkleizeBytesToRoot(t.Pubkey[:]))
	return h.Merkleize(0), nil
}

// HashTreeRoot returns the full container's tree-hash root.
func (t *Transfer) HashTreeRoot() ([32]byte, error) {
	h := ssz.NewHasher()
	h.AppendUint64(uint64(t.Sender))
	h.AppendUint64(uint64(t.Recipient))
	h.AppendUint64(uint64(t.Amount))
	h.AppendUint64(uint64(t.Fee))
	h.AppendUint64(uint64(t.Slot))
	h.AppendRoot(ssz.MerkleizeBytesToRoot(t.Pubkey[:]))
	h.AppendRoot(ssz.MerkleizeBytesToRoot(t.Signature[:]))
	return h.Merkleize(0), nil
}
