package types

import (
	bitfield "github.com/prysmaticlabs/go-bitfield"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/ssz"
)

// BeaconState is the core aggregate the engine advances. Every entity the
// engine touches lives inside this tree; there are no cross-state pointers.
// Fixed-length vectors (BlockRoots, RandaoMixes, Slashings, ...) are plain
// Go slices whose length is an invariant maintained by genesis construction
// and never changed by mutation, matching the teacher's own BeaconState
// shape before it moved to a generated protobuf type.
type BeaconState struct {
	// Versioning.
	GenesisTime uint64
	Slot        primitives.Slot
	Fork        *Fork

	// History.
	LatestBlockHeader *BeaconBlockHeader
	BlockRoots        []primitives.Root // len == SlotsPerHistoricalRoot
	StateRoots        []primitives.Root // len == SlotsPerHistoricalRoot
	HistoricalRoots   []primitives.Root // list, cap HistoricalRootsLimit

	// Eth1.
	Eth1Data         *Eth1Data
	Eth1DataVotes    []*Eth1Data // list, cap SlotsPerEth1VotingPeriod
	Eth1DepositIndex uint64

	// Registry.
	Validators []*Validator // list, cap ValidatorRegistryLimit
	Balances   []uint64     // list, cap ValidatorRegistryLimit

	// Randomness and committees.
	StartShard             primitives.Shard
	RandaoMixes            []primitives.Root // len == EpochsPerHistoricalVector
	ActiveIndexRoots       []primitives.Root // len == EpochsPerHistoricalVector
	CompactCommitteesRoots []primitives.Root // len == EpochsPerHistoricalVector

	// Slashings.
	Slashings []uint64 // len == EpochsPerSlashingsVector

	// Attestations.
	PreviousEpochAttestations []*PendingAttestation // list, cap MaxAttestations*SlotsPerEpoch
	CurrentEpochAttestations  []*PendingAttestation  // list, cap MaxAttestations*SlotsPerEpoch

	// Crosslinks.
	PreviousCrosslinks []*Crosslink // len == ShardCount
	CurrentCrosslinks  []*Crosslink // len == ShardCount

	// Finality.
	JustificationBits           bitfield.Bitvector4
	PreviousJustifiedCheckpoint *Checkpoint
	CurrentJustifiedCheckpoint  *Checkpoint
	FinalizedCheckpoint         *Checkpoint
}

// Copy returns a deep-enough copy safe to mutate independently of the
// receiver: every pointer field and every slice of pointers is copied one
// level deep, since the engine's exclusivity contract (see the top-level
// transition) requires a failed transition to leave the caller's original
// state untouched. The exception is the two pending-attestation lists: the
// slices are copied but their *PendingAttestation elements are shared with
// the receiver.
func (s *BeaconState) Copy() *BeaconState {
	if s == nil {
		return nil
	}
	cp := &BeaconState{
		GenesisTime:       s.GenesisTime,
		Slot:              s.Slot,
		Fork:              s.Fork.Copy(),
		LatestBlockHeader: s.LatestBlockHeader.Copy(),
		BlockRoots:        append([]primitives.Root(nil), s.BlockRoots...),
		StateRoots:        append([]primitives.Root(nil), s.StateRoots...),
		HistoricalRoots:   append([]primitives.Root(nil), s.HistoricalRoots...),
		Eth1Data:          s.Eth1Data.Copy(),
		Eth1DepositIndex:  s.Eth1DepositIndex,
		Balances:          append([]uint64(nil), s.Balances...),
		StartShard:        s.StartShard,
		RandaoMixes:            append([]primitives.Root(nil), s.RandaoMixes...),
		ActiveIndexRoots:       append([]primitives.Root(nil), s.ActiveIndexRoots...),
		CompactCommitteesRoots: append([]primitives.Root(nil), s.CompactCommitteesRoots...),
		Slashings:              append([]uint64(nil), s.Slashings...),
		JustificationBits:      s.JustificationBits,
		PreviousJustifiedCheckpoint: s.PreviousJustifiedCheckpoint.Copy(),
		CurrentJustifiedCheckpoint:  s.CurrentJustifiedCheckpoint.Copy(),
		FinalizedCheckpoint:         s.FinalizedCheckpoint.Copy(),
	}
	cp.Eth1DataVotes = make([]*Eth1Data, len(s.Eth1DataVotes))
	for i, v := range s.Eth1DataVotes {
		cp.Eth1DataVotes[i] = v.Copy()
	}
	cp.Validators = make([]*Validator, len(s.Validators))
	for i, v := range s.Validators {
		cp.Validators[i] = v.Copy()
	}
	cp.PreviousEpochAttestations = append([]*PendingAttestation(nil), s.PreviousEpochAttestations...)
	cp.CurrentEpochAttestations = append([]*PendingAttestation(nil), s.CurrentEpochAttestations...)
	cp.PreviousCrosslinks = make([]*Crosslink, len(s.PreviousCrosslinks))
	for i, c := range s.PreviousCrosslinks {
		cp.PreviousCrosslinks[i] = c.Copy()
	}
	cp.CurrentCrosslinks = make([]*Crosslink, len(s.CurrentCrosslinks))
	for i, c := range s.CurrentCrosslinks {
		cp.CurrentCrosslinks[i] = c.Copy()
	}
	return cp
}

// MarshalSSZ returns the SSZ encoding, used only at the network/persistence
// edges (see HashTreeRoot for the canonical state fingerprint).
func (s *BeaconState) MarshalSSZ() ([]byte, error) {
	return s.MarshalSSZTo(nil)
}

// SizeSSZ returns this instance's encoded size.
func (s *BeaconState) SizeSSZ() int {
	buf, _ := s.MarshalSSZ()
	return len(buf)
}

func marshalRoots(roots []primitives.Root) []byte {
	buf := make([]byte, 0, 32*len(roots))
	for _, r := range roots {
		buf = append(buf, r[:]...)
	}
	return buf
}

func unmarshalRoots(buf []byte) ([]primitives.Root, error) {
	if len(buf)%32 != 0 {
		return nil, ssz.ErrSize
	}
	out := make([]primitives.Root, len(buf)/32)
	for i := range out {
		out[i] = primitives.RootFromBytes(buf[i*32 : i*32+32])
	}
	return out, nil
}

func marshalUint64Vector(vals []uint64) []byte {
	buf := make([]byte, 0, 8*len(vals))
	for _, v := range vals {
		buf = ssz.MarshalUint64(buf, v)
	}
	return buf
}

// MarshalSSZTo appends the SSZ encoding to dst: the fixed section (all
// non-list fields plus one 4-byte offset per variable list, in field order)
// followed by the six variable-list bodies in that same order.
func (s *BeaconState) MarshalSSZTo(dst []byte) ([]byte, error) {
	histRootsBody := marshalRoots(s.HistoricalRoots)
	eth1VotesBody, err := ssz.MarshalFixedList(nil, s.Eth1DataVotes)
	if err != nil {
		return nil, err
	}
	validatorsBody, err := ssz.MarshalFixedList(nil, s.Validators)
	if err != nil {
		return nil, err
	}
	balancesBody := marshalUint64Vector(s.Balances)
	prevAttsBody, err := ssz.MarshalVariableList(s.PreviousEpochAttestations)
	if err != nil {
		return nil, err
	}
	currAttsBody, err := ssz.MarshalVariableList(s.CurrentEpochAttestations)
	if err != nil {
		return nil, err
	}

	fixed := 8 + 8 + 16 + 200 +
		32*len(s.BlockRoots) + 32*len(s.StateRoots) + 4 +
		72 + 4 + 8 +
		4 + 4 +
		8 + 32*len(s.RandaoMixes) + 32*len(s.ActiveIndexRoots) + 32*len(s.CompactCommitteesRoots) +
		8*len(s.Slashings) +
		4 + 4 +
		88*len(s.PreviousCrosslinks) + 88*len(s.CurrentCrosslinks) +
		1 + 40 + 40 + 40

	dst = ssz.MarshalUint64(dst, s.GenesisTime)
	dst = ssz.MarshalUint64(dst, uint64(s.Slot))
	if dst, err = s.Fork.MarshalSSZTo(dst); err != nil {
		return nil, err
	}
	if dst, err = s.LatestBlockHeader.MarshalSSZTo(dst); err != nil {
		return nil, err
	}
	dst = append(dst, marshalRoots(s.BlockRoots)...)
	dst = append(dst, marshalRoots(s.StateRoots)...)

	cursor := fixed
	dst = ssz.WriteOffset(dst, cursor)
	cursor += len(histRootsBody)

	if dst, err = s.Eth1Data.MarshalSSZTo(dst); err != nil {
		return nil, err
	}
	dst = ssz.WriteOffset(dst, cursor)
	cursor += len(eth1VotesBody)
	dst = ssz.MarshalUint64(dst, s.Eth1DepositIndex)

	dst = ssz.WriteOffset(dst, cursor)
	cursor += len(validatorsBody)
	dst = ssz.WriteOffset(dst, cursor)
	cursor += len(balancesBody)

	dst = ssz.MarshalUint64(dst, uint64(s.StartShard))
	dst = append(dst, marshalRoots(s.RandaoMixes)...)
	dst = append(dst, marshalRoots(s.ActiveIndexRoots)...)
	dst = append(dst, marshalRoots(s.CompactCommitteesRoots)...)
	dst = append(dst, marshalUint64Vector(s.Slashings)...)

	dst = ssz.WriteOffset(dst, cursor)
	cursor += len(prevAttsBody)
	dst = ssz.WriteOffset(dst, cursor)
	cursor += len(currAttsBody)

	for _, c := range s.PreviousCrosslinks {
		if dst, err = c.MarshalSSZTo(dst); err != nil {
			return nil, err
		}
	}
	for _, c := range s.CurrentCrosslinks {
		if dst, err = c.MarshalSSZTo(dst); err != nil {
			return nil, err
		}
	}

	dst = append(dst, s.JustificationBits...)
	if dst, err = s.PreviousJustifiedCheckpoint.MarshalSSZTo(dst); err != nil {
		return nil, err
	}
	if dst, err = s.CurrentJustifiedCheckpoint.MarshalSSZTo(dst); err != nil {
		return nil, err
	}
	if dst, err = s.FinalizedCheckpoint.MarshalSSZTo(dst); err != nil {
		return nil, err
	}

	dst = append(dst, histRootsBody...)
	dst = append(dst, eth1VotesBody...)
	dst = append(dst, validatorsBody...)
	dst = append(dst, balancesBody...)
	dst = append(dst, prevAttsBody...)
	dst = append(dst, currAttsBody...)
	return dst, nil
}

// UnmarshalSSZ decodes buf into s, using cfg-declared vector lengths to
// split the fixed-vector fields (BlockRoots, RandaoMixes, Slashings, the
// crosslink vectors) since SSZ carries no explicit length for them.
func (s *BeaconState) UnmarshalSSZ(buf []byte) error {
	cfg := params.BeaconConfig()
	pos := 0
	readN := func(n int) ([]byte, error) {
		if pos+n > len(buf) {
			return nil, ssz.ErrSize
		}
		b := buf[pos : pos+n]
		pos += n
		return b, nil
	}

	genesisTimeB, err := readN(8)
	if err != nil {
		return err
	}
	s.GenesisTime = ssz.UnmarshalUint64(genesisTimeB)
	slotB, err := readN(8)
	if err != nil {
		return err
	}
	s.Slot = primitives.Slot(ssz.UnmarshalUint64(slotB))

	forkB, err := readN(16)
	if err != nil {
		return err
	}
	s.Fork = &Fork{}
	if err := s.Fork.UnmarshalSSZ(forkB); err != nil {
		return err
	}

	headerB, err := readN(200)
	if err != nil {
		return err
	}
	s.LatestBlockHeader = &BeaconBlockHeader{}
	if err := s.LatestBlockHeader.UnmarshalSSZ(headerB); err != nil {
		return err
	}

	blockRootsB, err := readN(32 * int(cfg.SlotsPerHistoricalRoot))
	if err != nil {
		return err
	}
	if s.BlockRoots, err = unmarshalRoots(blockRootsB); err != nil {
		return err
	}
	stateRootsB, err := readN(32 * int(cfg.SlotsPerHistoricalRoot))
	if err != nil {
		return err
	}
	if s.StateRoots, err = unmarshalRoots(stateRootsB); err != nil {
		return err
	}

	histRootsOffB, err := readN(4)
	if err != nil {
		return err
	}
	o0 := ssz.ReadOffset(histRootsOffB)

	eth1DataB, err := readN(72)
	if err != nil {
		return err
	}
	s.Eth1Data = &Eth1Data{}
	if err := s.Eth1Data.UnmarshalSSZ(eth1DataB); err != nil {
		return err
	}

	eth1VotesOffB, err := readN(4)
	if err != nil {
		return err
	}
	o1 := ssz.ReadOffset(eth1VotesOffB)

	depositIndexB, err := readN(8)
	if err != nil {
		return err
	}
	s.Eth1DepositIndex = ssz.UnmarshalUint64(depositIndexB)

	validatorsOffB, err := readN(4)
	if err != nil {
		return err
	}
	o2 := ssz.ReadOffset(validatorsOffB)
	balancesOffB, err := readN(4)
	if err != nil {
		return err
	}
	o3 := ssz.ReadOffset(balancesOffB)

	startShardB, err := readN(8)
	if err != nil {
		return err
	}
	s.StartShard = primitives.Shard(ssz.UnmarshalUint64(startShardB))

	randaoB, err := readN(32 * int(cfg.EpochsPerHistoricalVector))
	if err != nil {
		return err
	}
	if s.RandaoMixes, err = unmarshalRoots(randaoB); err != nil {
		return err
	}
	activeIdxB, err := readN(32 * int(cfg.EpochsPerHistoricalVector))
	if err != nil {
		return err
	}
	if s.ActiveIndexRoots, err = unmarshalRoots(activeIdxB); err != nil {
		return err
	}
	compactB, err := readN(32 * int(cfg.EpochsPerHistoricalVector))
	if err != nil {
		return err
	}
	if s.CompactCommitteesRoots, err = unmarshalRoots(compactB); err != nil {
		return err
	}

	slashingsB, err := readN(8 * int(cfg.EpochsPerSlashingsVector))
	if err != nil {
		return err
	}
	s.Slashings, err = ssz.UnmarshalUint64List(slashingsB)
	if err != nil {
		return err
	}

	prevAttsOffB, err := readN(4)
	if err != nil {
		return err
	}
	o4 := ssz.ReadOffset(prevAttsOffB)
	currAttsOffB, err := readN(4)
	if err != nil {
		return err
	}
	o5 := ssz.ReadOffset(currAttsOffB)

	prevCrossB, err := readN(88 * int(cfg.ShardCount))
	if err != nil {
		return err
	}
	s.PreviousCrosslinks, err = ssz.UnmarshalFixedList(prevCrossB, 88, func() *Crosslink { return &Crosslink{} })
	if err != nil {
		return err
	}
	currCrossB, err := readN(88 * int(cfg.ShardCount))
	if err != nil {
		return err
	}
	s.CurrentCrosslinks, err = ssz.UnmarshalFixedList(currCrossB, 88, func() *Crosslink { return &Crosslink{} })
	if err != nil {
		return err
	}

	justBitsB, err := readN(1)
	if err != nil {
		return err
	}
	s.JustificationBits = bitfield.Bitvector4(append([]byte(nil), justBitsB...))

	pjB, err := readN(40)
	if err != nil {
		return err
	}
	s.PreviousJustifiedCheckpoint = &Checkpoint{}
	if err := s.PreviousJustifiedCheckpoint.UnmarshalSSZ(pjB); err != nil {
		return err
	}
	cjB, err := readN(40)
	if err != nil {
		return err
	}
	s.CurrentJustifiedCheckpoint = &Checkpoint{}
	if err := s.CurrentJustifiedCheckpoint.UnmarshalSSZ(cjB); err != nil {
		return err
	}
	fB, err := readN(40)
	if err != nil {
		return err
	}
	s.FinalizedCheckpoint = &Checkpoint{}
	if err := s.FinalizedCheckpoint.UnmarshalSSZ(fB); err != nil {
		return err
	}

	offsets := []uint64{o0, o1, o2, o3, o4, o5}
	for i, o := range offsets {
		if o < uint64(pos) || int(o) > len(buf) {
			return ssz.ErrInvalidVariableOffset
		}
		if i > 0 && o < offsets[i-1] {
			return ssz.ErrInvalidVariableOffset
		}
	}
	section := func(i int) []byte {
		start := offsets[i]
		end := uint64(len(buf))
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		return buf[start:end]
	}

	if s.HistoricalRoots, err = unmarshalRoots(section(0)); err != nil {
		return err
	}
	s.Eth1DataVotes, err = ssz.UnmarshalFixedList(section(1), 72, func() *Eth1Data { return &Eth1Data{} })
	if err != nil {
		return err
	}
	s.Validators, err = ssz.UnmarshalFixedList(section(2), 121, func() *Validator { return &Validator{} })
	if err != nil {
		return err
	}
	if s.Balances, err = ssz.UnmarshalUint64List(section(3)); err != nil {
		return err
	}
	s.PreviousEpochAttestations, err = ssz.UnmarshalVariableList(section(4), func() *PendingAttestation { return &PendingAttestation{} })
	if err != nil {
		return err
	}
	s.CurrentEpochAttestations, err = ssz.UnmarshalVariableList(section(5), func() *PendingAttestation { return &PendingAttestation{} })
	return err
}

func rootVectorRoot(roots []primitives.Root) [32]byte {
	h := ssz.NewHasher()
	for _, r := range roots {
		h.AppendRoot(r)
	}
	return h.Merkleize(0)
}

func rootListRoot(roots []primitives.Root, limit uint64) [32]byte {
	h := ssz.NewHasher()
	for _, r := range roots {
		h.AppendRoot(r)
	}
	return h.MerkleizeWithMixin(uint64(len(roots)), limit)
}

func uint64VectorRoot(vals []uint64) [32]byte {
	h := ssz.NewHasher()
	for _, v := range vals {
		h.AppendUint64(v)
	}
	return h.Merkleize(0)
}

func crosslinkVectorRoot(links []*Crosslink) ([32]byte, error) {
	h := ssz.NewHasher()
	for _, c := range links {
		r, err := c.HashTreeRoot()
		if err != nil {
			return [32]byte{}, err
		}
		h.AppendRoot(r)
	}
	return h.Merkleize(0), nil
}

// HashTreeRoot returns the tree-hash root of the full aggregate, the
// canonical state fingerprint signed blocks and checkpoints reference.
func (s *BeaconState) HashTreeRoot() ([32]byte, error) {
	cfg := params.BeaconConfig()
	h := ssz.NewHasher()

	h.AppendUint64(s.GenesisTime)
	h.AppendUint64(uint64(s.Slot))
	forkRoot, err := s.Fork.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(forkRoot)

	headerRoot, err := s.LatestBlockHeader.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(headerRoot)

	h.AppendRoot(rootVectorRoot(s.BlockRoots))
	h.AppendRoot(rootVectorRoot(s.StateRoots))
	h.AppendRoot(rootListRoot(s.HistoricalRoots, cfg.HistoricalRootsLimit))

	eth1Root, err := s.Eth1Data.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(eth1Root)

	votesRoot, err := listRoot(s.Eth1DataVotes, cfg.SlotsPerEth1VotingPeriod)
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(votesRoot)
	h.AppendUint64(s.Eth1DepositIndex)

	validatorsRoot, err := listRoot(s.Validators, cfg.ValidatorRegistryLimit)
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(validatorsRoot)
	h.AppendRoot(ssz.Uint64ListRoot(s.Balances, cfg.ValidatorRegistryLimit))

	h.AppendUint64(uint64(s.StartShard))
	h.AppendRoot(rootVectorRoot(s.RandaoMixes))
	h.AppendRoot(rootVectorRoot(s.ActiveIndexRoots))
	h.AppendRoot(rootVectorRoot(s.CompactCommitteesRoots))

	h.AppendRoot(uint64VectorRoot(s.Slashings))

	maxAttsPerEpoch := cfg.MaxAttestations * cfg.SlotsPerEpoch
	prevAttsRoot, err := listRoot(s.PreviousEpochAttestations, maxAttsPerEpoch)
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(prevAttsRoot)
	currAttsRoot, err := listRoot(s.CurrentEpochAttestations, maxAttsPerEpoch)
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(currAttsRoot)

	prevCrossRoot, err := crosslinkVectorRoot(s.PreviousCrosslinks)
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(prevCrossRoot)
	currCrossRoot, err := crosslinkVectorRoot(s.CurrentCrosslinks)
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(currCrossRoot)

	h.AppendBytes32(s.JustificationBits)
	pjRoot, err := s.PreviousJustifiedCheckpoint.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(pjRoot)
	cjRoot, err := s.CurrentJustifiedCheckpoint.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(cjRoot)
	fRoot, err := s.FinalizedCheckpoint.HashTreeRoot()
	if err != nil {
		return [32]byte{}, err
	}
	h.AppendRoot(fRoot)

	return h.Merkleize(0), nil
}
