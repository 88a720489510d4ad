// Package primitives defines the fixed-width scalar and byte-array types
// shared across the beacon chain state-transition core.
package primitives

// Slot is a single time quantum at which at most one block may be proposed.
type Slot uint64

// Epoch is SLOTS_PER_EPOCH consecutive slots, the unit of finalization.
type Epoch uint64

// Gwei is a balance denominated in Gwei (10^9 wei).
type Gwei uint64

// ValidatorIndex addresses a validator inside BeaconState.Validators.
type ValidatorIndex uint64

// CommitteeIndex selects a committee among those active in a slot.
type CommitteeIndex uint64

// Shard identifies one of SHARD_COUNT shards.
type Shard uint64

// Domain is a 4-byte or 8-byte signature domain tag, depending on fork.
type Domain uint64

// DomainType is the 4-byte prefix mixed into a signing domain.
type DomainType [4]byte

// ForkVersion is a 4-byte fork version tag.
type ForkVersion [4]byte

// FarFutureEpoch marks a validator field as "never" (2^64 - 1).
const FarFutureEpoch = Epoch(1<<64 - 1)

// GenesisSlot and GenesisEpoch are the chain's starting coordinates.
const (
	GenesisSlot  Slot  = 0
	GenesisEpoch Epoch = 0
)

// Root is a 32-byte Merkle/tree-hash root.
type Root [32]byte

// Pubkey is a 48-byte BLS public key.
type Pubkey [48]byte

// Signature is a 96-byte BLS signature.
type Signature [96]byte

// Bytes returns a copy of the root as a byte slice.
func (r Root) Bytes() []byte {
	b := make([]byte, 32)
	copy(b, r[:])
	return b
}

// IsZero reports whether the root is all zero bytes.
func (r Root) IsZero() bool {
	return r == Root{}
}

// RootFromBytes copies b (which must be exactly 32 bytes) into a Root.
func RootFromBytes(b []byte) Root {
	var r Root
	copy(r[:], b)
	return r
}
