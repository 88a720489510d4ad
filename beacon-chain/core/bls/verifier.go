// Package bls defines the pluggable BLS signature-verification capability
// the core consumes. The core never hard-wires a curve implementation; it
// depends only on the Verifier interface, matching the teacher's own
// shared/bls package split between a herumi-backed implementation and
// test doubles.
package bls

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
)

// Verifier is the capability the core borrows to check every signature a
// block carries. Implementations must be pure and safe for concurrent use;
// the core itself holds no BLS state.
type Verifier interface {
	// Verify reports whether signature is a valid BLS signature of
	// messageRoot by pubkey under domain.
	Verify(pubkey primitives.Pubkey, messageRoot [32]byte, signature primitives.Signature, domain primitives.Domain) bool

	// AggregatePubkeys combines pubkeys into a single aggregate public key,
	// failing if pubkeys is empty or any entry fails to deserialize.
	AggregatePubkeys(pubkeys []primitives.Pubkey) (primitives.Pubkey, bool)

	// VerifyAggregate reports whether signature is a valid aggregate BLS
	// signature of messageRoots (indexed the same as pubkeys) under domain.
	VerifyAggregate(pubkeys []primitives.Pubkey, messageRoots [][32]byte, signature primitives.Signature, domain primitives.Domain) bool
}
