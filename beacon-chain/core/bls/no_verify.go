package bls

import "github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"

// NoVerify is a Verifier that accepts every signature unconditionally. It
// exists for unit tests and spec-conformance fixtures that care about state-
// transition logic, not curve arithmetic; production callers must wire
// Herumi instead.
type NoVerify struct{}

// Verify always reports true.
func (NoVerify) Verify(primitives.Pubkey, [32]byte, primitives.Signature, primitives.Domain) bool {
	return true
}

// AggregatePubkeys returns the first pubkey (or the zero key if pubkeys is
// empty) since no real aggregation is needed when nothing is checked.
func (NoVerify) AggregatePubkeys(pubkeys []primitives.Pubkey) (primitives.Pubkey, bool) {
	if len(pubkeys) == 0 {
		return primitives.Pubkey{}, false
	}
	return pubkeys[0], true
}

// VerifyAggregate always reports true.
func (NoVerify) VerifyAggregate([]primitives.Pubkey, [][32]byte, primitives.Signature, primitives.Domain) bool {
	return true
}
