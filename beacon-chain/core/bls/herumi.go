package bls

import (
	"sync"

	bls "github.com/herumi/bls-eth-go-binary/bls"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
)

var initOnce sync.Once
var initErr error

// initHerumi brings up the herumi library's global curve state exactly
// once, matching its own one-time bls.Init contract.
func initHerumi() error {
	initOnce.Do(func() {
		if err := bls.Init(bls.BLS12_381); err != nil {
			initErr = errors.Wrap(err, "bls: curve init failed")
			return
		}
		initErr = bls.SetETHmode(bls.EthModeDraft07)
	})
	return initErr
}

// Herumi verifies real BLS12-381 signatures via the herumi/bls-eth-go-binary
// backend, the production Verifier.
type Herumi struct{}

// NewHerumi initializes the curve backend and returns a ready Verifier.
func NewHerumi() (*Herumi, error) {
	if err := initHerumi(); err != nil {
		return nil, err
	}
	return &Herumi{}, nil
}

func signedMessage(messageRoot [32]byte, domain primitives.Domain) []byte {
	return append(messageRoot[:], domain[:]...)
}

// Verify reports whether signature is a valid BLS signature of messageRoot
// by pubkey under domain.
func (Herumi) Verify(pubkey primitives.Pubkey, messageRoot [32]byte, signature primitives.Signature, domain primitives.Domain) bool {
	var pub bls.PublicKey
	if err := pub.Deserialize(pubkey[:]); err != nil {
		return false
	}
	var sig bls.Sign
	if err := sig.Deserialize(signature[:]); err != nil {
		return false
	}
	return sig.VerifyByte(&pub, signedMessage(messageRoot, domain))
}

// AggregatePubkeys combines pubkeys into a single aggregate public key.
func (Herumi) AggregatePubkeys(pubkeys []primitives.Pubkey) (primitives.Pubkey, bool) {
	if len(pubkeys) == 0 {
		return primitives.Pubkey{}, false
	}
	agg := bls.PublicKey{}
	for i, raw := range pubkeys {
		var pub bls.PublicKey
		if err := pub.Deserialize(raw[:]); err != nil {
			return primitives.Pubkey{}, false
		}
		if i == 0 {
			agg = pub
			continue
		}
		agg.Add(&pub)
	}
	var out primitives.Pubkey
	copy(out[:], agg.Serialize())
	return out, true
}

// VerifyAggregate reports whether signature is a valid aggregate BLS
// signature of messageRoots (one per pubkey) under domain.
func (h Herumi) VerifyAggregate(pubkeys []primitives.Pubkey, messageRoots [][32]byte, signature primitives.Signature, domain primitives.Domain) bool {
	if len(pubkeys) == 0 || len(pubkeys) != len(messageRoots) {
		return false
	}
	var sig bls.Sign
	if err := sig.Deserialize(signature[:]); err != nil {
		return false
	}
	pubs := make([]bls.PublicKey, len(pubkeys))
	msgs := make([][]byte, len(pubkeys))
	for i, raw := range pubkeys {
		if err := pubs[i].Deserialize(raw[:]); err != nil {
			return false
		}
		msgs[i] = signedMessage(messageRoots[i], domain)
	}
	return sig.AggregateVerifyNoCheck(pubs, msgs)
}
