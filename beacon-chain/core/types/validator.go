package types

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/ssz"
)

// Validator is a single registry entry. Field order fixes the SSZ container
// layout and therefore the tree-hash.
type Validator struct {
	Pubkey                     primitives.Pubkey
	WithdrawalCredentials      primitives.Root
	EffectiveBalance           primitives.Gwei
	Slashed                    bool
	ActivationEligibilityEpoch primitives.Epoch
	ActivationEpoch            primitives.Epoch
	ExitEpoch                  primitives.Epoch
	WithdrawableEpoch          primitives.Epoch
}

// Validate enforces the spec section 3 invariants: monotonic epoch fields,
// and an effective balance that is both bounded and an increment multiple.
func (v *Validator) Validate() error {
	if v.ActivationEligibilityEpoch > v.ActivationEpoch ||
		v.ActivationEpoch > v.ExitEpoch ||
		v.ExitEpoch > v.WithdrawableEpoch {
		return errValidatorEpochOrder
	}
	cfg := params.BeaconConfig()
	if uint64(v.EffectiveBalance) > cfg.MaxEffectiveBalance ||
		uint64(v.EffectiveBalance)%cfg.EffectiveBalanceIncrement != 0 {
		return errEffectiveBalanceBounds
	}
	return nil
}

// Copy returns a deep copy (Validator has no slice fields, so a value copy
// suffices; kept as a method for call-site parity with Checkpoint.Copy).
func (v *Validator) Copy() *Validator {
	if v == nil {
		return nil
	}
	cp := *v
	return &cp
}

// IsActive reports whether the validator is active at the given epoch.
func (v *Validator) IsActive(epoch primitives.Epoch) bool {
	return v.ActivationEpoch <= epoch && epoch < v.ExitEpoch
}

// IsSlashable reports whether the validator can still be slashed at epoch:
// not already slashed, and activated but not yet past its withdrawable epoch.
func (v *Validator) IsSlashable(epoch primitives.Epoch) bool {
	return !v.Slashed && v.ActivationEpoch <= epoch && epoch < v.WithdrawableEpoch
}

// IsEligibleForActivationQueue reports whether the validator should be
// queued for activation: not yet marked eligible, and already bonded to the
// maximum effective balance.
func (v *Validator) IsEligibleForActivationQueue() bool {
	cfg := params.BeaconConfig()
	return v.ActivationEligibilityEpoch == cfg.FarFutureEpoch &&
		uint64(v.EffectiveBalance) == cfg.MaxEffectiveBalance
}

// SizeSSZ is the fixed container size: 48 + 32 + 8 + 1 + 8*4 = 121 bytes.
func (v *Validator) SizeSSZ() int {
	return 121
}

// MarshalSSZ returns the SSZ encoding.
func (v *Validator) MarshalSSZ() ([]byte, error) {
	return v.MarshalSSZTo(make([]byte, 0, v.SizeSSZ()))
}

// MarshalSSZTo appends the SSZ encoding to dst.
func (v *Validator) MarshalSSZTo(dst []byte) ([]byte, error) {
	dst = append(dst, v.Pubkey[:]...)
	dst = append(dst, v.WithdrawalCredentials[:]...)
	dst = ssz.MarshalUint64(dst, uint64(v.EffectiveBalance))
	if v.Slashed {
		dst = append(dst, 1)
	} else {
		dst = append(dst, 0)
	}
	dst = ssz.MarshalUint64(dst, uint64(v.ActivationEligibilityEpoch))
	dst = ssz.MarshalUint64(dst, uint64(v.ActivationEpoch))
	dst = ssz.MarshalUint64(dst, uint64(v.ExitEpoch))
	dst = ssz.MarshalUint64(dst, uint64(v.WithdrawableEpoch))
	return dst, nil
}

// UnmarshalSSZ decodes buf into v.
func (v *Validator) UnmarshalSSZ(buf []byte) error {
	if len(buf) != 121 {
		return ssz.ErrSize
	}
	copy(v.Pubkey[:], buf[0:48])
	copy(v.WithdrawalCredentials[:], buf[48:80])
	v.EffectiveBalance = primitives.Gwei(ssz.UnmarshalUint64(buf[80:88]))
	v.Slashed = buf[88] == 1
	v.ActivationEligibilityEpoch = primitives.Epoch(ssz.UnmarshalUint64(buf[89:97]))
	v.ActivationEpoch = primitives.Epoch(ssz.UnmarshalUint64(buf[97:105]))
	v.ExitEpoch = primitives.Epoch(ssz.UnmarshalUint64(buf[105:113]))
	v.WithdrawableEpoch = primitives.Epoch(ssz.UnmarshalUint64(buf[113:121]))
	return nil
}

// HashTreeRoot returns the container's tree-hash root: eight fields, each
// contributing one chunk (the 48-byte pubkey is merkleized to its own root
// first, the withdrawal credentials fill one chunk, basic fields each take a
// single padded chunk).
func (v *Validator) HashTreeRoot() ([32]byte, error) {
	h := ssz.NewHasher()
	h.AppendRoot(ssz.MerkleizeBytesToRoot(v.Pubkey[:]))
	h.AppendRoot(v.WithdrawalCredentials)
	h.AppendUint64(uint64(v.EffectiveBalance))
	if v.Slashed {
		h.AppendBytes32([]byte{1})
	} else {
		h.AppendBytes32([]byte{0})
	}
	h.AppendUint64(uint64(v.ActivationEligibilityEpoch))
	h.AppendUint64(uint64(v.ActivationEpoch))
	h.AppendUint64(uint64(v.ExitEpoch))
	h.AppendUint64(uint64(v.WithdrawableEpoch))
	return h.Merkleize(0), nil
}
