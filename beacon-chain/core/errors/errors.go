// Package errors defines the single tagged error type every fallible core
// operation returns (spec section 7). Wrapped with github.com/pkg/errors so
// call sites can attach context with Wrap/Wrapf while Kind stays inspectable
// via errors.As, the same pattern the teacher's core/helpers package uses
// for its own wrapped errors.
package errors

import (
	"fmt"
)

// Kind tags the specific failure a core operation hit.
type Kind int

// Kinds, grouped per spec section 7.
const (
	SlotOutOfRange Kind = iota
	EpochOutOfRange
	IndexOutOfRange
	CountTooLarge
	ShardOutOfBounds
	NoCommittee

	BlockSlotInvalid
	BlockPreviousRootInvalid
	BlockProposerSlashed
	BlockSignatureInvalid
	BlockStateRootInvalid
	RandaoSignatureInvalid
	InvalidEth1Data

	TooManyProposerSlashings
	TooManyAttesterSlashings
	TooManyAttestations
	TooManyDeposits
	TooManyVoluntaryExits
	TooManyTransfers

	ProposerSlashingInvalidProposerIndex
	ProposerSlashingInvalidSlot
	ProposerSlashingSameHeader
	ProposerSlashingAlreadySlashed
	ProposerSlashingInvalidSignature

	AttesterSlashingSameAttestation
	AttesterSlashingNotSlashable
	AttesterSlashingInvalid
	AttesterSlashingEmptyIndices

	AttestationTooFarInHistory
	AttestationSubmittedTooQuickly
	AttestationIncorrectJustifiedEpochOrBlockRoot
	AttestationIncorrectCrosslinkData
	AttestationEmptyAggregation
	AttestationEmptyCustody
	AttestationInvalidData
	AttestationInvalidShard
	AttestationInvalidCustody
	AttestationInvalidSignature
	AttestationInvalidCrosslink
	AttestationBitFieldInvalid

	DepositIndexMismatch
	DepositMerkleInvalid
	DepositProofInvalid
	DepositWithdrawalCredentialsMismatch

	VoluntaryExitAlreadyExited
	VoluntaryExitAlreadyInitiated
	VoluntaryExitNotYetValid
	VoluntaryExitNotLongEnough
	VoluntaryExitInvalidSignature

	TransferNoFund
	TransferNotValidSlot
	TransferNotWithdrawable
	TransferInvalidPublicKey
	TransferInvalidSignature

	DuplicateIndexes
	ValidatorNotWithdrawable
	ValidatorAttestationNotFound

	NoActiveValidators
	InvalidCheckpoint
	WeakSubjectivityMismatch
)

var kindNames = map[Kind]string{
	SlotOutOfRange:    "slot out of range",
	EpochOutOfRange:   "epoch out of range",
	IndexOutOfRange:   "index out of range",
	CountTooLarge:     "count too large",
	ShardOutOfBounds:  "shard out of bounds",
	NoCommittee:       "no committee",

	BlockSlotInvalid:         "block slot invalid",
	BlockPreviousRootInvalid: "block previous root invalid",
	BlockProposerSlashed:     "block proposer is slashed",
	BlockSignatureInvalid:    "block signature invalid",
	BlockStateRootInvalid:    "block state root invalid",
	RandaoSignatureInvalid:   "randao signature invalid",
	InvalidEth1Data:          "invalid eth1 data",

	TooManyProposerSlashings: "too many proposer slashings",
	TooManyAttesterSlashings: "too many attester slashings",
	TooManyAttestations:      "too many attestations",
	TooManyDeposits:          "too many deposits",
	TooManyVoluntaryExits:    "too many voluntary exits",
	TooManyTransfers:         "too many transfers",

	ProposerSlashingInvalidProposerIndex: "proposer slashing: invalid proposer index",
	ProposerSlashingInvalidSlot:          "proposer slashing: invalid slot",
	ProposerSlashingSameHeader:           "proposer slashing: same header",
	ProposerSlashingAlreadySlashed:       "proposer slashing: already slashed",
	ProposerSlashingInvalidSignature:     "proposer slashing: invalid signature",

	AttesterSlashingSameAttestation: "attester slashing: same attestation",
	AttesterSlashingNotSlashable:    "attester slashing: not slashable",
	AttesterSlashingInvalid:         "attester slashing: invalid indexed attestation",
	AttesterSlashingEmptyIndices:    "attester slashing: empty indices",

	AttestationTooFarInHistory:                     "attestation: too far in history",
	AttestationSubmittedTooQuickly:                 "attestation: submitted too quickly",
	AttestationIncorrectJustifiedEpochOrBlockRoot:   "attestation: incorrect justified epoch or block root",
	AttestationIncorrectCrosslinkData:               "attestation: incorrect crosslink data",
	AttestationEmptyAggregation:                     "attestation: empty aggregation bits",
	AttestationEmptyCustody:                         "attestation: empty custody bits",
	AttestationInvalidData:                          "attestation: invalid data",
	AttestationInvalidShard:                         "attestation: invalid shard",
	AttestationInvalidCustody:                       "attestation: invalid custody bits",
	AttestationInvalidSignature:                     "attestation: invalid signature",
	AttestationInvalidCrosslink:                     "attestation: invalid crosslink",
	AttestationBitFieldInvalid:                      "attestation: invalid bitfield length",

	DepositIndexMismatch:                 "deposit: index mismatch",
	DepositMerkleInvalid:                 "deposit: invalid merkle branch",
	DepositProofInvalid:                  "deposit: invalid proof-of-possession signature",
	DepositWithdrawalCredentialsMismatch: "deposit: withdrawal credentials mismatch",

	VoluntaryExitAlreadyExited:    "voluntary exit: validator already exited",
	VoluntaryExitAlreadyInitiated: "voluntary exit: exit already initiated",
	VoluntaryExitNotYetValid:      "voluntary exit: not yet valid",
	VoluntaryExitNotLongEnough:    "voluntary exit: validator not active long enough",
	VoluntaryExitInvalidSignature: "voluntary exit: invalid signature",

	TransferNoFund:           "transfer: insufficient funds",
	TransferNotValidSlot:     "transfer: not valid at this slot",
	TransferNotWithdrawable:  "transfer: sender not withdrawable",
	TransferInvalidPublicKey: "transfer: invalid public key",
	TransferInvalidSignature: "transfer: invalid signature",

	DuplicateIndexes:             "duplicate validator indexes",
	ValidatorNotWithdrawable:     "validator not withdrawable",
	ValidatorAttestationNotFound: "validator attestation not found",

	NoActiveValidators:       "no active validators",
	InvalidCheckpoint:        "invalid checkpoint",
	WeakSubjectivityMismatch: "weak subjectivity checkpoint mismatch",
}

// Error is the single tagged error type returned from every fallible core
// operation.
type Error struct {
	Kind Kind
	msg  string
	wrap error
}

// New creates an Error of the given kind with no wrapped cause.
func New(kind Kind, context string) *Error {
	return &Error{Kind: kind, msg: context}
}

// Wrap attaches additional context to err under the given kind, keeping err
// as the cause, the pattern used throughout the teacher's core/helpers
// (errors.Wrap(err, ...)).
func Wrap(kind Kind, err error, context string) *Error {
	return &Error{Kind: kind, msg: context, wrap: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	name := kindNames[e.Kind]
	if e.wrap != nil {
		return fmt.Sprintf("%s: %s: %v", name, e.msg, e.wrap)
	}
	if e.msg != "" {
		return fmt.Sprintf("%s: %s", name, e.msg)
	}
	return name
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.wrap
}

// Is reports whether err is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// Wrapf formats a message with args and wraps err under the given Kind.
func Wrapf(kind Kind, err error, format string, args ...interface{}) *Error {
	return Wrap(kind, err, fmt.Sprintf(format, args...))
}
