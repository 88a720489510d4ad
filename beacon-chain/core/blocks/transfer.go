package blocks

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/bls"
	coreerrors "github.com/prysmaticlabs/prysm-core/beacon-chain/core/errors"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/mutators"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
	"github.com/prysmaticlabs/prysm-core/shared/hashutil"
)

// blsWithdrawalPrefix marks withdrawal credentials derived from a BLS
// pubkey rather than an external eth1 address, the only prefix a Transfer's
// own signature can authorize.
const blsWithdrawalPrefix = 0x00

// ProcessTransfers verifies and applies every transfer in body, in order.
func ProcessTransfers(state *types.BeaconState, body *types.BeaconBlockBody, verifier bls.Verifier, verifySignatures bool) error {
	for _, transfer := range body.Transfers {
		if err := verifyTransfer(state, transfer, verifier, verifySignatures); err != nil {
			return err
		}
		if err := applyTransfer(state, transfer); err != nil {
			return err
		}
	}
	return nil
}

// verifyTransfer checks spec section 4.6's transfer conditions: sender
// funds cover amount+fee, the transfer is scheduled for the current slot,
// the post-transfer sender balance stays clear of the dust/bonding floor
// unless the sender is not yet eligible for activation or is withdrawable,
// withdrawal credentials match the claimed pubkey, and (when requested) the
// signature verifies under DOMAIN_TRANSFER.
//
//	def process_transfer(state, transfer):
//	    assert state.balances[transfer.sender] >= max(transfer.amount + transfer.fee, transfer.amount, transfer.fee)
//	    assert state.slot == transfer.slot
//	    assert (state.validators[transfer.sender].activation_eligibility_epoch == FAR_FUTURE_EPOCH
//	            or get_current_epoch(state) >= state.validators[transfer.sender].withdrawable_epoch
//	            or transfer.amount + transfer.fee + MAX_EFFECTIVE_BALANCE <= state.balances[transfer.sender])
//	    assert (state.validators[transfer.sender].withdrawal_credentials ==
//	            BLS_WITHDRAWAL_PREFIX + hash(transfer.pubkey)[1:])
//	    domain = get_domain(state, DOMAIN_TRANSFER, get_current_epoch(state))
//	    assert bls_verify(transfer.pubkey, signing_root(transfer), transfer.signature, domain)
func verifyTransfer(state *types.BeaconState, transfer *types.Transfer, verifier bls.Verifier, verifySignatures bool) error {
	if uint64(transfer.Sender) >= uint64(len(state.Validators)) || uint64(transfer.Recipient) >= uint64(len(state.Validators)) {
		return coreerrors.New(coreerrors.IndexOutOfRange, "transfer: sender or recipient index out of range")
	}

	senderBalance := state.Balances[transfer.Sender]
	required := uint64(transfer.Amount) + uint64(transfer.Fee)
	if required < uint64(transfer.Amount) || senderBalance < required {
		return coreerrors.New(coreerrors.TransferNoFund, "sender balance does not cover amount plus fee")
	}

	if state.Slot != transfer.Slot {
		return coreerrors.New(coreerrors.TransferNotValidSlot, "transfer is not scheduled for the current slot")
	}

	sender := state.Validators[transfer.Sender]
	currentEpoch := helpers.CurrentEpoch(state)
	cfg := params.BeaconConfig()
	staysAboveFloor := required+cfg.MaxEffectiveBalance <= senderBalance
	neverQueuedForActivation := sender.ActivationEligibilityEpoch == cfg.FarFutureEpoch
	if !neverQueuedForActivation && currentEpoch < sender.WithdrawableEpoch && !staysAboveFloor {
		return coreerrors.New(coreerrors.TransferNotWithdrawable, "sender is not yet eligible to transfer out of its full balance")
	}

	pubkeyHash := hashutil.Hash(transfer.Pubkey[:])
	var wantCredentials primitives.Root
	wantCredentials[0] = blsWithdrawalPrefix
	copy(wantCredentials[1:], pubkeyHash[1:])
	if sender.WithdrawalCredentials != wantCredentials {
		return coreerrors.New(coreerrors.TransferInvalidPublicKey, "withdrawal credentials do not match transfer pubkey")
	}

	if verifySignatures {
		domain := helpers.Domain(state, cfg.DomainTransfer, currentEpoch)
		signingRoot, err := transfer.SigningRoot()
		if err != nil {
			return err
		}
		if !verifier.Verify(transfer.Pubkey, signingRoot, transfer.Signature, domain) {
			return coreerrors.New(coreerrors.TransferInvalidSignature, "invalid transfer signature")
		}
	}

	// Dust check: any non-zero final balance must clear MIN_DEPOSIT_AMOUNT.
	senderFinal := senderBalance - required
	recipientFinal := state.Balances[transfer.Recipient] + uint64(transfer.Amount)
	if senderFinal != 0 && senderFinal < cfg.MinDepositAmount {
		return coreerrors.New(coreerrors.TransferNoFund, "sender dust balance below minimum deposit amount")
	}
	if recipientFinal != 0 && recipientFinal < cfg.MinDepositAmount {
		return coreerrors.New(coreerrors.TransferNoFund, "recipient dust balance below minimum deposit amount")
	}
	return nil
}

// applyTransfer moves the balance and pays the proposer fee once
// verifyTransfer has accepted the operation.
func applyTransfer(state *types.BeaconState, transfer *types.Transfer) error {
	mutators.DecreaseBalance(state, transfer.Sender, transfer.Amount+transfer.Fee)
	mutators.IncreaseBalance(state, transfer.Recipient, transfer.Amount)
	proposerIndex, err := helpers.BeaconProposerIndex(state)
	if err != nil {
		return err
	}
	mutators.IncreaseBalance(state, proposerIndex, transfer.Fee)
	return nil
}
