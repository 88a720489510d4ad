package blocks

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/bls"
	coreerrors "github.com/prysmaticlabs/prysm-core/beacon-chain/core/errors"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/mutators"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// ProcessVoluntaryExits verifies and applies every voluntary exit in body,
// in order.
func ProcessVoluntaryExits(state *types.BeaconState, body *types.BeaconBlockBody, verifier bls.Verifier, verifySignatures bool) error {
	for _, signed := range body.VoluntaryExits {
		if err := verifyVoluntaryExit(state, signed, verifier, verifySignatures); err != nil {
			return err
		}
		mutators.InitiateValidatorExit(state, signed.Exit.ValidatorIndex)
	}
	return nil
}

// verifyVoluntaryExit checks spec section 4.6's voluntary exit conditions:
// the validator is active, has not already initiated an exit, the chain has
// reached the declared epoch, the validator has been active long enough,
// and (when requested) the signature verifies under DOMAIN_VOLUNTARY_EXIT
// at the declared epoch's fork version.
//
//	def process_voluntary_exit(state, signed_voluntary_exit):
//	    voluntary_exit = signed_voluntary_exit.message
//	    validator = state.validators[voluntary_exit.validator_index]
//	    assert is_active_validator(validator, get_current_epoch(state))
//	    assert validator.exit_epoch == FAR_FUTURE_EPOCH
//	    assert get_current_epoch(state) >= voluntary_exit.epoch
//	    assert get_current_epoch(state) >= validator.activation_epoch + PERSISTENT_COMMITTEE_PERIOD
//	    domain = get_domain(state, DOMAIN_VOLUNTARY_EXIT, voluntary_exit.epoch)
//	    assert bls_verify(validator.pubkey, hash_tree_root(voluntary_exit), signed_voluntary_exit.signature, domain)
func verifyVoluntaryExit(state *types.BeaconState, signed *types.SignedVoluntaryExit, verifier bls.Verifier, verifySignatures bool) error {
	exit := signed.Exit
	if uint64(exit.ValidatorIndex) >= uint64(len(state.Validators)) {
		return coreerrors.New(coreerrors.IndexOutOfRange, "voluntary exit: validator index out of range")
	}
	validator := state.Validators[exit.ValidatorIndex]
	currentEpoch := helpers.CurrentEpoch(state)
	cfg := params.BeaconConfig()

	if !validator.IsActive(currentEpoch) {
		return coreerrors.New(coreerrors.VoluntaryExitAlreadyExited, "validator is not active")
	}
	if validator.ExitEpoch != cfg.FarFutureEpoch {
		return coreerrors.New(coreerrors.VoluntaryExitAlreadyInitiated, "validator has already initiated an exit")
	}
	if currentEpoch < exit.Epoch {
		return coreerrors.New(coreerrors.VoluntaryExitNotYetValid, "exit epoch has not yet arrived")
	}
	minActiveEpoch := validator.ActivationEpoch + primitives.Epoch(cfg.PersistentCommitteePeriod)
	if currentEpoch < minActiveEpoch {
		return coreerrors.New(coreerrors.VoluntaryExitNotLongEnough, "validator has not been active long enough")
	}

	if verifySignatures {
		domain := helpers.Domain(state, cfg.DomainVoluntaryExit, exit.Epoch)
		signingRoot, err := exit.HashTreeRoot()
		if err != nil {
			return err
		}
		if !verifier.Verify(validator.Pubkey, signingRoot, signed.Signature, domain) {
			return coreerrors.New(coreerrors.VoluntaryExitInvalidSignature, "invalid voluntary exit signature")
		}
	}
	return nil
}
