package blocks

import (
	"github.com/pkg/errors"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/bls"
	coreerrors "github.com/prysmaticlabs/prysm-core/beacon-chain/core/errors"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// ProcessBlock runs spec section 4.6's per-block transition against state,
// which must already be advanced to signed.Block.Slot (the caller's
// responsibility, mirroring process_slots being a distinct public step).
// The six operation lists are processed in the mandatory order: proposer
// slashings, attester slashings, attestations, deposits, voluntary exits,
// transfers.
func ProcessBlock(state *types.BeaconState, signed *types.SignedBeaconBlock, verifier bls.Verifier, verifySignatures bool) error {
	if err := ProcessBlockHeader(state, signed, verifier, verifySignatures); err != nil {
		return errors.Wrap(err, "could not process block header")
	}
	body := signed.Block.Body
	if err := ProcessRandao(state, body, verifier, verifySignatures, true); err != nil {
		return errors.Wrap(err, "could not process randao")
	}
	if err := ProcessEth1DataInBlock(state, signed.Block); err != nil {
		return errors.Wrap(err, "could not process eth1 data")
	}
	if err := verifyOperationCounts(state, body); err != nil {
		return err
	}
	if err := ProcessProposerSlashings(state, body, verifier, verifySignatures); err != nil {
		return errors.Wrap(err, "could not process proposer slashings")
	}
	if err := ProcessAttesterSlashings(state, body, verifier, verifySignatures); err != nil {
		return errors.Wrap(err, "could not process attester slashings")
	}
	if err := ProcessAttestations(state, body, verifier, verifySignatures); err != nil {
		return errors.Wrap(err, "could not process attestations")
	}
	if err := ProcessDeposits(state, body, verifier, verifySignatures); err != nil {
		return errors.Wrap(err, "could not process deposits")
	}
	if err := ProcessVoluntaryExits(state, body, verifier, verifySignatures); err != nil {
		return errors.Wrap(err, "could not process voluntary exits")
	}
	if err := ProcessTransfers(state, body, verifier, verifySignatures); err != nil {
		return errors.Wrap(err, "could not process transfers")
	}
	return nil
}

// verifyOperationCounts enforces each operation list's configured maximum,
// plus the deposit-count equality spec section 4.6 step 5 requires: the
// number of deposits in the body must equal
// min(MAX_DEPOSITS, eth1_data.deposit_count - eth1_deposit_index).
func verifyOperationCounts(state *types.BeaconState, body *types.BeaconBlockBody) error {
	cfg := params.BeaconConfig()
	if uint64(len(body.ProposerSlashings)) > cfg.MaxProposerSlashings {
		return coreerrors.New(coreerrors.TooManyProposerSlashings, "too many proposer slashings in block body")
	}
	if uint64(len(body.AttesterSlashings)) > cfg.MaxAttesterSlashings {
		return coreerrors.New(coreerrors.TooManyAttesterSlashings, "too many attester slashings in block body")
	}
	if uint64(len(body.Attestations)) > cfg.MaxAttestations {
		return coreerrors.New(coreerrors.TooManyAttestations, "too many attestations in block body")
	}
	remainingDeposits := uint64(0)
	if state.Eth1Data.DepositCount > state.Eth1DepositIndex {
		remainingDeposits = state.Eth1Data.DepositCount - state.Eth1DepositIndex
	}
	wantDeposits := remainingDeposits
	if wantDeposits > cfg.MaxDeposits {
		wantDeposits = cfg.MaxDeposits
	}
	if uint64(len(body.Deposits)) != wantDeposits {
		return coreerrors.New(coreerrors.TooManyDeposits, "deposit count does not match outstanding eth1 deposits")
	}
	if uint64(len(body.VoluntaryExits)) > cfg.MaxVoluntaryExits {
		return coreerrors.New(coreerrors.TooManyVoluntaryExits, "too many voluntary exits in block body")
	}
	if uint64(len(body.Transfers)) > cfg.MaxTransfers {
		return coreerrors.New(coreerrors.TooManyTransfers, "too many transfers in block body")
	}
	return nil
}
