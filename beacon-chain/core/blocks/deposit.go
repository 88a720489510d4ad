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

// ProcessDeposits verifies and applies every deposit in body, in order.
func ProcessDeposits(state *types.BeaconState, body *types.BeaconBlockBody, verifier bls.Verifier, verifySignatures bool) error {
	for _, dep := range body.Deposits {
		if err := ProcessDeposit(state, dep, verifier, verifySignatures); err != nil {
			return err
		}
	}
	return nil
}

// ProcessDeposit verifies dep's Merkle branch against the running eth1
// deposit root, advances the deposit index, and either tops up an existing
// validator's balance or registers a new one.
//
//	def process_deposit(state, deposit):
//	    assert is_valid_merkle_branch(
//	        leaf=hash_tree_root(deposit.data), branch=deposit.proof,
//	        depth=DEPOSIT_CONTRACT_TREE_DEPTH + 1, index=state.eth1_deposit_index,
//	        root=state.eth1_data.deposit_root)
//	    state.eth1_deposit_index += 1
//	    pubkey, amount = deposit.data.pubkey, deposit.data.amount
//	    validator_pubkeys = [v.pubkey for v in state.validators]
//	    if pubkey not in validator_pubkeys:
//	        domain = compute_domain(DOMAIN_DEPOSIT)  # fork-version zero
//	        if not bls_verify(pubkey, signing_root(deposit.data), deposit.data.signature, domain):
//	            return
//	        state.validators.append(Validator(
//	            pubkey=pubkey, withdrawal_credentials=deposit.data.withdrawal_credentials,
//	            activation_eligibility_epoch=FAR_FUTURE_EPOCH, activation_epoch=FAR_FUTURE_EPOCH,
//	            exit_epoch=FAR_FUTURE_EPOCH, withdrawable_epoch=FAR_FUTURE_EPOCH,
//	            effective_balance=min(amount - amount % EFFECTIVE_BALANCE_INCREMENT, MAX_EFFECTIVE_BALANCE)))
//	        state.balances.append(amount)
//	    else:
//	        index = validator_pubkeys.index(pubkey)
//	        increase_balance(state, index, amount)
func ProcessDeposit(state *types.BeaconState, dep *types.Deposit, verifier bls.Verifier, verifySignatures bool) error {
	cfg := params.BeaconConfig()

	ok, err := dep.VerifyMerkleBranch(state.Eth1Data.DepositRoot, state.Eth1DepositIndex, cfg.DepositContractTreeDepth+1)
	if err != nil {
		return err
	}
	if !ok {
		return coreerrors.New(coreerrors.DepositMerkleInvalid, "deposit merkle branch does not verify against eth1 deposit root")
	}
	state.Eth1DepositIndex++

	data := dep.Data
	existing := -1
	for i, v := range state.Validators {
		if v.Pubkey == data.Pubkey {
			existing = i
			break
		}
	}

	if existing >= 0 {
		mutators.IncreaseBalance(state, primitives.ValidatorIndex(existing), data.Amount)
		return nil
	}

	if verifySignatures {
		domain := helpers.ComputeDomain(cfg.DomainDeposit, primitives.ForkVersion{0, 0, 0, 0})
		signingRoot, err := data.SigningRoot()
		if err != nil {
			return err
		}
		if !verifier.Verify(data.Pubkey, signingRoot, data.Signature, domain) {
			// A proof-of-possession failure is silently ignored beyond the
			// index bump already applied above; this matches observable
			// behaviour in the reference implementation (spec section 9).
			return nil
		}
	}

	effective := uint64(data.Amount) - uint64(data.Amount)%cfg.EffectiveBalanceIncrement
	if effective > cfg.MaxEffectiveBalance {
		effective = cfg.MaxEffectiveBalance
	}
	state.Validators = append(state.Validators, &types.Validator{
		Pubkey:                     data.Pubkey,
		WithdrawalCredentials:      data.WithdrawalCredentials,
		EffectiveBalance:           primitives.Gwei(effective),
		ActivationEligibilityEpoch: cfg.FarFutureEpoch,
		ActivationEpoch:            cfg.FarFutureEpoch,
		ExitEpoch:                  cfg.FarFutureEpoch,
		WithdrawableEpoch:          cfg.FarFutureEpoch,
	})
	state.Balances = append(state.Balances, uint64(data.Amount))
	return nil
}
