package blocks_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/blocks"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/bls"
	coreerrors "github.com/prysmaticlabs/prysm-core/beacon-chain/core/errors"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
	"github.com/prysmaticlabs/prysm-core/shared/hashutil"
)

func withdrawalCredentialsFor(pubkey primitives.Pubkey) primitives.Root {
	h := hashutil.Hash(pubkey[:])
	var creds primitives.Root
	creds[0] = 0x00
	copy(creds[1:], h[1:])
	return creds
}

func TestProcessTransfers_OK(t *testing.T) {
	st := newTestGenesis(t, 4)
	cfg := params.BeaconConfig()
	sender := st.Validators[0]
	sender.WithdrawalCredentials = withdrawalCredentialsFor(sender.Pubkey)
	sender.ActivationEligibilityEpoch = 0
	st.Balances[0] = cfg.MaxEffectiveBalance + cfg.MinDepositAmount*2

	recipientBalanceBefore := st.Balances[1]
	proposerIdx, err := helpers.BeaconProposerIndex(st)
	require.NoError(t, err)
	proposerBalanceBefore := st.Balances[proposerIdx]

	transfer := &types.Transfer{
		Sender:    0,
		Recipient: 1,
		Amount:    primitives.Gwei(cfg.MinDepositAmount),
		Fee:       primitives.Gwei(cfg.MinDepositAmount / 10),
		Slot:      st.Slot,
		Pubkey:    sender.Pubkey,
	}
	body := &types.BeaconBlockBody{Transfers: []*types.Transfer{transfer}}
	require.NoError(t, blocks.ProcessTransfers(st, body, bls.NoVerify{}, true))

	require.Equal(t, recipientBalanceBefore+uint64(transfer.Amount), st.Balances[1])
	if proposerIdx != 0 && proposerIdx != 1 {
		require.Equal(t, proposerBalanceBefore+uint64(transfer.Fee), st.Balances[proposerIdx])
	}
}

func TestProcessTransfers_InsufficientFunds(t *testing.T) {
	st := newTestGenesis(t, 4)
	cfg := params.BeaconConfig()
	sender := st.Validators[0]
	sender.WithdrawalCredentials = withdrawalCredentialsFor(sender.Pubkey)
	st.Balances[0] = 10

	transfer := &types.Transfer{
		Sender:    0,
		Recipient: 1,
		Amount:    primitives.Gwei(cfg.MinDepositAmount),
		Fee:       0,
		Slot:      st.Slot,
		Pubkey:    sender.Pubkey,
	}
	body := &types.BeaconBlockBody{Transfers: []*types.Transfer{transfer}}
	err := blocks.ProcessTransfers(st, body, bls.NoVerify{}, true)
	require.Error(t, err)
	coreErr, ok := err.(*coreerrors.Error)
	require.True(t, ok)
	require.Equal(t, coreerrors.TransferNoFund, coreErr.Kind)
}

// An activated validator (ActivationEligibilityEpoch already set, not
// FAR_FUTURE_EPOCH) that is not yet withdrawable must not drop its balance
// below the MAX_EFFECTIVE_BALANCE floor via a transfer.
func TestProcessTransfers_BelowFloorRejectedForActivatedSender(t *testing.T) {
	st := newTestGenesis(t, 4)
	cfg := params.BeaconConfig()
	sender := st.Validators[0]
	sender.WithdrawalCredentials = withdrawalCredentialsFor(sender.Pubkey)
	require.NotEqual(t, cfg.FarFutureEpoch, sender.ActivationEligibilityEpoch)
	require.Equal(t, cfg.FarFutureEpoch, sender.WithdrawableEpoch)
	st.Balances[0] = cfg.MaxEffectiveBalance

	transfer := &types.Transfer{
		Sender:    0,
		Recipient: 1,
		Amount:    primitives.Gwei(cfg.MinDepositAmount),
		Fee:       0,
		Slot:      st.Slot,
		Pubkey:    sender.Pubkey,
	}
	body := &types.BeaconBlockBody{Transfers: []*types.Transfer{transfer}}
	err := blocks.ProcessTransfers(st, body, bls.NoVerify{}, true)
	require.Error(t, err)
	coreErr, ok := err.(*coreerrors.Error)
	require.True(t, ok)
	require.Equal(t, coreerrors.TransferNotWithdrawable, coreErr.Kind)
}

func TestProcessTransfers_WrongSlot(t *testing.T) {
	st := newTestGenesis(t, 4)
	cfg := params.BeaconConfig()
	sender := st.Validators[0]
	sender.WithdrawalCredentials = withdrawalCredentialsFor(sender.Pubkey)
	st.Balances[0] = cfg.MaxEffectiveBalance

	transfer := &types.Transfer{
		Sender:    0,
		Recipient: 1,
		Amount:    primitives.Gwei(cfg.MinDepositAmount),
		Fee:       0,
		Slot:      st.Slot + 1,
		Pubkey:    sender.Pubkey,
	}
	body := &types.BeaconBlockBody{Transfers: []*types.Transfer{transfer}}
	err := blocks.ProcessTransfers(st, body, bls.NoVerify{}, true)
	require.Error(t, err)
	coreErr, ok := err.(*coreerrors.Error)
	require.True(t, ok)
	require.Equal(t, coreerrors.TransferNotValidSlot, coreErr.Kind)
}
