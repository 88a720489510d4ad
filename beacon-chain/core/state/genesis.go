// Package state implements the top-level state transition the rest of the
// core serves: building a genesis BeaconState and the public
// ExecuteStateTransition / ProcessSlots / ProcessBlock entry points a
// fork-choice store drives (spec section 6).
package state

import (
	"github.com/pkg/errors"
	bitfield "github.com/prysmaticlabs/go-bitfield"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/bls"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/ssz"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// GenesisBeaconState builds the initial BeaconState from the eth1 deposits
// observed before genesis, mirroring the teacher's
// state.GenesisBeaconState(deposits, genesisTime, eth1Data): every vector
// field is allocated to its configured length and zero-filled, deposits are
// applied directly (no Merkle-branch check — they are taken on faith from
// the eth1 genesis snapshot, not from a block body), and any validator
// bonded to the maximum effective balance is activated immediately.
func GenesisBeaconState(deposits []*types.Deposit, genesisTime uint64, eth1Data *types.Eth1Data, verifier bls.Verifier) (*types.BeaconState, error) {
	cfg := params.BeaconConfig()

	emptyBodyRoot, err := (&types.BeaconBlockBody{Eth1Data: &types.Eth1Data{}}).HashTreeRoot()
	if err != nil {
		return nil, errors.Wrap(err, "could not compute empty body root")
	}

	st := &types.BeaconState{
		GenesisTime: genesisTime,
		Slot:        cfg.GenesisSlot,
		Fork: &types.Fork{
			PreviousVersion: cfg.GenesisForkVersion,
			CurrentVersion:  cfg.GenesisForkVersion,
			Epoch:           cfg.GenesisEpoch,
		},
		LatestBlockHeader: &types.BeaconBlockHeader{
			BodyRoot: primitives.Root(emptyBodyRoot),
		},
		BlockRoots:             make([]primitives.Root, cfg.SlotsPerHistoricalRoot),
		StateRoots:             make([]primitives.Root, cfg.SlotsPerHistoricalRoot),
		Eth1Data:               eth1Data,
		RandaoMixes:            make([]primitives.Root, cfg.EpochsPerHistoricalVector),
		ActiveIndexRoots:       make([]primitives.Root, cfg.EpochsPerHistoricalVector),
		CompactCommitteesRoots: make([]primitives.Root, cfg.EpochsPerHistoricalVector),
		Slashings:              make([]uint64, cfg.EpochsPerSlashingsVector),
		PreviousCrosslinks:     make([]*types.Crosslink, cfg.ShardCount),
		CurrentCrosslinks:      make([]*types.Crosslink, cfg.ShardCount),
		JustificationBits:      bitfield.NewBitvector4(),
		PreviousJustifiedCheckpoint: &types.Checkpoint{},
		CurrentJustifiedCheckpoint:  &types.Checkpoint{},
		FinalizedCheckpoint:         &types.Checkpoint{},
	}
	for i := range st.RandaoMixes {
		st.RandaoMixes[i] = eth1Data.BlockHash
	}
	for shard := range st.PreviousCrosslinks {
		st.PreviousCrosslinks[shard] = &types.Crosslink{}
		st.CurrentCrosslinks[shard] = &types.Crosslink{}
	}

	for _, dep := range deposits {
		if err := applyGenesisDeposit(st, dep, verifier); err != nil {
			return nil, errors.Wrap(err, "could not apply genesis deposit")
		}
	}
	st.Eth1DepositIndex = uint64(len(deposits))

	for _, v := range st.Validators {
		if uint64(v.EffectiveBalance) == cfg.MaxEffectiveBalance {
			v.ActivationEligibilityEpoch = cfg.GenesisEpoch
			v.ActivationEpoch = cfg.GenesisEpoch
		}
	}

	activeIndexRoot, err := genesisActiveIndexRoot(st)
	if err != nil {
		return nil, err
	}
	for i := range st.ActiveIndexRoots {
		st.ActiveIndexRoots[i] = activeIndexRoot
	}
	compactRoot, err := helpers.CompactCommitteesRoot(st, cfg.GenesisEpoch)
	if err != nil {
		return nil, errors.Wrap(err, "could not compute genesis compact committees root")
	}
	for i := range st.CompactCommitteesRoots {
		st.CompactCommitteesRoots[i] = primitives.Root(compactRoot)
	}
	return st, nil
}

// applyGenesisDeposit appends or tops up a validator directly from a
// genesis deposit, skipping the Merkle-branch check process_deposit would
// otherwise perform against a running eth1 deposit root.
func applyGenesisDeposit(st *types.BeaconState, dep *types.Deposit, verifier bls.Verifier) error {
	cfg := params.BeaconConfig()
	data := dep.Data

	for i, v := range st.Validators {
		if v.Pubkey == data.Pubkey {
			st.Balances[i] += uint64(data.Amount)
			return nil
		}
	}

	domain := helpers.ComputeDomain(cfg.DomainDeposit, primitives.ForkVersion{0, 0, 0, 0})
	signingRoot, err := data.SigningRoot()
	if err != nil {
		return err
	}
	if !verifier.Verify(data.Pubkey, signingRoot, data.Signature, domain) {
		return nil
	}

	effective := uint64(data.Amount) - uint64(data.Amount)%cfg.EffectiveBalanceIncrement
	if effective > cfg.MaxEffectiveBalance {
		effective = cfg.MaxEffectiveBalance
	}
	st.Validators = append(st.Validators, &types.Validator{
		Pubkey:                     data.Pubkey,
		WithdrawalCredentials:      data.WithdrawalCredentials,
		EffectiveBalance:           primitives.Gwei(effective),
		ActivationEligibilityEpoch: cfg.FarFutureEpoch,
		ActivationEpoch:            cfg.FarFutureEpoch,
		ExitEpoch:                  cfg.FarFutureEpoch,
		WithdrawableEpoch:          cfg.FarFutureEpoch,
	})
	st.Balances = append(st.Balances, uint64(data.Amount))
	return nil
}

// genesisActiveIndexRoot computes the active-index root seeded into every
// slot of ActiveIndexRoots, so Seed() has a well-defined value to read back
// for any lookahead epoch before genesis+EPOCHS_PER_HISTORICAL_VECTOR.
func genesisActiveIndexRoot(st *types.BeaconState) (primitives.Root, error) {
	cfg := params.BeaconConfig()
	active := helpers.ActiveValidatorIndices(st, cfg.GenesisEpoch)
	raw := make([]uint64, len(active))
	for i, idx := range active {
		raw[i] = uint64(idx)
	}
	root := ssz.Uint64ListRoot(raw, cfg.ValidatorRegistryLimit)
	return primitives.Root(root), nil
}
