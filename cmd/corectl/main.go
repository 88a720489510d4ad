// corectl is a thin demo harness over the state transition: it builds a
// synthetic genesis state from a requested validator count, advances it a
// requested number of slots, and prints the resulting state root. It exists
// to exercise package state end to end outside of a test binary, the way
// the teacher's own cmd/ tools are small urfave/cli wrappers around a single
// library call.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/bls"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/state"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

var log = logrus.WithField("prefix", "corectl")

var validatorsFlag = &cli.IntFlag{
	Name:  "validators",
	Usage: "number of synthetic genesis validators to deposit",
	Value: 64,
}

var slotsFlag = &cli.Uint64Flag{
	Name:  "slots",
	Usage: "number of slots to advance past genesis",
	Value: 8,
}

var minimalFlag = &cli.BoolFlag{
	Name:  "minimal-config",
	Usage: "use the minimal (fast-test) preset instead of mainnet",
}

func main() {
	app := &cli.App{
		Name:  "corectl",
		Usage: "build a genesis beacon state and advance it, printing the resulting state root",
		Flags: []cli.Flag{validatorsFlag, slotsFlag, minimalFlag},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Error("corectl run failed")
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.Bool(minimalFlag.Name) {
		params.UseMinimalConfig()
	} else {
		params.UseMainnetConfig()
	}
	cfg := params.BeaconConfig()

	numValidators := c.Int(validatorsFlag.Name)
	deposits := make([]*types.Deposit, numValidators)
	for i := 0; i < numValidators; i++ {
		var pubkey primitives.Pubkey
		pubkey[0] = byte(i)
		pubkey[1] = byte(i >> 8)
		var withdrawalCreds primitives.Root
		withdrawalCreds[0] = 0x00
		deposits[i] = &types.Deposit{
			Data: &types.DepositData{
				Pubkey:                pubkey,
				WithdrawalCredentials: withdrawalCreds,
				Amount:                primitives.Gwei(cfg.MaxEffectiveBalance),
			},
		}
	}

	eth1Data := &types.Eth1Data{DepositCount: uint64(numValidators)}
	genesis, err := state.GenesisBeaconState(deposits, 0, eth1Data, bls.NoVerify{})
	if err != nil {
		return fmt.Errorf("could not build genesis state: %w", err)
	}
	log.WithFields(logrus.Fields{
		"validators": len(genesis.Validators),
		"slot":       uint64(genesis.Slot),
	}).Info("built genesis state")

	targetSlot := genesis.Slot + primitives.Slot(c.Uint64(slotsFlag.Name))
	if err := state.ProcessSlots(context.Background(), genesis, targetSlot); err != nil {
		return fmt.Errorf("could not advance slots: %w", err)
	}

	root, err := genesis.HashTreeRoot()
	if err != nil {
		return fmt.Errorf("could not tree hash state: %w", err)
	}
	log.WithFields(logrus.Fields{
		"slot":      uint64(genesis.Slot),
		"stateRoot": fmt.Sprintf("%#x", root),
	}).Info("advanced state")
	return nil
}
