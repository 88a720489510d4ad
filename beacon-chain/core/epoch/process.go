package epoch

import (
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// ProcessEpoch runs the six epoch-boundary transition steps in spec order:
// justification and finalization, crosslink settlement, rewards and
// penalties, registry updates, slashings settlement, and the final
// bookkeeping rollups. slotutil.ProcessSlots invokes this once per epoch, at
// the epoch's last slot, before the slot is advanced into the new epoch.
func ProcessEpoch(state *types.BeaconState) error {
	if err := ProcessJustificationAndFinalization(state); err != nil {
		return errors.Wrap(err, "could not process justification and finalization")
	}
	if err := ProcessCrosslinks(state); err != nil {
		return errors.Wrap(err, "could not process crosslinks")
	}
	if err := ProcessRewardsAndPenalties(state); err != nil {
		return errors.Wrap(err, "could not process rewards and penalties")
	}
	if err := ProcessRegistryUpdates(state); err != nil {
		return errors.Wrap(err, "could not process registry updates")
	}
	if err := ProcessSlashings(state); err != nil {
		return errors.Wrap(err, "could not process slashings")
	}
	if err := ProcessFinalUpdates(state); err != nil {
		return errors.Wrap(err, "could not process final updates")
	}
	return nil
}
