package epoch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/epoch"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
)

func TestProcessEpochRunsAllStepsWithoutError(t *testing.T) {
	defer params.UseMainnetConfig()
	st := genesisStateForJustification(t, 16)

	// Simulate slot processing having already advanced the state one full
	// epoch past genesis, the precondition ProcessEpoch assumes.
	st.Slot = helpers.StartSlot(primitives.Epoch(1))

	err := epoch.ProcessEpoch(st)
	require.NoError(t, err)

	// The current epoch's (empty) attestations rotate into previous.
	require.Nil(t, st.CurrentEpochAttestations)
}
