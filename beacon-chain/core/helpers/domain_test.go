package helpers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

func TestComputeDomainPacksTypeAndVersion(t *testing.T) {
	domainType := primitives.DomainType{1, 0, 0, 0}
	version := primitives.ForkVersion{2, 0, 0, 0}
	got := helpers.ComputeDomain(domainType, version)

	other := helpers.ComputeDomain(primitives.DomainType{1, 0, 0, 0}, primitives.ForkVersion{3, 0, 0, 0})
	require.NotEqual(t, got, other)
}

func TestDomainPicksForkVersionByEpoch(t *testing.T) {
	cfg := params.BeaconConfig()
	st := &types.BeaconState{
		Fork: &types.Fork{
			PreviousVersion: primitives.ForkVersion{1, 0, 0, 0},
			CurrentVersion:  primitives.ForkVersion{2, 0, 0, 0},
			Epoch:           10,
		},
	}
	before := helpers.Domain(st, cfg.DomainAttestation, 5)
	after := helpers.Domain(st, cfg.DomainAttestation, 10)

	wantBefore := helpers.ComputeDomain(cfg.DomainAttestation, primitives.ForkVersion{1, 0, 0, 0})
	wantAfter := helpers.ComputeDomain(cfg.DomainAttestation, primitives.ForkVersion{2, 0, 0, 0})
	require.Equal(t, wantBefore, before)
	require.Equal(t, wantAfter, after)
	require.NotEqual(t, before, after)
}
