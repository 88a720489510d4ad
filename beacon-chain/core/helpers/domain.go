package helpers

import (
	"encoding/binary"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// ComputeDomain packs domainType and forkVersion into the 8-byte signing
// domain tag mixed into every BLS message: domain_type || fork_version.
func ComputeDomain(domainType primitives.DomainType, forkVersion primitives.ForkVersion) primitives.Domain {
	var buf [8]byte
	copy(buf[0:4], domainType[:])
	copy(buf[4:8], forkVersion[:])
	return primitives.Domain(binary.LittleEndian.Uint64(buf[:]))
}

// Domain returns the signing domain for domainType at messageEpoch, picking
// the fork version in effect at that epoch: state.fork.previous_version if
// messageEpoch precedes the fork's activation epoch, current_version
// otherwise.
func Domain(state *types.BeaconState, domainType primitives.DomainType, messageEpoch primitives.Epoch) primitives.Domain {
	forkVersion := state.Fork.CurrentVersion
	if messageEpoch < state.Fork.Epoch {
		forkVersion = state.Fork.PreviousVersion
	}
	return ComputeDomain(domainType, forkVersion)
}
