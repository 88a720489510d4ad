package epoch

import (
	"bytes"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// ProcessCrosslinks snapshots CurrentCrosslinks into PreviousCrosslinks,
// then for the previous and current epoch tries to adopt a winning
// crosslink into CurrentCrosslinks for every shard active in that epoch.
func ProcessCrosslinks(state *types.BeaconState) error {
	for i, c := range state.CurrentCrosslinks {
		state.PreviousCrosslinks[i] = c.Copy()
	}

	for _, epoch := range []primitives.Epoch{helpers.PreviousEpoch(state), helpers.CurrentEpoch(state)} {
		cfg := params.BeaconConfig()
		start, err := helpers.StartShard(state, epoch)
		if err != nil {
			return err
		}
		count := helpers.CommitteeCount(state, epoch)
		for offset := uint64(0); offset < count; offset++ {
			shard := primitives.Shard((uint64(start) + offset) % cfg.ShardCount)

			committee, err := helpers.CrosslinkCommittee(state, epoch, shard)
			if err != nil {
				return err
			}
			committeeBalance := helpers.TotalBalance(state, committee)

			winner, winnerBalance, err := winningCrosslink(state, epoch, shard)
			if err != nil {
				return err
			}
			if uint64(winnerBalance)*3 >= uint64(committeeBalance)*2 {
				state.CurrentCrosslinks[shard] = winner
			}
		}
	}
	return nil
}

type crosslinkCandidate struct {
	crosslink    *types.Crosslink
	attestations []*types.PendingAttestation
}

// crosslinkCandidates groups the source attestations targeting shard during
// epoch by their distinct Crosslink claim.
func crosslinkCandidates(state *types.BeaconState, epoch primitives.Epoch, shard primitives.Shard) []*crosslinkCandidate {
	var candidates []*crosslinkCandidate
	for _, a := range MatchingSourceAttestations(state, epoch) {
		if a.Data.Crosslink.Shard != shard {
			continue
		}
		var found *crosslinkCandidate
		for _, c := range candidates {
			if *c.crosslink == *a.Data.Crosslink {
				found = c
				break
			}
		}
		if found == nil {
			found = &crosslinkCandidate{crosslink: a.Data.Crosslink}
			candidates = append(candidates, found)
		}
		found.attestations = append(found.attestations, a)
	}
	return candidates
}

// winningCrosslinkCandidate returns the attestation-weighted argmax
// candidate targeting shard during epoch, ties broken by the data root's
// byte ordering, or nil if no attestation targets the shard.
func winningCrosslinkCandidate(state *types.BeaconState, epoch primitives.Epoch, shard primitives.Shard) (*crosslinkCandidate, primitives.Gwei, error) {
	var winner *crosslinkCandidate
	var winnerBalance primitives.Gwei
	for _, c := range crosslinkCandidates(state, epoch, shard) {
		balance, err := AttestingBalance(state, c.attestations)
		if err != nil {
			return nil, 0, err
		}
		if winner == nil || balance > winnerBalance ||
			(balance == winnerBalance && bytes.Compare(c.crosslink.DataRoot[:], winner.crosslink.DataRoot[:]) > 0) {
			winner = c
			winnerBalance = balance
		}
	}
	return winner, winnerBalance, nil
}

// winningCrosslink returns the attestation-weighted argmax crosslink among
// candidates targeting shard during epoch, and the unslashed attesting
// balance behind it. Ties are broken by the data root's byte ordering.
func winningCrosslink(state *types.BeaconState, epoch primitives.Epoch, shard primitives.Shard) (*types.Crosslink, primitives.Gwei, error) {
	winner, balance, err := winningCrosslinkCandidate(state, epoch, shard)
	if err != nil {
		return nil, 0, err
	}
	if winner == nil {
		return types.EmptyCrosslink(), 0, nil
	}
	return winner.crosslink, balance, nil
}

// winningCrosslinkAttesters returns the unslashed, deduplicated attesting
// indices behind shard's winning crosslink during epoch.
func winningCrosslinkAttesters(state *types.BeaconState, epoch primitives.Epoch, shard primitives.Shard) ([]primitives.ValidatorIndex, error) {
	winner, _, err := winningCrosslinkCandidate(state, epoch, shard)
	if err != nil {
		return nil, err
	}
	if winner == nil {
		return nil, nil
	}
	return UnslashedAttestingIndices(state, winner.attestations)
}
