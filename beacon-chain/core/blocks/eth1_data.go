package blocks

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// ProcessEth1DataInBlock appends block's eth1 vote to the running tally for
// the current voting period, then adopts it as state.Eth1Data once it has
// strictly more than half the period's votes.
//
//	def process_eth1_data(state, body):
//	    state.eth1_data_votes.append(body.eth1_data)
//	    if state.eth1_data_votes.count(body.eth1_data) * 2 > SLOTS_PER_ETH1_VOTING_PERIOD:
//	        state.eth1_data = body.eth1_data
func ProcessEth1DataInBlock(state *types.BeaconState, block *types.BeaconBlock) error {
	vote := block.Body.Eth1Data
	state.Eth1DataVotes = append(state.Eth1DataVotes, vote)

	count := 0
	for _, v := range state.Eth1DataVotes {
		if v.Equal(vote) {
			count++
		}
	}
	if uint64(count)*2 > params.BeaconConfig().SlotsPerEth1VotingPeriod {
		state.Eth1Data = vote
	}
	return nil
}
