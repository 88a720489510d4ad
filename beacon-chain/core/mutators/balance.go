// Package mutators implements the state-mutating helpers the block and
// epoch processors call: balance arithmetic, exit initiation, and
// slashing. Every function here takes the state to mutate as its first
// argument and writes through it directly, matching the teacher's own
// core/state mutator idiom.
package mutators

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
)

// IncreaseBalance adds delta to balances[index], saturating at the uint64
// maximum rather than overflowing.
func IncreaseBalance(state *types.BeaconState, index primitives.ValidatorIndex, delta primitives.Gwei) {
	balance := state.Balances[index]
	sum := balance + uint64(delta)
	if sum < balance {
		sum = ^uint64(0)
	}
	state.Balances[index] = sum
}

// DecreaseBalance subtracts delta from balances[index], saturating at zero
// rather than underflowing.
func DecreaseBalance(state *types.BeaconState, index primitives.ValidatorIndex, delta primitives.Gwei) {
	balance := state.Balances[index]
	if uint64(delta) > balance {
		state.Balances[index] = 0
		return
	}
	state.Balances[index] = balance - uint64(delta)
}
