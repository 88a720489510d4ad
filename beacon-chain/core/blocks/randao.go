package blocks

import (
	"github.com/sirupsen/logrus"

	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/bls"
	coreerrors "github.com/prysmaticlabs/prysm-core/beacon-chain/core/errors"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/helpers"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/params"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/ssz"
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/types"
	"github.com/prysmaticlabs/prysm-core/shared/hashutil"
)

var log = logrus.WithField("prefix", "core/blocks")

// ProcessRandao verifies body's RANDAO reveal against the current epoch
// under the proposer's pubkey, then mixes hash(reveal) into the current
// epoch's randao mix.
//
//	def process_randao(state, body):
//	    proposer = state.validators[get_beacon_proposer_index(state)]
//	    assert bls_verify(proposer.pubkey, hash_tree_root(get_current_epoch(state)),
//	                       body.randao_reveal, get_domain(state, DOMAIN_RANDAO))
//	    state.randao_mixes[get_current_epoch(state) % EPOCHS_PER_HISTORICAL_VECTOR] = xor(
//	        get_randao_mix(state, get_current_epoch(state)), hash(body.randao_reveal))
func ProcessRandao(state *types.BeaconState, body *types.BeaconBlockBody, verifier bls.Verifier, verifySignatures, logging bool) error {
	proposerIndex, err := helpers.BeaconProposerIndex(state)
	if err != nil {
		return err
	}
	proposer := state.Validators[proposerIndex]

	if verifySignatures {
		epoch := helpers.CurrentEpoch(state)
		h := ssz.NewHasher()
		h.AppendUint64(uint64(epoch))
		epochRoot := h.Merkleize(0)
		domain := helpers.Domain(state, params.BeaconConfig().DomainRandao, epoch)
		if !verifier.Verify(proposer.Pubkey, epochRoot, body.RandaoReveal, domain) {
			return coreerrors.New(coreerrors.RandaoSignatureInvalid, "invalid randao reveal signature")
		}
	}

	epoch := helpers.CurrentEpoch(state)
	mix := helpers.RandaoMixAtEpoch(state, epoch)
	revealHash := hashutil.Hash(body.RandaoReveal[:])
	var newMix primitives.Root
	for i := range mix {
		newMix[i] = mix[i] ^ revealHash[i]
	}
	length := params.BeaconConfig().EpochsPerHistoricalVector
	state.RandaoMixes[uint64(epoch)%length] = newMix

	if logging {
		log.WithField("epoch", epoch).Debug("verified and processed randao reveal")
	}
	return nil
}
