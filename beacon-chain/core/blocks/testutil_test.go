package blocks_test

import "github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"

// primitivesRootWith returns a Root with its first byte set, a quick way to
// produce distinct roots across table cases without caring about their
// actual preimage.
func primitivesRootWith(b byte) primitives.Root {
	var r primitives.Root
	r[0] = b
	return r
}
