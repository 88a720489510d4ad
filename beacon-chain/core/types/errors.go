package types

import "errors"

var (
	errCheckpointZeroMismatch = errors.New("types: checkpoint epoch == 0 iff root == zero")
	errValidatorEpochOrder    = errors.New("types: validator epoch fields out of order")
	errEffectiveBalanceBounds = errors.New("types: effective balance out of bounds")
)
