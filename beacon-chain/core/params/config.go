// Package params defines the compile-time-overridable BeaconChainConfig
// parameter bundle consumed by every other package in the core. Shaped after
// the teacher's shared/params package: a package-level pointer guarded by
// BeaconConfig()/OverrideBeaconConfig(), with named preset constructors
// (mainnet, minimal) mirroring the teacher's UseAltonaConfig/AltonaConfig
// pattern.
package params

import (
	"github.com/prysmaticlabs/prysm-core/beacon-chain/core/primitives"
)

// BeaconChainConfig bundles every spec constant the core needs. Field names
// follow the SSZ/spec upper-camel convention used throughout the teacher's
// own params struct.
type BeaconChainConfig struct {
	// Time / committees.
	SlotsPerEpoch               uint64
	ShardCount                  uint64
	TargetCommitteeSize         uint64
	MaxValidatorsPerCommittee   uint64
	MinPerEpochChurnLimit       uint64
	ChurnLimitQuotient          uint64
	ShuffleRoundCount           uint64
	MinSeedLookahead            uint64
	ActivationExitDelay         uint64
	SecondsPerSlot              uint64
	MinAttestationInclusionDelay uint64

	// Balances.
	MaxEffectiveBalance        uint64
	EffectiveBalanceIncrement  uint64
	EjectionBalance             uint64
	MinDepositAmount            uint64
	HysteresisQuotient          uint64
	HysteresisDownwardMultiplier uint64
	HysteresisUpwardMultiplier  uint64

	// Rewards.
	BaseRewardFactor               uint64
	BaseRewardsPerEpoch             uint64
	WhistleblowerRewardQuotient     uint64
	ProposerRewardQuotient          uint64
	InactivityPenaltyQuotient       uint64
	MinSlashingPenaltyQuotient      uint64
	MinEpochsToInactivityPenalty    uint64

	// Vectors.
	EpochsPerHistoricalVector   uint64
	EpochsPerSlashingsVector    uint64
	SlotsPerHistoricalRoot      uint64
	SlotsPerEth1VotingPeriod    uint64
	PersistentCommitteePeriod   uint64
	MinValidatorWithdrawabilityDelay uint64
	MaxEpochsPerCrosslink       uint64
	HistoricalRootsLimit        uint64
	ValidatorRegistryLimit      uint64

	// Max operations per block.
	MaxProposerSlashings uint64
	MaxAttesterSlashings uint64
	MaxAttestations      uint64
	MaxDeposits          uint64
	MaxVoluntaryExits    uint64
	MaxTransfers         uint64

	// Domains.
	DomainBeaconProposer primitives.DomainType
	DomainRandao         primitives.DomainType
	DomainAttestation    primitives.DomainType
	DomainDeposit        primitives.DomainType
	DomainVoluntaryExit  primitives.DomainType
	DomainTransfer       primitives.DomainType

	// Genesis.
	GenesisSlot        primitives.Slot
	GenesisEpoch       primitives.Epoch
	GenesisForkVersion primitives.ForkVersion
	FarFutureEpoch     primitives.Epoch

	// Deposit contract.
	DepositContractTreeDepth uint64

	// Weak subjectivity.
	GweiPerEth uint64
	SafetyDecay uint64

	// Preset name, for logging/diagnostics only.
	ConfigName string
}

// Copy returns a deep-enough copy (no pointer/slice fields today, so a value
// copy suffices) for callers overriding a derived preset, matching the
// teacher's Copy()-then-mutate idiom.
func (b *BeaconChainConfig) Copy() *BeaconChainConfig {
	copied := *b
	return &copied
}

var beaconConfig = MainnetConfig()

// BeaconConfig returns the currently active parameter bundle.
func BeaconConfig() *BeaconChainConfig {
	return beaconConfig
}

// OverrideBeaconConfig replaces the active parameter bundle, for tests or for
// selecting a named preset at process start.
func OverrideBeaconConfig(cfg *BeaconChainConfig) {
	beaconConfig = cfg
}

// UseMainnetConfig installs the mainnet preset as the active config.
func UseMainnetConfig() {
	OverrideBeaconConfig(MainnetConfig())
}

// UseMinimalConfig installs the minimal (fast-test) preset as the active
// config.
func UseMinimalConfig() {
	OverrideBeaconConfig(MinimalConfig())
}

// MainnetConfig returns the full-size, production parameter bundle.
func MainnetConfig() *BeaconChainConfig {
	return &BeaconChainConfig{
		SlotsPerEpoch:             64,
		ShardCount:                1024,
		TargetCommitteeSize:       128,
		MaxValidatorsPerCommittee: 2048,
		MinPerEpochChurnLimit:     4,
		ChurnLimitQuotient:        65536,
		ShuffleRoundCount:         90,
		MinSeedLookahead:          1,
		ActivationExitDelay:       4,
		SecondsPerSlot:            12,
		MinAttestationInclusionDelay: 1,

		MaxEffectiveBalance:          32_000_000_000,
		EffectiveBalanceIncrement:    1_000_000_000,
		EjectionBalance:              16_000_000_000,
		MinDepositAmount:             1_000_000_000,
		HysteresisQuotient:           4,
		HysteresisDownwardMultiplier: 1,
		HysteresisUpwardMultiplier:   5,

		BaseRewardFactor:             64,
		BaseRewardsPerEpoch:          4,
		WhistleblowerRewardQuotient:  512,
		ProposerRewardQuotient:       8,
		InactivityPenaltyQuotient:    1 << 25,
		MinSlashingPenaltyQuotient:   32,
		MinEpochsToInactivityPenalty: 4,

		EpochsPerHistoricalVector:        65536,
		EpochsPerSlashingsVector:         8192,
		SlotsPerHistoricalRoot:           8192,
		SlotsPerEth1VotingPeriod:         1024,
		PersistentCommitteePeriod:        2048,
		MinValidatorWithdrawabilityDelay: 256,
		MaxEpochsPerCrosslink:            64,
		HistoricalRootsLimit:             16777216,
		ValidatorRegistryLimit:           1099511627776,

		MaxProposerSlashings: 16,
		MaxAttesterSlashings: 1,
		MaxAttestations:      128,
		MaxDeposits:          16,
		MaxVoluntaryExits:    16,
		MaxTransfers:         16,

		DomainBeaconProposer: primitives.DomainType{0, 0, 0, 0},
		DomainRandao:         primitives.DomainType{1, 0, 0, 0},
		DomainAttestation:    primitives.DomainType{2, 0, 0, 0},
		DomainDeposit:        primitives.DomainType{3, 0, 0, 0},
		DomainVoluntaryExit:  primitives.DomainType{4, 0, 0, 0},
		DomainTransfer:       primitives.DomainType{5, 0, 0, 0},

		GenesisSlot:        0,
		GenesisEpoch:        0,
		GenesisForkVersion: primitives.ForkVersion{0, 0, 0, 0},
		FarFutureEpoch:     primitives.FarFutureEpoch,

		DepositContractTreeDepth: 32,

		GweiPerEth:  1_000_000_000,
		SafetyDecay: 10,

		ConfigName: "mainnet",
	}
}

// MinimalConfig returns the small-vector preset used for fast spec-conformance
// tests, scaling every "how many epochs of history" constant down while
// keeping balance/reward quotients identical to mainnet.
func MinimalConfig() *BeaconChainConfig {
	cfg := MainnetConfig().Copy()
	cfg.SlotsPerEpoch = 8
	cfg.ShardCount = 8
	cfg.TargetCommitteeSize = 4
	cfg.ShuffleRoundCount = 10
	cfg.MinPerEpochChurnLimit = 4
	cfg.ChurnLimitQuotient = 65536
	cfg.EpochsPerHistoricalVector = 64
	cfg.EpochsPerSlashingsVector = 64
	cfg.SlotsPerHistoricalRoot = 64
	cfg.SlotsPerEth1VotingPeriod = 16
	cfg.PersistentCommitteePeriod = 128
	cfg.MinValidatorWithdrawabilityDelay = 256
	cfg.MaxEpochsPerCrosslink = 4
	cfg.ConfigName = "minimal"
	return cfg
}
