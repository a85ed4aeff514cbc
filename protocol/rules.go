// Package protocol defines the network rules and configuration parameters
// for a radar ledger network.
//
// This package provides:
//   - Network identification constants (MainNet, TestNet, FakeNet)
//   - Dividend rules: pool rates, the primary-payout increase rate and the
//     dust threshold below which a secondary payout is dropped
//   - Fee rules: the genesis values of the network fee settings entry
//   - Referral rules: limits on the referral forest honored by the power walk
//
// The Rules type is the central configuration structure passed into the
// transaction engine and the dividend machinery. It is an explicit value,
// never a global, so that every component is testable with arbitrary
// parameters.
package protocol

import (
	"encoding/json"
)

// Network identification constants.
const (
	// MainNetworkID is the chain ID for the radar mainnet.
	MainNetworkID uint64 = 0x56bc

	// TestNetworkID is the chain ID for the radar testnet.
	TestNetworkID uint64 = 0x56bc2

	// FakeNetworkID is the chain ID for local/fake networks used in testing.
	FakeNetworkID uint64 = 0x56bc3

	// DropsPerUnit is the number of indivisible drops in one whole currency
	// unit. It doubles as the default dust threshold: a secondary-currency
	// dividend payout below one whole unit is not worth transferring.
	DropsPerUnit uint64 = 1000000
)

// DividendRules defines the parameters of dividend distribution.
type DividendRules struct {
	// PoolRate is the fraction of the total secondary-currency supply
	// proposed as the primary-currency dividend pool by the voter.
	PoolRate float64

	// PoolRateVBC is the fraction of the total secondary-currency supply
	// proposed as the secondary-currency dividend pool by the voter.
	PoolRateVBC float64

	// IncreaseRate is the primary-currency payout per drop of pre-dividend
	// secondary balance. Every account receives this payout, with no
	// minimum threshold.
	IncreaseRate float64

	// DustThreshold is the minimum transferable secondary-currency payout.
	// A computed payout below this value is dropped entirely for that
	// account: not carried over, not rounded up.
	DustThreshold uint64
}

// FeeRules defines the genesis values of the network fee settings entry.
// The entry itself lives in the ledger and is fully overwritten by each
// fee-change transaction; these values only seed a fresh network.
type FeeRules struct {
	BaseFee           uint64
	ReferenceFeeUnits uint32
	ReserveBase       uint32
	ReserveIncrement  uint32
}

// ReferralRules defines limits on the referral forest.
type ReferralRules struct {
	// MaxDepth is the maximum referral-chain depth the power computation
	// will walk. A chain deeper than this is rejected rather than walked,
	// which bounds the work-stack regardless of ledger contents.
	MaxDepth int
}

// Rules describes the complete configuration for a radar network.
type Rules struct {
	Name      string // Network name identifier (e.g. "main", "test", "fake")
	NetworkID uint64 // Chain ID for network identification

	Dividend DividendRules
	Fees     FeeRules
	Referral ReferralRules
}

// MainNetRules returns the configuration rules for the radar mainnet.
func MainNetRules() Rules {
	return Rules{
		Name:      "main",
		NetworkID: MainNetworkID,
		Dividend:  DefaultDividendRules(),
		Fees:      DefaultFeeRules(),
		Referral:  DefaultReferralRules(),
	}
}

// TestNetRules returns the configuration rules for the radar testnet.
// Testnet uses the same parameters as mainnet for realistic testing.
func TestNetRules() Rules {
	return Rules{
		Name:      "test",
		NetworkID: TestNetworkID,
		Dividend:  DefaultDividendRules(),
		Fees:      DefaultFeeRules(),
		Referral:  DefaultReferralRules(),
	}
}

// FakeNetRules returns the configuration rules for fake/local networks.
// Fake networks use a shallow referral-depth cap so that tests can exercise
// the depth guard without building thousand-account chains.
func FakeNetRules() Rules {
	return Rules{
		Name:      "fake",
		NetworkID: FakeNetworkID,
		Dividend:  DefaultDividendRules(),
		Fees:      DefaultFeeRules(),
		Referral:  ReferralRules{MaxDepth: 16},
	}
}

// DefaultDividendRules returns the mainnet dividend configuration.
// The pool rates are the historical voter proposal rates: 0.1% of the
// secondary supply for the primary pool and 0.3% for the secondary pool.
func DefaultDividendRules() DividendRules {
	return DividendRules{
		PoolRate:      0.001,
		PoolRateVBC:   0.003,
		IncreaseRate:  0.001,
		DustThreshold: DropsPerUnit,
	}
}

// DefaultFeeRules returns the genesis fee settings.
func DefaultFeeRules() FeeRules {
	return FeeRules{
		BaseFee:           10,
		ReferenceFeeUnits: 10,
		ReserveBase:       20000000,
		ReserveIncrement:  5000000,
	}
}

// DefaultReferralRules returns the mainnet referral limits.
func DefaultReferralRules() ReferralRules {
	return ReferralRules{
		MaxDepth: 1000,
	}
}

// Copy creates a copy of Rules. Rules currently contains no pointer types,
// but callers should rely on Copy rather than assignment so that adding a
// pointer field later cannot silently introduce shared state.
func (r Rules) Copy() Rules {
	cp := r
	return cp
}

// String returns a JSON representation of Rules for debugging and logging.
func (r Rules) String() string {
	b, _ := json.Marshal(&r)
	return string(b)
}
