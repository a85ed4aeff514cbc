package protocol

import (
	"encoding/json"
	"testing"
)

// TestNetworkConstants verifies the network ID constants.
func TestNetworkConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant uint64
		want     uint64
	}{
		{"MainNetworkID", MainNetworkID, 0x56bc},
		{"TestNetworkID", TestNetworkID, 0x56bc2},
		{"FakeNetworkID", FakeNetworkID, 0x56bc3},
		{"DropsPerUnit", DropsPerUnit, 1000000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.want {
				t.Errorf("%s = %d, want %d", tt.name, tt.constant, tt.want)
			}
		})
	}
}

func TestRulesConstructors(t *testing.T) {
	main := MainNetRules()
	test := TestNetRules()
	fake := FakeNetRules()

	if main.Name != "main" || main.NetworkID != MainNetworkID {
		t.Errorf("MainNetRules misidentified: %s/%d", main.Name, main.NetworkID)
	}
	if test.Name != "test" || test.NetworkID != TestNetworkID {
		t.Errorf("TestNetRules misidentified: %s/%d", test.Name, test.NetworkID)
	}
	if fake.Name != "fake" || fake.NetworkID != FakeNetworkID {
		t.Errorf("FakeNetRules misidentified: %s/%d", fake.Name, fake.NetworkID)
	}

	// Testnet mirrors mainnet's economic parameters.
	if test.Dividend != main.Dividend || test.Fees != main.Fees {
		t.Error("testnet parameters diverge from mainnet")
	}

	// Fakenet keeps a shallow referral cap for tests.
	if fake.Referral.MaxDepth >= main.Referral.MaxDepth {
		t.Errorf("fakenet depth cap %d not below mainnet %d",
			fake.Referral.MaxDepth, main.Referral.MaxDepth)
	}
}

// TestDefaultFeeRules pins the genesis fee settings.
func TestDefaultFeeRules(t *testing.T) {
	fees := DefaultFeeRules()
	if fees.BaseFee != 10 || fees.ReferenceFeeUnits != 10 ||
		fees.ReserveBase != 20000000 || fees.ReserveIncrement != 5000000 {
		t.Errorf("unexpected genesis fees: %+v", fees)
	}
}

func TestDefaultDividendRules(t *testing.T) {
	div := DefaultDividendRules()
	if div.PoolRate != 0.001 || div.PoolRateVBC != 0.003 {
		t.Errorf("unexpected pool rates: %+v", div)
	}
	if div.DustThreshold != DropsPerUnit {
		t.Errorf("DustThreshold = %d, want %d", div.DustThreshold, DropsPerUnit)
	}
}

func TestRulesCopyAndString(t *testing.T) {
	rules := MainNetRules()
	cp := rules.Copy()
	cp.Dividend.DustThreshold = 1
	if rules.Dividend.DustThreshold == 1 {
		t.Error("Copy shares state with the original")
	}

	var decoded Rules
	if err := json.Unmarshal([]byte(rules.String()), &decoded); err != nil {
		t.Fatalf("String() does not round-trip as JSON: %v", err)
	}
	if decoded.NetworkID != rules.NetworkID {
		t.Errorf("NetworkID = %d, want %d", decoded.NetworkID, rules.NetworkID)
	}
}
