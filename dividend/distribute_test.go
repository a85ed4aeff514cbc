package dividend

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/dyguan372/rippled/ledger"
	"github.com/dyguan372/rippled/protocol"
)

// testRules lowers the dust threshold so small test pools are payable, and
// pins the increase rate.
func testRules() protocol.Rules {
	rules := protocol.FakeNetRules()
	rules.Dividend.DustThreshold = 1
	rules.Dividend.IncreaseRate = 0.001
	return rules
}

func balancesOf(t *testing.T, store *ledger.MemStore, a common.Address) (balance, balanceVBC uint64) {
	t.Helper()
	entry, ok := store.Fetch(ledger.AccountRootIndex(a))
	require.True(t, ok)
	acct := entry.(*ledger.AccountRoot)
	return acct.Balance, acct.BalanceVBC
}

// TestDistribute_twoAccounts is the worked example: a 1,000,000 VBC pool
// over ranks 1 and 2. Both halves are fixed before the loop, both shares
// use floor arithmetic, and rounding loss stays lost: the combined payouts
// never exceed the pool.
func TestDistribute_twoAccounts(t *testing.T) {
	require := require.New(t)
	store := seedForest(t,
		&ledger.AccountRoot{Account: addr(1), BalanceVBC: 100},
		&ledger.AccountRoot{Account: addr(2), BalanceVBC: 200},
	)
	table := &RankTable{
		Shares: []AccountShare{
			{Account: addr(1), Rank: 1, PowerMetric: 100},
			{Account: addr(2), Rank: 2, PowerMetric: 200},
		},
		SumOfRanks:    3,
		SumOfPowerMax: 300,
	}

	const pool = 1000000
	_, actualVBC, err := Distribute(store, testRules(), 9, pool, table)
	require.NoError(err)
	store.Commit()

	// rankHalf = 500000: floor(500000*1/3) = 166666, floor(500000*2/3) = 333333.
	// powerHalf = 500000: floor(500000*100/300) = 166666, floor(500000*200/300) = 333333.
	_, vbc1 := balancesOf(t, store, addr(1))
	_, vbc2 := balancesOf(t, store, addr(2))
	require.Equal(uint64(100+166666+166666), vbc1)
	require.Equal(uint64(200+333333+333333), vbc2)

	require.Equal(uint64(999998), actualVBC)
	require.Less(actualVBC, uint64(pool))
}

// TestDistribute_conservation verifies the bounded-conservation property
// over a real rank table: the actual secondary total equals the sum of the
// individually credited payouts and never exceeds the pool.
func TestDistribute_conservation(t *testing.T) {
	require := require.New(t)
	store := seedForest(t,
		&ledger.AccountRoot{Account: addr(1), BalanceVBC: 11, References: []common.Address{addr(2), addr(3)}},
		&ledger.AccountRoot{Account: addr(2), Referee: addr(1), BalanceVBC: 9000},
		&ledger.AccountRoot{Account: addr(3), Referee: addr(1), BalanceVBC: 450},
		&ledger.AccountRoot{Account: addr(4), BalanceVBC: 7777},
		&ledger.AccountRoot{Account: addr(5), BalanceVBC: 450},
	)
	before := map[common.Address]uint64{}
	store.VisitAccounts(func(acct *ledger.AccountRoot) bool {
		before[acct.Account] = acct.BalanceVBC
		return true
	})

	rules := testRules()
	table, err := ComputeRanks(store, rules)
	require.NoError(err)

	const pool = 123457
	_, actualVBC, err := Distribute(store, rules, 3, pool, table)
	require.NoError(err)
	store.Commit()

	var credited uint64
	store.VisitAccounts(func(acct *ledger.AccountRoot) bool {
		credited += acct.BalanceVBC - before[acct.Account]
		return true
	})
	require.Equal(credited, actualVBC)
	require.LessOrEqual(actualVBC, uint64(pool))
}

// TestDistribute_dustDropped verifies a sub-threshold secondary payout is
// dropped for that account, excluded from the actual total, and not
// carried to anyone else, while the primary payout still applies.
func TestDistribute_dustDropped(t *testing.T) {
	require := require.New(t)
	store := seedForest(t,
		&ledger.AccountRoot{Account: addr(1), Balance: 50, BalanceVBC: 1000000},
	)
	table := &RankTable{
		Shares:     []AccountShare{{Account: addr(1), Rank: 1}},
		SumOfRanks: 1,
	}

	rules := testRules()
	rules.Dividend.DustThreshold = protocol.DropsPerUnit

	// Pool of 100: the whole rank half (50) is below one unit.
	actual, actualVBC, err := Distribute(store, rules, 4, 100, table)
	require.NoError(err)
	store.Commit()

	require.Zero(actualVBC)
	balance, balanceVBC := balancesOf(t, store, addr(1))
	require.Equal(uint64(1000000), balanceVBC)
	// Primary payout has no threshold: 1000000 * 0.001 = 1000.
	require.Equal(uint64(1000), actual)
	require.Equal(uint64(50+1000), balance)
}

// TestDistribute_primaryUsesPreDividendBalance verifies the primary payout
// is computed from the secondary balance before this transaction's credit.
func TestDistribute_primaryUsesPreDividendBalance(t *testing.T) {
	require := require.New(t)
	store := seedForest(t,
		&ledger.AccountRoot{Account: addr(1), BalanceVBC: 2000000},
	)
	table := &RankTable{
		Shares:     []AccountShare{{Account: addr(1), Rank: 1}},
		SumOfRanks: 1,
	}

	rules := testRules()
	actual, actualVBC, err := Distribute(store, rules, 5, 1000000, table)
	require.NoError(err)
	store.Commit()

	// The secondary credit lands (500000 rank half, power half unpayable
	// with a zero denominator), but the primary payout is 0.001 of the
	// pre-credit 2000000, not of 2500000.
	require.Equal(uint64(500000), actualVBC)
	require.Equal(uint64(2000), actual)
}

// TestDistribute_record verifies the audit record is written with the
// sequence and actual totals, and overwritten by the next dividend.
func TestDistribute_record(t *testing.T) {
	require := require.New(t)
	store := seedForest(t,
		&ledger.AccountRoot{Account: addr(1), BalanceVBC: 1000},
	)
	rules := testRules()

	table, err := ComputeRanks(store, rules)
	require.NoError(err)
	actual, actualVBC, err := Distribute(store, rules, 11, 10000, table)
	require.NoError(err)
	store.Commit()

	entry, ok := store.Fetch(ledger.DividendIndex())
	require.True(ok)
	require.Equal(&ledger.DividendRecord{
		DividendLedger:   11,
		DividendCoins:    actual,
		DividendCoinsVBC: actualVBC,
	}, entry)

	// A later dividend overwrites, it does not accumulate.
	table, err = ComputeRanks(store, rules)
	require.NoError(err)
	actual2, actualVBC2, err := Distribute(store, rules, 12, 0, table)
	require.NoError(err)
	store.Commit()

	entry, _ = store.Fetch(ledger.DividendIndex())
	require.Equal(&ledger.DividendRecord{
		DividendLedger:   12,
		DividendCoins:    actual2,
		DividendCoinsVBC: actualVBC2,
	}, entry)
}

func TestDistribute_emptyLedger(t *testing.T) {
	require := require.New(t)
	store := ledger.NewMemStore()

	actual, actualVBC, err := Distribute(store, testRules(), 1, 1000, &RankTable{})
	require.NoError(err)
	require.Zero(actual)
	require.Zero(actualVBC)
	store.Commit()

	// Even an empty dividend leaves its audit record.
	_, ok := store.Fetch(ledger.DividendIndex())
	require.True(ok)
}

func TestMulDiv(t *testing.T) {
	tests := []struct {
		a, b, c uint64
		want    uint64
		wantErr bool
	}{
		{500000, 1, 3, 166666, false},
		{500000, 2, 3, 333333, false},
		{1 << 63, 4, 2, 0, true}, // quotient overflows
		{1 << 63, 4, 8, 1 << 62, false},
		{0, 5, 7, 0, false},
	}
	for _, tt := range tests {
		got, err := mulDiv(tt.a, tt.b, tt.c)
		if tt.wantErr {
			require.ErrorIs(t, err, ErrBalanceOverflow)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}
}

func TestTruncateUnits(t *testing.T) {
	tests := []struct {
		in      float64
		want    uint64
		wantErr bool
	}{
		{0, 0, false},
		{-5.5, 0, false},
		{0.999, 0, false},
		{1.999, 1, false},
		{123456.789, 123456, false},
		{1e30, 0, true},
	}
	for _, tt := range tests {
		got, err := truncateUnits(tt.in)
		if tt.wantErr {
			require.ErrorIs(t, err, ErrBalanceOverflow)
			continue
		}
		require.NoError(t, err)
		require.Equal(t, tt.want, got)
	}
}
