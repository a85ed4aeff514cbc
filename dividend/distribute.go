package dividend

import (
	"math"
	"math/bits"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/sirupsen/logrus"

	"github.com/dyguan372/rippled/ledger"
	"github.com/dyguan372/rippled/protocol"
)

// Distribute splits poolVBC across every account in the rank table and
// returns the two actually-distributed totals. Each account's payout is
// independent of every other account's, and every touched account enters
// the working set exactly once.
//
// The pool is split in half before the loop: a rank-weighted half and a
// power-weighted half, both held constant across accounts. The halves
// balance reward for simple balance standing against reward for referral
// contribution. A secondary payout below the dust threshold is dropped
// entirely. The primary payout, preVBC * IncreaseRate, has no threshold and
// is computed from the secondary balance before this transaction's credit.
//
// Every account in the table is paid, the system account included.
//
// On success the dividend record entry is overwritten with the ledger
// sequence and the two actual totals.
func Distribute(state ledger.State, rules protocol.Rules, ledgerSeq idx.Block,
	poolVBC uint64, table *RankTable) (actual, actualVBC uint64, err error) {

	log := logrus.WithField("module", "dividend")

	rankHalf := poolVBC / 2
	powerHalf := poolVBC - rankHalf

	for _, share := range table.Shares {
		var byRank, byPower uint64
		if table.SumOfRanks > 0 {
			byRank, err = mulDiv(rankHalf, uint64(share.Rank), table.SumOfRanks)
			if err != nil {
				return 0, 0, err
			}
		}
		if table.SumOfPowerMax > 0 {
			byPower, err = truncateUnits(
				float64(powerHalf) * share.PowerMetric / float64(table.SumOfPowerMax))
			if err != nil {
				return 0, 0, err
			}
		}
		payoutVBC, err := checkedAdd(byRank, byPower)
		if err != nil {
			return 0, 0, err
		}

		entry, ok := state.FetchForUpdate(ledger.AccountRootIndex(share.Account))
		if !ok {
			log.WithField("account", ledger.HumanAddress(share.Account)).
				Warn("account vanished during dividend")
			continue
		}
		acct := entry.(*ledger.AccountRoot)

		prevVBC := acct.BalanceVBC
		if payoutVBC >= rules.Dividend.DustThreshold {
			if acct.BalanceVBC, err = checkedAdd(prevVBC, payoutVBC); err != nil {
				return 0, 0, err
			}
			if actualVBC, err = checkedAdd(actualVBC, payoutVBC); err != nil {
				return 0, 0, err
			}
		}

		payout, err := truncateUnits(float64(prevVBC) * rules.Dividend.IncreaseRate)
		if err != nil {
			return 0, 0, err
		}
		if acct.Balance, err = checkedAdd(acct.Balance, payout); err != nil {
			return 0, 0, err
		}
		if actual, err = checkedAdd(actual, payout); err != nil {
			return 0, 0, err
		}
	}

	record, ok := state.FetchForUpdate(ledger.DividendIndex())
	if !ok {
		record = state.Create(ledger.DividendIndex(), &ledger.DividendRecord{})
	}
	dividendRecord := record.(*ledger.DividendRecord)
	dividendRecord.DividendLedger = ledgerSeq
	dividendRecord.DividendCoins = actual
	dividendRecord.DividendCoinsVBC = actualVBC

	return actual, actualVBC, nil
}

// mulDiv computes a*b/c with a 128-bit intermediate product and floor
// division. A quotient outside 64 bits is an overflow error.
func mulDiv(a, b, c uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi >= c {
		return 0, ErrBalanceOverflow
	}
	quotient, _ := bits.Div64(hi, lo, c)
	return quotient, nil
}

// truncateUnits is the single conversion point from real-valued payout
// arithmetic to ledger drops: truncation toward zero, with negatives and
// NaN collapsing to zero and anything beyond 64 bits an overflow error.
func truncateUnits(v float64) (uint64, error) {
	if v != v || v <= 0 {
		return 0, nil
	}
	if v >= float64(math.MaxUint64) {
		return 0, ErrBalanceOverflow
	}
	return uint64(v), nil
}
