// Package dividend computes referral power, balance rank and proportional
// dividend payouts over the full account set, and carries the validator-side
// dividend voting machinery.
package dividend

import (
	"errors"
	"math"
	"math/bits"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/dyguan372/rippled/ledger"
	"github.com/dyguan372/rippled/protocol"
)

var (
	// ErrReferralTooDeep is returned when a referral chain exceeds the
	// configured depth cap.
	ErrReferralTooDeep = errors.New("dividend: referral chain exceeds depth limit")

	// ErrReferralCycle is returned when the walk revisits an account that
	// is still being computed. The referral invariants forbid cycles, so
	// hitting one means the ledger state is corrupt.
	ErrReferralCycle = errors.New("dividend: cycle in referral graph")

	// ErrBalanceOverflow is returned when a balance or pool computation
	// does not fit in 64 bits. Overflow is fatal to the transaction,
	// never wrapped or saturated.
	ErrBalanceOverflow = errors.New("dividend: balance arithmetic overflow")
)

// Power is the memoized result of the referral-subtree walk for one
// account: the sum of all descendant secondary balances, and the largest
// single-child contribution within that sum.
type Power struct {
	SubtreeSum uint64
	MaxChild   uint64
}

// AccountShare is one account's row in the rank table.
type AccountShare struct {
	Account common.Address

	// Rank is the dense rank by secondary balance, ascending from 1.
	// Accounts with equal balances share a rank.
	Rank uint32

	// PowerMetric is subtreeSum - maxChild + cbrt(maxChild): the subtree
	// sum with its single largest branch damped to its cube root, so that
	// breadth of the referral subtree outweighs one dominant recruit.
	PowerMetric float64
}

// RankTable is the output of ComputeRanks: every account's rank and power
// metric, in deterministic (ascending balance, then address) order, plus
// the two distribution denominators. Note that SumOfPowerMax accumulates
// the raw MaxChild values, not the power metric; the numerator of the
// power share uses the metric while the denominator does not. The
// asymmetry is long-standing observable behavior and is preserved.
type RankTable struct {
	Shares        []AccountShare
	Powers        map[common.Address]Power
	SumOfRanks    uint64
	SumOfPowerMax uint64
}

// ComputeRanks runs the two passes over the full account set: the memoized
// power walk over the referral forest, then the dense balance ranking. It
// is a pure function of the committed state; re-running it on an unchanged
// view yields identical output.
func ComputeRanks(view ledger.View, rules protocol.Rules) (*RankTable, error) {
	log := logrus.WithField("module", "dividend")

	type accountInfo struct {
		addr       common.Address
		balanceVBC uint64
	}

	// Full-state scan: balances for both passes, roots for the walk. The
	// view visits in ascending address order, so everything downstream is
	// deterministic.
	var (
		accounts []accountInfo
		roots    []common.Address
		balances = make(map[common.Address]uint64)
	)
	view.VisitAccounts(func(acct *ledger.AccountRoot) bool {
		accounts = append(accounts, accountInfo{acct.Account, acct.BalanceVBC})
		balances[acct.Account] = acct.BalanceVBC
		if acct.Referee == (common.Address{}) {
			roots = append(roots, acct.Account)
		}
		return true
	})

	// Pass 1: power. An explicit work-stack instead of native recursion,
	// so termination on forest-shaped input is structural and stack depth
	// is bounded by the rules, not the goroutine stack.
	walker := powerWalker{
		view:     view,
		log:      log,
		maxDepth: rules.Referral.MaxDepth,
		balances: balances,
		powers:   make(map[common.Address]Power, len(accounts)),
		visiting: make(map[common.Address]bool),
	}
	for _, root := range roots {
		if err := walker.walk(root); err != nil {
			return nil, err
		}
	}

	// Pass 2: dense rank by secondary balance, ascending. The sort is
	// stable over the enumeration order, so tied balances keep their
	// address order.
	sort.SliceStable(accounts, func(i, j int) bool {
		return accounts[i].balanceVBC < accounts[j].balanceVBC
	})

	table := &RankTable{
		Shares: make([]AccountShare, 0, len(accounts)),
		Powers: walker.powers,
	}
	rank := uint32(1)
	for i, acct := range accounts {
		if i > 0 && acct.balanceVBC > accounts[i-1].balanceVBC {
			rank++
		}
		power := walker.powers[acct.addr]
		table.Shares = append(table.Shares, AccountShare{
			Account:     acct.addr,
			Rank:        rank,
			PowerMetric: powerMetric(power),
		})
		table.SumOfRanks += uint64(rank)
		sum, err := checkedAdd(table.SumOfPowerMax, power.MaxChild)
		if err != nil {
			return nil, err
		}
		table.SumOfPowerMax = sum
	}
	return table, nil
}

// powerMetric derives the per-account metric from the memoized power pair.
// The subtraction cannot underflow: the largest child contribution is by
// construction part of the subtree sum.
func powerMetric(p Power) float64 {
	return float64(p.SubtreeSum-p.MaxChild) + math.Cbrt(float64(p.MaxChild))
}

type powerWalker struct {
	view     ledger.View
	log      *logrus.Entry
	maxDepth int
	balances map[common.Address]uint64
	powers   map[common.Address]Power
	visiting map[common.Address]bool
}

// powerFrame is one work-stack slot of the post-order traversal.
type powerFrame struct {
	addr     common.Address
	children []common.Address
	next     int
	sum      uint64
	maxChild uint64
}

// walk computes the power pair for every account in root's subtree. Each
// account is visited at most once across all walks; already-memoized
// subtrees are looked up, never re-derived.
func (w *powerWalker) walk(root common.Address) error {
	if _, done := w.powers[root]; done {
		return nil
	}
	stack := []powerFrame{w.newFrame(root)}
	w.visiting[root] = true

	for len(stack) > 0 {
		if len(stack) > w.maxDepth {
			return ErrReferralTooDeep
		}
		frame := &stack[len(stack)-1]

		if frame.next < len(frame.children) {
			child := frame.children[frame.next]
			childPower, done := w.powers[child]
			if !done {
				if w.visiting[child] {
					return ErrReferralCycle
				}
				w.visiting[child] = true
				stack = append(stack, w.newFrame(child))
				continue
			}
			frame.next++
			childBalance := w.balances[child]
			sum, err := checkedAdd(frame.sum, childPower.SubtreeSum)
			if err != nil {
				return err
			}
			if sum, err = checkedAdd(sum, childBalance); err != nil {
				return err
			}
			frame.sum = sum
			frame.maxChild = max64(frame.maxChild, max64(childPower.MaxChild, childBalance))
			continue
		}

		w.powers[frame.addr] = Power{SubtreeSum: frame.sum, MaxChild: frame.maxChild}
		delete(w.visiting, frame.addr)
		stack = stack[:len(stack)-1]
	}
	return nil
}

// newFrame reads the account's reference list, keeping only children that
// actually exist in the ledger. A dangling reference is logged and skipped,
// it does not abort the dividend.
func (w *powerWalker) newFrame(addr common.Address) powerFrame {
	frame := powerFrame{addr: addr}
	entry, ok := w.view.Fetch(ledger.AccountRootIndex(addr))
	if !ok {
		w.log.WithField("account", ledger.HumanAddress(addr)).
			Warn("account does not exist")
		return frame
	}
	acct := entry.(*ledger.AccountRoot)
	for _, child := range acct.References {
		if _, exists := w.balances[child]; !exists {
			w.log.WithField("account", ledger.HumanAddress(child)).
				Warn("referenced account does not exist")
			continue
		}
		frame.children = append(frame.children, child)
	}
	return frame
}

func checkedAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrBalanceOverflow
	}
	return sum, nil
}

func max64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
