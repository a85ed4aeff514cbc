package dividend

import (
	"cmp"
	"sort"

	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/sirupsen/logrus"

	"github.com/dyguan372/rippled/protocol"
)

// VotableIndex tallies votes for a scalar network parameter. The holder's
// own preference is counted at construction; peers' preferences are added
// with Vote. Winner picks the most-voted value deterministically: ties
// resolve to the smallest value, and a value only displaces the current
// setting with strictly more votes.
type VotableIndex[T cmp.Ordered] struct {
	current T
	target  T
	votes   map[T]int
}

// NewVotableIndex returns a tally seeded with our own vote for target.
func NewVotableIndex[T cmp.Ordered](current, target T) *VotableIndex[T] {
	v := &VotableIndex[T]{
		current: current,
		target:  target,
		votes:   make(map[T]int),
	}
	v.Vote(target)
	return v
}

// MayVote reports whether we want a change at all. If the current setting
// is already the target, we do not vote.
func (v *VotableIndex[T]) MayVote() bool { return v.current != v.target }

// Vote records one peer's preferred value.
func (v *VotableIndex[T]) Vote(value T) { v.votes[value]++ }

// NoVote records a peer that expressed no preference, which counts as a
// vote for the current setting.
func (v *VotableIndex[T]) NoVote() { v.Vote(v.current) }

// Winner returns the value with the most votes, or the current setting
// when nothing beats it.
func (v *VotableIndex[T]) Winner() T {
	values := make([]T, 0, len(v.votes))
	for value := range v.votes {
		values = append(values, value)
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	winner := v.current
	weight := 0
	for _, value := range values {
		if v.votes[value] > weight {
			winner = value
			weight = v.votes[value]
		}
	}
	return winner
}

// Proposal is a dividend position the voter wants injected into consensus:
// the ledger sequence the pools were computed against and the two proposed
// pool sizes.
type Proposal struct {
	DividendLedger   idx.Block
	DividendCoins    uint64
	DividendCoinsVBC uint64
}

// Voter builds dividend positions and validation votes for the running
// validator. It holds the target dividend ledger this node is campaigning
// for and the network's pool rates.
type Voter struct {
	target idx.Block
	rules  protocol.Rules
	log    *logrus.Entry
}

// NewVoter returns a voter campaigning for the given target dividend
// ledger.
func NewVoter(target idx.Block, rules protocol.Rules) *Voter {
	return &Voter{
		target: target,
		rules:  rules,
		log:    logrus.WithField("module", "dividend-vote"),
	}
}

// Validation returns the dividend-ledger field to contribute to an outgoing
// validation, and whether to contribute it at all. Nothing is contributed
// when the last closed ledger already carries the target.
func (v *Voter) Validation(lastDividendLedger idx.Block) (idx.Block, bool) {
	if lastDividendLedger == v.target {
		return 0, false
	}
	v.log.WithField("target", v.target).Info("voting for dividend ledger")
	return v.target, true
}

// Tally folds peer validations' dividend-ledger votes into a winner.
func (v *Voter) Tally(lastDividendLedger idx.Block, peerVotes []idx.Block) idx.Block {
	tally := NewVotableIndex(lastDividendLedger, v.target)
	for _, vote := range peerVotes {
		tally.Vote(vote)
	}
	return tally.Winner()
}

// Position builds the dividend proposal for the next consensus round: the
// primary and secondary pools as fixed fractions of the total secondary
// supply, alongside the last closed ledger's dividend sequence.
func (v *Voter) Position(lastDividendLedger idx.Block, totalCoinsVBC uint64) (Proposal, error) {
	coins, err := truncateUnits(v.rules.Dividend.PoolRate * float64(totalCoinsVBC))
	if err != nil {
		return Proposal{}, err
	}
	coinsVBC, err := truncateUnits(v.rules.Dividend.PoolRateVBC * float64(totalCoinsVBC))
	if err != nil {
		return Proposal{}, err
	}
	return Proposal{
		DividendLedger:   lastDividendLedger,
		DividendCoins:    coins,
		DividendCoinsVBC: coinsVBC,
	}, nil
}
