package transact

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/dyguan372/rippled/ledger"
)

// applyAddReferee establishes the referral edge referrer -> referred, where
// the referrer is the transaction's destination and the referred account is
// the originator. The preconditions run in order, each a distinct result;
// together they keep the referral relation a forest: no self-loops, at most
// one referee per account, no duplicate edges.
func (e *Engine) applyAddReferee(tx Tx) Result {
	referrer := tx.Destination
	referred := tx.Account

	log := e.log.WithFields(logrus.Fields{
		"referrer": ledger.HumanAddress(referrer),
		"referred": ledger.HumanAddress(referred),
	})

	if referrer == (common.Address{}) {
		log.Warn("malformed transaction: referrer account not specified")
		return NoDestination
	}
	if referrer == referred {
		log.Debug("malformed transaction: redundant self-referral")
		return SelfReferral
	}

	referrerEntry, ok := e.state.FetchForUpdate(ledger.AccountRootIndex(referrer))
	if !ok {
		log.Debug("referrer account does not exist")
		return DestinationNotFound
	}
	referredEntry, ok := e.state.FetchForUpdate(ledger.AccountRootIndex(referred))
	if !ok {
		// The referred account may simply not have synced yet.
		log.Debug("referred account does not exist")
		return AccountNotSynced
	}

	referrerAcct := referrerEntry.(*ledger.AccountRoot)
	referredAcct := referredEntry.(*ledger.AccountRoot)

	if referredAcct.Referee != (common.Address{}) {
		// The link is write-once, regardless of who the new referrer is.
		log.Debug("referee has already been set")
		return RefereeExists
	}
	if referrerAcct.HasReference(referred) {
		// Unreachable while the referee check holds; kept as a guard
		// against duplicate-edge races.
		log.Debug("reference has already been set")
		return ReferenceExists
	}

	referredAcct.Referee = referrer
	referrerAcct.References = append(referrerAcct.References, referred)
	return Success
}
