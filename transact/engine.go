package transact

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/sirupsen/logrus"

	"github.com/dyguan372/rippled/dividend"
	"github.com/dyguan372/rippled/ledger"
	"github.com/dyguan372/rippled/protocol"
)

// AmendmentTable is the node-side registry of amendments. The engine
// notifies it when an amendment is enacted and asks whether the running
// node supports it.
type AmendmentTable interface {
	Enable(id common.Hash)
	IsSupported(id common.Hash) bool
}

// Blocker receives the signal that the node no longer understands the
// ledger because an unsupported amendment was enacted.
type Blocker interface {
	SetAmendmentBlocked()
}

type nopAmendmentTable struct{}

func (nopAmendmentTable) Enable(common.Hash)           {}
func (nopAmendmentTable) IsSupported(common.Hash) bool { return true }

type nopBlocker struct{}

func (nopBlocker) SetAmendmentBlocked() {}

// Engine applies special transactions to a ledger state. One Engine serves
// one transaction at a time: the caller invokes Apply, then commits the
// store's working set on Success or discards it on any other result.
// Rollback is the store's job, never the engine's.
type Engine struct {
	state      ledger.State
	rules      protocol.Rules
	amendments AmendmentTable
	blocker    Blocker
	log        *logrus.Entry
}

// NewEngine returns an engine over the given state and rules, with no-op
// amendment collaborators. Use SetAmendmentTable and SetBlocker to wire the
// real ones.
func NewEngine(state ledger.State, rules protocol.Rules) *Engine {
	return &Engine{
		state:      state,
		rules:      rules,
		amendments: nopAmendmentTable{},
		blocker:    nopBlocker{},
		log:        logrus.WithField("module", "transact"),
	}
}

// SetAmendmentTable wires the node's amendment registry.
func (e *Engine) SetAmendmentTable(t AmendmentTable) { e.amendments = t }

// SetBlocker wires the node-health flag for unsupported amendments.
func (e *Engine) SetBlocker(b Blocker) { e.blocker = b }

// Apply routes the transaction to its transactor and returns the result.
// On any non-Success result no state transition has happened as far as the
// caller is concerned; the caller discards the working set.
func (e *Engine) Apply(tx Tx) Result {
	var res Result
	switch tx.Kind {
	case TxAddReferee:
		res = e.applyAddReferee(tx)
	case TxAmendment, TxFee, TxDividend:
		res = e.precheck(tx)
		if res.OK() {
			switch tx.Kind {
			case TxAmendment:
				res = e.applyAmendment(tx)
			case TxFee:
				res = e.applyFee(tx)
			case TxDividend:
				res = e.applyDividend(tx)
			}
		}
	default:
		e.log.WithField("kind", uint16(tx.Kind)).Warn("unknown transaction kind")
		res = UnknownKind
	}
	observe(tx.Kind, res)
	return res
}

// precheck enforces the system-transaction shape: zero source account, no
// signature material, sequence zero, zero fee. Ordinary transactions are
// admitted upstream; only the system kinds pass through here.
func (e *Engine) precheck(tx Tx) Result {
	if tx.Account != (common.Address{}) {
		e.log.Warn("bad source account on system transaction")
		return BadSource
	}
	if len(tx.SigningPubKey) != 0 || len(tx.Signature) != 0 {
		e.log.Warn("bad signature on system transaction")
		return BadSignature
	}
	if tx.Sequence != 0 {
		e.log.Warn("bad sequence on system transaction")
		return BadSequence
	}
	if tx.Fee != 0 {
		e.log.Warn("non-zero fee on system transaction")
		return BadFee
	}
	return Success
}

func (e *Engine) applyDividend(tx Tx) Result {
	e.log.WithFields(logrus.Fields{
		"ledger":  tx.DividendLedger,
		"poolVBC": tx.DividendCoinsVBC,
	}).Debug("start dividend")

	table, err := dividend.ComputeRanks(e.state, e.rules)
	if err != nil {
		e.log.WithError(err).Error("power computation failed")
		return InternalFailure
	}
	actual, actualVBC, err := dividend.Distribute(
		e.state, e.rules, tx.DividendLedger, tx.DividendCoinsVBC, table)
	if err != nil {
		e.log.WithError(err).Error("dividend distribution failed")
		return InternalFailure
	}

	e.log.WithFields(logrus.Fields{
		"ledger":    tx.DividendLedger,
		"actual":    actual,
		"actualVBC": actualVBC,
	}).Info("dividend applied")
	return Success
}
