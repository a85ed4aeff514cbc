// Package transact implements the state-transition core: it applies one
// already-ordered, pre-validated special transaction to a mutable ledger
// state and reports a result code.
//
// The package owns the dispatcher (Engine), the referral transactor
// (AddReferee) and the governance transactor (amendment activation and fee
// update, the Change family). Signature, sequence and fee admission for
// ordinary transactions, consensus ordering, and persistence are the
// caller's collaborators; this core assumes a validated transaction and a
// store whose commit/rollback boundary the caller controls.
package transact

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"

	"github.com/dyguan372/rippled/dividend"
)

// TxKind identifies a special-transaction kind.
type TxKind uint16

const (
	// TxAddReferee establishes a referral edge: the originating account
	// declares the destination account as its referrer.
	TxAddReferee TxKind = iota

	// TxAmendment enacts an amendment identifier network-wide.
	TxAmendment

	// TxFee overwrites the network fee settings entry.
	TxFee

	// TxDividend distributes a dividend pool across all accounts.
	TxDividend
)

// IsSystem reports whether the kind is a system transaction: one that must
// originate from the zero account, carry no signature and have sequence
// zero.
func (k TxKind) IsSystem() bool {
	switch k {
	case TxAmendment, TxFee, TxDividend:
		return true
	default:
		return false
	}
}

func (k TxKind) String() string {
	switch k {
	case TxAddReferee:
		return "AddReferee"
	case TxAmendment:
		return "Amendment"
	case TxFee:
		return "Fee"
	case TxDividend:
		return "Dividend"
	default:
		return "Unknown"
	}
}

// Tx is the flat field model of a special transaction. A transaction kind
// reads only its own fields; unrelated fields stay zero. The flat model
// mirrors the serialized-transaction shape the admission layer hands over.
type Tx struct {
	Kind TxKind

	// Account is the originating account. Zero for system transactions.
	Account common.Address

	// Sequence, Fee, SigningPubKey and Signature are carried for the
	// system-transaction prechecks only; ordinary admission happens
	// upstream.
	Sequence      uint32
	Fee           uint64
	SigningPubKey []byte
	Signature     []byte

	// Destination is the referrer account of an AddReferee transaction.
	Destination common.Address

	// Amendment is the identifier enacted by an Amendment transaction.
	Amendment common.Hash

	// Fee-change fields.
	BaseFee           uint64
	ReferenceFeeUnits uint32
	ReserveBase       uint32
	ReserveIncrement  uint32

	// Dividend fields. DividendCoins is the proposed primary pool; it is
	// recorded by the voter but the actually-distributed primary total is
	// derived from the increase rate, so distribution reads only
	// DividendCoinsVBC.
	DividendLedger   idx.Block
	DividendCoins    uint64
	DividendCoinsVBC uint64
}

// NewDividendTx wraps a voter's dividend proposal into the system
// transaction submitted to consensus.
func NewDividendTx(p dividend.Proposal) Tx {
	return Tx{
		Kind:             TxDividend,
		DividendLedger:   p.DividendLedger,
		DividendCoins:    p.DividendCoins,
		DividendCoinsVBC: p.DividendCoinsVBC,
	}
}
