package transact

import (
	"github.com/dyguan372/rippled/ledger"
)

// applyAmendment enacts an amendment identifier. The amendment set entry is
// created on first use; once an identifier is present it is never removed,
// and enacting it again is a soft, idempotent rejection.
func (e *Engine) applyAmendment(tx Tx) Result {
	entry, ok := e.state.FetchForUpdate(ledger.AmendmentsIndex())
	if !ok {
		entry = e.state.Create(ledger.AmendmentsIndex(), &ledger.Amendments{})
	}
	amendments := entry.(*ledger.Amendments)

	if amendments.Contains(tx.Amendment) {
		return AlreadyEnacted
	}
	amendments.Amendments = append(amendments.Amendments, tx.Amendment)

	e.amendments.Enable(tx.Amendment)
	if !e.amendments.IsSupported(tx.Amendment) {
		e.log.WithField("amendment", tx.Amendment.Hex()).
			Error("unsupported amendment enacted, node is amendment blocked")
		e.blocker.SetAmendmentBlocked()
	}

	e.log.WithField("amendment", tx.Amendment.Hex()).Info("amendment enacted")
	return Success
}

// applyFee overwrites the fee settings entry with the transaction's values.
// All four fields are replaced unconditionally; value ranges were validated
// upstream.
func (e *Engine) applyFee(tx Tx) Result {
	entry, ok := e.state.FetchForUpdate(ledger.FeeSettingsIndex())
	if !ok {
		entry = e.state.Create(ledger.FeeSettingsIndex(), &ledger.FeeSettings{})
	}
	fees := entry.(*ledger.FeeSettings)

	fees.BaseFee = tx.BaseFee
	fees.ReferenceFeeUnits = tx.ReferenceFeeUnits
	fees.ReserveBase = tx.ReserveBase
	fees.ReserveIncrement = tx.ReserveIncrement

	e.log.Warn("fees have been changed")
	return Success
}
