// Package ledger defines the ledger data model and the entry store used by
// the state-transition core.
//
// A ledger is a versioned map from a 256-bit entry index to a structured
// entry. Four entry types matter to this core:
//   - AccountRoot: one per funded account, holding balances and the
//     referral fields
//   - Amendments: a single ledger-wide entry with the enacted amendment set
//   - FeeSettings: a single ledger-wide entry with the network fee scalars
//   - DividendRecord: a single ledger-wide entry recording the last dividend
//
// Mutation goes through an explicit working set: FetchForUpdate returns an
// owned copy that becomes visible, atomically, at Commit. Reads that never
// lead to a write use the snapshot View.
package ledger

import (
	"github.com/Fantom-foundation/lachesis-base/inter/idx"
	"github.com/ethereum/go-ethereum/common"
)

// EntryType identifies the shape of a ledger entry. Values follow the
// original ledger-format letters.
type EntryType uint16

const (
	EntryAccountRoot EntryType = 'a'
	EntryAmendments  EntryType = 'f'
	EntryFeeSettings EntryType = 's'
	EntryDividend    EntryType = 'd'
)

// String returns the entry type name used in logs.
func (t EntryType) String() string {
	switch t {
	case EntryAccountRoot:
		return "AccountRoot"
	case EntryAmendments:
		return "Amendments"
	case EntryFeeSettings:
		return "FeeSettings"
	case EntryDividend:
		return "DividendRecord"
	default:
		return "Unknown"
	}
}

// Entry is a structured ledger object. Implementations are plain structs;
// Copy returns a deep copy so that a working-set mutation can never leak
// into the committed state before Commit.
type Entry interface {
	Type() EntryType
	Copy() Entry
}

// AccountRoot is the per-account ledger entry.
type AccountRoot struct {
	// Account is the address this entry belongs to.
	Account common.Address

	// Balance is the primary-currency balance, in drops.
	Balance uint64

	// BalanceVBC is the secondary-currency balance, in drops.
	BalanceVBC uint64

	// Sequence is the account's transaction sequence number. It is owned
	// by the admission layer; this core only carries it.
	Sequence uint32

	// Referee is the account that introduced this one. The zero address
	// means the account has no referrer. Once non-zero the field is
	// write-once: it can never be changed or cleared.
	Referee common.Address

	// References is the ordered, append-only list of accounts this one
	// introduced. A given account appears at most once.
	References []common.Address
}

func (a *AccountRoot) Type() EntryType { return EntryAccountRoot }

func (a *AccountRoot) Copy() Entry {
	cp := *a
	cp.References = append([]common.Address(nil), a.References...)
	return &cp
}

// HasReference reports whether addr is already present in the references
// list.
func (a *AccountRoot) HasReference(addr common.Address) bool {
	for _, ref := range a.References {
		if ref == addr {
			return true
		}
	}
	return false
}

// Amendments is the singleton ledger entry holding the set of enacted
// amendment identifiers. The set grows monotonically; this core never
// removes an amendment.
type Amendments struct {
	Amendments []common.Hash
}

func (a *Amendments) Type() EntryType { return EntryAmendments }

func (a *Amendments) Copy() Entry {
	cp := *a
	cp.Amendments = append([]common.Hash(nil), a.Amendments...)
	return &cp
}

// Contains reports whether the amendment id is already enacted.
func (a *Amendments) Contains(id common.Hash) bool {
	for _, enacted := range a.Amendments {
		if enacted == id {
			return true
		}
	}
	return false
}

// FeeSettings is the singleton ledger entry holding the four network fee
// scalars. A fee-change transaction overwrites all four fields; there is no
// partial update.
type FeeSettings struct {
	BaseFee           uint64
	ReferenceFeeUnits uint32
	ReserveBase       uint32
	ReserveIncrement  uint32
}

func (f *FeeSettings) Type() EntryType { return EntryFeeSettings }

func (f *FeeSettings) Copy() Entry {
	cp := *f
	return &cp
}

// DividendRecord is the singleton ledger entry recording the last applied
// dividend: the ledger sequence it was computed for and the two totals that
// were actually distributed. It is an audit trail, not an accumulator, and
// is overwritten by each dividend transaction.
type DividendRecord struct {
	DividendLedger   idx.Block
	DividendCoins    uint64
	DividendCoinsVBC uint64
}

func (d *DividendRecord) Type() EntryType { return EntryDividend }

func (d *DividendRecord) Copy() Entry {
	cp := *d
	return &cp
}
