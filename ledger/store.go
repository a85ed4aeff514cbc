package ledger

import (
	"github.com/ethereum/go-ethereum/common"
)

// View is a read-only snapshot of committed ledger state. Reads through a
// View never observe another transaction's uncommitted working set.
type View interface {
	// Fetch returns the entry at the given index, or false if absent.
	// The returned entry must be treated as immutable.
	Fetch(index common.Hash) (Entry, bool)

	// VisitAccounts calls fn for every committed account root, in
	// ascending address order, until fn returns false. The deterministic
	// order makes every full-state pass reproducible.
	VisitAccounts(fn func(*AccountRoot) bool)
}

// State is the mutable handle a single transaction's application works
// against. Mutation is an explicit ownership transfer: FetchForUpdate and
// Create return owned working copies that become visible atomically at
// Commit, or vanish at Discard. There is no partial visibility and no
// partial persistence.
type State interface {
	View

	// FetchForUpdate returns an owned, mutable working copy of the entry
	// at the given index and registers it as dirty. Repeated calls within
	// one transaction return the same working copy, so an entry is marked
	// dirty exactly once no matter how often it is touched.
	FetchForUpdate(index common.Hash) (Entry, bool)

	// Create registers a new entry at the given index in the working set
	// and returns it. The caller keeps ownership of the entry until
	// Commit.
	Create(index common.Hash, e Entry) Entry

	// Dirty returns the indexes of all entries in the working set.
	Dirty() []common.Hash

	// Commit applies the whole working set atomically and returns the new
	// state digest.
	Commit() common.Hash

	// Discard throws the working set away, leaving committed state
	// untouched.
	Discard()
}
