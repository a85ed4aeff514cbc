package ledger

import (
	"bytes"
	"sort"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/sirupsen/logrus"
)

// MemStore is the in-memory ledger entry store. It implements State for one
// transaction at a time: the caller applies a transaction against the
// working set, then either Commits it or Discards it before starting the
// next one. The store is not safe for concurrent use; transaction
// application is single-threaded by design.
type MemStore struct {
	entries  map[common.Hash]Entry
	accounts map[common.Address]common.Hash

	working map[common.Hash]Entry

	digest common.Hash
	log    *logrus.Entry
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		entries:  make(map[common.Hash]Entry),
		accounts: make(map[common.Address]common.Hash),
		working:  make(map[common.Hash]Entry),
		log:      logrus.WithField("module", "ledger"),
	}
}

// Fetch returns the entry at index. Within a transaction the working copy
// shadows the committed entry, so the applying transaction reads its own
// writes.
func (s *MemStore) Fetch(index common.Hash) (Entry, bool) {
	if e, ok := s.working[index]; ok {
		return e, true
	}
	e, ok := s.entries[index]
	return e, ok
}

// FetchForUpdate returns the owned working copy of the entry at index,
// creating it from the committed entry on first use.
func (s *MemStore) FetchForUpdate(index common.Hash) (Entry, bool) {
	if e, ok := s.working[index]; ok {
		return e, true
	}
	e, ok := s.entries[index]
	if !ok {
		return nil, false
	}
	cp := e.Copy()
	s.working[index] = cp
	return cp, true
}

// Create registers a new entry in the working set.
func (s *MemStore) Create(index common.Hash, e Entry) Entry {
	s.working[index] = e
	return e
}

// VisitAccounts iterates committed account roots in ascending address
// order. Working-set copies are not visible; a full-state scan always runs
// against the snapshot taken at the last commit.
func (s *MemStore) VisitAccounts(fn func(*AccountRoot) bool) {
	addrs := make([]common.Address, 0, len(s.accounts))
	for a := range s.accounts {
		addrs = append(addrs, a)
	}
	sort.Slice(addrs, func(i, j int) bool {
		return bytes.Compare(addrs[i][:], addrs[j][:]) < 0
	})
	for _, a := range addrs {
		acct := s.entries[s.accounts[a]].(*AccountRoot)
		if !fn(acct) {
			return
		}
	}
}

// Dirty returns the indexes of the current working set.
func (s *MemStore) Dirty() []common.Hash {
	dirty := make([]common.Hash, 0, len(s.working))
	for index := range s.working {
		dirty = append(dirty, index)
	}
	sort.Slice(dirty, func(i, j int) bool {
		return bytes.Compare(dirty[i][:], dirty[j][:]) < 0
	})
	return dirty
}

// Commit applies the working set atomically and recomputes the state
// digest.
func (s *MemStore) Commit() common.Hash {
	for index, e := range s.working {
		s.entries[index] = e
		if acct, ok := e.(*AccountRoot); ok {
			s.accounts[acct.Account] = index
		}
	}
	if n := len(s.working); n > 0 {
		s.log.WithField("entries", n).Debug("committed working set")
	}
	s.working = make(map[common.Hash]Entry)
	s.digest = s.computeDigest()
	return s.digest
}

// Discard drops the working set.
func (s *MemStore) Discard() {
	s.working = make(map[common.Hash]Entry)
}

// Digest returns the state digest as of the last commit.
func (s *MemStore) Digest() common.Hash {
	return s.digest
}

// computeDigest hashes every committed entry's canonical encoding in index
// order. Two stores hold the same state iff their digests match.
func (s *MemStore) computeDigest() common.Hash {
	indexes := make([]common.Hash, 0, len(s.entries))
	for index := range s.entries {
		indexes = append(indexes, index)
	}
	sort.Slice(indexes, func(i, j int) bool {
		return bytes.Compare(indexes[i][:], indexes[j][:]) < 0
	})
	acc := make([]byte, 0, len(indexes)*2*common.HashLength)
	for _, index := range indexes {
		leaf := crypto.Keccak256(index.Bytes(), EncodeEntry(s.entries[index]))
		acc = append(acc, leaf...)
	}
	return crypto.Keccak256Hash(acc)
}
