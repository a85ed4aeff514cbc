package ledger

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Ledger namespace bytes. Each entry family hashes its key material under a
// distinct space byte so that indexes from different families can never
// collide.
const (
	spaceAccount   byte = 'a'
	spaceAmendment byte = 'f'
	spaceFee       byte = 'e'
	spaceDividend  byte = 'D'
)

// Singleton entry indexes are fixed for the lifetime of the network.
var (
	amendmentsIndex  = crypto.Keccak256Hash([]byte{0, spaceAmendment})
	feeSettingsIndex = crypto.Keccak256Hash([]byte{0, spaceFee})
	dividendIndex    = crypto.Keccak256Hash([]byte{0, spaceDividend})
)

// AccountRootIndex derives the ledger index of an account's root entry.
func AccountRootIndex(addr common.Address) common.Hash {
	return crypto.Keccak256Hash([]byte{0, spaceAccount}, addr.Bytes())
}

// AmendmentsIndex returns the index of the amendment set entry.
func AmendmentsIndex() common.Hash { return amendmentsIndex }

// FeeSettingsIndex returns the index of the fee settings entry.
func FeeSettingsIndex() common.Hash { return feeSettingsIndex }

// DividendIndex returns the index of the dividend record entry.
func DividendIndex() common.Hash { return dividendIndex }
