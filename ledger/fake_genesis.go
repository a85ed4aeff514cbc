package ledger

import (
	"github.com/ethereum/go-ethereum/common"
)

// GenesisAccount describes one pre-funded account for fake-network
// initialization.
type GenesisAccount struct {
	Balance    uint64 // primary-currency drops
	BalanceVBC uint64 // secondary-currency drops
}

// ApplyFakeGenesis seeds a store with pre-funded account roots and commits
// them as the genesis state. It is used for testing, development and fake
// network initialization; real networks receive accounts through funding
// transactions, which are outside this core.
func ApplyFakeGenesis(state State, balances map[common.Address]GenesisAccount) common.Hash {
	for addr, genesis := range balances {
		state.Create(AccountRootIndex(addr), &AccountRoot{
			Account:    addr,
			Balance:    genesis.Balance,
			BalanceVBC: genesis.BalanceVBC,
		})
	}
	return state.Commit()
}
