package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/balance"
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// QueryBalance returns the balance of the account by folding over every
// transaction in the chain. Transactions in the mempool are not included.
func (s *State) QueryBalance(accountID database.AccountID) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocks, err := s.db.Blocks()
	if err != nil {
		return 0, err
	}

	return balance.Of(blocks, accountID), nil
}

// QueryBalances returns the balance of every account in the chain.
func (s *State) QueryBalances() (map[database.AccountID]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocks, err := s.db.Blocks()
	if err != nil {
		return nil, err
	}

	return balance.Sheet(blocks), nil
}

// QueryBlocks returns every block in the chain starting with genesis.
func (s *State) QueryBlocks() ([]database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Blocks()
}

// QueryBlocksByAccount returns the set of blocks with a transaction sent
// or received by the account. If the account is empty, all blocks are
// returned.
func (s *State) QueryBlocksByAccount(accountID database.AccountID) ([]database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []database.Block

	iter := s.db.ForEach()
	for block, err := iter.Next(); !iter.Done(); block, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		if accountID == "" {
			out = append(out, block)
			continue
		}

		for _, tx := range block.Trans {
			if tx.Sender == accountID || tx.Recipient == accountID {
				out = append(out, block)
				break
			}
		}
	}

	return out, nil
}

// ValidateChain walks the entire chain and checks every block is sealed,
// linked to its parent and carries only valid transactions.
func (s *State) ValidateChain() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Validate()
}

// BalanceSheet is a view of every balance taken together with the block
// and mempool state it was computed from.
type BalanceSheet struct {
	Balances    map[database.AccountID]float64
	LatestBlock database.Block
	Uncommitted int
}

// QueryBalanceSheet returns the balance of every account along with the
// latest block and the number of uncommitted transactions, all read under
// a single hold of the ledger lock.
func (s *State) QueryBalanceSheet() (BalanceSheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blocks, err := s.db.Blocks()
	if err != nil {
		return BalanceSheet{}, err
	}

	sheet := BalanceSheet{
		Balances:    balance.Sheet(blocks),
		LatestBlock: s.db.LatestBlock(),
		Uncommitted: s.mempool.Count(),
	}

	return sheet, nil
}

// AuditPending verifies every transaction in the mempool and returns the
// number of transactions checked. The error is the first verification
// failure.
func (s *State) AuditPending() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mempool.Count(), s.mempool.Verify()
}

// AuditChain validates the entire chain and returns the number of blocks
// checked. The error is the first validation failure.
func (s *State) AuditChain() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Length(), s.db.Validate()
}
