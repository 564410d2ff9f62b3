// Package mempool maintains the pool of signed transactions waiting to be
// sealed into a block.
package mempool

import (
	"sync"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Mempool represents a cache of transactions kept in the order they
// were accepted.
type Mempool struct {
	pool []database.SignedTx
	mu   sync.RWMutex
}

// New constructs a new empty mempool.
func New() *Mempool {
	return &Mempool{}
}

// Count returns the current number of transaction in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Add appends a transaction to the end of the pool and returns the new
// size of the pool.
func (mp *Mempool) Add(tx database.SignedTx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = append(mp.pool, tx)

	return len(mp.pool)
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = nil
}

// Copy returns a copy of every transaction in the pool in the order they
// were added.
func (mp *Mempool) Copy() []database.SignedTx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	cpy := make([]database.SignedTx, len(mp.pool))
	copy(cpy, mp.pool)

	return cpy
}

// Verify validates the signature of every transaction in the pool and
// returns the first failure.
func (mp *Mempool) Verify() error {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	for _, tx := range mp.pool {
		if err := tx.Validate(); err != nil {
			return err
		}
	}

	return nil
}
