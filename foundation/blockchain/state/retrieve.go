package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ethereum/go-ethereum/crypto"
)

// RetrieveGenesis returns a copy of the genesis information.
func (s *State) RetrieveGenesis() genesis.Genesis {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.genesis
}

// RetrieveLatestBlock returns a copy the current latest block.
func (s *State) RetrieveLatestBlock() database.Block {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.LatestBlock()
}

// RetrieveChainLength returns the number of blocks in the chain.
func (s *State) RetrieveChainLength() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.Length()
}

// RetrieveMempool returns a copy of the mempool in the order the
// transactions will be sealed.
func (s *State) RetrieveMempool() []database.SignedTx {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mempool.Copy()
}

// RetrieveSignerAddress returns the address of the key the ledger signs
// transactions with.
func (s *State) RetrieveSignerAddress() string {
	return crypto.PubkeyToAddress(s.privateKey.PublicKey).String()
}
