package state

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// SubmitTransaction constructs a transaction, signs it with the ledger's
// key and adds it to the mempool. There is no balance check, an account
// can send more than it holds.
func (s *State) SubmitTransaction(sender database.AccountID, recipient database.AccountID, amount float64) (database.SignedTx, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := database.NewTx(sender, recipient, amount)
	if err != nil {
		return database.SignedTx{}, err
	}

	signedTx, err := tx.Sign(s.privateKey)
	if err != nil {
		return database.SignedTx{}, err
	}

	n := s.mempool.Add(signedTx)
	s.evHandler("state: SubmitTransaction: tx[%s]: mempool[%d]", signedTx.Tx, n)

	return signedTx, nil
}

// VerifyPending validates the signature of every transaction in the
// mempool and returns the first failure.
func (s *State) VerifyPending() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mempool.Verify()
}
