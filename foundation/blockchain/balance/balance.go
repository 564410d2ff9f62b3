// Package balance projects account balances from the sealed blocks of
// the chain.
package balance

import (
	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// Of folds over every transaction in every block and returns the balance
// for the specified account. A transaction an account sends to itself
// counts as a credit.
func Of(blocks []database.Block, accountID database.AccountID) float64 {
	var balance float64

	for _, block := range blocks {
		for _, tx := range block.Trans {
			switch accountID {
			case tx.Recipient:
				balance += tx.Amount
			case tx.Sender:
				balance -= tx.Amount
			}
		}
	}

	return balance
}

// Sheet folds over every transaction in every block and returns the
// balance of every account that appears in the chain.
func Sheet(blocks []database.Block) map[database.AccountID]float64 {
	sheet := make(map[database.AccountID]float64)

	for _, block := range blocks {
		for _, tx := range block.Trans {
			sheet[tx.Recipient] += tx.Amount
			if tx.Sender != tx.Recipient {
				sheet[tx.Sender] -= tx.Amount
			}
		}
	}

	return sheet
}
