package public

import "github.com/ardanlabs/ledger/foundation/blockchain/database"

type newTx struct {
	Sender    string  `json:"sender" validate:"required"`
	Recipient string  `json:"recipient" validate:"required"`
	Amount    float64 `json:"amount" validate:"gte=0"`
}

type mineRequest struct {
	MinerAddress string `json:"miner_address" validate:"required"`
}

type status struct {
	Status string `json:"status"`
}

type walletBalance struct {
	Balance float64 `json:"balance"`
}

type balance struct {
	Account database.AccountID `json:"account"`
	Balance float64            `json:"balance"`
}

type balances struct {
	LatestBlock string    `json:"latest_block"`
	Uncommitted int       `json:"uncommitted"`
	Balances    []balance `json:"balances"`
}

type tx struct {
	Sender    database.AccountID `json:"sender"`
	Recipient database.AccountID `json:"recipient"`
	Amount    float64            `json:"amount"`
	Signer    string             `json:"signer,omitempty"`
	Sig       string             `json:"sig"`
}

type block struct {
	Number        uint64 `json:"index"`
	TimeStamp     uint64 `json:"timestamp"`
	PrevBlockHash string `json:"previous_hash"`
	Hash          string `json:"hash"`
	Nonce         uint64 `json:"nonce"`
	Transactions  []tx   `json:"transactions"`
}

type verification struct {
	Valid bool   `json:"valid"`
	Count int    `json:"count"`
	Error string `json:"error,omitempty"`
}

// =============================================================================

func toTx(signedTx database.SignedTx) tx {
	signer, _ := signedTx.SignerAddress()

	return tx{
		Sender:    signedTx.Sender,
		Recipient: signedTx.Recipient,
		Amount:    signedTx.Amount,
		Signer:    signer,
		Sig:       signedTx.SignatureString(),
	}
}

func toTxs(trans []database.SignedTx) []tx {
	txs := make([]tx, len(trans))
	for i, tran := range trans {
		txs[i] = toTx(tran)
	}

	return txs
}

func toBlock(blk database.Block) block {
	return block{
		Number:        blk.Number,
		TimeStamp:     blk.TimeStamp,
		PrevBlockHash: blk.PrevBlockHash,
		Hash:          blk.Hash,
		Nonce:         blk.Nonce,
		Transactions:  toTxs(blk.Trans),
	}
}
