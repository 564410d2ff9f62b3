package database

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
)

// GenesisPrevHash is the previous hash recorded by the genesis block since
// there is no block before it.
const GenesisPrevHash = "0"

// =============================================================================

// Block represents a group of transactions batched together and sealed
// by proof of work.
type Block struct {
	Number        uint64     `json:"index"`         // Position of the block in the chain.
	TimeStamp     uint64     `json:"timestamp"`     // Time the block was created.
	Trans         []SignedTx `json:"transactions"`  // Transactions in the order they were accepted.
	PrevBlockHash string     `json:"previous_hash"` // Hash of the previous block in the chain.
	Hash          string     `json:"hash"`          // Hash of this block once sealed.
	Nonce         uint64     `json:"nonce"`         // Value identified to solve the hash solution.
}

// blockContent is what gets hashed. The hash field is left out so the
// digest never depends on a previous attempt's hash.
type blockContent struct {
	Number        uint64     `json:"index"`
	TimeStamp     uint64     `json:"timestamp"`
	Trans         []SignedTx `json:"transactions"`
	PrevBlockHash string     `json:"previous_hash"`
	Nonce         uint64     `json:"nonce"`
}

// NewBlock constructs an unsealed block with its own copy of the
// transactions.
func NewBlock(number uint64, timeStamp uint64, prevBlockHash string, trans []SignedTx) Block {
	cpy := make([]SignedTx, len(trans))
	for i, tx := range trans {
		cpy[i] = tx.Copy()
	}

	return Block{
		Number:        number,
		TimeStamp:     timeStamp,
		Trans:         cpy,
		PrevBlockHash: prevBlockHash,
	}
}

// Copy returns a deep copy of the block so the copy can be changed without
// touching a block held by the chain.
func (b Block) Copy() Block {
	cpy := b
	if b.Trans != nil {
		cpy.Trans = make([]SignedTx, len(b.Trans))
		for i, tx := range b.Trans {
			cpy.Trans[i] = tx.Copy()
		}
	}

	return cpy
}

// ComputeHash returns the content digest of the block for the current
// nonce.
func (b Block) ComputeHash() (string, error) {
	content := blockContent{
		Number:        b.Number,
		TimeStamp:     b.TimeStamp,
		Trans:         b.Trans,
		PrevBlockHash: b.PrevBlockHash,
		Nonce:         b.Nonce,
	}

	return signature.Hash(content)
}

// Seal does the work of mining to find a nonce that solves the hash puzzle
// for the specified difficulty. Pointer semantics are being used since a
// nonce is being discovered. There is no upper bound on the attempts.
func (b *Block) Seal(difficulty uint, evHandler func(v string, args ...any)) error {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	ev("database: Seal: MINING: started: blk[%d]: difficulty[%d]", b.Number, difficulty)

	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: Seal: MINING: attempts[%d]", attempts)
		}

		// Hash the block and check if we have solved the puzzle.
		hash, err := b.ComputeHash()
		if err != nil {
			return err
		}

		if !isHashSolved(difficulty, hash) {
			b.Nonce++
			continue
		}

		b.Hash = hash

		ev("database: Seal: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", b.PrevBlockHash, hash)
		ev("database: Seal: MINING: attempts[%d]", attempts)

		return nil
	}
}

// IsSealed reports whether the recorded hash matches the content and
// solves the puzzle for the specified difficulty.
func (b Block) IsSealed(difficulty uint) bool {
	hash, err := b.ComputeHash()
	if err != nil {
		return false
	}

	return hash == b.Hash && isHashSolved(difficulty, hash)
}

// ValidateGenesis checks the block can be the first block of a chain.
func (b Block) ValidateGenesis(difficulty uint) error {
	if b.Number != 0 {
		return fmt.Errorf("%w: genesis number is %d", ErrChainBroken, b.Number)
	}

	if b.PrevBlockHash != GenesisPrevHash {
		return fmt.Errorf("%w: genesis previous hash is %q", ErrChainBroken, b.PrevBlockHash)
	}

	if !b.IsSealed(difficulty) {
		return fmt.Errorf("%w: %s invalid block hash", ErrChainBroken, b.Hash)
	}

	return nil
}

// ValidateBlock takes a block and validates it to be the next block after
// the specified previous block.
func (b Block) ValidateBlock(previousBlock Block, difficulty uint) error {
	nextNumber := previousBlock.Number + 1
	if b.Number != nextNumber {
		return fmt.Errorf("%w: this block is not the next number, got %d, exp %d", ErrChainBroken, b.Number, nextNumber)
	}

	if b.PrevBlockHash != previousBlock.Hash {
		return fmt.Errorf("%w: parent block hash doesn't match our known parent, got %s, exp %s", ErrChainBroken, b.PrevBlockHash, previousBlock.Hash)
	}

	if !b.IsSealed(difficulty) {
		return fmt.Errorf("%w: %s invalid block hash", ErrChainBroken, b.Hash)
	}

	for _, tx := range b.Trans {
		if err := tx.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// =============================================================================

// isHashSolved checks the hash to make sure it complies with
// the POW rules. We need to match a difficulty number of 0's.
func isHashSolved(difficulty uint, hash string) bool {
	if uint(len(hash)) < difficulty {
		return false
	}

	for _, c := range hash[:difficulty] {
		if c != '0' {
			return false
		}
	}

	return true
}
