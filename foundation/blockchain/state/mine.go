package state

import (
	"fmt"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
)

// MinePending takes every transaction in the mempool plus a reward for the
// miner, seals them into a new block and adds the block to the chain. Every
// transaction is verified before the block is sealed. Nothing changes if
// any step fails.
func (s *State) MinePending(minerID database.AccountID) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: MinePending: MINING: started: miner[%s]", minerID)
	defer s.evHandler("state: MinePending: MINING: completed")

	// The reward is signed by the same key as every other transaction.
	rewardTx, err := database.NewTx(database.SystemAccountID, minerID, s.genesis.MiningReward)
	if err != nil {
		return database.Block{}, err
	}

	signedReward, err := rewardTx.Sign(s.privateKey)
	if err != nil {
		return database.Block{}, err
	}

	trans := append(s.mempool.Copy(), signedReward)

	s.evHandler("state: MinePending: MINING: verify transactions: txs[%d]", len(trans))

	for _, tx := range trans {
		if err := tx.Validate(); err != nil {
			return database.Block{}, fmt.Errorf("verify pending: %w", err)
		}
	}

	timeStamp, err := s.now()
	if err != nil {
		return database.Block{}, err
	}

	latestBlock := s.db.LatestBlock()
	block := database.NewBlock(s.db.Length(), timeStamp, latestBlock.Hash, trans)

	if err := s.sealAndWrite(&block); err != nil {
		return database.Block{}, err
	}

	s.mempool.Truncate()

	return block, nil
}

// AppendBlock links the block to the latest block in the chain, seals it
// and adds it to the chain. The block number must be the next number and
// every transaction must be signed, both are checked before any work is
// done. The chain keeps its own copy of the block.
func (s *State) AppendBlock(block database.Block) (database.Block, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if next := s.db.Length(); block.Number != next {
		return database.Block{}, fmt.Errorf("%w: this block is not the next number, got %d, exp %d", database.ErrChainBroken, block.Number, next)
	}

	for _, tx := range block.Trans {
		if err := tx.Validate(); err != nil {
			return database.Block{}, fmt.Errorf("append block: %w", err)
		}
	}

	block = block.Copy()
	block.PrevBlockHash = s.db.LatestBlock().Hash
	block.Hash = ""

	if err := s.sealAndWrite(&block); err != nil {
		return database.Block{}, err
	}

	return block.Copy(), nil
}

// =============================================================================

// sealAndWrite performs the proof of work for the block and writes it to
// the chain. The block is only visible once both succeed.
func (s *State) sealAndWrite(block *database.Block) error {
	s.evHandler("state: sealAndWrite: MINING: perform POW: blk[%d]: txs[%d]", block.Number, len(block.Trans))

	if err := block.Seal(s.genesis.Difficulty, s.evHandler); err != nil {
		return err
	}

	s.evHandler("state: sealAndWrite: write block: blk[%d]: hash[%s]", block.Number, block.Hash)

	if err := s.db.Write(*block); err != nil {
		return err
	}

	return nil
}
