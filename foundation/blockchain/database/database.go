// Package database handles all the lower level support for maintaining the
// chain of sealed blocks and the transactions they carry.
package database

import (
	"errors"
	"fmt"
)

// Storage interface represents the behavior required to be implemented by any
// package providing support for storing and reading the blockchain.
type Storage interface {
	Write(block Block) error
	GetBlock(num uint64) (Block, error)
	ForEach() Iterator
	Close() error
	Reset() error
}

// Iterator interface represents the behavior required to be implemented by any
// package providing support to iterate over the blocks.
type Iterator interface {
	Next() (Block, error)
	Done() bool
}

// =============================================================================

// Database manages the chain of blocks. It is not safe for concurrent use,
// the caller is expected to serialize access.
type Database struct {
	difficulty  uint
	latestBlock Block
	length      uint64

	storage Storage
}

// New constructs a new database over the specified storage. Any blocks
// already in storage are validated in order before the database is
// returned.
func New(difficulty uint, storage Storage, evHandler func(v string, args ...any)) (*Database, error) {
	ev := func(v string, args ...any) {
		if evHandler != nil {
			evHandler(v, args...)
		}
	}

	db := Database{
		difficulty: difficulty,
		storage:    storage,
	}

	iter := db.storage.ForEach()
	for block, err := iter.Next(); !iter.Done(); block, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		if err := db.validate(block); err != nil {
			return nil, err
		}

		ev("database: New: loaded: blk[%d]: hash[%s]", block.Number, block.Hash)

		db.latestBlock = block.Copy()
		db.length++
	}

	return &db, nil
}

// Close closes the underlying storage.
func (db *Database) Close() {
	db.storage.Close()
}

// Reset clears the chain, including the genesis block.
func (db *Database) Reset() error {
	if err := db.storage.Reset(); err != nil {
		return err
	}

	db.latestBlock = Block{}
	db.length = 0

	return nil
}

// Difficulty returns the number of leading zeros required of block hashes.
func (db *Database) Difficulty() uint {
	return db.difficulty
}

// Length returns the number of blocks in the chain.
func (db *Database) Length() uint64 {
	return db.length
}

// LatestBlock returns a copy of the latest block.
func (db *Database) LatestBlock() Block {
	return db.latestBlock.Copy()
}

// Write validates the block extends the chain and then adds it. The first
// block written must be a genesis block.
func (db *Database) Write(block Block) error {
	if err := db.validate(block); err != nil {
		return err
	}

	if err := db.storage.Write(block); err != nil {
		return err
	}

	db.latestBlock = block.Copy()
	db.length++

	return nil
}

// ForEach returns an iterator to walk through all the blocks
// starting with the genesis block.
func (db *Database) ForEach() Iterator {
	return db.storage.ForEach()
}

// GetBlock searches the blockchain to locate and return the contents of the
// specified block by number.
func (db *Database) GetBlock(num uint64) (Block, error) {
	return db.storage.GetBlock(num)
}

// Blocks returns every block in the chain in order.
func (db *Database) Blocks() ([]Block, error) {
	blocks := make([]Block, 0, db.length)

	iter := db.storage.ForEach()
	for block, err := iter.Next(); !iter.Done(); block, err = iter.Next() {
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	return blocks, nil
}

// Validate walks the entire chain and checks every block is sealed and
// linked to its parent.
func (db *Database) Validate() error {
	if db.length == 0 {
		return errors.New("chain is empty")
	}

	var prev Block
	var count uint64

	iter := db.storage.ForEach()
	for block, err := iter.Next(); !iter.Done(); block, err = iter.Next() {
		if err != nil {
			return err
		}

		switch count {
		case 0:
			err = block.ValidateGenesis(db.difficulty)
		default:
			err = block.ValidateBlock(prev, db.difficulty)
		}
		if err != nil {
			return fmt.Errorf("blk[%d]: %w", block.Number, err)
		}

		prev = block
		count++
	}

	if count != db.length {
		return fmt.Errorf("%w: walked %d blocks, exp %d", ErrChainBroken, count, db.length)
	}

	return nil
}

// =============================================================================

// validate checks the block against the current tip of the chain.
func (db *Database) validate(block Block) error {
	if db.length == 0 {
		return block.ValidateGenesis(db.difficulty)
	}

	return block.ValidateBlock(db.latestBlock, db.difficulty)
}
