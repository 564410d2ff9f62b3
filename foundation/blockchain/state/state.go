// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/genesis"
	"github.com/ardanlabs/ledger/foundation/blockchain/mempool"
	"github.com/ardanlabs/ledger/foundation/blockchain/storage/memory"
	"github.com/ethereum/go-ethereum/crypto"
)

// Set of errors returned while constructing a ledger.
var (
	ErrKeyGeneration = errors.New("unable to generate signing key")
	ErrClock         = errors.New("unable to read the clock")
)

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of the ledger.
type EventHandler func(v string, args ...any)

// Config represents the configuration required to start the ledger.
type Config struct {
	Genesis   genesis.Genesis
	Storage   database.Storage
	KeyGen    func() (*ecdsa.PrivateKey, error)
	Clock     func() time.Time
	EvHandler EventHandler
}

// State manages the ledger. A single mutex serializes every operation,
// reads included, so mining blocks all other callers until it completes.
type State struct {
	mu sync.Mutex

	genesis    genesis.Genesis
	privateKey *ecdsa.PrivateKey
	clock      func() time.Time
	evHandler  EventHandler

	mempool *mempool.Mempool
	db      *database.Database
}

// New constructs a new ledger with a fresh signing key and a sealed
// genesis block.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	if err := cfg.Genesis.Validate(); err != nil {
		return nil, err
	}

	keyGen := cfg.KeyGen
	if keyGen == nil {
		keyGen = crypto.GenerateKey
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	strg := cfg.Storage
	if strg == nil {
		strg = memory.New()
	}

	// The ledger owns a single key that signs every transaction it accepts,
	// including the mining rewards.
	privateKey, err := keyGen()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrKeyGeneration, err)
	}

	// Access the storage for the blockchain, validating anything that
	// might already be there.
	db, err := database.New(cfg.Genesis.Difficulty, strg, ev)
	if err != nil {
		return nil, err
	}

	state := State{
		genesis:    cfg.Genesis,
		privateKey: privateKey,
		clock:      clock,
		evHandler:  ev,
		mempool:    mempool.New(),
		db:         db,
	}

	if db.Length() == 0 {
		if err := state.writeGenesis(); err != nil {
			return nil, err
		}
	}

	return &state, nil
}

// Shutdown cleanly brings the ledger down.
func (s *State) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: shutdown: started")
	defer s.evHandler("state: shutdown: completed")

	s.db.Close()

	return nil
}

// =============================================================================

// writeGenesis seals and writes the first block of the chain.
func (s *State) writeGenesis() error {
	s.evHandler("state: writeGenesis: started: name[%s]", s.genesis.Name)
	defer s.evHandler("state: writeGenesis: completed")

	timeStamp, err := s.now()
	if err != nil {
		return err
	}

	block := database.NewBlock(0, timeStamp, database.GenesisPrevHash, nil)
	if err := block.Seal(s.genesis.Difficulty, s.evHandler); err != nil {
		return err
	}

	return s.db.Write(block)
}

// now returns the current time in seconds since the epoch.
func (s *State) now() (uint64, error) {
	t := s.clock()
	if t.Unix() < 0 {
		return 0, fmt.Errorf("%w: time %s is before the epoch", ErrClock, t)
	}

	return uint64(t.Unix()), nil
}
