package database_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/database"
	"github.com/ardanlabs/ledger/foundation/blockchain/storage/memory"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

const pkHexKey = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"

func sign(t *testing.T, sender string, recipient string, amount float64) database.SignedTx {
	t.Helper()

	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to load the private key: %v", failed, err)
	}

	tx, err := database.NewTx(database.AccountID(sender), database.AccountID(recipient), amount)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to construct a transaction: %v", failed, err)
	}

	signedTx, err := tx.Sign(pk)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to sign the transaction: %v", failed, err)
	}

	return signedTx
}

// =============================================================================

func Test_SignVerify(t *testing.T) {
	t.Log("Given the need to sign and verify transactions.")
	{
		t.Logf("\tTest 0:\tWhen handling a signed transaction.")
		{
			signedTx := sign(t, "Alice", "Bob", 10.5)

			if err := signedTx.Validate(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to verify the transaction: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to verify the transaction.", success)

			data, err := json.Marshal(signedTx)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to marshal the transaction: %v", failed, err)
			}

			var decoded database.SignedTx
			if err := json.Unmarshal(data, &decoded); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to unmarshal the transaction: %v", failed, err)
			}

			if err := decoded.Validate(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to verify the transaction after a round trip: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to verify the transaction after a round trip.", success)
		}

		t.Logf("\tTest 1:\tWhen handling an unsigned transaction.")
		{
			tx, err := database.NewTx("Alice", "Bob", 1)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to construct a transaction: %v", failed, err)
			}

			unsigned := database.SignedTx{Tx: tx}
			if err := unsigned.Validate(); !errors.Is(err, database.ErrMissingCredentials) {
				t.Fatalf("\t%s\tTest 1:\tShould get missing credentials, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould get missing credentials.", success)

			signedTx := sign(t, "Alice", "Bob", 1)
			signedTx.PublicKey = nil
			if err := signedTx.Validate(); !errors.Is(err, database.ErrMissingCredentials) {
				t.Fatalf("\t%s\tTest 1:\tShould get missing credentials without a public key, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould get missing credentials without a public key.", success)
		}
	}
}

func Test_Tampering(t *testing.T) {
	type table struct {
		name   string
		mutate func(tx *database.SignedTx)
	}

	tt := []table{
		{name: "sender", mutate: func(tx *database.SignedTx) { tx.Sender = "Mallory" }},
		{name: "recipient", mutate: func(tx *database.SignedTx) { tx.Recipient = "Mallory" }},
		{name: "amount", mutate: func(tx *database.SignedTx) { tx.Amount = 1_000_000 }},
	}

	t.Log("Given the need to detect changes to signed transactions.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen changing the %s.", testID, tst.name)
			{
				f := func(t *testing.T) {
					signedTx := sign(t, "Alice", "Bob", 10)
					tst.mutate(&signedTx)

					err := signedTx.Validate()
					if !errors.Is(err, database.ErrInvalidSignature) {
						t.Fatalf("\t%s\tTest %d:\tShould get an invalid signature, got %v.", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould get an invalid signature.", success, testID)
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_NewTx(t *testing.T) {
	t.Log("Given the need to construct transactions.")
	{
		t.Logf("\tTest 0:\tWhen handling bad input.")
		{
			if _, err := database.NewTx("Alice", "Bob", -1); !errors.Is(err, database.ErrNegativeAmount) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a negative amount, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a negative amount.", success)

			if _, err := database.NewTx("", "Bob", 1); !errors.Is(err, database.ErrInvalidAccount) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a blank sender.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a blank sender.", success)

			if _, err := database.NewTx("Alice", " Bob", 1); !errors.Is(err, database.ErrInvalidAccount) {
				t.Fatalf("\t%s\tTest 0:\tShould reject a padded recipient.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould reject a padded recipient.", success)
		}

		t.Logf("\tTest 1:\tWhen handling a zero amount.")
		{
			if _, err := database.NewTx("Alice", "Bob", 0); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould accept a zero amount: %v", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould accept a zero amount.", success)
		}
	}
}

func Test_Seal(t *testing.T) {
	type table struct {
		name       string
		difficulty uint
	}

	tt := []table{
		{name: "zero", difficulty: 0},
		{name: "one", difficulty: 1},
		{name: "two", difficulty: 2},
		{name: "three", difficulty: 3},
	}

	t.Log("Given the need to seal blocks.")
	{
		for testID, tst := range tt {
			t.Logf("\tTest %d:\tWhen sealing at difficulty %d.", testID, tst.difficulty)
			{
				f := func(t *testing.T) {
					trans := []database.SignedTx{sign(t, "Alice", "Bob", 10)}
					block := database.NewBlock(1, 1700000000, "abc", trans)

					if err := block.Seal(tst.difficulty, nil); err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to seal the block: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to seal the block.", success, testID)

					if !strings.HasPrefix(block.Hash, strings.Repeat("0", int(tst.difficulty))) {
						t.Fatalf("\t%s\tTest %d:\tShould have %d leading zeros: %s", failed, testID, tst.difficulty, block.Hash)
					}
					t.Logf("\t%s\tTest %d:\tShould have %d leading zeros.", success, testID, tst.difficulty)

					hash, err := block.ComputeHash()
					if err != nil || hash != block.Hash {
						t.Fatalf("\t%s\tTest %d:\tShould recompute the same hash: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould recompute the same hash.", success, testID)

					if !block.IsSealed(tst.difficulty) {
						t.Fatalf("\t%s\tTest %d:\tShould report the block as sealed.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould report the block as sealed.", success, testID)

					if tst.difficulty == 0 && block.Nonce != 0 {
						t.Fatalf("\t%s\tTest %d:\tShould seal at nonce 0, got %d.", failed, testID, block.Nonce)
					}
				}

				t.Run(tst.name, f)
			}
		}
	}
}

func Test_HashIgnoresHashField(t *testing.T) {
	t.Log("Given the need for the digest to be independent of the hash field.")
	{
		t.Logf("\tTest 0:\tWhen the hash field holds a stale value.")
		{
			block := database.NewBlock(3, 1700000000, "abc", []database.SignedTx{sign(t, "Alice", "Bob", 1)})

			h1, err := block.ComputeHash()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to hash the block: %v", failed, err)
			}

			block.Hash = "stale"
			h2, err := block.ComputeHash()
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to hash the block: %v", failed, err)
			}

			if h1 != h2 {
				t.Logf("\t%s\tTest 0:\tgot: %s", failed, h2)
				t.Logf("\t%s\tTest 0:\texp: %s", failed, h1)
				t.Fatalf("\t%s\tTest 0:\tShould get the same digest.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould get the same digest.", success)

			block.Nonce++
			h3, _ := block.ComputeHash()
			if h3 == h1 {
				t.Fatalf("\t%s\tTest 0:\tShould get a new digest for a new nonce.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould get a new digest for a new nonce.", success)
		}
	}
}

func Test_Chain(t *testing.T) {
	const difficulty = 1

	t.Log("Given the need to maintain a chain of blocks.")
	{
		t.Logf("\tTest 0:\tWhen writing blocks in order.")
		{
			db, err := database.New(difficulty, memory.New(), nil)
			if err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to open the database: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to open the database.", success)

			genesis := database.NewBlock(0, 1700000000, database.GenesisPrevHash, nil)
			if err := genesis.Seal(difficulty, nil); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to seal genesis: %v", failed, err)
			}

			if err := db.Write(genesis); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to write genesis: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to write genesis.", success)

			next := database.NewBlock(1, 1700000001, genesis.Hash, []database.SignedTx{sign(t, "Alice", "Bob", 1)})
			if err := next.Seal(difficulty, nil); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to seal block 1: %v", failed, err)
			}

			if err := db.Write(next); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould be able to write block 1: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to write block 1.", success)

			if db.Length() != 2 || db.LatestBlock().Hash != next.Hash {
				t.Fatalf("\t%s\tTest 0:\tShould have block 1 as the latest block.", failed)
			}
			t.Logf("\t%s\tTest 0:\tShould have block 1 as the latest block.", success)

			if err := db.Validate(); err != nil {
				t.Fatalf("\t%s\tTest 0:\tShould validate the chain: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould validate the chain.", success)

			blocks, err := db.Blocks()
			if err != nil || len(blocks) != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould get back 2 blocks: %d %v", failed, len(blocks), err)
			}
			t.Logf("\t%s\tTest 0:\tShould get back 2 blocks.", success)

			reopened, err := database.New(difficulty, storageOf(t, blocks), nil)
			if err != nil || reopened.Length() != 2 {
				t.Fatalf("\t%s\tTest 0:\tShould be able to load an existing chain: %v", failed, err)
			}
			t.Logf("\t%s\tTest 0:\tShould be able to load an existing chain.", success)
		}

		t.Logf("\tTest 1:\tWhen writing blocks that don't link.")
		{
			db, err := database.New(difficulty, memory.New(), nil)
			if err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to open the database: %v", failed, err)
			}

			notGenesis := database.NewBlock(0, 1700000000, "abc", nil)
			notGenesis.Seal(difficulty, nil)
			if err := db.Write(notGenesis); !errors.Is(err, database.ErrChainBroken) {
				t.Fatalf("\t%s\tTest 1:\tShould reject a bad genesis block, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould reject a bad genesis block.", success)

			genesis := database.NewBlock(0, 1700000000, database.GenesisPrevHash, nil)
			genesis.Seal(difficulty, nil)
			if err := db.Write(genesis); err != nil {
				t.Fatalf("\t%s\tTest 1:\tShould be able to write genesis: %v", failed, err)
			}

			orphan := database.NewBlock(1, 1700000001, "", nil)
			orphan.Seal(difficulty, nil)
			if err := db.Write(orphan); !errors.Is(err, database.ErrChainBroken) {
				t.Fatalf("\t%s\tTest 1:\tShould reject an unlinked block, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould reject an unlinked block.", success)

			unsealed := database.NewBlock(1, 1700000001, genesis.Hash, nil)
			unsealed.Hash = "ffff"
			if err := db.Write(unsealed); !errors.Is(err, database.ErrChainBroken) {
				t.Fatalf("\t%s\tTest 1:\tShould reject an unsealed block, got %v.", failed, err)
			}
			t.Logf("\t%s\tTest 1:\tShould reject an unsealed block.", success)

			if db.Length() != 1 {
				t.Fatalf("\t%s\tTest 1:\tShould still only have genesis, got %d.", failed, db.Length())
			}
			t.Logf("\t%s\tTest 1:\tShould still only have genesis.", success)
		}
	}
}

// storageOf returns memory storage pre-loaded with the blocks.
func storageOf(t *testing.T, blocks []database.Block) *memory.Memory {
	t.Helper()

	m := memory.New()
	for _, block := range blocks {
		if err := m.Write(block); err != nil {
			t.Fatalf("\t%s\tShould be able to load block %d: %v", failed, block.Number, err)
		}
	}

	return m
}
