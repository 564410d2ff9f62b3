package signature_test

import (
	"errors"
	"testing"

	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	pkHexKey = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
	from     = "0xdd6B972ffcc631a62CAE1BB9d80b7ff429c8ebA4"
)

// =============================================================================

func Test_Signing(t *testing.T) {
	value := struct {
		Name string
	}{
		Name: "Bill",
	}

	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	sig, pub, err := signature.Sign(value, pk)
	if err != nil {
		t.Fatalf("Should be able to sign data: %s", err)
	}

	if len(sig) != crypto.SignatureLength {
		t.Fatalf("Should get back a %d byte signature, got %d.", crypto.SignatureLength, len(sig))
	}

	if err := signature.Verify(value, sig, pub); err != nil {
		t.Fatalf("Should be able to verify the signature: %s", err)
	}

	addr, err := signature.Address(pub)
	if err != nil {
		t.Fatalf("Should be able to generate an address: %s", err)
	}

	if from != addr {
		t.Logf("got: %s", addr)
		t.Logf("exp: %s", from)
		t.Fatalf("Should get back the right address.")
	}
}

func Test_VerifyFailures(t *testing.T) {
	value := struct {
		Name string
	}{
		Name: "Bill",
	}
	other := struct {
		Name string
	}{
		Name: "Jill",
	}

	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	sig, pub, err := signature.Sign(value, pk)
	if err != nil {
		t.Fatalf("Should be able to sign data: %s", err)
	}

	if err := signature.Verify(other, sig, pub); !errors.Is(err, signature.ErrInvalidSignature) {
		t.Fatalf("Should not verify different data, got %v.", err)
	}

	if err := signature.Verify(value, sig[:10], pub); !errors.Is(err, signature.ErrInvalidSignature) {
		t.Fatalf("Should not verify a short signature, got %v.", err)
	}

	if err := signature.Verify(value, sig, pub[:20]); !errors.Is(err, signature.ErrInvalidSignature) {
		t.Fatalf("Should not verify with a broken public key, got %v.", err)
	}

	pk2, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	if err := signature.Verify(value, sig, crypto.FromECDSAPub(&pk2.PublicKey)); !errors.Is(err, signature.ErrInvalidSignature) {
		t.Fatalf("Should not verify with another public key, got %v.", err)
	}
}

func Test_Hash(t *testing.T) {
	value := struct {
		Name string
	}{
		Name: "Bill",
	}
	hash := "0f6887ac85101d6d6425a617edf35bd721b5f619fb92c36c3d2224e3bdb0ee5a"

	h, err := signature.Hash(value)
	if err != nil {
		t.Fatalf("Should be able to hash the value: %s", err)
	}

	if h != hash {
		t.Logf("got: %s", h)
		t.Logf("exp: %s", hash)
		t.Fatalf("Should get back the right hash: %s", h[:6])
	}

	h, _ = signature.Hash(value)
	if h != hash {
		t.Logf("got: %s", h)
		t.Logf("exp: %s", hash)
		t.Fatalf("Should get back the same hash twice.")
	}
}

func Test_HashSerialization(t *testing.T) {
	if _, err := signature.Hash(make(chan int)); !errors.Is(err, signature.ErrSerialization) {
		t.Fatalf("Should get a serialization error, got %v.", err)
	}
}
