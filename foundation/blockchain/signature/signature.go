// Package signature provides helper functions for handling the ledger
// signature and hashing needs.
package signature

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// Set of errors returned by the signature functions.
var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrSerialization    = errors.New("serialization failure")
)

// stampPrefix is mixed into every signed hash so signatures we produce
// are always unique to this ledger and can't be replayed elsewhere.
const stampPrefix = "\x19TMHP Signed Message:\n32"

// =============================================================================

// Hash returns the sha256 of the JSON representation of the value as a
// lowercase hex string without a 0x prefix.
func Hash(value any) (string, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

// Sign uses the specified private key to sign the value. The 65 byte
// [R|S|V] signature is returned along with the uncompressed public key
// that can verify it.
func Sign(value any, privateKey *ecdsa.PrivateKey) (sig []byte, publicKey []byte, err error) {

	// Prepare the data for signing.
	data, err := stamp(value)
	if err != nil {
		return nil, nil, err
	}

	// Sign the hash with the private key to produce a signature.
	sig, err = crypto.Sign(data, privateKey)
	if err != nil {
		return nil, nil, err
	}

	// Check the public key can verify what was just produced.
	publicKey = crypto.FromECDSAPub(&privateKey.PublicKey)
	if !crypto.VerifySignature(publicKey, data, sig[:crypto.RecoveryIDOffset]) {
		return nil, nil, ErrInvalidSignature
	}

	return sig, publicKey, nil
}

// Verify checks the signature was produced over the value by the private
// key that belongs to the specified public key.
func Verify(value any, sig []byte, publicKey []byte) error {
	if len(sig) < crypto.RecoveryIDOffset {
		return fmt.Errorf("%w: signature length %d", ErrInvalidSignature, len(sig))
	}

	data, err := stamp(value)
	if err != nil {
		return err
	}

	if !crypto.VerifySignature(publicKey, data, sig[:crypto.RecoveryIDOffset]) {
		return ErrInvalidSignature
	}

	return nil
}

// Address returns the account address for the specified public key.
func Address(publicKey []byte) (string, error) {
	pk, err := crypto.UnmarshalPubkey(publicKey)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}

	return crypto.PubkeyToAddress(*pk).String(), nil
}

// String returns the bytes as a 0x prefixed hex string.
func String(b []byte) string {
	return hexutil.Encode(b)
}

// =============================================================================

// stamp returns a hash of 32 bytes that represents this data with
// the ledger stamp embedded into the final hash.
func stamp(value any) ([]byte, error) {

	// Marshal the data.
	v, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	// Hash the data into a 32 byte array. This will provide
	// a data length consistency with all data.
	txHash := crypto.Keccak256(v)

	// Hash the stamp and txHash together in a final 32 byte array
	// that represents the data.
	return crypto.Keccak256([]byte(stampPrefix), txHash), nil
}
