package database

import (
	"crypto/ecdsa"
	"fmt"
	"math"

	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Tx is the transactional information between two parties. These are the
// only fields covered by a signature.
type Tx struct {
	Sender    AccountID `json:"sender"`    // Account giving up the value.
	Recipient AccountID `json:"recipient"` // Account receiving the value.
	Amount    float64   `json:"amount"`    // Value moved by this transaction.
}

// NewTx constructs a new unsigned transaction.
func NewTx(sender AccountID, recipient AccountID, amount float64) (Tx, error) {
	if !sender.IsAccountID() {
		return Tx{}, fmt.Errorf("sender %q: %w", sender, ErrInvalidAccount)
	}

	if !recipient.IsAccountID() {
		return Tx{}, fmt.Errorf("recipient %q: %w", recipient, ErrInvalidAccount)
	}

	if amount < 0 || math.IsNaN(amount) || math.IsInf(amount, 0) {
		return Tx{}, fmt.Errorf("%w: %v", ErrNegativeAmount, amount)
	}

	tx := Tx{
		Sender:    sender,
		Recipient: recipient,
		Amount:    amount,
	}

	return tx, nil
}

// Sign uses the specified private key to sign the transaction. Only the
// Tx value is serialized, so the signature and public key can never be
// part of what they cover.
func (tx Tx) Sign(privateKey *ecdsa.PrivateKey) (SignedTx, error) {
	sig, pub, err := signature.Sign(tx, privateKey)
	if err != nil {
		return SignedTx{}, fmt.Errorf("sign tx[%s]: %w", tx, err)
	}

	signedTx := SignedTx{
		Tx:        tx,
		Signature: sig,
		PublicKey: pub,
	}

	return signedTx, nil
}

// String implements the fmt.Stringer interface for logging.
func (tx Tx) String() string {
	return fmt.Sprintf("%s->%s:%v", tx.Sender, tx.Recipient, tx.Amount)
}

// =============================================================================

// SignedTx is a signed version of the transaction. The public key that
// can verify the signature travels with the transaction.
type SignedTx struct {
	Tx
	Signature hexutil.Bytes `json:"signature"`
	PublicKey hexutil.Bytes `json:"public_key"`
}

// Validate verifies the transaction has a signature that was produced
// over the transaction data by the key matching the embedded public key.
func (tx SignedTx) Validate() error {
	if len(tx.Signature) == 0 || len(tx.PublicKey) == 0 {
		return ErrMissingCredentials
	}

	if err := signature.Verify(tx.Tx, tx.Signature, tx.PublicKey); err != nil {
		return fmt.Errorf("validate tx[%s]: %w", tx.Tx, err)
	}

	return nil
}

// Copy returns a copy of the transaction that shares no memory with the
// original.
func (tx SignedTx) Copy() SignedTx {
	cpy := tx
	if tx.Signature != nil {
		cpy.Signature = append(hexutil.Bytes{}, tx.Signature...)
	}
	if tx.PublicKey != nil {
		cpy.PublicKey = append(hexutil.Bytes{}, tx.PublicKey...)
	}

	return cpy
}

// SignerAddress returns the address of the key that signed the transaction.
func (tx SignedTx) SignerAddress() (string, error) {
	if len(tx.PublicKey) == 0 {
		return "", ErrMissingCredentials
	}

	return signature.Address(tx.PublicKey)
}

// SignatureString returns the signature as a string.
func (tx SignedTx) SignatureString() string {
	return signature.String(tx.Signature)
}
