package database

import (
	"errors"

	"github.com/ardanlabs/ledger/foundation/blockchain/signature"
)

// Set of errors returned when working with transactions and blocks.
var (
	ErrMissingCredentials = errors.New("signature or public key is missing")
	ErrNegativeAmount     = errors.New("amount must be a non-negative number")
	ErrInvalidAccount     = errors.New("invalid account format")
	ErrChainBroken        = errors.New("block does not extend the chain")
	ErrInvalidSignature   = signature.ErrInvalidSignature
	ErrSerialization      = signature.ErrSerialization
)
