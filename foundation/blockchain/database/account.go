package database

import (
	"fmt"
	"strings"
)

// SystemAccountID is the reserved sender for mining reward transactions.
// Value for these transactions is created by the ledger itself.
const SystemAccountID AccountID = "0"

// AccountID represents an account id that sends or receives value in a
// transaction on the ledger. Any non-blank name is a valid account.
type AccountID string

// ToAccountID converts a string to an account and validates the string is
// formatted correctly.
func ToAccountID(id string) (AccountID, error) {
	a := AccountID(id)
	if !a.IsAccountID() {
		return "", fmt.Errorf("%q: %w", id, ErrInvalidAccount)
	}

	return a, nil
}

// IsAccountID verifies whether the underlying data represents a valid
// account id.
func (a AccountID) IsAccountID() bool {
	return a != "" && strings.TrimSpace(string(a)) == string(a)
}

// IsSystem reports whether this is the reserved system account.
func (a AccountID) IsSystem() bool {
	return a == SystemAccountID
}
