// Package genesis maintains the parameters a ledger is created with.
package genesis

import (
	"fmt"
	"time"

	"github.com/ardanlabs/ledger/foundation/validate"
)

// Genesis represents the parameters of a ledger.
type Genesis struct {
	Date         time.Time `json:"date"`
	Name         string    `json:"name" validate:"required"`       // The name of this ledger instance.
	Difficulty   uint      `json:"difficulty" validate:"lte=64"`   // Number of leading zeros a block hash needs.
	MiningReward float64   `json:"mining_reward" validate:"gte=0"` // Reward for mining a block.
}

// Default returns the parameters of the TMHP ledger.
func Default() Genesis {
	return Genesis{
		Date:         time.Now().UTC(),
		Name:         "TMHP",
		Difficulty:   4,
		MiningReward: 10,
	}
}

// New constructs and validates a set of ledger parameters.
func New(name string, difficulty uint, miningReward float64) (Genesis, error) {
	gen := Genesis{
		Date:         time.Now().UTC(),
		Name:         name,
		Difficulty:   difficulty,
		MiningReward: miningReward,
	}

	if err := gen.Validate(); err != nil {
		return Genesis{}, err
	}

	return gen, nil
}

// Validate checks the parameters can be used to run a ledger.
func (g Genesis) Validate() error {
	if err := validate.Check(g); err != nil {
		return fmt.Errorf("invalid genesis: %w", err)
	}

	return nil
}
