package validate_test

import (
	"testing"

	"github.com/ardanlabs/ledger/foundation/validate"
)

func TestCheck(t *testing.T) {
	type request struct {
		Sender string  `json:"sender" validate:"required"`
		Amount float64 `json:"amount" validate:"gte=0"`
	}

	t.Log("Given the need to validate request values.")
	{
		if err := validate.Check(request{Sender: "Alice", Amount: 1}); err != nil {
			t.Fatalf("\t✗\tShould accept a valid request: %v", err)
		}
		t.Log("\t✓\tShould accept a valid request.")

		err := validate.Check(request{Amount: -1})
		fields := validate.GetFieldErrors(err)
		if len(fields) != 2 {
			t.Fatalf("\t✗\tShould get two field errors, got %v.", err)
		}
		t.Log("\t✓\tShould get two field errors.")

		m := fields.Fields()
		if _, exists := m["sender"]; !exists {
			t.Fatalf("\t✗\tShould use the json name for the field: %v", m)
		}
		t.Log("\t✓\tShould use the json name for the field.")
	}
}
