// Package errs provides the error values the ledger api answers with when
// a request can't be served.
package errs

import (
	"errors"
	"net/http"
)

// Response is the body sent back for every failed request. Fields is only
// set when the request body did not validate.
type Response struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Trusted marks an error as safe to show the client along with the status
// to answer with. Errors that aren't Trusted are reported as a 500 with no
// detail.
type Trusted struct {
	Err    error
	Status int
}

// NewTrusted marks the error as safe to show the client with the status.
func NewTrusted(err error, status int) error {
	return &Trusted{err, status}
}

// BadRequest marks an error caused by the caller's input, such as a
// negative amount or a blank account.
func BadRequest(err error) error {
	return &Trusted{err, http.StatusBadRequest}
}

// Error implements the error interface.
func (te *Trusted) Error() string {
	return te.Err.Error()
}

// Unwrap gives errors.Is access to the ledger sentinel underneath.
func (te *Trusted) Unwrap() error {
	return te.Err
}

// IsTrusted reports whether a Trusted error is in the chain.
func IsTrusted(err error) bool {
	var te *Trusted
	return errors.As(err, &te)
}

// GetTrusted returns the Trusted error in the chain or nil.
func GetTrusted(err error) *Trusted {
	var te *Trusted
	if !errors.As(err, &te) {
		return nil
	}
	return te
}
