package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can tell business refusals from faults without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
)

// Rejection is a business-rule refusal whose Message is safe to show to the user as is.
type Rejection struct {
	Message string
	Kind    error
}

func (r *Rejection) Error() string { return r.Message }

func (r *Rejection) Unwrap() error { return r.Kind }

// Reject builds a *Rejection of the given kind.
func Reject(kind error, msg string) error {
	return &Rejection{Message: msg, Kind: kind}
}
