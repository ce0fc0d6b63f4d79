package domain

import "errors"

var (
	// ErrNotFound marks an expected missing-resource condition. It is
	// a guided empty state for callers, not a failure.
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable marks an aborted catalog store operation.
	// Callers surface a retry prompt and never retry automatically.
	ErrStoreUnavailable = errors.New("catalog store unavailable")

	// ErrInvalidCredentials is returned for every failed login,
	// whether the username is unknown or the password mismatches.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSubmitPending rejects a form submit while another one is
	// still in flight.
	ErrSubmitPending = errors.New("submit already in progress")
)

// A ValidationError is a client-local, recoverable failure of a single
// form rule. It carries the message of the first failing rule and
// never reaches the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// IsValidation reports whether err is a form validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
