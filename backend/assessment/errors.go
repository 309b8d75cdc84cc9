package assessment

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("not enrolled or enrollment path locked")
	ErrConflict         = errors.New("conflicting concurrent write")
	ErrStoreUnavailable = errors.New("storage unavailable")
)

const (
	ReasonAlreadyPassed    = "already passed"
	ReasonAttemptsExceeded = "max attempts exceeded"
)

// PolicyError is a domain rule rejection (already passed, attempts
// exhausted). It is distinct from validation: the request was well formed,
// the attempt history just forbids it.
type PolicyError struct {
	Reason string
}

func (e *PolicyError) Error() string { return e.Reason }

// ValidationError is a malformed or missing request field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func notFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}
