package domain

import "errors"

// Error classes for the whole system. Every layer wraps one of these so the
// HTTP boundary can map a failure to a status code without string matching.
var (
	// ErrValidation marks missing or malformed input
	ErrValidation = errors.New("validation error")
	// ErrConflict marks a uniqueness violation
	ErrConflict = errors.New("conflict")
	// ErrNotFound marks a missing record, collection or setting
	ErrNotFound = errors.New("not found")
	// ErrAuth marks a credential mismatch or unknown identity
	ErrAuth = errors.New("authentication failed")
	// ErrExternalService marks a failure talking to an external provider
	ErrExternalService = errors.New("external service error")
	// ErrInternal marks a storage or encoding failure
	ErrInternal = errors.New("internal error")
)

// IsNotFound reports whether err wraps ErrNotFound
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err wraps ErrConflict
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsValidation reports whether err wraps ErrValidation
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsAuth reports whether err wraps ErrAuth
func IsAuth(err error) bool { return errors.Is(err, ErrAuth) }

// IsExternal reports whether err wraps ErrExternalService
func IsExternal(err error) bool { return errors.Is(err, ErrExternalService) }
