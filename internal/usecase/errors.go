package usecase

import "errors"

// Shared error kinds surfaced by every usecase. Handlers map these to HTTP
// statuses; nothing below this layer is silently swallowed.
var (
	// ErrValidation: malformed or out-of-range input (blank skill name,
	// rating outside 1-5, self-swap, unmet creation preconditions).
	ErrValidation = errors.New("validation failed")

	// ErrPermission: the caller is not authorized for the requested mutation.
	ErrPermission = errors.New("forbidden")

	// ErrInvalidTransition: the state machine has no such edge from the
	// current status.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrNotFound: a referenced id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrConflict: lost a concurrent compare-and-swap, or a uniqueness
	// constraint rejected the write.
	ErrConflict = errors.New("conflict")

	ErrInternal = errors.New("internal error")
)
