package models

import "errors"

// Domain errors shared by repositories and services. Controllers map these
// onto the HTTP taxonomy: 403, 404, 409.
var (
	// ErrNotFound means no document matched an id or email.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller's role does not permit the action.
	ErrForbidden = errors.New("forbidden")

	// ErrBlocked means a blocked user attempted to create a donation request.
	ErrBlocked = errors.New("blocked users cannot create requests")

	// ErrConflict means a conditional update lost a race, e.g. a second
	// claim on a request that is no longer pending.
	ErrConflict = errors.New("conflict")

	// ErrInvalidTransition means the requested state change is not in the
	// donation request transition table.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidInput means a payload passed structural validation but failed
	// a domain rule, e.g. an unsupported avatar file type.
	ErrInvalidInput = errors.New("invalid input")
)
