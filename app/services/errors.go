package services

import "errors"

// Failure kinds surfaced by the services. Controllers map these to HTTP
// statuses with errors.Is; anything else is treated as a storage fault.
var (
	// ErrValidation marks malformed or missing input. Concrete failures are
	// ValidationError values carrying the caller-facing message.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound means the referenced row does not exist at all. Used on
	// read paths where existence is not a secret.
	ErrNotFound = errors.New("not found")

	// ErrNotFoundOrUnauthorized covers both a missing row and a row owned by
	// someone else. The two cases are deliberately indistinguishable so
	// mutation endpoints do not leak which ids exist.
	ErrNotFoundOrUnauthorized = errors.New("not found or unauthorized")

	// ErrLocationNotSet rejects a nearby feed for a user without stored
	// coordinates.
	ErrLocationNotSet = errors.New("user location not set")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUser      = errors.New("username or email already exists")
)

// ValidationError is an ErrValidation with a message meant for the caller.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

func invalid(msg string) error { return &ValidationError{Msg: msg} }
