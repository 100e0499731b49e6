package ledger

import "errors"

// Business failures are returned as wrapped sentinel errors so handlers can
// map them to HTTP statuses with errors.Is. Anything not wrapping one of
// these is treated as an internal error.
var (
	// ErrNotFound marks a referenced entity that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an actor lacking ownership or admin rights.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation marks malformed input: bad category/account type,
	// same-account transfer, non-positive amount.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidOperation marks a well-formed request against the wrong
	// state: mutating a transfer-linked transaction, insufficient funds,
	// exceeding a credit limit, deleting a referenced account.
	ErrInvalidOperation = errors.New("invalid operation")

	// ErrConfiguration marks a deployment precondition failure, such as a
	// missing reserved transfer category. Not user-recoverable.
	ErrConfiguration = errors.New("configuration error")
)
