package apperr

import "errors"

var (
	// ErrInvalid is returned when input fails domain validation.
	ErrInvalid = errors.New("invalid input")
	// ErrConflict indicates a uniqueness or state conflict.
	ErrConflict = errors.New("conflict")
	// ErrNotFound indicates that the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAssignmentFailed means no delivery was created and no courier state changed.
	ErrAssignmentFailed = errors.New("assignment failed")
	// ErrPostAssignmentUpdate means the delivery was committed but the courier's
	// load bookkeeping was not; the assignment itself stays valid.
	ErrPostAssignmentUpdate = errors.New("post-assignment update failed")

	ErrNotAssignedToOrder = errors.New("courier is not assigned to order")
	ErrUnauthorized       = errors.New("not allowed for this order")
	ErrInvalidTransition  = errors.New("invalid status transition")
)
