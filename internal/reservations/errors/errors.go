package errors

import "errors"

var (
	ErrNotFound = errors.New("reservation not found")

	ErrInvalidID = errors.New("invalid reservation ID format")

	ErrDateConflict = errors.New("reservation dates conflict with an existing reservation")

	ErrLockHeld = errors.New("another reservation for this cabin is in flight")
)
