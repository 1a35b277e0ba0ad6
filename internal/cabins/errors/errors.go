package errors

import "errors"

var (
	ErrNotFound = errors.New("cabin not found")

	ErrInvalidID = errors.New("invalid cabin ID format")
)
