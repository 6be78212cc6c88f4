package errors

import "errors"

var (
	ErrNotFound = errors.New("pack not found")

	ErrInvalidID = errors.New("invalid pack ID format")
)
