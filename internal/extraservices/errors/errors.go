package errors

import "errors"

var (
	ErrNotFound = errors.New("extra service not found")

	ErrInvalidID = errors.New("invalid extra service ID format")
)
