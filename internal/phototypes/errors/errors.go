package errors

import "errors"

var (
	ErrNotFound = errors.New("photography type not found")

	ErrInvalidID = errors.New("invalid photography type ID format")

	ErrDuplicateName = errors.New("photography type name already exists")
)
