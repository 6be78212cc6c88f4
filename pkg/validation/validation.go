// Package validation adapts go-playground/validator failures into
// field-level messages shared by every domain validator.
package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	messages := make([]string, 0, len(e))
	for _, fe := range e {
		messages = append(messages, fe.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(e), strings.Join(messages, "; "))
}

// Translate converts validator tag failures into readable messages.
func Translate(errs validator.ValidationErrors) FieldErrors {
	var fieldErrors FieldErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		}

		fieldErrors = append(fieldErrors, FieldError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return fieldErrors
}
