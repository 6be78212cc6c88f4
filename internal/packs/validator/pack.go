package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"konica/pkg/model"
	"konica/pkg/validation"
)

type PackValidator struct {
	validate *validator.Validate
}

func NewPackValidator() *PackValidator {
	return &PackValidator{validate: validator.New()}
}

func (v *PackValidator) Validate(pack *model.Pack) error {
	if err := v.validate.Struct(pack); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs)
		}
		return err
	}

	if pack.Price < 0 {
		return validation.FieldErrors{{
			Field:   "Price",
			Message: "price cannot be negative",
		}}
	}

	return nil
}

func (v *PackValidator) ValidateUpdate(update *model.PackUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs)
		}
		return err
	}
	return nil
}
