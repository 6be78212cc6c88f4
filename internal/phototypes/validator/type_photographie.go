package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"konica/pkg/model"
	"konica/pkg/validation"
)

type TypeValidator struct {
	validate *validator.Validate
}

func NewTypeValidator() *TypeValidator {
	return &TypeValidator{validate: validator.New()}
}

func (v *TypeValidator) Validate(t *model.TypePhotographie) error {
	if err := v.validate.Struct(t); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs)
		}
		return err
	}
	return nil
}

func (v *TypeValidator) ValidateUpdate(update *model.TypePhotographieUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs)
		}
		return err
	}
	return nil
}
