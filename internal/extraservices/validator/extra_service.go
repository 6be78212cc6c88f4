package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"konica/pkg/model"
	"konica/pkg/validation"
)

type ExtraServiceValidator struct {
	validate *validator.Validate
}

func NewExtraServiceValidator() *ExtraServiceValidator {
	return &ExtraServiceValidator{validate: validator.New()}
}

func (v *ExtraServiceValidator) Validate(svc *model.ExtraService) error {
	if err := v.validate.Struct(svc); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs)
		}
		return err
	}
	return nil
}

func (v *ExtraServiceValidator) ValidateUpdate(update *model.ExtraServiceUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs)
		}
		return err
	}
	return nil
}
