package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"konica/pkg/model"
	"konica/pkg/validation"
)

type UserValidator struct {
	validate *validator.Validate
}

func NewUserValidator() *UserValidator {
	return &UserValidator{validate: validator.New()}
}

func (v *UserValidator) ValidateNew(req *model.NewUserRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs)
		}
		return err
	}
	return nil
}

func (v *UserValidator) Validate(user *model.User) error {
	if err := v.validate.Struct(user); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs)
		}
		return err
	}
	return nil
}
