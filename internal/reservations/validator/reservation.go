package validator

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"konica/pkg/model"
	"konica/pkg/validation"
)

type ReservationValidator struct {
	validate *validator.Validate
}

func NewReservationValidator() *ReservationValidator {
	return &ReservationValidator{validate: validator.New()}
}

func (v *ReservationValidator) Validate(r *model.Reservation) error {
	if err := v.validate.Struct(r); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs)
		}
		return err
	}
	return nil
}

func (v *ReservationValidator) ValidateUpdate(update *model.ReservationUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs)
		}
		return err
	}
	return nil
}

func (v *ReservationValidator) ValidateInvoiceUpdate(update *model.InvoiceUpdate) error {
	if err := v.validate.Struct(update); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return validation.Translate(validationErrs)
		}
		return err
	}
	return nil
}
