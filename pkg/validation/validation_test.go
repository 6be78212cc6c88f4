package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Name   string `validate:"required,max=10"`
	Pack   string `validate:"required,mongodb"`
	Period string `validate:"required,oneof=morning evening"`
	Email  string `validate:"omitempty,email"`
}

func TestTranslate(t *testing.T) {
	v := validator.New()
	err := v.Struct(sample{
		Name:   "a name that is way too long",
		Pack:   "not-an-id",
		Period: "noon",
		Email:  "not-an-email",
	})

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		t.Fatal("expected validator.ValidationErrors")
	}

	fieldErrors := Translate(validationErrs)
	if len(fieldErrors) != 4 {
		t.Fatalf("got %d field errors, want 4: %v", len(fieldErrors), fieldErrors)
	}

	byField := map[string]string{}
	for _, fe := range fieldErrors {
		byField[fe.Field] = fe.Message
	}

	if !strings.Contains(byField["Name"], "at most 10") {
		t.Errorf("Name message = %q", byField["Name"])
	}
	if !strings.Contains(byField["Pack"], "ObjectID") {
		t.Errorf("Pack message = %q", byField["Pack"])
	}
	if !strings.Contains(byField["Period"], "one of") {
		t.Errorf("Period message = %q", byField["Period"])
	}
	if !strings.Contains(byField["Email"], "email") {
		t.Errorf("Email message = %q", byField["Email"])
	}
}

func TestFieldErrorsErrorString(t *testing.T) {
	errs := FieldErrors{
		{Field: "Name", Message: "Name is required"},
		{Field: "Pack", Message: "Pack must be a valid MongoDB ObjectID"},
	}

	msg := errs.Error()
	if !strings.Contains(msg, "2 error(s)") {
		t.Errorf("message = %q", msg)
	}
	if !strings.Contains(msg, "Name is required") {
		t.Errorf("message = %q", msg)
	}
}

func TestFieldErrorsEmpty(t *testing.T) {
	if got := (FieldErrors{}).Error(); got != "" {
		t.Errorf("empty FieldErrors.Error() = %q, want empty", got)
	}
}
