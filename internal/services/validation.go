package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON field names rather than Go field names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validateFirst validates s and converts the first violation into a ValidationError.
// Fields are checked in declaration order and each field stops at its first failing rule.
func validateFirst(v *validator.Validate, s interface{}) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return fmt.Errorf("failed to validate request: %w", err)
	}
	return toValidationError(validationErrors[0])
}

func toValidationError(fe validator.FieldError) *ValidationError {
	field := fe.Field()
	label := strings.ReplaceAll(field, "_", " ")

	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("The %s field is required.", label)
	case "email":
		msg = fmt.Sprintf("The %s must be a valid email address.", label)
	case "max":
		msg = fmt.Sprintf("The %s may not be greater than %s characters.", label, fe.Param())
	case "min":
		msg = fmt.Sprintf("The %s must be at least %s characters.", label, fe.Param())
	case "eqfield":
		msg = fmt.Sprintf("The %s confirmation does not match.", label)
	default:
		msg = fmt.Sprintf("The %s is invalid.", label)
	}
	return &ValidationError{Field: field, Message: msg}
}

func emailTakenError() *ValidationError {
	return &ValidationError{Field: "email", Message: "The email has already been taken."}
}
