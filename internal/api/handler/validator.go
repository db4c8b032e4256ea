package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/soccerhub/account-service/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call
// c.Validate(req). Violations come back as a *domain.ValidationError with
// every failing field collected, never just the first.
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to
// echo.Echo.Validator.
func NewValidator() *echoValidator {
	return &echoValidator{v: validator.New()}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			fieldErrs := make([]domain.FieldError, 0, len(ve))
			for _, fe := range ve {
				fieldErrs = append(fieldErrs, fieldError(fe))
			}
			return &domain.ValidationError{Errors: fieldErrs}
		}
		return err
	}
	return nil
}

// fieldError converts a single ValidationError into a structured field error.
func fieldError(fe validator.FieldError) domain.FieldError {
	field := strings.ToLower(fe.Field())
	var msg string
	switch fe.Tag() {
	case "required":
		msg = field + " is required"
	case "email":
		msg = field + " must be a valid email"
	case "min":
		msg = fmt.Sprintf("%s must have at least %s entries", field, fe.Param())
	case "oneof":
		msg = fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		msg = fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
	return domain.FieldError{Field: field, Code: fe.Tag(), Message: msg}
}
