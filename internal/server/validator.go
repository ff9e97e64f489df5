package server

import (
	"errors"
	"fmt"

	"catalog-service/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// requestValidator adapts go-playground/validator to echo.Validator and
// reports the first failing field as a domain.ValidationError.
type requestValidator struct {
	validate *validator.Validate
}

func NewValidator() *requestValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// RegisterValidation only fails for an empty tag or a nil func.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return &requestValidator{validate: v}
}

func (v *requestValidator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domain.NewValidationError("Invalid request.")
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required", "notblank":
		return domain.NewValidationError(fmt.Sprintf("%s is required.", fe.Field()))
	default:
		return domain.NewValidationError(fmt.Sprintf("%s is invalid.", fe.Field()))
	}
}
