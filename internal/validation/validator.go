package validation

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"trivia-api/internal/domain"

	"github.com/go-playground/validator/v10"
)

// Validator provides request validation functionality
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a new validator instance that reports fields by their
// JSON names.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates a request body and returns domain.ValidationErrors on failure.
func (v *Validator) Struct(req interface{}) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	errs := make(domain.ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		errs = append(errs, toValidationError(fe))
	}
	return errs
}

// ValidatePage validates the page query parameter. An empty value means page 1.
func (v *Validator) ValidatePage(raw string) (int, domain.ValidationErrors) {
	if strings.TrimSpace(raw) == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError("page", raw)}
	}
	return page, nil
}

func toValidationError(fe validator.FieldError) domain.ValidationError {
	switch fe.Tag() {
	case "required":
		return domain.NewMissingFieldError(fe.Field())
	case "max":
		return domain.ValidationError{Field: fe.Field(), Message: "must be at most " + fe.Param() + " characters"}
	default:
		return domain.NewInvalidFormatError(fe.Field(), fe.Value())
	}
}
