package models

import (
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/daacooerp/erpclient/pkg/errors"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks a payload's struct tags before it is sent to the server.
// Failures are reported as VALIDATION_ERROR with per-field detail.
func Validate(payload interface{}) error {
	err := getValidator().Struct(payload)
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.Wrap(err, errors.ErrCodeValidation, "payload validation failed")
	}

	details := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		details = append(details, fieldErr.Field()+": failed "+fieldErr.Tag())
	}
	return errors.New(errors.ErrCodeValidation, "payload validation failed").
		WithDetails(strings.Join(details, "; "))
}
