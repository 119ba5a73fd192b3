package usecase

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"campus-event-chat/apperror"
)

// validateRequest runs the struct tags of request and turns the first failing
// field into a client-facing validation error.
func validateRequest(validate *validator.Validate, request interface{}) error {
	err := validate.Struct(request)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		fe := fieldErrors[0]
		return apperror.Wrap(apperror.ErrValidation, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()), err)
	}
	return apperror.Wrap(apperror.ErrValidation, "Invalid request", err)
}
