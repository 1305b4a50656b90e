package contact

import (
	"errors"

	apperrors "github.com/agile-ai-hub/intake-api/pkg/errors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Submission holds the contact form fields
type Submission struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Validate applies the form's required and format rules.
// The returned error wraps ErrInvalidInput and lists every failing field.
func (s Submission) Validate() ([]ValidationError, error) {
	err := validate.Struct(s)
	if err == nil {
		return nil, nil
	}

	fieldErrors := ParseValidationErrors(err)
	if len(fieldErrors) == 0 {
		return nil, err
	}
	return fieldErrors, apperrors.InvalidInputError(fieldErrors[0].Field, fieldErrors[0].Message)
}

// ParseValidationErrors converts validator errors to user-friendly format
func ParseValidationErrors(err error) []ValidationError {
	var result []ValidationError

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			result = append(result, ValidationError{
				Field:   fieldError.Field(),
				Message: getErrorMessage(fieldError),
			})
		}
	}

	return result
}

func getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return "Invalid email format"
	default:
		return fe.Field() + " is invalid"
	}
}
