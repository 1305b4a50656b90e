package errors

import (
	"errors"
	"fmt"
)

// Common application errors with proper types for error handling

var (
	// ErrMissingConfiguration indicates a required secret or setting is absent
	ErrMissingConfiguration = errors.New("missing configuration")

	// ErrInvalidInput indicates invalid input data
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstream indicates the third-party API rejected a request
	ErrUpstream = errors.New("upstream rejected request")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// MissingConfigurationError creates a configuration error whose message names what is missing.
// The message is returned to callers verbatim, so it leads with the cause.
func MissingConfigurationError(what string) error {
	return &configError{what: what}
}

type configError struct {
	what string
}

func (e *configError) Error() string {
	return "Missing " + e.what
}

func (e *configError) Unwrap() error {
	return ErrMissingConfiguration
}

// InvalidInputError creates an invalid input error with context
func InvalidInputError(field, reason string) error {
	return fmt.Errorf("%s: %s: %w", field, reason, ErrInvalidInput)
}

// InternalError creates an internal error with context
func InternalError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target any) bool {
	return errors.As(err, target)
}
