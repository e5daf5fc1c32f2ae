package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrNotFound      = errors.New("resource not found")
	ErrDuplicateID   = errors.New("resource with this id already exists")
	ErrDuplicateCode = errors.New("resource with this code already exists")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrMalformedInput   = errors.New("malformed input")

	// Transport errors
	ErrRateLimited = errors.New("rate limit exceeded")
)

// NewNotFoundError creates a new custom error for a missing resource with a message
func NewNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrNotFound,
		Message: message,
	}
}

// NewDuplicateIDError creates a new custom error for an id uniqueness violation
func NewDuplicateIDError(message string) error {
	return &CustomError{
		Err:     ErrDuplicateID,
		Message: message,
	}
}

// NewDuplicateCodeError creates a new custom error for a code uniqueness violation
func NewDuplicateCodeError(message string) error {
	return &CustomError{
		Err:     ErrDuplicateCode,
		Message: message,
	}
}

// NewValidationError creates a validation error carrying per-field messages
func NewValidationError(message string, fields map[string]string) error {
	e := &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
	if len(fields) > 0 {
		details := make(map[string]interface{}, len(fields))
		for k, v := range fields {
			details[k] = v
		}
		e.Details = details
	}
	return e
}

// NewMalformedInputError wraps a decoding failure of an input document
func NewMalformedInputError(message string, cause error) error {
	e := &CustomError{
		Err:     ErrMalformedInput,
		Message: message,
	}
	if cause != nil {
		e.Details = map[string]interface{}{"cause": cause.Error()}
	}
	return e
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// DetailsOf returns the details attached to err, if any CustomError is in its chain.
func DetailsOf(err error) map[string]interface{} {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce.Details
	}
	return nil
}
