package errors

import "fmt"

// Error codes
const (
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeCatalogUnavailable = "CATALOG_UNAVAILABLE"
	ErrCodeAuthFailure        = "AUTH_FAILURE"
	ErrCodeSubmissionFailure  = "SUBMISSION_FAILURE"
)

// AppError represents an application error with HTTP status code and error code
type AppError struct {
	Code    string // Error code (e.g., "NOT_FOUND", "CATALOG_UNAVAILABLE")
	Message string // Human-readable error message
	Status  int    // HTTP status code
	Err     error  // Wrapped underlying error (optional)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for error wrapping support
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new NOT_FOUND error
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %v", resource, id),
		Status:  404,
	}
}

// NewValidationError creates a new VALIDATION_ERROR
func NewValidationError(field string, reason string) *AppError {
	return &AppError{
		Code:    ErrCodeValidation,
		Message: fmt.Sprintf("validation failed for %s: %s", field, reason),
		Status:  400,
	}
}

// NewInternalError creates a new INTERNAL_ERROR
func NewInternalError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: "internal server error",
		Status:  500,
		Err:     err,
	}
}

// NewBadRequestError creates a new BAD_REQUEST error
func NewBadRequestError(message string) *AppError {
	return &AppError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Status:  400,
	}
}

// NewCatalogUnavailableError creates a new CATALOG_UNAVAILABLE error.
// The exam listing could not be fetched; callers surface it with a retry
// affordance.
func NewCatalogUnavailableError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeCatalogUnavailable,
		Message: "exam catalog is currently unavailable",
		Status:  502,
		Err:     err,
	}
}

// NewAuthFailureError creates a new AUTH_FAILURE error carrying the
// backend's message verbatim. Callers leave session state untouched.
func NewAuthFailureError(message string, err error) *AppError {
	if message == "" {
		message = "authentication failed"
	}
	return &AppError{
		Code:    ErrCodeAuthFailure,
		Message: message,
		Status:  401,
		Err:     err,
	}
}

// NewSubmissionFailureError creates a new SUBMISSION_FAILURE error. A
// previously displayed result stays on screen when this is surfaced.
func NewSubmissionFailureError(err error) *AppError {
	return &AppError{
		Code:    ErrCodeSubmissionFailure,
		Message: "could not process your submission, please try again",
		Status:  502,
		Err:     err,
	}
}

// IsCode reports whether err is an *AppError with the given code.
func IsCode(err error, code string) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}
