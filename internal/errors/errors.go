package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Sentinel errors for the failure modes this job distinguishes. A billing run
// classifies every failure into exactly one of these: configuration problems
// abort the run, everything else is logged and skipped per record.
var (
	ErrConfiguration = newSentinel(ErrCodeConfiguration, "configuration error")
	ErrConnectivity  = newSentinel(ErrCodeConnectivity, "connectivity error")
	ErrNotFound      = newSentinel(ErrCodeNotFound, "resource not found")
	ErrValidation    = newSentinel(ErrCodeValidation, "validation error")
	ErrHTTPClient    = newSentinel(ErrCodeHTTPClient, "http client error")
	ErrDatastore     = newSentinel(ErrCodeDatastore, "datastore error")
	ErrIntegration   = newSentinel(ErrCodeIntegration, "integration error")
	ErrSystem        = newSentinel(ErrCodeSystemError, "system error")
)

const (
	ErrCodeConfiguration = "configuration_error"
	ErrCodeConnectivity  = "connectivity_error"
	ErrCodeNotFound      = "not_found"
	ErrCodeValidation    = "validation_error"
	ErrCodeHTTPClient    = "http_client_error"
	ErrCodeDatastore     = "datastore_error"
	ErrCodeIntegration   = "integration_error"
	ErrCodeSystemError   = "system_error"
)

// InternalError represents a domain error
type InternalError struct {
	Code    string // Machine-readable error code
	Message string // Human-readable error message
	Op      string // Logical operation name
	Err     error  // Underlying error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Err.Error())
}

func (e *InternalError) Unwrap() error {
	return e.Err
}

// Is implements error matching for wrapped errors
func (e *InternalError) Is(target error) bool {
	if target == nil {
		return false
	}

	t, ok := target.(*InternalError)
	if !ok {
		return errors.Is(e.Err, target)
	}

	return e.Code == t.Code
}

func newSentinel(code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
	}
}

// New creates a new InternalError with the given code and message
func New(code string, message string) *InternalError {
	return newSentinel(code, message)
}

// Wrap wraps an existing error with a code and message
func Wrap(err error, code string, message string) *InternalError {
	return &InternalError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func Is(err, target error) bool {
	return errors.Is(err, target)
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsConfiguration checks if an error is a configuration error
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// IsConnectivity checks if an error is a connectivity error
func IsConnectivity(err error) bool {
	return errors.Is(err, ErrConnectivity)
}

// IsHTTPClient checks if an error is an http client error
func IsHTTPClient(err error) bool {
	return errors.Is(err, ErrHTTPClient)
}
