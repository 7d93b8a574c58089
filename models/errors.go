package models

import (
	"errors"
	"fmt"
)

// Error codes returned by the engine. Handlers translate these into HTTP
// statuses; callers inspect the code rather than the message.
const (
	ErrCodeValidation          = "validation_error"
	ErrCodeNotFound            = "not_found"
	ErrCodeUnauthorized        = "unauthorized"
	ErrCodeNoAvailability      = "no_availability"
	ErrCodeSlotUnavailable     = "slot_unavailable"
	ErrCodeInvalidDuration     = "invalid_duration"
	ErrCodeUnsupportedPlatform = "unsupported_platform"
	ErrCodeProvisioningFailed  = "provisioning_failed"
	ErrCodeInvalidState        = "invalid_state"
)

// AppError is the typed domain error crossing the service boundary.
type AppError struct {
	Code    string
	Message string
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewAppError builds an AppError with a formatted message.
func NewAppError(code, format string, args ...interface{}) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsAppError unwraps err into an AppError if it is one.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
