// Package apperrors defines application-level error types.
package apperrors

import (
	"fmt"
)

// ValidationError indicates scenario or filter validation failed.
type ValidationError struct {
	Field   string   // Field that failed validation
	Message string   // Error message
	Details []string // Additional details
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s: %s (%d issues)", e.Field, e.Message, len(e.Details))
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string, details ...string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
		Details: details,
	}
}

// CurationError indicates the curation pipeline could not finish for a device.
type CurationError struct {
	Cause    error
	DeviceID string
	Message  string
}

func (e *CurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("curation failed for device %s: %s: %v", e.DeviceID, e.Message, e.Cause)
	}
	return fmt.Sprintf("curation failed for device %s: %s", e.DeviceID, e.Message)
}

func (e *CurationError) Unwrap() error {
	return e.Cause
}

// NewCurationError creates a new curation error.
func NewCurationError(deviceID, message string, cause error) *CurationError {
	return &CurationError{
		DeviceID: deviceID,
		Message:  message,
		Cause:    cause,
	}
}

// ConfigurationError indicates system config or setup issue.
type ConfigurationError struct {
	Cause   error
	Aspect  string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("configuration error (%s): %s: %v", e.Aspect, e.Message, e.Cause)
	}
	return fmt.Sprintf("configuration error (%s): %s", e.Aspect, e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(aspect, message string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Aspect:  aspect,
		Message: message,
		Cause:   cause,
	}
}
