package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType classifies application errors. The dashboard only ever shows a single
// message per failure, so the type decides that message and the HTTP status.
type ErrorType int

// User-action errors - terminal for the action that triggered them, never retried
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeInvalidInput
	ErrorTypeCityNotFound
	ErrorTypeNetwork
	ErrorTypeNoLocationFound
	ErrorTypeGeolocationDenied
	ErrorTypeGeolocationUnavailable
	ErrorTypeGeolocationTimeout
	ErrorTypeGeolocationUnsupported

	// Infrastructure and setup errors
	ErrorTypeValidation
	ErrorTypeNotFound
	ErrorTypeDatabase
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeInvalidInput:
		return "INVALID_INPUT"
	case ErrorTypeCityNotFound:
		return "CITY_NOT_FOUND"
	case ErrorTypeNetwork:
		return "NETWORK_ERROR"
	case ErrorTypeNoLocationFound:
		return "NO_LOCATION_FOUND"
	case ErrorTypeGeolocationDenied:
		return "GEOLOCATION_DENIED"
	case ErrorTypeGeolocationUnavailable:
		return "GEOLOCATION_UNAVAILABLE"
	case ErrorTypeGeolocationTimeout:
		return "GEOLOCATION_TIMEOUT"
	case ErrorTypeGeolocationUnsupported:
		return "GEOLOCATION_UNSUPPORTED"
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeNotFound:
		return "NOT_FOUND_ERROR"
	case ErrorTypeDatabase:
		return "DATABASE_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

// Fixed user-facing messages, one per action failure
const (
	MessageInvalidCity            = "Please enter a valid city name."
	MessageCityNotFound           = "City not found"
	MessageNetwork                = "Unable to reach the weather service. Please try again."
	MessageNoLocationFound        = "No location found for these coordinates"
	MessageGeolocationDenied      = "Geolocation request denied. Please enable location services."
	MessageGeolocationUnavailable = "Location information unavailable. Please try again."
	MessageGeolocationTimeout     = "Location request timed out. Please try again."
	MessageGeolocationUnsupported = "Geolocation is not supported by your browser"
	MessageGeolocationUnknown     = "An unknown error occurred while requesting location."
	MessageInternal               = "Something went wrong. Please try again."
)

type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// User-action error constructors
func NewInvalidInputError(message string) *AppError {
	return New(ErrorTypeInvalidInput, message)
}

func NewCityNotFoundError(message string) *AppError {
	return New(ErrorTypeCityNotFound, message)
}

func NewNetworkError(message string, cause error) *AppError {
	return Wrap(ErrorTypeNetwork, message, cause)
}

func NewNoLocationFoundError(message string) *AppError {
	return New(ErrorTypeNoLocationFound, message)
}

func NewGeolocationError(errorType ErrorType, message string) *AppError {
	return New(errorType, message)
}

// Infrastructure error constructors
func NewValidationError(message string) *AppError {
	return New(ErrorTypeValidation, message)
}

func NewNotFoundError(message string) *AppError {
	return New(ErrorTypeNotFound, message)
}

func NewDatabaseError(message string, cause error) *AppError {
	return Wrap(ErrorTypeDatabase, message, cause)
}

func NewConfigurationError(message string, cause error) *AppError {
	return Wrap(ErrorTypeConfiguration, message, cause)
}

// TypeOf returns the type of the first AppError in the chain, or ErrorTypeUnknown.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

func Is(err error, errorType ErrorType) bool {
	return err != nil && TypeOf(err) == errorType
}

func IsInvalidInputError(err error) bool {
	return Is(err, ErrorTypeInvalidInput)
}

func IsCityNotFoundError(err error) bool {
	return Is(err, ErrorTypeCityNotFound)
}

func IsNetworkError(err error) bool {
	return Is(err, ErrorTypeNetwork)
}

func IsNoLocationFoundError(err error) bool {
	return Is(err, ErrorTypeNoLocationFound)
}

func IsGeolocationError(err error) bool {
	switch TypeOf(err) {
	case ErrorTypeGeolocationDenied, ErrorTypeGeolocationUnavailable,
		ErrorTypeGeolocationTimeout, ErrorTypeGeolocationUnsupported:
		return true
	}
	return false
}

func IsNotFoundError(err error) bool {
	return Is(err, ErrorTypeNotFound)
}

func IsValidationError(err error) bool {
	return Is(err, ErrorTypeValidation)
}

func IsDatabaseError(err error) bool {
	return Is(err, ErrorTypeDatabase)
}

func IsConfigurationError(err error) bool {
	return Is(err, ErrorTypeConfiguration)
}

// UserMessage converts any error into the one message shown to the user.
// User-action errors carry their own message; everything else collapses to MessageInternal.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if !stderrors.As(err, &appErr) {
		return MessageInternal
	}

	switch appErr.Type {
	case ErrorTypeInvalidInput, ErrorTypeCityNotFound, ErrorTypeNoLocationFound,
		ErrorTypeGeolocationDenied, ErrorTypeGeolocationUnavailable,
		ErrorTypeGeolocationTimeout, ErrorTypeGeolocationUnsupported:
		return appErr.Message
	case ErrorTypeNetwork:
		if appErr.Message != "" {
			return appErr.Message
		}
		return MessageNetwork
	case ErrorTypeValidation:
		return appErr.Message
	default:
		return MessageInternal
	}
}
