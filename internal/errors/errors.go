package errors

import (
	"errors"
	"fmt"
)

// Standard application errors
var (
	ErrEmptyInput         = errors.New("empty content")
	ErrMalformed          = errors.New("malformed serialized value")
	ErrTruncated          = errors.New("serialized value is truncated")
	ErrUnrecognizedTag    = errors.New("unrecognized type tag")
	ErrInvalidJSON        = errors.New("Invalid JSON")
	ErrInvalidXML         = errors.New("Invalid XML")
	ErrInvalidBase64      = errors.New("Invalid Base64 string")
	ErrInvalidBase64Input = errors.New("Invalid Base64 input")
	ErrInvalidURLEncoding = errors.New("Invalid URL encoded string")
	ErrUnknownFormat      = errors.New("unknown format")
	ErrFileNotFound       = errors.New("file not found")
	ErrInputTooLarge      = errors.New("input exceeds the configured size limit")
	ErrNoInput            = errors.New("no input provided: please specify a file with -i or pipe data to stdin")
)

// ErrorType categorizes errors
type ErrorType string

const (
	ErrorTypeInput      ErrorType = "input"
	ErrorTypeParsing    ErrorType = "parsing"
	ErrorTypeTruncation ErrorType = "truncation"
	ErrorTypeEncoding   ErrorType = "encoding"
	ErrorTypeFormat     ErrorType = "format"
	ErrorTypeOutput     ErrorType = "output"
	ErrorTypeConfig     ErrorType = "config"
	ErrorTypeUnknown    ErrorType = "unknown"
)

// AppError is an application-specific error with context
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for comparison
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// NewInputError creates a new error related to input processing
func NewInputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeInput,
		Message: message,
		Err:     err,
	}
}

// NewParsingError creates a new error for input that does not match the
// grammar a converter expects
func NewParsingError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeParsing,
		Message: message,
		Err:     err,
	}
}

// NewTruncationError creates a new error for a length-prefixed field that
// claims more data than remains
func NewTruncationError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeTruncation,
		Message: message,
		Err:     err,
	}
}

// NewEncodingError creates a new error related to Base64 or percent encoding
func NewEncodingError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeEncoding,
		Message: message,
		Err:     err,
	}
}

// NewFormatError creates a new error related to JSON or XML re-formatting
func NewFormatError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeFormat,
		Message: message,
		Err:     err,
	}
}

// NewOutputError creates a new error related to output processing
func NewOutputError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeOutput,
		Message: message,
		Err:     err,
	}
}

// NewConfigError creates a new error related to configuration loading
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ErrorTypeConfig,
		Message: message,
		Err:     err,
	}
}

// OutcomeMessage renders err as the short message carried by a failed
// conversion. Typed errors keep their message and cause without the type
// prefix; everything else falls back to Error().
func OutcomeMessage(err error) string {
	if err == nil {
		return ""
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			if appErr.Message == "" || appErr.Message == appErr.Err.Error() {
				return appErr.Err.Error()
			}
			return fmt.Sprintf("%s: %s", appErr.Err.Error(), appErr.Message)
		}
		return appErr.Message
	}
	return err.Error()
}

// UserFriendlyError returns a user-friendly error message
func UserFriendlyError(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case ErrorTypeInput:
			return fmt.Sprintf("Input error: %s", appErr.Message)
		case ErrorTypeParsing:
			return fmt.Sprintf("Parsing error: %s", appErr.Message)
		case ErrorTypeTruncation:
			return fmt.Sprintf("Truncated input: %s", appErr.Message)
		case ErrorTypeEncoding:
			return fmt.Sprintf("Encoding error: %s", appErr.Message)
		case ErrorTypeFormat:
			return fmt.Sprintf("Formatting error: %s", appErr.Message)
		case ErrorTypeOutput:
			return fmt.Sprintf("Output error: %s", appErr.Message)
		case ErrorTypeConfig:
			return fmt.Sprintf("Configuration error: %s", appErr.Message)
		default:
			return fmt.Sprintf("Error: %s", appErr.Message)
		}
	}

	// Handle standard errors
	if errors.Is(err, ErrEmptyInput) {
		return "Error: The input is empty. Please provide a value to convert."
	}
	if errors.Is(err, ErrUnknownFormat) {
		return "Error: Unknown format. Run with --list to see the supported formats."
	}
	if errors.Is(err, ErrFileNotFound) {
		return "Error: The specified file could not be found. Please check the file path."
	}
	if errors.Is(err, ErrNoInput) {
		return "Error: No input provided. Please specify a file with -i or pipe data to stdin."
	}

	// Generic error message for unknown errors
	return fmt.Sprintf("Error: %v", err)
}
