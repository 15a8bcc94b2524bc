package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		expected string
	}{
		{
			name: "error with wrapped error",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "failed to read input",
				Err:     errors.New("file not found"),
			},
			expected: "input: failed to read input: file not found",
		},
		{
			name: "error without wrapped error",
			appError: &AppError{
				Type:    ErrorTypeParsing,
				Message: "unrecognized type tag",
				Err:     nil,
			},
			expected: "parsing: unrecognized type tag",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Error()
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	wrappedErr := errors.New("wrapped error")
	appErr := &AppError{
		Type:    ErrorTypeInput,
		Message: "test message",
		Err:     wrappedErr,
	}

	result := appErr.Unwrap()
	assert.Equal(t, wrappedErr, result)
}

func TestAppError_Is(t *testing.T) {
	tests := []struct {
		name     string
		appError *AppError
		target   error
		expected bool
	}{
		{
			name: "same type",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "test message",
				Err:     nil,
			},
			target: &AppError{
				Type:    ErrorTypeInput,
				Message: "different message",
				Err:     errors.New("some error"),
			},
			expected: true,
		},
		{
			name: "different type",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "test message",
				Err:     nil,
			},
			target: &AppError{
				Type:    ErrorTypeParsing,
				Message: "test message",
				Err:     nil,
			},
			expected: false,
		},
		{
			name: "not an AppError",
			appError: &AppError{
				Type:    ErrorTypeInput,
				Message: "test message",
				Err:     nil,
			},
			target:   errors.New("standard error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.appError.Is(tt.target)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestUserFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "input error",
			err:      NewInputError("failed to read file", nil),
			expected: "Input error: failed to read file",
		},
		{
			name:     "parsing error",
			err:      NewParsingError("missing terminator", nil),
			expected: "Parsing error: missing terminator",
		},
		{
			name:     "truncation error",
			err:      NewTruncationError("string length 10 exceeds remaining 3 bytes", nil),
			expected: "Truncated input: string length 10 exceeds remaining 3 bytes",
		},
		{
			name:     "encoding error",
			err:      NewEncodingError("bad escape", nil),
			expected: "Encoding error: bad escape",
		},
		{
			name:     "format error",
			err:      NewFormatError("unexpected end element", nil),
			expected: "Formatting error: unexpected end element",
		},
		{
			name:     "output error",
			err:      NewOutputError("failed to write output", nil),
			expected: "Output error: failed to write output",
		},
		{
			name:     "config error",
			err:      NewConfigError("bad default format", nil),
			expected: "Configuration error: bad default format",
		},
		{
			name:     "standard error - empty input",
			err:      ErrEmptyInput,
			expected: "Error: The input is empty. Please provide a value to convert.",
		},
		{
			name:     "standard error - unknown format",
			err:      ErrUnknownFormat,
			expected: "Error: Unknown format. Run with --list to see the supported formats.",
		},
		{
			name:     "unknown error",
			err:      errors.New("some unknown error"),
			expected: "Error: some unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := UserFriendlyError(tt.err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestOutcomeMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
		{
			name:     "sentinel only",
			err:      NewInputError("", ErrEmptyInput),
			expected: "empty content",
		},
		{
			name:     "sentinel with detail",
			err:      NewFormatError("element <b> closed by </a>", ErrInvalidXML),
			expected: "Invalid XML: element <b> closed by </a>",
		},
		{
			name:     "message without cause",
			err:      NewParsingError("unexpected character", nil),
			expected: "unexpected character",
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			expected: "boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, OutcomeMessage(tt.err))
		})
	}
}

func TestAppError_IsSentinel(t *testing.T) {
	err := NewTruncationError("count 3 exceeds input", ErrTruncated)
	assert.True(t, errors.Is(err, ErrTruncated))
	assert.False(t, errors.Is(err, ErrMalformed))
	assert.True(t, errors.Is(err, &AppError{Type: ErrorTypeTruncation}))
}

func TestIsAndAs(t *testing.T) {
	err := fmt.Errorf("apply json: %w", NewFormatError("unexpected end of JSON input", ErrInvalidJSON))
	assert.True(t, Is(err, ErrInvalidJSON))
	assert.False(t, Is(err, ErrInvalidXML))

	var appErr *AppError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, ErrorTypeFormat, appErr.Type)
	assert.Equal(t, "Invalid JSON: unexpected end of JSON input", OutcomeMessage(err))
}
