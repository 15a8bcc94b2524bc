package formatter

import (
	"testing"

	"github.com/mcncl/valuefmt/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBase64(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "padded", input: "aGVsbG8gd29ybGQ=", expected: "hello world"},
		{name: "no padding needed", input: "YWJj", expected: "abc"},
		{name: "double padding", input: "YQ==", expected: "a"},
		{name: "multi-byte text", input: "w6nDqA==", expected: "éè"},
		{name: "empty", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeBase64(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, decoded)
		})
	}
}

func TestDecodeBase64_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "bad character", input: "aGVs*G8="},
		{name: "missing padding", input: "YQ"},
		{name: "non-zero trailing bits", input: "YR=="},
		{name: "line break", input: "YWJj\nYWJj"},
		{name: "url alphabet", input: "-_-_"},
		{name: "binary payload", input: "/w=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBase64(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrInvalidBase64), "got %v", err)
			assert.Contains(t, errors.OutcomeMessage(err), "Invalid Base64 string")
		})
	}
}

func TestEncodeBase64(t *testing.T) {
	encoded, err := EncodeBase64("hello world")
	require.NoError(t, err)
	assert.Equal(t, "aGVsbG8gd29ybGQ=", encoded)

	encoded, err = EncodeBase64("éè")
	require.NoError(t, err)
	assert.Equal(t, "w6nDqA==", encoded)

	_, err = EncodeBase64("bad \xff byte")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidBase64Input))
}

func TestBase64_DecodeThenEncodeIsIdentity(t *testing.T) {
	inputs := []string{"aGVsbG8gd29ybGQ=", "YWJj", "YQ==", "w6nDqA==", "e30=", ""}

	for _, input := range inputs {
		decoded, err := DecodeBase64(input)
		require.NoError(t, err)
		encoded, err := EncodeBase64(decoded)
		require.NoError(t, err)
		assert.Equal(t, input, encoded)
	}
}

func TestDecodeURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "space", input: "hello%20world", expected: "hello world"},
		{name: "plus kept", input: "a+b%2Bc", expected: "a+b+c"},
		{name: "lower case hex", input: "%c3%a9", expected: "é"},
		{name: "no escapes", input: "plain", expected: "plain"},
		{name: "query string", input: "q%3Dgo%26page%3D2", expected: "q=go&page=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := DecodeURL(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, decoded)
		})
	}
}

func TestDecodeURL_Invalid(t *testing.T) {
	inputs := []string{"100%", "%zz", "abc%2", "%%"}

	for _, input := range inputs {
		_, err := DecodeURL(input)
		require.Error(t, err, "input %q", input)
		assert.True(t, errors.Is(err, errors.ErrInvalidURLEncoding))
		assert.Contains(t, errors.OutcomeMessage(err), "Invalid URL encoded string")
	}
}

func TestDecodeURL_NotUTF8(t *testing.T) {
	inputs := []string{"%FF", "%C3", "caf%C3", "%C3%28", "ok%ED%A0%80"}

	for _, input := range inputs {
		_, err := DecodeURL(input)
		require.Error(t, err, "input %q", input)
		assert.True(t, errors.Is(err, errors.ErrInvalidURLEncoding))
		assert.Equal(t, "Invalid URL encoded string: decoded bytes are not valid UTF-8 text", errors.OutcomeMessage(err))
	}

	decoded, err := DecodeURL("caf%C3%A9")
	require.NoError(t, err)
	assert.Equal(t, "café", decoded)
}

func TestEncodeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "hello world", expected: "hello%20world"},
		{input: "a+b=c&d", expected: "a%2Bb%3Dc%26d"},
		{input: "keep-_.!~*'()", expected: "keep-_.!~*'()"},
		{input: "é", expected: "%C3%A9"},
		{input: "100%", expected: "100%25"},
		{input: "", expected: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, EncodeURL(tt.input), "input %q", tt.input)
	}
}

func TestURL_EncodeThenDecodeIsIdentity(t *testing.T) {
	inputs := []string{
		"",
		"plain",
		"hello world",
		"a+b c%d",
		"日本語 / テキスト?",
		"line\nbreak\ttab",
		"\x00 nul byte",
		`{"json": [1, 2]}`,
	}

	for _, input := range inputs {
		decoded, err := DecodeURL(EncodeURL(input))
		require.NoError(t, err)
		assert.Equal(t, input, decoded)
	}
}
