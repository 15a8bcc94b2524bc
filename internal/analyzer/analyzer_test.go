package analyzer

import (
	"testing"

	"github.com/mcncl/valuefmt/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []models.FormatTag
	}{
		{
			name:     "empty input",
			input:    "",
			expected: []models.FormatTag{models.FormatRaw},
		},
		{
			name:  "whitespace only",
			input: "   ",
			expected: []models.FormatTag{
				models.FormatRaw, models.FormatBase64Encode, models.FormatURLEncode,
			},
		},
		{
			name:  "json object",
			input: `{"name": "John"}`,
			expected: []models.FormatTag{
				models.FormatRaw, models.FormatJSON, models.FormatJSONMinified,
				models.FormatBase64Encode, models.FormatURLEncode,
			},
		},
		{
			name:  "json array with surrounding whitespace",
			input: "\n  [1, 2, 3]  \n",
			expected: []models.FormatTag{
				models.FormatRaw, models.FormatJSON, models.FormatJSONMinified,
				models.FormatBase64Encode, models.FormatURLEncode,
			},
		},
		{
			name:  "truncated json still offered",
			input: `{"name": "Jo`,
			expected: []models.FormatTag{
				models.FormatRaw, models.FormatJSON, models.FormatJSONMinified,
				models.FormatBase64Encode, models.FormatURLEncode,
			},
		},
		{
			name:  "serialized array",
			input: `a:1:{s:3:"key";s:3:"val";}`,
			expected: []models.FormatTag{
				models.FormatRaw, models.FormatJSON, models.FormatJSONMinified,
				models.FormatLegacySerialized, models.FormatBase64Encode, models.FormatURLEncode,
			},
		},
		{
			name:  "serialized null",
			input: "N;",
			expected: []models.FormatTag{
				models.FormatRaw, models.FormatLegacySerialized,
				models.FormatBase64Encode, models.FormatURLEncode,
			},
		},
		{
			name:  "serialized integer",
			input: "i:42;",
			expected: []models.FormatTag{
				models.FormatRaw, models.FormatLegacySerialized,
				models.FormatBase64Encode, models.FormatURLEncode,
			},
		},
		{
			name:  "serialized object",
			input: `O:8:"stdClass":0:{}`,
			expected: []models.FormatTag{
				models.FormatRaw, models.FormatJSON, models.FormatJSONMinified,
				models.FormatLegacySerialized, models.FormatBase64Encode, models.FormatURLEncode,
			},
		},
		{
			name:  "xml declaration",
			input: `<?xml version="1.0"?><root/>`,
			expected: []models.FormatTag{
				models.FormatRaw, models.FormatXML, models.FormatBase64Encode, models.FormatURLEncode,
			},
		},
		{
			name:  "xml element",
			input: "<note><to>Tove</to></note>",
			expected: []models.FormatTag{
				models.FormatRaw, models.FormatXML, models.FormatBase64Encode, models.FormatURLEncode,
			},
		},
		{
			name:  "less-than followed by digit is not xml",
			input: "<3 you",
			expected: []models.FormatTag{
				models.FormatRaw, models.FormatBase64Encode, models.FormatURLEncode,
			},
		},
		{
			name:  "base64 text",
			input: "aGVsbG8gd29ybGQ=",
			expected: []models.FormatTag{
				models.FormatRaw, models.FormatBase64Decode, models.FormatBase64Encode, models.FormatURLEncode,
			},
		},
		{
			name:  "percent encoded text",
			input: "hello%20world",
			expected: []models.FormatTag{
				models.FormatRaw, models.FormatBase64Encode, models.FormatURLDecode, models.FormatURLEncode,
			},
		},
		{
			name:  "plain text with spaces",
			input: "hello world",
			expected: []models.FormatTag{
				models.FormatRaw, models.FormatBase64Encode, models.FormatURLEncode,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Detect(tt.input))
		})
	}
}

func TestDetect_AlwaysRawFirstAndUnique(t *testing.T) {
	inputs := []string{
		"",
		"x",
		"{}",
		"[]",
		"N;",
		"<a/>",
		"%%%",
		"====",
		"d:1.5;",
		"b:1;",
		`s:3:"abc";`,
		"{ < % = }",
	}

	for _, input := range inputs {
		tags := Detect(input)
		require.NotEmpty(t, tags, "input %q", input)
		assert.Equal(t, models.FormatRaw, tags[0], "input %q", input)

		seen := make(map[models.FormatTag]bool)
		for _, tag := range tags {
			assert.False(t, seen[tag], "duplicate tag %s for input %q", tag, input)
			assert.True(t, models.Known(tag), "unknown tag %s", tag)
			seen[tag] = true
		}
	}
}

func TestDetect_HeaderPrefixOnly(t *testing.T) {
	// the header test is syntactic, so a broken body is still offered
	tags := Detect(`s:99:"short";`)
	assert.Contains(t, tags, models.FormatLegacySerialized)

	// a negative integer has no digit after the colon
	tags = Detect("i:-5;")
	assert.NotContains(t, tags, models.FormatLegacySerialized)

	// unknown tag letters are not offered
	tags = Detect("x:1;")
	assert.NotContains(t, tags, models.FormatLegacySerialized)
}
