package models

import (
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/mcncl/valuefmt/internal/errors"
)

// FormatTag names a format a value can be viewed or converted as.
// The set is closed; see AllFormats.
type FormatTag string

const (
	FormatRaw              FormatTag = "raw"
	FormatJSON             FormatTag = "json"
	FormatJSONMinified     FormatTag = "json-minified"
	FormatLegacySerialized FormatTag = "legacy-serialized"
	FormatXML              FormatTag = "xml"
	FormatBase64Decode     FormatTag = "base64-decode"
	FormatBase64Encode     FormatTag = "base64-encode"
	FormatURLDecode        FormatTag = "url-decode"
	FormatURLEncode        FormatTag = "url-encode"
)

// AllFormats returns every known tag in presentation order, raw first.
func AllFormats() []FormatTag {
	return []FormatTag{
		FormatRaw,
		FormatJSON,
		FormatJSONMinified,
		FormatLegacySerialized,
		FormatXML,
		FormatBase64Decode,
		FormatBase64Encode,
		FormatURLDecode,
		FormatURLEncode,
	}
}

var labels = map[FormatTag]string{
	FormatRaw:              "Raw",
	FormatJSON:             "JSON (Formatted)",
	FormatJSONMinified:     "JSON (Minified)",
	FormatLegacySerialized: "PHP Unserialize",
	FormatXML:              "XML (Formatted)",
	FormatBase64Decode:     "Base64 Decode",
	FormatBase64Encode:     "Base64 Encode",
	FormatURLDecode:        "URL Decode",
	FormatURLEncode:        "URL Encode",
}

// Label returns the display name for tag, or the tag itself when it has none.
func Label(tag FormatTag) string {
	if label, ok := labels[tag]; ok {
		return label
	}
	return string(tag)
}

// Known reports whether tag is one of AllFormats.
func Known(tag FormatTag) bool {
	_, ok := labels[tag]
	return ok
}

// String implements fmt.Stringer
func (t FormatTag) String() string {
	return string(t)
}

// ParseFormatTag resolves a user-supplied format name. Case and separators
// are ignored, so "JSON_MINIFIED", "jsonMinified" and "json minified" all
// resolve to FormatJSONMinified.
func ParseFormatTag(name string) (FormatTag, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", errors.NewInputError("format name is empty", errors.ErrUnknownFormat)
	}
	tag := FormatTag(strcase.ToKebab(trimmed))
	if Known(tag) {
		return tag, nil
	}
	// strcase splits letters from digits ("base-64-decode")
	tag = FormatTag(strings.ReplaceAll(string(tag), "base-64", "base64"))
	if Known(tag) {
		return tag, nil
	}
	return "", errors.NewInputError("unknown format '"+trimmed+"'", errors.ErrUnknownFormat)
}

// ConversionOutcome is the result of every conversion. A failed outcome
// carries the original input in Content and a non-empty Error; a successful
// one carries the converted text and no Error.
type ConversionOutcome struct {
	Success bool   `json:"success"`
	Content string `json:"content"`
	Error   string `json:"error,omitempty"`
}

// Succeeded builds a successful outcome.
func Succeeded(content string) ConversionOutcome {
	return ConversionOutcome{Success: true, Content: content}
}

// Failed builds a failed outcome that hands back the untouched input.
func Failed(original string, err error) ConversionOutcome {
	msg := errors.OutcomeMessage(err)
	if msg == "" {
		msg = "conversion failed"
	}
	return ConversionOutcome{Success: false, Content: original, Error: msg}
}
