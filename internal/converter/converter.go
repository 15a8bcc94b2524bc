// Package converter is the entry point of the engine: it proposes formats
// for a value and applies the one a caller picks.
//
// Every operation is a pure function of its arguments. A Converter holds only
// read-only settings and is safe for concurrent use.
package converter

import (
	"fmt"

	"github.com/mcncl/valuefmt/internal/analyzer"
	"github.com/mcncl/valuefmt/internal/config"
	"github.com/mcncl/valuefmt/internal/errors"
	"github.com/mcncl/valuefmt/internal/formatter"
	"github.com/mcncl/valuefmt/internal/models"
	"github.com/mcncl/valuefmt/internal/parser"
)

// Converter dispatches format tags to the matching decoder or re-encoder
type Converter struct {
	formatter *formatter.Formatter
	labels    map[models.FormatTag]string
}

// New creates a Converter with the built-in labels.
func New() *Converter {
	return &Converter{
		formatter: formatter.NewFormatter(),
		labels:    map[models.FormatTag]string{},
	}
}

// NewWithConfig creates a Converter that applies the label overrides of cfg.
func NewWithConfig(cfg *config.Config) *Converter {
	c := New()
	if cfg == nil {
		return c
	}
	for tag, label := range cfg.LabelOverrides() {
		c.labels[tag] = label
	}
	return c
}

// Detect returns the candidate formats for text, raw first.
func (c *Converter) Detect(text string) []models.FormatTag {
	return analyzer.Detect(text)
}

// Label returns the display name of tag.
func (c *Converter) Label(tag models.FormatTag) string {
	if label, ok := c.labels[tag]; ok && label != "" {
		return label
	}
	return models.Label(tag)
}

// Apply converts text to the format named by tag. Raw and unrecognized tags
// return text unchanged. A failed conversion returns text unchanged together
// with the reason.
func (c *Converter) Apply(text string, tag models.FormatTag) (outcome models.ConversionOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = models.Failed(text, errors.NewParsingError(fmt.Sprintf("conversion to %s aborted: %v", tag, r), nil))
		}
	}()

	var (
		out string
		err error
	)

	switch tag {
	case models.FormatJSON:
		out, err = c.formatter.FormatJSON(text)
	case models.FormatJSONMinified:
		out, err = c.formatter.MinifyJSON(text)
	case models.FormatLegacySerialized:
		var v parser.Value
		v, err = parser.ParseString(text)
		if err == nil {
			out = c.formatter.RenderValue(v)
		}
	case models.FormatXML:
		out, err = c.formatter.FormatXML(text)
	case models.FormatBase64Decode:
		out, err = formatter.DecodeBase64(text)
	case models.FormatBase64Encode:
		out, err = formatter.EncodeBase64(text)
	case models.FormatURLDecode:
		out, err = formatter.DecodeURL(text)
	case models.FormatURLEncode:
		out = formatter.EncodeURL(text)
	default:
		// raw, and any tag the caller made up
		return models.Succeeded(text)
	}

	if err != nil {
		return models.Failed(text, err)
	}
	return models.Succeeded(out)
}

var defaultConverter = New()

// Detect is Converter.Detect on a default Converter.
func Detect(text string) []models.FormatTag {
	return defaultConverter.Detect(text)
}

// Apply is Converter.Apply on a default Converter.
func Apply(text string, tag models.FormatTag) models.ConversionOutcome {
	return defaultConverter.Apply(text, tag)
}

// Label is Converter.Label on a default Converter.
func Label(tag models.FormatTag) string {
	return defaultConverter.Label(tag)
}
