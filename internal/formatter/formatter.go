package formatter

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/mcncl/valuefmt/internal/errors"
	"github.com/mcncl/valuefmt/internal/parser"
)

// DefaultIndent is the indent unit of every pretty-printed output.
const DefaultIndent = "  "

// ClassKey is the member that carries an object's class name when a decoded
// object is rendered as JSON.
const ClassKey = "__class"

// Formatter re-encodes text into canonical JSON or XML layouts
type Formatter struct {
	indent string
}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{indent: DefaultIndent}
}

// FormatJSON validates input as a single JSON value and re-indents it.
// Member order and number literals are kept as written.
func (f *Formatter) FormatJSON(input string) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(strings.TrimSpace(input)), "", f.indent); err != nil {
		return "", errors.NewFormatError(err.Error(), errors.ErrInvalidJSON)
	}
	return buf.String(), nil
}

// MinifyJSON validates input as a single JSON value and strips all
// insignificant whitespace.
func (f *Formatter) MinifyJSON(input string) (string, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(strings.TrimSpace(input))); err != nil {
		return "", errors.NewFormatError(err.Error(), errors.ErrInvalidJSON)
	}
	return buf.String(), nil
}

// RenderValue renders a decoded serialized value as indented JSON. Lists
// become arrays, maps keep their encounter order, and objects are emitted
// with their class name under ClassKey ahead of their fields.
func (f *Formatter) RenderValue(v parser.Value) string {
	var b strings.Builder
	f.writeValue(&b, v, 0)
	return b.String()
}

func (f *Formatter) writeValue(b *strings.Builder, v parser.Value, depth int) {
	switch v.Kind {
	case parser.KindNull:
		b.WriteString("null")
	case parser.KindBool:
		if v.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case parser.KindInt:
		b.WriteString(formatNumber(v.Int))
	case parser.KindFloat:
		b.WriteString(formatFloat(v.Float))
	case parser.KindString:
		b.WriteString(quote(v.Str))
	case parser.KindList:
		if len(v.Items) == 0 {
			b.WriteString("[]")
			return
		}
		b.WriteString("[")
		for i, item := range v.Items {
			if i > 0 {
				b.WriteString(",")
			}
			f.newline(b, depth+1)
			f.writeValue(b, item, depth+1)
		}
		f.newline(b, depth)
		b.WriteString("]")
	case parser.KindMap, parser.KindObject:
		members := v.Entries
		if v.Kind == parser.KindObject {
			members = append([]parser.Entry{parser.Field(ClassKey, parser.String(v.Class))}, v.Entries...)
		}
		if len(members) == 0 {
			b.WriteString("{}")
			return
		}
		b.WriteString("{")
		for i, member := range members {
			if i > 0 {
				b.WriteString(",")
			}
			f.newline(b, depth+1)
			b.WriteString(quote(member.KeyString()))
			b.WriteString(": ")
			f.writeValue(b, member.Value, depth+1)
		}
		f.newline(b, depth)
		b.WriteString("}")
	default:
		b.WriteString("null")
	}
}

func (f *Formatter) newline(b *strings.Builder, depth int) {
	b.WriteString("\n")
	b.WriteString(strings.Repeat(f.indent, depth))
}

// quote returns s as a JSON string literal without HTML escaping
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return `""`
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func formatNumber(i int64) string {
	out, _ := json.Marshal(i)
	return string(out)
}

// formatFloat uses JSON number formatting; JSON has no infinities or NaN so
// those render as null.
func formatFloat(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "null"
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(out)
}
