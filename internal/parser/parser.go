// Package parser decodes values written in PHP's serialize() wire format.
//
// The grammar is a one-character type tag followed by a length-prefixed or
// ';'-terminated payload:
//
//	N;                               null
//	b:0; b:1;                        boolean
//	i:<int>;                         integer
//	d:<float>;                       float, including INF, -INF and NAN
//	s:<len>:"<len bytes>";           string, length counted in bytes
//	a:<n>:{<n key/value pairs>}      array
//	O:<len>:"<class>":<n>:{<pairs>}  object
//
// Decoding is a single forward pass; every decode method advances an
// explicit cursor held by a decoder.
package parser

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/mcncl/valuefmt/internal/errors"
)

// MaxDepth bounds nesting of arrays and objects.
const MaxDepth = 512

// smallest encoded key/value pair ("i:0;N;" is 6 bytes, "N;" alone 2)
const minPairBytes = 4

// Number literals as serialize() writes them: no '+', no hex, no
// lowercase inf or nan.
var (
	intLiteralRegex   = regexp.MustCompile(`^-?[0-9]+$`)
	floatLiteralRegex = regexp.MustCompile(`^-?[0-9]+(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?$`)
)

type decoder struct {
	buf   string
	pos   int
	depth int
}

// ParseString decodes a single serialized value. Surrounding whitespace is
// ignored; anything else after the value is an error.
func ParseString(input string) (v Value, err error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Value{}, errors.NewInputError("", errors.ErrEmptyInput)
	}

	defer func() {
		if r := recover(); r != nil {
			v = Value{}
			err = errors.NewParsingError(fmt.Sprintf("decoder failure: %v", r), errors.ErrMalformed)
		}
	}()

	d := &decoder{buf: trimmed}
	v, err = d.value()
	if err != nil {
		return Value{}, err
	}
	if d.pos != len(d.buf) {
		return Value{}, d.malformed("unexpected trailing data at offset %d", d.pos)
	}
	return v, nil
}

func (d *decoder) value() (Value, error) {
	if d.pos >= len(d.buf) {
		return Value{}, d.truncated("expected a value at offset %d, reached end of input", d.pos)
	}

	switch tag := d.buf[d.pos]; tag {
	case 'N':
		return d.null()
	case 'b':
		return d.boolean()
	case 'i':
		return d.integer()
	case 'd':
		return d.float()
	case 's':
		return d.str()
	case 'a':
		return d.array()
	case 'O':
		return d.object()
	default:
		return Value{}, errors.NewParsingError(fmt.Sprintf("%q at offset %d", tag, d.pos), errors.ErrUnrecognizedTag)
	}
}

func (d *decoder) null() (Value, error) {
	if err := d.expect('N'); err != nil {
		return Value{}, err
	}
	if err := d.expect(';'); err != nil {
		return Value{}, err
	}
	return Null(), nil
}

func (d *decoder) boolean() (Value, error) {
	if err := d.header('b'); err != nil {
		return Value{}, err
	}
	start := d.pos
	raw, err := d.readUntil(';')
	if err != nil {
		return Value{}, err
	}
	switch raw {
	case "0":
		return Bool(false), nil
	case "1":
		return Bool(true), nil
	default:
		return Value{}, d.malformed("invalid boolean %q at offset %d", raw, start)
	}
}

func (d *decoder) integer() (Value, error) {
	if err := d.header('i'); err != nil {
		return Value{}, err
	}
	start := d.pos
	raw, err := d.readUntil(';')
	if err != nil {
		return Value{}, err
	}
	if !intLiteralRegex.MatchString(raw) {
		return Value{}, d.malformed("invalid integer %q at offset %d", raw, start)
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return Value{}, d.malformed("invalid integer %q at offset %d", raw, start)
	}
	return Int(n), nil
}

func (d *decoder) float() (Value, error) {
	if err := d.header('d'); err != nil {
		return Value{}, err
	}
	start := d.pos
	raw, err := d.readUntil(';')
	if err != nil {
		return Value{}, err
	}
	switch raw {
	case "INF":
		return Float(math.Inf(1)), nil
	case "-INF":
		return Float(math.Inf(-1)), nil
	case "NAN":
		return Float(math.NaN()), nil
	}
	if !floatLiteralRegex.MatchString(raw) {
		return Value{}, d.malformed("invalid float %q at offset %d", raw, start)
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil && !isRangeError(err) {
		return Value{}, d.malformed("invalid float %q at offset %d", raw, start)
	}
	return Float(f), nil
}

func (d *decoder) str() (Value, error) {
	if err := d.header('s'); err != nil {
		return Value{}, err
	}
	s, err := d.quoted("string")
	if err != nil {
		return Value{}, err
	}
	if err := d.expect(';'); err != nil {
		return Value{}, err
	}
	return String(s), nil
}

func (d *decoder) array() (Value, error) {
	if err := d.header('a'); err != nil {
		return Value{}, err
	}
	entries, err := d.entries()
	if err != nil {
		return Value{}, err
	}
	if isSequential(entries) {
		items := make([]Value, len(entries))
		for i, e := range entries {
			items[i] = e.Value
		}
		return List(items...), nil
	}
	return Map(entries...), nil
}

func (d *decoder) object() (Value, error) {
	if err := d.header('O'); err != nil {
		return Value{}, err
	}
	class, err := d.quoted("class name")
	if err != nil {
		return Value{}, err
	}
	if err := d.expect(':'); err != nil {
		return Value{}, err
	}
	entries, err := d.entries()
	if err != nil {
		return Value{}, err
	}
	return Object(class, entries...), nil
}

// entries decodes "<n>:{<pairs>}". Repeated keys keep the position of their
// first occurrence and the value of their last.
func (d *decoder) entries() ([]Entry, error) {
	start := d.pos
	count, err := d.length()
	if err != nil {
		return nil, err
	}
	if err := d.expect('{'); err != nil {
		return nil, err
	}
	if count > (len(d.buf)-d.pos)/minPairBytes {
		return nil, d.truncated("element count %d at offset %d exceeds remaining input", count, start)
	}

	d.depth++
	defer func() { d.depth-- }()
	if d.depth > MaxDepth {
		return nil, d.malformed("nesting deeper than %d levels at offset %d", MaxDepth, start)
	}

	entries := make([]Entry, 0, count)
	positions := make(map[string]int, count)
	for i := 0; i < count; i++ {
		key, err := d.key()
		if err != nil {
			return nil, err
		}
		val, err := d.value()
		if err != nil {
			return nil, err
		}

		entry := Entry{Key: key, Value: val}
		name := entry.KeyString()
		if at, ok := positions[name]; ok {
			entries[at].Value = val
			continue
		}
		positions[name] = len(entries)
		entries = append(entries, entry)
	}

	if err := d.expect('}'); err != nil {
		return nil, err
	}
	return entries, nil
}

func (d *decoder) key() (Value, error) {
	if d.pos < len(d.buf) {
		switch tag := d.buf[d.pos]; tag {
		case 'N', 'b', 'd', 'a', 'O':
			return Value{}, d.malformed("invalid key type %q at offset %d", tag, d.pos)
		}
	}
	return d.value()
}

// quoted decodes `<len>:"<len bytes>"` and returns the bytes between quotes.
func (d *decoder) quoted(what string) (string, error) {
	start := d.pos
	n, err := d.length()
	if err != nil {
		return "", err
	}
	if err := d.expect('"'); err != nil {
		return "", err
	}
	if remaining := len(d.buf) - d.pos; n > remaining {
		return "", d.truncated("%s length %d at offset %d exceeds remaining %d bytes", what, n, start, remaining)
	}
	s := d.buf[d.pos : d.pos+n]
	d.pos += n
	if err := d.expect('"'); err != nil {
		return "", err
	}
	return s, nil
}

// length reads a non-negative decimal terminated by ':'.
func (d *decoder) length() (int, error) {
	start := d.pos
	raw, err := d.readUntil(':')
	if err != nil {
		return 0, err
	}
	if raw == "" || strings.TrimLeft(raw, "0123456789") != "" {
		return 0, d.malformed("invalid length %q at offset %d", raw, start)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, d.malformed("invalid length %q at offset %d", raw, start)
	}
	return n, nil
}

func (d *decoder) header(tag byte) error {
	if err := d.expect(tag); err != nil {
		return err
	}
	return d.expect(':')
}

func (d *decoder) expect(c byte) error {
	if d.pos >= len(d.buf) {
		return d.truncated("expected %q at offset %d, reached end of input", c, d.pos)
	}
	if got := d.buf[d.pos]; got != c {
		return d.malformed("expected %q at offset %d, found %q", c, d.pos, got)
	}
	d.pos++
	return nil
}

// readUntil returns the text up to the next c and moves past c.
func (d *decoder) readUntil(c byte) (string, error) {
	idx := strings.IndexByte(d.buf[d.pos:], c)
	if idx < 0 {
		return "", d.truncated("missing %q after offset %d", c, d.pos)
	}
	s := d.buf[d.pos : d.pos+idx]
	d.pos += idx + 1
	return s, nil
}

func (d *decoder) malformed(format string, args ...interface{}) error {
	return errors.NewParsingError(fmt.Sprintf(format, args...), errors.ErrMalformed)
}

func (d *decoder) truncated(format string, args ...interface{}) error {
	return errors.NewTruncationError(fmt.Sprintf(format, args...), errors.ErrTruncated)
}

// isSequential reports whether keys run 0, 1, 2... A string key spelled as
// a canonical integer counts as that integer, matching how entries merges
// duplicates.
func isSequential(entries []Entry) bool {
	for i, e := range entries {
		if e.KeyString() != strconv.Itoa(i) {
			return false
		}
	}
	return true
}

func isRangeError(err error) bool {
	numErr, ok := err.(*strconv.NumError)
	return ok && numErr.Err == strconv.ErrRange
}

func formatInt(i int64) string {
	return strconv.FormatInt(i, 10)
}
