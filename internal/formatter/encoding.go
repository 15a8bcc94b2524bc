package formatter

import (
	"encoding/base64"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/mcncl/valuefmt/internal/errors"
)

// strict padding and no trailing bits, so decoding then encoding gives back
// the exact input
var base64Encoding = base64.StdEncoding.Strict()

// DecodeBase64 decodes standard padded Base64. The decoded bytes must be
// valid UTF-8 text.
func DecodeBase64(input string) (string, error) {
	// the stdlib decoder skips line breaks, which would break round-tripping
	if strings.ContainsAny(input, "\r\n") {
		return "", errors.NewEncodingError("line breaks are not part of the alphabet", errors.ErrInvalidBase64)
	}
	decoded, err := base64Encoding.DecodeString(input)
	if err != nil {
		return "", errors.NewEncodingError(err.Error(), errors.ErrInvalidBase64)
	}
	if !utf8.Valid(decoded) {
		return "", errors.NewEncodingError("decoded bytes are not valid UTF-8 text", errors.ErrInvalidBase64)
	}
	return string(decoded), nil
}

// EncodeBase64 encodes the UTF-8 bytes of input as standard padded Base64.
func EncodeBase64(input string) (string, error) {
	if !utf8.ValidString(input) {
		return "", errors.NewEncodingError("input is not valid UTF-8 text", errors.ErrInvalidBase64Input)
	}
	return base64Encoding.EncodeToString([]byte(input)), nil
}

// DecodeURL resolves %XX escapes. A '+' is kept as is. The escapes must
// decode to valid UTF-8 text.
func DecodeURL(input string) (string, error) {
	decoded, err := url.PathUnescape(input)
	if err != nil {
		return "", errors.NewEncodingError(err.Error(), errors.ErrInvalidURLEncoding)
	}
	if !utf8.ValidString(decoded) {
		return "", errors.NewEncodingError("decoded bytes are not valid UTF-8 text", errors.ErrInvalidURLEncoding)
	}
	return decoded, nil
}

const upperHex = "0123456789ABCDEF"

// EncodeURL percent-encodes every byte of input except ASCII letters,
// digits and - _ . ! ~ * ' ( ).
func EncodeURL(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for i := 0; i < len(input); i++ {
		c := input[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0f])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
