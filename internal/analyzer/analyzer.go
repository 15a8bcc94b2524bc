// Package analyzer sniffs a text value and proposes the formats it could be
// viewed as. Sniffing is advisory: it never parses, so a candidate may still
// fail when applied.
package analyzer

import (
	"regexp"
	"strings"

	"github.com/mcncl/valuefmt/internal/models"
)

// Regex patterns for format signatures
var (
	// one type tag, a colon and a digit, or the null literal
	serializedHeaderRegex = regexp.MustCompile(`^(?:[aOsidb]:[0-9]|N;)`)
	xmlStartRegex         = regexp.MustCompile(`^(?:<\?xml|<[A-Za-z])`)
	base64AlphabetRegex   = regexp.MustCompile(`^[A-Za-z0-9+/=]+$`)
)

// Detect returns the plausible formats for text in presentation order.
// The result always starts with models.FormatRaw and holds no duplicates.
func Detect(text string) []models.FormatTag {
	candidates := newTagSet()
	candidates.add(models.FormatRaw)

	if text == "" {
		return candidates.tags
	}

	trimmed := strings.TrimSpace(text)

	if looksLikeJSON(trimmed) {
		candidates.add(models.FormatJSON)
		candidates.add(models.FormatJSONMinified)
	}
	if serializedHeaderRegex.MatchString(trimmed) {
		candidates.add(models.FormatLegacySerialized)
	}
	if xmlStartRegex.MatchString(trimmed) {
		candidates.add(models.FormatXML)
	}
	if base64AlphabetRegex.MatchString(text) {
		candidates.add(models.FormatBase64Decode)
	}
	candidates.add(models.FormatBase64Encode)
	if strings.Contains(text, "%") {
		candidates.add(models.FormatURLDecode)
	}
	candidates.add(models.FormatURLEncode)

	return candidates.tags
}

// looksLikeJSON matches on either bracket so that values cut off by a
// column width limit are still offered as JSON.
func looksLikeJSON(trimmed string) bool {
	if trimmed == "" {
		return false
	}
	return strings.HasPrefix(trimmed, "{") || strings.HasSuffix(trimmed, "}") ||
		strings.HasPrefix(trimmed, "[") || strings.HasSuffix(trimmed, "]")
}

// tagSet is an insertion-ordered set of tags
type tagSet struct {
	seen map[models.FormatTag]struct{}
	tags []models.FormatTag
}

func newTagSet() *tagSet {
	return &tagSet{seen: make(map[models.FormatTag]struct{})}
}

func (s *tagSet) add(tag models.FormatTag) {
	if _, ok := s.seen[tag]; ok {
		return
	}
	s.seen[tag] = struct{}{}
	s.tags = append(s.tags, tag)
}
