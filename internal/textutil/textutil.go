// Package textutil provides text normalization helpers used as comparison
// keys by every matcher. Two strings that normalize identically are treated
// as the same description for categorization purposes.
package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	nonDigitRe   = regexp.MustCompile(`[^\d]`)
	nonWordRe    = regexp.MustCompile(`[^\p{L}\p{N}\s]`)

	// NFD decomposition followed by removal of combining marks strips
	// diacritics without locale awareness (ação -> acao).
	deaccent = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// Normalize canonicalizes a string for comparison: whitespace runs collapse
// to a single space, the result is trimmed, lower-cased, and stripped of
// diacritics. Empty input yields the empty string; Normalize never fails.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	if out, _, err := transform.String(deaccent, s); err == nil {
		s = out
	}
	return s
}

// ExtractNumbers returns only the digits of the input.
func ExtractNumbers(s string) string {
	if s == "" {
		return ""
	}
	return nonDigitRe.ReplaceAllString(s, "")
}

// stopwords are corporate suffixes and connectives that carry no signal for
// categorization (Brazilian statement conventions).
var stopwords = map[string]struct{}{
	"ltda": {}, "me": {}, "sa": {}, "s/a": {}, "eireli": {},
	"com": {}, "de": {}, "do": {}, "da": {},
}

// CleanDescription strips punctuation and common corporate stop-words from a
// transaction description, returning a lower-cased compact form.
func CleanDescription(s string) string {
	if s == "" {
		return ""
	}
	s = nonWordRe.ReplaceAllString(s, " ")
	fields := strings.Fields(s)
	kept := fields[:0]
	for _, f := range fields {
		if _, skip := stopwords[strings.ToLower(f)]; skip {
			continue
		}
		kept = append(kept, f)
	}
	return strings.ToLower(strings.Join(kept, " "))
}
