package extract

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	errBadDate   = errors.New("unrecognized date format")
	errBadAmount = errors.New("unrecognized amount format")

	dateNoiseRe   = regexp.MustCompile(`[^\d/.\-]`)
	amountNoiseRe = regexp.MustCompile(`[^\d,.+\-]`)
)

// Day-first layouts dominate Brazilian statements; ISO-style layouts come
// last. The first successful parse wins.
var dateLayouts = []string{
	"02/01/2006",
	"02/01/06",
	"02.01.2006",
	"02.01.06",
	"02-01-2006",
	"02-01-06",
	"2006/01/02",
	"2006-01-02",
}

// normalizeDate parses a statement date cell and re-emits it as ISO-8601
// (YYYY-MM-DD). Characters outside digits and separators are stripped first
// so that cells like "12/03/2024 *" still parse.
func normalizeDate(s string) (string, error) {
	s = dateNoiseRe.ReplaceAllString(s, "")
	if s == "" {
		return "", errBadDate
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", errBadDate
}

// normalizeAmount parses a statement amount cell into a signed decimal.
// Currency symbols and other noise are stripped; parenthesized amounts are
// negative; the separator convention is Brazilian (dot = thousands, comma =
// decimal point).
func normalizeAmount(s string) (decimal.Decimal, error) {
	negative := strings.Contains(s, "(") && strings.Contains(s, ")")

	clean := amountNoiseRe.ReplaceAllString(s, "")
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")
	if clean == "" {
		return decimal.Zero, errBadAmount
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, errBadAmount
	}
	if negative && d.IsPositive() {
		d = d.Neg()
	}
	return d, nil
}
