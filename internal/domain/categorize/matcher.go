// Package categorize assigns spending categories to transactions through a
// cascade of increasingly expensive strategies: exact/substring rules,
// fuzzy matching, and a generative-model fallback.
package categorize

import (
	"context"

	"github.com/advviniciusgyn/classificadespesas/internal/domain/transaction"
	"github.com/advviniciusgyn/classificadespesas/internal/textutil"
)

// Matcher is one categorization strategy. Categorize returns a new slice;
// input rows are never mutated, and rows that already carry a category pass
// through untouched.
type Matcher interface {
	Categorize(ctx context.Context, txs []transaction.Transaction) []transaction.Transaction
}

// normalizeText is the comparison key for every matcher in this package.
func normalizeText(s string) string {
	return textutil.Normalize(s)
}
