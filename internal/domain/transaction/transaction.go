// Package transaction defines the normalized ledger row produced by the
// extractors and annotated by the categorization chain.
package transaction

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Method records which stage of the categorization cascade assigned a
// transaction's category. The zero value means uncategorized.
type Method string

const (
	MethodNone  Method = ""
	MethodRule  Method = "rule_based"
	MethodFuzzy Method = "fuzzy"
	MethodAI    Method = "ai"
)

// Transaction is one normalized statement row. Category, CategorizedBy and
// MatchScore are written exactly once by the chain and never mutated
// afterward.
type Transaction struct {
	ID            uuid.UUID       `csv:"-"`
	Date          string          `csv:"date"` // ISO-8601 (YYYY-MM-DD)
	Description   string          `csv:"description"`
	Amount        decimal.Decimal `csv:"amount"` // signed, negative = money out
	Source        string          `csv:"source"` // originating file name
	Category      string          `csv:"category"`
	CategorizedBy Method          `csv:"categorized_by"`
	MatchScore    *int            `csv:"match_score"` // fuzzy stage only, 0-100
}

// New builds a transaction with a fresh identity.
func New(date, description string, amount decimal.Decimal, source string) Transaction {
	return Transaction{
		ID:          uuid.New(),
		Date:        date,
		Description: description,
		Amount:      amount,
		Source:      source,
	}
}

// Categorized reports whether a category has been assigned.
func (t Transaction) Categorized() bool {
	return t.Category != ""
}

// Uncategorized returns the subset of txs that still has no category.
func Uncategorized(txs []Transaction) []Transaction {
	var out []Transaction
	for _, t := range txs {
		if !t.Categorized() {
			out = append(out, t)
		}
	}
	return out
}
