package categorize

import (
	"context"
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/advviniciusgyn/classificadespesas/internal/domain/category"
	"github.com/advviniciusgyn/classificadespesas/internal/domain/transaction"
)

// RuleMatcher categorizes by exact and substring pattern matching against
// the category table. A pattern wrapped in wildcard markers (*pattern*) is a
// substring pattern with the markers stripped; anything else must equal the
// normalized description exactly.
type RuleMatcher struct {
	exact map[string]string // normalized pattern -> category, last write wins

	// Substring patterns keep table insertion order: the first inserted
	// pattern contained in a description wins, not the longest or best.
	subPatterns   []string
	subCategories []string
	subIndex      map[string]int
	matcher       *ahocorasick.Matcher
}

// NewRuleMatcher builds the pattern dictionaries from the category set.
func NewRuleMatcher(set *category.Set) *RuleMatcher {
	m := &RuleMatcher{}
	m.Build(set)
	return m
}

// Build rebuilds the dictionaries. Call it whenever the category table is
// reloaded or mutated; the matcher is read-only during a categorization run.
func (m *RuleMatcher) Build(set *category.Set) {
	m.exact = make(map[string]string)
	m.subPatterns = nil
	m.subCategories = nil
	m.subIndex = make(map[string]int)
	m.matcher = nil

	for _, rule := range set.Rules() {
		pattern := normalizeText(rule.Pattern)
		cat := strings.TrimSpace(rule.Category)
		if pattern == "" || cat == "" {
			continue
		}

		if strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*") {
			pattern = strings.Trim(pattern, "*")
			if pattern == "" {
				continue
			}
			if idx, ok := m.subIndex[pattern]; ok {
				m.subCategories[idx] = cat
				continue
			}
			m.subIndex[pattern] = len(m.subPatterns)
			m.subPatterns = append(m.subPatterns, pattern)
			m.subCategories = append(m.subCategories, cat)
			continue
		}

		m.exact[pattern] = cat
	}

	if len(m.subPatterns) > 0 {
		bytePatterns := make([][]byte, len(m.subPatterns))
		for i, p := range m.subPatterns {
			bytePatterns[i] = []byte(p)
		}
		m.matcher = ahocorasick.NewMatcher(bytePatterns)
	}
}

// Categorize assigns categories to the uncategorized rows. Exact matches
// take precedence over substring containment.
func (m *RuleMatcher) Categorize(_ context.Context, txs []transaction.Transaction) []transaction.Transaction {
	out := make([]transaction.Transaction, len(txs))
	copy(out, txs)

	for i := range out {
		if out[i].Categorized() {
			continue
		}
		if cat, ok := m.match(normalizeText(out[i].Description)); ok {
			out[i].Category = cat
		}
	}
	return out
}

func (m *RuleMatcher) match(desc string) (string, bool) {
	if desc == "" {
		return "", false
	}
	if cat, ok := m.exact[desc]; ok {
		return cat, true
	}
	if m.matcher == nil {
		return "", false
	}

	// The automaton reports every contained pattern; the winner is the one
	// inserted first, so take the lowest pattern index among the hits.
	hits := m.matcher.Match([]byte(desc))
	if len(hits) == 0 {
		return "", false
	}
	best := hits[0]
	for _, h := range hits[1:] {
		if h < best {
			best = h
		}
	}
	if best < 0 || best >= len(m.subCategories) {
		return "", false
	}
	return m.subCategories[best], true
}

// PatternCount returns how many patterns the matcher holds.
func (m *RuleMatcher) PatternCount() int {
	return len(m.exact) + len(m.subPatterns)
}
