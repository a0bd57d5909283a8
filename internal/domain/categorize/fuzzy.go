package categorize

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/advviniciusgyn/classificadespesas/internal/domain/category"
	"github.com/advviniciusgyn/classificadespesas/internal/domain/transaction"
)

// DefaultFuzzyThreshold is the minimum similarity score (0-100) accepted by
// a freshly built FuzzyMatcher.
const DefaultFuzzyThreshold = 80

// ErrThresholdRange is returned when SetThreshold is given a value outside
// [0,100]. The current threshold is left unchanged.
var ErrThresholdRange = errors.New("fuzzy threshold must be between 0 and 100")

// FuzzyMatcher categorizes by approximate string matching: every pattern is
// scored against the normalized description with a token-order-insensitive
// similarity, and the best pattern wins when it reaches the threshold.
type FuzzyMatcher struct {
	patterns   []string // normalized, insertion order
	categories []string
	threshold  int
}

// NewFuzzyMatcher builds a matcher over the category set with the default
// threshold.
func NewFuzzyMatcher(set *category.Set) *FuzzyMatcher {
	m := &FuzzyMatcher{threshold: DefaultFuzzyThreshold}
	m.Build(set)
	return m
}

// Build rebuilds the pattern list from the category set. Wildcard markers
// are stripped: fuzzy matching treats exact and substring patterns alike.
func (m *FuzzyMatcher) Build(set *category.Set) {
	m.patterns = nil
	m.categories = nil
	seen := make(map[string]int)

	for _, rule := range set.Rules() {
		pattern := strings.Trim(normalizeText(rule.Pattern), "*")
		cat := strings.TrimSpace(rule.Category)
		if pattern == "" || cat == "" {
			continue
		}
		if idx, ok := seen[pattern]; ok {
			m.categories[idx] = cat
			continue
		}
		seen[pattern] = len(m.patterns)
		m.patterns = append(m.patterns, pattern)
		m.categories = append(m.categories, cat)
	}
}

// SetThreshold changes the acceptance threshold. Values outside [0,100] are
// rejected without mutating the current threshold.
func (m *FuzzyMatcher) SetThreshold(threshold int) error {
	if threshold < 0 || threshold > 100 {
		return ErrThresholdRange
	}
	m.threshold = threshold
	return nil
}

// Threshold returns the current acceptance threshold.
func (m *FuzzyMatcher) Threshold() int {
	return m.threshold
}

// Categorize scores every pattern against each uncategorized row, keeping
// the single best pattern. A score at or above the threshold assigns the
// pattern's category and records the score on the row. Ties keep the first
// pattern encountered; callers must not depend on tie order.
func (m *FuzzyMatcher) Categorize(_ context.Context, txs []transaction.Transaction) []transaction.Transaction {
	out := make([]transaction.Transaction, len(txs))
	copy(out, txs)

	if len(m.patterns) == 0 {
		return out
	}

	for i := range out {
		if out[i].Categorized() {
			continue
		}
		desc := normalizeText(out[i].Description)
		if desc == "" {
			continue
		}

		bestScore, bestIdx := -1, -1
		for idx, pattern := range m.patterns {
			if score := tokenSortRatio(desc, pattern); score > bestScore {
				bestScore, bestIdx = score, idx
			}
		}
		if bestIdx < 0 || bestScore < m.threshold {
			continue
		}

		score := bestScore
		out[i].Category = m.categories[bestIdx]
		out[i].MatchScore = &score
	}
	return out
}

// PatternCount returns how many patterns the matcher holds.
func (m *FuzzyMatcher) PatternCount() int {
	return len(m.patterns)
}

// tokenSortRatio scores two strings 0-100 ignoring token order: both sides
// are re-assembled from their sorted tokens, then compared by containment
// first (merchant variations like "supermercado brasil" vs "supermercado"
// score on length ratio) and edit-distance ratio otherwise.
func tokenSortRatio(a, b string) int {
	a, b = sortTokens(a), sortTokens(b)
	if a == b {
		return 100
	}

	la, lb := len([]rune(a)), len([]rune(b))
	maxLen := la
	if lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 0
	}

	if strings.Contains(a, b) {
		return 75 + 25*lb/la
	}
	if strings.Contains(b, a) {
		return 75 + 25*la/lb
	}

	dist := fuzzy.LevenshteinDistance(a, b)
	if dist > maxLen {
		dist = maxLen
	}
	return 100 * (maxLen - dist) / maxLen
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
