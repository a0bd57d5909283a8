// Package category holds the user-supplied pattern -> category table that
// drives every matcher in the categorization chain.
package category

// Rule is one row of the category table. A pattern wrapped in wildcard
// markers (*pattern*) requests substring matching; unwrapped patterns must
// match a normalized description exactly. The distinction is derived by the
// matchers at build time, not stored here.
type Rule struct {
	Pattern  string `csv:"pattern"`
	Category string `csv:"category"`
}

// Set is an ordered collection of rules. Order is insertion order of the
// source table and is observable: substring matching resolves ties by first
// inserted pattern.
type Set struct {
	rules []Rule
}

// NewSet builds a set from rules, preserving order.
func NewSet(rules []Rule) *Set {
	s := &Set{rules: make([]Rule, 0, len(rules))}
	for _, r := range rules {
		s.Add(r.Pattern, r.Category)
	}
	return s
}

// Add inserts a rule. If the pattern already exists its category is updated
// in place (last write wins) and its original position is kept.
func (s *Set) Add(pattern, category string) {
	for i := range s.rules {
		if s.rules[i].Pattern == pattern {
			s.rules[i].Category = category
			return
		}
	}
	s.rules = append(s.rules, Rule{Pattern: pattern, Category: category})
}

// Rules returns the rules in insertion order. Callers must not mutate the
// returned slice.
func (s *Set) Rules() []Rule {
	if s == nil {
		return nil
	}
	return s.rules
}

// Len returns the number of rules.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rules)
}

// Categories returns the distinct category names in first-seen order.
func (s *Set) Categories() []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(s.rules))
	var out []string
	for _, r := range s.rules {
		if _, ok := seen[r.Category]; ok {
			continue
		}
		seen[r.Category] = struct{}{}
		out = append(out, r.Category)
	}
	return out
}

// PatternsByCategory returns the patterns registered for one category, in
// insertion order.
func (s *Set) PatternsByCategory(category string) []string {
	if s == nil {
		return nil
	}
	var out []string
	for _, r := range s.rules {
		if r.Category == category {
			out = append(out, r.Pattern)
		}
	}
	return out
}

// CategoryStats returns the pattern count per category.
func (s *Set) CategoryStats() map[string]int {
	if s == nil {
		return map[string]int{}
	}
	stats := make(map[string]int, len(s.rules))
	for _, r := range s.rules {
		stats[r.Category]++
	}
	return stats
}
