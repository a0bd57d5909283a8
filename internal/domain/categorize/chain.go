package categorize

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/advviniciusgyn/classificadespesas/internal/domain/category"
	"github.com/advviniciusgyn/classificadespesas/internal/domain/transaction"
)

// Stats counts what each stage of one categorization run resolved. It is
// reset at the start of every Categorize call and satisfies
// Total == RuleBased + Fuzzy + AI + Uncategorized.
type Stats struct {
	Total         int
	RuleBased     int
	Fuzzy         int
	AI            int
	Uncategorized int
}

func (s Stats) String() string {
	return fmt.Sprintf("total=%d rule_based=%d fuzzy=%d ai=%d uncategorized=%d",
		s.Total, s.RuleBased, s.Fuzzy, s.AI, s.Uncategorized)
}

// Chain runs the rule, fuzzy and AI matchers in sequence. Every stage only
// sees the rows the previous stages left uncategorized, and an assigned row
// is never revisited. The chain is the single writable owner of the
// category table: mutations propagate to every sub-matcher before the next
// run.
type Chain struct {
	set       *category.Set
	rules     *RuleMatcher
	fuzzy     *FuzzyMatcher
	ai        *AIMatcher
	aiEnabled bool
	log       *slog.Logger
}

// ChainOption configures a Chain at construction time.
type ChainOption func(*Chain)

// WithAI enables the AI fallback stage with the given provider.
func WithAI(gen Generator) ChainOption {
	return func(c *Chain) {
		c.aiEnabled = true
		c.ai.SetGenerator(gen)
	}
}

// WithLogger sets the chain logger.
func WithLogger(logger *slog.Logger) ChainOption {
	return func(c *Chain) { c.log = logger }
}

// NewChain builds a chain over the category set. The AI stage is disabled
// until WithAI or SetAIEnabled turns it on.
func NewChain(set *category.Set, opts ...ChainOption) *Chain {
	if set == nil {
		set = category.NewSet(nil)
	}
	c := &Chain{
		set:   set,
		rules: NewRuleMatcher(set),
		fuzzy: NewFuzzyMatcher(set),
		log:   slog.Default(),
	}
	c.ai = NewAIMatcher(set, nil, c.log)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Categorize runs the cascade over txs and returns the annotated rows plus
// the per-method counts.
func (c *Chain) Categorize(ctx context.Context, txs []transaction.Transaction) ([]transaction.Transaction, Stats) {
	stats := Stats{Total: len(txs)}
	txs = ensureIDs(txs)

	c.log.Info("applying rule-based matcher", "rows", len(txs))
	result := c.stamp(txs, c.rules.Categorize(ctx, txs), transaction.MethodRule)
	stats.RuleBased = countBy(result, transaction.MethodRule)

	if residual := transaction.Uncategorized(result); len(residual) > 0 {
		c.log.Info("applying fuzzy matcher", "rows", len(residual))
		resolved := c.stamp(residual, c.fuzzy.Categorize(ctx, residual), transaction.MethodFuzzy)
		result = merge(result, resolved)
		stats.Fuzzy = countBy(result, transaction.MethodFuzzy)
	}

	if c.aiEnabled {
		if residual := transaction.Uncategorized(result); len(residual) > 0 {
			c.log.Info("applying ai matcher", "rows", len(residual))
			resolved := c.stamp(residual, c.ai.Categorize(ctx, residual), transaction.MethodAI)
			result = merge(result, resolved)
			stats.AI = countBy(result, transaction.MethodAI)
		}
	}

	stats.Uncategorized = stats.Total - stats.RuleBased - stats.Fuzzy - stats.AI
	c.log.Info("categorization finished", "stats", stats.String())
	return result, stats
}

// stamp marks the rows a stage newly resolved with its method tag.
func (c *Chain) stamp(before, after []transaction.Transaction, method transaction.Method) []transaction.Transaction {
	for i := range after {
		if after[i].Categorized() && !before[i].Categorized() {
			after[i].CategorizedBy = method
		}
	}
	return after
}

// merge folds a stage's output over the full result set, matching rows by
// identity. Rows absent from resolved keep their current state.
func merge(result, resolved []transaction.Transaction) []transaction.Transaction {
	byID := make(map[uuid.UUID]transaction.Transaction, len(resolved))
	for _, t := range resolved {
		byID[t.ID] = t
	}
	for i := range result {
		if t, ok := byID[result[i].ID]; ok {
			result[i] = t
		}
	}
	return result
}

// ensureIDs gives every row a distinct identity so stage merges can match
// rows back. Rows built by the extractor already carry one.
func ensureIDs(txs []transaction.Transaction) []transaction.Transaction {
	out := make([]transaction.Transaction, len(txs))
	copy(out, txs)
	for i := range out {
		if out[i].ID == uuid.Nil {
			out[i].ID = uuid.New()
		}
	}
	return out
}

func countBy(txs []transaction.Transaction, method transaction.Method) int {
	n := 0
	for _, t := range txs {
		if t.CategorizedBy == method {
			n++
		}
	}
	return n
}

// Set returns the category table the chain owns.
func (c *Chain) Set() *category.Set {
	return c.set
}

// Table-affecting mutators below rebuild every sub-matcher so they observe a
// consistent pattern set before the next run. They must not be called
// concurrently with an in-flight Categorize.

// LoadCategories replaces the category table from a CSV or spreadsheet file.
func (c *Chain) LoadCategories(path string) error {
	set, err := category.Load(path)
	if err != nil {
		return err
	}
	c.set = set
	c.rebuild()
	return nil
}

// AddCategory inserts or updates one pattern -> category rule.
func (c *Chain) AddCategory(pattern, cat string) {
	c.set.Add(pattern, cat)
	c.rebuild()
}

// SetFuzzyThreshold adjusts the fuzzy acceptance threshold.
func (c *Chain) SetFuzzyThreshold(threshold int) error {
	return c.fuzzy.SetThreshold(threshold)
}

// SetAIEnabled toggles the AI fallback stage.
func (c *Chain) SetAIEnabled(enabled bool) {
	c.aiEnabled = enabled
}

// SetAIAPIKey provisions the Gemini provider with the given credential. An
// empty key disables the provider.
func (c *Chain) SetAIAPIKey(apiKey, model string) {
	if apiKey == "" {
		c.ai.SetGenerator(nil)
		return
	}
	c.ai.SetGenerator(NewGeminiGenerator(apiKey, model))
}

func (c *Chain) rebuild() {
	c.rules.Build(c.set)
	c.fuzzy.Build(c.set)
	c.ai.Build(c.set)
}
