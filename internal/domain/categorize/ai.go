package categorize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/advviniciusgyn/classificadespesas/internal/domain/category"
	"github.com/advviniciusgyn/classificadespesas/internal/domain/transaction"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-1.5-pro"

// examplesPerCategory bounds how many few-shot pairs each category
// contributes to the prompt.
const examplesPerCategory = 3

// Generator is the external text-generation capability the AI matcher
// depends on. Credential provisioning and provider selection live behind it.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator implements Generator on the Google Gemini API.
type GeminiGenerator struct {
	apiKey string
	model  string
	client *genai.Client
}

// NewGeminiGenerator builds a generator for the given API key and model.
// The underlying client is created lazily on first use.
func NewGeminiGenerator(apiKey, model string) *GeminiGenerator {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiGenerator{apiKey: apiKey, model: model}
}

// Generate sends the prompt and returns the model's raw text response.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  g.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return "", fmt.Errorf("create genai client: %w", err)
		}
		g.client = client
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

// AIMatcher categorizes the rows cheaper strategies could not resolve by
// asking a generative model. Each uncategorized row costs one blocking model
// call; the chain only hands it the residual minority.
type AIMatcher struct {
	gen        Generator // nil means unconfigured: the matcher is a no-op
	set        *category.Set
	examples   []category.Rule // up to examplesPerCategory per category
	log        *slog.Logger
	warnedOnce bool
}

// NewAIMatcher builds the matcher. gen may be nil when no credential is
// configured; Categorize then passes the batch through untouched.
func NewAIMatcher(set *category.Set, gen Generator, logger *slog.Logger) *AIMatcher {
	if logger == nil {
		logger = slog.Default()
	}
	m := &AIMatcher{gen: gen, log: logger}
	m.Build(set)
	return m
}

// Build refreshes the few-shot examples from the category set.
func (m *AIMatcher) Build(set *category.Set) {
	m.set = set
	m.examples = nil
	counts := make(map[string]int)
	for _, rule := range set.Rules() {
		if counts[rule.Category] >= examplesPerCategory {
			continue
		}
		counts[rule.Category]++
		m.examples = append(m.examples, rule)
	}
}

// SetGenerator swaps the model provider (nil disables the matcher).
func (m *AIMatcher) SetGenerator(gen Generator) {
	m.gen = gen
	m.warnedOnce = false
}

// Categorize asks the model for each uncategorized row. A failed call leaves
// that row uncategorized and never aborts the batch.
func (m *AIMatcher) Categorize(ctx context.Context, txs []transaction.Transaction) []transaction.Transaction {
	out := make([]transaction.Transaction, len(txs))
	copy(out, txs)

	if m.gen == nil {
		if !m.warnedOnce {
			m.log.Warn("ai matcher has no model configured, passing batch through")
			m.warnedOnce = true
		}
		return out
	}

	categories := m.set.Categories()
	if len(categories) == 0 {
		return out
	}

	for i := range out {
		if out[i].Categorized() || strings.TrimSpace(out[i].Description) == "" {
			continue
		}
		prompt := m.buildPrompt(out[i].Description, categories)
		resp, err := m.gen.Generate(ctx, prompt)
		if err != nil {
			m.log.Error("ai categorization failed",
				"description", out[i].Description, "error", err)
			continue
		}
		if cat := parseCategory(resp, categories); cat != "" {
			out[i].Category = cat
		}
	}
	return out
}

// buildPrompt assembles the few-shot prompt: labeled examples, the target
// description, the legal category names, and the answer-format instruction.
func (m *AIMatcher) buildPrompt(description string, categories []string) string {
	var b strings.Builder
	b.WriteString("Categorize a seguinte transação financeira em uma das categorias disponíveis.\n\n")

	if len(m.examples) > 0 {
		b.WriteString("Exemplos:\n")
		for _, ex := range m.examples {
			fmt.Fprintf(&b, "%q → %s\n", ex.Pattern, ex.Category)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "Agora, classifique só a categoria desta transação:\n%q\n\n", description)

	b.WriteString("Categorias disponíveis:\n")
	for _, c := range categories {
		b.WriteString("- " + c + "\n")
	}
	b.WriteString("\nResponda apenas com o nome da categoria, sem explicações adicionais.")
	return b.String()
}

// parseCategory extracts a legal category name from the model's free-text
// response: exact case-insensitive match first, then containment anywhere in
// the response. Anything else means no category assigned.
func parseCategory(response string, categories []string) string {
	clean := strings.ToLower(strings.TrimSpace(response))
	for _, c := range categories {
		if clean == strings.ToLower(c) {
			return c
		}
	}
	for _, c := range categories {
		if strings.Contains(clean, strings.ToLower(c)) {
			return c
		}
	}
	return ""
}
