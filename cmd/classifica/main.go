// Command classifica turns tabular PDF bank/credit-card statements into a
// categorized transaction ledger in CSV form.
//
// Usage:
//
//	classifica -categories categorias.csv -out ledger.csv extrato1.pdf extrato2.pdf
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/advviniciusgyn/classificadespesas/internal/domain/categorize"
	"github.com/advviniciusgyn/classificadespesas/internal/domain/category"
	"github.com/advviniciusgyn/classificadespesas/internal/domain/extract"
	"github.com/advviniciusgyn/classificadespesas/internal/domain/transaction"
	"github.com/advviniciusgyn/classificadespesas/pkg/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	categoriesPath := flag.String("categories", "", "category table (CSV or XLSX with pattern,category columns)")
	outPath := flag.String("out", "transactions.csv", "output CSV path")
	threshold := flag.Int("threshold", -1, "fuzzy acceptance threshold 0-100 (default from env)")
	aiFlag := flag.Bool("ai", false, "force-enable the AI fallback stage")
	flag.Parse()

	pdfs := flag.Args()
	if len(pdfs) == 0 {
		return fmt.Errorf("no PDF files given")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)
	cfg := config.Load()

	var set *category.Set
	if *categoriesPath != "" {
		loaded, err := category.Load(*categoriesPath)
		if err != nil {
			return fmt.Errorf("load categories: %w", err)
		}
		set = loaded
		logger.Info("category table loaded", "path", *categoriesPath, "rules", set.Len())
	} else {
		logger.Warn("no category table given, all rows will be uncategorized")
		set = category.NewSet(nil)
	}

	chain := categorize.NewChain(set, categorize.WithLogger(logger))

	fuzzyThreshold := cfg.Categorize.FuzzyThreshold
	if *threshold >= 0 {
		fuzzyThreshold = *threshold
	}
	if err := chain.SetFuzzyThreshold(fuzzyThreshold); err != nil {
		return err
	}

	enableAI := cfg.Categorize.EnableAI || *aiFlag
	chain.SetAIEnabled(enableAI)
	if enableAI {
		chain.SetAIAPIKey(cfg.Gemini.APIKey, cfg.Gemini.Model)
	}

	extractor := extract.NewGenericExtractor(extract.NewPDFTableSource(), logger)

	// PDFs are processed one at a time; only the outputs are concatenated.
	var txs []transaction.Transaction
	for _, path := range pdfs {
		if !extractor.CanProcess(path) {
			logger.Warn("no tables found in file", "path", path)
			continue
		}
		fileTxs := extractor.Extract(path)
		logger.Info("file extracted", "path", path, "transactions", len(fileTxs))
		txs = append(txs, fileTxs...)
	}

	result, stats := chain.Categorize(context.Background(), txs)

	if err := transaction.WriteCSVFile(*outPath, result); err != nil {
		return err
	}
	logger.Info("ledger written", "path", *outPath, "stats", stats.String())
	return nil
}
