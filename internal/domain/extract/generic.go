// Package extract turns tabular PDF statements into transaction candidates.
// It is a best-effort heuristic: tables it cannot resolve contribute zero
// transactions rather than errors.
package extract

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/advviniciusgyn/classificadespesas/internal/domain/transaction"
	"github.com/advviniciusgyn/classificadespesas/internal/textutil"
)

// Extractor is the strategy interface for statement extraction. New layouts
// are supported by implementing it, not by extending GenericExtractor.
type Extractor interface {
	// CanProcess is a cheap feasibility probe: true iff at least one table
	// is found on any page, independent of column inference.
	CanProcess(pdfPath string) bool
	// Extract returns the transactions recovered from the file. Extraction
	// failures degrade to an empty result; zero transactions is a normal,
	// reportable outcome.
	Extract(pdfPath string) []transaction.Transaction
}

// GenericExtractor locates transaction tables on every page and infers which
// columns hold date, description and amount without a known schema.
type GenericExtractor struct {
	src TableSource
	log *slog.Logger
}

// NewGenericExtractor builds an extractor over the given table source.
// A nil logger falls back to slog.Default.
func NewGenericExtractor(src TableSource, logger *slog.Logger) *GenericExtractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenericExtractor{src: src, log: logger}
}

// CanProcess reports whether the file contains at least one table.
func (e *GenericExtractor) CanProcess(pdfPath string) bool {
	pages, err := e.src.Tables(pdfPath)
	if err != nil {
		e.log.Error("probing pdf failed", "path", pdfPath, "error", err)
		return false
	}
	for _, tables := range pages {
		if len(tables) > 0 {
			return true
		}
	}
	return false
}

// Extract walks every table of every page, infers the column roles once per
// table, and emits the rows that survive date/amount normalization.
func (e *GenericExtractor) Extract(pdfPath string) []transaction.Transaction {
	pages, err := e.src.Tables(pdfPath)
	if err != nil {
		e.log.Error("extracting pdf failed", "path", pdfPath, "error", err)
		return nil
	}

	source := filepath.Base(pdfPath)
	var txs []transaction.Transaction
	for pageNum, tables := range pages {
		for tableNum, table := range tables {
			rows := e.extractTable(table)
			if len(rows) == 0 {
				e.log.Warn("table yielded no transactions",
					"path", pdfPath, "page", pageNum+1, "table", tableNum+1)
				continue
			}
			for _, raw := range rows {
				tx, ok := normalizeRow(raw, source)
				if !ok {
					continue
				}
				txs = append(txs, tx)
			}
		}
	}
	if len(txs) == 0 {
		e.log.Warn("no transactions extracted", "path", pdfPath)
	}
	return txs
}

// rawRow is a transaction candidate before normalization.
type rawRow struct {
	date, description, amount string
}

// extractTable resolves the column roles and pulls the candidate rows.
// Header inference runs first; an incomplete role map falls back to
// content-based inference. Still incomplete means the table is skipped.
func (e *GenericExtractor) extractTable(table Table) []rawRow {
	if len(table) < 2 {
		return nil
	}

	roles := inferColumnsByHeader(table[0])
	if !roles.Complete() {
		roles = inferColumnsByContent(table, roles)
	}
	if !roles.Complete() {
		return nil
	}

	var rows []rawRow
	for _, row := range table[1:] {
		raw, ok := extractRow(row, roles)
		if !ok {
			continue
		}
		rows = append(rows, raw)
	}
	return rows
}

// extractRow pulls the three role cells from a body row. All three must be
// non-empty, the date cell must match a recognized date shape and the amount
// cell a recognized amount shape; anything else is skipped silently.
func extractRow(row []string, roles ColumnRoleMap) (rawRow, bool) {
	get := func(idx int) string {
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	raw := rawRow{
		date:        get(roles.Date),
		description: get(roles.Description),
		amount:      get(roles.Amount),
	}
	if raw.date == "" || raw.description == "" || raw.amount == "" {
		return rawRow{}, false
	}
	if !looksLikeDate(raw.date) || !looksLikeAmount(raw.amount) {
		return rawRow{}, false
	}
	return raw, true
}

// normalizeRow converts a candidate into a typed transaction: ISO date,
// signed decimal amount, normalized description. Conversion failures drop
// the row.
func normalizeRow(raw rawRow, source string) (transaction.Transaction, bool) {
	date, err := normalizeDate(raw.date)
	if err != nil {
		return transaction.Transaction{}, false
	}
	amount, err := normalizeAmount(raw.amount)
	if err != nil {
		return transaction.Transaction{}, false
	}
	return transaction.New(date, textutil.Normalize(raw.description), amount, source), true
}
