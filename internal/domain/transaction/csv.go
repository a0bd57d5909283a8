package transaction

import (
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"
)

// WriteCSV writes the ledger in the export format: date, description,
// amount, source, category, categorized_by, match_score. The match_score
// cell is empty for rows not resolved by the fuzzy stage.
func WriteCSV(w io.Writer, txs []Transaction) error {
	if err := gocsv.Marshal(&txs, w); err != nil {
		return fmt.Errorf("write transactions: %w", err)
	}
	return nil
}

// WriteCSVFile writes the ledger to path, creating or truncating it.
func WriteCSVFile(path string, txs []Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteCSV(f, txs); err != nil {
		return err
	}
	return f.Close()
}

// ReadCSV reads a previously exported ledger back into memory.
func ReadCSV(r io.Reader) ([]Transaction, error) {
	var txs []Transaction
	if err := gocsv.Unmarshal(r, &txs); err != nil {
		return nil, fmt.Errorf("read transactions: %w", err)
	}
	return txs, nil
}
