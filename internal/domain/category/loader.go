package category

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/xuri/excelize/v2"

	"github.com/advviniciusgyn/classificadespesas/internal/textutil"
)

// ErrMissingColumns indicates the category table lacks the required
// pattern/category columns. This is a configuration error: it is surfaced to
// the caller and no rules are loaded.
var ErrMissingColumns = errors.New("category table missing required columns: pattern, category")

// Load reads a category table from a CSV or spreadsheet file, dispatching on
// the file extension.
func Load(path string) (*Set, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadCSV(path)
	case ".xlsx", ".xls":
		return LoadExcel(path)
	default:
		return nil, fmt.Errorf("unsupported category table format: %s", path)
	}
}

// LoadCSV reads a category table from a CSV file with header columns
// "pattern" and "category". Header matching is case and accent insensitive;
// extra columns are ignored.
func LoadCSV(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read category table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse category table: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrMissingColumns
	}
	if err := checkHeader(records[0]); err != nil {
		return nil, err
	}
	patternCol, categoryCol := headerIndices(records[0])

	var rules []Rule
	for _, row := range records[1:] {
		var r Rule
		if patternCol < len(row) {
			r.Pattern = row[patternCol]
		}
		if categoryCol < len(row) {
			r.Category = row[categoryCol]
		}
		rules = append(rules, r)
	}
	return NewSet(trimRules(rules)), nil
}

// LoadExcel reads a category table from the first sheet of an Excel
// workbook. The first row must carry the pattern/category headers.
func LoadExcel(path string) (*Set, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open category workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrMissingColumns
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read category sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrMissingColumns
	}

	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}
	patternCol, categoryCol := headerIndices(rows[0])

	var rules []Rule
	for _, row := range rows[1:] {
		var r Rule
		if patternCol < len(row) {
			r.Pattern = row[patternCol]
		}
		if categoryCol < len(row) {
			r.Category = row[categoryCol]
		}
		rules = append(rules, r)
	}
	return NewSet(trimRules(rules)), nil
}

// SaveCSV writes the set back out as a CSV category table.
func (s *Set) SaveCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create category table: %w", err)
	}
	defer f.Close()

	rules := s.Rules()
	if err := gocsv.Marshal(&rules, f); err != nil {
		return fmt.Errorf("write category table: %w", err)
	}
	return f.Close()
}

func checkHeader(header []string) error {
	pattern, category := headerIndices(header)
	if pattern < 0 || category < 0 {
		return ErrMissingColumns
	}
	return nil
}

func headerIndices(header []string) (pattern, category int) {
	pattern, category = -1, -1
	for i, h := range header {
		switch textutil.Normalize(h) {
		case "pattern":
			if pattern < 0 {
				pattern = i
			}
		case "category":
			if category < 0 {
				category = i
			}
		}
	}
	return pattern, category
}

func trimRules(rules []Rule) []Rule {
	out := rules[:0]
	for _, r := range rules {
		r.Pattern = strings.TrimSpace(r.Pattern)
		r.Category = strings.TrimSpace(r.Category)
		if r.Pattern == "" || r.Category == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}
