package extract

import (
	"regexp"
	"strings"

	"github.com/advviniciusgyn/classificadespesas/internal/textutil"
)

// ColumnRoleMap records which column of a table holds each transaction
// field. -1 marks an unresolved role; extraction requires all three.
type ColumnRoleMap struct {
	Date        int
	Description int
	Amount      int
}

func emptyRoleMap() ColumnRoleMap {
	return ColumnRoleMap{Date: -1, Description: -1, Amount: -1}
}

// Complete reports whether every role has been resolved.
func (m ColumnRoleMap) Complete() bool {
	return m.Date >= 0 && m.Description >= 0 && m.Amount >= 0
}

func (m ColumnRoleMap) assigned(idx int) bool {
	return m.Date == idx || m.Description == idx || m.Amount == idx
}

// Header keyword sets for role detection, matched against normalized header
// cells. Portuguese first: the extractor targets Brazilian statements.
var (
	dateKeywords   = []string{"data", "dt", "date", "dia"}
	descKeywords   = []string{"descricao", "historico", "lancamento", "description", "transacao"}
	amountKeywords = []string{"valor", "montante", "amount", "r$", "debito", "credito"}
)

// Recognized cell shapes, shared by content-based inference and row
// validation.
var (
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{2}/\d{2}/\d{4}`),
		regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`),
		regexp.MustCompile(`\d{2}-\d{2}-\d{4}`),
		regexp.MustCompile(`\d{2}/\d{2}/\d{2}`),
	}
	amountPatterns = []*regexp.Regexp{
		regexp.MustCompile(`-?\d+[.,]\d{2}`),
		regexp.MustCompile(`-?\d+\.\d{3}[.,]\d{2}`),
	}
)

func looksLikeDate(s string) bool {
	for _, re := range datePatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

func looksLikeAmount(s string) bool {
	for _, re := range amountPatterns {
		if re.MatchString(s) {
			return true
		}
	}
	return false
}

// inferColumnsByHeader resolves roles from the table's first row. The first
// column matching a role's keyword set wins that role; a column takes at
// most one role.
func inferColumnsByHeader(header []string) ColumnRoleMap {
	roles := emptyRoleMap()
	for idx, raw := range header {
		h := textutil.Normalize(raw)
		if h == "" {
			continue
		}
		switch {
		case roles.Date < 0 && containsAny(h, dateKeywords):
			roles.Date = idx
		case roles.Description < 0 && containsAny(h, descKeywords):
			roles.Description = idx
		case roles.Amount < 0 && containsAny(h, amountKeywords):
			roles.Amount = idx
		}
	}
	return roles
}

// contentSampleRows bounds how many body rows content-based inference reads.
const contentSampleRows = 5

// inferColumnsByContent resolves roles from cell shapes when the header gave
// nothing usable. Per column it counts date-like and amount-like cells over
// a bounded sample; the highest count wins, ties going to the lowest index.
// The description is taken positionally between date and amount when
// possible, else as the unassigned column with the most text.
func inferColumnsByContent(table Table, roles ColumnRoleMap) ColumnRoleMap {
	if len(table) < 2 {
		return roles
	}
	numCols := len(table[0])
	sample := table[1:]
	if len(sample) > contentSampleRows {
		sample = sample[:contentSampleRows]
	}

	dateCounts := make([]int, numCols)
	amountCounts := make([]int, numCols)
	for _, row := range sample {
		if len(row) != numCols {
			continue
		}
		for idx, c := range row {
			c = strings.TrimSpace(c)
			if c == "" {
				continue
			}
			if looksLikeDate(c) {
				dateCounts[idx]++
			}
			if looksLikeAmount(c) {
				amountCounts[idx]++
			}
		}
	}

	if roles.Date < 0 {
		roles.Date = maxCountIndex(dateCounts)
	}
	if roles.Amount < 0 {
		// The date column itself matches the amount regex in some layouts
		// (12/03/2024 contains digit runs); never reuse it.
		if roles.Date >= 0 {
			amountCounts[roles.Date] = 0
		}
		roles.Amount = maxCountIndex(amountCounts)
	}

	if roles.Description < 0 && roles.Date >= 0 && roles.Amount >= 0 {
		lo, hi := roles.Date, roles.Amount
		if lo > hi {
			lo, hi = hi, lo
		}
		if lo+1 < hi {
			roles.Description = lo + 1
		}
	}

	if roles.Description < 0 {
		roles.Description = longestColumn(sample, numCols, roles)
	}
	return roles
}

// maxCountIndex returns the index with the highest positive count, scanning
// left to right so ties resolve to the first index. -1 when all counts are
// zero.
func maxCountIndex(counts []int) int {
	best, bestIdx := 0, -1
	for i, c := range counts {
		if c > best {
			best, bestIdx = c, i
		}
	}
	return bestIdx
}

// longestColumn picks the unassigned column with the greatest aggregate text
// length. -1 when every column is assigned or empty.
func longestColumn(sample Table, numCols int, roles ColumnRoleMap) int {
	lengths := make([]int, numCols)
	for _, row := range sample {
		for idx, c := range row {
			if idx < numCols {
				lengths[idx] += len(strings.TrimSpace(c))
			}
		}
	}
	for idx := range lengths {
		if roles.assigned(idx) {
			lengths[idx] = 0
		}
	}
	return maxCountIndex(lengths)
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
