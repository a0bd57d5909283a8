package extract

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Table is a grid of cells as recovered from one region of a PDF page.
// Cells are plain strings; an empty string marks a missing cell.
type Table [][]string

// TableSource abstracts the PDF page/table extraction capability. The
// returned slice holds, per page, the tables found on that page.
type TableSource interface {
	Tables(pdfPath string) ([][]Table, error)
}

// tolerances for reconstructing a grid from positioned words. Values are in
// PDF points and were tuned on bank statement layouts.
const (
	lineYTolerance = 2.5  // words within this vertical distance share a line
	cellGapMin     = 12.0 // horizontal gap that separates two cells
	columnXMerge   = 10.0 // cell start positions closer than this share a column
)

// PDFTableSource recovers table grids from PDF pages using positioned text.
// The pdf library exposes words with X/Y coordinates; words are grouped into
// lines by Y, lines split into cells on large X gaps, and cell start
// positions clustered into a shared column grid per page.
type PDFTableSource struct{}

// NewPDFTableSource returns the production table source.
func NewPDFTableSource() *PDFTableSource {
	return &PDFTableSource{}
}

// Tables extracts the table candidates of every page. The pdf library is
// known to panic on malformed files, so panics are converted to errors.
func (s *PDFTableSource) Tables(pdfPath string) (pages [][]Table, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf parse panic: %v", r)
		}
	}()

	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	numPages := r.NumPage()
	pages = make([][]Table, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, nil)
			continue
		}
		pages = append(pages, pageTables(page.Content()))
	}
	return pages, nil
}

type word struct {
	x, y float64
	s    string
}

type line struct {
	y     float64
	cells []cell
}

type cell struct {
	x    float64
	text string
}

// pageTables reconstructs at most one table per page: the set of lines that
// split into two or more cells, aligned on a shared column grid. Fewer than
// three such lines is not considered a table.
func pageTables(content pdf.Content) []Table {
	words := make([]word, 0, len(content.Text))
	for _, t := range content.Text {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		words = append(words, word{x: t.X, y: t.Y, s: t.S})
	}
	if len(words) == 0 {
		return nil
	}

	lines := groupLines(words)

	var tabular []line
	for _, ln := range lines {
		if len(ln.cells) >= 2 {
			tabular = append(tabular, ln)
		}
	}
	if len(tabular) < 3 {
		return nil
	}

	columns := clusterColumns(tabular)
	if len(columns) < 2 {
		return nil
	}

	table := make(Table, 0, len(tabular))
	for _, ln := range tabular {
		row := make([]string, len(columns))
		for _, c := range ln.cells {
			idx := nearestColumn(columns, c.x)
			if row[idx] != "" {
				row[idx] += " "
			}
			row[idx] += c.text
		}
		table = append(table, row)
	}
	return []Table{table}
}

// groupLines buckets words into lines by Y (PDF Y grows bottom-up, so lines
// are emitted top of page first) and splits each line into cells on X gaps.
// Baselines jitter by a point or two across fonts, so words are bucketed
// before cell splitting and each bucket re-sorted by X.
func groupLines(words []word) []line {
	sort.Slice(words, func(i, j int) bool {
		return words[i].y > words[j].y
	})

	var buckets [][]word
	for _, w := range words {
		if n := len(buckets); n > 0 && math.Abs(buckets[n-1][0].y-w.y) <= lineYTolerance {
			buckets[n-1] = append(buckets[n-1], w)
			continue
		}
		buckets = append(buckets, []word{w})
	}

	lines := make([]line, 0, len(buckets))
	for _, bucket := range buckets {
		sort.Slice(bucket, func(i, j int) bool { return bucket[i].x < bucket[j].x })
		ln := line{y: bucket[0].y, cells: []cell{{x: bucket[0].x, text: bucket[0].s}}}
		for _, w := range bucket[1:] {
			ln.cells = appendWord(ln.cells, w)
		}
		lines = append(lines, ln)
	}
	return lines
}

// appendWord merges a word into the last cell of the line when it is close
// enough to be part of the same text run, otherwise starts a new cell.
func appendWord(cells []cell, w word) []cell {
	last := &cells[len(cells)-1]
	endX := last.x + approxWidth(last.text)
	if w.x-endX > cellGapMin {
		return append(cells, cell{x: w.x, text: w.s})
	}
	if w.x-endX > 1.0 {
		last.text += " "
	}
	last.text += w.s
	return cells
}

// approxWidth estimates rendered width; the pdf library reports word start
// positions only, so an average glyph width of 5pt is assumed.
func approxWidth(s string) float64 {
	return float64(len(s)) * 5.0
}

// clusterColumns derives the shared column grid from the start X of every
// cell across the table lines.
func clusterColumns(lines []line) []float64 {
	var starts []float64
	for _, ln := range lines {
		for _, c := range ln.cells {
			starts = append(starts, c.x)
		}
	}
	sort.Float64s(starts)

	var cols []float64
	for _, x := range starts {
		if n := len(cols); n > 0 && x-cols[n-1] <= columnXMerge {
			continue
		}
		cols = append(cols, x)
	}
	return cols
}

func nearestColumn(cols []float64, x float64) int {
	best, bestDist := 0, math.MaxFloat64
	for i, c := range cols {
		if d := math.Abs(c - x); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
