package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupLines(t *testing.T) {
	words := []word{
		{x: 300, y: 700, s: "Valor"},
		{x: 50, y: 700.8, s: "Data"},
		{x: 150, y: 699.5, s: "Histórico"},
		{x: 50, y: 680, s: "12/03/2024"},
		{x: 150, y: 680, s: "MERCADO"},
		{x: 300, y: 680, s: "10,00"},
	}

	lines := groupLines(words)

	require.Len(t, lines, 2)
	require.Len(t, lines[0].cells, 3)
	assert.Equal(t, "Data", lines[0].cells[0].text)
	assert.Equal(t, "Histórico", lines[0].cells[1].text)
	assert.Equal(t, "Valor", lines[0].cells[2].text)
	assert.Equal(t, "12/03/2024", lines[1].cells[0].text)
}

func TestGroupLines_JoinsAdjacentWords(t *testing.T) {
	// "SUPERMERCADO" ends near x=110; "BRASIL" at 113 continues the run while
	// "230,10" at 300 opens a new cell.
	words := []word{
		{x: 50, y: 500, s: "SUPERMERCADO"},
		{x: 113, y: 500, s: "BRASIL"},
		{x: 300, y: 500, s: "230,10"},
	}

	lines := groupLines(words)

	require.Len(t, lines, 1)
	require.Len(t, lines[0].cells, 2)
	assert.Equal(t, "SUPERMERCADO BRASIL", lines[0].cells[0].text)
	assert.Equal(t, "230,10", lines[0].cells[1].text)
}

func TestClusterColumns(t *testing.T) {
	lines := []line{
		{cells: []cell{{x: 50}, {x: 150}, {x: 300}}},
		{cells: []cell{{x: 52}, {x: 148}, {x: 301}}},
		{cells: []cell{{x: 49}, {x: 150}, {x: 299}}},
	}

	cols := clusterColumns(lines)

	require.Len(t, cols, 3)
	assert.InDelta(t, 49, cols[0], columnXMerge)
	assert.InDelta(t, 148, cols[1], columnXMerge)
	assert.InDelta(t, 299, cols[2], columnXMerge)
}

func TestNearestColumn(t *testing.T) {
	cols := []float64{50, 150, 300}

	assert.Equal(t, 0, nearestColumn(cols, 53))
	assert.Equal(t, 1, nearestColumn(cols, 160))
	assert.Equal(t, 2, nearestColumn(cols, 290))
	assert.Equal(t, 0, nearestColumn(cols, 0))
}
