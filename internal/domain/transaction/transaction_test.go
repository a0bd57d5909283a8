package transaction

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tx := New("2024-03-12", "supermercado brasil", decimal.NewFromFloat(-230.10), "extrato.pdf")

	assert.NotEqual(t, [16]byte{}, [16]byte(tx.ID))
	assert.Equal(t, "2024-03-12", tx.Date)
	assert.False(t, tx.Categorized())
	assert.Equal(t, MethodNone, tx.CategorizedBy)
	assert.Nil(t, tx.MatchScore)
}

func TestUncategorized(t *testing.T) {
	txs := []Transaction{
		{Description: "a", Category: "Transporte"},
		{Description: "b"},
		{Description: "c", Category: "Alimentação"},
		{Description: "d"},
	}

	rest := Uncategorized(txs)

	require.Len(t, rest, 2)
	assert.Equal(t, "b", rest[0].Description)
	assert.Equal(t, "d", rest[1].Description)
	assert.Nil(t, Uncategorized(nil))
}

func TestWriteCSV(t *testing.T) {
	score := 87
	txs := []Transaction{
		New("2024-03-12", "uber trip", decimal.NewFromFloat(-24.90), "extrato.pdf"),
		New("2024-03-13", "supermercado brasil", decimal.NewFromFloat(-230.10), "extrato.pdf"),
	}
	txs[0].Category = "Transporte"
	txs[0].CategorizedBy = MethodRule
	txs[1].Category = "Alimentação"
	txs[1].CategorizedBy = MethodFuzzy
	txs[1].MatchScore = &score

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, txs))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,description,amount,source,category,categorized_by,match_score", lines[0])
	assert.Equal(t, "2024-03-12,uber trip,-24.9,extrato.pdf,Transporte,rule_based,", lines[1])
	assert.Equal(t, "2024-03-13,supermercado brasil,-230.1,extrato.pdf,Alimentação,fuzzy,87", lines[2])
}

func TestCSV_RoundTrip(t *testing.T) {
	score := 92
	txs := []Transaction{
		New("2024-03-12", "padaria do bairro", decimal.NewFromFloat(-15.50), "extrato.pdf"),
	}
	txs[0].Category = "Alimentação"
	txs[0].CategorizedBy = MethodFuzzy
	txs[0].MatchScore = &score

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, txs))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Equal(t, txs[0].Date, got[0].Date)
	assert.Equal(t, txs[0].Description, got[0].Description)
	assert.True(t, txs[0].Amount.Equal(got[0].Amount))
	assert.Equal(t, txs[0].Category, got[0].Category)
	assert.Equal(t, MethodFuzzy, got[0].CategorizedBy)
	require.NotNil(t, got[0].MatchScore)
	assert.Equal(t, 92, *got[0].MatchScore)
}
