package category

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSV(t *testing.T) {
	path := writeFile(t, "categorias.csv",
		"pattern,category\nuber,Transporte\n*mercado*,Alimentação\n")

	s, err := LoadCSV(path)

	require.NoError(t, err)
	assert.Equal(t, []Rule{
		{Pattern: "uber", Category: "Transporte"},
		{Pattern: "*mercado*", Category: "Alimentação"},
	}, s.Rules())
}

func TestLoadCSV_TrimsAndDropsIncompleteRows(t *testing.T) {
	path := writeFile(t, "categorias.csv",
		"pattern,category\n  uber  , Transporte \n,Alimentação\nfarmacia,\n")

	s, err := LoadCSV(path)

	require.NoError(t, err)
	assert.Equal(t, []Rule{{Pattern: "uber", Category: "Transporte"}}, s.Rules())
}

func TestLoadCSV_MissingColumns(t *testing.T) {
	path := writeFile(t, "categorias.csv", "name,value\nuber,Transporte\n")

	_, err := LoadCSV(path)

	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestLoadCSV_HeaderCaseInsensitive(t *testing.T) {
	path := writeFile(t, "categorias.csv", "Pattern,CATEGORY\nuber,Transporte\n")

	s, err := LoadCSV(path)

	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	_, err := Load("categorias.txt")

	assert.Error(t, err)
}

func TestLoadExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categorias.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"pattern", "category"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]string{"uber", "Transporte"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]string{"*mercado*", "Alimentação"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	s, err := LoadExcel(path)

	require.NoError(t, err)
	assert.Equal(t, []Rule{
		{Pattern: "uber", Category: "Transporte"},
		{Pattern: "*mercado*", Category: "Alimentação"},
	}, s.Rules())
}

func TestLoadExcel_MissingColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categorias.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"foo", "bar"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := LoadExcel(path)

	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestSaveCSV_RoundTrip(t *testing.T) {
	s := NewSet([]Rule{
		{Pattern: "uber", Category: "Transporte"},
		{Pattern: "*mercado*", Category: "Alimentação"},
	})

	path := filepath.Join(t.TempDir(), "categorias.csv")
	require.NoError(t, s.SaveCSV(path))

	loaded, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, s.Rules(), loaded.Rules())
}
