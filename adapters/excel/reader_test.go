package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarity/domain/core"
	"clarity/domain/table"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadCSVInfersTypes(t *testing.T) {
	path := writeTempCSV(t, `name,age,joined,city
alice,30,2021-01-02,NYC
bob,,2021-02-03,LA
carol,41,2021-03-04,
`)

	tbl, err := Load(path)
	require.NoError(t, err)

	rows, cols := tbl.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 4, cols)

	name, _ := tbl.Column("name")
	assert.Equal(t, table.TypeCategorical, name.Type)

	age, _ := tbl.Column("age")
	assert.Equal(t, table.TypeNumeric, age.Type)
	assert.Equal(t, 1, age.MissingCount())
	assert.Equal(t, 30.0, age.Floats[0])

	joined, _ := tbl.Column("joined")
	assert.Equal(t, table.TypeTemporal, joined.Type)
	assert.Equal(t, 2021, joined.Times[0].Year())

	city, _ := tbl.Column("city")
	assert.Equal(t, 1, city.MissingCount())
}

func TestLoadCSVMixedColumnIsCategorical(t *testing.T) {
	path := writeTempCSV(t, `code
12
abc
`)

	tbl, err := Load(path)
	require.NoError(t, err)

	code, _ := tbl.Column("code")
	assert.Equal(t, table.TypeCategorical, code.Type)
}

func TestLoadCSVRaggedRows(t *testing.T) {
	path := writeTempCSV(t, `a,b
1,2
3
`)

	tbl, err := Load(path)
	require.NoError(t, err)

	b, _ := tbl.Column("b")
	assert.Equal(t, 1, b.MissingCount())
}

func TestLoadCSVHeaderCleanup(t *testing.T) {
	path := writeTempCSV(t, `a,,a
1,2,3
`)

	tbl, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "column_2", "a_1"}, tbl.ColumnNames())
}

func TestLoadHeaderOnlyFile(t *testing.T) {
	path := writeTempCSV(t, "a,b\n")

	_, err := Load(path)
	assert.ErrorIs(t, err, core.ErrEmptyDataset)
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load("data.json")
	assert.ErrorIs(t, err, core.ErrUnsupportedFormat)
	assert.True(t, core.IsUnsupportedOptionError(err))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestSaveAndReloadCSV(t *testing.T) {
	original, err := table.New(
		table.NewNumeric("x", []float64{1.5, 2.5}),
		table.NewCategorical("label", []string{"a", "b"}),
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, Save(original, path))

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, table.Equal(original, reloaded))
}

func TestSaveAndReloadXLSX(t *testing.T) {
	original, err := table.New(
		table.NewNumeric("x", []float64{1, 2, 3}),
		table.NewCategorical("label", []string{"a", "", "c"}),
	)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.xlsx")
	require.NoError(t, Save(original, path))

	reloaded, err := Load(path)
	require.NoError(t, err)

	rows, cols := reloaded.Shape()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 2, cols)
	x, _ := reloaded.Column("x")
	assert.Equal(t, table.TypeNumeric, x.Type)
	label, _ := reloaded.Column("label")
	assert.Equal(t, 1, label.MissingCount())
}

func TestSaveUnsupportedExtension(t *testing.T) {
	tbl, err := table.New(table.NewNumeric("x", []float64{1}))
	require.NoError(t, err)

	assert.ErrorIs(t, Save(tbl, "out.parquet"), core.ErrUnsupportedFormat)
}
