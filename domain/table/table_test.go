package table

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarity/domain/core"
)

func TestNewRejectsDuplicateNames(t *testing.T) {
	_, err := New(
		NewNumeric("a", []float64{1}),
		NewNumeric("a", []float64{2}),
	)
	assert.Error(t, err)
}

func TestNewRejectsUnequalLengths(t *testing.T) {
	_, err := New(
		NewNumeric("a", []float64{1, 2}),
		NewNumeric("b", []float64{1}),
	)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.ErrorIs(t, Validate(nil), core.ErrNoData)

	empty, err := New()
	require.NoError(t, err)
	assert.ErrorIs(t, Validate(empty), core.ErrEmptyDataset)

	zeroRows, err := New(NewNumeric("a", nil))
	require.NoError(t, err)
	assert.ErrorIs(t, Validate(zeroRows), core.ErrEmptyDataset)

	ok, err := New(NewNumeric("a", []float64{1}))
	require.NoError(t, err)
	assert.NoError(t, Validate(ok))
}

func TestColumnPartition(t *testing.T) {
	tbl, err := New(
		NewNumeric("price", []float64{1, 2}),
		NewCategorical("city", []string{"x", "y"}),
		NewNumeric("qty", []float64{3, 4}),
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"price", "qty"}, tbl.NumericColumnNames())
	assert.Equal(t, []string{"city"}, tbl.NonNumericColumnNames())
	assert.Equal(t, []string{"price", "city", "qty"}, tbl.ColumnNames())
}

func TestMissingCounts(t *testing.T) {
	tbl, err := New(
		NewNumeric("a", []float64{1, math.NaN(), 3}),
		NewCategorical("b", []string{"", "x", ""}),
	)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"a": 1, "b": 2}, tbl.MissingCounts())
}

func TestCopyIsIndependent(t *testing.T) {
	tbl, err := New(NewNumeric("a", []float64{1, 2}))
	require.NoError(t, err)

	cp := tbl.Copy()
	col, _ := cp.Column("a")
	col.SetFloat(0, 99)

	orig, _ := tbl.Column("a")
	assert.Equal(t, 1.0, orig.Floats[0])
	assert.False(t, Equal(tbl, cp))
}

func TestFilter(t *testing.T) {
	tbl, err := New(
		NewNumeric("a", []float64{1, 2, 3}),
		NewCategorical("b", []string{"x", "y", "z"}),
	)
	require.NoError(t, err)

	require.NoError(t, tbl.Filter([]bool{true, false, true}))

	assert.Equal(t, 2, tbl.NumRows())
	a, _ := tbl.Column("a")
	assert.Equal(t, []float64{1, 3}, a.Floats)
	b, _ := tbl.Column("b")
	assert.Equal(t, []string{"x", "z"}, b.Strings)
}

func TestFilterRejectsBadMask(t *testing.T) {
	tbl, err := New(NewNumeric("a", []float64{1, 2}))
	require.NoError(t, err)

	assert.Error(t, tbl.Filter([]bool{true}))
}

func TestDeduplicateKeepsFirst(t *testing.T) {
	tbl, err := New(
		NewNumeric("a", []float64{1, 1, 2}),
		NewCategorical("b", []string{"x", "x", "y"}),
	)
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.DuplicateCount())

	tbl.Deduplicate(nil)

	assert.Equal(t, 2, tbl.NumRows())
	a, _ := tbl.Column("a")
	assert.Equal(t, []float64{1, 2}, a.Floats)
}

func TestDeduplicateSubset(t *testing.T) {
	tbl, err := New(
		NewNumeric("a", []float64{1, 1, 2}),
		NewCategorical("b", []string{"x", "different", "y"}),
	)
	require.NoError(t, err)

	tbl.Deduplicate([]string{"a"})

	assert.Equal(t, 2, tbl.NumRows())
	b, _ := tbl.Column("b")
	assert.Equal(t, []string{"x", "y"}, b.Strings)
}

func TestDeduplicateUnknownSubsetIsNoop(t *testing.T) {
	tbl, err := New(NewNumeric("a", []float64{1, 1}))
	require.NoError(t, err)

	tbl.Deduplicate([]string{"nope"})

	assert.Equal(t, 2, tbl.NumRows())
}

func TestDeduplicateTreatsMissingAsEqual(t *testing.T) {
	tbl, err := New(
		NewNumeric("a", []float64{math.NaN(), math.NaN()}),
		NewCategorical("b", []string{"x", "x"}),
	)
	require.NoError(t, err)

	tbl.Deduplicate(nil)

	assert.Equal(t, 1, tbl.NumRows())
}

func TestEqual(t *testing.T) {
	a, err := New(NewNumeric("a", []float64{1, math.NaN()}))
	require.NoError(t, err)
	b := a.Copy()

	assert.True(t, Equal(a, b))

	col, _ := b.Column("a")
	col.SetFloat(1, 5)
	assert.False(t, Equal(a, b))
}
