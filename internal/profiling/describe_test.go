package profiling

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	s := Describe([]float64{10, 20, 40})

	assert.InDelta(t, 23.3333, s.Mean, 0.001)
	assert.InDelta(t, 15.2753, s.Std, 0.001)
	assert.Equal(t, 10.0, s.Min)
	assert.Equal(t, 40.0, s.Max)
	assert.Equal(t, 20.0, s.Median)
}

func TestDescribeEmpty(t *testing.T) {
	s := Describe(nil)

	assert.True(t, math.IsNaN(s.Mean))
	assert.True(t, math.IsNaN(s.Std))
	assert.True(t, math.IsNaN(s.Min))
	assert.True(t, math.IsNaN(s.Max))
	assert.True(t, math.IsNaN(s.Median))
}

func TestDescribeSingleValue(t *testing.T) {
	s := Describe([]float64{7})

	assert.Equal(t, 7.0, s.Mean)
	assert.True(t, math.IsNaN(s.Std), "sample std undefined for one value")
}

func TestQuantileInterpolates(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 100}

	assert.InDelta(t, 2.25, Quantile(data, 0.25), 1e-9)
	assert.InDelta(t, 3.5, Quantile(data, 0.5), 1e-9)
	assert.InDelta(t, 4.75, Quantile(data, 0.75), 1e-9)
}

func TestQuantileUnsortedInput(t *testing.T) {
	assert.InDelta(t, 2.25, Quantile([]float64{100, 3, 1, 5, 2, 4}, 0.25), 1e-9)
}

func TestQuantileBounds(t *testing.T) {
	data := []float64{5, 1, 3}

	assert.Equal(t, 1.0, Quantile(data, 0))
	assert.Equal(t, 5.0, Quantile(data, 1))
	assert.True(t, math.IsNaN(Quantile(nil, 0.5)))
}

func TestValueCountsOrdering(t *testing.T) {
	counts := ValueCounts([]string{"b", "a", "b", "c", "a", "b"})

	assert.Equal(t, "b", counts[0].Value)
	assert.Equal(t, 3, counts[0].Count)
	// tie between a and c resolves by value
	assert.Equal(t, "a", counts[1].Value)
	assert.Equal(t, 2, counts[1].Count)
	assert.Equal(t, "c", counts[2].Value)
	assert.Equal(t, 1, counts[2].Count)
}

func TestMode(t *testing.T) {
	mode, ok := Mode([]string{"x", "y", "y"})
	assert.True(t, ok)
	assert.Equal(t, "y", mode)

	_, ok = Mode(nil)
	assert.False(t, ok)
}

func TestModeFloatTieBreaksLow(t *testing.T) {
	mode, ok := ModeFloat([]float64{3, 1, 3, 1})
	assert.True(t, ok)
	assert.Equal(t, 1.0, mode)
}

func TestCorrelations(t *testing.T) {
	cols := []NumericColumn{
		{Name: "x", Floats: []float64{1, 2, 3, 4}, Valid: []bool{true, true, true, true}},
		{Name: "y", Floats: []float64{2, 4, 6, 8}, Valid: []bool{true, true, true, true}},
		{Name: "z", Floats: []float64{4, 3, 2, 1}, Valid: []bool{true, true, true, true}},
	}

	corr := Correlations(cols)

	assert.Equal(t, 1.0, corr["x"]["x"])
	assert.InDelta(t, 1.0, corr["x"]["y"], 1e-9)
	assert.InDelta(t, -1.0, corr["x"]["z"], 1e-9)
	assert.Equal(t, corr["x"]["y"], corr["y"]["x"])
}

func TestCorrelationsSkipMissingRows(t *testing.T) {
	cols := []NumericColumn{
		{Name: "x", Floats: []float64{1, 2, 3, 999}, Valid: []bool{true, true, true, false}},
		{Name: "y", Floats: []float64{2, 4, 6, 5}, Valid: []bool{true, true, true, true}},
	}

	corr := Correlations(cols)

	// the masked row would break the perfect correlation if it leaked in
	assert.InDelta(t, 1.0, corr["x"]["y"], 1e-9)
}

func TestCorrelationsTooFewRows(t *testing.T) {
	cols := []NumericColumn{
		{Name: "x", Floats: []float64{1, 2}, Valid: []bool{true, false}},
		{Name: "y", Floats: []float64{2, 4}, Valid: []bool{true, true}},
	}

	corr := Correlations(cols)

	assert.True(t, math.IsNaN(corr["x"]["y"]))
}
