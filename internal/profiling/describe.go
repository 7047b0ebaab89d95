// Package profiling computes descriptive statistics for the analyzer and
// cleaner components. Aggregates delegate to montanaflynn/stats; correlation
// uses gonum. Quantiles interpolate linearly between order statistics so the
// fixed 0.25/0.5/0.75 contract matches the usual spreadsheet convention.
package profiling

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"clarity/domain/profile"
)

// Describe computes the standard descriptive statistics of a numeric column.
// An empty input yields NaN across the board, mirroring aggregate semantics
// over an all-missing column.
func Describe(data []float64) profile.NumericStats {
	if len(data) == 0 {
		nan := math.NaN()
		return profile.NumericStats{Mean: nan, Std: nan, Min: nan, Max: nan, Median: nan}
	}

	mean, _ := stats.Mean(data)
	std, _ := stats.StandardDeviationSample(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)
	median, _ := stats.Median(data)
	if len(data) < 2 {
		std = math.NaN()
	}

	return profile.NumericStats{Mean: mean, Std: std, Min: min, Max: max, Median: median}
}

// Quantile computes the p-quantile (0 <= p <= 1) with linear interpolation
// between the two nearest order statistics
func Quantile(data []float64, p float64) float64 {
	if len(data) == 0 {
		return math.NaN()
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	pos := p * float64(len(sorted)-1)
	floor := math.Floor(pos)
	ceil := math.Ceil(pos)
	if floor == ceil {
		return sorted[int(pos)]
	}

	lower := sorted[int(floor)]
	upper := sorted[int(ceil)]
	return lower + (pos-floor)*(upper-lower)
}

// Quartiles returns the 0.25 / 0.5 / 0.75 quantiles
func Quartiles(data []float64) profile.Quartiles {
	return profile.Quartiles{
		Q1:     Quantile(data, 0.25),
		Median: Quantile(data, 0.5),
		Q3:     Quantile(data, 0.75),
	}
}

// ValueCounts builds a frequency table over the given values, ordered by
// count descending with ties broken by value ascending so the result is
// deterministic for a fixed input
func ValueCounts(values []string) []profile.ValueCount {
	counts := make(map[string]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	out := make([]profile.ValueCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, profile.ValueCount{Value: v, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// Mode returns the most frequent value, or false when the input is empty.
// Ties resolve to the smallest value, matching the ValueCounts ordering.
func Mode(values []string) (string, bool) {
	counts := ValueCounts(values)
	if len(counts) == 0 {
		return "", false
	}
	return counts[0].Value, true
}

// ModeFloat returns the most frequent numeric value, or false when the input
// is empty. Ties resolve to the smallest value.
func ModeFloat(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	counts := make(map[float64]int, len(values))
	for _, v := range values {
		counts[v]++
	}
	best := values[0]
	bestN := 0
	for v, n := range counts {
		if n > bestN || (n == bestN && v < best) {
			best, bestN = v, n
		}
	}
	return best, true
}

// NumericColumn pairs a column's float values with its validity mask for
// pairwise correlation
type NumericColumn struct {
	Name   string
	Floats []float64
	Valid  []bool
}

// Correlations computes the pairwise Pearson correlation matrix over the
// given numeric columns, using for each pair only the rows present in both
func Correlations(cols []NumericColumn) map[string]map[string]float64 {
	out := make(map[string]map[string]float64, len(cols))
	for _, c := range cols {
		out[c.Name] = make(map[string]float64, len(cols))
	}
	for i, a := range cols {
		out[a.Name][a.Name] = 1
		for j := i + 1; j < len(cols); j++ {
			b := cols[j]
			r := pairCorrelation(a, b)
			out[a.Name][b.Name] = r
			out[b.Name][a.Name] = r
		}
	}
	return out
}

func pairCorrelation(a, b NumericColumn) float64 {
	var x, y []float64
	for i := range a.Valid {
		if a.Valid[i] && b.Valid[i] {
			x = append(x, a.Floats[i])
			y = append(y, b.Floats[i])
		}
	}
	if len(x) < 2 {
		return math.NaN()
	}
	return stat.Correlation(x, y, nil)
}
