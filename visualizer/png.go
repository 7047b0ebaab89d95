package visualizer

import (
	"bytes"
	"fmt"
	"math"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"

	"clarity/domain/core"
	"clarity/domain/table"
)

const histogramBins = 30

type bin struct {
	Lo    float64
	Hi    float64
	Count int
}

// binValues buckets values into n equal-width bins spanning [min, max].
// A constant column collapses to a single bin holding every value.
func binValues(values []float64, n int) []bin {
	if len(values) == 0 || n < 1 {
		return nil
	}
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if lo == hi {
		return []bin{{Lo: lo, Hi: hi, Count: len(values)}}
	}

	width := (hi - lo) / float64(n)
	bins := make([]bin, n)
	for i := range bins {
		bins[i].Lo = lo + float64(i)*width
		bins[i].Hi = lo + float64(i+1)*width
	}
	bins[n-1].Hi = hi
	for _, v := range values {
		idx := int(math.Floor((v - lo) / width))
		if idx >= n {
			idx = n - 1
		}
		bins[idx].Count++
	}
	return bins
}

// HistogramPNG renders a histogram of a numeric column as a PNG image
func (v *DataVisualizer) HistogramPNG(column string) ([]byte, error) {
	if err := table.Validate(v.data); err != nil {
		return nil, err
	}
	col, err := v.numericColumn(column)
	if err != nil {
		return nil, err
	}
	values := col.PresentFloats()
	if len(values) == 0 {
		return nil, core.ErrEmptyDataset
	}

	bins := binValues(values, histogramBins)
	bars := make([]chart.Value, len(bins))
	for i, b := range bins {
		bars[i] = chart.Value{
			Value: float64(b.Count),
			Label: fmt.Sprintf("%.3g", b.Lo),
		}
	}

	graph := chart.BarChart{
		Title:    fmt.Sprintf("Distribution of %s", column),
		Width:    900,
		Height:   500,
		BarWidth: 20,
		Bars:     bars,
	}

	buf := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("render histogram: %w", err)
	}
	return buf.Bytes(), nil
}

// TimeSeriesPNG renders a value column over a date column as a PNG image
func (v *DataVisualizer) TimeSeriesPNG(dateColumn, valueColumn string) ([]byte, error) {
	if err := table.Validate(v.data); err != nil {
		return nil, err
	}
	dates, err := v.temporalValues(dateColumn)
	if err != nil {
		return nil, err
	}
	valCol, err := v.numericColumn(valueColumn)
	if err != nil {
		return nil, err
	}

	var xs []time.Time
	var ys []float64
	for i, ts := range dates {
		if ts.IsZero() || !valCol.Valid[i] {
			continue
		}
		xs = append(xs, ts)
		ys = append(ys, valCol.Floats[i])
	}
	if len(xs) < 2 {
		return nil, core.ErrEmptyDataset
	}

	graph := chart.Chart{
		Title:  fmt.Sprintf("Time Series of %s", valueColumn),
		Width:  900,
		Height: 500,
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeDateValueFormatter,
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    valueColumn,
				XValues: xs,
				YValues: ys,
			},
		},
	}

	buf := bytes.NewBuffer(nil)
	if err := graph.Render(chart.PNG, buf); err != nil {
		return nil, fmt.Errorf("render time series: %w", err)
	}
	return buf.Bytes(), nil
}
