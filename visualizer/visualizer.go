// Package visualizer maps chart requests over a loaded dataset onto an
// external rendering library. It validates only that the dataset is loaded
// and that referenced columns exist; all drawing is delegated.
package visualizer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"clarity/adapters/excel"
	"clarity/domain/core"
	"clarity/domain/table"
	"clarity/internal/profiling"
)

// PlotType selects the distribution chart kind
type PlotType string

const (
	PlotAuto   PlotType = "auto"
	PlotHist   PlotType = "hist"
	PlotBox    PlotType = "box"
	PlotViolin PlotType = "violin"
)

// Renderable is a built chart ready to be written out
type Renderable interface {
	Render(w io.Writer) error
}

// DataVisualizer builds charts from a dataset. Each Plot method replaces the
// current chart; Render and SavePlot emit the current chart.
type DataVisualizer struct {
	data   *table.Table
	chart  Renderable
	width  string
	height string
}

// Option configures a DataVisualizer
type Option func(*DataVisualizer)

// WithSize sets the rendered chart dimensions in pixels
func WithSize(width, height int) Option {
	return func(v *DataVisualizer) {
		v.width = fmt.Sprintf("%dpx", width)
		v.height = fmt.Sprintf("%dpx", height)
	}
}

// New creates a visualizer over an already-loaded table
func New(t *table.Table, opts ...Option) *DataVisualizer {
	v := &DataVisualizer{width: "900px", height: "500px"}
	for _, opt := range opts {
		opt(v)
	}
	if t != nil {
		v.data = t.Copy()
	}
	return v
}

// NewFromFile creates a visualizer by loading a data file
func NewFromFile(path string, opts ...Option) (*DataVisualizer, error) {
	v := New(nil, opts...)
	if err := v.Load(path); err != nil {
		return nil, err
	}
	return v, nil
}

// Load replaces the visualizer's dataset with the contents of a file
func (v *DataVisualizer) Load(path string) error {
	t, err := excel.Load(path)
	if err != nil {
		return err
	}
	v.data = t
	return nil
}

// Render writes the current chart
func (v *DataVisualizer) Render(w io.Writer) error {
	if v.chart == nil {
		return core.ErrNoData
	}
	return v.chart.Render(w)
}

// SavePlot persists the current chart to a file
func (v *DataVisualizer) SavePlot(filename string) error {
	if v.chart == nil {
		return core.ErrNoData
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return v.chart.Render(f)
}

// PlotDistribution builds a distribution chart for one column. auto picks a
// histogram for numeric columns and a value-count bar chart otherwise; box
// and violin render the five-number summary (violin is box-backed, the
// rendering library has no violin primitive).
func (v *DataVisualizer) PlotDistribution(column string, plotType PlotType) error {
	if err := table.Validate(v.data); err != nil {
		return err
	}
	col, ok := v.data.Column(column)
	if !ok {
		return core.NewColumnNotFoundError(column)
	}

	switch plotType {
	case PlotAuto:
		if col.IsNumeric() {
			return v.histogram(col)
		}
		return v.valueCountBar(col)
	case PlotHist:
		if !col.IsNumeric() {
			return core.NewNotNumericError(column)
		}
		return v.histogram(col)
	case PlotBox, PlotViolin:
		if !col.IsNumeric() {
			return core.NewNotNumericError(column)
		}
		return v.box(col)
	default:
		return fmt.Errorf("%w: %q", core.ErrUnsupportedPlot, plotType)
	}
}

// PlotCorrelationMatrix builds a heatmap of pairwise correlations over the
// numeric columns (all of them when none are named). Fails when no numeric
// column is available.
func (v *DataVisualizer) PlotCorrelationMatrix(columns ...string) error {
	if err := table.Validate(v.data); err != nil {
		return err
	}

	var names []string
	if len(columns) == 0 {
		names = v.data.NumericColumnNames()
	} else {
		// filter into a fresh slice, the variadic backing array belongs
		// to the caller
		names = make([]string, 0, len(columns))
		for _, name := range columns {
			if col, ok := v.data.Column(name); ok && col.IsNumeric() {
				names = append(names, name)
			}
		}
	}
	if len(names) == 0 {
		return core.NewNotNumericError("correlation matrix")
	}

	numeric := make([]profiling.NumericColumn, 0, len(names))
	for _, name := range names {
		col, _ := v.data.Column(name)
		numeric = append(numeric, profiling.NumericColumn{Name: name, Floats: col.Floats, Valid: col.Valid})
	}
	corr := profiling.Correlations(numeric)

	data := make([]opts.HeatMapData, 0, len(names)*len(names))
	for i, x := range names {
		for j, y := range names {
			data = append(data, opts.HeatMapData{Value: []interface{}{i, j, corr[x][y]}})
		}
	}

	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: v.width, Height: v.height}),
		charts.WithTitleOpts(opts.Title{Title: "Correlation Matrix"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: names}),
		charts.WithVisualMapOpts(opts.VisualMap{Min: -1, Max: 1}),
	)
	hm.SetXAxis(names).AddSeries("correlation", data)
	v.chart = hm
	return nil
}

// PlotScatter builds a scatter plot of two numeric columns, optionally color
// coded by the hue column's values
func (v *DataVisualizer) PlotScatter(x, y, hue string) error {
	if err := table.Validate(v.data); err != nil {
		return err
	}
	xCol, err := v.numericColumn(x)
	if err != nil {
		return err
	}
	yCol, err := v.numericColumn(y)
	if err != nil {
		return err
	}

	var hueCol *table.Column
	if hue != "" {
		col, ok := v.data.Column(hue)
		if !ok {
			return core.NewColumnNotFoundError(hue)
		}
		hueCol = col
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: v.width, Height: v.height}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("%s vs %s", y, x)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: x}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Name: y}),
	)

	if hueCol == nil {
		points := make([]opts.ScatterData, 0, xCol.Len())
		for i := 0; i < xCol.Len(); i++ {
			if xCol.Valid[i] && yCol.Valid[i] {
				points = append(points, opts.ScatterData{Value: []interface{}{xCol.Floats[i], yCol.Floats[i]}})
			}
		}
		sc.AddSeries(y, points)
	} else {
		groups := make(map[string][]opts.ScatterData)
		for i := 0; i < xCol.Len(); i++ {
			if xCol.Valid[i] && yCol.Valid[i] {
				key := hueCol.CellString(i)
				groups[key] = append(groups[key], opts.ScatterData{Value: []interface{}{xCol.Floats[i], yCol.Floats[i]}})
			}
		}
		keys := make([]string, 0, len(groups))
		for key := range groups {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			sc.AddSeries(key, groups[key])
		}
	}
	v.chart = sc
	return nil
}

// PlotTimeSeries builds a line chart of a value column over a date column.
// A categorical date column is parsed; failure to parse is an error.
func (v *DataVisualizer) PlotTimeSeries(dateColumn, valueColumn string) error {
	if err := table.Validate(v.data); err != nil {
		return err
	}
	dates, err := v.temporalValues(dateColumn)
	if err != nil {
		return err
	}
	valCol, err := v.numericColumn(valueColumn)
	if err != nil {
		return err
	}

	labels := make([]string, 0, len(dates))
	points := make([]opts.LineData, 0, len(dates))
	for i, ts := range dates {
		if ts.IsZero() || !valCol.Valid[i] {
			continue
		}
		labels = append(labels, ts.Format("2006-01-02 15:04"))
		points = append(points, opts.LineData{Value: valCol.Floats[i]})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: v.width, Height: v.height}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Time Series of %s", valueColumn)}),
	)
	line.SetXAxis(labels).AddSeries(valueColumn, points)
	v.chart = line
	return nil
}

// PlotMissingValues builds a bar chart of per-column missing cell counts
func (v *DataVisualizer) PlotMissingValues() error {
	if err := table.Validate(v.data); err != nil {
		return err
	}
	names := v.data.ColumnNames()
	missing := v.data.MissingCounts()

	bars := make([]opts.BarData, len(names))
	for i, name := range names {
		bars[i] = opts.BarData{Value: missing[name]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: v.width, Height: v.height}),
		charts.WithTitleOpts(opts.Title{Title: "Missing Values"}),
	)
	bar.SetXAxis(names).AddSeries("missing", bars)
	v.chart = bar
	return nil
}

func (v *DataVisualizer) histogram(col *table.Column) error {
	bins := binValues(col.PresentFloats(), histogramBins)
	labels := make([]string, len(bins))
	bars := make([]opts.BarData, len(bins))
	for i, b := range bins {
		labels[i] = fmt.Sprintf("%.4g-%.4g", b.Lo, b.Hi)
		bars[i] = opts.BarData{Value: b.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: v.width, Height: v.height}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Distribution of %s", col.Name)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Frequency"}),
	)
	bar.SetXAxis(labels).AddSeries(col.Name, bars)
	v.chart = bar
	return nil
}

func (v *DataVisualizer) valueCountBar(col *table.Column) error {
	counts := profiling.ValueCounts(col.PresentStrings())
	labels := make([]string, len(counts))
	bars := make([]opts.BarData, len(counts))
	for i, c := range counts {
		labels[i] = c.Value
		bars[i] = opts.BarData{Value: c.Count}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: v.width, Height: v.height}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Distribution of %s", col.Name)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Count"}),
	)
	bar.SetXAxis(labels).AddSeries(col.Name, bars)
	v.chart = bar
	return nil
}

func (v *DataVisualizer) box(col *table.Column) error {
	values := col.PresentFloats()
	stats := profiling.Describe(values)
	quartiles := profiling.Quartiles(values)
	five := []interface{}{stats.Min, quartiles.Q1, quartiles.Median, quartiles.Q3, stats.Max}

	bp := charts.NewBoxPlot()
	bp.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: v.width, Height: v.height}),
		charts.WithTitleOpts(opts.Title{Title: fmt.Sprintf("Distribution of %s", col.Name)}),
	)
	bp.SetXAxis([]string{col.Name}).AddSeries(col.Name, []opts.BoxPlotData{{Value: five}})
	v.chart = bp
	return nil
}

func (v *DataVisualizer) numericColumn(name string) (*table.Column, error) {
	col, ok := v.data.Column(name)
	if !ok {
		return nil, core.NewColumnNotFoundError(name)
	}
	if !col.IsNumeric() {
		return nil, core.NewNotNumericError(name)
	}
	return col, nil
}

// temporalValues returns per-row timestamps for the named column, parsing
// categorical cells when necessary. Zero times mark missing rows.
func (v *DataVisualizer) temporalValues(name string) ([]time.Time, error) {
	col, ok := v.data.Column(name)
	if !ok {
		return nil, core.NewColumnNotFoundError(name)
	}
	if col.Type == table.TypeTemporal {
		return col.Times, nil
	}
	if col.Type != table.TypeCategorical {
		return nil, fmt.Errorf("%w: %q", core.ErrColumnNotTime, name)
	}

	layouts := []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339, "01/02/2006"}
	out := make([]time.Time, col.Len())
	for i := 0; i < col.Len(); i++ {
		if !col.Valid[i] {
			continue
		}
		parsed := false
		for _, layout := range layouts {
			if ts, err := time.Parse(layout, col.Strings[i]); err == nil {
				out[i] = ts
				parsed = true
				break
			}
		}
		if !parsed {
			return nil, fmt.Errorf("%w: %q: cannot parse %q", core.ErrColumnNotTime, name, col.Strings[i])
		}
	}
	return out, nil
}
