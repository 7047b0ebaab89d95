package visualizer

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clarity/domain/core"
	"clarity/domain/table"
)

func chartTable(t *testing.T) *table.Table {
	t.Helper()
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
	tbl, err := table.New(
		table.NewNumeric("price", []float64{10, 12, 11, 14, 13, 40}),
		table.NewNumeric("qty", []float64{1, 2, 2, 3, 3, 9}),
		table.NewCategorical("city", []string{"NYC", "LA", "NYC", "LA", "NYC", "NYC"}),
		table.NewTemporal("day", []time.Time{day(1), day(2), day(3), day(4), day(5), day(6)}),
	)
	require.NoError(t, err)
	return tbl
}

func renderHTML(t *testing.T, v *DataVisualizer) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, v.Render(&buf))
	html := buf.String()
	assert.Contains(t, html, "echarts")
	return html
}

func TestPlotDistributionHistogram(t *testing.T) {
	v := New(chartTable(t))

	require.NoError(t, v.PlotDistribution("price", PlotHist))
	renderHTML(t, v)
}

func TestPlotDistributionAutoPicksByType(t *testing.T) {
	v := New(chartTable(t))

	require.NoError(t, v.PlotDistribution("price", PlotAuto))
	renderHTML(t, v)

	require.NoError(t, v.PlotDistribution("city", PlotAuto))
	html := renderHTML(t, v)
	assert.Contains(t, html, "NYC")
}

func TestPlotDistributionBoxAndViolin(t *testing.T) {
	v := New(chartTable(t))

	require.NoError(t, v.PlotDistribution("price", PlotBox))
	renderHTML(t, v)

	require.NoError(t, v.PlotDistribution("price", PlotViolin))
	renderHTML(t, v)
}

func TestPlotDistributionValidation(t *testing.T) {
	v := New(chartTable(t))

	assert.ErrorIs(t, v.PlotDistribution("nope", PlotAuto), core.ErrColumnNotFound)
	assert.ErrorIs(t, v.PlotDistribution("city", PlotHist), core.ErrColumnNotNumeric)
	assert.ErrorIs(t, v.PlotDistribution("price", PlotType("pie")), core.ErrUnsupportedPlot)
}

func TestPlotCorrelationMatrix(t *testing.T) {
	v := New(chartTable(t))

	require.NoError(t, v.PlotCorrelationMatrix())
	html := renderHTML(t, v)
	assert.Contains(t, html, "price")
	assert.Contains(t, html, "qty")
}

func TestPlotCorrelationMatrixLeavesArgumentsAlone(t *testing.T) {
	v := New(chartTable(t))
	columns := []string{"city", "price", "qty"}

	require.NoError(t, v.PlotCorrelationMatrix(columns...))

	assert.Equal(t, []string{"city", "price", "qty"}, columns)
}

func TestPlotCorrelationMatrixNeedsNumericColumns(t *testing.T) {
	tbl, err := table.New(table.NewCategorical("city", []string{"NYC"}))
	require.NoError(t, err)
	v := New(tbl)

	assert.ErrorIs(t, v.PlotCorrelationMatrix(), core.ErrColumnNotNumeric)
}

func TestPlotScatter(t *testing.T) {
	v := New(chartTable(t))

	require.NoError(t, v.PlotScatter("qty", "price", ""))
	renderHTML(t, v)
}

func TestPlotScatterWithHue(t *testing.T) {
	v := New(chartTable(t))

	require.NoError(t, v.PlotScatter("qty", "price", "city"))
	html := renderHTML(t, v)
	assert.Contains(t, html, "NYC")
	assert.Contains(t, html, "LA")
}

func TestPlotScatterValidation(t *testing.T) {
	v := New(chartTable(t))

	assert.ErrorIs(t, v.PlotScatter("qty", "price", "nope"), core.ErrColumnNotFound)
	assert.ErrorIs(t, v.PlotScatter("city", "price", ""), core.ErrColumnNotNumeric)
}

func TestPlotTimeSeries(t *testing.T) {
	v := New(chartTable(t))

	require.NoError(t, v.PlotTimeSeries("day", "price"))
	renderHTML(t, v)
}

func TestPlotTimeSeriesParsesCategoricalDates(t *testing.T) {
	tbl, err := table.New(
		table.NewCategorical("when", []string{"2024-03-01T00:00:00Z", "2024-03-02T00:00:00Z"}),
		table.NewNumeric("v", []float64{1, 2}),
	)
	require.NoError(t, err)
	v := New(tbl)

	require.NoError(t, v.PlotTimeSeries("when", "v"))
}

func TestPlotTimeSeriesRejectsUnparseableDates(t *testing.T) {
	tbl, err := table.New(
		table.NewCategorical("when", []string{"yesterday", "today"}),
		table.NewNumeric("v", []float64{1, 2}),
	)
	require.NoError(t, err)
	v := New(tbl)

	assert.ErrorIs(t, v.PlotTimeSeries("when", "v"), core.ErrColumnNotTime)
}

func TestPlotMissingValues(t *testing.T) {
	tbl, err := table.New(
		table.NewNumeric("a", []float64{1, math.NaN()}),
		table.NewCategorical("b", []string{"x", ""}),
	)
	require.NoError(t, err)
	v := New(tbl)

	require.NoError(t, v.PlotMissingValues())
	renderHTML(t, v)
}

func TestSavePlot(t *testing.T) {
	v := New(chartTable(t))
	require.NoError(t, v.PlotDistribution("price", PlotHist))

	path := filepath.Join(t.TempDir(), "chart.html")
	require.NoError(t, v.SavePlot(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}

func TestRenderWithoutPlot(t *testing.T) {
	v := New(chartTable(t))

	var buf bytes.Buffer
	assert.ErrorIs(t, v.Render(&buf), core.ErrNoData)
	assert.Error(t, v.SavePlot(filepath.Join(t.TempDir(), "x.html")))
}

func TestHistogramPNG(t *testing.T) {
	v := New(chartTable(t))

	png, err := v.HistogramPNG("price")
	require.NoError(t, err)
	require.Greater(t, len(png), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestTimeSeriesPNG(t *testing.T) {
	v := New(chartTable(t))

	png, err := v.TimeSeriesPNG("day", "price")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestBinValues(t *testing.T) {
	bins := binValues([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 5)

	require.Len(t, bins, 5)
	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 10, total)
	assert.Equal(t, 0.0, bins[0].Lo)
	assert.Equal(t, 9.0, bins[4].Hi)
	// the maximum lands in the last bin, not one past it
	assert.Equal(t, 2, bins[4].Count)
}

func TestBinValuesConstantColumn(t *testing.T) {
	bins := binValues([]float64{7, 7, 7}, 10)

	require.Len(t, bins, 1)
	assert.Equal(t, 3, bins[0].Count)
}
