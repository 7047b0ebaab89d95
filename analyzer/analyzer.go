// Package analyzer produces summary statistics over a loaded dataset. The
// analyzer never mutates the data it reads.
package analyzer

import (
	"clarity/adapters/excel"
	"clarity/domain/core"
	"clarity/domain/profile"
	"clarity/domain/table"
	"clarity/internal/profiling"
)

// DataAnalyzer computes dataset- and column-level descriptive statistics
type DataAnalyzer struct {
	data *table.Table
}

// New creates an analyzer over an already-loaded table. The table is copied,
// so later mutation by the caller does not affect analysis results.
func New(t *table.Table) *DataAnalyzer {
	a := &DataAnalyzer{}
	if t != nil {
		a.data = t.Copy()
	}
	return a
}

// NewFromFile creates an analyzer by loading a data file
func NewFromFile(path string) (*DataAnalyzer, error) {
	a := &DataAnalyzer{}
	if err := a.Load(path); err != nil {
		return nil, err
	}
	return a, nil
}

// Load replaces the analyzer's dataset with the contents of a file
func (a *DataAnalyzer) Load(path string) error {
	t, err := excel.Load(path)
	if err != nil {
		return err
	}
	a.data = t
	return nil
}

// Data returns the analyzer's dataset
func (a *DataAnalyzer) Data() *table.Table {
	return a.data
}

// Summarize generates a comprehensive summary of the dataset. The numeric
// stats and correlation matrix are present only when the dataset has at
// least one numeric column.
func (a *DataAnalyzer) Summarize() (*profile.DatasetSummary, error) {
	if err := table.Validate(a.data); err != nil {
		return nil, err
	}

	rows, cols := a.data.Shape()
	summary := &profile.DatasetSummary{
		Shape:              profile.Shape{Rows: rows, Cols: cols},
		Columns:            a.data.ColumnNames(),
		NumericColumns:     a.data.NumericColumnNames(),
		CategoricalColumns: a.data.NonNumericColumnNames(),
		MissingValues:      a.data.MissingCounts(),
		Duplicates:         a.data.DuplicateCount(),
	}

	if len(summary.NumericColumns) == 0 {
		return summary, nil
	}

	summary.NumericStats = make(map[string]profile.NumericStats, len(summary.NumericColumns))
	numeric := make([]profiling.NumericColumn, 0, len(summary.NumericColumns))
	for _, name := range summary.NumericColumns {
		col, _ := a.data.Column(name)
		summary.NumericStats[name] = profiling.Describe(col.PresentFloats())
		numeric = append(numeric, profiling.NumericColumn{
			Name:   name,
			Floats: col.Floats,
			Valid:  col.Valid,
		})
	}
	summary.Correlations = profiling.Correlations(numeric)

	return summary, nil
}

// AnalyzeColumn analyzes a single named column in detail. Numeric columns get
// descriptive statistics and quartiles; all other columns get a frequency
// table and its top-5 slice.
func (a *DataAnalyzer) AnalyzeColumn(name string) (*profile.ColumnAnalysis, error) {
	if err := table.Validate(a.data); err != nil {
		return nil, err
	}
	col, ok := a.data.Column(name)
	if !ok {
		return nil, core.NewColumnNotFoundError(name)
	}

	missing := col.MissingCount()
	analysis := &profile.ColumnAnalysis{
		Name:           name,
		DType:          col.Type,
		UniqueCount:    col.UniqueCount(),
		MissingCount:   missing,
		MissingPercent: float64(missing) / float64(col.Len()) * 100,
	}

	if col.IsNumeric() {
		values := col.PresentFloats()
		stats := profiling.Describe(values)
		quartiles := profiling.Quartiles(values)
		analysis.Numeric = &stats
		analysis.Quartiles = &quartiles
		return analysis, nil
	}

	analysis.ValueCounts = profiling.ValueCounts(col.PresentStrings())
	analysis.TopValues = analysis.ValueCounts
	if len(analysis.TopValues) > 5 {
		analysis.TopValues = analysis.TopValues[:5]
	}
	return analysis, nil
}
