// Package profile holds the result records produced by the analyzer and
// cleaner components.
package profile

import (
	"time"

	"clarity/domain/core"
	"clarity/domain/table"
)

// Shape is a (rows, columns) pair
type Shape struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// NumericStats are the descriptive statistics of one numeric column
type NumericStats struct {
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Median float64 `json:"median"`
}

// ValueCount is one entry of a frequency table
type ValueCount struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// DatasetSummary describes a whole dataset. NumericStats and Correlations are
// nil (and absent from JSON) when the dataset has no numeric columns.
type DatasetSummary struct {
	Shape              Shape                         `json:"shape"`
	Columns            []string                      `json:"columns"`
	NumericColumns     []string                      `json:"numeric_columns"`
	CategoricalColumns []string                      `json:"categorical_columns"`
	MissingValues      map[string]int                `json:"missing_values"`
	Duplicates         int                           `json:"duplicates"`
	NumericStats       map[string]NumericStats       `json:"numeric_stats,omitempty"`
	Correlations       map[string]map[string]float64 `json:"correlations,omitempty"`
}

// Quartiles holds the fixed 0.25 / 0.5 / 0.75 quantiles of a numeric column
type Quartiles struct {
	Q1     float64 `json:"0.25"`
	Median float64 `json:"0.5"`
	Q3     float64 `json:"0.75"`
}

// ColumnAnalysis describes a single column in detail. The numeric branch
// populates Numeric and Quartiles; the categorical branch populates
// ValueCounts and TopValues.
type ColumnAnalysis struct {
	Name           string      `json:"name"`
	DType          table.DType `json:"dtype"`
	UniqueCount    int         `json:"unique_count"`
	MissingCount   int         `json:"missing_count"`
	MissingPercent float64     `json:"missing_percentage"`

	Numeric   *NumericStats `json:"numeric,omitempty"`
	Quartiles *Quartiles    `json:"quartiles,omitempty"`

	ValueCounts []ValueCount `json:"value_counts,omitempty"`
	TopValues   []ValueCount `json:"top_values,omitempty"`
}

// CleaningOperation is one audit entry recorded by the cleaner for every
// transform applied to the working dataset
type CleaningOperation struct {
	ID          core.OperationID `json:"id"`
	Operation   string           `json:"operation"`
	Column      string           `json:"column,omitempty"`
	Detail      string           `json:"detail,omitempty"`
	RowsBefore  int              `json:"rows_before"`
	RowsAfter   int              `json:"rows_after"`
	CellsFilled int              `json:"cells_filled,omitempty"`
	AppliedAt   time.Time        `json:"applied_at"`
}

// CleaningReport summarizes the cumulative effect of cleaning operations
type CleaningReport struct {
	OriginalShape         Shape               `json:"original_shape"`
	CurrentShape          Shape               `json:"current_shape"`
	RowsRemoved           int                 `json:"rows_removed"`
	MissingValuesOriginal map[string]int      `json:"missing_values_original"`
	MissingValuesCurrent  map[string]int      `json:"missing_values_current"`
	Operations            []CleaningOperation `json:"operations,omitempty"`
}
