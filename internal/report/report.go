// Package report formats analysis and cleaning results as plain-text tables
// suitable for terminal output.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"clarity/domain/profile"
)

// SummaryText renders a dataset summary as text tables: shape and column
// counts, per-column numeric statistics, and the correlation matrix.
func SummaryText(s *profile.DatasetSummary) string {
	if s == nil {
		return ""
	}
	var b strings.Builder

	overview := table.NewWriter()
	overview.AppendHeader(table.Row{"Rows", "Columns", "Numeric", "Non-Numeric", "Duplicates"})
	overview.AppendRow(table.Row{
		s.Shape.Rows, s.Shape.Cols,
		len(s.NumericColumns), len(s.CategoricalColumns),
		s.Duplicates,
	})
	overview.SetStyle(table.StyleLight)
	b.WriteString(overview.Render())
	b.WriteString("\n")

	if len(s.NumericStats) > 0 {
		stats := table.NewWriter()
		stats.AppendHeader(table.Row{"Column", "Mean", "Std", "Min", "Max", "Median", "Missing"})
		for _, name := range s.NumericColumns {
			ns, ok := s.NumericStats[name]
			if !ok {
				continue
			}
			stats.AppendRow(table.Row{
				name,
				cell(ns.Mean), cell(ns.Std), cell(ns.Min), cell(ns.Max), cell(ns.Median),
				s.MissingValues[name],
			})
		}
		stats.SetStyle(table.StyleLight)
		b.WriteString(stats.Render())
		b.WriteString("\n")
	}

	if len(s.Correlations) > 0 {
		b.WriteString(correlationText(s.Correlations))
	}
	return b.String()
}

// CleaningText renders a cleaning report: shape change, missing value change,
// and the operation audit trail in application order.
func CleaningText(r *profile.CleaningReport) string {
	if r == nil {
		return ""
	}
	var b strings.Builder

	overview := table.NewWriter()
	overview.AppendHeader(table.Row{"", "Rows", "Columns", "Missing Cells"})
	overview.AppendRow(table.Row{"original", r.OriginalShape.Rows, r.OriginalShape.Cols, totalMissing(r.MissingValuesOriginal)})
	overview.AppendRow(table.Row{"current", r.CurrentShape.Rows, r.CurrentShape.Cols, totalMissing(r.MissingValuesCurrent)})
	overview.SetStyle(table.StyleLight)
	b.WriteString(overview.Render())
	b.WriteString("\n")

	if len(r.Operations) > 0 {
		ops := table.NewWriter()
		ops.AppendHeader(table.Row{"#", "Operation", "Column", "Detail", "Rows Before", "Rows After", "Cells Filled"})
		for i, op := range r.Operations {
			ops.AppendRow(table.Row{i + 1, op.Operation, op.Column, op.Detail, op.RowsBefore, op.RowsAfter, op.CellsFilled})
		}
		ops.SetStyle(table.StyleLight)
		b.WriteString(ops.Render())
		b.WriteString("\n")
	}
	return b.String()
}

// ColumnText renders a single-column analysis
func ColumnText(a *profile.ColumnAnalysis) string {
	if a == nil {
		return ""
	}
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRow(table.Row{"dtype", a.DType})
	t.AppendRow(table.Row{"missing", a.MissingCount})
	t.AppendRow(table.Row{"unique", a.UniqueCount})
	if a.Numeric != nil {
		t.AppendRow(table.Row{"mean", cell(a.Numeric.Mean)})
		t.AppendRow(table.Row{"std", cell(a.Numeric.Std)})
		t.AppendRow(table.Row{"min", cell(a.Numeric.Min)})
		t.AppendRow(table.Row{"max", cell(a.Numeric.Max)})
		t.AppendRow(table.Row{"median", cell(a.Numeric.Median)})
	}
	if a.Quartiles != nil {
		t.AppendRow(table.Row{"q1", cell(a.Quartiles.Q1)})
		t.AppendRow(table.Row{"q3", cell(a.Quartiles.Q3)})
	}
	for _, vc := range a.TopValues {
		t.AppendRow(table.Row{fmt.Sprintf("top %q", vc.Value), vc.Count})
	}
	t.SetStyle(table.StyleLight)
	return t.Render() + "\n"
}

func correlationText(corr map[string]map[string]float64) string {
	names := make([]string, 0, len(corr))
	for name := range corr {
		names = append(names, name)
	}
	sort.Strings(names)

	t := table.NewWriter()
	header := table.Row{""}
	for _, name := range names {
		header = append(header, name)
	}
	t.AppendHeader(header)
	for _, row := range names {
		cells := table.Row{row}
		for _, col := range names {
			cells = append(cells, cell(corr[row][col]))
		}
		t.AppendRow(cells)
	}
	t.SetStyle(table.StyleLight)
	return t.Render() + "\n"
}

func cell(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.4g", v)
}

func totalMissing(m map[string]int) int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}
