package cleaner

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"clarity/domain/core"
	"clarity/domain/table"
	"clarity/internal/profiling"
)

// Strategy selects how missing values are handled
type Strategy string

const (
	StrategyMean   Strategy = "mean"
	StrategyMedian Strategy = "median"
	StrategyMode   Strategy = "mode"
	StrategyDrop   Strategy = "drop"
	StrategyFill   Strategy = "fill"
)

// NormalizeMethod selects the normalization formula
type NormalizeMethod string

const (
	NormalizeMinMax NormalizeMethod = "minmax"
	NormalizeZScore NormalizeMethod = "zscore"
)

// OutlierMethod selects the outlier detection rule
type OutlierMethod string

const (
	OutlierIQR    OutlierMethod = "iqr"
	OutlierZScore OutlierMethod = "zscore"
)

// RemoveDuplicates drops rows that duplicate an earlier row, compared only
// over the subset columns when given, else over all columns. The first
// occurrence is kept. Unknown subset names are skipped.
func (c *DataCleaner) RemoveDuplicates(subset ...string) error {
	if err := c.requireData(); err != nil {
		return err
	}
	before := c.working.NumRows()
	c.working.Deduplicate(subset)
	c.record("remove_duplicates", "", fmt.Sprintf("subset=%v", subset), before, c.working.NumRows(), 0)
	return nil
}

// HandleMissing fills or drops missing values in the given columns (all
// columns when nil). Unknown column names are skipped, not an error, so a
// caller can pass a superset of columns without per-call filtering. The fill
// strategy is a no-op when fillValue is nil; mode of an entirely missing
// column is a documented no-op.
func (c *DataCleaner) HandleMissing(strategy Strategy, columns []string, fillValue any) error {
	if err := c.requireData(); err != nil {
		return err
	}
	switch strategy {
	case StrategyMean, StrategyMedian, StrategyMode, StrategyDrop, StrategyFill:
	default:
		return fmt.Errorf("%w: %q", core.ErrUnsupportedStrategy, strategy)
	}

	if columns == nil {
		columns = c.working.ColumnNames()
	}
	for _, name := range columns {
		col, ok := c.working.Column(name)
		if !ok {
			continue
		}
		switch strategy {
		case StrategyDrop:
			before := c.working.NumRows()
			mask := make([]bool, col.Len())
			copy(mask, col.Valid)
			if err := c.working.Filter(mask); err != nil {
				return err
			}
			c.record("drop_missing", name, "", before, c.working.NumRows(), 0)
		case StrategyFill:
			if fillValue == nil {
				continue
			}
			filled := fillLiteral(col, fillValue)
			c.record("fill_missing", name, fmt.Sprintf("value=%v", fillValue), col.Len(), col.Len(), filled)
		default:
			filled := imputeColumn(col, strategy)
			c.record("impute_missing", name, string(strategy), col.Len(), col.Len(), filled)
		}
	}
	return nil
}

// NormalizeColumn rescales a numeric column in place. minmax maps values to
// (x-min)/(max-min); zscore maps to (x-mean)/std over the column's current
// values.
func (c *DataCleaner) NormalizeColumn(column string, method NormalizeMethod) error {
	if err := c.requireData(); err != nil {
		return err
	}
	col, ok := c.working.Column(column)
	if !ok {
		return core.NewColumnNotFoundError(column)
	}
	if !col.IsNumeric() {
		return core.NewNotNumericError(column)
	}

	present := col.PresentFloats()
	switch method {
	case NormalizeMinMax:
		stats := profiling.Describe(present)
		span := stats.Max - stats.Min
		for i := range col.Floats {
			col.Floats[i] = (col.Floats[i] - stats.Min) / span
		}
	case NormalizeZScore:
		stats := profiling.Describe(present)
		for i := range col.Floats {
			col.Floats[i] = (col.Floats[i] - stats.Mean) / stats.Std
		}
	default:
		return core.NewUnsupportedMethodError(string(method))
	}
	// Numeric columns treat NaN as missing; a degenerate span or zero std
	// produces NaN cells, so resync the mask.
	for i := range col.Floats {
		if math.IsNaN(col.Floats[i]) {
			col.Valid[i] = false
		}
	}
	c.record("normalize", column, string(method), col.Len(), col.Len(), 0)
	return nil
}

// RemoveOutliers drops rows whose value in the named numeric column is an
// outlier. iqr keeps rows within [Q1-1.5*IQR, Q3+1.5*IQR]; zscore keeps rows
// with |x-mean|/std <= 3. Rows missing the column survive the iqr rule (no
// value lies outside the bounds) but not the zscore rule, whose keep
// condition cannot hold without a value.
func (c *DataCleaner) RemoveOutliers(column string, method OutlierMethod) error {
	if err := c.requireData(); err != nil {
		return err
	}
	col, ok := c.working.Column(column)
	if !ok {
		return core.NewColumnNotFoundError(column)
	}
	if !col.IsNumeric() {
		return core.NewNotNumericError(column)
	}

	present := col.PresentFloats()
	mask := make([]bool, col.Len())
	switch method {
	case OutlierIQR:
		q1 := profiling.Quantile(present, 0.25)
		q3 := profiling.Quantile(present, 0.75)
		iqr := q3 - q1
		lower := q1 - 1.5*iqr
		upper := q3 + 1.5*iqr
		for i := range mask {
			mask[i] = col.IsMissing(i) || (col.Floats[i] >= lower && col.Floats[i] <= upper)
		}
	case OutlierZScore:
		stats := profiling.Describe(present)
		for i := range mask {
			z := math.Abs(col.Floats[i]-stats.Mean) / stats.Std
			mask[i] = z <= 3
		}
	default:
		return core.NewUnsupportedMethodError(string(method))
	}

	before := c.working.NumRows()
	if err := c.working.Filter(mask); err != nil {
		return err
	}
	c.record("remove_outliers", column, string(method), before, c.working.NumRows(), 0)
	return nil
}

// imputeColumn fills missing cells with the column's mean, median or mode.
// Non-numeric columns fall back to mode for every strategy. Returns the
// number of cells filled.
func imputeColumn(col *table.Column, strategy Strategy) int {
	if col.IsNumeric() {
		present := col.PresentFloats()
		var value float64
		switch strategy {
		case StrategyMean:
			value = profiling.Describe(present).Mean
		case StrategyMedian:
			value = profiling.Describe(present).Median
		default:
			mode, ok := profiling.ModeFloat(present)
			if !ok {
				return 0
			}
			value = mode
		}
		if math.IsNaN(value) {
			return 0
		}
		return fillFloat(col, value)
	}

	if col.Type == table.TypeTemporal {
		mode, ok := modeTime(col)
		if !ok {
			return 0
		}
		filled := 0
		for i := range col.Valid {
			if !col.Valid[i] {
				col.SetTime(i, mode)
				filled++
			}
		}
		return filled
	}

	mode, ok := profiling.Mode(col.PresentStrings())
	if !ok {
		return 0
	}
	filled := 0
	for i := range col.Valid {
		if !col.Valid[i] {
			col.SetString(i, mode)
			filled++
		}
	}
	return filled
}

// fillLiteral substitutes the literal fill value into missing cells, coerced
// to the column dtype. Values that cannot be coerced leave the column
// untouched.
func fillLiteral(col *table.Column, fillValue any) int {
	switch col.Type {
	case table.TypeNumeric:
		v, ok := toFloat(fillValue)
		if !ok {
			return 0
		}
		return fillFloat(col, v)
	case table.TypeTemporal:
		v, ok := toTime(fillValue)
		if !ok {
			return 0
		}
		filled := 0
		for i := range col.Valid {
			if !col.Valid[i] {
				col.SetTime(i, v)
				filled++
			}
		}
		return filled
	default:
		filled := 0
		text := fmt.Sprint(fillValue)
		for i := range col.Valid {
			if !col.Valid[i] {
				col.SetString(i, text)
				filled++
			}
		}
		return filled
	}
}

func fillFloat(col *table.Column, value float64) int {
	filled := 0
	for i := range col.Valid {
		if !col.Valid[i] {
			col.SetFloat(i, value)
			filled++
		}
	}
	return filled
}

// modeTime returns the most frequent present timestamp, ties resolved to the
// earliest
func modeTime(col *table.Column) (time.Time, bool) {
	counts := make(map[time.Time]int)
	for i := range col.Valid {
		if col.Valid[i] {
			counts[col.Times[i]]++
		}
	}
	if len(counts) == 0 {
		return time.Time{}, false
	}
	var best time.Time
	bestN := 0
	for v, n := range counts {
		if n > bestN || (n == bestN && v.Before(best)) {
			best, bestN = v, n
		}
	}
	return best, true
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func toTime(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		for _, layout := range []string{time.RFC3339, "2006-01-02", "2006-01-02 15:04:05"} {
			if t, err := time.Parse(layout, x); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
