package table

import (
	"math"
	"strconv"
	"time"
)

// DType classifies the element type of a column
type DType string

const (
	TypeNumeric     DType = "numeric"
	TypeCategorical DType = "categorical"
	TypeTemporal    DType = "temporal"
)

// Column is a single named, typed column. Exactly one of the value slices is
// populated, chosen by Type; Valid marks per-row presence. Numeric columns
// additionally carry NaN in Floats for missing cells so the float slice can be
// handed to aggregate routines without re-checking the mask.
type Column struct {
	Name string
	Type DType

	Floats  []float64
	Strings []string
	Times   []time.Time
	Valid   []bool
}

// NewNumeric builds a numeric column. NaN entries are treated as missing.
func NewNumeric(name string, values []float64) *Column {
	valid := make([]bool, len(values))
	for i, v := range values {
		valid[i] = !math.IsNaN(v)
	}
	return &Column{Name: name, Type: TypeNumeric, Floats: values, Valid: valid}
}

// NewCategorical builds a categorical column. Empty strings are treated as missing.
func NewCategorical(name string, values []string) *Column {
	valid := make([]bool, len(values))
	for i, v := range values {
		valid[i] = v != ""
	}
	return &Column{Name: name, Type: TypeCategorical, Strings: values, Valid: valid}
}

// NewTemporal builds a temporal column. Zero times are treated as missing.
func NewTemporal(name string, values []time.Time) *Column {
	valid := make([]bool, len(values))
	for i, v := range values {
		valid[i] = !v.IsZero()
	}
	return &Column{Name: name, Type: TypeTemporal, Times: values, Valid: valid}
}

// Len returns the number of rows in the column
func (c *Column) Len() int {
	return len(c.Valid)
}

// IsNumeric reports whether the column holds numeric values
func (c *Column) IsNumeric() bool {
	return c.Type == TypeNumeric
}

// IsMissing reports whether the cell at row i is missing
func (c *Column) IsMissing(i int) bool {
	return !c.Valid[i]
}

// MissingCount returns the number of missing cells
func (c *Column) MissingCount() int {
	n := 0
	for _, ok := range c.Valid {
		if !ok {
			n++
		}
	}
	return n
}

// PresentFloats returns the non-missing numeric values in row order
func (c *Column) PresentFloats() []float64 {
	out := make([]float64, 0, len(c.Floats))
	for i, ok := range c.Valid {
		if ok {
			out = append(out, c.Floats[i])
		}
	}
	return out
}

// PresentStrings returns the non-missing cells in row order, formatted as text
func (c *Column) PresentStrings() []string {
	out := make([]string, 0, c.Len())
	for i := 0; i < c.Len(); i++ {
		if c.Valid[i] {
			out = append(out, c.CellString(i))
		}
	}
	return out
}

// UniqueCount returns the number of distinct non-missing values
func (c *Column) UniqueCount() int {
	seen := make(map[string]struct{})
	for i := 0; i < c.Len(); i++ {
		if c.Valid[i] {
			seen[c.CellString(i)] = struct{}{}
		}
	}
	return len(seen)
}

// CellString formats the cell at row i as text. Missing cells format as an
// empty string; callers that need a distinct missing marker check IsMissing.
func (c *Column) CellString(i int) string {
	if !c.Valid[i] {
		return ""
	}
	switch c.Type {
	case TypeNumeric:
		return strconv.FormatFloat(c.Floats[i], 'g', -1, 64)
	case TypeTemporal:
		return c.Times[i].Format(time.RFC3339)
	default:
		return c.Strings[i]
	}
}

// SetFloat assigns a numeric value at row i and marks the cell present
func (c *Column) SetFloat(i int, v float64) {
	c.Floats[i] = v
	c.Valid[i] = true
}

// SetString assigns a text value at row i and marks the cell present
func (c *Column) SetString(i int, v string) {
	c.Strings[i] = v
	c.Valid[i] = true
}

// SetTime assigns a temporal value at row i and marks the cell present
func (c *Column) SetTime(i int, v time.Time) {
	c.Times[i] = v
	c.Valid[i] = true
}

// Copy returns a deep copy of the column
func (c *Column) Copy() *Column {
	out := &Column{Name: c.Name, Type: c.Type}
	if c.Floats != nil {
		out.Floats = append([]float64(nil), c.Floats...)
	}
	if c.Strings != nil {
		out.Strings = append([]string(nil), c.Strings...)
	}
	if c.Times != nil {
		out.Times = append([]time.Time(nil), c.Times...)
	}
	out.Valid = append([]bool(nil), c.Valid...)
	return out
}

// filter keeps only the rows where mask is true
func (c *Column) filter(mask []bool) {
	keep := 0
	for _, m := range mask {
		if m {
			keep++
		}
	}
	valid := make([]bool, 0, keep)
	var floats []float64
	var strs []string
	var times []time.Time
	if c.Floats != nil {
		floats = make([]float64, 0, keep)
	}
	if c.Strings != nil {
		strs = make([]string, 0, keep)
	}
	if c.Times != nil {
		times = make([]time.Time, 0, keep)
	}
	for i, m := range mask {
		if !m {
			continue
		}
		valid = append(valid, c.Valid[i])
		if c.Floats != nil {
			floats = append(floats, c.Floats[i])
		}
		if c.Strings != nil {
			strs = append(strs, c.Strings[i])
		}
		if c.Times != nil {
			times = append(times, c.Times[i])
		}
	}
	c.Valid = valid
	c.Floats = floats
	c.Strings = strs
	c.Times = times
}
