// Package table provides the in-memory tabular structure shared by the
// analyzer, cleaner and visualizer components: an ordered set of uniquely
// named columns, each holding a single element type, with row order preserved
// by every operation except filtering and de-duplication.
package table

import (
	"fmt"
	"strings"

	"clarity/domain/core"
)

// Table is an in-memory, column-typed, row-ordered dataset
type Table struct {
	cols  []*Column
	index map[string]int
}

// New builds a table from columns, validating unique names and equal lengths
func New(cols ...*Column) (*Table, error) {
	t := &Table{index: make(map[string]int, len(cols))}
	rows := -1
	for _, col := range cols {
		if _, dup := t.index[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column name %q", col.Name)
		}
		if rows >= 0 && col.Len() != rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d", col.Name, col.Len(), rows)
		}
		rows = col.Len()
		t.index[col.Name] = len(t.cols)
		t.cols = append(t.cols, col)
	}
	return t, nil
}

// Validate ensures the table is usable for analysis
func Validate(t *Table) error {
	if t == nil {
		return core.ErrNoData
	}
	if t.NumCols() == 0 || t.NumRows() == 0 {
		return core.ErrEmptyDataset
	}
	return nil
}

// NumRows returns the row count
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

// NumCols returns the column count
func (t *Table) NumCols() int {
	return len(t.cols)
}

// Shape returns (rows, columns)
func (t *Table) Shape() (int, int) {
	return t.NumRows(), t.NumCols()
}

// ColumnNames returns the column names in table order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column, if present
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// HasColumn reports whether the named column exists
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Columns returns the columns in table order
func (t *Table) Columns() []*Column {
	return t.cols
}

// NumericColumnNames returns the names of numeric columns in table order
func (t *Table) NumericColumnNames() []string {
	var names []string
	for _, c := range t.cols {
		if c.IsNumeric() {
			names = append(names, c.Name)
		}
	}
	return names
}

// NonNumericColumnNames returns the names of categorical and temporal columns
func (t *Table) NonNumericColumnNames() []string {
	var names []string
	for _, c := range t.cols {
		if !c.IsNumeric() {
			names = append(names, c.Name)
		}
	}
	return names
}

// MissingCounts returns the per-column missing cell counts
func (t *Table) MissingCounts() map[string]int {
	out := make(map[string]int, len(t.cols))
	for _, c := range t.cols {
		out[c.Name] = c.MissingCount()
	}
	return out
}

// Copy returns a deep copy; mutating the copy never alters the receiver
func (t *Table) Copy() *Table {
	cols := make([]*Column, len(t.cols))
	for i, c := range t.cols {
		cols[i] = c.Copy()
	}
	out, _ := New(cols...)
	return out
}

// Filter keeps only the rows where mask is true, preserving relative order
func (t *Table) Filter(mask []bool) error {
	if len(mask) != t.NumRows() {
		return fmt.Errorf("mask length %d does not match %d rows", len(mask), t.NumRows())
	}
	for _, c := range t.cols {
		c.filter(mask)
	}
	return nil
}

// Deduplicate drops rows that duplicate an earlier row, compared over the
// subset columns when given (unknown names skipped), else over all columns.
// The first occurrence of each duplicate group is kept.
func (t *Table) Deduplicate(subset []string) {
	cols := t.cols
	if len(subset) > 0 {
		var selected []*Column
		for _, name := range subset {
			if i, ok := t.index[name]; ok {
				selected = append(selected, t.cols[i])
			}
		}
		if len(selected) == 0 {
			return
		}
		cols = selected
	}
	seen := make(map[string]struct{}, t.NumRows())
	mask := make([]bool, t.NumRows())
	for i := range mask {
		key := rowKey(cols, i)
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			mask[i] = true
		}
	}
	t.Filter(mask) //nolint:errcheck // mask length is exact by construction
}

// DuplicateCount returns the number of rows that duplicate an earlier row,
// compared over all columns
func (t *Table) DuplicateCount() int {
	seen := make(map[string]struct{}, t.NumRows())
	dups := 0
	for i := 0; i < t.NumRows(); i++ {
		key := rowKey(t.cols, i)
		if _, ok := seen[key]; ok {
			dups++
		} else {
			seen[key] = struct{}{}
		}
	}
	return dups
}

// rowKey builds a comparison key for row i over the given columns. Missing
// cells share a marker so two missing cells compare equal, matching the
// de-duplication contract.
func rowKey(cols []*Column, i int) string {
	var b strings.Builder
	for _, c := range cols {
		if c.IsMissing(i) {
			b.WriteString("\x00?")
		} else {
			b.WriteString(c.CellString(i))
		}
		b.WriteByte('\x1f')
	}
	return b.String()
}

// Equal reports element-wise equality of two tables, including missing masks
func Equal(a, b *Table) bool {
	if a.NumCols() != b.NumCols() || a.NumRows() != b.NumRows() {
		return false
	}
	for i, ca := range a.cols {
		cb := b.cols[i]
		if ca.Name != cb.Name || ca.Type != cb.Type {
			return false
		}
		for r := 0; r < ca.Len(); r++ {
			if ca.Valid[r] != cb.Valid[r] {
				return false
			}
			if ca.Valid[r] && ca.CellString(r) != cb.CellString(r) {
				return false
			}
		}
	}
	return true
}
