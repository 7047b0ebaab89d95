// Package cleaner applies standard cleaning transforms to a working copy of
// a dataset while retaining an immutable snapshot of the original. The
// snapshot lets a caller apply destructive transforms speculatively and
// always recover the pristine input without re-reading the source file.
package cleaner

import (
	"time"

	"go.uber.org/zap"

	"clarity/adapters/excel"
	"clarity/domain/core"
	"clarity/domain/profile"
	"clarity/domain/table"
)

// DataCleaner holds a working dataset mutated by every transform and an
// original snapshot captured when the working dataset was first established
type DataCleaner struct {
	working  *table.Table
	original *table.Table
	ops      []profile.CleaningOperation
	logger   *zap.Logger
}

// Option configures a DataCleaner
type Option func(*DataCleaner)

// WithLogger sets the logger used to record applied transforms
func WithLogger(logger *zap.Logger) Option {
	return func(c *DataCleaner) {
		c.logger = logger
	}
}

// New creates a cleaner over an already-loaded table. Working and original
// are independent copies of the input; mutating one never affects the other.
func New(t *table.Table, opts ...Option) *DataCleaner {
	c := &DataCleaner{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}
	if t != nil {
		c.working = t.Copy()
		c.original = t.Copy()
	}
	return c
}

// NewFromFile creates a cleaner by loading a data file
func NewFromFile(path string, opts ...Option) (*DataCleaner, error) {
	c := New(nil, opts...)
	if err := c.Load(path); err != nil {
		return nil, err
	}
	return c, nil
}

// Load reads a data file and establishes both the working dataset and the
// original snapshot, discarding any previous session state
func (c *DataCleaner) Load(path string) error {
	t, err := excel.Load(path)
	if err != nil {
		return err
	}
	c.working = t
	c.original = t.Copy()
	c.ops = nil
	return nil
}

// Working returns the current working dataset
func (c *DataCleaner) Working() *table.Table {
	return c.working
}

// Original returns a copy of the original snapshot. A copy is returned so
// callers cannot break the snapshot invariant.
func (c *DataCleaner) Original() *table.Table {
	if c.original == nil {
		return nil
	}
	return c.original.Copy()
}

// Reset replaces the working dataset with a fresh independent copy of the
// original snapshot
func (c *DataCleaner) Reset() error {
	if c.original == nil {
		return core.ErrNoData
	}
	c.working = c.original.Copy()
	c.record("reset", "", "restored original snapshot", c.working.NumRows(), c.working.NumRows(), 0)
	return nil
}

// Summary reports the cumulative effect of the cleaning operations applied
// to the working dataset since load
func (c *DataCleaner) Summary() (*profile.CleaningReport, error) {
	if c.working == nil || c.original == nil {
		return nil, core.ErrNoData
	}

	origRows, origCols := c.original.Shape()
	curRows, curCols := c.working.Shape()
	report := &profile.CleaningReport{
		OriginalShape:         profile.Shape{Rows: origRows, Cols: origCols},
		CurrentShape:          profile.Shape{Rows: curRows, Cols: curCols},
		RowsRemoved:           origRows - curRows,
		MissingValuesOriginal: c.original.MissingCounts(),
		MissingValuesCurrent:  c.working.MissingCounts(),
		Operations:            append([]profile.CleaningOperation(nil), c.ops...),
	}
	return report, nil
}

// Operations returns the audit log of transforms applied since load
func (c *DataCleaner) Operations() []profile.CleaningOperation {
	return append([]profile.CleaningOperation(nil), c.ops...)
}

func (c *DataCleaner) requireData() error {
	return table.Validate(c.working)
}

// record appends an audit entry and logs the applied transform
func (c *DataCleaner) record(operation, column, detail string, rowsBefore, rowsAfter, cellsFilled int) {
	c.ops = append(c.ops, profile.CleaningOperation{
		ID:          core.OperationID(core.NewID()),
		Operation:   operation,
		Column:      column,
		Detail:      detail,
		RowsBefore:  rowsBefore,
		RowsAfter:   rowsAfter,
		CellsFilled: cellsFilled,
		AppliedAt:   time.Now(),
	})
	c.logger.Info("Applied cleaning operation",
		zap.String("operation", operation),
		zap.String("column", column),
		zap.String("detail", detail),
		zap.Int("rows_before", rowsBefore),
		zap.Int("rows_after", rowsAfter),
		zap.Int("cells_filled", cellsFilled))
}
