package testkit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clarity/domain/table"
)

func TestSalesTableDeterministic(t *testing.T) {
	cfg := DefaultSalesConfig()

	a := SalesTable(cfg)
	b := SalesTable(cfg)

	assert.True(t, table.Equal(a, b))
}

func TestSalesTableShape(t *testing.T) {
	cfg := DefaultSalesConfig()
	cfg.Rows = 50

	tbl := SalesTable(cfg)

	rows, cols := tbl.Shape()
	assert.Equal(t, 50, rows)
	assert.Equal(t, 4, cols)
	assert.Equal(t, []string{"price", "quantity"}, tbl.NumericColumnNames())
	assert.GreaterOrEqual(t, tbl.DuplicateCount(), cfg.DuplicateRun)
}
