// Package testkit generates synthetic tabular datasets for demos and tests.
// Generation is seeded, so a fixed seed always yields the same table.
package testkit

import (
	"math"
	"math/rand"
	"time"

	"clarity/domain/table"
)

// SalesConfig controls the synthetic sales dataset
type SalesConfig struct {
	Rows         int
	Seed         int64
	MissingRate  float64
	DuplicateRun int
	OutlierEvery int
}

// DefaultSalesConfig returns a config producing a small dataset with missing
// cells, a duplicate block and occasional price outliers
func DefaultSalesConfig() SalesConfig {
	return SalesConfig{
		Rows:         100,
		Seed:         42,
		MissingRate:  0.05,
		DuplicateRun: 3,
		OutlierEvery: 25,
	}
}

// SalesTable builds a synthetic sales dataset: a numeric price and quantity,
// a categorical region, and a daily timestamp column
func SalesTable(cfg SalesConfig) *table.Table {
	rng := rand.New(rand.NewSource(cfg.Seed))
	regions := []string{"north", "south", "east", "west"}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	prices := make([]float64, cfg.Rows)
	quantities := make([]float64, cfg.Rows)
	regionCells := make([]string, cfg.Rows)
	days := make([]time.Time, cfg.Rows)

	for i := 0; i < cfg.Rows; i++ {
		price := 20 + rng.NormFloat64()*5
		if cfg.OutlierEvery > 0 && i > 0 && i%cfg.OutlierEvery == 0 {
			price *= 20
		}
		prices[i] = math.Round(price*100) / 100
		quantities[i] = float64(1 + rng.Intn(9))
		regionCells[i] = regions[rng.Intn(len(regions))]
		days[i] = start.AddDate(0, 0, i)

		if rng.Float64() < cfg.MissingRate {
			prices[i] = math.NaN()
		}
		if rng.Float64() < cfg.MissingRate {
			regionCells[i] = ""
		}
	}

	// copy one row forward to guarantee exact duplicates
	for i := 1; i <= cfg.DuplicateRun && i < cfg.Rows; i++ {
		prices[i] = prices[0]
		quantities[i] = quantities[0]
		regionCells[i] = regionCells[0]
		days[i] = days[0]
	}

	t, err := table.New(
		table.NewNumeric("price", prices),
		table.NewNumeric("quantity", quantities),
		table.NewCategorical("region", regionCells),
		table.NewTemporal("day", days),
	)
	if err != nil {
		// column construction above is structurally valid
		panic(err)
	}
	return t
}
