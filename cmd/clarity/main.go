package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"clarity/adapters/excel"
	"clarity/analyzer"
	"clarity/cleaner"
	"clarity/internal/config"
	"clarity/internal/logging"
	"clarity/internal/report"
	"clarity/internal/testkit"
	"clarity/visualizer"
)

func main() {
	// missing .env is fine, the defaults cover everything
	_ = godotenv.Load()
	cfg := config.Load()

	rootCmd := &cobra.Command{
		Use:   "clarity",
		Short: "Explore, clean and chart tabular data files",
	}

	rootCmd.AddCommand(
		newSummarizeCmd(),
		newAnalyzeCmd(),
		newCleanCmd(cfg),
		newPlotCmd(cfg),
		newDemoCmd(cfg),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newSummarizeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summarize [file]",
		Short: "Print dataset shape, statistics and correlations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := analyzer.NewFromFile(args[0])
			if err != nil {
				return err
			}
			summary, err := a.Summarize()
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(summary)
			}
			fmt.Print(report.SummaryText(summary))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of tables")
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "analyze [file] [column]",
		Short: "Print a detailed profile of one column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := analyzer.NewFromFile(args[0])
			if err != nil {
				return err
			}
			analysis, err := a.AnalyzeColumn(args[1])
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(analysis)
			}
			fmt.Print(report.ColumnText(analysis))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit JSON instead of tables")
	return cmd
}

func newCleanCmd(cfg *config.Config) *cobra.Command {
	var (
		dedup     bool
		subset    []string
		missing   string
		columns   []string
		fill      string
		normalize []string
		outliers  []string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "clean [file]",
		Short: "Apply cleaning operations and print the report",
		Long: `Apply cleaning operations in a fixed order: deduplication, missing value
handling, normalization, then outlier removal. Column flags take column:method
pairs, e.g. --normalize price:minmax --outliers price:iqr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(cfg.Log.Development)
			if err != nil {
				return err
			}
			defer logger.Sync()

			c, err := cleaner.NewFromFile(args[0], cleaner.WithLogger(logger))
			if err != nil {
				return err
			}

			if dedup {
				if err := c.RemoveDuplicates(subset...); err != nil {
					return err
				}
			}
			if missing != "" {
				var fillValue any
				if fill != "" {
					fillValue = fill
				}
				if err := c.HandleMissing(cleaner.Strategy(missing), columns, fillValue); err != nil {
					return err
				}
			}
			for _, pair := range normalize {
				column, method, err := splitColumnMethod(pair, string(cleaner.NormalizeMinMax))
				if err != nil {
					return err
				}
				if err := c.NormalizeColumn(column, cleaner.NormalizeMethod(method)); err != nil {
					return err
				}
			}
			for _, pair := range outliers {
				column, method, err := splitColumnMethod(pair, string(cleaner.OutlierIQR))
				if err != nil {
					return err
				}
				if err := c.RemoveOutliers(column, cleaner.OutlierMethod(method)); err != nil {
					return err
				}
			}

			summary, err := c.Summary()
			if err != nil {
				return err
			}
			fmt.Print(report.CleaningText(summary))

			if output != "" {
				if err := excel.Save(c.Working(), output); err != nil {
					return err
				}
				fmt.Printf("cleaned data written to %s\n", output)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dedup, "dedup", false, "remove duplicate rows")
	cmd.Flags().StringSliceVar(&subset, "subset", nil, "columns considered for duplicate detection")
	cmd.Flags().StringVar(&missing, "missing", "", "missing value strategy (mean, median, mode, drop, fill)")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "columns for missing value handling (default all)")
	cmd.Flags().StringVar(&fill, "fill", "", "literal used by the fill strategy")
	cmd.Flags().StringSliceVar(&normalize, "normalize", nil, "column:method pairs to normalize (minmax, zscore)")
	cmd.Flags().StringSliceVar(&outliers, "outliers", nil, "column:method pairs to filter (iqr, zscore)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the cleaned dataset to a .csv or .xlsx file")
	return cmd
}

func newPlotCmd(cfg *config.Config) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render charts from a data file",
	}
	cmd.PersistentFlags().StringVarP(&out, "out", "o", "", "output file (.html, or .png where supported)")

	newViz := func(path string) (*visualizer.DataVisualizer, error) {
		return visualizer.NewFromFile(path, visualizer.WithSize(cfg.Charts.Width, cfg.Charts.Height))
	}
	save := func(v *visualizer.DataVisualizer, defaultName string) error {
		name := out
		if name == "" {
			name = filepath.Join(cfg.Paths.OutputDir, defaultName)
		}
		if err := v.SavePlot(name); err != nil {
			return err
		}
		fmt.Printf("chart written to %s\n", name)
		return nil
	}

	dist := &cobra.Command{
		Use:   "dist [file] [column]",
		Short: "Distribution chart (histogram, box or violin)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("type")
			v, err := newViz(args[0])
			if err != nil {
				return err
			}
			if out != "" && strings.EqualFold(filepath.Ext(out), ".png") {
				if err := checkPNGDistType(kind); err != nil {
					return err
				}
				png, err := v.HistogramPNG(args[1])
				if err != nil {
					return err
				}
				return os.WriteFile(out, png, 0o644)
			}
			if err := v.PlotDistribution(args[1], visualizer.PlotType(kind)); err != nil {
				return err
			}
			return save(v, fmt.Sprintf("%s_dist.html", args[1]))
		},
	}
	dist.Flags().String("type", string(visualizer.PlotAuto), "chart type (auto, hist, box, violin)")

	corr := &cobra.Command{
		Use:   "corr [file] [columns...]",
		Short: "Correlation matrix heatmap",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newViz(args[0])
			if err != nil {
				return err
			}
			if err := v.PlotCorrelationMatrix(args[1:]...); err != nil {
				return err
			}
			return save(v, "correlation.html")
		},
	}

	scatter := &cobra.Command{
		Use:   "scatter [file] [x] [y]",
		Short: "Scatter plot of two numeric columns",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			hue, _ := cmd.Flags().GetString("hue")
			v, err := newViz(args[0])
			if err != nil {
				return err
			}
			if err := v.PlotScatter(args[1], args[2], hue); err != nil {
				return err
			}
			return save(v, fmt.Sprintf("%s_vs_%s.html", args[2], args[1]))
		},
	}
	scatter.Flags().String("hue", "", "column used to color points")

	timeseries := &cobra.Command{
		Use:   "timeseries [file] [date-column] [value-column]",
		Short: "Line chart of a value over time",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newViz(args[0])
			if err != nil {
				return err
			}
			if out != "" && strings.EqualFold(filepath.Ext(out), ".png") {
				png, err := v.TimeSeriesPNG(args[1], args[2])
				if err != nil {
					return err
				}
				return os.WriteFile(out, png, 0o644)
			}
			if err := v.PlotTimeSeries(args[1], args[2]); err != nil {
				return err
			}
			return save(v, fmt.Sprintf("%s_timeseries.html", args[2]))
		},
	}

	missing := &cobra.Command{
		Use:   "missing [file]",
		Short: "Bar chart of missing cells per column",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newViz(args[0])
			if err != nil {
				return err
			}
			if err := v.PlotMissingValues(); err != nil {
				return err
			}
			return save(v, "missing.html")
		},
	}

	cmd.AddCommand(dist, corr, scatter, timeseries, missing)
	return cmd
}

func newDemoCmd(cfg *config.Config) *cobra.Command {
	var rows int
	var seed int64

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the full workflow on a generated sales dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(cfg.Log.Development)
			if err != nil {
				return err
			}
			defer logger.Sync()

			genCfg := testkit.DefaultSalesConfig()
			genCfg.Rows = rows
			genCfg.Seed = seed
			data := testkit.SalesTable(genCfg)

			dataPath := filepath.Join(cfg.Paths.OutputDir, "sales.csv")
			if err := excel.Save(data, dataPath); err != nil {
				return err
			}
			fmt.Printf("sample data written to %s\n", dataPath)

			a := analyzer.New(data)
			summary, err := a.Summarize()
			if err != nil {
				return err
			}
			fmt.Print(report.SummaryText(summary))

			c := cleaner.New(data, cleaner.WithLogger(logger))
			if err := c.RemoveDuplicates(); err != nil {
				return err
			}
			if err := c.HandleMissing(cleaner.StrategyMean, []string{"price"}, nil); err != nil {
				return err
			}
			if err := c.HandleMissing(cleaner.StrategyMode, []string{"region"}, nil); err != nil {
				return err
			}
			if err := c.RemoveOutliers("price", cleaner.OutlierIQR); err != nil {
				return err
			}
			cleanReport, err := c.Summary()
			if err != nil {
				return err
			}
			fmt.Print(report.CleaningText(cleanReport))

			v := visualizer.New(c.Working(), visualizer.WithSize(cfg.Charts.Width, cfg.Charts.Height))
			charts := map[string]func() error{
				"price_dist.html":  func() error { return v.PlotDistribution("price", visualizer.PlotAuto) },
				"correlation.html": func() error { return v.PlotCorrelationMatrix() },
				"scatter.html":     func() error { return v.PlotScatter("quantity", "price", "region") },
				"timeseries.html":  func() error { return v.PlotTimeSeries("day", "price") },
			}
			for name, plot := range charts {
				if err := plot(); err != nil {
					return err
				}
				out := filepath.Join(cfg.Paths.OutputDir, name)
				if err := v.SavePlot(out); err != nil {
					return err
				}
				fmt.Printf("chart written to %s\n", out)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 100, "rows of sample data to generate")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	return cmd
}

// checkPNGDistType rejects chart types without a PNG renderer; only the
// histogram draws to PNG, box and violin render to HTML
func checkPNGDistType(kind string) error {
	switch visualizer.PlotType(kind) {
	case visualizer.PlotAuto, visualizer.PlotHist:
		return nil
	default:
		return fmt.Errorf("chart type %q has no PNG renderer, write to an .html file instead", kind)
	}
}

func splitColumnMethod(pair, defaultMethod string) (string, string, error) {
	column, method, found := strings.Cut(pair, ":")
	if column == "" {
		return "", "", fmt.Errorf("invalid column:method pair %q", pair)
	}
	if !found || method == "" {
		method = defaultMethod
	}
	return column, method, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
