package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"regimpact/internal"
	"regimpact/internal/report"
)

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Compute the pre/post regulation metrics without rendering charts",
	Long: `Compute year-over-year growth, the mean before and after the cutoff year
and the cumulative index for every indicator, and print the comparison.

Add --workbook or --parquet to also write the metrics to the output
directory.

Examples:
  # Print the comparison around 2018
  regimpact metrics

  # Compare around 2022 and export the result
  regimpact metrics --cutoff-year 2022 --workbook --parquet`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		cfg.Summary = true
		internal.Info("Comparing %s around %d", strings.Join(report.Countries(), ", "), cfg.CutoffYear)
		inputs := report.IndicatorInputs(report.Indicators())
		env, err := report.LoadEnv(rootCtx, options(), inputs, false)
		if err != nil {
			internal.LogFatal("Cannot load datasets", err)
		}
		if err := writeExports(env); err != nil {
			internal.LogFatal("Cannot compute metrics", err)
		}
	},
}

func exporting() bool {
	return cfg.Workbook || cfg.Parquet || cfg.Summary
}

// writeExports computes the indicator metrics and writes the requested
// exports.
func writeExports(env *report.Env) error {
	if !exporting() {
		return nil
	}
	results, err := report.Compute(env, report.Indicators())
	if err != nil {
		return err
	}

	if cfg.Summary {
		if err := report.WriteSummary(os.Stdout, results, env.Cutoff, cfg.UseColors); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	if cfg.Workbook || cfg.Parquet {
		if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if cfg.Workbook {
		path := filepath.Join(cfg.OutDir, report.WorkbookFile)
		if err := report.WriteWorkbook(path, env.Timeline, env.Cutoff, results); err != nil {
			return err
		}
		internal.Saved("Workbook", path)
	}
	if cfg.Parquet {
		path := filepath.Join(cfg.OutDir, report.ParquetFile)
		if err := report.WriteParquet(report.Records(results, env.Cutoff), path); err != nil {
			return err
		}
		internal.Saved("Parquet", path)
	}
	return nil
}
