package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"regimpact/internal"
	"regimpact/internal/report"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the regulation-impact charts as PNG files",
	Long: `Load the input datasets and render the chart battery into the output directory.

Each chart is written as graph_<id>_<name>.png. Charts without data are
skipped with a warning; a missing input file stops the run.

Examples:
  # Render every chart
  regimpact render --data-dir data --out-dir charts

  # Render the GDPR windows and the choropleths with four workers
  regimpact render --only 20,26,27,28 --workers 4

  # Render everything and export the derived metrics
  regimpact render --workbook --parquet --summary`,
	PreRunE: sharedSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := runRender(); err != nil {
			internal.LogFatal("Cannot render charts", err)
		}
	},
}

func runRender() error {
	start := time.Now()

	jobs, err := report.Select(report.Catalog(), cfg.Only)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	inputs, maps := report.Inputs(jobs)
	if exporting() {
		inputs = union(inputs, report.IndicatorInputs(report.Indicators()))
	}
	internal.Info("Loading %d datasets from %s", len(inputs), cfg.DataDir)
	env, err := report.LoadEnv(rootCtx, options(), inputs, maps)
	if err != nil {
		return err
	}

	internal.Info("Rendering %d charts with %d workers", len(jobs), cfg.Workers)
	runner := report.Runner{Env: env, OutDir: cfg.OutDir, Workers: cfg.Workers}
	results, err := runner.Run(rootCtx, jobs)
	if err != nil {
		return err
	}

	if err := writeExports(env); err != nil {
		return err
	}

	internal.Success("Rendered %d of %d charts in %s", report.Rendered(results), len(jobs), time.Since(start).Round(time.Millisecond))
	return nil
}

// union appends the inputs of b missing from a.
func union(a, b []report.Input) []report.Input {
	seen := make(map[report.Input]bool, len(a))
	for _, in := range a {
		seen[in] = true
	}
	for _, in := range b {
		if !seen[in] {
			seen[in] = true
			a = append(a, in)
		}
	}
	return a
}
