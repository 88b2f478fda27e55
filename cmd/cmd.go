// Package cmd defines the command-line interface for regimpact.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"regimpact/internal"
	"regimpact/internal/config"
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(milestonesCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("data-dir", config.DefaultDataDir, "Directory holding the input CSV files")
	rootCmd.PersistentFlags().String("geo-dir", config.DefaultGeoDir, "Directory holding the country GeoJSON outlines")
	rootCmd.PersistentFlags().StringP("out-dir", "o", config.DefaultOutDir, "Directory the charts and exports are written to")
	rootCmd.PersistentFlags().Int("dpi", config.DefaultDPI, "Resolution of the rendered PNG files")
	rootCmd.PersistentFlags().Int("min-year", config.DefaultMinYear, "First year kept from every dataset")
	rootCmd.PersistentFlags().Int("cutoff-year", config.DefaultCutoffYear, "First year of the post-regulation period")
	rootCmd.PersistentFlags().IntP("workers", "w", config.DefaultWorkers, "Number of charts rendered concurrently")
	rootCmd.PersistentFlags().Bool("workbook", false, "Also write the metrics workbook")
	rootCmd.PersistentFlags().Bool("parquet", false, "Also write the metrics as parquet")
	rootCmd.PersistentFlags().Bool("summary", false, "Also print the pre/post summary table")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored output (yes/no/true/false/1/0)")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		internal.LogFatal("Error binding root flags", err)
	}

	renderCmd.Flags().String("only", "", "Comma-separated chart ids to render, e.g. '01,20,24c'")
	if err := viper.BindPFlags(renderCmd.Flags()); err != nil {
		internal.LogFatal("Error binding render flags", err)
	}
}
