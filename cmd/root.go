package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"regimpact/internal"
	"regimpact/internal/config"
	"regimpact/internal/report"
)

// Set by the linker at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx bounds every render and export run.
var rootCtx = context.Background()

// cfg is filled by sharedSetup before any subcommand runs.
var cfg = &config.Config{}

// input collects flags, REGIMPACT_* variables and .regimpact.yaml values.
var input = &config.RawInput{}

var rootCmd = &cobra.Command{
	Use:   "regimpact",
	Short: "Chart the impact of EU digital regulation on three countries.",
	Long: `regimpact loads Eurostat, OECD and UN indicators for Germany, Ireland and
Switzerland, overlays the GDPR, DSA, DMA and AI Act milestones, and renders the
regulation-impact chart battery. The metrics command computes pre/post averages
and cumulative growth around the cutoff year and can export them as a workbook,
a parquet file or a terminal summary.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// initConfig points viper at .regimpact.yaml (or --config) and the REGIMPACT_
// environment. Flag defaults are repeated here so file-only keys resolve.
func initConfig() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".regimpact")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("REGIMPACT")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("data-dir", config.DefaultDataDir)
	viper.SetDefault("geo-dir", config.DefaultGeoDir)
	viper.SetDefault("out-dir", config.DefaultOutDir)
	viper.SetDefault("dpi", config.DefaultDPI)
	viper.SetDefault("min-year", config.DefaultMinYear)
	viper.SetDefault("cutoff-year", config.DefaultCutoffYear)
	viper.SetDefault("workers", config.DefaultWorkers)
	viper.SetDefault("color", "yes")
}

// sharedSetup runs before every subcommand. A missing config file is fine;
// an unreadable one is not.
func sharedSetup(_ *cobra.Command, _ []string) error {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	if err := config.Process(cfg, input); err != nil {
		return err
	}
	internal.SetColor(cfg.UseColors)
	return nil
}

// options maps the validated config onto the report environment settings.
func options() report.Options {
	return report.Options{
		DataDir:    cfg.DataDir,
		GeoDir:     cfg.GeoDir,
		DPI:        cfg.DPI,
		MinYear:    cfg.MinYear,
		CutoffYear: cfg.CutoffYear,
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
